package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/jackpot/internal/breakeven"
	"github.com/rgehrsitz/jackpot/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Engine evaluates lump-sum and annuity payouts against a set of tax tables.
// It holds no mutable state once configured and may be shared across
// goroutines.
type Engine struct {
	Tables      *domain.TaxTables
	Assumptions domain.Assumptions
	Federal     *FederalTaxCalculator
	State       *StateTaxCalculator
	Logger      Logger
}

// NewEngine creates an engine over tables with the given assumptions
func NewEngine(tables *domain.TaxTables, assumptions domain.Assumptions) (*Engine, error) {
	if tables == nil {
		return nil, fmt.Errorf("tax tables are required")
	}
	if err := assumptions.Validate(); err != nil {
		return nil, fmt.Errorf("invalid assumptions: %w", err)
	}
	return &Engine{
		Tables:      tables,
		Assumptions: assumptions,
		Federal:     NewFederalTaxCalculator(tables),
		State:       NewStateTaxCalculator(tables),
		Logger:      NopLogger{},
	}, nil
}

// NewEngineForProduct creates an engine using the named product preset from cfg
func NewEngineForProduct(cfg *domain.RegulatoryConfig, product string) (*Engine, error) {
	assumptions, err := domain.ProductAssumptions(cfg.Products, product)
	if err != nil {
		return nil, err
	}
	return NewEngine(&cfg.TaxTables, assumptions)
}

// SetLogger sets the logger; nil restores the no-op logger. Call it before
// sharing the engine.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// WithAssumptions returns a copy of the engine using different assumptions
func (e *Engine) WithAssumptions(a domain.Assumptions) (*Engine, error) {
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("invalid assumptions: %w", err)
	}
	clone := *e
	clone.Assumptions = a
	return &clone, nil
}

// EvaluateLumpSum nets federal and state tax against the cash option
func (e *Engine) EvaluateLumpSum(advertisedJackpot, cashValuePercent decimal.Decimal, stateCode string, status domain.FilingStatus) (*domain.LumpSumResult, error) {
	if err := validateJackpot(advertisedJackpot); err != nil {
		return nil, err
	}
	if err := validateCashValuePercent(cashValuePercent); err != nil {
		return nil, err
	}
	stateCode, status, err := e.resolve(stateCode, status)
	if err != nil {
		return nil, err
	}
	return e.lumpSum(advertisedJackpot, cashValuePercent, stateCode, status)
}

func (e *Engine) lumpSum(advertisedJackpot, cashValuePercent decimal.Decimal, stateCode string, status domain.FilingStatus) (*domain.LumpSumResult, error) {
	cashValue := advertisedJackpot.Mul(cashValuePercent).Div(hundred)
	withholding := cashValue.Mul(e.Assumptions.FederalWithholdingRate)

	federalTax, err := e.Federal.Calculate(cashValue, status)
	if err != nil {
		return nil, err
	}
	stateTax := e.State.Calculate(cashValue, stateCode)

	result := &domain.LumpSumResult{
		CashValue:          cashValue,
		FederalWithholding: withholding,
		TotalFederalTax:    federalTax,
		FederalShortage:    federalTax.Sub(withholding),
		StateTax:           stateTax,
		NetAmount:          cashValue.Sub(federalTax).Sub(stateTax),
	}
	e.Logger.Debugf("lump sum: cash=%s federal=%s state=%s net=%s",
		cashValue.StringFixed(2), federalTax.StringFixed(2), stateTax.StringFixed(2), result.NetAmount.StringFixed(2))
	return result, nil
}

// EvaluateAnnuity derives the growing payment stream whose gross payments sum
// to the advertised jackpot, and taxes each year's payment independently.
func (e *Engine) EvaluateAnnuity(advertisedJackpot decimal.Decimal, stateCode string, status domain.FilingStatus) (*domain.AnnuityResult, domain.AnnuitySchedule, error) {
	if err := validateJackpot(advertisedJackpot); err != nil {
		return nil, nil, err
	}
	stateCode, status, err := e.resolve(stateCode, status)
	if err != nil {
		return nil, nil, err
	}
	return e.annuity(advertisedJackpot, stateCode, status)
}

func (e *Engine) annuity(advertisedJackpot decimal.Decimal, stateCode string, status domain.FilingStatus) (*domain.AnnuityResult, domain.AnnuitySchedule, error) {
	years := e.Assumptions.AnnuityYears
	firstPayment := FirstAnnuityPayment(advertisedJackpot, e.Assumptions.AnnuityGrowthRate, years)
	step := decimal.NewFromInt(1).Add(e.Assumptions.AnnuityGrowthRate)

	schedule := make(domain.AnnuitySchedule, 0, years)
	totalFederal := decimal.Zero
	totalState := decimal.Zero
	totalNet := decimal.Zero

	payment := firstPayment
	for year := 1; year <= years; year++ {
		if year > 1 {
			payment = payment.Mul(step)
		}

		federalTax, err := e.Federal.Calculate(payment, status)
		if err != nil {
			return nil, nil, err
		}
		stateTax := e.State.Calculate(payment, stateCode)
		net := payment.Sub(federalTax).Sub(stateTax)

		totalFederal = totalFederal.Add(federalTax)
		totalState = totalState.Add(stateTax)
		totalNet = totalNet.Add(net)

		schedule = append(schedule, domain.AnnuityYear{
			Year:          year,
			GrossPayment:  payment,
			FederalTax:    federalTax,
			StateTax:      stateTax,
			NetPayment:    net,
			CumulativeNet: totalNet,
			Milestone:     domain.IsMilestoneYear(year, years),
		})
	}

	first := schedule[0]
	last := schedule[len(schedule)-1]
	result := &domain.AnnuityResult{
		AnnuityValue:      advertisedJackpot,
		FirstYearGross:    first.GrossPayment,
		FirstYearNet:      first.NetPayment,
		FinalYearGross:    last.GrossPayment,
		TotalNetPayments:  totalNet,
		TotalFederalTaxes: totalFederal,
		TotalStateTaxes:   totalState,
		TotalTaxes:        totalFederal.Add(totalState),
		AverageAnnualNet:  totalNet.Div(decimal.NewFromInt(int64(years))),
	}
	e.Logger.Debugf("annuity: first=%s final=%s total net=%s over %d years",
		first.GrossPayment.StringFixed(2), last.GrossPayment.StringFixed(2), totalNet.StringFixed(2), years)
	return result, schedule, nil
}

// FirstAnnuityPayment solves P0*((1+g)^n - 1)/g = total for P0.
// The quotient keeps at least 16 places past the jackpot's own precision
// so tiny jackpots still sum back to the total.
func FirstAnnuityPayment(total, growthRate decimal.Decimal, years int) decimal.Decimal {
	denominator := breakeven.GrowthFactor(growthRate, years).Sub(decimal.NewFromInt(1)).Div(growthRate)
	places := int32(decimal.DivisionPrecision)
	if exp := total.Exponent(); exp < 0 {
		places -= exp
	}
	return total.DivRound(denominator, places)
}

// Evaluate runs both evaluators and the breakeven solver for one input
func (e *Engine) Evaluate(ctx context.Context, in domain.Input) (*domain.Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateJackpot(in.AdvertisedJackpot); err != nil {
		return nil, err
	}
	if err := validateCashValuePercent(in.CashValuePercent); err != nil {
		return nil, err
	}
	stateCode, status, err := e.resolve(in.StateCode, in.FilingStatus)
	if err != nil {
		return nil, err
	}
	in.StateCode = stateCode
	in.FilingStatus = status

	e.Logger.Debugf("evaluating jackpot=%s cash=%s%% state=%s status=%s",
		in.AdvertisedJackpot.String(), in.CashValuePercent.String(), stateCode, status)

	lump, err := e.lumpSum(in.AdvertisedJackpot, in.CashValuePercent, stateCode, status)
	if err != nil {
		return nil, err
	}
	annuity, schedule, err := e.annuity(in.AdvertisedJackpot, stateCode, status)
	if err != nil {
		return nil, err
	}

	rate := breakeven.Rate(lump.NetAmount, annuity.TotalNetPayments, e.Assumptions.AnnuityYears)
	profile, _ := e.Tables.StateProfile(stateCode)

	return &domain.Evaluation{
		Input:         in,
		StateName:     profile.Name,
		Assumptions:   e.Assumptions,
		LumpSum:       *lump,
		Annuity:       *annuity,
		Schedule:      schedule,
		BreakevenRate: rate,
	}, nil
}

// CompareStates evaluates the same jackpot across several states. An empty
// list compares every state that sells lottery tickets.
func (e *Engine) CompareStates(ctx context.Context, advertisedJackpot, cashValuePercent decimal.Decimal, status domain.FilingStatus, stateCodes []string) ([]*domain.Evaluation, error) {
	if len(stateCodes) == 0 {
		for _, opt := range e.Tables.LotteryStates() {
			stateCodes = append(stateCodes, opt.Code)
		}
	}

	results := make([]*domain.Evaluation, 0, len(stateCodes))
	for _, code := range stateCodes {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		eval, err := e.Evaluate(ctx, domain.Input{
			AdvertisedJackpot: advertisedJackpot,
			CashValuePercent:  cashValuePercent,
			StateCode:         code,
			FilingStatus:      status,
		})
		if err != nil {
			return nil, fmt.Errorf("state %s: %w", code, err)
		}
		results = append(results, eval)
	}
	return results, nil
}

func (e *Engine) resolve(stateCode string, status domain.FilingStatus) (string, domain.FilingStatus, error) {
	resolved, err := domain.ParseFilingStatus(string(status))
	if err != nil {
		return "", "", err
	}
	code := domain.NormalizeStateCode(stateCode)
	if _, ok := e.Tables.StateProfile(code); !ok {
		return "", "", &domain.InputError{Field: "state", Value: stateCode, Message: "unknown state code"}
	}
	return code, resolved, nil
}

func validateJackpot(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return &domain.InputError{Field: "advertised_jackpot", Value: amount.String(), Message: "must be positive"}
	}
	return nil
}

func validateCashValuePercent(pct decimal.Decimal) error {
	if !pct.IsPositive() || pct.GreaterThan(hundred) {
		return &domain.InputError{Field: "cash_value_percent", Value: pct.String(), Message: "must be in (0, 100]"}
	}
	return nil
}
