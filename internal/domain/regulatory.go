package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// FilingStatus identifies which federal bracket set applies
type FilingStatus string

const (
	FilingSingle          FilingStatus = "single"
	FilingMarriedJoint    FilingStatus = "marriedJoint"
	FilingMarriedSeparate FilingStatus = "marriedSeparate"
	FilingHeadOfHousehold FilingStatus = "headOfHousehold"
)

// FilingStatuses lists every supported filing status in display order
var FilingStatuses = []FilingStatus{
	FilingSingle,
	FilingMarriedJoint,
	FilingMarriedSeparate,
	FilingHeadOfHousehold,
}

// Label returns a human-readable name for the filing status
func (fs FilingStatus) Label() string {
	switch fs {
	case FilingSingle:
		return "Single"
	case FilingMarriedJoint:
		return "Married Filing Jointly"
	case FilingMarriedSeparate:
		return "Married Filing Separately"
	case FilingHeadOfHousehold:
		return "Head of Household"
	default:
		return string(fs)
	}
}

// Valid reports whether fs is one of the supported filing statuses
func (fs FilingStatus) Valid() bool {
	for _, s := range FilingStatuses {
		if fs == s {
			return true
		}
	}
	return false
}

// ParseFilingStatus accepts the canonical names plus common short forms
// (mfj, mfs, hoh, married_joint, head-of-household, ...).
func ParseFilingStatus(s string) (FilingStatus, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", "", "-", "", " ", "").Replace(key)
	switch key {
	case "single", "s":
		return FilingSingle, nil
	case "marriedjoint", "marriedfilingjointly", "mfj", "joint":
		return FilingMarriedJoint, nil
	case "marriedseparate", "marriedfilingseparately", "mfs", "separate":
		return FilingMarriedSeparate, nil
	case "headofhousehold", "hoh", "head":
		return FilingHeadOfHousehold, nil
	}
	return "", &InputError{Field: "filing_status", Value: s, Message: "unrecognized filing status"}
}

// TaxBracket is one slice of a progressive schedule. A nil Max marks the top bracket.
type TaxBracket struct {
	Min  decimal.Decimal  `yaml:"min" json:"min"`
	Max  *decimal.Decimal `yaml:"max,omitempty" json:"max,omitempty"`
	Rate decimal.Decimal  `yaml:"rate" json:"rate"`
}

// Unbounded reports whether the bracket has no upper limit
func (b TaxBracket) Unbounded() bool {
	return b.Max == nil
}

// StateTaxProfile describes how a state treats lottery winnings
type StateTaxProfile struct {
	Name          string          `yaml:"name" json:"name"`
	Rate          decimal.Decimal `yaml:"rate" json:"rate"`
	HasLottery    bool            `yaml:"has_lottery" json:"hasLottery"`
	TaxesWinnings bool            `yaml:"taxes_winnings" json:"taxesWinnings"`
}

// EffectiveRate is the rate actually applied to winnings (zero when the state exempts them)
func (p StateTaxProfile) EffectiveRate() decimal.Decimal {
	if !p.TaxesWinnings {
		return decimal.Zero
	}
	return p.Rate
}

// Label renders the profile the way the state picker shows it
func (p StateTaxProfile) Label() string {
	if !p.TaxesWinnings {
		return p.Name + " (Tax-Free)"
	}
	return fmt.Sprintf("%s (%s%% tax)", p.Name, p.Rate.Mul(decimal.NewFromInt(100)).StringFixed(1))
}

// TaxTables holds the federal bracket sets and the state profile table
type TaxTables struct {
	Federal map[FilingStatus][]TaxBracket `yaml:"federal" json:"federal"`
	States  map[string]StateTaxProfile    `yaml:"states" json:"states"`
}

// RegulatoryConfig is the on-disk shape of a tax table file
type RegulatoryConfig struct {
	Metadata  RegulatoryMetadata     `yaml:"metadata" json:"metadata"`
	TaxTables `yaml:",inline"`
	Products  map[string]Assumptions `yaml:"products" json:"products"`
}

// RegulatoryMetadata contains information about the regulatory data
type RegulatoryMetadata struct {
	TaxYear     int    `yaml:"tax_year" json:"tax_year"`
	LastUpdated string `yaml:"last_updated" json:"last_updated"`
	Description string `yaml:"description" json:"description"`
}

// StateProfile looks up a state by its two-letter code (case-insensitive)
func (t *TaxTables) StateProfile(code string) (StateTaxProfile, bool) {
	p, ok := t.States[NormalizeStateCode(code)]
	return p, ok
}

// Brackets returns the bracket sequence for a filing status
func (t *TaxTables) Brackets(status FilingStatus) ([]TaxBracket, bool) {
	b, ok := t.Federal[status]
	return b, ok && len(b) > 0
}

// StateOption is one entry in the lottery state picker
type StateOption struct {
	Code    string          `json:"code"`
	Name    string          `json:"name"`
	Label   string          `json:"label"`
	Rate    decimal.Decimal `json:"rate"`
	Taxable bool            `json:"taxable"`
}

// LotteryStates returns the participating states sorted by name
func (t *TaxTables) LotteryStates() []StateOption {
	options := make([]StateOption, 0, len(t.States))
	for code, p := range t.States {
		if !p.HasLottery {
			continue
		}
		options = append(options, StateOption{
			Code:    code,
			Name:    p.Name,
			Label:   p.Label(),
			Rate:    p.EffectiveRate(),
			Taxable: p.TaxesWinnings,
		})
	}
	sort.Slice(options, func(i, j int) bool { return options[i].Name < options[j].Name })
	return options
}

// Validate checks that every filing status has a contiguous ascending
// schedule starting at zero whose last bracket is unbounded, and that state
// rates are fractions.
func (t *TaxTables) Validate() error {
	for _, status := range FilingStatuses {
		brackets, ok := t.Brackets(status)
		if !ok {
			return fmt.Errorf("federal brackets missing for filing status %s", status)
		}
		if err := validateBrackets(brackets); err != nil {
			return fmt.Errorf("filing status %s: %w", status, err)
		}
	}
	for status := range t.Federal {
		if !status.Valid() {
			return fmt.Errorf("unknown filing status %q in federal table", status)
		}
	}
	if len(t.States) == 0 {
		return fmt.Errorf("state table is empty")
	}
	for code, p := range t.States {
		if len(code) != 2 || code != strings.ToUpper(code) {
			return fmt.Errorf("state code %q must be two upper-case letters", code)
		}
		if p.Name == "" {
			return fmt.Errorf("state %s: name is required", code)
		}
		if p.Rate.IsNegative() || p.Rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return fmt.Errorf("state %s: rate %s must be in [0, 1)", code, p.Rate)
		}
	}
	return nil
}

func validateBrackets(brackets []TaxBracket) error {
	if !brackets[0].Min.IsZero() {
		return fmt.Errorf("first bracket must start at 0, starts at %s", brackets[0].Min)
	}
	last := len(brackets) - 1
	for i, b := range brackets {
		if b.Rate.IsNegative() || b.Rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return fmt.Errorf("bracket %d: rate %s must be in [0, 1)", i, b.Rate)
		}
		if i == last {
			if !b.Unbounded() {
				return fmt.Errorf("last bracket must be unbounded")
			}
			break
		}
		if b.Unbounded() {
			return fmt.Errorf("bracket %d: only the last bracket may be unbounded", i)
		}
		if b.Max.LessThanOrEqual(b.Min) {
			return fmt.Errorf("bracket %d: max %s must exceed min %s", i, b.Max, b.Min)
		}
		if !b.Max.Equal(brackets[i+1].Min) {
			return fmt.Errorf("bracket %d ends at %s but bracket %d starts at %s", i, b.Max, i+1, brackets[i+1].Min)
		}
	}
	return nil
}

// NormalizeStateCode upper-cases and trims a state code
func NormalizeStateCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
