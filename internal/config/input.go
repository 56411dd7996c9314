package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rgehrsitz/jackpot/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of scenario batch files
type InputParser struct {
	Tables *domain.TaxTables
}

// NewInputParser creates a parser that checks state codes against tables.
// A nil tables pointer skips the state-code check.
func NewInputParser(tables *domain.TaxTables) *InputParser {
	return &InputParser{Tables: tables}
}

// LoadFromFile loads a scenario batch from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.ScenarioFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a scenario batch
func (ip *InputParser) Parse(data []byte) (*domain.ScenarioFile, error) {
	var file domain.ScenarioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateScenarioFile(&file); err != nil {
		return nil, fmt.Errorf("scenario validation failed: %w", err)
	}

	return &file, nil
}

// ValidateScenarioFile normalizes and validates every scenario in place
func (ip *InputParser) ValidateScenarioFile(file *domain.ScenarioFile) error {
	if len(file.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	seen := make(map[string]bool, len(file.Scenarios))
	for i := range file.Scenarios {
		sc := &file.Scenarios[i]
		if sc.Name == "" {
			sc.Name = fmt.Sprintf("scenario-%d", i+1)
		}
		if seen[sc.Name] {
			return fmt.Errorf("scenario %d: duplicate name %q", i, sc.Name)
		}
		seen[sc.Name] = true

		if err := ip.ValidateInput(&sc.Input); err != nil {
			return fmt.Errorf("scenario %d (%s): %w", i, sc.Name, err)
		}
	}
	return nil
}

// ValidateInput normalizes state code and filing status, then range-checks amounts
func (ip *InputParser) ValidateInput(in *domain.Input) error {
	if !in.AdvertisedJackpot.IsPositive() {
		return &domain.InputError{Field: "advertised_jackpot", Value: in.AdvertisedJackpot.String(), Message: "must be positive"}
	}
	if !in.CashValuePercent.IsPositive() || in.CashValuePercent.GreaterThan(decimal.NewFromInt(100)) {
		return &domain.InputError{Field: "cash_value_percent", Value: in.CashValuePercent.String(), Message: "must be in (0, 100]"}
	}

	status, err := domain.ParseFilingStatus(string(in.FilingStatus))
	if err != nil {
		return err
	}
	in.FilingStatus = status

	in.StateCode = domain.NormalizeStateCode(in.StateCode)
	if in.StateCode == "" {
		return &domain.InputError{Field: "state", Message: "is required"}
	}
	if ip.Tables != nil {
		if _, ok := ip.Tables.StateProfile(in.StateCode); !ok {
			return &domain.InputError{Field: "state", Value: in.StateCode, Message: "unknown state code"}
		}
	}
	return nil
}

// ParseAmount parses a user-entered dollar amount. Thousands separators,
// a leading "$" and surrounding whitespace are accepted; a trailing "M" or
// "B" scales by a million or a billion.
func ParseAmount(s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(s)
	clean := strings.TrimPrefix(raw, "$")
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.ReplaceAll(clean, "_", "")
	clean = strings.TrimSpace(clean)

	multiplier := decimal.NewFromInt(1)
	switch {
	case strings.HasSuffix(strings.ToUpper(clean), "B"):
		multiplier = decimal.NewFromInt(1_000_000_000)
		clean = clean[:len(clean)-1]
	case strings.HasSuffix(strings.ToUpper(clean), "M"):
		multiplier = decimal.NewFromInt(1_000_000)
		clean = clean[:len(clean)-1]
	}

	if clean == "" {
		return decimal.Zero, &domain.InputError{Field: "amount", Value: raw, Message: "is empty"}
	}
	d, err := decimal.NewFromString(strings.TrimSpace(clean))
	if err != nil {
		return decimal.Zero, &domain.InputError{Field: "amount", Value: raw, Message: "is not a number"}
	}
	return d.Mul(multiplier), nil
}

// ParsePercent parses a percentage such as "52", "52%" or "52.5 %"
func ParsePercent(s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(s)
	clean := strings.TrimSpace(strings.TrimSuffix(raw, "%"))
	if clean == "" {
		return decimal.Zero, &domain.InputError{Field: "percent", Value: raw, Message: "is empty"}
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, &domain.InputError{Field: "percent", Value: raw, Message: "is not a number"}
	}
	return d, nil
}
