package output

import (
	"encoding/json"

	"github.com/rgehrsitz/jackpot/internal/compare"
	"github.com/rgehrsitz/jackpot/internal/domain"
)

// Report is the serialized shape of an evaluation: the rounded figures plus
// the comparison rows.
type Report struct {
	*domain.Evaluation
	Comparison compare.PayoutComparison `json:"comparison"`
}

// NewReport rounds an evaluation to cents and attaches its comparison rows
func NewReport(eval *domain.Evaluation) Report {
	rounded := eval.Rounded()
	pc := compare.Payouts(rounded)
	for i := range pc.Rows {
		pc.Rows[i].LumpSum = pc.Rows[i].LumpSum.Round(2)
		pc.Rows[i].Annuity = pc.Rows[i].Annuity.Round(2)
		pc.Rows[i].Difference = pc.Rows[i].Difference.Round(2)
	}
	return Report{Evaluation: rounded, Comparison: pc}
}

// JSONFormatter serializes the report as pretty-printed JSON
type JSONFormatter struct{}

func (j JSONFormatter) Name() string      { return "json" }
func (j JSONFormatter) Extension() string { return "json" }

func (j JSONFormatter) Format(eval *domain.Evaluation) ([]byte, error) {
	return json.MarshalIndent(NewReport(eval), "", "  ")
}
