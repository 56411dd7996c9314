package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/jackpot/internal/domain"
)

// ScheduleCSVFormatter exports the annuity schedule, one row per year
type ScheduleCSVFormatter struct{}

func (c ScheduleCSVFormatter) Name() string      { return "csv" }
func (c ScheduleCSVFormatter) Extension() string { return "csv" }

func (c ScheduleCSVFormatter) Format(eval *domain.Evaluation) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"Year", "GrossPayment", "FederalTax", "StateTax", "NetPayment", "CumulativeNet", "Milestone"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, y := range eval.Schedule {
		rec := []string{
			strconv.Itoa(y.Year),
			y.GrossPayment.StringFixed(2),
			y.FederalTax.StringFixed(2),
			y.StateTax.StringFixed(2),
			y.NetPayment.StringFixed(2),
			y.CumulativeNet.StringFixed(2),
			strconv.FormatBool(y.Milestone),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
