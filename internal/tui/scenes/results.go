package scenes

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/jackpot/internal/compare"
	"github.com/rgehrsitz/jackpot/internal/domain"
	"github.com/rgehrsitz/jackpot/internal/output"
	"github.com/rgehrsitz/jackpot/internal/tui/components"
	"github.com/rgehrsitz/jackpot/internal/tui/tuistyles"
)

// ResultsModel shows the lump sum vs. annuity breakdown
type ResultsModel struct {
	eval   *domain.Evaluation
	width  int
	height int
}

// NewResultsModel creates a new results scene model
func NewResultsModel() *ResultsModel {
	return &ResultsModel{}
}

// SetEvaluation updates the evaluation to display
func (m *ResultsModel) SetEvaluation(eval *domain.Evaluation) {
	m.eval = eval
}

// SetSize updates the scene dimensions
func (m *ResultsModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the results scene
func (m *ResultsModel) Update(msg tea.Msg) (*ResultsModel, tea.Cmd) {
	// read-only
	return m, nil
}

// View renders the results scene
func (m *ResultsModel) View() string {
	if m.eval == nil {
		return renderNoResultsState()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		renderResultsHeader(m.eval),
		"",
		renderKeyMetrics(m.eval, m.width),
		"",
		renderPayoutTable(m.eval),
		"",
		renderShareBars(m.eval),
		"",
		tuistyles.HelpDescStyle.Render("a annuity schedule • c compare states • v sensitivity • i edit inputs"),
	)
}

func renderNoResultsState() string {
	return `No results to display.

Enter a jackpot on the calculator screen (i) first.`
}

func renderResultsHeader(eval *domain.Evaluation) string {
	in := eval.Input
	subtitle := fmt.Sprintf("%s jackpot • %s%% cash value • %s • %s",
		tuistyles.FormatCurrency(in.AdvertisedJackpot),
		in.CashValuePercent.StringFixed(1),
		eval.StateName,
		in.FilingStatus.Label())

	return lipgloss.JoinVertical(
		lipgloss.Left,
		tuistyles.TitleStyle.Render("Payout Comparison"),
		tuistyles.SubtitleStyle.Render(subtitle),
	)
}

func renderKeyMetrics(eval *domain.Evaluation, width int) string {
	lumpWins := eval.NetDifference().IsNegative()

	cards := []*components.MetricCard{
		components.NewMoneyCard("Lump Sum Net", eval.LumpSum.NetAmount).
			WithDescription("paid now").
			WithHighlight(lumpWins).
			WithWidth(26),
		components.NewMoneyCard("Annuity Net (30 yrs)", eval.Annuity.TotalNetPayments).
			WithDelta(eval.NetDifference()).
			WithHighlight(!lumpWins).
			WithWidth(26),
		components.NewMetricCard("Breakeven Rate", output.FormatPercentage(eval.BreakevenRate)).
			WithDescription("annual return on lump sum").
			WithWidth(26),
		components.NewMoneyCard("First Year Annuity", eval.Annuity.FirstYearNet).
			WithDescription("after taxes").
			WithWidth(26),
	}

	columns := 4
	if width > 0 && width < columns*28 {
		columns = 2
	}
	return components.MetricGrid(cards, columns)
}

func renderPayoutTable(eval *domain.Evaluation) string {
	pc := compare.Payouts(eval)

	var content strings.Builder
	header := fmt.Sprintf("%-24s %16s %16s %16s", "", "Lump Sum", "Annuity", "Difference")
	content.WriteString(tuistyles.TableHeaderStyle.Render(header))
	content.WriteString("\n")
	content.WriteString(strings.Repeat("─", 75))
	content.WriteString("\n")

	for _, row := range pc.Rows {
		line := fmt.Sprintf("%-24s %16s %16s %16s",
			row.Label,
			tuistyles.FormatCurrency(row.LumpSum),
			tuistyles.FormatCurrency(row.Annuity),
			tuistyles.FormatCurrency(row.Difference))
		if row.Label == compare.RowNet {
			content.WriteString(strings.Repeat("─", 75))
			content.WriteString("\n")
			line = tuistyles.TableHighlightStyle.Render(line)
		}
		content.WriteString(line)
		content.WriteString("\n")
	}

	return tuistyles.BorderStyle.Render(strings.TrimRight(content.String(), "\n"))
}

func renderShareBars(eval *domain.Evaluation) string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		components.NewShareBar("Lump sum kept after taxes", eval.LumpSum.NetAmount, eval.LumpSum.CashValue).Render(),
		components.NewShareBar("Annuity kept after taxes", eval.Annuity.TotalNetPayments, eval.Annuity.AnnuityValue).Render(),
	)
}
