package scenes

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/jackpot/internal/domain"
	"github.com/rgehrsitz/jackpot/internal/tui/components"
	"github.com/rgehrsitz/jackpot/internal/tui/tuistyles"
)

// ScheduleModel shows the year-by-year annuity payments as a table or chart
type ScheduleModel struct {
	eval      *domain.Evaluation
	table     table.Model
	showChart bool
	width     int
	height    int
}

// NewScheduleModel creates a new schedule scene model
func NewScheduleModel() *ScheduleModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Year", Width: 5},
			{Title: "Gross", Width: 15},
			{Title: "Federal Tax", Width: 15},
			{Title: "State Tax", Width: 13},
			{Title: "Net", Width: 15},
			{Title: "Cumulative Net", Width: 16},
		}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(tuistyles.ColorBorder).
		BorderBottom(true).
		Foreground(tuistyles.ColorPrimary).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(tuistyles.ColorBackground).
		Background(tuistyles.ColorAccent)
	t.SetStyles(styles)

	return &ScheduleModel{table: t}
}

// SetEvaluation loads the schedule rows
func (m *ScheduleModel) SetEvaluation(eval *domain.Evaluation) {
	m.eval = eval
	m.table.SetRows(ScheduleRows(eval.Schedule))
	m.table.GotoTop()
}

// ScheduleRows converts a schedule into table rows; milestone years are
// marked with an asterisk.
func ScheduleRows(schedule domain.AnnuitySchedule) []table.Row {
	rows := make([]table.Row, 0, len(schedule))
	for _, y := range schedule {
		year := strconv.Itoa(y.Year)
		if y.Milestone {
			year += "*"
		}
		rows = append(rows, table.Row{
			year,
			tuistyles.FormatCurrency(y.GrossPayment),
			tuistyles.FormatCurrency(y.FederalTax),
			tuistyles.FormatCurrency(y.StateTax),
			tuistyles.FormatCurrency(y.NetPayment),
			tuistyles.FormatCurrency(y.CumulativeNet),
		})
	}
	return rows
}

// SetSize updates the scene dimensions
func (m *ScheduleModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if h := height - 12; h > 5 {
		m.table.SetHeight(h)
	}
}

// ShowingChart reports whether the chart view is active
func (m *ScheduleModel) ShowingChart() bool {
	return m.showChart
}

// Update handles messages for the schedule scene
func (m *ScheduleModel) Update(msg tea.Msg) (*ScheduleModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, key.NewBinding(key.WithKeys("g"))) {
		m.showChart = !m.showChart
		return m, nil
	}
	if m.showChart {
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the schedule scene
func (m *ScheduleModel) View() string {
	if m.eval == nil {
		return renderNoResultsState()
	}

	title := tuistyles.TitleStyle.Render("Annuity Payment Schedule")
	subtitle := tuistyles.SubtitleStyle.Render(fmt.Sprintf("%d payments growing %s%% a year • * milestone year",
		len(m.eval.Schedule),
		m.eval.Assumptions.AnnuityGrowthRate.Mul(decimal.NewFromInt(100)).StringFixed(0)))

	body := m.table.View()
	help := "↑↓ scroll • g chart"
	if m.showChart {
		body = m.chart()
		help = "g table"
	}

	totals := fmt.Sprintf("Total gross %s • Total net %s • Average net %s",
		tuistyles.FormatCurrency(m.eval.Schedule.TotalGross()),
		tuistyles.FormatCurrency(m.eval.Annuity.TotalNetPayments),
		tuistyles.FormatCurrency(m.eval.Annuity.AverageAnnualNet))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		subtitle,
		"",
		tuistyles.BorderStyle.Render(body),
		tuistyles.InfoStyle.Render(totals),
		"",
		tuistyles.HelpDescStyle.Render(help),
	)
}

// chart plots cumulative annuity net against the lump sum net
func (m *ScheduleModel) chart() string {
	n := len(m.eval.Schedule)
	cumulative := make([]decimal.Decimal, n)
	lump := make([]decimal.Decimal, n)
	labels := make([]string, n)
	for i, y := range m.eval.Schedule {
		cumulative[i] = y.CumulativeNet
		lump[i] = m.eval.LumpSum.NetAmount
		labels[i] = strconv.Itoa(y.Year)
	}

	width := 70
	if m.width > 20 && m.width-10 < width {
		width = m.width - 10
	}
	c := components.NewASCIIChart("Cumulative Net Payout").
		AddDecimalSeries("Annuity (cumulative)", cumulative, tuistyles.ColorChartLine2).
		AddDecimalSeries("Lump sum", lump, tuistyles.ColorChartLine1).
		WithLabels(labels).
		WithSize(width, 12)
	c.XAxisLabel = "Year"
	return c.Render()
}
