package scenes

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/jackpot/internal/domain"
	"github.com/rgehrsitz/jackpot/internal/output"
	"github.com/rgehrsitz/jackpot/internal/tui/components"
	"github.com/rgehrsitz/jackpot/internal/tui/tuimsg"
	"github.com/rgehrsitz/jackpot/internal/tui/tuistyles"
)

// SensitivityModel sweeps the cash-value percentage. The slider picks a
// point of the sweep; enter re-runs the calculator at that percentage.
type SensitivityModel struct {
	input  *domain.Input
	points []domain.SensitivityPoint
	slider *components.ParameterSlider
	width  int
	height int
}

// NewSensitivityModel creates a new sensitivity scene model
func NewSensitivityModel() *SensitivityModel {
	return &SensitivityModel{}
}

// SetInput records the input the sweep was run for
func (m *SensitivityModel) SetInput(in domain.Input) {
	m.input = &in
}

// SetPoints loads a sweep and builds the slider over its range
func (m *SensitivityModel) SetPoints(points []domain.SensitivityPoint) {
	m.points = points
	m.slider = nil
	if len(points) == 0 {
		return
	}

	lo := points[0].CashValuePercent
	hi := points[len(points)-1].CashValuePercent
	step := decimal.NewFromInt(1)
	if len(points) > 1 {
		step = points[1].CashValuePercent.Sub(lo)
	}

	value := lo
	if m.input != nil {
		value = m.input.CashValuePercent
	}
	m.slider = components.NewParameterSlider("Cash Value", lo, lo, hi, step).
		WithUnit("%").
		WithWidth(40).
		WithDescription("Share of the advertised jackpot paid as the lump sum").
		SetFocused(true)
	m.slider.SetValue(m.snap(value))
}

// snap returns the sweep percentage nearest to pct
func (m *SensitivityModel) snap(pct decimal.Decimal) decimal.Decimal {
	best := m.points[0].CashValuePercent
	for _, p := range m.points {
		if p.CashValuePercent.Sub(pct).Abs().LessThan(best.Sub(pct).Abs()) {
			best = p.CashValuePercent
		}
	}
	return best
}

// Current returns the sweep point under the slider
func (m *SensitivityModel) Current() (domain.SensitivityPoint, bool) {
	if m.slider == nil {
		return domain.SensitivityPoint{}, false
	}
	for _, p := range m.points {
		if p.CashValuePercent.Equal(m.slider.Value) {
			return p, true
		}
	}
	return domain.SensitivityPoint{}, false
}

// SetSize updates the scene dimensions
func (m *SensitivityModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the sensitivity scene
func (m *SensitivityModel) Update(msg tea.Msg) (*SensitivityModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.slider == nil {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("left", "h"))):
		m.slider.Decrement()
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("right", "l"))):
		m.slider.Increment()
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		if m.input == nil {
			return m, nil
		}
		in := *m.input
		in.CashValuePercent = m.slider.Value
		return m, func() tea.Msg { return tuimsg.EvaluateRequestedMsg{Input: in} }
	}
	return m, nil
}

// View renders the sensitivity scene
func (m *SensitivityModel) View() string {
	if m.slider == nil {
		return renderNoResultsState()
	}

	current, _ := m.Current()
	cards := components.MetricGrid([]*components.MetricCard{
		components.NewMoneyCard("Lump Sum Net", current.LumpSumNet).WithWidth(26),
		components.NewMoneyCard("Annuity Net", current.AnnuityNet).WithWidth(26),
		components.NewMetricCard("Breakeven Rate", output.FormatPercentage(current.BreakevenRate)).WithWidth(26),
	}, 3)

	rates := make([]decimal.Decimal, len(m.points))
	labels := make([]string, len(m.points))
	for i, p := range m.points {
		rates[i] = p.BreakevenRate
		labels[i] = p.CashValuePercent.StringFixed(0) + "%"
	}
	width := 70
	if m.width > 20 && m.width-10 < width {
		width = m.width - 10
	}
	chart := components.NewASCIIChart("Breakeven Rate by Cash Value").
		AddDecimalSeries("Breakeven rate", rates, tuistyles.ColorChartLine3).
		WithLabels(labels).
		WithSize(width, 10).
		WithPercentAxis()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		tuistyles.TitleStyle.Render("Cash Value Sensitivity"),
		tuistyles.SubtitleStyle.Render(fmt.Sprintf("%d points from %s%% to %s%%",
			len(m.points),
			m.slider.Min.StringFixed(1),
			m.slider.Max.StringFixed(1))),
		"",
		m.slider.Render(),
		"",
		cards,
		"",
		chart.Render(),
		"",
		tuistyles.HelpDescStyle.Render("←/→ adjust • enter recalculate at this cash value"),
	)
}
