package scenes

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/jackpot/internal/compare"
	"github.com/rgehrsitz/jackpot/internal/output"
	"github.com/rgehrsitz/jackpot/internal/tui/components"
	"github.com/rgehrsitz/jackpot/internal/tui/tuimsg"
	"github.com/rgehrsitz/jackpot/internal/tui/tuistyles"
)

// CompareSort orders the comparison rows
type CompareSort int

const (
	SortByName CompareSort = iota
	SortByLumpSum
)

// CompareModel shows the current jackpot evaluated in every lottery state
type CompareModel struct {
	set    *compare.ComparisonSet
	table  table.Model
	sortBy CompareSort
	width  int
	height int
}

// NewCompareModel creates a new compare scene model
func NewCompareModel() *CompareModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "State", Width: 18},
			{Title: "Rate", Width: 7},
			{Title: "Lump Sum Net", Width: 15},
			{Title: "vs. Base", Width: 14},
			{Title: "Annuity Net", Width: 15},
			{Title: "vs. Base", Width: 14},
		}),
		table.WithFocused(true),
		table.WithHeight(14),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(tuistyles.ColorPrimary).Bold(true)
	styles.Selected = styles.Selected.
		Foreground(tuistyles.ColorBackground).
		Background(tuistyles.ColorAccent)
	t.SetStyles(styles)

	return &CompareModel{table: t}
}

// SetComparison loads a comparison set
func (m *CompareModel) SetComparison(set *compare.ComparisonSet) {
	m.set = set
	m.refresh()
	m.table.GotoTop()
}

// Clear drops a stale comparison after the input changes
func (m *CompareModel) Clear() {
	m.set = nil
	m.table.SetRows(nil)
}

// HasComparison reports whether a comparison is loaded
func (m *CompareModel) HasComparison() bool {
	return m.set != nil
}

// SetSize updates the scene dimensions
func (m *CompareModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	if h := height - 16; h > 5 {
		m.table.SetHeight(h)
	}
}

// Update handles messages for the compare scene
func (m *CompareModel) Update(msg tea.Msg) (*CompareModel, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
			if m.set == nil {
				return m, func() tea.Msg { return tuimsg.CompareRequestedMsg{} }
			}
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("o"))):
			if m.sortBy == SortByName {
				m.sortBy = SortByLumpSum
			} else {
				m.sortBy = SortByName
			}
			m.refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// SortedAlternatives returns the alternatives in the current sort order
func (m *CompareModel) SortedAlternatives() []compare.ComparisonResult {
	if m.set == nil {
		return nil
	}
	alts := append([]compare.ComparisonResult(nil), m.set.AlternativeResults...)
	switch m.sortBy {
	case SortByLumpSum:
		sort.SliceStable(alts, func(i, j int) bool {
			return alts[i].LumpSumNet.GreaterThan(alts[j].LumpSumNet)
		})
	default:
		sort.SliceStable(alts, func(i, j int) bool {
			return alts[i].StateName < alts[j].StateName
		})
	}
	return alts
}

func (m *CompareModel) refresh() {
	if m.set == nil {
		m.table.SetRows(nil)
		return
	}
	alts := m.SortedAlternatives()
	rows := make([]table.Row, 0, len(alts))
	for _, alt := range alts {
		rows = append(rows, table.Row{
			alt.StateName,
			rateLabel(alt),
			tuistyles.FormatCurrency(alt.LumpSumNet),
			signedCurrency(alt.LumpSumDiffFromBase),
			tuistyles.FormatCurrency(alt.AnnuityNet),
			signedCurrency(alt.AnnuityDiffFromBase),
		})
	}
	m.table.SetRows(rows)
}

func rateLabel(r compare.ComparisonResult) string {
	if r.StateRate.IsZero() {
		return "exempt"
	}
	return output.FormatPercentage(r.StateRate)
}

// signedCurrency renders a delta with an explicit sign
func signedCurrency(d decimal.Decimal) string {
	switch {
	case d.IsPositive():
		return "+" + tuistyles.FormatCurrency(d)
	case d.IsNegative():
		return "-" + tuistyles.FormatCurrency(d.Abs())
	}
	return tuistyles.FormatCurrency(d)
}

// View renders the compare scene
func (m *CompareModel) View() string {
	title := tuistyles.TitleStyle.Render("State Comparison")
	if m.set == nil {
		return lipgloss.JoinVertical(
			lipgloss.Left,
			title,
			"",
			"Compare the current jackpot across every state that sells tickets.",
			"",
			tuistyles.HelpDescStyle.Render("enter run comparison"),
		)
	}

	base := m.set.BaseResult
	baseCards := components.MetricGrid([]*components.MetricCard{
		components.NewMoneyCard("Base: "+base.StateName+" lump sum", base.LumpSumNet).WithWidth(34),
		components.NewMoneyCard("Base: "+base.StateName+" annuity", base.AnnuityNet).WithWidth(34),
	}, 2)

	var recs string
	for _, r := range m.set.Recommendations {
		recs += "• " + r + "\n"
	}

	sortLabel := "name"
	if m.sortBy == SortByLumpSum {
		sortLabel = "lump sum net"
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		tuistyles.SubtitleStyle.Render(fmt.Sprintf("%d states • sorted by %s", len(m.set.AlternativeResults), sortLabel)),
		"",
		baseCards,
		m.table.View(),
		"",
		tuistyles.InfoStyle.Render(recs),
		tuistyles.HelpDescStyle.Render("↑↓ scroll • o toggle sort"),
	)
}
