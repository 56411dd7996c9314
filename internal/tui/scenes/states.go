package scenes

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/jackpot/internal/domain"
	"github.com/rgehrsitz/jackpot/internal/output"
	"github.com/rgehrsitz/jackpot/internal/tui/tuimsg"
	"github.com/rgehrsitz/jackpot/internal/tui/tuistyles"
)

// StatesModel is the lottery state picker
type StatesModel struct {
	states        []domain.StateOption
	selectedIndex int
	offset        int
	width         int
	height        int
}

// NewStatesModel creates a picker over the given states
func NewStatesModel(states []domain.StateOption) *StatesModel {
	return &StatesModel{states: states}
}

// SetSize updates the scene dimensions
func (m *StatesModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ensureVisible()
}

func (m *StatesModel) visibleRows() int {
	if m.height > 12 {
		return m.height - 10
	}
	return 15
}

// ensureVisible scrolls only when the cursor leaves the window
func (m *StatesModel) ensureVisible() {
	visible := m.visibleRows()
	if m.selectedIndex < m.offset {
		m.offset = m.selectedIndex
	}
	if m.selectedIndex >= m.offset+visible {
		m.offset = m.selectedIndex - visible + 1
	}
	m.offset = max(min(m.offset, len(m.states)-visible), 0)
}

// Select moves the cursor to a state code, if present
func (m *StatesModel) Select(code string) {
	code = domain.NormalizeStateCode(code)
	for i, s := range m.states {
		if s.Code == code {
			m.selectedIndex = i
			m.ensureVisible()
			return
		}
	}
}

// Selected returns the state under the cursor
func (m *StatesModel) Selected() (domain.StateOption, bool) {
	if m.selectedIndex >= 0 && m.selectedIndex < len(m.states) {
		return m.states[m.selectedIndex], true
	}
	return domain.StateOption{}, false
}

// Update handles messages for the states scene
func (m *StatesModel) Update(msg tea.Msg) (*StatesModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if m.selectedIndex > 0 {
			m.selectedIndex--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if m.selectedIndex < len(m.states)-1 {
			m.selectedIndex++
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("g", "home"))):
		m.selectedIndex = 0
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("G", "end"))):
		m.selectedIndex = max(len(m.states)-1, 0)
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		if s, ok := m.Selected(); ok {
			return m, func() tea.Msg { return tuimsg.StateSelectedMsg{Code: s.Code} }
		}
	}
	m.ensureVisible()
	return m, nil
}

// View renders the states scene
func (m *StatesModel) View() string {
	if len(m.states) == 0 {
		return "No lottery states in the tax tables."
	}

	start := m.offset
	end := min(start+m.visibleRows(), len(m.states))

	var list strings.Builder
	for i := start; i < end; i++ {
		s := m.states[i]
		line := fmt.Sprintf("%-3s %s", s.Code, s.Name)
		if i == m.selectedIndex {
			list.WriteString(tuistyles.SelectedItemStyle.Render("› " + line))
		} else {
			list.WriteString(tuistyles.UnselectedItemStyle.Render("  " + line))
		}
		list.WriteString("\n")
	}

	leftPane := tuistyles.BorderStyle.Width(34).Render(
		tuistyles.TitleStyle.Render("Lottery States") + "\n\n" + strings.TrimRight(list.String(), "\n"))

	selected, _ := m.Selected()
	rightPane := renderStateDetails(selected)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, leftPane, "  ", rightPane),
		"",
		tuistyles.HelpDescStyle.Render("↑/k up • ↓/j down • g top • G bottom • enter use state"),
	)
}

func renderStateDetails(s domain.StateOption) string {
	labelStyle := tuistyles.MetricLabelStyle.Bold(true)

	var content strings.Builder
	content.WriteString(tuistyles.TitleStyle.Render(s.Label))
	content.WriteString("\n\n")
	content.WriteString(labelStyle.Render("Code: "))
	content.WriteString(s.Code)
	content.WriteString("\n")
	content.WriteString(labelStyle.Render("Lottery winnings: "))
	if s.Taxable {
		content.WriteString("taxed at " + output.FormatPercentage(s.Rate))
	} else {
		content.WriteString(tuistyles.MetricPositiveStyle.Render("not taxed"))
	}
	content.WriteString("\n\n")
	content.WriteString(tuistyles.InfoStyle.Italic(true).Render("Press Enter to use this state"))

	return tuistyles.ActiveBorderStyle.Width(44).Render(content.String())
}
