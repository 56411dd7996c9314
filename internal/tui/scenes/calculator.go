package scenes

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/jackpot/internal/config"
	"github.com/rgehrsitz/jackpot/internal/domain"
	"github.com/rgehrsitz/jackpot/internal/tui/tuimsg"
	"github.com/rgehrsitz/jackpot/internal/tui/tuistyles"
)

// Calculator form fields, in tab order
const (
	FieldJackpot = iota
	FieldCashValue
	FieldState
	FieldStatus
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Advertised Jackpot",
	"Cash Value (%)",
	"State",
	"Filing Status",
}

// CalculatorModel is the input form for a jackpot evaluation
type CalculatorModel struct {
	tables  *domain.TaxTables
	inputs  []textinput.Model
	focused int
	editing bool
	err     error
	width   int
	height  int
}

// NewCalculatorModel creates the form with the state and filing status
// prefilled. The form starts in editing mode on the jackpot field.
func NewCalculatorModel(tables *domain.TaxTables, state, status string) *CalculatorModel {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Width = 20
		inputs[i] = ti
	}

	inputs[FieldJackpot].Placeholder = "e.g. 1.5B or $750,000,000"
	inputs[FieldJackpot].CharLimit = 24
	inputs[FieldCashValue].Placeholder = "e.g. 52"
	inputs[FieldCashValue].CharLimit = 8
	inputs[FieldState].Placeholder = "e.g. CA"
	inputs[FieldState].CharLimit = 2
	inputs[FieldState].SetValue(strings.ToUpper(state))
	inputs[FieldStatus].Placeholder = "single, mfj, mfs, hoh"
	inputs[FieldStatus].CharLimit = 24
	inputs[FieldStatus].SetValue(status)

	m := &CalculatorModel{tables: tables, inputs: inputs}
	m.StartEditing(FieldJackpot)
	return m
}

// SetSize updates the model dimensions
func (m *CalculatorModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Editing reports whether keystrokes belong to the form
func (m *CalculatorModel) Editing() bool {
	return m.editing
}

// StartEditing focuses a field
func (m *CalculatorModel) StartEditing(field int) tea.Cmd {
	m.editing = true
	m.focus(field)
	return textinput.Blink
}

// SetValue fills a field
func (m *CalculatorModel) SetValue(field int, value string) {
	if field >= 0 && field < fieldCount {
		m.inputs[field].SetValue(value)
	}
}

// Value returns a field's current text
func (m *CalculatorModel) Value(field int) string {
	if field < 0 || field >= fieldCount {
		return ""
	}
	return m.inputs[field].Value()
}

// Err returns the last validation error
func (m *CalculatorModel) Err() error {
	return m.err
}

// Input parses and validates the form
func (m *CalculatorModel) Input() (domain.Input, error) {
	jackpot, err := config.ParseAmount(m.inputs[FieldJackpot].Value())
	if err != nil {
		return domain.Input{}, err
	}
	cash, err := config.ParsePercent(m.inputs[FieldCashValue].Value())
	if err != nil {
		return domain.Input{}, err
	}
	status := m.inputs[FieldStatus].Value()
	if strings.TrimSpace(status) == "" {
		status = string(domain.FilingSingle)
	}
	in := domain.Input{
		AdvertisedJackpot: jackpot,
		CashValuePercent:  cash,
		StateCode:         m.inputs[FieldState].Value(),
		FilingStatus:      domain.FilingStatus(status),
	}
	if err := config.NewInputParser(m.tables).ValidateInput(&in); err != nil {
		return domain.Input{}, err
	}
	return in, nil
}

// Update handles messages for the calculator scene
func (m *CalculatorModel) Update(msg tea.Msg) (*CalculatorModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.editing {
			var cmd tea.Cmd
			m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if !m.editing {
		if key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter", "e"))) {
			return m, m.StartEditing(m.focused)
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("tab", "down"))):
		m.focus((m.focused + 1) % fieldCount)
		return m, nil

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("shift+tab", "up"))):
		m.focus((m.focused + fieldCount - 1) % fieldCount)
		return m, nil

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("esc"))):
		m.stopEditing()
		return m, nil

	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
		return m, m.submit()
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m *CalculatorModel) submit() tea.Cmd {
	in, err := m.Input()
	if err != nil {
		m.err = err
		return nil
	}
	m.err = nil
	m.stopEditing()
	return func() tea.Msg {
		return tuimsg.EvaluateRequestedMsg{Input: in}
	}
}

func (m *CalculatorModel) focus(field int) {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focused = field
	m.inputs[field].Focus()
}

func (m *CalculatorModel) stopEditing() {
	m.editing = false
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

// View renders the calculator scene
func (m *CalculatorModel) View() string {
	labelStyle := tuistyles.ParameterLabelStyle.Width(22)

	rows := make([]string, 0, fieldCount)
	for i, ti := range m.inputs {
		label := fieldLabels[i]
		style := labelStyle
		if m.editing && i == m.focused {
			style = style.Foreground(tuistyles.ColorAccent)
			label = "› " + label
		} else {
			label = "  " + label
		}
		rows = append(rows, style.Render(label)+ti.View())
	}

	form := tuistyles.BorderStyle.Render(strings.Join(rows, "\n\n"))
	if m.editing {
		form = tuistyles.ActiveBorderStyle.Render(strings.Join(rows, "\n\n"))
	}

	sections := []string{
		tuistyles.TitleStyle.Render("Lump Sum vs. Annuity"),
		tuistyles.SubtitleStyle.Render("Enter the advertised jackpot and its cash value"),
		"",
		form,
	}
	if m.err != nil {
		sections = append(sections, "", tuistyles.ErrorStyle.Render(m.err.Error()))
	}

	help := "tab/↑↓ move • enter calculate • esc done editing"
	if !m.editing {
		help = "enter/e edit • s pick state"
	}
	sections = append(sections, "", tuistyles.HelpDescStyle.Render(help))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
