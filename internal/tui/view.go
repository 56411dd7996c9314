package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/jackpot/internal/output"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.loading {
		return m.renderLoading()
	}

	if m.err != nil {
		return m.renderError()
	}

	var content string
	switch m.currentScene {
	case SceneCalculator:
		content = m.calculatorModel.View()
	case SceneResults:
		content = m.resultsModel.View()
	case SceneSchedule:
		content = m.scheduleModel.View()
	case SceneCompare:
		content = m.compareModel.View()
	case SceneSensitivity:
		content = m.sensitivityModel.View()
	case SceneStates:
		content = m.statesModel.View()
	case SceneHelp:
		content = m.renderHelp()
	default:
		content = "Unknown scene"
	}

	return m.renderApp(content)
}

// renderApp wraps content with title bar, status bar, and main container
func (m Model) renderApp(content string) string {
	titleBar := m.renderTitleBar()
	statusBar := m.renderStatusBar()

	contentHeight := m.height - 4 // Title (2) + status (1) + padding (1)

	contentContainer := lipgloss.NewStyle().
		Height(max(contentHeight, 0)).
		Render(content)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleBar,
		contentContainer,
		statusBar,
	)
}

// renderTitleBar renders the application title and breadcrumb
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("Jackpot - Lump Sum vs. Annuity")

	breadcrumb := m.currentScene.String()
	if m.evaluation != nil {
		breadcrumb = fmt.Sprintf("%s / %s jackpot in %s",
			m.currentScene.String(),
			output.FormatCurrency(m.evaluation.Input.AdvertisedJackpot),
			m.evaluation.StateName)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		SubtitleStyle.Render(breadcrumb),
	)
}

// renderStatusBar renders the bottom status bar with keyboard shortcuts
func (m Model) renderStatusBar() string {
	if m.currentScene == SceneCalculator && m.calculatorModel.Editing() {
		return StatusBarStyle.Width(m.width).Render(
			strings.Join([]string{
				formatShortcut("enter", "calculate"),
				formatShortcut("esc", "stop editing"),
				formatShortcut("ctrl+c", "quit"),
			}, " • "))
	}

	shortcuts := []string{
		formatShortcut("i", "input"),
		formatShortcut("r", "results"),
		formatShortcut("a", "annuity"),
		formatShortcut("c", "compare"),
		formatShortcut("v", "sensitivity"),
		formatShortcut("s", "states"),
		formatShortcut("?", "help"),
		formatShortcut("q", "quit"),
	}

	return StatusBarStyle.Width(m.width).Render(strings.Join(shortcuts, " • "))
}

// formatShortcut formats a keyboard shortcut with key and description
func formatShortcut(key, desc string) string {
	return StatusKeyStyle.Render(key) + " " + desc
}

// renderLoading renders a loading message
func (m Model) renderLoading() string {
	message := m.loadingMessage
	if message == "" {
		message = "Loading..."
	}

	content := BorderStyle.Render(fmt.Sprintf("⠋ %s", message))

	return m.renderApp(content)
}

// renderError renders an error message
func (m Model) renderError() string {
	content := ErrorStyle.Render(
		fmt.Sprintf("Error: %s\n\nPress any key to continue...", m.err.Error()),
	)

	return m.renderApp(content)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	helpText := `
Jackpot - Lottery Lump Sum vs. Annuity Calculator

KEYBOARD SHORTCUTS:
  i        Calculator (enter or e to edit)
  r        Results
  a        Annuity payment schedule
  c        Compare against other states
  v        Cash value sensitivity
  s        Pick a state
  ?        Show this help
  ESC      Go back
  q/Ctrl+C Quit

CALCULATOR:
  Tab/↑↓   Move between fields
  Enter    Calculate
  Esc      Stop editing so shortcuts work again

SCENES:
  Schedule     g toggles the cumulative net chart
  Compare      enter runs the comparison, o changes sort order
  Sensitivity  ←/→ moves the cash value, enter recalculates
  States       j/k to move, enter fills the calculator
`

	return BorderStyle.Render(helpText)
}
