package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/jackpot/internal/tui/scenes"
	"github.com/rgehrsitz/jackpot/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case NavigateMsg:
		if msg.Scene != m.currentScene {
			m.previousScene = m.currentScene
			m.currentScene = msg.Scene
		}
		return m, nil

	case QuitMsg:
		return m, tea.Quit

	case tuimsg.ErrorMsg:
		m.err = msg.Err
		m.loading = false
		return m, nil

	case tuimsg.EvaluateRequestedMsg:
		in := msg.Input
		m.seq++
		m.calculatorModel.SetValue(scenes.FieldCashValue, in.CashValuePercent.String())
		m.loading = true
		m.loadingMessage = "Calculating payouts..."
		return m, tea.Batch(evaluateCmd(m.engine, in, m.seq), sensitivityCmd(m.engine, in, m.seq))

	case tuimsg.EvaluationCompleteMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		in := msg.Evaluation.Input
		m.input = &in
		m.evaluation = msg.Evaluation
		m.resultsModel.SetEvaluation(msg.Evaluation)
		m.scheduleModel.SetEvaluation(msg.Evaluation)
		m.sensitivityModel.SetInput(in)
		// a new input invalidates any earlier comparison
		m.compareModel.Clear()
		return m, navigate(SceneResults)

	case tuimsg.SensitivityCompleteMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.sensitivityModel.SetInput(msg.Input)
		m.sensitivityModel.SetPoints(msg.Points)
		return m, nil

	case tuimsg.CompareRequestedMsg:
		if m.input == nil {
			return m, navigate(SceneCalculator)
		}
		m.loading = true
		m.loadingMessage = "Comparing states..."
		return m, compareCmd(m.compareEngine, *m.input, msg.States)

	case tuimsg.ComparisonCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.compareModel.SetComparison(msg.Set)
		return m, nil

	case tuimsg.StateSelectedMsg:
		m.calculatorModel.SetValue(scenes.FieldState, msg.Code)
		return m, tea.Batch(m.calculatorModel.StartEditing(scenes.FieldState), navigate(SceneCalculator))
	}

	return m.updateCurrentScene(msg)
}

func navigate(scene Scene) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Scene: scene} }
}

func (m Model) resize() {
	h := m.height - 4
	m.calculatorModel.SetSize(m.width, h)
	m.resultsModel.SetSize(m.width, h)
	m.scheduleModel.SetSize(m.width, h)
	m.compareModel.SetSize(m.width, h)
	m.sensitivityModel.SetSize(m.width, h)
	m.statesModel.SetSize(m.width, h)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// any key dismisses the error screen
	if m.err != nil {
		m.err = nil
		return m, nil
	}
	if m.loading {
		return m, nil
	}

	// text fields own the keyboard while editing
	if m.currentScene == SceneCalculator && m.calculatorModel.Editing() {
		return m.updateCurrentScene(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		return m, navigate(SceneHelp)
	case "esc":
		if m.currentScene != SceneCalculator {
			back := m.previousScene
			if back == m.currentScene {
				back = SceneCalculator
			}
			return m, navigate(back)
		}
	case "i":
		return m, navigate(SceneCalculator)
	case "r":
		return m, navigate(SceneResults)
	case "a":
		return m, navigate(SceneSchedule)
	case "c":
		return m, navigate(SceneCompare)
	case "v":
		return m, navigate(SceneSensitivity)
	case "s":
		return m, navigate(SceneStates)
	}

	return m.updateCurrentScene(msg)
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneCalculator:
		m.calculatorModel, cmd = m.calculatorModel.Update(msg)
	case SceneResults:
		m.resultsModel, cmd = m.resultsModel.Update(msg)
	case SceneSchedule:
		m.scheduleModel, cmd = m.scheduleModel.Update(msg)
	case SceneCompare:
		m.compareModel, cmd = m.compareModel.Update(msg)
	case SceneSensitivity:
		m.sensitivityModel, cmd = m.sensitivityModel.Update(msg)
	case SceneStates:
		m.statesModel, cmd = m.statesModel.Update(msg)
	}
	return m, cmd
}
