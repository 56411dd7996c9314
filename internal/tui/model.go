package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/jackpot/internal/calculation"
	"github.com/rgehrsitz/jackpot/internal/compare"
	"github.com/rgehrsitz/jackpot/internal/config"
	"github.com/rgehrsitz/jackpot/internal/domain"
	"github.com/rgehrsitz/jackpot/internal/tui/scenes"
	"github.com/rgehrsitz/jackpot/internal/tui/tuimsg"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	engine        *calculation.Engine
	compareEngine *compare.CompareEngine

	// Last successfully evaluated input and its evaluation
	input      *domain.Input
	evaluation *domain.Evaluation
	// seq numbers evaluate requests; replies for older requests are dropped
	seq int

	calculatorModel  *scenes.CalculatorModel
	resultsModel     *scenes.ResultsModel
	scheduleModel    *scenes.ScheduleModel
	compareModel     *scenes.CompareModel
	sensitivityModel *scenes.SensitivityModel
	statesModel      *scenes.StatesModel

	// Error state
	err error

	// Loading state
	loading        bool
	loadingMessage string
}

// NewModel creates a new application model around engine. The calculator
// is prefilled with the state and filing status from settings.
func NewModel(engine *calculation.Engine, settings config.Settings) Model {
	return Model{
		currentScene:     SceneCalculator,
		previousScene:    SceneCalculator,
		engine:           engine,
		compareEngine:    compare.NewCompareEngine(engine),
		calculatorModel:  scenes.NewCalculatorModel(engine.Tables, settings.State, settings.FilingStatus),
		resultsModel:     scenes.NewResultsModel(),
		scheduleModel:    scenes.NewScheduleModel(),
		compareModel:     scenes.NewCompareModel(),
		sensitivityModel: scenes.NewSensitivityModel(),
		statesModel:      scenes.NewStatesModel(engine.Tables.LotteryStates()),
		width:            80,
		height:           24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return nil
}

// CurrentScene returns the scene on screen
func (m Model) CurrentScene() Scene {
	return m.currentScene
}

// Evaluation returns the most recent evaluation, or nil
func (m Model) Evaluation() *domain.Evaluation {
	return m.evaluation
}

// Err returns the error on screen, if any
func (m Model) Err() error {
	return m.err
}

// evaluateCmd returns a command that evaluates in
func evaluateCmd(engine *calculation.Engine, in domain.Input, seq int) tea.Cmd {
	return func() tea.Msg {
		eval, err := engine.Evaluate(context.Background(), in)
		return tuimsg.EvaluationCompleteMsg{Seq: seq, Evaluation: eval, Err: err}
	}
}

// sensitivityCmd returns a command that sweeps the cash value for in
func sensitivityCmd(engine *calculation.Engine, in domain.Input, seq int) tea.Cmd {
	return func() tea.Msg {
		points, err := engine.CashValueSensitivity(context.Background(), in, calculation.DefaultSensitivityRange())
		return tuimsg.SensitivityCompleteMsg{Seq: seq, Input: in, Points: points, Err: err}
	}
}

// compareCmd returns a command that compares in against states
func compareCmd(ce *compare.CompareEngine, in domain.Input, states []string) tea.Cmd {
	return func() tea.Msg {
		set, err := ce.CompareStates(context.Background(), compare.CompareOptions{
			AdvertisedJackpot: in.AdvertisedJackpot,
			CashValuePercent:  in.CashValuePercent,
			FilingStatus:      in.FilingStatus,
			BaseState:         in.StateCode,
			States:            states,
		})
		return tuimsg.ComparisonCompleteMsg{Set: set, Err: err}
	}
}

// String returns a human-readable name for a scene
func (s Scene) String() string {
	switch s {
	case SceneCalculator:
		return "Calculator"
	case SceneResults:
		return "Results"
	case SceneSchedule:
		return "Schedule"
	case SceneCompare:
		return "Compare"
	case SceneSensitivity:
		return "Sensitivity"
	case SceneStates:
		return "States"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
