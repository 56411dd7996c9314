package tui

// Scene represents different screens in the TUI
type Scene int

const (
	SceneCalculator Scene = iota
	SceneResults
	SceneSchedule
	SceneCompare
	SceneSensitivity
	SceneStates
	SceneHelp
)

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// QuitMsg signals the application should exit
type QuitMsg struct{}
