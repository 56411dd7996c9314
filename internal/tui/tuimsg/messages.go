// Package tuimsg holds the messages scenes send to the root model. It is
// separate from package tui so scenes can emit them without an import cycle.
package tuimsg

import (
	"github.com/rgehrsitz/jackpot/internal/compare"
	"github.com/rgehrsitz/jackpot/internal/domain"
)

// EvaluateRequestedMsg asks the root model to evaluate an input
type EvaluateRequestedMsg struct {
	Input domain.Input
}

// EvaluationCompleteMsg carries the result of an evaluation. Seq matches
// the request that produced it.
type EvaluationCompleteMsg struct {
	Seq        int
	Evaluation *domain.Evaluation
	Err        error
}

// CompareRequestedMsg asks for the current input to be compared across
// states. An empty list compares every lottery state.
type CompareRequestedMsg struct {
	States []string
}

// ComparisonCompleteMsg carries a state comparison
type ComparisonCompleteMsg struct {
	Set *compare.ComparisonSet
	Err error
}

// SensitivityCompleteMsg carries a cash-value sweep of Input
type SensitivityCompleteMsg struct {
	Seq    int
	Input  domain.Input
	Points []domain.SensitivityPoint
	Err    error
}

// StateSelectedMsg signals a state was picked from the state list
type StateSelectedMsg struct {
	Code string
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}
