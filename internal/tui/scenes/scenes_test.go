package scenes

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/jackpot/internal/calculation"
	"github.com/rgehrsitz/jackpot/internal/compare"
	"github.com/rgehrsitz/jackpot/internal/config"
	"github.com/rgehrsitz/jackpot/internal/domain"
	"github.com/rgehrsitz/jackpot/internal/tui/tuimsg"
)

func newEngine(t *testing.T) *calculation.Engine {
	t.Helper()
	engine, err := calculation.NewEngineForProduct(config.MustDefaultRegulatoryConfig(), "powerball")
	require.NoError(t, err)
	return engine
}

func sampleInput() domain.Input {
	return domain.Input{
		AdvertisedJackpot: decimal.NewFromInt(1_000_000_000),
		CashValuePercent:  decimal.NewFromInt(52),
		StateCode:         "CA",
		FilingStatus:      domain.FilingSingle,
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestCalculatorSubmit(t *testing.T) {
	engine := newEngine(t)
	m := NewCalculatorModel(engine.Tables, "ca", "single")
	require.True(t, m.Editing())
	assert.Equal(t, "CA", m.Value(FieldState))

	m.SetValue(FieldJackpot, "$1B")
	m.SetValue(FieldCashValue, "52")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, m.Editing())

	msg, ok := cmd().(tuimsg.EvaluateRequestedMsg)
	require.True(t, ok)
	assert.True(t, msg.Input.AdvertisedJackpot.Equal(decimal.NewFromInt(1_000_000_000)))
	assert.True(t, msg.Input.CashValuePercent.Equal(decimal.NewFromInt(52)))
	assert.Equal(t, "CA", msg.Input.StateCode)
}

func TestCalculatorValidation(t *testing.T) {
	engine := newEngine(t)
	m := NewCalculatorModel(engine.Tables, "ZZ", "single")
	m.SetValue(FieldJackpot, "1B")
	m.SetValue(FieldCashValue, "52")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.True(t, m.Editing(), "form stays open on invalid input")
	require.Error(t, m.Err())
	assert.Contains(t, m.View(), m.Err().Error())
}

func TestCalculatorNavigation(t *testing.T) {
	m := NewCalculatorModel(nil, "", "")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Editing())

	// shortcuts are ignored until editing resumes
	m, _ = m.Update(keyRunes("x"))
	assert.Equal(t, "", m.Value(FieldJackpot))

	m, _ = m.Update(keyRunes("e"))
	assert.True(t, m.Editing())
	m, _ = m.Update(keyRunes("5"))
	assert.Equal(t, "5", m.Value(FieldJackpot))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m, _ = m.Update(keyRunes("4"))
	assert.Equal(t, "4", m.Value(FieldCashValue))
}

func TestResultsView(t *testing.T) {
	m := NewResultsModel()
	assert.Contains(t, m.View(), "No results to display")

	eval, err := newEngine(t).Evaluate(context.Background(), sampleInput())
	require.NoError(t, err)
	m.SetEvaluation(eval)
	m.SetSize(120, 40)

	view := m.View()
	assert.Contains(t, view, "California")
	assert.Contains(t, view, "$327,642,980")
}

func TestScheduleRows(t *testing.T) {
	eval, err := newEngine(t).Evaluate(context.Background(), sampleInput())
	require.NoError(t, err)

	rows := ScheduleRows(eval.Schedule)
	require.Len(t, rows, 30)
	assert.Equal(t, "1*", rows[0][0])
	assert.Equal(t, "2", rows[1][0])
	assert.Equal(t, "$15,051,435", rows[0][1])

	m := NewScheduleModel()
	m.SetEvaluation(eval)
	assert.False(t, m.ShowingChart())
	m, _ = m.Update(keyRunes("g"))
	assert.True(t, m.ShowingChart())
	assert.Contains(t, m.View(), "Cumulative")
}

func TestCompareScene(t *testing.T) {
	m := NewCompareModel()
	assert.False(t, m.HasComparison())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	_, ok := cmd().(tuimsg.CompareRequestedMsg)
	assert.True(t, ok)

	in := sampleInput()
	set, err := compare.NewCompareEngine(newEngine(t)).CompareStates(context.Background(), compare.CompareOptions{
		AdvertisedJackpot: in.AdvertisedJackpot,
		CashValuePercent:  in.CashValuePercent,
		FilingStatus:      in.FilingStatus,
		BaseState:         "NY",
		States:            []string{"NJ", "CA"},
	})
	require.NoError(t, err)

	m.SetComparison(set)
	require.True(t, m.HasComparison())
	alts := m.SortedAlternatives()
	require.Len(t, alts, 2)
	assert.Equal(t, "CA", alts[0].StateCode)

	// California keeps more of the lump sum than New Jersey
	m, _ = m.Update(keyRunes("o"))
	alts = m.SortedAlternatives()
	assert.Equal(t, "CA", alts[0].StateCode)
	assert.True(t, alts[0].LumpSumNet.GreaterThan(alts[1].LumpSumNet))

	m.Clear()
	assert.False(t, m.HasComparison())
}

func TestSignedCurrency(t *testing.T) {
	assert.Equal(t, "+$1,000", signedCurrency(decimal.NewFromInt(1000)))
	assert.Equal(t, "-$1,000", signedCurrency(decimal.NewFromInt(-1000)))
	assert.Equal(t, "$0", signedCurrency(decimal.Zero))
}

func TestSensitivityScene(t *testing.T) {
	engine := newEngine(t)
	m := NewSensitivityModel()
	assert.Contains(t, m.View(), "No results to display")

	in := sampleInput()
	points, err := engine.CashValueSensitivity(context.Background(), in, calculation.DefaultSensitivityRange())
	require.NoError(t, err)

	m.SetInput(in)
	m.SetPoints(points)

	current, ok := m.Current()
	require.True(t, ok)
	assert.True(t, current.CashValuePercent.Equal(decimal.NewFromInt(52)))
	assert.Equal(t, "0.022102", current.BreakevenRate.StringFixed(6))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	current, _ = m.Current()
	assert.True(t, current.CashValuePercent.Equal(decimal.NewFromInt(53)))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	msg, ok := cmd().(tuimsg.EvaluateRequestedMsg)
	require.True(t, ok)
	assert.True(t, msg.Input.CashValuePercent.Equal(decimal.NewFromInt(53)))
	assert.Equal(t, "CA", msg.Input.StateCode)

	assert.Contains(t, m.View(), "Cash Value Sensitivity")
}

func TestStatesScene(t *testing.T) {
	states := newEngine(t).Tables.LotteryStates()
	m := NewStatesModel(states)

	first, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, states[0].Code, first.Code)

	m.Select("nj")
	selected, _ := m.Selected()
	assert.Equal(t, "NJ", selected.Code)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, tuimsg.StateSelectedMsg{Code: "NJ"}, cmd())

	m, _ = m.Update(keyRunes("k"))
	prev, _ := m.Selected()
	assert.NotEqual(t, "NJ", prev.Code)

	assert.Contains(t, m.View(), "New Jersey")
}

func TestStatesSceneScrollWindow(t *testing.T) {
	states := newEngine(t).Tables.LotteryStates()
	require.Greater(t, len(states), 12)

	m := NewStatesModel(states)
	m.SetSize(100, 20) // ten visible rows
	row := func(s domain.StateOption) string { return fmt.Sprintf("%-3s %s", s.Code, s.Name) }

	m, _ = m.Update(keyRunes("G"))
	last := states[len(states)-1]
	assert.Contains(t, m.View(), row(last))

	for i := 0; i < 9; i++ {
		m, _ = m.Update(keyRunes("k"))
	}
	view := m.View()
	assert.Contains(t, view, row(last), "window must not scroll while the cursor stays inside it")
	assert.Contains(t, view, row(states[len(states)-10]))

	m, _ = m.Update(keyRunes("k"))
	view = m.View()
	assert.Contains(t, view, row(states[len(states)-11]))
	assert.NotContains(t, view, row(last))

	m, _ = m.Update(keyRunes("g"))
	assert.Contains(t, m.View(), row(states[0]))
}
