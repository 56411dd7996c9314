package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/jackpot/internal/tui/tuistyles"
)

// ShareBar shows how much of a gross payout is kept after taxes
type ShareBar struct {
	Label string
	Net   decimal.Decimal
	Gross decimal.Decimal
	Width int
}

// NewShareBar creates a bar for net out of gross
func NewShareBar(label string, net, gross decimal.Decimal) *ShareBar {
	return &ShareBar{
		Label: label,
		Net:   net,
		Gross: gross,
		Width: 40,
	}
}

// WithWidth sets the bar width
func (s *ShareBar) WithWidth(width int) *ShareBar {
	s.Width = width
	return s
}

// Percentage returns net as a percentage of gross
func (s *ShareBar) Percentage() float64 {
	if !s.Gross.IsPositive() {
		return 0
	}
	return s.Net.Div(s.Gross).InexactFloat64() * 100
}

// Render returns the styled bar: kept share in green, taxes in red
func (s *ShareBar) Render() string {
	var content strings.Builder

	if s.Label != "" {
		labelStyle := lipgloss.NewStyle().
			Foreground(tuistyles.ColorForeground).
			Bold(true)
		content.WriteString(labelStyle.Render(s.Label))
		content.WriteString("\n")
	}

	pct := s.Percentage()
	filled := int(float64(s.Width) * pct / 100)
	if filled < 0 {
		filled = 0
	}
	if filled > s.Width {
		filled = s.Width
	}

	keptStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorSuccess)
	taxStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorDanger)

	content.WriteString("[")
	content.WriteString(keptStyle.Render(strings.Repeat("█", filled)))
	content.WriteString(taxStyle.Render(strings.Repeat("░", s.Width-filled)))
	content.WriteString("] ")

	percentStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorPrimary).
		Bold(true)
	content.WriteString(percentStyle.Render(fmt.Sprintf("%.1f%% kept", pct)))
	return content.String()
}
