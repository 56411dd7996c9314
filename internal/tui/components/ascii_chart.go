package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/jackpot/internal/tui/tuistyles"
)

// DataSeries is a single line in a chart
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart draws one or more series as a line chart
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Labels     []string // x-axis labels
	Width      int
	Height     int
	ShowLegend bool
	XAxisLabel string
	// FormatY renders y-axis tick values; defaults to short dollars
	FormatY func(float64) string
}

// NewASCIIChart creates a new chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:      title,
		Width:      60,
		Height:     12,
		ShowLegend: true,
		FormatY:    formatChartDollars,
	}
}

// AddSeries adds a data series to the chart
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{Name: name, Points: points, Color: color})
	return c
}

// AddDecimalSeries adds a series of decimal amounts
func (c *ASCIIChart) AddDecimalSeries(name string, points []decimal.Decimal, color lipgloss.Color) *ASCIIChart {
	floats := make([]float64, len(points))
	for i, p := range points {
		floats[i] = p.InexactFloat64()
	}
	return c.AddSeries(name, floats, color)
}

// WithLabels sets the x-axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// WithPercentAxis formats y-axis ticks as percentages of a fraction
func (c *ASCIIChart) WithPercentAxis() *ASCIIChart {
	c.FormatY = func(v float64) string { return fmt.Sprintf("%.2f%%", v*100) }
	return c
}

// Render returns the styled chart
func (c *ASCIIChart) Render() string {
	if len(c.Series) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}

	var content strings.Builder
	if c.Title != "" {
		content.WriteString(tuistyles.TitleStyle.Render(c.Title))
		content.WriteString("\n\n")
	}

	lo, hi := c.bounds()
	content.WriteString(c.renderGrid(lo, hi))

	if c.XAxisLabel != "" {
		content.WriteString("\n")
		content.WriteString(tuistyles.SubtitleStyle.Render(c.XAxisLabel))
	}
	if c.ShowLegend && len(c.Series) > 1 {
		content.WriteString("\n\n")
		content.WriteString(c.renderLegend())
	}
	return content.String()
}

// bounds returns the padded min and max across every series
func (c *ASCIIChart) bounds() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
		}
	}
	if math.IsInf(lo, 0) {
		return 0, 1
	}
	if lo == hi {
		// flat series still get a visible band
		return lo - 1, hi + 1
	}
	pad := (hi - lo) * 0.1
	return lo - pad, hi + pad
}

func (c *ASCIIChart) project(i, n int, v, lo, hi float64, plotWidth int) (int, int) {
	x := 0
	if n > 1 {
		x = int(float64(i) / float64(n-1) * float64(plotWidth-1))
	}
	y := c.Height - 1 - int((v-lo)/(hi-lo)*float64(c.Height-1))
	return x, y
}

func (c *ASCIIChart) renderGrid(lo, hi float64) string {
	const axisWidth = 12
	plotWidth := c.Width - axisWidth
	if plotWidth < 2 {
		plotWidth = 2
	}

	grid := make([][]rune, c.Height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", plotWidth))
	}

	for idx, s := range c.Series {
		ch := seriesChar(idx)
		for i, v := range s.Points {
			x, y := c.project(i, len(s.Points), v, lo, hi, plotWidth)
			if i > 0 {
				px, py := c.project(i-1, len(s.Points), s.Points[i-1], lo, hi, plotWidth)
				drawLine(grid, px, py, x, y, ch)
			}
			if y >= 0 && y < c.Height && x >= 0 && x < plotWidth {
				grid[y][x] = ch
			}
		}
	}

	axisStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted).
		Width(axisWidth).
		Align(lipgloss.Right)

	var out strings.Builder
	for i, row := range grid {
		tick := hi - float64(i)/float64(max(c.Height-1, 1))*(hi-lo)
		out.WriteString(axisStyle.Render(c.FormatY(tick)))
		out.WriteString(" │ ")
		out.WriteString(c.colourRow(row))
		out.WriteString("\n")
	}
	out.WriteString(strings.Repeat(" ", axisWidth))
	out.WriteString(" └")
	out.WriteString(strings.Repeat("─", plotWidth))

	if len(c.Labels) > 0 {
		out.WriteString("\n")
		out.WriteString(c.renderXAxisLabels(axisWidth, plotWidth))
	}
	return out.String()
}

// colourRow renders each series glyph in its series colour
func (c *ASCIIChart) colourRow(row []rune) string {
	var sb strings.Builder
	for _, r := range row {
		idx := seriesIndex(r)
		if idx < 0 || idx >= len(c.Series) {
			sb.WriteRune(r)
			continue
		}
		sb.WriteString(lipgloss.NewStyle().Foreground(c.Series[idx].Color).Render(string(r)))
	}
	return sb.String()
}

var seriesChars = []rune{'●', '■', '▲', '♦'}

func seriesChar(index int) rune {
	return seriesChars[index%len(seriesChars)]
}

func seriesIndex(r rune) int {
	for i, ch := range seriesChars {
		if ch == r {
			return i
		}
	}
	return -1
}

// drawLine connects two points using Bresenham's algorithm
func drawLine(grid [][]rune, x0, y0, x1, y1 int, ch rune) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for x, y := x0, y0; ; {
		if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) && grid[y][x] == ' ' {
			grid[y][x] = ch
		}
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// renderXAxisLabels spreads up to five labels across the plot width
func (c *ASCIIChart) renderXAxisLabels(axisWidth, plotWidth int) string {
	const maxLabels = 5
	step := len(c.Labels) / maxLabels
	if step == 0 {
		step = 1
	}
	slot := plotWidth / maxLabels

	var out strings.Builder
	out.WriteString(strings.Repeat(" ", axisWidth+3))
	for i := 0; i < len(c.Labels); i += step {
		label := c.Labels[i]
		out.WriteString(label)
		if pad := slot - len(label); pad > 0 {
			out.WriteString(strings.Repeat(" ", pad))
		}
	}
	return tuistyles.HelpDescStyle.Render(out.String())
}

func (c *ASCIIChart) renderLegend() string {
	items := make([]string, 0, len(c.Series))
	for i, s := range c.Series {
		symbol := lipgloss.NewStyle().Foreground(s.Color).Render(string(seriesChar(i)))
		items = append(items, symbol+" "+s.Name)
	}
	return tuistyles.HelpDescStyle.Render("Legend: " + strings.Join(items, " • "))
}

// formatChartDollars formats a y-axis dollar tick
func formatChartDollars(value float64) string {
	switch {
	case math.Abs(value) >= 1e9:
		return fmt.Sprintf("$%.2fB", value/1e9)
	case math.Abs(value) >= 1e6:
		return fmt.Sprintf("$%.0fM", value/1e6)
	case math.Abs(value) >= 1e3:
		return fmt.Sprintf("$%.0fK", value/1e3)
	}
	return fmt.Sprintf("$%.0f", value)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
