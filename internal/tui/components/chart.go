package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pfennig-app/pfennig/internal/cli"
	"github.com/pfennig-app/pfennig/internal/model"
	"github.com/pfennig-app/pfennig/internal/tui/theme"
)

// BalanceChart renders a payoff timeline as a sparkline with start and end
// labels underneath.
func BalanceChart(timeline []model.BalancePoint, width int) string {
	t := theme.Active

	if len(timeline) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Render("no data")
	}

	values := make([]float64, 0, len(timeline))
	for _, p := range timeline {
		values = append(values, float64(p.BalanceCents))
	}

	// Downsample to the available width.
	if width > 0 && len(values) > width {
		sampled := make([]float64, width)
		for i := range sampled {
			sampled[i] = values[i*len(values)/width]
		}
		sampled[width-1] = values[len(values)-1]
		values = sampled
	}

	spark := lipgloss.NewStyle().Foreground(t.Blue).Render(cli.RenderSparkline(values))

	first := timeline[0]
	last := timeline[len(timeline)-1]
	label := fmt.Sprintf("mo %d: %s", first.Month, cli.FormatCents(first.BalanceCents))
	endLabel := fmt.Sprintf("mo %d: %s", last.Month, cli.FormatCents(last.BalanceCents))

	gap := width - len(label) - len(endLabel)
	if gap < 1 {
		gap = 1
	}
	axis := lipgloss.NewStyle().Foreground(t.TextDim).
		Render(label + strings.Repeat(" ", gap) + endLabel)

	return spark + "\n" + axis
}

// BarRow is one labeled bar in a horizontal bar chart.
type BarRow struct {
	Label string
	Cents int64
}

// HorizontalBars renders labeled horizontal bars scaled to the largest
// value. Debt balances render red, anything else green.
func HorizontalBars(rows []BarRow, width int, debt bool) string {
	t := theme.Active

	if len(rows) == 0 {
		return ""
	}

	max := rows[0].Cents
	labelWidth := len(rows[0].Label)
	for _, r := range rows[1:] {
		if r.Cents > max {
			max = r.Cents
		}
		if len(r.Label) > labelWidth {
			labelWidth = len(r.Label)
		}
	}
	if max <= 0 {
		max = 1
	}

	barColor := t.Green
	if debt {
		barColor = t.Red
	}
	barStyle := lipgloss.NewStyle().Foreground(barColor)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	barWidth := width - labelWidth - 14
	if barWidth < 5 {
		barWidth = 5
	}

	var b strings.Builder
	for _, r := range rows {
		n := int(float64(r.Cents) / float64(max) * float64(barWidth))
		if n < 0 {
			n = 0
		}
		fmt.Fprintf(&b, "%s %s %s\n",
			labelStyle.Render(fmt.Sprintf("%-*s", labelWidth, r.Label)),
			barStyle.Render(strings.Repeat("█", n)),
			valueStyle.Render(cli.FormatCents(r.Cents)),
		)
	}
	return strings.TrimRight(b.String(), "\n")
}
