package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pfennig-app/pfennig/internal/cli"
	"github.com/pfennig-app/pfennig/internal/tui/components"
	"github.com/pfennig-app/pfennig/internal/tui/theme"
)

func (a App) viewDebts(width int) string {
	t := theme.Active

	sim := a.activeSim()

	horizon := cli.FormatMonths(sim.Months)
	if sim.Capped {
		horizon = "30y+"
	}

	metrics := components.MetricCardRow([]components.Metric{
		{Label: "Strategy", Value: string(a.activeStrategy()), Note: "press s to flip"},
		{Label: "Debt-free in", Value: horizon},
		{Label: "Interest paid", Value: cli.FormatCents(sim.TotalInterestCents)},
	}, width)

	inner := components.CardInnerWidth(width)

	var order strings.Builder
	if len(a.ranked) == 0 {
		order.WriteString(lipgloss.NewStyle().Foreground(t.Green).Render("no open debts"))
	} else {
		rows := make([]components.BarRow, 0, len(a.ranked))
		for _, d := range a.ranked {
			rows = append(rows, components.BarRow{Label: d.Name, Cents: d.BalanceCents})
		}
		order.WriteString(components.HorizontalBars(rows, inner, true))
		order.WriteString("\n\n")
		for i, d := range a.ranked {
			fmt.Fprintf(&order, "%s %s %s\n",
				lipgloss.NewStyle().Foreground(t.Accent).Render(fmt.Sprintf("%d.", i+1)),
				lipgloss.NewStyle().Foreground(t.TextPrimary).Render(d.Name),
				lipgloss.NewStyle().Foreground(t.TextMuted).Render(
					fmt.Sprintf("%s apr, %s min", cli.FormatBps(d.AprBps), cli.FormatCents(d.MinPaymentCents))),
			)
		}
	}
	orderCard := components.ContentCard("Attack order", strings.TrimRight(order.String(), "\n"), width)

	chartCard := components.ContentCard("Balance timeline",
		components.BalanceChart(sim.Timeline, inner), width)

	return metrics + "\n" + orderCard + "\n" + chartCard
}
