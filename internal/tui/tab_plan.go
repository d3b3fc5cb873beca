package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pfennig-app/pfennig/internal/cli"
	"github.com/pfennig-app/pfennig/internal/tui/components"
	"github.com/pfennig-app/pfennig/internal/tui/theme"
)

func (a App) viewPlan(width int) string {
	t := theme.Active

	cashNote := ""
	if a.plan.IsNegativeCashFlow {
		cashNote = "below floor"
	}

	metrics := components.MetricCardRow([]components.Metric{
		{Label: "Checking", Value: cli.FormatCents(a.snap.CheckingCents), Note: cashNote},
		{Label: "Savings", Value: cli.FormatCents(a.snap.SavingsCents)},
		{Label: "Floor", Value: cli.FormatCents(a.plan.FloorCents)},
		{Label: "Next payday", Value: cli.FormatDate(a.plan.NextPayday), Note: fmt.Sprintf("%d days", a.plan.CycleDays)},
	}, width)

	var b strings.Builder

	if len(a.plan.TimeCriticalItems) == 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Render("nothing due before payday"))
	} else {
		for _, item := range a.plan.TimeCriticalItems {
			kindStyle := lipgloss.NewStyle().Foreground(t.Orange)
			if item.Kind == "minimum" {
				kindStyle = lipgloss.NewStyle().Foreground(t.Yellow)
			}
			fmt.Fprintf(&b, "%s  %s  %s %s\n",
				lipgloss.NewStyle().Foreground(t.TextPrimary).Render(fmt.Sprintf("%-24s", item.Name)),
				lipgloss.NewStyle().Foreground(t.TextPrimary).Render(fmt.Sprintf("%12s", cli.FormatCents(item.AmountCents))),
				lipgloss.NewStyle().Foreground(t.TextMuted).Render(item.Due.Format("Jan 2")),
				kindStyle.Render("("+item.Kind+")"),
			)
		}
		fmt.Fprintf(&b, "\n%s %s",
			lipgloss.NewStyle().Foreground(t.TextMuted).Render("total due:"),
			lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true).Render(cli.FormatCents(a.plan.TimeCriticalCents)),
		)
	}
	dueCard := components.ContentCard("Due before payday", b.String(), width)

	var action strings.Builder
	if a.plan.RequiredTransferCents > 0 {
		fmt.Fprintf(&action, "%s %s\n",
			lipgloss.NewStyle().Foreground(t.Red).Bold(true).Render("transfer from savings:"),
			lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true).Render(cli.FormatCents(a.plan.RequiredTransferCents)),
		)
	}
	fmt.Fprintf(&action, "%s %s\n",
		lipgloss.NewStyle().Foreground(t.TextMuted).Render("operational surplus:"),
		lipgloss.NewStyle().Foreground(t.Green).Bold(true).Render(cli.FormatCents(a.plan.OperationalSurplusCents)),
	)
	if target := a.plan.Target; target != nil {
		fmt.Fprintf(&action, "%s %s %s %s",
			lipgloss.NewStyle().Foreground(t.TextMuted).Render("pay"),
			lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true).Render(cli.FormatCents(target.AmountCents)),
			lipgloss.NewStyle().Foreground(t.TextMuted).Render("toward "+target.Name),
			lipgloss.NewStyle().Foreground(t.Accent).Render("["+target.Method+"]"),
		)
	} else {
		action.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Render("no surplus to deploy this cycle"))
	}
	actionCard := components.ContentCard("This cycle", action.String(), width)

	return metrics + "\n" + dueCard + "\n" + actionCard
}
