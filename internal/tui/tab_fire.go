package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pfennig-app/pfennig/internal/cli"
	"github.com/pfennig-app/pfennig/internal/model"
	"github.com/pfennig-app/pfennig/internal/tui/components"
	"github.com/pfennig-app/pfennig/internal/tui/theme"
)

func (a App) viewFire(width int) string {
	t := theme.Active

	p := a.fireProj

	horizon := "—"
	note := ""
	if p.Status == model.FireStatusOK {
		if p.MonthsToFire == 0 {
			horizon = "now"
		} else {
			horizon = cli.FormatMonths(p.MonthsToFire)
		}
		if p.ProjectedDate != nil {
			note = p.ProjectedDate.Format("Jan 2006")
		}
	} else {
		horizon = "unreachable"
		note = p.Reason
	}

	metrics := components.MetricCardRow([]components.Metric{
		{Label: "Time to FIRE", Value: horizon, Note: note},
		{Label: "Savings rate", Value: cli.FormatBps(p.SavingsRateBps)},
		{Label: "Real return", Value: cli.FormatBps(p.RealReturnBps)},
	}, width)

	inner := components.CardInnerWidth(width)

	var flow strings.Builder
	flow.WriteString(components.HorizontalBars([]components.BarRow{
		{Label: "Income", Cents: p.AnnualIncomeCents},
		{Label: "Expenses", Cents: p.AnnualExpensesCents},
		{Label: "Savings", Cents: p.AnnualSavingsCents},
	}, inner, false))
	flowCard := components.ContentCard("Annual cash flow", flow.String(), width)

	var progress strings.Builder
	progress.WriteString(cli.RenderProgressBar(p.CurrentPortfolioCents, p.TargetPortfolioCents, inner-28))
	progress.WriteString("\n\n")
	fmt.Fprintf(&progress, "%s %s  %s %s",
		lipgloss.NewStyle().Foreground(t.TextMuted).Render("withdrawal rate:"),
		lipgloss.NewStyle().Foreground(t.TextPrimary).Render(cli.FormatBps(p.SafeWithdrawalBps)),
		lipgloss.NewStyle().Foreground(t.TextMuted).Render("nominal return:"),
		lipgloss.NewStyle().Foreground(t.TextPrimary).Render(cli.FormatBps(p.ExpectedReturnBps)),
	)
	if p.YearsToFire != nil && *p.YearsToFire > 0 {
		fmt.Fprintf(&progress, "\n%s %s",
			lipgloss.NewStyle().Foreground(t.TextMuted).Render("projected horizon:"),
			lipgloss.NewStyle().Foreground(t.Green).Bold(true).Render(cli.FormatYears(*p.YearsToFire)),
		)
	}
	progressCard := components.ContentCard("Portfolio progress", progress.String(), width)

	return metrics + "\n" + flowCard + "\n" + progressCard
}
