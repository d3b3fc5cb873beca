package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pfennig-app/pfennig/internal/cli"
	"github.com/pfennig-app/pfennig/internal/fire"
	"github.com/pfennig-app/pfennig/internal/model"
	"github.com/pfennig-app/pfennig/internal/money"
)

var flagPortfolio string

var fireCmd = &cobra.Command{
	Use:   "fire",
	Short: "Project your financial-independence date",
	Long: "Projects when invested assets can sustain annual spending at the\n" +
		"safe withdrawal rate, or explains why that point is unreachable.",
	RunE: runFire,
}

func init() {
	fireCmd.Flags().StringVar(&flagPortfolio, "portfolio", "", "Override portfolio market value (e.g. \"125,000\")")
	rootCmd.AddCommand(fireCmd)
}

func runFire(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	in := fire.Input{Config: cfg.Normalize(), AsOf: asOf()}

	// A snapshot enriches the projection with card minimums and renewals
	// but is not required.
	if snap, err := resolveSnapshot(); err == nil {
		in.Cards = snap.Cards
		in.Renewals = snap.Renewals
		in.PortfolioValueCents = snap.MarketValueCents
		in.AsOf = snap.TakenAt
	} else {
		hint("  no snapshot: projecting from config only")
	}

	if flagPortfolio != "" {
		in.PortfolioValueCents = money.ToCents(flagPortfolio)
	}

	r := fire.Project(in)

	fmt.Println(cli.RenderTitle("FIRE Projection"))
	fmt.Println()

	flow := cli.Table{
		Title: "Annual cash flow",
		Rows: [][]string{
			{"Income", cli.FormatCents(r.AnnualIncomeCents)},
			{"Expenses", cli.FormatCents(r.AnnualExpensesCents)},
			{"Savings", cli.FormatCents(r.AnnualSavingsCents)},
			{"Savings rate", cli.FormatBps(r.SavingsRateBps)},
		},
	}
	fmt.Print(cli.RenderTable(flow))
	fmt.Println()

	assumptions := cli.Table{
		Title: "Assumptions",
		Rows: [][]string{
			{"Safe withdrawal", cli.FormatBps(r.SafeWithdrawalBps)},
			{"Expected return", cli.FormatBps(r.ExpectedReturnBps)},
			{"Inflation", cli.FormatBps(r.InflationBps)},
			{"Real return", cli.FormatBps(r.RealReturnBps)},
		},
	}
	fmt.Print(cli.RenderTable(assumptions))
	fmt.Println()

	fmt.Printf("  portfolio: %s of %s target\n",
		cli.FormatCents(r.CurrentPortfolioCents), cli.FormatCents(r.TargetPortfolioCents))

	if r.Status == model.FireStatusUnreachable {
		fmt.Printf("  %s %s\n", cli.Bad("unreachable:"), r.Reason)
		return nil
	}

	switch {
	case r.MonthsToFire == 0:
		fmt.Println("  " + cli.Good("you are already there"))
	default:
		fmt.Printf("  %s %s", cli.Good(cli.FormatYears(*r.YearsToFire)), cli.Muted("("+cli.FormatMonths(r.MonthsToFire)+")"))
		if r.ProjectedDate != nil {
			fmt.Printf(" %s %s", cli.Muted("landing"), cli.FormatDate(*r.ProjectedDate))
		}
		fmt.Println()
	}

	return nil
}
