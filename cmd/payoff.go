package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pfennig-app/pfennig/internal/cli"
	"github.com/pfennig-app/pfennig/internal/model"
	"github.com/pfennig-app/pfennig/internal/money"
	"github.com/pfennig-app/pfennig/internal/payoff"
)

var flagExtra string

var payoffCmd = &cobra.Command{
	Use:   "payoff",
	Short: "Simulate avalanche vs snowball debt payoff",
	Long: "Amortizes every open debt month by month under both payoff\n" +
		"strategies and compares the horizons and total interest paid.",
	RunE: runPayoff,
}

func init() {
	payoffCmd.Flags().StringVarP(&flagExtra, "extra", "e", "0", "Extra monthly payment (e.g. \"250.00\")")
	rootCmd.AddCommand(payoffCmd)
}

func runPayoff(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fc := cfg.Normalize()

	var debts []model.SimDebt
	if snap, err := resolveSnapshot(); err == nil {
		debts = model.SimDebtsFrom(snap.Cards, fc.Debts)
	} else {
		hint("  no snapshot: simulating configured debts only")
		debts = model.SimDebtsFrom(nil, fc.Debts)
	}

	if len(debts) == 0 {
		fmt.Println("  " + cli.Good("no open debts"))
		return nil
	}

	extra := money.ToCents(flagExtra)

	av := payoff.Simulate(debts, extra, payoff.Avalanche)
	sn := payoff.Simulate(debts, extra, payoff.Snowball)

	fmt.Println(cli.RenderTitle("Debt Payoff"))
	fmt.Println()

	compare := cli.Table{
		Headers: []string{"Strategy", "Debt-free in", "Interest paid"},
		Rows: [][]string{
			{"avalanche", horizon(av), cli.FormatCents(av.TotalInterestCents)},
			{"snowball", horizon(sn), cli.FormatCents(sn.TotalInterestCents)},
		},
	}
	fmt.Print(cli.RenderTable(compare))
	fmt.Println()

	if !av.Capped && !sn.Capped {
		saved := sn.TotalInterestCents - av.TotalInterestCents
		if saved > 0 {
			fmt.Printf("  avalanche saves %s in interest\n", cli.Good(cli.FormatCents(saved)))
		} else {
			fmt.Println("  " + cli.Muted("both strategies cost the same here"))
		}
	} else {
		fmt.Println("  " + cli.Bad("minimum payments never cover the interest: balances grow forever"))
	}

	ranked := payoff.Rank(debts, payoff.Avalanche)
	order := cli.Table{
		Title:   "Avalanche attack order",
		Headers: []string{"#", "Debt", "Balance", "APR", "Minimum"},
	}
	for i, d := range ranked {
		order.Rows = append(order.Rows, []string{
			fmt.Sprintf("%d", i+1),
			d.Name,
			cli.FormatCents(d.BalanceCents),
			cli.FormatBps(d.AprBps),
			cli.FormatCents(d.MinPaymentCents),
		})
	}
	fmt.Print(cli.RenderTable(order))

	if len(av.Timeline) > 1 {
		values := make([]float64, 0, len(av.Timeline))
		for _, p := range av.Timeline {
			values = append(values, float64(p.BalanceCents))
		}
		fmt.Printf("\n  balance: %s\n", cli.RenderSparkline(values))
	}

	return nil
}

func horizon(r model.SimulationResult) string {
	if r.Capped {
		return "30y+"
	}
	return cli.FormatMonths(r.Months)
}
