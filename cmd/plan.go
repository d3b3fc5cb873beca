package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pfennig-app/pfennig/internal/cli"
	"github.com/pfennig-app/pfennig/internal/strategy"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Funding plan for the current pay cycle",
	Long: "Shows what must stay in checking, what is due before the next\n" +
		"paycheck, and the single best debt to attack with surplus cash.",
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	snap, err := resolveSnapshot()
	if err != nil {
		return err
	}

	result := strategy.PlanCycle(cfg.Normalize(), snap)

	fmt.Println(cli.RenderTitle("Pay Cycle Plan"))
	fmt.Println()

	overview := cli.Table{
		Rows: [][]string{
			{"Checking", cli.FormatCents(snap.CheckingCents)},
			{"Savings", cli.FormatCents(snap.SavingsCents)},
			{"Floor (allowance + emergency)", cli.FormatCents(result.FloorCents)},
			{"Next payday", fmt.Sprintf("%s (%d days)", cli.FormatDate(result.NextPayday), result.CycleDays)},
		},
	}
	fmt.Print(cli.RenderTable(overview))
	fmt.Println()

	if len(result.TimeCriticalItems) > 0 {
		due := cli.Table{
			Title:   "Due before payday",
			Headers: []string{"Item", "Amount", "Due", "Kind"},
		}
		for _, item := range result.TimeCriticalItems {
			due.Rows = append(due.Rows, []string{
				item.Name,
				cli.FormatCents(item.AmountCents),
				item.Due.Format("Jan 2"),
				item.Kind,
			})
		}
		due.Rows = append(due.Rows, []string{"---"})
		due.Rows = append(due.Rows, []string{"Total", cli.FormatCents(result.TimeCriticalCents), "", ""})
		fmt.Print(cli.RenderTable(due))
		fmt.Println()
	}

	if result.IsNegativeCashFlow {
		fmt.Println("  " + cli.Bad("checking is below the floor"))
	}
	if result.RequiredTransferCents > 0 {
		fmt.Printf("  %s %s\n", cli.Warn("transfer from savings:"), cli.FormatCents(result.RequiredTransferCents))
	}

	fmt.Printf("  operational surplus: %s\n", cli.Good(cli.FormatCents(result.OperationalSurplusCents)))
	if target := result.Target; target != nil {
		fmt.Printf("  pay %s toward %s %s\n",
			cli.FormatCents(target.AmountCents), target.Name, cli.Muted("["+target.Method+"]"))
	} else {
		fmt.Println("  " + cli.Muted("no surplus to deploy this cycle"))
	}

	return nil
}
