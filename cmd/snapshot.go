package cmd

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pfennig-app/pfennig/internal/cli"
	"github.com/pfennig-app/pfennig/internal/config"
	"github.com/pfennig-app/pfennig/internal/store"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Record and inspect weekly cash snapshots",
}

var snapshotAddCmd = &cobra.Command{
	Use:   "add <file.toml>",
	Short: "Store a snapshot from a TOML file",
	Args:  cobra.ExactArgs(1),
	RunE:  runSnapshotAdd,
}

var snapshotListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored snapshots, newest first",
	RunE:  runSnapshotList,
}

var snapshotShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show one snapshot (latest when no id given)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSnapshotShow,
}

func init() {
	snapshotCmd.AddCommand(snapshotAddCmd, snapshotListCmd, snapshotShowCmd)
	rootCmd.AddCommand(snapshotCmd)
}

func openStore() (*store.Store, error) {
	return store.Open(config.SnapshotDBPath())
}

func runSnapshotAdd(_ *cobra.Command, args []string) error {
	snap, err := config.LoadSnapshot(args[0], asOf())
	if err != nil {
		return err
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	id, err := db.SaveSnapshot(snap)
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	fmt.Printf("  stored snapshot %s (%s)\n", id[:8], cli.FormatDate(snap.TakenAt))
	return nil
}

func runSnapshotList(_ *cobra.Command, _ []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	entries, err := db.List(20)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("  no snapshots yet")
		return nil
	}

	t := cli.Table{
		Headers: []string{"ID", "Taken", "Checking", "Savings", "Cards"},
	}
	for _, e := range entries {
		t.Rows = append(t.Rows, []string{
			e.ID[:8],
			e.TakenAt.Format("2006-01-02"),
			cli.FormatCents(e.CheckingCents),
			cli.FormatCents(e.SavingsCents),
			fmt.Sprintf("%d", e.CardCount),
		})
	}
	fmt.Print(cli.RenderTable(t))
	return nil
}

func runSnapshotShow(_ *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	var entry store.Entry
	if len(args) == 1 {
		entry, err = db.Load(args[0])
	} else {
		entry, err = db.LoadLatest()
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("snapshot not found")
	}
	if err != nil {
		return err
	}

	fmt.Println(cli.RenderTitle("Snapshot " + entry.ID[:8]))
	fmt.Println()

	balances := cli.Table{
		Rows: [][]string{
			{"Taken", cli.FormatDate(entry.TakenAt)},
			{"Checking", cli.FormatCents(entry.CheckingCents)},
			{"Savings", cli.FormatCents(entry.SavingsCents)},
			{"Market value", cli.FormatCents(entry.MarketValueCents)},
		},
	}
	fmt.Print(cli.RenderTable(balances))

	if len(entry.Cards) > 0 {
		cards := cli.Table{
			Title:   "Cards",
			Headers: []string{"Name", "Balance", "APR", "Minimum", "Due day"},
		}
		for _, c := range entry.Cards {
			due := "-"
			if c.DueDay > 0 {
				due = fmt.Sprintf("%d", c.DueDay)
			}
			cards.Rows = append(cards.Rows, []string{
				c.Name,
				cli.FormatCents(c.BalanceCents),
				cli.FormatBps(c.AprBps),
				cli.FormatCents(c.MinPaymentCents),
				due,
			})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cards))
	}

	if len(entry.Renewals) > 0 {
		renewals := cli.Table{
			Title:   "Renewals",
			Headers: []string{"Name", "Amount", "Next due", "Cadence"},
		}
		for _, r := range entry.Renewals {
			cadence := fmt.Sprintf("every %d %s", r.IntervalCount, r.IntervalUnit)
			if r.Cancelled {
				cadence = "cancelled"
			}
			renewals.Rows = append(renewals.Rows, []string{
				r.Name,
				cli.FormatCents(r.AmountCents),
				r.NextDue.Format("2006-01-02"),
				cadence,
			})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(renewals))
	}

	return nil
}
