package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfennig-app/pfennig/internal/config"
	"github.com/pfennig-app/pfennig/internal/model"
	"github.com/pfennig-app/pfennig/internal/store"
)

// Version is stamped by the release build.
var Version = "dev"

var (
	flagConfig   string
	flagSnapshot string
	flagAsOf     string
	flagQuiet    bool
)

var rootCmd = &cobra.Command{
	Use:   "pfennig",
	Short: "Deterministic personal finance planner",
	Long: "Plan each pay cycle, pick the right debt to attack, and project\n" +
		"your FIRE date. Every number is computed in exact integer cents.",
	RunE: runPlan,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default: XDG config dir)")
	rootCmd.PersistentFlags().StringVarP(&flagSnapshot, "snapshot", "s", "", "Snapshot TOML file (default: latest stored snapshot)")
	rootCmd.PersistentFlags().StringVar(&flagAsOf, "as-of", "", "Plan as of this date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress hints and decoration")
}

// loadConfig reads the settings file, honoring --config.
func loadConfig() (config.Config, error) {
	if flagConfig != "" {
		return config.LoadFrom(flagConfig)
	}
	return config.Load()
}

// asOf resolves the effective planning date.
func asOf() time.Time {
	if t, err := time.Parse("2006-01-02", flagAsOf); err == nil {
		return t
	}
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// resolveSnapshot finds the snapshot to plan against: an explicit --snapshot
// file wins, otherwise the latest stored snapshot.
func resolveSnapshot() (model.Snapshot, error) {
	if flagSnapshot != "" {
		return config.LoadSnapshot(flagSnapshot, asOf())
	}

	db, err := store.Open(config.SnapshotDBPath())
	if err != nil {
		return model.Snapshot{}, err
	}
	defer func() { _ = db.Close() }()

	entry, err := db.LoadLatest()
	if errors.Is(err, sql.ErrNoRows) {
		return model.Snapshot{}, fmt.Errorf("no snapshots yet: run `pfennig snapshot add <file>` or pass --snapshot")
	}
	if err != nil {
		return model.Snapshot{}, err
	}

	snap := entry.Snapshot
	if flagAsOf != "" {
		snap.TakenAt = asOf()
	}
	return snap, nil
}

func hint(format string, args ...any) {
	if flagQuiet {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
