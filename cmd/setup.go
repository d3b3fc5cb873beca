package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/pfennig-app/pfennig/internal/config"
	"github.com/pfennig-app/pfennig/internal/model"
	"github.com/pfennig-app/pfennig/internal/money"
	"github.com/pfennig-app/pfennig/internal/tui/theme"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	cfg, _ := loadConfig()

	allowance := money.FromCents(cfg.Budget.WeeklyAllowance.Cents()).StringFixed(2)
	floor := money.FromCents(cfg.Budget.EmergencyFloor.Cents()).StringFixed(2)
	apr := money.FromBasisPoints(cfg.Budget.DefaultApr.Bps()).StringFixed(2)
	paycheck := money.FromCents(cfg.Pay.Paycheck.Cents()).StringFixed(2)
	frequency := cfg.Pay.Frequency
	weekday := cfg.Pay.Weekday
	if weekday == "" {
		weekday = "friday"
	}
	themeName := cfg.Appearance.Theme

	themeOptions := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOptions = append(themeOptions, huh.NewOption(t.Name, t.Name))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Weekly allowance").
				Description("Cash that stays in checking for day-to-day spending.").
				Value(&allowance),
			huh.NewInput().
				Title("Emergency floor").
				Description("Checking never drops below this.").
				Value(&floor),
			huh.NewInput().
				Title("Default card APR").
				Description("Used when a card has no APR of its own, e.g. 24.99.").
				Value(&apr),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Pay frequency").
				Options(
					huh.NewOption("weekly", string(model.PayWeekly)),
					huh.NewOption("bi-weekly", string(model.PayBiweekly)),
					huh.NewOption("semi-monthly", string(model.PaySemimonthly)),
					huh.NewOption("monthly", string(model.PayMonthly)),
				).
				Value(&frequency),
			huh.NewSelect[string]().
				Title("Payday").
				Options(
					huh.NewOption("monday", "monday"),
					huh.NewOption("tuesday", "tuesday"),
					huh.NewOption("wednesday", "wednesday"),
					huh.NewOption("thursday", "thursday"),
					huh.NewOption("friday", "friday"),
				).
				Value(&weekday),
			huh.NewInput().
				Title("Paycheck amount").
				Description("Take-home pay per check.").
				Value(&paycheck),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOptions...).
				Value(&themeName),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	cfg.Budget.WeeklyAllowance = money.Amount(money.ToCents(allowance))
	cfg.Budget.EmergencyFloor = money.Amount(money.ToCents(floor))
	cfg.Budget.DefaultApr = money.Percent(money.ToBasisPoints(apr))
	cfg.Pay.Frequency = frequency
	cfg.Pay.Weekday = weekday
	cfg.Pay.Paycheck = money.Amount(money.ToCents(paycheck))
	cfg.Appearance.Theme = themeName

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.ConfigPath())
	fmt.Println("  Add debts, income, and budget categories by editing that file.")
	fmt.Println("  Run `pfennig setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
