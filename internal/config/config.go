// Package config reads and writes the pfennig settings file and normalizes
// its user-shaped values into the engine's integer-only model. Amounts and
// rates in the file may be strings ("$1,234.56", "22.99%") or plain numbers;
// the money codec absorbs the difference.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/pfennig-app/pfennig/internal/model"
	"github.com/pfennig-app/pfennig/internal/money"
)

// Config is the on-disk settings shape.
type Config struct {
	Budget     BudgetConfig     `toml:"budget"`
	Pay        PayConfig        `toml:"pay"`
	Fire       FireConfig       `toml:"fire"`
	Appearance AppearanceConfig `toml:"appearance"`

	Categories  []CategoryConfig   `toml:"category,omitempty"`
	Debts       []DebtConfig       `toml:"debt,omitempty"`
	Income      []IncomeConfig     `toml:"income,omitempty"`
	Goals       []GoalConfig       `toml:"goal,omitempty"`
	Investments []InvestmentConfig `toml:"investment,omitempty"`
}

// BudgetConfig holds the weekly cash-flow settings.
type BudgetConfig struct {
	WeeklyAllowance money.Amount  `toml:"weekly_allowance,omitempty"`
	EmergencyFloor  money.Amount  `toml:"emergency_floor,omitempty"`
	DefaultApr      money.Percent `toml:"default_apr,omitempty"`
}

// PayConfig holds paycheck cadence settings.
type PayConfig struct {
	Frequency string       `toml:"frequency,omitempty"`
	Weekday   string       `toml:"weekday,omitempty"`
	Paycheck  money.Amount `toml:"paycheck,omitempty"`
}

// FireConfig holds projection assumption overrides.
type FireConfig struct {
	SafeWithdrawal money.Percent `toml:"safe_withdrawal,omitempty"`
	ExpectedReturn money.Percent `toml:"expected_return,omitempty"`
	Inflation      money.Percent `toml:"inflation,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// CategoryConfig is a named monthly budget line.
type CategoryConfig struct {
	Name    string       `toml:"name"`
	Monthly money.Amount `toml:"monthly"`
}

// DebtConfig is a non-card debt entry.
type DebtConfig struct {
	Name    string        `toml:"name"`
	Balance money.Amount  `toml:"balance"`
	Apr     money.Percent `toml:"apr,omitempty"`
	Minimum money.Amount  `toml:"minimum,omitempty"`
	DueDay  int           `toml:"due_day,omitempty"`
}

// IncomeConfig is a recurring income stream.
type IncomeConfig struct {
	Name      string       `toml:"name"`
	Amount    money.Amount `toml:"amount"`
	Frequency string       `toml:"frequency,omitempty"`
}

// GoalConfig is a savings goal.
type GoalConfig struct {
	Name   string       `toml:"name"`
	Target money.Amount `toml:"target"`
	Saved  money.Amount `toml:"saved,omitempty"`
}

// InvestmentConfig is a manually tracked investment balance.
type InvestmentConfig struct {
	Name    string       `toml:"name"`
	Balance money.Amount `toml:"balance"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Pay: PayConfig{
			Frequency: string(model.PayBiweekly),
			Weekday:   "friday",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pfennig")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "pfennig")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "pfennig")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "pfennig")
}

// SnapshotDBPath returns the path to the snapshot history database.
func SnapshotDBPath() string {
	return filepath.Join(DataDir(), "pfennig.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads a config file from an explicit path.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// Normalize converts the on-disk shape into the engine's integer-only
// model. Missing fields come through as zeros, which the engine treats as
// neutral values.
func (c Config) Normalize() model.FinancialConfig {
	out := model.FinancialConfig{
		WeeklyAllowanceCents: c.Budget.WeeklyAllowance.Cents(),
		EmergencyFloorCents:  c.Budget.EmergencyFloor.Cents(),
		DefaultAprBps:        c.Budget.DefaultApr.Bps(),
		PayFrequency:         model.PayFrequency(c.Pay.Frequency),
		PaydayWeekday:        c.Pay.Weekday,
		PaycheckCents:        c.Pay.Paycheck.Cents(),
		SafeWithdrawalBps:    c.Fire.SafeWithdrawal.Bps(),
		ExpectedReturnBps:    c.Fire.ExpectedReturn.Bps(),
		InflationBps:         c.Fire.Inflation.Bps(),
	}

	for _, cat := range c.Categories {
		out.BudgetCategories = append(out.BudgetCategories, model.BudgetCategory{
			Name:         cat.Name,
			MonthlyCents: cat.Monthly.Cents(),
		})
	}
	for _, d := range c.Debts {
		out.Debts = append(out.Debts, model.NonCardDebt{
			ID:              d.Name,
			Name:            d.Name,
			BalanceCents:    d.Balance.Cents(),
			AprBps:          d.Apr.Bps(),
			MinPaymentCents: d.Minimum.Cents(),
			DueDay:          d.DueDay,
		})
	}
	for _, src := range c.Income {
		out.IncomeSources = append(out.IncomeSources, model.IncomeSource{
			Name:        src.Name,
			AmountCents: src.Amount.Cents(),
			Frequency:   model.PayFrequency(src.Frequency),
		})
	}
	for _, g := range c.Goals {
		out.SavingsGoals = append(out.SavingsGoals, model.SavingsGoal{
			Name:        g.Name,
			TargetCents: g.Target.Cents(),
			SavedCents:  g.Saved.Cents(),
		})
	}
	for _, inv := range c.Investments {
		out.InvestmentAccounts = append(out.InvestmentAccounts, model.InvestmentAccount{
			Name:         inv.Name,
			BalanceCents: inv.Balance.Cents(),
		})
	}
	return out
}
