package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/pfennig-app/pfennig/internal/model"
	"github.com/pfennig-app/pfennig/internal/money"
)

// snapshotDateLayout is the date format used in snapshot files.
const snapshotDateLayout = "2006-01-02"

// SnapshotFile is the on-disk shape of a weekly cash snapshot.
type SnapshotFile struct {
	Date        string       `toml:"date,omitempty"`
	Checking    money.Amount `toml:"checking"`
	Savings     money.Amount `toml:"savings"`
	MarketValue money.Amount `toml:"market_value,omitempty"`

	Cards    []CardFile    `toml:"card,omitempty"`
	Renewals []RenewalFile `toml:"renewal,omitempty"`
}

// CardFile is a card entry in a snapshot file.
type CardFile struct {
	ID           string        `toml:"id,omitempty"`
	Name         string        `toml:"name"`
	Balance      money.Amount  `toml:"balance"`
	Apr          money.Percent `toml:"apr,omitempty"`
	Minimum      money.Amount  `toml:"minimum,omitempty"`
	DueDay       int           `toml:"due_day,omitempty"`
	PromoExpires string        `toml:"promo_expires,omitempty"`
}

// RenewalFile is a recurring bill entry in a snapshot file.
type RenewalFile struct {
	Name          string       `toml:"name"`
	Amount        money.Amount `toml:"amount"`
	NextDue       string       `toml:"next_due"`
	IntervalCount int          `toml:"interval_count,omitempty"`
	IntervalUnit  string       `toml:"interval_unit,omitempty"`
	ChargedToCard string       `toml:"charged_to_card,omitempty"`
	Cancelled     bool         `toml:"cancelled,omitempty"`
}

// LoadSnapshot reads a snapshot TOML file and normalizes it into the
// engine's model. A missing or malformed date falls back to now, matching
// the engine's tolerance for partial input; an unreadable file is still an
// error because the user explicitly named it.
func LoadSnapshot(path string, now time.Time) (model.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("reading snapshot: %w", err)
	}

	var sf SnapshotFile
	if err := toml.Unmarshal(data, &sf); err != nil {
		return model.Snapshot{}, fmt.Errorf("parsing snapshot: %w", err)
	}

	return sf.Normalize(now), nil
}

// Normalize converts the file shape into a model.Snapshot.
func (sf SnapshotFile) Normalize(now time.Time) model.Snapshot {
	snap := model.Snapshot{
		TakenAt:          parseDate(sf.Date, now.UTC()),
		CheckingCents:    sf.Checking.Cents(),
		SavingsCents:     sf.Savings.Cents(),
		MarketValueCents: sf.MarketValue.Cents(),
	}

	for _, c := range sf.Cards {
		id := c.ID
		if id == "" {
			id = c.Name
		}
		card := model.Card{
			ID:              id,
			Name:            c.Name,
			BalanceCents:    c.Balance.Cents(),
			AprBps:          c.Apr.Bps(),
			MinPaymentCents: c.Minimum.Cents(),
			DueDay:          c.DueDay,
		}
		if t, err := time.Parse(snapshotDateLayout, c.PromoExpires); err == nil {
			card.PromoExpires = &t
		}
		snap.Cards = append(snap.Cards, card)
	}

	for _, r := range sf.Renewals {
		snap.Renewals = append(snap.Renewals, model.Renewal{
			Name:          r.Name,
			AmountCents:   r.Amount.Cents(),
			NextDue:       parseDate(r.NextDue, now.UTC()),
			IntervalCount: r.IntervalCount,
			IntervalUnit:  r.IntervalUnit,
			ChargedToCard: r.ChargedToCard,
			Cancelled:     r.Cancelled,
		})
	}
	return snap
}

func parseDate(s string, fallback time.Time) time.Time {
	if t, err := time.Parse(snapshotDateLayout, s); err == nil {
		return t
	}
	return fallback
}
