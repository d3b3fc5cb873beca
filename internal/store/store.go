// Package store keeps the history of cash snapshots in SQLite. The engine
// itself is stateless; the store only exists so the dashboard and the
// snapshot commands can show trends across weeks.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/pfennig-app/pfennig/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store provides SQLite-backed snapshot history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the snapshot database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening snapshot db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the snapshot database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Entry pairs a stored snapshot with its identity row.
type Entry struct {
	ID      string
	SavedAt time.Time
	model.Snapshot
}

// SaveSnapshot stores a snapshot and returns its generated id.
func (s *Store) SaveSnapshot(snap model.Snapshot) (string, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)

	takenAt := snap.TakenAt
	if takenAt.IsZero() {
		takenAt = time.Now()
	}

	_, err = tx.Exec(`INSERT INTO snapshots
		(snapshot_id, taken_at, checking_cents, savings_cents, market_value_cents, saved_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, takenAt.UTC().Format(time.RFC3339),
		snap.CheckingCents, snap.SavingsCents, snap.MarketValueCents, now,
	)
	if err != nil {
		return "", err
	}

	for _, c := range snap.Cards {
		var promo any
		if c.PromoExpires != nil {
			promo = c.PromoExpires.UTC().Format(time.RFC3339)
		}
		_, err = tx.Exec(`INSERT INTO snapshot_cards
			(snapshot_id, card_id, name, balance_cents, apr_bps, min_payment_cents, due_day, promo_expires)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, c.ID, c.Name, c.BalanceCents, c.AprBps, c.MinPaymentCents, c.DueDay, promo,
		)
		if err != nil {
			return "", err
		}
	}

	for _, r := range snap.Renewals {
		cancelled := 0
		if r.Cancelled {
			cancelled = 1
		}
		_, err = tx.Exec(`INSERT INTO snapshot_renewals
			(snapshot_id, name, amount_cents, next_due, interval_count, interval_unit, charged_to_card, cancelled)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, r.Name, r.AmountCents, r.NextDue.UTC().Format(time.RFC3339),
			r.IntervalCount, r.IntervalUnit, r.ChargedToCard, cancelled,
		)
		if err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// LoadLatest returns the most recently taken snapshot, or sql.ErrNoRows
// when the store is empty.
func (s *Store) LoadLatest() (Entry, error) {
	row := s.db.QueryRow(`SELECT snapshot_id, taken_at, checking_cents, savings_cents, market_value_cents, saved_at
		FROM snapshots ORDER BY taken_at DESC, saved_at DESC LIMIT 1`)
	return s.scanEntry(row)
}

// Load returns one snapshot by id.
func (s *Store) Load(id string) (Entry, error) {
	row := s.db.QueryRow(`SELECT snapshot_id, taken_at, checking_cents, savings_cents, market_value_cents, saved_at
		FROM snapshots WHERE snapshot_id = ?`, id)
	return s.scanEntry(row)
}

func (s *Store) scanEntry(row *sql.Row) (Entry, error) {
	var e Entry
	var takenStr, savedStr string
	err := row.Scan(&e.ID, &takenStr, &e.CheckingCents, &e.SavingsCents, &e.MarketValueCents, &savedStr)
	if err != nil {
		return Entry{}, err
	}
	e.TakenAt, _ = time.Parse(time.RFC3339, takenStr)
	e.SavedAt, _ = time.Parse(time.RFC3339, savedStr)

	if err := s.loadCards(&e); err != nil {
		return Entry{}, err
	}
	if err := s.loadRenewals(&e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *Store) loadCards(e *Entry) error {
	rows, err := s.db.Query(`SELECT card_id, name, balance_cents, apr_bps, min_payment_cents, due_day, promo_expires
		FROM snapshot_cards WHERE snapshot_id = ? ORDER BY name`, e.ID)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var c model.Card
		var promo sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &c.BalanceCents, &c.AprBps, &c.MinPaymentCents, &c.DueDay, &promo); err != nil {
			return err
		}
		if promo.Valid && promo.String != "" {
			if t, err := time.Parse(time.RFC3339, promo.String); err == nil {
				c.PromoExpires = &t
			}
		}
		e.Cards = append(e.Cards, c)
	}
	return rows.Err()
}

func (s *Store) loadRenewals(e *Entry) error {
	rows, err := s.db.Query(`SELECT name, amount_cents, next_due, interval_count, interval_unit, charged_to_card, cancelled
		FROM snapshot_renewals WHERE snapshot_id = ? ORDER BY name`, e.ID)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var r model.Renewal
		var dueStr string
		var charged sql.NullString
		var cancelled int
		if err := rows.Scan(&r.Name, &r.AmountCents, &dueStr, &r.IntervalCount, &r.IntervalUnit, &charged, &cancelled); err != nil {
			return err
		}
		r.NextDue, _ = time.Parse(time.RFC3339, dueStr)
		if charged.Valid {
			r.ChargedToCard = charged.String
		}
		r.Cancelled = cancelled != 0
		e.Renewals = append(e.Renewals, r)
	}
	return rows.Err()
}

// ListEntry is a single row of snapshot history without its cards and
// renewals loaded.
type ListEntry struct {
	ID               string
	TakenAt          time.Time
	CheckingCents    int64
	SavingsCents     int64
	MarketValueCents int64
	CardCount        int
}

// List returns snapshot history, newest first, capped at limit (0 = all).
func (s *Store) List(limit int) ([]ListEntry, error) {
	q := `SELECT s.snapshot_id, s.taken_at, s.checking_cents, s.savings_cents, s.market_value_cents,
		(SELECT COUNT(*) FROM snapshot_cards c WHERE c.snapshot_id = s.snapshot_id)
		FROM snapshots s ORDER BY s.taken_at DESC, s.saved_at DESC`
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []ListEntry
	for rows.Next() {
		var le ListEntry
		var takenStr string
		if err := rows.Scan(&le.ID, &takenStr, &le.CheckingCents, &le.SavingsCents, &le.MarketValueCents, &le.CardCount); err != nil {
			return nil, err
		}
		le.TakenAt, _ = time.Parse(time.RFC3339, takenStr)
		out = append(out, le)
	}
	return out, rows.Err()
}

// Delete removes a snapshot and its associated rows.
func (s *Store) Delete(id string) error {
	_, err := s.db.Exec("DELETE FROM snapshots WHERE snapshot_id = ?", id)
	return err
}

// Count returns the number of stored snapshots.
func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&count)
	return count, err
}
