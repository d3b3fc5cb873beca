package store

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/pfennig-app/pfennig/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "pfennig.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testSnapshot(takenAt time.Time) model.Snapshot {
	promo := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	return model.Snapshot{
		TakenAt:          takenAt,
		CheckingCents:    245000,
		SavingsCents:     800000,
		MarketValueCents: 12500000,
		Cards: []model.Card{
			{ID: "visa", Name: "Visa", BalanceCents: 320050, AprBps: 2499, MinPaymentCents: 9500, DueDay: 15, PromoExpires: &promo},
			{ID: "store", Name: "Store card", BalanceCents: 50000, AprBps: 2899, MinPaymentCents: 2500, DueDay: 3},
		},
		Renewals: []model.Renewal{
			{Name: "Streaming", AmountCents: 1599, NextDue: time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC), IntervalCount: 1, IntervalUnit: "month"},
			{Name: "Domain", AmountCents: 1200, NextDue: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), IntervalCount: 1, IntervalUnit: "year", ChargedToCard: "visa", Cancelled: true},
		},
	}
}

func TestSaveAndLoadLatest(t *testing.T) {
	s := openTestStore(t)

	taken := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	id, err := s.SaveSnapshot(testSnapshot(taken))
	if err != nil {
		t.Fatalf("SaveSnapshot() error = %v", err)
	}
	if id == "" {
		t.Fatal("SaveSnapshot() returned empty id")
	}

	e, err := s.LoadLatest()
	if err != nil {
		t.Fatalf("LoadLatest() error = %v", err)
	}
	if e.ID != id {
		t.Errorf("id = %q, want %q", e.ID, id)
	}
	if !e.TakenAt.Equal(taken) {
		t.Errorf("TakenAt = %v, want %v", e.TakenAt, taken)
	}
	if e.CheckingCents != 245000 || e.SavingsCents != 800000 || e.MarketValueCents != 12500000 {
		t.Errorf("balances = %d/%d/%d", e.CheckingCents, e.SavingsCents, e.MarketValueCents)
	}

	if len(e.Cards) != 2 {
		t.Fatalf("cards = %d, want 2", len(e.Cards))
	}
	// Cards come back name-ordered.
	if e.Cards[1].Name != "Visa" || e.Cards[1].PromoExpires == nil {
		t.Errorf("visa row = %+v, want promo expiry preserved", e.Cards[1])
	}
	if e.Cards[0].PromoExpires != nil {
		t.Error("store card promo expiry should stay nil")
	}

	if len(e.Renewals) != 2 {
		t.Fatalf("renewals = %d, want 2", len(e.Renewals))
	}
	var domain model.Renewal
	for _, r := range e.Renewals {
		if r.Name == "Domain" {
			domain = r
		}
	}
	if domain.ChargedToCard != "visa" || !domain.Cancelled {
		t.Errorf("domain = %+v, want charged to visa and cancelled", domain)
	}
}

func TestLoadLatest_PicksNewestTakenAt(t *testing.T) {
	s := openTestStore(t)

	older := testSnapshot(time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC))
	newer := testSnapshot(time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC))
	newer.CheckingCents = 999999

	// Insert out of order to make sure ordering is by taken_at, not rowid.
	if _, err := s.SaveSnapshot(newer); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SaveSnapshot(older); err != nil {
		t.Fatal(err)
	}

	e, err := s.LoadLatest()
	if err != nil {
		t.Fatalf("LoadLatest() error = %v", err)
	}
	if e.CheckingCents != 999999 {
		t.Errorf("checking = %d, want the 2025-06-09 snapshot", e.CheckingCents)
	}
}

func TestLoadLatest_Empty(t *testing.T) {
	s := openTestStore(t)

	_, err := s.LoadLatest()
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("LoadLatest() error = %v, want sql.ErrNoRows", err)
	}
}

func TestListAndDelete(t *testing.T) {
	s := openTestStore(t)

	var ids []string
	for week := 0; week < 4; week++ {
		taken := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 7*week)
		id, err := s.SaveSnapshot(testSnapshot(taken))
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, id)
	}

	all, err := s.List(0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("List(0) = %d rows, want 4", len(all))
	}
	if all[0].ID != ids[3] {
		t.Errorf("first row = %q, want newest %q", all[0].ID, ids[3])
	}
	if all[0].CardCount != 2 {
		t.Errorf("card count = %d, want 2", all[0].CardCount)
	}

	limited, err := s.List(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 2 {
		t.Errorf("List(2) = %d rows, want 2", len(limited))
	}

	if err := s.Delete(ids[3]); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	n, err := s.Count()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("Count() = %d after delete, want 3", n)
	}

	// Deleting the snapshot must cascade to its cards.
	if _, err := s.Load(ids[3]); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("Load(deleted) error = %v, want sql.ErrNoRows", err)
	}
}
