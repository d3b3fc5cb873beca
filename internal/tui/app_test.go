package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pfennig-app/pfennig/internal/model"
)

func testApp() App {
	cfg := model.FinancialConfig{
		WeeklyAllowanceCents: 20000,
		EmergencyFloorCents:  100000,
		PayFrequency:         model.PayBiweekly,
		PaydayWeekday:        "friday",
		IncomeSources: []model.IncomeSource{
			{Name: "Salary", AmountCents: 300000, Frequency: model.PayBiweekly},
		},
		BudgetCategories: []model.BudgetCategory{
			{Name: "Housing", MonthlyCents: 150000},
		},
		SafeWithdrawalBps: 400,
		ExpectedReturnBps: 700,
		InflationBps:      300,
	}
	snap := model.Snapshot{
		TakenAt:          time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC),
		CheckingCents:    250000,
		SavingsCents:     500000,
		MarketValueCents: 10000000,
		Cards: []model.Card{
			{ID: "visa", Name: "Visa", BalanceCents: 320050, AprBps: 2499, MinPaymentCents: 9500, DueDay: 15},
		},
	}
	return NewApp(cfg, snap, "flexoki-dark")
}

func TestNewApp_Precomputes(t *testing.T) {
	a := testApp()

	if a.plan.FloorCents != 120000 {
		t.Errorf("floor = %d, want 120000", a.plan.FloorCents)
	}
	if a.fireProj.Status != model.FireStatusOK {
		t.Errorf("fire status = %q (%s)", a.fireProj.Status, a.fireProj.Reason)
	}
	if a.avalanche.Months <= 0 || a.snowball.Months <= 0 {
		t.Errorf("simulations not run: avalanche %d, snowball %d", a.avalanche.Months, a.snowball.Months)
	}
	if len(a.ranked) != 1 || a.ranked[0].Name != "Visa" {
		t.Errorf("ranked = %+v", a.ranked)
	}
}

func TestUpdate_QuitAndNavigation(t *testing.T) {
	a := testApp()

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Error("q should quit")
	}

	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyTab})
	a = m.(App)
	if a.activeTab != 1 {
		t.Errorf("activeTab = %d after tab, want 1", a.activeTab)
	}

	m, _ = a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'f'}})
	a = m.(App)
	if a.activeTab != 2 {
		t.Errorf("activeTab = %d after f, want 2", a.activeTab)
	}
}

func TestView_RendersEachTab(t *testing.T) {
	a := testApp()

	m, _ := a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	a = m.(App)

	for tab, want := range map[int]string{0: "surplus", 1: "Attack order", 2: "Portfolio"} {
		a.activeTab = tab
		if out := a.View(); !strings.Contains(out, want) {
			t.Errorf("tab %d view missing %q", tab, want)
		}
	}
}

func TestView_NarrowTerminal(t *testing.T) {
	a := testApp()

	m, _ := a.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	a = m.(App)
	if out := a.View(); !strings.Contains(out, "narrow") {
		t.Errorf("narrow view = %q, want warning", out)
	}
}
