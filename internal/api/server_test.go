package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pfennig-app/pfennig/internal/model"
)

func testConfig() model.FinancialConfig {
	return model.FinancialConfig{
		WeeklyAllowanceCents: 20000,
		EmergencyFloorCents:  100000,
		DefaultAprBps:        2200,
		PayFrequency:         model.PayBiweekly,
		PaydayWeekday:        "friday",
		SafeWithdrawalBps:    400,
		ExpectedReturnBps:    700,
		InflationBps:         300,
		IncomeSources: []model.IncomeSource{
			{Name: "Salary", AmountCents: 300000, Frequency: model.PayBiweekly},
		},
		BudgetCategories: []model.BudgetCategory{
			{Name: "Housing", MonthlyCents: 150000},
		},
		Debts: []model.NonCardDebt{
			{ID: "car", Name: "Car loan", BalanceCents: 900000, AprBps: 650, MinPaymentCents: 30000},
		},
	}
}

func testServer() *Server {
	s := NewServer(testConfig(), "test")
	s.now = func() time.Time { return time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC) }
	return s
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
}

func TestHealthz(t *testing.T) {
	h := testServer().Handler()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	decode(t, rec, &body)
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestHandlePlan(t *testing.T) {
	h := testServer().Handler()

	rec := postJSON(t, h, "/v1/plan", map[string]any{
		"as_of":    "2025-06-09",
		"checking": "2,500.00",
		"savings":  5000,
		"cards": []map[string]any{
			{"name": "Visa", "balance": "3,200.50", "apr": "24.99%", "minimum": 95, "due_day": 15},
		},
		"renewals": []map[string]any{
			{"name": "Streaming", "amount": 15.99, "next_due": "2025-06-12", "interval_count": 1, "interval_unit": "month"},
		},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Floor      json.Number `json:"floor"`
		CycleDays  int         `json:"cycle_days"`
		NextPayday string      `json:"next_payday"`
		Target     *struct {
			Name   string `json:"name"`
			Method string `json:"method"`
		} `json:"target"`
	}
	decode(t, rec, &resp)

	// floor = weekly allowance + emergency floor = $1,200
	if resp.Floor.String() != "1200" {
		t.Errorf("floor = %s, want 1200", resp.Floor)
	}
	// 2025-06-09 is a Monday; the next Friday is 4 days out.
	if resp.CycleDays != 4 || resp.NextPayday != "2025-06-13" {
		t.Errorf("cycle = %d days to %s, want 4 days to 2025-06-13", resp.CycleDays, resp.NextPayday)
	}
	if resp.Target == nil {
		t.Fatal("target = nil, want a debt target with surplus cash available")
	}
	// The car loan's balance sits under 35x its minimum, so the
	// close-to-finished override beats Visa's higher APR.
	if resp.Target.Name != "Car loan" || resp.Target.Method != "cfi-override" {
		t.Errorf("target = %q via %q, want Car loan via cfi-override", resp.Target.Name, resp.Target.Method)
	}
}

func TestHandleFire(t *testing.T) {
	h := testServer().Handler()

	rec := postJSON(t, h, "/v1/fire", map[string]any{
		"as_of":     "2025-06-09",
		"portfolio": "100,000",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Status        string      `json:"status"`
		AnnualIncome  json.Number `json:"annual_income"`
		YearsToFire   *float64    `json:"years_to_fire"`
		ProjectedDate *string     `json:"projected_date"`
	}
	decode(t, rec, &resp)

	if resp.Status != "ok" {
		t.Fatalf("status = %q, body = %s", resp.Status, rec.Body.String())
	}
	// Bi-weekly $3,000 salary annualizes to $78k.
	if resp.AnnualIncome.String() != "78000" {
		t.Errorf("annual income = %s, want 78000", resp.AnnualIncome)
	}
	if resp.YearsToFire == nil || *resp.YearsToFire <= 0 {
		t.Errorf("years = %v, want positive", resp.YearsToFire)
	}
	if resp.ProjectedDate == nil {
		t.Error("projected_date = nil, want a date")
	}
}

func TestHandlePayoff(t *testing.T) {
	h := testServer().Handler()

	rec := postJSON(t, h, "/v1/payoff", map[string]any{
		"extra_monthly": 200,
		"debts": []map[string]any{
			{"name": "Visa", "balance": 5000, "apr": 24.99, "minimum": 150},
			{"name": "Car loan", "balance": 9000, "apr": 6.5, "minimum": 300},
		},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Results []struct {
			Strategy string `json:"strategy"`
			Months   int    `json:"months"`
			Capped   bool   `json:"capped"`
		} `json:"results"`
	}
	decode(t, rec, &resp)

	if len(resp.Results) != 2 {
		t.Fatalf("results = %d, want both strategies", len(resp.Results))
	}
	if resp.Results[0].Strategy != "avalanche" || resp.Results[1].Strategy != "snowball" {
		t.Errorf("strategies = %q/%q", resp.Results[0].Strategy, resp.Results[1].Strategy)
	}
	for _, r := range resp.Results {
		if r.Capped || r.Months <= 0 {
			t.Errorf("%s: months = %d capped = %v, want finite payoff", r.Strategy, r.Months, r.Capped)
		}
	}
}

func TestHandlePayoff_DefaultsToConfigDebts(t *testing.T) {
	h := testServer().Handler()

	rec := postJSON(t, h, "/v1/payoff", map[string]any{"strategy": "avalanche"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Results []struct {
			Strategy string `json:"strategy"`
		} `json:"results"`
	}
	decode(t, rec, &resp)
	if len(resp.Results) != 1 || resp.Results[0].Strategy != "avalanche" {
		t.Errorf("results = %+v, want single avalanche run", resp.Results)
	}
}

func TestHandlePayoff_UnknownStrategy(t *testing.T) {
	h := testServer().Handler()

	rec := postJSON(t, h, "/v1/payoff", map[string]any{"strategy": "tsunami"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestBadJSONBody(t *testing.T) {
	h := testServer().Handler()

	for _, path := range []string{"/v1/plan", "/v1/fire", "/v1/payoff"} {
		req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte("{not json")))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, rec.Code)
		}
	}
}
