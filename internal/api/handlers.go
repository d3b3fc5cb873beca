package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/pfennig-app/pfennig/internal/fire"
	"github.com/pfennig-app/pfennig/internal/model"
	"github.com/pfennig-app/pfennig/internal/money"
	"github.com/pfennig-app/pfennig/internal/payoff"
	"github.com/pfennig-app/pfennig/internal/strategy"
)

// cardPayload is a card in a request body.
type cardPayload struct {
	ID           string        `json:"id,omitempty"`
	Name         string        `json:"name"`
	Balance      money.Amount  `json:"balance"`
	Apr          money.Percent `json:"apr,omitempty"`
	Minimum      money.Amount  `json:"minimum,omitempty"`
	DueDay       int           `json:"due_day,omitempty"`
	PromoExpires string        `json:"promo_expires,omitempty"`
}

func (c cardPayload) toModel() model.Card {
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
	if t, err := time.Parse("2006-01-02", c.PromoExpires); err == nil {
		card.PromoExpires = &t
	}
	return card
}

// renewalPayload is a recurring bill in a request body.
type renewalPayload struct {
	Name          string       `json:"name"`
	Amount        money.Amount `json:"amount"`
	NextDue       string       `json:"next_due"`
	IntervalCount int          `json:"interval_count,omitempty"`
	IntervalUnit  string       `json:"interval_unit,omitempty"`
	ChargedToCard string       `json:"charged_to_card,omitempty"`
	Cancelled     bool         `json:"cancelled,omitempty"`
}

func (r renewalPayload) toModel(fallback time.Time) model.Renewal {
	due := fallback
	if t, err := time.Parse("2006-01-02", r.NextDue); err == nil {
		due = t
	}
	return model.Renewal{
		Name:          r.Name,
		AmountCents:   r.Amount.Cents(),
		NextDue:       due,
		IntervalCount: r.IntervalCount,
		IntervalUnit:  r.IntervalUnit,
		ChargedToCard: r.ChargedToCard,
		Cancelled:     r.Cancelled,
	}
}

func (s *Server) parseAsOf(raw string) time.Time {
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return s.now().UTC()
}

// ─── POST /v1/plan ───────────────────────────────────────────────────────────

type planRequest struct {
	AsOf        string           `json:"as_of,omitempty"`
	Checking    money.Amount     `json:"checking"`
	Savings     money.Amount     `json:"savings"`
	MarketValue money.Amount     `json:"market_value,omitempty"`
	Cards       []cardPayload    `json:"cards,omitempty"`
	Renewals    []renewalPayload `json:"renewals,omitempty"`
}

type planItemResponse struct {
	Name   string       `json:"name"`
	Amount money.Amount `json:"amount"`
	Due    string       `json:"due"`
	Kind   string       `json:"kind"`
}

type planTargetResponse struct {
	Name   string       `json:"name"`
	Amount money.Amount `json:"amount"`
	Method string       `json:"method"`
}

type planResponse struct {
	Floor              money.Amount        `json:"floor"`
	CycleDays          int                 `json:"cycle_days"`
	NextPayday         string              `json:"next_payday"`
	TimeCritical       money.Amount        `json:"time_critical"`
	TimeCriticalItems  []planItemResponse  `json:"time_critical_items"`
	RequiredTransfer   money.Amount        `json:"required_transfer"`
	NegativeCashFlow   bool                `json:"negative_cash_flow"`
	OperationalSurplus money.Amount        `json:"operational_surplus"`
	Target             *planTargetResponse `json:"target"`
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestsTotal.WithLabelValues("plan", "error").Inc()
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	asOf := s.parseAsOf(req.AsOf)
	snap := model.Snapshot{
		TakenAt:          asOf,
		CheckingCents:    req.Checking.Cents(),
		SavingsCents:     req.Savings.Cents(),
		MarketValueCents: req.MarketValue.Cents(),
	}
	for _, c := range req.Cards {
		snap.Cards = append(snap.Cards, c.toModel())
	}
	for _, rn := range req.Renewals {
		snap.Renewals = append(snap.Renewals, rn.toModel(asOf))
	}

	start := time.Now()
	result := strategy.PlanCycle(s.cfg, snap)
	planDuration.Observe(time.Since(start).Seconds())

	resp := planResponse{
		Floor:              money.Amount(result.FloorCents),
		CycleDays:          result.CycleDays,
		NextPayday:         result.NextPayday.Format("2006-01-02"),
		TimeCritical:       money.Amount(result.TimeCriticalCents),
		RequiredTransfer:   money.Amount(result.RequiredTransferCents),
		NegativeCashFlow:   result.IsNegativeCashFlow,
		OperationalSurplus: money.Amount(result.OperationalSurplusCents),
	}
	for _, item := range result.TimeCriticalItems {
		resp.TimeCriticalItems = append(resp.TimeCriticalItems, planItemResponse{
			Name:   item.Name,
			Amount: money.Amount(item.AmountCents),
			Due:    item.Due.Format("2006-01-02"),
			Kind:   item.Kind,
		})
	}
	if result.Target != nil {
		resp.Target = &planTargetResponse{
			Name:   result.Target.Name,
			Amount: money.Amount(result.Target.AmountCents),
			Method: result.Target.Method,
		}
	}

	requestsTotal.WithLabelValues("plan", "ok").Inc()
	writeJSON(w, http.StatusOK, resp)
}

// ─── POST /v1/fire ───────────────────────────────────────────────────────────

type fireRequest struct {
	AsOf      string           `json:"as_of,omitempty"`
	Portfolio money.Amount     `json:"portfolio,omitempty"`
	Cards     []cardPayload    `json:"cards,omitempty"`
	Renewals  []renewalPayload `json:"renewals,omitempty"`
}

type fireResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`

	AnnualIncome   money.Amount `json:"annual_income"`
	AnnualExpenses money.Amount `json:"annual_expenses"`
	AnnualSavings  money.Amount `json:"annual_savings"`
	SavingsRate    string       `json:"savings_rate"`

	CurrentPortfolio money.Amount `json:"current_portfolio"`
	TargetPortfolio  money.Amount `json:"target_portfolio"`

	RealReturn string `json:"real_return"`

	YearsToFire   *float64 `json:"years_to_fire"`
	MonthsToFire  int      `json:"months_to_fire"`
	ProjectedDate *string  `json:"projected_date"`
}

func (s *Server) handleFire(w http.ResponseWriter, r *http.Request) {
	var req fireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestsTotal.WithLabelValues("fire", "error").Inc()
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	asOf := s.parseAsOf(req.AsOf)
	in := fire.Input{
		Config:              s.cfg,
		PortfolioValueCents: req.Portfolio.Cents(),
		AsOf:                asOf,
	}
	for _, c := range req.Cards {
		in.Cards = append(in.Cards, c.toModel())
	}
	for _, rn := range req.Renewals {
		in.Renewals = append(in.Renewals, rn.toModel(asOf))
	}

	result := fire.Project(in)

	resp := fireResponse{
		Status:           result.Status,
		Reason:           result.Reason,
		AnnualIncome:     money.Amount(result.AnnualIncomeCents),
		AnnualExpenses:   money.Amount(result.AnnualExpensesCents),
		AnnualSavings:    money.Amount(result.AnnualSavingsCents),
		SavingsRate:      money.FromBasisPoints(result.SavingsRateBps).StringFixed(2) + "%",
		CurrentPortfolio: money.Amount(result.CurrentPortfolioCents),
		TargetPortfolio:  money.Amount(result.TargetPortfolioCents),
		RealReturn:       money.FromBasisPoints(result.RealReturnBps).StringFixed(2) + "%",
		YearsToFire:      result.YearsToFire,
		MonthsToFire:     result.MonthsToFire,
	}
	if result.ProjectedDate != nil {
		d := result.ProjectedDate.Format("2006-01-02")
		resp.ProjectedDate = &d
	}

	requestsTotal.WithLabelValues("fire", "ok").Inc()
	writeJSON(w, http.StatusOK, resp)
}

// ─── POST /v1/payoff ─────────────────────────────────────────────────────────

type debtPayload struct {
	Name    string        `json:"name"`
	Balance money.Amount  `json:"balance"`
	Apr     money.Percent `json:"apr,omitempty"`
	Minimum money.Amount  `json:"minimum,omitempty"`
}

type payoffRequest struct {
	ExtraMonthly money.Amount  `json:"extra_monthly,omitempty"`
	Strategy     string        `json:"strategy,omitempty"`
	Debts        []debtPayload `json:"debts,omitempty"`
}

type timelinePoint struct {
	Month   int          `json:"month"`
	Balance money.Amount `json:"balance"`
}

type simResponse struct {
	Strategy      string          `json:"strategy"`
	Months        int             `json:"months"`
	Horizon       string          `json:"horizon"`
	Capped        bool            `json:"capped"`
	TotalInterest money.Amount    `json:"total_interest"`
	Timeline      []timelinePoint `json:"timeline"`
}

type payoffResponse struct {
	Results []simResponse `json:"results"`
}

func (s *Server) handlePayoff(w http.ResponseWriter, r *http.Request) {
	var req payoffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestsTotal.WithLabelValues("payoff", "error").Inc()
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var debts []model.SimDebt
	if len(req.Debts) > 0 {
		for _, d := range req.Debts {
			debts = append(debts, model.SimDebt{
				Name:            d.Name,
				BalanceCents:    d.Balance.Cents(),
				AprBps:          d.Apr.Bps(),
				MinPaymentCents: d.Minimum.Cents(),
			})
		}
	} else {
		debts = model.SimDebtsFrom(nil, s.cfg.Debts)
	}

	strategies := []payoff.Strategy{payoff.Avalanche, payoff.Snowball}
	switch req.Strategy {
	case "":
	case string(payoff.Avalanche):
		strategies = strategies[:1]
	case string(payoff.Snowball):
		strategies = strategies[1:]
	default:
		requestsTotal.WithLabelValues("payoff", "error").Inc()
		writeError(w, http.StatusBadRequest, "unknown strategy "+strconv.Quote(req.Strategy))
		return
	}

	var resp payoffResponse
	for _, st := range strategies {
		result := payoff.Simulate(debts, req.ExtraMonthly.Cents(), st)
		simulationMonths.Observe(float64(result.Months))

		sim := simResponse{
			Strategy:      result.Strategy,
			Months:        result.Months,
			Horizon:       horizonLabel(result),
			Capped:        result.Capped,
			TotalInterest: money.Amount(result.TotalInterestCents),
		}
		for _, p := range result.Timeline {
			sim.Timeline = append(sim.Timeline, timelinePoint{Month: p.Month, Balance: money.Amount(p.BalanceCents)})
		}
		resp.Results = append(resp.Results, sim)
	}

	requestsTotal.WithLabelValues("payoff", "ok").Inc()
	writeJSON(w, http.StatusOK, resp)
}

func horizonLabel(r model.SimulationResult) string {
	if r.Capped {
		return "30y+"
	}
	years := r.Months / 12
	months := r.Months % 12
	switch {
	case years == 0:
		return strconv.Itoa(months) + "mo"
	case months == 0:
		return strconv.Itoa(years) + "y"
	default:
		return strconv.Itoa(years) + "y " + strconv.Itoa(months) + "mo"
	}
}
