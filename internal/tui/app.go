// Package tui provides the interactive Bubble Tea dashboard for pfennig.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pfennig-app/pfennig/internal/fire"
	"github.com/pfennig-app/pfennig/internal/model"
	"github.com/pfennig-app/pfennig/internal/payoff"
	"github.com/pfennig-app/pfennig/internal/strategy"
	"github.com/pfennig-app/pfennig/internal/tui/components"
	"github.com/pfennig-app/pfennig/internal/tui/theme"
)

const (
	minTerminalWidth = 70
	maxContentWidth  = 120
)

// keyMap defines the dashboard keybindings.
type keyMap struct {
	Quit     key.Binding
	NextTab  key.Binding
	PrevTab  key.Binding
	Strategy key.Binding
}

var keys = keyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
	NextTab:  key.NewBinding(key.WithKeys("tab", "right", "l")),
	PrevTab:  key.NewBinding(key.WithKeys("shift+tab", "left", "h")),
	Strategy: key.NewBinding(key.WithKeys("s")),
}

// App is the root Bubble Tea model. The engine is deterministic and the
// snapshot is fixed for the session, so everything is computed once up front
// and the update loop only handles navigation.
type App struct {
	cfg  model.FinancialConfig
	snap model.Snapshot

	plan      model.StrategyResult
	fireProj  model.FireProjectionResult
	avalanche model.SimulationResult
	snowball  model.SimulationResult
	ranked    []model.SimDebt

	showSnowball bool

	width     int
	height    int
	activeTab int
}

// NewApp creates the dashboard model with all results precomputed.
func NewApp(cfg model.FinancialConfig, snap model.Snapshot, themeName string) App {
	theme.SetActive(themeName)

	debts := model.SimDebtsFrom(snap.Cards, cfg.Debts)

	return App{
		cfg:  cfg,
		snap: snap,
		plan: strategy.PlanCycle(cfg, snap),
		fireProj: fire.Project(fire.Input{
			Config:              cfg,
			Cards:               snap.Cards,
			Renewals:            snap.Renewals,
			PortfolioValueCents: snap.MarketValueCents,
			AsOf:                snap.TakenAt,
		}),
		avalanche: payoff.Simulate(debts, 0, payoff.Avalanche),
		snowball:  payoff.Simulate(debts, 0, payoff.Snowball),
		ranked:    payoff.Rank(debts, payoff.Avalanche),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.NextTab):
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		case key.Matches(msg, keys.PrevTab):
			a.activeTab = (a.activeTab + len(components.Tabs) - 1) % len(components.Tabs)
		case key.Matches(msg, keys.Strategy):
			a.showSnowball = !a.showSnowball
			a.ranked = payoff.Rank(model.SimDebtsFrom(a.snap.Cards, a.cfg.Debts), a.activeStrategy())
		default:
			s := msg.String()
			if len(s) == 1 && s[0] >= '1' && s[0] <= '3' {
				a.activeTab = int(s[0] - '1')
			} else if len(msg.Runes) == 1 {
				if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
					a.activeTab = idx
				}
			}
		}
	}

	return a, nil
}

func (a App) activeStrategy() payoff.Strategy {
	if a.showSnowball {
		return payoff.Snowball
	}
	return payoff.Avalanche
}

func (a App) activeSim() model.SimulationResult {
	if a.showSnowball {
		return a.snowball
	}
	return a.avalanche
}

// View implements tea.Model.
func (a App) View() string {
	t := theme.Active

	if a.width == 0 {
		return "loading..."
	}
	if a.width < minTerminalWidth {
		return lipgloss.NewStyle().Foreground(t.Orange).
			Render("terminal too narrow (need 70 columns)")
	}

	width := a.width
	if width > maxContentWidth {
		width = maxContentWidth
	}

	var body string
	switch a.activeTab {
	case 0:
		body = a.viewPlan(width)
	case 1:
		body = a.viewDebts(width)
	case 2:
		body = a.viewFire(width)
	}

	header := components.RenderTabBar(a.activeTab)
	footer := lipgloss.NewStyle().Foreground(t.TextDim).
		Render(" tab/←→ switch  s strategy  q quit")

	return header + "\n\n" + body + "\n" + footer
}
