package present

import (
	"strings"

	"github.com/MrSnakeDoc/apihub/internal/domain"
	"github.com/MrSnakeDoc/apihub/internal/query"
)

// Tab is a section of the detail view.
type Tab string

const (
	TabDocs      Tab = "docs"
	TabEndpoints Tab = "endpoints"
	TabExamples  Tab = "examples"
)

// ParseTab maps a raw value to a Tab, defaulting to docs.
func ParseTab(raw string) Tab {
	switch t := Tab(strings.ToLower(strings.TrimSpace(raw))); t {
	case TabDocs, TabEndpoints, TabExamples:
		return t
	}
	return TabDocs
}

// TabState is the section selection of a detail view. Exactly one tab is
// active at any time.
type TabState struct {
	Active       Tab  `json:"activeTab"`
	ShowFullSpec bool `json:"showFullSpec"`
}

func DefaultTabs() TabState {
	return TabState{Active: TabDocs}
}

// Select activates tab; unknown values leave the state unchanged and return false.
func (s *TabState) Select(tab Tab) bool {
	if ParseTab(string(tab)) != tab {
		return false
	}
	s.Active = tab
	return true
}

func (s *TabState) ToggleFullSpec() {
	s.ShowFullSpec = !s.ShowFullSpec
}

// Hint is a client library suggested for a category.
type Hint struct {
	Name string `json:"name"`
	Note string `json:"note"`
}

var categoryHints = map[string][]Hint{
	"Finanzas": {
		{Name: "Stripe.js", Note: "frontend integration"},
		{Name: "PaymentJS", Note: "full-featured solution"},
		{Name: "GatewaySDK", Note: "official SDK"},
	},
	"Clima": {
		{Name: "WeatherKit", Note: "official SDK"},
		{Name: "ClimateData", Note: "advanced analysis"},
		{Name: "ForecastJS", Note: "lightweight solution"},
	},
}

// Hints returns the library suggestions for a category name, or nil.
func Hints(category string) []Hint {
	return categoryHints[category]
}

// StatsView is the formatted stats panel.
type StatsView struct {
	TotalCalls        string `json:"totalCalls"`
	TotalCallsCompact string `json:"totalCallsCompact"`
	LastWeekCalls     string `json:"lastWeekCalls"`
	Uptime            string `json:"uptime"`
	ResponseTime      string `json:"responseTime"`
}

// Detail is everything the detail view renders for one listing.
type Detail struct {
	Listing   domain.Listing `json:"listing"`
	CreatedAt string         `json:"createdAt"`
	UpdatedAt string         `json:"updatedAt"`
	AuthLabel string         `json:"authLabel"`
	Stats     StatsView      `json:"stats"`
	Copy      Snippets       `json:"copy"`
	Hints     []Hint         `json:"hints,omitempty"`
	Tabs      TabState       `json:"tabs"`
}

// Present derives the detail view of l. It is pure.
func Present(l domain.Listing, tabs TabState) Detail {
	return Detail{
		Listing:   l,
		CreatedAt: FormatTime(l.CreatedAt),
		UpdatedAt: FormatTime(l.UpdatedAt),
		AuthLabel: l.Auth.Type.Label(),
		Stats: StatsView{
			TotalCalls:        FormatCount(l.Stats.TotalCalls),
			TotalCallsCompact: query.FormatCompact(l.Stats.TotalCalls),
			LastWeekCalls:     FormatCount(l.Stats.LastWeekCalls),
			Uptime:            FormatUptime(l.Stats.Uptime),
			ResponseTime:      FormatResponseTime(l.Stats.ResponseTime),
		},
		Copy:  BuildSnippets(l),
		Hints: Hints(l.Category.Name),
		Tabs:  tabs,
	}
}
