package present

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/apihub/internal/domain"
)

func weatherListing() domain.Listing {
	return domain.Listing{
		ID:        "2",
		Name:      "Weather Forecast API",
		Category:  domain.Category{ID: "2", Name: "Clima"},
		CreatedAt: time.Date(2024, 2, 15, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2025, 3, 15, 8, 30, 0, 0, time.UTC),
		Stats:     domain.Stats{TotalCalls: 1_260_000, LastWeekCalls: 32_000, Uptime: 99.8, ResponseTime: 180},
		BaseURL:   "https://api.weathercorp.com/v1",
		Auth:      domain.Auth{Type: domain.AuthNone},
		Endpoints: []domain.Endpoint{
			{Path: "/forecast", Method: domain.MethodGet, Description: "Get forecast"},
			{Path: "/alerts", Method: domain.MethodPost, Description: "Create alert"},
		},
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2025-03-15T10:00:00Z", "15 mar 2025"},
		{"2025-03-15T10:00:00.123+01:00", "15 mar 2025"},
		{"2025-03-15", "15 mar 2025"},
		{"2024-09-01T00:00:00Z", "1 sept 2024"},
		{"2024-12-31", "31 dic 2024"},
		{"yesterday", "yesterday"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := FormatDate(tt.in); got != tt.want {
				t.Errorf("FormatDate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "1.250.000", FormatCount(1_250_000))
	assert.Equal(t, "99.8%", FormatUptime(99.8))
	assert.Equal(t, "180ms", FormatResponseTime(180))
}

func TestBuildSnippets(t *testing.T) {
	s := BuildSnippets(weatherListing())

	assert.Equal(t, "https://api.weathercorp.com/v1", s.BaseURL)
	assert.Equal(t, "https://sandbox-api.weathercorp.com/v1", s.SandboxURL)
	assert.Equal(t, "https://api.weathercorp.com/v1/forecast", s.FirstURL)
	assert.Equal(t,
		`curl -X GET "https://api.weathercorp.com/v1/forecast" -H "Content-Type: application/json"`,
		s.Curl)
	assert.Contains(t, s.JavaScript, `fetch("https://api.weathercorp.com/v1/forecast"`)
	assert.Contains(t, s.Python, `url = "https://api.weathercorp.com/v1/forecast"`)

	require.Len(t, s.Endpoints, 2)
	assert.Equal(t, "https://api.weathercorp.com/v1/alerts", s.Endpoints[1].URL)
	assert.Equal(t,
		`curl -X POST "https://api.weathercorp.com/v1/alerts" -H "Content-Type: application/json" -d '{"param1": "value1", "param2": "value2"}'`,
		s.Endpoints[1].Curl)
	assert.NotContains(t, s.Endpoints[0].Curl, "-d")
}

func TestBuildSnippetsAuthHeaders(t *testing.T) {
	l := weatherListing()
	l.Auth.Type = domain.AuthAPIKey
	s := BuildSnippets(l)
	assert.Contains(t, s.Curl, `-H "X-API-Key: YOUR_API_KEY"`)
	assert.Contains(t, s.JavaScript, `"X-API-Key": "YOUR_API_KEY",`)

	l.Auth.Type = domain.AuthOAuth2
	s = BuildSnippets(l)
	assert.Contains(t, s.Python, `"Authorization": "Bearer YOUR_ACCESS_TOKEN",`)
}

func TestBuildSnippetsNoEndpoints(t *testing.T) {
	l := weatherListing()
	l.Endpoints = nil
	s := BuildSnippets(l)

	assert.Equal(t, l.BaseURL, s.FirstURL)
	assert.True(t, strings.HasPrefix(s.Curl, `curl -X GET "https://api.weathercorp.com/v1"`))
	assert.Empty(t, s.Endpoints)
}

func TestSandboxURLReplacesFirstOnly(t *testing.T) {
	assert.Equal(t, "https://sandbox-api.example.com/api/v1", SandboxURL("https://api.example.com/api/v1"))
	assert.Equal(t, "https://example.com/v1", SandboxURL("https://example.com/v1"))
}

func TestTabState(t *testing.T) {
	s := DefaultTabs()
	assert.Equal(t, TabDocs, s.Active)

	assert.True(t, s.Select(TabExamples))
	assert.Equal(t, TabExamples, s.Active)

	assert.False(t, s.Select(Tab("pricing")))
	assert.Equal(t, TabExamples, s.Active)

	s.ToggleFullSpec()
	assert.True(t, s.ShowFullSpec)
	s.ToggleFullSpec()
	assert.False(t, s.ShowFullSpec)

	assert.Equal(t, TabEndpoints, ParseTab(" Endpoints "))
	assert.Equal(t, TabDocs, ParseTab("nope"))
}

func TestPresent(t *testing.T) {
	d := Present(weatherListing(), DefaultTabs())

	assert.Equal(t, "15 feb 2024", d.CreatedAt)
	assert.Equal(t, "15 mar 2025", d.UpdatedAt)
	assert.Equal(t, "No authentication", d.AuthLabel)
	assert.Equal(t, "1.3M", d.Stats.TotalCallsCompact)
	assert.Equal(t, "32.000", d.Stats.LastWeekCalls)
	assert.Len(t, d.Hints, 3)
	assert.Equal(t, "WeatherKit", d.Hints[0].Name)

	other := weatherListing()
	other.Category.Name = "Social"
	assert.Nil(t, Present(other, DefaultTabs()).Hints)
}
