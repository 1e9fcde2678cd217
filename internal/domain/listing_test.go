package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validListing() Listing {
	created := time.Date(2024, 2, 15, 10, 0, 0, 0, time.UTC)
	return Listing{
		ID:          "2",
		Name:        "Weather Forecast API",
		Description: "Pronósticos meteorológicos precisos",
		Version:     "v1.2.0",
		Owner:       "WeatherCorp",
		Category:    Category{ID: "2", Name: "Clima", Color: "#60A5FA"},
		Tags:        []string{"clima", "previsiones"},
		CreatedAt:   created,
		UpdatedAt:   created.Add(24 * time.Hour),
		Stats:       Stats{TotalCalls: 980000, LastWeekCalls: 32000, Uptime: 99.8, ResponseTime: 180},
		BaseURL:     "https://api.weathercorp.com/v1",
		Auth:        Auth{Type: AuthAPIKey},
		Endpoints:   []Endpoint{{Path: "/forecast", Method: MethodGet, Description: "Get forecast"}},
	}
}

func TestAuthTypeLabel(t *testing.T) {
	tests := []struct {
		in   AuthType
		want string
	}{
		{AuthAPIKey, "API Key"},
		{AuthOAuth2, "OAuth 2.0"},
		{AuthNone, "No authentication"},
		{AuthType("basic"), "basic"},
	}

	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			if got := tt.in.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMethodValid(t *testing.T) {
	for _, m := range Methods() {
		if !m.Valid() {
			t.Errorf("%s should be valid", m)
		}
	}
	for _, m := range []Method{"", "get", "HEAD", "OPTIONS"} {
		if m.Valid() {
			t.Errorf("%q should not be valid", m)
		}
	}
}

func TestStatsUnmarshalAcceptsBothCases(t *testing.T) {
	tests := []struct {
		name string
		body string
		want Stats
	}{
		{
			name: "camel case",
			body: `{"totalCalls":10,"lastWeekCalls":2,"uptime":99.5,"responseTime":120}`,
			want: Stats{TotalCalls: 10, LastWeekCalls: 2, Uptime: 99.5, ResponseTime: 120},
		},
		{
			name: "snake case",
			body: `{"total_calls":10,"last_week_calls":2,"uptime":99.5,"response_time":120}`,
			want: Stats{TotalCalls: 10, LastWeekCalls: 2, Uptime: 99.5, ResponseTime: 120},
		},
		{
			name: "camel wins",
			body: `{"totalCalls":10,"total_calls":99}`,
			want: Stats{TotalCalls: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Stats
			require.NoError(t, json.Unmarshal([]byte(tt.body), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListingUnmarshalBaseURLAlias(t *testing.T) {
	var l Listing
	body := `{"id":"1","name":"Payment Gateway API","base_url":"https://api.paymentgateway.com/v2","stats":{"total_calls":5}}`
	require.NoError(t, json.Unmarshal([]byte(body), &l))

	assert.Equal(t, "https://api.paymentgateway.com/v2", l.BaseURL)
	assert.Equal(t, int64(5), l.Stats.TotalCalls)
	assert.Equal(t, "Payment Gateway API", l.Name)
}

func TestValidateListing(t *testing.T) {
	if err := ValidateListing(validListing()); err != nil {
		t.Fatalf("valid listing rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Listing)
		field  string
	}{
		{"missing name", func(l *Listing) { l.Name = "" }, "name"},
		{"relative base url", func(l *Listing) { l.BaseURL = "/v1" }, "baseUrl"},
		{"uptime over 100", func(l *Listing) { l.Stats.Uptime = 101 }, "stats.uptime"},
		{"negative calls", func(l *Listing) { l.Stats.TotalCalls = -1 }, "stats.totalCalls"},
		{"unknown auth", func(l *Listing) { l.Auth.Type = "basic" }, "auth.type"},
		{"bad method", func(l *Listing) { l.Endpoints[0].Method = "HEAD" }, "endpoints[0].method"},
		{"updated before created", func(l *Listing) { l.UpdatedAt = l.CreatedAt.Add(-time.Hour) }, "updatedAt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := validListing()
			tt.mutate(&l)

			err := ValidateListing(l)
			var se *SchemaError
			require.True(t, errors.As(err, &se), "want *SchemaError, got %v", err)
			assert.Equal(t, "listing", se.Kind)
			assert.Equal(t, "2", se.ID)

			var fields []string
			for _, is := range se.Issues {
				fields = append(fields, is.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestLastWeekCallsNotEnforced(t *testing.T) {
	l := validListing()
	l.Stats.LastWeekCalls = l.Stats.TotalCalls + 1
	assert.NoError(t, ValidateListing(l))
}

func TestValidateCategory(t *testing.T) {
	assert.NoError(t, ValidateCategory(Category{ID: "1", Name: "Finanzas", Color: "#34D399"}))

	err := ValidateCategory(Category{ID: "1", Color: "green"})
	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Len(t, se.Issues, 2)
	assert.Contains(t, se.Error(), `invalid category "1"`)
}

func TestValidateMetrics(t *testing.T) {
	m := Metrics{
		TotalAPIs:         6,
		TotalAPICalls:     7_000_000,
		PopularCategories: []CategoryShare{{Name: "Finanzas", Percentage: 35}},
		APICallsOverTime:  []CallsPoint{{Month: "Ene", Calls: 1200}},
		TopAPIs:           []TopListing{{ID: "1", Name: "Payment Gateway API", Calls: 1_250_000, Uptime: 99.9}},
	}
	assert.NoError(t, ValidateMetrics(m))

	m.PopularCategories[0].Percentage = 140
	err := ValidateMetrics(m)
	var se *SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "popularCategories[0].percentage", se.Issues[0].Field)
}

func TestFirstEndpoint(t *testing.T) {
	l := validListing()
	ep, ok := l.FirstEndpoint()
	assert.True(t, ok)
	assert.Equal(t, "/forecast", ep.Path)

	l.Endpoints = nil
	_, ok = l.FirstEndpoint()
	assert.False(t, ok)
}
