package domain

import (
	"encoding/json"
	"time"
)

// AuthType is the tagged variant describing how a listed API authenticates callers.
type AuthType string

const (
	AuthAPIKey AuthType = "apiKey"
	AuthOAuth2 AuthType = "oauth2"
	AuthNone   AuthType = "none"
)

// AuthTypes lists every auth variant in display order.
func AuthTypes() []AuthType {
	return []AuthType{AuthAPIKey, AuthOAuth2, AuthNone}
}

// Valid reports whether a is one of the known variants.
func (a AuthType) Valid() bool {
	switch a {
	case AuthAPIKey, AuthOAuth2, AuthNone:
		return true
	}
	return false
}

// Label returns the human readable name shown in filter chips.
// Unknown variants are returned verbatim.
func (a AuthType) Label() string {
	switch a {
	case AuthAPIKey:
		return "API Key"
	case AuthOAuth2:
		return "OAuth 2.0"
	case AuthNone:
		return "No authentication"
	}
	return string(a)
}

// Method is the HTTP verb of a listed endpoint.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
	MethodPatch  Method = "PATCH"
)

// Methods lists every accepted endpoint method.
func Methods() []Method {
	return []Method{MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch}
}

// Valid reports whether m is one of the accepted methods.
func (m Method) Valid() bool {
	switch m {
	case MethodGet, MethodPost, MethodPut, MethodDelete, MethodPatch:
		return true
	}
	return false
}

// Category groups listings. Categories are owned by the remote store and are
// read-only for the whole session.
type Category struct {
	ID    string `json:"id" yaml:"id" validate:"required"`
	Name  string `json:"name" yaml:"name" validate:"required"`
	Color string `json:"color" yaml:"color" validate:"omitempty,hexcolor"`
}

// Stats holds the usage counters of a listing.
//
// lastWeekCalls <= totalCalls is expected but deliberately not checked.
type Stats struct {
	TotalCalls    int64   `json:"totalCalls" yaml:"totalCalls" validate:"gte=0"`
	LastWeekCalls int64   `json:"lastWeekCalls" yaml:"lastWeekCalls" validate:"gte=0"`
	Uptime        float64 `json:"uptime" yaml:"uptime" validate:"gte=0,lte=100"`
	ResponseTime  int64   `json:"responseTime" yaml:"responseTime" validate:"gte=0"`
}

// UnmarshalJSON accepts both the camelCase and the snake_case counter names,
// the remote store has been seen emitting either. camelCase wins.
func (s *Stats) UnmarshalJSON(data []byte) error {
	var raw struct {
		TotalCalls         *int64   `json:"totalCalls"`
		TotalCallsSnake    *int64   `json:"total_calls"`
		LastWeekCalls      *int64   `json:"lastWeekCalls"`
		LastWeekCallsSnake *int64   `json:"last_week_calls"`
		Uptime             *float64 `json:"uptime"`
		ResponseTime       *int64   `json:"responseTime"`
		ResponseTimeSnake  *int64   `json:"response_time"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = Stats{
		TotalCalls:    firstInt(raw.TotalCalls, raw.TotalCallsSnake),
		LastWeekCalls: firstInt(raw.LastWeekCalls, raw.LastWeekCallsSnake),
		ResponseTime:  firstInt(raw.ResponseTime, raw.ResponseTimeSnake),
	}
	if raw.Uptime != nil {
		s.Uptime = *raw.Uptime
	}
	return nil
}

func firstInt(vals ...*int64) int64 {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return 0
}

// Auth describes the authentication scheme of a listing.
type Auth struct {
	Type        AuthType `json:"type" yaml:"type" validate:"required,oneof=apiKey oauth2 none"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
}

// Endpoint is one HTTP route exposed by a listed API.
type Endpoint struct {
	Path        string `json:"path" yaml:"path" validate:"required"`
	Method      Method `json:"method" yaml:"method" validate:"required,oneof=GET POST PUT DELETE PATCH"`
	Description string `json:"description" yaml:"description"`
}

// Listing is one cataloged external API.
//
// Identity and timestamps are assigned by the remote store on creation; the
// client never mutates a listing afterwards.
type Listing struct {
	ID               string     `json:"id" yaml:"id" validate:"required"`
	Name             string     `json:"name" yaml:"name" validate:"required"`
	Description      string     `json:"description" yaml:"description" validate:"required"`
	Version          string     `json:"version" yaml:"version" validate:"required"`
	Owner            string     `json:"owner" yaml:"owner" validate:"required"`
	Category         Category   `json:"category" yaml:"category"`
	Tags             []string   `json:"tags" yaml:"tags"`
	CreatedAt        time.Time  `json:"createdAt" yaml:"createdAt" validate:"required"`
	UpdatedAt        time.Time  `json:"updatedAt" yaml:"updatedAt" validate:"required"`
	Stats            Stats      `json:"stats" yaml:"stats"`
	BaseURL          string     `json:"baseUrl" yaml:"baseUrl" validate:"required,url"`
	DocumentationURL string     `json:"documentationUrl,omitempty" yaml:"documentationUrl,omitempty" validate:"omitempty,url"`
	Auth             Auth       `json:"auth" yaml:"auth"`
	Endpoints        []Endpoint `json:"endpoints" yaml:"endpoints" validate:"dive"`
}

// UnmarshalJSON accepts base_url as an alias of baseUrl.
func (l *Listing) UnmarshalJSON(data []byte) error {
	type plain Listing
	aux := struct {
		*plain
		BaseURLSnake string `json:"base_url"`
	}{plain: (*plain)(l)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if l.BaseURL == "" {
		l.BaseURL = aux.BaseURLSnake
	}
	return nil
}

// FirstEndpoint returns the first endpoint, or false when the listing has none.
func (l *Listing) FirstEndpoint() (Endpoint, bool) {
	if len(l.Endpoints) == 0 {
		return Endpoint{}, false
	}
	return l.Endpoints[0], true
}
