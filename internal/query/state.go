package query

import (
	"net/url"
	"strings"
)

// All is the sentinel meaning "no narrowing" for the category and auth dimensions.
const All = "all"

// SortKey orders the filtered listings.
type SortKey string

const (
	SortName       SortKey = "name"
	SortDate       SortKey = "date"
	SortPopularity SortKey = "popularity"
	SortRating     SortKey = "rating"
)

// ParseSortKey maps a raw value to a SortKey, falling back to popularity.
func ParseSortKey(raw string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(raw))); k {
	case SortName, SortDate, SortPopularity, SortRating:
		return k
	}
	return SortPopularity
}

// View is the catalog display mode. It never affects the result set.
type View string

const (
	ViewGrid View = "grid"
	ViewList View = "list"
)

const (
	categoryPrefix = "Category:"
	authPrefix     = "Auth:"
)

// State is the filter state of one catalog session.
type State struct {
	Query    string  `json:"searchQuery"`
	Category string  `json:"category"`
	AuthType string  `json:"authType"`
	SortBy   SortKey `json:"sortBy"`
	View     View    `json:"view"`
}

// DefaultState returns the initial filter state: no query, all categories,
// all auth types, most popular first, grid view.
func DefaultState() State {
	return State{
		Category: All,
		AuthType: All,
		SortBy:   SortPopularity,
		View:     ViewGrid,
	}
}

// Reset restores the default filters. The display mode is kept.
func (s *State) Reset() {
	view := s.View
	*s = DefaultState()
	if view != "" {
		s.View = view
	}
}

// RemoveFilter clears the dimension named by an active filter label and
// reports whether the label was recognised.
func (s *State) RemoveFilter(label string) bool {
	switch {
	case strings.HasPrefix(label, categoryPrefix):
		s.Category = All
	case strings.HasPrefix(label, authPrefix):
		s.AuthType = All
	default:
		return false
	}
	return true
}

// ParseState builds a State from query-string values (q, category, auth,
// sort, view). Missing or empty values take their defaults.
func ParseState(v url.Values) State {
	s := DefaultState()
	s.Query = v.Get("q")
	if c := strings.TrimSpace(v.Get("category")); c != "" {
		s.Category = c
	}
	if a := strings.TrimSpace(v.Get("auth")); a != "" {
		s.AuthType = a
	}
	if raw := v.Get("sort"); raw != "" {
		s.SortBy = ParseSortKey(raw)
	}
	if View(v.Get("view")) == ViewList {
		s.View = ViewList
	}
	return s
}

// Values is the inverse of ParseState, omitting defaults.
func (s State) Values() url.Values {
	v := url.Values{}
	if s.Query != "" {
		v.Set("q", s.Query)
	}
	if s.Category != "" && s.Category != All {
		v.Set("category", s.Category)
	}
	if s.AuthType != "" && s.AuthType != All {
		v.Set("auth", s.AuthType)
	}
	if s.SortBy != "" && s.SortBy != SortPopularity {
		v.Set("sort", string(s.SortBy))
	}
	if s.View == ViewList {
		v.Set("view", string(ViewList))
	}
	return v
}
