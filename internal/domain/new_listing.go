package domain

import "strings"

// NewListing is the payload sent to the remote store to create a listing.
//
// Tags travel as the raw comma-separated string typed by the user; the store
// splits it.
type NewListing struct {
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	Version         string     `json:"version"`
	Owner           string     `json:"owner"`
	CategoryID      string     `json:"category_id"`
	Tags            string     `json:"tags"`
	BaseURL         string     `json:"base_url"`
	AuthType        AuthType   `json:"auth_type"`
	AuthDescription string     `json:"auth_description"`
	Endpoints       []Endpoint `json:"endpoints"`
}

// SplitTags turns "a, b,,c" into ["a", "b", "c"].
func SplitTags(raw string) []string {
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
