package query

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/MrSnakeDoc/apihub/internal/domain"
)

// Result is the filtered, ordered view of the catalog plus its active filter chips.
type Result struct {
	Listings      []domain.Listing `json:"listings"`
	ActiveFilters []string         `json:"activeFilters"`
}

// Apply filters and sorts listings according to s.
//
// The input slice is never modified. Filters compose by AND in the order
// text, category, auth. Ties keep their relative input order.
func Apply(listings []domain.Listing, categories []domain.Category, s State) Result {
	q := strings.ToLower(s.Query)

	out := make([]domain.Listing, 0, len(listings))
	for _, l := range listings {
		if q != "" && !matchesText(l, q) {
			continue
		}
		if narrows(s.Category) && l.Category.ID != s.Category {
			continue
		}
		if narrows(s.AuthType) && string(l.Auth.Type) != s.AuthType {
			continue
		}
		out = append(out, l)
	}

	sortListings(out, s.SortBy)

	return Result{
		Listings:      out,
		ActiveFilters: ActiveFilters(categories, s),
	}
}

// ActiveFilters returns one label per non-default dimension of s.
// A category id with no matching category yields no label.
func ActiveFilters(categories []domain.Category, s State) []string {
	labels := make([]string, 0, 2)
	if narrows(s.Category) {
		for _, c := range categories {
			if c.ID == s.Category {
				labels = append(labels, categoryPrefix+" "+c.Name)
				break
			}
		}
	}
	if narrows(s.AuthType) {
		labels = append(labels, authPrefix+" "+domain.AuthType(s.AuthType).Label())
	}
	return labels
}

func narrows(v string) bool {
	return v != "" && v != All
}

func matchesText(l domain.Listing, q string) bool {
	if strings.Contains(strings.ToLower(l.Name), q) ||
		strings.Contains(strings.ToLower(l.Description), q) {
		return true
	}
	for _, tag := range l.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func sortListings(ls []domain.Listing, key SortKey) {
	switch key {
	case SortName:
		// A collator keeps scratch buffers, so each call gets its own.
		c := collate.New(language.Spanish, collate.IgnoreCase)
		slices.SortStableFunc(ls, func(a, b domain.Listing) int {
			return c.CompareString(a.Name, b.Name)
		})
	case SortDate:
		slices.SortStableFunc(ls, func(a, b domain.Listing) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	case SortPopularity:
		slices.SortStableFunc(ls, func(a, b domain.Listing) int {
			return cmp.Compare(b.Stats.TotalCalls, a.Stats.TotalCalls)
		})
	case SortRating:
		slices.SortStableFunc(ls, func(a, b domain.Listing) int {
			return cmp.Compare(b.Stats.Uptime, a.Stats.Uptime)
		})
	}
}
