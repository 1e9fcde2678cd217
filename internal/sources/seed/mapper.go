package seed

import (
	"fmt"

	"github.com/MrSnakeDoc/apihub/internal/domain"
)

// TopListings is how many listings the dashboard top list shows.
const TopListings = 3

// Catalog is a validated seed, ready to be served.
type Catalog struct {
	Categories []domain.Category
	Listings   []domain.Listing
	Metrics    MetricsSeed
}

// Mapper converts a seed file into domain values.
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapCatalog resolves category references and validates every record
// against the same rules the catalog client applies on the wire.
func (m *Mapper) MapCatalog(f File) (Catalog, error) {
	cats := make(map[string]domain.Category, len(f.Categories))
	for _, c := range f.Categories {
		if err := domain.ValidateCategory(c); err != nil {
			return Catalog{}, err
		}
		if _, dup := cats[c.ID]; dup {
			return Catalog{}, fmt.Errorf("duplicate category id %q", c.ID)
		}
		cats[c.ID] = c
	}

	seen := make(map[string]struct{}, len(f.APIs))
	listings := make([]domain.Listing, 0, len(f.APIs))
	for _, a := range f.APIs {
		cat, ok := cats[a.Category]
		if !ok {
			return Catalog{}, fmt.Errorf("api %q references unknown category %q", a.ID, a.Category)
		}
		if _, dup := seen[a.ID]; dup {
			return Catalog{}, fmt.Errorf("duplicate api id %q", a.ID)
		}
		seen[a.ID] = struct{}{}

		l := mapAPI(a, cat)
		if err := domain.ValidateListing(l); err != nil {
			return Catalog{}, err
		}
		listings = append(listings, l)
	}

	categories := append([]domain.Category{}, f.Categories...)
	return Catalog{Categories: categories, Listings: listings, Metrics: f.Metrics}, nil
}

func mapAPI(a API, cat domain.Category) domain.Listing {
	updated := a.UpdatedAt
	if updated.IsZero() {
		updated = a.CreatedAt
	}
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	endpoints := a.Endpoints
	if endpoints == nil {
		endpoints = []domain.Endpoint{}
	}
	auth := a.Auth
	if auth.Type == "" {
		auth.Type = domain.AuthNone
	}

	return domain.Listing{
		ID:               a.ID,
		Name:             a.Name,
		Description:      a.Description,
		Version:          a.Version,
		Owner:            a.Owner,
		Category:         cat,
		Tags:             tags,
		CreatedAt:        a.CreatedAt.UTC(),
		UpdatedAt:        updated.UTC(),
		Stats:            a.Stats,
		BaseURL:          a.BaseURL,
		DocumentationURL: a.DocumentationURL,
		Auth:             auth,
		Endpoints:        endpoints,
	}
}

// ComputeMetrics derives the dashboard counters from the current listings.
// Totals and the top list follow the listings; the rest comes from the seed.
func ComputeMetrics(listings []domain.Listing, ms MetricsSeed) domain.Metrics {
	m := domain.Metrics{
		TotalAPIs:         len(listings),
		NewAPIsLastMonth:  ms.NewAPIsLastMonth,
		ActiveUsers:       ms.ActiveUsers,
		PopularCategories: append([]domain.CategoryShare{}, ms.PopularCategories...),
		APICallsOverTime:  append([]domain.CallsPoint{}, ms.APICallsOverTime...),
		TopAPIs:           make([]domain.TopListing, 0, TopListings),
	}
	for i, l := range listings {
		m.TotalAPICalls += l.Stats.TotalCalls
		if i < TopListings {
			m.TopAPIs = append(m.TopAPIs, domain.TopListing{
				ID:     l.ID,
				Name:   l.Name,
				Calls:  l.Stats.TotalCalls,
				Uptime: l.Stats.Uptime,
			})
		}
	}
	return m
}
