package seed

import (
	"time"

	"github.com/MrSnakeDoc/apihub/internal/domain"
)

// File is the top-level structure of a seed catalog.
// Listings reference their category by id.
type File struct {
	Categories []domain.Category `yaml:"categories"`
	APIs       []API             `yaml:"apis"`
	Metrics    MetricsSeed       `yaml:"metrics"`
}

// API is one listing as written in the seed file.
type API struct {
	ID               string            `yaml:"id"`
	Name             string            `yaml:"name"`
	Description      string            `yaml:"description"`
	Version          string            `yaml:"version"`
	Owner            string            `yaml:"owner"`
	Category         string            `yaml:"category"`
	Tags             []string          `yaml:"tags"`
	CreatedAt        time.Time         `yaml:"createdAt"`
	UpdatedAt        time.Time         `yaml:"updatedAt"`
	Stats            domain.Stats      `yaml:"stats"`
	BaseURL          string            `yaml:"baseUrl"`
	DocumentationURL string            `yaml:"documentationUrl,omitempty"`
	Auth             domain.Auth       `yaml:"auth"`
	Endpoints        []domain.Endpoint `yaml:"endpoints"`
}

// MetricsSeed holds the dashboard figures that cannot be derived from
// the listings themselves.
type MetricsSeed struct {
	NewAPIsLastMonth  int                    `yaml:"newApisLastMonth"`
	ActiveUsers       int                    `yaml:"activeUsers"`
	PopularCategories []domain.CategoryShare `yaml:"popularCategories"`
	APICallsOverTime  []domain.CallsPoint    `yaml:"apiCallsOverTime"`
}
