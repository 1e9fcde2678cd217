package deps

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/apihub/internal/domain"
	"github.com/MrSnakeDoc/apihub/internal/draft"
	"github.com/MrSnakeDoc/apihub/internal/index"
	"github.com/MrSnakeDoc/apihub/internal/logger"
	"github.com/MrSnakeDoc/apihub/internal/prefs"
)

// Catalog is the live part of the remote store the handlers call directly.
type Catalog interface {
	draft.Creator
	GetListing(ctx context.Context, id string) (domain.Listing, error)
}

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	TimeNow       func() time.Time   // for testing, defaults to time.Now
	StoreURL      string             // Listing Store root, reported by /infra
	Catalog       Catalog            // remote Listing Store client
	MemoryIndex   *index.MemoryIndex // session snapshot of categories, listings and metrics
	Drafts        *draft.Registry    // in-progress create forms
	Themes        *prefs.Themes      // theme preference resolution
	RedisClient   *redis.Client      // nil when preferences are kept in memory
	ReloadTrigger chan struct{}      // Channel to trigger a manual catalog reload
	ImportLimit   int64              // max size of an uploaded definition file
}
