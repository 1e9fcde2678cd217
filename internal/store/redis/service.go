package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/apihub/internal/prefs"
)

const (
	// DefaultPrefsTTL is how long an unused preference is kept (90 days)
	DefaultPrefsTTL = 90 * 24 * time.Hour
)

// Store keeps client preferences in Redis. It implements prefs.Store.
type Store struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewStore creates a new Redis store
func NewStore(client redis.Cmdable) *Store {
	return &Store{
		client: client,
		ttl:    DefaultPrefsTTL,
	}
}

// WithTTL returns a copy of the store using ttl for new writes.
// Non-positive values keep the current ttl.
func (s *Store) WithTTL(ttl time.Duration) *Store {
	cp := *s
	if ttl > 0 {
		cp.ttl = ttl
	}
	return &cp
}

// GetTheme retrieves a client's theme. A missing key is not an error.
func (s *Store) GetTheme(ctx context.Context, clientID string) (prefs.Theme, bool, error) {
	raw, err := s.client.Get(ctx, ThemeKey(clientID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get theme: %w", err)
	}

	t, err := prefs.ParseTheme(raw)
	if err != nil {
		// Stale or foreign value; treat as unset.
		return "", false, nil
	}
	return t, true, nil
}

// SetTheme stores a client's theme and refreshes its TTL
func (s *Store) SetTheme(ctx context.Context, clientID string, t prefs.Theme) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, ThemeKey(clientID), string(t), s.ttl)
	pipe.SAdd(ctx, AllClientsKey(), clientID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	return nil
}

// CountClients returns how many clients have stored preferences
func (s *Store) CountClients(ctx context.Context) (int64, error) {
	n, err := s.client.SCard(ctx, AllClientsKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}
	return n, nil
}
