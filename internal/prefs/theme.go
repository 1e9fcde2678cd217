package prefs

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Theme is the colour scheme preference of a client.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

var ErrInvalidTheme = errors.New("theme must be light or dark")

// ParseTheme accepts "light" or "dark" in any case.
func ParseTheme(raw string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(raw))); t {
	case ThemeLight, ThemeDark:
		return t, nil
	}
	return "", ErrInvalidTheme
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// Store persists a per-client theme override.
type Store interface {
	// GetTheme returns ok=false when the client has no override.
	GetTheme(ctx context.Context, clientID string) (t Theme, ok bool, err error)
	SetTheme(ctx context.Context, clientID string, t Theme) error
}

// Themes resolves a client's theme: its stored override, else the
// configured default.
type Themes struct {
	store    Store
	fallback Theme
}

func NewThemes(store Store, fallback Theme) *Themes {
	return &Themes{store: store, fallback: fallback}
}

// Default returns the configured theme.
func (th *Themes) Default() Theme { return th.fallback }

// Get returns the effective theme of clientID. Store errors are returned
// together with the default so callers can degrade.
func (th *Themes) Get(ctx context.Context, clientID string) (Theme, error) {
	if clientID == "" {
		return th.fallback, nil
	}
	t, ok, err := th.store.GetTheme(ctx, clientID)
	if err != nil {
		return th.fallback, err
	}
	if !ok {
		return th.fallback, nil
	}
	return t, nil
}

// Toggle flips the effective theme of clientID and persists it.
func (th *Themes) Toggle(ctx context.Context, clientID string) (Theme, error) {
	cur, err := th.Get(ctx, clientID)
	if err != nil {
		return cur, err
	}
	next := cur.Toggle()
	if err := th.store.SetTheme(ctx, clientID, next); err != nil {
		return cur, err
	}
	return next, nil
}

// MemoryStore keeps overrides in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	themes map[string]Theme
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{themes: make(map[string]Theme)}
}

func (m *MemoryStore) GetTheme(_ context.Context, clientID string) (Theme, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.themes[clientID]
	return t, ok, nil
}

func (m *MemoryStore) SetTheme(_ context.Context, clientID string, t Theme) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.themes[clientID] = t
	return nil
}
