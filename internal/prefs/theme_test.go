package prefs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) GetTheme(context.Context, string) (Theme, bool, error) {
	return "", false, errors.New("redis down")
}
func (failingStore) SetTheme(context.Context, string, Theme) error { return errors.New("redis down") }

func TestParseTheme(t *testing.T) {
	tests := []struct {
		in      string
		want    Theme
		wantErr bool
	}{
		{"light", ThemeLight, false},
		{" DARK ", ThemeDark, false},
		{"sepia", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTheme(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTheme)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestThemesToggle(t *testing.T) {
	ctx := context.Background()
	th := NewThemes(NewMemoryStore(), ThemeLight)

	got, err := th.Get(ctx, "client-a")
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, got)

	next, err := th.Toggle(ctx, "client-a")
	require.NoError(t, err)
	assert.Equal(t, ThemeDark, next)

	got, _ = th.Get(ctx, "client-a")
	assert.Equal(t, ThemeDark, got)

	// other clients keep the default
	got, _ = th.Get(ctx, "client-b")
	assert.Equal(t, ThemeLight, got)

	next, _ = th.Toggle(ctx, "client-a")
	assert.Equal(t, ThemeLight, next)
}

func TestThemesStoreFailureDegrades(t *testing.T) {
	th := NewThemes(failingStore{}, ThemeDark)

	got, err := th.Get(context.Background(), "client")
	assert.Error(t, err)
	assert.Equal(t, ThemeDark, got)

	got, err = th.Toggle(context.Background(), "client")
	assert.Error(t, err)
	assert.Equal(t, ThemeDark, got)
}
