package draft

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrSnakeDoc/apihub/internal/domain"
)

type fakeCreator struct {
	mu    sync.Mutex
	calls []domain.NewListing
	err   error

	// when set, CreateListing blocks until release is closed
	started chan struct{}
	release chan struct{}
}

func (f *fakeCreator) CreateListing(ctx context.Context, l domain.NewListing) error {
	f.mu.Lock()
	f.calls = append(f.calls, l)
	f.mu.Unlock()

	if f.started != nil {
		close(f.started)
		<-f.release
	}
	return f.err
}

func (f *fakeCreator) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func str(s string) *string { return &s }

func fillValid(t *testing.T, d *Draft) {
	t.Helper()
	d.Patch(FieldsPatch{
		Name:        str("Weather Forecast API"),
		Description: str("Pronósticos meteorológicos precisos"),
		Owner:       str("WeatherCorp"),
		Tags:        str("clima, previsiones"),
		BaseURL:     str("https://api.weathercorp.com/v1"),
	})
	require.NoError(t, d.UpdateEndpoint(0, "path", "/forecast"))
	require.NoError(t, d.UpdateEndpoint(0, "description", "Get forecast"))
}

func TestNewDraftDefaults(t *testing.T) {
	d := New("d1", "1")
	s := d.Snapshot()

	assert.Equal(t, "d1", s.ID)
	assert.Equal(t, DefaultVersion, s.Fields.Version)
	assert.Equal(t, "1", s.Fields.CategoryID)
	assert.Equal(t, domain.AuthNone, s.Fields.AuthType)
	assert.Equal(t, []domain.Endpoint{{Method: domain.MethodGet}}, s.Endpoints)
	assert.Nil(t, s.Attachment)
	assert.False(t, s.InFlight)
}

func TestUpdateEndpoint(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		field   string
		value   string
		wantErr error
	}{
		{"path", 0, "path", "/users", nil},
		{"method lower case", 0, "method", "post", nil},
		{"description", 0, "description", "List users", nil},
		{"negative index", -1, "path", "/x", ErrEndpointIndex},
		{"past end", 1, "path", "/x", ErrEndpointIndex},
		{"unknown field", 0, "verb", "GET", ErrEndpointField},
		{"bad method", 0, "method", "HEAD", ErrInvalidMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New("d", "1")
			err := d.UpdateEndpoint(tt.index, tt.field, tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, []domain.Endpoint{{Method: domain.MethodGet}}, d.Snapshot().Endpoints)
				return
			}
			require.NoError(t, err)
		})
	}

	d := New("d", "1")
	require.NoError(t, d.UpdateEndpoint(0, "method", "post"))
	assert.Equal(t, domain.MethodPost, d.Snapshot().Endpoints[0].Method)
}

func TestRemoveEndpointFloor(t *testing.T) {
	d := New("d", "1")
	before := d.Snapshot().Endpoints

	assert.False(t, d.RemoveEndpoint(0))
	assert.Equal(t, before, d.Snapshot().Endpoints)

	assert.Equal(t, 2, d.AddEndpoint())
	require.NoError(t, d.UpdateEndpoint(1, "path", "/second"))
	assert.False(t, d.RemoveEndpoint(5))
	assert.True(t, d.RemoveEndpoint(0))

	eps := d.Snapshot().Endpoints
	require.Len(t, eps, 1)
	assert.Equal(t, "/second", eps[0].Path)
}

func TestEndpointCountNeverBelowOne(t *testing.T) {
	d := New("d", "1")
	ops := []func(){
		func() { d.AddEndpoint() },
		func() { d.RemoveEndpoint(0) },
		func() { d.RemoveEndpoint(0) },
		func() { d.AddEndpoint() },
		func() { d.AddEndpoint() },
		func() { d.RemoveEndpoint(2) },
		func() { d.RemoveEndpoint(1) },
		func() { d.RemoveEndpoint(0) },
		func() { d.RemoveEndpoint(0) },
	}
	for i, op := range ops {
		op()
		if n := len(d.Snapshot().Endpoints); n < 1 {
			t.Fatalf("after op %d endpoint count = %d", i, n)
		}
	}
}

func TestSubmitRejectsShortName(t *testing.T) {
	d := New("d", "1")
	fillValid(t, d)
	d.Patch(FieldsPatch{Name: str("A")})

	c := &fakeCreator{}
	_, err := d.Submit(context.Background(), c)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "name")
	assert.False(t, d.InFlight())
	assert.Zero(t, c.count())
}

func TestSubmitRejectsIncompleteEndpoints(t *testing.T) {
	d := New("d", "1")
	fillValid(t, d)
	d.AddEndpoint()

	c := &fakeCreator{}
	_, err := d.Submit(context.Background(), c)

	assert.ErrorIs(t, err, ErrInvalidEndpoints)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, map[int][]string{1: {"path", "description"}}, ve.Endpoints)
	assert.Zero(t, c.count())
	assert.False(t, d.InFlight())
}

func TestSubmitFieldRules(t *testing.T) {
	tests := []struct {
		name  string
		patch FieldsPatch
		field string
	}{
		{"short description", FieldsPatch{Description: str("too short")}, "description"},
		{"empty version", FieldsPatch{Version: str("")}, "version"},
		{"short owner", FieldsPatch{Owner: str("W")}, "owner"},
		{"no category", FieldsPatch{CategoryID: str("")}, "category_id"},
		{"only commas", FieldsPatch{Tags: str(" , ,")}, "tags"},
		{"relative url", FieldsPatch{BaseURL: str("api.example.com")}, "base_url"},
		{"ftp url", FieldsPatch{BaseURL: str("ftp://files.example.com")}, "base_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New("d", "1")
			fillValid(t, d)
			d.Patch(tt.patch)

			_, err := d.Submit(context.Background(), &fakeCreator{})
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, ve.Fields, tt.field)
			assert.NotErrorIs(t, err, ErrInvalidEndpoints)
		})
	}
}

func TestSubmitSuccessResets(t *testing.T) {
	d := New("d", "1")
	fillValid(t, d)
	d.AddEndpoint()
	require.NoError(t, d.UpdateEndpoint(1, "path", "/alerts"))
	require.NoError(t, d.UpdateEndpoint(1, "method", "POST"))
	require.NoError(t, d.UpdateEndpoint(1, "description", "Create alert"))
	d.AttachFile("weather.json", []byte(`{}`))

	c := &fakeCreator{}
	payload, err := d.Submit(context.Background(), c)
	require.NoError(t, err)

	require.Equal(t, 1, c.count())
	assert.Equal(t, "Weather Forecast API", payload.Name)
	assert.Equal(t, "1", payload.CategoryID)
	assert.Equal(t, "clima, previsiones", payload.Tags)
	assert.Len(t, payload.Endpoints, 2)
	assert.Equal(t, domain.MethodPost, payload.Endpoints[1].Method)

	s := d.Snapshot()
	assert.Equal(t, New("d", "1").Snapshot(), s)
	assert.False(t, d.InFlight())
}

func TestSubmitDiscardsEditsMadeInFlight(t *testing.T) {
	d := New("d", "1")
	fillValid(t, d)

	c := &fakeCreator{started: make(chan struct{}), release: make(chan struct{})}
	done := make(chan error, 1)
	go func() {
		_, err := d.Submit(context.Background(), c)
		done <- err
	}()

	<-c.started
	d.Patch(FieldsPatch{Name: str("Renamed while sending")})
	require.NoError(t, d.UpdateEndpoint(0, "path", "/changed"))
	close(c.release)
	require.NoError(t, <-done)

	assert.Equal(t, "Weather Forecast API", c.calls[0].Name, "payload is the state at submit time")
	assert.Equal(t, New("d", "1").Snapshot(), d.Snapshot())
}

func TestSubmitFailurePreservesState(t *testing.T) {
	d := New("d", "1")
	fillValid(t, d)
	before := d.Snapshot()

	boom := errors.New("status 500")
	_, err := d.Submit(context.Background(), &fakeCreator{err: boom})

	assert.ErrorIs(t, err, ErrSubmitFailed)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, before, d.Snapshot())
	assert.False(t, d.InFlight())
}

func TestSubmitInFlightGuard(t *testing.T) {
	d := New("d", "1")
	fillValid(t, d)

	c := &fakeCreator{started: make(chan struct{}), release: make(chan struct{})}

	var firstErr atomic.Value
	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := d.Submit(context.Background(), c); err != nil {
			firstErr.Store(err)
		}
	}()

	<-c.started
	assert.True(t, d.InFlight())

	_, err := d.Submit(context.Background(), c)
	assert.ErrorIs(t, err, ErrSubmitInFlight)
	assert.Equal(t, 1, c.count())

	close(c.release)
	<-done
	assert.Nil(t, firstErr.Load())
	assert.False(t, d.InFlight())
}

func TestRegistryExpire(t *testing.T) {
	r := NewRegistry()
	old := r.Create("1")
	fresh := r.Create("1")
	require.Equal(t, 2, r.Count())

	got, err := r.Get(old.ID())
	require.NoError(t, err)
	assert.Same(t, old, got)

	old.mu.Lock()
	old.touched = time.Now().Add(-2 * time.Hour)
	old.mu.Unlock()

	assert.Equal(t, 1, r.Expire(time.Now().Add(-time.Hour)))
	_, err = r.Get(old.ID())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.Get(fresh.ID())
	assert.NoError(t, err)

	assert.True(t, r.Delete(fresh.ID()))
	assert.False(t, r.Delete(fresh.ID()))
	assert.Zero(t, r.Count())
}
