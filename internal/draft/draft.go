package draft

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MrSnakeDoc/apihub/internal/domain"
)

// Creator is the remote operation a draft is submitted to.
type Creator interface {
	CreateListing(ctx context.Context, l domain.NewListing) error
}

// Attachment is an uploaded definition file. It is informational until
// ImportAttachment is called explicitly.
type Attachment struct {
	Name string `json:"name"`
	Size int    `json:"size"`

	content []byte
}

// Snapshot is a read-only copy of a draft's state.
type Snapshot struct {
	ID         string            `json:"id"`
	Fields     Fields            `json:"fields"`
	Endpoints  []domain.Endpoint `json:"endpoints"`
	Attachment *Attachment       `json:"attachment,omitempty"`
	InFlight   bool              `json:"inFlight"`
}

// Draft is the form state of one listing being authored.
//
// The endpoint list is never empty. At most one Submit runs at a time.
type Draft struct {
	id              string
	defaultCategory string

	mu         sync.Mutex
	fields     Fields
	endpoints  []domain.Endpoint
	attachment *Attachment
	touched    time.Time

	inFlight atomic.Bool
}

func blankEndpoint() domain.Endpoint {
	return domain.Endpoint{Method: domain.MethodGet}
}

// New returns a draft with default fields and one blank endpoint.
// defaultCategory is usually the first known category id and may be empty.
func New(id, defaultCategory string) *Draft {
	d := &Draft{id: id, defaultCategory: defaultCategory}
	d.reset()
	return d
}

// reset must be called with mu held (or before the draft is shared).
func (d *Draft) reset() {
	d.fields = defaultFields(d.defaultCategory)
	d.endpoints = []domain.Endpoint{blankEndpoint()}
	d.attachment = nil
	d.touched = time.Now()
}

func (d *Draft) ID() string { return d.id }

// InFlight reports whether a submission is outstanding.
func (d *Draft) InFlight() bool { return d.inFlight.Load() }

// LastTouched returns when the draft was last modified.
func (d *Draft) LastTouched() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.touched
}

// Snapshot copies the current state.
func (d *Draft) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := Snapshot{
		ID:        d.id,
		Fields:    d.fields,
		Endpoints: append([]domain.Endpoint(nil), d.endpoints...),
		InFlight:  d.inFlight.Load(),
	}
	if d.attachment != nil {
		a := *d.attachment
		s.Attachment = &a
	}
	return s
}

// Patch applies a partial update of the scalar fields.
func (d *Draft) Patch(p FieldsPatch) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p.apply(&d.fields)
	d.touched = time.Now()
}

// UpdateEndpoint sets one field ("path", "method" or "description") of the
// endpoint at index.
func (d *Draft) UpdateEndpoint(index int, field, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if index < 0 || index >= len(d.endpoints) {
		return fmt.Errorf("%w: %d (have %d)", ErrEndpointIndex, index, len(d.endpoints))
	}

	ep := &d.endpoints[index]
	switch field {
	case "path":
		ep.Path = value
	case "description":
		ep.Description = value
	case "method":
		m := domain.Method(strings.ToUpper(strings.TrimSpace(value)))
		if !m.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidMethod, value)
		}
		ep.Method = m
	default:
		return fmt.Errorf("%w: %q", ErrEndpointField, field)
	}
	d.touched = time.Now()
	return nil
}

// AddEndpoint appends a blank endpoint and returns the new count.
func (d *Draft) AddEndpoint() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.endpoints = append(d.endpoints, blankEndpoint())
	d.touched = time.Now()
	return len(d.endpoints)
}

// RemoveEndpoint removes the endpoint at index. It does nothing and returns
// false when index is out of range or only one endpoint is left.
func (d *Draft) RemoveEndpoint(index int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.endpoints) <= 1 || index < 0 || index >= len(d.endpoints) {
		return false
	}
	d.endpoints = append(d.endpoints[:index:index], d.endpoints[index+1:]...)
	d.touched = time.Now()
	return true
}

// AttachFile records an uploaded definition file without parsing it.
func (d *Draft) AttachFile(name string, content []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.attachment = &Attachment{
		Name:    name,
		Size:    len(content),
		content: append([]byte(nil), content...),
	}
	d.touched = time.Now()
}

// Submit validates the draft and hands the payload to c.
//
// Endpoint problems are reported first, then scalar field problems; both are
// *ValidationError and neither raises the in-flight flag. On success the
// draft is reset. On failure the entered state is kept and the returned error
// wraps ErrSubmitFailed.
//
// The draft stays editable while the request is out. The payload is the state
// at the time of the call, and a successful submission discards every edit
// made in between along with the rest of the state.
func (d *Draft) Submit(ctx context.Context, c Creator) (domain.NewListing, error) {
	d.mu.Lock()
	if d.inFlight.Load() {
		d.mu.Unlock()
		return domain.NewListing{}, ErrSubmitInFlight
	}
	if err := validateEndpoints(d.endpoints); err != nil {
		d.mu.Unlock()
		return domain.NewListing{}, err
	}
	if err := validateFields(d.fields); err != nil {
		d.mu.Unlock()
		return domain.NewListing{}, err
	}
	payload := d.payload()
	d.inFlight.Store(true)
	d.mu.Unlock()

	defer d.inFlight.Store(false)

	if err := c.CreateListing(ctx, payload); err != nil {
		return payload, fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}

	d.mu.Lock()
	d.reset()
	d.mu.Unlock()
	return payload, nil
}

func (d *Draft) payload() domain.NewListing {
	f := d.fields
	return domain.NewListing{
		Name:            f.Name,
		Description:     f.Description,
		Version:         f.Version,
		Owner:           f.Owner,
		CategoryID:      f.CategoryID,
		Tags:            f.Tags,
		BaseURL:         f.BaseURL,
		AuthType:        f.AuthType,
		AuthDescription: f.AuthDescription,
		Endpoints:       append([]domain.Endpoint(nil), d.endpoints...),
	}
}
