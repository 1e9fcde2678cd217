package draft

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrEndpointIndex    = errors.New("endpoint index out of range")
	ErrEndpointField    = errors.New("unknown endpoint field")
	ErrInvalidMethod    = errors.New("invalid endpoint method")
	ErrInvalidEndpoints = errors.New("every endpoint needs a path and a description")
	ErrSubmitInFlight   = errors.New("a submission is already in flight")
	ErrSubmitFailed     = errors.New("listing could not be created")
	ErrNoAttachment     = errors.New("no definition file attached")
	ErrImport           = errors.New("definition file could not be imported")
	ErrNotFound         = errors.New("draft not found")
)

// ValidationError lists what blocked a submission. Fields maps a payload field
// name to its message; Endpoints maps an endpoint index to its missing fields.
type ValidationError struct {
	Fields    map[string]string `json:"fields,omitempty"`
	Endpoints map[int][]string  `json:"endpoints,omitempty"`
}

func (e *ValidationError) Error() string {
	if len(e.Endpoints) > 0 {
		idx := make([]int, 0, len(e.Endpoints))
		for i := range e.Endpoints {
			idx = append(idx, i)
		}
		sort.Ints(idx)
		parts := make([]string, 0, len(idx))
		for _, i := range idx {
			parts = append(parts, fmt.Sprintf("#%d missing %s", i, strings.Join(e.Endpoints[i], "+")))
		}
		return ErrInvalidEndpoints.Error() + ": " + strings.Join(parts, ", ")
	}

	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "invalid draft: " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrInvalidEndpoints) hold for endpoint failures.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidEndpoints && len(e.Endpoints) > 0
}
