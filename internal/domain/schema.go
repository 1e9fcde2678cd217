package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldIssue names one field that failed a schema rule.
type FieldIssue struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// SchemaError reports a remote record whose shape does not match the model.
type SchemaError struct {
	Kind   string       // "category", "listing" or "metrics"
	ID     string       // record id when known
	Issues []FieldIssue // offending fields, json names
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, is.Field+" ("+is.Rule+")")
	}
	if e.ID != "" {
		return fmt.Sprintf("invalid %s %q: %s", e.Kind, e.ID, strings.Join(parts, ", "))
	}
	return fmt.Sprintf("invalid %s: %s", e.Kind, strings.Join(parts, ", "))
}

var schema = newSchemaValidator()

func newSchemaValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report json names so errors match what the remote store sent.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateCategory checks a decoded category.
func ValidateCategory(c Category) error {
	return toSchemaError("category", c.ID, schema.Struct(c))
}

// ValidateListing checks a decoded listing, including updatedAt >= createdAt.
func ValidateListing(l Listing) error {
	err := toSchemaError("listing", l.ID, schema.Struct(l))
	if l.UpdatedAt.Before(l.CreatedAt) {
		var se *SchemaError
		if !errors.As(err, &se) {
			se = &SchemaError{Kind: "listing", ID: l.ID}
		}
		se.Issues = append(se.Issues, FieldIssue{Field: "updatedAt", Rule: "gtecreatedAt"})
		return se
	}
	return err
}

// ValidateMetrics checks a decoded dashboard payload.
func ValidateMetrics(m Metrics) error {
	return toSchemaError("metrics", "", schema.Struct(m))
}

func toSchemaError(kind, id string, err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate %s: %w", kind, err)
	}
	se := &SchemaError{Kind: kind, ID: id}
	for _, fe := range verrs {
		se.Issues = append(se.Issues, FieldIssue{
			Field: trimRoot(fe.Namespace()),
			Rule:  fe.Tag(),
		})
	}
	return se
}

// trimRoot drops the struct type prefix: "Listing.stats.uptime" -> "stats.uptime".
func trimRoot(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}
