package draft

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/MrSnakeDoc/apihub/internal/domain"
)

// DefaultVersion pre-fills the version field of a fresh draft.
const DefaultVersion = "v1.0.0"

// Fields are the scalar inputs of a draft.
type Fields struct {
	Name            string          `json:"name" validate:"min=2"`
	Description     string          `json:"description" validate:"min=10"`
	Version         string          `json:"version" validate:"required"`
	Owner           string          `json:"owner" validate:"min=2"`
	CategoryID      string          `json:"category_id" validate:"required"`
	Tags            string          `json:"tags" validate:"tags"`
	BaseURL         string          `json:"base_url" validate:"required,http_url"`
	AuthType        domain.AuthType `json:"auth_type" validate:"oneof=apiKey oauth2 none"`
	AuthDescription string          `json:"auth_description"`
}

// FieldsPatch carries a partial update; nil members are left alone.
type FieldsPatch struct {
	Name            *string          `json:"name,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Version         *string          `json:"version,omitempty"`
	Owner           *string          `json:"owner,omitempty"`
	CategoryID      *string          `json:"category_id,omitempty"`
	Tags            *string          `json:"tags,omitempty"`
	BaseURL         *string          `json:"base_url,omitempty"`
	AuthType        *domain.AuthType `json:"auth_type,omitempty"`
	AuthDescription *string          `json:"auth_description,omitempty"`
}

func (p FieldsPatch) apply(f *Fields) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&f.Name, p.Name)
	set(&f.Description, p.Description)
	set(&f.Version, p.Version)
	set(&f.Owner, p.Owner)
	set(&f.CategoryID, p.CategoryID)
	set(&f.Tags, p.Tags)
	set(&f.BaseURL, p.BaseURL)
	set(&f.AuthDescription, p.AuthDescription)
	if p.AuthType != nil {
		f.AuthType = *p.AuthType
	}
}

func defaultFields(categoryID string) Fields {
	return Fields{
		Version:    DefaultVersion,
		CategoryID: categoryID,
		AuthType:   domain.AuthNone,
	}
}

var fieldMessages = map[string]string{
	"name":        "must be at least 2 characters",
	"description": "must be at least 10 characters",
	"version":     "is required",
	"owner":       "must be at least 2 characters",
	"category_id": "select a category",
	"tags":        "enter at least one tag",
	"base_url":    "must be a valid http(s) URL",
	"auth_type":   "must be one of apiKey, oauth2, none",
}

var fieldValidator = newFieldValidator()

func newFieldValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
	})
	_ = v.RegisterValidation("tags", func(fl validator.FieldLevel) bool {
		return len(domain.SplitTags(fl.Field().String())) > 0
	})
	return v
}

// validateFields returns nil or a *ValidationError keyed by json field name.
func validateFields(f Fields) error {
	err := fieldValidator.Struct(f)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	ve := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		msg, ok := fieldMessages[fe.Field()]
		if !ok {
			msg = "failed " + fe.Tag()
		}
		ve.Fields[fe.Field()] = msg
	}
	return ve
}

// validateEndpoints reports every endpoint missing a path or a description.
func validateEndpoints(eps []domain.Endpoint) error {
	var bad map[int][]string
	for i, ep := range eps {
		var missing []string
		if strings.TrimSpace(ep.Path) == "" {
			missing = append(missing, "path")
		}
		if strings.TrimSpace(ep.Description) == "" {
			missing = append(missing, "description")
		}
		if len(missing) == 0 {
			continue
		}
		if bad == nil {
			bad = make(map[int][]string)
		}
		bad[i] = missing
	}
	if bad == nil {
		return nil
	}
	return &ValidationError{Endpoints: bad}
}
