package draft

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/MrSnakeDoc/apihub/internal/domain"
)

// ImportAttachment parses the attached file as an OpenAPI 3 document (JSON or
// YAML) and pre-fills the draft from it: name, description and version from
// info, owner from info.contact, base URL from the first server, auth type
// from the security schemes, and endpoints from the paths.
//
// On any error the draft is left untouched.
func (d *Draft) ImportAttachment(ctx context.Context) error {
	d.mu.Lock()
	att := d.attachment
	d.mu.Unlock()

	if att == nil {
		return ErrNoAttachment
	}

	doc, err := parseDefinition(ctx, att.content)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrImport, att.Name, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if doc.Info != nil {
		setIf(&d.fields.Name, doc.Info.Title)
		setIf(&d.fields.Description, doc.Info.Description)
		setIf(&d.fields.Version, doc.Info.Version)
		if doc.Info.Contact != nil {
			setIf(&d.fields.Owner, doc.Info.Contact.Name)
		}
	}
	for _, s := range doc.Servers {
		if s != nil && s.URL != "" {
			d.fields.BaseURL = strings.TrimSuffix(s.URL, "/")
			break
		}
	}
	if at, ok := authFromSchemes(doc); ok {
		d.fields.AuthType = at
	}
	if eps := endpointsFromPaths(doc); len(eps) > 0 {
		d.endpoints = eps
	}
	d.touched = time.Now()
	return nil
}

func parseDefinition(ctx context.Context, data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, err
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}
	return doc, nil
}

func setIf(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func authFromSchemes(doc *openapi3.T) (domain.AuthType, bool) {
	if doc.Components == nil {
		return "", false
	}
	names := make([]string, 0, len(doc.Components.SecuritySchemes))
	for name := range doc.Components.SecuritySchemes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ref := doc.Components.SecuritySchemes[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		switch ref.Value.Type {
		case "apiKey":
			return domain.AuthAPIKey, true
		case "oauth2", "openIdConnect":
			return domain.AuthOAuth2, true
		case "http":
			// bearer and basic both carry a static credential
			return domain.AuthAPIKey, true
		}
	}
	return "", false
}

func endpointsFromPaths(doc *openapi3.T) []domain.Endpoint {
	if doc.Paths == nil {
		return nil
	}
	paths := doc.Paths.Map()
	keys := make([]string, 0, len(paths))
	for p := range paths {
		keys = append(keys, p)
	}
	sort.Strings(keys)

	var eps []domain.Endpoint
	for _, p := range keys {
		item := paths[p]
		if item == nil {
			continue
		}
		for _, m := range domain.Methods() {
			op := item.GetOperation(string(m))
			if op == nil {
				continue
			}
			desc := op.Summary
			if desc == "" {
				desc = op.Description
			}
			eps = append(eps, domain.Endpoint{Path: p, Method: m, Description: desc})
		}
	}
	return eps
}
