package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/apihub/internal/domain"
	"github.com/MrSnakeDoc/apihub/internal/draft"
)

type endpointArg struct {
	method      string
	path        string
	description string
}

// parseEndpoint reads "METHOD /path description words".
func parseEndpoint(raw string) (endpointArg, error) {
	parts := strings.Fields(raw)
	if len(parts) < 2 {
		return endpointArg{}, fmt.Errorf("invalid endpoint %q: want \"METHOD /path description\"", raw)
	}
	return endpointArg{
		method:      parts[0],
		path:        parts[1],
		description: strings.Join(parts[2:], " "),
	}, nil
}

func newAddCmd(opts *options) *cobra.Command {
	var (
		specFile  string
		endpoints []string
		name      string
		desc      string
		ver       string
		owner     string
		category  string
		tags      string
		baseURL   string
		auth      string
		authDesc  string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Publish a new API",
		Long: `Publish a listing to the store. Fields can be pre-filled from an OpenAPI 3
document with --spec; explicit flags win over imported values.

  apihub add --spec petstore.yaml --category dev-tools
  apihub add --name "Weather" --description "Forecasts by city" \
    --owner "Meteo" --base-url https://api.example.com/v1 \
    --endpoint "GET /forecast Forecast for a city"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ctx := commandContext(cmd)

			parsed := make([]endpointArg, 0, len(endpoints))
			for _, raw := range endpoints {
				ep, err := parseEndpoint(raw)
				if err != nil {
					return err
				}
				parsed = append(parsed, ep)
			}

			client, err := opts.client()
			if err != nil {
				return err
			}

			cats, err := client.GetCategories(ctx)
			if err != nil {
				return fmt.Errorf("load categories: %w", err)
			}
			defaultCategory := ""
			if len(cats) > 0 {
				defaultCategory = cats[0].ID
			}

			d := draft.New(uuid.NewString(), defaultCategory)

			if specFile != "" {
				data, err := os.ReadFile(specFile)
				if err != nil {
					return err
				}
				d.AttachFile(filepath.Base(specFile), data)
				if err := d.ImportAttachment(ctx); err != nil {
					return err
				}
				printSuccess(out, "imported "+filepath.Base(specFile))
			}

			flags := cmd.Flags()
			var p draft.FieldsPatch
			setStr := func(flag string, dst **string, v string) {
				if flags.Changed(flag) {
					*dst = &v
				}
			}
			setStr("name", &p.Name, name)
			setStr("description", &p.Description, desc)
			setStr("version", &p.Version, ver)
			setStr("owner", &p.Owner, owner)
			setStr("tags", &p.Tags, tags)
			setStr("base-url", &p.BaseURL, baseURL)
			setStr("auth-description", &p.AuthDescription, authDesc)
			if flags.Changed("category") {
				id := categoryID(cats, category)
				p.CategoryID = &id
			}
			if flags.Changed("auth") {
				at := domain.AuthType(auth)
				p.AuthType = &at
			}
			d.Patch(p)

			if len(parsed) > 0 {
				if err := setEndpoints(d, parsed); err != nil {
					return err
				}
			}

			payload, err := d.Submit(ctx, client)
			var verr *draft.ValidationError
			switch {
			case errors.As(err, &verr):
				printValidation(cmd.ErrOrStderr(), verr)
				return errReported
			case err != nil:
				return err
			}

			printSuccess(out, fmt.Sprintf("published %s %s with %d endpoint(s)",
				clean(payload.Name), clean(payload.Version), len(payload.Endpoints)))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&specFile, "spec", "", "OpenAPI 3 document (JSON or YAML) to import")
	f.StringArrayVarP(&endpoints, "endpoint", "e", nil, `endpoint as "METHOD /path description", repeatable`)
	f.StringVar(&name, "name", "", "API name")
	f.StringVar(&desc, "description", "", "what the API does")
	f.StringVar(&ver, "version", draft.DefaultVersion, "API version")
	f.StringVar(&owner, "owner", "", "owning team or company")
	f.StringVar(&category, "category", "", "category id or name (default: first category)")
	f.StringVar(&tags, "tags", "", "comma separated tags")
	f.StringVar(&baseURL, "base-url", "", "base URL of the API")
	f.StringVar(&auth, "auth", string(domain.AuthNone), "authentication: apiKey, oauth2 or none")
	f.StringVar(&authDesc, "auth-description", "", "how to authenticate")
	return cmd
}

// setEndpoints replaces the draft endpoints with eps.
func setEndpoints(d *draft.Draft, eps []endpointArg) error {
	for n := len(d.Snapshot().Endpoints); n > 1; n-- {
		d.RemoveEndpoint(n - 1)
	}
	for i, ep := range eps {
		if i > 0 {
			d.AddEndpoint()
		}
		if err := d.UpdateEndpoint(i, "method", ep.method); err != nil {
			return err
		}
		if err := d.UpdateEndpoint(i, "path", ep.path); err != nil {
			return err
		}
		if err := d.UpdateEndpoint(i, "description", ep.description); err != nil {
			return err
		}
	}
	return nil
}
