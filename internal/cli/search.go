package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/apihub/internal/catalog"
	"github.com/MrSnakeDoc/apihub/internal/domain"
	"github.com/MrSnakeDoc/apihub/internal/query"
)

func newSearchCmd(opts *options) *cobra.Command {
	var (
		text     string
		category string
		auth     string
		sortBy   string
	)

	cmd := &cobra.Command{
		Use:   "search [text]",
		Short: "Search the catalog",
		Long: `Filter and sort the listings of the store. Text matches name, description
and tags. --category takes a category id or name, --auth one of apiKey,
oauth2 or none, --sort one of popularity, name, date or rating.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				text = args[0]
			}

			client, err := opts.client()
			if err != nil {
				return err
			}

			snap := catalog.LoadSnapshot(commandContext(cmd), client)
			if snap.ListingsErr != nil {
				return snap.ListingsErr
			}

			state := query.DefaultState()
			state.Query = text
			if category != "" {
				state.Category = categoryID(snap.Categories, category)
			}
			if auth != "" {
				state.AuthType = auth
			}
			if sortBy != "" {
				state.SortBy = query.ParseSortKey(sortBy)
			}

			res := query.Apply(snap.Listings, snap.Categories, state)
			printResult(cmd.OutOrStdout(), res, len(snap.Listings))
			return nil
		},
	}

	cmd.Flags().StringVarP(&text, "query", "q", "", "free text")
	cmd.Flags().StringVarP(&category, "category", "c", "", "category id or name")
	cmd.Flags().StringVarP(&auth, "auth", "a", "", "authentication type")
	cmd.Flags().StringVarP(&sortBy, "sort", "s", "", "sort order")
	return cmd
}

// categoryID resolves a category name to its id. Unknown values are kept as
// given so they filter as an id.
func categoryID(cats []domain.Category, v string) string {
	for _, c := range cats {
		if c.ID == v {
			return v
		}
	}
	for _, c := range cats {
		if strings.EqualFold(c.Name, v) {
			return c.ID
		}
	}
	return v
}
