package cli

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/apihub/internal/present"
)

func newShowCmd(opts *options) *cobra.Command {
	var (
		tab  string
		full bool
	)

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one API",
		Long:  "Show the detail of one listing. --tab selects docs, endpoints or examples.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := opts.client()
			if err != nil {
				return err
			}

			l, err := client.GetListing(commandContext(cmd), args[0])
			if err != nil {
				return err
			}

			tabs := present.DefaultTabs()
			tabs.Select(present.ParseTab(tab))
			if full {
				tabs.ToggleFullSpec()
			}
			printDetail(cmd.OutOrStdout(), present.Present(l, tabs))
			return nil
		},
	}

	cmd.Flags().StringVarP(&tab, "tab", "t", string(present.TabDocs), "section to show")
	cmd.Flags().BoolVar(&full, "full", false, "include every language in examples")
	return cmd
}
