package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/apihub/internal/app"
)

func newServeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web backend",
		Long:  "Run the HTTP backend in front of the listing store. Configuration is read from APIHUB_* variables.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.storeURL != "" {
				if err := os.Setenv("APIHUB_STORE_URL", opts.storeURL); err != nil {
					return err
				}
			}
			if opts.timeout > 0 {
				if err := os.Setenv("APIHUB_FETCH_TIMEOUT", opts.timeout.String()); err != nil {
					return err
				}
			}

			ctx := commandContext(cmd)
			a, err := app.New(ctx)
			if err != nil {
				return err
			}
			return a.Run(ctx)
		},
	}
}
