package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/apihub/internal/catalog"
	"github.com/MrSnakeDoc/apihub/internal/config"
	"github.com/MrSnakeDoc/apihub/internal/logger"
)

// errReported marks a failure already printed to the user.
var errReported = errors.New("command failed")

// options are the persistent flags shared by every subcommand.
type options struct {
	storeURL string
	timeout  time.Duration
	noColor  bool
	verbose  bool
}

// NewRootCmd builds the command tree. Settings come from the environment
// (and .env), flags override them.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "apihub",
		Short: "Browse, search and publish APIs in a listing store",
		Long: `apihub is a catalog of HTTP APIs backed by a remote listing store.

Run "apihub serve" for the web backend, "apihub mock" for a local store
seeded with sample data, or use the one-shot commands to search, inspect
and publish listings from the terminal.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.noColor {
				color.NoColor = true
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.storeURL, "store", "", "listing store URL (default $APIHUB_STORE_URL)")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "per request timeout (default $APIHUB_FETCH_TIMEOUT)")
	rootCmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log store requests to stderr")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newMockCmd(),
		newSearchCmd(opts),
		newShowCmd(opts),
		newDashboardCmd(opts),
		newAddCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			printError(os.Stderr, err.Error())
		}
		os.Exit(1)
	}
}

// client builds a store client from the environment and the flags.
func (o *options) client() (*catalog.Client, error) {
	cfg := config.LoadClient()

	storeURL := cfg.StoreURL
	if o.storeURL != "" {
		storeURL = o.storeURL
	}
	if storeURL == "" {
		return nil, fmt.Errorf("no listing store configured: pass --store or set APIHUB_STORE_URL")
	}

	timeout := cfg.FetchTimeout
	if o.timeout > 0 {
		timeout = o.timeout
	}

	log := logger.Nop()
	if o.verbose {
		log = logger.New("debug", true)
	}
	return catalog.New(storeURL, log, catalog.WithTimeout(timeout))
}

// commandContext is the command's context, or Background when run outside Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
