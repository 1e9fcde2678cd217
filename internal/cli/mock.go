package cli

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/apihub/internal/logger"
	"github.com/MrSnakeDoc/apihub/internal/mockstore"
	"github.com/MrSnakeDoc/apihub/internal/sources/seed"
)

func newMockCmd() *cobra.Command {
	var (
		seedFile string
		addr     string
		pretty   bool
	)

	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Run an in-memory listing store",
		Long: `Run a listing store that keeps everything in memory. It is seeded from
the built-in sample catalog, or from --seed when given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := seed.NewLoader(seedFile).Load()
			if err != nil {
				return err
			}
			cat, err := seed.NewMapper().MapCatalog(file)
			if err != nil {
				return err
			}

			log := logger.New("info", pretty)
			defer func() { _ = log.Sync() }()

			ctx, stop := signal.NotifyContext(commandContext(cmd), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log.Info("mock store seeded",
				logger.Int("categories", len(cat.Categories)),
				logger.Int("listings", len(cat.Listings)),
				logger.String("addr", addr))

			return mockstore.New(cat, log).Serve(ctx, addr, 5*time.Second)
		},
	}

	cmd.Flags().StringVar(&seedFile, "seed", "", "YAML seed file (default: built-in sample catalog)")
	cmd.Flags().StringVar(&addr, "addr", ":9090", "listen address")
	cmd.Flags().BoolVar(&pretty, "pretty", true, "human readable logs")
	return cmd
}
