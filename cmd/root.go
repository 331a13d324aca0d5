package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/greenleaf-co/plantshop/internal/config"
)

// rootOptions carries persistent flags and the loaded configuration to subcommands
type rootOptions struct {
	configPath string
	verbose    bool
	cfg        config.Config
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "plantshop",
		Short: "Plant storefront backed by a remote plant catalog",
		Long: `Plantshop is a storefront for a remote plant catalog.

It serves a web storefront where visitors browse plant categories, open plant
details and keep a session-local shopping cart, and offers the same storefront
in the terminal together with catalog inspection and export tools.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to YAML config file (default ./plantshop.yaml if present)")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Verbose logging")

	// Add subcommands
	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newShopCmd(opts))
	cmd.AddCommand(newCatalogCmd(opts))

	return cmd
}
