package cmd

import (
	"github.com/spf13/cobra"

	"github.com/greenleaf-co/plantshop/internal/shell"
)

func newShopCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shop",
		Short: "Browse the catalog and fill a cart in the terminal",
		Long: `Starts an interactive storefront in the terminal.

Categories and plants load on start. Adding a plant asks for confirmation;
the cart lives only as long as the session.`,
		Example: `  plantshop shop
  > category 2
  > open 1
  > add`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sh := shell.New(opts.cfg.NewCatalogClient(), cmd.InOrStdin(), cmd.OutOrStdout())
			return sh.Run(cmd.Context())
		},
	}
}
