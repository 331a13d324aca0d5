package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/greenleaf-co/plantshop/internal/catalog"
	"github.com/greenleaf-co/plantshop/internal/export"
	"github.com/greenleaf-co/plantshop/internal/format"
	"github.com/greenleaf-co/plantshop/internal/models"
)

func newCatalogCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and export the remote plant catalog",
	}

	cmd.AddCommand(newCatalogCategoriesCmd(opts))
	cmd.AddCommand(newCatalogPlantsCmd(opts))
	cmd.AddCommand(newCatalogExportCmd(opts))
	cmd.AddCommand(newCatalogInspectCmd())

	return cmd
}

func newCatalogCategoriesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List catalog categories",
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := opts.cfg.NewCatalogClient().FetchCategories(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to fetch categories: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-8s %s\n", "ID", "NAME")
			for _, c := range categories {
				fmt.Fprintf(out, "%-8s %s\n", c.ID, c.Name)
			}
			return nil
		},
	}
}

func newCatalogPlantsCmd(opts *rootOptions) *cobra.Command {
	var categoryID string

	cmd := &cobra.Command{
		Use:   "plants",
		Short: "List catalog plants",
		Example: `  # All plants
  plantshop catalog plants

  # Plants of category 1
  plantshop catalog plants --category 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			plants, err := opts.cfg.NewCatalogClient().FetchPlants(cmd.Context(), catalog.Filter{CategoryID: categoryID})
			if err != nil {
				return fmt.Errorf("failed to fetch plants: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, strings.Repeat("=", 80))
			for i, p := range plants {
				fmt.Fprintf(out, "%3d. %-30s %10s  [%s]\n", i+1, p.Name, format.Money(float64(p.Price)), p.Category)
			}
			fmt.Fprintln(out, strings.Repeat("=", 80))
			fmt.Fprintf(out, "%d plants\n", len(plants))
			return nil
		},
	}

	cmd.Flags().StringVar(&categoryID, "category", "", "Only list plants of this category id")

	return cmd
}

func newCatalogExportCmd(opts *rootOptions) *cobra.Command {
	var output string
	var categoryID string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a snapshot of the catalog to a file",
		Long: `Fetches plants (and, for YAML, categories) and writes them to a file.

The format follows the output extension: .jsonl, .parquet or .yaml.`,
		Example: `  plantshop catalog export --output plants.parquet
  plantshop catalog export --output fruit-trees.yaml --category 1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := opts.cfg.NewCatalogClient()

			slog.Info("Fetching plants from catalog...", "category", categoryID)
			plants, err := client.FetchPlants(cmd.Context(), catalog.Filter{CategoryID: categoryID})
			if err != nil {
				return fmt.Errorf("failed to fetch plants: %w", err)
			}

			var categories []models.Category
			if strings.HasSuffix(strings.ToLower(output), ".yaml") || strings.HasSuffix(strings.ToLower(output), ".yml") {
				categories, err = client.FetchCategories(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to fetch categories: %w", err)
				}
			}

			snap := export.Snapshot{
				Source:     client.BaseURL,
				CategoryID: categoryID,
				Timestamp:  time.Now().Format(time.RFC3339),
				Categories: categories,
				Plants:     export.Rows(plants),
			}
			if err := export.Write(output, snap); err != nil {
				return fmt.Errorf("failed to write snapshot: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d plants to %s\n", len(plants), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "plants.jsonl", "Output file (.jsonl, .parquet or .yaml)")
	cmd.Flags().StringVar(&categoryID, "category", "", "Only export plants of this category id")

	return cmd
}

func newCatalogInspectCmd() *cobra.Command {
	var limit int
	var showDescription bool

	cmd := &cobra.Command{
		Use:   "inspect <snapshot>",
		Short: "Print the plants of an exported snapshot",
		Long: `Reads a snapshot written by "catalog export" (.jsonl, .parquet or .yaml)
and prints its plants with their prices and the snapshot total.`,
		Example: `  # First 10 plants of a parquet snapshot
  plantshop catalog inspect plants.parquet

  # Every plant with its full description
  plantshop catalog inspect plants.yaml --limit 0 --description`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := export.Load(args[0])
			if err != nil {
				return fmt.Errorf("failed to load snapshot: %w", err)
			}
			writeSnapshot(cmd.OutOrStdout(), export.Plants(rows), limit, showDescription)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of plants to print (0 for all)")
	cmd.Flags().BoolVar(&showDescription, "description", false, "Print each plant's description")

	return cmd
}

func writeSnapshot(out io.Writer, plants []models.Plant, limit int, showDescription bool) {
	shown := plants
	if limit > 0 && len(shown) > limit {
		shown = shown[:limit]
	}

	var total float64
	for _, p := range plants {
		total += float64(p.Price)
	}

	fmt.Fprintln(out, strings.Repeat("=", 80))
	for i, p := range shown {
		fmt.Fprintf(out, "%3d. %-30s %10s  [%s]\n", i+1, p.Name, format.Money(float64(p.Price)), p.Category)
		if showDescription {
			fmt.Fprintf(out, "     %s\n", format.Plain(p.Description))
		}
	}
	fmt.Fprintln(out, strings.Repeat("=", 80))
	fmt.Fprintf(out, "Showing %d of %d plants, total %s\n", len(shown), len(plants), format.Money(total))
}
