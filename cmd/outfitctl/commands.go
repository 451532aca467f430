package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/outfitpicker/server/internal/domain/wardrobe"
	"github.com/outfitpicker/server/internal/model"
	"github.com/outfitpicker/server/internal/shared/database"
	"github.com/outfitpicker/server/internal/uploader"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	gray   = color.New(color.FgHiBlack).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func newOutfitCommand(c *cli) *cobra.Command {
	var names []string

	cmd := &cobra.Command{
		Use:   "outfit",
		Short: "Pick a random outfit and print its total price",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var categories []model.Category
			if len(names) > 0 {
				parsed, err := model.ParseCategories(names)
				if err != nil {
					return err
				}
				categories = parsed
			}

			deps, cleanup, err := c.dependencies(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			outfit, err := deps.WardrobeDomain.GenerateOutfit(cmd.Context(), categories)
			if err != nil {
				return err
			}
			printOutfit(cmd.OutOrStdout(), outfit)
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&names, "category", nil, "categories to include (default from wardrobe.outfit_categories)")
	return cmd
}

func newUploadCommand(c *cli) *cobra.Command {
	var (
		category string
		brand    string
		colorArg string
		price    string
	)

	cmd := &cobra.Command{
		Use:   "upload <image>",
		Short: "Upload one clothing image with its details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, cleanup, err := c.dependencies(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			info, err := f.Stat()
			if err != nil {
				return err
			}

			cat, _ := model.ParseCategory(category)
			p, _ := wardrobe.ParsePrice(price)
			item, err := deps.WardrobeDomain.Upload(cmd.Context(), &wardrobe.UploadInput{
				Filename: filepath.Base(args[0]),
				Body:     f,
				Size:     info.Size(),
				Category: cat,
				Brand:    brand,
				Color:    colorArg,
				Price:    p,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", green("Uploaded"), item.Key, gray(item.PriceDisplay()))
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "item category")
	cmd.Flags().StringVar(&brand, "brand", "", "item brand")
	cmd.Flags().StringVar(&colorArg, "color", "", "item color")
	cmd.Flags().StringVar(&price, "price", "", "item price, e.g. 19.99")
	return cmd
}

func newUploadDirCommand(c *cli) *cobra.Command {
	var (
		category string
		brand    string
		colorArg string
		price    string
	)

	cmd := &cobra.Command{
		Use:   "upload-dir [folder]",
		Short: "Upload every PNG and JPEG in a folder, one per interval",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deps, cleanup, err := c.dependencies(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			jobCfg, err := uploaderConfig(deps.Config.Uploader)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				jobCfg.Folder = args[0]
			}
			if err := applyUploadFlags(cmd, jobCfg, category, brand, colorArg, price); err != nil {
				return err
			}

			job := uploader.New(deps.WardrobeDomain, deps.Metrics, jobCfg, deps.Logger.Named("uploader"))
			summary, err := job.Run(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d of %d files uploaded, %d failed %s\n",
				bold("Batch"), summary.Uploaded, summary.Files, summary.Failed, gray("run "+summary.RunID))
			return err
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "category for every file (default uploader.category)")
	cmd.Flags().StringVar(&brand, "brand", "", "brand for every file (default uploader.brand)")
	cmd.Flags().StringVar(&colorArg, "color", "", "color for every file (default uploader.color)")
	cmd.Flags().StringVar(&price, "price", "", "fixed price for every file (default random)")
	return cmd
}

func newMigrateCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the uploads table",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			db, err := database.New(&cfg.Database)
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.Migrate(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), green("Migration complete"))
			return nil
		},
	}
}

// printOutfit writes one line per slot and the total.
func printOutfit(w io.Writer, outfit *model.Outfit) {
	for _, e := range outfit.Entries {
		if e.Item == nil {
			fmt.Fprintf(w, "%-8s %s\n", e.Category, yellow("No "+e.Category.String()+" available"))
			continue
		}
		fmt.Fprintf(w, "%-8s %s, %s, %s\n", e.Category, e.Item.Brand, e.Item.Color, e.Item.PriceDisplay())
	}
	fmt.Fprintf(w, "%s %s\n", bold("Total:"), outfit.TotalDisplay())
}
