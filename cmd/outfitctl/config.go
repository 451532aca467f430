package main

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/outfitpicker/server/internal/model"
	"github.com/outfitpicker/server/internal/shared/config"
	"github.com/outfitpicker/server/internal/uploader"
)

// uploaderConfig converts the configured batch settings.
func uploaderConfig(cfg config.UploaderConfig) (*uploader.Config, error) {
	out := uploader.DefaultConfig()
	out.Folder = cfg.Folder
	out.Interval = cfg.Interval
	if cfg.Brand != "" {
		out.Brand = cfg.Brand
	}
	if cfg.Color != "" {
		out.Color = cfg.Color
	}
	if cfg.Category != "" {
		c, ok := model.ParseCategory(cfg.Category)
		if !ok {
			return nil, fmt.Errorf("uploader.category: unknown category %q", cfg.Category)
		}
		out.Category = c
	}

	var err error
	if cfg.MinPrice != "" {
		if out.MinPrice, err = decimal.NewFromString(cfg.MinPrice); err != nil {
			return nil, fmt.Errorf("uploader.min_price: %w", err)
		}
	}
	if cfg.MaxPrice != "" {
		if out.MaxPrice, err = decimal.NewFromString(cfg.MaxPrice); err != nil {
			return nil, fmt.Errorf("uploader.max_price: %w", err)
		}
	}
	return out, nil
}

// applyUploadFlags overrides batch settings with the flags the user set.
func applyUploadFlags(cmd *cobra.Command, cfg *uploader.Config, category, brand, color, price string) error {
	if cmd.Flags().Changed("category") {
		c, ok := model.ParseCategory(category)
		if !ok {
			return fmt.Errorf("unknown category %q", category)
		}
		cfg.Category = c
	}
	if cmd.Flags().Changed("brand") {
		cfg.Brand = brand
	}
	if cmd.Flags().Changed("color") {
		cfg.Color = color
	}
	if cmd.Flags().Changed("price") {
		p, err := decimal.NewFromString(price)
		if err != nil || !p.IsPositive() {
			return fmt.Errorf("price must be a number greater than zero")
		}
		cfg.Price = p
	}
	return nil
}
