package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outfitpicker/server/internal/model"
	"github.com/outfitpicker/server/internal/shared/config"
)

func init() {
	color.NoColor = true
}

func TestPrintOutfit(t *testing.T) {
	outfit := model.NewOutfit(2)
	outfit.Add(model.CategoryShirts, &model.Item{Brand: "Acme", Color: "Blue", Price: decimal.RequireFromString("19.9")})
	outfit.Add(model.CategoryHats, nil)

	var buf bytes.Buffer
	printOutfit(&buf, outfit)

	assert.Equal(t, "Shirts   Acme, Blue, $19.90\nHats     No Hats available\nTotal: $19.90\n", buf.String())
}

func TestUploaderConfig(t *testing.T) {
	t.Run("converts settings", func(t *testing.T) {
		cfg, err := uploaderConfig(config.UploaderConfig{
			Folder:   "/data",
			Interval: time.Second,
			Category: "hat",
			Brand:    "Acme",
			MinPrice: "5.50",
			MaxPrice: "20",
		})
		require.NoError(t, err)
		assert.Equal(t, "/data", cfg.Folder)
		assert.Equal(t, model.CategoryHats, cfg.Category)
		assert.Equal(t, "Acme", cfg.Brand)
		assert.Equal(t, "Unknown", cfg.Color)
		assert.True(t, cfg.MinPrice.Equal(decimal.RequireFromString("5.5")))
		assert.True(t, cfg.MaxPrice.Equal(decimal.NewFromInt(20)))
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		_, err := uploaderConfig(config.UploaderConfig{Category: "Socks"})
		assert.Error(t, err)
	})

	t.Run("rejects malformed price", func(t *testing.T) {
		_, err := uploaderConfig(config.UploaderConfig{MinPrice: "ten"})
		assert.Error(t, err)
	})
}

func TestApplyUploadFlags(t *testing.T) {
	cmd := newUploadDirCommand(&cli{})
	require.NoError(t, cmd.Flags().Set("category", "shoes"))
	require.NoError(t, cmd.Flags().Set("price", "12.00"))

	cfg, err := uploaderConfig(config.UploaderConfig{})
	require.NoError(t, err)
	require.NoError(t, applyUploadFlags(cmd, cfg, "shoes", "", "", "12.00"))

	assert.Equal(t, model.CategoryShoes, cfg.Category)
	assert.Equal(t, "Unknown", cfg.Brand)
	assert.True(t, cfg.Price.Equal(decimal.NewFromInt(12)))

	require.NoError(t, cmd.Flags().Set("price", "0"))
	assert.Error(t, applyUploadFlags(cmd, cfg, "shoes", "", "", "0"))
}

func TestRootCommand(t *testing.T) {
	root := NewRootCommand()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"outfit", "upload", "upload-dir", "migrate"}, names)
}
