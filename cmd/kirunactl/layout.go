package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kiruna-explorer/internal/diagram"
	"kiruna-explorer/internal/logger"
	"kiruna-explorer/internal/model"
	"kiruna-explorer/internal/style"
)

func newLayoutCmd() *cobra.Command {
	var (
		width, height float64
		seed          uint64
		stylePath     string
		yearMin       int
		yearMax       int
	)
	cmd := &cobra.Command{
		Use:   "layout [docs.json]",
		Short: "Compute the diagram layout for a JSON array of documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read documents: %w", err)
			}
			var docs []model.Document
			if err := json.Unmarshal(data, &docs); err != nil {
				return fmt.Errorf("parse documents: %w", err)
			}
			styles, err := style.Load(stylePath)
			if err != nil {
				return err
			}
			if width <= 0 || height <= 0 {
				return fmt.Errorf("width and height must be positive")
			}
			cfg := diagram.DefaultConfig()
			if yearMin < yearMax {
				cfg.YearMin, cfg.YearMax = yearMin, yearMax
			}
			vp := diagram.Viewport{Width: width, Height: height}
			res := diagram.New(cfg, vp, diagram.NewSeeded(seed), styles).Compute(docs, vp)
			logger.L().Debug("layout_done", "placed", len(res.Positions), "links", len(res.Links), "skipped", res.Skipped)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
	cmd.Flags().Float64Var(&width, "width", 1200, "Viewport width in pixels")
	cmd.Flags().Float64Var(&height, "height", 800, "Viewport height in pixels")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "Jitter seed")
	cmd.Flags().StringVar(&stylePath, "style", "", "YAML style overrides")
	cmd.Flags().IntVar(&yearMin, "year-min", 2004, "First year on the time axis")
	cmd.Flags().IntVar(&yearMax, "year-max", 2026, "Last year on the time axis")
	return cmd
}
