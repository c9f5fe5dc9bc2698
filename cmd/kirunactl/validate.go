package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"kiruna-explorer/internal/geo"
	"kiruna-explorer/internal/logger"
	"kiruna-explorer/internal/model"
	"kiruna-explorer/internal/validate"
)

var errInvalid = errors.New("document is invalid")

func newValidateCmd() *cobra.Command {
	var (
		boundaryPath string
		asForm       bool
	)
	cmd := &cobra.Command{
		Use:   "validate [doc.json]",
		Short: "Validate a document against the field rules and the municipality boundary",
		Long: `Validate a document JSON file and print the per-field error map.
With --form the file holds raw form input (separate date parts, "Other" type plus customType)
which is normalized before validation. Exits non-zero when the document is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read document: %w", err)
			}
			b, err := geo.LoadBoundaryFile("kiruna", boundaryPath)
			if err != nil {
				return fmt.Errorf("load boundary: %w", err)
			}

			var doc model.Document
			decodeErrs := validate.Errors{}
			if asForm {
				var f model.Form
				if err := json.Unmarshal(data, &f); err != nil {
					return fmt.Errorf("parse form: %w", err)
				}
				doc = f.Normalize()
			} else {
				doc, decodeErrs = validate.Decode(data)
			}
			errs := validate.Merge(decodeErrs, validate.Document(doc, b))
			logger.L().Debug("validate_done", "file", args[0], "errors", len(errs))

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(map[string]any{"valid": errs.Valid(), "errors": errs}); err != nil {
				return err
			}
			if !errs.Valid() {
				return errInvalid
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&boundaryPath, "boundary", filepath.Join("data", "boundary", "kiruna.geojson"), "GeoJSON boundary file")
	cmd.Flags().BoolVar(&asForm, "form", false, "Input is raw form data")
	return cmd
}
