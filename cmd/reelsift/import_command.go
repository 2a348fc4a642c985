package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"reelsift/internal/sift"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var outFlag string
	var tagFlag string

	cmd := &cobra.Command{
		Use:   "import <prelist.csv>",
		Short: "Rebuild the Letterboxd import from an edited prelist",
		Long: "Reads a prelist CSV whose Approve column the operator has edited " +
			"(1/0, yes/no, true/false) and writes a fresh Letterboxd import file " +
			"from the approved rows.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if tagFlag != "" {
				cfg.Letterboxd.Tag = tagFlag
			}

			outPath := strings.TrimSpace(outFlag)
			if outPath == "" {
				outPath = importPathFor(args[0], cfg.Paths.OutputDir)
			}

			approved, err := sift.New(cfg, logger).BuildImport(args[0], outPath)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d rows)\n", outPath, approved)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "Destination for the import file")
	cmd.Flags().StringVar(&tagFlag, "tag", "", "Tag written into every import row (overrides config)")
	return cmd
}

// importPathFor derives the import filename from the prelist's, so a
// "20240101_ALL_prelist_review.csv" yields a matching
// "20240101_ALL_letterboxd_import.csv" in the output directory.
func importPathFor(prelistPath, outputDir string) string {
	base := filepath.Base(prelistPath)
	if strings.Contains(base, "prelist_review") {
		return filepath.Join(outputDir, strings.Replace(base, "prelist_review", "letterboxd_import", 1))
	}
	return filepath.Join(outputDir, "letterboxd_import.csv")
}
