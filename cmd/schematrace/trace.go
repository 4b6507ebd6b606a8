package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schematrace/schematrace/application/checker"
	"github.com/schematrace/schematrace/infrastructure/report"
	"github.com/schematrace/schematrace/internal/config"
)

func traceCmd() *cobra.Command {
	var (
		flags            checkerFlags
		storyDocs        []string
		testMatrix       string
		featureInventory string
		overrides        string
		outDir           string
	)

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Build the requirement traceability report",
		Long: `Merge three sources in precedence order: baseline links from the test
matrix and feature inventory documents, requirement-tag annotations found in
source comments (authoritative per file type), and manual overrides
(metadata fields only). Derives an implementation status per requirement
and a bidirectional requirement/file index.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := flags.setup()
			if err != nil {
				return err
			}

			var opts []config.AppConfigOption
			if len(storyDocs) > 0 {
				opts = append(opts, config.WithStoryDocs(storyDocs))
			}
			if testMatrix != "" {
				opts = append(opts, config.WithTestMatrixPath(testMatrix))
			}
			if featureInventory != "" {
				opts = append(opts, config.WithFeatureInventoryPath(featureInventory))
			}
			if overrides != "" {
				opts = append(opts, config.WithOverridesPath(overrides))
			}
			cfg = cfg.Apply(opts...)

			result := checker.NewTraceChecker(cfg, flags.root, logger.Slog()).Run()

			if outDir != "" {
				if err := report.WriteTraceArtifacts(outDir, version, result); err != nil {
					return fmt.Errorf("write artifacts: %w", err)
				}
			}
			return emit(&flags, result, func() {
				report.WriteTraceText(os.Stdout, result)
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringArrayVar(&storyDocs, "stories", nil, "Story markdown document relative to root (repeatable)")
	cmd.Flags().StringVar(&testMatrix, "test-matrix", "", "Baseline test-matrix document relative to root")
	cmd.Flags().StringVar(&featureInventory, "feature-inventory", "", "Baseline feature-inventory document relative to root")
	cmd.Flags().StringVar(&overrides, "overrides", "", "Manual override YAML document relative to root")
	cmd.Flags().StringVar(&outDir, "out", "", "Directory for generated artifacts (traceability JSON, gap and orphan reports)")
	return cmd
}
