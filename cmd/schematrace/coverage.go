package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/schematrace/schematrace/application/checker"
	"github.com/schematrace/schematrace/infrastructure/report"
	"github.com/schematrace/schematrace/internal/config"
)

func coverageCmd() *cobra.Command {
	var (
		flags         checkerFlags
		knownExternal []string
	)

	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Diff table usage in code against schema declarations",
		Long: `Scan the application source tree for table accessor call-sites and
compute both set differences against the declared schema: tables referenced
but never declared (errors) and tables declared but never referenced
(warnings). Known-external tables are subtracted before either difference.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := flags.setup()
			if err != nil {
				return err
			}
			if len(knownExternal) > 0 {
				cfg = cfg.Apply(config.WithKnownExternal(append(cfg.KnownExternal(), knownExternal...)))
			}
			result := checker.NewCoverageChecker(cfg, flags.root, logger.Slog()).Run()
			return emit(&flags, result, func() {
				report.WriteCoverageText(os.Stdout, result)
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringArrayVar(&knownExternal, "known-external", nil, "Table name intentionally absent from the schema (repeatable)")
	return cmd
}
