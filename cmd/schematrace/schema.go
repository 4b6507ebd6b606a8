package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/schematrace/schematrace/application/checker"
	"github.com/schematrace/schematrace/infrastructure/report"
)

func schemaCmd() *cobra.Command {
	var flags checkerFlags

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Check foreign-key type consistency in the schema layer",
		Long: `Parse the schema-definition directory, resolve every foreign-key
relation through the entity symbol table, and report type mismatches
(errors) and unresolved targets (warnings).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := flags.setup()
			if err != nil {
				return err
			}
			result := checker.NewSchemaChecker(cfg, flags.root, logger.Slog()).Run()
			return emit(&flags, result, func() {
				report.WriteSchemaText(os.Stdout, result)
			})
		},
	}

	flags.register(cmd)
	return cmd
}
