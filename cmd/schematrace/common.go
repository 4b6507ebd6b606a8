package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/schematrace/schematrace/infrastructure/report"
	"github.com/schematrace/schematrace/internal/config"
	"github.com/schematrace/schematrace/internal/log"
)

// checkerFlags are the flags shared by every checker command.
type checkerFlags struct {
	envFile     string
	root        string
	schemaDir   string
	sourceRoots []string
	exclude     []string
	jsonOutput  bool
	ciMode      bool
}

func (f *checkerFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&f.root, "root", ".", "Project root directory")
	cmd.Flags().StringVar(&f.schemaDir, "schema-dir", "", "Schema-definition directory relative to root")
	cmd.Flags().StringArrayVar(&f.sourceRoots, "source-root", nil, "Application source root relative to root (repeatable)")
	cmd.Flags().StringArrayVar(&f.exclude, "exclude", nil, "Extra scan exclusion pattern (repeatable)")
	cmd.Flags().BoolVar(&f.jsonOutput, "json", false, "Emit a single JSON document instead of a formatted report")
	cmd.Flags().BoolVar(&f.ciMode, "ci", false, "Exit with code 1 when error-level findings exist")
}

// setup loads config, applies flag overrides, and configures logging.
func (f *checkerFlags) setup() (config.AppConfig, *log.Logger, error) {
	cfg, err := loadConfig(f.envFile)
	if err != nil {
		return config.AppConfig{}, nil, err
	}

	var opts []config.AppConfigOption
	if f.schemaDir != "" {
		opts = append(opts, config.WithSchemaDir(f.schemaDir))
	}
	if len(f.sourceRoots) > 0 {
		opts = append(opts, config.WithSourceRoots(f.sourceRoots))
	}
	if len(f.exclude) > 0 {
		opts = append(opts, config.WithExcludePatterns(append(cfg.ExcludePatterns(), f.exclude...)))
	}
	cfg = cfg.Apply(opts...)

	logger := log.Configure(cfg)
	return cfg, logger, nil
}

// emit renders the report and translates CI mode into the findings
// sentinel. JSON goes to stdout untouched by logging.
func emit(f *checkerFlags, body interface {
	HasErrors() bool
}, writeText func()) error {
	if f.jsonOutput {
		data, err := report.MarshalJSONReport(version, body)
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(data))
	} else {
		writeText()
	}
	if f.ciMode && body.HasErrors() {
		return errFindings
	}
	return nil
}
