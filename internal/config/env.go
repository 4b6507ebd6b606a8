package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix is stripped from environment variable names below.
const envPrefix = "SCHEMATRACE"

// EnvConfig holds all environment-based configuration. Field names map to
// environment variables with the SCHEMATRACE_ prefix.
type EnvConfig struct {
	// SchemaDir is the schema-definition directory.
	// Env: SCHEMATRACE_SCHEMA_DIR (default: src/db/schema)
	SchemaDir string `envconfig:"SCHEMA_DIR" default:"src/db/schema"`

	// SourceRoots is a comma-separated list of application source roots.
	// Env: SCHEMATRACE_SOURCE_ROOTS (default: src,app)
	SourceRoots string `envconfig:"SOURCE_ROOTS" default:"src,app"`

	// StoryDocs is a comma-separated list of story markdown documents.
	// Env: SCHEMATRACE_STORY_DOCS
	StoryDocs string `envconfig:"STORY_DOCS"`

	// TestMatrix is the baseline test-matrix document.
	// Env: SCHEMATRACE_TEST_MATRIX
	TestMatrix string `envconfig:"TEST_MATRIX"`

	// FeatureInventory is the baseline feature-inventory document.
	// Env: SCHEMATRACE_FEATURE_INVENTORY
	FeatureInventory string `envconfig:"FEATURE_INVENTORY"`

	// Overrides is the manual override YAML document.
	// Env: SCHEMATRACE_OVERRIDES
	Overrides string `envconfig:"OVERRIDES"`

	// KnownExternal is a comma-separated allow-list of table names
	// intentionally absent from the schema layer.
	// Env: SCHEMATRACE_KNOWN_EXTERNAL
	KnownExternal string `envconfig:"KNOWN_EXTERNAL"`

	// Exclude is a comma-separated list of extra scan exclusion patterns.
	// Env: SCHEMATRACE_EXCLUDE
	Exclude string `envconfig:"EXCLUDE"`

	// Workers is the file-read worker pool size.
	// Env: SCHEMATRACE_WORKERS (default: 4)
	Workers int `envconfig:"WORKERS" default:"4"`

	// LogLevel is the log verbosity level.
	// Env: SCHEMATRACE_LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: SCHEMATRACE_LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
}

// LoadFromEnv reads configuration from environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts environment configuration to an AppConfig.
func (e EnvConfig) ToAppConfig() AppConfig {
	format := LogFormatPretty
	if strings.EqualFold(e.LogFormat, string(LogFormatJSON)) {
		format = LogFormatJSON
	}
	return NewAppConfigWithOptions(
		WithSchemaDir(e.SchemaDir),
		WithSourceRoots(ParseList(e.SourceRoots)),
		WithStoryDocs(ParseList(e.StoryDocs)),
		WithTestMatrixPath(e.TestMatrix),
		WithFeatureInventoryPath(e.FeatureInventory),
		WithOverridesPath(e.Overrides),
		WithKnownExternal(ParseList(e.KnownExternal)),
		WithExcludePatterns(ParseList(e.Exclude)),
		WithWorkerCount(e.Workers),
		WithLogLevel(e.LogLevel),
		WithLogFormat(format),
	)
}
