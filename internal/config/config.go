// Package config provides application configuration.
package config

import (
	"log/slog"
	"strings"
)

// Default configuration values.
const (
	DefaultLogLevel    = "INFO"
	DefaultSchemaDir   = "src/db/schema"
	DefaultWorkerCount = 4
)

// DefaultSourceRoots are the application trees scanned when none are
// configured.
var DefaultSourceRoots = []string{"src", "app"}

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// AppConfig holds the main application configuration.
type AppConfig struct {
	schemaDir        string
	sourceRoots      []string
	storyDocs        []string
	testMatrixPath   string
	featureInventory string
	overridesPath    string
	knownExternal    []string
	excludePatterns  []string
	workerCount      int
	logLevel         string
	logFormat        LogFormat
}

// NewAppConfig creates a new AppConfig with defaults.
func NewAppConfig() AppConfig {
	return AppConfig{
		schemaDir:   DefaultSchemaDir,
		sourceRoots: append([]string(nil), DefaultSourceRoots...),
		workerCount: DefaultWorkerCount,
		logLevel:    DefaultLogLevel,
		logFormat:   LogFormatPretty,
	}
}

// SchemaDir returns the schema-definition directory.
func (c AppConfig) SchemaDir() string { return c.schemaDir }

// SourceRoots returns the application source roots to scan.
func (c AppConfig) SourceRoots() []string {
	return append([]string(nil), c.sourceRoots...)
}

// StoryDocs returns the story documents defining the requirement universe.
func (c AppConfig) StoryDocs() []string {
	return append([]string(nil), c.storyDocs...)
}

// TestMatrixPath returns the baseline test-matrix document path.
func (c AppConfig) TestMatrixPath() string { return c.testMatrixPath }

// FeatureInventoryPath returns the baseline feature-inventory document path.
func (c AppConfig) FeatureInventoryPath() string { return c.featureInventory }

// OverridesPath returns the manual override document path.
func (c AppConfig) OverridesPath() string { return c.overridesPath }

// KnownExternal returns table names intentionally not modeled in the schema.
func (c AppConfig) KnownExternal() []string {
	return append([]string(nil), c.knownExternal...)
}

// ExcludePatterns returns extra scan exclusion patterns.
func (c AppConfig) ExcludePatterns() []string {
	return append([]string(nil), c.excludePatterns...)
}

// WorkerCount returns the file-read worker pool size.
func (c AppConfig) WorkerCount() int { return c.workerCount }

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithSchemaDir sets the schema-definition directory.
func WithSchemaDir(dir string) AppConfigOption {
	return func(c *AppConfig) { c.schemaDir = dir }
}

// WithSourceRoots sets the application source roots.
func WithSourceRoots(roots []string) AppConfigOption {
	return func(c *AppConfig) {
		c.sourceRoots = append([]string(nil), roots...)
	}
}

// WithStoryDocs sets the story documents.
func WithStoryDocs(docs []string) AppConfigOption {
	return func(c *AppConfig) {
		c.storyDocs = append([]string(nil), docs...)
	}
}

// WithTestMatrixPath sets the test-matrix document path.
func WithTestMatrixPath(path string) AppConfigOption {
	return func(c *AppConfig) { c.testMatrixPath = path }
}

// WithFeatureInventoryPath sets the feature-inventory document path.
func WithFeatureInventoryPath(path string) AppConfigOption {
	return func(c *AppConfig) { c.featureInventory = path }
}

// WithOverridesPath sets the override document path.
func WithOverridesPath(path string) AppConfigOption {
	return func(c *AppConfig) { c.overridesPath = path }
}

// WithKnownExternal sets the known-external table allow-list.
func WithKnownExternal(names []string) AppConfigOption {
	return func(c *AppConfig) {
		c.knownExternal = append([]string(nil), names...)
	}
}

// WithExcludePatterns sets extra scan exclusion patterns.
func WithExcludePatterns(patterns []string) AppConfigOption {
	return func(c *AppConfig) {
		c.excludePatterns = append([]string(nil), patterns...)
	}
}

// WithWorkerCount sets the worker pool size.
func WithWorkerCount(n int) AppConfigOption {
	return func(c *AppConfig) {
		if n > 0 {
			c.workerCount = n
		}
	}
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// NewAppConfigWithOptions creates an AppConfig with functional options.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	c := NewAppConfig()
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Apply returns a new AppConfig with the given options applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// LogAttrs returns slog attributes describing the configuration.
func (c AppConfig) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("schema_dir", c.schemaDir),
		slog.String("source_roots", strings.Join(c.sourceRoots, ",")),
		slog.Int("workers", c.workerCount),
		slog.String("log_level", c.logLevel),
	}
}

// ParseList parses a comma-separated string into trimmed, non-empty items.
func ParseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}
