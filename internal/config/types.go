package config

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
}

// Default values.
const (
	DefaultLogDir     = "~/.todo"
	DefaultPriority   = "medium"
	DefaultCategory   = "general"
	DefaultFilter     = "all"
	DefaultSort       = "priority"
	DefaultSessionLog = true
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "text"
)

// Config holds the full configuration for todo.
type Config struct {
	// Paths
	SeedFile string `toml:"seed_file"`
	LogDir   string `toml:"log_dir"`

	// Pre-filled values for new tasks
	DefaultPriority string `toml:"default_priority"`
	DefaultCategory string `toml:"default_category"`

	// Initial view state
	Filter string `toml:"filter"`
	Sort   string `toml:"sort"`

	// Session event log
	SessionLog bool `toml:"session_log"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Working directory (computed)
	WorkDir string `toml:"-"`
}
