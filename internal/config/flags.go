package config

import (
	"flag"
)

// parseFlags defines and parses CLI flags.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	return parseFlagsHelper(cfg, fs, args, nil, "")
}

// parseFlagsWithSources parses CLI flags and updates source tracking.
func parseFlagsWithSources(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	return parseFlagsHelper(cfg, fs, args, sources, SourceFlag)
}

// parseFlagsHelper is the shared implementation for flag parsing.
// If sources is non-nil, it tracks the source of each value.
func parseFlagsHelper(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource, source ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("todo", flag.ContinueOnError)
	}

	// Track which flags are explicitly set (only used when sources != nil)
	flagSet := make(map[string]bool)

	var seedFile, logDir string
	var priority, category string
	var filter, sortKey string
	var sessionLog bool
	var logLevel, logFormat string
	var logTimestamps, logCaller bool

	if sources == nil {
		// Direct binding for non-source-tracking case
		fs.StringVar(&cfg.SeedFile, "seed", cfg.SeedFile, "Path to seed file with demo tasks")
		fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Log directory")
		fs.StringVar(&cfg.DefaultPriority, "priority", cfg.DefaultPriority, "Default priority for new tasks (low, medium, high)")
		fs.StringVar(&cfg.DefaultCategory, "category", cfg.DefaultCategory, "Default category for new tasks")
		fs.StringVar(&cfg.Filter, "filter", cfg.Filter, "Initial filter (all, active, completed)")
		fs.StringVar(&cfg.Sort, "sort", cfg.Sort, "Initial sort (priority, date, none)")
		fs.BoolVar(&cfg.SessionLog, "session-log", cfg.SessionLog, "Write a session event log")
		fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
		fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
		fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
		fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")
	} else {
		fs.StringVar(&seedFile, "seed", cfg.SeedFile, "")
		fs.StringVar(&logDir, "log-dir", cfg.LogDir, "")
		fs.StringVar(&priority, "priority", cfg.DefaultPriority, "")
		fs.StringVar(&category, "category", cfg.DefaultCategory, "")
		fs.StringVar(&filter, "filter", cfg.Filter, "")
		fs.StringVar(&sortKey, "sort", cfg.Sort, "")
		fs.BoolVar(&sessionLog, "session-log", cfg.SessionLog, "")
		fs.StringVar(&logLevel, "log-level", cfg.LogLevel, "")
		fs.StringVar(&logFormat, "log-format", cfg.LogFormat, "")
		fs.BoolVar(&logTimestamps, "log-timestamps", cfg.LogTimestamps, "")
		fs.BoolVar(&logCaller, "log-caller", cfg.LogCaller, "")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Map flag names to source field names
	flagToSource := map[string]string{
		"seed":           "seed_file",
		"log-dir":        "log_dir",
		"priority":       "default_priority",
		"category":       "default_category",
		"filter":         "filter",
		"sort":           "sort",
		"session-log":    "session_log",
		"log-level":      "log_level",
		"log-format":     "log_format",
		"log-timestamps": "log_timestamps",
		"log-caller":     "log_caller",
	}

	// Track which flags were set and apply to config
	fs.Visit(func(f *flag.Flag) {
		flagSet[f.Name] = true
		if sources == nil {
			return
		}
		if fieldName, ok := flagToSource[f.Name]; ok {
			sources[fieldName] = source
		}
	})

	if sources == nil {
		// Direct binding already applied
		return nil
	}

	// Apply based on which flags were set
	if flagSet["seed"] {
		cfg.SeedFile = seedFile
	}
	if flagSet["log-dir"] {
		cfg.LogDir = logDir
	}
	if flagSet["priority"] {
		cfg.DefaultPriority = priority
	}
	if flagSet["category"] {
		cfg.DefaultCategory = category
	}
	if flagSet["filter"] {
		cfg.Filter = filter
	}
	if flagSet["sort"] {
		cfg.Sort = sortKey
	}
	if flagSet["session-log"] {
		cfg.SessionLog = sessionLog
	}
	if flagSet["log-level"] {
		cfg.LogLevel = logLevel
	}
	if flagSet["log-format"] {
		cfg.LogFormat = logFormat
	}
	if flagSet["log-timestamps"] {
		cfg.LogTimestamps = logTimestamps
	}
	if flagSet["log-caller"] {
		cfg.LogCaller = logCaller
	}

	return nil
}
