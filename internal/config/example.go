package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# Todo configuration file
# Every value can be overridden by environment variables (TODO_*) or CLI flags

# Seed file with demo tasks, loaded read-only at startup
# seed_file = "demo.json"

# Log directory (supports ~ and $VAR expansion)
log_dir = "~/.todo"

# Pre-filled values for new tasks
default_priority = "medium"
default_category = "general"

# Initial view state: all, active, or completed
filter = "all"

# Initial sort: priority, date, or none
sort = "priority"

# Write a JSONL event log for each session
session_log = true

# Console logging
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false
`
}
