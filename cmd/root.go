// Package cmd implements the CLI command structure for todo.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/zaim-abbasi/to-do-application/internal/config"
	"github.com/zaim-abbasi/to-do-application/internal/logging"
	"github.com/zaim-abbasi/to-do-application/internal/seed"
	"github.com/zaim-abbasi/to-do-application/internal/tasklist"
	"github.com/zaim-abbasi/to-do-application/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the todo CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// Determine the subcommand
	// If no args or first arg is a flag, start the interactive session
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		// Check if it looks like a subcommand (doesn't start with -)
		if !strings.HasPrefix(remainingArgs[0], "-") {
			subcommand = remainingArgs[0]
			remainingArgs = remainingArgs[1:]
		}
	}

	// Execute the subcommand
	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "ls":
		return lsCommand(cfg, remainingArgs)
	case "seed":
		return seedCommand(cfg, remainingArgs)
	case "config":
		return configCommand(cws, remainingArgs)
	case "doctor":
		return doctorCommand(cfg, remainingArgs)
	case "tail":
		return tailCommand(ctx, cfg, remainingArgs)
	case "version", "--version", "-v":
		return versionCommand()
	case "help", "--help", "-h":
		printUsage(fs, os.Stdout)
		return nil
	default:
		// A bare path to an existing file starts the session seeded from it
		if fi, err := os.Stat(subcommand); err == nil && !fi.IsDir() {
			cfg.SeedFile = absPath(cfg, subcommand)
			return tuiCommand(ctx, cfg, remainingArgs)
		}
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// tuiCommand starts the interactive session.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	// Parse tui-specific flags
	fs := flag.NewFlagSet("todo tui", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	if len(remaining) == 1 {
		cfg.SeedFile = absPath(cfg, remaining[0])
	}

	filter, sortKey, err := viewSettings(cfg)
	if err != nil {
		return err
	}
	priority, err := tasklist.ParsePriority(cfg.DefaultPriority)
	if err != nil {
		return fmt.Errorf("default_priority setting: %w", err)
	}

	list, seeded, err := loadList(cfg)
	if err != nil {
		return err
	}

	var events logging.EventWriter = logging.NullEventWriter{}
	if cfg.SessionLog {
		logger, err := logging.NewSessionLogger(cfg.LogDir)
		if err != nil {
			return fmt.Errorf("opening session log: %w", err)
		}
		defer logger.Close()
		events = logger.EventWriter()
	}

	_ = events.Write(logging.Event{
		Type:      logging.EventSessionStart,
		Timestamp: time.Now().UTC(),
		Count:     seeded,
	})

	runErr := ui.Run(ctx, list,
		ui.WithFilter(filter),
		ui.WithSort(sortKey),
		ui.WithDefaults(priority, cfg.DefaultCategory),
		ui.WithEvents(events),
	)

	_ = events.Write(logging.Event{
		Type:      logging.EventSessionEnd,
		Timestamp: time.Now().UTC(),
		Count:     list.Len(),
	})
	return runErr
}

// lsCommand prints one view of the seeded list and exits.
func lsCommand(cfg *config.Config, args []string) error {
	// Parse ls-specific flags
	fs := flag.NewFlagSet("todo ls", flag.ContinueOnError)
	filterFlag := fs.String("filter", cfg.Filter, "Completion filter (all|active|completed)")
	searchFlag := fs.String("search", "", "Case-insensitive text or tag match")
	sortFlag := fs.String("sort", cfg.Sort, "Sort key (none|priority|date)")
	verbose := fs.Bool("v", false, "Show ids and notes")

	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	// A bare filter name may come first: todo ls active demo.json
	if len(remaining) >= 1 {
		if f, err := tasklist.ParseFilter(remaining[0]); err == nil {
			*filterFlag = string(f)
			remaining = remaining[1:]
		}
	}
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	if len(remaining) == 1 {
		cfg.SeedFile = absPath(cfg, remaining[0])
	}

	filter, err := tasklist.ParseFilter(*filterFlag)
	if err != nil {
		return err
	}
	sortKey, err := tasklist.ParseSortKey(*sortFlag)
	if err != nil {
		return err
	}

	list, _, err := loadList(cfg)
	if err != nil {
		return err
	}

	tasks := list.View(tasklist.Query{Filter: filter, Search: *searchFlag, Sort: sortKey})

	events := logging.NewConsoleEventWriterFromConfig(
		cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller, "todo")
	_ = events.Write(logging.Event{
		Type:      logging.EventQuery,
		Timestamp: time.Now().UTC(),
		Filter:    string(filter),
		Search:    *searchFlag,
		Sort:      string(sortKey),
		Count:     len(tasks),
	})

	if len(tasks) == 0 {
		fmt.Println("No tasks.")
		return nil
	}
	for _, task := range tasks {
		printTask(task, *verbose)
	}
	active, completed := list.Counts()
	fmt.Printf("\n%d active, %d completed\n", active, completed)
	return nil
}

// seedCommand validates a seed file or prints an example one.
func seedCommand(cfg *config.Config, args []string) error {
	// Parse seed-specific flags
	fs := flag.NewFlagSet("todo seed", flag.ContinueOnError)
	example := fs.Bool("example", false, "Print an example seed file")
	check := fs.Bool("check", false, "Validate only, skip the load report")
	schemaPath := fs.String("schema", "", "JSON schema to validate against (default: bundled)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *example {
		fmt.Println(seed.Example())
		return nil
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	path := cfg.SeedFile
	if len(remaining) == 1 {
		path = absPath(cfg, remaining[0])
	}
	if path == "" {
		return fmt.Errorf("no seed file: pass a path or set seed_file in the config")
	}

	f, err := seed.Load(path)
	if err != nil {
		return err
	}

	fmt.Printf("Seed file: %s\n", path)
	result := f.Validate(seed.ValidationOptions{SchemaPath: *schemaPath})
	for _, w := range result.Warnings {
		fmt.Printf("  ⚠️  %s\n", w)
	}
	if !result.Valid {
		fmt.Println("  ❌ Validation failed:")
		for _, e := range result.Errors {
			fmt.Printf("     - %v\n", e)
		}
		return fmt.Errorf("seed file is invalid")
	}
	fmt.Printf("  ✅ Valid: %d task record(s) (%s schema)\n", len(f.Tasks), result.UsedSchema)

	if *check {
		return nil
	}

	// Apply to a throwaway list to prove every record loads
	list := tasklist.New()
	applied, err := f.Apply(list)
	if err != nil {
		return fmt.Errorf("loading records: %w", err)
	}
	active, completed := list.Counts()
	fmt.Printf("  ✅ Loads cleanly: %d task(s), %d active, %d completed\n", applied, active, completed)
	return nil
}

// configCommand prints the resolved configuration or an example file.
func configCommand(cws *config.ConfigWithSources, args []string) error {
	// Parse config-specific flags
	fs := flag.NewFlagSet("todo config", flag.ContinueOnError)
	example := fs.Bool("example", false, "Print an example config file")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *example {
		fmt.Print(config.ExampleConfig())
		return nil
	}

	cfg := cws.Config
	printSetting := func(key, value string) {
		fmt.Printf("  %-18s %-32s (%s)\n", key, value, cws.Sources[key])
	}

	fmt.Println("Configuration:")
	printSetting("seed_file", orNone(cfg.SeedFile))
	printSetting("log_dir", cfg.LogDir)
	printSetting("default_priority", cfg.DefaultPriority)
	printSetting("default_category", cfg.DefaultCategory)
	printSetting("filter", cfg.Filter)
	printSetting("sort", orNone(cfg.Sort))
	printSetting("session_log", strconv.FormatBool(cfg.SessionLog))
	printSetting("log_level", cfg.LogLevel)
	printSetting("log_format", cfg.LogFormat)
	printSetting("log_timestamps", strconv.FormatBool(cfg.LogTimestamps))
	printSetting("log_caller", strconv.FormatBool(cfg.LogCaller))

	if file := cws.GetConfigFile(); file != "" {
		fmt.Printf("\nConfig file: %s\n", file)
	} else {
		fmt.Println("\nConfig file: (none found)")
	}
	return nil
}

// doctorCommand checks config values, the seed file, the log directory,
// and the terminal.
func doctorCommand(cfg *config.Config, args []string) error {
	// Parse doctor-specific flags
	fs := flag.NewFlagSet("todo doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")
	schemaPath := fs.String("schema", "", "JSON schema override for seed validation")

	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	seedPath := cfg.SeedFile
	if len(remaining) == 1 {
		seedPath = absPath(cfg, remaining[0])
	}

	fmt.Println("Todo Doctor")
	fmt.Println("===========")
	fmt.Println()

	allOK := true

	// Check config values
	fmt.Println("Config:")
	if filter, err := tasklist.ParseFilter(cfg.Filter); err != nil {
		fmt.Printf("  ❌ Filter: %s (expected all|active|completed)\n", cfg.Filter)
		allOK = false
	} else {
		fmt.Printf("  ✅ Filter: %s\n", filter)
	}
	if sortKey, err := tasklist.ParseSortKey(cfg.Sort); err != nil {
		fmt.Printf("  ❌ Sort: %s (expected none|priority|date)\n", cfg.Sort)
		allOK = false
	} else if sortKey == tasklist.SortNone {
		fmt.Println("  ✅ Sort: insertion order")
	} else {
		fmt.Printf("  ✅ Sort: %s\n", sortKey)
	}
	if priority, err := tasklist.ParsePriority(cfg.DefaultPriority); err != nil {
		fmt.Printf("  ❌ Default priority: %s (expected low|medium|high)\n", cfg.DefaultPriority)
		allOK = false
	} else {
		fmt.Printf("  ✅ Default priority: %s\n", priority)
	}
	if strings.TrimSpace(cfg.DefaultCategory) == "" {
		fmt.Printf("  ⚠️  Default category: empty (tasks will use %q)\n", tasklist.DefaultCategory)
	} else {
		fmt.Printf("  ✅ Default category: %s\n", cfg.DefaultCategory)
	}
	switch strings.ToLower(strings.TrimSpace(cfg.LogLevel)) {
	case "debug", "info", "warn", "warning", "error", "fatal":
		fmt.Printf("  ✅ Log level: %s\n", cfg.LogLevel)
	default:
		fmt.Printf("  ⚠️  Log level: %s (unknown, falls back to info)\n", cfg.LogLevel)
	}
	fmt.Println()

	// Check seed file
	if seedPath == "" {
		fmt.Println("Seed file: (none configured)")
		fmt.Println("  ⚠️  Sessions start empty")
	} else {
		fmt.Printf("Seed file: %s\n", seedPath)
		info, err := os.Stat(seedPath)
		if err != nil {
			if os.IsNotExist(err) {
				fmt.Println("  ❌ Not found")
			} else {
				fmt.Printf("  ❌ Error: %v\n", err)
			}
			allOK = false
		} else if info.IsDir() {
			fmt.Println("  ❌ Error: path is a directory")
			allOK = false
		} else if f, loadErr := seed.Load(seedPath); loadErr != nil {
			fmt.Printf("  ❌ Load error: %v\n", loadErr)
			allOK = false
		} else {
			result := f.Validate(seed.ValidationOptions{SchemaPath: *schemaPath})
			for _, w := range result.Warnings {
				fmt.Printf("  ⚠️  %s\n", w)
			}
			if result.Valid {
				fmt.Printf("  ✅ Valid: %d task record(s)\n", len(f.Tasks))
			} else {
				fmt.Println("  ❌ Validation failed:")
				for _, e := range result.Errors {
					fmt.Printf("     - %v\n", e)
				}
				allOK = false
			}
			if *verbose {
				for _, rec := range f.Tasks {
					fmt.Printf("    - %s\n", rec.Text)
				}
			}
		}
	}
	fmt.Println()

	// Check log directory
	fmt.Printf("Log directory: %s\n", cfg.LogDir)
	if !cfg.SessionLog {
		fmt.Println("  ⚠️  Session log disabled")
	} else if _, err := os.Stat(cfg.LogDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("  ⚠️  Not found (will be created on first session)")
		} else {
			fmt.Printf("  ❌ Error: %v\n", err)
			allOK = false
		}
	} else {
		fmt.Println("  ✅ OK")
		if *verbose {
			latest, err := logging.FindLatestLog(logging.SessionsDir(cfg.LogDir))
			if err == nil && latest != "" {
				fmt.Printf("  Latest session: %s\n", latest)
			}
		}
	}
	fmt.Println()

	// Check terminal
	fmt.Println("Terminal:")
	if ui.IsTTY(os.Stdout) {
		fmt.Println("  ✅ TTY detected")
	} else {
		fmt.Println("  ⚠️  Not a TTY (tui will not start; ls still works)")
	}
	fmt.Println()

	// Overall status
	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed. Todo may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

// tailCommand prints the latest session log.
func tailCommand(ctx context.Context, cfg *config.Config, args []string) error {
	// Parse tail-specific flags
	fs := flag.NewFlagSet("todo tail", flag.ContinueOnError)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	logPath, err := logging.FindLatestLog(logging.SessionsDir(cfg.LogDir))
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Println("No session logs found.")
		return nil
	}

	fmt.Printf("Tailing: %s\n", logPath)
	if *follow {
		fmt.Println("(Ctrl+C to stop)")
	}
	fmt.Println()

	return logging.TailLog(ctx, os.Stdout, logPath, *n, *follow)
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("todo version %s\n", Version)
	return nil
}

// viewSettings parses the view keys out of the config.
func viewSettings(cfg *config.Config) (tasklist.Filter, tasklist.SortKey, error) {
	filter, err := tasklist.ParseFilter(cfg.Filter)
	if err != nil {
		return "", "", fmt.Errorf("filter setting: %w", err)
	}
	sortKey, err := tasklist.ParseSortKey(cfg.Sort)
	if err != nil {
		return "", "", fmt.Errorf("sort setting: %w", err)
	}
	return filter, sortKey, nil
}

// loadList builds the in-memory list, seeded from cfg.SeedFile when set.
func loadList(cfg *config.Config) (*tasklist.List, int, error) {
	list := tasklist.New()
	if cfg.SeedFile == "" {
		return list, 0, nil
	}
	f, err := seed.Load(cfg.SeedFile)
	if err != nil {
		return nil, 0, err
	}
	applied, err := f.Apply(list)
	if err != nil {
		return nil, 0, fmt.Errorf("applying %s: %w", cfg.SeedFile, err)
	}
	return list, applied, nil
}

// absPath resolves p against the configured working directory.
func absPath(cfg *config.Config, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(cfg.WorkDir, p)
}

// orNone substitutes a marker for empty values in config output.
func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

// printTask prints a single task line.
func printTask(t tasklist.Task, verbose bool) {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	line := fmt.Sprintf("  %s %-6s %s", box, t.Priority, t.Text)
	if t.DueDate != nil {
		line += " due " + t.DueDate.Format(time.DateOnly)
	}
	if t.Category != "" {
		line += " @" + t.Category
	}
	for _, tag := range t.Tags {
		line += " #" + tag
	}
	fmt.Println(line)
	if verbose {
		fmt.Printf("      id: %s\n", t.ID)
		if t.Notes != "" {
			fmt.Printf("      notes: %s\n", t.Notes)
		}
	}
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Todo - An in-memory task list for one sitting")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todo [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui [file]           Start the interactive session (default command)")
	fmt.Fprintln(w, "  ls [filter] [file]   Print one view of the seeded list")
	fmt.Fprintln(w, "  seed [file]          Validate a seed file")
	fmt.Fprintln(w, "  config               Show the resolved configuration and its sources")
	fmt.Fprintln(w, "  doctor [file]        Check config, seed file, and log directory")
	fmt.Fprintln(w, "  tail                 Print the latest session log")
	fmt.Fprintln(w, "  version              Show version information")
	fmt.Fprintln(w, "  help                 Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options (use with 'ls' command):")
	fmt.Fprintln(w, "  -filter string")
	fmt.Fprintln(w, "        Completion filter (all|active|completed)")
	fmt.Fprintln(w, "  -search string")
	fmt.Fprintln(w, "        Case-insensitive text or tag match")
	fmt.Fprintln(w, "  -sort string")
	fmt.Fprintln(w, "        Sort key (none|priority|date)")
	fmt.Fprintln(w, "  -v    Show ids and notes")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Seed Options (use with 'seed' command):")
	fmt.Fprintln(w, "  -example")
	fmt.Fprintln(w, "        Print an example seed file")
	fmt.Fprintln(w, "  -check")
	fmt.Fprintln(w, "        Validate only, skip the load report")
	fmt.Fprintln(w, "  -schema string")
	fmt.Fprintln(w, "        JSON schema to validate against (default: bundled)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options (use with 'config' command):")
	fmt.Fprintln(w, "  -example")
	fmt.Fprintln(w, "        Print an example config file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options (use with 'tail' command):")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
}
