package cmd

import (
	"fmt"
	"log/slog"
	"os"

	cfgpkg "github.com/KaramelBytes/pageviews-cli/internal/config"
	"github.com/KaramelBytes/pageviews-cli/internal/dataset"
	"github.com/KaramelBytes/pageviews-cli/internal/logging"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile   string
	debug     bool
	logLevel  string
	logFormat string
	// Input flags (override config if set)
	flagDateColumn  string
	flagValueColumn string
	flagDateLayout  string
	flagSheetName   string
	flagSheetIndex  int

	// Loaded configuration
	cfg *cfgpkg.Global
	// Logger for the current run; records carry a run_id attribute
	logger   *slog.Logger
	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "pageviews",
	Short: "Clean and chart daily page-view time series",
	Long: `pageviews loads a daily page-view series (CSV/TSV/XLSX with date and value
columns), drops the values outside the 2.5th..97.5th percentile band and draws
a line chart, a monthly average bar chart and year/month box plots.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Hooks are attached here rather than in the literal above to avoid an
	// initialization cycle (setup refers to rootCmd).
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	}
	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return closeLog()
	}

	// Persistent global flags available to all subcommands
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ~/.pageviews/config.yaml)")
	pf.BoolVar(&debug, "debug", false, "enable debug output (same as --log-level debug)")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
	pf.StringVar(&logFormat, "log-format", "", "log format: text|json (overrides config)")
	pf.StringVar(&flagDateColumn, "date-column", "", "name of the date column (overrides config)")
	pf.StringVar(&flagValueColumn, "value-column", "", "name of the value column (overrides config)")
	pf.StringVar(&flagDateLayout, "date-layout", "", "Go time layout for the date column (overrides config)")
	pf.StringVar(&flagSheetName, "sheet-name", "", "XLSX: sheet name to read (overrides config)")
	pf.IntVar(&flagSheetIndex, "sheet-index", 0, "XLSX: 1-based sheet index (overrides config)")
}

// setup loads the configuration, applies CLI overrides and builds the logger.
func setup(cmd *cobra.Command) error {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		return err
	}
	cfg = c

	// Apply CLI overrides if provided
	f := rootCmd.PersistentFlags()
	if f.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if f.Changed("log-format") {
		cfg.LogFormat = logFormat
	}
	if debug {
		cfg.LogLevel = "debug"
	}
	if f.Changed("date-column") && flagDateColumn != "" {
		cfg.DateColumn = flagDateColumn
	}
	if f.Changed("value-column") && flagValueColumn != "" {
		cfg.ValueColumn = flagValueColumn
	}
	if f.Changed("date-layout") {
		cfg.DateLayout = flagDateLayout
	}
	if f.Changed("sheet-name") {
		cfg.SheetName = flagSheetName
	}
	if f.Changed("sheet-index") && flagSheetIndex > 0 {
		cfg.SheetIndex = flagSheetIndex
	}

	l, closeFn, err := logging.New(logging.Config{
		Level:    cfg.LogLevel,
		Format:   cfg.LogFormat,
		FilePath: cfg.LogFile,
	}, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	logger = l.With(slog.String("run_id", uuid.NewString()))
	closeLog = closeFn
	logger.Debug("configuration loaded",
		slog.String("command", cmd.Name()),
		slog.String("config", cfgFile),
		slog.String("output_dir", cfg.OutputDir))
	return nil
}

// loadTable reads the data file named by args[0], or the configured data_file.
func loadTable(args []string) (*dataset.Table, error) {
	path := cfg.DataFile
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return nil, fmt.Errorf("no data file given (pass <file> or set data_file)")
	}
	t, err := dataset.Load(path, dataset.Options{
		DateColumn:  cfg.DateColumn,
		ValueColumn: cfg.ValueColumn,
		DateLayout:  cfg.DateLayout,
		SheetName:   cfg.SheetName,
		SheetIndex:  cfg.SheetIndex,
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("dataset loaded", slog.String("path", path), slog.Int("rows", t.Len()))
	return t, nil
}
