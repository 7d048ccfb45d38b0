package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/rosterlens/internal/config"
	"github.com/KaramelBytes/rosterlens/internal/dataset"
	"github.com/KaramelBytes/rosterlens/internal/logging"
	"github.com/KaramelBytes/rosterlens/internal/utils"
)

var (
	// Global flags
	cfgFile       string
	flagLogLevel  string
	flagLogFormat string
	flagDelimiter string
	flagSheet     string

	// Loaded configuration
	cfg    *cfgpkg.Global
	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "rosterlens",
	Short: "rosterlens: explore an employee roster from the terminal",
	Long: `rosterlens loads a CSV, TSV or XLSX roster and renders it through several views:
a filterable and sortable table, per-group statistics and charts, age interval
cross-tabs, a collapsible department tree and a map viewport.`,
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
	cobra.OnInitialize(loadConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.rosterlens/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug|info|warn|error (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log format: text|json (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | '|' | 'tab' (default from extension)")
	rootCmd.PersistentFlags().StringVar(&flagSheet, "sheet", "", "XLSX: sheet name or 1-based index (default first sheet)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults so read-only commands still work
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{
			GroupColumn: "Department", ValueColumn: "Salary", NameColumn: "Name",
			AgeColumn: "Age", CityColumn: "City", LatColumn: "lat", LonColumn: "lon",
			AgeEdges: []float64{20, 30, 40, 50, 60}, DefaultStat: "mean", LogLevel: "warn",
		}
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	if f.Changed("log-format") {
		cfg.LogFormat = flagLogFormat
	}
	logger = logging.Setup(cfg.LogLevel, cfg.LogFormat, os.Stderr)
}

// sourceOptions turns the global loader flags into dataset options.
func sourceOptions() (dataset.Options, error) {
	var opt dataset.Options
	switch strings.ToLower(strings.TrimSpace(flagDelimiter)) {
	case "":
	case ",", "comma":
		opt.Delimiter = ','
	case ";", "semicolon":
		opt.Delimiter = ';'
	case "|", "pipe":
		opt.Delimiter = '|'
	case "\t", "tab":
		opt.Delimiter = '\t'
	default:
		return opt, fmt.Errorf("unsupported --delimiter: %s", flagDelimiter)
	}
	if s := strings.TrimSpace(flagSheet); s != "" {
		if i, err := strconv.Atoi(s); err == nil {
			if i < 1 {
				return opt, fmt.Errorf("invalid --sheet index %d (1-based)", i)
			}
			opt.SheetIndex = i
		} else {
			opt.Sheet = s
		}
	}
	return opt, nil
}

// loadDataset reads the roster at path with the global loader flags.
func loadDataset(path string) (*dataset.Dataset, error) {
	opt, err := sourceOptions()
	if err != nil {
		return nil, err
	}
	ds, err := dataset.LoadFile(path, opt)
	if err != nil {
		return nil, err
	}
	logger.Info("dataset loaded", "path", path, "id", ds.ID, "rows", ds.Len(), "columns", len(ds.Columns))
	return ds, nil
}

// writeOutput writes data to path, placing bare file names under output_dir.
func writeOutput(cmd *cobra.Command, path string, data []byte, what string) error {
	path = utils.ResolveOutput(cfg.OutputDir, path)
	if err := utils.SafeWriteFile(path, data); err != nil {
		return fmt.Errorf("write %s: %w", what, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s to %s\n", what, path)
	return nil
}

// parseFloats parses a comma-separated list such as "20,30,40".
func parseFloats(s string) ([]float64, error) {
	var out []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f, ok := dataset.ParseFloat(part)
		if !ok {
			return nil, fmt.Errorf("invalid number %q", part)
		}
		out = append(out, f)
	}
	return out, nil
}

func orDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
