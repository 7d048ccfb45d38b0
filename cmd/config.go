package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/rosterlens/internal/analysis"
	cfgpkg "github.com/KaramelBytes/rosterlens/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set rosterlens configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if cfg == nil {
			fmt.Fprintln(out, "No config loaded")
			return nil
		}
		fmt.Fprintf(out, "group_column: %s\n", cfg.GroupColumn)
		fmt.Fprintf(out, "value_column: %s\n", cfg.ValueColumn)
		fmt.Fprintf(out, "name_column: %s\n", cfg.NameColumn)
		fmt.Fprintf(out, "age_column: %s\n", cfg.AgeColumn)
		fmt.Fprintf(out, "city_column: %s\n", cfg.CityColumn)
		fmt.Fprintf(out, "lat_column: %s\n", cfg.LatColumn)
		fmt.Fprintf(out, "lon_column: %s\n", cfg.LonColumn)
		fmt.Fprintf(out, "age_edges: %s\n", joinFloats(cfg.AgeEdges))
		if len(cfg.AgeLabels) > 0 {
			fmt.Fprintf(out, "age_labels: %s\n", strings.Join(cfg.AgeLabels, ","))
		}
		fmt.Fprintf(out, "default_stat: %s\n", cfg.DefaultStat)
		fmt.Fprintf(out, "log_level: %s\n", cfg.LogLevel)
		fmt.Fprintf(out, "log_format: %s\n", cfg.LogFormat)
		if cfg.OutputDir != "" {
			fmt.Fprintf(out, "output_dir: %s\n", cfg.OutputDir)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Long:  "Set a config value and save to disk. Keys: " + strings.Join(cfgpkg.Keys, ", "),
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		if cfg == nil {
			c, err := cfgpkg.Load(cfgFile)
			if err != nil {
				return err
			}
			cfg = c
		}
		switch key {
		case "group_column":
			cfg.GroupColumn = val
		case "value_column":
			cfg.ValueColumn = val
		case "name_column":
			cfg.NameColumn = val
		case "age_column":
			cfg.AgeColumn = val
		case "city_column":
			cfg.CityColumn = val
		case "lat_column":
			cfg.LatColumn = val
		case "lon_column":
			cfg.LonColumn = val
		case "age_edges":
			edges, err := parseFloats(val)
			if err != nil {
				return fmt.Errorf("invalid age_edges: %w", err)
			}
			if _, err := analysis.NewBins(edges, nil); err != nil {
				return err
			}
			cfg.AgeEdges = edges
		case "age_labels":
			var labels []string
			for _, l := range strings.Split(val, ",") {
				if l = strings.TrimSpace(l); l != "" {
					labels = append(labels, l)
				}
			}
			cfg.AgeLabels = labels
		case "default_stat":
			if _, err := analysis.SelectStat(&analysis.Summary{}, val); err != nil {
				return fmt.Errorf("invalid default_stat: %s (use one of: %s)", val, strings.Join(analysis.StatNames, ", "))
			}
			cfg.DefaultStat = strings.ToLower(val)
		case "log_level":
			switch strings.ToLower(val) {
			case "debug", "info", "warn", "warning", "error":
				cfg.LogLevel = strings.ToLower(val)
			default:
				return fmt.Errorf("invalid log_level: %s (use debug|info|warn|error)", val)
			}
		case "log_format":
			switch strings.ToLower(val) {
			case "text", "json":
				cfg.LogFormat = strings.ToLower(val)
			default:
				return fmt.Errorf("invalid log_format: %s (use text|json)", val)
			}
		case "output_dir":
			cfg.OutputDir = val
		default:
			return fmt.Errorf("unknown key: %s", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
}

func joinFloats(fs []float64) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = fmt.Sprintf("%g", f)
	}
	return strings.Join(parts, ",")
}
