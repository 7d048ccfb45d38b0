package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/rosterlens/internal/analysis"
	"github.com/KaramelBytes/rosterlens/internal/dashboard"
)

var (
	stGroup      string
	stValue      string
	stStat       string
	stFormat     string
	stOutputPath string
)

var statsCmd = &cobra.Command{
	Use:   "stats <file>",
	Short: "Descriptive statistics of a value column per group",
	Long: `Group the roster by --group and describe --value per group: count, mean,
population std, min, quartiles, max and sum. --stat picks one statistic for a
compact per-group listing (` + strings.Join(analysis.StatNames, ", ") + `).
Groups without any numeric value are reported as n/a.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		group := orDefault(stGroup, cfg.GroupColumn)
		value := orDefault(stValue, cfg.ValueColumn)
		statName := orDefault(stStat, cfg.DefaultStat)

		s := dashboard.NewSession(ds, logger)
		sum, err := s.Summary(group, value)
		if err != nil {
			return err
		}
		selected, err := analysis.SelectStat(sum, statName)
		if err != nil {
			return err
		}
		rep := &analysis.Report{
			Title:    fmt.Sprintf("%s by %s", value, group),
			Dataset:  ds,
			Summary:  sum,
			StatName: statName,
			Selected: selected,
		}
		return emitReport(cmd, rep, stFormat, stOutputPath)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&stGroup, "group", "", "column to group by (default group_column)")
	statsCmd.Flags().StringVar(&stValue, "value", "", "numeric column to describe (default value_column)")
	statsCmd.Flags().StringVar(&stStat, "stat", "", "statistic to list per group (default default_stat)")
	statsCmd.Flags().StringVar(&stFormat, "format", "md", "output format: md|html")
	statsCmd.Flags().StringVarP(&stOutputPath, "output", "o", "", "optional path to write the report")
}
