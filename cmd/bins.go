package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/rosterlens/internal/analysis"
	"github.com/KaramelBytes/rosterlens/internal/dashboard"
)

var (
	binColumn     string
	binEdges      string
	binLabels     []string
	binGroup      string
	binValue      string
	binRecords    bool
	binFormat     string
	binOutputPath string
)

var binsCmd = &cobra.Command{
	Use:   "bins <file>",
	Short: "Cross-tabulate a value column by group and numeric interval",
	Long: `Assign every record to a half-open interval [lo, hi) of --bin-column and
summarize --value per (group, interval). Records outside every interval are
counted and excluded. --records lists the records with their interval label.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		bins, err := configuredBins(binEdges, binLabels)
		if err != nil {
			return err
		}
		col := orDefault(binColumn, cfg.AgeColumn)
		group := orDefault(binGroup, cfg.GroupColumn)
		value := orDefault(binValue, cfg.ValueColumn)

		s := dashboard.NewSession(ds, logger)
		ct, err := s.CrossTab(bins, col, group, value)
		if err != nil {
			return err
		}
		rep := &analysis.Report{
			Title:   fmt.Sprintf("%s by %s and %s interval", value, group, col),
			Dataset: ds,
			Cross:   ct,
		}
		if binRecords {
			labelCol := col + " Group"
			labeled, err := bins.Label(ds.Records, col, labelCol)
			if err != nil {
				return err
			}
			rep.Records = labeled
			rep.RecordColumns = append(append([]string(nil), ds.Columns...), labelCol)
		}
		return emitReport(cmd, rep, binFormat, binOutputPath)
	},
}

// configuredBins builds intervals from --edges/--labels, falling back to the
// configured age intervals.
func configuredBins(edgeList string, labelList []string) (*analysis.Bins, error) {
	edges := cfg.AgeEdges
	if strings.TrimSpace(edgeList) != "" {
		e, err := parseFloats(edgeList)
		if err != nil {
			return nil, fmt.Errorf("parse --edges: %w", err)
		}
		edges = e
	}
	labels := cfg.AgeLabels
	if len(labelList) > 0 {
		labels = labelList
	}
	return analysis.NewBins(edges, labels)
}

func init() {
	rootCmd.AddCommand(binsCmd)
	binsCmd.Flags().StringVar(&binColumn, "bin-column", "", "numeric column to bin (default age_column)")
	binsCmd.Flags().StringVar(&binEdges, "edges", "", "comma-separated interval edges, strictly increasing (default age_edges)")
	binsCmd.Flags().StringSliceVar(&binLabels, "labels", nil, "interval labels, one fewer than edges (default lo-hi)")
	binsCmd.Flags().StringVar(&binGroup, "group", "", "column to group by (default group_column)")
	binsCmd.Flags().StringVar(&binValue, "value", "", "numeric column to summarize (default value_column)")
	binsCmd.Flags().BoolVar(&binRecords, "records", false, "also list binned records with their interval")
	binsCmd.Flags().StringVar(&binFormat, "format", "md", "output format: md|html")
	binsCmd.Flags().StringVarP(&binOutputPath, "output", "o", "", "optional path to write the report")
}
