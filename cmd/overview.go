package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/rosterlens/internal/analysis"
)

var (
	ovOutputPath string
	ovFormat     string
	ovHead       int
)

var overviewCmd = &cobra.Command{
	Use:   "overview <file>",
	Short: "Summarize a roster: size, column profile and the first rows",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		rep := &analysis.Report{
			Title:   "Overview",
			Dataset: ds,
			Columns: analysis.Profile(ds),
		}
		if ovHead > 0 {
			n := min(ovHead, ds.Len())
			rep.Records = ds.Records[:n]
		}
		return emitReport(cmd, rep, ovFormat, ovOutputPath)
	},
}

// emitReport renders rep as markdown or html and prints or writes it.
func emitReport(cmd *cobra.Command, rep *analysis.Report, format, output string) error {
	var out []byte
	switch format {
	case "", "md", "markdown":
		out = []byte(rep.Markdown())
	case "html":
		out = rep.HTML()
	default:
		return fmt.Errorf("unsupported --format: %s (use md|html)", format)
	}
	if output != "" {
		return writeOutput(cmd, output, out, "report")
	}
	_, err := cmd.OutOrStdout().Write(out)
	return err
}

func init() {
	rootCmd.AddCommand(overviewCmd)
	overviewCmd.Flags().StringVarP(&ovOutputPath, "output", "o", "", "optional path to write the overview")
	overviewCmd.Flags().StringVar(&ovFormat, "format", "md", "output format: md|html")
	overviewCmd.Flags().IntVar(&ovHead, "head", 5, "number of leading rows to include (0 = none)")
}
