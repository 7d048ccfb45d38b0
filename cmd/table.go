package cmd

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/rosterlens/internal/analysis"
	"github.com/KaramelBytes/rosterlens/internal/dashboard"
	"github.com/KaramelBytes/rosterlens/internal/view"
)

var (
	tblDept      string
	tblSearch    string
	tblSort      string
	tblDesc      bool
	tblRaw       bool
	tblListDepts bool
)

var tableCmd = &cobra.Command{
	Use:   "table <file>",
	Short: "Show the roster as a table, optionally filtered and sorted",
	Long: `Show the roster as a table. --dept keeps one group exactly, --search keeps
names containing the text (case-insensitive). Searching sorts by name unless
--sort is given. Filters apply before sorting.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if tblListDepts {
			if err := ds.Require(cfg.GroupColumn); err != nil {
				return err
			}
			for _, d := range view.Distinct(ds.Records, cfg.GroupColumn) {
				fmt.Fprintln(out, d)
			}
			return nil
		}

		s := dashboard.NewSession(ds, logger)
		var spec view.FilterSpec
		if tblDept != "" {
			spec.Predicates = append(spec.Predicates, view.Equals(cfg.GroupColumn, tblDept))
		}
		if tblSearch != "" {
			spec.Predicates = append(spec.Predicates, view.Contains(cfg.NameColumn, tblSearch))
		}
		if err := s.SetFilter(spec); err != nil {
			return err
		}
		sortSpec := view.ParseSortSpec(tblSort)
		if tblDesc {
			sortSpec.Desc = true
		}
		if sortSpec.IsZero() && tblSearch != "" {
			sortSpec.Column = cfg.NameColumn
		}
		if err := s.SetSort(sortSpec); err != nil {
			return err
		}
		recs, err := s.View()
		if err != nil {
			return err
		}

		if tblRaw {
			w := csv.NewWriter(out)
			_ = w.Write(ds.Columns)
			for _, r := range recs {
				row := make([]string, len(ds.Columns))
				for i, c := range ds.Columns {
					row[i] = r[c]
				}
				_ = w.Write(row)
			}
			w.Flush()
			return w.Error()
		}
		var b strings.Builder
		analysis.WriteTable(&b, ds.Columns, recs)
		fmt.Fprintf(&b, "\n%d of %d rows", len(recs), ds.Len())
		if !s.Query().Sort.IsZero() {
			fmt.Fprintf(&b, ", sorted by %s", s.Query().Sort)
		}
		b.WriteString("\n")
		_, err = fmt.Fprint(out, b.String())
		return err
	},
}

func init() {
	rootCmd.AddCommand(tableCmd)
	tableCmd.Flags().StringVar(&tblDept, "dept", "", "keep only this group (exact match on group_column)")
	tableCmd.Flags().StringVar(&tblSearch, "search", "", "keep names containing this text (case-insensitive)")
	tableCmd.Flags().StringVar(&tblSort, "sort", "", "sort column, optionally followed by asc|desc")
	tableCmd.Flags().BoolVar(&tblDesc, "desc", false, "sort descending")
	tableCmd.Flags().BoolVar(&tblRaw, "raw", false, "print CSV instead of a table")
	tableCmd.Flags().BoolVar(&tblListDepts, "list-depts", false, "list distinct groups in first-seen order and exit")
}
