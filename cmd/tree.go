package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/rosterlens/internal/dashboard"
)

var (
	trGroup   string
	trLabel   string
	trDetails []string
	trExpand  []string
	trToggle  []string
	trAll     bool
)

var treeCmd = &cobra.Command{
	Use:   "tree <file>",
	Short: "Show the roster as a collapsible group tree",
	Long: `Build one node per group (first-seen order) with one leaf per member.
Every node starts collapsed. --expand opens groups by label, --toggle flips
nodes by path ("1" is the second group, "1.0" its first member), --all opens
every group.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		details := trDetails
		if !cmd.Flags().Changed("details") && ds.Has(cfg.CityColumn) {
			details = []string{cfg.CityColumn}
		}
		s := dashboard.NewSession(ds, logger)
		t, err := s.Tree(orDefault(trGroup, cfg.GroupColumn), orDefault(trLabel, cfg.NameColumn), details...)
		if err != nil {
			return err
		}
		if trAll {
			for i := range t.Roots {
				if err := t.Expand(i); err != nil {
					return err
				}
			}
		}
		for _, label := range trExpand {
			i, ok := t.Find(label)
			if !ok {
				return fmt.Errorf("no group %q", label)
			}
			if err := t.Expand(i); err != nil {
				return err
			}
		}
		for _, p := range trToggle {
			path, err := parsePath(p)
			if err != nil {
				return err
			}
			if err := s.Toggle(path...); err != nil {
				return fmt.Errorf("toggle %s: %w", p, err)
			}
		}
		return t.Render(cmd.OutOrStdout())
	},
}

// parsePath reads a dotted node path such as "2" or "2.0".
func parsePath(s string) ([]int, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	path := make([]int, 0, len(parts))
	for _, p := range parts {
		i, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("invalid node path %q", s)
		}
		path = append(path, i)
	}
	return path, nil
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().StringVar(&trGroup, "group", "", "column for top-level nodes (default group_column)")
	treeCmd.Flags().StringVar(&trLabel, "label", "", "column for leaf labels (default name_column)")
	treeCmd.Flags().StringSliceVar(&trDetails, "details", nil, "columns shown under an expanded leaf (default city_column when present)")
	treeCmd.Flags().StringArrayVar(&trExpand, "expand", nil, "expand the group with this label (repeatable)")
	treeCmd.Flags().StringArrayVar(&trToggle, "toggle", nil, "toggle the node at this dotted path (repeatable)")
	treeCmd.Flags().BoolVar(&trAll, "all", false, "expand every group")
}
