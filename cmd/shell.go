package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/rosterlens/internal/analysis"
	"github.com/KaramelBytes/rosterlens/internal/dashboard"
	"github.com/KaramelBytes/rosterlens/internal/tree"
	"github.com/KaramelBytes/rosterlens/internal/view"
)

const shellHelp = `commands:
  show [n]            print the current table view (first n rows)
  dept <name>|-       keep one group, or "-" to clear
  search <text>|-     keep names containing text, or "-" to clear
  sort <col> [desc]   sort the view; "sort -" restores file order
  stats [stat]        group summary, optionally listing one statistic
  bins                value by group and age interval
  tree                show the group tree
  toggle <path>       flip a tree node, e.g. "toggle 1" or "toggle 1.0"
  expand <group>      open a group by label
  reload              re-read the file; the tree starts collapsed again
  help                this text
  quit                leave the shell`

// shellState is the table view parameters typed so far.
type shellState struct {
	path    string
	session *dashboard.Session
	dept    string
	search  string
}

var shellCmd = &cobra.Command{
	Use:   "shell <file>",
	Short: "Explore a roster interactively",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := loadDataset(args[0])
		if err != nil {
			return err
		}
		st := &shellState{path: args[0], session: dashboard.NewSession(ds, logger)}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Loaded %s: %d rows. Type \"help\" for commands.\n", ds.Name, ds.Len())

		sc := bufio.NewScanner(cmd.InOrStdin())
		for {
			fmt.Fprint(out, "> ")
			if !sc.Scan() {
				break
			}
			line := strings.TrimSpace(sc.Text())
			if line == "" {
				continue
			}
			err := st.run(out, line)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				fmt.Fprintln(out, "✗ Error:", err)
			}
		}
		fmt.Fprintln(out)
		return sc.Err()
	},
}

var errQuit = errors.New("quit")

func (st *shellState) run(out io.Writer, line string) error {
	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	s := st.session
	switch strings.ToLower(verb) {
	case "quit", "exit", "q":
		return errQuit
	case "help", "?":
		fmt.Fprintln(out, shellHelp)
	case "show":
		limit := 20
		if rest != "" {
			if _, err := fmt.Sscanf(rest, "%d", &limit); err != nil {
				return fmt.Errorf("invalid row count %q", rest)
			}
		}
		recs, err := s.View()
		if err != nil {
			return err
		}
		shown := recs
		if limit >= 0 && len(shown) > limit {
			shown = shown[:limit]
		}
		var b strings.Builder
		analysis.WriteTable(&b, s.Dataset().Columns, shown)
		fmt.Fprintf(&b, "\n%d of %d rows (filter: %s, sort: %s)\n", len(recs), s.Dataset().Len(), st.describeFilter(), s.Query().Sort)
		fmt.Fprint(out, b.String())
	case "dept":
		return st.setFilter(out, rest, st.search)
	case "search":
		return st.setFilter(out, st.dept, rest)
	case "sort":
		spec := view.ParseSortSpec(rest)
		if rest == "-" {
			spec = view.SortSpec{}
		}
		if err := s.SetSort(spec); err != nil {
			return err
		}
		fmt.Fprintf(out, "sort: %s\n", spec)
	case "stats":
		sum, err := s.Summary(cfg.GroupColumn, cfg.ValueColumn)
		if err != nil {
			return err
		}
		rep := &analysis.Report{Summary: sum}
		if rest != "" {
			vals, err := analysis.SelectStat(sum, rest)
			if err != nil {
				return err
			}
			rep.StatName, rep.Selected = rest, vals
		}
		fmt.Fprint(out, rep.Markdown())
	case "bins":
		bins, err := configuredBins("", nil)
		if err != nil {
			return err
		}
		ct, err := s.CrossTab(bins, cfg.AgeColumn, cfg.GroupColumn, cfg.ValueColumn)
		if err != nil {
			return err
		}
		fmt.Fprint(out, (&analysis.Report{Cross: ct}).Markdown())
	case "tree":
		t, err := st.tree()
		if err != nil {
			return err
		}
		return t.Render(out)
	case "toggle":
		t, err := st.tree()
		if err != nil {
			return err
		}
		path, err := parsePath(rest)
		if err != nil {
			return err
		}
		if err := s.Toggle(path...); err != nil {
			return err
		}
		return t.Render(out)
	case "expand":
		t, err := st.tree()
		if err != nil {
			return err
		}
		i, ok := t.Find(rest)
		if !ok {
			return fmt.Errorf("no group %q", rest)
		}
		if err := t.Expand(i); err != nil {
			return err
		}
		return t.Render(out)
	case "reload":
		ds, err := loadDataset(st.path)
		if err != nil {
			return err
		}
		s.Reload(ds)
		if s.Query().Filter.IsEmpty() {
			st.dept, st.search = "", ""
		}
		fmt.Fprintf(out, "Reloaded %s: %d rows\n", ds.Name, ds.Len())
	default:
		return fmt.Errorf("unknown command %q (try help)", verb)
	}
	return nil
}

func (st *shellState) tree() (*tree.Tree, error) {
	var details []string
	if st.session.Dataset().Has(cfg.CityColumn) {
		details = []string{cfg.CityColumn}
	}
	return st.session.Tree(cfg.GroupColumn, cfg.NameColumn, details...)
}

func (st *shellState) setFilter(out io.Writer, dept, search string) error {
	if dept == "-" {
		dept = ""
	}
	if search == "-" {
		search = ""
	}
	var spec view.FilterSpec
	if dept != "" {
		spec.Predicates = append(spec.Predicates, view.Equals(cfg.GroupColumn, dept))
	}
	if search != "" {
		spec.Predicates = append(spec.Predicates, view.Contains(cfg.NameColumn, search))
	}
	if err := st.session.SetFilter(spec); err != nil {
		return err
	}
	st.dept, st.search = dept, search
	fmt.Fprintf(out, "filter: %s\n", st.describeFilter())
	return nil
}

func (st *shellState) describeFilter() string {
	var parts []string
	if st.dept != "" {
		parts = append(parts, fmt.Sprintf("%s = %q", cfg.GroupColumn, st.dept))
	}
	if st.search != "" {
		parts = append(parts, fmt.Sprintf("%s contains %q", cfg.NameColumn, st.search))
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " and ")
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
