package tree

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	markerCollapsed = "▸"
	markerExpanded  = "▾"
)

// Render writes the outline. Collapsed nodes hide their children and details.
// Styling degrades to plain text when w is not a terminal.
func (t *Tree) Render(w io.Writer) error {
	r := lipgloss.NewRenderer(w)
	groupStyle := r.NewStyle().Bold(true)
	detailStyle := r.NewStyle().Faint(true)

	var b strings.Builder
	for i, g := range t.Roots {
		fmt.Fprintf(&b, "%s [%d] %s (%d)\n", marker(g), i, groupStyle.Render(g.Label), len(g.Children))
		if g.Collapsed {
			continue
		}
		for j, leaf := range g.Children {
			if len(leaf.Details) == 0 {
				fmt.Fprintf(&b, "    [%d.%d] %s\n", i, j, leaf.Label)
				continue
			}
			fmt.Fprintf(&b, "  %s [%d.%d] %s\n", marker(leaf), i, j, leaf.Label)
			if leaf.Collapsed {
				continue
			}
			for _, d := range leaf.Details {
				fmt.Fprintf(&b, "        %s\n", detailStyle.Render(d))
			}
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func marker(n *Node) string {
	if n.Collapsed {
		return markerCollapsed
	}
	return markerExpanded
}
