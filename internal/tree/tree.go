// Package tree builds the two-level group → member outline and tracks the
// collapsed flag of each node.
package tree

import (
	"errors"
	"fmt"

	"github.com/KaramelBytes/rosterlens/internal/dataset"
)

// ErrNodeNotFound is returned when a path does not address a node.
var ErrNodeNotFound = errors.New("tree node not found")

// ErrNotCollapsible is returned when toggling a member leaf that has no
// details to show or hide.
var ErrNotCollapsible = errors.New("tree node has nothing to collapse")

// Node is a group (with Children) or a leaf (with Details).
// Collapsed is the only state that changes after Build.
type Node struct {
	Label     string
	Collapsed bool
	Children  []*Node
	Details   []string
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// Tree is an ordered forest of group nodes.
type Tree struct {
	GroupColumn string
	LabelColumn string
	Roots       []*Node
}

// Build creates one collapsed group node per distinct non-empty groupCol value,
// in first-encounter order. Each member record with a non-empty labelCol
// becomes a leaf, in input order, carrying "col: value" details.
func Build(records []dataset.Record, groupCol, labelCol string, detailCols ...string) (*Tree, error) {
	cols := append([]string{groupCol, labelCol}, detailCols...)
	if err := dataset.CheckColumns(records, cols...); err != nil {
		return nil, err
	}
	t := &Tree{GroupColumn: groupCol, LabelColumn: labelCol}
	index := make(map[string]*Node)
	for _, rec := range records {
		g := rec[groupCol]
		if g == "" {
			continue
		}
		node, ok := index[g]
		if !ok {
			node = &Node{Label: g, Collapsed: true}
			index[g] = node
			t.Roots = append(t.Roots, node)
		}
		label := rec[labelCol]
		if label == "" {
			continue
		}
		leaf := &Node{Label: label, Collapsed: true}
		for _, c := range detailCols {
			leaf.Details = append(leaf.Details, fmt.Sprintf("%s: %s", c, rec[c]))
		}
		node.Children = append(node.Children, leaf)
	}
	return t, nil
}

// Node returns the node at path, where each element indexes one level.
func (t *Tree) Node(path ...int) (*Node, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("%w: empty path", ErrNodeNotFound)
	}
	level := t.Roots
	var n *Node
	for depth, i := range path {
		if i < 0 || i >= len(level) {
			return nil, fmt.Errorf("%w: index %d at depth %d", ErrNodeNotFound, i, depth)
		}
		n = level[i]
		level = n.Children
	}
	return n, nil
}

// collapsible resolves path to a node whose flag affects rendering: any
// group, or a member leaf carrying details.
func (t *Tree) collapsible(path []int) (*Node, error) {
	n, err := t.Node(path...)
	if err != nil {
		return nil, err
	}
	if len(path) > 1 && n.IsLeaf() && len(n.Details) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNotCollapsible, n.Label)
	}
	return n, nil
}

// Toggle flips the collapsed flag of exactly one node.
func (t *Tree) Toggle(path ...int) error {
	n, err := t.collapsible(path)
	if err != nil {
		return err
	}
	n.Collapsed = !n.Collapsed
	return nil
}

// Expand opens the node at path.
func (t *Tree) Expand(path ...int) error {
	n, err := t.collapsible(path)
	if err != nil {
		return err
	}
	n.Collapsed = false
	return nil
}

// Collapse closes the node at path.
func (t *Tree) Collapse(path ...int) error {
	n, err := t.collapsible(path)
	if err != nil {
		return err
	}
	n.Collapsed = true
	return nil
}

// Find returns the index of the root labelled label.
func (t *Tree) Find(label string) (int, bool) {
	for i, n := range t.Roots {
		if n.Label == label {
			return i, true
		}
	}
	return 0, false
}

// Snapshot records the collapsed flag of every group by label.
func (t *Tree) Snapshot() map[string]bool {
	out := make(map[string]bool, len(t.Roots))
	for _, n := range t.Roots {
		out[n.Label] = n.Collapsed
	}
	return out
}

// Restore applies a snapshot taken from another tree. Groups absent from the
// snapshot keep their current flag.
func (t *Tree) Restore(snap map[string]bool) {
	for _, n := range t.Roots {
		if c, ok := snap[n.Label]; ok {
			n.Collapsed = c
		}
	}
}
