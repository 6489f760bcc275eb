package workflow

import (
	"fmt"
	"slices"
)

// FoldMode selects how [Fold] treats the collapsed flag.
type FoldMode string

const (
	// FoldKeep leaves every node's collapsed flag as it is.
	FoldKeep FoldMode = "keep"
	// FoldAuto recomputes the flag with the pass-through heuristic.
	FoldAuto FoldMode = "auto"
	// FoldUnfold expands every node.
	FoldUnfold FoldMode = "unfold"
)

// FoldModes lists the accepted modes in display order.
var FoldModes = []FoldMode{FoldKeep, FoldAuto, FoldUnfold}

// ParseFoldMode validates s as a fold mode. The empty string maps to
// [FoldKeep].
func ParseFoldMode(s string) (FoldMode, error) {
	if s == "" {
		return FoldKeep, nil
	}
	m := FoldMode(s)
	if !slices.Contains(FoldModes, m) {
		return "", fmt.Errorf("unknown fold mode %q (want keep, auto or unfold)", s)
	}
	return m, nil
}

// FoldOptions configures [Fold].
type FoldOptions struct {
	Mode FoldMode

	// Always lists node types that are folded in auto mode regardless of
	// their ports.
	Always []string
	// Never lists node types that are never folded in auto mode. Never
	// takes precedence over Always.
	Never []string
}

// Fold rewrites collapsed flags according to opts and returns the number
// of nodes that end up collapsed.
//
// In auto mode a node is folded when its type is in Always, or when it is
// a pass-through step: one or two inputs and exactly one output.
func Fold(doc *Document, opts FoldOptions) int {
	switch opts.Mode {
	case FoldAuto:
		for _, n := range doc.Nodes {
			n.SetCollapsed(autoFold(n, opts))
		}
	case FoldUnfold:
		for _, n := range doc.Nodes {
			n.SetCollapsed(false)
		}
	}

	count := 0
	for _, n := range doc.Nodes {
		if n.Collapsed() {
			count++
		}
	}
	return count
}

func autoFold(n *Node, opts FoldOptions) bool {
	if slices.Contains(opts.Never, n.Type) {
		return false
	}
	if slices.Contains(opts.Always, n.Type) {
		return true
	}
	in := len(n.Inputs)
	return in >= 1 && in <= 2 && len(n.Outputs) == 1
}

// Unpin clears the pinned flag on every node so the layout may move it.
// It returns the number of nodes that were pinned.
func Unpin(doc *Document) int {
	count := 0
	for _, n := range doc.Nodes {
		if n.Flags.Bool("pinned") {
			count++
		}
		delete(n.Flags, "pinned")
	}
	return count
}
