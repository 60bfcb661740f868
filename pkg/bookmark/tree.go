// Package bookmark answers structural questions about the bookmark forest:
// children of a folder, ancestor chains, and whether a move keeps the forest
// acyclic.
package bookmark

import (
	"errors"
	"fmt"

	"tableflip.dev/worklog/pkg/entry"
)

// ErrNodeNotFound is returned when the node being moved does not exist.
var ErrNodeNotFound = errors.New("bookmark: node not found")

// Tree is a read-only view over one bookmark snapshot.
type Tree struct {
	nodes []entry.Bookmark
	byID  map[string]int
}

// New indexes nodes. The slice is copied; later changes to it are not seen.
func New(nodes []entry.Bookmark) *Tree {
	t := &Tree{
		nodes: make([]entry.Bookmark, len(nodes)),
		byID:  make(map[string]int, len(nodes)),
	}
	copy(t.nodes, nodes)
	for i, n := range t.nodes {
		t.byID[n.ID] = i
	}
	return t
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Get returns the node with id.
func (t *Tree) Get(id string) (entry.Bookmark, bool) {
	i, ok := t.byID[id]
	if !ok {
		return entry.Bookmark{}, false
	}
	return t.nodes[i], true
}

// ParentOf returns the effective parent of a node. A parent reference to a
// node that no longer exists reads as the root.
func (t *Tree) ParentOf(n entry.Bookmark) string {
	if n.ParentID == "" {
		return ""
	}
	if _, ok := t.byID[n.ParentID]; !ok {
		return ""
	}
	return n.ParentID
}

// Children returns the nodes directly under parentID in snapshot order. An
// empty parentID lists the roots, orphans included.
func (t *Tree) Children(parentID string) []entry.Bookmark {
	out := make([]entry.Bookmark, 0)
	for _, n := range t.nodes {
		if t.ParentOf(n) == parentID {
			out = append(out, n)
		}
	}
	return out
}

// Ancestors returns the effective parent chain of id, nearest first. The walk
// stops after Len steps; ok is false if that cap is hit, which means the
// snapshot already holds a cycle.
func (t *Tree) Ancestors(id string) (chain []string, ok bool) {
	n, found := t.Get(id)
	if !found {
		return nil, true
	}
	current := t.ParentOf(n)
	for steps := 0; current != ""; steps++ {
		if steps >= len(t.nodes) {
			return chain, false
		}
		chain = append(chain, current)
		parent, _ := t.Get(current)
		current = t.ParentOf(parent)
	}
	return chain, true
}

// Depth is the number of effective ancestors of id.
func (t *Tree) Depth(id string) int {
	chain, _ := t.Ancestors(id)
	return len(chain)
}

// Reason explains why a move was refused.
type Reason string

const (
	// ReasonNone marks an accepted move.
	ReasonNone Reason = ""
	// ReasonNoOp means the node already sits under the requested parent.
	ReasonNoOp Reason = "no-op"
	// ReasonSelfParent means a node was dropped onto itself.
	ReasonSelfParent Reason = "self-parent"
	// ReasonDescendant means the target lies inside the node's own subtree.
	ReasonDescendant Reason = "descendant-cycle"
	// ReasonUnknownTarget means the target parent does not exist.
	ReasonUnknownTarget Reason = "unknown-target"
	// ReasonNotFolder means the target parent is a link, not a folder.
	ReasonNotFolder Reason = "not-a-folder"
	// ReasonCycleDetected means the ancestor walk exceeded the node count.
	ReasonCycleDetected Reason = "cycle-detected"
)

// Decision is the outcome of a move check.
type Decision struct {
	NodeID    string
	From      string
	To        string
	Reason    Reason
	Permitted bool
}

func (d Decision) String() string {
	if d.Permitted {
		return fmt.Sprintf("move %s: %s -> %s", d.NodeID, rootName(d.From), rootName(d.To))
	}
	return fmt.Sprintf("move %s to %s rejected: %s", d.NodeID, rootName(d.To), d.Reason)
}

func rootName(id string) string {
	if id == "" {
		return "<root>"
	}
	return id
}

// Reparent decides whether nodeID may move under newParentID ("" = root).
// It never changes the tree; the caller commits permitted moves.
//
// Checks run in order: unchanged parent, self parent, target inside the
// node's subtree, then the target must be an existing folder. Moving to the
// root or to any ancestor is allowed.
func (t *Tree) Reparent(nodeID, newParentID string) (Decision, error) {
	node, ok := t.Get(nodeID)
	if !ok {
		return Decision{}, fmt.Errorf("%w: %q", ErrNodeNotFound, nodeID)
	}
	d := Decision{NodeID: nodeID, From: node.ParentID, To: newParentID}

	switch {
	case newParentID == node.ParentID:
		d.Reason = ReasonNoOp
	case newParentID == nodeID:
		d.Reason = ReasonSelfParent
	case newParentID == "":
		d.Permitted = true
	default:
		d.Reason = t.targetReason(nodeID, newParentID)
		d.Permitted = d.Reason == ReasonNone
	}
	return d, nil
}

func (t *Tree) targetReason(nodeID, target string) Reason {
	parent, ok := t.Get(target)
	if !ok {
		return ReasonUnknownTarget
	}
	chain, ok := t.Ancestors(target)
	for _, id := range chain {
		if id == nodeID {
			return ReasonDescendant
		}
	}
	if !ok {
		return ReasonCycleDetected
	}
	if !parent.IsFolder {
		return ReasonNotFolder
	}
	return ReasonNone
}
