package bookmark

import "tableflip.dev/worklog/pkg/entry"

// Branch is a node with its children resolved, for printing.
type Branch struct {
	entry.Bookmark
	Depth    int       `json:"depth"`
	Children []*Branch `json:"children,omitempty"`
}

// Branches builds the nested view from the roots down. Nodes caught in a
// cycle are not reachable from a root and are left out.
func (t *Tree) Branches() []*Branch {
	visited := make(map[string]bool, len(t.nodes))
	var build func(parentID string, depth int) []*Branch
	build = func(parentID string, depth int) []*Branch {
		var out []*Branch
		for _, n := range t.Children(parentID) {
			if visited[n.ID] {
				continue
			}
			visited[n.ID] = true
			out = append(out, &Branch{Bookmark: n, Depth: depth, Children: build(n.ID, depth+1)})
		}
		return out
	}
	return build("", 0)
}

// Walk visits branches depth first, parents before children.
func Walk(branches []*Branch, fn func(*Branch)) {
	for _, b := range branches {
		fn(b)
		Walk(b.Children, fn)
	}
}
