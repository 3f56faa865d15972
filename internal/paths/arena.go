package paths

import "github.com/papapumpkin/pivot/internal/graph"

// noParent marks the root node of the arena.
const noParent = -1

// pathNode is one step of an in-progress path. A path is identified by the
// index of its last node; following parent links back to the root yields the
// path in reverse. Sibling extensions share their prefix instead of copying it.
type pathNode struct {
	vertex graph.Vertex
	parent int
	depth  int
}

// arena owns every pathNode created during one enumeration.
type arena struct {
	nodes []pathNode
	limit int
}

func newArena(root graph.Vertex, limit int) *arena {
	a := &arena{limit: limit}
	a.nodes = append(a.nodes, pathNode{vertex: root, parent: noParent})
	return a
}

// extend appends w to the path ending at idx and returns the new node index.
// It fails with ErrResourceExceeded once the configured limit is reached.
func (a *arena) extend(idx int, w graph.Vertex) (int, error) {
	if a.limit > 0 && len(a.nodes) >= a.limit {
		return 0, ErrResourceExceeded
	}
	a.nodes = append(a.nodes, pathNode{
		vertex: w,
		parent: idx,
		depth:  a.nodes[idx].depth + 1,
	})
	return len(a.nodes) - 1, nil
}

// contains reports whether v already appears on the path ending at idx.
func (a *arena) contains(idx int, v graph.Vertex) bool {
	for i := idx; i != noParent; i = a.nodes[i].parent {
		if a.nodes[i].vertex == v {
			return true
		}
	}
	return false
}

// materialize copies the path ending at idx into a fresh Path, root first.
func (a *arena) materialize(idx int) Path {
	p := make(Path, a.nodes[idx].depth+1)
	for i := idx; i != noParent; i = a.nodes[i].parent {
		p[a.nodes[i].depth] = a.nodes[i].vertex
	}
	return p
}
