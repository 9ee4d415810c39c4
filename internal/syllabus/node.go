// Package syllabus models a study syllabus as a forest of topic nodes and
// derives completion progress from the leaves upward.
package syllabus

// NodeType labels a node's level. It is descriptive only.
type NodeType string

const (
	TypeSubject  NodeType = "subject"
	TypeChapter  NodeType = "chapter"
	TypeTopic    NodeType = "topic"
	TypeSubtopic NodeType = "subtopic"
)

// Node is one entry of the syllabus. Completed is authoritative only on
// leaves; progress of inner nodes is always derived.
type Node struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Type      NodeType `json:"type"`
	Completed bool     `json:"completed"`
	Children  []Node   `json:"children,omitempty"`
}

// IsLeaf reports whether n has no children.
func (n Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// ToggleLeaf returns a forest where the first node matching id (depth-first)
// has its Completed flag inverted. Nodes off the path to the match are shared
// with the input, which is never modified. An unknown id returns forest as is.
func ToggleLeaf(forest []Node, id string) []Node {
	out, ok := toggle(forest, id)
	if !ok {
		return forest
	}
	return out
}

func toggle(nodes []Node, id string) ([]Node, bool) {
	for i := range nodes {
		if nodes[i].ID == id {
			out := make([]Node, len(nodes))
			copy(out, nodes)
			out[i].Completed = !out[i].Completed
			return out, true
		}
		if len(nodes[i].Children) == 0 {
			continue
		}
		if children, ok := toggle(nodes[i].Children, id); ok {
			out := make([]Node, len(nodes))
			copy(out, nodes)
			out[i].Children = children
			return out, true
		}
	}
	return nil, false
}

// Progress returns the completion percentage of n. A leaf is 100 or 0. An
// inner node is the rounded share of children that are themselves at 100.
func Progress(n Node) int {
	if len(n.Children) == 0 {
		if n.Completed {
			return 100
		}
		return 0
	}
	full := 0
	for _, c := range n.Children {
		if Progress(c) == 100 {
			full++
		}
	}
	return roundPercent(full, len(n.Children))
}

// ForestProgress is Progress applied to a virtual root holding forest.
func ForestProgress(forest []Node) int {
	return Progress(Node{Children: forest})
}

func roundPercent(part, whole int) int {
	return (part*200 + whole) / (whole * 2)
}

// Find returns the first node with the given id.
func Find(forest []Node, id string) (Node, bool) {
	var found Node
	var ok bool
	Walk(forest, func(n Node, _ int) bool {
		if n.ID == id {
			found, ok = n, true
			return false
		}
		return true
	})
	return found, ok
}

// Walk visits nodes depth-first in order. fn receives the node and its depth
// (roots are 0); returning false stops the walk.
func Walk(forest []Node, fn func(n Node, depth int) bool) {
	walk(forest, 0, fn)
}

func walk(nodes []Node, depth int, fn func(Node, int) bool) bool {
	for _, n := range nodes {
		if !fn(n, depth) {
			return false
		}
		if !walk(n.Children, depth+1, fn) {
			return false
		}
	}
	return true
}

// Leaves counts completed and total leaves.
func Leaves(forest []Node) (completed, total int) {
	Walk(forest, func(n Node, _ int) bool {
		if n.IsLeaf() {
			total++
			if n.Completed {
				completed++
			}
		}
		return true
	})
	return completed, total
}
