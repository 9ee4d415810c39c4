package syllabus

// Tree is a flattened, indexable copy of a forest. Lookups by id are O(1)
// and progress results are cached until the next mutation.
type Tree struct {
	nodes   []entry
	roots   []int
	byID    map[string]int
	version uint64

	cache        map[int]int
	cacheVersion uint64
}

type entry struct {
	node     Node // Children is always nil here
	parent   int  // -1 for roots
	children []int
}

// NewTree builds a Tree from forest. When ids repeat, the first occurrence in
// depth-first order wins lookups, matching ToggleLeaf.
func NewTree(forest []Node) *Tree {
	t := &Tree{byID: make(map[string]int)}
	for _, n := range forest {
		t.roots = append(t.roots, t.add(n, -1))
	}
	return t
}

func (t *Tree) add(n Node, parent int) int {
	idx := len(t.nodes)
	flat := n
	flat.Children = nil
	t.nodes = append(t.nodes, entry{node: flat, parent: parent})
	if _, dup := t.byID[n.ID]; !dup {
		t.byID[n.ID] = idx
	}
	// Keep an explicit empty slice so Forest round-trips [] vs nil.
	if n.Children != nil {
		t.nodes[idx].children = make([]int, 0, len(n.Children))
	}
	for _, c := range n.Children {
		ci := t.add(c, idx)
		t.nodes[idx].children = append(t.nodes[idx].children, ci)
	}
	return idx
}

// Node returns the node with id, without its children.
func (t *Tree) Node(id string) (Node, bool) {
	idx, ok := t.byID[id]
	if !ok {
		return Node{}, false
	}
	return t.nodes[idx].node, true
}

// IsLeaf reports whether id names a node without children.
func (t *Tree) IsLeaf(id string) bool {
	idx, ok := t.byID[id]
	return ok && len(t.nodes[idx].children) == 0
}

// Children returns the ids of id's children in order.
func (t *Tree) Children(id string) []string {
	idx, ok := t.byID[id]
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(t.nodes[idx].children))
	for _, c := range t.nodes[idx].children {
		ids = append(ids, t.nodes[c].node.ID)
	}
	return ids
}

// Parent returns the id of id's parent, or false for roots and unknown ids.
func (t *Tree) Parent(id string) (string, bool) {
	idx, ok := t.byID[id]
	if !ok || t.nodes[idx].parent < 0 {
		return "", false
	}
	return t.nodes[t.nodes[idx].parent].node.ID, true
}

// Toggle inverts the Completed flag of id. It returns false for unknown ids.
func (t *Tree) Toggle(id string) bool {
	idx, ok := t.byID[id]
	if !ok {
		return false
	}
	t.nodes[idx].node.Completed = !t.nodes[idx].node.Completed
	t.version++
	return true
}

// Progress returns the derived completion percentage of id, or 0 when id is
// unknown.
func (t *Tree) Progress(id string) int {
	idx, ok := t.byID[id]
	if !ok {
		return 0
	}
	return t.progress(idx)
}

// Overall returns the progress of a virtual root over all roots.
func (t *Tree) Overall() int {
	if len(t.roots) == 0 {
		return 0
	}
	full := 0
	for _, r := range t.roots {
		if t.progress(r) == 100 {
			full++
		}
	}
	return roundPercent(full, len(t.roots))
}

func (t *Tree) progress(idx int) int {
	if t.cache == nil || t.cacheVersion != t.version {
		t.cache = make(map[int]int, len(t.nodes))
		t.cacheVersion = t.version
	}
	if p, ok := t.cache[idx]; ok {
		return p
	}
	e := t.nodes[idx]
	var p int
	if len(e.children) == 0 {
		if e.node.Completed {
			p = 100
		}
	} else {
		full := 0
		for _, c := range e.children {
			if t.progress(c) == 100 {
				full++
			}
		}
		p = roundPercent(full, len(e.children))
	}
	t.cache[idx] = p
	return p
}

// Forest rebuilds the nested representation.
func (t *Tree) Forest() []Node {
	out := make([]Node, 0, len(t.roots))
	for _, r := range t.roots {
		out = append(out, t.build(r))
	}
	return out
}

func (t *Tree) build(idx int) Node {
	e := t.nodes[idx]
	n := e.node
	if e.children != nil {
		n.Children = make([]Node, 0, len(e.children))
		for _, c := range e.children {
			n.Children = append(n.Children, t.build(c))
		}
	}
	return n
}

// Row is one line of a rendered outline.
type Row struct {
	ID       string
	Title    string
	Type     NodeType
	Depth    int
	Leaf     bool
	Expanded bool
	Done     bool
	Progress int
}

// Visible lists the rows shown when only ids in expanded are open.
func (t *Tree) Visible(expanded map[string]bool) []Row {
	var rows []Row
	var visit func(idx, depth int)
	visit = func(idx, depth int) {
		e := t.nodes[idx]
		open := expanded[e.node.ID]
		rows = append(rows, Row{
			ID:       e.node.ID,
			Title:    e.node.Title,
			Type:     e.node.Type,
			Depth:    depth,
			Leaf:     len(e.children) == 0,
			Expanded: open,
			Done:     e.node.Completed,
			Progress: t.progress(idx),
		})
		if !open {
			return
		}
		for _, c := range e.children {
			visit(c, depth+1)
		}
	}
	for _, r := range t.roots {
		visit(r, 0)
	}
	return rows
}
