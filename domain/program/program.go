// Package program provides the tree of placed blocks that makes up one visual
// program: setup statements, loop statements and named routines.
package program

// Structural block names handled by the translation walk rather than the
// InsectBot Hexa block family.
const (
	BlockIf     = "if"
	BlockDelay  = "delay"
	BlockNumber = "number"
	BlockCall   = "call"
)

// Socket names used by structural blocks.
const (
	SocketCondition    = "condition"
	SocketMilliseconds = "milliseconds"
)

// Node is one placed block.
type Node struct {
	ID      int64
	Block   string
	Label   string
	Prefix  string
	Suffix  string
	Value   string
	Routine string
	Sockets map[string]*Node
	Do      []Node
}

// Socket returns the node plugged into the named socket, or nil.
func (n Node) Socket(name string) *Node {
	if n.Sockets == nil {
		return nil
	}
	return n.Sockets[name]
}

// Routine is a named, reusable statement list.
type Routine struct {
	Name string
	Body []Node
}

// Program is a complete visual program.
type Program struct {
	Name     string
	Setup    []Node
	Loop     []Node
	Routines []Routine
}

// Count returns the number of placed blocks, sockets included.
func (p Program) Count() int {
	total := 0
	p.walk(func(*Node) { total++ })
	return total
}

// AssignIDs gives every node without an id a unique one. Numbering starts
// after the largest explicit id and follows document order.
func (p *Program) AssignIDs() {
	var maxID int64
	p.walk(func(n *Node) {
		if n.ID > maxID {
			maxID = n.ID
		}
	})
	next := maxID + 1
	p.walk(func(n *Node) {
		if n.ID == 0 {
			n.ID = next
			next++
		}
	})
}

func (p *Program) walk(fn func(*Node)) {
	walkNodes(p.Setup, fn)
	walkNodes(p.Loop, fn)
	for i := range p.Routines {
		walkNodes(p.Routines[i].Body, fn)
	}
}

func walkNodes(nodes []Node, fn func(*Node)) {
	for i := range nodes {
		walkNode(&nodes[i], fn)
	}
}

func walkNode(n *Node, fn func(*Node)) {
	fn(n)
	for _, name := range sortedSocketNames(n.Sockets) {
		if s := n.Sockets[name]; s != nil {
			walkNode(s, fn)
		}
	}
	walkNodes(n.Do, fn)
}

// Clone returns a deep copy so callers can number or rewrite nodes without
// touching the original document.
func (p Program) Clone() Program {
	out := Program{
		Name:  p.Name,
		Setup: cloneNodes(p.Setup),
		Loop:  cloneNodes(p.Loop),
	}
	if p.Routines != nil {
		out.Routines = make([]Routine, len(p.Routines))
		for i, r := range p.Routines {
			out.Routines[i] = Routine{Name: r.Name, Body: cloneNodes(r.Body)}
		}
	}
	return out
}

func cloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[i] = cloneNode(n)
	}
	return out
}

func cloneNode(n Node) Node {
	out := n
	out.Do = cloneNodes(n.Do)
	if n.Sockets != nil {
		out.Sockets = make(map[string]*Node, len(n.Sockets))
		for name, s := range n.Sockets {
			if s == nil {
				out.Sockets[name] = nil
				continue
			}
			c := cloneNode(*s)
			out.Sockets[name] = &c
		}
	}
	return out
}
