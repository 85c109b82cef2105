package model

// Graph is the node/edge snapshot handed to the renderer. It is rebuilt from
// scratch on every import; feature generation is the only additive mutation.
type Graph struct {
	Nodes []*Node `json:"nodes"`
	Edges []*Edge `json:"links"`
}

func NewGraph() *Graph {
	return &Graph{}
}

// NodeByID does a linear scan; graphs are renderer-sized (hundreds of nodes),
// so an index map is not kept alive between lookups.
func (g *Graph) NodeByID(id string) *Node {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}

func (g *Graph) NodesOfType(t NodeType) []*Node {
	var out []*Node
	for _, n := range g.Nodes {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}

// HasEdge reports whether an edge already exists between a and b in either
// direction. At most one edge may connect any unordered node pair.
func (g *Graph) HasEdge(a, b string) bool {
	for _, e := range g.Edges {
		if (e.Source == a && e.Target == b) || (e.Source == b && e.Target == a) {
			return true
		}
	}
	return false
}
