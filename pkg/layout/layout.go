package layout

// Graph is the fully computed layout handed to a presentation layer.
// It is the sole contract with renderers: they read it and never call back
// into the engine. Coordinates are absolute, with the origin at the top-left
// of the padded drawing area.
type Graph struct {
	Width  float64         `json:"width"`
	Height float64         `json:"height"`
	Nodes  []NodePlacement `json:"nodes"`
	Edges  []EdgePlacement `json:"edges"`
}

// NodePlacement is the final position of one electrical node plus its label
// anchor.
type NodePlacement struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Label  string  `json:"label"`
	LabelX float64 `json:"label_x"`
	LabelY float64 `json:"label_y"`
}

// EdgePlacement is the routed geometry of one branch. Path holds absolute
// SVG-style drawing commands (M/L/Q/C) consumable by any vector layer.
type EdgePlacement struct {
	ID     string     `json:"id"`
	Source string     `json:"source"`
	Target string     `json:"target"`
	Path   string     `json:"path"`
	Arrow  ArrowPoint `json:"arrow"`
	Label  string     `json:"label"`
	LabelX float64    `json:"label_x"`
	LabelY float64    `json:"label_y"`
	Curved bool       `json:"curved"`
}

// ArrowPoint marks where an arrowhead sits on a path: the point at parameter
// 0.5 and the tangent direction there, in radians.
type ArrowPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
}

// Node returns the placement of the node with the given ID, or nil.
func (g *Graph) Node(id string) *NodePlacement {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// Edge returns the placement of the branch with the given ID, or nil.
func (g *Graph) Edge(id string) *EdgePlacement {
	for i := range g.Edges {
		if g.Edges[i].ID == id {
			return &g.Edges[i]
		}
	}
	return nil
}
