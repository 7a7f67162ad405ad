package types

// Node is one rendered resource with a computed plane position.
type Node struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	ServiceType string   `json:"serviceType"`
	Region      string   `json:"region"`
	URL         string   `json:"url,omitempty"`
	Position    Position `json:"position"`
}

type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Edge is an inferred relationship between two resource IDs. The target is
// not guaranteed to exist as a node; the rendering surface decides how to
// display dangling edges.
type Edge struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Label    string `json:"label"`
	Selected bool   `json:"selected,omitempty"`
}

// ResourceGraph is rebuilt from scratch on every build; it is never
// incrementally updated.
type ResourceGraph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}
