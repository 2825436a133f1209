package graphology

// The serialization format graphology's import() reads.

type NodeAttributes struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Size    float64 `json:"size"`
	Label   string  `json:"label"`
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
	IsKey   bool    `json:"isKey,omitempty"`
}

type Node struct {
	Key        string         `json:"key"`
	Attributes NodeAttributes `json:"attributes"`
}

type EdgeAttributes struct {
	Size     float64 `json:"size"`
	Color    string  `json:"color"`
	Opacity  float64 `json:"opacity"`
	Relation string  `json:"relation"`
	Type     string  `json:"type"`
}

type Edge struct {
	Key        string         `json:"key"`
	Source     string         `json:"source"`
	Target     string         `json:"target"`
	Attributes EdgeAttributes `json:"attributes"`
}

type GraphOptions struct {
	Type           string `json:"type"`
	Multi          bool   `json:"multi"`
	AllowSelfLoops bool   `json:"allowSelfLoops"`
}

type SerializedGraph struct {
	Attributes map[string]string `json:"attributes"`
	Options    GraphOptions      `json:"options"`
	Nodes      []Node            `json:"nodes"`
	Edges      []Edge            `json:"edges"`
}
