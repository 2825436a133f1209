package vis

type color struct {
	Background string `json:"background"`
	Border     string `json:"border"`
}

type font struct {
	Color string `json:"color"`
	Bold  bool   `json:"bold,omitempty"`
}

type node struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Color       color   `json:"color"`
	BorderWidth float64 `json:"borderWidth"`
	Font        font    `json:"font"`
	Opacity     float64 `json:"opacity"`
}

type edgeColor struct {
	Color   string  `json:"color"`
	Opacity float64 `json:"opacity"`
}

type edge struct {
	ID     string    `json:"id"`
	From   string    `json:"from"`
	To     string    `json:"to"`
	Width  float64   `json:"width"`
	Color  edgeColor `json:"color"`
	Dashes bool      `json:"dashes"`
}

type network struct {
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}
