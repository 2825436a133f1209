package graphs

import (
	"encoding/json"
	"io"
	"sort"

	"github.com/psidex/loopview/internal/elements"
	"github.com/psidex/loopview/internal/graphview"
	"github.com/psidex/loopview/internal/lib"
)

// Adjacency defines a CliSceneProvider that renders the scene as a JSON map
// from each node id to the ids it influences, split by relation. Nodes without
// outgoing edges map to empty lists.
type Adjacency struct {
	LatestScene
}

var _ CliSceneProvider = (*Adjacency)(nil)

func NewAdjacency() *Adjacency {
	return &Adjacency{LatestScene: NewLatestScene()}
}

type influences struct {
	Direct  []string `json:"direct"`
	Inverse []string `json:"inverse"`
}

func (a *Adjacency) Extension() string { return ".json" }

func (a *Adjacency) RenderToFile(filename string) (string, error) {
	return WriteFile(a, filename)
}

func (a *Adjacency) Render(w io.Writer) error {
	jsonData, err := json.MarshalIndent(adjacencyOf(a.Scene()), "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(jsonData)
	return err
}

func adjacencyOf(scene graphview.Scene) map[string]influences {
	direct := make(map[string]lib.Set[string], len(scene.Nodes))
	inverse := make(map[string]lib.Set[string], len(scene.Nodes))
	for _, n := range scene.Nodes {
		direct[n.ID] = lib.NewSet[string]()
		inverse[n.ID] = lib.NewSet[string]()
	}

	for _, e := range scene.Edges {
		sets := direct
		if e.Relation == elements.Inverse {
			sets = inverse
		}
		if _, ok := sets[e.Source]; !ok {
			continue
		}
		sets[e.Source].Add(e.Target)
	}

	out := make(map[string]influences, len(direct))
	for id := range direct {
		out[id] = influences{
			Direct:  sorted(direct[id]),
			Inverse: sorted(inverse[id]),
		}
	}
	return out
}

func sorted(s lib.Set[string]) []string {
	slice := s.AsSlice()
	sort.Strings(slice)
	return slice
}
