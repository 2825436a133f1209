package elements

import (
	"encoding/json"
	"strings"
)

// wireElement is the cytoscape element shape the page sends.
type wireElement struct {
	Group string          `json:"group"`
	Data  json.RawMessage `json:"data"`
}

type wireNodeData struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Name  string `json:"name"`
	IsKey bool   `json:"isKey"`
}

type wireEdgeData struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Relation string `json:"relation"`
}

type wireLoop struct {
	ID                     string `json:"id"`
	InfluenceRelationships []struct {
		ID string `json:"id"`
	} `json:"influence_relationships"`
	Edges []string `json:"edges"`
}

// ParseElements decodes a JSON array of cytoscape elements. A payload that is
// empty or not an array yields an empty slice; individual elements with an
// unknown group, undecodable data or an empty id are skipped.
func ParseElements(raw []byte) []Element {
	var wire []wireElement
	if len(raw) == 0 || json.Unmarshal(raw, &wire) != nil {
		return []Element{}
	}

	elems := make([]Element, 0, len(wire))
	for _, w := range wire {
		switch w.Group {
		case "nodes":
			var d wireNodeData
			if json.Unmarshal(w.Data, &d) != nil || d.ID == "" {
				continue
			}
			label := d.Label
			if label == "" {
				label = d.Name
			}
			elems = append(elems, Node{ID: d.ID, Label: label, IsKeyVariable: d.IsKey})
		case "edges":
			var d wireEdgeData
			if json.Unmarshal(w.Data, &d) != nil || d.ID == "" {
				continue
			}
			elems = append(elems, Edge{
				ID:       d.ID,
				Source:   d.Source,
				Target:   d.Target,
				Relation: ParseRelation(d.Relation),
			})
		}
	}
	return elems
}

// ParseLoops decodes a JSON array of loops, accepting either
// influence_relationships objects or a plain edges list for membership.
// Anything undecodable yields an empty slice.
func ParseLoops(raw []byte) []Loop {
	var wire []wireLoop
	if len(raw) == 0 || json.Unmarshal(raw, &wire) != nil {
		return []Loop{}
	}

	loops := make([]Loop, 0, len(wire))
	for _, w := range wire {
		if w.ID == "" {
			continue
		}
		ids := make([]string, 0, len(w.InfluenceRelationships)+len(w.Edges))
		for _, rel := range w.InfluenceRelationships {
			ids = append(ids, rel.ID)
		}
		ids = append(ids, w.Edges...)
		loops = append(loops, Loop{ID: w.ID, EdgeIDs: ids})
	}
	return loops
}

// ParseRelation maps a wire relation to a RelationKind; anything that is not
// "inverse" is Direct.
func ParseRelation(s string) RelationKind {
	if strings.EqualFold(strings.TrimSpace(s), string(Inverse)) {
		return Inverse
	}
	return Direct
}
