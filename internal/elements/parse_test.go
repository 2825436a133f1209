package elements

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseElements(t *testing.T) {
	t.Run("nodes and edges", func(t *testing.T) {
		raw := []byte(`[
			{"group":"nodes","data":{"id":"A","label":"Births","isKey":true}},
			{"group":"nodes","data":{"id":"B","name":"Population"}},
			{"group":"edges","data":{"id":"e1","source":"A","target":"B","relation":"direct"}},
			{"group":"edges","data":{"id":"e2","source":"B","target":"A","relation":"inverse"}}
		]`)

		elems := ParseElements(raw)
		require.Len(t, elems, 4)

		nodes, edges := Split(elems)
		assert.Equal(t, []Node{
			{ID: "A", Label: "Births", IsKeyVariable: true},
			{ID: "B", Label: "Population"},
		}, nodes)
		assert.Equal(t, []Edge{
			{ID: "e1", Source: "A", Target: "B", Relation: Direct},
			{ID: "e2", Source: "B", Target: "A", Relation: Inverse},
		}, edges)
	})

	t.Run("malformed payload is empty", func(t *testing.T) {
		for _, raw := range []string{"", "not json", `{"group":"nodes"}`, "null"} {
			elems := ParseElements([]byte(raw))
			assert.NotNil(t, elems, raw)
			assert.Empty(t, elems, raw)
		}
	})

	t.Run("bad elements are skipped", func(t *testing.T) {
		raw := []byte(`[
			{"group":"nodes","data":{"label":"no id"}},
			{"group":"widgets","data":{"id":"w"}},
			{"group":"nodes","data":"oops"},
			{"group":"nodes","data":{"id":"ok"}}
		]`)

		elems := ParseElements(raw)
		require.Len(t, elems, 1)
		assert.Equal(t, "ok", elems[0].ElementID())
	})
}

func TestParseLoops(t *testing.T) {
	raw := []byte(`[
		{"id":"L1","influence_relationships":[{"id":"e1"},{"id":"e2"}]},
		{"id":"L2","edges":["e1"]},
		{"influence_relationships":[{"id":"e3"}]}
	]`)

	loops := ParseLoops(raw)
	assert.Equal(t, []Loop{
		{ID: "L1", EdgeIDs: []string{"e1", "e2"}},
		{ID: "L2", EdgeIDs: []string{"e1"}},
	}, loops)

	assert.Empty(t, ParseLoops([]byte("{")))
	assert.NotNil(t, ParseLoops(nil))
}

func TestParseRelation(t *testing.T) {
	assert.Equal(t, Inverse, ParseRelation("inverse"))
	assert.Equal(t, Inverse, ParseRelation(" INVERSE "))
	assert.Equal(t, Direct, ParseRelation("direct"))
	assert.Equal(t, Direct, ParseRelation(""))
	assert.Equal(t, Direct, ParseRelation("#C2410C"))
}

func TestSnapshotSplit(t *testing.T) {
	s := Snapshot{Elements: []Element{
		Edge{ID: "e1", Source: "A", Target: "B"},
		Node{ID: "A"},
		Node{ID: "B"},
	}}

	assert.Len(t, s.Nodes(), 2)
	assert.Len(t, s.Edges(), 1)
}
