package graphs

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/psidex/loopview/internal/graphview"
	"github.com/psidex/loopview/internal/lib"
	"github.com/psidex/loopview/internal/theme"
)

// symbolScale shrinks node boxes to echarts symbol pixels.
const symbolScale = 0.4

// ECharts defines a CliSceneProvider that renders a go-echarts HTML file with
// every node pinned where the scene put it.
type ECharts struct {
	LatestScene
	title string
}

var _ CliSceneProvider = (*ECharts)(nil)

func NewECharts(title string) *ECharts {
	if title == "" {
		title = DefaultTitle
	}
	return &ECharts{LatestScene: NewLatestScene(), title: title}
}

func (e *ECharts) Extension() string { return ".html" }

func (e *ECharts) RenderToFile(filename string) (string, error) {
	return WriteFile(e, filename)
}

func (e *ECharts) Render(w io.Writer) error {
	scene := e.Scene()
	nodes, links := chartData(scene)

	page := components.NewPage()
	page.SetPageTitle(e.title)
	page.AddCharts(graphBase(e.title, scene.Theme, nodes, links))
	return page.Render(w)
}

// chartData names each node by its label, since echarts links refer to nodes
// by name. Duplicate or empty labels are made unique with the node id.
func chartData(scene graphview.Scene) ([]opts.GraphNode, []opts.GraphLink) {
	names := make(map[string]string, len(scene.Nodes))
	used := lib.NewSet[string]()

	nodes := make([]opts.GraphNode, 0, len(scene.Nodes))
	for _, n := range scene.Nodes {
		name := n.Label
		if name == "" || used.Contains(name) {
			name = n.Label + " (" + n.ID + ")"
		}
		used.Add(name)
		names[n.ID] = name

		nodes = append(nodes, opts.GraphNode{
			Name:       name,
			X:          float32(n.Position.X),
			Y:          float32(n.Position.Y),
			Fixed:      opts.Bool(true),
			Symbol:     "roundRect",
			SymbolSize: []float32{float32(n.Style.Width * symbolScale), float32(n.Style.Height * symbolScale)},
			ItemStyle: &opts.ItemStyle{
				Color:       n.Style.BackgroundColor,
				BorderColor: n.Style.BorderColor,
				BorderWidth: float32(n.Style.BorderWidth),
				Opacity:     opts.Float(float32(n.Opacity)),
			},
		})
	}

	links := make([]opts.GraphLink, 0, len(scene.Edges))
	for _, e := range scene.Edges {
		source, okS := names[e.Source]
		target, okT := names[e.Target]
		if !okS || !okT {
			continue
		}
		links = append(links, opts.GraphLink{
			Source: source,
			Target: target,
			LineStyle: &opts.LineStyle{
				Color:     e.Style.LineColor,
				Width:     float32(e.Style.Width),
				Opacity:   opts.Float(float32(e.Opacity)),
				Curveness: 0.2,
			},
		})
	}
	return nodes, links
}

func graphBase(title string, mode theme.Mode, nodes []opts.GraphNode, links []opts.GraphLink) *charts.Graph {
	labelColor := "#0F172A"
	if mode == theme.HighContrast {
		labelColor = "black"
	}

	graph := charts.NewGraph()
	graph.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Height:    "100vh",
			Width:     "100vw",
		}),
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
	)
	graph.AddSeries(
		"loops",
		nodes,
		links,
		charts.WithGraphChartOpts(
			opts.GraphChart{
				Layout:     "none",
				Draggable:  opts.Bool(true),
				Roam:       opts.Bool(true),
				EdgeSymbol: []string{"none", "arrow"},
			},
		),
		charts.WithLabelOpts(opts.Label{
			Show:     opts.Bool(true),
			Color:    labelColor,
			Position: "inside",
		}),
	)
	return graph
}
