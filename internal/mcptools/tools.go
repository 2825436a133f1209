// Package mcptools exposes the view core as Model Context Protocol tools so an
// assistant can ask which elements a loop highlights, how they are styled and
// where they sit.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/psidex/loopview/internal/bus"
	"github.com/psidex/loopview/internal/elements"
	"github.com/psidex/loopview/internal/graphview"
	"github.com/psidex/loopview/internal/highlight"
	"github.com/psidex/loopview/internal/layout"
	"github.com/psidex/loopview/internal/style"
	"github.com/psidex/loopview/internal/theme"
)

// Deps are what the tools read and change.
type Deps struct {
	Layout *layout.Store
	Theme  *theme.Flag
	// Bus, if set, carries theme toggles so that attached views refresh.
	// Theme must be attached to it.
	Bus   *bus.Bus
	Force layout.Settings
}

// NewServer creates an MCP server with every tool registered.
func NewServer(version string, deps Deps) *server.MCPServer {
	s := server.NewMCPServer(
		"loopview",
		version,
		server.WithToolCapabilities(true),
	)
	s.AddTools(Tools(deps)...)
	return s
}

func Tools(deps Deps) []server.ServerTool {
	return []server.ServerTool{
		{
			Tool: mcp.NewTool("compute_visibility",
				mcp.WithDescription("Compute which graph elements stay visible when a feedback loop is selected"),
				mcp.WithString("elements", mcp.Required(), mcp.Description("Graph elements as a JSON array of {group, data}")),
				mcp.WithString("loops", mcp.Required(), mcp.Description("Loops as a JSON array of {id, edges}")),
				mcp.WithString("selected_loop", mcp.Description("Id of the selected loop, empty for none")),
			),
			Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				elems, loops, err := snapshotArgs(req)
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				selected := req.GetString("selected_loop", "")

				_, edges := elements.Split(elems)
				r := highlight.Compute(selected, loops, edges)
				states := make(map[string]string, len(elems))
				for _, el := range elems {
					states[el.ElementID()] = r.Of(el.ElementID()).String()
				}
				return jsonToolResult(visibility{Highlighted: r.Active(), Loop: r.LoopID(), States: states})
			},
		},
		{
			Tool: mcp.NewTool("resolve_styles",
				mcp.WithDescription("Resolve the visual style of every node and edge for a theme"),
				mcp.WithString("elements", mcp.Required(), mcp.Description("Graph elements as a JSON array of {group, data}")),
				mcp.WithString("theme", mcp.Description("light or high_contrast, defaults to the current theme")),
			),
			Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				raw, err := req.RequireString("elements")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				mode := deps.currentTheme()
				if name := req.GetString("theme", ""); name != "" {
					if mode, err = theme.ParseMode(name); err != nil {
						return mcp.NewToolResultError(err.Error()), nil
					}
				}

				nodes, edges := elements.Split(elements.ParseElements([]byte(raw)))
				out := styles{
					Theme: mode,
					Nodes: make(map[string]style.NodeStyle, len(nodes)),
					Edges: make(map[string]style.EdgeStyle, len(edges)),
				}
				for _, n := range nodes {
					out.Nodes[n.ID] = style.ResolveNode(n, mode)
				}
				for _, e := range edges {
					out.Edges[e.ID] = style.ResolveEdge(e, mode)
				}
				return jsonToolResult(out)
			},
		},
		{
			Tool: mcp.NewTool("arrange",
				mcp.WithDescription("Lay out a graph the way a freshly mounted view would and return node positions"),
				mcp.WithString("elements", mcp.Required(), mcp.Description("Graph elements as a JSON array of {group, data}")),
				mcp.WithBoolean("use_saved", mcp.Description("Start from the saved layout (default true)")),
			),
			Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				raw, err := req.RequireString("elements")
				if err != nil {
					return mcp.NewToolResultError(err.Error()), nil
				}
				opts := graphview.Options{Force: deps.Force}
				if req.GetBool("use_saved", true) {
					opts.Layout = deps.Layout
				}

				view := graphview.New(opts)
				view.Mount(elements.Snapshot{Elements: elements.ParseElements([]byte(raw))})
				defer view.Destroy()

				scene := view.Scene()
				positions := make(map[string]layout.Position, len(scene.Nodes))
				for _, n := range scene.Nodes {
					positions[n.ID] = n.Position
				}
				return jsonToolResult(arrangement{Positions: positions, Viewport: scene.Viewport})
			},
		},
		{
			Tool: mcp.NewTool("get_layout",
				mcp.WithDescription("Get the saved node positions"),
			),
			Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				positions, ok := deps.Layout.Load()
				if !ok {
					positions = map[string]layout.Position{}
				}
				return jsonToolResult(savedLayout{Saved: ok, Positions: positions})
			},
		},
		{
			Tool: mcp.NewTool("clear_layout",
				mcp.WithDescription("Forget the saved node positions"),
			),
			Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				deps.Layout.Clear()
				return mcp.NewToolResultText("layout cleared"), nil
			},
		},
		{
			Tool: mcp.NewTool("toggle_theme",
				mcp.WithDescription("Switch between the light and high contrast themes"),
			),
			Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				if deps.Theme == nil {
					return mcp.NewToolResultError("no theme flag configured"), nil
				}
				if deps.Bus != nil {
					deps.Bus.Publish(bus.ThemeChanged{})
				} else {
					deps.Theme.Toggle()
				}
				return jsonToolResult(themeState{Theme: deps.Theme.Mode()})
			},
		},
	}
}

type visibility struct {
	Highlighted bool              `json:"highlighted"`
	Loop        string            `json:"loop,omitempty"`
	States      map[string]string `json:"states"`
}

type styles struct {
	Theme theme.Mode                 `json:"theme"`
	Nodes map[string]style.NodeStyle `json:"nodes"`
	Edges map[string]style.EdgeStyle `json:"edges"`
}

type arrangement struct {
	Positions map[string]layout.Position `json:"positions"`
	Viewport  graphview.Viewport         `json:"viewport"`
}

type savedLayout struct {
	Saved     bool                       `json:"saved"`
	Positions map[string]layout.Position `json:"positions"`
}

type themeState struct {
	Theme theme.Mode `json:"theme"`
}

func (d Deps) currentTheme() theme.Mode {
	if d.Theme == nil {
		return theme.Normal
	}
	return d.Theme.Mode()
}

func snapshotArgs(req mcp.CallToolRequest) ([]elements.Element, []elements.Loop, error) {
	rawElems, err := req.RequireString("elements")
	if err != nil {
		return nil, nil, err
	}
	rawLoops, err := req.RequireString("loops")
	if err != nil {
		return nil, nil, err
	}
	if !json.Valid([]byte(rawElems)) {
		return nil, nil, fmt.Errorf("elements is not valid JSON")
	}
	if !json.Valid([]byte(rawLoops)) {
		return nil, nil, fmt.Errorf("loops is not valid JSON")
	}
	return elements.ParseElements([]byte(rawElems)), elements.ParseLoops([]byte(rawLoops)), nil
}

func jsonToolResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
