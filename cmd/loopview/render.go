package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/psidex/loopview/internal/capture"
	"github.com/psidex/loopview/internal/elements"
	"github.com/psidex/loopview/internal/graphs"
	"github.com/psidex/loopview/internal/graphs/graphology"
	"github.com/psidex/loopview/internal/graphs/vis"
	"github.com/psidex/loopview/internal/graphview"
	"github.com/psidex/loopview/internal/layout"
	"github.com/psidex/loopview/internal/theme"
)

// snapshotFile is the document render reads, the same shape a page mounts.
type snapshotFile struct {
	Elements     json.RawMessage `json:"elements"`
	Loops        json.RawMessage `json:"loops"`
	SelectedLoop string          `json:"selectedLoop"`
}

func readSnapshot(path string) (elements.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return elements.Snapshot{}, err
	}
	var f snapshotFile
	if err := json.Unmarshal(data, &f); err != nil {
		return elements.Snapshot{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return elements.Snapshot{
		Elements:     elements.ParseElements(f.Elements),
		Loops:        elements.ParseLoops(f.Loops),
		SelectedLoop: f.SelectedLoop,
		HasSelection: f.SelectedLoop != "",
	}, nil
}

func newProvider(format, title string) (graphs.CliSceneProvider, error) {
	switch format {
	case "echarts":
		return graphs.NewECharts(title), nil
	case "vis":
		return vis.NewVis(title), nil
	case "json":
		return graphs.NewAdjacency(), nil
	case "graphology":
		return graphology.NewGraphology(), nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

type fixedMode theme.Mode

func (m fixedMode) Mode() theme.Mode { return theme.Mode(m) }

func renderCmd() *cobra.Command {
	var (
		format    string
		out       string
		title     string
		themeName string
		selected  string
		noSaved   bool
		png       bool
	)

	cmd := &cobra.Command{
		Use:   "render <snapshot.json>",
		Short: "Render a diagram snapshot to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			defer e.Close()

			snap, err := readSnapshot(args[0])
			if err != nil {
				return err
			}
			if selected != "" {
				snap.SelectedLoop = selected
				snap.HasSelection = true
			}

			provider, err := newProvider(format, title)
			if err != nil {
				return err
			}

			var mode graphview.ThemeSource = theme.NewFlag(e.kv, e.logger)
			if themeName != "" {
				m, err := theme.ParseMode(themeName)
				if err != nil {
					return err
				}
				mode = fixedMode(m)
			}

			opts := e.cfg.ControllerOptions()
			opts.Theme = mode
			opts.Surface = provider
			opts.Logger = e.logger
			if !noSaved {
				opts.Layout = layout.NewStore(e.kv, e.logger)
			}

			view := graphview.New(opts)
			view.Mount(snap)
			defer view.Destroy()

			if out == "" {
				out = strings.TrimSuffix(args[0], ".json")
			}
			written, err := provider.RenderToFile(out)
			if err != nil {
				return err
			}
			good.Printf("wrote %s", written)
			subtle.Printf(" (%d nodes, %d edges)\n", len(snap.Nodes()), len(snap.Edges()))

			if !png {
				return nil
			}
			if provider.Extension() != ".html" {
				return fmt.Errorf("--png needs an html format, not %s", format)
			}
			shot := out + ".png"
			if err := capture.ToFile(context.Background(), written, shot, capture.Options{
				Width:  int64(opts.ViewportWidth),
				Height: int64(opts.ViewportHeight),
			}); err != nil {
				return err
			}
			good.Printf("wrote %s\n", shot)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "echarts", "Output format: echarts, vis, graphology or json")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file name without extension (default: the snapshot name)")
	cmd.Flags().StringVar(&title, "title", graphs.DefaultTitle, "Page title for html formats")
	cmd.Flags().StringVar(&themeName, "theme", "", "light or high_contrast (default: the saved theme)")
	cmd.Flags().StringVar(&selected, "loop", "", "Highlight this loop")
	cmd.Flags().BoolVar(&noSaved, "no-saved", false, "Ignore the saved layout")
	cmd.Flags().BoolVar(&png, "png", false, "Also screenshot the page with headless Chrome")
	return cmd
}
