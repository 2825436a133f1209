// Package style maps diagram elements and a theme mode to concrete visual
// styles. Everything here is a pure function of its arguments.
package style

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/psidex/loopview/internal/elements"
	"github.com/psidex/loopview/internal/theme"
)

const (
	NodeWidth        = 300.0
	NodeShape        = "round-rectangle"
	NodePadding      = 18.0
	NodeTextMaxWidth = 250.0
	FontFamily       = "Inter"
	FontSize         = 24.0

	EdgeWidth  = 3.0
	ArrowShape = "triangle"
	CurveStyle = "unbundled-bezier"

	labelBaseHeight = 30.0
	labelRuneHeight = 0.5
)

type palette struct {
	background string
	border     string
	label      string
	direct     string
	inverse    string
}

var palettes = map[theme.Mode]palette{
	theme.Normal: {
		background: "#FFFFFF",
		border:     "#E2E8F0",
		label:      "#0F172A",
		direct:     "#C2410C",
		inverse:    "#0284C7",
	},
	theme.HighContrast: {
		background: "#FFFFFF",
		border:     "#0F172A",
		label:      "#000000",
		direct:     "#7C2D12",
		inverse:    "#0C4A6E",
	},
}

func paletteFor(mode theme.Mode) palette {
	if p, ok := palettes[mode]; ok {
		return p
	}
	return palettes[theme.Normal]
}

const keySVG = `<svg width="34" height="25" viewBox="0 0 34 25" fill="none" xmlns="http://www.w3.org/2000/svg">` +
	`<rect width="33.3333" height="25" rx="12.5" fill="#BAE6FD"/>` +
	`<path fill-rule="evenodd" clip-rule="evenodd" d="M19.2708 5.20837C16.682 5.20837 14.5833 7.30704 14.5833 9.89587C14.5833 10.1693 14.6068 10.4376 14.6519 10.6989C14.6986 10.969 14.6297 11.1963 14.4984 11.3276L9.98519 15.8408C9.59449 16.2315 9.375 16.7614 9.375 17.3139V19.2709C9.375 19.5585 9.60819 19.7917 9.89583 19.7917H12.5C12.7876 19.7917 13.0208 19.5585 13.0208 19.2709V18.2292H14.0625C14.3501 18.2292 14.5833 17.996 14.5833 17.7084V16.6667H15.625C15.7631 16.6667 15.8956 16.6118 15.9933 16.5142L17.8391 14.6683C17.9704 14.537 18.1977 14.4681 18.4678 14.5148C18.7291 14.5599 18.9974 14.5834 19.2708 14.5834C21.8597 14.5834 23.9583 12.4847 23.9583 9.89587C23.9583 7.30704 21.8597 5.20837 19.2708 5.20837ZM19.2708 7.29171C18.9832 7.29171 18.75 7.52489 18.75 7.81254C18.75 8.10019 18.9832 8.33337 19.2708 8.33337C20.1338 8.33337 20.8333 9.03293 20.8333 9.89587C20.8333 10.1835 21.0665 10.4167 21.3542 10.4167C21.6418 10.4167 21.875 10.1835 21.875 9.89587C21.875 8.45763 20.7091 7.29171 19.2708 7.29171Z" fill="#082F49"/>` +
	`</svg>`

// KeyIcon is the data URI drawn in the corner of key variable nodes.
var KeyIcon = "data:image/svg+xml;utf8," + strings.ReplaceAll(url.QueryEscape(keySVG), "+", "%20")

// Icon is the image placed on a node.
type Icon struct {
	URI     string  `json:"uri"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	OffsetX float64 `json:"offsetX"`
	OffsetY float64 `json:"offsetY"`
}

type NodeStyle struct {
	BackgroundColor string  `json:"backgroundColor"`
	BorderColor     string  `json:"borderColor"`
	BorderWidth     float64 `json:"borderWidth"`
	BorderStyle     string  `json:"borderStyle"`
	Shape           string  `json:"shape"`
	Width           float64 `json:"width"`
	Height          float64 `json:"height"`
	Padding         float64 `json:"padding"`
	FontFamily      string  `json:"fontFamily"`
	FontSize        float64 `json:"fontSize"`
	FontWeight      int     `json:"fontWeight"`
	TextMaxWidth    float64 `json:"textMaxWidth"`
	TextMarginY     float64 `json:"textMarginY"`
	LabelColor      string  `json:"labelColor"`
	Icon            *Icon   `json:"icon,omitempty"`
}

type EdgeStyle struct {
	Width      float64 `json:"width"`
	LineColor  string  `json:"lineColor"`
	ArrowColor string  `json:"arrowColor"`
	ArrowShape string  `json:"arrowShape"`
	CurveStyle string  `json:"curveStyle"`
}

// LabelHeight grows with the label so wrapped text is not clipped. Length is
// counted in runes, not bytes or UTF-16 units.
func LabelHeight(label string) float64 {
	return labelBaseHeight + labelRuneHeight*float64(utf8.RuneCountInString(label))
}

func ResolveNode(n elements.Node, mode theme.Mode) NodeStyle {
	p := paletteFor(mode)
	s := NodeStyle{
		BackgroundColor: p.background,
		BorderColor:     p.border,
		BorderWidth:     1,
		BorderStyle:     "solid",
		Shape:           NodeShape,
		Width:           NodeWidth,
		Height:          LabelHeight(n.Label),
		Padding:         NodePadding,
		FontFamily:      FontFamily,
		FontSize:        FontSize,
		FontWeight:      400,
		TextMaxWidth:    NodeTextMaxWidth,
		LabelColor:      p.label,
	}
	if n.IsKeyVariable {
		s.BorderWidth = 3
		s.FontWeight = 600
		s.TextMarginY = 15
		s.Icon = &Icon{URI: KeyIcon, Width: 50, Height: 37, OffsetX: 4, OffsetY: 4}
	}
	return s
}

func ResolveEdge(e elements.Edge, mode theme.Mode) EdgeStyle {
	p := paletteFor(mode)
	color := p.direct
	if e.Relation == elements.Inverse {
		color = p.inverse
	}
	return EdgeStyle{
		Width:      EdgeWidth,
		LineColor:  color,
		ArrowColor: color,
		ArrowShape: ArrowShape,
		CurveStyle: CurveStyle,
	}
}
