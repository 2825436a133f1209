package layout

import (
	"math"
	"math/rand"
	"sort"
)

// Settings tune the automatic arrangement. IdealEdgeLength is the preferred
// gap between the borders of two linked nodes, Repulsion scales how hard every
// pair pushes apart and Gravity pulls everything towards the origin so that
// disconnected parts stay close. The simulation always runs all Iterations.
type Settings struct {
	Iterations      int     `toml:"iterations"`
	IdealEdgeLength float64 `toml:"ideal_edge_length"`
	Repulsion       float64 `toml:"repulsion"`
	Gravity         float64 `toml:"gravity"`
	Seed            int64   `toml:"seed"`
}

const referenceRepulsion = 8000.0

func DefaultSettings() Settings {
	return Settings{
		Iterations:      300,
		IdealEdgeLength: 200,
		Repulsion:       referenceRepulsion,
		Gravity:         0.25,
		Seed:            1,
	}
}

func (s Settings) withDefaults() Settings {
	d := DefaultSettings()
	if s.Iterations <= 0 {
		s.Iterations = d.Iterations
	}
	if s.IdealEdgeLength <= 0 {
		s.IdealEdgeLength = d.IdealEdgeLength
	}
	if s.Repulsion <= 0 {
		s.Repulsion = d.Repulsion
	}
	if s.Gravity < 0 {
		s.Gravity = d.Gravity
	}
	return s
}

// Box is a node to arrange, sized by its rendered width and height.
type Box struct {
	ID     string
	Width  float64
	Height float64
}

// Link pulls two boxes together. Links naming unknown boxes, and self links,
// are ignored.
type Link struct {
	Source string
	Target string
}

type body struct {
	id     string
	radius float64
	x, y   float64
	dx, dy float64
}

// minDistance keeps forces finite when two bodies coincide.
const minDistance = 0.01

// Arrange runs a force-directed simulation and returns a centre position for
// every box. The result depends only on the arguments, so arranging the same
// graph twice gives the same positions.
func Arrange(boxes []Box, links []Link, settings Settings) map[string]Position {
	s := settings.withDefaults()
	positions := make(map[string]Position, len(boxes))

	bodies := make([]*body, 0, len(boxes))
	index := make(map[string]int, len(boxes))
	for _, b := range boxes {
		if _, dup := index[b.ID]; dup {
			continue
		}
		index[b.ID] = -1
		bodies = append(bodies, &body{
			id:     b.ID,
			radius: math.Hypot(b.Width, b.Height) / 2,
		})
	}
	if len(bodies) == 0 {
		return positions
	}

	sort.Slice(bodies, func(i, j int) bool { return bodies[i].id < bodies[j].id })
	meanRadius := 0.0
	for i, b := range bodies {
		index[b.id] = i
		meanRadius += b.radius
	}
	meanRadius /= float64(len(bodies))

	type spring struct{ a, b int }
	springs := make([]spring, 0, len(links))
	for _, l := range links {
		a, okA := index[l.Source]
		b, okB := index[l.Target]
		if !okA || !okB || a == b {
			continue
		}
		springs = append(springs, spring{a, b})
	}

	// k is the natural centre-to-centre distance of two linked nodes.
	k := s.IdealEdgeLength + 2*meanRadius
	repulsion := s.Repulsion / referenceRepulsion
	n := float64(len(bodies))

	rng := rand.New(rand.NewSource(s.Seed))
	start := k * math.Sqrt(n) / 2
	for i, b := range bodies {
		angle := 2 * math.Pi * float64(i) / n
		b.x = start*math.Cos(angle) + (rng.Float64()-0.5)*k/10
		b.y = start*math.Sin(angle) + (rng.Float64()-0.5)*k/10
	}

	temperature := start
	cooling := temperature / float64(s.Iterations+1)

	for iter := 0; iter < s.Iterations; iter++ {
		for _, b := range bodies {
			b.dx, b.dy = 0, 0
		}

		for i := 0; i < len(bodies); i++ {
			for j := i + 1; j < len(bodies); j++ {
				a, b := bodies[i], bodies[j]
				dx, dy, d := separation(a, b, i, j)
				force := repulsion * k * k / d
				// Overlapping boxes push apart harder.
				if overlap := a.radius + b.radius - d; overlap > 0 {
					force += repulsion * k * overlap / (a.radius + b.radius)
				}
				fx, fy := dx/d*force, dy/d*force
				a.dx += fx
				a.dy += fy
				b.dx -= fx
				b.dy -= fy
			}
		}

		for _, sp := range springs {
			a, b := bodies[sp.a], bodies[sp.b]
			dx, dy, d := separation(a, b, sp.a, sp.b)
			force := d * d / k
			fx, fy := dx/d*force, dy/d*force
			a.dx -= fx
			a.dy -= fy
			b.dx += fx
			b.dy += fy
		}

		for _, b := range bodies {
			b.dx -= s.Gravity * b.x
			b.dy -= s.Gravity * b.y

			length := math.Hypot(b.dx, b.dy)
			if length < minDistance {
				continue
			}
			step := math.Min(length, temperature)
			b.x += b.dx / length * step
			b.y += b.dy / length * step
		}

		temperature -= cooling
	}

	for _, b := range bodies {
		positions[b.id] = Position{X: b.x, Y: b.y}
	}
	return positions
}

// separation is the vector from b to a and its length, never shorter than
// minDistance. Coincident bodies are split along a direction fixed by their
// indices.
func separation(a, b *body, i, j int) (dx, dy, d float64) {
	dx, dy = a.x-b.x, a.y-b.y
	d = math.Hypot(dx, dy)
	if d >= minDistance {
		return dx, dy, d
	}
	angle := float64(i*31+j*17) * 0.1
	dx, dy = math.Cos(angle)*minDistance, math.Sin(angle)*minDistance
	return dx, dy, minDistance
}
