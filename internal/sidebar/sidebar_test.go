package sidebar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampWidth(t *testing.T) {
	tests := []struct {
		name      string
		requested float64
		window    float64
		want      float64
	}{
		{name: "within bounds", requested: 400, window: 1000, want: 400},
		{name: "too narrow", requested: 100, window: 1000, want: 250},
		{name: "too wide", requested: 900, window: 1000, want: 800},
		{name: "tiny window", requested: 300, window: 200, want: 250},
		{name: "nan", requested: math.NaN(), window: 1000, want: 250},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampWidth(tt.requested, tt.window))
		})
	}
}

func TestDrag(t *testing.T) {
	d := Drag{StartWidth: 300, StartX: 700}

	assert.Equal(t, 350.0, d.WidthAt(650, 1000))
	assert.Equal(t, 250.0, d.WidthAt(900, 1000))
	assert.Equal(t, 800.0, d.WidthAt(0, 1000))
	assert.Equal(t, 650.0, PlotWidth(d.WidthAt(650, 1000), 1000))
	assert.Equal(t, 0.0, PlotWidth(300, 200))
}

func TestPanel(t *testing.T) {
	p := NewPanel()
	assert.Equal(t, DefaultWidth, p.Width())
	assert.False(t, p.Dragging())

	assert.False(t, p.Move(100, 1000))
	assert.Equal(t, DefaultWidth, p.Width())

	p.Begin(700)
	assert.True(t, p.Dragging())
	assert.True(t, p.Move(600, 1000))
	assert.Equal(t, 400.0, p.Width())
	assert.True(t, p.Move(-500, 1000))
	assert.Equal(t, 800.0, p.Width())
	p.End()
	assert.False(t, p.Dragging())

	// A new gesture starts from where the last one ended.
	p.Begin(200)
	p.Move(250, 1000)
	assert.Equal(t, 750.0, p.Width())
	p.End()

	p.Fit(500)
	assert.Equal(t, 400.0, p.Width())
	p.Fit(100)
	assert.Equal(t, MinWidth, p.Width())
}
