package plotter

import (
	"github.com/jypelle/tacho/internal/debugger"
	"github.com/jypelle/tacho/internal/srv/scale"
)

const charWidth = 6

// Renderer owns the display surface and draws the graph with the active scale.
type Renderer struct {
	surface  Surface
	geometry Geometry
	scales   *scale.Registry
	debugger *debugger.Debugger
}

func NewRenderer(surface Surface, geometry Geometry, scales *scale.Registry, dbg *debugger.Debugger) *Renderer {
	return &Renderer{
		surface:  surface,
		geometry: geometry,
		scales:   scales,
		debugger: dbg,
	}
}

func (r *Renderer) Geometry() Geometry {
	return r.geometry
}

// Render plots samples, newest first, with one snapshot of the active preset.
func (r *Renderer) Render(samples []float64) error {
	preset := r.scales.Active()

	if r.debugger != nil {
		r.debugger.Print(debugger.Trace, debugger.Text("plot "+preset.Name+" numVals "))
		r.debugger.Println(debugger.Trace, debugger.Int(int64(len(samples))))
	}

	return PlotGraph(samples, len(samples), preset, r.geometry, r.surface)
}

// RenderMessage draws horizontally centered lines, the first baseline at y, one every lineHeight pixels.
func (r *Renderer) RenderMessage(y, lineHeight int, lines ...string) (err error) {
	r.surface.BeginFrame()
	defer func() {
		if commitErr := r.surface.EndFrame(); err == nil {
			err = commitErr
		}
	}()

	for i, line := range lines {
		r.surface.DrawText((r.geometry.Width-len(line)*charWidth)/2, y+i*lineHeight, line)
	}
	return nil
}
