//go:build simulation
// +build simulation

package device

import (
	"image"

	"gioui.org/app"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"github.com/sirupsen/logrus"
)

type simulationWindow struct {
	window *app.Window
}

func (s *simulationWindow) start(d *Display) {
	bounds := d.Bounds()
	s.window = app.NewWindow(
		app.Title("tacho"),
		app.Size(unit.Px(float32(bounds.Dx()*2)), unit.Px(float32(bounds.Dy()*2))),
		app.MinSize(unit.Px(float32(bounds.Dx())), unit.Px(float32(bounds.Dy()))),
	)
	go func() {
		if err := s.loop(d); err != nil {
			logrus.Fatalf("Simulation window failed: %v", err)
		}
	}()
	go app.Main()
}

func (s *simulationWindow) invalidate() {
	s.window.Invalidate()
}

func (s *simulationWindow) close() {
	s.window.Close()
}

func (s *simulationWindow) loop(d *Display) error {
	var ops op.Ops
	for {
		e := <-s.window.Events()
		switch e := e.(type) {
		case system.DestroyEvent:
			return e.Err
		case system.FrameEvent:
			gtx := layout.NewContext(&ops, e)

			var lastImg image.Image = image.NewGray(d.Bounds())
			if img := d.LastImage(); img != nil {
				lastImg = img
			}

			img := widget.Image{Src: paint.NewImageOp(lastImg), Fit: widget.Contain}
			img.Layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}
