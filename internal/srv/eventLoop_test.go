package srv

import (
	"image"
	"testing"

	"github.com/jypelle/tacho/internal/debugger"
	"github.com/jypelle/tacho/internal/srv/canvas"
	"github.com/jypelle/tacho/internal/srv/event"
	"github.com/jypelle/tacho/internal/srv/plotter"
	"github.com/jypelle/tacho/internal/srv/sample"
	"github.com/jypelle/tacho/internal/srv/scale"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

type frameRecorder struct {
	frames []image.Image
}

func (r *frameRecorder) Commit(img image.Image) error {
	r.frames = append(r.frames, img)
	return nil
}

func newTestServerApp(frames *frameRecorder) *ServerApp {
	geometry := plotter.DefaultGeometry(128, 64)
	scales := scale.NewRegistry(geometry.Height)
	return &ServerApp{
		debugger:    debugger.New(nil),
		scales:      scales,
		history:     sample.NewRing(34),
		renderer:    plotter.NewRenderer(canvas.New(image.Rect(0, 0, 128, 64), frames), geometry, scales, nil),
		currentMode: GRAPH_MODE,
	}
}

func TestToggleButtonPress(t *testing.T) {
	frames := &frameRecorder{}
	app := newTestServerApp(frames)

	app.handleButtonEvent(event.ButtonEvent{ButtonId: event.TOGGLE_SCALE_BUTTON, ButtonEventType: event.PRESS_EVENT_TYPE, PressStepCount: 1})
	if got := app.scales.Active().Name; got != scale.Name33 {
		t.Errorf("unexpected scale, got: %v, expected: %v", got, scale.Name33)
	}
	if len(frames.frames) != 1 {
		t.Errorf("expected a redraw, got %d frames", len(frames.frames))
	}

	// held button and release do not toggle again
	app.handleButtonEvent(event.ButtonEvent{ButtonId: event.TOGGLE_SCALE_BUTTON, ButtonEventType: event.PRESS_EVENT_TYPE, PressStepCount: 2})
	app.handleButtonEvent(event.ButtonEvent{ButtonId: event.TOGGLE_SCALE_BUTTON, ButtonEventType: event.RELEASE_EVENT_TYPE, PressStepCount: 2})
	if got := app.scales.Active().Name; got != scale.Name33 {
		t.Errorf("unexpected scale, got: %v, expected: %v", got, scale.Name33)
	}
}

func TestRefreshDisplayPlotsHistory(t *testing.T) {
	frames := &frameRecorder{}
	app := newTestServerApp(frames)
	app.history.Push(45)
	app.history.Push(46)

	app.refreshDisplay()

	if len(frames.frames) != 1 {
		t.Fatalf("unexpected frame count %d", len(frames.frames))
	}
	img := frames.frames[0].(*image1bit.VerticalLSB)
	// 46 maps to row 63 - round(4*64/6) = 20 at x 128, 45 to row 31 at x 124
	if img.BitAt(124, 31) != image1bit.On {
		t.Errorf("older sample not drawn")
	}
	lit := false
	for y := 20; y < 26; y++ {
		lit = lit || img.BitAt(127, y) == image1bit.On
	}
	if !lit {
		t.Errorf("newest sample not drawn at the right edge")
	}
	// axis
	if img.BitAt(17, 0) != image1bit.On || img.BitAt(17, 63) != image1bit.On {
		t.Errorf("axis not drawn")
	}
}

func TestRefreshDisplayMessages(t *testing.T) {
	for _, mode := range []Mode{UNDEFINED_MODE, END_MODE} {
		frames := &frameRecorder{}
		app := newTestServerApp(frames)
		app.currentMode = mode

		app.refreshDisplay()

		if len(frames.frames) != 1 {
			t.Fatalf("mode %d: unexpected frame count %d", mode, len(frames.frames))
		}
	}
}
