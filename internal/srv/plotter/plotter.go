package plotter

import (
	"math"

	"github.com/jypelle/tacho/internal/srv/scale"
)

// Label baseline biases keep the text clear of the tick line.
const (
	targetLabelBias = 3
	minLabelBias    = 0
	maxLabelBias    = 6
)

// Surface is a frame based drawing target with a top-left origin.
type Surface interface {
	BeginFrame()
	// EndFrame commits the frame started by BeginFrame.
	EndFrame() error
	DrawVLine(x, y, length int)
	DrawHLine(x, y, length int)
	DrawLine(x0, y0, x1, y1 int)
	// DrawText prints text with its baseline at y.
	DrawText(x, y int, text string)
}

type Geometry struct {
	Width             int
	Height            int
	AxisXOffset       int
	HorizontalStretch int
	TickLength        int
}

func DefaultGeometry(width, height int) Geometry {
	return Geometry{
		Width:             width,
		Height:            height,
		AxisXOffset:       17,
		HorizontalStretch: 4,
		TickLength:        5,
	}
}

// MapToPixelRow converts value into a bottom-up row in [0, Height-1].
// Out of range values are pinned to the nearest extreme and non-finite ones to the minimum.
func MapToPixelRow(value float64, preset scale.Preset, geometry Geometry) int {
	if geometry.Height <= 0 {
		return 0
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		value = preset.MinValue
	}

	row := math.Round((value - preset.MinValue) * preset.Resolution)
	if math.IsNaN(row) || row < 0 {
		return 0
	}
	if top := float64(geometry.Height - 1); row > top {
		return geometry.Height - 1
	}
	return int(row)
}

func DrawAxis(preset scale.Preset, geometry Geometry, surface Surface) {
	surface.DrawVLine(geometry.AxisXOffset, 0, geometry.Height)

	y := geometry.Height - MapToPixelRow(preset.TargetValue, preset, geometry)
	surface.DrawHLine(geometry.AxisXOffset-geometry.TickLength, y, geometry.TickLength)
	surface.DrawText(0, y+targetLabelBias, preset.LabelTarget)

	y = geometry.Height - MapToPixelRow(preset.MinValue, preset, geometry)
	surface.DrawText(0, y+minLabelBias, preset.LabelMin)

	y = geometry.Height - MapToPixelRow(preset.MaxValue, preset, geometry)
	surface.DrawText(0, y+maxLabelBias, preset.LabelMax)
}

// PlotGraph draws the axis and the polyline of the first sampleCount samples in one frame.
// samples[0] is the most recent one and sits on the right edge, older ones scroll left.
// The frame is committed on every exit path and the commit error is returned.
func PlotGraph(samples []float64, sampleCount int, preset scale.Preset, geometry Geometry, surface Surface) (err error) {
	surface.BeginFrame()
	defer func() {
		if commitErr := surface.EndFrame(); err == nil {
			err = commitErr
		}
	}()

	DrawAxis(preset, geometry, surface)

	if sampleCount > len(samples) {
		sampleCount = len(samples)
	}
	if sampleCount <= 0 {
		return nil
	}

	bottom := geometry.Height - 1
	last := bottom - MapToPixelRow(samples[0], preset, geometry)
	cursor := 0
	for i := 0; i < sampleCount; i++ {
		pxY := bottom - MapToPixelRow(samples[i], preset, geometry)

		if i > 0 {
			fromX := geometry.Width - (cursor - geometry.HorizontalStretch)
			if fromX < 0 {
				// the rest of the tape is off-screen
				break
			}
			surface.DrawLine(fromX, last, geometry.Width-cursor, pxY)
		}

		last = pxY
		cursor += geometry.HorizontalStretch
	}

	return nil
}
