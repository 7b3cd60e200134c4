// Package canvas draws frames on a 1 bit image and hands them to a display.
package canvas

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/bitmapfont/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

var uniformOn = image.NewUniform(image1bit.On)

// Committer receives every finished frame.
type Committer interface {
	Commit(img image.Image) error
}

// Canvas is a frame based surface. Pixels outside of the bounds are silently dropped.
type Canvas struct {
	bounds    image.Rectangle
	committer Committer
	face      font.Face
	frame     *image1bit.VerticalLSB
}

func New(bounds image.Rectangle, committer Committer) *Canvas {
	return &Canvas{
		bounds:    bounds,
		committer: committer,
		face:      bitmapfont.Face,
	}
}

func (c *Canvas) Bounds() image.Rectangle {
	return c.bounds
}

// BeginFrame starts a blank frame. A new image is allocated each time so committed frames are never modified.
func (c *Canvas) BeginFrame() {
	c.frame = image1bit.NewVerticalLSB(c.bounds)
}

func (c *Canvas) EndFrame() error {
	frame := c.current()
	c.frame = nil
	if err := c.committer.Commit(frame); err != nil {
		return fmt.Errorf("unable to commit frame: %w", err)
	}
	return nil
}

func (c *Canvas) current() *image1bit.VerticalLSB {
	if c.frame == nil {
		c.BeginFrame()
	}
	return c.frame
}

func (c *Canvas) set(x, y int) {
	if (image.Point{X: x, Y: y}).In(c.bounds) {
		c.current().SetBit(x, y, image1bit.On)
	}
}

func (c *Canvas) DrawVLine(x, y, length int) {
	for i := 0; i < length; i++ {
		c.set(x, y+i)
	}
}

func (c *Canvas) DrawHLine(x, y, length int) {
	for i := 0; i < length; i++ {
		c.set(x+i, y)
	}
}

// DrawLine draws both end points included (Bresenham).
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	e := dx + dy
	for {
		c.set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (c *Canvas) DrawText(x, y int, text string) {
	d := &font.Drawer{
		Dst:  c.current(),
		Src:  uniformOn,
		Face: c.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
