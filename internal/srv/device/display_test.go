package device

import (
	"image"
	"testing"

	"github.com/jypelle/tacho/internal/srv/config"
)

func TestDisplayCommitKeepsLastFrame(t *testing.T) {
	display := NewDisplay(config.DisplayParam{Width: 128, Height: 64}, true)
	if got := display.Bounds(); got != image.Rect(0, 0, 128, 64) {
		t.Errorf("unexpected bounds %v", got)
	}

	// not started yet: the frame is kept but not shown
	first := image.NewGray(display.Bounds())
	if err := display.Commit(first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if display.LastImage() != first {
		t.Errorf("frame committed before start was not kept")
	}

	display.Start()
	second := image.NewGray(display.Bounds())
	if err := display.Commit(second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if display.LastImage() != second {
		t.Errorf("last frame not updated")
	}
	display.Stop()
}
