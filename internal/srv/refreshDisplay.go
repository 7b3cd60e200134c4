package srv

import (
	"github.com/jypelle/tacho/internal/version"
	"github.com/sirupsen/logrus"
)

const lineHeight = 14

func (s *ServerApp) refreshDisplay() {
	var err error

	middle := s.renderer.Geometry().Height / 2

	switch s.currentMode {
	case UNDEFINED_MODE:
		err = s.renderer.RenderMessage(middle-lineHeight/2, lineHeight, "Tacho", version.AppVersion.String())
	case GRAPH_MODE:
		err = s.renderer.Render(s.history.Newest())
	case END_MODE:
		err = s.renderer.RenderMessage(middle, lineHeight, "See you!")
	}

	if err != nil {
		logrus.Warnf("Unable to refresh display: %v", err)
	}
}
