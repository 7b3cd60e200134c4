package srv

import (
	"github.com/jypelle/tacho/internal/debugger"
	"github.com/jypelle/tacho/internal/srv/event"
	"github.com/sirupsen/logrus"
)

func (s *ServerApp) eventLoop() {
	for loop := true; loop; {
		select {
		case ev := <-s.tickerDevice.EventChannel():
			switch ev.Data.(type) {
			case event.TickerEventTickData:
				if s.currentMode == GRAPH_MODE {
					s.refreshDisplay()
				}
			}
		case ev := <-s.tachometerDevice.EventChannel():
			s.history.Push(ev.Rpm)
			s.debugger.Print(debugger.Debug, debugger.Text("rpm "))
			s.debugger.Println(debugger.Debug, debugger.Float(ev.Rpm))
		case ev := <-s.buttonsDevice.EventChannel():
			logrus.Debugf("Receive button event: %d, %d, %d", ev.ButtonId, ev.ButtonEventType, ev.PressStepCount)
			s.handleButtonEvent(ev)
		case <-s.eventLoopAskDone:
			loop = false
		}
	}
	s.eventLoopDone <- true
}

func (s *ServerApp) handleButtonEvent(ev event.ButtonEvent) {
	switch ev.ButtonId {
	case event.TOGGLE_SCALE_BUTTON:
		if ev.ButtonEventType == event.PRESS_EVENT_TYPE && ev.PressStepCount == 1 {
			preset := s.scales.Toggle()
			logrus.Infof("Switch to %s scale", preset.Name)
			s.debugger.Print(debugger.Info, debugger.Text("vmax "))
			s.debugger.Println(debugger.Info, debugger.Float(preset.MaxValue))
			s.debugger.Print(debugger.Info, debugger.Text("vmin "))
			s.debugger.Println(debugger.Info, debugger.Float(preset.MinValue))
			s.debugger.Print(debugger.Info, debugger.Text("resolution "))
			s.debugger.Println(debugger.Info, debugger.Float(preset.Resolution))
			s.refreshDisplay()
		}
	}
}
