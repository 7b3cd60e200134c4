package srv

import (
	"github.com/jypelle/tacho/internal/debugger"
	"github.com/jypelle/tacho/internal/srv/canvas"
	"github.com/jypelle/tacho/internal/srv/config"
	"github.com/jypelle/tacho/internal/srv/device"
	"github.com/jypelle/tacho/internal/srv/event"
	"github.com/jypelle/tacho/internal/srv/plotter"
	"github.com/jypelle/tacho/internal/srv/sample"
	"github.com/jypelle/tacho/internal/srv/scale"
	"github.com/jypelle/tacho/internal/version"
	"github.com/sirupsen/logrus"
	"os"
	"time"
)

type ServerApp struct {
	*config.ServerConfig
	debugger *debugger.Debugger

	scales   *scale.Registry
	history  *sample.Ring
	renderer *plotter.Renderer

	displayDevice    *device.Display
	buttonsDevice    *device.Buttons
	tachometerDevice *device.Tachometer
	tickerDevice     *device.Ticker

	currentMode Mode

	eventLoopAskDone chan bool
	eventLoopDone    chan bool
}

type Mode int64

const (
	UNDEFINED_MODE Mode = iota
	GRAPH_MODE
	END_MODE
)

func NewServerApp(configDir string, debugMode bool, simulationMode bool) *ServerApp {

	logrus.Debugf("Creation of tacho server %s ...", version.AppVersion.String())

	app := &ServerApp{
		currentMode:      UNDEFINED_MODE,
		eventLoopAskDone: make(chan bool),
		eventLoopDone:    make(chan bool),
		ServerConfig:     config.NewServerConfig(configDir, debugMode, simulationMode),
		debugger:         debugger.New(os.Stderr),
	}

	level := app.DebugLevel()
	if app.DebugMode && level < debugger.Debug {
		level = debugger.Debug
	}
	app.debugger.SetLevel(level)

	geometry := plotter.Geometry{
		Width:             app.Display.Width,
		Height:            app.Display.Height,
		AxisXOffset:       app.Graph.AxisXOffset,
		HorizontalStretch: app.Graph.Stretch,
		TickLength:        app.Graph.TickLength,
	}

	app.scales = scale.NewRegistry(geometry.Height)
	if err := app.scales.Select(app.Scale.Default); err != nil {
		logrus.Warnf("Keep default scale %s: %v", app.scales.Active().Name, err)
	}
	app.history = sample.NewRing(app.Graph.HistorySize(geometry.Width))

	app.displayDevice = device.NewDisplay(app.Display, app.SimulationMode)
	app.renderer = plotter.NewRenderer(canvas.New(app.displayDevice.Bounds(), app.displayDevice), geometry, app.scales, app.debugger)
	app.buttonsDevice = device.NewButtons(app.Button.Pin, app.SimulationMode)
	app.tachometerDevice = device.NewTachometer(app.Sensor, app.SimulationMode, func() float64 {
		return app.scales.Active().TargetValue
	})
	app.tickerDevice = device.NewTicker(app.Graph.RefreshPeriod())

	logrus.Debugln("Server created")

	return app
}

func (s *ServerApp) Start() {
	logrus.Printf("Starting tacho server ...")

	logrus.Printf("Starting devices ...")

	// Start display device
	s.displayDevice.Start()

	// Display startup screen
	s.refreshDisplay()
	time.Sleep(2 * time.Second)

	// Set graph mode, the event loop owns the display from now on
	s.currentMode = GRAPH_MODE

	// Start event loop
	go s.eventLoop()

	// Start tachometer device
	s.tachometerDevice.Start()

	// Start buttons device
	s.buttonsDevice.Start()

	// Start ticker device
	s.tickerDevice.Start()
}

// ToggleScale emulates a press on the scale button.
func (s *ServerApp) ToggleScale() {
	s.buttonsDevice.Press(event.TOGGLE_SCALE_BUTTON)
}

func (s *ServerApp) Stop() {
	logrus.Printf("Stopping tacho server ...")

	// Stop ticker device
	s.tickerDevice.StopSendingEvent()

	// Stop buttons device
	s.buttonsDevice.StopSendingEvent()

	// Stop tachometer device
	s.tachometerDevice.StopSendingEvent()

	// Stop event loop
	logrus.Infof("Stop event loop")
	s.eventLoopAskDone <- true
	<-s.eventLoopDone

	// Display end mode image
	s.currentMode = END_MODE
	s.refreshDisplay()

	// Stop display device
	s.displayDevice.Stop()

	logrus.Printf("Server stopped")
}
