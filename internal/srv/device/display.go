package device

import (
	"image"
	"sync"

	"github.com/jypelle/tacho/internal/srv/config"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/host/v3"
)

type frameRequest struct {
	img    image.Image
	result chan error
}

// Display pushes committed frames to the ssd1306 oled, or to a window in simulation mode.
type Display struct {
	oledLock    sync.Mutex
	oledDisplay *ssd1306.Dev
	i2cBus      i2c.BusCloser

	lock           sync.RWMutex
	on             bool
	simulationMode bool
	param          config.DisplayParam
	lastImg        image.Image

	simulation simulationWindow

	askDone chan bool
	askImg  chan frameRequest
	done    chan bool
}

func NewDisplay(param config.DisplayParam, simulationMode bool) *Display {
	if !simulationMode {
		if _, err := host.Init(); err != nil {
			logrus.Fatalf("Unable to initialize periph host: %v", err)
		}
	}

	device := Display{
		simulationMode: simulationMode,
		param:          param,
		askDone:        make(chan bool),
		askImg:         make(chan frameRequest),
		done:           make(chan bool),
	}

	return &device
}

func (d *Display) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.param.Width, d.param.Height)
}

func (d *Display) Start() {
	logrus.Infof("Start display device")

	d.on = true

	if d.simulationMode {
		d.simulation.start(d)
		return
	}

	var err error
	// Open a handle to the configured I²C bus, the first available one by default
	d.i2cBus, err = i2creg.Open(d.param.I2cBus)
	if err != nil {
		logrus.Fatalf("Unable to open i2c bus: %v\n", err)
	}

	opts := ssd1306.DefaultOpts
	opts.W = d.param.Width
	opts.H = d.param.Height
	if opts.H == 32 {
		opts.Sequential = true
	}
	d.oledDisplay, err = ssd1306.NewI2C(d.i2cBus, &opts)
	if err != nil {
		logrus.Fatalf("Unable to initialize oled display: %v\n", err)
	}
	logrus.Debugf("Oled display: %s", d.oledDisplay)

	if err = d.oledDisplay.SetContrast(d.param.Contrast); err != nil {
		logrus.Warnf("Unable to set oled contrast: %v", err)
	}

	go func() {
		for loop := true; loop; {
			select {
			case <-d.askDone:
				loop = false
			case req := <-d.askImg:
				d.oledLock.Lock()
				err := d.oledDisplay.Draw(d.oledDisplay.Bounds(), req.img, image.Point{})
				d.oledLock.Unlock()
				req.result <- err
			}
		}
		d.oledLock.Lock()
		d.i2cBus.Close()
		d.oledLock.Unlock()
		d.done <- true
	}()
}

func (d *Display) Stop() {
	logrus.Infof("Stop display device")

	if d.simulationMode {
		d.simulation.close()
	} else {
		d.askDone <- true
		<-d.done
	}
}

// LastImage returns the last committed frame.
func (d *Display) LastImage() image.Image {
	d.lock.RLock()
	defer d.lock.RUnlock()
	return d.lastImg
}

// Commit shows img and waits for the transfer to the oled.
func (d *Display) Commit(img image.Image) error {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.lastImg = img
	if !d.on {
		return nil
	}
	if d.simulationMode {
		d.simulation.invalidate()
		return nil
	}

	result := make(chan error)
	d.askImg <- frameRequest{img: img, result: result}
	return <-result
}
