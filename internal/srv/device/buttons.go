package device

import (
	"sync"
	"time"

	"github.com/jypelle/tacho/internal/srv/event"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

const pressStepDuration = 160 * time.Millisecond

type Button struct {
	buttonId       event.ButtonId
	pin            gpio.PinIO
	isPressed      bool
	pressStepCount int64
	lastChange     time.Time
}

func NewButton(buttonId event.ButtonId, name string) *Button {
	pin := gpioreg.ByName(name)
	if pin == nil {
		logrus.Fatalf("Failed to find %s button", name)
	}

	button, err := newButton(buttonId, pin)
	if err != nil {
		logrus.Fatalf("Failed to setup %s button: %v", name, err)
	}
	return button
}

func newButton(buttonId event.ButtonId, pin gpio.PinIO) (*Button, error) {
	// Set it as input, with an internal pull up resistor:
	if err := pin.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, err
	}
	return &Button{buttonId: buttonId, pin: pin}, nil
}

// Refresh samples the pin. A held button sends a press event every pressStepDuration, PressStepCount 1 being the edge.
// A press within pressStepDuration of the last release is taken as contact bounce.
func (b *Button) Refresh(now time.Time, buttonEventChannel chan event.ButtonEvent) {
	wasPressed := b.isPressed
	b.isPressed = bool(!b.pin.Read())

	if !b.isPressed && wasPressed {
		b.lastChange = now
		buttonEventChannel <- event.ButtonEvent{ButtonId: b.buttonId, ButtonEventType: event.RELEASE_EVENT_TYPE, PressStepCount: b.pressStepCount}
		b.pressStepCount = 0
	} else if b.isPressed && b.lastChange.Add(pressStepDuration).Before(now) {
		b.lastChange = now
		b.pressStepCount++
		buttonEventChannel <- event.ButtonEvent{ButtonId: b.buttonId, ButtonEventType: event.PRESS_EVENT_TYPE, PressStepCount: b.pressStepCount}
	}
}

type Buttons struct {
	lock         sync.RWMutex
	eventChannel chan event.ButtonEvent
	simulation   bool
	togglePin    string

	buttons []*Button

	checkTicker *time.Ticker

	stopped chan bool
	askDone chan bool
	done    chan bool
}

func NewButtons(togglePin string, simulation bool) *Buttons {
	if !simulation {
		if _, err := host.Init(); err != nil {
			logrus.Fatalf("Unable to initialize periph host: %v", err)
		}
	}

	device := Buttons{
		eventChannel: make(chan event.ButtonEvent),
		simulation:   simulation,
		togglePin:    togglePin,
		stopped:      make(chan bool),
		askDone:      make(chan bool),
		done:         make(chan bool),
	}

	return &device
}

func (d *Buttons) Start() {
	logrus.Infof("Start buttons device")

	d.lock.Lock()
	defer d.lock.Unlock()

	if !d.simulation {
		d.buttons = append(d.buttons, NewButton(event.TOGGLE_SCALE_BUTTON, d.togglePin))
	}

	// Start periodic check
	d.checkTicker = time.NewTicker(5 * time.Millisecond)
	go func() {
		for loop := true; loop; {
			select {
			case now := <-d.checkTicker.C:
				for _, button := range d.buttons {
					button.Refresh(now, d.eventChannel)
				}
			case <-d.askDone:
				loop = false
			}
		}
		d.done <- true
	}()
}

// Press emulates a short press, used in simulation mode. It gives up once the device is stopped.
func (d *Buttons) Press(buttonId event.ButtonId) {
	for _, eventType := range []event.ButtonEventType{event.PRESS_EVENT_TYPE, event.RELEASE_EVENT_TYPE} {
		select {
		case d.eventChannel <- event.ButtonEvent{ButtonId: buttonId, ButtonEventType: eventType, PressStepCount: 1}:
		case <-d.stopped:
			return
		}
	}
}

func (d *Buttons) StopSendingEvent() {
	logrus.Infof("Stop buttons device")

	d.lock.Lock()
	defer d.lock.Unlock()

	close(d.stopped)
	d.checkTicker.Stop()
	d.askDone <- true
	<-d.done
}

func (d *Buttons) EventChannel() chan event.ButtonEvent {
	return d.eventChannel
}
