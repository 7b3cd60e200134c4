package device

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/jypelle/tacho/internal/srv/config"
	"github.com/jypelle/tacho/internal/srv/event"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// rpmMeter turns pulse timestamps into rotational speed.
type rpmMeter struct {
	pulsesPerRevolution int
	stallTimeout        time.Duration

	lastPulse time.Time
	intervals []time.Duration
}

func (m *rpmMeter) Pulse(at time.Time) {
	if !m.lastPulse.IsZero() {
		m.intervals = append(m.intervals, at.Sub(m.lastPulse))
	}
	m.lastPulse = at
}

// Sample averages the intervals seen since the previous sample.
// Without any interval it reports 0 rpm once the platter is stalled, and nothing before.
func (m *rpmMeter) Sample(now time.Time) (float64, bool) {
	if len(m.intervals) == 0 {
		if m.lastPulse.IsZero() || now.Sub(m.lastPulse) >= m.stallTimeout {
			return 0, true
		}
		return 0, false
	}

	var total time.Duration
	for _, interval := range m.intervals {
		total += interval
	}
	average := total / time.Duration(len(m.intervals))
	m.intervals = m.intervals[:0]

	return rpmFromInterval(average, m.pulsesPerRevolution), true
}

func rpmFromInterval(interval time.Duration, pulsesPerRevolution int) float64 {
	if interval <= 0 || pulsesPerRevolution <= 0 {
		return 0
	}
	return float64(time.Minute) / float64(interval) / float64(pulsesPerRevolution)
}

// Tachometer measures the platter speed from a hall sensor on a gpio pin, one sample per period.
type Tachometer struct {
	lock         sync.RWMutex
	eventChannel chan event.SampleEvent

	param      config.SensorParam
	simulation bool
	target     func() float64

	pin          gpio.PinIO
	pulseChannel chan time.Time
	sampleTicker *time.Ticker

	askDone chan bool
	done    chan bool
}

// NewTachometer reads param.Pin, target gives the speed to simulate around in simulation mode.
func NewTachometer(param config.SensorParam, simulation bool, target func() float64) *Tachometer {
	if !simulation {
		if _, err := host.Init(); err != nil {
			logrus.Fatalf("Unable to initialize periph host: %v", err)
		}
	}

	device := Tachometer{
		eventChannel: make(chan event.SampleEvent),
		param:        param,
		simulation:   simulation,
		target:       target,
		pulseChannel: make(chan time.Time, 64),
		askDone:      make(chan bool),
		done:         make(chan bool),
	}
	return &device
}

func (d *Tachometer) Start() {
	logrus.Infof("Start tachometer device")
	d.lock.Lock()
	defer d.lock.Unlock()

	if !d.simulation {
		d.pin = gpioreg.ByName(d.param.Pin)
		if d.pin == nil {
			logrus.Fatalf("Failed to find %s sensor pin", d.param.Pin)
		}
		if err := d.pin.In(gpio.PullUp, gpio.FallingEdge); err != nil {
			logrus.Fatalf("Failed to setup %s sensor pin: %v", d.param.Pin, err)
		}
		go d.watchEdges(d.pin)
	}

	meter := &rpmMeter{
		pulsesPerRevolution: d.param.PulsesPerRevolution,
		stallTimeout:        d.param.StallTimeout(),
	}
	simulator := newSpeedSimulator(d.target)

	d.sampleTicker = time.NewTicker(d.param.SamplePeriod())
	go func() {
		for loop := true; loop; {
			select {
			case at := <-d.pulseChannel:
				meter.Pulse(at)
			case now := <-d.sampleTicker.C:
				var rpm float64
				if d.simulation {
					rpm = simulator.next()
				} else {
					var ok bool
					if rpm, ok = meter.Sample(now); !ok {
						continue
					}
				}
				select {
				case d.eventChannel <- event.SampleEvent{Rpm: rpm, At: now}:
				case <-d.askDone:
					loop = false
				}
			case <-d.askDone:
				loop = false
			}
		}
		d.done <- true
	}()
}

// watchEdges runs until the pin is halted.
func (d *Tachometer) watchEdges(pin gpio.PinIO) {
	for pin.WaitForEdge(-1) {
		select {
		case d.pulseChannel <- time.Now():
		default:
			logrus.Debugf("Sensor pulse dropped")
		}
	}
}

func (d *Tachometer) StopSendingEvent() {
	logrus.Infof("Stop tachometer device")
	d.lock.Lock()
	defer d.lock.Unlock()

	d.sampleTicker.Stop()
	if d.pin != nil {
		if err := d.pin.Halt(); err != nil {
			logrus.Warnf("Unable to halt sensor pin: %v", err)
		}
	}
	d.askDone <- true
	<-d.done
}

func (d *Tachometer) EventChannel() chan event.SampleEvent {
	return d.eventChannel
}

// speedSimulator produces a platter wobble with some noise around the target speed.
type speedSimulator struct {
	target func() float64
	random *rand.Rand
	phase  float64
}

func newSpeedSimulator(target func() float64) *speedSimulator {
	return &speedSimulator{
		target: target,
		random: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *speedSimulator) next() float64 {
	s.phase += math.Pi / 8
	return s.target() + 0.4*math.Sin(s.phase) + 0.15*s.random.NormFloat64()
}
