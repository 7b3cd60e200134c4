package device

import (
	"sync"
	"time"

	"github.com/jypelle/tacho/internal/srv/event"
	"github.com/sirupsen/logrus"
)

// Ticker paces the display refresh.
type Ticker struct {
	lock         sync.RWMutex
	eventChannel chan event.TickerEvent

	period        time.Duration
	refreshTicker *time.Ticker

	askDone chan bool
	done    chan bool
}

func NewTicker(period time.Duration) *Ticker {
	ticker := Ticker{
		eventChannel: make(chan event.TickerEvent),
		period:       period,
		askDone:      make(chan bool),
		done:         make(chan bool),
	}
	return &ticker
}

func (d *Ticker) Start() {
	logrus.Infof("Start ticker device")
	d.lock.Lock()
	defer d.lock.Unlock()

	d.refreshTicker = time.NewTicker(d.period)

	go func() {
		for loop := true; loop; {
			select {
			case <-d.refreshTicker.C:
				select {
				case d.eventChannel <- event.TickerEvent{Data: event.TickerEventTickData{}}:
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

func (d *Ticker) StopSendingEvent() {
	logrus.Infof("Stop ticker device")
	d.lock.Lock()
	defer d.lock.Unlock()

	d.refreshTicker.Stop()
	d.askDone <- true
	<-d.done
}

func (d *Ticker) EventChannel() chan event.TickerEvent {
	return d.eventChannel
}
