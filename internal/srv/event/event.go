package event

import "time"

// Ticker
type TickerEvent struct {
	Data interface{}
}

type TickerEventTickData struct{}

// Tachometer
type SampleEvent struct {
	Rpm float64
	At  time.Time
}

// Buttons
type ButtonId int

const (
	TOGGLE_SCALE_BUTTON ButtonId = iota
)

type ButtonEventType int

const (
	PRESS_EVENT_TYPE ButtonEventType = iota
	RELEASE_EVENT_TYPE
)

type ButtonEvent struct {
	ButtonId        ButtonId
	ButtonEventType ButtonEventType
	PressStepCount  int64
}
