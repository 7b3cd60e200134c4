package config

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/jypelle/tacho/internal/debugger"
	"gopkg.in/yaml.v3"
)

//go:embed param_default.yaml
var ParamDefaultFile []byte

type ServerParam struct {
	LogLevel string       `yaml:"log_level"`
	Display  DisplayParam `yaml:"display"`
	Graph    GraphParam   `yaml:"graph"`
	Scale    ScaleParam   `yaml:"scale"`
	Button   ButtonParam  `yaml:"button"`
	Sensor   SensorParam  `yaml:"sensor"`
}

type DisplayParam struct {
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Contrast uint8  `yaml:"contrast"`
	I2cBus   string `yaml:"i2c_bus"`
}

type GraphParam struct {
	AxisXOffset     int   `yaml:"axis_x_offset"`
	Stretch         int   `yaml:"stretch"`
	TickLength      int   `yaml:"tick_length"`
	History         int   `yaml:"history"`
	RefreshPeriodMs int64 `yaml:"refresh_period_ms"`
}

type ScaleParam struct {
	Default string `yaml:"default"`
}

type ButtonParam struct {
	Pin string `yaml:"pin"`
}

type SensorParam struct {
	Pin                 string `yaml:"pin"`
	PulsesPerRevolution int    `yaml:"pulses_per_revolution"`
	SamplePeriodMs      int64  `yaml:"sample_period_ms"`
	StallTimeoutMs      int64  `yaml:"stall_timeout_ms"`
}

// ParseParam reads a param file, keys missing from raw keep their default value.
func ParseParam(raw []byte) (*ServerParam, error) {
	param := &ServerParam{}
	if err := yaml.Unmarshal(ParamDefaultFile, param); err != nil {
		return nil, fmt.Errorf("unable to interpret default param file: %w", err)
	}
	if err := yaml.Unmarshal(raw, param); err != nil {
		return nil, fmt.Errorf("unable to interpret param file: %w", err)
	}
	if err := param.Validate(); err != nil {
		return nil, err
	}
	return param, nil
}

func (p *ServerParam) Validate() error {
	if _, err := debugger.ParseLevel(p.LogLevel); err != nil {
		return err
	}
	if p.Display.Width <= 0 || p.Display.Height <= 0 {
		return fmt.Errorf("invalid display size %dx%d", p.Display.Width, p.Display.Height)
	}
	if p.Graph.Stretch <= 0 {
		return fmt.Errorf("graph stretch must be positive, got %d", p.Graph.Stretch)
	}
	if p.Graph.AxisXOffset < p.Graph.TickLength || p.Graph.AxisXOffset >= p.Display.Width {
		return fmt.Errorf("axis offset %d must be in [%d, %d)", p.Graph.AxisXOffset, p.Graph.TickLength, p.Display.Width)
	}
	if p.Graph.History < 0 {
		return fmt.Errorf("graph history must not be negative, got %d", p.Graph.History)
	}
	if p.Graph.RefreshPeriodMs <= 0 || p.Sensor.SamplePeriodMs <= 0 || p.Sensor.StallTimeoutMs <= 0 {
		return fmt.Errorf("refresh, sample and stall periods must be positive")
	}
	if p.Sensor.PulsesPerRevolution <= 0 {
		return fmt.Errorf("pulses per revolution must be positive, got %d", p.Sensor.PulsesPerRevolution)
	}
	return nil
}

func (p *ServerParam) DebugLevel() debugger.Level {
	level, _ := debugger.ParseLevel(p.LogLevel)
	return level
}

// HistorySize is the configured history, or enough samples to cross the whole display.
func (g GraphParam) HistorySize(displayWidth int) int {
	if g.History > 0 {
		return g.History
	}
	return displayWidth/g.Stretch + 2
}

func (g GraphParam) RefreshPeriod() time.Duration {
	return time.Duration(g.RefreshPeriodMs) * time.Millisecond
}

func (s SensorParam) SamplePeriod() time.Duration {
	return time.Duration(s.SamplePeriodMs) * time.Millisecond
}

func (s SensorParam) StallTimeout() time.Duration {
	return time.Duration(s.StallTimeoutMs) * time.Millisecond
}
