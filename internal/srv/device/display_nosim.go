//go:build !simulation
// +build !simulation

package device

import "github.com/sirupsen/logrus"

// Built without the simulation tag: frames are only kept in memory.
type simulationWindow struct{}

func (s *simulationWindow) start(d *Display) {
	logrus.Warnf("Simulation window unavailable, build with -tags simulation")
}

func (s *simulationWindow) invalidate() {
}

func (s *simulationWindow) close() {
}
