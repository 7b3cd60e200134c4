package scale

import (
	"fmt"
	"sync"
)

const (
	Name33 = "33"
	Name45 = "45"
)

// Preset is an immutable set of scale bounds and axis labels.
type Preset struct {
	Name        string
	MaxValue    float64
	MinValue    float64
	TargetValue float64
	// Resolution is expressed in pixels per unit.
	Resolution  float64
	LabelTarget string
	LabelMin    string
	LabelMax    string
}

// NewPreset builds a preset whose resolution spreads [min, max] over the whole display height.
func NewPreset(name string, min, target, max float64, labelMin, labelTarget, labelMax string, displayHeight int) Preset {
	return Preset{
		Name:        name,
		MaxValue:    max,
		MinValue:    min,
		TargetValue: target,
		Resolution:  float64(displayHeight) / (max - min),
		LabelTarget: labelTarget,
		LabelMin:    labelMin,
		LabelMax:    labelMax,
	}
}

func Preset33(displayHeight int) Preset {
	return NewPreset(Name33, 30, 33.33, 36, "30", "33", "36", displayHeight)
}

func Preset45(displayHeight int) Preset {
	return NewPreset(Name45, 42, 45, 48, "42", "45", "48", displayHeight)
}

func (p Preset) String() string {
	return fmt.Sprintf("%s rpm [%.2f..%.2f] %.2f px/rpm", p.Name, p.MinValue, p.MaxValue, p.Resolution)
}

// Registry holds the 33 and 45 presets and the active one.
// The 45 preset is active at startup.
type Registry struct {
	lock    sync.RWMutex
	presets [2]Preset
	active  int
}

func NewRegistry(displayHeight int) *Registry {
	return &Registry{
		presets: [2]Preset{Preset33(displayHeight), Preset45(displayHeight)},
		active:  1,
	}
}

// Toggle switches to the other preset and returns it.
func (r *Registry) Toggle() Preset {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.active = 1 - r.active
	return r.presets[r.active]
}

func (r *Registry) Active() Preset {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return r.presets[r.active]
}

// Select activates the preset with the given name.
func (r *Registry) Select(name string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	for i, preset := range r.presets {
		if preset.Name == name {
			r.active = i
			return nil
		}
	}
	return fmt.Errorf("unknown scale %q", name)
}

func (r *Registry) Presets() [2]Preset {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return r.presets
}
