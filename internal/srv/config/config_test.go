package config

import (
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/jypelle/tacho/internal/debugger"
)

func TestParseParamDefaults(t *testing.T) {
	param, err := ParseParam(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if param.Display.Width != 128 || param.Display.Height != 64 {
		t.Errorf("unexpected display size %dx%d", param.Display.Width, param.Display.Height)
	}
	if param.Graph.AxisXOffset != 17 || param.Graph.Stretch != 4 || param.Graph.TickLength != 5 {
		t.Errorf("unexpected graph geometry %+v", param.Graph)
	}
	if param.Scale.Default != "45" {
		t.Errorf("unexpected default scale %q", param.Scale.Default)
	}
	if param.DebugLevel() != debugger.Info {
		t.Errorf("unexpected debug level %v", param.DebugLevel())
	}
	if param.Graph.HistorySize(param.Display.Width) != 34 {
		t.Errorf("unexpected history size %d", param.Graph.HistorySize(param.Display.Width))
	}
	if param.Graph.RefreshPeriod() != 250*time.Millisecond || param.Sensor.SamplePeriod() != time.Second {
		t.Errorf("unexpected periods %v %v", param.Graph.RefreshPeriod(), param.Sensor.SamplePeriod())
	}
}

func TestParseParamOverrides(t *testing.T) {
	raw := []byte("log_level: trace\ndisplay:\n  height: 32\ngraph:\n  history: 100\nscale:\n  default: \"33\"\n")

	param, err := ParseParam(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if param.Display.Height != 32 || param.Display.Width != 128 {
		t.Errorf("unexpected display size %dx%d", param.Display.Width, param.Display.Height)
	}
	if param.Graph.HistorySize(128) != 100 {
		t.Errorf("unexpected history size %d", param.Graph.HistorySize(128))
	}
	if param.Scale.Default != "33" || param.DebugLevel() != debugger.Trace {
		t.Errorf("overrides not applied: %+v", param)
	}
}

func TestParseParamValidation(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
	}{
		{"bad yaml", "display: [\n"},
		{"bad level", "log_level: verbose\n"},
		{"zero height", "display:\n  height: 0\n"},
		{"zero stretch", "graph:\n  stretch: 0\n"},
		{"axis beyond width", "graph:\n  axis_x_offset: 200\n"},
		{"axis before tick", "graph:\n  axis_x_offset: 2\n"},
		{"negative history", "graph:\n  history: -1\n"},
		{"zero refresh", "graph:\n  refresh_period_ms: 0\n"},
		{"zero pulses", "sensor:\n  pulses_per_revolution: 0\n"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if _, err := ParseParam([]byte(testCase.raw)); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}

func TestNewServerConfigWritesDefaultParamFile(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "tacho")

	serverConfig := NewServerConfig(configDir, false, true)
	if serverConfig.Display.Width != 128 {
		t.Errorf("unexpected width %d", serverConfig.Display.Width)
	}

	raw, err := ioutil.ReadFile(filepath.Join(configDir, paramFilename))
	if err != nil {
		t.Fatalf("param file not written: %v", err)
	}
	param, err := ParseParam(raw)
	if err != nil {
		t.Fatalf("written param file is invalid: %v", err)
	}
	if *param != *serverConfig.ServerParam {
		t.Errorf("written param differs: %+v != %+v", param, serverConfig.ServerParam)
	}

	reloaded := NewServerConfig(configDir, false, true)
	if *reloaded.ServerParam != *serverConfig.ServerParam {
		t.Errorf("reloaded param differs")
	}
}
