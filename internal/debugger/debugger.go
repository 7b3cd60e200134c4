// Package debugger prints leveled diagnostic values.
//
//	dbg := debugger.New(os.Stderr)
//	dbg.SetLevel(debugger.Info)
//	dbg.Print(debugger.Info, debugger.Text("vmax "))
//	dbg.Println(debugger.Info, debugger.Float(48))
//
// Values printed with Print are held until the next Println and emitted as one log entry.
package debugger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

type Level int

const (
	Quiet Level = iota
	Info
	Debug
	Trace
)

func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(name) {
	case "", "quiet":
		return Quiet, nil
	case "info":
		return Info, nil
	case "debug":
		return Debug, nil
	case "trace":
		return Trace, nil
	}
	return Quiet, fmt.Errorf("unknown debug level %q", name)
}

func (l Level) String() string {
	switch l {
	case Quiet:
		return "quiet"
	case Info:
		return "info"
	case Debug:
		return "debug"
	case Trace:
		return "trace"
	}
	return fmt.Sprintf("level(%d)", int(l))
}

func (l Level) logrusLevel() logrus.Level {
	switch l {
	case Info:
		return logrus.InfoLevel
	case Debug:
		return logrus.DebugLevel
	}
	return logrus.TraceLevel
}

type Debugger struct {
	lock    sync.Mutex
	level   Level
	out     io.Writer
	logger  *logrus.Logger
	once    sync.Once
	pending strings.Builder
}

// New returns a quiet debugger writing to out once enabled, stderr when out is nil.
func New(out io.Writer) *Debugger {
	if out == nil {
		out = os.Stderr
	}
	return &Debugger{out: out}
}

// SetLevel sets the threshold and drops any unfinished Print line.
// The output is opened the first time a non quiet level is set.
func (d *Debugger) SetLevel(level Level) {
	d.lock.Lock()
	defer d.lock.Unlock()

	d.level = level
	d.pending.Reset()
	if level > Quiet {
		d.once.Do(d.open)
	}
}

func (d *Debugger) open() {
	d.logger = logrus.New()
	d.logger.SetOutput(d.out)
	d.logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	d.logger.SetLevel(logrus.TraceLevel)
}

func (d *Debugger) Level() Level {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.level
}

func (d *Debugger) Enabled(level Level) bool {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.enabled(level)
}

func (d *Debugger) enabled(level Level) bool {
	return level > Quiet && level <= d.level
}

func (d *Debugger) Print(level Level, value Value) {
	d.lock.Lock()
	defer d.lock.Unlock()

	if !d.enabled(level) {
		return
	}
	d.pending.WriteString(value.String())
}

func (d *Debugger) Println(level Level, value Value) {
	d.lock.Lock()
	defer d.lock.Unlock()

	if !d.enabled(level) {
		return
	}
	d.pending.WriteString(value.String())
	d.logger.Log(level.logrusLevel(), d.pending.String())
	d.pending.Reset()
}
