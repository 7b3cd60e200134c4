package debugger

import (
	"bytes"
	"strings"
	"testing"
)

func TestValueString(t *testing.T) {
	testCases := []struct {
		value    Value
		expected string
	}{
		{Text("rpm"), "rpm"},
		{Int(-42), "-42"},
		{Uint(18446744073709551615), "18446744073709551615"},
		{Float(33.333333), "33.33"},
		{Float(45), "45.00"},
		{Char('x'), "x"},
	}

	for _, testCase := range testCases {
		if got := testCase.value.String(); got != testCase.expected {
			t.Errorf("unexpected string, got: %v, expected: %v", got, testCase.expected)
		}
	}
}

func TestQuietIsSilent(t *testing.T) {
	out := &bytes.Buffer{}
	dbg := New(out)

	dbg.Println(Info, Text("hidden"))
	dbg.SetLevel(Quiet)
	dbg.Println(Info, Text("hidden"))
	dbg.Println(Quiet, Text("hidden"))

	if out.Len() != 0 {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestThreshold(t *testing.T) {
	testCases := []struct {
		threshold Level
		level     Level
		emitted   bool
	}{
		{Info, Info, true},
		{Info, Debug, false},
		{Info, Trace, false},
		{Debug, Info, true},
		{Debug, Debug, true},
		{Debug, Trace, false},
		{Trace, Trace, true},
		{Trace, Quiet, false},
	}

	for _, testCase := range testCases {
		out := &bytes.Buffer{}
		dbg := New(out)
		dbg.SetLevel(testCase.threshold)
		dbg.Println(testCase.level, Text("marker"))

		if got := strings.Contains(out.String(), "marker"); got != testCase.emitted {
			t.Errorf("threshold %v, level %v: emitted %v, expected %v", testCase.threshold, testCase.level, got, testCase.emitted)
		}
	}
}

func TestPrintIsJoinedWithPrintln(t *testing.T) {
	out := &bytes.Buffer{}
	dbg := New(out)
	dbg.SetLevel(Trace)

	dbg.Print(Info, Text("vmax "))
	dbg.Println(Info, Float(48))

	if !strings.Contains(out.String(), "vmax 48.00") {
		t.Errorf("unexpected output: %q", out.String())
	}
	if got := strings.Count(out.String(), "\n"); got != 1 {
		t.Errorf("expected a single entry, got %d", got)
	}
}

func TestSetLevelOpensOutputOnce(t *testing.T) {
	dbg := New(&bytes.Buffer{})
	dbg.SetLevel(Info)
	logger := dbg.logger
	dbg.SetLevel(Trace)
	dbg.SetLevel(Quiet)
	dbg.SetLevel(Debug)

	if dbg.logger != logger {
		t.Errorf("output initialized twice")
	}
}

func TestParseLevel(t *testing.T) {
	for _, level := range []Level{Quiet, Info, Debug, Trace} {
		parsed, err := ParseLevel(level.String())
		if err != nil || parsed != level {
			t.Errorf("unexpected parse of %v: %v, %v", level, parsed, err)
		}
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Errorf("expected an error")
	}
}

func TestSetLevelDropsUnfinishedLine(t *testing.T) {
	out := &bytes.Buffer{}
	dbg := New(out)
	dbg.SetLevel(Info)

	dbg.Print(Info, Text("stale "))
	dbg.SetLevel(Quiet)
	dbg.SetLevel(Info)
	dbg.Println(Info, Text("fresh"))

	if strings.Contains(out.String(), "stale") {
		t.Errorf("unfinished line leaked into a later entry: %q", out.String())
	}
	if !strings.Contains(out.String(), "fresh") {
		t.Errorf("unexpected output: %q", out.String())
	}
}
