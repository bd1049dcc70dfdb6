package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ayusovnc/fhir-demo/internal/config"
	"github.com/ayusovnc/fhir-demo/internal/domain/terminology"
)

func testDirectory(t *testing.T) *terminology.Directory {
	t.Helper()
	panels := "x,24323-8,Comprehensive panel,x,x,2345-7\nx,24323-8,Comprehensive panel,x,x,2951-2\n"
	panel, _, err := terminology.ParseGroups(strings.NewReader(panels), terminology.PanelLayout)
	if err != nil {
		t.Fatalf("ParseGroups: %v", err)
	}
	return terminology.NewDirectory(panel, nil, "urn:test:local")
}

func TestPrintStats(t *testing.T) {
	var buf bytes.Buffer
	printStats(&buf, testDirectory(t))

	out := buf.String()
	if !strings.Contains(out, "panel") || !strings.Contains(out, "1 groups") {
		t.Errorf("unexpected stats output:\n%s", out)
	}
	if !strings.Contains(out, "urn:test:local") {
		t.Errorf("expected local system in output:\n%s", out)
	}
}

func TestPrintGroup(t *testing.T) {
	var buf bytes.Buffer
	if err := printGroup(&buf, testDirectory(t), "24323-8"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "panel http://loinc.org|24323-8 Comprehensive panel\n  2345-7\n  2951-2\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}

	if err := printGroup(&buf, testDirectory(t), "nope"); err == nil {
		t.Error("expected error for unknown group")
	}
}

func TestNewLogger_Level(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug": zerolog.DebugLevel,
		"WARN":  zerolog.WarnLevel,
		"bogus": zerolog.InfoLevel,
		"":      zerolog.InfoLevel,
	}
	for in, want := range tests {
		logger := newLogger(&config.Config{Env: "production", LogLevel: in})
		if got := logger.GetLevel(); got != want {
			t.Errorf("LogLevel %q: got %s, want %s", in, got, want)
		}
	}
}
