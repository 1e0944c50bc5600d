package downloader

import (
	"bytes"
	"strings"
	"testing"
)

func TestBarReporter_Ticks(t *testing.T) {
	var out bytes.Buffer
	reporter := NewBarReporter(3, &out)

	for i := 0; i < 3; i++ {
		if err := reporter.Tick(); err != nil {
			t.Fatalf("unexpected tick error: %v", err)
		}
	}

	if reporter.Ticks() != 3 {
		t.Errorf("expected 3 ticks, got %d", reporter.Ticks())
	}
	if !strings.Contains(out.String(), "3/3") {
		t.Errorf("expected rendered count 3/3, got %q", out.String())
	}
	if err := reporter.Finish(); err != nil {
		t.Errorf("unexpected finish error: %v", err)
	}
}

func TestBarReporter_FinishIncomplete(t *testing.T) {
	var out bytes.Buffer
	reporter := NewBarReporter(12, &out)

	if err := reporter.Tick(); err != nil {
		t.Fatalf("unexpected tick error: %v", err)
	}
	if err := reporter.Finish(); err != nil {
		t.Errorf("unexpected finish error: %v", err)
	}
	if reporter.Ticks() != 1 {
		t.Errorf("expected 1 tick, got %d", reporter.Ticks())
	}
	if strings.Contains(out.String(), "12/12") {
		t.Errorf("incomplete bar should not be filled on finish, got %q", out.String())
	}
}

func TestNopReporter(t *testing.T) {
	var r ProgressReporter = NopReporter{}
	if err := r.Tick(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := r.Finish(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
