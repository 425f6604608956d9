package stats

import (
	"testing"
	"time"
)

func TestMovingAverage(t *testing.T) {
	got := MovingAverage([]float64{10, 20, 30, 40}, 2)
	want := []float64{10, 15, 25, 35}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v want %v", i, got[i], want[i])
		}
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]float64{0, 50, 100}); got != " +@" {
		t.Fatalf("unexpected sparkline %q", got)
	}
	if got := Sparkline([]float64{70, 70}); got != "++" {
		t.Fatalf("unexpected flat sparkline %q", got)
	}
	if got := Sparkline(nil); got != "" {
		t.Fatalf("expected empty sparkline, got %q", got)
	}
}

func TestBar(t *testing.T) {
	if got := Bar(50, 10); got != "[#####.....]" {
		t.Fatalf("unexpected bar %q", got)
	}
	if got := Bar(150, 4); got != "[####]" {
		t.Fatalf("unexpected clamped bar %q", got)
	}
	if got := BarWidthFor(200); got != maxBarWidth {
		t.Fatalf("expected max width, got %d", got)
	}
	if got := BarWidthFor(20); got != minBarWidth {
		t.Fatalf("expected min width, got %d", got)
	}
}

func TestFormatDuration(t *testing.T) {
	if got := FormatDuration(90*time.Second + 400*time.Millisecond); got != "1m30s" {
		t.Fatalf("unexpected duration %q", got)
	}
	if got := FormatDuration(0); got != "0s" {
		t.Fatalf("unexpected zero duration %q", got)
	}
}
