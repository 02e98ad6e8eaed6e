package stats

import "testing"

func TestComputeWPMFloorsElapsedAtOneSecond(t *testing.T) {
	if got := ComputeWPM(5, 90, 90); got != 60 {
		t.Fatalf("expected 60 wpm with no elapsed time, got %d", got)
	}
	if got := ComputeWPM(0, 60, 60); got != 0 {
		t.Fatalf("expected 0 wpm at start, got %d", got)
	}
}

func TestComputeWPMRounds(t *testing.T) {
	if got := ComputeWPM(3, 60, 57); got != 12 {
		t.Fatalf("expected 12 wpm, got %d", got)
	}
	// 200 chars in 60s = 40 words.
	if got := ComputeWPM(200, 60, 0); got != 40 {
		t.Fatalf("expected 40 wpm, got %d", got)
	}
	// 7 chars in 7s = 12 wpm exactly; 8 chars = 13.71 rounds up.
	if got := ComputeWPM(8, 60, 53); got != 14 {
		t.Fatalf("expected 14 wpm, got %d", got)
	}
}

func TestComputeWPMNeverNegative(t *testing.T) {
	if got := ComputeWPM(-10, 60, 30); got != 0 {
		t.Fatalf("expected negative wpm to floor at 0, got %d", got)
	}
}

func TestComputeAccuracy(t *testing.T) {
	if got := ComputeAccuracy(0, 0); got != 0 {
		t.Fatalf("expected 0 accuracy without keystrokes, got %d", got)
	}
	if got := ComputeAccuracy(1, 3); got != 33 {
		t.Fatalf("expected 33, got %d", got)
	}
	if got := ComputeAccuracy(2, 3); got != 67 {
		t.Fatalf("expected 67, got %d", got)
	}
	if got := ComputeAccuracy(3, 3); got != 100 {
		t.Fatalf("expected 100, got %d", got)
	}
}

func TestComputeAccuracyClampsAt100(t *testing.T) {
	if got := ComputeAccuracy(5, 3); got != 100 {
		t.Fatalf("expected accuracy clamped at 100, got %d", got)
	}
}
