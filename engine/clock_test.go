package engine

import (
	"testing"
	"time"
)

func TestMockTimeProvider(t *testing.T) {
	startTime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(startTime)

	if !mock.Now().Equal(startTime) {
		t.Errorf("Expected initial time to be %v, got %v", startTime, mock.Now())
	}

	mock.Advance(1 * time.Hour)
	mock.Advance(30 * time.Minute)
	expected := startTime.Add(90 * time.Minute)
	if !mock.Now().Equal(expected) {
		t.Errorf("Expected time to be %v after advances, got %v", expected, mock.Now())
	}
}

func TestPausableClockFreezesDuringPause(t *testing.T) {
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	clock := NewPausableClock(mock)

	mock.Advance(2 * time.Second)
	if got := clock.Elapsed(); got != 2*time.Second {
		t.Fatalf("Expected 2s elapsed, got %v", got)
	}

	clock.Pause()
	mock.Advance(5 * time.Second)
	if got := clock.Elapsed(); got != 2*time.Second {
		t.Errorf("Expected elapsed frozen at 2s during pause, got %v", got)
	}
	if got := clock.TotalPauseDuration(); got != 5*time.Second {
		t.Errorf("Expected running pause of 5s, got %v", got)
	}

	clock.Resume()
	mock.Advance(1 * time.Second)
	if got := clock.Elapsed(); got != 3*time.Second {
		t.Errorf("Expected 3s elapsed after resume, got %v", got)
	}

	if !clock.Toggle() || !clock.IsPaused() {
		t.Error("Expected Toggle to pause")
	}
	if clock.Toggle() || clock.IsPaused() {
		t.Error("Expected second Toggle to resume")
	}
}
