package engine

import (
	"sync"
	"time"
)

// TimeSource abstracts wall time so clocks can be driven by tests
type TimeSource interface {
	Now() time.Time
}

// TimeProvider provides the real system time with monotonic clock readings
type TimeProvider struct{}

// NewTimeProvider creates a new monotonic time provider
func NewTimeProvider() *TimeProvider {
	return &TimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *TimeProvider) Now() time.Time {
	return time.Now()
}

// MockTimeProvider provides a controllable time source for testing
type MockTimeProvider struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewMockTimeProvider creates a new mock time provider with the given start time
func NewMockTimeProvider(startTime time.Time) *MockTimeProvider {
	return &MockTimeProvider{currentTime: startTime}
}

// Now returns the current mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// SetTime sets the current time for the mock
func (m *MockTimeProvider) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance advances the current time by the given duration
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// PausableClock provides game time that stops advancing while paused
// Game elapsed = real elapsed - total paused time
type PausableClock struct {
	mu sync.RWMutex

	source    TimeSource
	startTime time.Time

	paused          bool
	pauseStartTime  time.Time
	totalPausedTime time.Duration
}

// NewPausableClock creates a clock reading from source, nil uses real time
func NewPausableClock(source TimeSource) *PausableClock {
	if source == nil {
		source = NewTimeProvider()
	}
	return &PausableClock{
		source:    source,
		startTime: source.Now(),
	}
}

// Now returns current game time (frozen during pause)
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.startTime.Add(pc.elapsedLocked())
}

// Elapsed returns game time since the clock was created
func (pc *PausableClock) Elapsed() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.elapsedLocked()
}

func (pc *PausableClock) elapsedLocked() time.Duration {
	if pc.paused {
		return pc.pauseStartTime.Sub(pc.startTime) - pc.totalPausedTime
	}
	return pc.source.Now().Sub(pc.startTime) - pc.totalPausedTime
}

// Pause stops game time advancement
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.paused {
		return
	}
	pc.paused = true
	pc.pauseStartTime = pc.source.Now()
}

// Resume continues game time advancement
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if !pc.paused {
		return
	}
	pc.totalPausedTime += pc.source.Now().Sub(pc.pauseStartTime)
	pc.pauseStartTime = time.Time{}
	pc.paused = false
}

// Toggle flips the pause state and returns the new state
func (pc *PausableClock) Toggle() bool {
	if pc.IsPaused() {
		pc.Resume()
		return false
	}
	pc.Pause()
	return true
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}

// TotalPauseDuration returns cumulative pause time including a running pause
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	total := pc.totalPausedTime
	if pc.paused {
		total += pc.source.Now().Sub(pc.pauseStartTime)
	}
	return total
}
