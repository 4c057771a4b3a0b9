// internal/player/mock.go
package player

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// MockSource is the Source returned by Mock.Open.
type MockSource struct {
	Address string
	Length  time.Duration

	closed atomic.Bool
}

func (s *MockSource) URL() string             { return s.Address }
func (s *MockSource) Format() string          { return "MP3" }
func (s *MockSource) Duration() time.Duration { return s.Length }
func (s *MockSource) Close() error {
	s.closed.Store(true)
	return nil
}

// IsClosed reports whether Close was called.
func (s *MockSource) IsClosed() bool { return s.closed.Load() }

// Mock is a test double for Speaker. It is safe for concurrent use since
// Open is called from background goroutines.
type Mock struct {
	mu        sync.Mutex
	state     State
	position  time.Duration
	volume    float64
	duration  time.Duration
	events    Events
	openErrs  map[string]error
	playErrs  map[string]error
	gates     map[string]chan struct{}
	sources   []*MockSource
	openCalls []string
	playCalls []string
	seekCalls []time.Duration
	stops     int
}

// NewMock creates a new mock device at full volume.
func NewMock() *Mock {
	return &Mock{
		state:    Stopped,
		volume:   1,
		openErrs: make(map[string]error),
		playErrs: make(map[string]error),
		gates:    make(map[string]chan struct{}),
	}
}

// Open records the call and returns a MockSource. When url is gated by
// BlockOpen, Open waits for the release regardless of ctx.
func (m *Mock) Open(_ context.Context, url string) (Source, error) {
	m.mu.Lock()
	m.openCalls = append(m.openCalls, url)
	gate := m.gates[url]
	m.mu.Unlock()

	if gate != nil {
		<-gate
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.openErrs[url]; err != nil {
		return nil, err
	}
	src := &MockSource{Address: url, Length: m.duration}
	m.sources = append(m.sources, src)
	return src, nil
}

func (m *Mock) Play(src Source, ev Events) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls = append(m.playCalls, src.URL())
	if err := m.playErrs[src.URL()]; err != nil {
		src.Close()
		m.state = Stopped
		m.events = Events{}
		return err
	}
	m.state = Playing
	m.position = 0
	m.events = ev
	return nil
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stops++
	m.state = Stopped
	m.position = 0
	m.events = Events{}
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Playing {
		m.state = Paused
	}
}

func (m *Mock) Resume() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Paused {
		m.state = Playing
	}
}

func (m *Mock) Seek(pos time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, pos)
	m.position = pos
}

func (m *Mock) SetVolume(level float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = min(max(level, 0), 1)
}

func (m *Mock) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

// Test helpers

// SetOpenError makes Open fail for url.
func (m *Mock) SetOpenError(url string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.openErrs[url] = err
}

// SetPlayError makes Play fail for sources opened from url.
func (m *Mock) SetPlayError(url string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playErrs[url] = err
}

// BlockOpen makes Open for url wait until release is called.
func (m *Mock) BlockOpen(url string) (release func()) {
	gate := make(chan struct{})
	m.mu.Lock()
	m.gates[url] = gate
	m.mu.Unlock()
	var once sync.Once
	return func() { once.Do(func() { close(gate) }) }
}

// Sources returns every source handed out by Open.
func (m *Mock) Sources() []*MockSource {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*MockSource(nil), m.sources...)
}

// SetSourceDuration sets the duration reported by sources opened afterwards.
func (m *Mock) SetSourceDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = d
}

func (m *Mock) OpenCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.openCalls...)
}

func (m *Mock) PlayCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.playCalls...)
}

func (m *Mock) SeekCalls() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.seekCalls...)
}

func (m *Mock) StopCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stops
}

// Bound returns the events bound by the last successful Play, or zero Events
// after Stop.
func (m *Mock) Bound() Events {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.events
}

// EmitProgress simulates a progress event from the output.
func (m *Mock) EmitProgress(pos time.Duration) {
	m.mu.Lock()
	m.position = pos
	ev := m.events
	m.mu.Unlock()
	if ev.OnProgress != nil {
		ev.OnProgress(pos)
	}
}

// EmitMetadata simulates the duration becoming known.
func (m *Mock) EmitMetadata(d time.Duration) {
	ev := m.Bound()
	if ev.OnMetadata != nil {
		ev.OnMetadata(d)
	}
}

// EmitEnded simulates the source reaching its end.
func (m *Mock) EmitEnded() {
	m.mu.Lock()
	if m.state == Playing {
		m.state = Paused
	}
	ev := m.events
	m.mu.Unlock()
	if ev.OnEnded != nil {
		ev.OnEnded()
	}
}

// EmitError simulates a decoding failure after Play succeeded.
func (m *Mock) EmitError(err error) {
	m.mu.Lock()
	if m.state == Playing {
		m.state = Paused
	}
	ev := m.events
	m.mu.Unlock()
	if ev.OnError != nil {
		ev.OnError(err)
	}
}

// Verify Mock implements Device at compile time.
var _ Device = (*Mock)(nil)
