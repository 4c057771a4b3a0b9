package player

import (
	"time"

	"github.com/gopxl/beep/v2/speaker"
)

// Stop stops playback, releases the loaded source and unbinds its events.
func (s *Speaker) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Speaker) stopLocked() {
	if s.current == nil {
		return
	}

	speaker.Clear()
	close(s.stopTick)
	s.stopTick = nil

	s.current.Close()
	s.current = nil
	s.ctrl = nil
	s.volume = nil
	s.events = Events{}
	s.finished = false
	s.state = Stopped
}

// Pause pauses playback.
func (s *Speaker) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Playing || s.ctrl == nil {
		return
	}
	speaker.Lock()
	s.ctrl.Paused = true
	speaker.Unlock()
	s.state = Paused
}

// Resume resumes paused playback. A source that already reached its end is
// queued again from its current position.
func (s *Speaker) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Paused || s.ctrl == nil {
		return
	}
	speaker.Lock()
	s.ctrl.Paused = false
	speaker.Unlock()
	if s.finished {
		s.finished = false
		s.enqueueLocked()
	}
	s.state = Playing
}

// Position returns the current playback position.
func (s *Speaker) Position() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return 0
	}
	speaker.Lock()
	pos := s.current.format.SampleRate.D(s.current.streamer.Position())
	speaker.Unlock()
	return pos
}

// Seek moves the playback position to pos, clamped into the source length.
func (s *Speaker) Seek(pos time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return
	}

	st := s.current.streamer
	target := s.current.format.SampleRate.N(pos)
	target = min(max(target, 0), st.Len())

	speaker.Lock()
	_ = st.Seek(target)
	speaker.Unlock()
}
