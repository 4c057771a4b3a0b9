package player

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
)

const (
	userAgent = "moodtune/1.0 (https://github.com/llehouerou/moodtune)"

	DefaultMaxSourceBytes   = 64 << 20
	DefaultProgressInterval = 250 * time.Millisecond
	defaultFetchTimeout     = 60 * time.Second
)

// ErrForeignSource is returned by Play for sources not opened by this device.
var ErrForeignSource = errors.New("source was not opened by this device")

// Speaker is the Device backed by the beep speaker.
// There is only one speaker per process, so there should be only one Speaker.
type Speaker struct {
	client   *http.Client
	maxBytes int64
	interval time.Duration

	mu       sync.Mutex
	state    State
	current  *stream
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	events   Events
	finished bool
	stopTick chan struct{}
	level    float64
}

// Option configures a Speaker.
type Option func(*Speaker)

// WithHTTPClient sets the client used to fetch sources.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Speaker) { s.client = c }
}

// WithMaxSourceBytes bounds the size of a fetched source.
func WithMaxSourceBytes(n int64) Option {
	return func(s *Speaker) {
		if n > 0 {
			s.maxBytes = n
		}
	}
}

// WithProgressInterval sets how often progress events are emitted.
func WithProgressInterval(d time.Duration) Option {
	return func(s *Speaker) {
		if d > 0 {
			s.interval = d
		}
	}
}

var (
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

// New creates a stopped Speaker at full volume.
func New(opts ...Option) *Speaker {
	s := &Speaker{
		client:   &http.Client{Timeout: defaultFetchTimeout},
		maxBytes: DefaultMaxSourceBytes,
		interval: DefaultProgressInterval,
		state:    Stopped,
		level:    1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Play loads src into the output, replacing whatever was loaded, and starts it.
// On error src is closed and the device is left stopped.
func (s *Speaker) Play(src Source, ev Events) error {
	st, ok := src.(*stream)
	if !ok {
		if src != nil {
			src.Close()
		}
		return ErrForeignSource
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	if !speakerInitialized {
		speakerSampleRate = st.format.SampleRate
		err := speaker.Init(speakerSampleRate, speakerSampleRate.N(time.Second/10))
		if err != nil {
			st.Close()
			return fmt.Errorf("init speaker: %w", err)
		}
		speakerInitialized = true
	}

	// Resample if the source's sample rate differs from the speaker's
	var playStreamer beep.Streamer = st.streamer
	if st.format.SampleRate != speakerSampleRate {
		playStreamer = beep.Resample(4, st.format.SampleRate, speakerSampleRate, st.streamer)
	}
	s.ctrl = &beep.Ctrl{Streamer: playStreamer, Paused: false}
	s.volume = &effects.Volume{
		Streamer: s.ctrl,
		Base:     2,
		Volume:   levelToVolume(s.level),
		Silent:   s.level <= 0,
	}

	s.current = st
	s.events = ev
	s.finished = false
	s.state = Playing
	s.stopTick = make(chan struct{})

	s.enqueueLocked()
	go s.tick(s.stopTick, ev)

	if ev.OnMetadata != nil {
		go ev.OnMetadata(st.Duration())
	}
	return nil
}

// enqueueLocked hands the volume chain to the speaker, followed by the end
// of stream callback. The callback captures the tick channel of this load so
// that a late callback from a replaced source is recognised.
func (s *Speaker) enqueueLocked() {
	token := s.stopTick
	speaker.Play(beep.Seq(s.volume, beep.Callback(func() {
		// Runs under the speaker lock: hand off before touching s.mu.
		go s.handleFinished(token)
	})))
}

func (s *Speaker) handleFinished(token chan struct{}) {
	s.mu.Lock()
	if s.stopTick != token || s.current == nil {
		s.mu.Unlock()
		return
	}
	s.finished = true
	s.state = Paused
	ev := s.events
	err := s.current.streamer.Err()
	codec := s.current.codec
	s.mu.Unlock()

	if err != nil {
		if ev.OnError != nil {
			ev.OnError(fmt.Errorf("decode %s: %w", codec, err))
		}
		return
	}
	if ev.OnEnded != nil {
		ev.OnEnded()
	}
}

// tick emits progress while the source is playing.
func (s *Speaker) tick(stop <-chan struct{}, ev Events) {
	if ev.OnProgress == nil {
		return
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			playing := s.state == Playing
			s.mu.Unlock()
			if playing {
				ev.OnProgress(s.Position())
			}
		}
	}
}

// State returns the device state.
func (s *Speaker) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Close stops playback and releases the speaker.
func (s *Speaker) Close() {
	s.Stop()
	if speakerInitialized {
		speaker.Close()
		speakerInitialized = false
	}
}
