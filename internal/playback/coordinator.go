// Package playback coordinates playback of one recommended song at a time.
//
// All session state is owned by a single loop goroutine. Commands post a
// closure to the loop and wait for it; resolver lookups and device opens run
// on their own goroutines and post their results back, tagged with the
// generation token they were issued under. A result whose token no longer
// matches is dropped.
package playback

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/llehouerou/moodtune/internal/player"
	"github.com/llehouerou/moodtune/internal/resolver"
)

const inboxSize = 64

var (
	// ErrClosed is returned by commands issued after Close.
	ErrClosed = errors.New("playback coordinator closed")
	// ErrNoPlayableSource is wrapped by every error that ends a session in
	// StateErrored.
	ErrNoPlayableSource = errors.New("no playable source")
)

// Options configures a Coordinator. Zero durations take the defaults.
type Options struct {
	ResolveTimeout     time.Duration
	LoadTimeout        time.Duration
	ShortClipThreshold time.Duration
	IntroSkip          time.Duration
	InitialVolume      float64
	Logger             zerolog.Logger
}

// Defaults.
const (
	DefaultResolveTimeout     = 20 * time.Second
	DefaultLoadTimeout        = 30 * time.Second
	DefaultShortClipThreshold = 35 * time.Second
	DefaultIntroSkip          = 3 * time.Second
	DefaultSkipStep           = 10 * time.Second
)

// DefaultOptions returns options with every default applied and full volume.
func DefaultOptions() Options {
	return Options{
		ResolveTimeout:     DefaultResolveTimeout,
		LoadTimeout:        DefaultLoadTimeout,
		ShortClipThreshold: DefaultShortClipThreshold,
		IntroSkip:          DefaultIntroSkip,
		InitialVolume:      1,
		Logger:             zerolog.Nop(),
	}
}

func (o *Options) applyDefaults() {
	if o.ResolveTimeout <= 0 {
		o.ResolveTimeout = DefaultResolveTimeout
	}
	if o.LoadTimeout <= 0 {
		o.LoadTimeout = DefaultLoadTimeout
	}
	if o.ShortClipThreshold <= 0 {
		o.ShortClipThreshold = DefaultShortClipThreshold
	}
	if o.IntroSkip <= 0 {
		o.IntroSkip = DefaultIntroSkip
	}
}

// Coordinator owns the audio device and the current session.
type Coordinator struct {
	device   player.Device
	resolver resolver.Resolver
	opts     Options
	log      zerolog.Logger

	inbox     chan func()
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once

	// Loop-owned.
	session     Session
	volume      float64
	selection   uint64 // bumped per SelectSong
	load        uint64 // bumped per device load and teardown
	cancel      context.CancelFunc
	introFired  bool
	lastAttempt SourceKind

	mu   sync.RWMutex
	snap Snapshot

	subs   []*Subscription
	subsMu sync.Mutex
}

// New creates a coordinator and starts its loop. The device volume is set
// to opts.InitialVolume.
func New(device player.Device, res resolver.Resolver, opts Options) *Coordinator {
	opts.applyDefaults()
	c := &Coordinator{
		device:   device,
		resolver: res,
		opts:     opts,
		log:      opts.Logger.With().Str("component", "playback").Logger(),
		inbox:    make(chan func(), inboxSize),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
		volume:   lo.Clamp(opts.InitialVolume, 0, 1),
	}
	device.SetVolume(c.volume)
	c.snap = Snapshot{Volume: c.volume}
	go c.run()
	return c
}

func (c *Coordinator) run() {
	defer close(c.stopped)
	for {
		select {
		case fn := <-c.inbox:
			fn()
		case <-c.done:
			return
		}
	}
}

// post queues fn on the loop. It returns false once the coordinator is closed.
func (c *Coordinator) post(fn func()) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.inbox <- fn:
		return true
	case <-c.done:
		return false
	}
}

// do runs fn on the loop and waits for it. Never call from the loop.
func (c *Coordinator) do(fn func()) error {
	reply := make(chan struct{})
	if !c.post(func() { fn(); close(reply) }) {
		return ErrClosed
	}
	select {
	case <-reply:
		return nil
	case <-c.stopped:
		select {
		case <-reply:
			return nil
		default:
			return ErrClosed
		}
	}
}

// Snapshot returns the latest published state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snap
}

// Volume returns the current volume level.
func (c *Coordinator) Volume() float64 {
	return c.Snapshot().Volume
}

// Subscribe creates a new event subscription. The current snapshot is
// delivered right away.
func (c *Coordinator) Subscribe() *Subscription {
	sub := newSubscription()
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	select {
	case <-c.stopped:
		sub.close()
		return sub
	default:
	}
	c.subs = append(c.subs, sub)
	sub.sendSnapshot(c.Snapshot())
	return sub
}

// Close ends the session, stops the loop and closes every subscription.
// It is safe to call more than once.
func (c *Coordinator) Close() error {
	c.closeOnce.Do(func() {
		_ = c.do(c.closeSession)
		close(c.done)
		<-c.stopped

		c.subsMu.Lock()
		for _, sub := range c.subs {
			sub.close()
		}
		c.subs = nil
		c.subsMu.Unlock()
	})
	return nil
}

// publish copies the session into the shared snapshot and notifies
// subscribers. Loop only.
func (c *Coordinator) publish() {
	snap := Snapshot{Session: c.session, Volume: c.volume}

	c.mu.Lock()
	c.snap = snap
	c.mu.Unlock()

	c.subsMu.Lock()
	for _, sub := range c.subs {
		sub.sendSnapshot(snap)
	}
	c.subsMu.Unlock()
}

func (c *Coordinator) publishError(e ErrorEvent) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	for _, sub := range c.subs {
		sub.sendError(e)
	}
}
