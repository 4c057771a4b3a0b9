package playback

import (
	"context"
	"fmt"
	"time"

	"github.com/llehouerou/moodtune/internal/player"
	"github.com/llehouerou/moodtune/internal/resolver"
)

// attempt is one device load of a session.
type attempt struct {
	url  string
	kind SourceKind
	next string // fallback to try if this load fails, "" for none
}

func (c *Coordinator) handleResolution(token uint64, res resolver.Resolution, err error) {
	if token != c.selection {
		c.log.Debug().Uint64("token", token).Msg("stale resolution dropped")
		return
	}
	c.release()

	song := *c.session.Song
	fallback := resolver.FallbackURL(song)

	if err == nil && resolver.Usable(res.URL) {
		c.open(attempt{url: res.URL, kind: SourceResolved, next: fallback})
		return
	}
	if err == nil {
		err = resolver.ErrNoSource
	}

	c.log.Warn().
		Err(err).
		Str("session", c.session.ID).
		Str("song", song.Title).
		Bool("fallback", fallback != "").
		Msg("resolution failed")

	if fallback == "" {
		c.fail("resolve", fmt.Errorf("%w: %w", ErrNoPlayableSource, err))
		return
	}
	c.open(attempt{url: fallback, kind: SourceFallback})
}

// open starts a device load on its own goroutine. The session keeps its
// state until the load settles.
func (c *Coordinator) open(a attempt) {
	c.load++
	c.introFired = false
	c.lastAttempt = a.kind
	c.session.Source = a.kind
	c.publish()

	c.log.Debug().
		Str("session", c.session.ID).
		Str("source", a.kind.String()).
		Str("url", a.url).
		Msg("opening source")

	ctx, cancel := context.WithTimeout(context.Background(), c.opts.LoadTimeout)
	c.cancel = cancel
	token := c.load
	go func() {
		src, err := c.device.Open(ctx, a.url)
		delivered := c.post(func() { c.handleOpened(token, a, src, err) })
		if !delivered && src != nil {
			src.Close()
		}
	}()
}

func (c *Coordinator) handleOpened(token uint64, a attempt, src player.Source, err error) {
	if token != c.load {
		if src != nil {
			src.Close()
		}
		c.log.Debug().Uint64("token", token).Msg("stale load dropped")
		return
	}
	c.release()

	if err == nil {
		c.device.SetVolume(c.volume)
		err = c.device.Play(src, c.events(token, a))
	}
	if err == nil {
		c.session.State = StatePlaying
		c.session.Duration = src.Duration()
		c.log.Info().
			Str("session", c.session.ID).
			Str("source", a.kind.String()).
			Str("format", src.Format()).
			Msg("playing")
		c.publish()
		return
	}

	c.log.Warn().
		Err(err).
		Str("session", c.session.ID).
		Str("source", a.kind.String()).
		Msg("load failed")

	c.retryOrFail(a, err)
}

// retryOrFail moves to the fallback of a, if any, after its load failed.
func (c *Coordinator) retryOrFail(a attempt, err error) {
	if a.next != "" && a.next != a.url {
		c.open(attempt{url: a.next, kind: SourceFallback})
		return
	}
	c.fail("play", fmt.Errorf("%w: %w", ErrNoPlayableSource, err))
}

// fail ends the session in StateErrored. Nothing is loaded at this point.
func (c *Coordinator) fail(op string, err error) {
	c.session.State = StateErrored
	c.session.Source = SourceNone
	c.session.Position = 0
	c.session.Duration = 0
	c.session.Err = err

	c.log.Error().
		Err(err).
		Str("session", c.session.ID).
		Str("song", c.session.Song.Title).
		Str("op", op).
		Msg("playback failed")

	c.publish()
	c.publishError(ErrorEvent{
		Operation: op,
		Song:      *c.session.Song,
		Source:    c.lastAttempt,
		Err:       err,
	})
}

// release cancels the context of the settled operation.
func (c *Coordinator) release() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// events binds device callbacks to load token. Callbacks post to the loop
// and never block the device beyond that.
func (c *Coordinator) events(token uint64, a attempt) player.Events {
	return player.Events{
		OnProgress: func(pos time.Duration) {
			c.post(func() { c.handleProgress(token, pos) })
		},
		OnMetadata: func(d time.Duration) {
			c.post(func() { c.handleMetadata(token, d) })
		},
		OnEnded: func() {
			c.post(func() { c.handleEnded(token) })
		},
		OnError: func(err error) {
			c.post(func() { c.handleDeviceError(token, a, err) })
		},
	}
}

func (c *Coordinator) handleProgress(token uint64, pos time.Duration) {
	if token != c.load || !c.session.State.IsActive() {
		return
	}
	pos = max(pos, 0)
	if c.session.Duration > 0 {
		pos = min(pos, c.session.Duration)
	}
	if pos == c.session.Position {
		return
	}
	c.session.Position = pos
	c.publish()
}

// handleMetadata records the duration. Short clips usually open on a
// non-representative intro, so the first metadata of a load with a duration
// at or below the threshold skips ahead once.
func (c *Coordinator) handleMetadata(token uint64, d time.Duration) {
	if token != c.load || !c.session.State.IsActive() || d <= 0 {
		return
	}
	c.session.Duration = d
	c.session.Position = min(c.session.Position, d)

	if !c.introFired {
		c.introFired = true
		if d <= c.opts.ShortClipThreshold && d > c.opts.IntroSkip {
			c.device.Seek(c.opts.IntroSkip)
			c.session.Position = c.opts.IntroSkip
			c.log.Debug().
				Str("session", c.session.ID).
				Dur("duration", d).
				Msg("short clip, intro skipped")
		}
	}
	c.publish()
}

// handleEnded also applies in Paused: a pause issued while the output
// drained its last buffer must not hide the end.
func (c *Coordinator) handleEnded(token uint64) {
	if token != c.load || !c.session.State.IsActive() || c.session.Ended {
		return
	}
	c.session.State = StatePaused
	c.session.Ended = true
	if c.session.Duration > 0 {
		c.session.Position = c.session.Duration
	}
	c.log.Debug().Str("session", c.session.ID).Msg("ended")
	c.publish()
}

// handleDeviceError treats a failure after playback started like a failed
// load: one fallback if the attempt has one, otherwise the session errors.
func (c *Coordinator) handleDeviceError(token uint64, a attempt, err error) {
	if token != c.load || !c.session.State.IsActive() {
		return
	}
	c.log.Warn().
		Err(err).
		Str("session", c.session.ID).
		Str("source", a.kind.String()).
		Dur("position", c.session.Position).
		Msg("playback interrupted")

	c.device.Stop()
	c.session.Position = 0
	c.session.Duration = 0
	c.session.Ended = false
	if a.next != "" && a.next != a.url {
		c.session.State = StateResolving
	}
	c.retryOrFail(a, err)
}
