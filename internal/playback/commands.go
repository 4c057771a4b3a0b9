package playback

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/llehouerou/moodtune/internal/moodapi"
)

// SelectSong starts playback of song. Selecting the active song toggles
// play/pause instead, unless its session failed, in which case it starts
// over. Any pending work of the previous session is superseded.
func (c *Coordinator) SelectSong(song moodapi.Song) error {
	return c.do(func() { c.selectSong(song) })
}

// TogglePlayPause pauses a playing session or resumes a paused one.
func (c *Coordinator) TogglePlayPause() error {
	return c.do(c.togglePlayPause)
}

// Seek moves to fraction of the duration, clamped into [0,1].
func (c *Coordinator) Seek(fraction float64) error {
	return c.do(func() {
		if !c.seekable() {
			c.log.Debug().Str("state", c.session.State.String()).Msg("seek ignored")
			return
		}
		f := lo.Clamp(fraction, 0, 1)
		c.seekTo(time.Duration(f * float64(c.session.Duration)))
	})
}

// SeekTo moves to an absolute position, clamped into [0, duration].
func (c *Coordinator) SeekTo(pos time.Duration) error {
	return c.do(func() {
		if !c.seekable() {
			return
		}
		c.seekTo(pos)
	})
}

// SkipBy moves the position by delta, clamped into [0, duration].
func (c *Coordinator) SkipBy(delta time.Duration) error {
	return c.do(func() {
		if !c.seekable() {
			return
		}
		c.seekTo(c.session.Position + delta)
	})
}

// SetVolume sets the volume in any state. It outlives sessions.
func (c *Coordinator) SetVolume(v float64) error {
	return c.do(func() {
		c.volume = lo.Clamp(v, 0, 1)
		c.device.SetVolume(c.volume)
		c.publish()
	})
}

// CloseSession stops playback and resets the session to idle.
func (c *Coordinator) CloseSession() error {
	return c.do(c.closeSession)
}

func (c *Coordinator) selectSong(song moodapi.Song) {
	if c.session.IsActiveSong(song) && c.session.State != StateErrored {
		c.togglePlayPause()
		return
	}

	c.teardown()
	s := song
	c.session = Session{
		ID:    uuid.NewString(),
		Song:  &s,
		State: StateResolving,
	}
	c.lastAttempt = SourceNone
	c.log.Info().
		Str("session", c.session.ID).
		Str("song", song.Title).
		Str("artist", song.Artist).
		Msg("song selected")
	c.publish()

	ctx, cancel := context.WithTimeout(context.Background(), c.opts.ResolveTimeout)
	c.cancel = cancel
	token := c.selection
	go func() {
		res, err := c.resolver.Resolve(ctx, song)
		c.post(func() { c.handleResolution(token, res, err) })
	}()
}

func (c *Coordinator) togglePlayPause() {
	switch c.session.State {
	case StatePlaying:
		c.device.Pause()
		c.session.State = StatePaused
	case StatePaused:
		if c.session.Ended {
			c.device.Seek(0)
			c.session.Position = 0
			c.session.Ended = false
		}
		c.device.Resume()
		c.session.State = StatePlaying
	case StateIdle, StateResolving, StateErrored:
		c.log.Debug().Str("state", c.session.State.String()).Msg("toggle ignored")
		return
	}
	c.publish()
}

// seekable reports whether a source is loaded and its duration known.
func (c *Coordinator) seekable() bool {
	return c.session.State.IsActive() && c.session.Duration > 0
}

func (c *Coordinator) seekTo(pos time.Duration) {
	pos = lo.Clamp(pos, 0, c.session.Duration)
	c.device.Seek(pos)
	c.session.Position = pos
	c.session.Ended = false
	c.publish()
}

func (c *Coordinator) closeSession() {
	if c.session.Song == nil {
		return
	}
	c.log.Info().Str("session", c.session.ID).Msg("session closed")
	c.teardown()
	c.session = Session{}
	c.publish()
}

// teardown invalidates pending work and unbinds the device from the session.
func (c *Coordinator) teardown() {
	c.release()
	c.selection++
	c.load++
	if c.session.Song != nil {
		c.device.Stop()
	}
}
