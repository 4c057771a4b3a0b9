package notify

import (
	"github.com/llehouerou/moodtune/internal/errmsg"
	"github.com/llehouerou/moodtune/internal/playback"
)

const playbackTimeout = 5000 // ms

// Playback turns coordinator snapshots and errors into desktop
// notifications. Each notification replaces the previous one.
type Playback struct {
	n           Notifier
	lastID      uint32
	lastSession string
}

// NewPlayback creates a playback notifier on top of n.
func NewPlayback(n Notifier) *Playback {
	return &Playback{n: n}
}

// Update notifies when a session starts playing for the first time.
func (p *Playback) Update(snap playback.Snapshot) error {
	if snap.State != playback.StatePlaying || snap.Song == nil {
		return nil
	}
	if snap.ID == p.lastSession {
		return nil
	}
	p.lastSession = snap.ID

	body := snap.Song.Artist
	if snap.Source == playback.SourceFallback {
		body += "\n(preview clip)"
	}
	return p.send(Notification{
		Title:   snap.Song.Title,
		Body:    body,
		Icon:    "audio-x-generic",
		Timeout: playbackTimeout,
		Urgency: UrgencyLow,
	})
}

// Failed notifies that a song could not be played.
func (p *Playback) Failed(e playback.ErrorEvent) error {
	return p.send(Notification{
		Title:   e.Song.Title,
		Body:    errmsg.Format(errmsg.PlaybackOp(e.Operation), e.Err),
		Icon:    "dialog-error",
		Timeout: playbackTimeout,
		Urgency: UrgencyNormal,
	})
}

func (p *Playback) send(n Notification) error {
	n.ReplacesID = p.lastID
	id, err := p.n.Notify(n)
	if err != nil {
		return err
	}
	if id != 0 {
		p.lastID = id
	}
	return nil
}
