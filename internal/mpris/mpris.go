//go:build linux

package mpris

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/rs/zerolog"

	"github.com/llehouerou/moodtune/internal/playback"
)

const busName = "moodtune"

// Adapter connects the playback coordinator to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
	log    zerolog.Logger
	done   chan struct{}
}

// New creates and starts a new MPRIS adapter. It fails when no session bus
// is reachable.
func New(ctrl Controller, log zerolog.Logger) (*Adapter, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect session bus: %w", err)
	}

	a := &Adapter{
		server: server.NewServer(busName, &rootAdapter{}, &playerAdapter{ctrl: ctrl}),
		log:    log,
		done:   make(chan struct{}),
	}

	go func() {
		if err := a.server.Listen(); err != nil {
			a.log.Warn().Err(err).Msg("mpris server stopped")
		}
	}()

	sub := ctrl.Subscribe()
	n := &propsNotifier{bus: conn, log: log}
	go n.run(sub.Changed, sub.Done, a.done)

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	close(a.done)
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - app manages its own lifecycle
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "MoodTune", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
// There is no queue: next and previous are no-ops.
type playerAdapter struct {
	ctrl Controller
}

func (p *playerAdapter) Next() error {
	return nil
}

func (p *playerAdapter) Previous() error {
	return nil
}

func (p *playerAdapter) Pause() error {
	if p.ctrl.Snapshot().State != playback.StatePlaying {
		return nil
	}
	return p.ctrl.TogglePlayPause()
}

func (p *playerAdapter) PlayPause() error {
	return p.ctrl.TogglePlayPause()
}

func (p *playerAdapter) Stop() error {
	return p.ctrl.CloseSession()
}

func (p *playerAdapter) Play() error {
	if p.ctrl.Snapshot().State != playback.StatePaused {
		return nil
	}
	return p.ctrl.TogglePlayPause()
}

func (p *playerAdapter) Seek(offset types.Microseconds) error {
	return p.ctrl.SkipBy(time.Duration(offset) * time.Microsecond)
}

func (p *playerAdapter) SetPosition(trackID string, position types.Microseconds) error {
	snap := p.ctrl.Snapshot()
	// Stale requests for a previous session are ignored.
	if snap.Song == nil || trackID != formatTrackID(snap.ID) {
		return nil
	}
	return p.ctrl.SeekTo(time.Duration(position) * time.Microsecond)
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	return playbackStatus(p.ctrl.Snapshot().State), nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	snap := p.ctrl.Snapshot()
	if snap.Song == nil {
		return types.Metadata{}, nil
	}

	return types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(snap.ID)),
		Length:  types.Microseconds(snap.Duration.Microseconds()),
		Title:   snap.Song.Title,
		Artist:  []string{snap.Song.Artist},
		ArtUrl:  snap.Song.Image,
	}, nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return p.ctrl.Snapshot().Volume, nil
}

func (p *playerAdapter) SetVolume(v float64) error {
	return p.ctrl.SetVolume(v)
}

func (p *playerAdapter) Position() (int64, error) {
	return p.ctrl.Snapshot().Position.Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.ctrl.Snapshot().State.IsActive(), nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return p.ctrl.Snapshot().State.IsActive(), nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	snap := p.ctrl.Snapshot()
	return snap.State.IsActive() && snap.Duration > 0, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}

func playbackStatus(s playback.State) types.PlaybackStatus {
	switch s {
	case playback.StatePlaying:
		return types.PlaybackStatusPlaying
	case playback.StatePaused:
		return types.PlaybackStatusPaused
	case playback.StateIdle, playback.StateResolving, playback.StateErrored:
		return types.PlaybackStatusStopped
	}
	return types.PlaybackStatusStopped
}

func formatTrackID(sessionID string) string {
	h := fnv.New64a()
	h.Write([]byte(sessionID))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}
