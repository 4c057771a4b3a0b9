//go:build linux

package mpris

import (
	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/types"
	"github.com/rs/zerolog"

	"github.com/llehouerou/moodtune/internal/playback"
)

const (
	objectPath       = dbus.ObjectPath("/org/mpris/MediaPlayer2")
	playerInterface  = "org.mpris.MediaPlayer2.Player"
	propertiesSignal = "org.freedesktop.DBus.Properties.PropertiesChanged"
)

type emitter interface {
	Emit(path dbus.ObjectPath, name string, values ...any) error
}

// playerProps are the player properties applets cache. Position is polled
// by clients and is left out.
type playerProps struct {
	status  types.PlaybackStatus
	track   string // track id and length; metadata is resent when either moves
	volume  float64
	canSeek bool
	canPlay bool
}

func propsOf(snap playback.Snapshot) playerProps {
	p := playerProps{
		status:  playbackStatus(snap.State),
		volume:  snap.Volume,
		canSeek: snap.State.IsActive() && snap.Duration > 0,
		canPlay: snap.State.IsActive(),
	}
	if snap.Song != nil {
		p.track = formatTrackID(snap.ID) + "/" + snap.Duration.String()
	}
	return p
}

// propsNotifier sends PropertiesChanged for the player interface whenever a
// snapshot changes what applets display.
type propsNotifier struct {
	bus  emitter
	log  zerolog.Logger
	last playerProps
	sent bool
}

func (n *propsNotifier) run(changed <-chan playback.Snapshot, subDone, stop <-chan struct{}) {
	for {
		select {
		case snap := <-changed:
			n.update(snap)
		case <-subDone:
			return
		case <-stop:
			return
		}
	}
}

func (n *propsNotifier) update(snap playback.Snapshot) {
	next := propsOf(snap)
	prev := n.last
	changed := make(map[string]dbus.Variant)

	if !n.sent || next.status != prev.status {
		changed["PlaybackStatus"] = dbus.MakeVariant(string(next.status))
	}
	if !n.sent || next.track != prev.track {
		changed["Metadata"] = dbus.MakeVariant(metadataMap(snap))
	}
	if !n.sent || next.volume != prev.volume {
		changed["Volume"] = dbus.MakeVariant(next.volume)
	}
	if !n.sent || next.canSeek != prev.canSeek {
		changed["CanSeek"] = dbus.MakeVariant(next.canSeek)
	}
	if !n.sent || next.canPlay != prev.canPlay {
		changed["CanPlay"] = dbus.MakeVariant(next.canPlay)
		changed["CanPause"] = dbus.MakeVariant(next.canPlay)
	}

	n.last = next
	n.sent = true
	if len(changed) == 0 {
		return
	}
	if err := n.bus.Emit(objectPath, propertiesSignal, playerInterface, changed, []string{}); err != nil {
		n.log.Debug().Err(err).Msg("mpris properties signal failed")
	}
}

// metadataMap is the xesam/mpris metadata dictionary for snap.
func metadataMap(snap playback.Snapshot) map[string]dbus.Variant {
	if snap.Song == nil {
		return map[string]dbus.Variant{
			"mpris:trackid": dbus.MakeVariant(dbus.ObjectPath("/org/mpris/MediaPlayer2/TrackList/NoTrack")),
		}
	}
	m := map[string]dbus.Variant{
		"mpris:trackid": dbus.MakeVariant(dbus.ObjectPath(formatTrackID(snap.ID))),
		"mpris:length":  dbus.MakeVariant(snap.Duration.Microseconds()),
		"xesam:title":   dbus.MakeVariant(snap.Song.Title),
		"xesam:artist":  dbus.MakeVariant([]string{snap.Song.Artist}),
	}
	if snap.Song.Image != "" {
		m["mpris:artUrl"] = dbus.MakeVariant(snap.Song.Image)
	}
	return m
}
