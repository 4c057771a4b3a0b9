// Package mpris exposes the playback coordinator as an MPRIS media player,
// so desktop media keys and applets can control it.
package mpris

import (
	"time"

	"github.com/llehouerou/moodtune/internal/playback"
)

// Controller is the part of the playback coordinator the adapter drives.
type Controller interface {
	Snapshot() playback.Snapshot
	Subscribe() *playback.Subscription
	TogglePlayPause() error
	SkipBy(delta time.Duration) error
	SeekTo(pos time.Duration) error
	SetVolume(v float64) error
	CloseSession() error
}
