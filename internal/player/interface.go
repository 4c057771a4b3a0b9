// internal/player/interface.go
package player

import (
	"context"
	"time"
)

// Events are the callbacks a playing source reports through.
// They are bound by Play and dropped by Stop or by the next Play.
// Callbacks run on device goroutines, never under the device lock.
type Events struct {
	OnProgress func(pos time.Duration)
	OnMetadata func(duration time.Duration)
	OnEnded    func()
	OnError    func(err error) // decoding failed after Play; OnEnded is not called
}

// Source is an opened, decoded audio source ready to be handed to Play.
type Source interface {
	URL() string
	Format() string
	Duration() time.Duration
	Close() error
}

// Device is the audio output contract for dependency injection and testing.
//
// Open may block on the network and does not touch the output; every other
// method is expected to be called by a single owner.
type Device interface {
	Open(ctx context.Context, url string) (Source, error)
	Play(src Source, ev Events) error
	Pause()
	Resume()
	Seek(pos time.Duration)
	SetVolume(level float64)
	Volume() float64
	Stop()
	State() State
	Position() time.Duration
}

// Verify Speaker implements Device at compile time.
var _ Device = (*Speaker)(nil)
