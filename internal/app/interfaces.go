package app

import (
	"context"
	"time"

	"github.com/llehouerou/moodtune/internal/moodapi"
	"github.com/llehouerou/moodtune/internal/playback"
)

// Predictor is the part of the prediction service client the UI uses.
type Predictor interface {
	Predict(ctx context.Context, text, model string) (*moodapi.Prediction, error)
	Health(ctx context.Context) (*moodapi.Health, error)
}

// Playback is the coordinator API the UI drives. The UI never touches the
// audio device directly.
type Playback interface {
	SelectSong(song moodapi.Song) error
	TogglePlayPause() error
	Seek(fraction float64) error
	SkipBy(delta time.Duration) error
	SetVolume(v float64) error
	CloseSession() error
	Snapshot() playback.Snapshot
	Subscribe() *playback.Subscription
}

// Verify the coordinator satisfies Playback at compile time.
var _ Playback = (*playback.Coordinator)(nil)
