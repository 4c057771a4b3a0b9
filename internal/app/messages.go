// Package app contains the bubbletea model of the terminal UI.
package app

import (
	"github.com/llehouerou/moodtune/internal/moodapi"
	"github.com/llehouerou/moodtune/internal/playback"
)

// PredictionMsg carries the outcome of a mood analysis. Seq identifies the
// analysis so that a superseded response is dropped.
type PredictionMsg struct {
	Seq        int
	Prediction *moodapi.Prediction
	Err        error
}

// HealthMsg carries the outcome of the startup health check.
type HealthMsg struct {
	Health *moodapi.Health
	Err    error
}

// SnapshotMsg is a coordinator state change.
type SnapshotMsg playback.Snapshot

// PlaybackErrorMsg is a coordinator playback failure.
type PlaybackErrorMsg playback.ErrorEvent

// playbackClosedMsg is sent once the coordinator has shut down.
type playbackClosedMsg struct{}
