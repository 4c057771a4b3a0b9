package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/moodtune/internal/playback"
)

const healthTimeout = 5 * time.Second

// predictCmd runs a mood analysis in the background.
func (m Model) predictCmd(text, model string, seq int) tea.Cmd {
	predictor := m.predictor
	return func() tea.Msg {
		pred, err := predictor.Predict(context.Background(), text, model)
		return PredictionMsg{Seq: seq, Prediction: pred, Err: err}
	}
}

// healthCmd checks that the prediction service is reachable.
func (m Model) healthCmd() tea.Cmd {
	predictor := m.predictor
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
		defer cancel()
		h, err := predictor.Health(ctx)
		return HealthMsg{Health: h, Err: err}
	}
}

// waitForPlayback waits for the next coordinator event and converts it to a
// tea.Msg. The handler of each message issues the next wait.
func waitForPlayback(sub *playback.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case snap := <-sub.Changed:
			return SnapshotMsg(snap)
		case e := <-sub.Errors:
			return PlaybackErrorMsg(e)
		case <-sub.Done:
			return playbackClosedMsg{}
		}
	}
}
