package app

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/moodtune/internal/app/handler"
	"github.com/llehouerou/moodtune/internal/errmsg"
	"github.com/llehouerou/moodtune/internal/playback"
	"github.com/llehouerou/moodtune/internal/ui/results"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.relayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.Analyzing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case PredictionMsg:
		return m.handlePrediction(msg)

	case HealthMsg:
		m.handleHealth(msg)
		return m, nil

	case SnapshotMsg:
		m.handleSnapshot(playback.Snapshot(msg))
		return m, waitForPlayback(m.sub)

	case PlaybackErrorMsg:
		m.handlePlaybackError(playback.ErrorEvent(msg))
		return m, waitForPlayback(m.sub)

	case playbackClosedMsg:
		return m, nil
	}

	// Cursor blink and other textinput internals
	if m.Focus == FocusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.ShowHelp {
		// Scroll keys scroll, any other key closes; ctrl+c still quits
		if key == "ctrl+c" {
			return m, tea.Quit
		}
		if !m.help.Scroll(key) {
			m.ShowHelp = false
		}
		return m, nil
	}

	if m.Focus == FocusInput {
		action := m.inputKeys.Resolve(key)
		if handled, cmd := handler.Chain(action, key, m.handleGlobal, m.handleInput); handled {
			return m, cmd
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	action := m.resultsKeys.Resolve(key)
	_, cmd := handler.Chain(action, key, m.handleGlobal, m.handleResults, m.handlePlayback)
	return m, cmd
}

func (m *Model) handlePrediction(msg PredictionMsg) (tea.Model, tea.Cmd) {
	if msg.Seq != m.seq {
		return *m, nil
	}
	m.Analyzing = false

	if msg.Err != nil {
		m.ErrorMsg = errmsg.Format(errmsg.OpPredict, msg.Err)
		m.log.Warn().Err(msg.Err).Msg("mood analysis failed")
		return *m, nil
	}

	m.ErrorMsg = ""
	m.Prediction = msg.Prediction
	m.log.Info().
		Str("mood", msg.Prediction.Mood).
		Float64("confidence", msg.Prediction.Confidence).
		Int("songs", len(msg.Prediction.Recommendations)).
		Msg("mood analyzed")
	m.showRecommendations()
	if m.results.Len() > 0 {
		m.setFocus(FocusResults)
	}
	m.relayout()
	return *m, nil
}

func (m *Model) showRecommendations() {
	m.ListMode = ListRecommendations
	if m.Prediction == nil {
		m.results.SetItems("Recommendations", nil)
		return
	}
	items := make([]results.Item, 0, len(m.Prediction.Recommendations))
	for _, song := range m.Prediction.Recommendations {
		liked, err := m.stateMgr.IsLiked(song)
		if err != nil {
			m.log.Warn().Err(err).Str("song", song.Title).Msg("like lookup failed")
		}
		items = append(items, results.Item{Song: song, Liked: liked})
	}
	m.results.SetItems(fmt.Sprintf("Recommendations for %s", m.Prediction.Mood), items)
}

func (m *Model) handleHealth(msg HealthMsg) {
	m.serviceOK = msg.Err == nil
	m.serviceErr = msg.Err != nil
	if msg.Err != nil {
		m.ServiceMsg = errmsg.Format(errmsg.OpHealth, msg.Err)
		m.log.Warn().Err(msg.Err).Msg("health check failed")
		return
	}
	m.ServiceMsg = "service " + msg.Health.Status
	if msg.Health.Version != "" {
		m.ServiceMsg += " v" + msg.Health.Version
	}
}

func (m *Model) handleSnapshot(snap playback.Snapshot) {
	wasVisible := m.playerVisible()
	m.Snapshot = snap
	m.results.SetActive(snap)
	if err := m.notifier.Update(snap); err != nil {
		m.log.Debug().Err(err).Msg("notification failed")
	}
	if wasVisible != m.playerVisible() {
		m.relayout()
	}
}

func (m *Model) handlePlaybackError(e playback.ErrorEvent) {
	m.ErrorMsg = errmsg.FormatWith(errmsg.PlaybackOp(e.Operation), e.Song.Title, e.Err)
	if err := m.notifier.Failed(e); err != nil {
		m.log.Debug().Err(err).Msg("notification failed")
	}
}

// command runs a coordinator command, reporting a closed coordinator.
func (m *Model) command(name string, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, playback.ErrClosed) {
		m.log.Debug().Str("command", name).Msg("coordinator closed")
		return
	}
	m.log.Warn().Err(err).Str("command", name).Msg("playback command failed")
}
