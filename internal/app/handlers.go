package app

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"

	"github.com/llehouerou/moodtune/internal/app/handler"
	"github.com/llehouerou/moodtune/internal/errmsg"
	"github.com/llehouerou/moodtune/internal/keymap"
	"github.com/llehouerou/moodtune/internal/moodapi"
	"github.com/llehouerou/moodtune/internal/state"
	"github.com/llehouerou/moodtune/internal/ui/results"
)

// handleGlobal handles actions available from every panel.
func (m *Model) handleGlobal(action keymap.Action, _ string) handler.Result {
	switch action { //nolint:exhaustive // other actions belong to other handlers
	case keymap.ActionQuit:
		return handler.Handled(tea.Quit)
	case keymap.ActionSwitchFocus:
		if m.Focus == FocusInput {
			m.setFocus(FocusResults)
		} else {
			m.setFocus(FocusInput)
		}
		return handler.HandledNoCmd
	case keymap.ActionHelp:
		if m.Focus == FocusInput {
			return handler.NotHandled // typed as text
		}
		m.ShowHelp = true
		m.help.SetContexts([]string{"global", "input", "results", "playback"})
		return handler.HandledNoCmd
	}
	return handler.NotHandled
}

// handleInput handles actions of the mood input.
func (m *Model) handleInput(action keymap.Action, _ string) handler.Result {
	switch action { //nolint:exhaustive // other actions belong to other handlers
	case keymap.ActionAnalyze:
		return handler.Handled(m.analyze())
	case keymap.ActionToggleModel:
		if m.predictModel == moodapi.ModelSimple {
			m.predictModel = moodapi.ModelAdvanced
		} else {
			m.predictModel = moodapi.ModelSimple
		}
		return handler.HandledNoCmd
	}
	return handler.NotHandled
}

// analyze starts a mood analysis of the input text. A new analysis navigates
// away from the current results, so the player is closed first.
func (m *Model) analyze() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		m.ErrorMsg = "Describe how you feel first"
		return nil
	}
	m.command("close", m.playback.CloseSession())

	m.seq++
	m.Analyzing = true
	m.ErrorMsg = ""
	m.log.Info().Str("model", m.predictModel).Int("chars", len(text)).Msg("analyzing mood")
	return tea.Batch(m.spinner.Tick, m.predictCmd(text, m.predictModel, m.seq))
}

// handleResults handles navigation, selection and likes in the result list.
func (m *Model) handleResults(action keymap.Action, _ string) handler.Result {
	switch action { //nolint:exhaustive // other actions belong to other handlers
	case keymap.ActionMoveUp:
		m.results.Move(-1)
	case keymap.ActionMoveDown:
		m.results.Move(1)
	case keymap.ActionJumpStart:
		m.results.JumpStart()
	case keymap.ActionJumpEnd:
		m.results.JumpEnd()
	case keymap.ActionSelect:
		if item, ok := m.results.Selected(); ok {
			m.ErrorMsg = ""
			m.command("select", m.playback.SelectSong(item.Song))
		}
	case keymap.ActionToggleLike:
		m.toggleLike()
	case keymap.ActionShowLikes:
		if m.ListMode == ListLikes {
			m.showRecommendations()
		} else {
			m.showLikes()
		}
	default:
		return handler.NotHandled
	}
	return handler.HandledNoCmd
}

func (m *Model) toggleLike() {
	item, ok := m.results.Selected()
	if !ok {
		return
	}
	mood := ""
	if m.Prediction != nil {
		mood = m.Prediction.Mood
	}
	liked, err := m.stateMgr.ToggleLike(item.Song, mood)
	if err != nil {
		m.ErrorMsg = errmsg.Format(errmsg.OpLikeToggle, err)
		return
	}
	if m.ListMode == ListLikes && !liked {
		m.showLikes()
		return
	}
	m.results.SetLiked(item.Song, liked)
}

func (m *Model) showLikes() {
	likes, err := m.stateMgr.ListLikes()
	if err != nil {
		m.ErrorMsg = errmsg.Format(errmsg.OpLikesLoad, err)
		return
	}
	m.ListMode = ListLikes
	items := lo.Map(likes, func(l state.LikedSong, _ int) results.Item {
		note := "liked " + humanize.Time(l.LikedAt)
		if l.Mood != "" {
			note += " when " + l.Mood
		}
		return results.Item{Song: l.Song, Liked: true, Note: note}
	})
	m.results.SetItems("Liked songs", items)
}

// handlePlayback handles transport controls. They only issue coordinator
// commands; the player bar follows the snapshots.
func (m *Model) handlePlayback(action keymap.Action, key string) handler.Result {
	switch action { //nolint:exhaustive // other actions belong to other handlers
	case keymap.ActionPlayPause:
		m.command("toggle", m.playback.TogglePlayPause())
	case keymap.ActionSeekForward:
		m.command("skip", m.playback.SkipBy(m.skipStep))
	case keymap.ActionSeekBack:
		m.command("skip", m.playback.SkipBy(-m.skipStep))
	case keymap.ActionSeekPercent:
		digit, err := strconv.Atoi(key)
		if err != nil {
			return handler.NotHandled
		}
		m.command("seek", m.playback.Seek(float64(digit)/10))
	case keymap.ActionVolumeUp:
		m.changeVolume(m.volumeStep)
	case keymap.ActionVolumeDown:
		m.changeVolume(-m.volumeStep)
	case keymap.ActionClosePlayer:
		m.command("close", m.playback.CloseSession())
	default:
		return handler.NotHandled
	}
	return handler.HandledNoCmd
}

func (m *Model) changeVolume(delta float64) {
	v := lo.Clamp(m.playback.Snapshot().Volume+delta, 0, 1)
	m.command("volume", m.playback.SetVolume(v))
	m.stateMgr.SaveVolume(v)
}

func (m *Model) setFocus(f FocusTarget) {
	m.Focus = f
	if f == FocusInput {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	m.results.SetFocused(f == FocusResults)
}
