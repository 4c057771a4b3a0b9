package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/moodtune/internal/moodapi"
	"github.com/llehouerou/moodtune/internal/notify"
	"github.com/llehouerou/moodtune/internal/playback"
	"github.com/llehouerou/moodtune/internal/player"
	"github.com/llehouerou/moodtune/internal/resolver"
	"github.com/llehouerou/moodtune/internal/state"
)

var (
	happy = moodapi.Song{Title: "Happy", Artist: "Pharrell Williams", PreviewAudio: "https://cdn.example/happy.mp3"}
	shine = moodapi.Song{Title: "Walking on Sunshine", Artist: "Katrina and the Waves"}

	joyful = &moodapi.Prediction{
		Mood:            "happy",
		Confidence:      0.87,
		Recommendations: []moodapi.Song{happy, shine},
		Genres:          []string{"pop", "funk"},
	}
)

type fakePredictor struct {
	mu     sync.Mutex
	texts  []string
	models []string
	pred   *moodapi.Prediction
	err    error
	health *moodapi.Health
}

func (f *fakePredictor) Predict(_ context.Context, text, model string) (*moodapi.Prediction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
	f.models = append(f.models, model)
	return f.pred, f.err
}

func (f *fakePredictor) Health(_ context.Context) (*moodapi.Health, error) {
	if f.health == nil {
		return nil, errors.New("connection refused")
	}
	return f.health, nil
}

// fakePlayback records coordinator commands.
type fakePlayback struct {
	snap     playback.Snapshot
	selected []moodapi.Song
	toggles  int
	seeks    []float64
	skips    []time.Duration
	volumes  []float64
	closes   int
}

func (f *fakePlayback) SelectSong(song moodapi.Song) error {
	f.selected = append(f.selected, song)
	return nil
}

func (f *fakePlayback) TogglePlayPause() error {
	f.toggles++
	return nil
}

func (f *fakePlayback) Seek(fraction float64) error {
	f.seeks = append(f.seeks, fraction)
	return nil
}

func (f *fakePlayback) SkipBy(d time.Duration) error {
	f.skips = append(f.skips, d)
	return nil
}

func (f *fakePlayback) SetVolume(v float64) error {
	f.volumes = append(f.volumes, v)
	f.snap.Volume = v
	return nil
}

func (f *fakePlayback) CloseSession() error {
	f.closes++
	return nil
}

func (f *fakePlayback) Snapshot() playback.Snapshot       { return f.snap }
func (f *fakePlayback) Subscribe() *playback.Subscription { return nil }

type recorder struct {
	sent []notify.Notification
}

func (r *recorder) Notify(n notify.Notification) (uint32, error) {
	r.sent = append(r.sent, n)
	return uint32(len(r.sent)), nil
}

func (r *recorder) Close(_ uint32) error { return nil }

type testEnv struct {
	pred  *fakePredictor
	pb    *fakePlayback
	state *state.Mock
	notes *recorder
}

func newTestModel(t *testing.T) (Model, *testEnv) {
	t.Helper()
	env := &testEnv{
		pred:  &fakePredictor{pred: joyful},
		pb:    &fakePlayback{snap: playback.Snapshot{Volume: 0.5}},
		state: state.NewMock(),
		notes: &recorder{},
	}
	m := New(env.pred, env.pb, env.state, env.notes, Options{})
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, env
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok, "Update must return app.Model")
	return model
}

func updateCmd(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok, "Update must return app.Model")
	return model, cmd
}

func key(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+t":
		return tea.KeyMsg{Type: tea.KeyCtrlT}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = update(t, m, key(string(r)))
	}
	return m
}

// withResults runs an analysis and applies its response.
func withResults(t *testing.T, m Model) Model {
	t.Helper()
	m = typeText(t, m, "great day")
	m = update(t, m, key("enter"))
	return update(t, m, PredictionMsg{Seq: m.seq, Prediction: joyful})
}

func TestNew_Defaults(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Equal(t, moodapi.ModelSimple, m.PredictModel())
	assert.Equal(t, FocusInput, m.Focus)
	assert.InDelta(t, DefaultVolumeStep, m.volumeStep, 1e-9)
	assert.Equal(t, DefaultSkipStep, m.skipStep)
}

func TestAnalyze_EmptyInput(t *testing.T) {
	m, env := newTestModel(t)

	m, cmd := updateCmd(t, m, key("enter"))
	assert.Nil(t, cmd)
	assert.False(t, m.Analyzing)
	assert.NotEmpty(t, m.ErrorMsg)
	assert.Zero(t, env.pb.closes)
}

func TestAnalyze_ClosesPlayerAndPredicts(t *testing.T) {
	m, env := newTestModel(t)
	m = typeText(t, m, "  feeling great  ")

	m, cmd := updateCmd(t, m, key("enter"))
	require.NotNil(t, cmd)
	assert.True(t, m.Analyzing)
	assert.Equal(t, 1, env.pb.closes, "a new analysis closes the player")

	msg := m.predictCmd("feeling great", m.PredictModel(), m.seq)()
	pm, ok := msg.(PredictionMsg)
	require.True(t, ok)
	assert.Equal(t, m.seq, pm.Seq)
	assert.Equal(t, []string{"feeling great"}, env.pred.texts)
	assert.Equal(t, []string{moodapi.ModelSimple}, env.pred.models)
}

func TestTypingQDoesNotQuit(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := updateCmd(t, m, key("q"))
	assert.Nil(t, cmd)
	assert.Equal(t, "q", m.input.Value())

	m = update(t, m, key("?"))
	assert.False(t, m.ShowHelp, "? is typed in the input")
	assert.Equal(t, "q?", m.input.Value())
}

func TestToggleModel(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, key("ctrl+t"))
	assert.Equal(t, moodapi.ModelAdvanced, m.PredictModel())
	m = update(t, m, key("ctrl+t"))
	assert.Equal(t, moodapi.ModelSimple, m.PredictModel())
}

func TestPrediction_ShowsRecommendations(t *testing.T) {
	m, env := newTestModel(t)
	_, err := env.state.ToggleLike(shine, "happy")
	require.NoError(t, err)

	m = withResults(t, m)

	assert.False(t, m.Analyzing)
	assert.Equal(t, FocusResults, m.Focus)
	require.Equal(t, 2, m.Results().Len())
	items := m.Results().Items()
	assert.Equal(t, "Happy", items[0].Song.Title)
	assert.False(t, items[0].Liked)
	assert.True(t, items[1].Liked, "liked flag comes from the state db")
	assert.Contains(t, m.View(), "HAPPY")
	assert.Contains(t, m.View(), "pop · funk")
}

func TestPrediction_StaleResponseIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(t, m, "sad")
	m = update(t, m, key("enter"))

	m = update(t, m, PredictionMsg{Seq: m.seq - 1, Prediction: joyful})
	assert.Nil(t, m.Prediction)
	assert.True(t, m.Analyzing)
}

func TestPrediction_Error(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(t, m, "meh")
	m = update(t, m, key("enter"))

	m = update(t, m, PredictionMsg{Seq: m.seq, Err: errors.New("service returned 500: boom")})
	assert.False(t, m.Analyzing)
	assert.Equal(t, "Failed to analyze mood: service returned 500: boom", m.ErrorMsg)
	assert.Equal(t, FocusInput, m.Focus)
}

func TestSelect_PlaysSelectedSong(t *testing.T) {
	m, env := newTestModel(t)
	m = withResults(t, m)

	m = update(t, m, key("j"))
	_ = update(t, m, key("enter"))

	require.Len(t, env.pb.selected, 1)
	assert.Equal(t, shine, env.pb.selected[0])
}

func TestPlaybackKeys(t *testing.T) {
	m, env := newTestModel(t)
	m = withResults(t, m)

	m = update(t, m, key(" "))
	m = update(t, m, key("7"))
	m = update(t, m, key("right"))
	m = update(t, m, key("left"))
	m = update(t, m, key("x"))

	assert.Equal(t, 1, env.pb.toggles)
	assert.Equal(t, []float64{0.7}, env.pb.seeks)
	assert.Equal(t, []time.Duration{10 * time.Second, -10 * time.Second}, env.pb.skips)
	assert.Equal(t, 2, env.pb.closes, "one for the analysis, one for x")
	_ = m
}

func TestVolumeKeys_PersistVolume(t *testing.T) {
	m, env := newTestModel(t)
	m = withResults(t, m)

	m = update(t, m, key("+"))
	require.Len(t, env.pb.volumes, 1)
	assert.InDelta(t, 0.55, env.pb.volumes[0], 1e-9)

	env.pb.snap.Volume = 0.02
	_ = update(t, m, key("-"))
	assert.InDelta(t, 0, env.pb.volumes[1], 1e-9, "clamped at zero")

	saved, err := env.state.GetVolume()
	require.NoError(t, err)
	assert.InDelta(t, 0, saved, 1e-9)
}

func TestToggleLike_AndShowLikes(t *testing.T) {
	m, env := newTestModel(t)
	m = withResults(t, m)

	m = update(t, m, key("l"))
	assert.True(t, m.Results().Items()[0].Liked)
	liked, _ := env.state.IsLiked(happy)
	assert.True(t, liked)

	m = update(t, m, key("L"))
	assert.Equal(t, ListLikes, m.ListMode)
	require.Equal(t, 1, m.Results().Len())
	item := m.Results().Items()[0]
	assert.Equal(t, "Happy", item.Song.Title)
	assert.Contains(t, item.Note, "liked")
	assert.Contains(t, item.Note, "when happy")

	// Unliking from the likes list removes the row
	m = update(t, m, key("l"))
	assert.Zero(t, m.Results().Len())

	m = update(t, m, key("L"))
	assert.Equal(t, ListRecommendations, m.ListMode)
	assert.Equal(t, 2, m.Results().Len())
}

func TestSwitchFocusAndHelp(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, key("tab"))
	assert.Equal(t, FocusResults, m.Focus)

	m = update(t, m, key("?"))
	assert.True(t, m.ShowHelp)
	assert.Contains(t, m.View(), "Key bindings")

	m = update(t, m, key("j"))
	assert.True(t, m.ShowHelp, "j scrolls the help screen")

	m = update(t, m, key("x"))
	assert.False(t, m.ShowHelp, "other keys close help")

	m = update(t, m, key("tab"))
	assert.Equal(t, FocusInput, m.Focus)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, key("tab"))

	_, cmd := updateCmd(t, m, key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSnapshot_UpdatesListAndNotifies(t *testing.T) {
	m, env := newTestModel(t)
	m = withResults(t, m)

	snap := playback.Snapshot{
		Session: playback.Session{ID: "s1", Song: &happy, State: playback.StatePlaying, Source: playback.SourceResolved, Duration: time.Minute},
		Volume:  0.5,
	}
	m = update(t, m, SnapshotMsg(snap))

	assert.Equal(t, playback.StatePlaying, m.Snapshot.State)
	require.Len(t, env.notes.sent, 1)
	assert.Equal(t, "Happy", env.notes.sent[0].Title)
	view := m.View()
	assert.Contains(t, view, "0:00")
	assert.Contains(t, view, "1:00")
}

func TestPlaybackError_ShowsMessage(t *testing.T) {
	m, env := newTestModel(t)

	m = update(t, m, PlaybackErrorMsg{
		Operation: "resolve",
		Song:      happy,
		Err:       errors.New("no playable source"),
	})

	assert.Equal(t, "Failed to find audio 'Happy': no playable source", m.ErrorMsg)
	require.Len(t, env.notes.sent, 1)
}

func TestHealth(t *testing.T) {
	m, env := newTestModel(t)

	msg := m.healthCmd()()
	m = update(t, m, msg)
	assert.Equal(t, "Failed to reach mood service: connection refused", m.ServiceMsg)

	env.pred.health = &moodapi.Health{Status: "ok", Version: "1.2"}
	m = update(t, m, m.healthCmd()())
	assert.Equal(t, "service ok v1.2", m.ServiceMsg)
}

type staticResolver string

func (s staticResolver) Resolve(_ context.Context, _ moodapi.Song) (resolver.Resolution, error) {
	return resolver.Resolution{URL: string(s)}, nil
}

func TestWaitForPlayback_FollowsCoordinator(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		c := playback.New(player.NewMock(), staticResolver("https://audio.example/happy.m4a"), playback.DefaultOptions())
		t.Cleanup(func() { _ = c.Close() })

		m := New(&fakePredictor{}, c, state.NewMock(), notify.Disabled{}, Options{})
		wait := waitForPlayback(m.sub)

		first, ok := wait().(SnapshotMsg)
		require.True(t, ok)
		assert.Equal(t, playback.StateIdle, first.State)

		require.NoError(t, c.SelectSong(happy))
		synctest.Wait()

		next, ok := wait().(SnapshotMsg)
		require.True(t, ok)
		assert.Equal(t, playback.StatePlaying, next.State)
		assert.Equal(t, playback.SourceResolved, next.Source)

		require.NoError(t, c.Close())
		// The closing snapshot may be pending ahead of the shutdown signal
		closed := false
		for range 3 {
			if _, ok := wait().(playbackClosedMsg); ok {
				closed = true
				break
			}
		}
		assert.True(t, closed)
	})
}
