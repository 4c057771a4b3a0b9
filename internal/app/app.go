package app

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/llehouerou/moodtune/internal/keymap"
	"github.com/llehouerou/moodtune/internal/moodapi"
	"github.com/llehouerou/moodtune/internal/notify"
	"github.com/llehouerou/moodtune/internal/playback"
	"github.com/llehouerou/moodtune/internal/state"
	"github.com/llehouerou/moodtune/internal/ui/helpbindings"
	"github.com/llehouerou/moodtune/internal/ui/results"
)

// FocusTarget is the panel receiving key presses.
type FocusTarget int

const (
	FocusInput FocusTarget = iota
	FocusResults
)

// ListMode selects what the result panel shows.
type ListMode int

const (
	ListRecommendations ListMode = iota
	ListLikes
)

// Defaults for Options.
const (
	DefaultVolumeStep = 0.05
	DefaultSkipStep   = 10 * time.Second
)

// Options configures the application model.
type Options struct {
	Model      string // prediction model, moodapi.ModelSimple or moodapi.ModelAdvanced
	VolumeStep float64
	SkipStep   time.Duration
	Logger     zerolog.Logger
}

// Model is the root application model.
type Model struct {
	predictor Predictor
	playback  Playback
	stateMgr  state.Interface
	notifier  *notify.Playback
	sub       *playback.Subscription
	log       zerolog.Logger

	input   textinput.Model
	spinner spinner.Model
	results results.Model
	help    helpbindings.Model

	inputKeys   *keymap.Resolver
	resultsKeys *keymap.Resolver

	predictModel string
	volumeStep   float64
	skipStep     time.Duration

	Focus      FocusTarget
	ListMode   ListMode
	Prediction *moodapi.Prediction
	Snapshot   playback.Snapshot
	Analyzing  bool
	ShowHelp   bool
	ServiceMsg string // health check outcome
	serviceOK  bool
	serviceErr bool
	ErrorMsg   string
	Width      int
	Height     int

	// seq numbers analyses so that only the latest response is applied.
	seq int
}

// New creates the application model. The notifier may be notify.Disabled.
func New(p Predictor, pb Playback, st state.Interface, n notify.Notifier, opts Options) Model {
	if opts.Model != moodapi.ModelAdvanced {
		opts.Model = moodapi.ModelSimple
	}
	if opts.VolumeStep <= 0 {
		opts.VolumeStep = DefaultVolumeStep
	}
	if opts.SkipStep <= 0 {
		opts.SkipStep = DefaultSkipStep
	}

	ti := textinput.New()
	ti.Placeholder = "How are you feeling today?"
	ti.Focus()
	ti.CharLimit = 500
	ti.Prompt = "> "

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return Model{
		predictor:    p,
		playback:     pb,
		stateMgr:     st,
		notifier:     notify.NewPlayback(n),
		sub:          pb.Subscribe(),
		log:          opts.Logger,
		input:        ti,
		spinner:      sp,
		results:      results.New(),
		help:         helpbindings.New(),
		inputKeys:    keymap.NewResolver(keymap.ForContexts("input", "global")),
		resultsKeys:  keymap.NewResolver(keymap.ForContexts("results", "playback", "global")),
		predictModel: opts.Model,
		volumeStep:   opts.VolumeStep,
		skipStep:     opts.SkipStep,
		Snapshot:     pb.Snapshot(),
		ServiceMsg:   "checking service...",
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.healthCmd(), waitForPlayback(m.sub))
}

// PredictModel returns the prediction model sent with the next analysis.
func (m Model) PredictModel() string {
	return m.predictModel
}

// Results returns the result list component.
func (m Model) Results() results.Model {
	return m.results
}
