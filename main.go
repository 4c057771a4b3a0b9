package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/llehouerou/moodtune/internal/app"
	"github.com/llehouerou/moodtune/internal/config"
	"github.com/llehouerou/moodtune/internal/errmsg"
	"github.com/llehouerou/moodtune/internal/icons"
	"github.com/llehouerou/moodtune/internal/logging"
	"github.com/llehouerou/moodtune/internal/moodapi"
	"github.com/llehouerou/moodtune/internal/mpris"
	"github.com/llehouerou/moodtune/internal/notify"
	"github.com/llehouerou/moodtune/internal/playback"
	"github.com/llehouerou/moodtune/internal/player"
	"github.com/llehouerou/moodtune/internal/resolver"
	"github.com/llehouerou/moodtune/internal/state"
	"github.com/llehouerou/moodtune/internal/stderr"
)

// flags override the config file.
type flags struct {
	configPath string
	server     string
	model      string
	debug      bool
}

func main() {
	// go-pretty colors only on a terminal
	if fi, err := os.Stdout.Stat(); err == nil && fi.Mode()&os.ModeCharDevice == 0 {
		text.DisableColors()
	}
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:          "moodtune",
		Short:        "Describe your mood, get songs to match, play them",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runTUI(f)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "config file, loaded after the default locations")
	pf.StringVar(&f.server, "server", "", "prediction service URL")
	pf.StringVar(&f.model, "model", "", `prediction model, "simple" or "advanced"`)
	pf.BoolVar(&f.debug, "debug", false, "debug logging")

	root.AddCommand(newPredictCmd(f), newResolveCmd(f))
	return root
}

// loadConfig reads the config files and applies the flags on top.
func loadConfig(f *flags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if f.server != "" {
		cfg.Server.URL = strings.TrimSuffix(strings.TrimSpace(f.server), "/")
	}
	if f.model != "" {
		cfg.Server.Model = f.model
	}
	return cfg, nil
}

func newClient(cfg *config.Config) *moodapi.Client {
	srv := cfg.GetServerConfig()
	return moodapi.New(srv.URL, srv.Timeout())
}

func newSpeaker(pc config.PlaybackConfig) *player.Speaker {
	return player.New(
		player.WithMaxSourceBytes(pc.MaxSourceBytes()),
		player.WithProgressInterval(pc.ProgressInterval()),
	)
}

func runTUI(f *flags) error {
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}

	logPath := cfg.LogFile
	if logPath == "" {
		logPath = logging.DefaultPath()
	}
	log, logCloser, err := logging.Setup(logPath, f.debug)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logCloser.Close()

	icons.Init(cfg.Icons)

	// Capture C library output so it doesn't corrupt the TUI
	if err := stderr.Start(log); err != nil {
		log.Warn().Err(err).Msg("stderr capture unavailable")
	}
	defer stderr.Stop()

	stateMgr, err := state.Open()
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	defer stateMgr.Close()

	volume, err := stateMgr.GetVolume()
	if err != nil {
		log.Warn().Err(err).Msg(errmsg.Format(errmsg.OpVolumeLoad, err))
		volume = state.DefaultVolume
	}

	srv := cfg.GetServerConfig()
	pc := cfg.GetPlaybackConfig()
	client := newClient(cfg)
	log.Info().Str("server", client.BaseURL()).Str("model", srv.Model).Msg("starting")

	speaker := newSpeaker(pc)
	defer speaker.Close()

	coordinator := playback.New(speaker, resolver.NewAPIResolver(client, log), playback.Options{
		ResolveTimeout:     pc.ResolveTimeout(),
		LoadTimeout:        pc.LoadTimeout(),
		ShortClipThreshold: pc.ShortClipThreshold(),
		IntroSkip:          pc.IntroSkip(),
		InitialVolume:      volume,
		Logger:             log,
	})
	defer coordinator.Close()

	notifier, err := notify.Open(cfg.NotificationsEnabled())
	if err != nil {
		log.Warn().Err(err).Msg("desktop notifications unavailable")
		notifier = notify.Disabled{}
	}

	remote, err := mpris.New(coordinator, log)
	if err != nil {
		log.Warn().Err(err).Msg("MPRIS unavailable")
	} else {
		defer remote.Close()
	}

	m := app.New(client, coordinator, stateMgr, notifier, app.Options{
		Model:      srv.Model,
		VolumeStep: pc.VolumeStep,
		SkipStep:   pc.SkipStep(),
		Logger:     log,
	})

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		stderr.WriteOriginal(fmt.Sprintf("Error running program: %v\n", err))
		log.Error().Err(err).Msg("program failed")
		return err
	}
	log.Info().Msg("exiting")
	return nil
}

// consoleLogger logs to stderr for the one-shot subcommands.
func consoleLogger(debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}
