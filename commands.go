package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/llehouerou/moodtune/internal/moodapi"
	"github.com/llehouerou/moodtune/internal/playback"
	"github.com/llehouerou/moodtune/internal/resolver"
	"github.com/llehouerou/moodtune/internal/ui/playerbar"
)

func newPredictCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "predict <text>",
		Short: "Analyze a mood description and list the recommendations",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(f)
			if err != nil {
				return err
			}
			client := newClient(cfg)
			model := cfg.GetServerConfig().Model

			pred, err := client.Predict(cmd.Context(), strings.Join(args, " "), model)
			if err != nil {
				return fmt.Errorf("predict: %w", err)
			}
			printPrediction(cmd.OutOrStdout(), pred)
			return nil
		},
	}
}

func printPrediction(w io.Writer, pred *moodapi.Prediction) {
	fmt.Fprintf(w, "Mood: %s (%.0f%%)\n", text.Bold.Sprint(pred.Mood), pred.Confidence*100)
	if len(pred.Genres) > 0 {
		fmt.Fprintf(w, "Genres: %s\n", strings.Join(pred.Genres, ", "))
	}
	if pred.PlaylistLink != "" {
		fmt.Fprintf(w, "Playlist: %s\n", pred.PlaylistLink)
	}

	if len(pred.Emotions) > 0 {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Emotion", "Score"})
		for _, e := range pred.Emotions {
			t.AppendRow(table.Row{e.Label, fmt.Sprintf("%.2f", e.Score)})
		}
		t.Render()
	}

	if len(pred.Recommendations) == 0 {
		fmt.Fprintln(w, "No recommendations")
		return
	}
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Title", "Artist", "Preview"})
	for i, s := range pred.Recommendations {
		preview := text.FgHiBlack.Sprint("none")
		if resolver.FallbackURL(s) != "" {
			preview = text.FgGreen.Sprint("yes")
		}
		t.AppendRow(table.Row{i + 1, s.Title, s.Artist, preview})
	}
	t.Render()
}

type resolveFlags struct {
	preview string
	open    bool
}

func newResolveCmd(f *flags) *cobra.Command {
	rf := &resolveFlags{}
	cmd := &cobra.Command{
		Use:   "resolve <title> <artist>",
		Short: "Look up the full-length audio of one song",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			song := moodapi.Song{Title: args[0], Artist: args[1], PreviewAudio: rf.preview}
			return runResolve(cmd.Context(), cmd.OutOrStdout(), f, rf, song)
		},
	}
	cmd.Flags().StringVar(&rf.preview, "preview", "", "preview clip URL to fall back to")
	cmd.Flags().BoolVar(&rf.open, "open", false, "fetch and decode the audio without playing it")
	return cmd
}

func runResolve(ctx context.Context, w io.Writer, f *flags, rf *resolveFlags, song moodapi.Song) error {
	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}
	log := consoleLogger(f.debug)
	pc := cfg.GetPlaybackConfig()

	rctx, cancel := context.WithTimeout(ctx, pc.ResolveTimeout())
	defer cancel()
	start := time.Now()
	res, err := resolver.NewAPIResolver(newClient(cfg), log).Resolve(rctx, song)

	url := res.URL
	source := "resolved"
	switch {
	case err != nil || !resolver.Usable(url):
		if err == nil {
			err = resolver.ErrNoSource
		}
		fmt.Fprintf(w, "%s %v\n", text.FgHiRed.Sprint("resolve failed:"), err)
		url = resolver.FallbackURL(song)
		source = "preview"
		if url == "" {
			return playback.ErrNoPlayableSource
		}
	default:
		fmt.Fprintf(w, "resolved in %s\n", time.Since(start).Round(time.Millisecond))
	}
	fmt.Fprintf(w, "%s: %s\n", source, url)

	if !rf.open {
		return nil
	}

	octx, cancel := context.WithTimeout(ctx, pc.LoadTimeout())
	defer cancel()
	src, err := newSpeaker(pc).Open(octx, url)
	if err != nil {
		return fmt.Errorf("open %s: %w", source, err)
	}
	defer src.Close()
	fmt.Fprintf(w, "format: %s, duration: %s\n", src.Format(), playerbar.FormatDuration(src.Duration()))
	return nil
}
