// Package resolver finds a playable audio URL for a recommended song.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/llehouerou/moodtune/internal/moodapi"
)

// ErrNoSource is returned when the lookup produced no usable URL.
var ErrNoSource = errors.New("no audio source found")

// Resolution is the outcome of a lookup. A zero URL means nothing was found.
type Resolution struct {
	URL string
}

// Resolver looks up the primary audio URL of a song.
// Implementations must honor ctx cancellation and must not retry.
type Resolver interface {
	Resolve(ctx context.Context, song moodapi.Song) (Resolution, error)
}

// AudioLookup is the subset of the service client used for resolution.
type AudioLookup interface {
	ResolveAudio(ctx context.Context, title, artist string) (*moodapi.AudioResolution, error)
}

// APIResolver resolves songs through the prediction service.
type APIResolver struct {
	lookup AudioLookup
	log    zerolog.Logger
}

// NewAPIResolver creates a resolver on top of the service client.
func NewAPIResolver(lookup AudioLookup, log zerolog.Logger) *APIResolver {
	return &APIResolver{lookup: lookup, log: log.With().Str("component", "resolver").Logger()}
}

// Resolve asks the service for a full-length stream of song.
// Transport failures, error statuses and error payloads all wrap ErrNoSource.
func (r *APIResolver) Resolve(ctx context.Context, song moodapi.Song) (Resolution, error) {
	res, err := r.lookup.ResolveAudio(ctx, song.Title, song.Artist)
	if err != nil {
		if ctx.Err() != nil {
			return Resolution{}, fmt.Errorf("%w: %w", ErrNoSource, ctx.Err())
		}
		return Resolution{}, fmt.Errorf("%w: %w", ErrNoSource, err)
	}
	if res.Error != "" {
		return Resolution{}, fmt.Errorf("%w: %s", ErrNoSource, res.Error)
	}

	u := strings.TrimSpace(res.AudioURL)
	r.log.Debug().
		Str("song", song.Title).
		Str("video", res.VideoID).
		Bool("found", u != "").
		Msg("resolved")
	return Resolution{URL: u}, nil
}

// Usable reports whether u is an absolute http(s) URL.
func Usable(u string) bool {
	if strings.TrimSpace(u) == "" {
		return false
	}
	parsed, err := url.Parse(u)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// FallbackURL returns the bundled preview of song, or "" when it is not usable.
func FallbackURL(song moodapi.Song) string {
	u := strings.TrimSpace(song.PreviewAudio)
	if !Usable(u) {
		return ""
	}
	return u
}
