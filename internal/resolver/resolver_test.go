package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/moodtune/internal/moodapi"
)

type fakeLookup struct {
	res *moodapi.AudioResolution
	err error

	title, artist string
}

func (f *fakeLookup) ResolveAudio(ctx context.Context, title, artist string) (*moodapi.AudioResolution, error) {
	f.title, f.artist = title, artist
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.res, f.err
}

var happy = moodapi.Song{Title: "Happy", Artist: "Pharrell Williams", PreviewAudio: "https://cdn.example/happy.m4a"}

func TestResolve_Found(t *testing.T) {
	f := &fakeLookup{res: &moodapi.AudioResolution{AudioURL: " https://media.example/a "}}
	r := NewAPIResolver(f, zerolog.Nop())

	res, err := r.Resolve(context.Background(), happy)

	require.NoError(t, err)
	assert.Equal(t, "https://media.example/a", res.URL)
	assert.Equal(t, "Happy", f.title)
	assert.Equal(t, "Pharrell Williams", f.artist)
}

func TestResolve_EmptyURL(t *testing.T) {
	r := NewAPIResolver(&fakeLookup{res: &moodapi.AudioResolution{}}, zerolog.Nop())

	res, err := r.Resolve(context.Background(), happy)

	require.NoError(t, err)
	assert.Empty(t, res.URL)
}

func TestResolve_Failures(t *testing.T) {
	tests := []struct {
		name string
		f    *fakeLookup
	}{
		{"transport", &fakeLookup{err: errors.New("connection refused")}},
		{"status", &fakeLookup{err: &moodapi.StatusError{Code: 500, Detail: "boom"}}},
		{"payload error", &fakeLookup{res: &moodapi.AudioResolution{Error: "Video unavailable"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAPIResolver(tt.f, zerolog.Nop()).Resolve(context.Background(), happy)
			assert.ErrorIs(t, err, ErrNoSource)
		})
	}
}

func TestResolve_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewAPIResolver(&fakeLookup{}, zerolog.Nop()).Resolve(ctx, happy)

	assert.ErrorIs(t, err, ErrNoSource)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUsable(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://cdn.example/a.m4a", true},
		{"http://localhost:8000/a.mp3", true},
		{"", false},
		{"   ", false},
		{"/relative/path.mp3", false},
		{"ftp://example.com/a.mp3", false},
		{"https://", false},
		{"://bad", false},
	}
	for _, tt := range tests {
		if got := Usable(tt.url); got != tt.want {
			t.Errorf("Usable(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestFallbackURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example/happy.m4a", FallbackURL(happy))
	assert.Empty(t, FallbackURL(moodapi.Song{Title: "x"}))
	assert.Empty(t, FallbackURL(moodapi.Song{Title: "x", PreviewAudio: "null"}))
}
