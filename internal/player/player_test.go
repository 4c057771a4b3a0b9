package player

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStreamer is a decoder that has stopped with err.
type failingStreamer struct {
	err error
}

func (f *failingStreamer) Stream(_ [][2]float64) (int, bool) { return 0, false }
func (f *failingStreamer) Err() error                        { return f.err }
func (f *failingStreamer) Len() int                          { return 0 }
func (f *failingStreamer) Position() int                     { return 0 }
func (f *failingStreamer) Seek(_ int) error                  { return nil }
func (f *failingStreamer) Close() error                      { return nil }

// loaded returns a speaker bound to a source as Play would leave it,
// without touching the audio output.
func loaded(decodeErr error, ev Events) (*Speaker, chan struct{}) {
	s := New()
	token := make(chan struct{})
	s.current = &stream{url: "https://audio.example/a.mp3", codec: containerMP3, streamer: &failingStreamer{err: decodeErr}}
	s.events = ev
	s.state = Playing
	s.stopTick = token
	return s, token
}

func TestHandleFinished_CleanEndReportsEnded(t *testing.T) {
	var ended int
	var failed error
	s, token := loaded(nil, Events{
		OnEnded: func() { ended++ },
		OnError: func(err error) { failed = err },
	})

	s.handleFinished(token)

	assert.Equal(t, 1, ended)
	assert.NoError(t, failed)
	assert.Equal(t, Paused, s.State())
}

func TestHandleFinished_DecodeErrorReportsError(t *testing.T) {
	errCorrupt := errors.New("corrupt frame")
	var ended int
	var failed error
	s, token := loaded(errCorrupt, Events{
		OnEnded: func() { ended++ },
		OnError: func(err error) { failed = err },
	})

	s.handleFinished(token)

	assert.Zero(t, ended, "a decode failure is not an end of stream")
	require.ErrorIs(t, failed, errCorrupt)
	assert.Contains(t, failed.Error(), "decode MP3")
}

func TestHandleFinished_StaleTokenIgnored(t *testing.T) {
	var calls int
	s, _ := loaded(errors.New("corrupt frame"), Events{
		OnEnded: func() { calls++ },
		OnError: func(error) { calls++ },
	})

	s.handleFinished(make(chan struct{}))

	assert.Zero(t, calls)
	assert.Equal(t, Playing, s.State())
}
