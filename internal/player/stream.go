package player

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/wav"
)

var (
	// ErrUnsupportedFormat is returned by Open when the container or codec
	// cannot be decoded.
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	// ErrSourceTooLarge is returned by Open when the body exceeds the limit.
	ErrSourceTooLarge = errors.New("audio source too large")
)

// Container formats recognised from magic bytes.
const (
	containerUnknown = ""
	containerMP3     = "MP3"
	containerFLAC    = "FLAC"
	containerWAV     = "WAV"
	containerMP4     = "MP4"
	containerOgg     = "OGG"
	containerWebM    = "WEBM"
)

// stream is a decoded source held in memory.
type stream struct {
	url      string
	codec    string
	streamer beep.StreamSeekCloser
	format   beep.Format
}

func (s *stream) URL() string    { return s.url }
func (s *stream) Format() string { return s.codec }

func (s *stream) Duration() time.Duration {
	return s.format.SampleRate.D(s.streamer.Len())
}

func (s *stream) Close() error {
	return s.streamer.Close()
}

// memFile adapts an in-memory body to the ReadSeekCloser the decoders expect.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

// Open fetches url, sniffs its container and prepares a decoder.
// It does not touch the output, so it is safe to call from any goroutine.
func (s *Speaker) Open(ctx context.Context, url string) (Source, error) {
	data, err := s.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	container, offset := sniffContainer(data)
	rc := memFile{bytes.NewReader(data[offset:])}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		codec    = container
	)
	switch container {
	case containerMP3:
		streamer, format, err = decodeMP3(rc)
	case containerFLAC:
		streamer, format, err = flac.Decode(rc)
	case containerWAV:
		streamer, format, err = wav.Decode(rc)
	case containerMP4:
		streamer, format, codec, err = decodeM4A(rc)
	case containerUnknown:
		return nil, ErrUnsupportedFormat
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, container)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", container, err)
	}

	return &stream{url: url, codec: codec, streamer: streamer, format: format}, nil
}

func (s *Speaker) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}
	if resp.ContentLength > s.maxBytes {
		return nil, s.tooLarge()
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, s.tooLarge()
	}
	return data, nil
}

func (s *Speaker) tooLarge() error {
	return fmt.Errorf("%w: limit is %s", ErrSourceTooLarge, humanize.IBytes(uint64(s.maxBytes)))
}

// sniffContainer identifies the container from its first bytes. The returned
// offset skips a leading ID3v2 tag, which some taggers also prepend to FLAC.
func sniffContainer(data []byte) (string, int) {
	offset := id3v2Size(data)
	body := data[offset:]

	switch {
	case bytes.HasPrefix(body, []byte("fLaC")):
		return containerFLAC, offset
	case offset > 0:
		return containerMP3, offset
	case len(body) >= 12 && string(body[0:4]) == "RIFF" && string(body[8:12]) == "WAVE":
		return containerWAV, 0
	case len(body) >= 8 && string(body[4:8]) == "ftyp":
		return containerMP4, 0
	case bytes.HasPrefix(body, []byte("OggS")):
		return containerOgg, 0
	case bytes.HasPrefix(body, []byte{0x1A, 0x45, 0xDF, 0xA3}):
		return containerWebM, 0
	case len(body) >= 2 && body[0] == 0xFF && body[1]&0xE0 == 0xE0:
		return containerMP3, 0
	}
	return containerUnknown, 0
}

// id3v2Size returns the length of a leading ID3v2 tag, or 0.
func id3v2Size(data []byte) int {
	if len(data) < 10 || string(data[0:3]) != "ID3" {
		return 0
	}
	// ID3v2 size is stored as a syncsafe integer in bytes 6-9
	// Each byte only uses 7 bits (bit 7 is always 0)
	size := int(data[6])<<21 | int(data[7])<<14 | int(data[8])<<7 | int(data[9])
	total := 10 + size
	if total > len(data) {
		return 0
	}
	return total
}
