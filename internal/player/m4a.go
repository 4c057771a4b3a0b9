package player

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/alac"
	"github.com/llehouerou/go-faad2"
	"github.com/llehouerou/go-m4a"
)

// m4aStream decodes AAC or ALAC samples out of an MP4 container.
// iTunes previews and most YouTube audio-only streams land here.
type m4aStream struct {
	container *m4a.Reader
	closer    io.Closer
	codec     m4a.CodecType
	err       error
	next      int // next container sample index
	totalLen  int
	bits      int
	channels  int

	aac  *faad2.Decoder
	alac *alac.Alac

	// decoded frames not yet handed to beep
	pending [][2]float64
	cursor  int
}

// decodeM4A opens an MP4 container and returns a streamer with the codec name.
func decodeM4A(rc io.ReadSeekCloser) (beep.StreamSeekCloser, beep.Format, string, error) {
	container, err := m4a.Open(rc)
	if err != nil {
		return nil, beep.Format{}, "", err
	}

	codec := container.Codec()
	sampleRate := container.SampleRate()
	channels := container.Channels()

	precision := 2
	if codec == m4a.CodecALAC && container.SampleSize() == 24 {
		precision = 3
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 2, // mono is duplicated
		Precision:   precision,
	}

	d := &m4aStream{
		container: container,
		closer:    rc,
		codec:     codec,
		totalLen:  int(container.Duration().Seconds() * float64(sampleRate)),
		bits:      int(container.SampleSize()),
		channels:  int(channels),
	}

	switch codec {
	case m4a.CodecAAC:
		decoder, err := faad2.NewDecoder(context.Background())
		if err != nil {
			return nil, beep.Format{}, "", err
		}
		if err := decoder.Init(context.Background(), container.CodecConfig()); err != nil {
			decoder.Close(context.Background())
			return nil, beep.Format{}, "", err
		}
		d.aac = decoder

	case m4a.CodecALAC:
		decoder, err := alac.NewWithConfig(alac.Config{
			SampleRate:  int(sampleRate),
			SampleSize:  int(container.SampleSize()),
			NumChannels: int(channels),
			FrameSize:   4096,
		})
		if err != nil {
			return nil, beep.Format{}, "", err
		}
		d.alac = decoder

	case m4a.CodecUnknown:
		return nil, beep.Format{}, "", errors.New("unsupported codec in M4A container")
	}

	return d, format, codec.String(), nil
}

// Stream reads audio samples into the provided buffer.
func (d *m4aStream) Stream(samples [][2]float64) (n int, ok bool) {
	if d.err != nil {
		return 0, false
	}

	for n < len(samples) {
		if d.cursor < len(d.pending) {
			copied := copy(samples[n:], d.pending[d.cursor:])
			d.cursor += copied
			n += copied
			continue
		}

		if d.next >= d.container.SampleCount() {
			return n, n > 0
		}

		packet, err := d.container.ReadSample(d.next)
		if err != nil {
			d.err = err
			return n, n > 0
		}
		d.next++

		switch d.codec {
		case m4a.CodecAAC:
			pcm, err := d.aac.Decode(context.Background(), packet)
			if err != nil {
				d.err = err
				return n, n > 0
			}
			d.pending = pcm16ToFrames(pcm, d.channels)
		case m4a.CodecALAC:
			raw := d.alac.Decode(packet)
			if d.bits == 24 {
				d.pending = pcm24ToFrames(raw, d.channels)
			} else {
				d.pending = pcm16LEToFrames(raw, d.channels)
			}
		case m4a.CodecUnknown:
			d.err = errors.New("unsupported codec")
			return n, n > 0
		}
		d.cursor = 0
	}

	return n, true
}

// Err returns any error that occurred during streaming.
func (d *m4aStream) Err() error {
	return d.err
}

// Len returns the total number of frames.
func (d *m4aStream) Len() int {
	return d.totalLen
}

// Position returns the current frame position.
func (d *m4aStream) Position() int {
	pos := d.container.SampleTime(d.next)
	return int(pos.Seconds() * float64(d.container.SampleRate()))
}

// Seek moves to the container sample covering frame p.
func (d *m4aStream) Seek(p int) error {
	p = min(max(p, 0), d.totalLen)
	pos := time.Duration(float64(p) / float64(d.container.SampleRate()) * float64(time.Second))

	d.next = d.container.SeekToTime(pos)
	d.pending = nil
	d.cursor = 0
	d.err = nil
	return nil
}

// Close releases the decoder and the body.
func (d *m4aStream) Close() error {
	if d.aac != nil {
		d.aac.Close(context.Background())
	}
	return d.closer.Close()
}

func pcm16ToFrames(pcm []int16, channels int) [][2]float64 {
	if channels != 2 {
		frames := make([][2]float64, len(pcm))
		for i, sample := range pcm {
			v := float64(sample) / 32768.0
			frames[i] = [2]float64{v, v}
		}
		return frames
	}
	frames := make([][2]float64, len(pcm)/2)
	for i := range frames {
		frames[i][0] = float64(pcm[i*2]) / 32768.0
		frames[i][1] = float64(pcm[i*2+1]) / 32768.0
	}
	return frames
}

func pcm16LEToFrames(data []byte, channels int) [][2]float64 {
	stride := 2 * channels
	frames := make([][2]float64, len(data)/stride)
	for i := range frames {
		off := i * stride
		left := int16(data[off]) | int16(data[off+1])<<8
		right := left
		if channels == 2 {
			right = int16(data[off+2]) | int16(data[off+3])<<8
		}
		frames[i] = [2]float64{float64(left) / 32768.0, float64(right) / 32768.0}
	}
	return frames
}

func pcm24ToFrames(data []byte, channels int) [][2]float64 {
	stride := 3 * channels
	frames := make([][2]float64, len(data)/stride)
	for i := range frames {
		off := i * stride
		left := int24(data[off:])
		right := left
		if channels == 2 {
			right = int24(data[off+3:])
		}
		frames[i] = [2]float64{float64(left) / 8388608.0, float64(right) / 8388608.0}
	}
	return frames
}

// int24 reads a little-endian signed 24-bit sample.
func int24(b []byte) int32 {
	v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
	if v&0x800000 != 0 {
		v |= ^0xFFFFFF
	}
	return v
}
