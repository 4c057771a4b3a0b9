// internal/state/mock.go
package state

import (
	"slices"
	"sync"
	"time"

	"github.com/llehouerou/moodtune/internal/moodapi"
)

// Mock is a test double for Manager.
type Mock struct {
	mu     sync.Mutex
	volume float64
	likes  []LikedSong
	closed bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{volume: DefaultVolume}
}

func (m *Mock) GetVolume() (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume, nil
}

func (m *Mock) SaveVolume(volume float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = volume
}

func (m *Mock) ToggleLike(song moodapi.Song, mood string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexLocked(song)
	if i >= 0 {
		m.likes = slices.Delete(m.likes, i, i+1)
		return false, nil
	}
	m.likes = slices.Insert(m.likes, 0, LikedSong{Song: song, Mood: mood, LikedAt: time.Now()})
	return true, nil
}

func (m *Mock) IsLiked(song moodapi.Song) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.indexLocked(song) >= 0, nil
}

func (m *Mock) ListLikes() ([]LikedSong, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.likes), nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *Mock) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

func (m *Mock) indexLocked(song moodapi.Song) int {
	return slices.IndexFunc(m.likes, func(l LikedSong) bool {
		return l.Song.Title == song.Title && l.Song.Artist == song.Artist
	})
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
