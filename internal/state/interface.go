// internal/state/interface.go
package state

import "github.com/llehouerou/moodtune/internal/moodapi"

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	GetVolume() (float64, error)
	SaveVolume(volume float64)
	ToggleLike(song moodapi.Song, mood string) (bool, error)
	IsLiked(song moodapi.Song) (bool, error)
	ListLikes() ([]LikedSong, error)
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
