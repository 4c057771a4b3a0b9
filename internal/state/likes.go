package state

import (
	"database/sql"
	"time"

	"github.com/llehouerou/moodtune/internal/moodapi"
)

// LikedSong is a song the user liked, with the mood it was recommended for.
type LikedSong struct {
	Song    moodapi.Song
	Mood    string
	LikedAt time.Time
}

// ToggleLike likes song, or unlikes it when already liked. It returns the
// new liked status.
func (m *Manager) ToggleLike(song moodapi.Song, mood string) (bool, error) {
	var liked bool
	err := withTx(m.db, func(tx *sql.Tx) error {
		res, err := tx.Exec(`DELETE FROM liked_songs WHERE title = ? AND artist = ?`, song.Title, song.Artist)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		_, err = tx.Exec(`
			INSERT INTO liked_songs (title, artist, image, preview_audio, link, mood, liked_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, song.Title, song.Artist,
			nullString(song.Image), nullString(song.PreviewAudio), nullString(song.Link),
			nullString(mood), time.Now().Unix())
		if err != nil {
			return err
		}
		liked = true
		return nil
	})
	return liked, err
}

// ListLikes returns liked songs, most recent first.
func (m *Manager) ListLikes() ([]LikedSong, error) {
	rows, err := m.db.Query(`
		SELECT title, artist, image, preview_audio, link, mood, liked_at
		FROM liked_songs
		ORDER BY liked_at DESC, rowid DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var likes []LikedSong
	for rows.Next() {
		var (
			l                          LikedSong
			image, preview, link, mood sql.NullString
			likedAt                    int64
		)
		if err := rows.Scan(&l.Song.Title, &l.Song.Artist, &image, &preview, &link, &mood, &likedAt); err != nil {
			return nil, err
		}
		l.Song.Image = image.String
		l.Song.PreviewAudio = preview.String
		l.Song.Link = link.String
		l.Mood = mood.String
		l.LikedAt = time.Unix(likedAt, 0)
		likes = append(likes, l)
	}
	return likes, rows.Err()
}

// IsLiked reports whether song is liked.
func (m *Manager) IsLiked(song moodapi.Song) (bool, error) {
	var n int
	err := m.db.QueryRow(
		`SELECT COUNT(*) FROM liked_songs WHERE title = ? AND artist = ?`,
		song.Title, song.Artist,
	).Scan(&n)
	return n > 0, err
}
