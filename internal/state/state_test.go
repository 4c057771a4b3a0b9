package state

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/llehouerou/moodtune/internal/moodapi"
)

// setupTestManager opens an in-memory database with the schema initialized.
func setupTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := OpenPath(":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	t.Cleanup(func() { _ = m.db.Close() })
	return m
}

var (
	happy    = moodapi.Song{Title: "Happy", Artist: "Pharrell Williams", PreviewAudio: "https://cdn.example/happy.m4a"}
	sunshine = moodapi.Song{Title: "Walking on Sunshine", Artist: "Katrina and the Waves"}
)

func TestInitSchema_Idempotent(t *testing.T) {
	m := setupTestManager(t)

	if err := initSchema(m.db); err != nil {
		t.Fatalf("second initSchema failed: %v", err)
	}

	var version int
	if err := m.db.QueryRow(`SELECT MAX(version) FROM schema_version`).Scan(&version); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("version = %d, want %d", version, currentSchemaVersion)
	}
}

func TestGetVolume_Empty(t *testing.T) {
	m := setupTestManager(t)

	v, err := m.GetVolume()
	if err != nil {
		t.Fatalf("GetVolume failed: %v", err)
	}
	if v != DefaultVolume {
		t.Errorf("volume = %v, want %v", v, DefaultVolume)
	}
}

func TestSaveVolume_PendingIsVisible(t *testing.T) {
	m := setupTestManager(t)

	m.SaveVolume(0.3)

	v, err := m.GetVolume()
	if err != nil {
		t.Fatalf("GetVolume failed: %v", err)
	}
	if v != 0.3 {
		t.Errorf("volume = %v, want 0.3", v)
	}
}

func TestSaveVolume_Debounced(t *testing.T) {
	m := setupTestManager(t)

	m.SaveVolume(0.9)
	m.SaveVolume(0.6)
	m.SaveVolume(0.4)
	time.Sleep(saveDebounce + 200*time.Millisecond)

	var count int
	var volume float64
	if err := m.db.QueryRow(`SELECT COUNT(*), MAX(volume) FROM player_state`).Scan(&count, &volume); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if count != 1 || volume != 0.4 {
		t.Errorf("player_state = (%d rows, %v), want (1, 0.4)", count, volume)
	}
}

func TestClose_FlushesPendingVolume(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moodtune.db")

	m, err := OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	m.SaveVolume(0.25)
	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := OpenPath(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	v, err := reopened.GetVolume()
	if err != nil {
		t.Fatalf("GetVolume failed: %v", err)
	}
	if v != 0.25 {
		t.Errorf("volume = %v, want 0.25", v)
	}
}

func TestToggleLike(t *testing.T) {
	m := setupTestManager(t)

	liked, err := m.ToggleLike(happy, "joy")
	if err != nil {
		t.Fatalf("ToggleLike failed: %v", err)
	}
	if !liked {
		t.Error("first toggle should like")
	}

	ok, err := m.IsLiked(happy)
	if err != nil || !ok {
		t.Errorf("IsLiked = %v, %v; want true", ok, err)
	}

	liked, err = m.ToggleLike(happy, "joy")
	if err != nil {
		t.Fatalf("ToggleLike failed: %v", err)
	}
	if liked {
		t.Error("second toggle should unlike")
	}

	ok, _ = m.IsLiked(happy)
	if ok {
		t.Error("song should no longer be liked")
	}
}

func TestToggleLike_KeyedByTitleAndArtist(t *testing.T) {
	m := setupTestManager(t)

	cover := moodapi.Song{Title: "Happy", Artist: "Some Cover Band"}
	if _, err := m.ToggleLike(happy, "joy"); err != nil {
		t.Fatal(err)
	}

	ok, _ := m.IsLiked(cover)
	if ok {
		t.Error("same title by another artist must not be liked")
	}
}

func TestListLikes(t *testing.T) {
	m := setupTestManager(t)

	if _, err := m.ToggleLike(happy, "joy"); err != nil {
		t.Fatal(err)
	}
	if _, err := m.ToggleLike(sunshine, ""); err != nil {
		t.Fatal(err)
	}

	likes, err := m.ListLikes()
	if err != nil {
		t.Fatalf("ListLikes failed: %v", err)
	}
	if len(likes) != 2 {
		t.Fatalf("len(likes) = %d, want 2", len(likes))
	}

	// Same second: insertion order breaks the tie, newest first.
	if likes[0].Song.Title != sunshine.Title {
		t.Errorf("likes[0] = %q, want most recent first", likes[0].Song.Title)
	}
	if likes[1].Song.PreviewAudio != happy.PreviewAudio {
		t.Errorf("PreviewAudio = %q, want %q", likes[1].Song.PreviewAudio, happy.PreviewAudio)
	}
	if likes[1].Mood != "joy" {
		t.Errorf("Mood = %q, want joy", likes[1].Mood)
	}
	if likes[0].Song.Image != "" || likes[0].Mood != "" {
		t.Errorf("NULL columns should read back empty, got %+v", likes[0])
	}
}

func TestWithTx_RollbackOnError(t *testing.T) {
	m := setupTestManager(t)
	boom := errors.New("boom")

	err := withTx(m.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO player_state (id, volume) VALUES (1, 0.1)`); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("withTx error = %v, want boom", err)
	}

	v, _ := m.GetVolume()
	if v != DefaultVolume {
		t.Errorf("volume = %v, want rollback to leave default", v)
	}
}

func TestMock_ToggleLike(t *testing.T) {
	m := NewMock()

	liked, _ := m.ToggleLike(happy, "joy")
	if !liked {
		t.Error("first toggle should like")
	}
	likes, _ := m.ListLikes()
	if len(likes) != 1 || likes[0].Mood != "joy" {
		t.Errorf("likes = %+v", likes)
	}
	liked, _ = m.ToggleLike(happy, "joy")
	if liked {
		t.Error("second toggle should unlike")
	}
	if ok, _ := m.IsLiked(happy); ok {
		t.Error("song should no longer be liked")
	}
}
