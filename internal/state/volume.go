package state

import (
	"database/sql"
	"errors"
	"time"
)

// DefaultVolume is returned when no volume was saved yet.
const DefaultVolume = 1.0

// GetVolume returns the saved volume level.
func (m *Manager) GetVolume() (float64, error) {
	m.saveMu.Lock()
	pending := m.pending
	m.saveMu.Unlock()
	if pending != nil {
		return *pending, nil
	}

	var volume float64
	err := m.db.QueryRow(`SELECT volume FROM player_state WHERE id = 1`).Scan(&volume)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultVolume, nil
	}
	if err != nil {
		return 0, err
	}
	return volume, nil
}

// SaveVolume persists the volume level. Saves are debounced: dragging the
// volume only writes the last value.
func (m *Manager) SaveVolume(volume float64) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &volume

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			_ = saveVolume(m.db, *pending)
		}
	})
}

func saveVolume(db *sql.DB, volume float64) error {
	_, err := db.Exec(`
		INSERT INTO player_state (id, volume)
		VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET
			volume = excluded.volume
	`, volume)
	return err
}
