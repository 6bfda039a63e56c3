package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/oskarlind/sideline/internal/game"
)

// ErrSaveNotFound means no slot exists with the requested id.
var ErrSaveNotFound = errors.New("save not found")

// autoSaveKeep is how many autosave slots survive; older ones are pruned.
const autoSaveKeep = 10

// store handles all database operations for snapshots.
type store struct {
	db    *sql.DB
	mu    sync.RWMutex
	clock clockwork.Clock
}

// New creates a new SaveStore over the given database.
func New(db *sql.DB, clock clockwork.Clock) SaveStore {
	return &store{db: db, clock: clock}
}

// Save writes a named snapshot slot and returns its record.
func (s *store) Save(name string, state *game.GameState) (SaveRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(name, state, false)
}

// AutoSave writes an unnamed slot and prunes old autosaves down to the
// retention bound.
func (s *store) AutoSave(state *game.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.insert("autosave", state, true); err != nil {
		return err
	}
	_, err := s.db.Exec(`
		DELETE FROM saves WHERE auto = 1 AND id NOT IN (
			SELECT id FROM saves WHERE auto = 1 ORDER BY created_at DESC LIMIT ?
		)`, autoSaveKeep)
	if err != nil {
		return fmt.Errorf("failed to prune autosaves: %w", err)
	}
	return nil
}

// Load decodes the snapshot stored under id.
func (s *store) Load(id string) (*game.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var blob []byte
	err := s.db.QueryRow("SELECT state_blob FROM saves WHERE id = ?", id).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSaveNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read save %s: %w", id, err)
	}
	return decodeState(blob)
}

// LoadLatest decodes the most recently written slot, manual or auto.
func (s *store) LoadLatest() (*game.GameState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var blob []byte
	err := s.db.QueryRow("SELECT state_blob FROM saves ORDER BY created_at DESC LIMIT 1").Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSaveNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read latest save: %w", err)
	}
	return decodeState(blob)
}

// List returns all slot records, newest first.
func (s *store) List() ([]SaveRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, created_at, auto FROM saves ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}
	defer rows.Close()

	var records []SaveRecord
	for rows.Next() {
		var (
			rec     SaveRecord
			created int64
			auto    int
		)
		if err := rows.Scan(&rec.ID, &rec.Name, &created, &auto); err != nil {
			return nil, fmt.Errorf("failed to scan save row: %w", err)
		}
		rec.CreatedAt = time.Unix(created, 0).UTC()
		rec.Auto = auto != 0
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Delete removes one slot.
func (s *store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM saves WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete save %s: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrSaveNotFound, id)
	}
	return nil
}

// Clear removes every slot.
func (s *store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM saves")
	return err
}

// Ping reports database health.
func (s *store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// insert assumes the write lock is held.
func (s *store) insert(name string, state *game.GameState, auto bool) (SaveRecord, error) {
	blob, err := msgpack.Marshal(state)
	if err != nil {
		return SaveRecord{}, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	rec := SaveRecord{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: s.clock.Now().UTC(),
		Auto:      auto,
	}
	autoFlag := 0
	if auto {
		autoFlag = 1
	}
	_, err = s.db.Exec(
		"INSERT INTO saves (id, name, created_at, auto, state_blob) VALUES (?, ?, ?, ?, ?)",
		rec.ID, rec.Name, rec.CreatedAt.Unix(), autoFlag, blob,
	)
	if err != nil {
		return SaveRecord{}, fmt.Errorf("failed to write save: %w", err)
	}
	return rec, nil
}

func decodeState(blob []byte) (*game.GameState, error) {
	var state game.GameState
	if err := msgpack.Unmarshal(blob, &state); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	game.NormalizeLoaded(&state)
	return &state, nil
}
