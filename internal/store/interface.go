package store

import (
	"context"
	"time"

	"github.com/oskarlind/sideline/internal/game"
)

// SaveRecord describes one stored snapshot slot.
type SaveRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Auto      bool      `json:"auto"`
}

// SaveStore persists game snapshots. All methods are safe for concurrent
// use; the snapshot given to Save/AutoSave is owned by the store from that
// point on.
type SaveStore interface {
	Save(name string, state *game.GameState) (SaveRecord, error)
	AutoSave(state *game.GameState) error
	Load(id string) (*game.GameState, error)
	LoadLatest() (*game.GameState, error)
	List() ([]SaveRecord, error)
	Delete(id string) error
	Clear() error
	Ping(ctx context.Context) error
}
