package store

import (
	"context"
	"sync"

	"github.com/oskarlind/sideline/internal/game"
)

// Mock is a mock implementation of the SaveStore interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies for method calls
	SaveFunc       func(name string, state *game.GameState) (SaveRecord, error)
	AutoSaveFunc   func(state *game.GameState) error
	LoadFunc       func(id string) (*game.GameState, error)
	LoadLatestFunc func() (*game.GameState, error)
	ListFunc       func() ([]SaveRecord, error)
	DeleteFunc     func(id string) error
	ClearFunc      func() error
	PingFunc       func(ctx context.Context) error

	// Call records
	SaveCalls     []string
	AutoSaveCalls int
	LoadCalls     []string
	DeleteCalls   []string
	ClearCalls    int
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Save(name string, state *game.GameState) (SaveRecord, error) {
	m.mu.Lock()
	m.SaveCalls = append(m.SaveCalls, name)
	m.mu.Unlock()
	if m.SaveFunc != nil {
		return m.SaveFunc(name, state)
	}
	return SaveRecord{ID: "mock-save", Name: name}, nil
}

func (m *Mock) AutoSave(state *game.GameState) error {
	m.mu.Lock()
	m.AutoSaveCalls++
	m.mu.Unlock()
	if m.AutoSaveFunc != nil {
		return m.AutoSaveFunc(state)
	}
	return nil
}

func (m *Mock) Load(id string) (*game.GameState, error) {
	m.mu.Lock()
	m.LoadCalls = append(m.LoadCalls, id)
	m.mu.Unlock()
	if m.LoadFunc != nil {
		return m.LoadFunc(id)
	}
	return nil, ErrSaveNotFound
}

func (m *Mock) LoadLatest() (*game.GameState, error) {
	if m.LoadLatestFunc != nil {
		return m.LoadLatestFunc()
	}
	return nil, ErrSaveNotFound
}

func (m *Mock) List() ([]SaveRecord, error) {
	if m.ListFunc != nil {
		return m.ListFunc()
	}
	return nil, nil
}

func (m *Mock) Delete(id string) error {
	m.mu.Lock()
	m.DeleteCalls = append(m.DeleteCalls, id)
	m.mu.Unlock()
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil
}

func (m *Mock) Clear() error {
	m.mu.Lock()
	m.ClearCalls++
	m.mu.Unlock()
	if m.ClearFunc != nil {
		return m.ClearFunc()
	}
	return nil
}

func (m *Mock) Ping(ctx context.Context) error {
	if m.PingFunc != nil {
		return m.PingFunc(ctx)
	}
	return nil
}
