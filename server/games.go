package server

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kz4killua/chess-ai/position"
)

var ErrGameNotFound = errors.New("game not found")

// Game is a human-versus-engine session. mu guards every field below it.
type Game struct {
	ID string

	mu          sync.Mutex
	Board       *position.Board
	EngineWhite bool
	Depth       int
	Moves       []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EngineToMove reports whether it is the engine's turn.
func (g *Game) EngineToMove() bool {
	return g.Board.WhiteToMove() == g.EngineWhite
}

type Manager struct {
	mu    sync.RWMutex
	games map[string]*Game
}

func NewManager() *Manager {
	return &Manager{games: make(map[string]*Game)}
}

// newGame builds a session. It is not visible to Get until Add is called.
func newGame(board *position.Board, engineWhite bool, depth int) *Game {
	now := time.Now()
	return &Game{
		ID:          uuid.NewString(),
		Board:       board,
		EngineWhite: engineWhite,
		Depth:       depth,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (m *Manager) Add(g *Game) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[g.ID] = g
}

func (m *Manager) Get(id string) (*Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return g, nil
}
