package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"igo/internal/domain/game"
	"igo/internal/domain/gotypes"
	errs "igo/internal/errors"
	"igo/internal/statuses"
)

// MemoryGameStore keeps games in process memory. Used without MONGO_URI and in tests.
type MemoryGameStore struct {
	mu    sync.RWMutex
	games map[string]game.Game
	sgf   map[string]cachedSGF
}

type cachedSGF struct {
	text      string
	moveCount int
}

func NewMemoryGameStore() *MemoryGameStore {
	return &MemoryGameStore{
		games: make(map[string]game.Game),
		sgf:   make(map[string]cachedSGF),
	}
}

func (m *MemoryGameStore) GenerateGameKeys(ctx context.Context) (string, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for {
		secret := uuid.New().String()
		public := generateHash(secret)
		if _, err := m.findByPublicKey(public); err != nil {
			return secret, public, nil
		}
	}
}

func (m *MemoryGameStore) PutGame(ctx context.Context, gameData game.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	gameData.Moves = append([]game.Move{}, gameData.Moves...)
	m.games[gameData.GameKeySecret] = gameData
	return nil
}

func (m *MemoryGameStore) GetGameByGameKey(ctx context.Context, gameKey string) (game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.games[gameKey]
	if !ok {
		return game.Game{}, errs.ErrGameNotFound
	}
	return copyGame(g), nil
}

func (m *MemoryGameStore) GetGameByPublicKey(ctx context.Context, gameKeyPublic string) (game.Game, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.findByPublicKey(gameKeyPublic)
}

func (m *MemoryGameStore) findByPublicKey(gameKeyPublic string) (game.Game, error) {
	for _, g := range m.games {
		if g.GameKeyPublic == gameKeyPublic && g.Status != statuses.StatusCompleted {
			return copyGame(g), nil
		}
	}
	return game.Game{}, errs.ErrGameNotFound
}

func (m *MemoryGameStore) SetPlayer(ctx context.Context, gameKey string, color gotypes.Player, playerID string, status string) (game.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[gameKey]
	if !ok {
		return game.Game{}, errs.ErrGameNotFound
	}
	seat := &g.PlayerBlack
	if color == gotypes.White {
		seat = &g.PlayerWhite
	}
	if *seat != "" {
		return game.Game{}, errs.ErrGameFull
	}
	*seat = playerID
	g.Status = status
	if status == statuses.StatusActive {
		now := time.Now()
		g.StartedAt = &now
	}
	m.games[gameKey] = g
	return copyGame(g), nil
}

func (m *MemoryGameStore) AppendMove(ctx context.Context, gameKey string, move game.Move, expectedMoves int, status string, result string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.games[gameKey]
	if !ok {
		return errs.ErrGameNotFound
	}
	if g.Status != statuses.StatusActive || len(g.Moves) != expectedMoves {
		return errs.ErrGameChanged
	}
	g.Moves = append(g.Moves, move)
	g.Status = status
	if result != "" {
		g.Result = result
	}
	if status == statuses.StatusCompleted {
		now := time.Now()
		g.FinishedAt = &now
	}
	m.games[gameKey] = g
	return nil
}

func (m *MemoryGameStore) SaveSGF(ctx context.Context, gameKey string, moveCount int, sgfText string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sgf[gameKey] = cachedSGF{text: sgfText, moveCount: moveCount}
	return nil
}

func (m *MemoryGameStore) LoadSGF(ctx context.Context, gameKey string) (string, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	cached, ok := m.sgf[gameKey]
	if !ok {
		return "", 0, errs.ErrSgfNotFound
	}
	return cached.text, cached.moveCount, nil
}

func (m *MemoryGameStore) HasUserActiveGameByUserId(ctx context.Context, userID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, g := range m.games {
		if g.Status == statuses.StatusCompleted {
			continue
		}
		if g.PlayerBlack == userID || g.PlayerWhite == userID {
			return true, nil
		}
	}
	return false, nil
}

func copyGame(g game.Game) game.Game {
	g.Moves = append([]game.Move{}, g.Moves...)
	return g
}
