package registry

import (
	"sync"

	"github.com/szabotudor/modecky/pkg/models"
)

// GameLocks serializes read-modify-write cycles per game id. The registry and
// the profile store share one table so that unmanaging a game cannot
// interleave with a profile write for the same game.
type GameLocks struct {
	mu    sync.Mutex
	locks map[models.GameID]*sync.Mutex
}

// NewGameLocks creates an empty lock table
func NewGameLocks() *GameLocks {
	return &GameLocks{locks: make(map[models.GameID]*sync.Mutex)}
}

// Lock acquires the lock for id and returns its release function.
func (g *GameLocks) Lock(id models.GameID) func() {
	g.mu.Lock()
	l, ok := g.locks[id]
	if !ok {
		l = &sync.Mutex{}
		g.locks[id] = l
	}
	g.mu.Unlock()

	l.Lock()
	return l.Unlock
}
