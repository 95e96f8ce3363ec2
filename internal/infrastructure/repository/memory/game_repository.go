package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/film-grading/internal/domain/game"
)

type GameRepository struct {
	mu         sync.RWMutex
	items      map[string]game.Game
	byExternal map[string]string
	now        func() time.Time
}

func NewGameRepository() *GameRepository {
	return &GameRepository{
		items:      make(map[string]game.Game),
		byExternal: make(map[string]string),
		now:        time.Now,
	}
}

func (r *GameRepository) UpsertByExternalGame(_ context.Context, g game.Game) (game.Game, error) {
	if err := g.Validate(); err != nil {
		return game.Game{}, err
	}
	g.Date = game.DayKey(g.Date)

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	if id, ok := r.byExternal[g.ExternalGameID]; ok {
		existing := r.items[id]
		g.ID = existing.ID
		g.CreatedAt = existing.CreatedAt
		g.UpdatedAt = now
		r.items[id] = g
		return g, nil
	}

	if g.ID == "" {
		return game.Game{}, errMissingID
	}
	g.CreatedAt = now
	g.UpdatedAt = now
	r.items[g.ID] = g
	r.byExternal[g.ExternalGameID] = g.ID
	return g, nil
}

func (r *GameRepository) GetByID(_ context.Context, id string) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.items[id]
	if !ok {
		return game.Game{}, false, nil
	}
	return g, true, nil
}

// Delete drops a game, leaving any mapping pointer at it dangling.
func (r *GameRepository) Delete(_ context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, ok := r.items[id]
	if !ok {
		return
	}
	delete(r.items, id)
	delete(r.byExternal, g.ExternalGameID)
}
