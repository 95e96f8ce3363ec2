package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/film-grading/internal/domain/play"
)

type PlayRepository struct {
	mu     sync.RWMutex
	items  map[string]play.Play
	keys   map[string]string
	byGame map[string][]string
	now    func() time.Time
}

func NewPlayRepository() *PlayRepository {
	return &PlayRepository{
		items:  make(map[string]play.Play),
		keys:   make(map[string]string),
		byGame: make(map[string][]string),
		now:    time.Now,
	}
}

// Create enforces the (game_id, external_play_id) uniqueness of the SQL schema.
func (r *PlayRepository) Create(_ context.Context, p play.Play) (play.Play, error) {
	if err := p.Validate(); err != nil {
		return play.Play{}, err
	}
	if p.ID == "" {
		return play.Play{}, errMissingID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[p.ID]; exists {
		return play.Play{}, fmt.Errorf("%w: play id %s", ErrDuplicate, p.ID)
	}
	key := p.GameID + "|" + p.ExternalPlayID
	if p.ExternalPlayID != "" {
		if _, exists := r.keys[key]; exists {
			return play.Play{}, fmt.Errorf("%w: game %s external play %s", ErrDuplicate, p.GameID, p.ExternalPlayID)
		}
		r.keys[key] = p.ID
	}

	p.CreatedAt = r.now().UTC()
	r.items[p.ID] = p
	r.byGame[p.GameID] = append(r.byGame[p.GameID], p.ID)
	return p, nil
}

func (r *PlayRepository) GetByID(_ context.Context, id string) (play.Play, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok {
		return play.Play{}, false, nil
	}
	return p, true, nil
}

func (r *PlayRepository) GetByExternalID(_ context.Context, gameID, externalPlayID string) (play.Play, bool, error) {
	if externalPlayID == "" {
		return play.Play{}, false, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.keys[gameID+"|"+externalPlayID]
	if !ok {
		return play.Play{}, false, nil
	}
	return r.items[id], true, nil
}

func (r *PlayRepository) ListByGame(_ context.Context, gameID string) ([]play.Play, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byGame[gameID]
	out := make([]play.Play, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.items[id])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out, nil
}

// Delete drops a play, leaving any mapping pointer at it dangling.
func (r *PlayRepository) Delete(_ context.Context, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[id]
	if !ok {
		return
	}
	delete(r.items, id)
	delete(r.keys, p.GameID+"|"+p.ExternalPlayID)
	ids := r.byGame[p.GameID]
	for i, v := range ids {
		if v == id {
			r.byGame[p.GameID] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
}
