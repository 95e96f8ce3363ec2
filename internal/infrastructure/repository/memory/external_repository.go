package memory

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/film-grading/internal/domain/external"
)

var (
	errMissingID = errors.New("memory: record id is required")
	// ErrDuplicate mirrors a unique constraint violation in the SQL store.
	ErrDuplicate = errors.New("memory: duplicate natural key")
)

type ExternalRepository struct {
	mu         sync.RWMutex
	games      map[string]external.Game
	gameKeys   map[string]string
	plays      map[string]external.Play
	playKeys   map[string]string
	playOrders map[string][]string
	now        func() time.Time
}

func NewExternalRepository() *ExternalRepository {
	return &ExternalRepository{
		games:      make(map[string]external.Game),
		gameKeys:   make(map[string]string),
		plays:      make(map[string]external.Play),
		playKeys:   make(map[string]string),
		playOrders: make(map[string][]string),
		now:        time.Now,
	}
}

func gameKey(source external.Source, externalID string) string {
	return string(source) + "|" + externalID
}

func playKey(externalGameID, externalID string) string {
	return externalGameID + "|" + externalID
}

func (r *ExternalRepository) UpsertGame(_ context.Context, game external.Game) (external.Game, error) {
	if err := game.Validate(); err != nil {
		return external.Game{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	key := gameKey(game.Source, game.ExternalID)
	if id, ok := r.gameKeys[key]; ok {
		existing := r.games[id]
		game.ID = existing.ID
		game.RawPayload = existing.RawPayload
		game.MappedGameID = existing.MappedGameID
		game.CreatedAt = existing.CreatedAt
		game.UpdatedAt = now
		r.games[id] = game
		return cloneExternalGame(game), nil
	}

	if game.ID == "" {
		return external.Game{}, errMissingID
	}
	game.RawPayload = maps.Clone(game.RawPayload)
	game.CreatedAt = now
	game.UpdatedAt = now
	r.games[game.ID] = game
	r.gameKeys[key] = game.ID
	return cloneExternalGame(game), nil
}

func (r *ExternalRepository) GetGameByID(_ context.Context, id string) (external.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	game, ok := r.games[id]
	if !ok {
		return external.Game{}, false, nil
	}
	return cloneExternalGame(game), true, nil
}

func (r *ExternalRepository) GetGameBySourceKey(_ context.Context, source external.Source, externalID string) (external.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.gameKeys[gameKey(source, externalID)]
	if !ok {
		return external.Game{}, false, nil
	}
	return cloneExternalGame(r.games[id]), true, nil
}

func (r *ExternalRepository) SetGameMapping(_ context.Context, id, mappedGameID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	game, ok := r.games[id]
	if !ok {
		return fmt.Errorf("external game %s not found", id)
	}
	game.MappedGameID = mappedGameID
	game.UpdatedAt = r.now().UTC()
	r.games[id] = game
	return nil
}

func (r *ExternalRepository) UpsertPlay(_ context.Context, play external.Play) (external.Play, error) {
	if err := play.Validate(); err != nil {
		return external.Play{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	key := playKey(play.ExternalGameID, play.ExternalID)
	if id, ok := r.playKeys[key]; ok {
		existing := r.plays[id]
		play.ID = existing.ID
		play.RawPayload = existing.RawPayload
		play.MappedPlayID = existing.MappedPlayID
		play.CreatedAt = existing.CreatedAt
		play.UpdatedAt = now
		r.plays[id] = play
		return cloneExternalPlay(play), nil
	}

	if play.ID == "" {
		return external.Play{}, errMissingID
	}
	play.RawPayload = maps.Clone(play.RawPayload)
	play.CreatedAt = now
	play.UpdatedAt = now
	r.plays[play.ID] = play
	r.playKeys[key] = play.ID
	r.playOrders[play.ExternalGameID] = append(r.playOrders[play.ExternalGameID], play.ID)
	return cloneExternalPlay(play), nil
}

// ListPlaysByGame orders by sequence, then by first insert.
func (r *ExternalRepository) ListPlaysByGame(_ context.Context, externalGameID string) ([]external.Play, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.playOrders[externalGameID]
	out := make([]external.Play, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneExternalPlay(r.plays[id]))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Sequence < out[j].Sequence })
	return out, nil
}

func (r *ExternalRepository) SetPlayMapping(_ context.Context, id, mappedPlayID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	play, ok := r.plays[id]
	if !ok {
		return fmt.Errorf("external play %s not found", id)
	}
	play.MappedPlayID = mappedPlayID
	play.UpdatedAt = r.now().UTC()
	r.plays[id] = play
	return nil
}

func cloneExternalGame(g external.Game) external.Game {
	g.RawPayload = maps.Clone(g.RawPayload)
	return g
}

func cloneExternalPlay(p external.Play) external.Play {
	p.RawPayload = maps.Clone(p.RawPayload)
	return p
}
