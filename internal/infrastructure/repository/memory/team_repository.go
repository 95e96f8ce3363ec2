package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/riskibarqy/film-grading/internal/domain/team"
)

type TeamRepository struct {
	mu     sync.RWMutex
	items  map[string]team.Team
	orders []string
}

// NewTeamRepository always holds the unknown placeholder, seeded or not.
func NewTeamRepository(teams []team.Team) *TeamRepository {
	r := &TeamRepository{items: make(map[string]team.Team, len(teams)+1)}
	r.put(team.Unknown())
	for _, item := range teams {
		r.put(item)
	}
	return r
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, cloneTeam(r.items[id]))
	}
	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[strings.TrimSpace(teamID)]
	if !ok {
		return team.Team{}, false, nil
	}
	return cloneTeam(item), true, nil
}

// Upsert adds or replaces teams by id.
func (r *TeamRepository) Upsert(_ context.Context, items ...team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		r.put(item)
	}
	return nil
}

func (r *TeamRepository) put(item team.Team) {
	if _, exists := r.items[item.ID]; !exists {
		r.orders = append(r.orders, item.ID)
	}
	r.items[item.ID] = cloneTeam(item)
}

func cloneTeam(t team.Team) team.Team {
	t.Aliases = append([]string(nil), t.Aliases...)
	return t
}
