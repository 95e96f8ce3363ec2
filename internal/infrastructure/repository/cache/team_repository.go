package cache

import (
	"context"

	"github.com/riskibarqy/film-grading/internal/domain/team"
	basecache "github.com/riskibarqy/film-grading/internal/platform/cache"
)

const teamListKey = "team:list"

// TeamRepository serves the team list from a TTL store. Lookups by id go
// through the cached list because the matcher always needs the full set.
type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store[[]team.Team]
}

func NewTeamRepository(next team.Repository, cache *basecache.Store[[]team.Team]) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	items, err := r.cache.GetOrLoad(ctx, teamListKey, func(ctx context.Context) ([]team.Team, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return cloneTeams(items), nil
	})
	if err != nil {
		return nil, err
	}
	return cloneTeams(items), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	items, err := r.List(ctx)
	if err != nil {
		return team.Team{}, false, err
	}
	for _, item := range items {
		if item.ID == teamID {
			return item, true, nil
		}
	}
	return r.next.GetByID(ctx, teamID)
}

// Invalidate drops the cached list after teams change.
func (r *TeamRepository) Invalidate(ctx context.Context) {
	r.cache.DeletePrefix(ctx, teamListKey)
}

func cloneTeams(items []team.Team) []team.Team {
	out := make([]team.Team, len(items))
	for i, item := range items {
		item.Aliases = append([]string(nil), item.Aliases...)
		out[i] = item
	}
	return out
}
