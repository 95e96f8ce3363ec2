package play

import "context"

type Repository interface {
	Create(ctx context.Context, p Play) (Play, error)
	GetByID(ctx context.Context, id string) (Play, bool, error)
	// GetByExternalID looks a play up by its natural key (game_id, external_play_id).
	GetByExternalID(ctx context.Context, gameID, externalPlayID string) (Play, bool, error)
	ListByGame(ctx context.Context, gameID string) ([]Play, error)
}
