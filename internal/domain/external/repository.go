package external

import "context"

// Repository persists provider records and their mapping pointers.
type Repository interface {
	// UpsertGame inserts or refreshes a game by (source, external_id). The stored
	// raw payload and any mapping pointer are kept on conflict.
	UpsertGame(ctx context.Context, game Game) (Game, error)
	GetGameByID(ctx context.Context, id string) (Game, bool, error)
	GetGameBySourceKey(ctx context.Context, source Source, externalID string) (Game, bool, error)
	SetGameMapping(ctx context.Context, id, mappedGameID string) error

	// UpsertPlay inserts or refreshes a play by (external_game_id, external_id).
	UpsertPlay(ctx context.Context, play Play) (Play, error)
	ListPlaysByGame(ctx context.Context, externalGameID string) ([]Play, error)
	SetPlayMapping(ctx context.Context, id, mappedPlayID string) error
}
