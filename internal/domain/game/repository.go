package game

import "context"

type Repository interface {
	// UpsertByExternalGame creates the game or refreshes the row owned by
	// g.ExternalGameID and returns the stored game. The stored id wins.
	UpsertByExternalGame(ctx context.Context, g Game) (Game, error)
	GetByID(ctx context.Context, id string) (Game, bool, error)
}
