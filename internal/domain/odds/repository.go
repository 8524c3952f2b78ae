package odds

import "context"

// GameFilter narrows the games returned by Repository.ListGames.
// Empty IDs means no id filter; Limit <= 0 means unlimited.
type GameFilter struct {
	IDs          []string
	Limit        int
	OnlyWithOdds bool
}

// Repository exposes read access to raw captured games and odds.
type Repository interface {
	ListGames(ctx context.Context, filter GameFilter) ([]Game, error)
	ListOddsByGameIDs(ctx context.Context, gameIDs []string) ([]RawOddsRow, error)
}
