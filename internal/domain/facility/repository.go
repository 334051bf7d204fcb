package facility

import (
	"context"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/generation"
)

// Repository persists facility leaderboards. Each method runs in one transaction.
type Repository interface {
	// UpsertCompetitor resolves the entry's identity, re-ranks its scope with Place and writes the
	// entry with its party. It returns the row id.
	UpsertCompetitor(ctx context.Context, c Competitor) (uint64, error)
	UpsertLeader(ctx context.Context, l Leader) (uint64, error)
	// ListCompetitors returns up to limit rows of the scope, excluding pid, by position ascending.
	ListCompetitors(ctx context.Context, gen generation.Generation, pid int32, rank, room uint8, limit int) ([]Competitor, error)
	// ListLeaders returns up to limit leaders of the scope, most recently updated first.
	ListLeaders(ctx context.Context, gen generation.Generation, rank, room uint8, limit int) ([]Leader, error)
}
