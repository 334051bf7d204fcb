package gts

import (
	"context"
	"time"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/generation"
)

// Repository persists trade listings and their history. Every method is one transaction.
type Repository interface {
	GetByPID(ctx context.Context, gen generation.Generation, pid int32) (Record, bool, error)
	// Deposit inserts r unless the player already has a listing; false means "already listed".
	Deposit(ctx context.Context, r Record) (bool, error)
	// Withdraw deletes the player's preferred listing, logs it to history stamped withdrawnAt and returns it.
	// False means nothing was listed and nothing was logged.
	Withdraw(ctx context.Context, gen generation.Generation, pid int32, withdrawnAt time.Time) (Record, bool, error)
	// Exchange replaces believed's listing with traded when the stored listing still encodes to believed,
	// logging believed with partnerPID in the same transaction. False means nothing was written.
	Exchange(ctx context.Context, traded, believed Record, partnerPID int32, withdrawnAt time.Time) (bool, error)
	Search(ctx context.Context, query SearchQuery) ([]Record, error)
	LogHistory(ctx context.Context, entry HistoryEntry) error
	ListHistory(ctx context.Context, gen generation.Generation, pid int32) ([]HistoryEntry, error)
	CountActive(ctx context.Context, gen generation.Generation) (int, error)
}
