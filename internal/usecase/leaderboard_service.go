package usecase

import (
	"context"
	"fmt"
	"slices"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/facility"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/generation"
	"github.com/L3Technosmith/pkmnFoundations/internal/platform/logging"
)

// LeaderboardService serves the battle tower (gen4) and battle subway (gen5) pools.
type LeaderboardService struct {
	repo   facility.Repository
	logger *logging.Logger
}

func NewLeaderboardService(repo facility.Repository, logger *logging.Logger) *LeaderboardService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeaderboardService{repo: repo, logger: logger}
}

func (s *LeaderboardService) UpsertCompetitor(ctx context.Context, c facility.Competitor) (uint64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.UpsertCompetitor")
	defer span.End()

	if err := facility.ValidateCompetitor(c); err != nil {
		return 0, classify("validate competitor", err)
	}
	id, err := s.repo.UpsertCompetitor(ctx, c)
	if err != nil {
		return 0, classify("upsert competitor", err)
	}
	s.logger.DebugContext(ctx, "facility competitor stored",
		"generation", c.Record.Generation.String(),
		"room", c.RoomNum,
		"rank", c.Rank,
		"battles_won", c.BattlesWon,
		"id", id,
	)
	return id, nil
}

func (s *LeaderboardService) UpsertLeader(ctx context.Context, l facility.Leader) (uint64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.UpsertLeader")
	defer span.End()

	if err := facility.ValidateLeader(l); err != nil {
		return 0, classify("validate leader", err)
	}
	id, err := s.repo.UpsertLeader(ctx, l)
	if err != nil {
		return 0, classify("upsert leader", err)
	}
	return id, nil
}

// GetCompetitors returns the opponents for pid, weakest first, which is the order the client fights them in.
func (s *LeaderboardService) GetCompetitors(ctx context.Context, gen generation.Generation, pid int32, rank, room uint8) ([]facility.Competitor, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.GetCompetitors")
	defer span.End()

	if !gen.Valid() {
		return nil, fmt.Errorf("%w: unknown generation %d", ErrInvalidInput, gen)
	}
	out, err := s.repo.ListCompetitors(ctx, gen, pid, rank, room, facility.OpponentLimit)
	if err != nil {
		return nil, classify("list competitors", err)
	}
	slices.Reverse(out)
	return out, nil
}

func (s *LeaderboardService) GetLeaders(ctx context.Context, gen generation.Generation, rank, room uint8) ([]facility.Leader, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.GetLeaders")
	defer span.End()

	if !gen.Valid() {
		return nil, fmt.Errorf("%w: unknown generation %d", ErrInvalidInput, gen)
	}
	out, err := s.repo.ListLeaders(ctx, gen, rank, room, facility.LeaderLimit)
	if err != nil {
		return nil, classify("list leaders", err)
	}
	return out, nil
}
