package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/facility"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/generation"
	facilitymock "github.com/L3Technosmith/pkmnFoundations/internal/mocks/domain/facility"
)

func TestLeaderboardService_GetCompetitorsWeakestFirst(t *testing.T) {
	t.Parallel()

	repo := facilitymock.NewRepository(t)
	service := NewLeaderboardService(repo, nil)

	stored := []facility.Competitor{
		{ID: 3, Position: 0, BattlesWon: 7},
		{ID: 1, Position: 1, BattlesWon: 5},
		{ID: 2, Position: 2, BattlesWon: 1},
	}
	repo.
		On("ListCompetitors", mock.Anything, generation.Gen5, int32(1000), uint8(2), uint8(4), facility.OpponentLimit).
		Return(stored, nil).
		Once()

	got, err := service.GetCompetitors(context.Background(), generation.Gen5, 1000, 2, 4)
	if err != nil {
		t.Fatalf("get competitors: %v", err)
	}
	want := []uint64{2, 1, 3}
	if len(got) != len(want) {
		t.Fatalf("unexpected competitor count: got=%d want=%d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Fatalf("competitor %d: got id=%d want=%d", i, got[i].ID, id)
		}
	}
}

func TestLeaderboardService_UpsertCompetitorRejectsBattlesWon(t *testing.T) {
	t.Parallel()

	repo := facilitymock.NewRepository(t)
	service := NewLeaderboardService(repo, nil)

	_, err := service.UpsertCompetitor(context.Background(), facility.Competitor{
		PID:        1000,
		BattlesWon: facility.MaxBattlesWon + 1,
		Record:     facility.BattleRecord{Generation: generation.Gen4},
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if !errors.Is(err, facility.ErrBattlesWonOutOfRange) {
		t.Fatalf("expected the domain error to stay in the chain, got %v", err)
	}
	repo.AssertNotCalled(t, "UpsertCompetitor", mock.Anything, mock.Anything)
}

func TestLeaderboardService_UpsertLeaderRejectsUnknownGeneration(t *testing.T) {
	t.Parallel()

	repo := facilitymock.NewRepository(t)
	service := NewLeaderboardService(repo, nil)

	_, err := service.UpsertLeader(context.Background(), facility.Leader{Generation: generation.Generation(3)})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLeaderboardService_GetLeadersUsesCap(t *testing.T) {
	t.Parallel()

	repo := facilitymock.NewRepository(t)
	service := NewLeaderboardService(repo, nil)

	repo.
		On("ListLeaders", mock.Anything, generation.Gen4, uint8(1), uint8(0), facility.LeaderLimit).
		Return([]facility.Leader{{ID: 9}}, nil).
		Once()

	got, err := service.GetLeaders(context.Background(), generation.Gen4, 1, 0)
	if err != nil {
		t.Fatalf("get leaders: %v", err)
	}
	if len(got) != 1 || got[0].ID != 9 {
		t.Fatalf("unexpected leaders: %+v", got)
	}

	if _, err := service.GetLeaders(context.Background(), generation.Generation(6), 1, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
