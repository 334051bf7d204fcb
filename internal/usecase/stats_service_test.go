package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/facility"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/generation"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/storage"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/terminal"
	"github.com/L3Technosmith/pkmnFoundations/internal/infrastructure/repository/memory"
	gtsmock "github.com/L3Technosmith/pkmnFoundations/internal/mocks/domain/gts"
	"github.com/L3Technosmith/pkmnFoundations/internal/platform/wire"
)

func TestStatsService_CollectCountsEveryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	trades := newTradeService(memory.NewGTSRepository())
	content := NewContentService(memory.NewTerminalRepository(), testSerialKey, nil)

	_, err := trades.Deposit(ctx, listing(generation.Gen4, 1000, 25, 1))
	require.NoError(t, err)
	_, err = content.Upload(ctx, terminal.KindBox4, terminal.Item{
		PID:     1000,
		Payload: bytes.Repeat([]byte{1}, terminal.Box4.PayloadSize),
	})
	require.NoError(t, err)

	stats, err := NewStatsService(trades, content, nil).Collect(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"gen4": 1, "gen5": 0}, stats.ActiveTrades)
	require.Equal(t, uint64(1), stats.Content["box4"])
	require.Equal(t, uint64(0), stats.Content["battlevideo5"])
	require.Len(t, stats.Content, len(terminal.Specs))
}

func TestStatsService_CollectReturnsFirstError(t *testing.T) {
	t.Parallel()

	repo := gtsmock.NewRepository(t)
	storeErr := errors.New("pool exhausted")
	repo.On("CountActive", mock.Anything, generation.Gen4).Return(0, storeErr).Maybe()
	repo.On("CountActive", mock.Anything, generation.Gen5).Return(0, storeErr).Maybe()

	service := NewStatsService(newTradeService(repo), NewContentService(memory.NewTerminalRepository(), testSerialKey, nil), nil)
	_, err := service.Collect(context.Background())
	require.ErrorIs(t, err, storeErr)
}

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want error
	}{
		{"length", wire.LengthError("payload", 292, 3), ErrInvalidInput},
		{"range", wire.RangeError("streak", 70000, 65535), ErrInvalidInput},
		{"battles won", fmt.Errorf("competitor: %w", facility.ErrBattlesWonOutOfRange), ErrInvalidInput},
		{"serial", terminal.ErrSerialRange, ErrInvalidInput},
		{"conflict", fmt.Errorf("commit: %w", storage.ErrConflict), ErrConflict},
		{"unavailable", fmt.Errorf("begin: %w", storage.ErrUnavailable), ErrDependencyUnavailable},
	}
	for _, tc := range cases {
		got := classify(tc.name, tc.err)
		if !errors.Is(got, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
		if !errors.Is(got, tc.err) {
			t.Fatalf("%s: original error dropped from %v", tc.name, got)
		}
	}

	plain := errors.New("boom")
	got := classify("op", plain)
	if errors.Is(got, ErrInvalidInput) || errors.Is(got, ErrConflict) {
		t.Fatalf("unexpected classification of a plain error: %v", got)
	}
	if classify("op", nil) != nil {
		t.Fatalf("nil must stay nil")
	}
}
