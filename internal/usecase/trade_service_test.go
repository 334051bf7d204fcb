package usecase

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/generation"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/gts"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/storage"
	"github.com/L3Technosmith/pkmnFoundations/internal/infrastructure/repository/memory"
	gtsmock "github.com/L3Technosmith/pkmnFoundations/internal/mocks/domain/gts"
)

var tradeClock = time.Date(2012, 3, 4, 5, 6, 7, 0, time.UTC)

func listing(gen generation.Generation, pid int32, species, wants uint16) gts.Record {
	layout, _ := gts.LayoutFor(gen)
	deposited := tradeClock.Add(-time.Hour)
	r := gts.Record{
		Generation:        gen,
		Payload:           bytes.Repeat([]byte{byte(pid)}, layout.PayloadSize),
		Species:           species,
		Gender:            gts.GenderMale,
		Level:             30,
		RequestedSpecies:  wants,
		RequestedGender:   gts.GenderEither,
		RequestedMinLevel: 1,
		RequestedMaxLevel: 100,
		TimeDeposited:     &deposited,
		PID:               pid,
		TrainerName:       bytes.Repeat([]byte{0x41}, gts.TrainerNameSize),
		TrainerCountry:    49,
	}
	if layout.PadSize > 0 {
		r.Pad = make([]byte, layout.PadSize)
	}
	return r
}

func newTradeService(repo gts.Repository) *TradeService {
	s := NewTradeService(repo, nil)
	s.now = func() time.Time { return tradeClock }
	return s
}

func anyCtx() interface{} {
	return mock.Anything
}

func TestTradeService_DepositStampsTime(t *testing.T) {
	t.Parallel()

	repo := gtsmock.NewRepository(t)
	service := newTradeService(repo)

	record := listing(generation.Gen4, 1000, 25, 1)
	record.TimeDeposited = nil

	repo.
		On("Deposit", anyCtx(), mock.MatchedBy(func(r gts.Record) bool {
			return r.PID == 1000 && r.TimeDeposited != nil && r.TimeDeposited.Equal(tradeClock)
		})).
		Return(true, nil).
		Once()

	ok, err := service.Deposit(context.Background(), record)
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if !ok {
		t.Fatalf("expected deposit to be accepted")
	}
}

func TestTradeService_DepositRejectsMalformedRecord(t *testing.T) {
	t.Parallel()

	repo := gtsmock.NewRepository(t)
	service := newTradeService(repo)

	record := listing(generation.Gen5, 1000, 25, 1)
	record.Pad = nil

	_, err := service.Deposit(context.Background(), record)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	repo.AssertNotCalled(t, "Deposit", mock.Anything, mock.Anything)
}

func atTradeClock() interface{} {
	return mock.MatchedBy(func(at time.Time) bool { return at.Equal(tradeClock) })
}

func TestTradeService_WithdrawIsOneStoreCall(t *testing.T) {
	t.Parallel()

	repo := gtsmock.NewRepository(t)
	service := newTradeService(repo)
	current := listing(generation.Gen4, 1000, 25, 1)

	repo.
		On("Withdraw", anyCtx(), generation.Gen4, int32(1000), atTradeClock()).
		Return(current, true, nil).
		Once()

	got, ok, err := service.Withdraw(context.Background(), generation.Gen4, 1000)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int32(1000), got.PID)
	repo.AssertNotCalled(t, "GetByPID", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "LogHistory", mock.Anything, mock.Anything)
}

func TestTradeService_WithdrawNothingListed(t *testing.T) {
	t.Parallel()

	repo := gtsmock.NewRepository(t)
	service := newTradeService(repo)

	repo.
		On("Withdraw", anyCtx(), generation.Gen5, int32(7), atTradeClock()).
		Return(gts.Record{}, false, nil).
		Once()

	_, ok, err := service.Withdraw(context.Background(), generation.Gen5, 7)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestTradeService_ExchangeRejectsIncompatibleOffer(t *testing.T) {
	t.Parallel()

	repo := gtsmock.NewRepository(t)
	service := newTradeService(repo)

	target := listing(generation.Gen4, 1000, 25, 1)
	upload := listing(generation.Gen4, 2000, 4, 25)

	_, err := service.Exchange(context.Background(), upload, target)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	self := listing(generation.Gen4, 1000, 1, 25)
	_, err = service.Exchange(context.Background(), self, target)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for a self trade, got %v", err)
	}
}

func TestTradeService_ExchangeLostRace(t *testing.T) {
	t.Parallel()

	repo := gtsmock.NewRepository(t)
	service := newTradeService(repo)

	target := listing(generation.Gen5, 1000, 25, 1)
	upload := listing(generation.Gen5, 2000, 1, 25)

	repo.
		On("Exchange", anyCtx(), mock.AnythingOfType("gts.Record"), mock.AnythingOfType("gts.Record"), int32(2000), atTradeClock()).
		Return(false, nil).
		Once()

	ok, err := service.Exchange(context.Background(), upload, target)
	require.NoError(t, err)
	require.False(t, ok)
	repo.AssertNotCalled(t, "LogHistory", mock.Anything, mock.Anything)
}

func TestTradeService_ExchangeStoreFailureFailsTrade(t *testing.T) {
	t.Parallel()

	repo := gtsmock.NewRepository(t)
	service := newTradeService(repo)

	target := listing(generation.Gen5, 1000, 25, 1)
	upload := listing(generation.Gen5, 2000, 1, 25)

	repo.
		On("Exchange", anyCtx(), mock.MatchedBy(func(r gts.Record) bool {
			return r.PID == 1000 && r.Exchanged() && bytes.Equal(r.Payload, upload.Payload)
		}), mock.MatchedBy(func(r gts.Record) bool { return gts.Equal(r, target) }), int32(2000), atTradeClock()).
		Return(false, storage.ErrUnavailable).
		Once()

	ok, err := service.Exchange(context.Background(), upload, target)
	require.ErrorIs(t, err, ErrDependencyUnavailable)
	require.False(t, ok)
}

func TestTradeService_ConflictIsClassified(t *testing.T) {
	t.Parallel()

	repo := gtsmock.NewRepository(t)
	service := newTradeService(repo)

	repo.
		On("Deposit", anyCtx(), mock.Anything).
		Return(false, storage.ErrConflict).
		Once()

	_, err := service.Deposit(context.Background(), listing(generation.Gen4, 1000, 25, 1))
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("expected the store error to stay in the chain, got %v", err)
	}
}

func TestTradeService_SearchValidatesQuery(t *testing.T) {
	t.Parallel()

	repo := gtsmock.NewRepository(t)
	service := newTradeService(repo)

	_, err := service.Search(context.Background(), gts.SearchQuery{Generation: generation.Generation(9)})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.Search(context.Background(), gts.SearchQuery{Generation: generation.Gen4, Limit: -1})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestTradeService_TradeRoundTripOnMemoryStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := newTradeService(memory.NewGTSRepository())

	// player 1000 wants species 25; player 2000 offers a level 50 male 25 and wants species 1
	first := listing(generation.Gen5, 1000, 1, 25)
	second := listing(generation.Gen5, 2000, 25, 1)
	second.Level = 50

	for _, r := range []gts.Record{first, second} {
		ok, err := service.Deposit(ctx, r)
		require.NoError(t, err)
		require.True(t, ok)
	}

	anySpecies, err := service.Search(ctx, gts.SearchQuery{
		Generation: generation.Gen5,
		PID:        2000,
		Gender:     gts.GenderEither,
		Limit:      7,
	})
	require.NoError(t, err)
	require.Len(t, anySpecies, 1)
	require.Equal(t, int32(1000), anySpecies[0].PID)

	found, err := service.Search(ctx, gts.SearchQuery{
		Generation: generation.Gen5,
		PID:        2000,
		Species:    1,
		Gender:     gts.GenderEither,
		Limit:      7,
	})
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, int32(1000), found[0].PID)

	ok, err := service.Exchange(ctx, second, found[0])
	require.NoError(t, err)
	require.True(t, ok)

	// the listing the second caller saw is gone, so a replay loses
	ok, err = service.Exchange(ctx, second, found[0])
	require.NoError(t, err)
	require.False(t, ok)

	got, listed, err := service.Get(ctx, generation.Gen5, 1000)
	require.NoError(t, err)
	require.True(t, listed)
	require.True(t, got.Exchanged())
	require.Equal(t, second.Payload, got.Payload)
	require.NotNil(t, got.TimeExchanged)
	require.True(t, got.TimeExchanged.Equal(tradeClock))

	history, err := service.History(ctx, generation.Gen5, 1000)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.NotNil(t, history[0].PartnerPID)
	require.Equal(t, int32(2000), *history[0].PartnerPID)

	active, err := service.ActiveCount(ctx, generation.Gen5)
	require.NoError(t, err)
	require.Equal(t, 1, active, "the exchanged listing no longer counts as active")
}

func TestTradeService_ConcurrentWithdrawLogsOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := newTradeService(memory.NewGTSRepository())

	ok, err := service.Deposit(ctx, listing(generation.Gen4, 1000, 25, 1))
	require.NoError(t, err)
	require.True(t, ok)

	const callers = 16
	var wg sync.WaitGroup
	var withdrawn atomic.Int32
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := service.Withdraw(ctx, generation.Gen4, 1000)
			if err == nil && ok {
				withdrawn.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), withdrawn.Load())
	history, err := service.History(ctx, generation.Gen4, 1000)
	require.NoError(t, err)
	require.Len(t, history, 1, "only the withdraw that removed the listing may log it")
}

func TestTradeService_ConcurrentExchangeLogsOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := newTradeService(memory.NewGTSRepository())

	target := listing(generation.Gen5, 1000, 25, 1)
	ok, err := service.Deposit(ctx, target)
	require.NoError(t, err)
	require.True(t, ok)

	const callers = 16
	var wg sync.WaitGroup
	var traded atomic.Int32
	for i := range callers {
		wg.Add(1)
		go func(pid int32) {
			defer wg.Done()
			ok, err := service.Exchange(ctx, listing(generation.Gen5, pid, 1, 25), target)
			if err == nil && ok {
				traded.Add(1)
			}
		}(int32(2000 + i))
	}
	wg.Wait()

	require.Equal(t, int32(1), traded.Load())
	history, err := service.History(ctx, generation.Gen5, 1000)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.NotNil(t, history[0].PartnerPID)
	require.GreaterOrEqual(t, *history[0].PartnerPID, int32(2000))
}
