package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/generation"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/gts"
	"github.com/L3Technosmith/pkmnFoundations/internal/platform/logging"
	"github.com/L3Technosmith/pkmnFoundations/internal/platform/wire"
)

// TradeService runs the GTS protocol over a gts.Repository for both generations.
type TradeService struct {
	repo   gts.Repository
	logger *logging.Logger
	now    func() time.Time
}

func NewTradeService(repo gts.Repository, logger *logging.Logger) *TradeService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TradeService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

func (s *TradeService) Get(ctx context.Context, gen generation.Generation, pid int32) (gts.Record, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TradeService.Get")
	defer span.End()

	if !gen.Valid() {
		return gts.Record{}, false, fmt.Errorf("%w: unknown generation %d", ErrInvalidInput, gen)
	}
	record, found, err := s.repo.GetByPID(ctx, gen, pid)
	if err != nil {
		return gts.Record{}, false, classify("get gts listing", err)
	}
	return record, found, nil
}

// Deposit lists record for its PID. False means the player already has a listing.
func (s *TradeService) Deposit(ctx context.Context, record gts.Record) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TradeService.Deposit")
	defer span.End()

	if err := gts.Validate(record); err != nil {
		return false, classify("validate deposit", err)
	}
	if record.TimeDeposited == nil {
		now := wire.Truncate(s.now())
		record.TimeDeposited = &now
	}

	ok, err := s.repo.Deposit(ctx, record)
	if err != nil {
		return false, classify("deposit gts listing", err)
	}
	if !ok {
		s.logger.DebugContext(ctx, "gts deposit refused, player already listed",
			"generation", record.Generation.String(),
			"pid", record.PID,
		)
	}
	return ok, nil
}

// Withdraw removes the player's listing and logs it to history in one store transaction, returning what was removed.
func (s *TradeService) Withdraw(ctx context.Context, gen generation.Generation, pid int32) (gts.Record, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TradeService.Withdraw")
	defer span.End()

	if !gen.Valid() {
		return gts.Record{}, false, fmt.Errorf("%w: unknown generation %d", ErrInvalidInput, gen)
	}

	record, ok, err := s.repo.Withdraw(ctx, gen, pid, wire.Truncate(s.now()))
	if err != nil {
		return gts.Record{}, false, classify("withdraw gts listing", err)
	}
	return record, ok, nil
}

// Exchange trades upload for the listing the caller last saw as target.
// It returns false, with nothing written, when the listing changed or vanished since that read.
func (s *TradeService) Exchange(ctx context.Context, upload, target gts.Record) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TradeService.Exchange")
	defer span.End()

	if err := gts.Validate(upload); err != nil {
		return false, classify("validate exchange upload", err)
	}
	if err := gts.Validate(target); err != nil {
		return false, classify("validate exchange target", err)
	}
	if upload.Generation != target.Generation {
		return false, fmt.Errorf("%w: cannot trade %s for %s", ErrInvalidInput, upload.Generation, target.Generation)
	}
	if upload.PID == target.PID {
		return false, fmt.Errorf("%w: player %d cannot trade with themselves", ErrInvalidInput, upload.PID)
	}
	if !gts.CanTrade(upload, target) {
		return false, fmt.Errorf("%w: offer does not satisfy the listing of player %d", ErrInvalidInput, target.PID)
	}

	now := s.now()
	traded := gts.FlagTraded(upload, target, now)
	ok, err := s.repo.Exchange(ctx, traded, target, upload.PID, wire.Truncate(now))
	if err != nil {
		return false, classify("exchange gts listing", err)
	}
	if !ok {
		s.logger.InfoContext(ctx, "gts exchange lost race, listing changed",
			"generation", target.Generation.String(),
			"target_pid", target.PID,
			"pid", upload.PID,
		)
		return false, nil
	}
	return true, nil
}

// Search lists active listings of other players matching q, newest first.
func (s *TradeService) Search(ctx context.Context, q gts.SearchQuery) ([]gts.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TradeService.Search")
	defer span.End()

	if !q.Generation.Valid() {
		return nil, fmt.Errorf("%w: unknown generation %d", ErrInvalidInput, q.Generation)
	}
	if q.Limit < 0 {
		return nil, fmt.Errorf("%w: negative limit", ErrInvalidInput)
	}
	records, err := s.repo.Search(ctx, q)
	if err != nil {
		return nil, classify("search gts listings", err)
	}
	return records, nil
}

// LogHistory appends an entry for a listing leaving the exchange.
func (s *TradeService) LogHistory(ctx context.Context, record gts.Record, timeWithdrawn *time.Time, partnerPID *int32) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TradeService.LogHistory")
	defer span.End()

	if err := gts.Validate(record); err != nil {
		return classify("validate gts history", err)
	}
	if err := s.repo.LogHistory(ctx, gts.HistoryEntry{Record: record, TimeWithdrawn: timeWithdrawn, PartnerPID: partnerPID}); err != nil {
		return classify("log gts history", err)
	}
	return nil
}

func (s *TradeService) History(ctx context.Context, gen generation.Generation, pid int32) ([]gts.HistoryEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TradeService.History")
	defer span.End()

	entries, err := s.repo.ListHistory(ctx, gen, pid)
	if err != nil {
		return nil, classify("list gts history", err)
	}
	return entries, nil
}

func (s *TradeService) ActiveCount(ctx context.Context, gen generation.Generation) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TradeService.ActiveCount")
	defer span.End()

	if !gen.Valid() {
		return 0, fmt.Errorf("%w: unknown generation %d", ErrInvalidInput, gen)
	}
	count, err := s.repo.CountActive(ctx, gen)
	if err != nil {
		return 0, classify("count gts listings", err)
	}
	return count, nil
}
