package usecase

import (
	"context"

	"github.com/sourcegraph/conc/pool"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/generation"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/terminal"
	"github.com/L3Technosmith/pkmnFoundations/internal/platform/logging"
	"github.com/L3Technosmith/pkmnFoundations/internal/platform/resilience"
)

const statsFlightKey = "stats"

// Stats is the operator view of how much is stored.
type Stats struct {
	ActiveTrades map[string]int    `json:"active_trades"`
	Content      map[string]uint64 `json:"content"`
}

type StatsService struct {
	trades  *TradeService
	content *ContentService
	logger  *logging.Logger
	flight  resilience.Flight[Stats]
}

func NewStatsService(trades *TradeService, content *ContentService, logger *logging.Logger) *StatsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StatsService{trades: trades, content: content, logger: logger}
}

// Collect counts every generation and kind concurrently; the first failure is returned.
// Overlapping callers share one collection.
func (s *StatsService) Collect(ctx context.Context) (Stats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Collect")
	defer span.End()

	stats, shared, err := s.flight.Do(ctx, statsFlightKey, func() (Stats, error) {
		return s.collect(ctx)
	})
	if shared {
		s.logger.DebugContext(ctx, "stats collection shared with a concurrent caller")
	}
	return stats, err
}

func (s *StatsService) collect(ctx context.Context) (Stats, error) {
	gens := []generation.Generation{generation.Gen4, generation.Gen5}
	trades := make([]int, len(gens))
	content := make([]uint64, len(terminal.Specs))

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	for i, gen := range gens {
		p.Go(func(ctx context.Context) error {
			n, err := s.trades.ActiveCount(ctx, gen)
			trades[i] = n
			return err
		})
	}
	for i, spec := range terminal.Specs {
		p.Go(func(ctx context.Context) error {
			n, err := s.content.Count(ctx, spec.Kind)
			content[i] = n
			return err
		})
	}
	if err := p.Wait(); err != nil {
		return Stats{}, err
	}

	out := Stats{
		ActiveTrades: make(map[string]int, len(gens)),
		Content:      make(map[string]uint64, len(terminal.Specs)),
	}
	for i, gen := range gens {
		out.ActiveTrades[gen.String()] = trades[i]
	}
	for i, spec := range terminal.Specs {
		out.Content[spec.Name] = content[i]
	}
	return out, nil
}

// Report logs a snapshot; the api runs it on a schedule.
func (s *StatsService) Report(ctx context.Context) {
	stats, err := s.Collect(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "collect stats failed", "error", err)
		return
	}
	s.logger.InfoContext(ctx, "store stats",
		"active_trades", stats.ActiveTrades,
		"content", stats.Content,
	)
}
