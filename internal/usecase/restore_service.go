package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/facility"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/generation"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/terminal"
	idgen "github.com/L3Technosmith/pkmnFoundations/internal/platform/id"
	"github.com/L3Technosmith/pkmnFoundations/internal/platform/logging"
)

const (
	RestoreKindCompetitor = "competitor"
	RestoreKindLeader     = "leader"

	defaultRestoreWorkers = 8
)

// RestoreMeta carries the searchable columns of an archived terminal upload.
type RestoreMeta struct {
	Species     uint16 `json:"species,omitempty"`
	Label       int32  `json:"label,omitempty"`
	Streak      uint16 `json:"streak,omitempty"`
	TrainerName []byte `json:"trainer_name,omitempty"`
	Metagame    uint8  `json:"metagame,omitempty"`
	Country     uint8  `json:"country,omitempty"`
	Region      uint8  `json:"region,omitempty"`
}

// RestoreEntry is one archived upload. Kind is a terminal kind name, "competitor" or "leader".
// For competitors Payload is the facility wire record, for leaders the trainer profile.
// Serial keeps the number the upload was known by; 0 lets the store assign one.
type RestoreEntry struct {
	Kind       string      `json:"kind"`
	Generation string      `json:"generation,omitempty"`
	Serial     uint64      `json:"serial,omitempty"`
	PID        int32       `json:"pid"`
	Header     []byte      `json:"header,omitempty"`
	Payload    []byte      `json:"payload"`
	Meta       RestoreMeta `json:"meta"`
	Roster     []uint16    `json:"roster,omitempty"`
	Room       uint8       `json:"room,omitempty"`
	Rank       uint8       `json:"rank,omitempty"`
	BattlesWon uint8       `json:"battles_won,omitempty"`
	Unknown5   uint64      `json:"unknown5,omitempty"`
}

// RestoreLine is a numbered line of a dump. Err is set when the line could not be decoded.
type RestoreLine struct {
	Number int
	Entry  RestoreEntry
	Err    error
}

// RestoreSource yields the lines of one dump in order.
type RestoreSource interface {
	Name() string
	Lines(ctx context.Context, fn func(RestoreLine) error) error
}

// RestoreJournal remembers which lines of a source were already applied.
type RestoreJournal interface {
	Applied(source string, line int) (bool, error)
	Mark(source string, line int) error
}

type RestoreResult struct {
	RunID          string `json:"run_id"`
	Source         string `json:"source"`
	LineCount      int    `json:"line_count"`
	AppliedCount   int    `json:"applied_count"`
	DuplicateCount int    `json:"duplicate_count"`
	FailedCount    int    `json:"failed_count"`
	SkippedCount   int    `json:"skipped_count"`
	WorkerCount    int    `json:"worker_count"`
	DurationMs     int64  `json:"duration_ms"`
}

type restoreOutcome uint8

const (
	restoreApplied restoreOutcome = iota
	restoreDuplicate
	restoreFailed
)

// RestoreService replays archived uploads into the content and leaderboard stores.
type RestoreService struct {
	content      *ContentService
	leaderboards *LeaderboardService
	journal      RestoreJournal
	ids          idgen.Generator
	workers      int
	logger       *logging.Logger
}

func NewRestoreService(
	content *ContentService,
	leaderboards *LeaderboardService,
	journal RestoreJournal,
	ids idgen.Generator,
	workers int,
	logger *logging.Logger,
) *RestoreService {
	if logger == nil {
		logger = logging.Default()
	}
	if ids == nil {
		ids = idgen.NewKSUIDGenerator()
	}
	if workers < 1 {
		workers = defaultRestoreWorkers
	}
	return &RestoreService{
		content:      content,
		leaderboards: leaderboards,
		journal:      journal,
		ids:          ids,
		workers:      workers,
		logger:       logger,
	}
}

// Restore applies every line of src not yet journaled. Duplicates and bad lines are counted, not fatal;
// a failing source or journal stops the run and returns the counts so far with the error.
func (s *RestoreService) Restore(ctx context.Context, src RestoreSource) (RestoreResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RestoreService.Restore")
	defer span.End()

	if src == nil {
		return RestoreResult{}, fmt.Errorf("%w: restore source is required", ErrInvalidInput)
	}

	start := time.Now()
	result := RestoreResult{
		RunID:       idgen.Must(s.ids),
		Source:      src.Name(),
		WorkerCount: s.workers,
	}
	span.SetAttributes(attribute.String("restore.run_id", result.RunID), attribute.String("restore.source", result.Source))
	logger := s.logger.With("run_id", result.RunID, "source", result.Source)
	logger.InfoContext(ctx, "restore started", "workers", s.workers)

	var appliedCount atomic.Int32
	var duplicateCount atomic.Int32
	var failedCount atomic.Int32
	var journalErr atomic.Pointer[error]

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return RestoreResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	scanErr := src.Lines(ctx, func(line RestoreLine) error {
		result.LineCount++
		if p := journalErr.Load(); p != nil {
			return *p
		}

		if s.journal != nil {
			done, err := s.journal.Applied(result.Source, line.Number)
			if err != nil {
				return fmt.Errorf("read journal line %d: %w", line.Number, err)
			}
			if done {
				result.SkippedCount++
				return nil
			}
		}

		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			outcome, err := s.apply(ctx, line)
			switch outcome {
			case restoreApplied:
				appliedCount.Add(1)
			case restoreDuplicate:
				duplicateCount.Add(1)
			default:
				failedCount.Add(1)
				logger.WarnContext(ctx, "restore line failed", "line", line.Number, "kind", line.Entry.Kind, "error", err)
				return
			}

			if s.journal != nil {
				if err := s.journal.Mark(result.Source, line.Number); err != nil {
					wrapped := fmt.Errorf("mark journal line %d: %w", line.Number, err)
					journalErr.CompareAndSwap(nil, &wrapped)
				}
			}
		}); err != nil {
			workers.Done()
			return fmt.Errorf("submit line %d to worker pool: %w", line.Number, err)
		}
		return nil
	})

	workers.Wait()

	result.AppliedCount = int(appliedCount.Load())
	result.DuplicateCount = int(duplicateCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.DurationMs = time.Since(start).Milliseconds()
	span.SetAttributes(
		attribute.Int("restore.lines", result.LineCount),
		attribute.Int("restore.applied", result.AppliedCount),
		attribute.Int("restore.failed", result.FailedCount),
		attribute.Int("restore.skipped", result.SkippedCount),
	)

	if p := journalErr.Load(); p != nil && scanErr == nil {
		scanErr = *p
	}
	if scanErr != nil {
		failSpan(span, scanErr)
		logger.ErrorContext(ctx, "restore stopped", "lines", result.LineCount, "error", scanErr)
		return result, fmt.Errorf("restore %s: %w", result.Source, scanErr)
	}

	logger.InfoContext(ctx, "restore finished",
		"lines", result.LineCount,
		"applied", result.AppliedCount,
		"duplicate", result.DuplicateCount,
		"failed", result.FailedCount,
		"skipped", result.SkippedCount,
		"duration_ms", result.DurationMs,
	)
	return result, nil
}

func (s *RestoreService) apply(ctx context.Context, line RestoreLine) (restoreOutcome, error) {
	if line.Err != nil {
		return restoreFailed, line.Err
	}
	entry := line.Entry

	switch entry.Kind {
	case RestoreKindCompetitor:
		gen, err := generation.Parse(entry.Generation)
		if err != nil {
			return restoreFailed, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		record, err := facility.Decode(gen, entry.Payload)
		if err != nil {
			return restoreFailed, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		_, err = s.leaderboards.UpsertCompetitor(ctx, facility.Competitor{
			PID:        entry.PID,
			RoomNum:    entry.Room,
			Rank:       entry.Rank,
			BattlesWon: entry.BattlesWon,
			Unknown5:   entry.Unknown5,
			Record:     record,
		})
		if err != nil {
			return restoreFailed, err
		}
		return restoreApplied, nil
	case RestoreKindLeader:
		gen, err := generation.Parse(entry.Generation)
		if err != nil {
			return restoreFailed, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		profile, err := facility.DecodeProfile(entry.Payload)
		if err != nil {
			return restoreFailed, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		_, err = s.leaderboards.UpsertLeader(ctx, facility.Leader{
			Generation: gen,
			PID:        entry.PID,
			RoomNum:    entry.Room,
			Rank:       entry.Rank,
			Profile:    profile,
		})
		if err != nil {
			return restoreFailed, err
		}
		return restoreApplied, nil
	}

	kind, err := terminal.ParseKind(entry.Kind)
	if err != nil {
		return restoreFailed, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	serial, err := s.content.Upload(ctx, kind, terminal.Item{
		PID:     entry.PID,
		Serial:  entry.Serial,
		Header:  entry.Header,
		Payload: entry.Payload,
		Meta: terminal.Metadata{
			Species:     entry.Meta.Species,
			Label:       entry.Meta.Label,
			Streak:      entry.Meta.Streak,
			TrainerName: entry.Meta.TrainerName,
			Metagame:    entry.Meta.Metagame,
			Country:     entry.Meta.Country,
			Region:      entry.Meta.Region,
		},
		Roster: entry.Roster,
	})
	if err != nil {
		return restoreFailed, err
	}
	if serial == 0 {
		return restoreDuplicate, nil
	}
	return restoreApplied, nil
}

