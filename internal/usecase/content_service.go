package usecase

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/terminal"
	"github.com/L3Technosmith/pkmnFoundations/internal/platform/logging"
)

// ContentService runs every global terminal kind through one terminal.Repository.
// Battle videos get keyed serials; the other kinds expose their row id.
type ContentService struct {
	repo   terminal.Repository
	specs  map[terminal.Kind]terminal.Spec
	logger *logging.Logger
}

func NewContentService(repo terminal.Repository, serialKey uint64, logger *logging.Logger) *ContentService {
	if logger == nil {
		logger = logging.Default()
	}
	videoSerials := terminal.NewFeistelSerial(serialKey)
	specs := make(map[terminal.Kind]terminal.Spec, len(terminal.Specs))
	for _, spec := range terminal.Specs {
		if spec.Kind == terminal.KindBattleVideo4 || spec.Kind == terminal.KindBattleVideo5 {
			spec = spec.WithSerials(videoSerials)
		}
		specs[spec.Kind] = spec
	}
	return &ContentService{repo: repo, specs: specs, logger: logger}
}

// Spec returns the descriptor this service runs kind with, serial codec included.
func (s *ContentService) Spec(kind terminal.Kind) (terminal.Spec, error) {
	spec, ok := s.specs[kind]
	if !ok {
		return terminal.Spec{}, classify("resolve content kind", fmt.Errorf("kind %d: %w", kind, terminal.ErrUnknownKind))
	}
	return spec, nil
}

// Upload stores item and returns its serial. Zero means the same bytes were already stored,
// or that a supplied serial is taken.
func (s *ContentService) Upload(ctx context.Context, kind terminal.Kind, item terminal.Item) (uint64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContentService.Upload")
	defer span.End()

	spec, err := s.Spec(kind)
	if err != nil {
		return 0, err
	}
	span.SetAttributes(attribute.String("terminal.kind", spec.Name))
	if err := terminal.Validate(spec, item); err != nil {
		return 0, classify("validate "+spec.Name, err)
	}

	serial, err := s.repo.Upload(ctx, spec, item)
	if err != nil {
		return 0, classify("upload "+spec.Name, err)
	}
	if serial == 0 {
		s.logger.DebugContext(ctx, "terminal upload skipped as duplicate",
			"kind", spec.Name,
			"pid", item.PID,
			"supplied_serial", item.Serial,
		)
	}
	return serial, nil
}

func (s *ContentService) Search(ctx context.Context, kind terminal.Kind, f terminal.Filter) ([]terminal.Item, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContentService.Search")
	defer span.End()

	spec, err := s.Spec(kind)
	if err != nil {
		return nil, err
	}
	if f.Limit < 0 {
		return nil, fmt.Errorf("%w: negative limit", ErrInvalidInput)
	}
	items, err := s.repo.Search(ctx, spec, f)
	if err != nil {
		return nil, classify("search "+spec.Name, err)
	}
	return items, nil
}

func (s *ContentService) Get(ctx context.Context, kind terminal.Kind, serial uint64, incrementViews bool) (terminal.Item, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContentService.Get")
	defer span.End()

	spec, err := s.Spec(kind)
	if err != nil {
		return terminal.Item{}, false, err
	}
	item, found, err := s.repo.Get(ctx, spec, serial, incrementViews)
	if err != nil {
		return terminal.Item{}, false, classify("get "+spec.Name, err)
	}
	return item, found, nil
}

func (s *ContentService) FlagSaved(ctx context.Context, kind terminal.Kind, serial uint64) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContentService.FlagSaved")
	defer span.End()

	spec, err := s.Spec(kind)
	if err != nil {
		return false, err
	}
	ok, err := s.repo.FlagSaved(ctx, spec, serial)
	if err != nil {
		return false, classify("flag saved "+spec.Name, err)
	}
	return ok, nil
}

func (s *ContentService) Count(ctx context.Context, kind terminal.Kind) (uint64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ContentService.Count")
	defer span.End()

	spec, err := s.Spec(kind)
	if err != nil {
		return 0, err
	}
	n, err := s.repo.Count(ctx, spec)
	if err != nil {
		return 0, classify("count "+spec.Name, err)
	}
	return n, nil
}
