package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/pokedex"
)

// PokedexService imports and serves the static reference tables.
type PokedexService struct {
	repo     pokedex.Repository
	validate *validator.Validate
}

func NewPokedexService(repo pokedex.Repository) *PokedexService {
	return &PokedexService{repo: repo, validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (s *PokedexService) ImportSpecies(ctx context.Context, species []pokedex.Species) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PokedexService.ImportSpecies")
	defer span.End()

	return importAll(ctx, s.validate, "species", species, s.repo.InsertSpecies)
}

func (s *PokedexService) ImportMoves(ctx context.Context, moves []pokedex.Move) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PokedexService.ImportMoves")
	defer span.End()

	return importAll(ctx, s.validate, "move", moves, s.repo.InsertMove)
}

func (s *PokedexService) ImportItems(ctx context.Context, items []pokedex.Item) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PokedexService.ImportItems")
	defer span.End()

	return importAll(ctx, s.validate, "item", items, s.repo.InsertItem)
}

// ImportEvolutions fails before touching the store: evolution chains are not modelled yet.
func (s *PokedexService) ImportEvolutions(ctx context.Context, evolutions []pokedex.Evolution) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PokedexService.ImportEvolutions")
	defer span.End()

	for _, e := range evolutions {
		if err := s.repo.InsertEvolution(ctx, e); err != nil {
			return 0, mapPokedexErr("import evolution", err)
		}
	}
	return len(evolutions), nil
}

func (s *PokedexService) ListSpecies(ctx context.Context) ([]pokedex.Species, error) {
	out, err := s.repo.ListSpecies(ctx)
	if err != nil {
		return nil, mapPokedexErr("list species", err)
	}
	return out, nil
}

func (s *PokedexService) ListMoves(ctx context.Context) ([]pokedex.Move, error) {
	out, err := s.repo.ListMoves(ctx)
	if err != nil {
		return nil, mapPokedexErr("list moves", err)
	}
	return out, nil
}

func (s *PokedexService) ListItems(ctx context.Context) ([]pokedex.Item, error) {
	out, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, mapPokedexErr("list items", err)
	}
	return out, nil
}

func (s *PokedexService) ListEvolutions(ctx context.Context) ([]pokedex.Evolution, error) {
	out, err := s.repo.ListEvolutions(ctx)
	if err != nil {
		return nil, mapPokedexErr("list evolutions", err)
	}
	return out, nil
}

// importAll validates every row before inserting any, then inserts in order.
func importAll[T any](ctx context.Context, v *validator.Validate, kind string, rows []T, insert func(context.Context, T) error) (int, error) {
	for i := range rows {
		if err := v.StructCtx(ctx, rows[i]); err != nil {
			return 0, fmt.Errorf("%w: %s row %d: %v", ErrInvalidInput, kind, i, err)
		}
	}
	for i := range rows {
		if err := insert(ctx, rows[i]); err != nil {
			return i, mapPokedexErr("insert "+kind, err)
		}
	}
	return len(rows), nil
}

func mapPokedexErr(op string, err error) error {
	if errors.Is(err, pokedex.ErrNotImplemented) {
		return fmt.Errorf("%w: %s: %w", ErrNotImplemented, op, err)
	}
	return classify(op, err)
}
