package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/pokedex"
)

// PokedexRepository backs reference data when no database is configured.
type PokedexRepository struct {
	mu      sync.RWMutex
	species map[int]pokedex.Species
	moves   map[int]pokedex.Move
	items   map[int]pokedex.Item
}

func NewPokedexRepository() *PokedexRepository {
	return &PokedexRepository{
		species: make(map[int]pokedex.Species),
		moves:   make(map[int]pokedex.Move),
		items:   make(map[int]pokedex.Item),
	}
}

func (r *PokedexRepository) InsertSpecies(_ context.Context, s pokedex.Species) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.species[s.ID] = s
	return nil
}

func (r *PokedexRepository) InsertMove(_ context.Context, m pokedex.Move) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.moves[m.ID] = m
	return nil
}

func (r *PokedexRepository) InsertItem(_ context.Context, i pokedex.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[i.ID] = i
	return nil
}

func (r *PokedexRepository) InsertEvolution(_ context.Context, _ pokedex.Evolution) error {
	return pokedex.ErrNotImplemented
}

func (r *PokedexRepository) ListSpecies(_ context.Context) ([]pokedex.Species, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedByID(r.species, func(s pokedex.Species) int { return s.ID }), nil
}

func (r *PokedexRepository) ListMoves(_ context.Context) ([]pokedex.Move, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedByID(r.moves, func(m pokedex.Move) int { return m.ID }), nil
}

func (r *PokedexRepository) ListItems(_ context.Context) ([]pokedex.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedByID(r.items, func(i pokedex.Item) int { return i.ID }), nil
}

func (r *PokedexRepository) ListEvolutions(_ context.Context) ([]pokedex.Evolution, error) {
	return nil, pokedex.ErrNotImplemented
}

func sortedByID[T any](m map[int]T, id func(T) int) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return id(out[i]) < id(out[j]) })
	return out
}
