// Package cache decorates repositories with the in-process TTL cache.
package cache

import (
	"context"
	"slices"
	"time"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/pokedex"
	basecache "github.com/L3Technosmith/pkmnFoundations/internal/platform/cache"
)

const (
	keySpecies = "pokedex:species"
	keyMoves   = "pokedex:moves"
	keyItems   = "pokedex:items"
)

// PokedexRepository serves the reference tables from memory after the first read.
// Any insert drops the cached copy of its table.
type PokedexRepository struct {
	next    pokedex.Repository
	species *basecache.Store[[]pokedex.Species]
	moves   *basecache.Store[[]pokedex.Move]
	items   *basecache.Store[[]pokedex.Item]
}

func NewPokedexRepository(next pokedex.Repository, ttl time.Duration) *PokedexRepository {
	return &PokedexRepository{
		next:    next,
		species: basecache.NewStore[[]pokedex.Species](ttl),
		moves:   basecache.NewStore[[]pokedex.Move](ttl),
		items:   basecache.NewStore[[]pokedex.Item](ttl),
	}
}

func (r *PokedexRepository) InsertSpecies(ctx context.Context, s pokedex.Species) error {
	defer r.species.Delete(ctx, keySpecies)
	return r.next.InsertSpecies(ctx, s)
}

func (r *PokedexRepository) InsertMove(ctx context.Context, m pokedex.Move) error {
	defer r.moves.Delete(ctx, keyMoves)
	return r.next.InsertMove(ctx, m)
}

func (r *PokedexRepository) InsertItem(ctx context.Context, i pokedex.Item) error {
	defer r.items.Delete(ctx, keyItems)
	return r.next.InsertItem(ctx, i)
}

func (r *PokedexRepository) InsertEvolution(ctx context.Context, e pokedex.Evolution) error {
	return r.next.InsertEvolution(ctx, e)
}

func (r *PokedexRepository) ListSpecies(ctx context.Context) ([]pokedex.Species, error) {
	items, err := r.species.GetOrLoad(ctx, keySpecies, r.next.ListSpecies)
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

func (r *PokedexRepository) ListMoves(ctx context.Context) ([]pokedex.Move, error) {
	items, err := r.moves.GetOrLoad(ctx, keyMoves, r.next.ListMoves)
	if err != nil {
		return nil, err
	}
	return slices.Clone(items), nil
}

// ListItems copies the Gen4ID/Gen5ID pointers' targets too, so callers cannot reach into the cache.
func (r *PokedexRepository) ListItems(ctx context.Context) ([]pokedex.Item, error) {
	items, err := r.items.GetOrLoad(ctx, keyItems, r.next.ListItems)
	if err != nil {
		return nil, err
	}
	out := make([]pokedex.Item, len(items))
	for i, item := range items {
		out[i] = item
		out[i].Gen4ID = cloneInt(item.Gen4ID)
		out[i].Gen5ID = cloneInt(item.Gen5ID)
	}
	return out, nil
}

func (r *PokedexRepository) ListEvolutions(ctx context.Context) ([]pokedex.Evolution, error) {
	return r.next.ListEvolutions(ctx)
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
