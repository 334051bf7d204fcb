package pokedexgorm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/pokedex"
)

func TestModelConversion(t *testing.T) {
	s := pokedex.Species{ID: 133, NationalDex: 133, FamilyID: 61, Name: "Eevee", GrowthRate: 2, GenderRatio: 31, EggSteps: 9216, Generation: 1}
	require.Equal(t, s, fromSpecies(s).toDomain())

	m := pokedex.Move{ID: 33, Name: "Tackle", Power: 35, Accuracy: 95, PP: 35}
	require.Equal(t, m, fromMove(m).toDomain())

	gen5 := 50
	i := pokedex.Item{ID: 1, Name: "Master Ball", Gen5ID: &gen5}
	got := fromItem(i).toDomain()
	require.Equal(t, i.Name, got.Name)
	require.Nil(t, got.Gen4ID)
	require.Equal(t, 50, *got.Gen5ID)
}

func TestTableNames(t *testing.T) {
	require.Equal(t, "pokedex_species", speciesModel{}.TableName())
	require.Equal(t, "pokedex_moves", moveModel{}.TableName())
	require.Equal(t, "pokedex_items", itemModel{}.TableName())
}

func TestEvolutionsAreNotImplemented(t *testing.T) {
	r := NewRepository(nil)
	require.ErrorIs(t, r.InsertEvolution(context.Background(), pokedex.Evolution{}), pokedex.ErrNotImplemented)
	_, err := r.ListEvolutions(context.Background())
	require.ErrorIs(t, err, pokedex.ErrNotImplemented)
}
