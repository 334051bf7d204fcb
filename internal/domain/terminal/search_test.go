package terminal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBattleVideo4Query(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ranking  Ranking4
		metagame uint8
		in       []uint8
		out      []uint8
		ranked   bool
	}{
		{name: "latest", metagame: Metagame4SearchLatest30, in: []uint8{0, 7, 200}},
		{name: "single no restrictions", metagame: Metagame4SearchColosseumSingleNoRestrictions, in: []uint8{0}, out: []uint8{1, 7}},
		{name: "double no restrictions", metagame: Metagame4SearchColosseumDoubleNoRestrictions, in: []uint8{7}, out: []uint8{0, 8}},
		{name: "single cup", metagame: Metagame4SearchColosseumSingleCupMatch, in: []uint8{1, 6}, out: []uint8{0, 7}},
		{name: "double cup", metagame: Metagame4SearchColosseumDoubleCupMatch, in: []uint8{8, 13}, out: []uint8{7, 14}},
		{name: "exact", metagame: 20, in: []uint8{20}, out: []uint8{21}},
		{name: "colosseum ranking", ranking: Ranking4Colosseum, in: []uint8{0, 14}, out: []uint8{15}, ranked: true},
		{name: "frontier ranking", ranking: Ranking4BattleFrontier, in: []uint8{15, 200}, out: []uint8{0, 14}, ranked: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := BattleVideo4Query(AnySpecies, tc.ranking, tc.metagame, AnyCountry, AnyRegion, 30)
			require.Equal(t, tc.ranked, f.Ranked)
			require.Equal(t, 30, f.Limit)
			for _, v := range tc.in {
				require.True(t, f.Metagame.Matches(v), "want %d in", v)
			}
			for _, v := range tc.out {
				require.False(t, f.Metagame.Matches(v), "want %d out", v)
			}
		})
	}
}

func TestBattleVideo5Query(t *testing.T) {
	t.Parallel()

	f := BattleVideo5Query(AnySpecies, Ranking5None, Metagame5RandomMatchupTriple, AnyCountry, AnyRegion, 10)
	require.True(t, f.Metagame.Matches(42))
	require.True(t, f.Metagame.Matches(106))
	require.False(t, f.Metagame.Matches(43))

	f = BattleVideo5Query(AnySpecies, Ranking5None, Metagame5SearchBattleCompetition, AnyCountry, AnyRegion, 10)
	require.True(t, f.Metagame.Matches(56))
	require.True(t, f.Metagame.Matches(59))
	require.False(t, f.Metagame.Matches(60))

	f = BattleVideo5Query(AnySpecies, Ranking5SubwayBattles, 0, AnyCountry, AnyRegion, 10)
	require.True(t, f.Ranked)
	require.True(t, f.Metagame.Matches(4))
	require.False(t, f.Metagame.Matches(5))

	f = BattleVideo5Query(AnySpecies, Ranking5LinkBattles, 0, AnyCountry, AnyRegion, 10)
	require.False(t, f.Metagame.Matches(4))
	require.True(t, f.Metagame.Matches(40))
}

func TestQuery_LocaleFilters(t *testing.T) {
	t.Parallel()

	f := BattleVideo4Query(25, Ranking4None, Metagame4SearchLatest30, 49, AnyRegion, 30)
	require.NotNil(t, f.Species)
	require.Equal(t, uint16(25), *f.Species)
	require.NotNil(t, f.Country)
	require.Nil(t, f.Region)

	// rankings ignore the locale part of the request
	f = BattleVideo4Query(25, Ranking4Colosseum, Metagame4SearchLatest30, 49, 3, 30)
	require.Nil(t, f.Species)
	require.Nil(t, f.Country)
}

func TestFilter_Matches(t *testing.T) {
	t.Parallel()

	video := Item{Roster: []uint16{0, 25, 0, 6}, Meta: Metadata{Country: 49, Region: 2, Metagame: 3}}
	require.True(t, BattleVideo4Query(25, Ranking4None, Metagame4SearchColosseumSingleCupMatch, 49, 2, 0).Matches(BattleVideo4, video))
	require.False(t, BattleVideo4Query(1, Ranking4None, Metagame4SearchLatest30, AnyCountry, AnyRegion, 0).Matches(BattleVideo4, video))
	require.False(t, BattleVideo4Query(AnySpecies, Ranking4None, Metagame4SearchLatest30, AnyCountry, 5, 0).Matches(BattleVideo4, video))
	require.False(t, MusicalQuery(0, 0).Matches(Musical5, video), "empty slots never match")

	dressup := Item{Meta: Metadata{Species: 25}}
	require.True(t, DressupQuery(25, 0).Matches(Dressup4, dressup))
	require.False(t, DressupQuery(26, 0).Matches(Dressup4, dressup))

	box := Item{Meta: Metadata{Label: 4}}
	require.True(t, BoxQuery(4, 0).Matches(Box4, box))
	require.False(t, BoxQuery(5, 0).Matches(Box4, box))
}

func TestFilter_Less(t *testing.T) {
	t.Parallel()

	now := time.Date(2010, 3, 1, 12, 0, 0, 0, time.UTC)
	older := Item{ID: 1, TimeAdded: now.Add(-time.Hour), Meta: Metadata{Streak: 50}}
	newer := Item{ID: 2, TimeAdded: now}
	twin := Item{ID: 3, TimeAdded: now}

	flat := Filter{}
	require.True(t, flat.Less(newer, older))
	require.True(t, flat.Less(twin, newer), "equal times order by id descending")

	ranked := Filter{Ranked: true}
	require.True(t, ranked.Less(older, newer))
}
