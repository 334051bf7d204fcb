package postgres

import (
	"testing"
	"time"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/terminal"
	"github.com/stretchr/testify/require"
)

func TestTerminalSearchQuery(t *testing.T) {
	t.Run("dressup by species", func(t *testing.T) {
		query, args, err := terminalSearchQuery(terminal.Dressup4, terminal.DressupQuery(25, 10))
		require.NoError(t, err)
		require.Equal(t,
			"SELECT * FROM terminal_dressup4 WHERE species = $1 ORDER BY time_added DESC, id DESC LIMIT 10",
			query)
		require.Equal(t, []any{int32(25)}, args)
	})

	t.Run("box by label", func(t *testing.T) {
		query, args, err := terminalSearchQuery(terminal.Box4, terminal.BoxQuery(-1, 20))
		require.NoError(t, err)
		require.Equal(t,
			"SELECT * FROM terminal_boxes4 WHERE label = $1 ORDER BY time_added DESC, id DESC LIMIT 20",
			query)
		require.Equal(t, []any{int32(-1)}, args)
	})

	t.Run("musical matches the roster", func(t *testing.T) {
		query, args, err := terminalSearchQuery(terminal.Musical5, terminal.MusicalQuery(133, 5))
		require.NoError(t, err)
		require.Equal(t,
			"SELECT * FROM terminal_musicals5 WHERE EXISTS (SELECT 1 FROM terminal_musical_pokemon5 p WHERE p.item_id = terminal_musicals5.id AND p.species = $1) ORDER BY time_added DESC, id DESC LIMIT 5",
			query)
		require.Equal(t, []any{int32(133)}, args)
	})

	t.Run("gen4 video latest with locale omits the payload", func(t *testing.T) {
		f := terminal.BattleVideo4Query(6, terminal.Ranking4None, terminal.Metagame4SearchColosseumSingleCupMatch, 49, terminal.AnyRegion, 30)
		query, args, err := terminalSearchQuery(terminal.BattleVideo4, f)
		require.NoError(t, err)
		require.Equal(t,
			"SELECT id, pid, serial_number, header, md5, time_added, parse_version, species, label, streak, trainer_name, metagame, country, region, views, saves FROM terminal_battle_videos4 WHERE EXISTS (SELECT 1 FROM terminal_battle_video_pokemon4 p WHERE p.item_id = terminal_battle_videos4.id AND p.species = $1) AND country = $2 AND metagame BETWEEN $3 AND $4 ORDER BY time_added DESC, id DESC LIMIT 30",
			query)
		require.Equal(t, []any{int32(6), int16(49), int16(1), int16(6)}, args)
	})

	t.Run("gen5 link battle ranking", func(t *testing.T) {
		f := terminal.BattleVideo5Query(terminal.AnySpecies, terminal.Ranking5LinkBattles, 0, 0, 0, 30)
		query, args, err := terminalSearchQuery(terminal.BattleVideo5, f)
		require.NoError(t, err)
		require.Contains(t, query, "WHERE NOT (metagame BETWEEN $1 AND $2) ORDER BY streak DESC, time_added DESC, id DESC LIMIT 30")
		require.Equal(t, []any{int16(0), int16(4)}, args)
	})

	t.Run("gen5 random matchup", func(t *testing.T) {
		f := terminal.BattleVideo5Query(terminal.AnySpecies, terminal.Ranking5None, terminal.Metagame5RandomMatchupDouble, terminal.AnyCountry, terminal.AnyRegion, 30)
		query, args, err := terminalSearchQuery(terminal.BattleVideo5, f)
		require.NoError(t, err)
		require.Contains(t, query, "WHERE metagame IN ($1, $2) ORDER BY time_added DESC")
		require.Equal(t, []any{int16(41), int16(105)}, args)
	})
}

func TestTerminalItemRowToItem(t *testing.T) {
	item := terminal.Item{
		PID:     9,
		Header:  make([]byte, terminal.BattleVideo5.HeaderSize),
		Payload: make([]byte, terminal.BattleVideo5.PayloadSize),
		Meta:    terminal.Metadata{Streak: 12, Metagame: 56, Country: 8, Region: 2},
	}
	added := time.Date(2012, 6, 1, 0, 0, 0, 0, time.FixedZone("PDT", -7*3600))
	model := toTerminalItemModel(item, added)
	require.Equal(t, terminal.ContentHash(item.Header, item.Payload), model.MD5)

	row := terminalItemRow{ID: 4, terminalItemModel: model}
	row.SerialNumber.Int64, row.SerialNumber.Valid = 123456789012, true

	got := row.toItem(terminal.BattleVideo5, []terminal.RosterEntry{{Slot: 3, Species: 643}})
	require.Equal(t, uint64(123456789012), got.Serial)
	require.Equal(t, terminal.KindBattleVideo5, got.Kind)
	require.Len(t, got.Roster, terminal.BattleVideo5.RosterSize)
	require.Equal(t, uint16(643), got.Roster[3])
	require.Equal(t, time.UTC, got.TimeAdded.Location())
}
