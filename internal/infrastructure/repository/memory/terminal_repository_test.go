package memory

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/terminal"
)

func battleVideo(seed byte, pid int32, roster []uint16) terminal.Item {
	return terminal.Item{
		PID:     pid,
		Header:  bytes.Repeat([]byte{seed}, terminal.BattleVideo4.HeaderSize),
		Payload: bytes.Repeat([]byte{seed ^ 0xFF}, terminal.BattleVideo4.PayloadSize),
		Roster:  roster,
		Meta:    terminal.Metadata{Metagame: 3, Country: 49, Region: 1, Streak: uint16(seed)},
	}
}

func TestTerminalRepository_DuplicateUploadIsIgnored(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewTerminalRepository()
	spec := terminal.BattleVideo4.WithSerials(terminal.NewFeistelSerial(11))
	roster := []uint16{25, 0, 6, 0, 0, 0, 0, 0, 0, 0, 0, 150}

	serial, err := repo.Upload(ctx, spec, battleVideo(1, 1000, roster))
	require.NoError(t, err)
	require.NotZero(t, serial)

	dup, err := repo.Upload(ctx, spec, battleVideo(1, 2000, roster))
	require.NoError(t, err)
	require.Zero(t, dup, "the same bytes under another owner are a duplicate")

	count, err := repo.Count(ctx, spec)
	require.NoError(t, err)
	require.Equal(t, uint64(1), count)

	entries, err := repo.Roster(ctx, spec, serial)
	require.NoError(t, err)
	require.Equal(t, []terminal.RosterEntry{{Slot: 0, Species: 25}, {Slot: 2, Species: 6}, {Slot: 11, Species: 150}}, entries)

	item, found, err := repo.Get(ctx, spec, serial, false)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, int32(1000), item.PID)
	key, err := spec.Serials().SerialToKey(serial)
	require.NoError(t, err)
	require.Equal(t, item.ID, key)
}

func TestTerminalRepository_SuppliedSerial(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewTerminalRepository()
	spec := terminal.BattleVideo4.WithSerials(terminal.NewFeistelSerial(3))

	restoredSerial, err := spec.Serials().KeyToSerial(500)
	require.NoError(t, err)

	item := battleVideo(2, 0, nil)
	item.Serial = restoredSerial
	got, err := repo.Upload(ctx, spec, item)
	require.NoError(t, err)
	require.Equal(t, restoredSerial, got)

	stored, found, err := repo.Get(ctx, spec, restoredSerial, false)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, uint64(500), stored.ID)

	// a different upload that claims a taken serial is refused
	clash := battleVideo(3, 0, nil)
	clash.Serial = restoredSerial
	got, err = repo.Upload(ctx, spec, clash)
	require.NoError(t, err)
	require.Zero(t, got)

	// fresh uploads continue after the restored key
	fresh, err := repo.Upload(ctx, spec, battleVideo(4, 1, nil))
	require.NoError(t, err)
	key, err := spec.Serials().SerialToKey(fresh)
	require.NoError(t, err)
	require.Equal(t, uint64(501), key)
}

func TestTerminalRepository_GetAndFlagSaved(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewTerminalRepository()
	spec := terminal.Dressup4

	serial, err := repo.Upload(ctx, spec, terminal.Item{PID: 1, Payload: make([]byte, 224), Meta: terminal.Metadata{Species: 25}})
	require.NoError(t, err)
	require.Equal(t, uint64(1), serial, "dress-up serials are the row key")

	_, _, err = repo.Get(ctx, spec, serial, true)
	require.NoError(t, err)
	item, _, err := repo.Get(ctx, spec, serial, true)
	require.NoError(t, err)
	require.Equal(t, uint64(2), item.Views)

	ok, err := repo.FlagSaved(ctx, spec, serial)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = repo.FlagSaved(ctx, spec, 999)
	require.NoError(t, err)
	require.False(t, ok)

	item, _, _ = repo.Get(ctx, spec, serial, false)
	require.Equal(t, uint64(1), item.Saves)
	require.Equal(t, uint64(2), item.Views)

	_, found, err := repo.Get(ctx, terminal.Box4, serial, false)
	require.NoError(t, err)
	require.False(t, found, "kinds do not share rows")
}

func TestTerminalRepository_Search(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewTerminalRepository()
	repo.now = tickingClock()
	spec := terminal.BattleVideo4

	var serials []uint64
	for seed, roster := range [][]uint16{{25}, {6}, {25, 6}} {
		s, err := repo.Upload(ctx, spec, battleVideo(byte(seed+1), int32(seed), roster))
		require.NoError(t, err)
		serials = append(serials, s)
	}

	res, err := repo.Search(ctx, spec, terminal.BattleVideo4Query(25, terminal.Ranking4None, terminal.Metagame4SearchLatest30, terminal.AnyCountry, terminal.AnyRegion, 30))
	require.NoError(t, err)
	require.Len(t, res, 2)
	require.Equal(t, serials[2], res[0].Serial, "newest first")
	require.Equal(t, serials[0], res[1].Serial)
	require.Nil(t, res[0].Payload, "searches return headers only")
	require.Len(t, res[0].Header, spec.HeaderSize)

	res, err = repo.Search(ctx, spec, terminal.BattleVideo4Query(terminal.AnySpecies, terminal.Ranking4Colosseum, 0, 0, 0, 2))
	require.NoError(t, err)
	require.Len(t, res, 2)
	require.Equal(t, serials[2], res[0].Serial, "highest streak first")
	require.Equal(t, serials[1], res[1].Serial)
}
