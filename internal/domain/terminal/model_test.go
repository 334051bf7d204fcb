package terminal

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/L3Technosmith/pkmnFoundations/internal/platform/wire"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	ok := Item{Header: make([]byte, 228), Payload: make([]byte, 7272), Roster: make([]uint16, 12)}
	require.NoError(t, Validate(BattleVideo4, ok))

	bad := ok
	bad.Header = make([]byte, 196)
	require.ErrorIs(t, Validate(BattleVideo4, bad), wire.ErrLength)

	bad = ok
	bad.Roster = make([]uint16, 13)
	require.ErrorIs(t, Validate(BattleVideo4, bad), wire.ErrLength)

	require.ErrorIs(t, Validate(Dressup4, Item{Payload: make([]byte, 224), Header: []byte{1}}), wire.ErrLength)
	require.NoError(t, Validate(Dressup4, Item{Payload: make([]byte, 224)}))
}

func TestRosterEntries(t *testing.T) {
	t.Parallel()

	entries := RosterEntries([]uint16{0, 25, 0, 6})
	require.Equal(t, []RosterEntry{{Slot: 1, Species: 25}, {Slot: 3, Species: 6}}, entries)
	require.Equal(t, []uint16{0, 25, 0, 6}, ExpandRoster(Musical5, entries))
	require.Nil(t, ExpandRoster(Box4, entries))
}

func TestContentHash(t *testing.T) {
	t.Parallel()

	a := ContentHash([]byte("head"), []byte("body"))
	b := ContentHash(nil, []byte("headbody"))
	require.Len(t, a, 16)
	require.True(t, bytes.Equal(a, b), "the hash covers the concatenation")
	require.False(t, bytes.Equal(a, ContentHash(nil, []byte("body"))))
}

func TestKinds(t *testing.T) {
	t.Parallel()

	for _, s := range Specs {
		k, err := ParseKind(s.Name)
		require.NoError(t, err)
		require.Equal(t, s.Kind, k)
		require.Equal(t, s.Name, k.String())
	}
	_, err := ParseKind("pokedex")
	require.ErrorIs(t, err, ErrUnknownKind)

	bv := BattleVideo5.WithSerials(NewFeistelSerial(7))
	require.IsType(t, FeistelSerial{}, bv.Serials())
	require.IsType(t, IdentitySerial{}, Dressup4.Serials())
}
