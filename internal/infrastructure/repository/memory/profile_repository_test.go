package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/generation"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/profile"
)

func TestProfileRepository_Upsert(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewProfileRepository()
	repo.now = tickingClock()

	p := profile.TrainerProfile{Generation: generation.Gen4, PID: 9, Country: 1, Name: make([]byte, profile.NameSize), Extra: make([]byte, profile.ExtraSize)}
	ok, err := repo.Upsert(ctx, p)
	require.NoError(t, err)
	require.True(t, ok)

	p.Country = 2
	_, err = repo.Upsert(ctx, p)
	require.NoError(t, err)

	got, found, err := repo.Get(ctx, generation.Gen4, 9)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, uint8(2), got.Country)
	require.True(t, got.TimeAdded.Before(got.TimeUpdated))

	_, found, err = repo.Get(ctx, generation.Gen5, 9)
	require.NoError(t, err)
	require.False(t, found)
}
