package memory

import (
	"context"
	"sync"
	"time"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/generation"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/profile"
)

type ProfileRepository struct {
	mu    sync.RWMutex
	now   func() time.Time
	items map[listingKey]profile.TrainerProfile
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{
		now:   time.Now,
		items: make(map[listingKey]profile.TrainerProfile),
	}
}

func (r *ProfileRepository) Upsert(_ context.Context, p profile.TrainerProfile) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := listingKey{gen: p.Generation, pid: p.PID}
	now := r.now().UTC()
	stored := p.Clone()
	stored.TimeUpdated = now
	stored.TimeAdded = now
	if existing, ok := r.items[key]; ok {
		stored.TimeAdded = existing.TimeAdded
	}
	r.items[key] = stored
	return true, nil
}

func (r *ProfileRepository) Get(_ context.Context, g generation.Generation, pid int32) (profile.TrainerProfile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[listingKey{gen: g, pid: pid}]
	if !ok {
		return profile.TrainerProfile{}, false, nil
	}
	return p.Clone(), true, nil
}
