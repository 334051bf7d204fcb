package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/facility"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/generation"
)

type FacilityRepository struct {
	mu          sync.RWMutex
	now         func() time.Time
	nextID      uint64
	competitors map[uint64]facility.Competitor
	leaders     map[uint64]facility.Leader
}

func NewFacilityRepository() *FacilityRepository {
	return &FacilityRepository{
		now:         time.Now,
		competitors: make(map[uint64]facility.Competitor),
		leaders:     make(map[uint64]facility.Leader),
	}
}

func (r *FacilityRepository) UpsertCompetitor(_ context.Context, c facility.Competitor) (uint64, error) {
	if err := facility.ValidateCompetitor(c); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	gen := c.Record.Generation
	scope := make([]facility.Slot, 0)
	candidates := make([]facility.Candidate, 0)
	for id, row := range r.competitors {
		if row.Record.Generation != gen || row.RoomNum != c.RoomNum || row.Rank != c.Rank {
			continue
		}
		scope = append(scope, facility.Slot{ID: id, Position: row.Position, BattlesWon: row.BattlesWon})
		candidates = append(candidates, facility.Candidate{ID: id, PID: row.PID, Profile: row.Record.Profile})
	}

	selfID := facility.ResolveIdentity(c.Identity(), candidates)
	placement, err := facility.Place(scope, selfID, c.BattlesWon)
	if err != nil {
		return 0, err
	}

	for _, m := range placement.Moves {
		row := r.competitors[m.ID]
		row.Position = m.To
		r.competitors[m.ID] = row
	}

	now := r.now().UTC()
	stored := c.Clone()
	stored.Position = placement.Position
	stored.TimeUpdated = now
	if selfID == 0 {
		r.nextID++
		selfID = r.nextID
		stored.TimeAdded = now
	} else {
		stored.TimeAdded = r.competitors[selfID].TimeAdded
	}
	stored.ID = selfID
	r.competitors[selfID] = stored

	return selfID, nil
}

func (r *FacilityRepository) UpsertLeader(_ context.Context, l facility.Leader) (uint64, error) {
	if err := facility.ValidateLeader(l); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	candidates := make([]facility.Candidate, 0)
	for id, row := range r.leaders {
		if row.Generation == l.Generation && row.RoomNum == l.RoomNum && row.Rank == l.Rank {
			candidates = append(candidates, facility.Candidate{ID: id, PID: row.PID, Profile: row.Profile})
		}
	}

	now := r.now().UTC()
	stored := l.Clone()
	stored.TimeUpdated = now
	selfID := facility.ResolveIdentity(l.Identity(), candidates)
	if selfID == 0 {
		r.nextID++
		selfID = r.nextID
		stored.TimeAdded = now
	} else {
		stored.TimeAdded = r.leaders[selfID].TimeAdded
	}
	stored.ID = selfID
	r.leaders[selfID] = stored

	return selfID, nil
}

func (r *FacilityRepository) ListCompetitors(_ context.Context, gen generation.Generation, pid int32, rank, room uint8, limit int) ([]facility.Competitor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]facility.Competitor, 0)
	for _, row := range r.competitors {
		if row.Record.Generation == gen && row.RoomNum == room && row.Rank == rank && row.PID != pid {
			out = append(out, row.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *FacilityRepository) ListLeaders(_ context.Context, gen generation.Generation, rank, room uint8, limit int) ([]facility.Leader, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]facility.Leader, 0)
	for _, row := range r.leaders {
		if row.Generation == gen && row.RoomNum == room && row.Rank == rank {
			out = append(out, row.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TimeUpdated.Equal(out[j].TimeUpdated) {
			return out[i].TimeUpdated.After(out[j].TimeUpdated)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
