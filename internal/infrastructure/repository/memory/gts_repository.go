package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/generation"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/gts"
)

type listingKey struct {
	gen generation.Generation
	pid int32
}

type listingRow struct {
	id     uint64
	record gts.Record
}

// GTSRepository keeps listings in a map guarded by one mutex, so every method is serialized.
type GTSRepository struct {
	mu        sync.RWMutex
	nextID    uint64
	listings  map[listingKey]listingRow
	history   []gts.HistoryEntry
	historyID uint64
}

func NewGTSRepository() *GTSRepository {
	return &GTSRepository{listings: make(map[listingKey]listingRow)}
}

func (r *GTSRepository) GetByPID(_ context.Context, gen generation.Generation, pid int32) (gts.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.listings[listingKey{gen: gen, pid: pid}]
	if !ok {
		return gts.Record{}, false, nil
	}
	return row.record.Clone(), true, nil
}

func (r *GTSRepository) Deposit(_ context.Context, record gts.Record) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := listingKey{gen: record.Generation, pid: record.PID}
	if _, exists := r.listings[key]; exists {
		return false, nil
	}
	r.nextID++
	r.listings[key] = listingRow{id: r.nextID, record: record.Clone()}
	return true, nil
}

func (r *GTSRepository) Withdraw(_ context.Context, gen generation.Generation, pid int32, withdrawnAt time.Time) (gts.Record, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := listingKey{gen: gen, pid: pid}
	row, ok := r.listings[key]
	if !ok {
		return gts.Record{}, false, nil
	}
	r.appendHistory(gts.HistoryEntry{Record: row.record, TimeWithdrawn: &withdrawnAt})
	delete(r.listings, key)
	return row.record, true, nil
}

// Exchange swaps the listing in place: the traded record keeps the listing's row id,
// so history rows written before and after the trade share one trade id.
func (r *GTSRepository) Exchange(_ context.Context, traded, believed gts.Record, partnerPID int32, withdrawnAt time.Time) (bool, error) {
	if traded.PID != believed.PID || traded.Generation != believed.Generation {
		return false, fmt.Errorf("exchange: traded record %s/%d does not take over listing %s/%d",
			traded.Generation, traded.PID, believed.Generation, believed.PID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := listingKey{gen: believed.Generation, pid: believed.PID}
	current, ok := r.listings[key]
	if !ok || !gts.Equal(current.record, believed) {
		return false, nil
	}

	r.appendHistory(gts.HistoryEntry{Record: believed, TimeWithdrawn: &withdrawnAt, PartnerPID: &partnerPID})
	r.listings[key] = listingRow{id: current.id, record: traded.Clone()}
	return true, nil
}

func (r *GTSRepository) Search(_ context.Context, query gts.SearchQuery) ([]gts.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := make([]listingRow, 0)
	for _, row := range r.listings {
		if gts.Matches(row.record, query) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i].record.TimeDeposited, rows[j].record.TimeDeposited
		switch {
		case a == nil && b == nil:
		case a == nil:
			return false
		case b == nil:
			return true
		case !a.Equal(*b):
			return a.After(*b)
		}
		return rows[i].id > rows[j].id
	})
	if query.Limit > 0 && len(rows) > query.Limit {
		rows = rows[:query.Limit]
	}

	out := make([]gts.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.record.Clone())
	}
	return out, nil
}

func (r *GTSRepository) LogHistory(_ context.Context, entry gts.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.appendHistory(entry)
	return nil
}

// appendHistory stamps entry with the trade id of the listing still stored for its player. r.mu must be held.
func (r *GTSRepository) appendHistory(entry gts.HistoryEntry) {
	entry.Record = entry.Record.Clone()
	entry.TradeID = nil
	if row, ok := r.listings[listingKey{gen: entry.Record.Generation, pid: entry.Record.PID}]; ok {
		id := row.id
		entry.TradeID = &id
	}

	if entry.Record.Exchanged() && entry.PartnerPID == nil && entry.TradeID != nil {
		for i := len(r.history) - 1; i >= 0; i-- {
			h := r.history[i]
			if h.Record.Generation != entry.Record.Generation || h.TradeID == nil || *h.TradeID != *entry.TradeID {
				continue
			}
			if h.Record.Exchanged() || h.PartnerPID == nil {
				continue
			}
			partner := *h.PartnerPID
			entry.PartnerPID = &partner
			break
		}
	}

	if entry.TimeWithdrawn != nil {
		at := *entry.TimeWithdrawn
		entry.TimeWithdrawn = &at
	}
	if entry.PartnerPID != nil {
		partner := *entry.PartnerPID
		entry.PartnerPID = &partner
	}

	r.historyID++
	entry.ID = r.historyID
	r.history = append(r.history, entry)
}

func (r *GTSRepository) ListHistory(_ context.Context, gen generation.Generation, pid int32) ([]gts.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gts.HistoryEntry, 0)
	for _, h := range r.history {
		if h.Record.Generation == gen && h.Record.PID == pid {
			h.Record = h.Record.Clone()
			out = append(out, h)
		}
	}
	return out, nil
}

func (r *GTSRepository) CountActive(_ context.Context, gen generation.Generation) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for key, row := range r.listings {
		if key.gen == gen && !row.record.Exchanged() {
			count++
		}
	}
	return count, nil
}
