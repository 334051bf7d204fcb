package memory

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/terminal"
)

type terminalTable struct {
	nextID   uint64
	items    map[uint64]terminal.Item
	bySerial map[uint64]uint64
	byHash   map[string][]uint64
}

func newTerminalTable() *terminalTable {
	return &terminalTable{
		items:    make(map[uint64]terminal.Item),
		bySerial: make(map[uint64]uint64),
		byHash:   make(map[string][]uint64),
	}
}

// TerminalRepository stores every content kind in its own table, like the postgres schema.
type TerminalRepository struct {
	mu     sync.RWMutex
	now    func() time.Time
	tables map[terminal.Kind]*terminalTable
}

func NewTerminalRepository() *TerminalRepository {
	return &TerminalRepository{
		now:    time.Now,
		tables: make(map[terminal.Kind]*terminalTable),
	}
}

func (r *TerminalRepository) table(k terminal.Kind) *terminalTable {
	t, ok := r.tables[k]
	if !ok {
		t = newTerminalTable()
		r.tables[k] = t
	}
	return t
}

func (r *TerminalRepository) Upload(_ context.Context, s terminal.Spec, item terminal.Item) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := r.table(s.Kind)
	hash := string(terminal.ContentHash(item.Header, item.Payload))
	for _, id := range t.byHash[hash] {
		existing := t.items[id]
		if bytes.Equal(existing.Header, item.Header) && bytes.Equal(existing.Payload, item.Payload) {
			return 0, nil
		}
	}

	serials := s.Serials()
	var key, serial uint64
	if item.Serial != 0 {
		k, err := serials.SerialToKey(item.Serial)
		if err != nil {
			return 0, fmt.Errorf("derive %s key from serial %d: %w", s.Name, item.Serial, err)
		}
		if _, taken := t.items[k]; taken {
			return 0, nil
		}
		if _, taken := t.bySerial[item.Serial]; taken {
			return 0, nil
		}
		key, serial = k, item.Serial
		if key > t.nextID {
			t.nextID = key
		}
	} else {
		t.nextID++
		key = t.nextID
		v, err := serials.KeyToSerial(key)
		if err != nil {
			t.nextID--
			return 0, fmt.Errorf("assign %s serial for key %d: %w", s.Name, key, err)
		}
		serial = v
	}

	stored := item.Clone()
	stored.ID = key
	stored.Kind = s.Kind
	stored.Serial = serial
	stored.Views, stored.Saves = 0, 0
	stored.TimeAdded = r.now().UTC()
	stored.Roster = terminal.ExpandRoster(s, terminal.RosterEntries(item.Roster))

	t.items[key] = stored
	t.bySerial[serial] = key
	t.byHash[hash] = append(t.byHash[hash], key)
	return serial, nil
}

func (r *TerminalRepository) Search(_ context.Context, s terminal.Spec, f terminal.Filter) ([]terminal.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tables[s.Kind]
	if !ok {
		return []terminal.Item{}, nil
	}

	out := make([]terminal.Item, 0)
	for _, item := range t.items {
		if f.Matches(s, item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return f.Less(out[i], out[j]) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	for i := range out {
		out[i] = out[i].Clone()
		if s.HasHeader() {
			out[i].Payload = nil
		}
	}
	return out, nil
}

func (r *TerminalRepository) Get(_ context.Context, s terminal.Spec, serial uint64, incrementViews bool) (terminal.Item, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tables[s.Kind]
	if !ok {
		return terminal.Item{}, false, nil
	}
	key, ok := t.bySerial[serial]
	if !ok {
		return terminal.Item{}, false, nil
	}
	item := t.items[key]
	if incrementViews {
		item.Views++
		t.items[key] = item
	}
	return item.Clone(), true, nil
}

func (r *TerminalRepository) FlagSaved(_ context.Context, s terminal.Spec, serial uint64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tables[s.Kind]
	if !ok {
		return false, nil
	}
	key, ok := t.bySerial[serial]
	if !ok {
		return false, nil
	}
	item := t.items[key]
	item.Saves++
	t.items[key] = item
	return true, nil
}

func (r *TerminalRepository) Count(_ context.Context, s terminal.Spec) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tables[s.Kind]
	if !ok {
		return 0, nil
	}
	return uint64(len(t.items)), nil
}

// Roster returns the stored participant rows of one item, for inspection in tests and tooling.
func (r *TerminalRepository) Roster(_ context.Context, s terminal.Spec, serial uint64) ([]terminal.RosterEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tables[s.Kind]
	if !ok {
		return nil, nil
	}
	key, ok := t.bySerial[serial]
	if !ok {
		return nil, nil
	}
	return terminal.RosterEntries(t.items[key].Roster), nil
}
