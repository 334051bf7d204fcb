package terminal

import (
	"context"
	"time"

	"github.com/L3Technosmith/pkmnFoundations/internal/platform/wire"
)

// Metadata holds the searchable columns extracted from an upload by the caller.
// Which fields are meaningful depends on the kind.
type Metadata struct {
	// Species is the dress-up subject.
	Species uint16
	// Label is the box wallpaper label.
	Label int32

	Streak      uint16
	TrainerName []byte
	Metagame    uint8
	Country     uint8
	Region      uint8
}

// Item is one stored upload.
type Item struct {
	ID      uint64
	Kind    Kind
	PID     int32
	Serial  uint64
	Header  []byte
	Payload []byte
	Meta    Metadata
	// Roster holds participant species by slot; 0 marks an empty slot.
	Roster []uint16

	Views     uint64
	Saves     uint64
	TimeAdded time.Time
}

func (i Item) Clone() Item {
	out := i
	out.Header = wire.Clone(i.Header)
	out.Payload = wire.Clone(i.Payload)
	out.Meta.TrainerName = wire.Clone(i.Meta.TrainerName)
	if i.Roster != nil {
		out.Roster = append([]uint16(nil), i.Roster...)
	}
	return out
}

// Validate checks the fixed lengths of an upload for spec s.
func Validate(s Spec, i Item) error {
	if len(i.Header) != s.HeaderSize {
		return wire.LengthError(s.Name+" header", s.HeaderSize, len(i.Header))
	}
	if len(i.Payload) != s.PayloadSize {
		return wire.LengthError(s.Name+" payload", s.PayloadSize, len(i.Payload))
	}
	if len(i.Roster) > s.RosterSize {
		return wire.LengthError(s.Name+" roster", s.RosterSize, len(i.Roster))
	}
	return nil
}

// RosterEntry is one stored participant row.
type RosterEntry struct {
	Slot    int
	Species uint16
}

// RosterEntries returns the non-empty slots of roster.
func RosterEntries(roster []uint16) []RosterEntry {
	out := make([]RosterEntry, 0, len(roster))
	for slot, species := range roster {
		if species == 0 {
			continue
		}
		out = append(out, RosterEntry{Slot: slot, Species: species})
	}
	return out
}

// ExpandRoster turns stored rows back into a slot array of the kind's roster size.
func ExpandRoster(s Spec, entries []RosterEntry) []uint16 {
	if !s.HasRoster() {
		return nil
	}
	out := make([]uint16, s.RosterSize)
	for _, e := range entries {
		if e.Slot >= 0 && e.Slot < s.RosterSize {
			out[e.Slot] = e.Species
		}
	}
	return out
}

type Repository interface {
	// Upload stores i unless byte-identical content already exists, and returns its serial.
	// A duplicate, or a supplied serial whose key is taken, returns 0.
	Upload(ctx context.Context, s Spec, i Item) (uint64, error)
	Search(ctx context.Context, s Spec, f Filter) ([]Item, error)
	Get(ctx context.Context, s Spec, serial uint64, incrementViews bool) (Item, bool, error)
	FlagSaved(ctx context.Context, s Spec, serial uint64) (bool, error)
	Count(ctx context.Context, s Spec) (uint64, error)
}
