package facility

import (
	"bytes"
	"sort"
	"time"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/generation"
	"github.com/L3Technosmith/pkmnFoundations/internal/platform/wire"
)

const (
	// MaxBattlesWon is the best result a challenger can report for one round.
	MaxBattlesWon = 7
	// OpponentLimit is how many competitors a challenger is matched against.
	OpponentLimit = 7
	// LeaderLimit caps the leader list shown in a room.
	LeaderLimit = 30
	PartySize   = 3
)

// PartyMember is one pokemon of a facility party.
type PartyMember struct {
	Species     uint16
	HeldItem    uint16
	Moves       [4]uint16
	OT          uint32
	Personality uint32
	IVs         uint32
	EVs         []byte
	Unknown1    uint8
	Language    uint8
	Ability     uint8
	Happiness   uint8
	Nickname    []byte
	// Unknown2 exists on gen5 parties only.
	Unknown2 uint32
}

// Profile is the trainer card shown for a competitor or leader.
type Profile struct {
	Name         []byte
	Version      uint8
	Language     uint8
	Country      uint8
	Region       uint8
	OT           uint32
	PhraseLeader []byte
	Gender       uint8
	Unknown      uint8
}

// BattleRecord is the wire part of a facility upload.
type BattleRecord struct {
	Generation       generation.Generation
	Party            [PartySize]PartyMember
	Profile          Profile
	PhraseChallenged []byte
	PhraseWon        []byte
	PhraseLost       []byte
	Unknown3         uint16
	// Unknown4 exists on gen5 records only.
	Unknown4 []byte
}

// Competitor is a challenger entry ranked by Position inside its (RoomNum, Rank) scope.
type Competitor struct {
	ID         uint64
	PID        int32
	RoomNum    uint8
	Rank       uint8
	BattlesWon uint8
	Position   int
	Unknown5   uint64
	Record     BattleRecord

	TimeAdded   time.Time
	TimeUpdated time.Time
}

// Leader is a room leader entry ordered by recency only.
type Leader struct {
	ID         uint64
	Generation generation.Generation
	PID        int32
	RoomNum    uint8
	Rank       uint8
	Profile    Profile

	TimeAdded   time.Time
	TimeUpdated time.Time
}

// Identity is what an upload is matched on when looking for the row it replaces.
type Identity struct {
	PID       int32
	RoomNum   uint8
	Rank      uint8
	Name      []byte
	Version   uint8
	Language  uint8
	TrainerID uint32
}

func (c Competitor) Identity() Identity {
	return identityOf(c.PID, c.RoomNum, c.Rank, c.Record.Profile)
}

func (l Leader) Identity() Identity {
	return identityOf(l.PID, l.RoomNum, l.Rank, l.Profile)
}

func identityOf(pid int32, room, rank uint8, p Profile) Identity {
	return Identity{
		PID:       pid,
		RoomNum:   room,
		Rank:      rank,
		Name:      p.Name,
		Version:   p.Version,
		Language:  p.Language,
		TrainerID: p.OT,
	}
}

// MatchesPID is the primary identity rule.
func (i Identity) MatchesPID(pid int32, room, rank uint8) bool {
	return i.PID != 0 && pid == i.PID && room == i.RoomNum && rank == i.Rank
}

// MatchesFallback is the restored-data rule: only rows without a PID are eligible.
func (i Identity) MatchesFallback(pid int32, room, rank uint8, p Profile) bool {
	return pid == 0 &&
		room == i.RoomNum &&
		rank == i.Rank &&
		bytes.Equal(p.Name, i.Name) &&
		p.Version == i.Version &&
		p.Language == i.Language &&
		p.OT == i.TrainerID
}

func (m PartyMember) Clone() PartyMember {
	out := m
	out.EVs = wire.Clone(m.EVs)
	out.Nickname = wire.Clone(m.Nickname)
	return out
}

func (p Profile) Clone() Profile {
	out := p
	out.Name = wire.Clone(p.Name)
	out.PhraseLeader = wire.Clone(p.PhraseLeader)
	return out
}

func (r BattleRecord) Clone() BattleRecord {
	out := r
	for i := range r.Party {
		out.Party[i] = r.Party[i].Clone()
	}
	out.Profile = r.Profile.Clone()
	out.PhraseChallenged = wire.Clone(r.PhraseChallenged)
	out.PhraseWon = wire.Clone(r.PhraseWon)
	out.PhraseLost = wire.Clone(r.PhraseLost)
	out.Unknown4 = wire.Clone(r.Unknown4)
	return out
}

func (c Competitor) Clone() Competitor {
	out := c
	out.Record = c.Record.Clone()
	return out
}

func (l Leader) Clone() Leader {
	out := l
	out.Profile = l.Profile.Clone()
	return out
}

// Candidate is a stored row of the upload's scope that the upload may replace.
type Candidate struct {
	ID      uint64
	PID     int32
	Profile Profile
}

// ResolveIdentity returns the id of the row an upload with identity id replaces, or 0 when it is new.
// A PID match wins; otherwise the upload may claim a restored row that has no PID. Ties go to the lowest id.
func ResolveIdentity(id Identity, rows []Candidate) uint64 {
	sorted := append([]Candidate(nil), rows...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })
	for _, row := range sorted {
		if id.MatchesPID(row.PID, id.RoomNum, id.Rank) {
			return row.ID
		}
	}
	for _, row := range sorted {
		if id.MatchesFallback(row.PID, id.RoomNum, id.Rank, row.Profile) {
			return row.ID
		}
	}
	return 0
}
