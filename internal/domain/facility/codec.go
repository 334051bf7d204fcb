package facility

import (
	crerr "github.com/cockroachdb/errors"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/generation"
	"github.com/L3Technosmith/pkmnFoundations/internal/platform/wire"
)

const (
	NameSize     = 16
	PhraseSize   = 8
	EVsSize      = 6
	NicknameSize = 22
	ProfileSize  = 34

	baseMemberSize = 56
)

// Schema is the per-generation shape of a facility record.
type Schema struct {
	Generation   generation.Generation
	MemberSize   int
	Unknown4Size int
	RecordSize   int
}

var (
	BattleTower4 = Schema{
		Generation: generation.Gen4,
		MemberSize: baseMemberSize,
		RecordSize: PartySize*baseMemberSize + ProfileSize + 3*PhraseSize + 2,
	}
	BattleSubway5 = Schema{
		Generation:   generation.Gen5,
		MemberSize:   baseMemberSize + 4,
		Unknown4Size: 5,
		RecordSize:   PartySize*(baseMemberSize+4) + ProfileSize + 3*PhraseSize + 2 + 5,
	}
)

var ErrUnknownGeneration = crerr.New("unknown facility generation")

func SchemaFor(g generation.Generation) (Schema, error) {
	switch g {
	case generation.Gen4:
		return BattleTower4, nil
	case generation.Gen5:
		return BattleSubway5, nil
	default:
		return Schema{}, crerr.Wrapf(ErrUnknownGeneration, "%d", g)
	}
}

func (s Schema) profileOffset() int {
	return PartySize * s.MemberSize
}

// EncodeProfile writes the 34-byte trainer card.
func EncodeProfile(p Profile) ([]byte, error) {
	w := wire.NewWriter(ProfileSize)
	putProfile(w, 0, p)
	return w.Bytes()
}

func DecodeProfile(data []byte) (Profile, error) {
	rd, err := wire.NewReader("facility profile", data, ProfileSize)
	if err != nil {
		return Profile{}, err
	}
	return readProfile(rd, 0), nil
}

// Encode writes the wire part of a competitor upload.
func Encode(r BattleRecord) ([]byte, error) {
	s, err := SchemaFor(r.Generation)
	if err != nil {
		return nil, err
	}

	w := wire.NewWriter(s.RecordSize)
	for i, m := range r.Party {
		putMember(w, s, i*s.MemberSize, m)
	}
	off := s.profileOffset()
	putProfile(w, off, r.Profile)
	off += ProfileSize
	w.PutBytes("facility phrase challenged", off, r.PhraseChallenged, PhraseSize)
	w.PutBytes("facility phrase won", off+PhraseSize, r.PhraseWon, PhraseSize)
	w.PutBytes("facility phrase lost", off+2*PhraseSize, r.PhraseLost, PhraseSize)
	off += 3 * PhraseSize
	w.PutU16(off, r.Unknown3)
	off += 2
	if s.Unknown4Size > 0 {
		w.PutBytes("facility unknown4", off, r.Unknown4, s.Unknown4Size)
	} else if len(r.Unknown4) != 0 {
		w.Fail(wire.LengthError("facility unknown4", 0, len(r.Unknown4)))
	}

	return w.Bytes()
}

func Decode(g generation.Generation, data []byte) (BattleRecord, error) {
	s, err := SchemaFor(g)
	if err != nil {
		return BattleRecord{}, err
	}
	rd, err := wire.NewReader("facility record", data, s.RecordSize)
	if err != nil {
		return BattleRecord{}, err
	}

	r := BattleRecord{Generation: g}
	for i := range r.Party {
		r.Party[i] = readMember(rd, s, i*s.MemberSize)
	}
	off := s.profileOffset()
	r.Profile = readProfile(rd, off)
	off += ProfileSize
	r.PhraseChallenged = rd.Bytes(off, PhraseSize)
	r.PhraseWon = rd.Bytes(off+PhraseSize, PhraseSize)
	r.PhraseLost = rd.Bytes(off+2*PhraseSize, PhraseSize)
	off += 3 * PhraseSize
	r.Unknown3 = rd.U16(off)
	off += 2
	if s.Unknown4Size > 0 {
		r.Unknown4 = rd.Bytes(off, s.Unknown4Size)
	}

	return r, nil
}

// EncodeMember writes one party member in the layout of schema s.
func EncodeMember(s Schema, m PartyMember) ([]byte, error) {
	w := wire.NewWriter(s.MemberSize)
	putMember(w, s, 0, m)
	return w.Bytes()
}

func DecodeMember(s Schema, data []byte) (PartyMember, error) {
	rd, err := wire.NewReader("facility party member", data, s.MemberSize)
	if err != nil {
		return PartyMember{}, err
	}
	return readMember(rd, s, 0), nil
}

func putMember(w *wire.Writer, s Schema, off int, m PartyMember) {
	w.PutU16(off, m.Species)
	w.PutU16(off+2, m.HeldItem)
	for i, move := range m.Moves {
		w.PutU16(off+4+2*i, move)
	}
	w.PutU32(off+12, m.OT)
	w.PutU32(off+16, m.Personality)
	w.PutU32(off+20, m.IVs)
	w.PutBytes("facility party evs", off+24, m.EVs, EVsSize)
	w.PutU8(off+30, m.Unknown1)
	w.PutU8(off+31, m.Language)
	w.PutU8(off+32, m.Ability)
	w.PutU8(off+33, m.Happiness)
	w.PutBytes("facility party nickname", off+34, m.Nickname, NicknameSize)
	if s.MemberSize > baseMemberSize {
		w.PutU32(off+baseMemberSize, m.Unknown2)
	} else if m.Unknown2 != 0 {
		w.Fail(wire.RangeError("facility gen4 party unknown2", uint64(m.Unknown2), 0))
	}
}

func readMember(rd wire.Reader, s Schema, off int) PartyMember {
	m := PartyMember{
		Species:     rd.U16(off),
		HeldItem:    rd.U16(off + 2),
		OT:          rd.U32(off + 12),
		Personality: rd.U32(off + 16),
		IVs:         rd.U32(off + 20),
		EVs:         rd.Bytes(off+24, EVsSize),
		Unknown1:    rd.U8(off + 30),
		Language:    rd.U8(off + 31),
		Ability:     rd.U8(off + 32),
		Happiness:   rd.U8(off + 33),
		Nickname:    rd.Bytes(off+34, NicknameSize),
	}
	for i := range m.Moves {
		m.Moves[i] = rd.U16(off + 4 + 2*i)
	}
	if s.MemberSize > baseMemberSize {
		m.Unknown2 = rd.U32(off + baseMemberSize)
	}
	return m
}

func putProfile(w *wire.Writer, off int, p Profile) {
	w.PutBytes("facility profile name", off, p.Name, NameSize)
	w.PutU8(off+16, p.Version)
	w.PutU8(off+17, p.Language)
	w.PutU8(off+18, p.Country)
	w.PutU8(off+19, p.Region)
	w.PutU32(off+20, p.OT)
	w.PutBytes("facility leader phrase", off+24, p.PhraseLeader, PhraseSize)
	w.PutU8(off+32, p.Gender)
	w.PutU8(off+33, p.Unknown)
}

func readProfile(rd wire.Reader, off int) Profile {
	return Profile{
		Name:         rd.Bytes(off, NameSize),
		Version:      rd.U8(off + 16),
		Language:     rd.U8(off + 17),
		Country:      rd.U8(off + 18),
		Region:       rd.U8(off + 19),
		OT:           rd.U32(off + 20),
		PhraseLeader: rd.Bytes(off+24, PhraseSize),
		Gender:       rd.U8(off + 32),
		Unknown:      rd.U8(off + 33),
	}
}
