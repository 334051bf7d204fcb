package gts

import (
	"bytes"

	crerr "github.com/cockroachdb/errors"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/generation"
	"github.com/L3Technosmith/pkmnFoundations/internal/platform/wire"
)

const (
	TrainerNameSize = 0x10

	offSpecies           = 0xEC
	offGender            = 0xEE
	offLevel             = 0xEF
	offRequestedSpecies  = 0xF0
	offRequestedGender   = 0xF2
	offRequestedMinLevel = 0xF3
	offRequestedMaxLevel = 0xF4
	offUnknown1          = 0xF5
	offTrainerGender     = 0xF6
	offUnknown2          = 0xF7
	offTimeDeposited     = 0xF8
	offTimeExchanged     = 0x100
	offPID               = 0x108
)

// Layout describes where the generation-specific fields of a GTS record sit.
// The block from species to PID is shared by both generations.
type Layout struct {
	Generation  generation.Generation
	Size        int
	PayloadSize int
	PadSize     int
	NameOffset  int
	OTOffset    int
	OTSize      int
	// TailOffset is where country, region, class, exchanged flag, version and language start.
	TailOffset int
	// Extended adds badges and unity tower after the language byte.
	Extended bool
}

var (
	Gen4Layout = Layout{
		Generation:  generation.Gen4,
		Size:        0x124,
		PayloadSize: 0xEC,
		NameOffset:  0x10C,
		OTOffset:    0x11C,
		OTSize:      2,
		TailOffset:  0x11E,
	}
	Gen5Layout = Layout{
		Generation:  generation.Gen5,
		Size:        0x128,
		PayloadSize: 0xDC,
		PadSize:     0x10,
		NameOffset:  0x110,
		OTOffset:    0x10C,
		OTSize:      4,
		TailOffset:  0x120,
		Extended:    true,
	}
)

var ErrUnknownGeneration = crerr.New("unknown gts generation")

func LayoutFor(g generation.Generation) (Layout, error) {
	switch g {
	case generation.Gen4:
		return Gen4Layout, nil
	case generation.Gen5:
		return Gen5Layout, nil
	default:
		return Layout{}, crerr.Wrapf(ErrUnknownGeneration, "%d", g)
	}
}

// Encode produces the canonical wire form of r.
func Encode(r Record) ([]byte, error) {
	layout, err := LayoutFor(r.Generation)
	if err != nil {
		return nil, err
	}

	w := wire.NewWriter(layout.Size)
	w.PutBytes("gts payload", 0, r.Payload, layout.PayloadSize)
	if layout.PadSize > 0 {
		w.PutBytes("gts pad", layout.PayloadSize, r.Pad, layout.PadSize)
	} else if len(r.Pad) != 0 {
		w.Fail(wire.LengthError("gts pad", 0, len(r.Pad)))
	}

	w.PutU16(offSpecies, r.Species)
	w.PutU8(offGender, uint8(r.Gender))
	w.PutU8(offLevel, r.Level)
	w.PutU16(offRequestedSpecies, r.RequestedSpecies)
	w.PutU8(offRequestedGender, uint8(r.RequestedGender))
	w.PutU8(offRequestedMinLevel, r.RequestedMinLevel)
	w.PutU8(offRequestedMaxLevel, r.RequestedMaxLevel)
	w.PutU8(offUnknown1, r.Unknown1)
	w.PutU8(offTrainerGender, r.TrainerGender)
	w.PutU8(offUnknown2, r.Unknown2)
	w.PutU64(offTimeDeposited, wire.PackTime(r.TimeDeposited))
	w.PutU64(offTimeExchanged, wire.PackTime(r.TimeExchanged))
	w.PutI32(offPID, r.PID)

	w.PutBytes("gts trainer name", layout.NameOffset, r.TrainerName, TrainerNameSize)
	if layout.OTSize == 2 {
		if r.TrainerOT > 0xFFFF {
			w.Fail(wire.RangeError("gts trainer ot", uint64(r.TrainerOT), 0xFFFF))
		}
		w.PutU16(layout.OTOffset, uint16(r.TrainerOT))
	} else {
		w.PutU32(layout.OTOffset, r.TrainerOT)
	}

	tail := layout.TailOffset
	w.PutU8(tail, r.TrainerCountry)
	w.PutU8(tail+1, r.TrainerRegion)
	w.PutU8(tail+2, r.TrainerClass)
	w.PutU8(tail+3, r.IsExchanged)
	w.PutU8(tail+4, r.TrainerVersion)
	w.PutU8(tail+5, r.TrainerLanguage)
	if layout.Extended {
		w.PutU8(tail+6, r.TrainerBadges)
		w.PutU8(tail+7, r.TrainerUnityTower)
	} else if r.TrainerBadges != 0 || r.TrainerUnityTower != 0 {
		w.Fail(wire.RangeError("gts gen4 trainer badges", uint64(r.TrainerBadges)|uint64(r.TrainerUnityTower), 0))
	}

	return w.Bytes()
}

// Decode parses a wire record of generation g.
func Decode(g generation.Generation, data []byte) (Record, error) {
	layout, err := LayoutFor(g)
	if err != nil {
		return Record{}, err
	}
	rd, err := wire.NewReader("gts record", data, layout.Size)
	if err != nil {
		return Record{}, err
	}

	r := Record{
		Generation:        g,
		Payload:           rd.Bytes(0, layout.PayloadSize),
		Species:           rd.U16(offSpecies),
		Gender:            Gender(rd.U8(offGender)),
		Level:             rd.U8(offLevel),
		RequestedSpecies:  rd.U16(offRequestedSpecies),
		RequestedGender:   Gender(rd.U8(offRequestedGender)),
		RequestedMinLevel: rd.U8(offRequestedMinLevel),
		RequestedMaxLevel: rd.U8(offRequestedMaxLevel),
		Unknown1:          rd.U8(offUnknown1),
		TrainerGender:     rd.U8(offTrainerGender),
		Unknown2:          rd.U8(offUnknown2),
		PID:               rd.I32(offPID),
		TrainerName:       rd.Bytes(layout.NameOffset, TrainerNameSize),
	}
	if layout.PadSize > 0 {
		r.Pad = rd.Bytes(layout.PayloadSize, layout.PadSize)
	}
	if r.TimeDeposited, err = wire.UnpackTime(rd.U64(offTimeDeposited)); err != nil {
		return Record{}, crerr.Wrap(err, "gts time deposited")
	}
	if r.TimeExchanged, err = wire.UnpackTime(rd.U64(offTimeExchanged)); err != nil {
		return Record{}, crerr.Wrap(err, "gts time exchanged")
	}
	if layout.OTSize == 2 {
		r.TrainerOT = uint32(rd.U16(layout.OTOffset))
	} else {
		r.TrainerOT = rd.U32(layout.OTOffset)
	}

	tail := layout.TailOffset
	r.TrainerCountry = rd.U8(tail)
	r.TrainerRegion = rd.U8(tail + 1)
	r.TrainerClass = rd.U8(tail + 2)
	r.IsExchanged = rd.U8(tail + 3)
	r.TrainerVersion = rd.U8(tail + 4)
	r.TrainerLanguage = rd.U8(tail + 5)
	if layout.Extended {
		r.TrainerBadges = rd.U8(tail + 6)
		r.TrainerUnityTower = rd.U8(tail + 7)
	}

	return r, nil
}

// Equal compares two records by their canonical encoding. Records that cannot be encoded are never equal.
func Equal(a, b Record) bool {
	ea, err := Encode(a)
	if err != nil {
		return false
	}
	eb, err := Encode(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ea, eb)
}
