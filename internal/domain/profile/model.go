// Package profile stores the gamestats trainer profile each player uploads on connect.
package profile

import (
	"context"
	"time"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/generation"
	"github.com/L3Technosmith/pkmnFoundations/internal/platform/wire"
)

const (
	Size      = 100
	NameSize  = 16
	ExtraSize = 72

	offPID      = 0x00
	offVersion  = 0x04
	offLanguage = 0x05
	offCountry  = 0x06
	offRegion   = 0x07
	offOT       = 0x08
	offName     = 0x0C
	offExtra    = 0x1C
)

// TrainerProfile is the decoded 100-byte profile. Extra is kept opaque and stored as sent.
type TrainerProfile struct {
	Generation generation.Generation
	PID        int32
	Version    uint8
	Language   uint8
	Country    uint8
	Region     uint8
	OT         uint32
	Name       []byte
	Extra      []byte

	TimeAdded   time.Time
	TimeUpdated time.Time
}

func (p TrainerProfile) Clone() TrainerProfile {
	out := p
	out.Name = wire.Clone(p.Name)
	out.Extra = wire.Clone(p.Extra)
	return out
}

// Encode writes the wire form of p. Timestamps are not part of it.
func Encode(p TrainerProfile) ([]byte, error) {
	w := wire.NewWriter(Size)
	w.PutI32(offPID, p.PID)
	w.PutU8(offVersion, p.Version)
	w.PutU8(offLanguage, p.Language)
	w.PutU8(offCountry, p.Country)
	w.PutU8(offRegion, p.Region)
	w.PutU32(offOT, p.OT)
	w.PutBytes("profile name", offName, p.Name, NameSize)
	w.PutBytes("profile extra", offExtra, p.Extra, ExtraSize)
	return w.Bytes()
}

func Decode(g generation.Generation, data []byte) (TrainerProfile, error) {
	rd, err := wire.NewReader("profile", data, Size)
	if err != nil {
		return TrainerProfile{}, err
	}
	return TrainerProfile{
		Generation: g,
		PID:        rd.I32(offPID),
		Version:    rd.U8(offVersion),
		Language:   rd.U8(offLanguage),
		Country:    rd.U8(offCountry),
		Region:     rd.U8(offRegion),
		OT:         rd.U32(offOT),
		Name:       rd.Bytes(offName, NameSize),
		Extra:      rd.Bytes(offExtra, ExtraSize),
	}, nil
}

type Repository interface {
	// Upsert inserts the profile for its PID or replaces the stored one. It reports whether a row was written.
	Upsert(ctx context.Context, p TrainerProfile) (bool, error)
	Get(ctx context.Context, g generation.Generation, pid int32) (TrainerProfile, bool, error)
}
