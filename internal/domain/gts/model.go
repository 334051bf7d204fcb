package gts

import (
	"time"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/generation"
	"github.com/L3Technosmith/pkmnFoundations/internal/platform/wire"
)

type Gender uint8

const (
	GenderMale   Gender = 0x01
	GenderFemale Gender = 0x02
	GenderEither Gender = 0x03
)

// Record is one trade listing as the game client sees it.
// Treat it as a value: use Clone before handing the byte slices to anything that may keep them.
type Record struct {
	Generation generation.Generation

	// Payload is the obfuscated pokemon blob.
	Payload []byte
	// Pad is the 16 unknown bytes after the gen5 payload; nil for gen4.
	Pad []byte

	Species uint16
	Gender  Gender
	Level   uint8

	RequestedSpecies  uint16
	RequestedGender   Gender
	RequestedMinLevel uint8
	RequestedMaxLevel uint8

	Unknown1      uint8
	TrainerGender uint8
	Unknown2      uint8

	TimeDeposited *time.Time
	TimeExchanged *time.Time

	// PID is the player's account id.
	PID int32

	TrainerOT       uint32
	TrainerName     []byte
	TrainerCountry  uint8
	TrainerRegion   uint8
	TrainerClass    uint8
	IsExchanged     uint8
	TrainerVersion  uint8
	TrainerLanguage uint8

	// Gen5 only.
	TrainerBadges     uint8
	TrainerUnityTower uint8
}

func (r Record) Exchanged() bool {
	return r.IsExchanged != 0
}

func (r Record) Clone() Record {
	out := r
	out.Payload = wire.Clone(r.Payload)
	out.Pad = wire.Clone(r.Pad)
	out.TrainerName = wire.Clone(r.TrainerName)
	out.TimeDeposited = cloneTime(r.TimeDeposited)
	out.TimeExchanged = cloneTime(r.TimeExchanged)
	return out
}

// HistoryEntry is an append-only copy of a listing taken when it leaves the exchange.
type HistoryEntry struct {
	ID            uint64
	Record        Record
	TimeWithdrawn *time.Time
	// TradeID is the row id of the listing the entry was taken from; nil when no listing existed.
	TradeID    *uint64
	PartnerPID *int32
}

// SearchQuery filters active listings. Zero species/country, GenderEither and zero level bounds mean "any".
type SearchQuery struct {
	Generation generation.Generation
	PID        int32
	Species    uint16
	Gender     Gender
	MinLevel   uint8
	MaxLevel   uint8
	Country    uint8
	Limit      int
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
