package gts

import (
	"time"

	"github.com/L3Technosmith/pkmnFoundations/internal/platform/wire"
)

// Validate checks the fixed-length fields a store needs before it writes anything.
func Validate(r Record) error {
	layout, err := LayoutFor(r.Generation)
	if err != nil {
		return err
	}
	if len(r.Payload) != layout.PayloadSize {
		return wire.LengthError("gts payload", layout.PayloadSize, len(r.Payload))
	}
	if len(r.TrainerName) != TrainerNameSize {
		return wire.LengthError("gts trainer name", TrainerNameSize, len(r.TrainerName))
	}
	if len(r.Pad) != layout.PadSize {
		return wire.LengthError("gts pad", layout.PadSize, len(r.Pad))
	}
	return nil
}

// CheckLevels reports whether level lies in [min, max]; a max of 0 means no upper bound.
func CheckLevels(min, max, level uint8) bool {
	if max == 0 {
		max = 255
	}
	return level >= min && level <= max
}

// CanTrade reports whether a's offer satisfies b's request and the other way round.
func CanTrade(a, b Record) bool {
	if a.Exchanged() || b.Exchanged() {
		return false
	}

	if a.Species != b.RequestedSpecies {
		return false
	}
	if b.RequestedGender != GenderEither && a.Gender != b.RequestedGender {
		return false
	}
	if !CheckLevels(b.RequestedMinLevel, b.RequestedMaxLevel, a.Level) {
		return false
	}

	if b.Species != a.RequestedSpecies {
		return false
	}
	if a.RequestedGender != GenderEither && b.Gender != a.RequestedGender {
		return false
	}
	return CheckLevels(a.RequestedMinLevel, a.RequestedMaxLevel, b.Level)
}

// FlagTraded returns a copy of upload that takes over target's listing slot:
// it carries target's offer and request metadata and PID and is marked exchanged at now.
func FlagTraded(upload, target Record, now time.Time) Record {
	out := upload.Clone()
	out.Species = target.Species
	out.Gender = target.Gender
	out.Level = target.Level
	out.RequestedSpecies = target.RequestedSpecies
	out.RequestedGender = target.RequestedGender
	out.RequestedMinLevel = target.RequestedMinLevel
	out.RequestedMaxLevel = target.RequestedMaxLevel
	out.TimeDeposited = cloneTime(target.TimeDeposited)
	exchanged := wire.Truncate(now)
	out.TimeExchanged = &exchanged
	out.PID = target.PID
	out.IsExchanged = 1
	return out
}

// Matches reports whether an active listing satisfies q. It mirrors the SQL filter used by the postgres store.
func Matches(r Record, q SearchQuery) bool {
	if r.Generation != q.Generation || r.PID == q.PID || r.Exchanged() {
		return false
	}
	if q.Species != 0 && r.Species != q.Species {
		return false
	}
	if q.Gender != GenderEither && q.Gender != 0 && r.Gender != q.Gender {
		return false
	}
	if q.MinLevel != 0 && r.Level < q.MinLevel {
		return false
	}
	if q.MaxLevel != 0 && r.Level > q.MaxLevel {
		return false
	}
	if q.Country != 0 && r.TrainerCountry != q.Country {
		return false
	}
	return true
}
