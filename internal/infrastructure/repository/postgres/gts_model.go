package postgres

import (
	"database/sql"
	"time"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/generation"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/gts"
)

const (
	gtsListingTable = "gts_pokemon"
	gtsHistoryTable = "gts_history"
)

type gtsListingModel struct {
	Generation        int16      `db:"generation"`
	PID               int32      `db:"pid"`
	Payload           []byte     `db:"payload"`
	Pad               []byte     `db:"pad"`
	Species           int32      `db:"species"`
	Gender            int16      `db:"gender"`
	Level             int16      `db:"level"`
	RequestedSpecies  int32      `db:"requested_species"`
	RequestedGender   int16      `db:"requested_gender"`
	RequestedMinLevel int16      `db:"requested_min_level"`
	RequestedMaxLevel int16      `db:"requested_max_level"`
	Unknown1          int16      `db:"unknown1"`
	TrainerGender     int16      `db:"trainer_gender"`
	Unknown2          int16      `db:"unknown2"`
	TimeDeposited     *time.Time `db:"time_deposited"`
	TimeExchanged     *time.Time `db:"time_exchanged"`
	TrainerName       []byte     `db:"trainer_name"`
	TrainerOT         int64      `db:"trainer_ot"`
	TrainerCountry    int16      `db:"trainer_country"`
	TrainerRegion     int16      `db:"trainer_region"`
	TrainerClass      int16      `db:"trainer_class"`
	IsExchanged       int16      `db:"is_exchanged"`
	TrainerVersion    int16      `db:"trainer_version"`
	TrainerLanguage   int16      `db:"trainer_language"`
	TrainerBadges     int16      `db:"trainer_badges"`
	TrainerUnityTower int16      `db:"trainer_unity_tower"`
}

type gtsListingRow struct {
	ID int64 `db:"id"`
	gtsListingModel
}

type gtsHistoryModel struct {
	gtsListingModel
	TimeWithdrawn *time.Time    `db:"time_withdrawn"`
	TradeID       sql.NullInt64 `db:"trade_id"`
	PartnerPID    sql.NullInt32 `db:"partner_pid"`
}

type gtsHistoryRow struct {
	ID int64 `db:"id"`
	gtsHistoryModel
}

func toGTSListingModel(r gts.Record) gtsListingModel {
	return gtsListingModel{
		Generation:        int16(r.Generation),
		PID:               r.PID,
		Payload:           r.Payload,
		Pad:               r.Pad,
		Species:           int32(r.Species),
		Gender:            int16(r.Gender),
		Level:             int16(r.Level),
		RequestedSpecies:  int32(r.RequestedSpecies),
		RequestedGender:   int16(r.RequestedGender),
		RequestedMinLevel: int16(r.RequestedMinLevel),
		RequestedMaxLevel: int16(r.RequestedMaxLevel),
		Unknown1:          int16(r.Unknown1),
		TrainerGender:     int16(r.TrainerGender),
		Unknown2:          int16(r.Unknown2),
		TimeDeposited:     utcPtr(r.TimeDeposited),
		TimeExchanged:     utcPtr(r.TimeExchanged),
		TrainerName:       r.TrainerName,
		TrainerOT:         int64(r.TrainerOT),
		TrainerCountry:    int16(r.TrainerCountry),
		TrainerRegion:     int16(r.TrainerRegion),
		TrainerClass:      int16(r.TrainerClass),
		IsExchanged:       int16(r.IsExchanged),
		TrainerVersion:    int16(r.TrainerVersion),
		TrainerLanguage:   int16(r.TrainerLanguage),
		TrainerBadges:     int16(r.TrainerBadges),
		TrainerUnityTower: int16(r.TrainerUnityTower),
	}
}

func (m gtsListingModel) toRecord() gts.Record {
	return gts.Record{
		Generation:        generation.Generation(m.Generation),
		PID:               m.PID,
		Payload:           m.Payload,
		Pad:               m.Pad,
		Species:           uint16(m.Species),
		Gender:            gts.Gender(m.Gender),
		Level:             uint8(m.Level),
		RequestedSpecies:  uint16(m.RequestedSpecies),
		RequestedGender:   gts.Gender(m.RequestedGender),
		RequestedMinLevel: uint8(m.RequestedMinLevel),
		RequestedMaxLevel: uint8(m.RequestedMaxLevel),
		Unknown1:          uint8(m.Unknown1),
		TrainerGender:     uint8(m.TrainerGender),
		Unknown2:          uint8(m.Unknown2),
		TimeDeposited:     utcPtr(m.TimeDeposited),
		TimeExchanged:     utcPtr(m.TimeExchanged),
		TrainerName:       m.TrainerName,
		TrainerOT:         uint32(m.TrainerOT),
		TrainerCountry:    uint8(m.TrainerCountry),
		TrainerRegion:     uint8(m.TrainerRegion),
		TrainerClass:      uint8(m.TrainerClass),
		IsExchanged:       uint8(m.IsExchanged),
		TrainerVersion:    uint8(m.TrainerVersion),
		TrainerLanguage:   uint8(m.TrainerLanguage),
		TrainerBadges:     uint8(m.TrainerBadges),
		TrainerUnityTower: uint8(m.TrainerUnityTower),
	}
}

func (r gtsHistoryRow) toEntry() gts.HistoryEntry {
	entry := gts.HistoryEntry{
		ID:            uint64(r.ID),
		Record:        r.gtsListingModel.toRecord(),
		TimeWithdrawn: utcPtr(r.TimeWithdrawn),
	}
	if r.TradeID.Valid {
		id := uint64(r.TradeID.Int64)
		entry.TradeID = &id
	}
	if r.PartnerPID.Valid {
		pid := r.PartnerPID.Int32
		entry.PartnerPID = &pid
	}
	return entry
}

// utcPtr copies t in UTC; lib/pq hands TIMESTAMPTZ back in the session zone.
func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
