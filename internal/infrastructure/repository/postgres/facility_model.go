package postgres

import (
	"fmt"
	"time"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/facility"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/generation"
)

const (
	facilityCompetitorTable = "facility_competitors"
	facilityPartyTable      = "facility_party"
	facilityLeaderTable     = "facility_leaders"
)

type facilityProfileModel struct {
	Name           []byte `db:"name"`
	Version        int16  `db:"version"`
	Language       int16  `db:"language"`
	Country        int16  `db:"country"`
	Region         int16  `db:"region"`
	TrainerID      int64  `db:"trainer_id"`
	PhraseLeader   []byte `db:"phrase_leader"`
	Gender         int16  `db:"gender"`
	ProfileUnknown int16  `db:"profile_unknown"`
}

type facilityCompetitorModel struct {
	Generation int16 `db:"generation"`
	PID        int32 `db:"pid"`
	RoomNum    int16 `db:"room_num"`
	Rank       int16 `db:"rank"`
	BattlesWon int16 `db:"battles_won"`
	Position   int32 `db:"position"`
	Unknown5   int64 `db:"unknown5"`
	facilityProfileModel
	PhraseChallenged []byte `db:"phrase_challenged"`
	PhraseWon        []byte `db:"phrase_won"`
	PhraseLost       []byte `db:"phrase_lost"`
	Unknown3         int32  `db:"unknown3"`
	Unknown4         []byte `db:"unknown4"`
}

type facilityCompetitorRow struct {
	ID int64 `db:"id"`
	facilityCompetitorModel
	TimeAdded   time.Time `db:"time_added"`
	TimeUpdated time.Time `db:"time_updated"`
}

// facilityScopeRow is the locked projection ranking and identity resolution need.
type facilityScopeRow struct {
	ID         int64 `db:"id"`
	PID        int32 `db:"pid"`
	Position   int32 `db:"position"`
	BattlesWon int16 `db:"battles_won"`
	facilityProfileModel
}

type facilityPartyModel struct {
	CompetitorID int64  `db:"competitor_id"`
	Slot         int16  `db:"slot"`
	Species      int32  `db:"species"`
	HeldItem     int32  `db:"held_item"`
	Data         []byte `db:"data"`
}

type facilityLeaderModel struct {
	Generation int16 `db:"generation"`
	PID        int32 `db:"pid"`
	RoomNum    int16 `db:"room_num"`
	Rank       int16 `db:"rank"`
	facilityProfileModel
}

type facilityLeaderRow struct {
	ID int64 `db:"id"`
	facilityLeaderModel
	TimeAdded   time.Time `db:"time_added"`
	TimeUpdated time.Time `db:"time_updated"`
}

func toFacilityProfileModel(p facility.Profile) facilityProfileModel {
	return facilityProfileModel{
		Name:           p.Name,
		Version:        int16(p.Version),
		Language:       int16(p.Language),
		Country:        int16(p.Country),
		Region:         int16(p.Region),
		TrainerID:      int64(p.OT),
		PhraseLeader:   p.PhraseLeader,
		Gender:         int16(p.Gender),
		ProfileUnknown: int16(p.Unknown),
	}
}

func (m facilityProfileModel) toProfile() facility.Profile {
	return facility.Profile{
		Name:         m.Name,
		Version:      uint8(m.Version),
		Language:     uint8(m.Language),
		Country:      uint8(m.Country),
		Region:       uint8(m.Region),
		OT:           uint32(m.TrainerID),
		PhraseLeader: m.PhraseLeader,
		Gender:       uint8(m.Gender),
		Unknown:      uint8(m.ProfileUnknown),
	}
}

func toFacilityCompetitorModel(c facility.Competitor, position int) facilityCompetitorModel {
	return facilityCompetitorModel{
		Generation:           int16(c.Record.Generation),
		PID:                  c.PID,
		RoomNum:              int16(c.RoomNum),
		Rank:                 int16(c.Rank),
		BattlesWon:           int16(c.BattlesWon),
		Position:             int32(position),
		Unknown5:             int64(c.Unknown5),
		facilityProfileModel: toFacilityProfileModel(c.Record.Profile),
		PhraseChallenged:     c.Record.PhraseChallenged,
		PhraseWon:            c.Record.PhraseWon,
		PhraseLost:           c.Record.PhraseLost,
		Unknown3:             int32(c.Record.Unknown3),
		Unknown4:             c.Record.Unknown4,
	}
}

func toFacilityPartyModels(competitorID int64, r facility.BattleRecord) ([]facilityPartyModel, error) {
	schema, err := facility.SchemaFor(r.Generation)
	if err != nil {
		return nil, err
	}
	out := make([]facilityPartyModel, 0, len(r.Party))
	for slot, m := range r.Party {
		data, err := facility.EncodeMember(schema, m)
		if err != nil {
			return nil, fmt.Errorf("encode party slot %d: %w", slot, err)
		}
		out = append(out, facilityPartyModel{
			CompetitorID: competitorID,
			Slot:         int16(slot),
			Species:      int32(m.Species),
			HeldItem:     int32(m.HeldItem),
			Data:         data,
		})
	}
	return out, nil
}

func (r facilityCompetitorRow) toCompetitor(party []facilityPartyModel) (facility.Competitor, error) {
	gen := generation.Generation(r.Generation)
	schema, err := facility.SchemaFor(gen)
	if err != nil {
		return facility.Competitor{}, err
	}

	c := facility.Competitor{
		ID:         uint64(r.ID),
		PID:        r.PID,
		RoomNum:    uint8(r.RoomNum),
		Rank:       uint8(r.Rank),
		BattlesWon: uint8(r.BattlesWon),
		Position:   int(r.Position),
		Unknown5:   uint64(r.Unknown5),
		Record: facility.BattleRecord{
			Generation:       gen,
			Profile:          r.facilityProfileModel.toProfile(),
			PhraseChallenged: r.PhraseChallenged,
			PhraseWon:        r.PhraseWon,
			PhraseLost:       r.PhraseLost,
			Unknown3:         uint16(r.Unknown3),
			Unknown4:         r.Unknown4,
		},
		TimeAdded:   r.TimeAdded.UTC(),
		TimeUpdated: r.TimeUpdated.UTC(),
	}
	if len(party) != facility.PartySize {
		return facility.Competitor{}, fmt.Errorf("competitor %d has %d party rows", r.ID, len(party))
	}
	for _, p := range party {
		if p.Slot < 0 || int(p.Slot) >= facility.PartySize {
			return facility.Competitor{}, fmt.Errorf("competitor %d has party slot %d", r.ID, p.Slot)
		}
		member, err := facility.DecodeMember(schema, p.Data)
		if err != nil {
			return facility.Competitor{}, fmt.Errorf("decode competitor %d slot %d: %w", r.ID, p.Slot, err)
		}
		c.Record.Party[p.Slot] = member
	}
	return c, nil
}

func (r facilityLeaderRow) toLeader() facility.Leader {
	return facility.Leader{
		ID:          uint64(r.ID),
		Generation:  generation.Generation(r.Generation),
		PID:         r.PID,
		RoomNum:     uint8(r.RoomNum),
		Rank:        uint8(r.Rank),
		Profile:     r.facilityProfileModel.toProfile(),
		TimeAdded:   r.TimeAdded.UTC(),
		TimeUpdated: r.TimeUpdated.UTC(),
	}
}
