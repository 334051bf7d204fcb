package postgres

import (
	"database/sql"
	"time"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/terminal"
)

// terminalParseVersion is bumped when the metadata extracted into columns changes meaning.
const terminalParseVersion = 1

// terminalSummaryColumns is every column but data; searches over header kinds never return the payload.
var terminalSummaryColumns = []string{
	"id", "pid", "serial_number", "header", "md5", "time_added", "parse_version",
	"species", "label", "streak", "trainer_name", "metagame", "country", "region", "views", "saves",
}

type terminalItemModel struct {
	PID          int32         `db:"pid"`
	SerialNumber sql.NullInt64 `db:"serial_number"`
	Header       []byte        `db:"header"`
	Data         []byte        `db:"data"`
	MD5          []byte        `db:"md5"`
	TimeAdded    time.Time     `db:"time_added"`
	ParseVersion int16         `db:"parse_version"`
	Species      int32         `db:"species"`
	Label        int32         `db:"label"`
	Streak       int32         `db:"streak"`
	TrainerName  []byte        `db:"trainer_name"`
	Metagame     int16         `db:"metagame"`
	Country      int16         `db:"country"`
	Region       int16         `db:"region"`
	Views        int64         `db:"views"`
	Saves        int64         `db:"saves"`
}

type terminalItemRow struct {
	ID int64 `db:"id"`
	terminalItemModel
}

type terminalRosterModel struct {
	ItemID  int64 `db:"item_id"`
	Slot    int16 `db:"slot"`
	Species int32 `db:"species"`
}

func toTerminalItemModel(i terminal.Item, now time.Time) terminalItemModel {
	return terminalItemModel{
		PID:          i.PID,
		Header:       i.Header,
		Data:         i.Payload,
		MD5:          terminal.ContentHash(i.Header, i.Payload),
		TimeAdded:    now,
		ParseVersion: terminalParseVersion,
		Species:      int32(i.Meta.Species),
		Label:        i.Meta.Label,
		Streak:       int32(i.Meta.Streak),
		TrainerName:  i.Meta.TrainerName,
		Metagame:     int16(i.Meta.Metagame),
		Country:      int16(i.Meta.Country),
		Region:       int16(i.Meta.Region),
	}
}

func (r terminalItemRow) toItem(s terminal.Spec, roster []terminal.RosterEntry) terminal.Item {
	item := terminal.Item{
		ID:      uint64(r.ID),
		Kind:    s.Kind,
		PID:     r.PID,
		Header:  r.Header,
		Payload: r.Data,
		Meta: terminal.Metadata{
			Species:     uint16(r.Species),
			Label:       r.Label,
			Streak:      uint16(r.Streak),
			TrainerName: r.TrainerName,
			Metagame:    uint8(r.Metagame),
			Country:     uint8(r.Country),
			Region:      uint8(r.Region),
		},
		Roster:    terminal.ExpandRoster(s, roster),
		Views:     uint64(r.Views),
		Saves:     uint64(r.Saves),
		TimeAdded: r.TimeAdded.UTC(),
	}
	if r.SerialNumber.Valid {
		item.Serial = uint64(r.SerialNumber.Int64)
	}
	return item
}
