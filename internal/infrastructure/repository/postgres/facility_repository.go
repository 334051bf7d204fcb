package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/facility"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/generation"
	qb "github.com/L3Technosmith/pkmnFoundations/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type FacilityRepository struct {
	db  *sqlx.DB
	tx  txRunner
	now func() time.Time
}

func NewFacilityRepository(db *sqlx.DB, isolation sql.IsolationLevel) *FacilityRepository {
	return &FacilityRepository{db: db, tx: txRunner{db: db, isolation: isolation}, now: time.Now}
}

type facilityScopeLocked struct {
	facilityScopeRow
	TimeAdded time.Time `db:"time_added"`
}

// UpsertCompetitor locks the whole (generation, room, rank) scope so concurrent uploads rank serially.
// A replaced row is deleted and reinserted under its old id; its party goes with it by cascade.
func (r *FacilityRepository) UpsertCompetitor(ctx context.Context, c facility.Competitor) (uint64, error) {
	if err := facility.ValidateCompetitor(c); err != nil {
		return 0, err
	}

	tx, err := r.tx.begin(ctx, "upsert facility competitor")
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := facilityScopeQuery(c.Record.Generation, c.RoomNum, c.Rank)
	if err != nil {
		return 0, fmt.Errorf("build facility scope query: %w", err)
	}
	var rows []facilityScopeLocked
	if err := tx.SelectContext(ctx, &rows, query, args...); err != nil {
		return 0, wrapWrite("lock facility scope", err)
	}

	scope := make([]facility.Slot, 0, len(rows))
	candidates := make([]facility.Candidate, 0, len(rows))
	added := make(map[uint64]time.Time, len(rows))
	for _, row := range rows {
		id := uint64(row.ID)
		scope = append(scope, facility.Slot{ID: id, Position: int(row.Position), BattlesWon: uint8(row.BattlesWon)})
		candidates = append(candidates, facility.Candidate{ID: id, PID: row.PID, Profile: row.facilityProfileModel.toProfile()})
		added[id] = row.TimeAdded
	}

	selfID := facility.ResolveIdentity(c.Identity(), candidates)
	placement, err := facility.Place(scope, selfID, c.BattlesWon)
	if err != nil {
		return 0, err
	}

	for _, m := range placement.Moves {
		query, args, err := qb.Update(facilityCompetitorTable).
			Set("position", int32(m.To)).
			Where(qb.Eq("id", int64(m.ID))).
			ToSQL()
		if err != nil {
			return 0, fmt.Errorf("build move competitor query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, wrapWrite("move facility competitor", err)
		}
	}

	now := r.now().UTC()
	model := toFacilityCompetitorModel(c, placement.Position)
	var rowID int64
	if selfID == 0 {
		query, args, err = qb.InsertModel(facilityCompetitorTable, struct {
			facilityCompetitorModel
			TimeAdded   time.Time `db:"time_added"`
			TimeUpdated time.Time `db:"time_updated"`
		}{model, now, now}, "RETURNING id")
		if err != nil {
			return 0, fmt.Errorf("build insert competitor query: %w", err)
		}
		if err := tx.GetContext(ctx, &rowID, query, args...); err != nil {
			return 0, wrapWrite("insert facility competitor", err)
		}
	} else {
		rowID = int64(selfID)
		if err := deleteByID(ctx, tx, facilityCompetitorTable, rowID); err != nil {
			return 0, err
		}
		query, args, err = qb.InsertModel(facilityCompetitorTable, facilityCompetitorRow{
			ID:                      rowID,
			facilityCompetitorModel: model,
			TimeAdded:               added[selfID],
			TimeUpdated:             now,
		}, "")
		if err != nil {
			return 0, fmt.Errorf("build reinsert competitor query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, wrapWrite("reinsert facility competitor", err)
		}
	}

	party, err := toFacilityPartyModels(rowID, c.Record)
	if err != nil {
		return 0, err
	}
	insert := qb.InsertInto(facilityPartyTable).Columns("competitor_id", "slot", "species", "held_item", "data")
	for _, p := range party {
		insert.Values(p.CompetitorID, p.Slot, p.Species, p.HeldItem, p.Data)
	}
	query, args, err = insert.ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build insert party query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return 0, wrapWrite("insert facility party", err)
	}

	if err := commit(tx, "upsert facility competitor"); err != nil {
		return 0, wrapWrite("upsert facility competitor", err)
	}
	return uint64(rowID), nil
}

func (r *FacilityRepository) UpsertLeader(ctx context.Context, l facility.Leader) (uint64, error) {
	if err := facility.ValidateLeader(l); err != nil {
		return 0, err
	}

	tx, err := r.tx.begin(ctx, "upsert facility leader")
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Select("*").From(facilityLeaderTable).
		Where(
			qb.Eq("generation", int16(l.Generation)),
			qb.Eq("room_num", int16(l.RoomNum)),
			qb.Eq("rank", int16(l.Rank)),
		).
		OrderBy("id").
		Suffix("FOR UPDATE").
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build leader scope query: %w", err)
	}
	var rows []facilityLeaderRow
	if err := tx.SelectContext(ctx, &rows, query, args...); err != nil {
		return 0, wrapWrite("lock facility leaders", err)
	}

	candidates := make([]facility.Candidate, 0, len(rows))
	added := make(map[uint64]time.Time, len(rows))
	for _, row := range rows {
		candidates = append(candidates, facility.Candidate{ID: uint64(row.ID), PID: row.PID, Profile: row.facilityProfileModel.toProfile()})
		added[uint64(row.ID)] = row.TimeAdded
	}

	now := r.now().UTC()
	model := facilityLeaderModel{
		Generation:           int16(l.Generation),
		PID:                  l.PID,
		RoomNum:              int16(l.RoomNum),
		Rank:                 int16(l.Rank),
		facilityProfileModel: toFacilityProfileModel(l.Profile),
	}

	var rowID int64
	selfID := facility.ResolveIdentity(l.Identity(), candidates)
	if selfID == 0 {
		query, args, err = qb.InsertModel(facilityLeaderTable, struct {
			facilityLeaderModel
			TimeAdded   time.Time `db:"time_added"`
			TimeUpdated time.Time `db:"time_updated"`
		}{model, now, now}, "RETURNING id")
		if err != nil {
			return 0, fmt.Errorf("build insert leader query: %w", err)
		}
		if err := tx.GetContext(ctx, &rowID, query, args...); err != nil {
			return 0, wrapWrite("insert facility leader", err)
		}
	} else {
		rowID = int64(selfID)
		if err := deleteByID(ctx, tx, facilityLeaderTable, rowID); err != nil {
			return 0, err
		}
		query, args, err = qb.InsertModel(facilityLeaderTable, facilityLeaderRow{
			ID:                  rowID,
			facilityLeaderModel: model,
			TimeAdded:           added[selfID],
			TimeUpdated:         now,
		}, "")
		if err != nil {
			return 0, fmt.Errorf("build reinsert leader query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, wrapWrite("reinsert facility leader", err)
		}
	}

	if err := commit(tx, "upsert facility leader"); err != nil {
		return 0, wrapWrite("upsert facility leader", err)
	}
	return uint64(rowID), nil
}

// ListCompetitors reads the opponents and their parties from one snapshot.
func (r *FacilityRepository) ListCompetitors(ctx context.Context, gen generation.Generation, pid int32, rank, room uint8, limit int) ([]facility.Competitor, error) {
	query, args, err := facilityOpponentsQuery(gen, pid, rank, room, limit)
	if err != nil {
		return nil, fmt.Errorf("build list competitors query: %w", err)
	}

	tx, err := r.tx.read(ctx, "list facility competitors")
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var rows []facilityCompetitorRow
	if err := tx.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list facility competitors: %w", markStorageErr(err))
	}
	if len(rows) == 0 {
		return []facility.Competitor{}, nil
	}

	ids := make([]any, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	query, args, err = qb.Select("*").From(facilityPartyTable).
		Where(qb.In("competitor_id", ids)).
		OrderBy("competitor_id", "slot").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list party query: %w", err)
	}
	var party []facilityPartyModel
	if err := tx.SelectContext(ctx, &party, query, args...); err != nil {
		return nil, fmt.Errorf("list facility party: %w", markStorageErr(err))
	}
	if err := commit(tx, "list facility competitors"); err != nil {
		return nil, wrapWrite("list facility competitors", err)
	}

	byCompetitor := make(map[int64][]facilityPartyModel, len(rows))
	for _, p := range party {
		byCompetitor[p.CompetitorID] = append(byCompetitor[p.CompetitorID], p)
	}

	out := make([]facility.Competitor, 0, len(rows))
	for _, row := range rows {
		c, err := row.toCompetitor(byCompetitor[row.ID])
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func (r *FacilityRepository) ListLeaders(ctx context.Context, gen generation.Generation, rank, room uint8, limit int) ([]facility.Leader, error) {
	query, args, err := qb.Select("*").From(facilityLeaderTable).
		Where(
			qb.Eq("generation", int16(gen)),
			qb.Eq("room_num", int16(room)),
			qb.Eq("rank", int16(rank)),
		).
		OrderBy("time_updated DESC", "id").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list leaders query: %w", err)
	}

	var rows []facilityLeaderRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list facility leaders: %w", err)
	}
	out := make([]facility.Leader, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toLeader())
	}
	return out, nil
}

func facilityScopeQuery(gen generation.Generation, room, rank uint8) (string, []any, error) {
	return qb.Select("id", "pid", "position", "battles_won", "name", "version", "language", "country", "region",
		"trainer_id", "phrase_leader", "gender", "profile_unknown", "time_added").
		From(facilityCompetitorTable).
		Where(
			qb.Eq("generation", int16(gen)),
			qb.Eq("room_num", int16(room)),
			qb.Eq("rank", int16(rank)),
		).
		OrderBy("position", "id").
		Suffix("FOR UPDATE").
		ToSQL()
}

func facilityOpponentsQuery(gen generation.Generation, pid int32, rank, room uint8, limit int) (string, []any, error) {
	return qb.Select("*").From(facilityCompetitorTable).
		Where(
			qb.Eq("generation", int16(gen)),
			qb.Eq("room_num", int16(room)),
			qb.Eq("rank", int16(rank)),
			qb.Ne("pid", pid),
		).
		OrderBy("position", "id").
		Limit(limit).
		ToSQL()
}

func deleteByID(ctx context.Context, tx *sqlx.Tx, table string, id int64) error {
	query, args, err := qb.DeleteFrom(table).Where(qb.Eq("id", id)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete %s query: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return wrapWrite("delete from "+table, err)
	}
	return nil
}
