package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/terminal"
	qb "github.com/L3Technosmith/pkmnFoundations/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

// TerminalRepository keeps one table per content kind, plus a roster table for kinds that carry participants.
type TerminalRepository struct {
	db  *sqlx.DB
	tx  txRunner
	now func() time.Time
}

func NewTerminalRepository(db *sqlx.DB, isolation sql.IsolationLevel) *TerminalRepository {
	return &TerminalRepository{db: db, tx: txRunner{db: db, isolation: isolation}, now: time.Now}
}

func (r *TerminalRepository) Upload(ctx context.Context, s terminal.Spec, item terminal.Item) (uint64, error) {
	tx, err := r.tx.begin(ctx, "upload "+s.Name)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	model := toTerminalItemModel(item, r.now().UTC())

	duplicate, err := r.hasDuplicate(ctx, tx, s, model)
	if err != nil {
		return 0, err
	}
	if duplicate {
		return 0, nil
	}

	serials := s.Serials()
	var key int64
	var serial uint64
	if item.Serial != 0 {
		k, err := serials.SerialToKey(item.Serial)
		if err != nil {
			return 0, fmt.Errorf("derive %s key from serial %d: %w", s.Name, item.Serial, err)
		}
		serial = item.Serial
		model.SerialNumber = sql.NullInt64{Int64: int64(serial), Valid: true}
		query, args, err := qb.InsertModel(s.Table, terminalItemRow{ID: int64(k), terminalItemModel: model}, "ON CONFLICT DO NOTHING RETURNING id")
		if err != nil {
			return 0, fmt.Errorf("build insert %s query: %w", s.Name, err)
		}
		if err := tx.GetContext(ctx, &key, query, args...); err != nil {
			if isNotFound(err) {
				return 0, nil
			}
			return 0, wrapWrite("insert "+s.Name, err)
		}
		// keep the id sequence ahead of explicitly keyed rows
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', 'id'), GREATEST((SELECT MAX(id) FROM %s), 1))",
			s.Table, s.Table)); err != nil {
			return 0, wrapWrite("advance "+s.Name+" id sequence", err)
		}
	} else {
		query, args, err := qb.InsertModel(s.Table, model, "RETURNING id")
		if err != nil {
			return 0, fmt.Errorf("build insert %s query: %w", s.Name, err)
		}
		if err := tx.GetContext(ctx, &key, query, args...); err != nil {
			return 0, wrapWrite("insert "+s.Name, err)
		}
		serial, err = serials.KeyToSerial(uint64(key))
		if err != nil {
			return 0, fmt.Errorf("assign %s serial for key %d: %w", s.Name, key, err)
		}
		query, args, err = qb.Update(s.Table).
			Set("serial_number", int64(serial)).
			Where(qb.Eq("id", key)).
			ToSQL()
		if err != nil {
			return 0, fmt.Errorf("build set %s serial query: %w", s.Name, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, wrapWrite("set "+s.Name+" serial", err)
		}
	}

	if s.HasRoster() {
		if err := insertRoster(ctx, tx, s, key, terminal.RosterEntries(item.Roster)); err != nil {
			return 0, err
		}
	}

	if err := commit(tx, "upload "+s.Name); err != nil {
		return 0, wrapWrite("upload "+s.Name, err)
	}
	return serial, nil
}

// hasDuplicate compares bytes, not just the hash, before calling an upload a duplicate.
func (r *TerminalRepository) hasDuplicate(ctx context.Context, tx *sqlx.Tx, s terminal.Spec, model terminalItemModel) (bool, error) {
	query, args, err := qb.Select("header", "data").From(s.Table).
		Where(qb.Eq("md5", model.MD5)).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build %s duplicate query: %w", s.Name, err)
	}
	var rows []struct {
		Header []byte `db:"header"`
		Data   []byte `db:"data"`
	}
	if err := tx.SelectContext(ctx, &rows, query, args...); err != nil {
		return false, wrapWrite("select "+s.Name+" duplicates", err)
	}
	for _, row := range rows {
		if bytes.Equal(row.Header, model.Header) && bytes.Equal(row.Data, model.Data) {
			return true, nil
		}
	}
	return false, nil
}

func insertRoster(ctx context.Context, tx *sqlx.Tx, s terminal.Spec, itemID int64, entries []terminal.RosterEntry) error {
	if len(entries) == 0 {
		return nil
	}
	insert := qb.InsertInto(s.RosterTable).Columns("item_id", "slot", "species")
	for _, e := range entries {
		insert.Values(itemID, int16(e.Slot), int32(e.Species))
	}
	query, args, err := insert.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert %s roster query: %w", s.Name, err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return wrapWrite("insert "+s.Name+" roster", err)
	}
	return nil
}

// Search reads the items and their rosters from one snapshot.
func (r *TerminalRepository) Search(ctx context.Context, s terminal.Spec, f terminal.Filter) ([]terminal.Item, error) {
	query, args, err := terminalSearchQuery(s, f)
	if err != nil {
		return nil, fmt.Errorf("build %s search query: %w", s.Name, err)
	}

	tx, err := r.tx.read(ctx, "search "+s.Name)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var rows []terminalItemRow
	if err := tx.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("search %s: %w", s.Name, markStorageErr(err))
	}
	rosters, err := r.loadRosters(ctx, tx, s, rows)
	if err != nil {
		return nil, err
	}
	if err := commit(tx, "search "+s.Name); err != nil {
		return nil, wrapWrite("search "+s.Name, err)
	}

	out := make([]terminal.Item, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toItem(s, rosters[row.ID]))
	}
	return out, nil
}

func (r *TerminalRepository) Get(ctx context.Context, s terminal.Spec, serial uint64, incrementViews bool) (terminal.Item, bool, error) {
	tx, err := r.tx.begin(ctx, "get "+s.Name)
	if err != nil {
		return terminal.Item{}, false, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if incrementViews {
		if _, err := bumpCounter(ctx, tx, s, serial, "views"); err != nil {
			return terminal.Item{}, false, err
		}
	}

	query, args, err := qb.Select("*").From(s.Table).
		Where(qb.Eq("serial_number", int64(serial))).
		ToSQL()
	if err != nil {
		return terminal.Item{}, false, fmt.Errorf("build get %s query: %w", s.Name, err)
	}
	var row terminalItemRow
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return terminal.Item{}, false, nil
		}
		return terminal.Item{}, false, wrapWrite("get "+s.Name, err)
	}
	rosters, err := r.loadRosters(ctx, tx, s, []terminalItemRow{row})
	if err != nil {
		return terminal.Item{}, false, err
	}

	if err := commit(tx, "get "+s.Name); err != nil {
		return terminal.Item{}, false, wrapWrite("get "+s.Name, err)
	}
	return row.toItem(s, rosters[row.ID]), true, nil
}

func (r *TerminalRepository) FlagSaved(ctx context.Context, s terminal.Spec, serial uint64) (bool, error) {
	return bumpCounter(ctx, r.db, s, serial, "saves")
}

func (r *TerminalRepository) Count(ctx context.Context, s terminal.Spec) (uint64, error) {
	query, args, err := qb.Select("COUNT(*)").From(s.Table).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count %s query: %w", s.Name, err)
	}
	var count int64
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count %s: %w", s.Name, err)
	}
	return uint64(count), nil
}

func (r *TerminalRepository) loadRosters(ctx context.Context, q sqlx.QueryerContext, s terminal.Spec, rows []terminalItemRow) (map[int64][]terminal.RosterEntry, error) {
	out := make(map[int64][]terminal.RosterEntry, len(rows))
	if !s.HasRoster() || len(rows) == 0 {
		return out, nil
	}

	ids := make([]any, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	query, args, err := qb.Select("item_id", "slot", "species").From(s.RosterTable).
		Where(qb.In("item_id", ids)).
		OrderBy("item_id", "slot").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s roster query: %w", s.Name, err)
	}
	var roster []terminalRosterModel
	if err := sqlx.SelectContext(ctx, q, &roster, query, args...); err != nil {
		return nil, fmt.Errorf("load %s roster: %w", s.Name, err)
	}
	for _, e := range roster {
		out[e.ItemID] = append(out[e.ItemID], terminal.RosterEntry{Slot: int(e.Slot), Species: uint16(e.Species)})
	}
	return out, nil
}

func bumpCounter(ctx context.Context, exec sqlx.ExecerContext, s terminal.Spec, serial uint64, column string) (bool, error) {
	query, args, err := qb.Update(s.Table).
		SetExpr(column, column+" + 1").
		Where(qb.Eq("serial_number", int64(serial))).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build bump %s %s query: %w", s.Name, column, err)
	}
	res, err := exec.ExecContext(ctx, query, args...)
	if err != nil {
		return false, wrapWrite("bump "+s.Name+" "+column, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read bumped %s count: %w", s.Name, err)
	}
	return affected > 0, nil
}

// terminalSearchQuery is the SQL form of terminal.Filter.Matches and Filter.Less.
func terminalSearchQuery(s terminal.Spec, f terminal.Filter) (string, []any, error) {
	columns := []string{"*"}
	if s.HasHeader() {
		columns = terminalSummaryColumns
	}

	conds := make([]qb.Condition, 0, 5)
	if f.Species != nil {
		if s.HasRoster() {
			conds = append(conds, qb.Exists(
				qb.Select("1").From(s.RosterTable+" p").
					Where(
						qb.Expr("p.item_id = "+s.Table+".id"),
						qb.Eq("p.species", int32(*f.Species)),
					),
			))
		} else {
			conds = append(conds, qb.Eq("species", int32(*f.Species)))
		}
	}
	if f.Label != nil {
		conds = append(conds, qb.Eq("label", *f.Label))
	}
	if f.Country != nil {
		conds = append(conds, qb.Eq("country", int16(*f.Country)))
	}
	if f.Region != nil {
		conds = append(conds, qb.Eq("region", int16(*f.Region)))
	}
	switch f.Metagame.Mode {
	case terminal.MatchIn:
		values := make([]any, 0, len(f.Metagame.Values))
		for _, v := range f.Metagame.Values {
			values = append(values, int16(v))
		}
		conds = append(conds, qb.In("metagame", values))
	case terminal.MatchBetween:
		conds = append(conds, qb.Between("metagame", int16(f.Metagame.Lo), int16(f.Metagame.Hi)))
	case terminal.MatchNotBetween:
		conds = append(conds, qb.NotBetween("metagame", int16(f.Metagame.Lo), int16(f.Metagame.Hi)))
	}

	order := []string{"time_added DESC", "id DESC"}
	if f.Ranked {
		order = append([]string{"streak DESC"}, order...)
	}

	return qb.Select(columns...).From(s.Table).
		Where(conds...).
		OrderBy(order...).
		Limit(f.Limit).
		ToSQL()
}
