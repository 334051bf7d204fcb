package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/generation"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/gts"
	qb "github.com/L3Technosmith/pkmnFoundations/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type GTSRepository struct {
	db *sqlx.DB
	tx txRunner
}

func NewGTSRepository(db *sqlx.DB, isolation sql.IsolationLevel) *GTSRepository {
	return &GTSRepository{db: db, tx: txRunner{db: db, isolation: isolation}}
}

func (r *GTSRepository) GetByPID(ctx context.Context, gen generation.Generation, pid int32) (gts.Record, bool, error) {
	query, args, err := qb.Select("*").From(gtsListingTable).
		Where(
			qb.Eq("generation", int16(gen)),
			qb.Eq("pid", pid),
		).
		ToSQL()
	if err != nil {
		return gts.Record{}, false, fmt.Errorf("build get gts listing query: %w", err)
	}

	var row gtsListingRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return gts.Record{}, false, nil
		}
		return gts.Record{}, false, fmt.Errorf("get gts listing: %w", err)
	}
	return row.toRecord(), true, nil
}

func (r *GTSRepository) Deposit(ctx context.Context, record gts.Record) (bool, error) {
	query, args, err := qb.InsertModel(gtsListingTable, toGTSListingModel(record), "ON CONFLICT (generation, pid) DO NOTHING")
	if err != nil {
		return false, fmt.Errorf("build insert gts listing query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, wrapWrite("insert gts listing", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read inserted gts listing count: %w", err)
	}
	return affected == 1, nil
}

func (r *GTSRepository) Withdraw(ctx context.Context, gen generation.Generation, pid int32, withdrawnAt time.Time) (gts.Record, bool, error) {
	tx, err := r.tx.begin(ctx, "withdraw gts listing")
	if err != nil {
		return gts.Record{}, false, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := gtsWithdrawCandidateQuery(gen, pid)
	if err != nil {
		return gts.Record{}, false, fmt.Errorf("build withdraw candidate query: %w", err)
	}
	var row gtsListingRow
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return gts.Record{}, false, nil
		}
		return gts.Record{}, false, wrapWrite("select withdraw candidate", err)
	}

	record := row.toRecord()
	entry := gts.HistoryEntry{Record: record, TimeWithdrawn: &withdrawnAt}
	if err := insertHistory(ctx, tx, entry, sql.NullInt64{Int64: row.ID, Valid: true}); err != nil {
		return gts.Record{}, false, err
	}
	if err := deleteByID(ctx, tx, gtsListingTable, row.ID); err != nil {
		return gts.Record{}, false, err
	}
	if err := commit(tx, "withdraw gts listing"); err != nil {
		return gts.Record{}, false, wrapWrite("withdraw gts listing", err)
	}
	return record, true, nil
}

// Exchange logs the locked listing, deletes it and reinserts traded under the same row id,
// so history written before and after the trade shares one trade id.
func (r *GTSRepository) Exchange(ctx context.Context, traded, believed gts.Record, partnerPID int32, withdrawnAt time.Time) (bool, error) {
	if traded.PID != believed.PID || traded.Generation != believed.Generation {
		return false, fmt.Errorf("exchange: traded record %s/%d does not take over listing %s/%d",
			traded.Generation, traded.PID, believed.Generation, believed.PID)
	}

	tx, err := r.tx.begin(ctx, "exchange gts listing")
	if err != nil {
		return false, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Select("*").From(gtsListingTable).
		Where(
			qb.Eq("generation", int16(believed.Generation)),
			qb.Eq("pid", believed.PID),
		).
		Suffix("FOR UPDATE").
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build lock gts listing query: %w", err)
	}
	var row gtsListingRow
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, wrapWrite("lock gts listing", err)
	}
	if !gts.Equal(row.toRecord(), believed) {
		return false, nil
	}

	entry := gts.HistoryEntry{Record: believed, TimeWithdrawn: &withdrawnAt, PartnerPID: &partnerPID}
	if err := insertHistory(ctx, tx, entry, sql.NullInt64{Int64: row.ID, Valid: true}); err != nil {
		return false, err
	}
	if err := deleteByID(ctx, tx, gtsListingTable, row.ID); err != nil {
		return false, err
	}
	query, args, err = qb.InsertModel(gtsListingTable, gtsListingRow{ID: row.ID, gtsListingModel: toGTSListingModel(traded)}, "")
	if err != nil {
		return false, fmt.Errorf("build insert traded listing query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return false, wrapWrite("insert traded listing", err)
	}

	if err := commit(tx, "exchange gts listing"); err != nil {
		return false, wrapWrite("exchange gts listing", err)
	}
	return true, nil
}

func (r *GTSRepository) Search(ctx context.Context, q gts.SearchQuery) ([]gts.Record, error) {
	query, args, err := gtsSearchQuery(q)
	if err != nil {
		return nil, fmt.Errorf("build gts search query: %w", err)
	}

	var rows []gtsListingRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("search gts listings: %w", err)
	}

	out := make([]gts.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toRecord())
	}
	return out, nil
}

func (r *GTSRepository) LogHistory(ctx context.Context, entry gts.HistoryEntry) error {
	tx, err := r.tx.begin(ctx, "log gts history")
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.Select("id").From(gtsListingTable).
		Where(
			qb.Eq("generation", int16(entry.Record.Generation)),
			qb.Eq("pid", entry.Record.PID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build trade id query: %w", err)
	}
	var tradeID sql.NullInt64
	if err := tx.GetContext(ctx, &tradeID, query, args...); err != nil && !isNotFound(err) {
		return wrapWrite("select trade id", err)
	}

	if err := insertHistory(ctx, tx, entry, tradeID); err != nil {
		return err
	}
	if err := commit(tx, "log gts history"); err != nil {
		return wrapWrite("log gts history", err)
	}
	return nil
}

// insertHistory writes entry inside tx. An exchanged record without a partner takes the one
// logged when its offer left the exchange under the same trade id.
func insertHistory(ctx context.Context, tx *sqlx.Tx, entry gts.HistoryEntry, tradeID sql.NullInt64) error {
	model := gtsHistoryModel{
		gtsListingModel: toGTSListingModel(entry.Record),
		TimeWithdrawn:   utcPtr(entry.TimeWithdrawn),
		TradeID:         tradeID,
	}

	if entry.PartnerPID != nil {
		model.PartnerPID = sql.NullInt32{Int32: *entry.PartnerPID, Valid: true}
	} else if entry.Record.Exchanged() && tradeID.Valid {
		query, args, err := gtsPartnerQuery(entry.Record.Generation, tradeID.Int64)
		if err != nil {
			return fmt.Errorf("build trade partner query: %w", err)
		}
		var partner int32
		if err := tx.GetContext(ctx, &partner, query, args...); err != nil {
			if !isNotFound(err) {
				return wrapWrite("select trade partner", err)
			}
		} else {
			model.PartnerPID = sql.NullInt32{Int32: partner, Valid: true}
		}
	}

	query, args, err := qb.InsertModel(gtsHistoryTable, model, "")
	if err != nil {
		return fmt.Errorf("build insert gts history query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return wrapWrite("insert gts history", err)
	}
	return nil
}

func (r *GTSRepository) ListHistory(ctx context.Context, gen generation.Generation, pid int32) ([]gts.HistoryEntry, error) {
	query, args, err := qb.Select("*").From(gtsHistoryTable).
		Where(
			qb.Eq("generation", int16(gen)),
			qb.Eq("pid", pid),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list gts history query: %w", err)
	}

	var rows []gtsHistoryRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list gts history: %w", err)
	}
	out := make([]gts.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntry())
	}
	return out, nil
}

func (r *GTSRepository) CountActive(ctx context.Context, gen generation.Generation) (int, error) {
	query, args, err := qb.Select("COUNT(*)").From(gtsListingTable).
		Where(
			qb.Eq("generation", int16(gen)),
			qb.Eq("is_exchanged", 0),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count gts listings query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count gts listings: %w", err)
	}
	return count, nil
}

// gtsWithdrawCandidateQuery prefers a listing that was traded away, newest first.
func gtsWithdrawCandidateQuery(gen generation.Generation, pid int32) (string, []any, error) {
	return qb.Select("*").From(gtsListingTable).
		Where(
			qb.Eq("generation", int16(gen)),
			qb.Eq("pid", pid),
		).
		OrderBy("is_exchanged DESC", "time_exchanged DESC NULLS LAST", "time_deposited DESC NULLS LAST", "id DESC").
		Limit(1).
		Suffix("FOR UPDATE").
		ToSQL()
}

// gtsSearchQuery is the SQL form of gts.Matches.
func gtsSearchQuery(q gts.SearchQuery) (string, []any, error) {
	conds := []qb.Condition{
		qb.Eq("generation", int16(q.Generation)),
		qb.Ne("pid", q.PID),
		qb.Eq("is_exchanged", 0),
	}
	if q.Species != 0 {
		conds = append(conds, qb.Eq("species", int32(q.Species)))
	}
	if q.Gender != 0 && q.Gender != gts.GenderEither {
		conds = append(conds, qb.Eq("gender", int16(q.Gender)))
	}
	switch {
	case q.MinLevel != 0 && q.MaxLevel != 0:
		conds = append(conds, qb.Between("level", int16(q.MinLevel), int16(q.MaxLevel)))
	case q.MinLevel != 0:
		conds = append(conds, qb.Gte("level", int16(q.MinLevel)))
	case q.MaxLevel != 0:
		conds = append(conds, qb.Lte("level", int16(q.MaxLevel)))
	}
	if q.Country != 0 {
		conds = append(conds, qb.Eq("trainer_country", int16(q.Country)))
	}

	return qb.Select("*").From(gtsListingTable).
		Where(conds...).
		OrderBy("time_deposited DESC NULLS LAST", "id DESC").
		Limit(q.Limit).
		ToSQL()
}

// gtsPartnerQuery finds the partner recorded when the offer behind tradeID was withdrawn before the swap.
func gtsPartnerQuery(gen generation.Generation, tradeID int64) (string, []any, error) {
	return qb.Select("partner_pid").From(gtsHistoryTable).
		Where(
			qb.Eq("generation", int16(gen)),
			qb.Eq("trade_id", tradeID),
			qb.Eq("is_exchanged", 0),
			qb.Expr("partner_pid IS NOT NULL"),
		).
		OrderBy("id DESC").
		Limit(1).
		ToSQL()
}
