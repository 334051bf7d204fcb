package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/generation"
	"github.com/L3Technosmith/pkmnFoundations/internal/domain/profile"
	qb "github.com/L3Technosmith/pkmnFoundations/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

const profileTable = "gamestats_profiles"

type profileModel struct {
	Generation int16  `db:"generation"`
	PID        int32  `db:"pid"`
	Data       []byte `db:"data"`
	Version    int16  `db:"version"`
	Language   int16  `db:"language"`
	Country    int16  `db:"country"`
	Region     int16  `db:"region"`
	TrainerID  int64  `db:"trainer_id"`
	Name       []byte `db:"name"`
}

type profileRow struct {
	profileModel
	TimeAdded   time.Time `db:"time_added"`
	TimeUpdated time.Time `db:"time_updated"`
}

// profileUpsertSuffix keeps time_added of the first upload.
const profileUpsertSuffix = `ON CONFLICT (generation, pid) DO UPDATE SET
data = EXCLUDED.data, version = EXCLUDED.version, language = EXCLUDED.language,
country = EXCLUDED.country, region = EXCLUDED.region, trainer_id = EXCLUDED.trainer_id,
name = EXCLUDED.name, time_updated = EXCLUDED.time_updated`

type ProfileRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db, now: time.Now}
}

func (r *ProfileRepository) Upsert(ctx context.Context, p profile.TrainerProfile) (bool, error) {
	data, err := profile.Encode(p)
	if err != nil {
		return false, err
	}

	now := r.now().UTC()
	query, args, err := qb.InsertModel(profileTable, profileRow{
		profileModel: profileModel{
			Generation: int16(p.Generation),
			PID:        p.PID,
			Data:       data,
			Version:    int16(p.Version),
			Language:   int16(p.Language),
			Country:    int16(p.Country),
			Region:     int16(p.Region),
			TrainerID:  int64(p.OT),
			Name:       p.Name,
		},
		TimeAdded:   now,
		TimeUpdated: now,
	}, profileUpsertSuffix)
	if err != nil {
		return false, fmt.Errorf("build upsert profile query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, wrapWrite("upsert profile", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read upserted profile count: %w", err)
	}
	return affected > 0, nil
}

func (r *ProfileRepository) Get(ctx context.Context, g generation.Generation, pid int32) (profile.TrainerProfile, bool, error) {
	query, args, err := qb.Select("*").From(profileTable).
		Where(
			qb.Eq("generation", int16(g)),
			qb.Eq("pid", pid),
		).
		ToSQL()
	if err != nil {
		return profile.TrainerProfile{}, false, fmt.Errorf("build get profile query: %w", err)
	}

	var row profileRow
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return profile.TrainerProfile{}, false, nil
		}
		return profile.TrainerProfile{}, false, fmt.Errorf("get profile: %w", err)
	}

	p, err := profile.Decode(g, row.Data)
	if err != nil {
		return profile.TrainerProfile{}, false, fmt.Errorf("decode stored profile %d: %w", pid, err)
	}
	p.TimeAdded = row.TimeAdded.UTC()
	p.TimeUpdated = row.TimeUpdated.UTC()
	return p, true, nil
}
