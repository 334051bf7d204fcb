// Package pokedexgorm stores the reference tables through gorm. They are written once by an import
// and read back whole, so the ORM's plain CRUD is all they need.
package pokedexgorm

import (
	"context"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/L3Technosmith/pkmnFoundations/internal/domain/pokedex"
)

// Open connects gorm to the same database the sqlx stores use.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open gorm postgres: %w", err)
	}
	return db, nil
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// upsert makes a re-run import overwrite rows instead of failing on the primary key.
var upsert = clause.OnConflict{
	Columns:   []clause.Column{{Name: "id"}},
	UpdateAll: true,
}

func (r *Repository) InsertSpecies(ctx context.Context, s pokedex.Species) error {
	m := fromSpecies(s)
	if err := r.db.WithContext(ctx).Clauses(upsert).Create(&m).Error; err != nil {
		return fmt.Errorf("insert species %d: %w", s.ID, err)
	}
	return nil
}

func (r *Repository) InsertMove(ctx context.Context, mv pokedex.Move) error {
	m := fromMove(mv)
	if err := r.db.WithContext(ctx).Clauses(upsert).Create(&m).Error; err != nil {
		return fmt.Errorf("insert move %d: %w", mv.ID, err)
	}
	return nil
}

func (r *Repository) InsertItem(ctx context.Context, i pokedex.Item) error {
	m := fromItem(i)
	if err := r.db.WithContext(ctx).Clauses(upsert).Create(&m).Error; err != nil {
		return fmt.Errorf("insert item %d: %w", i.ID, err)
	}
	return nil
}

func (r *Repository) InsertEvolution(context.Context, pokedex.Evolution) error {
	return pokedex.ErrNotImplemented
}

func (r *Repository) ListSpecies(ctx context.Context) ([]pokedex.Species, error) {
	var rows []speciesModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list species: %w", err)
	}
	out := make([]pokedex.Species, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *Repository) ListMoves(ctx context.Context) ([]pokedex.Move, error) {
	var rows []moveModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list moves: %w", err)
	}
	out := make([]pokedex.Move, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *Repository) ListItems(ctx context.Context) ([]pokedex.Item, error) {
	var rows []itemModel
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	out := make([]pokedex.Item, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *Repository) ListEvolutions(context.Context) ([]pokedex.Evolution, error) {
	return nil, pokedex.ErrNotImplemented
}
