// Package pokedex holds the static reference data imported from game dumps.
// Rows are plain inserts: there are no invariants beyond the primary keys.
package pokedex

import (
	"context"

	crerr "github.com/cockroachdb/errors"
)

// ErrNotImplemented is returned by imports the store does not support yet.
var ErrNotImplemented = crerr.New("pokedex operation not implemented")

type Species struct {
	ID          int    `json:"id" validate:"required,min=1"`
	NationalDex int    `json:"national_dex" validate:"min=0"`
	FamilyID    int    `json:"family_id"`
	Name        string `json:"name" validate:"required"`
	GrowthRate  int    `json:"growth_rate"`
	GenderRatio int    `json:"gender_ratio"`
	EggSteps    int    `json:"egg_steps"`
	IsBaby      bool   `json:"is_baby"`
	Generation  int    `json:"generation" validate:"min=1"`
}

type Move struct {
	ID       int    `json:"id" validate:"required,min=1"`
	Name     string `json:"name" validate:"required"`
	Type     int    `json:"type"`
	Category int    `json:"category"`
	Power    int    `json:"power"`
	Accuracy int    `json:"accuracy"`
	PP       int    `json:"pp"`
}

type Item struct {
	ID     int    `json:"id" validate:"required,min=1"`
	Name   string `json:"name" validate:"required"`
	Price  int    `json:"price" validate:"min=0"`
	Gen4ID *int   `json:"gen4_id,omitempty"`
	Gen5ID *int   `json:"gen5_id,omitempty"`
}

type Evolution struct {
	FamilyID      int `json:"family_id"`
	FromSpeciesID int `json:"from_species_id"`
	ToSpeciesID   int `json:"to_species_id"`
	Method        int `json:"method"`
	Parameter     int `json:"parameter"`
}

type Repository interface {
	InsertSpecies(ctx context.Context, s Species) error
	InsertMove(ctx context.Context, m Move) error
	InsertItem(ctx context.Context, i Item) error
	InsertEvolution(ctx context.Context, e Evolution) error

	ListSpecies(ctx context.Context) ([]Species, error)
	ListMoves(ctx context.Context) ([]Move, error)
	ListItems(ctx context.Context) ([]Item, error)
	ListEvolutions(ctx context.Context) ([]Evolution, error)
}
