package pokedexgorm

import "github.com/L3Technosmith/pkmnFoundations/internal/domain/pokedex"

type speciesModel struct {
	ID          int `gorm:"primaryKey;autoIncrement:false"`
	NationalDex int
	FamilyID    int
	Name        string
	GrowthRate  int
	GenderRatio int
	EggSteps    int
	IsBaby      bool
	Generation  int
}

func (speciesModel) TableName() string { return "pokedex_species" }

type moveModel struct {
	ID       int `gorm:"primaryKey;autoIncrement:false"`
	Name     string
	Type     int
	Category int
	Power    int
	Accuracy int
	PP       int `gorm:"column:pp"`
}

func (moveModel) TableName() string { return "pokedex_moves" }

type itemModel struct {
	ID     int `gorm:"primaryKey;autoIncrement:false"`
	Name   string
	Price  int
	Gen4ID *int `gorm:"column:gen4_id"`
	Gen5ID *int `gorm:"column:gen5_id"`
}

func (itemModel) TableName() string { return "pokedex_items" }

func fromSpecies(s pokedex.Species) speciesModel {
	return speciesModel(s)
}

func (m speciesModel) toDomain() pokedex.Species {
	return pokedex.Species(m)
}

func fromMove(m pokedex.Move) moveModel {
	return moveModel(m)
}

func (m moveModel) toDomain() pokedex.Move {
	return pokedex.Move(m)
}

func fromItem(i pokedex.Item) itemModel {
	return itemModel{ID: i.ID, Name: i.Name, Price: i.Price, Gen4ID: i.Gen4ID, Gen5ID: i.Gen5ID}
}

func (m itemModel) toDomain() pokedex.Item {
	return pokedex.Item{ID: m.ID, Name: m.Name, Price: m.Price, Gen4ID: m.Gen4ID, Gen5ID: m.Gen5ID}
}
