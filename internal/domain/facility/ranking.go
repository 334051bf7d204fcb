package facility

import (
	"sort"

	crerr "github.com/cockroachdb/errors"
)

var ErrBattlesWonOutOfRange = crerr.New("battles won can not be greater than 7")

// Slot is what the ranking needs to know about one competitor in a scope.
type Slot struct {
	ID         uint64
	Position   int
	BattlesWon uint8
}

// Move is a position change for a row that is not the one being placed.
type Move struct {
	ID   uint64
	From int
	To   int
}

// Placement is the outcome of Place: the position for the placed entry plus every other row that moves.
type Placement struct {
	Position int
	Moves    []Move
}

// Place computes where an entry with battlesWon lands in scope, the rows of one (RoomNum, Rank).
// selfID is the entry's existing row id, or 0 when it is new.
//
// The steps run in this order:
//  1. drop the entry's old row, closing the gap it leaves;
//  2. target = min(7-battlesWon, number of remaining rows with more wins);
//  3. push every remaining row at or after target down by one.
//
// Given a dense scope this leaves positions 0..n-1 with no duplicates. Only density is kept:
// the 7-battlesWon cap can seat an entry ahead of rows with more wins, so a 5-win upload into
// a scope of 7-win rows lands at 2. Among equal wins the most recent upload comes first.
// A scope that is not dense on input is compacted in (position, id) order by step 1.
func Place(scope []Slot, selfID uint64, battlesWon uint8) (Placement, error) {
	if battlesWon > MaxBattlesWon {
		return Placement{}, crerr.Wrapf(ErrBattlesWonOutOfRange, "got %d", battlesWon)
	}

	others := make([]Slot, 0, len(scope))
	for _, s := range scope {
		if selfID != 0 && s.ID == selfID {
			continue
		}
		others = append(others, s)
	}
	sort.SliceStable(others, func(i, j int) bool {
		if others[i].Position != others[j].Position {
			return others[i].Position < others[j].Position
		}
		return others[i].ID < others[j].ID
	})

	stronger := 0
	for _, s := range others {
		if s.BattlesWon > battlesWon {
			stronger++
		}
	}
	target := MaxBattlesWon - int(battlesWon)
	if stronger < target {
		target = stronger
	}

	var moves []Move
	for i, s := range others {
		to := i
		if i >= target {
			to = i + 1
		}
		if to != s.Position {
			moves = append(moves, Move{ID: s.ID, From: s.Position, To: to})
		}
	}

	return Placement{Position: target, Moves: moves}, nil
}

// ValidateCompetitor rejects uploads before any write happens.
func ValidateCompetitor(c Competitor) error {
	if c.BattlesWon > MaxBattlesWon {
		return crerr.Wrapf(ErrBattlesWonOutOfRange, "got %d", c.BattlesWon)
	}
	_, err := Encode(c.Record)
	return err
}

func ValidateLeader(l Leader) error {
	if _, err := SchemaFor(l.Generation); err != nil {
		return err
	}
	_, err := EncodeProfile(l.Profile)
	return err
}
