package goboard

import (
	"fmt"

	"igo/internal/domain/gotypes"
	errs "igo/internal/errors"
)

// Board tracks stones as strings. Points are 1-based.
type Board struct {
	NumRows int
	NumCols int
	grid    map[gotypes.Point]*GoString
}

func NewBoard(numRows, numCols int) *Board {
	return &Board{
		NumRows: numRows,
		NumCols: numCols,
		grid:    make(map[gotypes.Point]*GoString),
	}
}

func (b *Board) IsOnGrid(p gotypes.Point) bool {
	return 1 <= p.Row && p.Row <= b.NumRows &&
		1 <= p.Col && p.Col <= b.NumCols
}

// Get returns the color of the stone at p, ok is false for an empty point.
func (b *Board) Get(p gotypes.Point) (player gotypes.Player, ok bool) {
	s := b.grid[p]
	if s == nil {
		return gotypes.Black, false
	}
	return s.Color, true
}

// GetGoString returns the string containing p or nil.
func (b *Board) GetGoString(p gotypes.Point) *GoString {
	return b.grid[p]
}

func (b *Board) PlaceStone(player gotypes.Player, p gotypes.Point) error {
	if !b.IsOnGrid(p) {
		return fmt.Errorf("%w: %v", errs.ErrOffGrid, p)
	}
	if b.grid[p] != nil {
		return fmt.Errorf("%w: %v", errs.ErrPointOccupied, p)
	}

	var adjacentSameColor, adjacentOppositeColor []*GoString
	var liberties []gotypes.Point
	for _, neighbor := range p.Neighbors() {
		if !b.IsOnGrid(neighbor) {
			continue
		}
		neighborString := b.grid[neighbor]
		switch {
		case neighborString == nil:
			liberties = append(liberties, neighbor)
		case neighborString.Color == player:
			adjacentSameColor = appendUnique(adjacentSameColor, neighborString)
		default:
			adjacentOppositeColor = appendUnique(adjacentOppositeColor, neighborString)
		}
	}

	newString := NewGoString(player, []gotypes.Point{p}, liberties)
	for _, same := range adjacentSameColor {
		newString = newString.MergedWith(same)
	}
	for stone := range newString.stones {
		b.grid[stone] = newString
	}

	for _, other := range adjacentOppositeColor {
		other.RemoveLiberty(p)
	}
	for _, other := range adjacentOppositeColor {
		if other.NumLiberties() == 0 {
			b.removeString(other)
		}
	}
	return nil
}

func (b *Board) removeString(s *GoString) {
	for stone := range s.stones {
		for _, neighbor := range stone.Neighbors() {
			neighborString := b.grid[neighbor]
			if neighborString == nil {
				continue
			}
			if neighborString != s {
				neighborString.AddLiberty(stone)
			}
		}
		delete(b.grid, stone)
	}
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	clone := NewBoard(b.NumRows, b.NumCols)
	copied := make(map[*GoString]*GoString)
	for p, s := range b.grid {
		c, ok := copied[s]
		if !ok {
			c = s.clone()
			copied[s] = c
		}
		clone.grid[p] = c
	}
	return clone
}

// StoneCount returns the number of stones of the given color on the board.
func (b *Board) StoneCount(player gotypes.Player) int {
	n := 0
	for _, s := range b.grid {
		if s.Color == player {
			n++
		}
	}
	return n
}

func appendUnique(list []*GoString, s *GoString) []*GoString {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
