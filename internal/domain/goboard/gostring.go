package goboard

import (
	"sort"

	"igo/internal/domain/gotypes"
)

type pointSet map[gotypes.Point]struct{}

func newPointSet(points ...gotypes.Point) pointSet {
	s := make(pointSet, len(points))
	for _, p := range points {
		s[p] = struct{}{}
	}
	return s
}

func (s pointSet) equal(o pointSet) bool {
	if len(s) != len(o) {
		return false
	}
	for p := range s {
		if _, ok := o[p]; !ok {
			return false
		}
	}
	return true
}

// GoString is a chain of connected stones of one color and its liberties.
type GoString struct {
	Color     gotypes.Player
	stones    pointSet
	liberties pointSet
}

func NewGoString(color gotypes.Player, stones, liberties []gotypes.Point) *GoString {
	return &GoString{
		Color:     color,
		stones:    newPointSet(stones...),
		liberties: newPointSet(liberties...),
	}
}

func (s *GoString) RemoveLiberty(p gotypes.Point) {
	delete(s.liberties, p)
}

func (s *GoString) AddLiberty(p gotypes.Point) {
	s.liberties[p] = struct{}{}
}

// MergedWith returns a new string joining s and other. Both must have the same color.
func (s *GoString) MergedWith(other *GoString) *GoString {
	if other.Color != s.Color {
		panic("goboard: merging strings of different colors")
	}
	merged := &GoString{
		Color:     s.Color,
		stones:    make(pointSet, len(s.stones)+len(other.stones)),
		liberties: make(pointSet, len(s.liberties)+len(other.liberties)),
	}
	for p := range s.stones {
		merged.stones[p] = struct{}{}
	}
	for p := range other.stones {
		merged.stones[p] = struct{}{}
	}
	for _, libs := range []pointSet{s.liberties, other.liberties} {
		for p := range libs {
			if _, isStone := merged.stones[p]; !isStone {
				merged.liberties[p] = struct{}{}
			}
		}
	}
	return merged
}

func (s *GoString) NumLiberties() int {
	return len(s.liberties)
}

func (s *GoString) Stones() []gotypes.Point {
	return s.stones.list()
}

func (s *GoString) Liberties() []gotypes.Point {
	return s.liberties.list()
}

func (s *GoString) HasStone(p gotypes.Point) bool {
	_, ok := s.stones[p]
	return ok
}

func (s *GoString) Equal(other *GoString) bool {
	if other == nil {
		return false
	}
	return s.Color == other.Color && s.stones.equal(other.stones) && s.liberties.equal(other.liberties)
}

func (s *GoString) clone() *GoString {
	return &GoString{
		Color:     s.Color,
		stones:    newPointSet(s.stones.list()...),
		liberties: newPointSet(s.liberties.list()...),
	}
}

// list returns points ordered by row, then column.
func (s pointSet) list() []gotypes.Point {
	out := make([]gotypes.Point, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}
