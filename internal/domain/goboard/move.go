package goboard

import (
	"fmt"

	"igo/internal/domain/gotypes"
)

// Move is one of: a stone placed at Point, a pass, a resignation.
type Move struct {
	Point    gotypes.Point
	IsPlay   bool
	IsPass   bool
	IsResign bool
}

func Play(p gotypes.Point) Move {
	return Move{Point: p, IsPlay: true}
}

func PassTurn() Move {
	return Move{IsPass: true}
}

func Resign() Move {
	return Move{IsResign: true}
}

func (m Move) String() string {
	switch {
	case m.IsPass:
		return "pass"
	case m.IsResign:
		return "resign"
	}
	return fmt.Sprintf("play %v", m.Point)
}
