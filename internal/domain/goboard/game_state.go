package goboard

import (
	"errors"
	"fmt"

	"igo/internal/domain/gotypes"
	errs "igo/internal/errors"
)

// GameState is an immutable snapshot: the board, who moves next and how we got here.
type GameState struct {
	Board      *Board
	NextPlayer gotypes.Player
	Previous   *GameState
	LastMove   *Move
}

func NewGame(numRows, numCols int) *GameState {
	return &GameState{
		Board:      NewBoard(numRows, numCols),
		NextPlayer: gotypes.Black,
	}
}

// ApplyMove returns the state after NextPlayer makes m. The receiver is not modified.
func (g *GameState) ApplyMove(m Move) (*GameState, error) {
	nextBoard := g.Board
	if m.IsPlay {
		nextBoard = g.Board.Clone()
		if err := nextBoard.PlaceStone(g.NextPlayer, m.Point); err != nil {
			return nil, err
		}
	}
	move := m
	return &GameState{
		Board:      nextBoard,
		NextPlayer: g.NextPlayer.Other(),
		Previous:   g,
		LastMove:   &move,
	}, nil
}

func (g *GameState) IsOver() bool {
	if g.LastMove == nil {
		return false
	}
	if g.LastMove.IsResign {
		return true
	}
	if g.Previous == nil || g.Previous.LastMove == nil {
		return false
	}
	return g.LastMove.IsPass && g.Previous.LastMove.IsPass
}

// IsMoveSelfCapture reports whether m leaves player's own string without liberties.
func (g *GameState) IsMoveSelfCapture(player gotypes.Player, m Move) bool {
	if !m.IsPlay {
		return false
	}
	nextBoard := g.Board.Clone()
	if err := nextBoard.PlaceStone(player, m.Point); err != nil {
		return false
	}
	newString := nextBoard.GetGoString(m.Point)
	return newString != nil && newString.NumLiberties() == 0
}

func (g *GameState) IsValidMove(m Move) bool {
	return g.CheckMove(m) == nil
}

// CheckMove explains why m is not valid for NextPlayer, nil if it is.
func (g *GameState) CheckMove(m Move) error {
	if g.IsOver() {
		return errs.ErrGameNotActive
	}
	if m.IsPass || m.IsResign {
		return nil
	}
	if !g.Board.IsOnGrid(m.Point) {
		return fmt.Errorf("%w: %v", errs.ErrOffGrid, m.Point)
	}
	if _, occupied := g.Board.Get(m.Point); occupied {
		return fmt.Errorf("%w: %v", errs.ErrPointOccupied, m.Point)
	}
	if g.IsMoveSelfCapture(g.NextPlayer, m) {
		return fmt.Errorf("%w: self capture at %v", errs.ErrIllegalMove, m.Point)
	}
	return nil
}

// Moves returns the history from the first move to LastMove.
func (g *GameState) Moves() []Move {
	var moves []Move
	for s := g; s != nil && s.LastMove != nil; s = s.Previous {
		moves = append(moves, *s.LastMove)
	}
	for i, j := 0, len(moves)-1; i < j; i, j = i+1, j-1 {
		moves[i], moves[j] = moves[j], moves[i]
	}
	return moves
}

// IsIllegal reports whether err was produced by a move check.
func IsIllegal(err error) bool {
	return errors.Is(err, errs.ErrIllegalMove) ||
		errors.Is(err, errs.ErrOffGrid) ||
		errors.Is(err, errs.ErrPointOccupied)
}
