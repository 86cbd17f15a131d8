package game

import (
	"fmt"

	"igo/internal/domain/goboard"
	"igo/internal/domain/gotypes"
	"igo/internal/domain/sgf"
	errs "igo/internal/errors"
)

const (
	ActionPlay   = "play"
	ActionPass   = "pass"
	ActionResign = "resign"
)

// @name Move
type Move struct {
	Color       string `json:"color" bson:"color" validate:"oneof=B W"`
	Action      string `json:"action" bson:"action" validate:"oneof=play pass resign"`
	Coordinates string `json:"coordinates,omitempty" bson:"coordinates,omitempty" validate:"required_if=Action play"`
}

// NewMove records m made by color.
func NewMove(color gotypes.Player, m goboard.Move) Move {
	switch {
	case m.IsPass:
		return Move{Color: color.Color(), Action: ActionPass}
	case m.IsResign:
		return Move{Color: color.Color(), Action: ActionResign}
	}
	return Move{Color: color.Color(), Action: ActionPlay, Coordinates: sgf.EncodePoint(m.Point)}
}

// ToBoardMove converts the stored move back to the engine representation.
func (m Move) ToBoardMove() (gotypes.Player, goboard.Move, error) {
	color, err := gotypes.ParsePlayer(m.Color)
	if err != nil {
		return color, goboard.Move{}, err
	}
	switch m.Action {
	case ActionPass:
		return color, goboard.PassTurn(), nil
	case ActionResign:
		return color, goboard.Resign(), nil
	case ActionPlay, "":
		p, ok, err := sgf.DecodePoint(m.Coordinates)
		if err != nil {
			return color, goboard.Move{}, fmt.Errorf("%w: %v", errs.ErrIllegalMove, err)
		}
		if ok {
			return color, goboard.Play(p), nil
		}
		// без действия пустая координата - пас, как в SGF
		if m.Action == "" {
			return color, goboard.PassTurn(), nil
		}
		return color, goboard.Move{}, fmt.Errorf("%w: play without coordinates", errs.ErrIllegalMove)
	}
	return color, goboard.Move{}, fmt.Errorf("unknown action %q", m.Action)
}

// ReplayMoves rebuilds the game state of a square board from recorded moves.
func ReplayMoves(boardSize int, moves []Move) (*goboard.GameState, error) {
	state := goboard.NewGame(boardSize, boardSize)
	for i, recorded := range moves {
		color, m, err := recorded.ToBoardMove()
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		if color != state.NextPlayer {
			return nil, fmt.Errorf("move %d: %w: %s played out of turn", i+1, errs.ErrIllegalMove, color)
		}
		if err = state.CheckMove(m); err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		if state, err = state.ApplyMove(m); err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
	}
	return state, nil
}
