package errors

import "errors"

var (
	ErrCreateGameFailed = errors.New("create game failed")
	ErrJoinGameFailed   = errors.New("join game failed")
	ErrGameNotFound     = errors.New("game not found")
	ErrGameNotActive    = errors.New("game is not active")
	ErrGameFull         = errors.New("game already has two players")
	ErrAlreadyInGame    = errors.New("player already has an unfinished game")
	ErrNotInGame        = errors.New("player is not in this game")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrIllegalMove      = errors.New("illegal move")
	ErrOffGrid          = errors.New("point is off the board")
	ErrPointOccupied    = errors.New("point is occupied")
	ErrSgfNotFound      = errors.New("sgf was not found")
	ErrGameChanged      = errors.New("game was changed by another move")
	ErrInternal         = errors.New("internal error")
)
