package game

import "igo/internal/domain/gotypes"

// @name ReplayRequest
type ReplayRequest struct {
	BoardSize int    `json:"board_size" validate:"required,min=2,max=25"`
	Moves     []Move `json:"moves" validate:"dive"`
}

// @name ReplayResponse
type ReplayResponse struct {
	NextPlayer gotypes.Player `json:"next_player"`
	IsOver     bool           `json:"is_over"`
	Board      []string       `json:"board"`
	MoveCount  int            `json:"move_count"`
}
