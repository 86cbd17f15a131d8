package game

import (
	"time"

	"igo/internal/domain/gotypes"
)

type Game struct {
	GameKeySecret string     `json:"game_key_secret,omitempty" bson:"game_key_secret"`
	GameKeyPublic string     `json:"game_key_public" bson:"game_key_public"`
	CreatedAt     time.Time  `json:"created_at" bson:"created_at"`
	StartedAt     *time.Time `json:"started_at,omitempty" bson:"started_at,omitempty"`
	FinishedAt    *time.Time `json:"finished_at,omitempty" bson:"finished_at,omitempty"`
	Status        string     `json:"status" bson:"status"`
	Result        string     `json:"result,omitempty" bson:"result,omitempty"`
	BoardSize     int        `json:"board_size" bson:"board_size"`
	Komi          float64    `json:"komi" bson:"komi"`
	Moves         []Move     `json:"moves" bson:"moves"`
	PlayerBlack   string     `json:"player_black" bson:"player_black"`
	PlayerWhite   string     `json:"player_white" bson:"player_white"`
	Sgf           string     `json:"sgf,omitempty" bson:"-"`
}

// Seat returns the color playerID plays in this game.
func (g Game) Seat(playerID string) (gotypes.Player, bool) {
	switch {
	case playerID == "":
		return gotypes.Black, false
	case g.PlayerBlack == playerID:
		return gotypes.Black, true
	case g.PlayerWhite == playerID:
		return gotypes.White, true
	}
	return gotypes.Black, false
}

func (g Game) PlayerOf(color gotypes.Player) string {
	if color == gotypes.White {
		return g.PlayerWhite
	}
	return g.PlayerBlack
}

type CreateGameRequest struct {
	PlayerID  string `json:"player_id" validate:"required"`
	BoardSize int    `json:"board_size" validate:"required,min=2,max=25"`
	// nil - коми по умолчанию из конфига
	Komi           *float64 `json:"komi,omitempty" validate:"omitempty,min=0,max=100"`
	IsCreatorBlack bool     `json:"is_creator_black"`
}

type GameCreateResponse struct {
	GameKeyPublic string `json:"game_key_public"`
	GameKeySecret string `json:"game_key_secret"`
}

type GameJoinRequest struct {
	GameKeyPublic string `json:"game_key_public" validate:"required,len=5,numeric"`
	PlayerID      string `json:"player_id" validate:"required"`
}

type MoveRequest struct {
	GameKey     string `json:"game_key" validate:"required"`
	PlayerID    string `json:"player_id" validate:"required"`
	Action      string `json:"action" validate:"required,oneof=play pass resign"`
	Coordinates string `json:"coordinates" validate:"required_if=Action play"`
}

type GameStateResponse struct {
	GameKeyPublic string         `json:"game_key_public"`
	Move          *Move          `json:"move,omitempty"`
	NextPlayer    gotypes.Player `json:"next_player"`
	Status        string         `json:"status"`
	Result        string         `json:"result,omitempty"`
	Board         []string       `json:"board"`
	SGF           string         `json:"sgf"`
}
