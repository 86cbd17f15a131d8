package gotypes

import (
	"fmt"
	"strings"
)

// Player is the color of a side. The zero value is Black.
type Player int

const (
	Black Player = iota
	White
)

// Other returns the opposing player.
func (p Player) Other() Player {
	if p == White {
		return Black
	}
	return White
}

func (p Player) String() string {
	if p == White {
		return "white"
	}
	return "black"
}

// Color returns the SGF property name for the player's stones.
func (p Player) Color() string {
	if p == White {
		return "W"
	}
	return "B"
}

func ParsePlayer(s string) (Player, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "b", "black":
		return Black, nil
	case "w", "white":
		return White, nil
	}
	return Black, fmt.Errorf("unknown player %q", s)
}

func (p Player) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Player) UnmarshalText(text []byte) error {
	parsed, err := ParsePlayer(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
