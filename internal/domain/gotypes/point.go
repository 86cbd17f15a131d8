package gotypes

import "fmt"

// Point is a board coordinate. Bounds are checked by the board, not here.
type Point struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Neighbors returns the four orthogonally adjacent points in the order
// north, south, west, east. Off-board points are included.
func (p Point) Neighbors() [4]Point {
	return [4]Point{
		{Row: p.Row - 1, Col: p.Col},
		{Row: p.Row + 1, Col: p.Col},
		{Row: p.Row, Col: p.Col - 1},
		{Row: p.Row, Col: p.Col + 1},
	}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}
