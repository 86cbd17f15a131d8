package sgf

import (
	"fmt"
	"strconv"
	"strings"

	"igo/internal/domain/gotypes"
)

// буквы столбцов без I, как принято на досках
const columnLetters = "ABCDEFGHJKLMNOPQRSTUVWXYZ"

// ToStandard renders p as a board label such as "D4". Row 1 of the board is the top line.
func ToStandard(p gotypes.Point, boardSize int) (string, error) {
	if p.Row < 1 || p.Row > boardSize || p.Col < 1 || p.Col > boardSize || boardSize > len(columnLetters) {
		return "", fmt.Errorf("координата выходит за пределы доски: %v", p)
	}
	return fmt.Sprintf("%c%d", columnLetters[p.Col-1], boardSize-p.Row+1), nil
}

// ParseStandard is the inverse of ToStandard and accepts lower case letters.
func ParseStandard(label string, boardSize int) (gotypes.Point, error) {
	label = strings.ToUpper(strings.TrimSpace(label))
	if len(label) < 2 {
		return gotypes.Point{}, fmt.Errorf("неверный формат координаты: %q", label)
	}
	col := strings.IndexByte(columnLetters, label[0])
	if col < 0 {
		return gotypes.Point{}, fmt.Errorf("неверный столбец: %q", label)
	}
	number, err := strconv.Atoi(label[1:])
	if err != nil {
		return gotypes.Point{}, fmt.Errorf("неверная строка: %q", label)
	}
	p := gotypes.Point{Row: boardSize - number + 1, Col: col + 1}
	if number < 1 || number > boardSize || p.Col > boardSize {
		return gotypes.Point{}, fmt.Errorf("координата выходит за пределы доски: %q", label)
	}
	return p, nil
}
