package sgf

import (
	"fmt"
	"sort"
	"strings"

	"igo/internal/domain/gotypes"
)

// GameTree представляет одно дерево в SGF (узел + варианты)
type GameTree struct {
	Nodes    []Node      // Последовательность узлов (основная линия)
	Children []*GameTree // Варианты (вариативные линии)
}

// Node представляет один узел SGF (набор свойств, таких как B[pd], W[dd], C[...])
type Node struct {
	Properties map[string][]string // Свойства могут повторяться (например, AB[aa][bb])
}

// SGF представляет корневой элемент SGF-файла
type SGF struct {
	Root *GameTree
}

// фиксированный порядок свойств SGF
var orderedKeys = []string{"FF", "GM", "SZ", "PB", "PW", "DT", "RE", "KM", "RU", "C", "B", "W"}

func Serialize(s *SGF) string {
	var builder strings.Builder
	builder.WriteString("(")
	if s.Root != nil {
		serializeGameTree(&builder, s.Root)
	}
	builder.WriteString(")")
	return builder.String()
}

func serializeGameTree(builder *strings.Builder, tree *GameTree) {
	for _, node := range tree.Nodes {
		builder.WriteString(";")

		used := make(map[string]bool)
		for _, key := range orderedKeys {
			if values, ok := node.Properties[key]; ok {
				used[key] = true
				writeProperty(builder, key, values)
			}
		}

		rest := make([]string, 0, len(node.Properties))
		for key := range node.Properties {
			if !used[key] {
				rest = append(rest, key)
			}
		}
		sort.Strings(rest)
		for _, key := range rest {
			writeProperty(builder, key, node.Properties[key])
		}
	}

	for _, child := range tree.Children {
		builder.WriteString("(")
		serializeGameTree(builder, child)
		builder.WriteString(")")
	}
}

func writeProperty(builder *strings.Builder, key string, values []string) {
	builder.WriteString(key)
	for _, v := range values {
		builder.WriteString("[")
		builder.WriteString(escape(v))
		builder.WriteString("]")
	}
}

func escape(v string) string {
	return strings.NewReplacer(`\`, `\\`, `]`, `\]`).Replace(v)
}

// AppendMove adds a move node to the end of the main line of an SGF text.
func AppendMove(sgfText string, color string, coordinates string) string {
	sgfText = strings.TrimSuffix(sgfText, ")")
	return sgfText + fmt.Sprintf(";%s[%s])", color, coordinates)
}

// EncodePoint returns the SGF coordinate of p: column letter first, 'a' is 1.
func EncodePoint(p gotypes.Point) string {
	return string([]byte{byte('a' + p.Col - 1), byte('a' + p.Row - 1)})
}

// DecodePoint parses a two-letter SGF coordinate. The empty string is a pass and yields ok=false.
func DecodePoint(s string) (p gotypes.Point, ok bool, err error) {
	if s == "" {
		return gotypes.Point{}, false, nil
	}
	if len(s) != 2 || !isCoordLetter(s[0]) || !isCoordLetter(s[1]) {
		return gotypes.Point{}, false, fmt.Errorf("invalid sgf coordinate %q", s)
	}
	return gotypes.Point{Row: int(s[1]-'a') + 1, Col: int(s[0]-'a') + 1}, true, nil
}

func isCoordLetter(c byte) bool {
	return c >= 'a' && c <= 'z'
}
