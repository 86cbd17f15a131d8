package main

import (
	"bytes"
	"strings"
	"testing"

	"igo/internal/domain/gotypes"
)

func run(t *testing.T, size int, lines ...string) (*session, string) {
	t.Helper()
	var out bytes.Buffer
	s := newSession(size, &out)
	r := newRegistry(s)
	for _, line := range lines {
		if r.execute(line) {
			break
		}
	}
	return s, out.String()
}

func TestPlayStandardAndNumeric(t *testing.T) {
	s, _ := run(t, 9, "play D4", "play 1 1")

	if color, ok := s.state.Board.Get(gotypes.Point{Row: 6, Col: 4}); !ok || color != gotypes.Black {
		t.Error("D4 should hold a black stone at (6, 4)")
	}
	if color, ok := s.state.Board.Get(gotypes.Point{Row: 1, Col: 1}); !ok || color != gotypes.White {
		t.Error("(1, 1) should hold a white stone")
	}
	if s.state.NextPlayer != gotypes.Black {
		t.Error("black should be next")
	}
}

func TestUndo(t *testing.T) {
	s, out := run(t, 9, "play C3", "undo", "undo")
	if s.state.Board.StoneCount(gotypes.Black) != 0 || s.state.NextPlayer != gotypes.Black {
		t.Error("undo did not restore the empty board")
	}
	if !strings.Contains(out, "нечего отменять") {
		t.Errorf("second undo should fail, output:\n%s", out)
	}
}

func TestRejectedMoves(t *testing.T) {
	s, out := run(t, 5, "play A1", "play A1", "play Z9", "play x")
	if len(s.state.Moves()) != 1 {
		t.Errorf("only the first move should be recorded, got %d", len(s.state.Moves()))
	}
	if strings.Count(out, "Ошибка") != 3 {
		t.Errorf("expected three errors, output:\n%s", out)
	}
}

func TestNeighbors(t *testing.T) {
	_, out := run(t, 5, "play 1 2", "neighbors 1 1")
	for _, want := range []string{"(0, 1) вне доски", "(2, 1) пусто", "(1, 0) вне доски", "(1, 2) black"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output:\n%s", want, out)
		}
	}
}

func TestResignAndSGF(t *testing.T) {
	s, out := run(t, 9, "play 3 3", "resign", "pass", "sgf")
	if !s.state.IsOver() {
		t.Fatal("game should be over")
	}
	if !strings.Contains(out, "Партия окончена: B+R") {
		t.Errorf("missing result, output:\n%s", out)
	}
	if !strings.Contains(out, "RE[B+R]") || !strings.Contains(out, ";B[cc]") {
		t.Errorf("unexpected sgf, output:\n%s", out)
	}
}

func TestQuitStopsLoop(t *testing.T) {
	s, out := run(t, 9, "quit", "play D4")
	if s.state.LastMove != nil {
		t.Error("commands after quit should not run")
	}
	if out != "" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestUnknownCommand(t *testing.T) {
	_, out := run(t, 9, "castle")
	if !strings.Contains(out, "Неизвестная команда: castle") {
		t.Errorf("unexpected output %q", out)
	}
}
