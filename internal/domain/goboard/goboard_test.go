package goboard

import (
	"errors"
	"testing"

	"igo/internal/domain/gotypes"
	errs "igo/internal/errors"
)

func pt(row, col int) gotypes.Point {
	return gotypes.Point{Row: row, Col: col}
}

func mustPlace(t *testing.T, b *Board, player gotypes.Player, p gotypes.Point) {
	t.Helper()
	if err := b.PlaceStone(player, p); err != nil {
		t.Fatal(err)
	}
}

func TestBoardIsOnGrid(t *testing.T) {
	b := NewBoard(9, 9)
	if !b.IsOnGrid(pt(1, 1)) || !b.IsOnGrid(pt(9, 9)) {
		t.Error("corners should be on grid")
	}
	for _, p := range []gotypes.Point{pt(0, 1), pt(1, 0), pt(10, 1), pt(1, 10), pt(-1, -1)} {
		if b.IsOnGrid(p) {
			t.Errorf("%v should be off grid", p)
		}
	}
}

func TestPlaceStoneRejectsOffGridAndOccupied(t *testing.T) {
	b := NewBoard(5, 5)
	if err := b.PlaceStone(gotypes.Black, pt(0, 3)); !errors.Is(err, errs.ErrOffGrid) {
		t.Errorf("expected ErrOffGrid, got %v", err)
	}
	mustPlace(t, b, gotypes.Black, pt(3, 3))
	if err := b.PlaceStone(gotypes.White, pt(3, 3)); !errors.Is(err, errs.ErrPointOccupied) {
		t.Errorf("expected ErrPointOccupied, got %v", err)
	}
}

func TestPlaceStoneLiberties(t *testing.T) {
	b := NewBoard(19, 19)
	mustPlace(t, b, gotypes.Black, pt(2, 2))
	mustPlace(t, b, gotypes.White, pt(1, 2))

	color, ok := b.Get(pt(2, 2))
	if !ok || color != gotypes.Black {
		t.Errorf("expected black at (2, 2), got %v %v", color, ok)
	}
	if n := b.GetGoString(pt(2, 2)).NumLiberties(); n != 3 {
		t.Errorf("black liberties %d != 3", n)
	}
	if n := b.GetGoString(pt(1, 2)).NumLiberties(); n != 2 {
		t.Errorf("white liberties %d != 2", n)
	}
	if _, ok = b.Get(pt(5, 5)); ok {
		t.Error("(5, 5) should be empty")
	}
}

func TestPlaceStoneMergesStrings(t *testing.T) {
	b := NewBoard(19, 19)
	mustPlace(t, b, gotypes.Black, pt(2, 2))
	mustPlace(t, b, gotypes.Black, pt(2, 4))
	mustPlace(t, b, gotypes.Black, pt(2, 3))

	s := b.GetGoString(pt(2, 2))
	if s != b.GetGoString(pt(2, 4)) || s != b.GetGoString(pt(2, 3)) {
		t.Fatal("stones should share one string")
	}
	if len(s.Stones()) != 3 {
		t.Errorf("string has %d stones, want 3", len(s.Stones()))
	}
	if s.NumLiberties() != 8 {
		t.Errorf("string has %d liberties, want 8", s.NumLiberties())
	}
}

func TestCapture(t *testing.T) {
	b := NewBoard(19, 19)
	mustPlace(t, b, gotypes.Black, pt(2, 2))
	mustPlace(t, b, gotypes.White, pt(1, 2))
	mustPlace(t, b, gotypes.White, pt(2, 1))
	mustPlace(t, b, gotypes.White, pt(2, 3))
	if b.GetGoString(pt(2, 2)).NumLiberties() != 1 {
		t.Fatal("black should be in atari")
	}
	mustPlace(t, b, gotypes.White, pt(3, 2))

	if _, ok := b.Get(pt(2, 2)); ok {
		t.Error("black stone should be captured")
	}
	if n := b.GetGoString(pt(1, 2)).NumLiberties(); n != 3 {
		t.Errorf("white liberties after capture %d != 3", n)
	}
}

func TestCaptureTwoStones(t *testing.T) {
	b := NewBoard(19, 19)
	mustPlace(t, b, gotypes.Black, pt(2, 2))
	mustPlace(t, b, gotypes.Black, pt(2, 3))
	mustPlace(t, b, gotypes.White, pt(1, 2))
	mustPlace(t, b, gotypes.White, pt(1, 3))
	mustPlace(t, b, gotypes.White, pt(3, 2))
	mustPlace(t, b, gotypes.White, pt(3, 3))
	mustPlace(t, b, gotypes.White, pt(2, 1))
	mustPlace(t, b, gotypes.White, pt(2, 4))

	if b.StoneCount(gotypes.Black) != 0 {
		t.Error("both black stones should be captured")
	}
	// (1, 1), (1, 4) plus the two freed points
	if n := b.GetGoString(pt(1, 2)).NumLiberties(); n != 4 {
		t.Errorf("white liberties %d != 4", n)
	}
}

func TestCaptureIsNotSuicide(t *testing.T) {
	b := NewBoard(19, 19)
	mustPlace(t, b, gotypes.Black, pt(1, 1))
	mustPlace(t, b, gotypes.Black, pt(2, 2))
	mustPlace(t, b, gotypes.Black, pt(1, 3))
	mustPlace(t, b, gotypes.White, pt(2, 1))
	mustPlace(t, b, gotypes.White, pt(1, 2))

	if _, ok := b.Get(pt(1, 1)); ok {
		t.Error("black corner stone should be captured")
	}
	if _, ok := b.Get(pt(1, 2)); !ok {
		t.Error("white stone at (1, 2) should stay")
	}
	if _, ok := b.Get(pt(2, 1)); !ok {
		t.Error("white stone at (2, 1) should stay")
	}
}

func TestBoardClone(t *testing.T) {
	b := NewBoard(9, 9)
	mustPlace(t, b, gotypes.Black, pt(5, 5))
	clone := b.Clone()
	mustPlace(t, clone, gotypes.White, pt(5, 6))

	if _, ok := b.Get(pt(5, 6)); ok {
		t.Error("clone must not write through to the original")
	}
	if b.GetGoString(pt(5, 5)).NumLiberties() != 4 {
		t.Error("original liberties changed through clone")
	}
	neighbors := pt(5, 5).Neighbors()
	if !b.GetGoString(pt(5, 5)).Equal(NewGoString(gotypes.Black, []gotypes.Point{pt(5, 5)}, neighbors[:])) {
		t.Error("original string should be unchanged")
	}
}

func TestGoStringMergedWith(t *testing.T) {
	a := NewGoString(gotypes.White, []gotypes.Point{pt(1, 1)}, []gotypes.Point{pt(1, 2), pt(2, 1)})
	b := NewGoString(gotypes.White, []gotypes.Point{pt(1, 2)}, []gotypes.Point{pt(1, 1), pt(1, 3), pt(2, 2)})
	merged := a.MergedWith(b)
	want := NewGoString(gotypes.White,
		[]gotypes.Point{pt(1, 1), pt(1, 2)},
		[]gotypes.Point{pt(2, 1), pt(1, 3), pt(2, 2)})
	if !merged.Equal(want) {
		t.Errorf("stones %v liberties %v", merged.Stones(), merged.Liberties())
	}
}

func TestNewGame(t *testing.T) {
	g := NewGame(19, 19)
	if g.NextPlayer != gotypes.Black {
		t.Errorf("first player %v != black", g.NextPlayer)
	}
	if g.IsOver() {
		t.Error("new game should not be over")
	}
	if len(g.Moves()) != 0 {
		t.Error("new game should have no moves")
	}
}

func TestApplyMove(t *testing.T) {
	g := NewGame(9, 9)
	next, err := g.ApplyMove(Play(pt(3, 3)))
	if err != nil {
		t.Fatal(err)
	}
	if next.NextPlayer != gotypes.White {
		t.Errorf("next player %v != white", next.NextPlayer)
	}
	if _, ok := g.Board.Get(pt(3, 3)); ok {
		t.Error("applying a move must not change the previous board")
	}
	if color, ok := next.Board.Get(pt(3, 3)); !ok || color != gotypes.Black {
		t.Error("expected black stone at (3, 3)")
	}
	if next.Previous != g || *next.LastMove != Play(pt(3, 3)) {
		t.Error("history not linked")
	}

	passed, err := next.ApplyMove(PassTurn())
	if err != nil {
		t.Fatal(err)
	}
	if passed.Board != next.Board {
		t.Error("pass should keep the board")
	}
	if passed.NextPlayer != gotypes.Black {
		t.Error("pass should hand the turn over")
	}

	if _, err = passed.ApplyMove(Play(pt(3, 3))); !errors.Is(err, errs.ErrPointOccupied) {
		t.Errorf("expected ErrPointOccupied, got %v", err)
	}
}

func TestIsOver(t *testing.T) {
	g := NewGame(9, 9)
	g, _ = g.ApplyMove(Play(pt(1, 1)))
	g, _ = g.ApplyMove(PassTurn())
	if g.IsOver() {
		t.Error("one pass should not end the game")
	}
	g, _ = g.ApplyMove(PassTurn())
	if !g.IsOver() {
		t.Error("two passes should end the game")
	}

	r, _ := NewGame(9, 9).ApplyMove(Resign())
	if !r.IsOver() {
		t.Error("resign should end the game")
	}

	single, _ := NewGame(9, 9).ApplyMove(PassTurn())
	if single.IsOver() {
		t.Error("a single pass from the start should not end the game")
	}
}

func TestIsMoveSelfCapture(t *testing.T) {
	g := NewGame(9, 9)
	for _, m := range []Move{
		Play(pt(5, 5)), Play(pt(1, 2)),
		Play(pt(6, 6)), Play(pt(2, 1)),
	} {
		var err error
		if g, err = g.ApplyMove(m); err != nil {
			t.Fatal(err)
		}
	}
	if !g.IsMoveSelfCapture(gotypes.Black, Play(pt(1, 1))) {
		t.Error("black at (1, 1) should be self capture")
	}
	if g.IsValidMove(Play(pt(1, 1))) {
		t.Error("self capture should not be valid")
	}
	if err := g.CheckMove(Play(pt(1, 1))); !errors.Is(err, errs.ErrIllegalMove) {
		t.Errorf("expected ErrIllegalMove, got %v", err)
	}
	if g.IsMoveSelfCapture(gotypes.White, Play(pt(1, 1))) {
		t.Error("white at (1, 1) has liberties through its own stones")
	}
	if g.IsMoveSelfCapture(gotypes.Black, PassTurn()) {
		t.Error("pass is never self capture")
	}
}

func TestIsValidMove(t *testing.T) {
	g := NewGame(5, 5)
	if !g.IsValidMove(Play(pt(3, 3))) || !g.IsValidMove(PassTurn()) || !g.IsValidMove(Resign()) {
		t.Error("expected valid moves on empty board")
	}
	if g.IsValidMove(Play(pt(6, 1))) {
		t.Error("off grid move should be invalid")
	}
	over, _ := g.ApplyMove(Resign())
	if over.IsValidMove(PassTurn()) {
		t.Error("no move is valid after the game is over")
	}
}

func TestMovesHistory(t *testing.T) {
	g := NewGame(9, 9)
	played := []Move{Play(pt(3, 3)), Play(pt(4, 4)), PassTurn(), Resign()}
	for _, m := range played {
		var err error
		if g, err = g.ApplyMove(m); err != nil {
			t.Fatal(err)
		}
	}
	moves := g.Moves()
	if len(moves) != len(played) {
		t.Fatalf("%d moves, want %d", len(moves), len(played))
	}
	for i := range played {
		if moves[i] != played[i] {
			t.Errorf("move %d: %v != %v", i, moves[i], played[i])
		}
	}
}
