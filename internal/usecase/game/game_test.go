package game

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"igo/internal/domain/game"
	"igo/internal/domain/gotypes"
	"igo/internal/domain/sgf"
	errs "igo/internal/errors"
	"igo/internal/repository"
	"igo/internal/statuses"
)

func newUseCase() *GameUseCase {
	return NewGameUseCase(repository.NewMemoryGameStore(), zap.NewNop().Sugar())
}

// brokenCacheStore fails every SGF cache write, like a store whose redis is down.
type brokenCacheStore struct {
	*repository.MemoryGameStore
}

func (b brokenCacheStore) SaveSGF(ctx context.Context, gameKey string, moveCount int, sgfText string) error {
	return errors.New("redis: connection refused")
}

// startGame creates a 9x9 game with alice as black and bob as white.
func startGame(t *testing.T, uc *GameUseCase) game.Game {
	t.Helper()
	ctx := context.Background()
	komi := 6.5
	created, err := uc.CreateGame(ctx, game.CreateGameRequest{
		PlayerID:       "alice",
		BoardSize:      9,
		Komi:           &komi,
		IsCreatorBlack: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	joined, err := uc.JoinGame(ctx, game.GameJoinRequest{GameKeyPublic: created.GameKeyPublic, PlayerID: "bob"})
	if err != nil {
		t.Fatal(err)
	}
	return joined
}

func play(t *testing.T, uc *GameUseCase, g game.Game, player, action, coords string) game.GameStateResponse {
	t.Helper()
	resp, err := uc.PlayMove(context.Background(), game.MoveRequest{
		GameKey:     g.GameKeySecret,
		PlayerID:    player,
		Action:      action,
		Coordinates: coords,
	})
	if err != nil {
		t.Fatalf("%s %s %s: %v", player, action, coords, err)
	}
	return resp
}

func TestCreateAndJoinGame(t *testing.T) {
	uc := newUseCase()
	g := startGame(t, uc)

	if g.PlayerBlack != "alice" || g.PlayerWhite != "bob" {
		t.Errorf("unexpected seats black=%s white=%s", g.PlayerBlack, g.PlayerWhite)
	}
	if g.Status != statuses.StatusActive {
		t.Errorf("status %s != %s", g.Status, statuses.StatusActive)
	}
	if !strings.HasPrefix(g.Sgf, "(;FF[4]GM[1]SZ[9]PB[alice]PW[bob]") {
		t.Errorf("unexpected sgf header %s", g.Sgf)
	}
}

func TestCreateGameKomi(t *testing.T) {
	uc := newUseCase()
	uc.SetDefaultKomi(7.5)
	ctx := context.Background()

	created, err := uc.CreateGame(ctx, game.CreateGameRequest{PlayerID: "alice", BoardSize: 9})
	if err != nil {
		t.Fatal(err)
	}
	g, err := uc.GetGameBySecretKey(ctx, created.GameKeySecret)
	if err != nil {
		t.Fatal(err)
	}
	if g.Komi != 7.5 || !strings.Contains(g.Sgf, "KM[7.5]") {
		t.Errorf("default komi not applied: %v %s", g.Komi, g.Sgf)
	}

	zero := 0.0
	created, err = uc.CreateGame(ctx, game.CreateGameRequest{PlayerID: "bob", BoardSize: 9, Komi: &zero})
	if err != nil {
		t.Fatal(err)
	}
	g, err = uc.GetGameBySecretKey(ctx, created.GameKeySecret)
	if err != nil {
		t.Fatal(err)
	}
	if g.Komi != 0 {
		t.Errorf("explicit zero komi replaced by %v", g.Komi)
	}
}

func TestCreatorTakesWhite(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	created, err := uc.CreateGame(ctx, game.CreateGameRequest{PlayerID: "alice", BoardSize: 9})
	if err != nil {
		t.Fatal(err)
	}
	g, err := uc.JoinGame(ctx, game.GameJoinRequest{GameKeyPublic: created.GameKeyPublic, PlayerID: "bob"})
	if err != nil {
		t.Fatal(err)
	}
	if g.PlayerWhite != "alice" || g.PlayerBlack != "bob" {
		t.Errorf("unexpected seats black=%s white=%s", g.PlayerBlack, g.PlayerWhite)
	}
}

func TestCreateGameRejectsBusyPlayer(t *testing.T) {
	uc := newUseCase()
	startGame(t, uc)
	_, err := uc.CreateGame(context.Background(), game.CreateGameRequest{PlayerID: "bob", BoardSize: 19})
	if !errors.Is(err, errs.ErrAlreadyInGame) {
		t.Errorf("expected ErrAlreadyInGame, got %v", err)
	}
}

func TestJoinGameErrors(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	created, err := uc.CreateGame(ctx, game.CreateGameRequest{PlayerID: "alice", BoardSize: 9, IsCreatorBlack: true})
	if err != nil {
		t.Fatal(err)
	}

	if _, err = uc.JoinGame(ctx, game.GameJoinRequest{GameKeyPublic: created.GameKeyPublic, PlayerID: "alice"}); !errors.Is(err, errs.ErrAlreadyInGame) {
		t.Errorf("creator joining own game: %v", err)
	}
	unknown := "00000"
	if created.GameKeyPublic == unknown {
		unknown = "00001"
	}
	if _, err = uc.JoinGame(ctx, game.GameJoinRequest{GameKeyPublic: unknown, PlayerID: "bob"}); !errors.Is(err, errs.ErrGameNotFound) {
		t.Errorf("expected ErrGameNotFound, got %v", err)
	}
	if _, err = uc.JoinGame(ctx, game.GameJoinRequest{GameKeyPublic: created.GameKeyPublic, PlayerID: "bob"}); err != nil {
		t.Fatal(err)
	}
	if _, err = uc.JoinGame(ctx, game.GameJoinRequest{GameKeyPublic: created.GameKeyPublic, PlayerID: "carol"}); !errors.Is(err, errs.ErrGameFull) {
		t.Errorf("expected ErrGameFull, got %v", err)
	}
}

func TestPlayMove(t *testing.T) {
	uc := newUseCase()
	g := startGame(t, uc)

	resp := play(t, uc, g, "alice", game.ActionPlay, "cc")
	if resp.NextPlayer != gotypes.White {
		t.Errorf("next player %v != white", resp.NextPlayer)
	}
	if resp.Board[2] != "..X......" {
		t.Errorf("row 3 is %q", resp.Board[2])
	}
	if resp.Move == nil || resp.Move.Color != "B" || resp.Move.Coordinates != "cc" {
		t.Errorf("unexpected move %+v", resp.Move)
	}
	if !strings.HasSuffix(resp.SGF, ";B[cc])") {
		t.Errorf("sgf %s does not end with the move", resp.SGF)
	}

	resp = play(t, uc, g, "bob", game.ActionPass, "")
	if resp.NextPlayer != gotypes.Black || resp.Status != statuses.StatusActive {
		t.Errorf("unexpected state after pass: %+v", resp)
	}

	stored, err := uc.GetGameBySecretKey(context.Background(), g.GameKeySecret)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored.Moves) != 2 || stored.Sgf != resp.SGF {
		t.Errorf("stored game out of sync: %+v", stored)
	}
}

func TestPlayMoveRejections(t *testing.T) {
	uc := newUseCase()
	g := startGame(t, uc)
	ctx := context.Background()

	cases := []struct {
		name string
		req  game.MoveRequest
		want error
	}{
		{"wrong turn", game.MoveRequest{GameKey: g.GameKeySecret, PlayerID: "bob", Action: game.ActionPlay, Coordinates: "aa"}, errs.ErrNotYourTurn},
		{"not seated", game.MoveRequest{GameKey: g.GameKeySecret, PlayerID: "carol", Action: game.ActionPass}, errs.ErrNotInGame},
		{"unknown game", game.MoveRequest{GameKey: "nope", PlayerID: "alice", Action: game.ActionPass}, errs.ErrGameNotFound},
		{"off grid", game.MoveRequest{GameKey: g.GameKeySecret, PlayerID: "alice", Action: game.ActionPlay, Coordinates: "zz"}, errs.ErrOffGrid},
		{"bad coordinates", game.MoveRequest{GameKey: g.GameKeySecret, PlayerID: "alice", Action: game.ActionPlay, Coordinates: "c"}, errs.ErrIllegalMove},
	}
	for _, c := range cases {
		if _, err := uc.PlayMove(ctx, c.req); !errors.Is(err, c.want) {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, err)
		}
	}

	play(t, uc, g, "alice", game.ActionPlay, "cc")
	_, err := uc.PlayMove(ctx, game.MoveRequest{GameKey: g.GameKeySecret, PlayerID: "bob", Action: game.ActionPlay, Coordinates: "cc"})
	if !errors.Is(err, errs.ErrPointOccupied) {
		t.Errorf("expected ErrPointOccupied, got %v", err)
	}
}

func TestPlayMoveRejectsSelfCapture(t *testing.T) {
	uc := newUseCase()
	g := startGame(t, uc)
	play(t, uc, g, "alice", game.ActionPlay, "ee")
	play(t, uc, g, "bob", game.ActionPlay, "ba")
	play(t, uc, g, "alice", game.ActionPlay, "ff")
	play(t, uc, g, "bob", game.ActionPlay, "ab")

	_, err := uc.PlayMove(context.Background(), game.MoveRequest{GameKey: g.GameKeySecret, PlayerID: "alice", Action: game.ActionPlay, Coordinates: "aa"})
	if !errors.Is(err, errs.ErrIllegalMove) {
		t.Errorf("expected ErrIllegalMove, got %v", err)
	}
}

func TestResignCompletesGame(t *testing.T) {
	uc := newUseCase()
	g := startGame(t, uc)
	play(t, uc, g, "alice", game.ActionPlay, "dd")
	resp := play(t, uc, g, "bob", game.ActionResign, "")

	if resp.Status != statuses.StatusCompleted || resp.Result != "B+R" {
		t.Errorf("unexpected end state %s %s", resp.Status, resp.Result)
	}
	if !strings.Contains(resp.SGF, "RE[B+R]") || strings.Contains(resp.SGF, "W[]") {
		t.Errorf("unexpected sgf %s", resp.SGF)
	}

	_, err := uc.PlayMove(context.Background(), game.MoveRequest{GameKey: g.GameKeySecret, PlayerID: "alice", Action: game.ActionPass})
	if !errors.Is(err, errs.ErrGameNotActive) {
		t.Errorf("expected ErrGameNotActive, got %v", err)
	}
	if busy, _ := uc.HasUserActiveGamesByUserId(context.Background(), "alice"); busy {
		t.Error("alice should be free after the game ended")
	}
}

func TestTwoPassesCompleteGame(t *testing.T) {
	uc := newUseCase()
	g := startGame(t, uc)
	play(t, uc, g, "alice", game.ActionPass, "")
	resp := play(t, uc, g, "bob", game.ActionPass, "")
	if resp.Status != statuses.StatusCompleted || resp.Result != unscoredResult {
		t.Errorf("unexpected end state %s %s", resp.Status, resp.Result)
	}
}

func TestGetState(t *testing.T) {
	uc := newUseCase()
	g := startGame(t, uc)
	play(t, uc, g, "alice", game.ActionPlay, "aa")

	resp, state, err := uc.GetState(context.Background(), g.GameKeySecret)
	if err != nil {
		t.Fatal(err)
	}
	if resp.NextPlayer != gotypes.White || state.NextPlayer != gotypes.White {
		t.Error("white should be next")
	}
	if resp.Move == nil || resp.Move.Coordinates != "aa" {
		t.Errorf("unexpected last move %+v", resp.Move)
	}
	if resp.Board[0] != "X........" {
		t.Errorf("row 1 is %q", resp.Board[0])
	}
}

func TestGetGameByPublicKeyHidesSecret(t *testing.T) {
	uc := newUseCase()
	g := startGame(t, uc)
	found, err := uc.GetGameByPublicKey(context.Background(), g.GameKeyPublic)
	if err != nil {
		t.Fatal(err)
	}
	if found.GameKeySecret != "" {
		t.Error("secret key leaked")
	}
	if found.Sgf == "" {
		t.Error("sgf should be attached")
	}
	if !uc.IsUserInGame(context.Background(), "bob", g.GameKeySecret) {
		t.Error("bob should be in the game")
	}
	if uc.IsUserInGame(context.Background(), "carol", g.GameKeySecret) {
		t.Error("carol should not be in the game")
	}
}

func TestJoinGameSurvivesSgfCacheFailure(t *testing.T) {
	uc := NewGameUseCase(brokenCacheStore{repository.NewMemoryGameStore()}, zap.NewNop().Sugar())
	g := startGame(t, uc)
	if g.Status != statuses.StatusActive || g.PlayerWhite != "bob" {
		t.Fatalf("unexpected game after join %+v", g)
	}
	if g.Sgf == "" {
		t.Error("sgf should still be returned")
	}

	resp := play(t, uc, g, "alice", game.ActionPlay, "cc")
	if !strings.HasSuffix(resp.SGF, ";B[cc])") {
		t.Errorf("sgf %s does not end with the move", resp.SGF)
	}
	stored, err := uc.GetGameBySecretKey(context.Background(), g.GameKeySecret)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Sgf != resp.SGF {
		t.Errorf("regenerated sgf %s != %s", stored.Sgf, resp.SGF)
	}
}

func TestPlayMoveAppendsToCachedSgf(t *testing.T) {
	store := repository.NewMemoryGameStore()
	uc := NewGameUseCase(store, zap.NewNop().Sugar())
	g := startGame(t, uc)
	play(t, uc, g, "alice", game.ActionPlay, "cc")
	play(t, uc, g, "bob", game.ActionPass, "")
	resp := play(t, uc, g, "alice", game.ActionPlay, "dd")

	stored, err := store.GetGameByGameKey(context.Background(), g.GameKeySecret)
	if err != nil {
		t.Fatal(err)
	}
	if want := sgf.Serialize(uc.PrepareSgfFile(stored)); resp.SGF != want {
		t.Errorf("appended sgf %s != %s", resp.SGF, want)
	}
	cached, moveCount, err := store.LoadSGF(context.Background(), g.GameKeySecret)
	if err != nil {
		t.Fatal(err)
	}
	if cached != resp.SGF || moveCount != 3 {
		t.Errorf("cache holds %q after %d moves", cached, moveCount)
	}
}

func TestStaleSgfCacheIsRebuilt(t *testing.T) {
	store := repository.NewMemoryGameStore()
	uc := NewGameUseCase(store, zap.NewNop().Sugar())
	g := startGame(t, uc)
	play(t, uc, g, "alice", game.ActionPlay, "cc")

	// кэш отстал на ход
	if err := store.SaveSGF(context.Background(), g.GameKeySecret, 0, "(;FF[4]C[stale])"); err != nil {
		t.Fatal(err)
	}
	resp := play(t, uc, g, "bob", game.ActionPlay, "dd")
	if strings.Contains(resp.SGF, "stale") || !strings.HasSuffix(resp.SGF, ";B[cc];W[dd])") {
		t.Errorf("stale cache used: %s", resp.SGF)
	}
}
