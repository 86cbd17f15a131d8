package game

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"igo/internal/domain/game"
	"igo/internal/domain/goboard"
	"igo/internal/domain/gotypes"
	"igo/internal/domain/sgf"
	errs "igo/internal/errors"
	"igo/internal/render"
	"igo/internal/statuses"
)

// результат партии, законченной двумя пасами: подсчёт очков не ведётся
const unscoredResult = "?"

type GameStore interface {
	GenerateGameKeys(ctx context.Context) (gameKeySecret string, gameKeyPublic string, err error)
	PutGame(ctx context.Context, gameData game.Game) error
	GetGameByGameKey(ctx context.Context, gameKey string) (game.Game, error)
	GetGameByPublicKey(ctx context.Context, gameKeyPublic string) (game.Game, error)
	SetPlayer(ctx context.Context, gameKey string, color gotypes.Player, playerID string, status string) (game.Game, error)
	AppendMove(ctx context.Context, gameKey string, move game.Move, expectedMoves int, status string, result string) error
	SaveSGF(ctx context.Context, gameKey string, moveCount int, sgfText string) error
	LoadSGF(ctx context.Context, gameKey string) (sgfText string, moveCount int, err error)
	HasUserActiveGameByUserId(ctx context.Context, userID string) (bool, error)
}

type GameUseCase struct {
	store       GameStore
	log         *zap.SugaredLogger
	defaultKomi float64
}

func NewGameUseCase(store GameStore, log *zap.SugaredLogger) *GameUseCase {
	return &GameUseCase{store: store, log: log}
}

// SetDefaultKomi sets the komi of games created without one.
func (g *GameUseCase) SetDefaultKomi(komi float64) {
	g.defaultKomi = komi
}

func (g *GameUseCase) CreateGame(ctx context.Context, newGameRequest game.CreateGameRequest) (game.GameCreateResponse, error) {
	busy, err := g.store.HasUserActiveGameByUserId(ctx, newGameRequest.PlayerID)
	if err != nil {
		return game.GameCreateResponse{}, err
	}
	if busy {
		return game.GameCreateResponse{}, errs.ErrAlreadyInGame
	}

	gameKeySecret, gameKeyPublic, err := g.store.GenerateGameKeys(ctx)
	if err != nil {
		return game.GameCreateResponse{}, fmt.Errorf("%w: %v", errs.ErrCreateGameFailed, err)
	}

	komi := g.defaultKomi
	if newGameRequest.Komi != nil {
		komi = *newGameRequest.Komi
	}

	newGame := game.Game{
		BoardSize:     newGameRequest.BoardSize,
		Komi:          komi,
		GameKeySecret: gameKeySecret,
		GameKeyPublic: gameKeyPublic,
		Status:        statuses.StatusWaitOpponent,
		CreatedAt:     time.Now(),
		Moves:         []game.Move{},
	}

	if newGameRequest.IsCreatorBlack {
		newGame.PlayerBlack = newGameRequest.PlayerID
	} else {
		newGame.PlayerWhite = newGameRequest.PlayerID
	}

	if err = g.store.PutGame(ctx, newGame); err != nil {
		return game.GameCreateResponse{}, err
	}

	g.log.Infof("game %s created by %s", gameKeyPublic, newGameRequest.PlayerID)
	return game.GameCreateResponse{GameKeyPublic: gameKeyPublic, GameKeySecret: gameKeySecret}, nil
}

// JoinGame seats the player in the free seat of a waiting game and starts it.
func (g *GameUseCase) JoinGame(ctx context.Context, joinRequest game.GameJoinRequest) (game.Game, error) {
	play, err := g.store.GetGameByPublicKey(ctx, joinRequest.GameKeyPublic)
	if err != nil {
		return game.Game{}, err
	}
	if _, seated := play.Seat(joinRequest.PlayerID); seated {
		return game.Game{}, errs.ErrAlreadyInGame
	}
	if play.Status != statuses.StatusWaitOpponent {
		return game.Game{}, errs.ErrGameFull
	}

	busy, err := g.store.HasUserActiveGameByUserId(ctx, joinRequest.PlayerID)
	if err != nil {
		return game.Game{}, err
	}
	if busy {
		return game.Game{}, errs.ErrAlreadyInGame
	}

	creatorColor := gotypes.Black
	if play.PlayerBlack == "" {
		creatorColor = gotypes.White
	}

	updatedGame, err := g.store.SetPlayer(ctx, play.GameKeySecret, creatorColor.Other(), joinRequest.PlayerID, statuses.StatusActive)
	if err != nil {
		return game.Game{}, err
	}

	// место уже занято, ошибка кэша не должна отменять вход в партию
	updatedGame.Sgf = sgf.Serialize(g.PrepareSgfFile(updatedGame))
	if err = g.store.SaveSGF(ctx, updatedGame.GameKeySecret, len(updatedGame.Moves), updatedGame.Sgf); err != nil {
		g.log.Errorf("failed to cache sgf of game %s: %v", updatedGame.GameKeyPublic, err)
	}

	g.log.Infof("player %s joined game %s as %s", joinRequest.PlayerID, updatedGame.GameKeyPublic, creatorColor.Other())
	return updatedGame, nil
}

// PlayMove validates the move against the replayed position and records it.
func (g *GameUseCase) PlayMove(ctx context.Context, moveRequest game.MoveRequest) (game.GameStateResponse, error) {
	play, err := g.store.GetGameByGameKey(ctx, moveRequest.GameKey)
	if err != nil {
		return game.GameStateResponse{}, err
	}
	if play.Status != statuses.StatusActive {
		return game.GameStateResponse{}, errs.ErrGameNotActive
	}
	color, seated := play.Seat(moveRequest.PlayerID)
	if !seated {
		return game.GameStateResponse{}, errs.ErrNotInGame
	}

	state, err := game.ReplayMoves(play.BoardSize, play.Moves)
	if err != nil {
		g.log.Errorf("stored moves of game %s do not replay: %v", play.GameKeyPublic, err)
		return game.GameStateResponse{}, fmt.Errorf("%w: %v", errs.ErrInternal, err)
	}
	if color != state.NextPlayer {
		return game.GameStateResponse{}, errs.ErrNotYourTurn
	}

	move, err := requestToBoardMove(moveRequest)
	if err != nil {
		return game.GameStateResponse{}, err
	}
	if err = state.CheckMove(move); err != nil {
		return game.GameStateResponse{}, err
	}
	next, err := state.ApplyMove(move)
	if err != nil {
		return game.GameStateResponse{}, err
	}

	recorded := game.NewMove(color, move)
	status, result := statuses.StatusActive, ""
	if next.IsOver() {
		status = statuses.StatusCompleted
		result = unscoredResult
		if move.IsResign {
			result = color.Other().Color() + "+R"
		}
	}

	if err = g.store.AppendMove(ctx, play.GameKeySecret, recorded, len(play.Moves), status, result); err != nil {
		return game.GameStateResponse{}, err
	}

	previousSgf, cachedMoves, cacheErr := g.store.LoadSGF(ctx, play.GameKeySecret)
	play.Moves = append(play.Moves, recorded)
	play.Status = status
	play.Result = result
	if cacheErr == nil && cachedMoves == len(play.Moves)-1 && status == statuses.StatusActive {
		play.Sgf = sgf.AppendMove(previousSgf, recorded.Color, recorded.Coordinates)
	} else {
		// результат пишется в заголовок, поэтому законченную партию собираем заново
		play.Sgf = sgf.Serialize(g.PrepareSgfFile(play))
	}
	if err = g.store.SaveSGF(ctx, play.GameKeySecret, len(play.Moves), play.Sgf); err != nil {
		g.log.Errorf("failed to cache sgf of game %s: %v", play.GameKeyPublic, err)
	}

	g.log.Infof("game %s: %s %s", play.GameKeyPublic, color, moveLabel(move, play.BoardSize))
	return stateResponse(play, next, &recorded), nil
}

// moveLabel names a move the way players read it, e.g. "D4".
func moveLabel(move goboard.Move, boardSize int) string {
	if !move.IsPlay {
		return move.String()
	}
	label, err := sgf.ToStandard(move.Point, boardSize)
	if err != nil {
		return move.String()
	}
	return label
}

func requestToBoardMove(moveRequest game.MoveRequest) (goboard.Move, error) {
	switch moveRequest.Action {
	case game.ActionPass:
		return goboard.PassTurn(), nil
	case game.ActionResign:
		return goboard.Resign(), nil
	case game.ActionPlay:
		p, ok, err := sgf.DecodePoint(moveRequest.Coordinates)
		if err != nil || !ok {
			return goboard.Move{}, fmt.Errorf("%w: bad coordinates %q", errs.ErrIllegalMove, moveRequest.Coordinates)
		}
		return goboard.Play(p), nil
	}
	return goboard.Move{}, fmt.Errorf("%w: unknown action %q", errs.ErrIllegalMove, moveRequest.Action)
}

func stateResponse(play game.Game, state *goboard.GameState, last *game.Move) game.GameStateResponse {
	return game.GameStateResponse{
		GameKeyPublic: play.GameKeyPublic,
		Move:          last,
		NextPlayer:    state.NextPlayer,
		Status:        play.Status,
		Result:        play.Result,
		Board:         render.Rows(state.Board),
		SGF:           play.Sgf,
	}
}

// GetState returns the current position of the game with the given secret key.
func (g *GameUseCase) GetState(ctx context.Context, gameKey string) (game.GameStateResponse, *goboard.GameState, error) {
	play, err := g.GetGameBySecretKey(ctx, gameKey)
	if err != nil {
		return game.GameStateResponse{}, nil, err
	}
	state, err := game.ReplayMoves(play.BoardSize, play.Moves)
	if err != nil {
		return game.GameStateResponse{}, nil, fmt.Errorf("%w: %v", errs.ErrInternal, err)
	}
	var last *game.Move
	if n := len(play.Moves); n > 0 {
		last = &play.Moves[n-1]
	}
	return stateResponse(play, state, last), state, nil
}

func (g *GameUseCase) GetGameBySecretKey(ctx context.Context, gameKey string) (game.Game, error) {
	play, err := g.store.GetGameByGameKey(ctx, gameKey)
	if err != nil {
		return game.Game{}, err
	}
	play.Sgf = g.sgfOf(ctx, play)
	return play, nil
}

// GetGameByPublicKey hides the secret key: the public key is shared with anyone.
func (g *GameUseCase) GetGameByPublicKey(ctx context.Context, gameKeyPublic string) (game.Game, error) {
	play, err := g.store.GetGameByPublicKey(ctx, gameKeyPublic)
	if err != nil {
		return game.Game{}, err
	}
	play.Sgf = g.sgfOf(ctx, play)
	play.GameKeySecret = ""
	return play, nil
}

func (g *GameUseCase) sgfOf(ctx context.Context, play game.Game) string {
	text, moveCount, err := g.store.LoadSGF(ctx, play.GameKeySecret)
	if err == nil && moveCount == len(play.Moves) {
		return text
	}
	if err != nil && !errors.Is(err, errs.ErrSgfNotFound) {
		g.log.Errorf("failed to load sgf of game %s: %v", play.GameKeyPublic, err)
	}
	return sgf.Serialize(g.PrepareSgfFile(play))
}

func (g *GameUseCase) IsUserInGame(ctx context.Context, userID string, gameKey string) bool {
	play, err := g.store.GetGameByGameKey(ctx, gameKey)
	if err != nil {
		return false
	}
	_, seated := play.Seat(userID)
	return seated
}

func (g *GameUseCase) HasUserActiveGamesByUserId(ctx context.Context, userID string) (bool, error) {
	return g.store.HasUserActiveGameByUserId(ctx, userID)
}

func (g *GameUseCase) PrepareSgfFile(gameData game.Game) *sgf.SGF {
	header := sgf.Node{
		Properties: map[string][]string{
			"FF": {"4"},
			"GM": {"1"},
			"SZ": {strconv.Itoa(gameData.BoardSize)},
			"PB": {gameData.PlayerBlack},
			"PW": {gameData.PlayerWhite},
			"DT": {gameData.CreatedAt.Format(time.DateOnly)},
			"KM": {strconv.FormatFloat(gameData.Komi, 'f', 1, 64)},
			"RU": {"Chinese"},
		},
	}
	if gameData.Result != "" {
		header.Properties["RE"] = []string{gameData.Result}
	}

	tree := &sgf.GameTree{Nodes: []sgf.Node{header}}
	AddMovesToSgf(tree, gameData.Moves)
	return &sgf.SGF{Root: tree}
}

// AddMovesToSgf appends play and pass moves; a resignation only shows in RE.
func AddMovesToSgf(tree *sgf.GameTree, moves []game.Move) {
	for _, move := range moves {
		if move.Action == game.ActionResign {
			continue
		}
		node := sgf.Node{
			Properties: map[string][]string{
				move.Color: {move.Coordinates},
			},
		}
		tree.Nodes = append(tree.Nodes, node)
	}
}
