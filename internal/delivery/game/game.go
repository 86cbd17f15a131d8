package game

import (
	"bytes"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"igo/internal/domain/game"
	"igo/internal/domain/goboard"
	errs "igo/internal/errors"
	"igo/internal/httpresponse"
	"igo/internal/render"
	gameuc "igo/internal/usecase/game"
	"igo/internal/utils"
)

type GameHandler struct {
	log    *zap.SugaredLogger
	gameUC *gameuc.GameUseCase

	roomsMu sync.Mutex
	rooms   map[string]*room
}

// room holds the websocket of each seated player of one game.
// Lock order: roomsMu before room.mu. Writes to conns happen under room.mu.
type room struct {
	mu    sync.Mutex
	conns map[string]*websocket.Conn
}

type ActiveGameResponse struct {
	PlayerID      string `json:"player_id"`
	HasActiveGame bool   `json:"has_active_game"`
}

// WSMove is what a seated player sends over the websocket.
type WSMove struct {
	Action      string `json:"action"`
	Coordinates string `json:"coordinates,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewGameHandler(log *zap.SugaredLogger, gameUC *gameuc.GameUseCase) *GameHandler {
	return &GameHandler{
		log:    log,
		gameUC: gameUC,
		rooms:  make(map[string]*room),
	}
}

func (g *GameHandler) RegisterRoutes(r chi.Router) {
	r.Post("/NewGame", g.HandleNewGame)
	r.Post("/JoinGame", g.HandleJoinGame)
	r.Post("/Move", g.HandleMove)
	r.Get("/getGameById", g.GetGameById)
	r.Get("/players/{playerID}/activeGame", g.HandleActiveGame)
	r.Get("/startGame", g.HandleStartGame)
	r.Get("/games/{gameKey}/state", g.HandleGetState)
	r.Get("/games/{gameKey}/board.pdf", g.HandleBoardPDF)
}

func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	var newGameRequest game.CreateGameRequest
	if !g.decode(w, r, &newGameRequest) {
		return
	}

	resp, err := g.gameUC.CreateGame(r.Context(), newGameRequest)
	if err != nil {
		g.writeError(w, err)
		return
	}

	g.log.Info("New Game Created with key: " + resp.GameKeyPublic)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

func (g *GameHandler) HandleJoinGame(w http.ResponseWriter, r *http.Request) {
	var joinRequest game.GameJoinRequest
	if !g.decode(w, r, &joinRequest) {
		return
	}

	joined, err := g.gameUC.JoinGame(r.Context(), joinRequest)
	if err != nil {
		g.writeError(w, err)
		return
	}

	httpresponse.WriteResponseWithStatus(w, http.StatusOK, joined)
}

func (g *GameHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	var moveRequest game.MoveRequest
	if !g.decode(w, r, &moveRequest) {
		return
	}

	resp, err := g.gameUC.PlayMove(r.Context(), moveRequest)
	if err != nil {
		g.writeError(w, err)
		return
	}

	g.broadcast(moveRequest.GameKey, resp)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

func (g *GameHandler) GetGameById(w http.ResponseWriter, r *http.Request) {
	gameKey := r.URL.Query().Get("game_key")
	if gameKey == "" {
		httpresponse.WriteErrorWithStatus(w, http.StatusBadRequest, "game_key is required")
		return
	}

	found, err := g.gameUC.GetGameByPublicKey(r.Context(), gameKey)
	if err != nil {
		g.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, found)
}

// HandleActiveGame godoc
// @Summary Есть ли у игрока незаконченная партия
// @Tags game
// @Produce json
// @Param playerID path string true "Игрок"
// @Success 200 {object} ActiveGameResponse
// @Router /players/{playerID}/activeGame [get]
func (g *GameHandler) HandleActiveGame(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")
	busy, err := g.gameUC.HasUserActiveGamesByUserId(r.Context(), playerID)
	if err != nil {
		g.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, ActiveGameResponse{PlayerID: playerID, HasActiveGame: busy})
}

func (g *GameHandler) HandleGetState(w http.ResponseWriter, r *http.Request) {
	resp, _, err := g.gameUC.GetState(r.Context(), chi.URLParam(r, "gameKey"))
	if err != nil {
		g.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

func (g *GameHandler) HandleBoardPDF(w http.ResponseWriter, r *http.Request) {
	resp, state, err := g.gameUC.GetState(r.Context(), chi.URLParam(r, "gameKey"))
	if err != nil {
		g.writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err = render.WritePDF(&buf, state.Board, "igo "+resp.GameKeyPublic); err != nil {
		g.log.Errorf("failed to render pdf: %v", err)
		httpresponse.WriteInternalErrorResponse(w)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// HandleStartGame upgrades a seated player to a websocket and plays the moves it sends.
func (g *GameHandler) HandleStartGame(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	gameKey := r.URL.Query().Get("game_key")
	playerID := r.URL.Query().Get("player_id")

	if gameKey == "" || playerID == "" {
		g.log.Error("отсутствуют поля game_key или player_id")
		httpresponse.WriteErrorWithStatus(w, http.StatusBadRequest, "отсутствуют поля game_key или player_id")
		return
	}

	state, _, err := g.gameUC.GetState(ctx, gameKey)
	if err != nil {
		g.writeError(w, err)
		return
	}
	if !g.gameUC.IsUserInGame(ctx, playerID, gameKey) {
		g.writeError(w, errs.ErrNotInGame)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Error("upgrade error: ", err)
		return
	}

	rm := g.join(gameKey, playerID, conn)
	defer g.leave(gameKey, playerID, conn)

	g.send(rm, conn, state)

	for {
		var move WSMove
		if err = conn.ReadJSON(&move); err != nil {
			g.log.Infof("websocket of %s in game %s closed: %v", playerID, state.GameKeyPublic, err)
			return
		}

		moveRequest := game.MoveRequest{
			GameKey:     gameKey,
			PlayerID:    playerID,
			Action:      move.Action,
			Coordinates: move.Coordinates,
		}
		if err = utils.ValidateStruct(moveRequest); err != nil {
			g.send(rm, conn, httpresponse.ErrorResponse{ErrorDescription: err.Error()})
			continue
		}

		resp, playErr := g.gameUC.PlayMove(ctx, moveRequest)
		if playErr != nil {
			g.send(rm, conn, httpresponse.ErrorResponse{ErrorDescription: playErr.Error()})
			continue
		}
		g.broadcast(gameKey, resp)
	}
}

// join registers conn as the connection of playerID, closing an older one.
func (g *GameHandler) join(gameKey string, playerID string, conn *websocket.Conn) *room {
	g.roomsMu.Lock()
	rm, ok := g.rooms[gameKey]
	if !ok {
		rm = &room{conns: make(map[string]*websocket.Conn)}
		g.rooms[gameKey] = rm
	}
	rm.mu.Lock()
	g.roomsMu.Unlock()
	defer rm.mu.Unlock()

	if old := rm.conns[playerID]; old != nil {
		_ = old.WriteMessage(websocket.TextMessage, []byte("Вы были отключены, новое соединение создано."))
		_ = old.Close()
	}
	rm.conns[playerID] = conn
	return rm
}

func (g *GameHandler) leave(gameKey string, playerID string, conn *websocket.Conn) {
	_ = conn.Close()

	g.roomsMu.Lock()
	defer g.roomsMu.Unlock()

	rm, ok := g.rooms[gameKey]
	if !ok {
		return
	}
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if rm.conns[playerID] == conn {
		delete(rm.conns, playerID)
	}
	if len(rm.conns) == 0 {
		delete(g.rooms, gameKey)
	}
}

// broadcast sends the new state to every connected player of the game.
func (g *GameHandler) broadcast(gameKey string, resp game.GameStateResponse) {
	g.roomsMu.Lock()
	rm, ok := g.rooms[gameKey]
	g.roomsMu.Unlock()
	if !ok {
		return
	}

	rm.mu.Lock()
	defer rm.mu.Unlock()
	for playerID, conn := range rm.conns {
		if err := conn.WriteJSON(resp); err != nil {
			g.log.Errorf("write to %s failed: %v", playerID, err)
			_ = conn.Close()
			delete(rm.conns, playerID)
		}
	}
}

func (g *GameHandler) send(rm *room, conn *websocket.Conn, v any) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	if err := conn.WriteJSON(v); err != nil {
		g.log.Errorf("websocket write error: %v", err)
	}
}

func (g *GameHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := utils.DecodeJSONRequest(w, r, dst); err != nil {
		g.log.Error("JSON decode error: ", err)
		if utils.IsBodyTooLarge(err) {
			httpresponse.WriteErrorWithStatus(w, http.StatusRequestEntityTooLarge, "request body is too large")
			return false
		}
		httpresponse.WriteErrorWithStatus(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc)
		return false
	}
	if err := utils.ValidateStruct(dst); err != nil {
		g.log.Error("validation error: ", err)
		httpresponse.WriteErrorWithStatus(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

func (g *GameHandler) writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		g.log.Error(err)
		httpresponse.WriteInternalErrorResponse(w)
		return
	}
	httpresponse.WriteErrorWithStatus(w, status, err.Error())
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, errs.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrNotInGame):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrAlreadyInGame),
		errors.Is(err, errs.ErrGameFull),
		errors.Is(err, errs.ErrGameNotActive),
		errors.Is(err, errs.ErrNotYourTurn),
		errors.Is(err, errs.ErrGameChanged):
		return http.StatusConflict
	case goboard.IsIllegal(err):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
