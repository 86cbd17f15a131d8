package board

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"igo/internal/domain/game"
	boardUC "igo/internal/usecase/board"
	"igo/internal/utils"
	boardProto "igo/microservices/rpc"
)

type BoardHandler struct {
	log       *zap.SugaredLogger
	boardGRPC boardProto.BoardServiceClient
}

func NewBoardHandler(log *zap.SugaredLogger, board boardProto.BoardServiceClient) *BoardHandler {
	return &BoardHandler{
		log:       log,
		boardGRPC: board,
	}
}

// HandleReplay godoc
// @Summary Позиция после последовательности ходов
// @Tags board
// @Accept json
// @Produce json
// @Param replay body game.ReplayRequest true "Размер доски и ходы"
// @Success 200 {object} game.ReplayResponse
// @Router /replay [post]
func (b *BoardHandler) HandleReplay(w http.ResponseWriter, r *http.Request) {
	var req game.ReplayRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		if utils.IsBodyTooLarge(err) {
			writeJSONError(b.log, w, http.StatusRequestEntityTooLarge, "Request body is too large")
			return
		}
		writeJSONError(b.log, w, http.StatusBadRequest, err.Error())
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		writeJSONError(b.log, w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := boardUC.Replay(r.Context(), req, b.boardGRPC)
	if err != nil {
		if st, ok := status.FromError(err); ok && st.Code() == codes.InvalidArgument {
			writeJSONError(b.log, w, http.StatusUnprocessableEntity, st.Message())
			return
		}
		b.log.Errorf("failed to replay moves: %v", err)
		writeJSONError(b.log, w, http.StatusBadGateway, "Board service is unavailable")
		return
	}

	writeJSON(b.log, w, http.StatusOK, resp)
}

func writeJSON(log *zap.SugaredLogger, w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Errorf("writeJSON encode error: %v", err)
	}
}

func writeJSONError(log *zap.SugaredLogger, w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
	log.Debugf("writeJSONError: %s", msg)
}
