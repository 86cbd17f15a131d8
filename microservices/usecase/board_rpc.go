package usecase

import (
	"context"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"igo/internal/domain/game"
	"igo/internal/render"
	"igo/internal/utils"
	boardRPC "igo/microservices/rpc"
)

type BoardUseCase struct {
	log *zap.SugaredLogger
}

func NewBoardUseCase(log *zap.SugaredLogger) *BoardUseCase {
	return &BoardUseCase{log: log}
}

// Replay rebuilds a position from a move list and reports it.
func (b *BoardUseCase) Replay(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req game.ReplayRequest
	if err := boardRPC.Decode(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	state, err := game.ReplayMoves(req.BoardSize, req.Moves)
	if err != nil {
		b.log.Infof("replay rejected: %v", err)
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	resp := game.ReplayResponse{
		NextPlayer: state.NextPlayer,
		IsOver:     state.IsOver(),
		Board:      render.Rows(state.Board),
		MoveCount:  len(req.Moves),
	}
	out, err := boardRPC.Encode(resp)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return out, nil
}
