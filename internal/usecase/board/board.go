package board

import (
	"context"

	"igo/internal/domain/game"
	boardRPC "igo/microservices/rpc"
)

// Replay asks the board service for the position after req.Moves.
func Replay(ctx context.Context, req game.ReplayRequest, boardGRPC boardRPC.BoardServiceClient) (game.ReplayResponse, error) {
	in, err := boardRPC.Encode(req)
	if err != nil {
		return game.ReplayResponse{}, err
	}

	out, err := boardGRPC.Replay(ctx, in)
	if err != nil {
		return game.ReplayResponse{}, err
	}

	var resp game.ReplayResponse
	if err = boardRPC.Decode(out, &resp); err != nil {
		return game.ReplayResponse{}, err
	}
	return resp, nil
}
