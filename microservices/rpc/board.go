package rpc

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Messages are google.protobuf.Struct values carrying the JSON form of
// game.ReplayRequest and game.ReplayResponse.
const (
	BoardServiceName                   = "igo.BoardService"
	BoardService_Replay_FullMethodName = "/igo.BoardService/Replay"
)

type BoardServiceServer interface {
	Replay(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error)
}

type BoardServiceClient interface {
	Replay(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type boardServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewBoardServiceClient(cc grpc.ClientConnInterface) BoardServiceClient {
	return &boardServiceClient{cc: cc}
}

func (c *boardServiceClient) Replay(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, BoardService_Replay_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func RegisterBoardServiceServer(s grpc.ServiceRegistrar, srv BoardServiceServer) {
	s.RegisterService(&BoardService_ServiceDesc, srv)
}

func replayHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(BoardServiceServer).Replay(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: BoardService_Replay_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(BoardServiceServer).Replay(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

var BoardService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: BoardServiceName,
	HandlerType: (*BoardServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Replay",
			Handler:    replayHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "board.proto",
}

// Encode converts a JSON-tagged value to a Struct message.
func Encode(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}
	msg := new(structpb.Struct)
	if err = protojson.Unmarshal(data, msg); err != nil {
		return nil, fmt.Errorf("failed to build struct message: %w", err)
	}
	return msg, nil
}

// Decode fills dst from a Struct message.
func Decode(msg *structpb.Struct, dst any) error {
	data, err := protojson.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal struct message: %w", err)
	}
	if err = json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode message: %w", err)
	}
	return nil
}
