package main

import (
	"net"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	"igo/internal/bootstrap"
	boardRPC "igo/microservices/rpc"
	"igo/microservices/usecase"
)

func main() {
	logger := NewLogger()
	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		logger.Errorw("Failed to setup configuration", zap.Error(err))
		return
	}

	lis, err := net.Listen("tcp", ":"+cfg.BoardServicePort)
	if err != nil {
		logger.Fatalw("cant listen port", zap.Error(err))
	}

	server := grpc.NewServer()
	boardRPC.RegisterBoardServiceServer(server, usecase.NewBoardUseCase(logger))

	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		<-sigs
		logger.Info("Received shutdown signal")
		server.GracefulStop()
	}()

	logger.Infof("starting board service at :%s", cfg.BoardServicePort)
	if err = server.Serve(lis); err != nil {
		logger.Fatalw("board service stopped", zap.Error(err))
	}
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}

	return logger.Sugar()
}
