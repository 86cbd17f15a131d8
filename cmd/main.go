package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"igo/internal/adapters"
	"igo/internal/bootstrap"
	boardDelivery "igo/internal/delivery/board"
	gameDelivery "igo/internal/delivery/game"
	ownMiddleware "igo/internal/middleware"
	"igo/internal/repository"
	gameUseCase "igo/internal/usecase/game"
	boardProto "igo/microservices/rpc"
)

const closeTimeout = 5 * time.Second

type mainDeliveryHandler struct {
	board *boardDelivery.BoardHandler
	game  *gameDelivery.GameHandler
}

type dataBaseAdapters struct {
	redisAdapter *adapters.AdapterRedis
	mongoAdapter *adapters.AdapterMongo
}

func main() {
	logger := NewLogger()
	if err := run(logger, ".env"); err != nil {
		logger.Fatalw("Server stopped", zap.Error(err))
	}
}

func run(logger *zap.SugaredLogger, cfgPath string) error {
	cfg, err := bootstrap.Setup(cfgPath)
	if err != nil {
		return fmt.Errorf("setup configuration: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handleShutdown(cancel, logger)

	var store gameUseCase.GameStore
	if cfg.MongoUri == "" {
		logger.Warn("MONGO_URI не задан, партии хранятся в памяти")
		store = repository.NewMemoryGameStore()
	} else {
		databaseAdapters, err := initDatabaseAdapters(ctx, logger, *cfg)
		if err != nil {
			return err
		}
		defer databaseAdapters.close(logger)
		store = repository.NewGameRepository(logger, databaseAdapters.redisAdapter.GetClient(), databaseAdapters.mongoAdapter.Database)
	}

	grpcBoard, err := grpc.NewClient(cfg.BoardServiceAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("dial board service: %w", err)
	}
	defer grpcBoard.Close()

	r := chi.NewRouter()
	handlers := initializeDeliveryHandlers(*cfg, logger, grpcBoard, store)
	handlers.Router(r, cfg.IsLocalCors)

	server := &http.Server{Addr: ":" + cfg.ServerPort, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), closeTimeout)
		defer stop()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Infof("Server is running on port %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("start server: %w", err)
	}
	return nil
}

func NewLogger() *zap.SugaredLogger {
	logger, err := zap.NewProduction()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func (h *mainDeliveryHandler) Router(r *chi.Mux, isLocalCors bool) {
	if isLocalCors {
		r.Use(ownMiddleware.CORS())
	}
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	h.game.RegisterRoutes(r)
	r.Post("/replay", h.board.HandleReplay)
}

func initDatabaseAdapters(ctx context.Context, log *zap.SugaredLogger, cfg bootstrap.Config) (*dataBaseAdapters, error) {
	mongoAdapter := adapters.NewAdapterMongo(&cfg, log)
	if err := mongoAdapter.Init(ctx); err != nil {
		return nil, fmt.Errorf("не удалось инициализировать MongoDB: %w", err)
	}

	redisAdapter := adapters.NewAdapterRedis(&cfg, log)
	if err := redisAdapter.Init(ctx); err != nil {
		closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		_ = mongoAdapter.Close(closeCtx)
		_ = redisAdapter.Close(closeCtx)
		return nil, fmt.Errorf("не удалось инициализировать Redis: %w", err)
	}

	log.Info("Адаптеры баз данных инициализированы")
	return &dataBaseAdapters{
		redisAdapter: redisAdapter,
		mongoAdapter: mongoAdapter,
	}, nil
}

// close runs after shutdown has cancelled the server context, so it gets its own deadline.
func (d *dataBaseAdapters) close(log *zap.SugaredLogger) {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := d.redisAdapter.Close(ctx); err != nil {
		log.Warnw("Failed to close Redis", zap.Error(err))
	}
	if err := d.mongoAdapter.Close(ctx); err != nil {
		log.Warnw("Failed to close MongoDB", zap.Error(err))
	}
}

func initializeDeliveryHandlers(
	cfg bootstrap.Config,
	log *zap.SugaredLogger,
	grpcBoard *grpc.ClientConn,
	store gameUseCase.GameStore,
) *mainDeliveryHandler {
	boardManager := boardProto.NewBoardServiceClient(grpcBoard)
	boardDeliveryHandler := boardDelivery.NewBoardHandler(log, boardManager)

	gameUC := gameUseCase.NewGameUseCase(store, log)
	gameUC.SetDefaultKomi(cfg.DefaultKomi)
	gameDeliveryHandler := gameDelivery.NewGameHandler(log, gameUC)

	return &mainDeliveryHandler{
		board: boardDeliveryHandler,
		game:  gameDeliveryHandler,
	}
}

func handleShutdown(cancelFunc context.CancelFunc, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Received shutdown signal")
	cancelFunc()
	time.Sleep(1 * time.Second) // дать время закрыть соединения
}
