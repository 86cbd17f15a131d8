package repository

import (
	"context"
	"crypto/md5"
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"igo/internal/domain/game"
	"igo/internal/domain/gotypes"
	errs "igo/internal/errors"
	"igo/internal/statuses"
)

const (
	gamesCollection = "games"
	sgfKeyPrefix    = "sgf:"
	requestTimeout  = 5 * time.Second
	sgfTTL          = 7 * 24 * time.Hour
)

type GameRepository struct {
	log   *zap.SugaredLogger
	redis *redis.Client
	mongo *mongo.Database
}

func NewGameRepository(log *zap.SugaredLogger, redis *redis.Client, mongo *mongo.Database) *GameRepository {
	return &GameRepository{
		log:   log,
		redis: redis,
		mongo: mongo,
	}
}

func (g *GameRepository) GenerateGameKeys(ctx context.Context) (gameKeySecret string, gameKeyPublic string, err error) {
	for {
		gameKeySecret = uuid.New().String()
		gameKeyPublic = generateHash(gameKeySecret)

		unique, err := g.checkPublicKeyIsUniq(ctx, gameKeyPublic)
		if err != nil {
			return "", "", err
		}
		if unique {
			return gameKeySecret, gameKeyPublic, nil
		}
	}
}

// generateHash сворачивает секретный ключ в публичный код из пяти цифр
func generateHash(s string) string {
	h := md5.New()
	h.Write([]byte(s))
	hashBytes := h.Sum(nil)
	number := binary.BigEndian.Uint32(hashBytes[:4])
	code := number % 100000
	return fmt.Sprintf("%05d", code)
}

func (g *GameRepository) checkPublicKeyIsUniq(ctx context.Context, gameKeyPublic string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	filter := bson.M{
		"game_key_public": gameKeyPublic,
		"status":          bson.M{"$ne": statuses.StatusCompleted},
	}
	err := g.mongo.Collection(gamesCollection).FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

func (g *GameRepository) PutGame(ctx context.Context, gameData game.Game) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if gameData.Moves == nil {
		gameData.Moves = []game.Move{}
	}

	_, err := g.mongo.Collection(gamesCollection).InsertOne(ctx, gameData)
	if err != nil {
		g.log.Errorf("failed to insert game to database: %v", err)
		return fmt.Errorf("%w: %v", errs.ErrCreateGameFailed, err)
	}

	g.log.Infof("game inserted successfully with key: %s", gameData.GameKeyPublic)
	return nil
}

func (g *GameRepository) findOne(ctx context.Context, filter bson.M) (game.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var result game.Game
	err := g.mongo.Collection(gamesCollection).FindOne(ctx, filter).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return game.Game{}, errs.ErrGameNotFound
	}
	if err != nil {
		g.log.Error(err)
		return game.Game{}, err
	}
	return result, nil
}

func (g *GameRepository) GetGameByGameKey(ctx context.Context, gameKey string) (game.Game, error) {
	return g.findOne(ctx, bson.M{"game_key_secret": gameKey})
}

func (g *GameRepository) GetGameByPublicKey(ctx context.Context, gameKeyPublic string) (game.Game, error) {
	return g.findOne(ctx, bson.M{
		"game_key_public": gameKeyPublic,
		"status":          bson.M{"$ne": statuses.StatusCompleted},
	})
}

// SetPlayer seats playerID as color if that seat is still free.
func (g *GameRepository) SetPlayer(ctx context.Context, gameKey string, color gotypes.Player, playerID string, status string) (game.Game, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	seat := "player_black"
	if color == gotypes.White {
		seat = "player_white"
	}

	filter := bson.M{"game_key_secret": gameKey, seat: ""}
	set := bson.M{seat: playerID, "status": status}
	if status == statuses.StatusActive {
		set["started_at"] = time.Now()
	}

	res, err := g.mongo.Collection(gamesCollection).UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		g.log.Errorf("failed to update game in database: %v", err)
		return game.Game{}, fmt.Errorf("%w: %v", errs.ErrJoinGameFailed, err)
	}
	if res.MatchedCount == 0 {
		g.log.Infof("seat %s of game %s is not available", seat, gameKey)
		return game.Game{}, errs.ErrGameFull
	}

	g.log.Infof("player %s (%s) added to game %s", playerID, color, gameKey)
	return g.GetGameByGameKey(ctx, gameKey)
}

// AppendMove pushes move if the game still has expectedMoves moves recorded.
func (g *GameRepository) AppendMove(ctx context.Context, gameKey string, move game.Move, expectedMoves int, status string, result string) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	filter := bson.M{
		"game_key_secret": gameKey,
		"status":          statuses.StatusActive,
		"moves":           bson.M{"$size": expectedMoves},
	}
	set := bson.M{"status": status}
	if result != "" {
		set["result"] = result
	}
	if status == statuses.StatusCompleted {
		set["finished_at"] = time.Now()
	}
	update := bson.M{
		"$push": bson.M{"moves": move},
		"$set":  set,
	}

	res, err := g.mongo.Collection(gamesCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		g.log.Errorf("failed to append move: %v", err)
		return err
	}
	if res.MatchedCount == 0 {
		return errs.ErrGameChanged
	}
	return nil
}

// SaveSGF caches the SGF text together with the number of moves it records.
func (g *GameRepository) SaveSGF(ctx context.Context, gameKey string, moveCount int, sgfText string) error {
	key := sgfKeyPrefix + gameKey
	pipe := g.redis.TxPipeline()
	pipe.HSet(ctx, key, "moves", moveCount, "sgf", sgfText)
	pipe.Expire(ctx, key, sgfTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (g *GameRepository) LoadSGF(ctx context.Context, gameKey string) (string, int, error) {
	fields, err := g.redis.HGetAll(ctx, sgfKeyPrefix+gameKey).Result()
	if errors.Is(err, redis.Nil) || (err == nil && len(fields) == 0) {
		return "", 0, errs.ErrSgfNotFound
	}
	if err != nil {
		return "", 0, err
	}
	moveCount, err := strconv.Atoi(fields["moves"])
	if err != nil {
		return "", 0, fmt.Errorf("%w: bad move count %q", errs.ErrSgfNotFound, fields["moves"])
	}
	return fields["sgf"], moveCount, nil
}

func (g *GameRepository) HasUserActiveGameByUserId(ctx context.Context, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	filter := bson.M{
		"$and": []bson.M{
			{
				"$or": []bson.M{
					{"player_black": userID},
					{"player_white": userID},
				},
			},
			{
				"status": bson.M{
					"$ne": statuses.StatusCompleted,
				},
			},
		},
	}
	err := g.mongo.Collection(gamesCollection).FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	} else if err != nil {
		g.log.Error(err)
		return false, err
	}

	return true, nil
}
