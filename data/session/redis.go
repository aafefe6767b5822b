package session

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"

	"github.com/KotFed0t/lot_allocator/config"
	"github.com/KotFed0t/lot_allocator/internal/model"
	"github.com/KotFed0t/lot_allocator/utils"
	"github.com/redis/go-redis/v9"
)

type RedisSession struct {
	redis *redis.Client
	cfg   *config.Config
}

func NewRedisSession(redisClient *redis.Client, cfg *config.Config) *RedisSession {
	return &RedisSession{redis: redisClient, cfg: cfg}
}

func key(chatID int64) string {
	return "session:" + strconv.FormatInt(chatID, 10)
}

// GetSession returns an empty session for chats that have none.
func (s *RedisSession) GetSession(ctx context.Context, chatID int64) (model.Session, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)

	res, err := s.redis.Get(ctx, key(chatID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.Session{}, nil
		}
		slog.Error("failed on redis.Get", slog.String("rqID", rqID), slog.String("err", err.Error()), slog.Int64("chatID", chatID))
		return model.Session{}, err
	}

	session := model.Session{}
	if err = json.Unmarshal(res, &session); err != nil {
		slog.Error("can't unmarshall session", slog.String("rqID", rqID), slog.String("err", err.Error()), slog.Int64("chatID", chatID))
		return model.Session{}, errors.New("can't unmarshall session")
	}

	return session, nil
}

func (s *RedisSession) SetSession(ctx context.Context, chatID int64, session model.Session) error {
	rqID := utils.GetRequestIDFromCtx(ctx)

	sessionJson, err := json.Marshal(session)
	if err != nil {
		return errors.New("can't marshall session")
	}

	err = s.redis.Set(ctx, key(chatID), sessionJson, s.cfg.Cache.SessionExpiration).Err()
	if err != nil {
		slog.Error("failed on redis.Set", slog.String("rqID", rqID), slog.String("err", err.Error()), slog.Int64("chatID", chatID))
		return err
	}

	return nil
}
