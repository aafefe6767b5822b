package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/KotFed0t/lot_allocator/config"
	"github.com/KotFed0t/lot_allocator/internal/model"
	"github.com/KotFed0t/lot_allocator/utils"
	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

type RedisCache struct {
	redis *redis.Client
	cfg   *config.Config
}

func NewRedisCache(redisClient *redis.Client, cfg *config.Config) *RedisCache {
	return &RedisCache{redis: redisClient, cfg: cfg}
}

func splitsKey(ticker string) string {
	return "splits:" + ticker
}

func openLotsKey(ticker string) string {
	return "open_lots:" + ticker
}

func openLotsField(asOf time.Time) string {
	return asOf.Format(time.DateOnly)
}

func (r *RedisCache) SetSplits(ctx context.Context, ticker string, splits []model.StockSplit) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug("SetSplits start", slog.String("rqID", rqID), slog.String("ticker", ticker))

	splitsJson, err := json.Marshal(splits)
	if err != nil {
		slog.Error("can't marshall splits in SetSplits", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return errors.New("can't marshall splits")
	}

	err = r.redis.Set(ctx, splitsKey(ticker), splitsJson, r.cfg.Cache.SplitsExpiration).Err()
	if err != nil {
		slog.Error("failed on redis.Set", slog.String("rqID", rqID), slog.String("err", err.Error()), slog.String("ticker", ticker))
		return err
	}

	slog.Debug("SetSplits completed", slog.String("rqID", rqID))

	return nil
}

// GetSplits returns ErrCacheMiss when the ticker has no cached splits.
func (r *RedisCache) GetSplits(ctx context.Context, ticker string) ([]model.StockSplit, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug("GetSplits start", slog.String("rqID", rqID), slog.String("ticker", ticker))

	res, err := r.redis.Get(ctx, splitsKey(ticker)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		slog.Error("failed on redis.Get", slog.String("rqID", rqID), slog.String("err", err.Error()), slog.String("ticker", ticker))
		return nil, err
	}

	var splits []model.StockSplit
	err = json.Unmarshal([]byte(res), &splits)
	if err != nil {
		slog.Error(
			"can't unmarshall splits in GetSplits",
			slog.String("rqID", rqID),
			slog.String("err", err.Error()),
			slog.String("resultFromRedis", res),
		)
		return nil, errors.New("can't unmarshall splits")
	}

	slog.Debug("GetSplits finished", slog.String("rqID", rqID))

	return splits, nil
}

// FlushSplits drops the cached splits of the given tickers.
func (r *RedisCache) FlushSplits(ctx context.Context, tickers ...string) error {
	if len(tickers) == 0 {
		return nil
	}

	keys := make([]string, 0, len(tickers))
	for _, ticker := range tickers {
		keys = append(keys, splitsKey(ticker))
	}

	err := r.redis.Del(ctx, keys...).Err()
	if err != nil {
		slog.Error("failed on redis.Del", slog.String("rqID", utils.GetRequestIDFromCtx(ctx)), slog.String("err", err.Error()))
	}
	return err
}

// SetOpenLots caches the summary under a per-ticker hash keyed by the as-of date,
// so one delete drops every date of the ticker.
func (r *RedisCache) SetOpenLots(ctx context.Context, summary model.OpenLotsSummary) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug("SetOpenLots start", slog.String("rqID", rqID), slog.String("ticker", summary.Ticker))

	summaryJson, err := json.Marshal(summary)
	if err != nil {
		slog.Error("can't marshall summary in SetOpenLots", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return errors.New("can't marshall open lots summary")
	}

	key := openLotsKey(summary.Ticker)

	pipe := r.redis.TxPipeline()
	pipe.HSet(ctx, key, openLotsField(summary.AsOf), summaryJson)
	pipe.Expire(ctx, key, r.cfg.Cache.OpenLotsExpiration)

	_, err = pipe.Exec(ctx)
	if err != nil {
		slog.Error("failed on pipe.Exec", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return err
	}

	slog.Debug("SetOpenLots completed", slog.String("rqID", rqID))

	return nil
}

func (r *RedisCache) GetOpenLots(ctx context.Context, ticker string, asOf time.Time) (model.OpenLotsSummary, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Debug("GetOpenLots start", slog.String("rqID", rqID), slog.String("ticker", ticker))

	res, err := r.redis.HGet(ctx, openLotsKey(ticker), openLotsField(asOf)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.OpenLotsSummary{}, ErrCacheMiss
		}
		slog.Error("failed on redis.HGet", slog.String("rqID", rqID), slog.String("err", err.Error()), slog.String("ticker", ticker))
		return model.OpenLotsSummary{}, err
	}

	summary := model.OpenLotsSummary{}
	err = json.Unmarshal([]byte(res), &summary)
	if err != nil {
		slog.Error("can't unmarshall summary in GetOpenLots", slog.String("rqID", rqID), slog.String("err", err.Error()))
		return model.OpenLotsSummary{}, errors.New("can't unmarshall open lots summary")
	}

	slog.Debug("GetOpenLots finished", slog.String("rqID", rqID))

	return summary, nil
}

func (r *RedisCache) FlushOpenLots(ctx context.Context, ticker string) error {
	err := r.redis.Del(ctx, openLotsKey(ticker)).Err()
	if err != nil {
		slog.Error("failed on redis.Del", slog.String("rqID", utils.GetRequestIDFromCtx(ctx)), slog.String("err", err.Error()), slog.String("ticker", ticker))
	}
	return err
}
