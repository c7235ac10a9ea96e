package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jimlawless/whereami"
	"github.com/rynok-dev/marketplace-backend/internal/cfg"
	"github.com/rynok-dev/marketplace-backend/internal/repository/redis/converter"
	"github.com/rynok-dev/marketplace-backend/internal/usecase"
	"github.com/rynok-dev/marketplace-backend/pkg/clients"
	"github.com/rynok-dev/marketplace-backend/pkg/e"
	"github.com/rynok-dev/marketplace-backend/pkg/logger"
)

// CacheRepo хранит карточки продуктов в Redis с TTL.
// Кэш — ускоритель чтения карточки: любой сбой деградирует до похода
// в базу, поэтому ошибки записи и десериализации не поднимаются наверх.
type CacheRepo struct {
	client *clients.RedisClient
	conv   converter.ProductCardConverter
	cfg    *cfg.RedisCfg
	logger logger.Logger
}

func NewCacheRepo(client *clients.RedisClient, conv converter.ProductCardConverter,
	cfg *cfg.RedisCfg, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		cfg:    cfg,
		logger: logger,
	}
}

func cardKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

func cardKeys(ids []int64) []string {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = cardKey(id)
	}
	return keys
}

// GetProducts возвращает найденные в кэше карточки; промахи просто
// отсутствуют в результате. Запись с чужим ID считается испорченной
// и удаляется.
func (r *CacheRepo) GetProducts(ctx context.Context, ids []int64) (map[int64]usecase.ProductCard, error) {
	keys := cardKeys(ids)

	values, err := r.client.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	cards := make(map[int64]usecase.ProductCard, len(values))
	for i, val := range values {
		raw, ok := val.(string)
		if !ok {
			continue // nil — промах; иной тип не ожидается от MGET
		}

		var model converter.ProductCardRedisModel
		if err := json.Unmarshal([]byte(raw), &model); err != nil {
			r.logger.Warnf("cache: unmarshal %s failed: %v", keys[i], err)
			continue
		}

		if model.ID != ids[i] {
			r.logger.Warnf("cache: key %s holds card %d, dropping", keys[i], model.ID)
			if err := r.client.Client.Del(context.Background(), keys[i]).Err(); err != nil {
				r.logger.Warnf("cache: del %s failed: %v", keys[i], err)
			}
			continue
		}

		cards[ids[i]] = *r.conv.ToUseCase(&model)
	}

	return cards, nil
}

// SetProducts кладет карточки в кэш одним pipeline с TTL из конфигурации.
func (r *CacheRepo) SetProducts(ctx context.Context, products []usecase.ProductCard) error {
	pipeline := r.client.Client.Pipeline()

	for _, model := range r.conv.ToArrRedisModel(products) {
		data, err := json.Marshal(model)
		if err != nil {
			r.logger.Warnf("cache: marshal card %d failed: %v", model.ID, err)
			continue
		}
		pipeline.Set(ctx, cardKey(model.ID), data, r.cfg.ProductTTL)
	}

	if _, err := pipeline.Exec(ctx); err != nil {
		r.logger.Warnf("cache: pipeline failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}

	return nil
}

// DeleteProducts инвалидирует карточки после изменения продукта.
func (r *CacheRepo) DeleteProducts(ctx context.Context, ids []int64) error {
	if err := r.client.Client.Del(ctx, cardKeys(ids)...).Err(); err != nil {
		r.logger.Warnf("cache: del failed: %v", e.Wrap(whereami.WhereAmI(), err))
	}
	return nil
}
