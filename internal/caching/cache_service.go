package caching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"shopmart/internal/models"
)

// ErrCacheMiss is returned when a key is absent; callers fall through to the
// database, which stays the sole source of truth.
var ErrCacheMiss = errors.New("cache miss")

type CacheService interface {
	GetCategory(ctx context.Context, id int64) (*models.Category, error)
	SetCategory(ctx context.Context, category *models.Category, ttl time.Duration) error
	DeleteCategory(ctx context.Context, id int64) error

	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error
	DeleteProduct(ctx context.Context, id int64) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", err, addr)
	}

	return &redisCacheService{client: client}
}

func categoryKey(id int64) string { return fmt.Sprintf("category:%d", id) }
func productKey(id int64) string  { return fmt.Sprintf("product:%d", id) }

func (s *redisCacheService) get(ctx context.Context, key string, dst any) error {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

func (s *redisCacheService) set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *redisCacheService) GetCategory(ctx context.Context, id int64) (*models.Category, error) {
	category := &models.Category{}
	if err := s.get(ctx, categoryKey(id), category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *redisCacheService) SetCategory(ctx context.Context, category *models.Category, ttl time.Duration) error {
	return s.set(ctx, categoryKey(category.ID), category, ttl)
}

func (s *redisCacheService) DeleteCategory(ctx context.Context, id int64) error {
	return s.client.Del(ctx, categoryKey(id)).Err()
}

func (s *redisCacheService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	product := &models.Product{}
	if err := s.get(ctx, productKey(id), product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *redisCacheService) SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	return s.set(ctx, productKey(product.ID), product, ttl)
}

func (s *redisCacheService) DeleteProduct(ctx context.Context, id int64) error {
	return s.client.Del(ctx, productKey(id)).Err()
}

func (s *redisCacheService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
