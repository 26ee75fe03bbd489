package delivery

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

const balancesKey = "balances"

type BalanceStore interface {
	Credit(ctx context.Context, recipientID string, amount int64) (int64, error)
	Balance(ctx context.Context, recipientID string) (int64, error)
}

type RedisBalanceStore struct {
	cache *redis.Client
}

func NewRedisBalanceStore(cache *redis.Client) *RedisBalanceStore {
	return &RedisBalanceStore{
		cache: cache,
	}
}

func (s *RedisBalanceStore) Credit(ctx context.Context, recipientID string, amount int64) (int64, error) {
	return s.cache.HIncrBy(ctx, balancesKey, recipientID, amount).Result()
}

func (s *RedisBalanceStore) Balance(ctx context.Context, recipientID string) (int64, error) {
	balance, err := s.cache.HGet(ctx, balancesKey, recipientID).Int64()
	if err == redis.Nil {
		return 0, nil
	}

	return balance, err
}

type MemoryBalanceStore struct {
	mu       sync.Mutex
	balances map[string]int64
}

func NewMemoryBalanceStore() *MemoryBalanceStore {
	return &MemoryBalanceStore{
		balances: make(map[string]int64),
	}
}

func (s *MemoryBalanceStore) Credit(ctx context.Context, recipientID string, amount int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.balances[recipientID] += amount
	return s.balances[recipientID], nil
}

func (s *MemoryBalanceStore) Balance(ctx context.Context, recipientID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.balances[recipientID], nil
}
