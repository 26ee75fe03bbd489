package correlation

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"telefile/paydrop/internal/models"
)

const entryKeyPrefix = "correlation:"

var createScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 0
end
redis.call('HSET', KEYS[1],
	'recipient_id', ARGV[1],
	'status', ARGV[2],
	'created_at', ARGV[3],
	'updated_at', ARGV[3])
return 1
`)

var transitionScript = redis.NewScript(`
if redis.call('HGET', KEYS[1], 'status') ~= ARGV[1] then
	return 0
end
redis.call('HSET', KEYS[1], 'status', ARGV[2], 'updated_at', ARGV[3])
return 1
`)

type RedisStore struct {
	cache *redis.Client
}

func NewRedisStore(cache *redis.Client) *RedisStore {
	return &RedisStore{
		cache: cache,
	}
}

func (s *RedisStore) Create(ctx context.Context, orderID, recipientID string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	created, err := createScript.Run(ctx, s.cache, []string{entryKey(orderID)},
		recipientID, string(models.StatusPending), now).Int()
	if err != nil {
		return err
	}

	if created == 0 {
		return ErrAlreadyExists
	}

	return nil
}

func (s *RedisStore) Get(ctx context.Context, orderID string) (*models.CorrelationEntry, error) {
	fields, err := s.cache.HGetAll(ctx, entryKey(orderID)).Result()
	if err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return nil, ErrNotFound
	}

	entry := &models.CorrelationEntry{
		OrderID:     orderID,
		RecipientID: fields["recipient_id"],
		Status:      models.Status(fields["status"]),
		PaymentID:   fields["payment_id"],
		LastError:   fields["last_error"],
	}

	if t, err := time.Parse(time.RFC3339Nano, fields["created_at"]); err == nil {
		entry.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339Nano, fields["updated_at"]); err == nil {
		entry.UpdatedAt = t
	}

	return entry, nil
}

func (s *RedisStore) Transition(ctx context.Context, orderID string, from, to models.Status) (bool, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	moved, err := transitionScript.Run(ctx, s.cache, []string{entryKey(orderID)},
		string(from), string(to), now).Int()
	if err != nil {
		return false, err
	}

	return moved == 1, nil
}

func (s *RedisStore) AttachPayment(ctx context.Context, orderID, paymentID string) error {
	return s.cache.HSet(ctx, entryKey(orderID), "payment_id", paymentID).Err()
}

func (s *RedisStore) RecordFailure(ctx context.Context, orderID, reason string) error {
	return s.cache.HSet(ctx, entryKey(orderID), "last_error", reason).Err()
}

func (s *RedisStore) StaleClaims(ctx context.Context, olderThan time.Duration) ([]string, error) {
	cutoff := time.Now().UTC().Add(-olderThan)

	var stale []string

	iter := s.cache.Scan(ctx, 0, entryKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		values, err := s.cache.HMGet(ctx, key, "status", "updated_at").Result()
		if err != nil {
			return nil, err
		}

		status, _ := values[0].(string)
		if models.Status(status) != models.StatusDelivering {
			continue
		}

		updatedAt, _ := values[1].(string)
		if t, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil && t.Before(cutoff) {
			stale = append(stale, key[len(entryKeyPrefix):])
		}
	}

	if err := iter.Err(); err != nil {
		return nil, err
	}

	return stale, nil
}

func entryKey(orderID string) string {
	return entryKeyPrefix + orderID
}
