// Package reclaimer recovers orders stuck in the delivering state after a
// worker died between claiming an order and recording the outcome. Demoting
// the claim back to pending keeps the order deliverable by the provider's own
// webhook retries; the executor's compare-and-set still guarantees a single
// delivery.
package reclaimer

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"telefile/paydrop/internal/app/correlation"
	"telefile/paydrop/internal/models"
)

const (
	leaderLockKey = "reclaim_leader_lock"
	leaderLockTTL = 15 * time.Second
)

type Service struct {
	store      correlation.Store
	cache      *redis.Client
	instanceID string
	interval   time.Duration
	staleAfter time.Duration
}

// NewService starts the background routine. A nil cache skips the leader
// election, which is only needed when several instances share one store.
func NewService(store correlation.Store, cache *redis.Client, interval, staleAfter time.Duration) *Service {
	service := &Service{
		store:      store,
		cache:      cache,
		instanceID: uuid.New().String(),
		interval:   interval,
		staleAfter: staleAfter,
	}

	go service.backgroundRoutine()
	return service
}

func (s *Service) backgroundRoutine() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for range ticker.C {
		ctx := context.Background()

		if !s.tryAcquireLeader(ctx) {
			continue
		}

		s.reclaim(ctx)
	}
}

func (s *Service) tryAcquireLeader(ctx context.Context) bool {
	if s.cache == nil {
		return true
	}

	acquired, err := s.cache.SetNX(ctx, leaderLockKey, s.instanceID, leaderLockTTL).Result()
	if err != nil {
		log.Printf("Error acquiring reclaim leader lock for instance %s: %v\n", s.instanceID, err)
		return false
	}

	if !acquired {
		currentLeader, err := s.cache.Get(ctx, leaderLockKey).Result()
		if err != nil || currentLeader != s.instanceID {
			return false
		}
	}

	if err := s.cache.Expire(ctx, leaderLockKey, leaderLockTTL).Err(); err != nil {
		log.Printf("Error renewing reclaim leader lock: %v\n", err)
	}

	return true
}

func (s *Service) reclaim(ctx context.Context) {
	stale, err := s.store.StaleClaims(ctx, s.staleAfter)
	if err != nil {
		log.Printf("Error listing stale delivery claims: %v\n", err)
		return
	}

	for _, orderID := range stale {
		demoted, err := s.store.Transition(ctx, orderID, models.StatusDelivering, models.StatusPending)
		if err != nil {
			log.Printf("Error reclaiming order %s: %v\n", orderID, err)
			continue
		}

		if demoted {
			log.Printf("Reclaimed stale delivery claim for order %s\n", orderID)
		}
	}
}
