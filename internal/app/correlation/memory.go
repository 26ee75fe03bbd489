package correlation

import (
	"context"
	"sync"
	"time"

	"telefile/paydrop/internal/models"
)

// MemoryStore keeps entries in a mutex-guarded map. State does not survive a
// restart; it exists for tests and single-process setups.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*models.CorrelationEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*models.CorrelationEntry),
	}
}

func (s *MemoryStore) Create(ctx context.Context, orderID, recipientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[orderID]; ok {
		return ErrAlreadyExists
	}

	now := time.Now().UTC()
	s.entries[orderID] = &models.CorrelationEntry{
		OrderID:     orderID,
		RecipientID: recipientID,
		Status:      models.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return nil
}

func (s *MemoryStore) Get(ctx context.Context, orderID string) (*models.CorrelationEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[orderID]
	if !ok {
		return nil, ErrNotFound
	}

	copied := *entry
	return &copied, nil
}

func (s *MemoryStore) Transition(ctx context.Context, orderID string, from, to models.Status) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[orderID]
	if !ok || entry.Status != from {
		return false, nil
	}

	entry.Status = to
	entry.UpdatedAt = time.Now().UTC()

	return true, nil
}

func (s *MemoryStore) AttachPayment(ctx context.Context, orderID, paymentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.entries[orderID]; ok {
		entry.PaymentID = paymentID
	}

	return nil
}

func (s *MemoryStore) RecordFailure(ctx context.Context, orderID, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry, ok := s.entries[orderID]; ok {
		entry.LastError = reason
	}

	return nil
}

func (s *MemoryStore) StaleClaims(ctx context.Context, olderThan time.Duration) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().UTC().Add(-olderThan)

	var stale []string
	for orderID, entry := range s.entries {
		if entry.Status == models.StatusDelivering && entry.UpdatedAt.Before(cutoff) {
			stale = append(stale, orderID)
		}
	}

	return stale, nil
}
