package delivery

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telefile/paydrop/internal/models"
)

func TestBalanceSink_CreditsAmount(t *testing.T) {
	ctx := context.Background()
	balances := NewMemoryBalanceStore()
	sink := NewBalanceSink(balances)

	require.NoError(t, sink.Deliver(ctx, &models.Delivery{
		OrderID:     "order_abc",
		RecipientID: "tg-12345",
		Amount:      100,
	}))
	require.NoError(t, sink.Deliver(ctx, &models.Delivery{
		OrderID:     "order_def",
		RecipientID: "tg-12345",
		Amount:      250,
	}))

	balance, err := balances.Balance(ctx, "tg-12345")
	require.NoError(t, err)
	assert.Equal(t, int64(350), balance)
}

func TestBalanceSink_RejectsNonPositiveAmount(t *testing.T) {
	ctx := context.Background()
	sink := NewBalanceSink(NewMemoryBalanceStore())

	err := sink.Deliver(ctx, &models.Delivery{RecipientID: "tg-12345", Amount: 0})
	assert.ErrorIs(t, err, ErrPayloadUnavailable)
}

func TestMemoryBalanceStore_ConcurrentCredits(t *testing.T) {
	ctx := context.Background()
	balances := NewMemoryBalanceStore()

	const credits = 50

	var wg sync.WaitGroup
	for i := 0; i < credits; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := balances.Credit(ctx, "tg-12345", 2)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	balance, err := balances.Balance(ctx, "tg-12345")
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)
}

func TestMemoryBalanceStore_UnknownRecipientIsZero(t *testing.T) {
	balances := NewMemoryBalanceStore()

	balance, err := balances.Balance(context.Background(), "tg-nobody")
	require.NoError(t, err)
	assert.Equal(t, int64(0), balance)
}
