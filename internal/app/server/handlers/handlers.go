package handlers

import (
	"github.com/go-playground/validator/v10"

	"telefile/paydrop/internal/app/delivery"
	"telefile/paydrop/internal/app/fulfillment"
	"telefile/paydrop/internal/app/orders"
	"telefile/paydrop/internal/app/signature"
	"telefile/paydrop/internal/config"
)

type Handlers struct {
	cfg                 *config.Config
	orderService        *orders.OrderService
	verifier            signature.Verifier
	balances            delivery.BalanceStore
	replayer            *fulfillment.Replayer
	fulfillmentEventsCh chan any
	validate            *validator.Validate
}

func NewHandlers(
	cfg *config.Config,
	orderService *orders.OrderService,
	verifier signature.Verifier,
	balances delivery.BalanceStore,
	replayer *fulfillment.Replayer,
	fulfillmentEventsCh chan any,
) *Handlers {
	return &Handlers{
		cfg:                 cfg,
		orderService:        orderService,
		verifier:            verifier,
		balances:            balances,
		replayer:            replayer,
		fulfillmentEventsCh: fulfillmentEventsCh,
		validate:            validator.New(),
	}
}
