package server

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"telefile/paydrop/internal/app/server/handlers"
	"telefile/paydrop/internal/config"
)

type Server struct {
	cfg      *config.Config
	router   *chi.Mux
	handlers *handlers.Handlers
}

func NewServer(cfg *config.Config, h *handlers.Handlers) *Server {
	srv := &Server{
		cfg:      cfg,
		router:   chi.NewRouter(),
		handlers: h,
	}

	srv.registerRoutes()
	return srv
}

func (s *Server) registerRoutes() {
	s.router.Post("/orders", s.handlers.CreateOrder)
	s.router.Post("/payment-webhook", s.handlers.PaymentWebhook)
	s.router.Get("/balances/{recipientID}", s.handlers.GetBalance)
	s.router.Post("/internal/orders/{orderID}/replay", s.handlers.ReplayOrder)
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) Run() error {
	return http.ListenAndServe(fmt.Sprintf(":%s", s.cfg.Server.Port), s.router)
}
