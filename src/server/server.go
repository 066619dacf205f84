package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/auth"
	"tradejournal/src/handler"
	"tradejournal/src/service"
)

// NewRouter wires the HTTP surface. The trade service and auth config are
// injected; no handler reaches for a global.
func NewRouter(trades *service.TradeService, authConfig auth.Config) chi.Router {
	r := chi.NewRouter()

	// Public routes
	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.WithError(err).Error("/healthcheck error")
		}
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(authConfig))

		r.Route("/trades", func(r chi.Router) {
			r.Get("/", handler.ListTradesHandler(trades))
			r.Post("/", handler.CreateTradeHandler(trades))
			r.Get("/{id}", handler.GetTradeHandler(trades))
			r.Patch("/{id}", handler.UpdateTradeHandler(trades))
			r.Delete("/{id}", handler.DeleteTradeHandler(trades))
		})

		r.Get("/stats", handler.StatsHandler(trades))
		r.Get("/me", handler.MeHandler())
	})

	return r
}

// StartServer serves the router and shuts down gracefully on SIGINT/SIGTERM.
func StartServer(port string, router chi.Router) {
	addr := ":" + port
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Infof("Listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("Server crashed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Shutdown error")
	}
}
