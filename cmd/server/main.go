package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"residence-hub/internal/auth"
	"residence-hub/internal/booking"
	"residence-hub/internal/config"
	"residence-hub/internal/database"
	"residence-hub/internal/handlers"
	"residence-hub/internal/middleware"
	"residence-hub/internal/mq"
	"residence-hub/internal/obs"
	"residence-hub/internal/server"
)

type publisher interface {
	booking.Publisher
	Close() error
}

func newPublisher(cfg *config.Config) publisher {
	if cfg.RabbitURL == "" {
		return mq.Nop{}
	}
	for i := 1; i <= 5; i++ {
		p, err := mq.NewPublisher(cfg.RabbitURL, cfg.EventsExchange, "residence-hub")
		if err == nil {
			return p
		}
		log.Printf("rabbitmq connect (attempt %d/5): %v", i, err)
		time.Sleep(2 * time.Second)
	}
	log.Printf("rabbitmq unavailable, events disabled")
	return mq.Nop{}
}

func main() {
	cfg := config.Load()

	shutdownTracer := obs.InitTracer("residence-hub", cfg.OTELEndpoint)

	database.Init(cfg.DBDSN)
	database.Seed(cfg.AdminEmail, cfg.AdminPassword)

	pub := newPublisher(cfg)
	defer pub.Close()

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	svc := booking.NewService(database.NewReservationStore(database.DB), pub, database.CreateAuditLog, cfg.Location())
	h := handlers.New(tokens, svc, pub, cfg.SecureCookies)

	limiter := middleware.NewRateLimiter(cfg.LoginRPS, cfg.LoginBurst)
	defer limiter.Stop()

	r := server.NewRouter(cfg, h, limiter)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.ServerPort),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if err := shutdownTracer(ctx); err != nil {
		log.Printf("tracer shutdown: %v", err)
	}
	log.Println("server stopped")
}
