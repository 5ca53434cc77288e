package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/rentfront/gateway/internal/authclient"
	"github.com/rentfront/gateway/internal/events"
	h "github.com/rentfront/gateway/internal/http"
	"github.com/rentfront/gateway/internal/rentalapi"
	"github.com/rentfront/gateway/internal/session"
)

type Config struct {
	HTTPPort        string
	RentalAPIURL    string
	RedisAddr       string
	KafkaBrokers    string
	TokenTTL        time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RentalAPIURL:    getEnv("RENTAL_API_URL", "http://localhost:8000"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:    getEnv("KAFKA_BROKERS", ""),
		TokenTTL:        24 * time.Hour,
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := loadConfig()

	redisClient := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	defer redisClient.Close()

	sessions := session.NewRedisStore(redisClient)

	outbound := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   cfg.RequestTimeout,
	}

	// Tokens are stored per session, so the API client is built per
	// request around that session's store.
	apiFactory := func(sessionID string) h.RentalAPI {
		tokens := authclient.NewRedisStore(redisClient, sessionID, cfg.TokenTTL)
		auth := authclient.New(outbound, tokens, rentalapi.RefreshURL(cfg.RentalAPIURL))
		return rentalapi.New(auth, outbound, tokens, cfg.RentalAPIURL)
	}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.KafkaBrokers != "" {
		kafkaPublisher := events.NewKafkaPublisher(strings.Split(cfg.KafkaBrokers, ",")...)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
	}

	authHandler := h.NewAuthHandler(apiFactory)
	productHandler := h.NewProductHandler(apiFactory)
	cartHandler := h.NewCartHandler(sessions)
	checkoutHandler := h.NewCheckoutHandler(sessions, apiFactory, publisher)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.SessionMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/logout", authHandler.Logout)

		r.Get("/products", productHandler.Get)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.Get)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
			r.Delete("/", cartHandler.Clear)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", checkoutHandler.Get)
			r.Post("/continue", checkoutHandler.Continue)
			r.Post("/back", checkoutHandler.Back)
			r.Put("/delivery", checkoutHandler.SetDelivery)
			r.Put("/payment", checkoutHandler.SetPayment)
			r.Post("/pay", checkoutHandler.Pay)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("storefront gateway starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
