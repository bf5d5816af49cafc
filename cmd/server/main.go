package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/heisemmanuell/audiophile-eshop/internal/cartstore"
	"github.com/heisemmanuell/audiophile-eshop/internal/events"
	h "github.com/heisemmanuell/audiophile-eshop/internal/http"
	"github.com/heisemmanuell/audiophile-eshop/internal/notifier"
	"github.com/heisemmanuell/audiophile-eshop/internal/repository"
	"github.com/heisemmanuell/audiophile-eshop/internal/service"
)

type Config struct {
	HTTPPort        string
	MongoURI        string
	MongoDBName     string
	MongoMaxPool    int
	MongoMinPool    int
	RedisAddr       string
	RedisPassword   string
	KafkaBrokers    []string
	AppURL          string
	EmailProvider   string // "smtp" or "http"
	SMTPHost        string
	SMTPPort        int
	SMTPUser        string
	SMTPPassword    string
	SMTPFromName    string
	SMTPFromAddr    string
	EmailAPIURL     string
	EmailAPIKey     string
	ShippingFee     float64
	TaxRate         float64
	NotifyTimeout   time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	cfg := &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "storefront"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		AppURL:          getEnv("APP_URL", "https://audiophile.com"),
		EmailProvider:   getEnv("EMAIL_PROVIDER", "smtp"),
		SMTPHost:        getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPUser:        getEnv("SMTP_USER", ""),
		SMTPPassword:    getEnv("SMTP_PASSWORD", ""),
		SMTPFromName:    getEnv("SMTP_FROM_NAME", "Audiophile"),
		EmailAPIURL:     getEnv("EMAIL_API_URL", "https://api.resend.com/emails"),
		EmailAPIKey:     getEnv("EMAIL_API_KEY", ""),
		NotifyTimeout:   10 * time.Second,
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	cfg.MongoMaxPool = getEnvInt("MONGO_MAX_POOL_SIZE", 50)
	cfg.MongoMinPool = getEnvInt("MONGO_MIN_POOL_SIZE", 5)
	cfg.SMTPPort = getEnvInt("SMTP_PORT", 587)
	cfg.SMTPFromAddr = getEnv("SMTP_FROM_ADDR", cfg.SMTPUser)
	cfg.ShippingFee = getEnvFloat("SHIPPING_FEE", service.DefaultShippingFee)
	cfg.TaxRate = getEnvFloat("TAX_RATE", service.DefaultTaxRate)

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	// Set up MongoDB connection
	mongoDB, err := repository.ConnectMongoDB(ctx, repository.ConnectConfig{
		URI:         cfg.MongoURI,
		Database:    cfg.MongoDBName,
		MaxPoolSize: uint64(cfg.MongoMaxPool),
		MinPoolSize: uint64(cfg.MongoMinPool),
	})
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	log.Printf("Connected to MongoDB at %s", cfg.MongoURI)

	repo := repository.NewMongoRepository(mongoDB)
	if err := repo.CreateIndexes(ctx); err != nil {
		log.Fatalf("Failed to create order indexes: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Printf("Redis ping succeeded")

	var pub events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPub := events.NewKafkaPublisher(cfg.KafkaBrokers...)
		defer kafkaPub.Close()
		pub = kafkaPub
		log.Printf("Publishing storefront events to %v", cfg.KafkaBrokers)
	}

	cart := cartstore.NewRedisStore(redisClient, pub)

	renderer := notifier.NewRenderer(cfg.AppURL)
	var sender notifier.Sender
	switch cfg.EmailProvider {
	case "http":
		sender = notifier.NewHTTPAPISender(cfg.EmailAPIURL, cfg.EmailAPIKey, cfg.SMTPFromAddr, renderer)
	default:
		sender = notifier.NewSMTPSender(notifier.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUser,
			Password: cfg.SMTPPassword,
			FromName: cfg.SMTPFromName,
			FromAddr: cfg.SMTPFromAddr,
		}, renderer)
	}

	checkout := service.NewCheckoutService(cart, repo, sender, pub).
		WithPricing(cfg.ShippingFee, cfg.TaxRate).
		WithNotifyTimeout(cfg.NotifyTimeout)
	confirmation := service.NewConfirmationService(cart, repo)

	cartHandler := h.NewCartHandler(cart, cfg.RequestTimeout)
	checkoutHandler := h.NewCheckoutHandler(checkout, cfg.RequestTimeout)
	confirmationHandler := h.NewConfirmationHandler(confirmation, cfg.RequestTimeout)
	emailHandler := h.NewEmailHandler(sender, cfg.RequestTimeout)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.SessionMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Put("/", cartHandler.PutCart)
			r.Delete("/", cartHandler.ClearCart)
		})
		r.Post("/checkout", checkoutHandler.Submit)
		r.Get("/order-confirmation", confirmationHandler.GetSummary)
		r.Post("/send-email", emailHandler.SendConfirmation)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront checkout service starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	mongoDB.Client().Disconnect(ctx)
	log.Println("server exited")
}
