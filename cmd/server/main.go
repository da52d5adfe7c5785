package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/AnshRaj112/goalledger-backend/internal/config"
	"github.com/AnshRaj112/goalledger-backend/internal/database"
	"github.com/AnshRaj112/goalledger-backend/internal/handlers"
	"github.com/AnshRaj112/goalledger-backend/internal/ledger"
	"github.com/AnshRaj112/goalledger-backend/internal/middleware"
	"github.com/AnshRaj112/goalledger-backend/internal/routes"
	"github.com/AnshRaj112/goalledger-backend/internal/services"
	"github.com/AnshRaj112/goalledger-backend/internal/store"
	"github.com/AnshRaj112/goalledger-backend/pkg/rabbitmq"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	if cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction() {
			log.Fatal("JWT_SECRET must be set in production")
		}
		log.Println("⚠️  WARNING: JWT_SECRET not set. Using the development default.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis is optional unless it is the store driver
	var redisClient *redis.Client
	if cfg.RedisURI != "" {
		log.Printf("Connecting to Redis...")
		client, err := database.ConnectRedis(cfg.RedisURI)
		if err != nil {
			if cfg.StoreDriver == "redis" {
				log.Fatal("Failed to connect to Redis:", err)
			}
			log.Printf("⚠️  WARNING: Redis unavailable (%v); using in-process rate limiting and activity fan-out", err)
		} else {
			redisClient = client
			defer redisClient.Close()
		}
	}

	backend, closeBackend, err := openBackend(cfg, redisClient)
	if err != nil {
		log.Fatal("Failed to open ledger storage:", err)
	}
	defer closeBackend()

	// A corrupt or unreadable document stops the service here
	st, err := store.Open(ctx, backend, cfg.StoreTimeout)
	if err != nil {
		log.Fatal("Failed to open ledger document:", err)
	}
	defer st.Close()
	log.Printf("✅ Ledger store ready (%s)", st.Backend())

	// Activity publishers: live feed hub, plus RabbitMQ when configured
	hub := services.NewActivityHub(redisClient)
	hub.StartRedisSubscriber(ctx)
	publishers := []services.ActivityPublisher{hub}

	var producer rabbitmq.Publisher = &rabbitmq.EventProducerFallback{}
	if cfg.RabbitMQURL != "" {
		p, err := rabbitmq.NewEventProducer(cfg.RabbitMQURL)
		if err != nil {
			log.Printf("⚠️  WARNING: RabbitMQ unavailable (%v); activity events will only be logged", err)
		} else {
			producer = p
			log.Println("✅ RabbitMQ producer connected")
		}
		publishers = append(publishers, services.NewEventPublisher(producer))
	}
	defer producer.Close()

	var revocations services.RevocationList
	if redisClient != nil {
		revocations = services.NewRedisRevocationList(redisClient)
	}

	// Backups: local directory, Cloudinary upload when configured
	var uploader services.BackupUploader
	if cfg.CloudinaryEnabled() {
		cld, err := services.NewCloudinaryService(cfg.CloudinaryName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
		if err != nil {
			log.Printf("Warning: Failed to initialize Cloudinary: %v", err)
		} else {
			uploader = cld
			log.Println("✅ Cloudinary service initialized")
		}
	} else {
		log.Println("Warning: Cloudinary credentials not found. Backups stay local")
	}
	backups := services.NewBackupService(st, cfg.BackupDir, uploader)
	if cfg.BackupCron != "" {
		scheduler, err := backups.Schedule(cfg.BackupCron)
		if err != nil {
			log.Fatal("Failed to schedule backups:", err)
		}
		defer scheduler.Stop()
		log.Printf("✅ Scheduled backups: %s", cfg.BackupCron)
	}

	h := &handlers.Handler{
		Store:    st,
		Goals:    services.NewGoalService(st, ledger.New(cfg.Currency), publishers...),
		Accounts: services.NewAccountService(st, cfg.AdminEmails...),
		Sessions: services.NewSessionManager(cfg.JWTSecret, revocations),
		Hub:      hub,
		Backups:  backups,
	}

	if len(cfg.AdminEmails) == 0 {
		log.Println("⚠️  WARNING: ADMIN_EMAILS not set; the database viewer is disabled")
	}

	// Setup router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Production: SecurityHeaders → HostCheck → GlobalRateLimit → LoginRateLimit
	// Otherwise: Redis window limit when Redis is available
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity(cfg.AllowedHosts) {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP + login rate limiting)")
	} else if redisClient != nil {
		r.Use(middleware.RedisRateLimit(redisClient))
	}

	routes.SetupRoutes(r, h)

	log.Println("📋 Registered routes:")
	for _, e := range handlers.Endpoints {
		log.Printf("  %-6s %s", e.Method, e.Path)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("🚀 Goal Ledger backend running on :%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("Failed to start server:", err)
	}
}
