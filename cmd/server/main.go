// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/unclebandit/outreach-backend/internal/auth"
	"github.com/unclebandit/outreach-backend/internal/config"
	"github.com/unclebandit/outreach-backend/internal/controller"
	"github.com/unclebandit/outreach-backend/internal/db"
	"github.com/unclebandit/outreach-backend/internal/logging"
	"github.com/unclebandit/outreach-backend/internal/middleware"
	"github.com/unclebandit/outreach-backend/internal/queue"
	"github.com/unclebandit/outreach-backend/internal/repository"
	"github.com/unclebandit/outreach-backend/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg, err := config.LoadAll()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	logCloser := logging.Setup(cfg.Log)
	defer logCloser.Close()

	conn, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer conn.Close()

	campaignRepo := &repository.CampaignRepository{DB: conn}
	leadRepo := &repository.LeadRepository{DB: conn}
	interactionRepo := &repository.InteractionRepository{DB: conn}
	statsRepo := &repository.StatsRepository{DB: conn}
	templateRepo := &repository.TemplateRepository{DB: conn}
	accountRepo := &repository.AccountRepository{DB: conn}

	q := openQueue(cfg.Queue, leadRepo)
	defer q.Close()

	verifier, rdb := buildVerifier(cfg)
	if rdb != nil {
		defer rdb.Close()
	}

	campaignService := &service.CampaignService{
		CampaignRepo: campaignRepo,
		StatsRepo:    statsRepo,
		TemplateRepo: templateRepo,
		LeadRepo:     leadRepo,
		AccountRepo:  accountRepo,
		Paging:       cfg.Paging,
	}
	leadService := &service.LeadService{
		LeadRepo:        leadRepo,
		InteractionRepo: interactionRepo,
		CampaignRepo:    campaignRepo,
		Queue:           q,
		Topic:           cfg.Queue.Name,
		Paging:          cfg.Paging,
	}
	accountService := &service.AccountService{AccountRepo: accountRepo}

	r := controller.NewRouter(controller.RouterDeps{
		Campaigns:      campaignService,
		Leads:          leadService,
		Accounts:       accountService,
		Verifier:       verifier,
		Metrics:        middleware.NewMetrics(prometheus.DefaultRegisterer),
		MetricsHandler: promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server running on %s", cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("⚠️ Graceful shutdown failed: %v", err)
	}
}

// openQueue prefers RabbitMQ. Without AMQP_URL interaction events are handled
// in-process.
func openQueue(cfg config.QueueConfig, leadRepo *repository.LeadRepository) queue.Queue {
	if cfg.AMQPURL != "" {
		q, err := queue.DialAMQP(cfg.AMQPURL)
		if err != nil {
			log.Fatalf("❌ %v", err)
		}
		log.Printf("✅ Publishing interaction events to RabbitMQ queue %s", cfg.Name)
		return q
	}

	q := queue.NewInMemoryQueue()
	if err := service.StartInteractionSubscriber(q, cfg.Name, service.NewWorker(leadRepo)); err != nil {
		log.Fatalf("❌ %v", err)
	}
	log.Println("⚠️ AMQP_URL not set, using in-memory queue")
	return q
}

func buildVerifier(cfg *config.Config) (auth.Verifier, *redis.Client) {
	var chain auth.Chain
	if cfg.Auth.JWTSecret != "" {
		chain = append(chain, auth.NewJWTVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer))
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("❌ Failed to connect to Redis: %v", err)
		}
		log.Printf("✅ Connected to Redis at %s", cfg.Redis.Address)
		chain = append(chain, auth.NewRedisSessionVerifier(rdb, cfg.Auth.SessionCookie))
	}
	return chain, rdb
}
