package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/unclebandit/outreach-backend/internal/config"
	"github.com/unclebandit/outreach-backend/internal/db"
	"github.com/unclebandit/outreach-backend/internal/logging"
	"github.com/unclebandit/outreach-backend/internal/queue"
	"github.com/unclebandit/outreach-backend/internal/repository"
	"github.com/unclebandit/outreach-backend/internal/service"
)

// The worker consumes lead interaction events from RabbitMQ and keeps each
// lead's last contact time current.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg, err := config.LoadWorker()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}
	if cfg.Queue.AMQPURL == "" {
		log.Fatal("❌ AMQP_URL is required for the worker")
	}
	logCloser := logging.Setup(cfg.Log)
	defer logCloser.Close()

	conn, err := db.Open(cfg.Database)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer conn.Close()

	q, err := queue.DialAMQP(cfg.Queue.AMQPURL)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer q.Close()

	worker := service.NewWorker(&repository.LeadRepository{DB: conn})
	if err := service.StartInteractionSubscriber(q, cfg.Queue.Name, worker); err != nil {
		log.Fatalf("❌ Failed to register consumer: %v", err)
	}

	log.Printf("🚀 Worker running, waiting for messages on %s...", cfg.Queue.Name)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case <-stop:
		log.Println("Shutting down worker...")
	case err := <-q.NotifyClose():
		log.Printf("❌ RabbitMQ connection closed: %v", err)
	}
}
