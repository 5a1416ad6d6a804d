package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/unclebandit/outreach-backend/internal/model"
	"github.com/unclebandit/outreach-backend/internal/queue"
)

// LeadContactRepository defines the methods the worker needs
type LeadContactRepository interface {
	TouchLastContact(ctx context.Context, id string, at time.Time) error
}

// Worker applies recorded interactions to their lead
type Worker struct {
	LeadRepo LeadContactRepository
	Timeout  time.Duration
}

// Constructor
func NewWorker(repo LeadContactRepository) *Worker {
	return &Worker{LeadRepo: repo, Timeout: 10 * time.Second}
}

// Handle advances last_contact_at for outbound messages. Other interaction
// types leave the lead untouched.
func (w *Worker) Handle(ctx context.Context, ev model.InteractionEvent) error {
	if !ev.Type.Outbound() {
		return nil
	}
	at := ev.CreatedAt
	if at.IsZero() {
		at = time.Now()
	}
	return w.LeadRepo.TouchLastContact(ctx, ev.LeadID, at)
}

// HandlePayload is the queue.Handler form of Handle. Undecodable payloads are
// dropped rather than retried.
func (w *Worker) HandlePayload(payload []byte) error {
	var ev model.InteractionEvent
	if err := json.Unmarshal(payload, &ev); err != nil || ev.LeadID == "" {
		log.Printf("⚠️ dropping malformed interaction event: %s", payload)
		return nil
	}

	timeout := w.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := w.Handle(ctx, ev); err != nil {
		log.Printf("❌ failed to apply interaction %d to lead %s: %v", ev.InteractionID, ev.LeadID, err)
		return err
	}
	return nil
}

// StartInteractionSubscriber attaches the worker to the interaction topic.
func StartInteractionSubscriber(q queue.Queue, topic string, w *Worker) error {
	if topic == "" {
		topic = queue.TopicLeadInteractions
	}
	return q.Subscribe(topic, w.HandlePayload)
}
