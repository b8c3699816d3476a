package watcher

import (
	"context"
	"log"
	"time"

	"github.com/hirewise/hirewise/internal/models"
)

// UserLister interface for enumerating the users the cycle sweeps
type UserLister interface {
	List(ctx context.Context) ([]models.User, error)
}

// UserProcessor interface for the per-user ingestion pass
type UserProcessor interface {
	ProcessUser(ctx context.Context, user *models.User) error
}

// Watcher drives the periodic resume-ingestion cycle. One sequential
// sweep over all users per tick; at most one cycle is ever in flight.
type Watcher struct {
	interval  time.Duration
	users     UserLister
	processor UserProcessor
}

func New(interval time.Duration, users UserLister, processor UserProcessor) *Watcher {
	return &Watcher{
		interval:  interval,
		users:     users,
		processor: processor,
	}
}

// Start runs ingestion cycles until the context is cancelled. Always
// returns the context error; cycle failures are contained and logged.
func (w *Watcher) Start(ctx context.Context) error {
	log.Println("Starting resume ingestion watcher...")

	// First cycle immediately on startup
	w.runCycle(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Ingestion watcher shutting down...")
			return ctx.Err()
		case <-ticker.C:
			w.runCycle(ctx)
		}
	}
}

// runCycle sweeps every user once. Errors are contained per user so one
// broken mailbox never aborts the rest of the sweep.
func (w *Watcher) runCycle(ctx context.Context) {
	users, err := w.users.List(ctx)
	if err != nil {
		log.Printf("Error listing users for ingestion cycle: %v", err)
		return
	}

	if len(users) == 0 {
		return
	}
	log.Printf("Starting ingestion cycle for %d user(s)", len(users))

	for i := range users {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if err := w.processor.ProcessUser(ctx, &users[i]); err != nil {
			log.Printf("Error processing user %s: %v", users[i].ID, err)
		}
	}

	log.Println("Ingestion cycle completed")
}
