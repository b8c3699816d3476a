package keypool

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/hirewise/hirewise/internal/models"
)

// UserKeyStore interface for persisting the chosen key
type UserKeyStore interface {
	AssignGeminiKey(ctx context.Context, userID string, apiKey string) error
}

// Pool hands out LLM API keys from a small fixed set shared across users.
// A user keeps the first key drawn for them. Capacity sharing only, not a
// security boundary.
type Pool struct {
	keys  []string
	store UserKeyStore

	mu  sync.Mutex
	rng *rand.Rand
}

func New(keys []string, store UserKeyStore) *Pool {
	return &Pool{
		keys:  keys,
		store: store,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Assign returns the user's key, drawing and persisting one from the pool
// on first use.
func (p *Pool) Assign(ctx context.Context, user *models.User) (string, error) {
	if user.GeminiAPIKey != nil && *user.GeminiAPIKey != "" {
		return *user.GeminiAPIKey, nil
	}

	if len(p.keys) == 0 {
		return "", fmt.Errorf("api key pool is empty")
	}

	p.mu.Lock()
	idx := p.rng.Intn(len(p.keys))
	p.mu.Unlock()
	key := p.keys[idx]

	if err := p.store.AssignGeminiKey(ctx, user.ID, key); err != nil {
		return "", fmt.Errorf("failed to persist key assignment: %w", err)
	}
	user.GeminiAPIKey = &key

	log.Printf("Assigned pool key #%d to user %s", idx, user.ID)
	return key, nil
}
