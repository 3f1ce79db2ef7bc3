// Package sessions keeps the live wizards of the process.
package sessions

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"quote-wizard/internal/engine"
)

var ErrNotFound = errors.New("session not found")

type Registry struct {
	deps   engine.Deps
	ttl    time.Duration
	logger *zap.Logger

	mu      sync.RWMutex
	wizards map[string]*engine.Wizard
}

// NewRegistry creates wizards with deps. Sessions idle for longer than ttl
// are removed by Sweep; ttl <= 0 keeps them until deleted.
func NewRegistry(deps engine.Deps, ttl time.Duration, logger *zap.Logger) *Registry {
	return &Registry{
		deps:    deps,
		ttl:     ttl,
		logger:  logger,
		wizards: make(map[string]*engine.Wizard),
	}
}

func (r *Registry) Create() *engine.Wizard {
	id := uuid.New().String()
	w := engine.New(id, r.deps)

	r.mu.Lock()
	r.wizards[id] = w
	r.mu.Unlock()

	r.logger.Info("session created", zap.String("session_id", id))
	return w
}

func (r *Registry) Get(id string) (*engine.Wizard, error) {
	r.mu.RLock()
	w, ok := r.wizards[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return w, nil
}

func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	w, ok := r.wizards[id]
	delete(r.wizards, id)
	r.mu.Unlock()
	if !ok {
		return ErrNotFound
	}
	w.Close()
	r.logger.Info("session deleted", zap.String("session_id", id))
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.wizards)
}

// Sweep removes sessions idle since before now-ttl and returns how many.
func (r *Registry) Sweep(now time.Time) int {
	if r.ttl <= 0 {
		return 0
	}
	cutoff := now.Add(-r.ttl)

	var expired []*engine.Wizard
	r.mu.Lock()
	for id, w := range r.wizards {
		if w.LastUsed().Before(cutoff) {
			expired = append(expired, w)
			delete(r.wizards, id)
		}
	}
	r.mu.Unlock()

	for _, w := range expired {
		w.Close()
	}
	if len(expired) > 0 {
		r.logger.Info("expired sessions removed", zap.Int("count", len(expired)))
	}
	return len(expired)
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	if r.ttl <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.Sweep(now)
		}
	}
}
