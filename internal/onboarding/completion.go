// ABOUTME: Terminal step side effects: fire-and-forget save, profile mirror, and redirect timer.
// ABOUTME: A failed save lands in the local outbox; ReplayOutbox retries it later.
package onboarding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitforge/internal/models"
	"github.com/harperreed/fitforge/internal/storage"
)

// RedirectDelay is how long the terminal step waits before the dashboard.
const RedirectDelay = 4 * time.Second

// Saver posts an onboarding submission.
type Saver interface {
	SaveOnboarding(ctx context.Context, submission any) error
}

// Finisher carries what the terminal step needs.
type Finisher struct {
	API    Saver
	Repo   storage.Repository
	Nav    Navigator
	Logger *log.Logger
	// Delay overrides RedirectDelay when non-zero.
	Delay time.Duration
}

// Completion tracks one terminal-step mount.
type Completion struct {
	timer *time.Timer
	done  chan struct{}

	mu      sync.Mutex
	saveErr error
}

// Start runs the terminal step: it stores the answers and the completed
// profile locally, starts the save in the background, and schedules the
// dashboard redirect. The redirect does not wait for the save, and the save
// keeps going if ctx is cancelled.
func (f *Finisher) Start(ctx context.Context, r models.Record) *Completion {
	sub := BuildSubmission(r)
	payload, err := json.Marshal(sub)
	if err != nil {
		f.Logger.Error("encode onboarding submission", "err", err)
	}

	f.mirrorProfile(payload)
	answers := r.Clone()
	if err := f.Repo.SaveOnboardingAnswers(&answers); err != nil {
		f.Logger.Warn("store onboarding answers", "err", err)
	}

	delay := f.Delay
	if delay == 0 {
		delay = RedirectDelay
	}

	c := &Completion{done: make(chan struct{})}
	c.timer = time.AfterFunc(delay, func() {
		f.Nav.Navigate(RouteDashboard)
	})

	saveCtx := context.WithoutCancel(ctx)
	go func() {
		defer close(c.done)
		err := f.API.SaveOnboarding(saveCtx, sub)
		if err != nil {
			f.Logger.Warn("save onboarding failed", "err", err)
			f.enqueue(payload, err)
		}
		c.mu.Lock()
		c.saveErr = err
		c.mu.Unlock()
	}()

	return c
}

// Cancel stops the redirect if it has not fired yet. The save is unaffected.
func (c *Completion) Cancel() bool {
	return c.timer.Stop()
}

// Saved is closed once the save has finished, successfully or not.
func (c *Completion) Saved() <-chan struct{} {
	return c.done
}

// Wait blocks until the save finishes and returns its error.
func (c *Completion) Wait() error {
	<-c.done
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saveErr
}

func (f *Finisher) mirrorProfile(payload []byte) {
	p, err := f.Repo.GetProfile()
	if errors.Is(err, storage.ErrNotFound) {
		p = models.NewUserProfile("", "")
	} else if err != nil {
		f.Logger.Warn("read cached profile", "err", err)
		p = models.NewUserProfile("", "")
	}
	p.OnboardingCompleted = true
	p.Onboarding = payload
	p.UpdatedAt = time.Now()
	if err := f.Repo.SaveProfile(p); err != nil {
		f.Logger.Warn("cache profile", "err", err)
	}
}

func (f *Finisher) enqueue(payload []byte, cause error) {
	if payload == nil {
		return
	}
	e := models.NewOutboxEntry(models.OutboxSaveOnboarding, payload)
	e.Attempts = 1
	e.LastError = cause.Error()
	if err := f.Repo.EnqueueOutbox(e); err != nil {
		f.Logger.Error("queue onboarding retry", "err", err)
	}
}

// ReplaySummary counts the outcome of an outbox replay.
type ReplaySummary struct {
	Sent    int
	Failed  int
	Skipped int
}

// ReplayOutbox retries every pending onboarding save, oldest first.
// Delivered entries are removed; failures stay with their attempt count bumped.
func ReplayOutbox(ctx context.Context, api Saver, repo storage.Repository, logger *log.Logger) (*ReplaySummary, error) {
	entries, err := repo.ListOutbox()
	if err != nil {
		return nil, fmt.Errorf("list outbox: %w", err)
	}

	summary := &ReplaySummary{}
	for _, e := range entries {
		if e.Kind != models.OutboxSaveOnboarding {
			summary.Skipped++
			continue
		}
		if err := api.SaveOnboarding(ctx, json.RawMessage(e.Payload)); err != nil {
			logger.Warn("retry onboarding save", "id", e.ID, "attempts", e.Attempts+1, "err", err)
			e.Attempts++
			e.LastError = err.Error()
			if uerr := repo.UpdateOutbox(e); uerr != nil {
				return summary, fmt.Errorf("update outbox entry: %w", uerr)
			}
			summary.Failed++
			continue
		}
		if err := repo.DeleteOutbox(e.ID); err != nil {
			return summary, fmt.Errorf("delete outbox entry: %w", err)
		}
		summary.Sent++
	}
	return summary, nil
}
