// ABOUTME: Tests for the terminal step side effects and outbox replay.
// ABOUTME: Uses a fake saver against a real SQLite repository in a temp dir.
package onboarding

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/harperreed/fitforge/internal/logging"
	"github.com/harperreed/fitforge/internal/models"
	"github.com/harperreed/fitforge/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSaver struct {
	mu    sync.Mutex
	err   error
	calls []any
	block chan struct{}
}

func (f *fakeSaver) SaveOnboarding(ctx context.Context, submission any) error {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, submission)
	return f.err
}

func (f *fakeSaver) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func setupRepo(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func finishedRecord() models.Record {
	return models.Record{
		Gender:       models.Gender("male"),
		Age:          "40",
		Height:       "180",
		Weight:       "85",
		Goal:         models.GoalLoseWeight,
		FocusAreas:   []models.FocusArea{models.FocusCardio},
		Equipment:    models.NoneChoice[models.Equipment](),
		SleepGoal:    "8",
		MealsPerDay:  "3",
		FitnessLevel: models.FitnessLevel("beginner"),
	}
}

func TestFinisherSuccess(t *testing.T) {
	repo := setupRepo(t)
	nav := &recordingNav{}
	saver := &fakeSaver{}
	f := &Finisher{API: saver, Repo: repo, Nav: nav, Logger: logging.Discard(), Delay: 20 * time.Millisecond}

	c := f.Start(context.Background(), finishedRecord())
	require.NoError(t, c.Wait())
	assert.Equal(t, 1, saver.Calls())

	p, err := repo.GetProfile()
	require.NoError(t, err)
	assert.True(t, p.OnboardingCompleted)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(p.Onboarding, &payload))
	assert.Equal(t, "lose_weight", payload["goal"])

	answers, err := repo.GetOnboardingAnswers()
	require.NoError(t, err)
	assert.Equal(t, "85", answers.Weight)

	assert.Eventually(t, func() bool {
		return len(nav.Routes()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{RouteDashboard}, nav.Routes())

	entries, err := repo.ListOutbox()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFinisherRedirectDoesNotWaitForSave(t *testing.T) {
	repo := setupRepo(t)
	nav := &recordingNav{}
	saver := &fakeSaver{block: make(chan struct{})}
	f := &Finisher{API: saver, Repo: repo, Nav: nav, Logger: logging.Discard(), Delay: 10 * time.Millisecond}

	c := f.Start(context.Background(), finishedRecord())
	assert.Eventually(t, func() bool {
		return len(nav.Routes()) == 1
	}, time.Second, 5*time.Millisecond)

	select {
	case <-c.Saved():
		t.Fatal("save finished before it was unblocked")
	default:
	}
	close(saver.block)
	require.NoError(t, c.Wait())
}

func TestFinisherCancelStopsRedirect(t *testing.T) {
	repo := setupRepo(t)
	nav := &recordingNav{}
	f := &Finisher{API: &fakeSaver{}, Repo: repo, Nav: nav, Logger: logging.Discard(), Delay: time.Hour}

	c := f.Start(context.Background(), finishedRecord())
	assert.True(t, c.Cancel())
	require.NoError(t, c.Wait())
	assert.Empty(t, nav.Routes())
}

func TestFinisherSaveSurvivesCancelledContext(t *testing.T) {
	repo := setupRepo(t)
	saver := &fakeSaver{}
	f := &Finisher{API: saver, Repo: repo, Nav: &recordingNav{}, Logger: logging.Discard(), Delay: time.Hour}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := f.Start(ctx, finishedRecord())
	defer c.Cancel()
	require.NoError(t, c.Wait())
	assert.Equal(t, 1, saver.Calls())
}

func TestFinisherFailureQueuesOutbox(t *testing.T) {
	repo := setupRepo(t)
	nav := &recordingNav{}
	saver := &fakeSaver{err: errors.New("connection refused")}
	f := &Finisher{API: saver, Repo: repo, Nav: nav, Logger: logging.Discard(), Delay: time.Hour}

	c := f.Start(context.Background(), finishedRecord())
	defer c.Cancel()
	require.Error(t, c.Wait())

	entries, err := repo.ListOutbox()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.OutboxSaveOnboarding, entries[0].Kind)
	assert.Equal(t, 1, entries[0].Attempts)
	assert.Equal(t, "connection refused", entries[0].LastError)

	// The local profile is still marked complete.
	p, err := repo.GetProfile()
	require.NoError(t, err)
	assert.True(t, p.OnboardingCompleted)
}

func TestReplayOutbox(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	first := models.NewOutboxEntry(models.OutboxSaveOnboarding, json.RawMessage(`{"goal":"get_fit"}`))
	first.Attempts = 1
	require.NoError(t, repo.EnqueueOutbox(first))
	other := models.NewOutboxEntry(models.OutboxKind("unknown"), json.RawMessage(`{}`))
	require.NoError(t, repo.EnqueueOutbox(other))

	failing := &fakeSaver{err: errors.New("503")}
	summary, err := ReplayOutbox(ctx, failing, repo, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, &ReplaySummary{Failed: 1, Skipped: 1}, summary)

	entries, err := repo.ListOutbox()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 2, entries[0].Attempts)
	assert.Equal(t, "503", entries[0].LastError)

	ok := &fakeSaver{}
	summary, err = ReplayOutbox(ctx, ok, repo, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, &ReplaySummary{Sent: 1, Skipped: 1}, summary)
	require.Len(t, ok.calls, 1)
	assert.JSONEq(t, `{"goal":"get_fit"}`, string(ok.calls[0].(json.RawMessage)))

	entries, err = repo.ListOutbox()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, other.ID, entries[0].ID)
}
