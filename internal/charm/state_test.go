// ABOUTME: Unit tests for Charm-based local state storage.
// ABOUTME: Runs the Repository methods against an in-memory badger store.
package charm

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/fitforge/internal/models"
	"github.com/harperreed/fitforge/internal/storage"
)

// memKV satisfies kvStore with an in-memory badger database.
type memKV struct {
	db       *badger.DB
	readOnly bool
	syncs    int
}

func newMemKV(t *testing.T) *memKV {
	t.Helper()
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatalf("open badger: %v", err)
	}
	return &memKV{db: db}
}

func (m *memKV) Set(key, value []byte) error {
	return m.db.Update(func(txn *badger.Txn) error { return txn.Set(key, value) })
}

func (m *memKV) Get(key []byte) ([]byte, error) {
	var out []byte
	err := m.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	return out, err
}

func (m *memKV) Delete(key []byte) error {
	return m.db.Update(func(txn *badger.Txn) error { return txn.Delete(key) })
}

func (m *memKV) Keys() ([][]byte, error) {
	var keys [][]byte
	err := m.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	return keys, err
}

func (m *memKV) Sync() error {
	m.syncs++
	return nil
}

func (m *memKV) Reset() error     { return m.db.DropAll() }
func (m *memKV) IsReadOnly() bool { return m.readOnly }
func (m *memKV) Close() error     { return m.db.Close() }

func setupTestClient(t *testing.T) (*Client, *memKV) {
	t.Helper()
	store := newMemKV(t)
	c := newClient(store, true)
	t.Cleanup(func() { _ = c.Close() })
	return c, store
}

func TestOutboxPrefix(t *testing.T) {
	e := models.NewOutboxEntry(models.OutboxSaveOnboarding, nil)
	key := OutboxPrefix + e.ID
	if key[:7] != "outbox:" {
		t.Errorf("Expected key to start with 'outbox:', got: %s", key[:7])
	}
	if got := extractID(key, OutboxPrefix); got != e.ID {
		t.Errorf("extractID() = %q, want %q", got, e.ID)
	}
}

func TestTokenNotFound(t *testing.T) {
	c, _ := setupTestClient(t)

	if _, err := c.GetToken(); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("GetToken() error = %v, want ErrNotFound", err)
	}
	if err := c.ClearToken(); err != nil {
		t.Errorf("ClearToken on missing key should succeed: %v", err)
	}
}

func TestTokenAndProfile(t *testing.T) {
	c, store := setupTestClient(t)

	if err := c.SaveToken("tok"); err != nil {
		t.Fatalf("SaveToken failed: %v", err)
	}
	if got, _ := c.GetToken(); got != "tok" {
		t.Errorf("GetToken() = %q", got)
	}
	if store.syncs == 0 {
		t.Error("expected a sync after write with autoSync enabled")
	}

	p := models.NewUserProfile("Ada", "ada@example.com")
	if err := c.SaveProfile(p); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}
	got, err := c.GetProfile()
	if err != nil || got.ID != p.ID {
		t.Errorf("GetProfile() = %+v, %v", got, err)
	}
	if err := c.ClearProfile(); err != nil {
		t.Fatal(err)
	}
	if _, err := c.GetProfile(); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("GetProfile after clear = %v", err)
	}
}

func TestOutboxOrdering(t *testing.T) {
	c, _ := setupTestClient(t)
	c.SetAutoSync(false)

	first := models.NewOutboxEntry(models.OutboxSaveOnboarding, json.RawMessage(`{}`))
	second := models.NewOutboxEntry(models.OutboxSaveOnboarding, json.RawMessage(`{}`))
	_ = c.EnqueueOutbox(second)
	_ = c.EnqueueOutbox(first)

	entries, err := c.ListOutbox()
	if err != nil {
		t.Fatalf("ListOutbox failed: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != first.ID {
		t.Fatalf("unexpected order: %+v", entries)
	}

	first.Attempts = 1
	if err := c.UpdateOutbox(first); err != nil {
		t.Fatalf("UpdateOutbox failed: %v", err)
	}
	if err := c.DeleteOutbox(first.ID); err != nil {
		t.Fatalf("DeleteOutbox failed: %v", err)
	}
	if err := c.DeleteOutbox(first.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second DeleteOutbox = %v, want ErrNotFound", err)
	}
	if err := c.UpdateOutbox(first); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("UpdateOutbox of deleted = %v, want ErrNotFound", err)
	}
}

func TestReadOnlyRejectsWrites(t *testing.T) {
	c, store := setupTestClient(t)
	store.readOnly = true

	if err := c.SaveToken("x"); !errors.Is(err, errReadOnly) {
		t.Errorf("SaveToken in read-only mode = %v", err)
	}
	if err := c.Sync(); err != nil {
		t.Errorf("Sync in read-only mode should be a no-op: %v", err)
	}
}

func TestMigrateSQLiteToCharm(t *testing.T) {
	src, err := storage.Open(t.TempDir() + "/fitforge.db")
	if err != nil {
		t.Fatal(err)
	}
	defer src.Close()
	_ = src.SaveToken("tok")
	_ = src.SaveOnboardingAnswers(&models.Record{Goal: models.GoalGetFit, Equipment: models.NoneChoice[models.Equipment]()})

	dst, _ := setupTestClient(t)
	summary, err := storage.MigrateData(src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if !summary.Token || !summary.Onboarding {
		t.Errorf("unexpected summary: %+v", summary)
	}

	r, err := dst.GetOnboardingAnswers()
	if err != nil || r.Goal != models.GoalGetFit || !r.Equipment.IsNone() {
		t.Errorf("answers not migrated: %+v, %v", r, err)
	}
}
