// ABOUTME: Tests for export, import, and backend migration.
// ABOUTME: Covers JSON/YAML export and SQLite-to-SQLite migration.
package storage

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harperreed/fitforge/internal/models"
	"gopkg.in/yaml.v3"
)

func populate(t *testing.T, db *DB) {
	t.Helper()
	if err := db.SaveToken("secret-token"); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveProfile(models.NewUserProfile("Ada", "ada@example.com")); err != nil {
		t.Fatal(err)
	}
	if err := db.SaveOnboardingAnswers(sampleRecord()); err != nil {
		t.Fatal(err)
	}
	if err := db.EnqueueOutbox(models.NewOutboxEntry(models.OutboxSaveOnboarding, json.RawMessage(`{"goal":"get_fit"}`))); err != nil {
		t.Fatal(err)
	}
}

func TestExportJSONOmitsToken(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	populate(t, db)

	out, err := ExportJSON(db)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}
	if strings.Contains(string(out), "secret-token") {
		t.Error("export must not contain the auth token")
	}

	var data ExportData
	if err := json.Unmarshal(out, &data); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if data.Tool != "fitforge" || data.Profile == nil || data.Onboarding == nil || len(data.Outbox) != 1 {
		t.Errorf("unexpected export: %+v", data)
	}
}

func TestExportYAMLDecodesPayload(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	populate(t, db)

	out, err := ExportYAML(db)
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("export is not valid YAML: %v", err)
	}
	outbox, ok := doc["outbox"].([]any)
	if !ok || len(outbox) != 1 {
		t.Fatalf("outbox = %#v", doc["outbox"])
	}
	entry := outbox[0].(map[string]any)
	payload, ok := entry["payload"].(map[string]any)
	if !ok || payload["goal"] != "get_fit" {
		t.Errorf("payload = %#v", entry["payload"])
	}
	if !strings.Contains(string(out), "equipment:\n") {
		t.Errorf("expected equipment choice in YAML:\n%s", out)
	}
}

func TestExportEmptyDatabase(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	data, err := db.GetAllData()
	if err != nil {
		t.Fatalf("GetAllData failed: %v", err)
	}
	if data.Profile != nil || data.Onboarding != nil || len(data.Outbox) != 0 {
		t.Errorf("expected empty export, got %+v", data)
	}
}

func TestImportJSON(t *testing.T) {
	src := setupTestDB(t)
	defer src.Close()
	populate(t, src)

	raw, err := ExportJSON(src)
	if err != nil {
		t.Fatal(err)
	}

	dst := setupTestDB(t)
	defer dst.Close()
	if err := ImportJSON(dst, raw); err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}

	p, err := dst.GetProfile()
	if err != nil || p.Email != "ada@example.com" {
		t.Errorf("profile not imported: %+v, %v", p, err)
	}
	if err := ImportJSON(dst, []byte("not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestMigrateData(t *testing.T) {
	src := setupTestDB(t)
	defer src.Close()
	populate(t, src)

	dst, err := Open(filepath.Join(t.TempDir(), "dst.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer dst.Close()

	summary, err := MigrateData(src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if !summary.Token || !summary.Profile || !summary.Onboarding || summary.Outbox != 1 {
		t.Errorf("unexpected summary: %+v", summary)
	}

	token, err := dst.GetToken()
	if err != nil || token != "secret-token" {
		t.Errorf("token not migrated: %q, %v", token, err)
	}
	entries, _ := dst.ListOutbox()
	if len(entries) != 1 {
		t.Errorf("expected 1 outbox entry, got %d", len(entries))
	}
}

func TestIsDirNonEmpty(t *testing.T) {
	dir := t.TempDir()

	empty, err := IsDirNonEmpty(dir)
	if err != nil || empty {
		t.Errorf("empty dir: got %v, %v", empty, err)
	}

	missing, err := IsDirNonEmpty(filepath.Join(dir, "missing"))
	if err != nil || missing {
		t.Errorf("missing dir: got %v, %v", missing, err)
	}

	db := setupTestDB(t)
	defer db.Close()
	nonEmpty, err := IsDirNonEmpty(filepath.Dir(db.Path()))
	if err != nil || !nonEmpty {
		t.Errorf("dir with db: got %v, %v", nonEmpty, err)
	}
}
