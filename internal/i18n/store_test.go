package i18n

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCatalog(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestStore_Reload(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "ru.yaml", "locale: ru\nmessages:\n  users.title: \"Первый\"\n")

	store, err := NewStore(DirSource(dir))
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	if got, _ := store.Bundle().Message("ru", "users.title"); got != "Первый" {
		t.Fatalf("initial title = %q", got)
	}

	writeCatalog(t, dir, "ru.yaml", "locale: ru\nmessages:\n  users.title: \"Второй\"\n")
	if err := store.Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}
	if got, _ := store.Bundle().Message("ru", "users.title"); got != "Второй" {
		t.Errorf("reloaded title = %q, want Второй", got)
	}
}

func TestStore_ReloadKeepsBundleOnError(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "ru.yaml", "locale: ru\nmessages:\n  users.title: \"Первый\"\n")

	store, err := NewStore(DirSource(dir))
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	before := store.Bundle()

	writeCatalog(t, dir, "ru.yaml", "locale: [\n")
	if err := store.Reload(); err == nil {
		t.Fatal("Reload() error = nil, want error")
	}
	if store.Bundle() != before {
		t.Error("Reload() replaced bundle after a failed load")
	}
}

func TestDirSource_Missing(t *testing.T) {
	if _, err := NewStore(DirSource(filepath.Join(t.TempDir(), "missing"))); err == nil {
		t.Fatal("NewStore() error = nil, want error for missing dir")
	}
}

func TestEmbeddedSource(t *testing.T) {
	store, err := NewStore(EmbeddedSource())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	if store.Bundle().Base().String() != BaseLocale {
		t.Errorf("Base() = %v, want %s", store.Bundle().Base(), BaseLocale)
	}
}
