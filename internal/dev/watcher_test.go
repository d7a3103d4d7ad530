package dev

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcher_ReportsMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	changed := make(chan string, 8)

	w, err := NewWatcher([]string{dir}, []string{".yaml"}, 0, func(path string) {
		changed <- path
	}, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	target := filepath.Join(dir, "ru.yaml")
	if err := os.WriteFile(target, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-changed:
		if got != target {
			t.Errorf("changed = %q, want %q", got, target)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
	}
}

func TestWatcher_Debounce(t *testing.T) {
	dir := t.TempDir()
	changed := make(chan string, 8)

	w, err := NewWatcher([]string{dir}, []string{".yaml"}, 200*time.Millisecond, func(path string) {
		changed <- path
	}, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	target := filepath.Join(dir, "ru.yaml")
	for i := 0; i < 5; i++ {
		if err := os.WriteFile(target, []byte{byte('a' + i)}, 0644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
	}

	select {
	case extra := <-changed:
		t.Errorf("unexpected second change %q inside debounce window", extra)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcher_ReportsRemovedFiles(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "en.yaml")
	if err := os.WriteFile(target, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	changed := make(chan string, 8)

	w, err := NewWatcher([]string{dir}, []string{".yaml"}, 0, func(path string) {
		changed <- path
	}, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	if err := os.Remove(target); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-changed:
		if got != target {
			t.Errorf("changed = %q, want %q", got, target)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for removal")
	}
}

func TestWatcher_MissingDir(t *testing.T) {
	w, err := NewWatcher([]string{filepath.Join(t.TempDir(), "missing")}, nil, 0, nil, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	if err := w.Start(context.Background()); err == nil {
		t.Fatal("Start() error = nil, want error for missing dir")
	}
}
