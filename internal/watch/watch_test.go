package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcherInvokesOnChangeAfterWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blueprint.yaml")
	if err := os.WriteFile(path, []byte("initial"), 0644); err != nil {
		t.Fatalf("seed file failed: %v", err)
	}

	var calls int32
	w, err := New(path, nil, func(ctx context.Context) {
		atomic.AddInt32(&calls, 1)
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte("updated"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for atomic.LoadInt32(&calls) == 0 {
		select {
		case <-deadline:
			cancel()
			t.Fatal("timed out waiting for onChange to fire after a write")
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	<-done
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blueprint.yaml")
	if err := os.WriteFile(path, []byte("initial"), 0644); err != nil {
		t.Fatalf("seed file failed: %v", err)
	}

	var calls int32
	w, err := New(path, nil, func(ctx context.Context) {
		atomic.AddInt32(&calls, 1)
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	other := filepath.Join(dir, "unrelated.txt")
	if err := os.WriteFile(other, []byte("noise"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	time.Sleep(DebounceDelay + 200*time.Millisecond)
	if atomic.LoadInt32(&calls) != 0 {
		t.Errorf("expected writes to unrelated files to be ignored, got %d calls", calls)
	}

	cancel()
	<-done
}

func TestWatcherRunExitsOnContextCancel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blueprint.yaml")
	if err := os.WriteFile(path, []byte("initial"), 0644); err != nil {
		t.Fatalf("seed file failed: %v", err)
	}

	w, err := New(path, nil, func(ctx context.Context) {})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err == nil {
			t.Error("expected Run to return the context's cancellation error")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("expected Run to exit promptly after context cancellation")
	}
}

func TestNewErrorsForMissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing-dir", "blueprint.yaml"), nil, func(context.Context) {})
	if err == nil {
		t.Error("expected New to fail when the blueprint's directory does not exist")
	}
}
