package assets

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", p, err)
	}
	return p
}

func TestManager_SearchOrder(t *testing.T) {
	first, second := t.TempDir(), t.TempDir()
	writeFile(t, first, "albedo.png", "first")
	writeFile(t, second, "albedo.png", "second")
	writeFile(t, second, "normal.png", "only second")

	m := NewManager()
	for _, d := range []string{first, second} {
		if err := m.AddDir(d); err != nil {
			t.Fatal(err)
		}
	}

	data, err := m.Load("albedo.png")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(data) != "first" {
		t.Errorf("expected first dir to win, got %q", data)
	}

	p, err := m.Resolve("normal.png")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if p != filepath.Join(second, "normal.png") {
		t.Errorf("resolved to %s", p)
	}

	if _, err := m.Load("missing.obj"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestManager_AbsolutePath(t *testing.T) {
	dir := t.TempDir()
	abs := writeFile(t, dir, "mesh.obj", "v 0 0 0")

	m := NewManager()
	p, err := m.Resolve(abs)
	if err != nil || p != abs {
		t.Errorf("Resolve(%s) = %s, %v", abs, p, err)
	}
	if _, err := m.Resolve(filepath.Join(dir, "nope.obj")); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestManager_AddDirErrors(t *testing.T) {
	m := NewManager()
	if err := m.AddDir("/nonexistent/assets"); err == nil {
		t.Error("expected error for missing dir")
	}
	f := writeFile(t, t.TempDir(), "file.txt", "x")
	if err := m.AddDir(f); err == nil {
		t.Error("expected error for a file")
	}
	if len(m.Dirs()) != 0 {
		t.Errorf("failed adds should not register dirs: %v", m.Dirs())
	}
}

func TestManager_Cache(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "tex.tga", "v1")

	m := NewManager()
	if err := m.AddDir(dir); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Load("tex.tga"); err != nil {
		t.Fatal(err)
	}

	// Changes on disk are not seen until the cache is cleared.
	if err := os.WriteFile(p, []byte("v2"), 0644); err != nil {
		t.Fatal(err)
	}
	data, _ := m.Load("tex.tga")
	if string(data) != "v1" {
		t.Errorf("expected cached v1, got %q", data)
	}
	hits, misses := m.Cache().Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("stats = %d hits, %d misses, want 1, 1", hits, misses)
	}

	m.Cache().Clear()
	data, _ = m.Load("tex.tga")
	if string(data) != "v2" {
		t.Errorf("expected v2 after clear, got %q", data)
	}

	m.Close()
	if _, err := m.Load("tex.tga"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after Close, got %v", err)
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := NewCache()
	c.Set("a", []byte("x"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Get("a")
				c.Get("b")
			}
		}()
	}
	wg.Wait()

	hits, misses := c.Stats()
	if hits != 800 || misses != 800 {
		t.Errorf("stats = %d/%d, want 800/800", hits, misses)
	}
}
