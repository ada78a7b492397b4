package config

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/caleb4cc-oss/crawfordmediaworks/pkg/embedded"
)

func initTestFS(t *testing.T) {
	t.Helper()
	embedded.Init(fstest.MapFS{
		"data/fields/hero.yaml":    {Data: []byte(heroYAML)},
		"data/fields/streaks.yaml": {Data: []byte("name: streaks\ncount: 8\nrender: { shape: blob }\n")},
		"data/showcase.yaml": {Data: []byte(`
cardWidth: 300
cardHeight: 500
gap: 20
speed: 0.5
items:
  - { id: 1, title: A, url: "https://example.com/a.mp4" }
  - { id: 2, title: B, kind: embed, markup: "<iframe></iframe>" }
`)},
		"data/clients.yaml": {Data: []byte(`
locations:
  - { label: Dubai, country: United Arab Emirates, x: 58, y: 33.5 }
`)},
		"data/bad_clients.yaml": {Data: []byte(`
locations:
  - { label: Nowhere, x: 120, y: 10 }
`)},
	})
}

func TestFieldConfigManagerLoadsEmbedded(t *testing.T) {
	initTestFS(t)

	m, err := NewFieldConfigManager(DefaultFieldDir)
	if err != nil {
		t.Fatalf("NewFieldConfigManager() error: %v", err)
	}

	names := m.Names()
	if len(names) != 2 || names[0] != "hero" || names[1] != "streaks" {
		t.Fatalf("Names() = %v", names)
	}

	v, ok := m.Get("hero")
	if !ok {
		t.Fatal("hero variant missing")
	}
	// Get 返回副本
	v.Count = 1
	v.Pointer.Glow.Stops[0].Alpha = 1
	again, _ := m.Get("hero")
	if again.Count != 80 || again.Pointer.Glow.Stops[0].Alpha != 0.2 {
		t.Error("Get should return an independent copy")
	}

	if _, ok := m.Get("missing"); ok {
		t.Error("Get(missing) should fail")
	}
}

func TestFieldConfigManagerEmptyDir(t *testing.T) {
	initTestFS(t)
	if _, err := NewFieldConfigManager("data/nothing"); err == nil {
		t.Error("expected error for directory without variants")
	}
}

func TestFieldConfigManagerOverrideDir(t *testing.T) {
	initTestFS(t)
	m, err := NewFieldConfigManager(DefaultFieldDir)
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "hero.yaml"), []byte("name: hero\ncount: 12\n"), 0o644)
	os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("name: [\n"), 0o644)
	os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644)

	loaded, err := m.LoadOverrideDir(dir)
	if err != nil {
		t.Fatalf("LoadOverrideDir() error: %v", err)
	}
	if loaded != 1 {
		t.Errorf("loaded = %d, want 1", loaded)
	}
	v, _ := m.Get("hero")
	if v.Count != 12 {
		t.Errorf("override count = %d, want 12", v.Count)
	}
}

func TestLoadShowcaseConfig(t *testing.T) {
	initTestFS(t)
	cfg, err := LoadShowcaseConfig("data/showcase.yaml")
	if err != nil {
		t.Fatalf("LoadShowcaseConfig() error: %v", err)
	}
	if cfg.IntervalMs != 30 {
		t.Errorf("IntervalMs default = %d, want 30", cfg.IntervalMs)
	}
	if cfg.Items[0].Kind != ShowcaseVideo {
		t.Errorf("Kind default = %q, want video", cfg.Items[0].Kind)
	}
	if cfg.Items[1].Kind != ShowcaseEmbed || cfg.Items[1].Markup == "" {
		t.Errorf("embed item not parsed: %+v", cfg.Items[1])
	}
}

func TestLoadClientsConfig(t *testing.T) {
	initTestFS(t)
	cfg, err := LoadClientsConfig("data/clients.yaml")
	if err != nil {
		t.Fatalf("LoadClientsConfig() error: %v", err)
	}
	if cfg.AspectRatio != 2 {
		t.Errorf("AspectRatio default = %v, want 2", cfg.AspectRatio)
	}
	if cfg.Locations[0].XPercent != 58 || cfg.Locations[0].YPercent != 33.5 {
		t.Errorf("location = %+v", cfg.Locations[0])
	}

	if _, err := LoadClientsConfig("data/bad_clients.yaml"); err == nil {
		t.Error("expected out-of-range error")
	}
}
