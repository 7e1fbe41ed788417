package stagecraft

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRunConfig(t *testing.T) {
	cfg := DefaultRunConfig()
	if cfg.Width != DefaultWidth || cfg.Height != DefaultHeight || cfg.TPS != DefaultTPS {
		t.Errorf("size %dx%d tps %d", cfg.Width, cfg.Height, cfg.TPS)
	}
	if cfg.Demo != "solar" || cfg.ThemeStore == "" {
		t.Errorf("demo %q theme store %q", cfg.Demo, cfg.ThemeStore)
	}
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stagecraft.yaml")
	src := "title: tank demo\nwidth: 1280\ndebug: true\nmodel_path: models/bot.glb\n"
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Title != "tank demo" || cfg.Width != 1280 || !cfg.Debug || cfg.ModelPath != "models/bot.glb" {
		t.Errorf("overlaid fields = %+v", cfg)
	}
	if cfg.Height != DefaultHeight || cfg.TPS != DefaultTPS {
		t.Errorf("defaults lost: height %d tps %d", cfg.Height, cfg.TPS)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("width: [1, 2]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Error("expected a parse error")
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := DefaultRunConfig()
	cfg.Demo = "mixer"
	cfg.TPS = 30
	if err := SaveConfig(path, cfg); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	got, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if *got != *cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}
