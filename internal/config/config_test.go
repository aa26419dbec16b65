package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 1280 || cfg.Graphics.Height != 720 {
		t.Errorf("expected 1280x720, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Graphics.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Render.Tinting {
		t.Error("expected tinting to be on by default")
	}
	if cfg.Render.BillboardCapacity != 500 {
		t.Errorf("expected billboard capacity 500, got %d", cfg.Render.BillboardCapacity)
	}
	if !cfg.Terrain.ReserveWater || cfg.Terrain.WaterFrames != 7 {
		t.Errorf("expected 7 reserved water frames, got %+v", cfg.Terrain)
	}
	if cfg.Terrain.Units != 8 || cfg.Terrain.MaxLayers != 256 {
		t.Errorf("expected 8 units of 256 layers, got %+v", cfg.Terrain)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoadFromFileYAML(t *testing.T) {
	path := writeFile(t, "framecore.yaml", `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

render:
  tinting: false
  billboard_capacity: 1000
  sky_texture: "dusk"

terrain:
  reserve_water: false
  units: 4
  max_layers: 64

data:
  asset_dirs: ["base", "patch"]
  level: "levels/prontera.yaml"

logging:
  level: "debug"
  log_file: "framecore.log"
`)

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || !cfg.Graphics.Fullscreen || cfg.Graphics.VSync {
		t.Errorf("graphics not loaded: %+v", cfg.Graphics)
	}
	if cfg.Render.Tinting || cfg.Render.BillboardCapacity != 1000 || cfg.Render.SkyTexture != "dusk" {
		t.Errorf("render not loaded: %+v", cfg.Render)
	}
	if cfg.Render.SkyTextureSize != 512 {
		t.Errorf("expected default sky texture size to survive, got %d", cfg.Render.SkyTextureSize)
	}
	if cfg.Terrain.ReserveWater || cfg.Terrain.Units != 4 || cfg.Terrain.MaxLayers != 64 {
		t.Errorf("terrain not loaded: %+v", cfg.Terrain)
	}
	if len(cfg.Data.AssetDirs) != 2 || cfg.Data.AssetDirs[1] != "patch" {
		t.Errorf("expected asset dirs [base patch], got %v", cfg.Data.AssetDirs)
	}
	if cfg.Data.Level != "levels/prontera.yaml" {
		t.Errorf("expected level path, got %q", cfg.Data.Level)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "framecore.log" {
		t.Errorf("logging not loaded: %+v", cfg.Logging)
	}
}

func TestLoadFromFileTOML(t *testing.T) {
	path := writeFile(t, "framecore.toml", `
[graphics]
width = 800
height = 600

[render]
billboard_capacity = 64

[data]
asset_dirs = ["assets"]
`)

	cfg := Default()
	if err := loadFromFile(cfg, path); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Graphics.Width != 800 || cfg.Graphics.Height != 600 {
		t.Errorf("expected 800x600, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if cfg.Render.BillboardCapacity != 64 {
		t.Errorf("expected capacity 64, got %d", cfg.Render.BillboardCapacity)
	}
	if !cfg.Render.Tinting {
		t.Error("expected tinting default to survive a partial file")
	}
	if len(cfg.Data.AssetDirs) != 1 || cfg.Data.AssetDirs[0] != "assets" {
		t.Errorf("expected asset dirs [assets], got %v", cfg.Data.AssetDirs)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad.yaml", "graphics:\n  width: not a number\n  invalid syntax here\n"},
		{"bad.toml", "[graphics\nwidth = 1\n"},
		{"config.json", "{}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := loadFromFile(Default(), writeFile(t, tt.name, tt.content)); err == nil {
				t.Errorf("expected error loading %s, got nil", tt.name)
			}
		})
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/framecore.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }},
		{"zero capacity", func(c *Config) { c.Render.BillboardCapacity = 0 }},
		{"negative sky size", func(c *Config) { c.Render.SkyTextureSize = -1 }},
		{"no units", func(c *Config) { c.Terrain.Units = 0 }},
		{"too many units", func(c *Config) { c.Terrain.Units = 9 }},
		{"too many layers", func(c *Config) { c.Terrain.MaxLayers = 257 }},
		{"water without frames", func(c *Config) { c.Terrain.WaterFrames = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}

	cfg := Default()
	cfg.Terrain.ReserveWater = false
	cfg.Terrain.WaterFrames = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("water frames are irrelevant without reservation, got %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	t.Setenv("HOME", filepath.Join(tmpDir, "home"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "framecore.toml"), []byte("[graphics]\nwidth = 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}
	if path := findConfigFile(); filepath.Base(path) != "framecore.toml" {
		t.Errorf("expected to find framecore.toml, got %q", path)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "assets flag",
			setup: func() { *flagAssets = "/srv/textures" },
			verify: func(t *testing.T, cfg *Config) {
				dirs := cfg.Data.AssetDirs
				if len(dirs) != 2 || dirs[1] != "/srv/textures" {
					t.Errorf("expected the flag directory searched first, got %v", dirs)
				}
			},
			teardown: func() { *flagAssets = "" },
		},
		{
			name:  "level flag",
			setup: func() { *flagLevel = "izlude.yaml" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Data.Level != "izlude.yaml" {
					t.Errorf("expected level izlude.yaml, got %q", cfg.Data.Level)
				}
			},
			teardown: func() { *flagLevel = "" },
		},
		{
			name:  "fullscreen then windowed",
			setup: func() { *flagFullscreen = true; *flagWindowed = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to win when both flags are set")
				}
			},
			teardown: func() { *flagFullscreen = false; *flagWindowed = false },
		},
		{
			name:  "width and height flags",
			setup: func() { *flagWidth = 2560; *flagHeight = 1440 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() { *flagWidth = 0; *flagHeight = 0 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	path := writeFile(t, "framecore.yaml", "graphics:\n  width: 1600\n  height: 900\n")

	*flagConfig = path
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	*flagConfig = writeFile(t, "framecore.yaml", "render:\n  billboard_capacity: 0\n")
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "framecore.yaml")

	cfg := Default()
	cfg.Render.BillboardCapacity = 123
	cfg.Data.Level = "alberta.yaml"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	got := Default()
	if err := loadFromFile(got, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if got.Render.BillboardCapacity != 123 || got.Data.Level != "alberta.yaml" {
		t.Errorf("saved values lost: %+v %+v", got.Render, got.Data)
	}
}
