// Package config loads renderer and tool settings.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics" toml:"graphics"`
	Render   RenderConfig   `yaml:"render" toml:"render"`
	Terrain  TerrainConfig  `yaml:"terrain" toml:"terrain"`
	Data     DataConfig     `yaml:"data" toml:"data"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width" toml:"width"`
	Height     int  `yaml:"height" toml:"height"`
	Fullscreen bool `yaml:"fullscreen" toml:"fullscreen"`
	VSync      bool `yaml:"vsync" toml:"vsync"`
}

// RenderConfig holds frame composition settings.
type RenderConfig struct {
	Tinting           bool   `yaml:"tinting" toml:"tinting"`
	BillboardCapacity int    `yaml:"billboard_capacity" toml:"billboard_capacity"`
	SkyTexture        string `yaml:"sky_texture" toml:"sky_texture"`
	SkyTextureSize    int    `yaml:"sky_texture_size" toml:"sky_texture_size"` // used when no sky texture loads
}

// TerrainConfig holds atlas packing settings.
type TerrainConfig struct {
	ReserveWater bool `yaml:"reserve_water" toml:"reserve_water"`
	WaterFrames  int  `yaml:"water_frames" toml:"water_frames"`
	Units        int  `yaml:"units" toml:"units"`
	MaxLayers    int  `yaml:"max_layers" toml:"max_layers"`
}

// DataConfig holds asset locations.
type DataConfig struct {
	AssetDirs []string `yaml:"asset_dirs" toml:"asset_dirs"` // searched last to first
	Level     string   `yaml:"level" toml:"level"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" toml:"level"`
	LogFile string `yaml:"log_file" toml:"log_file"`
}

// Default returns a Config with the stock renderer limits.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Render: RenderConfig{
			Tinting:           true,
			BillboardCapacity: 500,
			SkyTexture:        "sky",
			SkyTextureSize:    512,
		},
		Terrain: TerrainConfig{
			ReserveWater: true,
			WaterFrames:  7,
			Units:        8,
			MaxLayers:    256,
		},
		Data: DataConfig{
			AssetDirs: []string{"data"},
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate rejects settings the renderer cannot run with.
func (c *Config) Validate() error {
	checks := []struct {
		name  string
		value int
	}{
		{"graphics.width", c.Graphics.Width},
		{"graphics.height", c.Graphics.Height},
		{"render.billboard_capacity", c.Render.BillboardCapacity},
		{"render.sky_texture_size", c.Render.SkyTextureSize},
		{"terrain.units", c.Terrain.Units},
		{"terrain.max_layers", c.Terrain.MaxLayers},
	}
	for _, ch := range checks {
		if ch.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d: %w", ch.name, ch.value, ErrInvalid)
		}
	}
	if c.Terrain.Units > 8 {
		return fmt.Errorf("terrain.units is at most 8, got %d: %w", c.Terrain.Units, ErrInvalid)
	}
	if c.Terrain.MaxLayers > 256 {
		return fmt.Errorf("terrain.max_layers is at most 256, got %d: %w", c.Terrain.MaxLayers, ErrInvalid)
	}
	if c.Terrain.ReserveWater && c.Terrain.WaterFrames <= 0 {
		return fmt.Errorf("terrain.water_frames must be positive when reserving water: %w", ErrInvalid)
	}
	return nil
}
