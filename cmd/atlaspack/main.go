// atlaspack packs the terrain textures of a level description into texture
// array slots without opening a window, and reports or dumps the result.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/Faultbox/framecore/internal/assets"
	"github.com/Faultbox/framecore/internal/config"
	"github.com/Faultbox/framecore/internal/engine/terrain"
	"github.com/Faultbox/framecore/internal/engine/texture"
	"github.com/Faultbox/framecore/internal/level"
	"github.com/Faultbox/framecore/internal/logger"
)

var (
	flagDump = flag.String("dump", "", "Write the slot table as YAML to this file (- for stdout)")
	flagFit  = flag.Int("fit", 0, "Resize every tile texture to NxN before packing")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("atlas pack failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if cfg.Data.Level == "" {
		return fmt.Errorf("no level file, set data.level or pass -level")
	}
	desc, err := level.Load(cfg.Data.Level)
	if err != nil {
		return err
	}

	mgr := assets.NewManager()
	mgr.SetLogger(logger.For(logger.Assets))
	defer mgr.Close()
	for _, dir := range cfg.Data.AssetDirs {
		if err := mgr.AddDir(dir); err != nil {
			return err
		}
	}

	src := terrain.NewFitSource(mgr, *flagFit)
	packer := terrain.NewPacker(PackOptions(cfg.Terrain), logger.For(logger.Atlas))
	atlas, err := packer.Pack(desc, src)
	if err != nil {
		return fmt.Errorf("level %q: %w", desc.Name, err)
	}
	defer atlas.Release()

	// Dry-run upload: checks every texture against its unit and sizes the
	// arrays the GPU would allocate.
	var up sizer
	if err := atlas.Upload(src, &up); err != nil {
		return err
	}

	report(os.Stdout, desc.Name, atlas, up)

	hits, misses := mgr.Stats()
	logger.For(logger.Assets).Info("texture cache", zap.Int("hits", hits), zap.Int("misses", misses))

	switch *flagDump {
	case "":
		return nil
	case "-":
		return level.WriteSlotDump(os.Stdout, desc.Name, atlas)
	default:
		f, err := os.Create(*flagDump)
		if err != nil {
			return err
		}
		if err := level.WriteSlotDump(f, desc.Name, atlas); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
}

// PackOptions converts the terrain config section.
func PackOptions(c config.TerrainConfig) terrain.Options {
	return terrain.Options{
		ReserveWater: c.ReserveWater,
		WaterFrames:  c.WaterFrames,
		Units:        c.Units,
		MaxLayers:    c.MaxLayers,
	}
}

func report(w io.Writer, name string, a *terrain.Atlas, up sizer) {
	fmt.Fprintf(w, "Level:    %s\n", name)
	fmt.Fprintf(w, "Textures: %d\n", a.Slots.Len())
	fmt.Fprintf(w, "Vertices: %d\n", len(a.Vertices))
	fmt.Fprintf(w, "Layers:   %d uploaded\n", up.layers)
	fmt.Fprintf(w, "Texels:   %.2f MB\n\n", float64(up.bytes)/(1024*1024))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "UNIT\tDIM\tLAYERS")
	for _, s := range a.Stats() {
		if s.Layers == 0 {
			continue
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\n", s.Unit, s.Dim, s.Layers)
	}
	tw.Flush()
}

// sizer is an Uploader that only counts what would be uploaded.
type sizer struct {
	bytes    int64
	layers   int
	vertices int
}

func (s *sizer) AllocArray(_, dim, layers int) error {
	s.bytes += int64(dim) * int64(dim) * int64(layers) * 4
	return nil
}

func (s *sizer) UploadLayer(_, _ int, _ *texture.Image) error {
	s.layers++
	return nil
}

func (s *sizer) CompleteArray(int) error { return nil }

func (s *sizer) UploadVertices(v []terrain.Vertex) error {
	s.vertices = len(v)
	return nil
}
