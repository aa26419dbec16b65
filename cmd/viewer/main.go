// viewer opens a window on a level description: it packs and uploads the
// terrain atlas, then runs the frame loop with the sky, the lit terrain and
// a billboard marker on every level light.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Faultbox/framecore/internal/assets"
	"github.com/Faultbox/framecore/internal/config"
	"github.com/Faultbox/framecore/internal/engine/billboard"
	"github.com/Faultbox/framecore/internal/engine/camera"
	"github.com/Faultbox/framecore/internal/engine/debug"
	"github.com/Faultbox/framecore/internal/engine/frame"
	"github.com/Faultbox/framecore/internal/engine/gpu"
	"github.com/Faultbox/framecore/internal/engine/input"
	"github.com/Faultbox/framecore/internal/engine/lighting"
	"github.com/Faultbox/framecore/internal/engine/sky"
	"github.com/Faultbox/framecore/internal/engine/terrain"
	"github.com/Faultbox/framecore/internal/engine/texture"
	"github.com/Faultbox/framecore/internal/engine/water"
	"github.com/Faultbox/framecore/internal/engine/window"
	"github.com/Faultbox/framecore/internal/level"
	"github.com/Faultbox/framecore/internal/logger"
	"github.com/Faultbox/framecore/pkg/math"
)

const (
	windowTitle = "framecore viewer"
	// markerTexture is the optional sprite drawn over each light.
	markerTexture = "marker"
	markerSize    = 32
	// markerBase is the dimming level a marker starts from before lights.
	markerBase = 16
	// eyeHeight keeps the camera above the terrain.
	eyeHeight = 256
)

// sunDir is the direction sunlight travels, down and to the north-east.
var sunDir = math.Vec3{X: -0.3, Y: -0.4, Z: -0.85}.Normalize()

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
		logger.Error("viewer failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("viewer closed normally")
}

type viewer struct {
	log    *zap.Logger
	cfg    *config.Config
	desc   *level.Description
	win    *window.Window
	in     *input.Input
	screen *gpu.Screen
	terr   *gpu.Terrain
	fc     *frame.Context
	water  water.Animation
	shots  *debug.Screenshots

	cam       camera.State
	skyTex    uint32
	markerTex uint32
	width     int
	height    int
}

func run(cfg *config.Config) error {
	log := logger.For(logger.Viewer)

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

	packer := terrain.NewPacker(terrain.Options{
		ReserveWater: cfg.Terrain.ReserveWater,
		WaterFrames:  cfg.Terrain.WaterFrames,
		Units:        cfg.Terrain.Units,
		MaxLayers:    cfg.Terrain.MaxLayers,
	}, logger.For(logger.Atlas))
	atlas, err := packer.Pack(desc, mgr)
	if err != nil {
		return fmt.Errorf("level %q: %w", desc.Name, err)
	}
	defer atlas.Release()

	win, err := window.New(window.Config{
		Title:      windowTitle + " - " + desc.Name,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	}, logger.For(logger.Window))
	if err != nil {
		return err
	}
	defer win.Close()

	terr, err := gpu.NewTerrain(logger.For(logger.GPU))
	if err != nil {
		return err
	}
	defer terr.Destroy()
	if err := atlas.Upload(mgr, terr); err != nil {
		return err
	}

	width, height := win.Size()
	screen, err := gpu.NewScreen(width, height)
	if err != nil {
		return err
	}
	defer screen.Destroy()

	v := &viewer{
		log:    log,
		cfg:    cfg,
		desc:   desc,
		win:    win,
		in:     input.New(),
		screen: screen,
		terr:   terr,
		shots:  debug.NewScreenshots("screenshots", "viewer"),
		width:  width,
		height: height,
	}

	skyW, skyH := cfg.Render.SkyTextureSize, cfg.Render.SkyTextureSize
	if img, err := mgr.Texture(cfg.Render.SkyTexture); err == nil {
		skyW, skyH = img.Width, img.Height
		if v.skyTex, err = gpu.Texture2D(img); err != nil {
			return err
		}
		defer gpu.DeleteTexture(v.skyTex)
	} else {
		log.Warn("no sky texture, drawing a flat sky", zap.String("name", cfg.Render.SkyTexture), zap.Error(err))
	}

	if img, err := mgr.Texture(markerTexture); err == nil {
		keyed := texture.NewImage(img.Width, img.Height)
		copy(keyed.Pixels, img.Pixels)
		texture.Magenta.Apply(keyed)
		if v.markerTex, err = gpu.Texture2D(keyed); err != nil {
			return err
		}
		defer gpu.DeleteTexture(v.markerTex)
	}

	v.fc = frame.New(frame.Options{
		BillboardCapacity: cfg.Render.BillboardCapacity,
		Tinting:           cfg.Render.Tinting,
		Viewport:          viewport(width, height),
		SkyTextureWidth:   skyW,
		SkyTextureHeight:  skyH,
		Environment:       desc.TintEnvironment(),
	}, logger.For(logger.Frame))
	if err := v.fc.SetIndoor(desc.IndoorLights()); err != nil {
		return err
	}

	if cfg.Terrain.ReserveWater {
		v.water = water.NewAnimation(cfg.Terrain.WaterFrames, desc.Environment.WaterSpeed)
	}

	v.cam = camera.Default()
	v.resize(width, height)
	v.cam.Position = math.Vec3{Z: desc.Heightmap().HeightAt(0, 0) + eyeHeight}

	return v.loop()
}

func viewport(width, height int) sky.Viewport {
	return sky.Viewport{
		X1:      float32(width),
		Y1:      float32(height),
		CenterX: float32(width) / 2,
		CenterY: float32(height) / 2,
	}
}

func (v *viewer) resize(width, height int) {
	v.width, v.height = width, height
	v.screen.Resize(width, height)
	v.cam.Aspect = float32(width) / float32(max(height, 1))
	v.cam.ViewPlaneDist = camera.ViewPlaneDistance(v.cam.FOV, float32(height))
}

func (v *viewer) loop() error {
	last := window.Ticks()
	fpsStart := time.Now()
	frames := 0

	for !v.in.Update() {
		if w, h, ok := v.in.Resized(); ok {
			v.resize(w, h)
			if err := v.fc.SetViewport(viewport(w, h)); err != nil {
				return err
			}
		}
		if v.in.Pressed(sdl.SCANCODE_N) {
			v.desc.Environment.Night = !v.desc.Environment.Night
			v.log.Info("night toggled", zap.Bool("night", v.desc.Environment.Night))
		}
		if v.in.Pressed(sdl.SCANCODE_F3) {
			if logger.Level() == zapcore.DebugLevel {
				logger.SetLevel(v.cfg.Logging.Level)
			} else {
				logger.SetLevel("debug")
			}
			v.log.Info("log level changed", zap.Stringer("level", logger.Level()))
		}

		now := window.Ticks()
		dt := float32(now-last) / 1000
		last = now

		v.cam.Apply(v.in.Controls(), dt)
		if ground := v.desc.Heightmap().HeightAt(v.cam.Position.X, v.cam.Position.Y) + eyeHeight; v.cam.Position.Z < ground {
			v.cam.Position.Z = ground
		}

		if err := v.frame(int(now)); err != nil {
			return err
		}
		if v.in.Pressed(sdl.SCANCODE_F12) {
			path, err := v.shots.Save(gpu.ReadPixels(v.width, v.height), v.width, v.height)
			if err != nil {
				v.log.Warn("screenshot failed", zap.Error(err))
			} else {
				v.log.Info("screenshot saved", zap.String("path", path))
			}
		}
		v.win.SwapBuffers()

		frames++
		if elapsed := time.Since(fpsStart); elapsed >= time.Second {
			st := v.fc.Stats()
			v.log.Debug("frame stats",
				zap.Int("frames", st.Frames),
				zap.Int("billboards", st.Billboards),
				zap.Int("total_dropped", st.TotalDropped),
				zap.Int("dropped_lights", st.DroppedLights))
			v.win.SetTitle(fmt.Sprintf("%s - %s - %.0f fps - %d billboards (%d dropped)",
				windowTitle, v.desc.Name, float64(frames)/elapsed.Seconds(), st.Billboards, st.Dropped))
			frames = 0
			fpsStart = time.Now()
		}
	}
	return nil
}

// frame runs one BeginFrame to EndFrame cycle and issues the draw calls.
func (v *viewer) frame(ticks int) error {
	fc := v.fc
	if err := fc.BeginFrame(v.cam, ticks); err != nil {
		return err
	}

	env := v.desc.TintEnvironment()
	if err := fc.SetEnvironment(env); err != nil {
		return err
	}
	if err := fc.ClearLights(); err != nil {
		return err
	}
	lights := v.desc.StationaryLights()
	for _, l := range lights {
		if err := fc.AddStationaryLight(l); err != nil {
			return err
		}
	}
	if err := fc.Seal(); err != nil {
		return err
	}

	gl.Viewport(0, 0, int32(v.width), int32(v.height))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	quad, skyColor, err := fc.Sky()
	if err != nil {
		return err
	}
	v.screen.DrawSky(quad, skyColor, v.skyTex)

	slots, err := fc.ShaderLights()
	if err != nil {
		return err
	}
	sun := v.desc.Sun()
	v.terr.SetWaterFrame(v.water.Frame(ticks))
	v.terr.Render(v.cam.ViewProj(), sunDir, sun, slots)

	for i, l := range lights {
		if err := v.addMarker(i, l); err != nil {
			return err
		}
	}

	cam := fc.Camera()
	v.screen.BeginBillboards()
	err = fc.Drain(func(_ int, e *billboard.Entry) {
		v.screen.DrawBillboard(e, cam.Near, cam.Far, cam.Aspect)
	})
	v.screen.EndBillboards()
	if err != nil {
		return err
	}
	return fc.EndFrame()
}

// addMarker queues a sprite over a light, lit by the accumulated lights at
// that point.
func (v *viewer) addMarker(id int, l lighting.StationaryLight) error {
	x, y, depth, ok := v.cam.Project(l.Position, float32(v.width), float32(v.height))
	if !ok {
		return nil
	}
	dim, err := v.fc.LightLevel(markerBase, 0, l.Position)
	if err != nil {
		return err
	}
	scale := v.cam.ViewPlaneDist / depth * 4
	return v.fc.AddSprite(billboard.SoftBillboard{
		ScreenX:      x,
		ScreenY:      y,
		ScreenZ:      depth,
		ProjX:        scale,
		ProjY:        scale,
		DimmingLevel: uint32(dim),
		TintColor:    l.Color,
		ObjectID:     id,
		ParentID:     id,
	}, billboard.Sprite{
		BufferWidth:  markerSize,
		BufferHeight: markerSize,
		AreaWidth:    markerSize,
		AreaHeight:   markerSize,
		Texture:      v.markerTex,
	})
}
