// Package frame drives the per-frame order of the composition core. Lights
// and environment change only between BeginFrame and Seal, brightness and
// tint queries run only after Seal, and billboards are cleared only once the
// previous frame has been drained.
package frame

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/framecore/internal/engine/billboard"
	"github.com/Faultbox/framecore/internal/engine/camera"
	"github.com/Faultbox/framecore/internal/engine/lighting"
	"github.com/Faultbox/framecore/internal/engine/sky"
	"github.com/Faultbox/framecore/internal/engine/tint"
	"github.com/Faultbox/framecore/pkg/math"
)

// ErrPhase is returned when an operation runs in the wrong frame phase.
var ErrPhase = errors.New("frame phase violation")

// Phase is where the context is in the frame.
type Phase int

const (
	// Idle is between frames.
	Idle Phase = iota
	// Building accepts light and environment changes.
	Building
	// Sealed accepts queries and billboards.
	Sealed
	// Draining is drawing the billboard list.
	Draining
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Building:
		return "building"
	case Sealed:
		return "sealed"
	case Draining:
		return "draining"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Options configures a Context.
type Options struct {
	BillboardCapacity int
	Tinting           bool
	Viewport          sky.Viewport
	SkyTextureWidth   int
	SkyTextureHeight  int
	Environment       tint.Environment
}

// Stats counts what the context has done.
type Stats struct {
	Frames         int
	Billboards     int // billboards accepted in the current or last frame
	Dropped        int // billboards refused in the current or last frame
	TotalDropped   int
	DroppedLights  int
	LastListLength int
}

// Context owns the light world, the resolver, the billboard list and the sky
// projector for one renderer. It is not safe for concurrent use.
type Context struct {
	log *zap.Logger

	world    *lighting.World
	acc      *lighting.Accumulator
	resolver *tint.Resolver
	list     *billboard.List
	sky      *sky.Projector
	tinting  bool

	phase  Phase
	cam    camera.State
	ticks  int
	stats  Stats
	warned bool
}

// New creates a context around an outdoor light world.
func New(opts Options, log *zap.Logger) *Context {
	if log == nil {
		log = zap.NewNop()
	}
	world := lighting.NewWorld()
	acc := lighting.NewAccumulator(world)
	return &Context{
		log:      log,
		world:    world,
		acc:      acc,
		resolver: tint.NewResolver(acc, opts.Environment),
		list:     billboard.NewList(opts.BillboardCapacity),
		sky:      sky.NewProjector(opts.Viewport, opts.SkyTextureWidth, opts.SkyTextureHeight),
		tinting:  opts.Tinting,
		cam:      camera.Default(),
	}
}

// Phase returns the current phase.
func (c *Context) Phase() Phase { return c.phase }

// Stats returns the counters.
func (c *Context) Stats() Stats { return c.stats }

// Camera returns the camera of the current frame.
func (c *Context) Camera() camera.State { return c.cam }

// Resolver exposes the tint resolver for read-only use by draw code.
func (c *Context) Resolver() tint.Source { return c.resolver }

func (c *Context) require(want Phase, op string) error {
	if c.phase != want {
		return fmt.Errorf("%s in %s phase, want %s: %w", op, c.phase, want, ErrPhase)
	}
	return nil
}

// SetIndoor switches the light world between indoor (non-nil) and outdoor.
// It is level data and may only change between frames.
func (c *Context) SetIndoor(in *lighting.Indoor) error {
	if err := c.require(Idle, "SetIndoor"); err != nil {
		return err
	}
	c.world.Indoor = in
	return nil
}

// SetViewport changes the sky rectangle. Allowed between frames only.
func (c *Context) SetViewport(vp sky.Viewport) error {
	if err := c.require(Idle, "SetViewport"); err != nil {
		return err
	}
	c.sky.SetViewport(vp)
	return nil
}

// BeginFrame starts a frame for a camera and the elapsed ticks, and clears
// the billboard list of the previous frame.
func (c *Context) BeginFrame(cam camera.State, ticks int) error {
	if err := c.require(Idle, "BeginFrame"); err != nil {
		return err
	}
	c.cam = cam
	c.ticks = ticks
	c.list.Reset()
	c.stats.Billboards = 0
	c.stats.Dropped = 0
	c.phase = Building
	return nil
}

// ClearLights removes all dynamic lights.
func (c *Context) ClearLights() error {
	if err := c.require(Building, "ClearLights"); err != nil {
		return err
	}
	c.world.Clear()
	return nil
}

// AddMobileLight adds a moving light. A full stack drops the light.
func (c *Context) AddMobileLight(l lighting.MobileLight) error {
	if err := c.require(Building, "AddMobileLight"); err != nil {
		return err
	}
	if !c.world.Mobile.Add(l) {
		c.stats.DroppedLights++
	}
	return nil
}

// AddStationaryLight adds a fixed light. A full stack drops the light.
func (c *Context) AddStationaryLight(l lighting.StationaryLight) error {
	if err := c.require(Building, "AddStationaryLight"); err != nil {
		return err
	}
	if !c.world.Stationary.Add(l) {
		c.stats.DroppedLights++
	}
	return nil
}

// SetEnvironment replaces the global shading state.
func (c *Context) SetEnvironment(env tint.Environment) error {
	if err := c.require(Building, "SetEnvironment"); err != nil {
		return err
	}
	c.resolver.Env = env
	return nil
}

// Seal freezes lights and environment and updates the sky for the frame
// camera.
func (c *Context) Seal() error {
	if err := c.require(Building, "Seal"); err != nil {
		return err
	}
	c.sky.Update(c.cam, c.ticks)
	c.phase = Sealed
	return nil
}

// LightLevel returns the brightness level at p.
func (c *Context) LightLevel(base, sectorID int, p math.Vec3) (int, error) {
	if err := c.require(Sealed, "LightLevel"); err != nil {
		return 0, err
	}
	return c.acc.LightLevel(base, sectorID, p), nil
}

// Color resolves a tint color.
func (c *Context) Color(maxDim, minDim int, distance float32, flow bool, bb *tint.Billboard) (uint32, error) {
	if err := c.require(Sealed, "Color"); err != nil {
		return 0, err
	}
	return c.resolver.Color(maxDim, minDim, distance, flow, bb), nil
}

// ShaderLights builds the terrain shader light slots around the camera.
func (c *Context) ShaderLights() (*lighting.ShaderLights, error) {
	if err := c.require(Sealed, "ShaderLights"); err != nil {
		return nil, err
	}
	env := c.resolver.Env
	return lighting.BuildShaderLights(c.world, c.cam.Position, env.Night, env.TorchPower), nil
}

// Sky returns the sky quad and its color.
func (c *Context) Sky() ([4]sky.Vertex, uint32, error) {
	if err := c.require(Sealed, "Sky"); err != nil {
		return [4]sky.Vertex{}, 0, err
	}
	return c.sky.Quad(), c.sky.Color(c.resolver, !c.world.IsIndoor()), nil
}

// AddSprite queues a sprite quad. A full list drops the sprite and counts it.
func (c *Context) AddSprite(soft billboard.SoftBillboard, sprite billboard.Sprite) error {
	if err := c.require(Sealed, "AddSprite"); err != nil {
		return err
	}
	_, err := c.list.AddSprite(soft, sprite, c.resolver, c.tinting)
	return c.accepted(err)
}

// AddFan queues a particle fan. A full list drops the fan and counts it.
func (c *Context) AddFan(verts []billboard.FanVertex, diffuse uint32) error {
	if err := c.require(Sealed, "AddFan"); err != nil {
		return err
	}
	slot, err := c.list.AddFan(verts, diffuse, c.cam.Far)
	if err == nil && slot < 0 {
		return nil
	}
	return c.accepted(err)
}

func (c *Context) accepted(err error) error {
	switch {
	case err == nil:
		c.stats.Billboards++
		return nil
	case errors.Is(err, billboard.ErrListFull):
		c.stats.Dropped++
		c.stats.TotalDropped++
		if !c.warned {
			c.warned = true
			c.log.Warn("billboard list full, dropping for the rest of the frame",
				zap.Int("capacity", c.list.Cap()))
		}
		return nil
	}
	return err
}

// Drain visits the billboards farthest first.
func (c *Context) Drain(yield func(i int, e *billboard.Entry)) error {
	if err := c.require(Sealed, "Drain"); err != nil {
		return err
	}
	c.phase = Draining
	c.list.Drain(yield)
	return nil
}

// EndFrame finishes a drained frame.
func (c *Context) EndFrame() error {
	if err := c.require(Draining, "EndFrame"); err != nil {
		return err
	}
	c.stats.Frames++
	c.stats.LastListLength = c.list.Len()
	c.phase = Idle
	return nil
}
