// Package lighting accumulates dynamic light sources into brightness levels and
// prepares point light slots for the terrain shader.
package lighting

import (
	"github.com/Faultbox/framecore/pkg/math"
)

// Brightness levels are dimming steps; 0 is fully lit, 31 is darkest.
const (
	LevelMin = 0
	LevelMax = 31
)

// Stack capacities used by NewWorld.
const (
	MaxMobileLights     = 400
	MaxStationaryLights = 400
)

// SectorLightInactive marks a sector light that must not contribute.
const SectorLightInactive uint16 = 0x08

// White is the packed RGB color of uncolored lights.
const White uint32 = 0xFFFFFF

// MobileLight is a short-lived light attached to a spell, projectile or actor.
type MobileLight struct {
	Position math.Vec3
	Radius   float32
	Color    uint32 // packed 0xRRGGBB
}

// StationaryLight is a light placed by a decoration or map event.
type StationaryLight struct {
	Position math.Vec3
	Radius   float32
	Color    uint32
}

// SectorLight is a static light bound to an indoor sector.
type SectorLight struct {
	Position   math.Vec3
	Radius     float32
	Color      uint32
	Attributes uint16
}

// Inactive reports whether the light has its inactive bit set.
func (l SectorLight) Inactive() bool {
	return l.Attributes&SectorLightInactive != 0
}

// NewMobileLight returns a white mobile light.
func NewMobileLight(pos math.Vec3, radius float32) MobileLight {
	return MobileLight{Position: pos, Radius: radius, Color: White}
}

// NewStationaryLight returns a white stationary light.
func NewStationaryLight(pos math.Vec3, radius float32) StationaryLight {
	return StationaryLight{Position: pos, Radius: radius, Color: White}
}

// Sector is an indoor sector: its ambient floor and the lights bound to it.
type Sector struct {
	MinAmbient int   // minimum ambient dimming level
	Lights     []int // indices into Indoor.Lights
}

// Indoor holds the static light data of an indoor level.
type Indoor struct {
	Sectors []Sector
	Lights  []SectorLight
}

// SectorLights returns the lights bound to sectorID. Unknown sectors have none.
func (in *Indoor) SectorLights(sectorID int) []int {
	if in == nil || sectorID < 0 || sectorID >= len(in.Sectors) {
		return nil
	}
	return in.Sectors[sectorID].Lights
}

// MinAmbient returns the minimum ambient level of a sector, 0 if unknown.
func (in *Indoor) MinAmbient(sectorID int) int {
	if in == nil || sectorID < 0 || sectorID >= len(in.Sectors) {
		return 0
	}
	return in.Sectors[sectorID].MinAmbient
}

// World groups the three light collections read by the accumulator.
// Indoor is nil on outdoor levels.
type World struct {
	Mobile     *Stack[MobileLight]
	Stationary *Stack[StationaryLight]
	Indoor     *Indoor
}

// NewWorld creates an outdoor light world with the default stack capacities.
func NewWorld() *World {
	return &World{
		Mobile:     NewStack[MobileLight](MaxMobileLights),
		Stationary: NewStack[StationaryLight](MaxStationaryLights),
	}
}

// IsIndoor reports whether the current level is indoor.
func (w *World) IsIndoor() bool {
	return w.Indoor != nil
}

// Clear removes all dynamic lights. Sector lights are level data and stay.
func (w *World) Clear() {
	w.Mobile.Clear()
	w.Stationary.Clear()
}
