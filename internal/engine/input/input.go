// Package input turns SDL2 events and keyboard state into viewer commands
// and camera controls.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/framecore/internal/engine/camera"
)

// EventType classifies a polled event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
)

// Event is one processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
}

// Input polls SDL2 once per frame.
type Input struct {
	events []Event
	keys   []uint8
}

// New creates an input handler.
func New() *Input {
	return &Input{events: make([]Event, 0, 16)}
}

// Update drains the SDL event queue. It returns true when the viewer should
// quit, either from a window close or from Escape.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	quit := false

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			i.events = append(i.events, Event{Type: EventKeyDown, Key: e.Keysym.Scancode})
			if e.Keysym.Scancode == sdl.SCANCODE_ESCAPE {
				quit = true
			}
		}
	}

	i.keys = sdl.GetKeyboardState()
	return quit
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// Pressed reports whether a key went down during the last Update.
func (i *Input) Pressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}

// Resized returns the last resize of the frame, if any.
func (i *Input) Resized() (int, int, bool) {
	for j := len(i.events) - 1; j >= 0; j-- {
		if e := i.events[j]; e.Type == EventWindowResize {
			return e.Width, e.Height, true
		}
	}
	return 0, 0, false
}

func (i *Input) held(scancode sdl.Scancode) bool {
	return int(scancode) < len(i.keys) && i.keys[scancode] != 0
}

// bindings maps camera actions to keys: WASD moves, arrows turn and look,
// Q/E lower and raise, Shift goes faster.
var bindings = map[camera.Action][]sdl.Scancode{
	camera.MoveForward: {sdl.SCANCODE_W},
	camera.MoveBack:    {sdl.SCANCODE_S},
	camera.StrafeLeft:  {sdl.SCANCODE_A},
	camera.StrafeRight: {sdl.SCANCODE_D},
	camera.Sink:        {sdl.SCANCODE_Q},
	camera.Rise:        {sdl.SCANCODE_E},
	camera.TurnLeft:    {sdl.SCANCODE_LEFT},
	camera.TurnRight:   {sdl.SCANCODE_RIGHT},
	camera.LookUp:      {sdl.SCANCODE_UP},
	camera.LookDown:    {sdl.SCANCODE_DOWN},
	camera.Faster:      {sdl.SCANCODE_LSHIFT, sdl.SCANCODE_RSHIFT},
}

// Held reports whether any key bound to a is down.
func (i *Input) Held(a camera.Action) bool {
	for _, sc := range bindings[a] {
		if i.held(sc) {
			return true
		}
	}
	return false
}

// Controls maps the held keys to camera controls.
func (i *Input) Controls() camera.Controls {
	return camera.ControlsFrom(i)
}
