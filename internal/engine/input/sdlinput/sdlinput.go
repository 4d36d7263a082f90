// Package sdlinput reads keyboard and window events from SDL2.
package sdlinput

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/vbag/internal/engine/input"
)

var scancodes = map[input.Key]sdl.Scancode{
	input.Key0:          sdl.SCANCODE_0,
	input.Key1:          sdl.SCANCODE_1,
	input.Key2:          sdl.SCANCODE_2,
	input.Key3:          sdl.SCANCODE_3,
	input.Key4:          sdl.SCANCODE_4,
	input.Key5:          sdl.SCANCODE_5,
	input.Key6:          sdl.SCANCODE_6,
	input.Key7:          sdl.SCANCODE_7,
	input.Key8:          sdl.SCANCODE_8,
	input.Key9:          sdl.SCANCODE_9,
	input.KeySpace:      sdl.SCANCODE_SPACE,
	input.KeyEscape:     sdl.SCANCODE_ESCAPE,
	input.KeyEnter:      sdl.SCANCODE_RETURN,
	input.KeyUp:         sdl.SCANCODE_UP,
	input.KeyDown:       sdl.SCANCODE_DOWN,
	input.KeyLeft:       sdl.SCANCODE_LEFT,
	input.KeyRight:      sdl.SCANCODE_RIGHT,
	input.KeyLeftShift:  sdl.SCANCODE_LSHIFT,
	input.KeyRightShift: sdl.SCANCODE_RSHIFT,
}

var keys = make(map[sdl.Scancode]input.Key)

func init() {
	// SDL lays out letter scancodes contiguously from A.
	for k := input.KeyA; k <= input.KeyZ; k++ {
		scancodes[k] = sdl.SCANCODE_A + sdl.Scancode(k-input.KeyA)
	}
	for k, sc := range scancodes {
		keys[sc] = k
	}
}

// Input polls SDL events once per frame and answers keyboard queries from
// SDL's key state array.
type Input struct {
	events []input.Event
}

// New creates an input handler. SDL must already be initialised.
func New() *Input {
	return &Input{
		events: make([]input.Event, 0, 16),
	}
}

// Update drains the SDL event queue. Returns true if the user asked to quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, input.Event{Type: input.EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, input.Event{
					Type:   input.EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			k, ok := keys[e.Keysym.Scancode]
			if !ok || e.Repeat != 0 {
				continue
			}
			switch e.Type {
			case sdl.KEYDOWN:
				i.events = append(i.events, input.Event{Type: input.EventKeyDown, Key: k})
			case sdl.KEYUP:
				i.events = append(i.events, input.Event{Type: input.EventKeyUp, Key: k})
			}
		}
	}
	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []input.Event {
	return i.events
}

// IsKeyDown implements input.Keyboard.
func (i *Input) IsKeyDown(k input.Key) bool {
	sc, ok := scancodes[k]
	if !ok {
		return false
	}
	state := sdl.GetKeyboardState()
	return int(sc) < len(state) && state[sc] != 0
}
