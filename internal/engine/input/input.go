// Package input defines the keyboard and window events the engine reacts to.
// Backends translate their native events into these types.
package input

import (
	"strings"
	"sync"
)

// Key identifies a keyboard key independently of the backend.
type Key int

const (
	KeyUnknown Key = iota

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeySpace
	KeyEscape
	KeyEnter
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyLeftShift
	KeyRightShift

	keyCount
)

var specialNames = map[Key]string{
	KeySpace:      "space",
	KeyEscape:     "escape",
	KeyEnter:      "enter",
	KeyUp:         "up",
	KeyDown:       "down",
	KeyLeft:       "left",
	KeyRight:      "right",
	KeyLeftShift:  "lshift",
	KeyRightShift: "rshift",
}

// String returns the lower-case key name, e.g. "a", "7" or "escape".
func (k Key) String() string {
	switch {
	case k >= KeyA && k <= KeyZ:
		return string(rune('a' + int(k-KeyA)))
	case k >= Key0 && k <= Key9:
		return string(rune('0' + int(k-Key0)))
	}
	if name, ok := specialNames[k]; ok {
		return name
	}
	return "unknown"
}

// ParseKey returns the key with the given name, case-insensitively.
func ParseKey(name string) (Key, bool) {
	name = strings.ToLower(name)
	for k := KeyA; k < keyCount; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return KeyUnknown, false
}

// Keyboard reports which keys are currently held.
type Keyboard interface {
	IsKeyDown(k Key) bool
}

// EventType is the kind of an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
)

// Event is a backend-neutral input event.
type Event struct {
	Type   EventType
	Key    Key
	Width  int
	Height int
}

// Pressed reports whether events contain a key-down for k.
func Pressed(events []Event, k Key) bool {
	for _, e := range events {
		if e.Type == EventKeyDown && e.Key == k {
			return true
		}
	}
	return false
}

// Static is a Keyboard whose state is set by the caller. It is used by
// headless runs and tests. The zero value has no keys down.
type Static struct {
	mu   sync.RWMutex
	down map[Key]bool
}

// NewStatic returns a keyboard with keys held down.
func NewStatic(keys ...Key) *Static {
	s := &Static{}
	for _, k := range keys {
		s.Press(k)
	}
	return s
}

// Press marks k as held.
func (s *Static) Press(k Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.down == nil {
		s.down = make(map[Key]bool)
	}
	s.down[k] = true
}

// Release marks k as released.
func (s *Static) Release(k Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.down, k)
}

// Apply updates the state from key events.
func (s *Static) Apply(events []Event) {
	for _, e := range events {
		switch e.Type {
		case EventKeyDown:
			s.Press(e.Key)
		case EventKeyUp:
			s.Release(e.Key)
		}
	}
}

// IsKeyDown implements Keyboard.
func (s *Static) IsKeyDown(k Key) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.down[k]
}
