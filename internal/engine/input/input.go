// Package input turns SDL2 events into demo commands.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// Action is a demo command.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionResize
	// ActionPlay starts the window event named by Event.Play.
	ActionPlay
	ActionNextEffect
	ActionPrevEffect
	ActionCancel
	ActionToggleDamage
	ActionSnapshot
	// ActionMoveWindow recentres the window on the pointer.
	ActionMoveWindow
)

// Event is one processed input event.
type Event struct {
	Action Action
	Play   string
	Width  int
	Height int
	X, Y   int
}

// keymap binds key presses to commands.
var keymap = map[sdl.Scancode]Event{
	sdl.SCANCODE_ESCAPE:    {Action: ActionQuit},
	sdl.SCANCODE_C:         {Action: ActionPlay, Play: "close"},
	sdl.SCANCODE_O:         {Action: ActionPlay, Play: "open"},
	sdl.SCANCODE_M:         {Action: ActionPlay, Play: "minimize"},
	sdl.SCANCODE_U:         {Action: ActionPlay, Play: "unminimize"},
	sdl.SCANCODE_S:         {Action: ActionPlay, Play: "shade"},
	sdl.SCANCODE_H:         {Action: ActionPlay, Play: "unshade"},
	sdl.SCANCODE_F:         {Action: ActionPlay, Play: "focus"},
	sdl.SCANCODE_RIGHT:     {Action: ActionNextEffect},
	sdl.SCANCODE_LEFT:      {Action: ActionPrevEffect},
	sdl.SCANCODE_BACKSPACE: {Action: ActionCancel},
	sdl.SCANCODE_D:         {Action: ActionToggleDamage},
	sdl.SCANCODE_P:         {Action: ActionSnapshot},
}

// Input handles all input processing.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to commands.
// Returns true if the demo should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Action: ActionQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Action: ActionResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type != sdl.KEYDOWN || e.Repeat != 0 {
				continue
			}
			ev, ok := keymap[e.Keysym.Scancode]
			if !ok {
				continue
			}
			i.events = append(i.events, ev)
			if ev.Action == ActionQuit {
				return true
			}

		case *sdl.MouseButtonEvent:
			if e.Type == sdl.MOUSEBUTTONDOWN && e.Button == sdl.BUTTON_LEFT {
				i.events = append(i.events, Event{
					Action: ActionMoveWindow,
					X:      int(e.X),
					Y:      int(e.Y),
				})
			}
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}
