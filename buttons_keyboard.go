package main

import (
	"errors"
	"time"

	// keyboard for sim mode
	"github.com/nsf/termbox-go"
	"github.com/stianeikeland/go-rpio"
)

// how long a keyboard poll waits for a key
const dKeyPoll = 100 * time.Millisecond

type simButtons struct {
	buttons map[string]button
}

func (sb *simButtons) getButtons() *map[string]button {
	return &sb.buttons
}

func (sb *simButtons) setupButtons(pins map[string]buttonMap, rt runtimeConfig) error {
	sb.buttons = make(map[string]button)

	now := rt.clock.Now()

	for k, v := range pins {
		var btn button
		btn.button = v
		btn.state = pressState{pressed: false, start: now, count: 0, changed: false}
		sb.buttons[k] = btn
	}
	return nil
}

// keyStates maps a key press onto pin levels: the matching button is down
// for this poll, every other button is up
func (sb *simButtons) keyStates(ch rune) map[string]rpio.State {
	ret := make(map[string]rpio.State)
	for k, v := range sb.buttons {
		down := len(v.button.key) > 0 && rune(v.button.key[0]) == ch
		var state rpio.State = btnUp
		if down {
			state = btnDown
		}
		// pins are read as active low with a pullup
		if !v.button.pullup {
			state ^= 1
		}
		ret[k] = state
	}
	return ret
}

func (sb *simButtons) readButtons(rt runtimeConfig) (map[string]rpio.State, error) {
	// poll with quick timeout
	// no key means "no change"
	go func() {
		rt.clock.Sleep(dKeyPoll)
		termbox.Interrupt()
	}()

	var ev termbox.Event
	waitForInterrupt := true
	for waitForInterrupt {
		evTemp := termbox.PollEvent()
		switch evTemp.Type {
		case termbox.EventKey:
			// add an exit key
			if evTemp.Key == termbox.KeyCtrlC {
				return nil, errors.New("Exit termbox loop")
			}
			ev = evTemp
		default:
			// the interrupt fired
			waitForInterrupt = false
		}
	}

	return sb.keyStates(ev.Ch), nil
}

func (sb *simButtons) initButtons(settings configSettings) error {
	err := termbox.Init()
	if err != nil {
		return err
	}

	termbox.SetInputMode(termbox.InputEsc)
	termbox.Flush()

	// close it later
	return nil
}

func (sb *simButtons) closeButtons() {
	termbox.Close()
}
