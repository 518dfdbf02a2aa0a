package main

import (
	"sync"

	"github.com/stianeikeland/go-rpio"
)

// noButtons reads pin levels the test sets instead of GPIO
type noButtons struct {
	mu      sync.Mutex
	buttons map[string]button
	pins    map[string]buttonMap
	states  map[string]rpio.State
	inited  bool
	closed  bool
}

func (nb *noButtons) getButtons() *map[string]button {
	return &nb.buttons
}

func (nb *noButtons) readButtons(rt runtimeConfig) (map[string]rpio.State, error) {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	ret := make(map[string]rpio.State)
	for k, v := range nb.states {
		ret[k] = v
	}
	return ret, nil
}

func (nb *noButtons) setupButtons(pins map[string]buttonMap, rt runtimeConfig) error {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	nb.buttons = make(map[string]button)
	nb.pins = make(map[string]buttonMap)
	nb.states = make(map[string]rpio.State)

	for k, v := range pins {
		nb.buttons[k] = button{button: v, state: pressState{start: rt.clock.Now()}}
		nb.pins[k] = v
		nb.states[k] = nb.level(v, false)
	}
	return nil
}

func (nb *noButtons) initButtons(settings configSettings) error {
	nb.inited = true
	return nil
}

func (nb *noButtons) closeButtons() {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	nb.closed = true
}

func (nb *noButtons) level(bm buttonMap, pressed bool) rpio.State {
	if bm.pullup == pressed {
		return rpio.Low
	}
	return rpio.High
}

// press or release a button by name
func (nb *noButtons) set(name string, pressed bool) {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	nb.states[name] = nb.level(nb.pins[name], pressed)
}

func (nb *noButtons) isClosed() bool {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	return nb.closed
}
