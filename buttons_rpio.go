package main

import (
	"github.com/pkg/errors"
	// gpio lib
	"github.com/stianeikeland/go-rpio"
)

type rpioButtons struct {
	buttons map[string]button
}

func (rb *rpioButtons) getButtons() *map[string]button {
	return &rb.buttons
}

func (rb *rpioButtons) setupButtons(pins map[string]buttonMap, rt runtimeConfig) error {
	rb.buttons = make(map[string]button)

	now := rt.clock.Now()

	for k, v := range pins {
		// picking GPIO 4 results in collisions with I2C operations
		var btn button
		btn.button = v
		btn.pin = rpio.Pin(v.pin)

		btn.pin.Input()
		if v.pullup {
			btn.pin.PullUp() // GND => button press
		} else {
			btn.pin.PullDown()
		}

		btn.state = pressState{pressed: false, start: now, count: 0, changed: false}
		rb.buttons[k] = btn
	}

	return nil
}

func (rb *rpioButtons) initButtons(settings configSettings) error {
	return errors.Wrap(rpio.Open(), "gpio")
}

func (rb *rpioButtons) closeButtons() {
	rpio.Close()
}

func (rb *rpioButtons) readButtons(rt runtimeConfig) (map[string]rpio.State, error) {
	ret := make(map[string]rpio.State)
	for k, v := range rb.buttons {
		ret[k] = v.pin.Read() // Read state from pin (High / Low)
	}

	return ret, nil
}
