package main

import (
	"github.com/stianeikeland/go-rpio"
)

type buttons interface {
	readButtons(rt runtimeConfig) (map[string]rpio.State, error)
	setupButtons(pins map[string]buttonMap, rt runtimeConfig) error
	initButtons(settings configSettings) error
	closeButtons()
	getButtons() *map[string]button
}

// where a button lives: a GPIO pin on the pi, a key in the terminal
type buttonMap struct {
	pin    int
	key    string
	pullup bool
}
