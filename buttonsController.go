package main

import (
	"time"

	"github.com/stianeikeland/go-rpio"
)

// check the press state, and return the press state
type pressState struct {
	pressed bool      // is it pressed?
	start   time.Time // when did this state start?
	count   int       // # of whole seconds since it started
	changed bool      // did the above data change at all?
}

type button struct {
	button buttonMap
	pin    rpio.Pin
	state  pressState
}

const (
	btnDown = 0
	btnUp   = 1
)

// keys for the simulated buttons
var buttonKeys = map[string]string{
	sDimButton:   "d",
	sPauseButton: "p",
}

func newButtons(settings configSettings) buttons {
	if settings.GetBool(sButtonSimulated) {
		return &simButtons{}
	}
	return &rpioButtons{}
}

// the buttons that are wired up; pins < 0 are not, unless they are simulated
func buttonMaps(settings configSettings) map[string]buttonMap {
	pins := make(map[string]buttonMap)
	sim := settings.GetBool(sButtonSimulated)
	for name, key := range buttonKeys {
		pin := settings.GetInt(name)
		if pin < 0 && !sim {
			continue
		}
		pins[name] = buttonMap{pin: pin, key: key, pullup: settings.GetBool(sButtonPullup)}
	}
	return pins
}

func buttonEffect(name string) (displayEffect, bool) {
	switch name {
	case sDimButton:
		return dimEffect(), true
	case sPauseButton:
		return pauseEffect(), true
	default:
		return displayEffect{}, false
	}
}

func checkButtons(rt runtimeConfig) (map[string]button, error) {
	now := rt.clock.Now()

	btns := rt.buttons.getButtons()
	results, err := rt.buttons.readButtons(rt)
	if err != nil {
		return *btns, err
	}

	for k, v := range *btns {
		res, ok := results[k]
		if !ok {
			continue
		}

		btn := v
		btn.state.changed = false

		// interpret the high/low state into btnUp or btnDown
		// based on the pullup value
		var btnState int
		if v.button.pullup {
			// 0 is pressed, 1 is not
			if res == rpio.High {
				btnState = btnUp
			} else {
				btnState = btnDown
			}
		} else {
			// 1 is pressed, 0 is not
			if res == rpio.Low {
				btnState = btnUp
			} else {
				btnState = btnDown
			}
		}

		if btnState == btnDown {
			if btn.state.pressed {
				// still held, update the duration count
				btn.state.count = int(now.Sub(btn.state.start) / time.Second)
				if v.state.count != btn.state.count {
					btn.state.changed = true
				}
			} else {
				// just noticed it was pressed
				btn.state = pressState{pressed: true, start: now, count: 0, changed: true}
			}
		} else if btn.state.pressed {
			// just noticed the release
			btn.state = pressState{pressed: false, start: now, count: 0, changed: true}
		}
		if btn.state.changed {
			rt.logger.Printf("button changed state: %s %+v", k, btn.state)
		}
		(*btns)[k] = btn
	}

	return *btns, nil
}

func runWatchButtons(rt runtimeConfig) {
	defer func() {
		rt.logger.Println("exiting runWatchButtons")
	}()

	settings := rt.settings
	comms := rt.comms

	pins := buttonMaps(settings)
	if len(pins) == 0 {
		rt.logger.Println("no buttons configured")
		return
	}

	err := rt.buttons.initButtons(settings)
	if err != nil {
		rt.logger.Println(err.Error())
		return
	}

	// we now should defer the closeButtons call to when this function exists
	defer rt.buttons.closeButtons()

	err = rt.buttons.setupButtons(pins, rt)
	if err != nil {
		rt.logger.Println(err.Error())
		return
	}

	for true {
		select {
		case <-comms.quit:
			rt.logger.Println("quit from runWatchButtons")
			return
		default:
		}

		btns, err := checkButtons(rt)
		if err != nil {
			// we're done, and so is everyone else
			rt.logger.Printf("quit from runWatchButtons: %v", err)
			closeQuit(comms)
			return
		}

		for k, v := range btns {
			// act on the press, not the hold or the release
			if !v.state.changed || !v.state.pressed || v.state.count != 0 {
				continue
			}
			e, ok := buttonEffect(k)
			if !ok {
				rt.logger.Printf("Unhandled button %s", k)
				continue
			}
			rt.logger.Printf("sending %s message", k)
			select {
			case comms.effects <- e:
			case <-comms.quit:
				return
			}
		}

		rt.clock.Sleep(dButtonSleep)
	}
}

func startWatchButtons(rt runtimeConfig) {
	rt.logger = &ThreadLogger{name: "Buttons"}
	wg.Add(1)
	go func() {
		defer wg.Done()
		runWatchButtons(rt)
	}()
}
