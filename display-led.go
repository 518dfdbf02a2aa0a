package main

import (
	"fmt"

	"dscheirer.com/segscroll/i2c"
	"dscheirer.com/segscroll/sevenseg_backpack"
	"github.com/pkg/errors"
)

type closers []func() error

func (c closers) Close() error {
	var first error
	for _, f := range c {
		if err := f(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// openUnits opens every configured backpack, left to right, with the
// configured driver
func openUnits(settings configSettings) ([]sevenseg_backpack.Unit, closers, error) {
	addrs := settings.GetBytes(sI2CDevices)
	if len(addrs) == 0 {
		return nil, nil, errors.New("no i2c devices configured")
	}

	var units []sevenseg_backpack.Unit
	var done closers

	switch driver := settings.GetString(sI2CDriver); driver {
	case driverSim, driverDev:
		for _, addr := range addrs {
			dev, err := i2c.Open(addr, settings.GetInt(sI2CBus), driver == driverSim)
			if err != nil {
				done.Close()
				return nil, nil, err
			}
			units = append(units, dev)
			done = append(done, dev.Close)
		}
	case driverPeriph:
		bus, err := i2c.OpenPeriphBus(settings.GetString(sI2CPeriphBus))
		if err != nil {
			return nil, nil, err
		}
		for _, addr := range addrs {
			units = append(units, bus.Unit(uint16(addr)))
		}
		done = append(done, bus.Close)
	default:
		return nil, nil, fmt.Errorf("Bad i2c driver: '%s'", driver)
	}

	return units, done, nil
}

func openDisplay(settings configSettings) (*sevenseg_backpack.Sevenseg, closers, error) {
	units, done, err := openUnits(settings)
	if err != nil {
		return nil, nil, err
	}

	level := settings.GetFloat(sBrightness)
	display, err := sevenseg_backpack.New(units, &sevenseg_backpack.Opts{
		Scroll:     scrollConfig(settings),
		Brightness: &level,
	})
	if err != nil {
		done.Close()
		return nil, nil, err
	}
	return display, done, nil
}
