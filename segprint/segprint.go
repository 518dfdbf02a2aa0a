// segprint shows one message on the backpacks without the daemon.
//
//	TEXT      what to show
//	I2C_BUS   /dev/i2c-N bus number (default 1)
//	I2C_ADDR  comma separated addresses, left to right (default 0x70)
//	DURATION  how long to scroll before turning off (default 10s)
//	BUTTON    optional GPIO pin that ends it early
//	PULLUP    set when the button pulls the pin to ground
//	SIMULATE  set to log the writes instead of using the bus
package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"dscheirer.com/segscroll/i2c"
	"dscheirer.com/segscroll/sevenseg_backpack"
	"github.com/pkg/errors"
	"github.com/stianeikeland/go-rpio"
)

const tickSleep = 30 * time.Millisecond

func parseAddrs(s string) ([]uint8, error) {
	var addrs []uint8
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := strconv.ParseUint(f, 0, 8)
		if err != nil {
			return nil, errors.Wrapf(err, "address %q", f)
		}
		addrs = append(addrs, uint8(v))
	}
	if len(addrs) == 0 {
		return nil, errors.New("no addresses")
	}
	return addrs, nil
}

type lookupFunc func(key string) (string, bool)

func getenv(lookup lookupFunc, key, def string) string {
	if v, ok := lookup(key); ok {
		return v
	}
	return def
}

// openButton returns a check for the stop button and its cleanup; both are
// nil when there is no button
func openButton(lookup lookupFunc) (func() bool, func() error, error) {
	pinS, ok := lookup("BUTTON")
	if !ok {
		return nil, nil, nil
	}
	pin, err := strconv.ParseInt(pinS, 0, 64)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "BUTTON %s", pinS)
	}
	if err := rpio.Open(); err != nil {
		return nil, nil, errors.Wrap(err, "gpio")
	}
	_, pullup := lookup("PULLUP")
	rpioPin := rpio.Pin(pin)
	rpioPin.Input()
	pressState := rpio.High
	if pullup {
		rpioPin.PullUp() // GND => button press
		pressState = rpio.Low
	} else {
		rpioPin.PullDown() // +V -> button press
	}
	return func() bool {
		return rpioPin.Read() == pressState
	}, rpio.Close, nil
}

func run(lookup lookupFunc) error {
	text, ok := lookup("TEXT")
	if !ok {
		return errors.New("Must provide TEXT in the environment")
	}
	bus, err := strconv.Atoi(getenv(lookup, "I2C_BUS", "1"))
	if err != nil {
		return errors.Wrap(err, "I2C_BUS")
	}
	addrs, err := parseAddrs(getenv(lookup, "I2C_ADDR", "0x70"))
	if err != nil {
		return errors.Wrap(err, "I2C_ADDR")
	}
	duration, err := time.ParseDuration(getenv(lookup, "DURATION", "10s"))
	if err != nil {
		return errors.Wrap(err, "DURATION")
	}
	_, simulate := lookup("SIMULATE")

	pressed, closeButton, err := openButton(lookup)
	if err != nil {
		return err
	}
	if closeButton != nil {
		defer closeButton()
	}

	var units []sevenseg_backpack.Unit
	for _, addr := range addrs {
		dev, err := i2c.Open(addr, bus, simulate)
		if err != nil {
			return err
		}
		defer dev.Close()
		units = append(units, dev)
	}

	display, err := sevenseg_backpack.New(units, &sevenseg_backpack.Opts{
		Scroll: sevenseg_backpack.ScrollConfig{
			Mode:  sevenseg_backpack.ScrollContinuous,
			Delay: time.Second,
			Speed: 300 * time.Millisecond,
		},
	})
	if err != nil {
		return err
	}

	start := time.Now()
	if err := display.Initialize(start); err != nil {
		log.Println(err.Error())
	}
	display.Show(start, text)

	log.Printf("Showing %q for %s", text, duration)
	for now := start; now.Sub(start) < duration; now = time.Now() {
		if pressed != nil && pressed() {
			log.Printf("Button pressed")
			break
		}
		display.Tick(now)
		time.Sleep(tickSleep)
	}
	display.SetBrightness(0)
	return nil
}

func main() {
	if err := run(os.LookupEnv); err != nil {
		log.Fatal(err.Error())
	}
}
