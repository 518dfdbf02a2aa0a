// Package sevenseg_backpack drives a row of HT16K33 seven-segment backpacks
// as one scrolling text display.
package sevenseg_backpack

import (
	"errors"
	"fmt"
	"log"
	"time"
)

// commands we support
// oscillator on, aka system setup
const i2c_OSC_ON = 0x21

// display on/off and 2 "blink" bits in position 2+1
const i2cDISPLAY_ON = 0x81
const i2cDISPLAY_OFF = 0x80

// 0x0 -> 0xF dimming levels
const i2cBRIGHTNESS_CMD = 0xE0

// display RAM starts at address 0
const i2cSET_ADDR = 0x00

// export blink positions
const BLINK_OFF = 0
const BLINK_2HZ = 1
const BLINK_1HZ = 2
const BLINK_HALFHZ = 3

// Unit is one backpack on the bus.
type Unit interface {
	WriteCommand(cmd byte) error
	WriteCells(addr byte, cells []uint16) error
}

// Opts configures a Sevenseg.
type Opts struct {
	Scroll ScrollConfig
	// Brightness applied by Initialize, 0.0-1.0. nil means full brightness,
	// 0 starts with the display off.
	Brightness *float64
}

// Sevenseg is a text display spread over one or more backpacks.
//
// It is not safe for concurrent use; one goroutine should own it and drive
// both Refresh and Tick.
type Sevenseg struct {
	units      []Unit
	scroll     ScrollConfig
	state      ScrollState
	frame      []uint16
	window     []uint16
	brightness int
	initial    float64
	blink      byte
	dump       bool
}

// New wraps units, left to right, as one display.
func New(units []Unit, opts *Opts) (*Sevenseg, error) {
	if len(units) == 0 {
		return nil, errors.New("sevenseg_backpack: no display units")
	}
	if opts == nil {
		opts = &Opts{}
	}
	if err := opts.Scroll.validate(); err != nil {
		return nil, fmt.Errorf("sevenseg_backpack: %v", err)
	}
	initial := 1.0
	if opts.Brightness != nil {
		initial = *opts.Brightness
	}
	d := &Sevenseg{
		units:   units,
		scroll:  opts.Scroll,
		initial: initial,
		blink:   BLINK_OFF,
		window:  make([]uint16, len(units)*ColumnsPerUnit),
	}
	return d, nil
}

// Initialize turns on the oscillator and the display of every unit, then sets
// the initial brightness. The scroll timers start at now.
func (d *Sevenseg) Initialize(now time.Time) error {
	var first error
	for i, unit := range d.units {
		if err := unit.WriteCommand(i2c_OSC_ON); err != nil && first == nil {
			first = fmt.Errorf("unit %d: %v", i, err)
		}
		if err := unit.WriteCommand(d.displayOnCmd()); err != nil && first == nil {
			first = fmt.Errorf("unit %d: %v", i, err)
		}
	}
	d.state = ScrollState{Offset: 0, LastTransition: now}
	d.SetBrightness(d.initial)
	return first
}

// Viewport is how many characters are visible at once.
func (d *Sevenseg) Viewport() int {
	return len(d.units) * CharsPerUnit
}

// Tick advances the scroller and redraws if the offset moved.
func (d *Sevenseg) Tick(now time.Time) bool {
	next, moved := d.scroll.Step(d.state, len(d.frame), d.Viewport(), now)
	if !moved {
		return false
	}
	d.state = next
	d.draw()
	return true
}

// Refresh replaces the frame with whatever fill writes, and redraws.
func (d *Sevenseg) Refresh(now time.Time, fill func(w *Writer)) {
	prev := len(d.frame)
	w := &Writer{}
	if fill != nil {
		fill(w)
	}
	d.frame = w.cells
	d.state = d.scroll.Rewind(d.state, prev, len(d.frame), d.Viewport(), now)
	d.draw()
}

// Show is Refresh with a single Print.
func (d *Sevenseg) Show(now time.Time, text string) {
	d.Refresh(now, func(w *Writer) {
		w.Print(text)
	})
}

func (d *Sevenseg) draw() {
	d.window = RenderWindow(d.frame, d.state.Offset, len(d.units), d.scroll.Mode)
	if d.dump {
		d.dumpDisplay()
	}
	for i, unit := range d.units {
		cells := d.window[i*ColumnsPerUnit : (i+1)*ColumnsPerUnit]
		if err := unit.WriteCells(i2cSET_ADDR, cells); err != nil {
			log.Printf("sevenseg_backpack: unit %d write: %v", i, err)
		}
	}
}

func (d *Sevenseg) displayOnCmd() byte {
	// blink rate is bits 2 and 1 of the display command
	return i2cDISPLAY_ON | (d.blink << 1)
}

// SetBrightness sets 0.0-1.0, clamped. Zero turns the display off, anything
// else picks a dimming step and turns it back on.
func (d *Sevenseg) SetBrightness(level float64) {
	val := BrightnessLevel(level)
	d.brightness = val
	for i, unit := range d.units {
		var err error
		if val == 0 {
			err = unit.WriteCommand(i2cDISPLAY_OFF)
		} else {
			err = unit.WriteCommand(i2cBRIGHTNESS_CMD + byte(val-1))
			if err == nil {
				err = unit.WriteCommand(d.displayOnCmd())
			}
		}
		if err != nil {
			log.Printf("sevenseg_backpack: unit %d brightness: %v", i, err)
		}
	}
}

// Brightness reports the current level as 0.0-1.0.
func (d *Sevenseg) Brightness() float64 {
	return float64(d.brightness) / MaxBrightness
}

// SetBlinkRate picks one of the BLINK_* rates. Every unit is updated; the
// first write error is returned.
func (d *Sevenseg) SetBlinkRate(rate uint8) error {
	if rate > BLINK_HALFHZ {
		return fmt.Errorf("Bad blink rate: %d", rate)
	}
	d.blink = rate
	if d.brightness == 0 {
		// stays off until the next SetBrightness
		return nil
	}
	var first error
	for i, unit := range d.units {
		if err := unit.WriteCommand(d.displayOnCmd()); err != nil {
			log.Printf("sevenseg_backpack: unit %d blink: %v", i, err)
			if first == nil {
				first = fmt.Errorf("unit %d: %v", i, err)
			}
		}
	}
	return first
}

// SetScroll swaps the scroll settings and restarts from offset 0.
func (d *Sevenseg) SetScroll(cfg ScrollConfig, now time.Time) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	d.scroll = cfg
	d.state = ScrollState{Offset: 0, LastTransition: now}
	d.draw()
	return nil
}

// ScrollConfig returns the current scroll settings.
func (d *Sevenseg) ScrollConfig() ScrollConfig {
	return d.scroll
}

// Offset is the index of the first visible cell.
func (d *Sevenseg) Offset() int {
	return d.state.Offset
}

// Frame returns a copy of the encoded content.
func (d *Sevenseg) Frame() []uint16 {
	return append([]uint16(nil), d.frame...)
}

// Window returns a copy of the cells last written to the units.
func (d *Sevenseg) Window() []uint16 {
	return append([]uint16(nil), d.window...)
}

// DebugDump logs an ASCII picture of every redraw.
func (d *Sevenseg) DebugDump(on bool) {
	d.dump = on
}
