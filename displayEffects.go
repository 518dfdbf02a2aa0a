package main

import (
	"fmt"
	"time"

	"dscheirer.com/segscroll/sevenseg_backpack"
)

type displayEffect struct {
	id  int
	val interface{}
}

type displayPrint struct {
	s string
	d time.Duration
}

const (
	eDebug = iota
	ePrint
	eBrightness
	eDim
	ePause
)

// dim steps down by this much, wrapping from off to full
const dimStep = 0.25

// channel messaging functions
func toggleDebugDump(on bool) displayEffect {
	return displayEffect{id: eDebug, val: on}
}

func printEffect(s string, d time.Duration) displayEffect {
	return displayEffect{id: ePrint, val: displayPrint{s: s, d: d}}
}

func brightnessEffect(level float64) displayEffect {
	return displayEffect{id: eBrightness, val: level}
}

func dimEffect() displayEffect {
	return displayEffect{id: eDim}
}

func pauseEffect() displayEffect {
	return displayEffect{id: ePause}
}

func toPrint(val interface{}) (*displayPrint, error) {
	switch v := val.(type) {
	case displayPrint:
		return &v, nil
	default:
		return nil, fmt.Errorf("Bad type: %T", v)
	}
}

func toBool(val interface{}) (bool, error) {
	switch v := val.(type) {
	case bool:
		return v, nil
	default:
		return false, fmt.Errorf("Bad type: %T", v)
	}
}

func toFloat(val interface{}) (float64, error) {
	switch v := val.(type) {
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("Bad type: %T", v)
	}
}

func nextDim(cur float64) float64 {
	if cur <= 0 {
		return 1
	}
	next := cur - dimStep
	if next < 0 {
		return 0
	}
	return next
}

// what the display loop is doing between iterations
type displayState struct {
	printing   bool
	printText  string
	printUntil time.Time
	nextUpdate time.Time
	paused     bool
	saved      sevenseg_backpack.ScrollConfig
}

func (ds *displayState) handle(rt runtimeConfig, e displayEffect) {
	now := rt.clock.Now()
	switch e.id {
	case eDebug:
		v, err := toBool(e.val)
		if err != nil {
			rt.logger.Println(err.Error())
			return
		}
		rt.display.DebugDump(v)
	case ePrint:
		v, err := toPrint(e.val)
		if err != nil {
			rt.logger.Println(err.Error())
			return
		}
		rt.logger.Printf("Print: %s (%s)", v.s, v.d)
		ds.printing = true
		ds.printText = v.s
		ds.printUntil = now.Add(v.d)
		// show it right away
		ds.nextUpdate = time.Time{}
	case eBrightness:
		v, err := toFloat(e.val)
		if err != nil {
			rt.logger.Println(err.Error())
			return
		}
		rt.display.SetBrightness(v)
	case eDim:
		rt.display.SetBrightness(nextDim(rt.display.Brightness()))
		rt.logger.Printf("Brightness: %.2f", rt.display.Brightness())
	case ePause:
		if ds.paused {
			ds.paused = false
			if err := rt.display.SetScroll(ds.saved, now); err != nil {
				rt.logger.Println(err.Error())
			}
		} else {
			ds.paused = true
			ds.saved = rt.display.ScrollConfig()
			stopped := ds.saved
			stopped.Mode = sevenseg_backpack.ScrollOff
			if err := rt.display.SetScroll(stopped, now); err != nil {
				rt.logger.Println(err.Error())
			}
		}
	default:
		rt.logger.Printf("Unhandled %d\n", e.id)
	}
}

// refresh the frame if it is due, then let the scroller move
func (ds *displayState) update(rt runtimeConfig) {
	now := rt.clock.Now()

	if ds.printing && !now.Before(ds.printUntil) {
		ds.printing = false
		ds.nextUpdate = time.Time{}
	}

	if !now.Before(ds.nextUpdate) {
		if ds.printing {
			rt.display.Show(now, ds.printText)
		} else {
			rt.display.Refresh(now, func(w *sevenseg_backpack.Writer) {
				rt.content.fill(rt, w)
			})
		}
		ds.nextUpdate = now.Add(rt.settings.GetDuration(sUpdateInterval))
	}

	rt.display.Tick(now)
}

func (ds *displayState) snapshot(rt runtimeConfig) statusSnapshot {
	text := ""
	if ds.printing {
		text = ds.printText
	}
	return statusSnapshot{
		Content:    rt.content.name(),
		Text:       text,
		Offset:     rt.display.Offset(),
		Length:     len(rt.display.Frame()),
		Viewport:   rt.display.Viewport(),
		Brightness: rt.display.Brightness(),
		Scroll:     rt.display.ScrollConfig().Mode.String(),
		Paused:     ds.paused,
	}
}

func runDisplay(rt runtimeConfig) {
	defer func() {
		rt.logger.Println("exiting runDisplay")
	}()

	comms := rt.comms

	// turn on LED dump?
	rt.display.DebugDump(rt.settings.GetBool(sDebug))

	// ready to rock
	if err := rt.display.Initialize(rt.clock.Now()); err != nil {
		rt.logger.Printf("Error: %s", err.Error())
	}
	if err := rt.display.SetBlinkRate(rt.settings.GetByte(sBlinkRate)); err != nil {
		rt.logger.Printf("Error: %s", err.Error())
	}

	ds := &displayState{}

	for true {
		ds.update(rt)
		rt.status.set(ds.snapshot(rt))

		select {
		case <-comms.quit:
			rt.logger.Println("quit from runDisplay")
			rt.display.SetBrightness(0)
			return
		case e := <-comms.effects:
			ds.handle(rt, e)
		default:
			rt.clock.Sleep(dDisplaySleep)
		}
	}
}

func startDisplay(rt runtimeConfig) {
	rt.logger = &ThreadLogger{name: "Display"}
	wg.Add(1)
	go func() {
		defer wg.Done()
		runDisplay(rt)
	}()
}
