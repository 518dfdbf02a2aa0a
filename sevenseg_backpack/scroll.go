package sevenseg_backpack

import (
	"fmt"
	"time"
)

// ScrollMode selects what happens when the frame is wider than the viewport.
type ScrollMode int

const (
	// ScrollOff always shows the start of the frame.
	ScrollOff ScrollMode = iota
	// ScrollBounce walks to the end, holds for the dwell time and starts over.
	ScrollBounce
	// ScrollContinuous wraps the end of the frame around to its start.
	ScrollContinuous
)

func (m ScrollMode) String() string {
	switch m {
	case ScrollOff:
		return "off"
	case ScrollBounce:
		return "bounce"
	case ScrollContinuous:
		return "continuous"
	default:
		return fmt.Sprintf("ScrollMode(%d)", int(m))
	}
}

// ScrollConfig holds the marquee timings.
type ScrollConfig struct {
	Mode ScrollMode
	// Delay is the pause at offset 0 before a pass starts.
	Delay time.Duration
	// Speed is the time between one-character steps.
	Speed time.Duration
	// Dwell is the hold at the end of a bounce pass.
	Dwell time.Duration
}

// ScrollState is where the viewport sits and when it last moved.
type ScrollState struct {
	Offset         int
	LastTransition time.Time
}

func (c ScrollConfig) validate() error {
	if c.Mode < ScrollOff || c.Mode > ScrollContinuous {
		return fmt.Errorf("Bad scroll mode: %d", int(c.Mode))
	}
	if c.Delay < 0 || c.Speed < 0 || c.Dwell < 0 {
		return fmt.Errorf("Bad scroll timing: delay %s speed %s dwell %s", c.Delay, c.Speed, c.Dwell)
	}
	return nil
}

func (c ScrollConfig) atEnd(offset, length, viewport int) bool {
	if c.Mode == ScrollContinuous {
		return offset > length-1
	}
	return offset+viewport >= length
}

// Step moves the state machine forward to now. The returned bool is true when
// the offset was reset or advanced, which is the only time a redraw is due.
func (c ScrollConfig) Step(s ScrollState, length, viewport int, now time.Time) (ScrollState, bool) {
	if c.Mode == ScrollOff || length <= viewport {
		return s, false
	}
	elapsed := now.Sub(s.LastTransition)
	if s.Offset == 0 && elapsed < c.Delay {
		return s, false
	}
	if c.atEnd(s.Offset, length, viewport) {
		if c.Mode == ScrollContinuous || elapsed >= c.Dwell {
			return ScrollState{Offset: 0, LastTransition: now}, true
		}
		return s, false
	}
	if elapsed >= c.Speed {
		return ScrollState{Offset: s.Offset + 1, LastTransition: now}, true
	}
	return s, false
}

// Rewind applies the content refresh rules: content that fits goes back to
// offset 0, and in bounce mode so does any change in length.
func (c ScrollConfig) Rewind(s ScrollState, prevLength, length, viewport int, now time.Time) ScrollState {
	if length <= viewport || (c.Mode == ScrollBounce && prevLength != length) {
		return ScrollState{Offset: 0, LastTransition: now}
	}
	return s
}
