package sevenseg_backpack

import (
	"testing"
	"time"

	"gotest.tools/assert"
)

var t0 = time.Date(2020, 2, 1, 9, 15, 0, 0, time.UTC)

func at(d time.Duration) time.Time {
	return t0.Add(d)
}

func TestStepStaticIsNoop(t *testing.T) {
	cfg := ScrollConfig{Mode: ScrollOff}
	s := ScrollState{LastTransition: t0}
	next, moved := cfg.Step(s, 20, 4, at(time.Hour))
	assert.Assert(t, !moved)
	assert.Equal(t, next, s)
}

func TestStepFitsIsNoop(t *testing.T) {
	for _, mode := range []ScrollMode{ScrollBounce, ScrollContinuous} {
		cfg := ScrollConfig{Mode: mode}
		s := ScrollState{LastTransition: t0}
		next, moved := cfg.Step(s, 4, 4, at(time.Hour))
		assert.Assert(t, !moved, mode.String())
		assert.Equal(t, next.Offset, 0)
	}
}

func TestStepBounce(t *testing.T) {
	cfg := ScrollConfig{Mode: ScrollBounce, Delay: time.Second, Speed: 250 * time.Millisecond, Dwell: 2 * time.Second}
	s := ScrollState{LastTransition: t0}
	var moved bool

	// initial hold
	s, moved = cfg.Step(s, 10, 4, at(500*time.Millisecond))
	assert.Assert(t, !moved)

	s, moved = cfg.Step(s, 10, 4, at(time.Second))
	assert.Assert(t, moved)
	assert.Equal(t, s.Offset, 1)

	// too soon for the next step
	s, moved = cfg.Step(s, 10, 4, at(1100*time.Millisecond))
	assert.Assert(t, !moved)
	assert.Equal(t, s.Offset, 1)

	// walk to the end: 6 + 4 covers all 10
	now := at(time.Second)
	for want := 2; want <= 6; want++ {
		now = now.Add(250 * time.Millisecond)
		s, moved = cfg.Step(s, 10, 4, now)
		assert.Assert(t, moved)
		assert.Equal(t, s.Offset, want)
	}
	end := now

	// dwell holds the last position
	s, moved = cfg.Step(s, 10, 4, end.Add(250*time.Millisecond))
	assert.Assert(t, !moved)
	s, moved = cfg.Step(s, 10, 4, end.Add(1999*time.Millisecond))
	assert.Assert(t, !moved)
	assert.Equal(t, s.Offset, 6)

	s, moved = cfg.Step(s, 10, 4, end.Add(2*time.Second))
	assert.Assert(t, moved)
	assert.Equal(t, s.Offset, 0)
	assert.Equal(t, s.LastTransition, end.Add(2*time.Second))

	// and the delay applies again before the next pass
	s, moved = cfg.Step(s, 10, 4, end.Add(2500*time.Millisecond))
	assert.Assert(t, !moved)
}

func TestStepContinuous(t *testing.T) {
	cfg := ScrollConfig{Mode: ScrollContinuous, Speed: 100 * time.Millisecond, Dwell: time.Hour}
	s := ScrollState{Offset: 9, LastTransition: t0}

	// offset walks one past the last cell
	s, moved := cfg.Step(s, 10, 4, at(100*time.Millisecond))
	assert.Assert(t, moved)
	assert.Equal(t, s.Offset, 10)

	// then resets straight away, no speed or dwell wait
	s, moved = cfg.Step(s, 10, 4, at(100*time.Millisecond))
	assert.Assert(t, moved)
	assert.Equal(t, s.Offset, 0)
}

func TestStepContinuousPassesBounceEnd(t *testing.T) {
	cfg := ScrollConfig{Mode: ScrollContinuous, Speed: 100 * time.Millisecond}
	s := ScrollState{Offset: 6, LastTransition: t0}
	s, moved := cfg.Step(s, 10, 4, at(100*time.Millisecond))
	assert.Assert(t, moved)
	assert.Equal(t, s.Offset, 7)
}

func TestRewind(t *testing.T) {
	s := ScrollState{Offset: 3, LastTransition: t0}
	now := at(time.Minute)

	bounce := ScrollConfig{Mode: ScrollBounce}
	assert.Equal(t, bounce.Rewind(s, 10, 10, 4, now), s)
	assert.Equal(t, bounce.Rewind(s, 10, 11, 4, now), ScrollState{LastTransition: now})

	continuous := ScrollConfig{Mode: ScrollContinuous}
	assert.Equal(t, continuous.Rewind(s, 10, 11, 4, now), s)

	// content that fits always goes back to the start
	for _, cfg := range []ScrollConfig{{Mode: ScrollOff}, bounce, continuous} {
		assert.Equal(t, cfg.Rewind(s, 10, 4, 4, now), ScrollState{LastTransition: now})
	}
}

func TestScrollConfigValidate(t *testing.T) {
	assert.NilError(t, ScrollConfig{Mode: ScrollBounce, Speed: time.Second}.validate())
	assert.ErrorContains(t, ScrollConfig{Mode: ScrollMode(7)}.validate(), "Bad scroll mode")
	assert.ErrorContains(t, ScrollConfig{Speed: -1}.validate(), "Bad scroll timing")
	assert.Equal(t, ScrollMode(7).String(), "ScrollMode(7)")
}
