package sevenseg_backpack

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"gotest.tools/assert"
)

// recordUnit keeps every write instead of talking to a chip
type recordUnit struct {
	cmds   []byte
	writes [][]uint16
	fail   bool
}

func (r *recordUnit) WriteCommand(cmd byte) error {
	r.cmds = append(r.cmds, cmd)
	if r.fail {
		return errors.New("bus fault")
	}
	return nil
}

func (r *recordUnit) WriteCells(addr byte, cells []uint16) error {
	r.writes = append(r.writes, append([]uint16(nil), cells...))
	if r.fail {
		return errors.New("bus fault")
	}
	return nil
}

func (r *recordUnit) last() []uint16 {
	if len(r.writes) == 0 {
		return nil
	}
	return r.writes[len(r.writes)-1]
}

func (r *recordUnit) reset() {
	r.cmds = nil
	r.writes = nil
}

func setup(t *testing.T, units int, cfg ScrollConfig) (*Sevenseg, []*recordUnit, clockwork.FakeClock) {
	recs := make([]*recordUnit, units)
	list := make([]Unit, units)
	for i := range recs {
		recs[i] = &recordUnit{}
		list[i] = recs[i]
	}
	display, err := New(list, &Opts{Scroll: cfg})
	assert.NilError(t, err)

	clock := clockwork.NewFakeClock()
	assert.NilError(t, display.Initialize(clock.Now()))
	for _, r := range recs {
		r.reset()
	}
	return display, recs, clock
}

func cells(text string) []uint16 {
	return Encode(nil, text)
}

// tickFor advances the clock in steps, ticking the display each time
func tickFor(display *Sevenseg, clock clockwork.FakeClock, step, total time.Duration) int {
	moves := 0
	for elapsed := time.Duration(0); elapsed < total; elapsed += step {
		clock.Advance(step)
		if display.Tick(clock.Now()) {
			moves++
		}
	}
	return moves
}
