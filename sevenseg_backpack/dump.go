package sevenseg_backpack

import (
	"log"
	"strings"
)

func segmentOn(cell uint16, segment uint) bool {
	return byte(cell>>8)&(1<<segment) != 0
}

// dumpWindow draws window the way the digits look:
//
//   - -      -     -
//     | |   | |    | |   | |
//   - -      -     -
//     | |   | |    | |   | |
//   - .  -  .   -  .  -  .
func dumpWindow(window []uint16) string {
	var b strings.Builder
	row := func(draw func(cell uint16) string, colon string) {
		for i, cell := range window {
			if i%ColumnsPerUnit == colonColumn {
				b.WriteString(colon)
				continue
			}
			b.WriteString(draw(cell))
		}
		b.WriteString("\n")
	}
	pick := func(cell uint16, segment uint, on, off string) string {
		if segmentOn(cell, segment) {
			return on
		}
		return off
	}

	b.WriteString("\n")
	// TOP
	row(func(cell uint16) string { return pick(cell, LED_TOP, "  -   ", "      ") }, " ")
	// TOPM
	row(func(cell uint16) string {
		return pick(cell, LED_TOPL, " |", "  ") + pick(cell, LED_TOPR, " |  ", "    ")
	}, " ")
	// MID
	row(func(cell uint16) string { return pick(cell, LED_MID, "  -   ", "      ") }, " ")
	// BOTM
	row(func(cell uint16) string {
		return pick(cell, LED_BOTL, " |", "  ") + pick(cell, LED_BOTR, " |  ", "    ")
	}, " ")
	// BOT
	row(func(cell uint16) string {
		return pick(cell, LED_BOT, "  -  ", "     ") + pick(cell, LED_DECIMAL, ".", " ")
	}, " ")
	return b.String()
}

func (d *Sevenseg) dumpDisplay() {
	log.Println(dumpWindow(d.window))
}
