package sevenseg_backpack

// CellDecimalPoint is the DP bit of a frame cell (the glyph lives in the high byte).
const CellDecimalPoint uint16 = LED_DECIMAL_MASK << 8

// Cell turns a character into a frame cell.
func Cell(c byte, decimalOn bool) uint16 {
	cell := uint16(Glyph(c)) << 8
	if decimalOn {
		cell |= CellDecimalPoint
	}
	return cell
}

// Encode appends the cells for text to dst. A '.' lights the decimal point of
// the character before it; a '.' with nothing to attach to is dropped.
func Encode(dst []uint16, text string) []uint16 {
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '.' {
			// leading, or following a period we already consumed
			continue
		}
		dotOn := false
		if i+1 < len(text) && text[i+1] == '.' {
			dotOn = true
			i++
		}
		dst = append(dst, Cell(c, dotOn))
	}
	return dst
}
