package sevenseg_backpack

// each backpack is 4 digits around a colon
const (
	ColumnsPerUnit = 5
	CharsPerUnit   = 4
	colonColumn    = 2
)

func activeColumn(col int) bool {
	return col%ColumnsPerUnit != colonColumn
}

// RenderWindow lays the visible part of frame out over units backpacks,
// ColumnsPerUnit cells each. The colon column is always blank. Past the end of
// the frame the columns are blank, except in continuous mode where a frame
// wider than the viewport wraps around to its start.
func RenderWindow(frame []uint16, offset int, units int, mode ScrollMode) []uint16 {
	data := make([]uint16, units*ColumnsPerUnit)
	length := len(frame)
	wrap := mode == ScrollContinuous && length > units*CharsPerUnit
	pos := offset
	if pos < 0 {
		pos = 0
	}
	for i := range data {
		if !activeColumn(i) {
			continue
		}
		if pos >= length {
			if !wrap {
				continue
			}
			pos %= length
		}
		data[i] = frame[pos]
		pos++
	}
	return data
}
