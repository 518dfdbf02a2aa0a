package sevenseg_backpack

import (
	"fmt"
	"time"

	"github.com/lestrrat-go/strftime"
)

// PrintBufferSize bounds formatted output, including the C-style terminator
// slot, so at most PrintBufferSize-1 bytes are ever printed by Printf/Strftime.
const PrintBufferSize = 64

// Writer collects the frame for one refresh.
type Writer struct {
	cells []uint16
}

// Print encodes text onto the end of the frame.
func (w *Writer) Print(text string) {
	w.cells = Encode(w.cells, text)
}

// Printf formats into a bounded buffer, dropping whatever does not fit.
func (w *Writer) Printf(format string, args ...interface{}) {
	w.printBounded(fmt.Sprintf(format, args...))
}

// Strftime prints t using a strftime(3) format such as "%H:%M", truncated
// like Printf. A format with an unknown verb prints nothing.
func (w *Writer) Strftime(format string, t time.Time) {
	s, err := strftime.Format(format, t)
	if err != nil {
		return
	}
	w.printBounded(s)
}

func (w *Writer) printBounded(s string) {
	if len(s) == 0 {
		return
	}
	if len(s) > PrintBufferSize-1 {
		s = s[:PrintBufferSize-1]
	}
	w.Print(s)
}

// Len is the number of cells written so far.
func (w *Writer) Len() int {
	return len(w.cells)
}
