package preview

import "math"

// height of one lyric row in scroll units
const RowHeight = 48.0

// Viewport is a fixed number of terminal rows scrolled over the lyric list.
// It implements playback.Viewport.
type Viewport struct {
	Rows   int
	offset float64
	count  func() int
}

// NewViewport shows rows lines of a list whose length count reports.
func NewViewport(rows int, count func() int) *Viewport {
	if rows < 1 {
		rows = 1
	}
	return &Viewport{Rows: rows, count: count}
}

func (v *Viewport) ScrollOffset() float64 {
	return v.offset
}

func (v *Viewport) SetScrollOffset(offset float64) {
	v.offset = math.Max(0, math.Min(offset, v.maxOffset()))
}

// OffsetOf centres the row at index.
func (v *Viewport) OffsetOf(index int) (float64, bool) {
	if index < 0 || index >= v.count() {
		return 0, false
	}
	offset := float64(index)*RowHeight + RowHeight/2 - float64(v.Rows)*RowHeight/2
	return math.Max(0, math.Min(offset, v.maxOffset())), true
}

// index of the topmost visible row
func (v *Viewport) FirstRow() int {
	return int(math.Round(v.offset / RowHeight))
}

func (v *Viewport) maxOffset() float64 {
	return math.Max(0, float64(v.count()-v.Rows)*RowHeight)
}
