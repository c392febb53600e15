package lyrics

// where the default times of a new line come from
type SlotMode string

const (
	// starts at the playback position
	SlotCurrent SlotMode = "current"
	// starts where the latest line leaves off
	SlotLast SlotMode = "last"
)

// default duration given to a freshly added line
const DefaultSlotLength = 5.0

// NextSlot proposes start and end times for a line about to be added.
func NextSlot(lines []Line, now float64, mode SlotMode) (start, end float64) {
	if mode != SlotLast {
		return now, now + DefaultSlotLength
	}

	if len(lines) == 0 {
		return 0, DefaultSlotLength
	}
	latest := lines[0]
	for _, line := range lines[1:] {
		if line.Start > latest.Start {
			latest = line
		}
	}
	if latest.HasEnd {
		return latest.End, latest.End + DefaultSlotLength
	}
	return latest.Start + DefaultSlotLength, latest.Start + 2*DefaultSlotLength
}
