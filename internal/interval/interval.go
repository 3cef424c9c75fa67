package interval

import "time"

type Entry struct {
	Label     string
	Magnitude time.Duration
}

type Direction int

const (
	Forward Direction = iota
	Backward
)

func (d Direction) Sign() time.Duration {
	if d == Backward {
		return -1
	}
	return 1
}

func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

const day = 24 * time.Hour

// Entries are listed in menu order. Do not reorder: operators rely on the
// numbers staying the same between runs.
var table = []Entry{
	{"1m", time.Minute},
	{"5m", 5 * time.Minute},
	{"15m", 15 * time.Minute},
	{"30m", 30 * time.Minute},
	{"1h", time.Hour},
	{"3h", 3 * time.Hour},
	{"6h", 6 * time.Hour},
	{"12h", 12 * time.Hour},
	{"1d", day},
	{"1w", 7 * day},
}

// Table returns a copy of the interval table in display order.
func Table() []Entry {
	entries := make([]Entry, len(table))
	copy(entries, table)
	return entries
}

// Len is the number of entries; the "back" option sits at Len()+1.
func Len() int {
	return len(table)
}

// Target shifts now by the entry magnitude in the given direction.
func Target(now time.Time, entry Entry, direction Direction) time.Time {
	return now.Add(direction.Sign() * entry.Magnitude)
}
