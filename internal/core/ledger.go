package core

import "maps"

// Toggle returns a new Ledger with the entry for date flipped: setting it
// when it differs from designation and removing it when it already matches.
// Removal is the only way an entry disappears; there is no separate clear
// operation. The receiver is never mutated.
//
// Date strings are taken as-is. A malformed date produces an entry that no
// month will ever aggregate, which is harmless.
func (l Ledger) Toggle(date string, d Designation) Ledger {
	next := maps.Clone(l)
	if next == nil {
		next = Ledger{}
	}
	if next[date] == d {
		delete(next, date)
		return next
	}
	next[date] = d
	return next
}

// Count returns the number of entries with the given designation inside
// the calendar month.
func (l Ledger) Count(d Designation, year, month int) int {
	n := 0
	for date, got := range l {
		if got == d && inMonth(date, year, monthOf(month)) {
			n++
		}
	}
	return n
}
