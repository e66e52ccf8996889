package core

import (
	"maps"
	"time"
)

// SetDay returns a new plan with the description for date upserted. Empty
// text is stored verbatim rather than deleting the entry; unlike ledger
// designations, menu descriptions are not exclusive states, so setting a
// day always upserts.
func (p WeeklyMenuPlan) SetDay(date, text string) WeeklyMenuPlan {
	next := maps.Clone(p)
	if next == nil {
		next = WeeklyMenuPlan{}
	}
	next[date] = text
	return next
}

// RepeatTemplateWeeks returns a new plan where the Monday–Friday entries of
// the two template weeks anchored at ref are copied fourteen days forward:
// week 1 into week 3 and week 2 into week 4. Weekdays without a template
// entry leave their target day untouched, so the operation is idempotent.
//
// Weeks start on Monday; a Sunday ref belongs to the week that started the
// previous Monday.
func (p WeeklyMenuPlan) RepeatTemplateWeeks(ref time.Time) WeeklyMenuPlan {
	next := maps.Clone(p)
	if next == nil {
		next = WeeklyMenuPlan{}
	}
	week1 := WeekStart(ref)
	week2 := week1.AddDate(0, 0, 7)
	for _, start := range []time.Time{week1, week2} {
		for i := 0; i < 5; i++ {
			src := start.AddDate(0, 0, i).Format(DateLayout)
			if menu, ok := next[src]; ok {
				dst := start.AddDate(0, 0, i+14).Format(DateLayout)
				next[dst] = menu
			}
		}
	}
	return next
}

// WeekStart returns the Monday that begins the week containing t,
// truncated to midnight in t's location.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7 // days since Monday; Sunday -> 6
	t = t.AddDate(0, 0, -offset)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
