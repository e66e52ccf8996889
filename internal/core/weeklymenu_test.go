package core

import (
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestWeekStart(t *testing.T) {
	cases := []struct {
		day  string
		want string
	}{
		{"2024-03-04", "2024-03-04"}, // Monday maps to itself
		{"2024-03-06", "2024-03-04"}, // Wednesday
		{"2024-03-09", "2024-03-04"}, // Saturday
		{"2024-03-10", "2024-03-04"}, // Sunday closes the week, does not open one
		{"2024-03-11", "2024-03-11"}, // next Monday
	}
	for _, tc := range cases {
		got := WeekStart(date(tc.day)).Format(DateLayout)
		if got != tc.want {
			t.Fatalf("WeekStart(%s) = %s, want %s", tc.day, got, tc.want)
		}
	}
}

func TestRepeatTemplateWeeksCopiesFortnightForward(t *testing.T) {
	plan := WeeklyMenuPlan{"2024-03-04": "Lentejas"}

	got := plan.RepeatTemplateWeeks(date("2024-03-04"))

	if got["2024-03-18"] != "Lentejas" {
		t.Fatalf("week-1 Monday not copied to week 3: %v", got)
	}
	if _, ok := got["2024-03-25"]; ok {
		t.Fatalf("week 4 must stay untouched without a week-2 source: %v", got)
	}
}

func TestRepeatTemplateWeeksBothTemplateWeeks(t *testing.T) {
	plan := WeeklyMenuPlan{
		"2024-03-05": "Milanesas", // week 1 Tuesday
		"2024-03-13": "Guiso",     // week 2 Wednesday
		"2024-03-09": "Asado",     // week 1 Saturday: weekends never repeat
	}

	got := plan.RepeatTemplateWeeks(date("2024-03-07"))

	if got["2024-03-19"] != "Milanesas" {
		t.Fatalf("week 1 -> week 3 copy missing: %v", got)
	}
	if got["2024-03-27"] != "Guiso" {
		t.Fatalf("week 2 -> week 4 copy missing: %v", got)
	}
	if _, ok := got["2024-03-23"]; ok {
		t.Fatalf("Saturday entry must not be copied: %v", got)
	}
}

func TestRepeatTemplateWeeksIdempotent(t *testing.T) {
	plan := WeeklyMenuPlan{
		"2024-03-04": "Lentejas",
		"2024-03-06": "Pollo con arroz",
		"2024-03-12": "Tarta de verdura",
	}
	ref := date("2024-03-05")

	once := plan.RepeatTemplateWeeks(ref)
	twice := once.RepeatTemplateWeeks(ref)

	if len(once) != len(twice) {
		t.Fatalf("second application changed size: %d vs %d", len(once), len(twice))
	}
	for k, v := range once {
		if twice[k] != v {
			t.Fatalf("second application changed %s: %q vs %q", k, v, twice[k])
		}
	}
}

func TestRepeatTemplateWeeksKeepsExistingTargets(t *testing.T) {
	plan := WeeklyMenuPlan{
		"2024-03-18": "Ravioles", // week 3, no week-1 source on that weekday
	}
	got := plan.RepeatTemplateWeeks(date("2024-03-04"))
	if got["2024-03-18"] != "Ravioles" {
		t.Fatalf("pre-existing week-3 entry clobbered: %v", got)
	}
}

func TestRepeatTemplateWeeksSundayAnchor(t *testing.T) {
	// Sunday 2024-03-10 belongs to the week of Monday 2024-03-04.
	plan := WeeklyMenuPlan{"2024-03-04": "Lentejas"}
	got := plan.RepeatTemplateWeeks(date("2024-03-10"))
	if got["2024-03-18"] != "Lentejas" {
		t.Fatalf("Sunday anchor resolved to the wrong week: %v", got)
	}
}

func TestSetDayStoresVerbatim(t *testing.T) {
	var plan WeeklyMenuPlan
	plan = plan.SetDay("2024-03-04", "Lentejas")
	plan = plan.SetDay("2024-03-04", "Fideos")
	if plan["2024-03-04"] != "Fideos" {
		t.Fatalf("upsert failed: %v", plan)
	}

	// Empty text clears the description but keeps the entry.
	plan = plan.SetDay("2024-03-04", "")
	if v, ok := plan["2024-03-04"]; !ok || v != "" {
		t.Fatalf("empty text should be stored as-is: %v", plan)
	}
}

func TestSetDayDoesNotMutateReceiver(t *testing.T) {
	orig := WeeklyMenuPlan{"2024-03-04": "Lentejas"}
	_ = orig.SetDay("2024-03-04", "Fideos")
	if orig["2024-03-04"] != "Lentejas" {
		t.Fatalf("receiver mutated: %v", orig)
	}
}
