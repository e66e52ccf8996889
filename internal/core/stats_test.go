package core

import (
	"fmt"
	"testing"
)

func TestAggregateMarch2024Scenario(t *testing.T) {
	l := Ledger{
		"2024-03-05": SchoolMenu,
		"2024-03-06": PackedLunch,
		"2024-03-07": Absent,
	}
	p := PricingPolicy{
		Menu:         Money{Cents: 500},
		PackedLunch:  Money{Cents: 350},
		FixedMonthly: Money{Cents: 12000},
	}

	st := Aggregate(l, p, 2024, 3)
	if st.MenuDays != 1 || st.PackedLunchDays != 1 || st.AbsentDays != 1 || st.NoClassesDays != 0 {
		t.Fatalf("unexpected counts: %+v", st)
	}
	if st.MenuCost.Cents != 500 || st.PackedLunchCost.Cents != 350 || st.TotalCost.Cents != 850 {
		t.Fatalf("unexpected costs: %+v", st)
	}
	if !st.HasSavings || st.Savings.Cents != 11150 {
		t.Fatalf("expected savings 111.50, got %+v", st)
	}
}

func TestAggregateNoFixedPlan(t *testing.T) {
	l := Ledger{"2024-03-05": SchoolMenu}
	p := PricingPolicy{Menu: Money{Cents: 500}}
	st := Aggregate(l, p, 2024, 3)
	if st.HasSavings {
		t.Fatalf("fixed == 0 must not compute savings: %+v", st)
	}
	if st.Savings.Cents != 0 {
		t.Fatalf("savings should stay zero: %+v", st)
	}
}

func TestAggregateNegativeSavings(t *testing.T) {
	l := Ledger{}
	for _, d := range []string{"2024-03-04", "2024-03-05", "2024-03-06"} {
		l = l.Toggle(d, SchoolMenu)
	}
	p := PricingPolicy{Menu: Money{Cents: 5000}, FixedMonthly: Money{Cents: 10000}}
	st := Aggregate(l, p, 2024, 3)
	if st.Savings.Cents != -5000 {
		t.Fatalf("expected -5000, got %d", st.Savings.Cents)
	}
}

func TestAggregateMonthBoundaries(t *testing.T) {
	l := Ledger{
		"2024-02-29": SchoolMenu, // previous month
		"2024-03-01": SchoolMenu,
		"2024-03-31": PackedLunch,
		"2024-04-01": SchoolMenu, // next month
		"2023-03-15": Absent,     // same month, other year
		"not-a-date": SchoolMenu, // inert
	}
	st := Aggregate(l, PricingPolicy{}, 2024, 3)
	if st.MenuDays != 1 || st.PackedLunchDays != 1 || st.AbsentDays != 0 {
		t.Fatalf("unexpected counts: %+v", st)
	}
}

// The four per-designation counts must add up to the number of entries the
// month has; nothing is ever counted twice or dropped.
func TestAggregateCountsPartitionMonth(t *testing.T) {
	l := Ledger{
		"2024-03-01": SchoolMenu,
		"2024-03-04": SchoolMenu,
		"2024-03-05": PackedLunch,
		"2024-03-06": Absent,
		"2024-03-07": NoClasses,
		"2024-03-08": NoClasses,
		"2024-04-02": SchoolMenu,
	}
	st := Aggregate(l, PricingPolicy{}, 2024, 3)

	inMarch := 0
	for date := range l {
		if inMonth(date, 2024, 3) {
			inMarch++
		}
	}
	if st.DecidedDays() != inMarch {
		t.Fatalf("partition broken: counts sum %d, entries %d", st.DecidedDays(), inMarch)
	}
}

func TestAggregateIsDeterministic(t *testing.T) {
	l := Ledger{"2024-03-05": SchoolMenu, "2024-03-06": PackedLunch}
	p := DefaultPricing()
	a := Aggregate(l, p, 2024, 3)
	b := Aggregate(l, p, 2024, 3)
	if a != b {
		t.Fatalf("same inputs produced different stats: %+v vs %+v", a, b)
	}
}

func TestAggregateCostIdentity(t *testing.T) {
	cases := []struct {
		menu, vianda int64
		menuN, viaN  int
	}{
		{500, 350, 3, 2},
		{0, 0, 5, 5},
		{123, 77, 0, 4},
	}
	for i, tc := range cases {
		l := Ledger{}
		for d := 1; d <= tc.menuN; d++ {
			l[dayKey(2024, 3, d)] = SchoolMenu
		}
		for d := 10; d < 10+tc.viaN; d++ {
			l[dayKey(2024, 3, d)] = PackedLunch
		}
		p := PricingPolicy{Menu: Money{Cents: tc.menu}, PackedLunch: Money{Cents: tc.vianda}}
		st := Aggregate(l, p, 2024, 3)
		want := tc.menu*int64(tc.menuN) + tc.vianda*int64(tc.viaN)
		if st.TotalCost.Cents != want {
			t.Fatalf("case %d: total %d, want %d", i, st.TotalCost.Cents, want)
		}
	}
}

func dayKey(y, m, d int) string {
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d)
}
