package core

import "time"

// MonthlyStats is the derived view over one calendar month of the ledger.
// It has no state of its own: Aggregate recomputes it from scratch on every
// call, so identical inputs always produce identical output.
type MonthlyStats struct {
	Year  int `json:"year"`
	Month int `json:"month"`

	MenuDays        int `json:"menuDays"`
	PackedLunchDays int `json:"viandaDays"`
	AbsentDays      int `json:"absentDays"`
	NoClassesDays   int `json:"noClassesDays"`

	MenuCost        Money `json:"menuCost"`
	PackedLunchCost Money `json:"viandaCost"`
	TotalCost       Money `json:"totalCost"`

	// Savings is FixedMonthly minus TotalCost and is only meaningful when
	// HasSavings is set; negative means the fixed plan would have been
	// cheaper.
	Savings    Money `json:"savings,omitempty"`
	HasSavings bool  `json:"hasSavings"`
}

// Aggregate derives the stats for one calendar month. Absences and no-class
// days count attendance but cost nothing: no meal was bought on them.
func Aggregate(l Ledger, p PricingPolicy, year, month int) MonthlyStats {
	st := MonthlyStats{Year: year, Month: month}
	m := monthOf(month)
	for date, d := range l {
		if !inMonth(date, year, m) {
			continue
		}
		switch d {
		case SchoolMenu:
			st.MenuDays++
		case PackedLunch:
			st.PackedLunchDays++
		case Absent:
			st.AbsentDays++
		case NoClasses:
			st.NoClassesDays++
		}
	}
	st.MenuCost = p.Menu.Mul(st.MenuDays)
	st.PackedLunchCost = p.PackedLunch.Mul(st.PackedLunchDays)
	st.TotalCost = st.MenuCost.Add(st.PackedLunchCost)
	if p.HasFixedPlan() {
		st.HasSavings = true
		st.Savings = p.FixedMonthly.Sub(st.TotalCost)
	}
	return st
}

// DecidedDays is the total number of ledger entries the month saw.
func (s MonthlyStats) DecidedDays() int {
	return s.MenuDays + s.PackedLunchDays + s.AbsentDays + s.NoClassesDays
}

func monthOf(m int) time.Month {
	return time.Month(m)
}
