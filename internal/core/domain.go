package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const (
	SchoolMenu  Designation = "Menú Escolar"
	PackedLunch Designation = "Vianda"
	Absent      Designation = "Ausente"
	NoClasses   Designation = "No Hubo Clases"
)

type (
	// Designation is the meal/attendance state recorded for a single day.
	// The set is closed; the wire values match the records the web client
	// writes so existing bundles stay readable.
	Designation string

	// Ledger maps an ISO calendar date (YYYY-MM-DD) to its designation.
	// A date with no entry means "undecided", which is distinct from every
	// designation.
	Ledger map[string]Designation

	// WeeklyMenuPlan maps an ISO calendar date to a free-text lunch
	// description. Keys need not align with Ledger keys.
	WeeklyMenuPlan map[string]string

	// StudentProfile carries the display data attached to a bundle. On the
	// wire it is a bare string, matching the web client's
	// "studentName" field; see MarshalJSON.
	StudentProfile struct {
		Name string `json:"name"`
	}

	// PricingPolicy holds the per-unit costs and the optional fixed-plan
	// alternative. FixedMonthly == 0 means no fixed-plan comparison.
	PricingPolicy struct {
		Menu         Money `json:"menu"`
		PackedLunch  Money `json:"vianda"`
		FixedMonthly Money `json:"fixed"`
	}

	// MenuBundle is the unit of persistence: everything one shareable
	// identifier stands for. Field names follow the web client's
	// stored JSON.
	MenuBundle struct {
		Ledger     Ledger         `json:"selections"`
		Pricing    PricingPolicy  `json:"prices"`
		Profile    StudentProfile `json:"studentName"`
		WeeklyMenu WeeklyMenuPlan `json:"weeklyMenu"`
	}
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidDesignation = errors.New("invalid designation")
)

// DateLayout is the calendar key format used by Ledger and WeeklyMenuPlan.
const DateLayout = "2006-01-02"

// Valid reports whether d is one of the four known designations.
func (d Designation) Valid() bool {
	switch d {
	case SchoolMenu, PackedLunch, Absent, NoClasses:
		return true
	}
	return false
}

// ParseDesignation maps a wire value back to a Designation.
func ParseDesignation(s string) (Designation, error) {
	d := Designation(s)
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidDesignation, s)
	}
	return d, nil
}

func (p PricingPolicy) Validate() error {
	for _, m := range []Money{p.Menu, p.PackedLunch, p.FixedMonthly} {
		if m.Cents < 0 {
			return ErrInvalidAmount
		}
	}
	return nil
}

// HasFixedPlan reports whether a fixed-plan comparison applies.
func (p PricingPolicy) HasFixedPlan() bool {
	return p.FixedMonthly.Cents > 0
}

// DefaultPricing is what a fresh session starts from: menu 5,
// vianda 3.50, fixed plan 120.
func DefaultPricing() PricingPolicy {
	return PricingPolicy{
		Menu:         Money{Cents: 500},
		PackedLunch:  Money{Cents: 350},
		FixedMonthly: Money{Cents: 12000},
	}
}

// NewBundle returns the bundle a fresh session starts from.
func NewBundle() MenuBundle {
	return MenuBundle{
		Ledger:     Ledger{},
		Pricing:    DefaultPricing(),
		WeeklyMenu: WeeklyMenuPlan{},
	}
}

// Normalize replaces nil maps with empty ones. Loaded bundles may omit
// sections entirely; the rest of the code assumes non-nil maps.
func (b MenuBundle) Normalize() MenuBundle {
	if b.Ledger == nil {
		b.Ledger = Ledger{}
	}
	if b.WeeklyMenu == nil {
		b.WeeklyMenu = WeeklyMenuPlan{}
	}
	return b
}

// MarshalJSON encodes the profile as its bare name string.
func (p StudentProfile) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Name)
}

// UnmarshalJSON accepts either a bare string (the stored format) or an
// object with a "name" field.
func (p *StudentProfile) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		p.Name = s
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("student profile: %w", err)
	}
	p.Name = obj.Name
	return nil
}

// inMonth reports whether date (YYYY-MM-DD) falls inside the given calendar
// month. Malformed dates never match; they are inert rather than an error.
func inMonth(date string, year int, month time.Month) bool {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return false
	}
	return t.Year() == year && t.Month() == month
}
