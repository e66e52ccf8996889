// Package session owns the in-memory application state for one shareable
// menu identifier: the bundle is loaded once at start, every edit is
// applied atomically in memory, and each edit is followed by a best-effort
// save through the injected gateway.
package session

import (
	"context"
	"errors"
	"maps"
	"time"

	"github.com/PCalderonpm/menu-escolar/internal/core"
	applog "github.com/PCalderonpm/menu-escolar/internal/log"
	"github.com/PCalderonpm/menu-escolar/internal/menus"
)

// Session is a single-user editing context. It is not safe for concurrent
// use: the model is one parent editing one student's month at a time.
type Session struct {
	gw     menus.Gateway
	logger *applog.Logger

	id     string
	bundle core.MenuBundle
}

// Open resolves the session state for id. A missing or unreadable record
// never fails the session: it degrades to a fresh bundle, and the first
// save mints a new identifier. The returned session is always usable.
func Open(ctx context.Context, gw menus.Gateway, id string, logger *applog.Logger) *Session {
	s := &Session{
		gw:     gw,
		logger: logger.WithComponent(applog.ComponentSession),
	}

	if id != "" {
		b, err := gw.Load(ctx, id)
		if err == nil {
			s.id = id
			s.bundle = b.Normalize()
			s.logger.InfoContext(ctx, "Session restored",
				applog.FieldMenuID, id,
				"ledger_entries", len(s.bundle.Ledger))
			return s
		}
		if errors.Is(err, menus.ErrNotFound) {
			s.logger.WarnContext(ctx, "Stored menu not found, starting fresh",
				applog.FieldMenuID, id)
		} else {
			s.logger.ErrorContext(ctx, "Menu load failed, starting fresh",
				applog.FieldMenuID, id, applog.FieldError, err)
		}
	}

	s.bundle = core.NewBundle()
	// Mint the identifier up front so the share link exists immediately.
	// If this save fails the id stays empty and the next edit retries.
	s.save(ctx)
	return s
}

// ID returns the session's persistent identifier, empty if no save has
// succeeded yet.
func (s *Session) ID() string {
	return s.id
}

// Bundle returns a copy of the current state for rendering. The maps are
// cloned so callers cannot reach into session state.
func (s *Session) Bundle() core.MenuBundle {
	b := s.bundle
	b.Ledger = maps.Clone(s.bundle.Ledger)
	b.WeeklyMenu = maps.Clone(s.bundle.WeeklyMenu)
	return b
}

// ToggleMeal flips the designation recorded for date and persists.
func (s *Session) ToggleMeal(ctx context.Context, date string, d core.Designation) {
	s.bundle.Ledger = s.bundle.Ledger.Toggle(date, d)
	s.logger.InfoContext(ctx, "Meal toggled",
		applog.FieldDate, date,
		applog.FieldDesignation, string(d),
		applog.FieldOperation, applog.OpToggle)
	s.save(ctx)
}

// SetPricing replaces the pricing policy and persists.
func (s *Session) SetPricing(ctx context.Context, p core.PricingPolicy) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.bundle.Pricing = p
	s.save(ctx)
	return nil
}

// SetStudentName updates the profile and persists.
func (s *Session) SetStudentName(ctx context.Context, name string) {
	s.bundle.Profile.Name = name
	s.save(ctx)
}

// SetDayMenu upserts the weekly-menu description for date and persists.
func (s *Session) SetDayMenu(ctx context.Context, date, text string) {
	s.bundle.WeeklyMenu = s.bundle.WeeklyMenu.SetDay(date, text)
	s.save(ctx)
}

// RepeatTemplateWeeks mirrors the two template weeks around ref onto the
// following fortnight and persists.
func (s *Session) RepeatTemplateWeeks(ctx context.Context, ref time.Time) {
	s.bundle.WeeklyMenu = s.bundle.WeeklyMenu.RepeatTemplateWeeks(ref)
	s.logger.InfoContext(ctx, "Template weeks repeated",
		applog.FieldDate, ref.Format(core.DateLayout),
		applog.FieldOperation, applog.OpRepeat)
	s.save(ctx)
}

// Stats recomputes the monthly aggregation from current state.
func (s *Session) Stats(year, month int) core.MonthlyStats {
	return core.Aggregate(s.bundle.Ledger, s.bundle.Pricing, year, month)
}

// save persists the current bundle. Failures are logged and swallowed: a
// broken gateway must never lose or block in-memory edits, and the next
// edit simply tries again with the then-latest snapshot.
func (s *Session) save(ctx context.Context) {
	id, err := s.gw.Save(ctx, s.id, s.bundle)
	if err != nil {
		s.logger.ErrorContext(ctx, "Menu save failed, keeping local edits",
			applog.FieldMenuID, s.id,
			applog.FieldOperation, applog.OpSave,
			applog.FieldError, err)
		return
	}
	if s.id == "" {
		s.logger.InfoContext(ctx, "Menu identifier minted", applog.FieldMenuID, id)
	}
	s.id = id
}
