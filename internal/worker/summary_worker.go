// Package worker exports monthly summaries to Google Sheets in response
// to menu-saved events.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/PCalderonpm/menu-escolar/internal/amqp"
	"github.com/PCalderonpm/menu-escolar/internal/core"
	"github.com/PCalderonpm/menu-escolar/internal/sheets"
)

// BundleSource is the slice of the storage layer the worker needs: load
// one bundle by id, and enumerate recently touched ids for catch-up.
type BundleSource interface {
	Load(ctx context.Context, id string) (core.MenuBundle, error)
	ListIDs(ctx context.Context, limit int) ([]string, error)
}

// SummaryWorker recomputes the current month's summary for a saved menu
// and mirrors it to the summary sheet.
type SummaryWorker struct {
	source    BundleSource
	writer    sheets.SummaryWriter
	batchSize int

	// now is swapped in tests to pin the month being summarized.
	now func() time.Time
}

func NewSummaryWorker(source BundleSource, writer sheets.SummaryWriter, batchSize int) *SummaryWorker {
	return &SummaryWorker{
		source:    source,
		writer:    writer,
		batchSize: batchSize,
		now:       time.Now,
	}
}

// HandleMenuSaved processes a single menu-saved message from AMQP.
func (w *SummaryWorker) HandleMenuSaved(ctx context.Context, msg *amqp.MenuSavedMessage) error {
	slog.InfoContext(ctx, "Processing menu saved message",
		"menu_id", msg.MenuID,
		"saved_at", msg.SavedAt)

	if err := w.exportMenu(ctx, msg.MenuID); err != nil {
		return fmt.Errorf("export menu %s: %w", msg.MenuID, err)
	}
	return nil
}

// StartupCatchUp re-exports recently touched menus at worker startup.
// This recovers summaries for saves whose messages were lost while the
// worker was down.
func (w *SummaryWorker) StartupCatchUp(ctx context.Context) error {
	ids, err := w.source.ListIDs(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("list menus for startup catch-up: %w", err)
	}

	if len(ids) == 0 {
		slog.InfoContext(ctx, "No menus found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Re-exporting menus on startup", "count", len(ids))

	exported := 0
	failed := 0
	for _, id := range ids {
		if err := w.exportMenu(ctx, id); err != nil {
			slog.ErrorContext(ctx, "Failed to export menu during catch-up",
				"menu_id", id, "error", err)
			failed++
			continue
		}
		exported++
	}

	slog.InfoContext(ctx, "Startup catch-up completed",
		"total", len(ids),
		"exported", exported,
		"errors", failed)

	return nil
}

// PeriodicExport refreshes summaries for the most recently touched
// menus. It is called on a timer as a backstop for lost messages.
func (w *SummaryWorker) PeriodicExport(ctx context.Context) error {
	ids, err := w.source.ListIDs(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list menus for periodic export: %w", err)
	}

	for _, id := range ids {
		if err := w.exportMenu(ctx, id); err != nil {
			slog.ErrorContext(ctx, "Failed to export menu", "menu_id", id, "error", err)
		}
	}
	return nil
}

func (w *SummaryWorker) exportMenu(ctx context.Context, id string) error {
	bundle, err := w.source.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("load menu from storage: %w", err)
	}

	ref := w.now()
	stats := core.Aggregate(bundle.Ledger, bundle.Pricing, ref.Year(), int(ref.Month()))

	summary := sheets.MonthlySummary{
		MenuID:  id,
		Student: bundle.Profile.Name,
		Stats:   stats,
	}

	if err := w.writer.WriteSummary(ctx, summary); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	slog.InfoContext(ctx, "Summary exported",
		"menu_id", id,
		"year", stats.Year,
		"month", stats.Month,
		"total_cost_cents", stats.TotalCost.Cents)

	return nil
}
