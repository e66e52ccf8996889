package sheets

import (
	"context"

	"github.com/PCalderonpm/menu-escolar/internal/core"
)

// MonthlySummary is one exported row: a student's month in numbers.
type MonthlySummary struct {
	MenuID  string
	Student string
	Stats   core.MonthlyStats
}

// SummaryWriter is the outbound port the export worker writes through.
type SummaryWriter interface {
	// WriteSummary upserts the row for (summary.MenuID, year, month).
	WriteSummary(ctx context.Context, summary MonthlySummary) error
}
