package sheets

import (
	"context"

	"samiti/internal/core"
)

// Ports for outbound adapters.
type (
	// LedgerExporter writes one session year's contributions and expenses
	// to an external ledger, replacing whatever was exported before.
	LedgerExporter interface {
		ExportLedger(ctx context.Context, year int, records core.YearRecords) (ref string, err error)
	}
)
