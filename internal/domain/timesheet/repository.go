package timesheet

import (
	"context"
)

// SheetRepository defines data access for attendance sheets and their
// lines. All methods include companyID to prevent cross-company access.
type SheetRepository interface {
	Create(ctx context.Context, sheet Sheet) (Sheet, error)
	GetByID(ctx context.Context, id string, companyID string) (Sheet, error)
	List(ctx context.Context, filter SheetFilter, companyID string) ([]Sheet, int64, error)
	Delete(ctx context.Context, id string, companyID string) error

	// ListByEmployee retrieves all sheets of one employee, used for the
	// period overlap check at creation time.
	ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]Sheet, error)

	// UpdateState persists a state transition.
	UpdateState(ctx context.Context, id string, state SheetState, companyID string) error

	// UpdatePayslipID links the projected payslip to the sheet.
	UpdatePayslipID(ctx context.Context, id string, payslipID string, companyID string) error

	// UpdateTotals persists the totals rollup.
	UpdateTotals(ctx context.Context, id string, totals Totals, companyID string) error

	// ReplaceLines deletes every line of the sheet and inserts the new
	// set. Callers run it inside a transaction together with
	// UpdateTotals so a recomputation is all-or-nothing.
	ReplaceLines(ctx context.Context, sheetID string, lines []SheetLine) error

	ListLines(ctx context.Context, sheetID string, companyID string) ([]SheetLine, error)
	GetLine(ctx context.Context, lineID string, companyID string) (SheetLine, error)

	// UpdateLineAdjustment overrides a line's adjusted figures and note.
	UpdateLineAdjustment(ctx context.Context, line SheetLine) error
}
