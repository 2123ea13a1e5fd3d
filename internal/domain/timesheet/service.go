package timesheet

import (
	"context"
)

// TimesheetService defines business logic for attendance sheets
type TimesheetService interface {
	// CreateSheet creates a draft sheet after the period overlap check
	CreateSheet(ctx context.Context, req CreateSheetRequest) (SheetResponse, error)

	// GetSheet retrieves a single sheet with totals
	GetSheet(ctx context.Context, id string) (SheetResponse, error)

	// ListSheets retrieves sheets with filters and pagination
	ListSheets(ctx context.Context, filter SheetFilter) (ListSheetResponse, error)

	// DeleteSheet removes a draft or confirmed sheet
	DeleteSheet(ctx context.Context, id string) error

	// ComputeSheet regenerates every line of the sheet and its totals
	ComputeSheet(ctx context.Context, id string) (SheetResponse, error)

	// ConfirmSheet recomputes the sheet and moves it to confirmed
	ConfirmSheet(ctx context.Context, id string) (SheetResponse, error)

	// ApproveSheet projects the payslip and moves the sheet to approved
	ApproveSheet(ctx context.Context, id string) (SheetResponse, error)

	// ResetSheet moves a confirmed sheet back to draft
	ResetSheet(ctx context.Context, id string) (SheetResponse, error)

	// ListLines retrieves the sheet's day records
	ListLines(ctx context.Context, sheetID string) ([]SheetLineResponse, error)

	// AdjustLine manually overrides a line's figures (note required) and
	// re-rolls the sheet totals from the stored lines
	AdjustLine(ctx context.Context, sheetID string, req AdjustLineRequest) (SheetLineResponse, error)

	// BatchCompute creates and computes sheets for several employees over
	// one period
	BatchCompute(ctx context.Context, req BatchComputeRequest) (BatchComputeResponse, error)
}
