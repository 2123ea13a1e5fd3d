package payroll

import (
	"context"

	"github.com/worklens/attendance-backend-go/internal/domain/timesheet"
)

// PayrollService projects approved sheet totals into payslip worked-day
// lines.
type PayrollService interface {
	// ProjectSheet builds and persists the payslip for a sheet. If the
	// sheet already has a projection, that one is returned instead.
	ProjectSheet(ctx context.Context, sheet timesheet.Sheet) (Payslip, error)

	// GetPayslip retrieves one payslip with its worked-day lines
	GetPayslip(ctx context.Context, id string) (PayslipResponse, error)
}
