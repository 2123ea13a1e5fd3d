package payroll

import "context"

// PayslipRepository defines data access for payslip projections.
type PayslipRepository interface {
	Create(ctx context.Context, payslip Payslip) (Payslip, error)
	GetByID(ctx context.Context, id string, companyID string) (Payslip, error)
	GetBySheetID(ctx context.Context, sheetID string, companyID string) (Payslip, error)
}
