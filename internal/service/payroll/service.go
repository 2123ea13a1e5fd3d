package payroll

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/worklens/attendance-backend-go/internal/domain/payroll"
	"github.com/worklens/attendance-backend-go/internal/domain/timesheet"
)

type PayrollServiceImpl struct {
	payroll.PayslipRepository
}

func NewPayrollService(payslipRepo payroll.PayslipRepository) payroll.PayrollService {
	return &PayrollServiceImpl{PayslipRepository: payslipRepo}
}

// ProjectSheet implements payroll.PayrollService. The projection is
// idempotent per sheet: an existing payslip for the sheet is returned
// as is.
func (s *PayrollServiceImpl) ProjectSheet(ctx context.Context, sheet timesheet.Sheet) (payroll.Payslip, error) {
	existing, err := s.PayslipRepository.GetBySheetID(ctx, sheet.ID, sheet.CompanyID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) && !errors.Is(err, payroll.ErrPayslipNotFound) {
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip by sheet: %w", err)
	}

	slip := payroll.Payslip{
		CompanyID:  sheet.CompanyID,
		EmployeeID: sheet.EmployeeID,
		SheetID:    sheet.ID,
		Name:       fmt.Sprintf("Payslip of %s", sheet.Name),
		DateFrom:   sheet.DateFrom,
		DateTo:     sheet.DateTo,
		Status:     payroll.PayslipStatusDraft,
		WorkedDayLines: []payroll.WorkedDayLine{
			{
				Name:          "Overtime",
				Code:          payroll.CodeOvertime,
				Sequence:      30,
				NumberOfDays:  sheet.Totals.NoOvertime,
				NumberOfHours: sheet.Totals.TotOvertime,
			},
			{
				Name:          "Absence",
				Code:          payroll.CodeAbsence,
				Sequence:      35,
				NumberOfDays:  sheet.Totals.NoAbsence,
				NumberOfHours: sheet.Totals.TotAbsence,
			},
			{
				Name:          "Late In",
				Code:          payroll.CodeLate,
				Sequence:      40,
				NumberOfDays:  sheet.Totals.NoLate,
				NumberOfHours: sheet.Totals.TotLate,
			},
			{
				Name:          "Difference time",
				Code:          payroll.CodeDiff,
				Sequence:      45,
				NumberOfDays:  sheet.Totals.NoDiff,
				NumberOfHours: sheet.Totals.TotDiff,
			},
		},
	}

	created, err := s.PayslipRepository.Create(ctx, slip)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to create payslip: %w", err)
	}
	return created, nil
}

// GetPayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayslip(ctx context.Context, id string) (payroll.PayslipResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return payroll.PayslipResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return payroll.PayslipResponse{}, fmt.Errorf("company_id claim is missing or invalid")
	}

	slip, err := s.PayslipRepository.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayslipResponse{}, payroll.ErrPayslipNotFound
		}
		return payroll.PayslipResponse{}, fmt.Errorf("failed to get payslip: %w", err)
	}
	return payroll.MapPayslipToResponse(slip), nil
}
