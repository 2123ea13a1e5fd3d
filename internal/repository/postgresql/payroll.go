package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/worklens/attendance-backend-go/internal/domain/payroll"
	"github.com/worklens/attendance-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

// Create implements payroll.PayslipRepository. The payslip and its
// worked-day lines are inserted in one transaction.
func (p *payrollRepository) Create(ctx context.Context, payslip payroll.Payslip) (payroll.Payslip, error) {
	err := WithTransaction(ctx, p.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO payslips (
				company_id, employee_id, sheet_id, name, date_from, date_to, status
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7
			) RETURNING id, created_at, updated_at
		`,
			payslip.CompanyID, payslip.EmployeeID, payslip.SheetID,
			payslip.Name, payslip.DateFrom, payslip.DateTo, payslip.Status,
		).Scan(&payslip.ID, &payslip.CreatedAt, &payslip.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to create payslip: %w", err)
		}

		for i := range payslip.WorkedDayLines {
			line := &payslip.WorkedDayLines[i]
			line.PayslipID = payslip.ID
			err := tx.QueryRow(ctx, `
				INSERT INTO payslip_worked_day_lines (
					payslip_id, name, code, sequence, number_of_days, number_of_hours
				) VALUES (
					$1, $2, $3, $4, $5, $6
				) RETURNING id
			`,
				line.PayslipID, line.Name, line.Code, line.Sequence,
				line.NumberOfDays, line.NumberOfHours,
			).Scan(&line.ID)
			if err != nil {
				return fmt.Errorf("failed to create worked day line: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return payroll.Payslip{}, err
	}

	return payslip, nil
}

// GetByID implements payroll.PayslipRepository.
func (p *payrollRepository) GetByID(ctx context.Context, id string, companyID string) (payroll.Payslip, error) {
	return p.get(ctx, `WHERE id = $1 AND company_id = $2`, id, companyID)
}

// GetBySheetID implements payroll.PayslipRepository.
func (p *payrollRepository) GetBySheetID(ctx context.Context, sheetID string, companyID string) (payroll.Payslip, error) {
	return p.get(ctx, `WHERE sheet_id = $1 AND company_id = $2`, sheetID, companyID)
}

func (p *payrollRepository) get(ctx context.Context, where string, args ...interface{}) (payroll.Payslip, error) {
	q := GetQuerier(ctx, p.db)

	query := fmt.Sprintf(`
		SELECT id, company_id, employee_id, sheet_id, name, date_from, date_to, status, created_at, updated_at
		FROM payslips
		%s
	`, where)

	var slip payroll.Payslip
	err := q.QueryRow(ctx, query, args...).Scan(
		&slip.ID, &slip.CompanyID, &slip.EmployeeID, &slip.SheetID,
		&slip.Name, &slip.DateFrom, &slip.DateTo, &slip.Status,
		&slip.CreatedAt, &slip.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}

	rows, err := q.Query(ctx, `
		SELECT id, payslip_id, name, code, sequence, number_of_days, number_of_hours
		FROM payslip_worked_day_lines
		WHERE payslip_id = $1
		ORDER BY sequence ASC
	`, slip.ID)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to list worked day lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var line payroll.WorkedDayLine
		if err := rows.Scan(&line.ID, &line.PayslipID, &line.Name, &line.Code, &line.Sequence, &line.NumberOfDays, &line.NumberOfHours); err != nil {
			return payroll.Payslip{}, fmt.Errorf("failed to scan worked day line: %w", err)
		}
		slip.WorkedDayLines = append(slip.WorkedDayLines, line)
	}
	if err := rows.Err(); err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to iterate worked day lines: %w", err)
	}

	return slip, nil
}

func NewPayrollRepository(db *database.DB) payroll.PayslipRepository {
	return &payrollRepository{db: db}
}
