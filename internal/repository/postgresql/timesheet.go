package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/worklens/attendance-backend-go/internal/domain/timesheet"
	"github.com/worklens/attendance-backend-go/internal/pkg/database"
)

type timesheetRepository struct {
	db *database.DB
}

// Create implements timesheet.SheetRepository.
func (t *timesheetRepository) Create(ctx context.Context, sheet timesheet.Sheet) (timesheet.Sheet, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		INSERT INTO attendance_sheets (
			company_id, employee_id, name, date_from, date_to, policy_id, state
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		sheet.CompanyID,
		sheet.EmployeeID,
		sheet.Name,
		sheet.DateFrom,
		sheet.DateTo,
		sheet.PolicyID,
		sheet.State,
	).Scan(&sheet.ID, &sheet.CreatedAt, &sheet.UpdatedAt)
	if err != nil {
		return timesheet.Sheet{}, fmt.Errorf("failed to create sheet: %w", err)
	}

	return sheet, nil
}

// GetByID implements timesheet.SheetRepository.
func (t *timesheetRepository) GetByID(ctx context.Context, id string, companyID string) (timesheet.Sheet, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT s.id, s.company_id, s.employee_id, s.name, s.date_from, s.date_to,
			   s.policy_id, s.state, s.payslip_id,
			   s.no_overtime, s.tot_overtime, s.no_late, s.tot_late,
			   s.no_diff, s.tot_diff, s.no_absence, s.tot_absence,
			   s.worked_days, s.tot_worked,
			   s.created_at, s.updated_at, e.name
		FROM attendance_sheets s
		JOIN employees e ON e.id = s.employee_id
		WHERE s.id = $1
		  AND s.company_id = $2
	`

	var sheet timesheet.Sheet
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&sheet.ID, &sheet.CompanyID, &sheet.EmployeeID, &sheet.Name, &sheet.DateFrom, &sheet.DateTo,
		&sheet.PolicyID, &sheet.State, &sheet.PayslipID,
		&sheet.Totals.NoOvertime, &sheet.Totals.TotOvertime, &sheet.Totals.NoLate, &sheet.Totals.TotLate,
		&sheet.Totals.NoDiff, &sheet.Totals.TotDiff, &sheet.Totals.NoAbsence, &sheet.Totals.TotAbsence,
		&sheet.Totals.WorkedDays, &sheet.Totals.TotWorked,
		&sheet.CreatedAt, &sheet.UpdatedAt, &sheet.EmployeeName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.Sheet{}, timesheet.ErrSheetNotFound
		}
		return timesheet.Sheet{}, fmt.Errorf("failed to get sheet: %w", err)
	}

	return sheet, nil
}

// List implements timesheet.SheetRepository.
func (t *timesheetRepository) List(ctx context.Context, filter timesheet.SheetFilter, companyID string) ([]timesheet.Sheet, int64, error) {
	q := GetQuerier(ctx, t.db)

	var conditions []string
	args := []interface{}{companyID}
	conditions = append(conditions, "s.company_id = $1")

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("s.employee_id = $%d", len(args)))
	}
	if filter.State != nil {
		args = append(args, *filter.State)
		conditions = append(conditions, fmt.Sprintf("s.state = $%d", len(args)))
	}
	where := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM attendance_sheets s WHERE %s`, where)
	var total int64
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count sheets: %w", err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	listQuery := fmt.Sprintf(`
		SELECT s.id, s.company_id, s.employee_id, s.name, s.date_from, s.date_to,
			   s.policy_id, s.state, s.payslip_id,
			   s.no_overtime, s.tot_overtime, s.no_late, s.tot_late,
			   s.no_diff, s.tot_diff, s.no_absence, s.tot_absence,
			   s.worked_days, s.tot_worked,
			   s.created_at, s.updated_at, e.name
		FROM attendance_sheets s
		JOIN employees e ON e.id = s.employee_id
		WHERE %s
		ORDER BY s.date_from DESC, s.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list sheets: %w", err)
	}
	defer rows.Close()

	var sheets []timesheet.Sheet
	for rows.Next() {
		var sheet timesheet.Sheet
		if err := rows.Scan(
			&sheet.ID, &sheet.CompanyID, &sheet.EmployeeID, &sheet.Name, &sheet.DateFrom, &sheet.DateTo,
			&sheet.PolicyID, &sheet.State, &sheet.PayslipID,
			&sheet.Totals.NoOvertime, &sheet.Totals.TotOvertime, &sheet.Totals.NoLate, &sheet.Totals.TotLate,
			&sheet.Totals.NoDiff, &sheet.Totals.TotDiff, &sheet.Totals.NoAbsence, &sheet.Totals.TotAbsence,
			&sheet.Totals.WorkedDays, &sheet.Totals.TotWorked,
			&sheet.CreatedAt, &sheet.UpdatedAt, &sheet.EmployeeName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan sheet: %w", err)
		}
		sheets = append(sheets, sheet)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate sheets: %w", err)
	}

	return sheets, total, nil
}

// ListByEmployee implements timesheet.SheetRepository.
func (t *timesheetRepository) ListByEmployee(ctx context.Context, employeeID string, companyID string) ([]timesheet.Sheet, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT id, company_id, employee_id, name, date_from, date_to, policy_id, state, payslip_id, created_at, updated_at
		FROM attendance_sheets
		WHERE employee_id = $1
		  AND company_id = $2
		ORDER BY date_from ASC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee sheets: %w", err)
	}
	defer rows.Close()

	var sheets []timesheet.Sheet
	for rows.Next() {
		var sheet timesheet.Sheet
		if err := rows.Scan(
			&sheet.ID, &sheet.CompanyID, &sheet.EmployeeID, &sheet.Name, &sheet.DateFrom, &sheet.DateTo,
			&sheet.PolicyID, &sheet.State, &sheet.PayslipID, &sheet.CreatedAt, &sheet.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sheet: %w", err)
		}
		sheets = append(sheets, sheet)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sheets: %w", err)
	}

	return sheets, nil
}

// Delete implements timesheet.SheetRepository. Lines go with the sheet
// via ON DELETE CASCADE.
func (t *timesheetRepository) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, t.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_sheets WHERE id = $1 AND company_id = $2`, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete sheet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrSheetNotFound
	}
	return nil
}

// UpdateState implements timesheet.SheetRepository.
func (t *timesheetRepository) UpdateState(ctx context.Context, id string, state timesheet.SheetState, companyID string) error {
	q := GetQuerier(ctx, t.db)

	tag, err := q.Exec(ctx, `
		UPDATE attendance_sheets
		SET state = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3
	`, state, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to update sheet state: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrSheetNotFound
	}
	return nil
}

// UpdatePayslipID implements timesheet.SheetRepository.
func (t *timesheetRepository) UpdatePayslipID(ctx context.Context, id string, payslipID string, companyID string) error {
	q := GetQuerier(ctx, t.db)

	tag, err := q.Exec(ctx, `
		UPDATE attendance_sheets
		SET payslip_id = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3
	`, payslipID, id, companyID)
	if err != nil {
		return fmt.Errorf("failed to update sheet payslip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrSheetNotFound
	}
	return nil
}

// UpdateTotals implements timesheet.SheetRepository.
func (t *timesheetRepository) UpdateTotals(ctx context.Context, id string, totals timesheet.Totals, companyID string) error {
	q := GetQuerier(ctx, t.db)

	tag, err := q.Exec(ctx, `
		UPDATE attendance_sheets
		SET no_overtime = $1, tot_overtime = $2,
			no_late = $3, tot_late = $4,
			no_diff = $5, tot_diff = $6,
			no_absence = $7, tot_absence = $8,
			worked_days = $9, tot_worked = $10,
			updated_at = NOW()
		WHERE id = $11 AND company_id = $12
	`,
		totals.NoOvertime, totals.TotOvertime,
		totals.NoLate, totals.TotLate,
		totals.NoDiff, totals.TotDiff,
		totals.NoAbsence, totals.TotAbsence,
		totals.WorkedDays, totals.TotWorked,
		id, companyID,
	)
	if err != nil {
		return fmt.Errorf("failed to update sheet totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrSheetNotFound
	}
	return nil
}

// ReplaceLines implements timesheet.SheetRepository.
func (t *timesheetRepository) ReplaceLines(ctx context.Context, sheetID string, lines []timesheet.SheetLine) error {
	q := GetQuerier(ctx, t.db)

	if _, err := q.Exec(ctx, `DELETE FROM attendance_sheet_lines WHERE sheet_id = $1`, sheetID); err != nil {
		return fmt.Errorf("failed to delete sheet lines: %w", err)
	}

	query := `
		INSERT INTO attendance_sheet_lines (
			id, sheet_id, date, day_of_week,
			pl_sign_in, pl_sign_out, ac_sign_in, ac_sign_out,
			worked_hours, overtime, act_overtime,
			late_in, act_late_in, diff_time, act_diff_time,
			status, note
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		)
	`

	for _, line := range lines {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate line id: %w", err)
		}
		if _, err := q.Exec(ctx, query,
			id.String(), sheetID, line.Date, line.Weekday,
			line.PlSignIn, line.PlSignOut, line.AcSignIn, line.AcSignOut,
			line.WorkedHours, line.Overtime, line.ActOvertime,
			line.LateIn, line.ActLateIn, line.DiffTime, line.ActDiffTime,
			line.Status, line.Note,
		); err != nil {
			return fmt.Errorf("failed to insert sheet line: %w", err)
		}
	}

	return nil
}

// ListLines implements timesheet.SheetRepository.
func (t *timesheetRepository) ListLines(ctx context.Context, sheetID string, companyID string) ([]timesheet.SheetLine, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT l.id, l.sheet_id, l.date, l.day_of_week,
			   l.pl_sign_in, l.pl_sign_out, l.ac_sign_in, l.ac_sign_out,
			   l.worked_hours, l.overtime, l.act_overtime,
			   l.late_in, l.act_late_in, l.diff_time, l.act_diff_time,
			   l.status, l.note, l.created_at, l.updated_at
		FROM attendance_sheet_lines l
		JOIN attendance_sheets s ON s.id = l.sheet_id
		WHERE l.sheet_id = $1
		  AND s.company_id = $2
		ORDER BY l.date ASC, l.id ASC
	`

	rows, err := q.Query(ctx, query, sheetID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sheet lines: %w", err)
	}
	defer rows.Close()

	var lines []timesheet.SheetLine
	for rows.Next() {
		var line timesheet.SheetLine
		if err := rows.Scan(
			&line.ID, &line.SheetID, &line.Date, &line.Weekday,
			&line.PlSignIn, &line.PlSignOut, &line.AcSignIn, &line.AcSignOut,
			&line.WorkedHours, &line.Overtime, &line.ActOvertime,
			&line.LateIn, &line.ActLateIn, &line.DiffTime, &line.ActDiffTime,
			&line.Status, &line.Note, &line.CreatedAt, &line.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sheet line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sheet lines: %w", err)
	}

	return lines, nil
}

// GetLine implements timesheet.SheetRepository.
func (t *timesheetRepository) GetLine(ctx context.Context, lineID string, companyID string) (timesheet.SheetLine, error) {
	q := GetQuerier(ctx, t.db)

	query := `
		SELECT l.id, l.sheet_id, l.date, l.day_of_week,
			   l.pl_sign_in, l.pl_sign_out, l.ac_sign_in, l.ac_sign_out,
			   l.worked_hours, l.overtime, l.act_overtime,
			   l.late_in, l.act_late_in, l.diff_time, l.act_diff_time,
			   l.status, l.note, l.created_at, l.updated_at
		FROM attendance_sheet_lines l
		JOIN attendance_sheets s ON s.id = l.sheet_id
		WHERE l.id = $1
		  AND s.company_id = $2
	`

	var line timesheet.SheetLine
	err := q.QueryRow(ctx, query, lineID, companyID).Scan(
		&line.ID, &line.SheetID, &line.Date, &line.Weekday,
		&line.PlSignIn, &line.PlSignOut, &line.AcSignIn, &line.AcSignOut,
		&line.WorkedHours, &line.Overtime, &line.ActOvertime,
		&line.LateIn, &line.ActLateIn, &line.DiffTime, &line.ActDiffTime,
		&line.Status, &line.Note, &line.CreatedAt, &line.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return timesheet.SheetLine{}, timesheet.ErrLineNotFound
		}
		return timesheet.SheetLine{}, fmt.Errorf("failed to get sheet line: %w", err)
	}

	return line, nil
}

// UpdateLineAdjustment implements timesheet.SheetRepository.
func (t *timesheetRepository) UpdateLineAdjustment(ctx context.Context, line timesheet.SheetLine) error {
	q := GetQuerier(ctx, t.db)

	tag, err := q.Exec(ctx, `
		UPDATE attendance_sheet_lines
		SET overtime = $1, late_in = $2, diff_time = $3, note = $4, updated_at = NOW()
		WHERE id = $5
	`, line.Overtime, line.LateIn, line.DiffTime, line.Note, line.ID)
	if err != nil {
		return fmt.Errorf("failed to update sheet line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrLineNotFound
	}
	return nil
}

func NewTimesheetRepository(db *database.DB) timesheet.SheetRepository {
	return &timesheetRepository{db: db}
}
