package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/worklens/attendance-backend-go/internal/domain/attendance"
	"github.com/worklens/attendance-backend-go/internal/pkg/database"
)

type attendanceRepository struct {
	db *database.DB
}

// ListByEmployeeBetween implements attendance.EventRepository. The range
// is half-open on check-in time and expected in UTC.
func (a *attendanceRepository) ListByEmployeeBetween(ctx context.Context, employeeID string, from time.Time, to time.Time, companyID string) ([]attendance.Event, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, company_id, check_in, check_out, created_at, updated_at
		FROM attendance_events
		WHERE employee_id = $1
		  AND company_id = $2
		  AND check_in >= $3
		  AND check_in < $4
		ORDER BY check_in ASC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance events: %w", err)
	}
	defer rows.Close()

	var events []attendance.Event
	for rows.Next() {
		var ev attendance.Event
		if err := rows.Scan(&ev.ID, &ev.EmployeeID, &ev.CompanyID, &ev.CheckIn, &ev.CheckOut, &ev.CreatedAt, &ev.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan attendance event: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance events: %w", err)
	}

	return events, nil
}

func NewAttendanceRepository(db *database.DB) attendance.EventRepository {
	return &attendanceRepository{db: db}
}
