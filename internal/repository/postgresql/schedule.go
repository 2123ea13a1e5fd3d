package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/worklens/attendance-backend-go/internal/domain/schedule"
	"github.com/worklens/attendance-backend-go/internal/pkg/database"
)

type calendarRepository struct {
	db *database.DB
}

// GetByID implements schedule.CalendarRepository.
func (c *calendarRepository) GetByID(ctx context.Context, id string, companyID string) (schedule.WorkCalendar, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, company_id, name, created_at, updated_at
		FROM work_calendars
		WHERE id = $1
		  AND company_id = $2
	`

	var cal schedule.WorkCalendar
	err := q.QueryRow(ctx, query, id, companyID).Scan(&cal.ID, &cal.CompanyID, &cal.Name, &cal.CreatedAt, &cal.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.WorkCalendar{}, schedule.ErrCalendarNotFound
		}
		return schedule.WorkCalendar{}, fmt.Errorf("failed to get work calendar: %w", err)
	}

	if cal.Attendances, err = c.listAttendances(ctx, cal.ID); err != nil {
		return schedule.WorkCalendar{}, err
	}
	return cal, nil
}

// GetByEmployeeID implements schedule.CalendarRepository.
func (c *calendarRepository) GetByEmployeeID(ctx context.Context, employeeID string, companyID string) (schedule.WorkCalendar, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT wc.id, wc.company_id, wc.name, wc.created_at, wc.updated_at
		FROM work_calendars wc
		JOIN employees e ON e.calendar_id = wc.id
		WHERE e.id = $1
		  AND e.company_id = $2
	`

	var cal schedule.WorkCalendar
	err := q.QueryRow(ctx, query, employeeID, companyID).Scan(&cal.ID, &cal.CompanyID, &cal.Name, &cal.CreatedAt, &cal.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.WorkCalendar{}, schedule.ErrCalendarNotFound
		}
		return schedule.WorkCalendar{}, fmt.Errorf("failed to get employee calendar: %w", err)
	}

	if cal.Attendances, err = c.listAttendances(ctx, cal.ID); err != nil {
		return schedule.WorkCalendar{}, err
	}
	return cal, nil
}

func (c *calendarRepository) listAttendances(ctx context.Context, calendarID string) ([]schedule.CalendarAttendance, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, calendar_id, name, day_of_week, hour_from, hour_to, date_from, date_to, created_at, updated_at
		FROM calendar_attendances
		WHERE calendar_id = $1
		ORDER BY day_of_week, hour_from
	`

	rows, err := q.Query(ctx, query, calendarID)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar attendances: %w", err)
	}
	defer rows.Close()

	var attendances []schedule.CalendarAttendance
	for rows.Next() {
		var att schedule.CalendarAttendance
		if err := rows.Scan(
			&att.ID, &att.CalendarID, &att.Name, &att.DayOfWeek,
			&att.HourFrom, &att.HourTo, &att.DateFrom, &att.DateTo,
			&att.CreatedAt, &att.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan calendar attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate calendar attendances: %w", err)
	}

	return attendances, nil
}

func NewCalendarRepository(db *database.DB) schedule.CalendarRepository {
	return &calendarRepository{db: db}
}
