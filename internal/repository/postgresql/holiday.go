package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/worklens/attendance-backend-go/internal/domain/holiday"
	"github.com/worklens/attendance-backend-go/internal/pkg/database"
)

type holidayRepository struct {
	db *database.DB
}

// ListActiveBetween implements holiday.HolidayRepository.
func (h *holidayRepository) ListActiveBetween(ctx context.Context, from time.Time, to time.Time, companyID string) ([]holiday.PublicHoliday, error) {
	q := GetQuerier(ctx, h.db)

	query := `
		SELECT ph.id, ph.company_id, ph.name, ph.date_from, ph.date_to, ph.active,
			COALESCE(array_agg(phe.employee_id) FILTER (WHERE phe.employee_id IS NOT NULL), '{}'),
			ph.created_at, ph.updated_at
		FROM public_holidays ph
		LEFT JOIN public_holiday_employees phe ON phe.holiday_id = ph.id
		WHERE ph.company_id = $1
		  AND ph.active = TRUE
		  AND ph.date_from <= $2
		  AND ph.date_to >= $3
		GROUP BY ph.id
		ORDER BY ph.date_from ASC
	`

	rows, err := q.Query(ctx, query, companyID, to, from)
	if err != nil {
		return nil, fmt.Errorf("failed to list public holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.PublicHoliday
	for rows.Next() {
		var ph holiday.PublicHoliday
		if err := rows.Scan(
			&ph.ID, &ph.CompanyID, &ph.Name, &ph.DateFrom, &ph.DateTo, &ph.Active,
			&ph.EmployeeIDs, &ph.CreatedAt, &ph.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan public holiday: %w", err)
		}
		holidays = append(holidays, ph)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate public holidays: %w", err)
	}

	return holidays, nil
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepository{db: db}
}
