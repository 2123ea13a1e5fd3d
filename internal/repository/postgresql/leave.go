package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/worklens/attendance-backend-go/internal/domain/leave"
	"github.com/worklens/attendance-backend-go/internal/pkg/database"
)

type leaveRepository struct {
	db *database.DB
}

// ListValidatedBetween implements leave.LeaveRepository.
func (l *leaveRepository) ListValidatedBetween(ctx context.Context, employeeID string, from time.Time, to time.Time, companyID string) ([]leave.Leave, error) {
	q := GetQuerier(ctx, l.db)

	query := `
		SELECT id, employee_id, company_id, date_from, date_to, state, created_at, updated_at
		FROM leaves
		WHERE employee_id = $1
		  AND company_id = $2
		  AND state = $3
		  AND date_from < $4
		  AND date_to > $5
		ORDER BY date_from ASC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID, leave.LeaveStateValidated, to, from)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	defer rows.Close()

	var leaves []leave.Leave
	for rows.Next() {
		var lv leave.Leave
		if err := rows.Scan(&lv.ID, &lv.EmployeeID, &lv.CompanyID, &lv.DateFrom, &lv.DateTo, &lv.State, &lv.CreatedAt, &lv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan leave: %w", err)
		}
		leaves = append(leaves, lv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaves: %w", err)
	}

	return leaves, nil
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}
