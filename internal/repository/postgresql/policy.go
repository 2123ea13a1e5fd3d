package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/worklens/attendance-backend-go/internal/domain/policy"
	"github.com/worklens/attendance-backend-go/internal/pkg/database"
)

type policyRepository struct {
	db *database.DB
}

// GetByID implements policy.PolicyRepository.
func (r *policyRepository) GetByID(ctx context.Context, id string, companyID string) (policy.AttendancePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name,
			   wd_after, wd_rate, we_after, we_rate, ph_after, ph_rate,
			   rules, created_at, updated_at
		FROM attendance_policies
		WHERE id = $1
		  AND company_id = $2
	`

	var p policy.AttendancePolicy
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&p.ID, &p.CompanyID, &p.Name,
		&p.WdAfter, &p.WdRate, &p.WeAfter, &p.WeRate, &p.PhAfter, &p.PhRate,
		&p.Rules, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return policy.AttendancePolicy{}, policy.ErrPolicyNotFound
		}
		return policy.AttendancePolicy{}, fmt.Errorf("failed to get attendance policy: %w", err)
	}

	return p, nil
}

// GetByDepartmentID implements policy.PolicyRepository.
func (r *policyRepository) GetByDepartmentID(ctx context.Context, departmentID string, companyID string) (policy.AttendancePolicy, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.company_id, p.name,
			   p.wd_after, p.wd_rate, p.we_after, p.we_rate, p.ph_after, p.ph_rate,
			   p.rules, p.created_at, p.updated_at
		FROM attendance_policies p
		JOIN departments d ON d.policy_id = p.id
		WHERE d.id = $1
		  AND p.company_id = $2
	`

	var p policy.AttendancePolicy
	err := q.QueryRow(ctx, query, departmentID, companyID).Scan(
		&p.ID, &p.CompanyID, &p.Name,
		&p.WdAfter, &p.WdRate, &p.WeAfter, &p.WeRate, &p.PhAfter, &p.PhRate,
		&p.Rules, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return policy.AttendancePolicy{}, policy.ErrPolicyNotFound
		}
		return policy.AttendancePolicy{}, fmt.Errorf("failed to get department policy: %w", err)
	}

	return p, nil
}

func NewPolicyRepository(db *database.DB) policy.PolicyRepository {
	return &policyRepository{db: db}
}
