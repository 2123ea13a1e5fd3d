package policy

import "context"

// PolicyRepository defines data access for attendance policies.
type PolicyRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (AttendancePolicy, error)

	// GetByDepartmentID retrieves the policy configured on a department,
	// used when the company resolves policies by department.
	GetByDepartmentID(ctx context.Context, departmentID string, companyID string) (AttendancePolicy, error)
}
