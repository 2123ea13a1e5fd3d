package employee

import "context"

// EmployeeRepository defines data access for employee lookups.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
}
