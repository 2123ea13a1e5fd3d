package payroll

import "errors"

var (
	ErrPayslipNotFound = errors.New("payslip not found")
)
