package payroll

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/worklens/attendance-backend-go/internal/domain/payroll"
	"github.com/worklens/attendance-backend-go/internal/domain/timesheet"
)

type fakePayslipRepo struct {
	byID    map[string]payroll.Payslip
	bySheet map[string]payroll.Payslip
	nextID  int
}

func newFakePayslipRepo() *fakePayslipRepo {
	return &fakePayslipRepo{
		byID:    map[string]payroll.Payslip{},
		bySheet: map[string]payroll.Payslip{},
	}
}

func (f *fakePayslipRepo) Create(ctx context.Context, payslip payroll.Payslip) (payroll.Payslip, error) {
	f.nextID++
	payslip.ID = fmt.Sprintf("ps-%d", f.nextID)
	for i := range payslip.WorkedDayLines {
		payslip.WorkedDayLines[i].PayslipID = payslip.ID
	}
	f.byID[payslip.ID] = payslip
	f.bySheet[payslip.SheetID] = payslip
	return payslip, nil
}

func (f *fakePayslipRepo) GetByID(ctx context.Context, id string, companyID string) (payroll.Payslip, error) {
	slip, ok := f.byID[id]
	if !ok || slip.CompanyID != companyID {
		return payroll.Payslip{}, payroll.ErrPayslipNotFound
	}
	return slip, nil
}

func (f *fakePayslipRepo) GetBySheetID(ctx context.Context, sheetID string, companyID string) (payroll.Payslip, error) {
	slip, ok := f.bySheet[sheetID]
	if !ok || slip.CompanyID != companyID {
		return payroll.Payslip{}, payroll.ErrPayslipNotFound
	}
	return slip, nil
}

func claimsContext(t *testing.T, companyID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id":    "user-1",
		"company_id": companyID,
		"type":       "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func testSheet() timesheet.Sheet {
	return timesheet.Sheet{
		ID:         "sheet-1",
		CompanyID:  "comp-1",
		EmployeeID: "emp-1",
		Name:       "Attendance Sheet of Jane for March-2025",
		Totals: timesheet.Totals{
			NoOvertime:  3,
			TotOvertime: decimal.NewFromFloat(4.5),
			NoLate:      2,
			TotLate:     decimal.NewFromFloat(0.75),
			NoDiff:      1,
			TotDiff:     decimal.NewFromFloat(2),
			NoAbsence:   1,
			TotAbsence:  decimal.NewFromFloat(8),
		},
	}
}

func TestProjectSheetBuildsWorkedDayLines(t *testing.T) {
	repo := newFakePayslipRepo()
	svc := NewPayrollService(repo)

	slip, err := svc.ProjectSheet(context.Background(), testSheet())
	require.NoError(t, err)
	require.Len(t, slip.WorkedDayLines, 4)

	assert.Equal(t, "sheet-1", slip.SheetID)
	assert.Equal(t, payroll.PayslipStatusDraft, slip.Status)

	byCode := map[string]payroll.WorkedDayLine{}
	for _, line := range slip.WorkedDayLines {
		byCode[line.Code] = line
	}

	ovt := byCode[payroll.CodeOvertime]
	assert.Equal(t, 30, ovt.Sequence)
	assert.Equal(t, 3, ovt.NumberOfDays)
	assert.Equal(t, "4.5", ovt.NumberOfHours.String())

	abs := byCode[payroll.CodeAbsence]
	assert.Equal(t, 35, abs.Sequence)
	assert.Equal(t, 1, abs.NumberOfDays)
	assert.Equal(t, "8", abs.NumberOfHours.String())

	late := byCode[payroll.CodeLate]
	assert.Equal(t, 40, late.Sequence)
	assert.Equal(t, "0.75", late.NumberOfHours.String())

	diff := byCode[payroll.CodeDiff]
	assert.Equal(t, 45, diff.Sequence)
	assert.Equal(t, "2", diff.NumberOfHours.String())
}

func TestProjectSheetIdempotent(t *testing.T) {
	repo := newFakePayslipRepo()
	svc := NewPayrollService(repo)

	first, err := svc.ProjectSheet(context.Background(), testSheet())
	require.NoError(t, err)

	second, err := svc.ProjectSheet(context.Background(), testSheet())
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, repo.byID, 1)
}

func TestGetPayslip(t *testing.T) {
	repo := newFakePayslipRepo()
	svc := NewPayrollService(repo)

	created, err := svc.ProjectSheet(context.Background(), testSheet())
	require.NoError(t, err)

	got, err := svc.GetPayslip(claimsContext(t, "comp-1"), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Len(t, got.Lines, 4)
}

func TestGetPayslipWrongCompany(t *testing.T) {
	repo := newFakePayslipRepo()
	svc := NewPayrollService(repo)

	created, err := svc.ProjectSheet(context.Background(), testSheet())
	require.NoError(t, err)

	_, err = svc.GetPayslip(claimsContext(t, "comp-2"), created.ID)
	assert.ErrorIs(t, err, payroll.ErrPayslipNotFound)
}
