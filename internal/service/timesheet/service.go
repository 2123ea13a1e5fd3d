package timesheet

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/worklens/attendance-backend-go/internal/domain/attendance"
	"github.com/worklens/attendance-backend-go/internal/domain/employee"
	"github.com/worklens/attendance-backend-go/internal/domain/holiday"
	"github.com/worklens/attendance-backend-go/internal/domain/leave"
	"github.com/worklens/attendance-backend-go/internal/domain/payroll"
	"github.com/worklens/attendance-backend-go/internal/domain/policy"
	"github.com/worklens/attendance-backend-go/internal/domain/schedule"
	"github.com/worklens/attendance-backend-go/internal/domain/timesheet"
	"github.com/worklens/attendance-backend-go/internal/pkg/database"
	"github.com/worklens/attendance-backend-go/internal/repository/postgresql"
)

// PolicySource selects where an employee's attendance policy comes from
// when a sheet does not name one explicitly.
const (
	PolicySourceEmployee   = "employee"
	PolicySourceDepartment = "department"
)

type TimesheetServiceImpl struct {
	db *database.DB
	timesheet.SheetRepository
	attendance.EventRepository
	schedule.CalendarRepository
	leave.LeaveRepository
	holiday.HolidayRepository
	policy.PolicyRepository
	employee.EmployeeRepository
	payrollService payroll.PayrollService
	policySource   string
}

func NewTimesheetService(
	db *database.DB,
	sheetRepo timesheet.SheetRepository,
	eventRepo attendance.EventRepository,
	calendarRepo schedule.CalendarRepository,
	leaveRepo leave.LeaveRepository,
	holidayRepo holiday.HolidayRepository,
	policyRepo policy.PolicyRepository,
	employeeRepo employee.EmployeeRepository,
	payrollService payroll.PayrollService,
	policySource string,
) timesheet.TimesheetService {
	if policySource != PolicySourceDepartment {
		policySource = PolicySourceEmployee
	}
	return &TimesheetServiceImpl{
		db:                 db,
		SheetRepository:    sheetRepo,
		EventRepository:    eventRepo,
		CalendarRepository: calendarRepo,
		LeaveRepository:    leaveRepo,
		HolidayRepository:  holidayRepo,
		PolicyRepository:   policyRepo,
		EmployeeRepository: employeeRepo,
		payrollService:     payrollService,
		policySource:       policySource,
	}
}

// companyIDFromContext extracts the company claim set by the auth middleware.
func companyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}
	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return companyID, nil
}

// CreateSheet implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) CreateSheet(ctx context.Context, req timesheet.CreateSheetRequest) (timesheet.SheetResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.SheetResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return timesheet.SheetResponse{}, err
	}

	dateFrom, _ := time.Parse("2006-01-02", req.DateFrom)
	dateTo, _ := time.Parse("2006-01-02", req.DateTo)

	emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.SheetResponse{}, employee.ErrEmployeeNotFound
		}
		return timesheet.SheetResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	// One employee may not have two sheets covering the same day.
	existing, err := s.SheetRepository.ListByEmployee(ctx, emp.ID, companyID)
	if err != nil {
		return timesheet.SheetResponse{}, fmt.Errorf("failed to list employee sheets: %w", err)
	}
	candidate := timesheet.Sheet{DateFrom: dateFrom, DateTo: dateTo}
	for _, other := range existing {
		if candidate.Overlaps(other) {
			return timesheet.SheetResponse{}, timesheet.ErrOverlappingSheet
		}
	}

	policyID, err := s.resolvePolicyID(ctx, emp, req.PolicyID, companyID)
	if err != nil {
		return timesheet.SheetResponse{}, err
	}

	name := fmt.Sprintf("Attendance Sheet of %s for %s", emp.Name, dateFrom.Format("January-2006"))
	if req.Name != nil && *req.Name != "" {
		name = *req.Name
	}

	sheet := timesheet.Sheet{
		CompanyID:  companyID,
		EmployeeID: emp.ID,
		Name:       name,
		DateFrom:   dateFrom,
		DateTo:     dateTo,
		PolicyID:   policyID,
		State:      timesheet.SheetStateDraft,
	}
	created, err := s.SheetRepository.Create(ctx, sheet)
	if err != nil {
		return timesheet.SheetResponse{}, fmt.Errorf("failed to create sheet: %w", err)
	}
	created.EmployeeName = &emp.Name

	return timesheet.MapSheetToResponse(created), nil
}

// resolvePolicyID picks the sheet's policy: an explicit request wins,
// otherwise the employee's contract policy or the department policy,
// depending on the configured policy source.
func (s *TimesheetServiceImpl) resolvePolicyID(ctx context.Context, emp employee.Employee, explicit *string, companyID string) (string, error) {
	if explicit != nil && *explicit != "" {
		return *explicit, nil
	}

	if s.policySource == PolicySourceDepartment {
		if emp.DepartmentID == nil {
			return "", timesheet.ErrMissingPolicy
		}
		pol, err := s.PolicyRepository.GetByDepartmentID(ctx, *emp.DepartmentID, companyID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, policy.ErrPolicyNotFound) {
				return "", timesheet.ErrMissingPolicy
			}
			return "", fmt.Errorf("failed to get department policy: %w", err)
		}
		return pol.ID, nil
	}

	if emp.PolicyID == nil || *emp.PolicyID == "" {
		return "", timesheet.ErrMissingPolicy
	}
	return *emp.PolicyID, nil
}

// GetSheet implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetSheet(ctx context.Context, id string) (timesheet.SheetResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return timesheet.SheetResponse{}, err
	}

	sheet, err := s.SheetRepository.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.SheetResponse{}, timesheet.ErrSheetNotFound
		}
		return timesheet.SheetResponse{}, fmt.Errorf("failed to get sheet: %w", err)
	}
	return timesheet.MapSheetToResponse(sheet), nil
}

// ListSheets implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ListSheets(ctx context.Context, filter timesheet.SheetFilter) (timesheet.ListSheetResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return timesheet.ListSheetResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return timesheet.ListSheetResponse{}, err
	}

	sheets, total, err := s.SheetRepository.List(ctx, filter, companyID)
	if err != nil {
		return timesheet.ListSheetResponse{}, fmt.Errorf("failed to list sheets: %w", err)
	}

	responses := make([]timesheet.SheetResponse, 0, len(sheets))
	for _, sheet := range sheets {
		responses = append(responses, timesheet.MapSheetToResponse(sheet))
	}
	return timesheet.ListSheetResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Sheets:     responses,
	}, nil
}

// DeleteSheet implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) DeleteSheet(ctx context.Context, id string) error {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return err
	}

	sheet, err := s.SheetRepository.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.ErrSheetNotFound
		}
		return fmt.Errorf("failed to get sheet: %w", err)
	}
	if !sheet.Deletable() {
		return timesheet.ErrSheetNotDeletable
	}

	if err := s.SheetRepository.Delete(ctx, id, companyID); err != nil {
		return fmt.Errorf("failed to delete sheet: %w", err)
	}
	return nil
}

// ComputeSheet implements timesheet.TimesheetService. It regenerates all
// lines and totals; the replace is transactional so a failed computation
// leaves the stored sheet untouched.
func (s *TimesheetServiceImpl) ComputeSheet(ctx context.Context, id string) (timesheet.SheetResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return timesheet.SheetResponse{}, err
	}

	sheet, err := s.SheetRepository.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.SheetResponse{}, timesheet.ErrSheetNotFound
		}
		return timesheet.SheetResponse{}, fmt.Errorf("failed to get sheet: %w", err)
	}

	lines, totals, err := s.computeLines(ctx, sheet, companyID)
	if err != nil {
		return timesheet.SheetResponse{}, err
	}

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		if err := s.SheetRepository.ReplaceLines(txCtx, sheet.ID, lines); err != nil {
			return fmt.Errorf("failed to replace sheet lines: %w", err)
		}
		if err := s.SheetRepository.UpdateTotals(txCtx, sheet.ID, totals, companyID); err != nil {
			return fmt.Errorf("failed to update sheet totals: %w", err)
		}
		return nil
	})
	if err != nil {
		return timesheet.SheetResponse{}, err
	}

	sheet.Totals = totals
	return timesheet.MapSheetToResponse(sheet), nil
}

// computeLines runs the reconciliation across every day of the sheet's
// period. It performs all provider reads but writes nothing.
func (s *TimesheetServiceImpl) computeLines(ctx context.Context, sheet timesheet.Sheet, companyID string) ([]timesheet.SheetLine, timesheet.Totals, error) {
	emp, err := s.EmployeeRepository.GetByID(ctx, sheet.EmployeeID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, timesheet.Totals{}, employee.ErrEmployeeNotFound
		}
		return nil, timesheet.Totals{}, fmt.Errorf("failed to get employee: %w", err)
	}

	loc, err := time.LoadLocation(emp.Timezone)
	if err != nil {
		loc = time.UTC
	}

	cal, err := s.CalendarRepository.GetByEmployeeID(ctx, emp.ID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, schedule.ErrCalendarNotFound) {
			return nil, timesheet.Totals{}, timesheet.ErrMissingCalendar
		}
		return nil, timesheet.Totals{}, fmt.Errorf("failed to get work calendar: %w", err)
	}

	pol, err := s.PolicyRepository.GetByID(ctx, sheet.PolicyID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, policy.ErrPolicyNotFound) {
			return nil, timesheet.Totals{}, timesheet.ErrMissingPolicy
		}
		return nil, timesheet.Totals{}, fmt.Errorf("failed to get attendance policy: %w", err)
	}

	rangeStart := time.Date(sheet.DateFrom.Year(), sheet.DateFrom.Month(), sheet.DateFrom.Day(), 0, 0, 0, 0, loc)
	rangeEnd := time.Date(sheet.DateTo.Year(), sheet.DateTo.Month(), sheet.DateTo.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)

	leaves, err := s.LeaveRepository.ListValidatedBetween(ctx, emp.ID, rangeStart.UTC(), rangeEnd.UTC(), companyID)
	if err != nil {
		return nil, timesheet.Totals{}, fmt.Errorf("failed to list leaves: %w", err)
	}
	leaveIntervals := LeaveIntervals(leaves)

	holidays, err := s.HolidayRepository.ListActiveBetween(ctx, sheet.DateFrom, sheet.DateTo, companyID)
	if err != nil {
		return nil, timesheet.Totals{}, fmt.Errorf("failed to list public holidays: %w", err)
	}

	var lines []timesheet.SheetLine
	absenceDays := 0

	for _, day := range timesheet.PeriodDays(sheet.DateFrom, sheet.DateTo) {
		dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
		dayEnd := dayStart.AddDate(0, 0, 1)

		events, err := s.EventRepository.ListByEmployeeBetween(ctx, emp.ID, dayStart.UTC(), dayEnd.UTC(), companyID)
		if err != nil {
			return nil, timesheet.Totals{}, fmt.Errorf("failed to list attendance events: %w", err)
		}
		actual, _ := EventIntervals(events)

		result := ClassifyDay(DayInput{
			Date:          dayStart,
			Planned:       PlannedIntervals(cal, dayStart, loc),
			Actual:        actual,
			Leaves:        leaveIntervals,
			PublicHoliday: holiday.IsPublicHoliday(holidays, day, emp.ID),
			Policy:        pol,
			Location:      loc,
		}, absenceDays)
		absenceDays = result.AbsenceDays
		lines = append(lines, result.Lines...)
	}

	return lines, timesheet.ComputeTotals(lines), nil
}

// ConfirmSheet implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ConfirmSheet(ctx context.Context, id string) (timesheet.SheetResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return timesheet.SheetResponse{}, err
	}

	sheet, err := s.SheetRepository.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.SheetResponse{}, timesheet.ErrSheetNotFound
		}
		return timesheet.SheetResponse{}, fmt.Errorf("failed to get sheet: %w", err)
	}
	if !sheet.CanTransition(timesheet.SheetStateConfirmed) {
		return timesheet.SheetResponse{}, timesheet.ErrInvalidTransition
	}

	resp, err := s.ComputeSheet(ctx, id)
	if err != nil {
		return timesheet.SheetResponse{}, err
	}

	if err := s.SheetRepository.UpdateState(ctx, id, timesheet.SheetStateConfirmed, companyID); err != nil {
		return timesheet.SheetResponse{}, fmt.Errorf("failed to confirm sheet: %w", err)
	}
	resp.State = string(timesheet.SheetStateConfirmed)
	return resp, nil
}

// ApproveSheet implements timesheet.TimesheetService. Approval requires a
// payroll projection: it is created on first approval and reused after.
func (s *TimesheetServiceImpl) ApproveSheet(ctx context.Context, id string) (timesheet.SheetResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return timesheet.SheetResponse{}, err
	}

	sheet, err := s.SheetRepository.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.SheetResponse{}, timesheet.ErrSheetNotFound
		}
		return timesheet.SheetResponse{}, fmt.Errorf("failed to get sheet: %w", err)
	}
	if !sheet.CanTransition(timesheet.SheetStateApproved) {
		return timesheet.SheetResponse{}, timesheet.ErrInvalidTransition
	}

	if sheet.PayslipID == nil {
		slip, err := s.payrollService.ProjectSheet(ctx, sheet)
		if err != nil {
			return timesheet.SheetResponse{}, fmt.Errorf("failed to project payslip: %w", err)
		}
		if err := s.SheetRepository.UpdatePayslipID(ctx, sheet.ID, slip.ID, companyID); err != nil {
			return timesheet.SheetResponse{}, fmt.Errorf("failed to link payslip: %w", err)
		}
		sheet.PayslipID = &slip.ID
	}

	if err := s.SheetRepository.UpdateState(ctx, id, timesheet.SheetStateApproved, companyID); err != nil {
		return timesheet.SheetResponse{}, fmt.Errorf("failed to approve sheet: %w", err)
	}
	sheet.State = timesheet.SheetStateApproved
	return timesheet.MapSheetToResponse(sheet), nil
}

// ResetSheet implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ResetSheet(ctx context.Context, id string) (timesheet.SheetResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return timesheet.SheetResponse{}, err
	}

	sheet, err := s.SheetRepository.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.SheetResponse{}, timesheet.ErrSheetNotFound
		}
		return timesheet.SheetResponse{}, fmt.Errorf("failed to get sheet: %w", err)
	}
	if !sheet.CanTransition(timesheet.SheetStateDraft) {
		return timesheet.SheetResponse{}, timesheet.ErrInvalidTransition
	}

	if err := s.SheetRepository.UpdateState(ctx, id, timesheet.SheetStateDraft, companyID); err != nil {
		return timesheet.SheetResponse{}, fmt.Errorf("failed to reset sheet: %w", err)
	}
	sheet.State = timesheet.SheetStateDraft
	return timesheet.MapSheetToResponse(sheet), nil
}

// ListLines implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ListLines(ctx context.Context, sheetID string) ([]timesheet.SheetLineResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := s.SheetRepository.GetByID(ctx, sheetID, companyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, timesheet.ErrSheetNotFound
		}
		return nil, fmt.Errorf("failed to get sheet: %w", err)
	}

	lines, err := s.SheetRepository.ListLines(ctx, sheetID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sheet lines: %w", err)
	}

	responses := make([]timesheet.SheetLineResponse, 0, len(lines))
	for _, line := range lines {
		responses = append(responses, timesheet.MapLineToResponse(line))
	}
	return responses, nil
}

// AdjustLine implements timesheet.TimesheetService. The manual override
// replaces the adjusted figures only; the raw "act" figures keep what the
// classifier computed. Totals are re-rolled from the stored lines.
func (s *TimesheetServiceImpl) AdjustLine(ctx context.Context, sheetID string, req timesheet.AdjustLineRequest) (timesheet.SheetLineResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.SheetLineResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return timesheet.SheetLineResponse{}, err
	}

	line, err := s.SheetRepository.GetLine(ctx, req.LineID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.SheetLineResponse{}, timesheet.ErrLineNotFound
		}
		return timesheet.SheetLineResponse{}, fmt.Errorf("failed to get sheet line: %w", err)
	}
	if line.SheetID != sheetID {
		return timesheet.SheetLineResponse{}, timesheet.ErrLineNotFound
	}

	if req.Overtime != nil {
		line.Overtime = decimal.NewFromFloat(*req.Overtime)
	}
	if req.LateIn != nil {
		line.LateIn = decimal.NewFromFloat(*req.LateIn)
	}
	if req.DiffTime != nil {
		line.DiffTime = decimal.NewFromFloat(*req.DiffTime)
	}
	line.Note = req.Note

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)
		if err := s.SheetRepository.UpdateLineAdjustment(txCtx, line); err != nil {
			return fmt.Errorf("failed to update sheet line: %w", err)
		}
		lines, err := s.SheetRepository.ListLines(txCtx, sheetID, companyID)
		if err != nil {
			return fmt.Errorf("failed to list sheet lines: %w", err)
		}
		if err := s.SheetRepository.UpdateTotals(txCtx, sheetID, timesheet.ComputeTotals(lines), companyID); err != nil {
			return fmt.Errorf("failed to update sheet totals: %w", err)
		}
		return nil
	})
	if err != nil {
		return timesheet.SheetLineResponse{}, err
	}

	return timesheet.MapLineToResponse(line), nil
}

// BatchCompute implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) BatchCompute(ctx context.Context, req timesheet.BatchComputeRequest) (timesheet.BatchComputeResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.BatchComputeResponse{}, err
	}

	resp := timesheet.BatchComputeResponse{Skipped: map[string]string{}}
	for _, employeeID := range req.EmployeeIDs {
		created, err := s.CreateSheet(ctx, timesheet.CreateSheetRequest{
			EmployeeID: employeeID,
			DateFrom:   req.DateFrom,
			DateTo:     req.DateTo,
			PolicyID:   req.PolicyID,
		})
		if err != nil {
			resp.Skipped[employeeID] = err.Error()
			continue
		}
		computed, err := s.ComputeSheet(ctx, created.ID)
		if err != nil {
			resp.Skipped[employeeID] = err.Error()
			continue
		}
		resp.Computed = append(resp.Computed, computed)
	}
	if len(resp.Skipped) == 0 {
		resp.Skipped = nil
	}
	return resp, nil
}
