package main

import (
	"fmt"
	"net/http"

	"github.com/worklens/attendance-backend-go/internal/config"
	appHTTP "github.com/worklens/attendance-backend-go/internal/handler/http"
	"github.com/worklens/attendance-backend-go/internal/pkg/database"
	"github.com/worklens/attendance-backend-go/internal/pkg/jwt"
	"github.com/worklens/attendance-backend-go/internal/repository/postgresql"
	payrollService "github.com/worklens/attendance-backend-go/internal/service/payroll"
	reportService "github.com/worklens/attendance-backend-go/internal/service/report"
	timesheetService "github.com/worklens/attendance-backend-go/internal/service/timesheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	sheetRepo := postgresql.NewTimesheetRepository(db)
	eventRepo := postgresql.NewAttendanceRepository(db)
	calendarRepo := postgresql.NewCalendarRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	payslipRepo := postgresql.NewPayrollRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	payrollSvc := payrollService.NewPayrollService(payslipRepo)
	timesheetSvc := timesheetService.NewTimesheetService(
		db,
		sheetRepo,
		eventRepo,
		calendarRepo,
		leaveRepo,
		holidayRepo,
		policyRepo,
		employeeRepo,
		payrollSvc,
		cfg.App.PolicySource,
	)
	reportSvc := reportService.NewReportService(sheetRepo)

	timesheetHandler := appHTTP.NewTimesheetHandler(timesheetSvc, reportSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(JWTService, timesheetHandler, payrollHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
