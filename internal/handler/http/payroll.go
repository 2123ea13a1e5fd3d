package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/worklens/attendance-backend-go/internal/domain/payroll"
	"github.com/worklens/attendance-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	GetPayslip(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

// GetPayslip implements PayrollHandler.
func (h *PayrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	payslipID := chi.URLParam(r, "id")
	if payslipID == "" {
		response.BadRequest(w, "Payslip ID is required", nil)
		return
	}

	slip, err := h.payrollService.GetPayslip(r.Context(), payslipID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, slip)
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}
