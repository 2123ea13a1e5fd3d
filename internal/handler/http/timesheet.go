package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/worklens/attendance-backend-go/internal/domain/report"
	"github.com/worklens/attendance-backend-go/internal/domain/timesheet"
	"github.com/worklens/attendance-backend-go/internal/handler/http/response"
)

type TimesheetHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)

	Compute(w http.ResponseWriter, r *http.Request)
	Confirm(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	ResetToDraft(w http.ResponseWriter, r *http.Request)

	ListLines(w http.ResponseWriter, r *http.Request)
	AdjustLine(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)

	BatchCompute(w http.ResponseWriter, r *http.Request)
}

type TimesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
	reportService    report.ReportService
}

// Create implements TimesheetHandler.
func (h *TimesheetHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req timesheet.CreateSheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create sheet decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	sheet, err := h.timesheetService.CreateSheet(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Sheet created successfully", sheet)
}

// Get implements TimesheetHandler.
func (h *TimesheetHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	sheetID := chi.URLParam(r, "id")
	if sheetID == "" {
		response.BadRequest(w, "Sheet ID is required", nil)
		return
	}

	sheet, err := h.timesheetService.GetSheet(r.Context(), sheetID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, sheet)
}

// List implements TimesheetHandler.
func (h *TimesheetHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := timesheet.SheetFilter{}

	if v := r.URL.Query().Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := r.URL.Query().Get("state"); v != "" {
		state := timesheet.SheetState(v)
		filter.State = &state
	}
	if v := r.URL.Query().Get("page"); v != "" {
		filter.Page, _ = strconv.Atoi(v)
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		filter.Limit, _ = strconv.Atoi(v)
	}

	list, err := h.timesheetService.ListSheets(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.Sheets, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		TotalItems: list.TotalCount,
		TotalPages: list.TotalPages,
	})
}

// Delete implements TimesheetHandler.
func (h *TimesheetHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	sheetID := chi.URLParam(r, "id")
	if sheetID == "" {
		response.BadRequest(w, "Sheet ID is required", nil)
		return
	}

	if err := h.timesheetService.DeleteSheet(r.Context(), sheetID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Sheet deleted successfully", nil)
}

// Compute implements TimesheetHandler.
func (h *TimesheetHandlerImpl) Compute(w http.ResponseWriter, r *http.Request) {
	sheetID := chi.URLParam(r, "id")
	if sheetID == "" {
		response.BadRequest(w, "Sheet ID is required", nil)
		return
	}

	sheet, err := h.timesheetService.ComputeSheet(r.Context(), sheetID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Sheet computed successfully", sheet)
}

// Confirm implements TimesheetHandler.
func (h *TimesheetHandlerImpl) Confirm(w http.ResponseWriter, r *http.Request) {
	sheetID := chi.URLParam(r, "id")
	if sheetID == "" {
		response.BadRequest(w, "Sheet ID is required", nil)
		return
	}

	sheet, err := h.timesheetService.ConfirmSheet(r.Context(), sheetID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Sheet confirmed successfully", sheet)
}

// Approve implements TimesheetHandler.
func (h *TimesheetHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	sheetID := chi.URLParam(r, "id")
	if sheetID == "" {
		response.BadRequest(w, "Sheet ID is required", nil)
		return
	}

	sheet, err := h.timesheetService.ApproveSheet(r.Context(), sheetID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Sheet approved successfully", sheet)
}

// ResetToDraft implements TimesheetHandler.
func (h *TimesheetHandlerImpl) ResetToDraft(w http.ResponseWriter, r *http.Request) {
	sheetID := chi.URLParam(r, "id")
	if sheetID == "" {
		response.BadRequest(w, "Sheet ID is required", nil)
		return
	}

	sheet, err := h.timesheetService.ResetSheet(r.Context(), sheetID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Sheet reset to draft", sheet)
}

// ListLines implements TimesheetHandler.
func (h *TimesheetHandlerImpl) ListLines(w http.ResponseWriter, r *http.Request) {
	sheetID := chi.URLParam(r, "id")
	if sheetID == "" {
		response.BadRequest(w, "Sheet ID is required", nil)
		return
	}

	lines, err := h.timesheetService.ListLines(r.Context(), sheetID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, lines)
}

// AdjustLine implements TimesheetHandler.
func (h *TimesheetHandlerImpl) AdjustLine(w http.ResponseWriter, r *http.Request) {
	sheetID := chi.URLParam(r, "id")
	lineID := chi.URLParam(r, "lineID")
	if sheetID == "" || lineID == "" {
		response.BadRequest(w, "Sheet ID and line ID are required", nil)
		return
	}

	var req timesheet.AdjustLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AdjustLine decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.LineID = lineID

	line, err := h.timesheetService.AdjustLine(r.Context(), sheetID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Sheet line adjusted successfully", line)
}

// Export implements TimesheetHandler.
func (h *TimesheetHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	sheetID := chi.URLParam(r, "id")
	if sheetID == "" {
		response.BadRequest(w, "Sheet ID is required", nil)
		return
	}

	pdf, fileName, err := h.reportService.ExportSheetPDF(r.Context(), sheetID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// BatchCompute implements TimesheetHandler.
func (h *TimesheetHandlerImpl) BatchCompute(w http.ResponseWriter, r *http.Request) {
	var req timesheet.BatchComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("BatchCompute decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.timesheetService.BatchCompute(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Batch computation finished", result)
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService, reportService report.ReportService) TimesheetHandler {
	return &TimesheetHandlerImpl{
		timesheetService: timesheetService,
		reportService:    reportService,
	}
}
