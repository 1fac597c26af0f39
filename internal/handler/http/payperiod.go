package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clockwork-hq/timeclock-backend-go/internal/domain/payperiod"
	"github.com/clockwork-hq/timeclock-backend-go/internal/handler/http/response"
)

type PayPeriodHandler interface {
	Generate(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Hours(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	Summary(w http.ResponseWriter, r *http.Request)
}

type payPeriodHandlerImpl struct {
	payrollService payperiod.PayrollTimeService
}

func NewPayPeriodHandler(payrollService payperiod.PayrollTimeService) PayPeriodHandler {
	return &payPeriodHandlerImpl{
		payrollService: payrollService,
	}
}

// Generate implements PayPeriodHandler.
func (h *payPeriodHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	_, companyID, ok := identityFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req payperiod.GeneratePayPeriodsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.CompanyID = companyID

	periods, err := h.payrollService.GeneratePayPeriods(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Pay periods generated", mapPeriods(periods))
}

// List implements PayPeriodHandler.
func (h *payPeriodHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	_, companyID, ok := identityFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	periods, err := h.payrollService.ListPayPeriods(r.Context(), companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, mapPeriods(periods))
}

// Hours implements PayPeriodHandler.
func (h *payPeriodHandlerImpl) Hours(w http.ResponseWriter, r *http.Request) {
	_, companyID, ok := identityFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	payPeriodID := chi.URLParam(r, "payPeriodID")

	var employeeID *string
	if v := r.URL.Query().Get("employee_id"); v != "" {
		employeeID = &v
	}

	hours, err := h.payrollService.CalculatePayPeriodHours(r.Context(), companyID, payPeriodID, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, hours)
}

// Approve implements PayPeriodHandler.
func (h *payPeriodHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	employeeID, companyID, ok := identityFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	payPeriodID := chi.URLParam(r, "payPeriodID")

	period, err := h.payrollService.ApprovePayPeriod(r.Context(), companyID, payPeriodID, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay period approved", mapPeriod(period))
}

// Export implements PayPeriodHandler.
func (h *payPeriodHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	_, companyID, ok := identityFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req payperiod.ExportRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.PayPeriodID = chi.URLParam(r, "payPeriodID")

	count, err := h.payrollService.MarkAsExported(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pay period marked as exported", map[string]int64{
		"entries_exported": count,
	})
}

// Summary implements PayPeriodHandler.
func (h *payPeriodHandlerImpl) Summary(w http.ResponseWriter, r *http.Request) {
	_, companyID, ok := identityFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	payPeriodID := chi.URLParam(r, "payPeriodID")

	stats, err := h.payrollService.GetSummaryStatistics(r.Context(), companyID, payPeriodID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

func mapPeriod(p payperiod.PayPeriod) payperiod.PayPeriodResponse {
	resp := payperiod.PayPeriodResponse{
		ID:        p.ID,
		StartDate: p.StartDate.Format("2006-01-02"),
		EndDate:   p.EndDate.Format("2006-01-02"),
		Frequency: string(p.Frequency),
		Status:    string(p.Status),
	}
	if p.ApprovedBy != nil {
		resp.ApprovedBy = p.ApprovedBy
	}
	if p.ApprovedAt != nil {
		formatted := p.ApprovedAt.Format("2006-01-02T15:04:05Z07:00")
		resp.ApprovedAt = &formatted
	}
	return resp
}

func mapPeriods(periods []payperiod.PayPeriod) []payperiod.PayPeriodResponse {
	result := make([]payperiod.PayPeriodResponse, 0, len(periods))
	for _, p := range periods {
		result = append(result, mapPeriod(p))
	}
	return result
}
