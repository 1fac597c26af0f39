package http

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"

	"github.com/clockwork-hq/timeclock-backend-go/internal/domain/timeentry"
	"github.com/clockwork-hq/timeclock-backend-go/internal/handler/http/response"
)

type TimeClockHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	Status(w http.ResponseWriter, r *http.Request)
	Validate(w http.ResponseWriter, r *http.Request)
	ListEntries(w http.ResponseWriter, r *http.Request)
	UpdateEntry(w http.ResponseWriter, r *http.Request)
}

type timeClockHandlerImpl struct {
	timeClockService timeentry.TimeClockService
}

func NewTimeClockHandler(timeClockService timeentry.TimeClockService) TimeClockHandler {
	return &timeClockHandlerImpl{
		timeClockService: timeClockService,
	}
}

// identityFromContext pulls the authenticated employee and company out of the
// verified JWT claims.
func identityFromContext(r *http.Request) (employeeID string, companyID string, ok bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", "", false
	}
	employeeID, _ = claims["employee_id"].(string)
	companyID, _ = claims["company_id"].(string)
	return employeeID, companyID, employeeID != "" && companyID != ""
}

// clientIP prefers the clock context's reported IP; otherwise the connection's
// remote address is used.
func fillClientIP(r *http.Request, ctx **timeentry.ClockContext) {
	if *ctx == nil {
		*ctx = &timeentry.ClockContext{}
	}
	if (*ctx).IP == nil {
		ip := r.RemoteAddr
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			ip = host
		}
		(*ctx).IP = &ip
	}
}

// ClockIn implements TimeClockHandler.
func (h *timeClockHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	employeeID, companyID, ok := identityFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req timeentry.ClockInRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.EmployeeID = employeeID
	req.CompanyID = companyID
	fillClientIP(r, &req.Context)

	result, err := h.timeClockService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock in successful", result)
}

// ClockOut implements TimeClockHandler.
func (h *timeClockHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	employeeID, companyID, ok := identityFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req timeentry.ClockOutRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.EmployeeID = employeeID
	req.CompanyID = companyID
	fillClientIP(r, &req.Context)

	result, err := h.timeClockService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clock out successful", result)
}

// Status implements TimeClockHandler.
func (h *timeClockHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	employeeID, companyID, ok := identityFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	result, err := h.timeClockService.ClockStatus(r.Context(), employeeID, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Validate implements TimeClockHandler. Dry-run of the clock-in rules.
func (h *timeClockHandlerImpl) Validate(w http.ResponseWriter, r *http.Request) {
	employeeID, companyID, ok := identityFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req timeentry.ClockInRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	req.EmployeeID = employeeID
	req.CompanyID = companyID
	fillClientIP(r, &req.Context)

	result, err := h.timeClockService.ValidateClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListEntries implements TimeClockHandler.
func (h *timeClockHandlerImpl) ListEntries(w http.ResponseWriter, r *http.Request) {
	_, companyID, ok := identityFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	filter := entryFilterFromQuery(r)

	result, err := h.timeClockService.ListEntries(r.Context(), filter, companyID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Entries, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// UpdateEntry implements TimeClockHandler.
func (h *timeClockHandlerImpl) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	_, companyID, ok := identityFromContext(r)
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	var req timeentry.UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "entryID")

	result, err := h.timeClockService.UpdateEntry(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time entry updated", result)
}

func entryFilterFromQuery(r *http.Request) timeentry.EntryFilter {
	q := r.URL.Query()

	filter := timeentry.EntryFilter{
		Page:      atoiOrZero(q.Get("page")),
		Limit:     atoiOrZero(q.Get("limit")),
		SortBy:    q.Get("sort_by"),
		SortOrder: q.Get("sort_order"),
	}
	if v := q.Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := q.Get("status"); v != "" {
		filter.Status = &v
	}
	if v := q.Get("start_date"); v != "" {
		filter.StartDate = &v
	}
	if v := q.Get("end_date"); v != "" {
		filter.EndDate = &v
	}

	return filter
}

func atoiOrZero(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}
