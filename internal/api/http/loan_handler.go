package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"microfin-backend/internal/domain"
	"microfin-backend/internal/service"
)

type LoanHandler struct {
	loans     service.LoanService
	payments  service.PaymentService
	approvals service.ApprovalService
}

func NewLoanHandler(loans service.LoanService, payments service.PaymentService, approvals service.ApprovalService) *LoanHandler {
	return &LoanHandler{loans: loans, payments: payments, approvals: approvals}
}

func (h *LoanHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var in service.LoanInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	loan, err := h.loans.Issue(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, loan)
}

func (h *LoanHandler) Get(w http.ResponseWriter, r *http.Request) {
	loan, err := h.loans.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

type loanListResponse struct {
	Loans []domain.Loan `json:"loans"`
	Total int           `json:"total"`
}

func (h *LoanHandler) ListByCustomer(w http.ResponseWriter, r *http.Request) {
	loans, err := h.loans.ListByCustomer(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if loans == nil {
		loans = []domain.Loan{}
	}
	writeJSON(w, http.StatusOK, loanListResponse{Loans: loans, Total: len(loans)})
}

func (h *LoanHandler) Renew(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var in service.LoanInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, successor, err := h.approvals.SubmitLoanRenewal(r.Context(), actor, mux.Vars(r)["id"], in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if req != nil {
		writeJSON(w, http.StatusAccepted, req)
		return
	}
	writeJSON(w, http.StatusCreated, successor)
}

type deleteRequest struct {
	Reason string `json:"reason"`
}

func (h *LoanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req deleteRequest
	// Body is optional on delete.
	_ = json.NewDecoder(r.Body).Decode(&req)

	approval, err := h.approvals.SubmitLoanDeletion(r.Context(), actor, mux.Vars(r)["id"], req.Reason)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if approval != nil {
		writeJSON(w, http.StatusAccepted, approval)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *LoanHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var in service.PaymentInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, rec, err := h.approvals.SubmitPayment(r.Context(), actor, mux.Vars(r)["id"], in)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if req != nil {
		writeJSON(w, http.StatusAccepted, req)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

type paymentListResponse struct {
	Payments []domain.PaymentRecord `json:"payments"`
	Total    int                    `json:"total"`
}

func (h *LoanHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.payments.ListByLoan(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if payments == nil {
		payments = []domain.PaymentRecord{}
	}
	writeJSON(w, http.StatusOK, paymentListResponse{Payments: payments, Total: len(payments)})
}

func (h *LoanHandler) Completion(w http.ResponseWriter, r *http.Request) {
	summary, err := h.loans.Completion(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type calendarResponse struct {
	Year  int                  `json:"year"`
	Month int                  `json:"month"`
	Days  []domain.CalendarDay `json:"days"`
}

// MonthCalendar renders a customer's EMI month. Months are 1-12.
func (h *LoanHandler) MonthCalendar(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil || year < 1970 || year > 9999 {
		writeError(w, http.StatusBadRequest, "year is required")
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "month must be 1-12")
		return
	}

	days, err := h.loans.MonthCalendar(r.Context(), mux.Vars(r)["id"], year, time.Month(month))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, calendarResponse{Year: year, Month: month, Days: days})
}
