package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"microfin-backend/internal/domain"
	"microfin-backend/internal/service"
)

type CustomerHandler struct {
	customers service.CustomerService
	approvals service.ApprovalService
}

func NewCustomerHandler(customers service.CustomerService, approvals service.ApprovalService) *CustomerHandler {
	return &CustomerHandler{customers: customers, approvals: approvals}
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var c domain.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.customers.Create(r.Context(), &c); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	c, err := h.customers.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type customerListResponse struct {
	Customers []domain.Customer `json:"customers"`
	Total     int               `json:"total"`
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	office := r.URL.Query().Get("office")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	customers, total, err := h.customers.List(r.Context(), office, page, pageSize)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if customers == nil {
		customers = []domain.Customer{}
	}
	writeJSON(w, http.StatusOK, customerListResponse{Customers: customers, Total: total})
}

// Update goes through moderation: admins write directly, operators get a
// queued approval request back with 202.
func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var c domain.Customer
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c.ID = mux.Vars(r)["id"]

	req, err := h.approvals.SubmitCustomerUpdate(r.Context(), actor, &c)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if req != nil {
		writeJSON(w, http.StatusAccepted, req)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

type assignRequest struct {
	MemberID string `json:"member_id"`
}

func (h *CustomerHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.MemberID == "" {
		writeError(w, http.StatusBadRequest, "member_id is required")
		return
	}

	if err := h.customers.Assign(r.Context(), mux.Vars(r)["id"], req.MemberID); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
