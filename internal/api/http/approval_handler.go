package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"microfin-backend/internal/domain"
	"microfin-backend/internal/service"
)

type ApprovalHandler struct {
	approvals service.ApprovalService
}

func NewApprovalHandler(approvals service.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{approvals: approvals}
}

type approvalListResponse struct {
	Approvals []domain.ApprovalRequest `json:"approvals"`
	Total     int                      `json:"total"`
}

func (h *ApprovalHandler) List(w http.ResponseWriter, r *http.Request) {
	status := domain.ApprovalStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = domain.ApprovalStatusPending
	}
	switch status {
	case domain.ApprovalStatusPending, domain.ApprovalStatusApproved, domain.ApprovalStatusRejected:
	default:
		writeError(w, http.StatusBadRequest, "unknown approval status")
		return
	}

	approvals, err := h.approvals.List(r.Context(), status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if approvals == nil {
		approvals = []domain.ApprovalRequest{}
	}
	writeJSON(w, http.StatusOK, approvalListResponse{Approvals: approvals, Total: len(approvals)})
}

type decisionRequest struct {
	Note string `json:"note"`
}

func (h *ApprovalHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, true)
}

func (h *ApprovalHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, false)
}

func (h *ApprovalHandler) decide(w http.ResponseWriter, r *http.Request, approve bool) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req decisionRequest
	// Note is optional.
	_ = json.NewDecoder(r.Body).Decode(&req)

	var (
		decided *domain.ApprovalRequest
		err     error
	)
	if approve {
		decided, err = h.approvals.Approve(r.Context(), actor.MemberID, mux.Vars(r)["id"], req.Note)
	} else {
		decided, err = h.approvals.Reject(r.Context(), actor.MemberID, mux.Vars(r)["id"], req.Note)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, decided)
}
