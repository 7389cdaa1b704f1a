package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"microfin-backend/internal/domain"
	"microfin-backend/internal/service"
)

type MemberHandler struct {
	members service.MemberService
}

func NewMemberHandler(members service.MemberService) *MemberHandler {
	return &MemberHandler{members: members}
}

type memberListResponse struct {
	Members []domain.TeamMember `json:"members"`
	Total   int                 `json:"total"`
}

func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.members.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if members == nil {
		members = []domain.TeamMember{}
	}
	writeJSON(w, http.StatusOK, memberListResponse{Members: members, Total: len(members)})
}

func (h *MemberHandler) Get(w http.ResponseWriter, r *http.Request) {
	member, err := h.members.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, member)
}
