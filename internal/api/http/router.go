package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"microfin-backend/internal/security"
	"microfin-backend/internal/service"
	"microfin-backend/internal/storage"
)

// Services bundles everything the router wires into handlers.
type Services struct {
	Auth          service.AuthService
	Customers     service.CustomerService
	Loans         service.LoanService
	Payments      service.PaymentService
	Approvals     service.ApprovalService
	Members       service.MemberService
	Notifications service.NotificationService
	Documents     *storage.DocumentStore
	Tokens        security.TokenManager
}

// NewRouter builds the full API route table.
func NewRouter(s *Services) *mux.Router {
	r := mux.NewRouter()
	r.Use(loggingMiddleware)

	api := r.PathPrefix("/api/v1").Subrouter()

	authHandler := NewAuthHandler(s.Auth)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods(http.MethodPost)

	// Everything below requires a valid access token.
	protected := api.NewRoute().Subrouter()
	protected.Use(authMiddleware(s.Tokens))

	protected.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)
	protected.HandleFunc("/auth/register", adminOnly(authHandler.Register)).Methods(http.MethodPost)

	customerHandler := NewCustomerHandler(s.Customers, s.Approvals)
	protected.HandleFunc("/customers", customerHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/customers", customerHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/customers/{id}", customerHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/customers/{id}", customerHandler.Update).Methods(http.MethodPut)
	protected.HandleFunc("/customers/{id}/assign", adminOnly(customerHandler.Assign)).Methods(http.MethodPut)

	loanHandler := NewLoanHandler(s.Loans, s.Payments, s.Approvals)
	protected.HandleFunc("/customers/{id}/loans", loanHandler.ListByCustomer).Methods(http.MethodGet)
	protected.HandleFunc("/customers/{id}/loans", loanHandler.Issue).Methods(http.MethodPost)
	protected.HandleFunc("/customers/{id}/emi-calendar", loanHandler.MonthCalendar).Methods(http.MethodGet)
	protected.HandleFunc("/loans/{id}", loanHandler.Get).Methods(http.MethodGet)
	protected.HandleFunc("/loans/{id}", loanHandler.Delete).Methods(http.MethodDelete)
	protected.HandleFunc("/loans/{id}/renew", loanHandler.Renew).Methods(http.MethodPost)
	protected.HandleFunc("/loans/{id}/completion", loanHandler.Completion).Methods(http.MethodGet)
	protected.HandleFunc("/loans/{id}/payments", loanHandler.ListPayments).Methods(http.MethodGet)
	protected.HandleFunc("/loans/{id}/payments", loanHandler.RecordPayment).Methods(http.MethodPost)

	approvalHandler := NewApprovalHandler(s.Approvals)
	protected.HandleFunc("/approvals", adminOnly(approvalHandler.List)).Methods(http.MethodGet)
	protected.HandleFunc("/approvals/{id}/approve", adminOnly(approvalHandler.Approve)).Methods(http.MethodPost)
	protected.HandleFunc("/approvals/{id}/reject", adminOnly(approvalHandler.Reject)).Methods(http.MethodPost)

	memberHandler := NewMemberHandler(s.Members)
	protected.HandleFunc("/members", memberHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/members", adminOnly(authHandler.Register)).Methods(http.MethodPost)
	protected.HandleFunc("/members/{id}", memberHandler.Get).Methods(http.MethodGet)

	notificationHandler := NewNotificationHandler(s.Notifications)
	protected.HandleFunc("/notifications", notificationHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/notifications/{id}/read", notificationHandler.MarkAsRead).Methods(http.MethodPost)

	if s.Documents != nil {
		documentHandler := NewDocumentHandler(s.Customers, s.Documents)
		protected.HandleFunc("/customers/{id}/documents", documentHandler.List).Methods(http.MethodGet)
		protected.HandleFunc("/customers/{id}/documents", documentHandler.Upload).Methods(http.MethodPost)
		protected.HandleFunc("/customers/{id}/documents/{name}", documentHandler.Download).Methods(http.MethodGet)
		protected.HandleFunc("/customers/{id}/documents/{name}", adminOnly(documentHandler.Delete)).Methods(http.MethodDelete)
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	return r
}
