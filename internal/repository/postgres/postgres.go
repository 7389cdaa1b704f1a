package postgres

import (
	"database/sql"

	"microfin-backend/internal/repository"

	_ "github.com/lib/pq"
)

func NewStore(db *sql.DB) *repository.Store {
	return &repository.Store{
		Customers:     NewCustomerRepository(db),
		Loans:         NewLoanRepository(db),
		Members:       NewMemberRepository(db),
		Approvals:     NewApprovalRepository(db),
		Notifications: NewNotificationRepository(db),
	}
}
