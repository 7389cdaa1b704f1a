// Package firestore implements the repositories on a Firestore document
// store. Collection layout mirrors the Postgres schema: customers, loans,
// payments, members, approval_requests and notifications are top-level
// collections keyed by entity id, so either backend can be selected with
// database.driver in config.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"microfin-backend/internal/repository"
)

const (
	colCustomers     = "customers"
	colLoans         = "loans"
	colPayments      = "payments"
	colMembers       = "members"
	colApprovals     = "approval_requests"
	colNotifications = "notifications"
)

// NewClient opens a Firestore client through the Firebase app. An empty
// credentials path falls back to application-default credentials.
func NewClient(ctx context.Context, projectID, credentialsFile string) (*firestore.Client, error) {
	conf := &firebase.Config{ProjectID: projectID}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, conf, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open firestore client: %w", err)
	}
	return client, nil
}

func NewStore(client *firestore.Client) *repository.Store {
	return &repository.Store{
		Customers:     NewCustomerRepository(client),
		Loans:         NewLoanRepository(client),
		Members:       NewMemberRepository(client),
		Approvals:     NewApprovalRepository(client),
		Notifications: NewNotificationRepository(client),
	}
}

// getDoc fetches one document, translating Firestore's not-found result to
// the repository sentinel.
func getDoc(ctx context.Context, ref *firestore.DocumentRef) (*firestore.DocumentSnapshot, error) {
	snap, err := ref.Get(ctx)
	if err != nil {
		if snap != nil && !snap.Exists() {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return snap, nil
}
