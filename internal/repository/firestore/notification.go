package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"microfin-backend/internal/domain"
	"microfin-backend/internal/repository"
)

type notificationDoc struct {
	ID         string            `firestore:"id"`
	MemberID   string            `firestore:"member_id"`
	Title      string            `firestore:"title"`
	Message    string            `firestore:"message"`
	Attributes map[string]string `firestore:"attributes"`
	IsRead     bool              `firestore:"is_read"`
	CreatedOn  time.Time         `firestore:"created_on"`
}

type notificationRepository struct {
	client *firestore.Client
}

func NewNotificationRepository(client *firestore.Client) repository.NotificationRepository {
	return &notificationRepository{client: client}
}

func (r *notificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	n.CreatedOn = time.Now()
	_, err := r.client.Collection(colNotifications).Doc(n.ID).Set(ctx, notificationDoc{
		ID: n.ID, MemberID: n.MemberID, Title: n.Title, Message: n.Message,
		Attributes: n.Attributes, IsRead: n.IsRead, CreatedOn: n.CreatedOn,
	})
	return err
}

func (r *notificationRepository) List(ctx context.Context, memberID string, limit int) ([]domain.Notification, error) {
	if limit < 1 {
		limit = 50
	}
	it := r.client.Collection(colNotifications).
		Where("member_id", "==", memberID).
		OrderBy("created_on", firestore.Desc).
		Limit(limit).
		Documents(ctx)
	defer it.Stop()

	var notes []domain.Notification
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var doc notificationDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, err
		}
		notes = append(notes, domain.Notification{
			ID: doc.ID, MemberID: doc.MemberID, Title: doc.Title, Message: doc.Message,
			Attributes: doc.Attributes, IsRead: doc.IsRead, CreatedOn: doc.CreatedOn,
		})
	}
	return notes, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, memberID string) error {
	ref := r.client.Collection(colNotifications).Doc(id)
	snap, err := getDoc(ctx, ref)
	if err != nil {
		return err
	}
	var doc notificationDoc
	if err := snap.DataTo(&doc); err != nil {
		return err
	}
	if doc.MemberID != memberID {
		return repository.ErrNotFound
	}
	_, err = ref.Update(ctx, []firestore.Update{{Path: "is_read", Value: true}})
	return err
}
