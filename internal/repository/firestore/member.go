package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"microfin-backend/internal/domain"
	"microfin-backend/internal/repository"
)

type memberDoc struct {
	ID           string    `firestore:"id"`
	Name         string    `firestore:"name"`
	Email        string    `firestore:"email"`
	PasswordHash string    `firestore:"password_hash"`
	Phone        string    `firestore:"phone"`
	Role         string    `firestore:"role"`
	Active       bool      `firestore:"active"`
	CreatedOn    time.Time `firestore:"created_on"`
}

func toMemberDoc(m *domain.TeamMember) memberDoc {
	return memberDoc{
		ID: m.ID, Name: m.Name, Email: m.Email, PasswordHash: m.PasswordHash,
		Phone: m.Phone, Role: string(m.Role), Active: m.Active, CreatedOn: m.CreatedOn,
	}
}

func (d memberDoc) toDomain() domain.TeamMember {
	return domain.TeamMember{
		ID: d.ID, Name: d.Name, Email: d.Email, PasswordHash: d.PasswordHash,
		Phone: d.Phone, Role: domain.MemberRole(d.Role), Active: d.Active, CreatedOn: d.CreatedOn,
	}
}

type memberRepository struct {
	client *firestore.Client
}

func NewMemberRepository(client *firestore.Client) repository.MemberRepository {
	return &memberRepository{client: client}
}

func (r *memberRepository) Create(ctx context.Context, m *domain.TeamMember) error {
	m.CreatedOn = time.Now()
	_, err := r.client.Collection(colMembers).Doc(m.ID).Set(ctx, toMemberDoc(m))
	return err
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*domain.TeamMember, error) {
	snap, err := getDoc(ctx, r.client.Collection(colMembers).Doc(id))
	if err != nil {
		return nil, err
	}
	var doc memberDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}
	m := doc.toDomain()
	return &m, nil
}

func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*domain.TeamMember, error) {
	it := r.client.Collection(colMembers).Where("email", "==", email).Limit(1).Documents(ctx)
	defer it.Stop()

	snap, err := it.Next()
	if err == iterator.Done {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var doc memberDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}
	m := doc.toDomain()
	return &m, nil
}

func (r *memberRepository) List(ctx context.Context) ([]domain.TeamMember, error) {
	it := r.client.Collection(colMembers).OrderBy("name", firestore.Asc).Documents(ctx)
	defer it.Stop()

	var members []domain.TeamMember
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var doc memberDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, err
		}
		members = append(members, doc.toDomain())
	}
	return members, nil
}

func (r *memberRepository) Update(ctx context.Context, m *domain.TeamMember) error {
	_, err := r.client.Collection(colMembers).Doc(m.ID).Set(ctx, toMemberDoc(m))
	return err
}
