package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"microfin-backend/internal/domain"
	"microfin-backend/internal/repository"
)

type customerDoc struct {
	ID             string    `firestore:"id"`
	Name           string    `firestore:"name"`
	Phone          string    `firestore:"phone"`
	AltPhone       string    `firestore:"alt_phone"`
	Address        string    `firestore:"address"`
	OfficeCategory string    `firestore:"office_category"`
	AssignedTo     string    `firestore:"assigned_to"`
	Notes          string    `firestore:"notes"`
	CreatedOn      time.Time `firestore:"created_on"`
	UpdatedOn      time.Time `firestore:"updated_on"`
}

func toCustomerDoc(c *domain.Customer) customerDoc {
	return customerDoc{
		ID: c.ID, Name: c.Name, Phone: c.Phone, AltPhone: c.AltPhone,
		Address: c.Address, OfficeCategory: c.OfficeCategory,
		AssignedTo: c.AssignedTo, Notes: c.Notes,
		CreatedOn: c.CreatedOn, UpdatedOn: c.UpdatedOn,
	}
}

func (d customerDoc) toDomain() domain.Customer {
	return domain.Customer{
		ID: d.ID, Name: d.Name, Phone: d.Phone, AltPhone: d.AltPhone,
		Address: d.Address, OfficeCategory: d.OfficeCategory,
		AssignedTo: d.AssignedTo, Notes: d.Notes,
		CreatedOn: d.CreatedOn, UpdatedOn: d.UpdatedOn,
	}
}

type customerRepository struct {
	client *firestore.Client
}

func NewCustomerRepository(client *firestore.Client) repository.CustomerRepository {
	return &customerRepository{client: client}
}

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	now := time.Now()
	c.CreatedOn = now
	c.UpdatedOn = now
	_, err := r.client.Collection(colCustomers).Doc(c.ID).Set(ctx, toCustomerDoc(c))
	return err
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	snap, err := getDoc(ctx, r.client.Collection(colCustomers).Doc(id))
	if err != nil {
		return nil, err
	}
	var doc customerDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}
	c := doc.toDomain()
	return &c, nil
}

func (r *customerRepository) List(ctx context.Context, office string, page, pageSize int) ([]domain.Customer, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	query := r.client.Collection(colCustomers).Query
	if office != "" {
		query = query.Where("office_category", "==", office)
	}
	query = query.OrderBy("created_on", firestore.Desc)

	// Firestore has no cheap server-side count with offset paging here;
	// materialize and slice, acceptable at back-office scale.
	it := query.Documents(ctx)
	defer it.Stop()

	var all []domain.Customer
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		var doc customerDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, 0, err
		}
		all = append(all, doc.toDomain())
	}

	total := len(all)
	start := (page - 1) * pageSize
	if start >= total {
		return nil, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	c.UpdatedOn = time.Now()
	_, err := r.client.Collection(colCustomers).Doc(c.ID).Update(ctx, []firestore.Update{
		{Path: "name", Value: c.Name},
		{Path: "phone", Value: c.Phone},
		{Path: "alt_phone", Value: c.AltPhone},
		{Path: "address", Value: c.Address},
		{Path: "office_category", Value: c.OfficeCategory},
		{Path: "notes", Value: c.Notes},
		{Path: "updated_on", Value: c.UpdatedOn},
	})
	return err
}

func (r *customerRepository) Assign(ctx context.Context, customerID, memberID string) error {
	_, err := r.client.Collection(colCustomers).Doc(customerID).Update(ctx, []firestore.Update{
		{Path: "assigned_to", Value: memberID},
		{Path: "updated_on", Value: time.Now()},
	})
	return err
}
