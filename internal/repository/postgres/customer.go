package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"microfin-backend/internal/domain"
	"microfin-backend/internal/repository"
)

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `id, name, phone, alt_phone, address, office_category, assigned_to, notes, created_on, updated_on`

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (id, name, phone, alt_phone, address, office_category, assigned_to, notes, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	now := time.Now()
	c.CreatedOn = now
	c.UpdatedOn = now
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.Phone, c.AltPhone, c.Address, c.OfficeCategory, c.AssignedTo, c.Notes, c.CreatedOn, c.UpdatedOn)
	return err
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.Name, &c.Phone, &c.AltPhone, &c.Address, &c.OfficeCategory, &c.AssignedTo, &c.Notes, &c.CreatedOn, &c.UpdatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *customerRepository) List(ctx context.Context, office string, page, pageSize int) ([]domain.Customer, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	query := `SELECT ` + customerColumns + ` FROM customers`
	args := []interface{}{}
	argIdx := 1
	if office != "" {
		query += fmt.Sprintf(" WHERE office_category = $%d", argIdx)
		args = append(args, office)
		argIdx++
	}

	var count int
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	query += fmt.Sprintf(" ORDER BY created_on DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, pageSize, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.AltPhone, &c.Address, &c.OfficeCategory, &c.AssignedTo, &c.Notes, &c.CreatedOn, &c.UpdatedOn); err != nil {
			return nil, 0, err
		}
		customers = append(customers, c)
	}
	return customers, count, rows.Err()
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	query := `UPDATE customers SET name=$1, phone=$2, alt_phone=$3, address=$4, office_category=$5, notes=$6, updated_on=$7 WHERE id=$8`
	c.UpdatedOn = time.Now()
	_, err := r.db.ExecContext(ctx, query, c.Name, c.Phone, c.AltPhone, c.Address, c.OfficeCategory, c.Notes, c.UpdatedOn, c.ID)
	return err
}

func (r *customerRepository) Assign(ctx context.Context, customerID, memberID string) error {
	query := `UPDATE customers SET assigned_to=$1, updated_on=$2 WHERE id=$3`
	res, err := r.db.ExecContext(ctx, query, memberID, time.Now(), customerID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
