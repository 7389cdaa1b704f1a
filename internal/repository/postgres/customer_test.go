package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"microfin-backend/internal/domain"
	"microfin-backend/internal/repository"
)

var customerColumnList = []string{
	"id", "name", "phone", "alt_phone", "address", "office_category", "assigned_to", "notes", "created_on", "updated_on",
}

func TestCustomerRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewCustomerRepository(db)
	ctx := context.Background()

	c := &domain.Customer{ID: "cust-1", Name: "A Kumar", Phone: "555-0100", OfficeCategory: "main"}
	mock.ExpectExec("INSERT INTO customers").
		WithArgs(c.ID, c.Name, c.Phone, c.AltPhone, c.Address, c.OfficeCategory, c.AssignedTo, c.Notes, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Create(ctx, c)
	assert.NoError(t, err)
	assert.False(t, c.CreatedOn.IsZero())
}

func TestCustomerRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewCustomerRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("FROM customers WHERE id = \\$1").
			WithArgs("cust-1").
			WillReturnRows(sqlmock.NewRows(customerColumnList).
				AddRow("cust-1", "A Kumar", "555-0100", "", "12 Main Rd", "main", "member-1", "", now, now))

		c, err := repo.GetByID(ctx, "cust-1")
		assert.NoError(t, err)
		assert.Equal(t, "A Kumar", c.Name)
		assert.Equal(t, "member-1", c.AssignedTo)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("FROM customers WHERE id = \\$1").
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(customerColumnList))

		_, err := repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestCustomerRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewCustomerRepository(db)
	ctx := context.Background()

	t.Run("FilteredByOffice", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery("SELECT count\\(\\*\\) FROM").
			WithArgs("east").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
		mock.ExpectQuery("FROM customers WHERE office_category = \\$1 ORDER BY created_on DESC").
			WithArgs("east", 20, 0).
			WillReturnRows(sqlmock.NewRows(customerColumnList).
				AddRow("cust-2", "B Singh", "555-0101", "", "", "east", "", "", now, now))

		customers, total, err := repo.List(ctx, "east", 1, 20)
		assert.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Len(t, customers, 1)
		assert.Equal(t, "east", customers[0].OfficeCategory)
	})
}

func TestCustomerRepository_Assign(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := NewCustomerRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE customers SET assigned_to=\\$1").
			WithArgs("member-1", sqlmock.AnyArg(), "cust-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Assign(ctx, "cust-1", "member-1")
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE customers SET assigned_to=\\$1").
			WithArgs("member-1", sqlmock.AnyArg(), "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Assign(ctx, "missing", "member-1")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
