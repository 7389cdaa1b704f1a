package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"microfin-backend/internal/domain"
	"microfin-backend/internal/repository"
)

type memberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) repository.MemberRepository {
	return &memberRepository{db: db}
}

const memberColumns = `id, name, email, password_hash, phone, role, active, created_on`

func (r *memberRepository) Create(ctx context.Context, m *domain.TeamMember) error {
	query := `INSERT INTO members (` + memberColumns + `) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	m.CreatedOn = time.Now()
	_, err := r.db.ExecContext(ctx, query, m.ID, m.Name, m.Email, m.PasswordHash, m.Phone, m.Role, m.Active, m.CreatedOn)
	return err
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*domain.TeamMember, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*domain.TeamMember, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE email = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *memberRepository) scanOne(row *sql.Row) (*domain.TeamMember, error) {
	m := &domain.TeamMember{}
	err := row.Scan(&m.ID, &m.Name, &m.Email, &m.PasswordHash, &m.Phone, &m.Role, &m.Active, &m.CreatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *memberRepository) List(ctx context.Context) ([]domain.TeamMember, error) {
	query := `SELECT ` + memberColumns + ` FROM members ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.TeamMember
	for rows.Next() {
		var m domain.TeamMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.PasswordHash, &m.Phone, &m.Role, &m.Active, &m.CreatedOn); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *memberRepository) Update(ctx context.Context, m *domain.TeamMember) error {
	query := `UPDATE members SET name=$1, email=$2, password_hash=$3, phone=$4, role=$5, active=$6 WHERE id=$7`
	_, err := r.db.ExecContext(ctx, query, m.Name, m.Email, m.PasswordHash, m.Phone, m.Role, m.Active, m.ID)
	return err
}
