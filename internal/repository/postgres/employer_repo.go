package postgres

import (
	"context"
	"errors"
	"fmt"

	"ameencheck-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type employerRepository struct {
	db *pgxpool.Pool
}

func NewEmployerRepository(db *pgxpool.Pool) domain.EmployerRepository {
	return &employerRepository{db: db}
}

func (r *employerRepository) Create(ctx context.Context, employer *domain.Employer) error {
	query := `
		INSERT INTO employers (id, user_id, company_name, company_size, industry, location, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		employer.ID, employer.UserID, employer.CompanyName,
		employer.CompanySize, employer.Industry, employer.Location, employer.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create employer: %w", err)
	}
	return nil
}

func (r *employerRepository) GetByUserID(ctx context.Context, userID string) (*domain.Employer, error) {
	query := `
		SELECT id, user_id, company_name, COALESCE(company_size, ''), COALESCE(industry, ''), COALESCE(location, ''), status
		FROM employers
		WHERE user_id = $1
	`
	var e domain.Employer
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&e.ID, &e.UserID, &e.CompanyName, &e.CompanySize, &e.Industry, &e.Location, &e.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

func (r *employerRepository) List(ctx context.Context) ([]domain.Employer, error) {
	query := `
		SELECT e.id, e.user_id, e.company_name, COALESCE(e.company_size, ''), COALESCE(e.industry, ''),
		       COALESCE(e.location, ''), e.status,
		       u.email, u.name, COALESCE(u.phone, '')
		FROM employers e
		JOIN users u ON e.user_id = u.id
		ORDER BY e.company_name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employers []domain.Employer
	for rows.Next() {
		var e domain.Employer
		err := rows.Scan(
			&e.ID, &e.UserID, &e.CompanyName, &e.CompanySize, &e.Industry,
			&e.Location, &e.Status,
			&e.ContactEmail, &e.ContactName, &e.ContactPhone,
		)
		if err != nil {
			return nil, err
		}
		employers = append(employers, e)
	}

	if employers == nil {
		employers = []domain.Employer{}
	}
	return employers, rows.Err()
}

func (r *employerRepository) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE employers SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
