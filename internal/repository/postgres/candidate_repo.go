package postgres

import (
	"context"
	"errors"
	"fmt"

	"ameencheck-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type candidateRepository struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) Create(ctx context.Context, candidate *domain.Candidate) error {
	query := `
		INSERT INTO candidates (id, user_id, name, email, phone, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query,
		candidate.ID, candidate.UserID, candidate.Name, candidate.Email, candidate.Phone, candidate.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create candidate: %w", err)
	}
	return nil
}

const candidateColumns = `id, user_id, name, email, COALESCE(phone, ''), status`

func (r *candidateRepository) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	return r.getBy(ctx, "id", id)
}

func (r *candidateRepository) GetByUserID(ctx context.Context, userID string) (*domain.Candidate, error) {
	return r.getBy(ctx, "user_id", userID)
}

func (r *candidateRepository) GetByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	return r.getBy(ctx, "email", email)
}

func (r *candidateRepository) getBy(ctx context.Context, column, value string) (*domain.Candidate, error) {
	query := fmt.Sprintf(`SELECT %s FROM candidates WHERE %s = $1`, candidateColumns, column)

	var c domain.Candidate
	err := r.db.QueryRow(ctx, query, value).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.Status,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *candidateRepository) List(ctx context.Context) ([]domain.Candidate, error) {
	query := `
		SELECT c.id, c.user_id, c.name, c.email, COALESCE(c.phone, ''), c.status, COALESCE(u.email, '')
		FROM candidates c
		LEFT JOIN users u ON c.user_id = u.id
		ORDER BY c.name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []domain.Candidate
	for rows.Next() {
		var c domain.Candidate
		err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone, &c.Status, &c.UserEmail)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}

	if candidates == nil {
		candidates = []domain.Candidate{}
	}
	return candidates, rows.Err()
}

func (r *candidateRepository) AttachUser(ctx context.Context, candidateID, userID string) (bool, error) {
	query := `UPDATE candidates SET user_id = $2, status = $3 WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, candidateID, userID, domain.CandidateStatusActive)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
