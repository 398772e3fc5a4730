package postgres

import (
	"context"
	"errors"
	"fmt"

	"ameencheck-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type credentialRepository struct {
	db *pgxpool.Pool
}

func NewCredentialRepository(db *pgxpool.Pool) domain.CredentialRepository {
	return &credentialRepository{db: db}
}

func (r *credentialRepository) Create(ctx context.Context, cred *domain.Credential, notif *domain.Notification) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO credentials (id, candidate_id, type, title, details, issued_date, expiry_date, status, verification_url, qr_code, signature)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, cred.ID, cred.CandidateID, cred.Type, cred.Title, cred.Details, cred.IssuedDate, cred.ExpiryDate,
		cred.Status, cred.VerificationURL, cred.QRCode, cred.Signature)
	if err != nil {
		return fmt.Errorf("failed to create credential: %w", err)
	}

	if notif != nil {
		_, err = tx.Exec(ctx, `
			INSERT INTO notifications (id, user_id, type, title, message)
			VALUES ($1, $2, $3, $4, $5)
		`, notif.ID, notif.UserID, notif.Type, notif.Title, notif.Message)
		if err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *credentialRepository) GetByID(ctx context.Context, id string) (*domain.Credential, error) {
	query := `
		SELECT cr.id, cr.candidate_id, cr.type, cr.title, cr.details, cr.issued_date, cr.expiry_date,
		       cr.status, cr.verification_url, COALESCE(cr.qr_code, ''), cr.signature, c.name
		FROM credentials cr
		JOIN candidates c ON cr.candidate_id = c.id
		WHERE cr.id = $1
	`
	var cred domain.Credential
	err := r.db.QueryRow(ctx, query, id).Scan(
		&cred.ID, &cred.CandidateID, &cred.Type, &cred.Title, &cred.Details, &cred.IssuedDate, &cred.ExpiryDate,
		&cred.Status, &cred.VerificationURL, &cred.QRCode, &cred.Signature, &cred.CandidateName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &cred, nil
}

func (r *credentialRepository) ListByCandidate(ctx context.Context, candidateID string) ([]domain.Credential, error) {
	query := `
		SELECT id, candidate_id, type, title, details, issued_date, expiry_date,
		       status, verification_url, COALESCE(qr_code, ''), signature
		FROM credentials
		WHERE candidate_id = $1
		ORDER BY issued_date DESC
	`
	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var credentials []domain.Credential
	for rows.Next() {
		var cred domain.Credential
		err := rows.Scan(
			&cred.ID, &cred.CandidateID, &cred.Type, &cred.Title, &cred.Details, &cred.IssuedDate, &cred.ExpiryDate,
			&cred.Status, &cred.VerificationURL, &cred.QRCode, &cred.Signature,
		)
		if err != nil {
			return nil, err
		}
		credentials = append(credentials, cred)
	}

	if credentials == nil {
		credentials = []domain.Credential{}
	}
	return credentials, rows.Err()
}

func (r *credentialRepository) Revoke(ctx context.Context, id string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE credentials SET status = $2 WHERE id = $1
	`, id, domain.CredentialStatusRevoked)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
