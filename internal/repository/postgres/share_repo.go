package postgres

import (
	"context"

	"ameencheck-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type shareRepository struct {
	db *pgxpool.Pool
}

func NewShareRepository(db *pgxpool.Pool) domain.ShareRepository {
	return &shareRepository{db: db}
}

func (r *shareRepository) Create(ctx context.Context, share *domain.CredentialShare) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO credential_shares (id, credential_id, shared_with_email, share_link, expires_date)
		VALUES ($1, $2, $3, $4, $5)
	`, share.ID, share.CredentialID, share.SharedWithEmail, share.ShareLink, share.ExpiresDate)
	return err
}

func (r *shareRepository) ListByCredential(ctx context.Context, credentialID string) ([]domain.CredentialShare, error) {
	query := `
		SELECT id, credential_id, COALESCE(shared_with_email, ''), share_link,
		       created_date, expires_date, access_count, last_accessed
		FROM credential_shares
		WHERE credential_id = $1
		ORDER BY created_date DESC
	`
	rows, err := r.db.Query(ctx, query, credentialID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shares []domain.CredentialShare
	for rows.Next() {
		var share domain.CredentialShare
		err := rows.Scan(
			&share.ID, &share.CredentialID, &share.SharedWithEmail, &share.ShareLink,
			&share.CreatedDate, &share.ExpiresDate, &share.AccessCount, &share.LastAccessed,
		)
		if err != nil {
			return nil, err
		}
		shares = append(shares, share)
	}

	if shares == nil {
		shares = []domain.CredentialShare{}
	}
	return shares, rows.Err()
}

// TrackAccess bumps the counter for a known share and silently ignores
// unknown ids.
func (r *shareRepository) TrackAccess(ctx context.Context, shareID string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE credential_shares SET access_count = access_count + 1, last_accessed = NOW() WHERE id = $1
	`, shareID)
	return err
}
