package postgres

import (
	"context"

	"ameencheck-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type reviewRepository struct {
	db *pgxpool.Pool
}

func NewReviewRepository(db *pgxpool.Pool) domain.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) List(ctx context.Context, status string) ([]domain.ReviewQueueItem, error) {
	query := `
		SELECT rq.id, rq.verification_id, rq.item_type, COALESCE(rq.issue_description, ''),
		       rq.priority, rq.status, rq.assigned_to, rq.created_date, rq.resolved_date, rq.resolution_notes,
		       COALESCE(v.position, ''), c.name, e.company_name
		FROM review_queue rq
		JOIN verifications v ON rq.verification_id = v.id
		JOIN candidates c ON v.candidate_id = c.id
		JOIN employers e ON v.employer_id = e.id
		WHERE rq.status = $1
		ORDER BY
			CASE rq.priority WHEN 'high' THEN 0 WHEN 'normal' THEN 1 ELSE 2 END,
			rq.created_date ASC
	`
	rows, err := r.db.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.ReviewQueueItem
	for rows.Next() {
		var item domain.ReviewQueueItem
		err := rows.Scan(
			&item.ID, &item.VerificationID, &item.ItemType, &item.IssueDescription,
			&item.Priority, &item.Status, &item.AssignedTo, &item.CreatedDate, &item.ResolvedDate, &item.ResolutionNotes,
			&item.Position, &item.CandidateName, &item.EmployerName,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if items == nil {
		items = []domain.ReviewQueueItem{}
	}
	return items, rows.Err()
}

func (r *reviewRepository) Create(ctx context.Context, item *domain.ReviewQueueItem) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO review_queue (id, verification_id, item_type, issue_description, priority, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, item.ID, item.VerificationID, item.ItemType, item.IssueDescription, item.Priority, item.Status)
	return err
}

func (r *reviewRepository) Resolve(ctx context.Context, id, notes, adminUserID string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE review_queue
		SET status = $2, resolution_notes = $3, assigned_to = $4, resolved_date = NOW()
		WHERE id = $1
	`, id, domain.ReviewStatusResolved, notes, adminUserID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
