package postgres

import (
	"context"

	"ameencheck-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type adminRepository struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) domain.AdminRepository {
	return &adminRepository{db: db}
}

// Analytics aggregates the platform-wide dashboard counters. Derived rates
// are filled in by the usecase.
func (r *adminRepository) Analytics(ctx context.Context) (*domain.Analytics, error) {
	var a domain.Analytics

	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM verifications),
			(SELECT COUNT(*) FROM employers),
			(SELECT COUNT(*) FROM candidates),
			(SELECT COUNT(*) FROM credentials WHERE status = 'active'),
			(SELECT COUNT(*) FROM review_queue WHERE status = 'pending')
	`).Scan(&a.TotalVerifications, &a.TotalEmployers, &a.TotalCandidates, &a.ActiveCredentials, &a.PendingReviews)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT status, COUNT(*) FROM verifications GROUP BY status
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	a.VerificationsByStatus = []domain.StatusCount{}
	for rows.Next() {
		var sc domain.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		a.VerificationsByStatus = append(a.VerificationsByStatus, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	recent, err := r.db.Query(ctx, `
		SELECT TO_CHAR(initiated_date, 'YYYY-MM-DD') AS date, COUNT(*)
		FROM verifications
		WHERE initiated_date >= NOW() - INTERVAL '7 days'
		GROUP BY 1
		ORDER BY 1 DESC
	`)
	if err != nil {
		return nil, err
	}
	defer recent.Close()

	a.RecentVerifications = []domain.DailyCount{}
	for recent.Next() {
		var dc domain.DailyCount
		if err := recent.Scan(&dc.Date, &dc.Count); err != nil {
			return nil, err
		}
		a.RecentVerifications = append(a.RecentVerifications, dc)
	}
	if err := recent.Err(); err != nil {
		return nil, err
	}

	return &a, nil
}
