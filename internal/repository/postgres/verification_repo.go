package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ameencheck-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type verificationRepository struct {
	db *pgxpool.Pool
}

func NewVerificationRepository(db *pgxpool.Pool) domain.VerificationRepository {
	return &verificationRepository{db: db}
}

// Create inserts the candidate (when new), the verification and its seeded
// items in one transaction so a crash cannot leave a verification without its
// full item set.
func (r *verificationRepository) Create(ctx context.Context, v *domain.Verification, items []domain.VerificationItem, newCandidate *domain.Candidate) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if newCandidate != nil {
		_, err = tx.Exec(ctx, `
			INSERT INTO candidates (id, user_id, name, email, phone, status)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, newCandidate.ID, newCandidate.UserID, newCandidate.Name, newCandidate.Email, newCandidate.Phone, newCandidate.Status)
		if err != nil {
			return fmt.Errorf("failed to create candidate: %w", err)
		}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO verifications (id, employer_id, candidate_id, position, package_type, status, price, special_instructions, initiated_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, v.ID, v.EmployerID, v.CandidateID, v.Position, v.PackageType, v.Status, v.Price, v.SpecialInstructions, v.InitiatedDate)
	if err != nil {
		return fmt.Errorf("failed to create verification: %w", err)
	}

	for _, item := range items {
		_, err = tx.Exec(ctx, `
			INSERT INTO verification_items (id, verification_id, type, status)
			VALUES ($1, $2, $3, $4)
		`, item.ID, item.VerificationID, item.Type, item.Status)
		if err != nil {
			return fmt.Errorf("failed to seed verification item: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (r *verificationRepository) GetByID(ctx context.Context, id string) (*domain.Verification, error) {
	query := `
		SELECT v.id, v.employer_id, v.candidate_id, COALESCE(v.position, ''), v.package_type, v.status,
		       v.price, COALESCE(v.special_instructions, ''), v.initiated_date, v.completion_date,
		       c.name, c.email, COALESCE(c.phone, ''), e.company_name
		FROM verifications v
		JOIN candidates c ON v.candidate_id = c.id
		JOIN employers e ON v.employer_id = e.id
		WHERE v.id = $1
	`
	var v domain.Verification
	err := r.db.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.EmployerID, &v.CandidateID, &v.Position, &v.PackageType, &v.Status,
		&v.Price, &v.SpecialInstructions, &v.InitiatedDate, &v.CompletionDate,
		&v.CandidateName, &v.CandidateEmail, &v.CandidatePhone, &v.EmployerName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

const itemColumns = `id, verification_id, type, status, result, details, verified_date`

func (r *verificationRepository) GetItems(ctx context.Context, verificationID string) ([]domain.VerificationItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM verification_items WHERE verification_id = $1 ORDER BY id`, itemColumns)
	rows, err := r.db.Query(ctx, query, verificationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.VerificationItem
	for rows.Next() {
		var item domain.VerificationItem
		err := rows.Scan(&item.ID, &item.VerificationID, &item.Type, &item.Status, &item.Result, &item.Details, &item.VerifiedDate)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if items == nil {
		items = []domain.VerificationItem{}
	}
	return items, rows.Err()
}

func (r *verificationRepository) GetItem(ctx context.Context, verificationID, itemID string) (*domain.VerificationItem, error) {
	query := fmt.Sprintf(`SELECT %s FROM verification_items WHERE verification_id = $1 AND id = $2`, itemColumns)

	var item domain.VerificationItem
	err := r.db.QueryRow(ctx, query, verificationID, itemID).Scan(
		&item.ID, &item.VerificationID, &item.Type, &item.Status, &item.Result, &item.Details, &item.VerifiedDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *verificationRepository) ListByEmployer(ctx context.Context, employerID string) ([]domain.Verification, error) {
	query := `
		SELECT v.id, v.employer_id, v.candidate_id, COALESCE(v.position, ''), v.package_type, v.status,
		       v.price, COALESCE(v.special_instructions, ''), v.initiated_date, v.completion_date,
		       c.name, c.email, COALESCE(c.phone, '')
		FROM verifications v
		JOIN candidates c ON v.candidate_id = c.id
		WHERE v.employer_id = $1
		ORDER BY v.initiated_date DESC
	`
	rows, err := r.db.Query(ctx, query, employerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var verifications []domain.Verification
	for rows.Next() {
		var v domain.Verification
		err := rows.Scan(
			&v.ID, &v.EmployerID, &v.CandidateID, &v.Position, &v.PackageType, &v.Status,
			&v.Price, &v.SpecialInstructions, &v.InitiatedDate, &v.CompletionDate,
			&v.CandidateName, &v.CandidateEmail, &v.CandidatePhone,
		)
		if err != nil {
			return nil, err
		}
		verifications = append(verifications, v)
	}

	if verifications == nil {
		verifications = []domain.Verification{}
	}
	return verifications, rows.Err()
}

func (r *verificationRepository) ListByCandidate(ctx context.Context, candidateID string) ([]domain.Verification, error) {
	query := `
		SELECT v.id, v.employer_id, v.candidate_id, COALESCE(v.position, ''), v.package_type, v.status,
		       v.price, COALESCE(v.special_instructions, ''), v.initiated_date, v.completion_date,
		       e.company_name
		FROM verifications v
		JOIN employers e ON v.employer_id = e.id
		WHERE v.candidate_id = $1
		ORDER BY v.initiated_date DESC
	`
	rows, err := r.db.Query(ctx, query, candidateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var verifications []domain.Verification
	for rows.Next() {
		var v domain.Verification
		err := rows.Scan(
			&v.ID, &v.EmployerID, &v.CandidateID, &v.Position, &v.PackageType, &v.Status,
			&v.Price, &v.SpecialInstructions, &v.InitiatedDate, &v.CompletionDate,
			&v.EmployerName,
		)
		if err != nil {
			return nil, err
		}
		verifications = append(verifications, v)
	}

	if verifications == nil {
		verifications = []domain.Verification{}
	}
	return verifications, rows.Err()
}

// SubmitRecords stores the candidate's supporting records, flips pending
// items to verifying and moves the verification to in_progress, all in one
// transaction.
func (r *verificationRepository) SubmitRecords(ctx context.Context, verificationID, candidateID string, sub *domain.CandidateSubmission) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, edu := range sub.Education {
		_, err = tx.Exec(ctx, `
			INSERT INTO education_records (id, candidate_id, institution, degree, field_of_study, start_date, end_date, document_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, uuid.NewString(), candidateID, edu.Institution, edu.Degree, edu.FieldOfStudy, edu.StartDate, edu.EndDate, edu.DocumentURL)
		if err != nil {
			return fmt.Errorf("failed to insert education record: %w", err)
		}
	}

	for _, emp := range sub.Employment {
		_, err = tx.Exec(ctx, `
			INSERT INTO employment_records (id, candidate_id, company_name, job_title, start_date, end_date, supervisor_name, supervisor_contact, can_contact, document_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, uuid.NewString(), candidateID, emp.CompanyName, emp.JobTitle, emp.StartDate, emp.EndDate, emp.SupervisorName, emp.SupervisorContact, emp.CanContact, emp.DocumentURL)
		if err != nil {
			return fmt.Errorf("failed to insert employment record: %w", err)
		}
	}

	for _, ref := range sub.References {
		_, err = tx.Exec(ctx, `
			INSERT INTO "references" (id, candidate_id, name, relationship, company, email, phone, preferred_time, language)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, uuid.NewString(), candidateID, ref.Name, ref.Relationship, ref.Company, ref.Email, ref.Phone, ref.PreferredTime, orDefault(ref.Language, "en"))
		if err != nil {
			return fmt.Errorf("failed to insert reference: %w", err)
		}
	}

	_, err = tx.Exec(ctx, `
		UPDATE verification_items SET status = $2 WHERE verification_id = $1 AND status = $3
	`, verificationID, domain.ItemStatusVerifying, domain.ItemStatusPending)
	if err != nil {
		return fmt.Errorf("failed to update items: %w", err)
	}

	_, err = tx.Exec(ctx, `
		UPDATE verifications SET status = $2 WHERE id = $1
	`, verificationID, domain.VerificationStatusInProgress)
	if err != nil {
		return fmt.Errorf("failed to update verification: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *verificationRepository) UpdateStatus(ctx context.Context, id, status string, completionDate *time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE verifications SET status = $2, completion_date = COALESCE($3, completion_date) WHERE id = $1
	`, id, status, completionDate)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *verificationRepository) UpdateItem(ctx context.Context, item *domain.VerificationItem) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE verification_items
		SET status = $3, result = $4, details = $5, verified_date = $6
		WHERE verification_id = $1 AND id = $2
	`, item.VerificationID, item.ID, item.Status, item.Result, item.Details, item.VerifiedDate)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *verificationRepository) AllItemsVerified(ctx context.Context, verificationID string) (bool, error) {
	var remaining int
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM verification_items WHERE verification_id = $1 AND status <> $2
	`, verificationID, domain.ItemStatusVerified).Scan(&remaining)
	if err != nil {
		return false, err
	}
	return remaining == 0, nil
}

func (r *verificationRepository) StatsByEmployer(ctx context.Context, employerID string) (*domain.VerificationStats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE status = 'invited') AS invited,
			COUNT(*) FILTER (WHERE status = 'in_progress') AS in_progress,
			COUNT(*) FILTER (WHERE status = 'completed') AS completed,
			COUNT(*) FILTER (WHERE status = 'review_needed') AS review_needed
		FROM verifications
		WHERE employer_id = $1
	`
	var stats domain.VerificationStats
	err := r.db.QueryRow(ctx, query, employerID).Scan(
		&stats.Total, &stats.Invited, &stats.InProgress, &stats.Completed, &stats.ReviewNeeded,
	)
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// Complete marks the verification completed, flips every item to verified and
// issues the outcome credential in a single transaction.
func (r *verificationRepository) Complete(ctx context.Context, id string, cred *domain.Credential, notif *domain.Notification) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	now := time.Now()

	tag, err := tx.Exec(ctx, `
		UPDATE verifications SET status = $2, completion_date = $3 WHERE id = $1
	`, id, domain.VerificationStatusCompleted, now)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	_, err = tx.Exec(ctx, `
		UPDATE verification_items SET status = $2, verified_date = $3 WHERE verification_id = $1
	`, id, domain.ItemStatusVerified, now)
	if err != nil {
		return false, err
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO credentials (id, candidate_id, type, title, details, issued_date, expiry_date, status, verification_url, qr_code, signature)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, cred.ID, cred.CandidateID, cred.Type, cred.Title, cred.Details, cred.IssuedDate, cred.ExpiryDate,
		cred.Status, cred.VerificationURL, cred.QRCode, cred.Signature)
	if err != nil {
		return false, fmt.Errorf("failed to issue credential: %w", err)
	}

	if notif != nil {
		_, err = tx.Exec(ctx, `
			INSERT INTO notifications (id, user_id, type, title, message)
			VALUES ($1, $2, $3, $4, $5)
		`, notif.ID, notif.UserID, notif.Type, notif.Title, notif.Message)
		if err != nil {
			return false, fmt.Errorf("failed to create notification: %w", err)
		}
	}

	return true, tx.Commit(ctx)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
