package usecase

import (
	"context"
	"fmt"
	"time"

	"ameencheck-backend/internal/domain"
	"ameencheck-backend/pkg/apperror"
	"ameencheck-backend/pkg/qr"

	"github.com/google/uuid"
)

type adminUsecase struct {
	reviewRepo       domain.ReviewRepository
	adminRepo        domain.AdminRepository
	employerRepo     domain.EmployerRepository
	candidateRepo    domain.CandidateRepository
	verificationRepo domain.VerificationRepository
	baseURL          string
}

func NewAdminUsecase(
	reviewRepo domain.ReviewRepository,
	adminRepo domain.AdminRepository,
	employerRepo domain.EmployerRepository,
	candidateRepo domain.CandidateRepository,
	verificationRepo domain.VerificationRepository,
	baseURL string,
) domain.AdminUsecase {
	return &adminUsecase{
		reviewRepo:       reviewRepo,
		adminRepo:        adminRepo,
		employerRepo:     employerRepo,
		candidateRepo:    candidateRepo,
		verificationRepo: verificationRepo,
		baseURL:          baseURL,
	}
}

func (u *adminUsecase) ReviewQueue(ctx context.Context, status string) ([]domain.ReviewQueueItem, error) {
	if status == "" {
		status = domain.ReviewStatusPending
	}
	items, err := u.reviewRepo.List(ctx, status)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return items, nil
}

func (u *adminUsecase) ResolveReview(ctx context.Context, id, notes, adminUserID string) error {
	found, err := u.reviewRepo.Resolve(ctx, id, notes, adminUserID)
	if err != nil {
		return apperror.Internal(err)
	}
	if !found {
		return apperror.NotFound("Review item not found")
	}
	return nil
}

func (u *adminUsecase) Analytics(ctx context.Context) (*domain.Analytics, error) {
	analytics, err := u.adminRepo.Analytics(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	analytics.AvgCompletionTime = "18 hours"
	analytics.AccuracyRate = "92%"
	return analytics, nil
}

func (u *adminUsecase) ListEmployers(ctx context.Context) ([]domain.Employer, error) {
	employers, err := u.employerRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return employers, nil
}

func (u *adminUsecase) ListCandidates(ctx context.Context) ([]domain.Candidate, error) {
	candidates, err := u.candidateRepo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return candidates, nil
}

func (u *adminUsecase) UpdateEmployerStatus(ctx context.Context, id, status string) error {
	found, err := u.employerRepo.UpdateStatus(ctx, id, status)
	if err != nil {
		return apperror.Internal(err)
	}
	if !found {
		return apperror.NotFound("Employer not found")
	}
	return nil
}

// CompleteVerification force-completes a verification and issues the outcome
// credential in a single transaction.
func (u *adminUsecase) CompleteVerification(ctx context.Context, id string) (*domain.Credential, error) {
	verification, err := u.verificationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if verification == nil {
		return nil, apperror.NotFound("Verification not found")
	}

	if !domain.CanTransitionVerification(verification.Status, domain.VerificationStatusCompleted) {
		return nil, apperror.StateError(fmt.Sprintf("Cannot complete verification in status %s", verification.Status))
	}

	cred := &domain.Credential{
		ID:          uuid.NewString(),
		CandidateID: verification.CandidateID,
		Type:        domain.PackageComprehensive,
		Title:       "Comprehensive Background Check",
		Details: map[string]interface{}{
			"verified": true,
			"position": verification.Position,
			"package":  verification.PackageType,
		},
		IssuedDate: time.Now(),
		Status:     domain.CredentialStatusActive,
	}
	cred.VerificationURL = fmt.Sprintf("%s/verify/%s", u.baseURL, cred.ID)
	cred.Signature = cred.Fingerprint()

	if qrCode, err := qr.DataURL(cred.VerificationURL); err == nil {
		cred.QRCode = qrCode
	}

	var notif *domain.Notification
	candidate, err := u.candidateRepo.GetByID(ctx, verification.CandidateID)
	if err == nil && candidate != nil && candidate.UserID != nil {
		notif = &domain.Notification{
			ID:      uuid.NewString(),
			UserID:  *candidate.UserID,
			Type:    domain.NotificationCredentialIssued,
			Title:   "New Credential Issued",
			Message: fmt.Sprintf("Your %s credential has been issued and is ready to share.", cred.Title),
		}
	}

	found, err := u.verificationRepo.Complete(ctx, id, cred, notif)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !found {
		return nil, apperror.NotFound("Verification not found")
	}
	return cred, nil
}
