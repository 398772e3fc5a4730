package usecase

import (
	"context"
	"fmt"
	"time"

	"ameencheck-backend/internal/domain"
	"ameencheck-backend/pkg/apperror"
	"ameencheck-backend/pkg/logger"
	"ameencheck-backend/pkg/qr"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type credentialUsecase struct {
	credentialRepo   domain.CredentialRepository
	shareRepo        domain.ShareRepository
	candidateRepo    domain.CandidateRepository
	notificationRepo domain.NotificationRepository
	baseURL          string
	validate         *validator.Validate
}

func NewCredentialUsecase(
	credentialRepo domain.CredentialRepository,
	shareRepo domain.ShareRepository,
	candidateRepo domain.CandidateRepository,
	notificationRepo domain.NotificationRepository,
	baseURL string,
) domain.CredentialUsecase {
	return &credentialUsecase{
		credentialRepo:   credentialRepo,
		shareRepo:        shareRepo,
		candidateRepo:    candidateRepo,
		notificationRepo: notificationRepo,
		baseURL:          baseURL,
		validate:         validator.New(),
	}
}

func (u *credentialUsecase) Issue(ctx context.Context, req *domain.IssueCredentialRequest) (*domain.Credential, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest("Missing required fields")
	}

	candidate, err := u.candidateRepo.GetByID(ctx, req.CandidateID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if candidate == nil {
		return nil, apperror.NotFound("Candidate not found")
	}

	cred := &domain.Credential{
		ID:          uuid.NewString(),
		CandidateID: req.CandidateID,
		Type:        req.Type,
		Title:       req.Title,
		Details:     req.Details,
		IssuedDate:  time.Now(),
		Status:      domain.CredentialStatusActive,
	}
	cred.VerificationURL = fmt.Sprintf("%s/verify/%s", u.baseURL, cred.ID)

	if req.ExpiryMonths > 0 {
		expiry := cred.IssuedDate.AddDate(0, req.ExpiryMonths, 0)
		cred.ExpiryDate = &expiry
	}

	cred.Signature = cred.Fingerprint()

	qrCode, err := qr.DataURL(cred.VerificationURL)
	if err != nil {
		return nil, apperror.New(500, "Failed to generate QR code", err)
	}
	cred.QRCode = qrCode

	var notif *domain.Notification
	if candidate.UserID != nil {
		notif = &domain.Notification{
			ID:      uuid.NewString(),
			UserID:  *candidate.UserID,
			Type:    domain.NotificationCredentialIssued,
			Title:   "New Credential Issued",
			Message: fmt.Sprintf("Your %s credential has been issued and is ready to share.", cred.Title),
		}
	}

	if err := u.credentialRepo.Create(ctx, cred, notif); err != nil {
		return nil, apperror.Internal(err)
	}

	cred.CandidateName = candidate.Name
	return cred, nil
}

func (u *credentialUsecase) Verify(ctx context.Context, id string) (*domain.VerifyResult, error) {
	cred, err := u.credentialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if cred == nil {
		return nil, apperror.NotFound("Credential not found")
	}

	now := time.Now()
	expired := cred.IsExpired(now)
	revoked := cred.Status == domain.CredentialStatusRevoked

	status := domain.CredentialStatusActive
	switch {
	case revoked:
		status = domain.CredentialStatusRevoked
	case expired:
		status = domain.CredentialStatusExpired
	}

	return &domain.VerifyResult{
		Valid:      !expired && !revoked,
		Status:     status,
		Credential: cred,
	}, nil
}

func (u *credentialUsecase) Revoke(ctx context.Context, id, reason string) error {
	cred, err := u.credentialRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if cred == nil {
		return apperror.NotFound("Credential not found")
	}

	found, err := u.credentialRepo.Revoke(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if !found {
		return apperror.NotFound("Credential not found")
	}

	u.notifyRevoked(ctx, cred, reason)
	return nil
}

// notifyRevoked records the revocation reason as a notification to the
// credential holder. Best effort.
func (u *credentialUsecase) notifyRevoked(ctx context.Context, cred *domain.Credential, reason string) {
	candidate, err := u.candidateRepo.GetByID(ctx, cred.CandidateID)
	if err != nil || candidate == nil || candidate.UserID == nil {
		return
	}

	message := fmt.Sprintf("Your %s credential has been revoked.", cred.Title)
	if reason != "" {
		message = fmt.Sprintf("Your %s credential has been revoked. Reason: %s", cred.Title, reason)
	}

	notif := &domain.Notification{
		ID:      uuid.NewString(),
		UserID:  *candidate.UserID,
		Type:    domain.NotificationCredentialRevoked,
		Title:   "Credential Revoked",
		Message: message,
	}
	if err := u.notificationRepo.Create(ctx, notif); err != nil {
		logger.Log.Error("failed to create revoke notification", "error", err, "credential_id", cred.ID)
	}
}

func (u *credentialUsecase) ListForCandidate(ctx context.Context, candidateUserID string) ([]domain.Credential, error) {
	candidate, err := u.candidateRepo.GetByUserID(ctx, candidateUserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if candidate == nil {
		return nil, apperror.NotFound("Candidate profile not found")
	}

	credentials, err := u.credentialRepo.ListByCandidate(ctx, candidate.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return credentials, nil
}

func (u *credentialUsecase) CreateShare(ctx context.Context, credentialID string, req *domain.CreateShareRequest) (*domain.CredentialShare, error) {
	share := &domain.CredentialShare{
		ID:              uuid.NewString(),
		CredentialID:    credentialID,
		SharedWithEmail: req.SharedWithEmail,
		CreatedDate:     time.Now(),
	}
	share.ShareLink = fmt.Sprintf("%s/shared/%s", u.baseURL, share.ID)

	if req.ExpiryDays > 0 {
		expires := share.CreatedDate.AddDate(0, 0, req.ExpiryDays)
		share.ExpiresDate = &expires
	}

	if err := u.shareRepo.Create(ctx, share); err != nil {
		return nil, apperror.Internal(err)
	}
	return share, nil
}

func (u *credentialUsecase) ListShares(ctx context.Context, credentialID string) ([]domain.CredentialShare, error) {
	shares, err := u.shareRepo.ListByCredential(ctx, credentialID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return shares, nil
}

func (u *credentialUsecase) TrackAccess(ctx context.Context, shareID string) error {
	if err := u.shareRepo.TrackAccess(ctx, shareID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
