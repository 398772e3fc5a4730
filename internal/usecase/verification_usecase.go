package usecase

import (
	"context"
	"fmt"
	"time"

	"ameencheck-backend/internal/domain"
	"ameencheck-backend/pkg/apperror"
	"ameencheck-backend/pkg/email"
	"ameencheck-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type verificationUsecase struct {
	verificationRepo domain.VerificationRepository
	employerRepo     domain.EmployerRepository
	candidateRepo    domain.CandidateRepository
	userRepo         domain.UserRepository
	notificationRepo domain.NotificationRepository
	reviewRepo       domain.ReviewRepository
	emails           *email.EmailService
	baseURL          string
	validate         *validator.Validate
}

func NewVerificationUsecase(
	verificationRepo domain.VerificationRepository,
	employerRepo domain.EmployerRepository,
	candidateRepo domain.CandidateRepository,
	userRepo domain.UserRepository,
	notificationRepo domain.NotificationRepository,
	reviewRepo domain.ReviewRepository,
	emails *email.EmailService,
	baseURL string,
) domain.VerificationUsecase {
	return &verificationUsecase{
		verificationRepo: verificationRepo,
		employerRepo:     employerRepo,
		candidateRepo:    candidateRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		reviewRepo:       reviewRepo,
		emails:           emails,
		baseURL:          baseURL,
		validate:         validator.New(),
	}
}

func (u *verificationUsecase) Create(ctx context.Context, employerUserID string, req *domain.CreateVerificationRequest) (*domain.Verification, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest("Missing required fields")
	}

	employer, err := u.employerRepo.GetByUserID(ctx, employerUserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if employer == nil {
		return nil, apperror.NotFound("Employer profile not found")
	}

	candidate, err := u.candidateRepo.GetByEmail(ctx, req.CandidateEmail)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	var newCandidate *domain.Candidate
	if candidate == nil {
		newCandidate = &domain.Candidate{
			ID:     uuid.NewString(),
			Name:   req.CandidateName,
			Email:  req.CandidateEmail,
			Phone:  req.CandidatePhone,
			Status: domain.CandidateStatusInvited,
		}
		candidate = newCandidate
	}

	verification := &domain.Verification{
		ID:                  uuid.NewString(),
		EmployerID:          employer.ID,
		CandidateID:         candidate.ID,
		Position:            req.Position,
		PackageType:         req.PackageType,
		Status:              domain.VerificationStatusInvited,
		Price:               domain.PriceForPackage(req.PackageType),
		SpecialInstructions: req.SpecialInstructions,
		InitiatedDate:       time.Now(),
	}

	var items []domain.VerificationItem
	for _, itemType := range domain.ItemTypesForPackage(req.PackageType) {
		items = append(items, domain.VerificationItem{
			ID:             uuid.NewString(),
			VerificationID: verification.ID,
			Type:           itemType,
			Status:         domain.ItemStatusPending,
		})
	}

	if err := u.verificationRepo.Create(ctx, verification, items, newCandidate); err != nil {
		return nil, apperror.Internal(err)
	}
	verification.Items = items
	verification.CandidateName = candidate.Name
	verification.CandidateEmail = candidate.Email

	u.notifyCandidate(ctx, candidate, employerUserID, req.Position)
	u.sendInvitation(candidate, employer.CompanyName, req.Position)

	return verification, nil
}

// notifyCandidate creates the in-app notification when the candidate already
// has a linked account. Best effort, failures are logged and swallowed.
func (u *verificationUsecase) notifyCandidate(ctx context.Context, candidate *domain.Candidate, employerUserID, position string) {
	if candidate.UserID == nil {
		return
	}

	requesterName := "An employer"
	if user, err := u.userRepo.GetByID(ctx, employerUserID); err == nil && user != nil {
		requesterName = user.Name
	}

	notif := &domain.Notification{
		ID:      uuid.NewString(),
		UserID:  *candidate.UserID,
		Type:    domain.NotificationVerificationInvited,
		Title:   "New Background Check Request",
		Message: fmt.Sprintf("%s has requested a background check for the position of %s.", requesterName, position),
	}
	if err := u.notificationRepo.Create(ctx, notif); err != nil {
		logger.Log.Error("failed to create invite notification", "error", err, "candidate_id", candidate.ID)
	}
}

// sendInvitation emails the candidate a registration link. Skipped when SMTP
// is not configured.
func (u *verificationUsecase) sendInvitation(candidate *domain.Candidate, companyName, position string) {
	if u.emails == nil || !u.emails.IsConfigured() {
		return
	}

	data := email.InvitationData{
		CandidateName: candidate.Name,
		CompanyName:   companyName,
		Position:      position,
		RegisterURL:   fmt.Sprintf("%s/register?candidateId=%s", u.baseURL, candidate.ID),
	}
	if err := u.emails.SendInvitation(candidate.Email, data); err != nil {
		logger.Log.Error("failed to send invitation email", "error", err, "candidate_id", candidate.ID)
	}
}

func (u *verificationUsecase) GetByID(ctx context.Context, id string) (*domain.Verification, error) {
	verification, err := u.verificationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if verification == nil {
		return nil, apperror.NotFound("Verification not found")
	}

	items, err := u.verificationRepo.GetItems(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	verification.Items = items
	return verification, nil
}

func (u *verificationUsecase) SubmitRecords(ctx context.Context, verificationID string, sub *domain.CandidateSubmission) error {
	verification, err := u.verificationRepo.GetByID(ctx, verificationID)
	if err != nil {
		return apperror.Internal(err)
	}
	if verification == nil {
		return apperror.NotFound("Verification not found")
	}

	if !domain.CanTransitionVerification(verification.Status, domain.VerificationStatusInProgress) {
		return apperror.StateError(fmt.Sprintf("Cannot submit records while verification is %s", verification.Status))
	}

	if err := u.verificationRepo.SubmitRecords(ctx, verificationID, verification.CandidateID, sub); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *verificationUsecase) UpdateStatus(ctx context.Context, id, status string) error {
	if !domain.IsVerificationStatus(status) {
		return apperror.BadRequest("Invalid status")
	}

	verification, err := u.verificationRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if verification == nil {
		return apperror.NotFound("Verification not found")
	}

	if !domain.CanTransitionVerification(verification.Status, status) {
		return apperror.StateError(fmt.Sprintf("Cannot transition verification from %s to %s", verification.Status, status))
	}

	var completionDate *time.Time
	if status == domain.VerificationStatusCompleted {
		now := time.Now()
		completionDate = &now
	}

	found, err := u.verificationRepo.UpdateStatus(ctx, id, status, completionDate)
	if err != nil {
		return apperror.Internal(err)
	}
	if !found {
		return apperror.NotFound("Verification not found")
	}

	if status == domain.VerificationStatusReviewNeeded {
		u.enqueueReview(ctx, verification)
	}
	return nil
}

// enqueueReview adds a pending review queue entry for a verification that was
// flagged for manual review. Best effort.
func (u *verificationUsecase) enqueueReview(ctx context.Context, verification *domain.Verification) {
	item := &domain.ReviewQueueItem{
		ID:               uuid.NewString(),
		VerificationID:   verification.ID,
		ItemType:         "verification",
		IssueDescription: fmt.Sprintf("Verification for position %q flagged for manual review", verification.Position),
		Priority:         domain.ReviewPriorityNormal,
		Status:           domain.ReviewStatusPending,
	}
	if err := u.reviewRepo.Create(ctx, item); err != nil {
		logger.Log.Error("failed to enqueue review item", "error", err, "verification_id", verification.ID)
	}
}

func (u *verificationUsecase) UpdateItemStatus(ctx context.Context, verificationID, itemID, status, result string, details map[string]interface{}) error {
	if !domain.IsItemStatus(status) {
		return apperror.BadRequest("Invalid status")
	}

	item, err := u.verificationRepo.GetItem(ctx, verificationID, itemID)
	if err != nil {
		return apperror.Internal(err)
	}
	if item == nil {
		return apperror.NotFound("Verification item not found")
	}

	if !domain.CanTransitionItem(item.Status, status) {
		return apperror.StateError(fmt.Sprintf("Cannot transition item from %s to %s", item.Status, status))
	}

	item.Status = status
	if result != "" {
		item.Result = &result
	}
	if details != nil {
		item.Details = details
	}
	if status == domain.ItemStatusVerified {
		now := time.Now()
		item.VerifiedDate = &now
	}

	found, err := u.verificationRepo.UpdateItem(ctx, item)
	if err != nil {
		return apperror.Internal(err)
	}
	if !found {
		return apperror.NotFound("Verification item not found")
	}

	if status == domain.ItemStatusVerified {
		u.completeIfAllVerified(ctx, verificationID)
	}
	return nil
}

// completeIfAllVerified flips the parent verification to completed once every
// item has been verified. Best effort, a failure here leaves the verification
// in_progress for a later manual completion.
func (u *verificationUsecase) completeIfAllVerified(ctx context.Context, verificationID string) {
	done, err := u.verificationRepo.AllItemsVerified(ctx, verificationID)
	if err != nil || !done {
		if err != nil {
			logger.Log.Error("failed to check item completion", "error", err, "verification_id", verificationID)
		}
		return
	}

	verification, err := u.verificationRepo.GetByID(ctx, verificationID)
	if err != nil || verification == nil {
		return
	}
	if !domain.CanTransitionVerification(verification.Status, domain.VerificationStatusCompleted) {
		return
	}

	now := time.Now()
	if _, err := u.verificationRepo.UpdateStatus(ctx, verificationID, domain.VerificationStatusCompleted, &now); err != nil {
		logger.Log.Error("failed to auto-complete verification", "error", err, "verification_id", verificationID)
	}
}

func (u *verificationUsecase) ListForEmployer(ctx context.Context, employerUserID string) ([]domain.Verification, error) {
	employer, err := u.employerRepo.GetByUserID(ctx, employerUserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if employer == nil {
		return nil, apperror.NotFound("Employer profile not found")
	}

	verifications, err := u.verificationRepo.ListByEmployer(ctx, employer.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return verifications, nil
}

func (u *verificationUsecase) ListForCandidate(ctx context.Context, candidateUserID string) ([]domain.Verification, error) {
	candidate, err := u.candidateRepo.GetByUserID(ctx, candidateUserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if candidate == nil {
		return nil, apperror.NotFound("Candidate profile not found")
	}

	verifications, err := u.verificationRepo.ListByCandidate(ctx, candidate.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return verifications, nil
}

func (u *verificationUsecase) StatsForEmployer(ctx context.Context, employerUserID string) (*domain.VerificationStats, error) {
	employer, err := u.employerRepo.GetByUserID(ctx, employerUserID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if employer == nil {
		return nil, apperror.NotFound("Employer profile not found")
	}

	stats, err := u.verificationRepo.StatsByEmployer(ctx, employer.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	stats.AvgCompletionTime = "18 hours"
	return stats, nil
}
