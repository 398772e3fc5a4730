package usecase

import (
	"context"

	"ameencheck-backend/internal/domain"
	"ameencheck-backend/pkg/apperror"
	"ameencheck-backend/pkg/auth"
	"ameencheck-backend/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type authUsecase struct {
	userRepo      domain.UserRepository
	employerRepo  domain.EmployerRepository
	candidateRepo domain.CandidateRepository
	tokens        *auth.TokenManager
	validate      *validator.Validate
}

func NewAuthUsecase(
	userRepo domain.UserRepository,
	employerRepo domain.EmployerRepository,
	candidateRepo domain.CandidateRepository,
	tokens *auth.TokenManager,
) domain.AuthUsecase {
	return &authUsecase{
		userRepo:      userRepo,
		employerRepo:  employerRepo,
		candidateRepo: candidateRepo,
		tokens:        tokens,
		validate:      validator.New(),
	}
}

func (u *authUsecase) Login(ctx context.Context, email, password string) (string, *domain.AuthenticatedUser, error) {
	if email == "" || password == "" {
		return "", nil, apperror.BadRequest("Email and password required")
	}

	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, apperror.Internal(err)
	}
	if user == nil {
		return "", nil, apperror.Unauthorized("Invalid credentials")
	}

	if !auth.CheckPassword(user.Password, password) {
		return "", nil, apperror.Unauthorized("Invalid credentials")
	}

	token, err := u.tokens.Generate(user.ID, user.Email, user.Role, user.Name)
	if err != nil {
		return "", nil, apperror.Internal(err)
	}

	authed, err := u.buildAuthenticatedUser(ctx, user)
	if err != nil {
		return "", nil, err
	}
	return token, authed, nil
}

func (u *authUsecase) RegisterEmployer(ctx context.Context, req *domain.RegisterEmployerRequest) (string, *domain.AuthenticatedUser, error) {
	if err := u.validate.Struct(req); err != nil {
		return "", nil, apperror.BadRequest("Missing required fields")
	}

	existing, err := u.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, apperror.Internal(err)
	}
	if existing != nil {
		return "", nil, apperror.BadRequest("Email already registered")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return "", nil, apperror.Internal(err)
	}

	user := &domain.User{
		ID:       uuid.NewString(),
		Email:    req.Email,
		Password: hash,
		Role:     domain.RoleEmployer,
		Name:     req.Name,
		Phone:    req.Phone,
		Language: orDefault(req.Language, "en"),
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return "", nil, apperror.Internal(err)
	}

	employer := &domain.Employer{
		ID:          uuid.NewString(),
		UserID:      user.ID,
		CompanyName: req.CompanyName,
		CompanySize: req.CompanySize,
		Industry:    req.Industry,
		Location:    req.Location,
		Status:      "active",
	}
	if err := u.employerRepo.Create(ctx, employer); err != nil {
		return "", nil, apperror.Internal(err)
	}

	token, err := u.tokens.Generate(user.ID, user.Email, user.Role, user.Name)
	if err != nil {
		return "", nil, apperror.Internal(err)
	}

	authed := toAuthenticatedUser(user)
	authed.Employer = employer
	return token, authed, nil
}

func (u *authUsecase) RegisterCandidate(ctx context.Context, req *domain.RegisterCandidateRequest) (string, *domain.AuthenticatedUser, error) {
	if err := u.validate.Struct(req); err != nil {
		return "", nil, apperror.BadRequest("Missing required fields")
	}

	existing, err := u.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, apperror.Internal(err)
	}
	if existing != nil {
		return "", nil, apperror.BadRequest("Email already registered")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return "", nil, apperror.Internal(err)
	}

	user := &domain.User{
		ID:       uuid.NewString(),
		Email:    req.Email,
		Password: hash,
		Role:     domain.RoleCandidate,
		Name:     req.Name,
		Phone:    req.Phone,
		Language: orDefault(req.Language, "en"),
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return "", nil, apperror.Internal(err)
	}

	var candidate *domain.Candidate
	if req.CandidateID != "" {
		// Registration from an invitation link: link the pre-created
		// candidate record instead of creating a new one.
		found, err := u.candidateRepo.AttachUser(ctx, req.CandidateID, user.ID)
		if err != nil {
			return "", nil, apperror.Internal(err)
		}
		if !found {
			return "", nil, apperror.BadRequest("Invitation not found")
		}
		candidate, err = u.candidateRepo.GetByID(ctx, req.CandidateID)
		if err != nil {
			return "", nil, apperror.Internal(err)
		}
	} else {
		candidate = &domain.Candidate{
			ID:     uuid.NewString(),
			UserID: &user.ID,
			Name:   req.Name,
			Email:  req.Email,
			Phone:  req.Phone,
			Status: domain.CandidateStatusActive,
		}
		if err := u.candidateRepo.Create(ctx, candidate); err != nil {
			return "", nil, apperror.Internal(err)
		}
	}

	token, err := u.tokens.Generate(user.ID, user.Email, user.Role, user.Name)
	if err != nil {
		return "", nil, apperror.Internal(err)
	}

	authed := toAuthenticatedUser(user)
	authed.Candidate = candidate
	return token, authed, nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}
	return user, nil
}

func (u *authUsecase) buildAuthenticatedUser(ctx context.Context, user *domain.User) (*domain.AuthenticatedUser, error) {
	authed := toAuthenticatedUser(user)

	switch user.Role {
	case domain.RoleEmployer:
		employer, err := u.employerRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		authed.Employer = employer
	case domain.RoleCandidate:
		candidate, err := u.candidateRepo.GetByUserID(ctx, user.ID)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		if candidate == nil {
			logger.Log.Warn("candidate user without profile", "user_id", user.ID)
		}
		authed.Candidate = candidate
	}
	return authed, nil
}

func toAuthenticatedUser(user *domain.User) *domain.AuthenticatedUser {
	return &domain.AuthenticatedUser{
		ID:       user.ID,
		Email:    user.Email,
		Role:     user.Role,
		Name:     user.Name,
		Phone:    user.Phone,
		Language: user.Language,
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
