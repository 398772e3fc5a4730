package domain

import (
	"context"
	"time"
)

// Role constants. A user's role is fixed at registration.
const (
	RoleEmployer  = "employer"
	RoleCandidate = "candidate"
	RoleAdmin     = "admin"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // bcrypt hash, never serialized
	Role      string    `json:"role"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Language  string    `json:"language"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthenticatedUser is the login/register response payload. The role-specific
// profile is nested the way the dashboard clients expect it.
type AuthenticatedUser struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone,omitempty"`
	Language  string     `json:"language"`
	Employer  *Employer  `json:"employer,omitempty"`
	Candidate *Candidate `json:"candidate,omitempty"`
}

type RegisterEmployerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Name        string `json:"name" validate:"required"`
	Phone       string `json:"phone"`
	CompanyName string `json:"companyName" validate:"required"`
	CompanySize string `json:"companySize"`
	Industry    string `json:"industry"`
	Location    string `json:"location"`
	Language    string `json:"language"`
}

type RegisterCandidateRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	Name        string `json:"name" validate:"required"`
	Phone       string `json:"phone"`
	CandidateID string `json:"candidateId"` // set when registering from an invitation
	Language    string `json:"language"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
}

type AuthUsecase interface {
	Login(ctx context.Context, email, password string) (string, *AuthenticatedUser, error)
	RegisterEmployer(ctx context.Context, req *RegisterEmployerRequest) (string, *AuthenticatedUser, error)
	RegisterCandidate(ctx context.Context, req *RegisterCandidateRequest) (string, *AuthenticatedUser, error)
	GetCurrentUser(ctx context.Context, id string) (*User, error)
}
