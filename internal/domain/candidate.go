package domain

import "context"

// Candidate status constants. A candidate created by an employer invitation
// has no linked user until they register.
const (
	CandidateStatusPending = "pending"
	CandidateStatusInvited = "invited"
	CandidateStatusActive  = "active"
)

type Candidate struct {
	ID     string  `json:"id"`
	UserID *string `json:"user_id,omitempty"`
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Phone  string  `json:"phone,omitempty"`
	Status string  `json:"status"`

	// Populated via join for the admin listing
	UserEmail string `json:"user_email,omitempty"`
}

type CandidateRepository interface {
	Create(ctx context.Context, candidate *Candidate) error
	GetByID(ctx context.Context, id string) (*Candidate, error)
	GetByUserID(ctx context.Context, userID string) (*Candidate, error)
	GetByEmail(ctx context.Context, email string) (*Candidate, error)
	List(ctx context.Context) ([]Candidate, error)
	// AttachUser links a registered user to an invited candidate record and
	// activates it. Reports whether a row matched the id.
	AttachUser(ctx context.Context, candidateID, userID string) (bool, error)
}
