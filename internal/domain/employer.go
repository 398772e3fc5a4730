package domain

import "context"

type Employer struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	CompanyName string `json:"company_name"`
	CompanySize string `json:"company_size,omitempty"`
	Industry    string `json:"industry,omitempty"`
	Location    string `json:"location,omitempty"`
	Status      string `json:"status"`

	// Populated via join for the admin listing
	ContactEmail string `json:"email,omitempty"`
	ContactName  string `json:"contact_name,omitempty"`
	ContactPhone string `json:"phone,omitempty"`
}

type EmployerRepository interface {
	Create(ctx context.Context, employer *Employer) error
	GetByUserID(ctx context.Context, userID string) (*Employer, error)
	List(ctx context.Context) ([]Employer, error)
	// UpdateStatus reports whether a row matched the id.
	UpdateStatus(ctx context.Context, id, status string) (bool, error)
}
