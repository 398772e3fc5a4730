package domain

import (
	"context"
	"time"
)

// Review queue priorities and statuses
const (
	ReviewPriorityHigh   = "high"
	ReviewPriorityNormal = "normal"
	ReviewPriorityLow    = "low"

	ReviewStatusPending  = "pending"
	ReviewStatusResolved = "resolved"
)

type ReviewQueueItem struct {
	ID               string     `json:"id"`
	VerificationID   string     `json:"verification_id"`
	ItemType         string     `json:"item_type"`
	IssueDescription string     `json:"issue_description,omitempty"`
	Priority         string     `json:"priority"`
	Status           string     `json:"status"`
	AssignedTo       *string    `json:"assigned_to,omitempty"`
	CreatedDate      time.Time  `json:"created_date"`
	ResolvedDate     *time.Time `json:"resolved_date,omitempty"`
	ResolutionNotes  *string    `json:"resolution_notes,omitempty"`

	// Populated via joins for the admin table
	Position      string `json:"position,omitempty"`
	CandidateName string `json:"candidate_name,omitempty"`
	EmployerName  string `json:"employer_name,omitempty"`
}

// Analytics is the admin dashboard aggregate.
type Analytics struct {
	TotalVerifications    int            `json:"totalVerifications"`
	TotalEmployers        int            `json:"totalEmployers"`
	TotalCandidates       int            `json:"totalCandidates"`
	ActiveCredentials     int            `json:"activeCredentials"`
	PendingReviews        int            `json:"pendingReviews"`
	VerificationsByStatus []StatusCount  `json:"verificationsByStatus"`
	RecentVerifications   []DailyCount   `json:"recentVerifications"`
	AvgCompletionTime     string         `json:"avgCompletionTime"`
	AccuracyRate          string         `json:"accuracyRate"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type DailyCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type ReviewRepository interface {
	// List returns queue items with the given status, ordered by priority
	// rank (high, normal, low) then creation time ascending.
	List(ctx context.Context, status string) ([]ReviewQueueItem, error)
	Create(ctx context.Context, item *ReviewQueueItem) error
	// Resolve reports whether a row matched the id.
	Resolve(ctx context.Context, id, notes, adminUserID string) (bool, error)
}

type AdminRepository interface {
	Analytics(ctx context.Context) (*Analytics, error)
}

type AdminUsecase interface {
	ReviewQueue(ctx context.Context, status string) ([]ReviewQueueItem, error)
	ResolveReview(ctx context.Context, id, notes, adminUserID string) error
	Analytics(ctx context.Context) (*Analytics, error)
	ListEmployers(ctx context.Context) ([]Employer, error)
	ListCandidates(ctx context.Context) ([]Candidate, error)
	UpdateEmployerStatus(ctx context.Context, id, status string) error
	// CompleteVerification force-completes a verification, marks every item
	// verified and issues a credential snapshotting the outcome.
	CompleteVerification(ctx context.Context, id string) (*Credential, error)
}
