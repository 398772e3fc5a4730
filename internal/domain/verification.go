package domain

import (
	"context"
	"time"
)

// Verification status constants. Transitions are enforced through
// CanTransitionVerification rather than accepting arbitrary strings.
const (
	VerificationStatusInvited      = "invited"
	VerificationStatusInProgress   = "in_progress"
	VerificationStatusCompleted    = "completed"
	VerificationStatusReviewNeeded = "review_needed"
)

// Verification item status constants
const (
	ItemStatusPending   = "pending"
	ItemStatusVerifying = "verifying"
	ItemStatusVerified  = "verified"
)

// Verification item types
const (
	ItemTypeIdentity   = "identity"
	ItemTypeEducation  = "education"
	ItemTypeEmployment = "employment"
	ItemTypeCriminal   = "criminal"
	ItemTypeReference  = "reference"
)

// Package tiers and pricing
const (
	PackageBasic         = "basic"
	PackageStandard      = "standard"
	PackageComprehensive = "comprehensive"

	DefaultPackagePrice = 49
)

var PackagePrices = map[string]float64{
	PackageBasic:         29,
	PackageStandard:      49,
	PackageComprehensive: 79,
}

// PriceForPackage returns the fixed package price, defaulting for unknown tiers.
func PriceForPackage(packageType string) float64 {
	if price, ok := PackagePrices[packageType]; ok {
		return price
	}
	return DefaultPackagePrice
}

// ItemTypesForPackage returns the check set seeded for a package tier:
// identity, education and employment always; criminal and reference checks
// only for standard and comprehensive.
func ItemTypesForPackage(packageType string) []string {
	types := []string{ItemTypeIdentity, ItemTypeEducation, ItemTypeEmployment}
	if packageType == PackageStandard || packageType == PackageComprehensive {
		types = append(types, ItemTypeCriminal, ItemTypeReference)
	}
	return types
}

// verificationTransitions is the closed transition table for
// Verification.status. The in_progress self-transition keeps repeated
// candidate submissions permissive. review_needed is reachable from any
// non-terminal state by manual flag, completed can still be sent back
// to review.
var verificationTransitions = map[string][]string{
	VerificationStatusInvited:      {VerificationStatusInProgress, VerificationStatusReviewNeeded},
	VerificationStatusInProgress:   {VerificationStatusInProgress, VerificationStatusCompleted, VerificationStatusReviewNeeded},
	VerificationStatusReviewNeeded: {VerificationStatusInProgress, VerificationStatusCompleted},
	VerificationStatusCompleted:    {VerificationStatusReviewNeeded},
}

// itemTransitions is the transition table for VerificationItem.status.
// verified is terminal.
var itemTransitions = map[string][]string{
	ItemStatusPending:   {ItemStatusPending, ItemStatusVerifying, ItemStatusVerified},
	ItemStatusVerifying: {ItemStatusVerifying, ItemStatusVerified},
	ItemStatusVerified:  {},
}

func CanTransitionVerification(from, to string) bool {
	for _, next := range verificationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func CanTransitionItem(from, to string) bool {
	for _, next := range itemTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsVerificationStatus reports whether s is a member of the closed status set.
func IsVerificationStatus(s string) bool {
	_, ok := verificationTransitions[s]
	return ok
}

func IsItemStatus(s string) bool {
	_, ok := itemTransitions[s]
	return ok
}

type Verification struct {
	ID                  string     `json:"id"`
	EmployerID          string     `json:"employer_id"`
	CandidateID         string     `json:"candidate_id"`
	Position            string     `json:"position,omitempty"`
	PackageType         string     `json:"package_type"`
	Status              string     `json:"status"`
	Price               float64    `json:"price"`
	SpecialInstructions string     `json:"special_instructions,omitempty"`
	InitiatedDate       time.Time  `json:"initiated_date"`
	CompletionDate      *time.Time `json:"completion_date,omitempty"`

	// Populated via joins for list/detail views
	CandidateName  string `json:"candidate_name,omitempty"`
	CandidateEmail string `json:"candidate_email,omitempty"`
	CandidatePhone string `json:"candidate_phone,omitempty"`
	EmployerName   string `json:"employer_name,omitempty"`

	Items []VerificationItem `json:"items,omitempty"`
}

type VerificationItem struct {
	ID             string                 `json:"id"`
	VerificationID string                 `json:"verification_id"`
	Type           string                 `json:"type"`
	Status         string                 `json:"status"`
	Result         *string                `json:"result,omitempty"`
	Details        map[string]interface{} `json:"details"`
	VerifiedDate   *time.Time             `json:"verified_date,omitempty"`
}

// Supporting records submitted by the candidate.

type EducationRecord struct {
	ID                 string `json:"id"`
	CandidateID        string `json:"candidate_id"`
	Institution        string `json:"institution"`
	Degree             string `json:"degree"`
	FieldOfStudy       string `json:"fieldOfStudy"`
	StartDate          string `json:"startDate"`
	EndDate            string `json:"endDate"`
	DocumentURL        string `json:"documentUrl"`
	VerificationStatus string `json:"verification_status"`
}

type EmploymentRecord struct {
	ID                 string `json:"id"`
	CandidateID        string `json:"candidate_id"`
	CompanyName        string `json:"companyName"`
	JobTitle           string `json:"jobTitle"`
	StartDate          string `json:"startDate"`
	EndDate            string `json:"endDate"`
	SupervisorName     string `json:"supervisorName"`
	SupervisorContact  string `json:"supervisorContact"`
	CanContact         bool   `json:"canContact"`
	DocumentURL        string `json:"documentUrl"`
	VerificationStatus string `json:"verification_status"`
}

type Reference struct {
	ID            string  `json:"id"`
	CandidateID   string  `json:"candidate_id"`
	Name          string  `json:"name"`
	Relationship  string  `json:"relationship"`
	Company       string  `json:"company"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	PreferredTime string  `json:"preferredTime"`
	Language      string  `json:"language"`
	Status        string  `json:"status"`
	Feedback      *string `json:"feedback,omitempty"`
	Sentiment     *string `json:"sentiment,omitempty"`
}

// CandidateSubmission bundles the supporting records a candidate submits for
// a verification. All slices may be empty; an empty submission still flips
// the verification to in_progress.
type CandidateSubmission struct {
	Education  []EducationRecord  `json:"education"`
	Employment []EmploymentRecord `json:"employment"`
	References []Reference        `json:"references"`
}

type CreateVerificationRequest struct {
	CandidateName       string `json:"candidateName" validate:"required"`
	CandidateEmail      string `json:"candidateEmail" validate:"required,email"`
	CandidatePhone      string `json:"candidatePhone"`
	Position            string `json:"position"`
	PackageType         string `json:"packageType" validate:"required"`
	SpecialInstructions string `json:"specialInstructions"`
}

type VerificationStats struct {
	Total             int    `json:"total"`
	Invited           int    `json:"invited"`
	InProgress        int    `json:"in_progress"`
	Completed         int    `json:"completed"`
	ReviewNeeded      int    `json:"review_needed"`
	AvgCompletionTime string `json:"avgCompletionTime"`
}

type VerificationRepository interface {
	// Create inserts the verification and its seeded items, and the candidate
	// row when newCandidate is set, in a single transaction.
	Create(ctx context.Context, v *Verification, items []VerificationItem, newCandidate *Candidate) error
	GetByID(ctx context.Context, id string) (*Verification, error)
	GetItems(ctx context.Context, verificationID string) ([]VerificationItem, error)
	GetItem(ctx context.Context, verificationID, itemID string) (*VerificationItem, error)
	ListByEmployer(ctx context.Context, employerID string) ([]Verification, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]Verification, error)
	// SubmitRecords stores the supporting records, flips pending items to
	// verifying and sets the verification status, all in one transaction.
	SubmitRecords(ctx context.Context, verificationID, candidateID string, sub *CandidateSubmission) error
	// UpdateStatus reports whether a row matched the id. completionDate is
	// stamped when non-nil.
	UpdateStatus(ctx context.Context, id, status string, completionDate *time.Time) (bool, error)
	UpdateItem(ctx context.Context, item *VerificationItem) (bool, error)
	// AllItemsVerified reports whether every item of the verification has
	// reached the verified status.
	AllItemsVerified(ctx context.Context, verificationID string) (bool, error)
	StatsByEmployer(ctx context.Context, employerID string) (*VerificationStats, error)
	// Complete marks the verification completed, flips all items to verified
	// and issues the credential in a single transaction.
	Complete(ctx context.Context, id string, cred *Credential, notif *Notification) (bool, error)
}

type VerificationUsecase interface {
	Create(ctx context.Context, employerUserID string, req *CreateVerificationRequest) (*Verification, error)
	GetByID(ctx context.Context, id string) (*Verification, error)
	SubmitRecords(ctx context.Context, verificationID string, sub *CandidateSubmission) error
	UpdateStatus(ctx context.Context, id, status string) error
	UpdateItemStatus(ctx context.Context, verificationID, itemID, status, result string, details map[string]interface{}) error
	ListForEmployer(ctx context.Context, employerUserID string) ([]Verification, error)
	ListForCandidate(ctx context.Context, candidateUserID string) ([]Verification, error)
	StatsForEmployer(ctx context.Context, employerUserID string) (*VerificationStats, error)
}
