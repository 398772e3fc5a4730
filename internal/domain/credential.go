package domain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// Credential status constants. A credential is immutable once issued except
// for the flip to revoked, which is terminal.
const (
	CredentialStatusActive  = "active"
	CredentialStatusRevoked = "revoked"
	CredentialStatusExpired = "expired" // reporting tag only, never stored
)

type Credential struct {
	ID              string                 `json:"id"`
	CandidateID     string                 `json:"candidate_id"`
	Type            string                 `json:"type"`
	Title           string                 `json:"title"`
	Details         map[string]interface{} `json:"details"`
	IssuedDate      time.Time              `json:"issued_date"`
	ExpiryDate      *time.Time             `json:"expiry_date,omitempty"`
	Status          string                 `json:"status"`
	VerificationURL string                 `json:"verification_url"`
	QRCode          string                 `json:"qr_code,omitempty"`
	Signature       string                 `json:"signature"`

	// Populated via join for the public verify view
	CandidateName string `json:"candidate_name,omitempty"`
}

// Fingerprint computes the credential signature: a hex SHA-256 over the
// canonical JSON of the issuance-time fields. This is a content fingerprint
// used as a tamper indicator, NOT a cryptographic signature - there is no
// key material and anyone with the same input can reproduce it.
func (c *Credential) Fingerprint() string {
	payload, _ := json.Marshal(map[string]interface{}{
		"id":      c.ID,
		"type":    c.Type,
		"title":   c.Title,
		"details": c.Details,
		"issued":  c.IssuedDate.UTC().Format(time.RFC3339),
	})
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}

// IsExpired reports whether the credential carries an expiry in the past.
func (c *Credential) IsExpired(now time.Time) bool {
	return c.ExpiryDate != nil && c.ExpiryDate.Before(now)
}

// VerifyResult is the public verification response: valid iff the credential
// is neither expired nor revoked.
type VerifyResult struct {
	Valid      bool        `json:"valid"`
	Status     string      `json:"status"` // active, expired or revoked
	Credential *Credential `json:"credential"`
}

type CredentialShare struct {
	ID              string     `json:"id"`
	CredentialID    string     `json:"credential_id"`
	SharedWithEmail string     `json:"shared_with_email,omitempty"`
	ShareLink       string     `json:"share_link"`
	CreatedDate     time.Time  `json:"created_date"`
	ExpiresDate     *time.Time `json:"expires_date,omitempty"`
	AccessCount     int        `json:"access_count"`
	LastAccessed    *time.Time `json:"last_accessed,omitempty"`
}

type IssueCredentialRequest struct {
	CandidateID  string                 `json:"candidateId" validate:"required"`
	Type         string                 `json:"type" validate:"required"`
	Title        string                 `json:"title" validate:"required"`
	Details      map[string]interface{} `json:"details"`
	ExpiryMonths int                    `json:"expiryMonths"`
}

type CreateShareRequest struct {
	SharedWithEmail string `json:"sharedWithEmail"`
	ExpiryDays      int    `json:"expiryDays"`
}

type CredentialRepository interface {
	// Create inserts the credential and the optional issuance notification in
	// a single transaction.
	Create(ctx context.Context, cred *Credential, notif *Notification) error
	GetByID(ctx context.Context, id string) (*Credential, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]Credential, error)
	// Revoke reports whether a row matched the id; re-revoking an already
	// revoked credential still matches and succeeds.
	Revoke(ctx context.Context, id string) (bool, error)
}

type ShareRepository interface {
	Create(ctx context.Context, share *CredentialShare) error
	ListByCredential(ctx context.Context, credentialID string) ([]CredentialShare, error)
	// TrackAccess increments access_count and stamps last_accessed. An
	// unknown id is a silent no-op, not an error.
	TrackAccess(ctx context.Context, shareID string) error
}

type CredentialUsecase interface {
	Issue(ctx context.Context, req *IssueCredentialRequest) (*Credential, error)
	Verify(ctx context.Context, id string) (*VerifyResult, error)
	Revoke(ctx context.Context, id, reason string) error
	ListForCandidate(ctx context.Context, candidateUserID string) ([]Credential, error)
	CreateShare(ctx context.Context, credentialID string, req *CreateShareRequest) (*CredentialShare, error)
	ListShares(ctx context.Context, credentialID string) ([]CredentialShare, error)
	TrackAccess(ctx context.Context, shareID string) error
}
