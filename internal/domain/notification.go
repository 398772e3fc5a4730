package domain

import (
	"context"
	"time"
)

// Notification types emitted by the platform
const (
	NotificationVerificationInvited = "verification_invited"
	NotificationCredentialIssued    = "credential_issued"
	NotificationCredentialRevoked   = "credential_revoked"
)

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationRepository interface {
	Create(ctx context.Context, notif *Notification) error
	// ListByUser returns the latest 50 notifications, newest first.
	ListByUser(ctx context.Context, userID string) ([]Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
}

type NotificationUsecase interface {
	List(ctx context.Context, userID string) ([]Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
}
