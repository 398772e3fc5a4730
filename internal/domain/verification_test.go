package domain_test

import (
	"encoding/json"
	"testing"

	"ameencheck-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemTypesForPackage(t *testing.T) {
	t.Run("basic package seeds three checks", func(t *testing.T) {
		types := domain.ItemTypesForPackage(domain.PackageBasic)
		assert.Equal(t, []string{
			domain.ItemTypeIdentity,
			domain.ItemTypeEducation,
			domain.ItemTypeEmployment,
		}, types)
	})

	t.Run("standard and comprehensive add criminal and reference", func(t *testing.T) {
		for _, pkg := range []string{domain.PackageStandard, domain.PackageComprehensive} {
			types := domain.ItemTypesForPackage(pkg)
			assert.Len(t, types, 5)
			assert.Contains(t, types, domain.ItemTypeCriminal)
			assert.Contains(t, types, domain.ItemTypeReference)
		}
	})
}

func TestPriceForPackage(t *testing.T) {
	assert.Equal(t, float64(29), domain.PriceForPackage(domain.PackageBasic))
	assert.Equal(t, float64(49), domain.PriceForPackage(domain.PackageStandard))
	assert.Equal(t, float64(79), domain.PriceForPackage(domain.PackageComprehensive))
	assert.Equal(t, float64(49), domain.PriceForPackage("deluxe"))
}

func TestVerificationTransitions(t *testing.T) {
	legal := map[[2]string]bool{
		{domain.VerificationStatusInvited, domain.VerificationStatusInProgress}:        true,
		{domain.VerificationStatusInvited, domain.VerificationStatusReviewNeeded}:      true,
		{domain.VerificationStatusInProgress, domain.VerificationStatusInProgress}:     true,
		{domain.VerificationStatusInProgress, domain.VerificationStatusCompleted}:      true,
		{domain.VerificationStatusInProgress, domain.VerificationStatusReviewNeeded}:   true,
		{domain.VerificationStatusReviewNeeded, domain.VerificationStatusInProgress}:   true,
		{domain.VerificationStatusReviewNeeded, domain.VerificationStatusCompleted}:    true,
		{domain.VerificationStatusCompleted, domain.VerificationStatusReviewNeeded}:    true,
	}

	statuses := []string{
		domain.VerificationStatusInvited,
		domain.VerificationStatusInProgress,
		domain.VerificationStatusCompleted,
		domain.VerificationStatusReviewNeeded,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			want := legal[[2]string{from, to}]
			assert.Equalf(t, want, domain.CanTransitionVerification(from, to),
				"transition %s -> %s", from, to)
		}
	}

	t.Run("unknown statuses never transition", func(t *testing.T) {
		assert.False(t, domain.CanTransitionVerification("archived", domain.VerificationStatusCompleted))
		assert.False(t, domain.CanTransitionVerification(domain.VerificationStatusInvited, "archived"))
	})
}

func TestItemTransitions(t *testing.T) {
	assert.True(t, domain.CanTransitionItem(domain.ItemStatusPending, domain.ItemStatusVerifying))
	assert.True(t, domain.CanTransitionItem(domain.ItemStatusPending, domain.ItemStatusVerified))
	assert.True(t, domain.CanTransitionItem(domain.ItemStatusVerifying, domain.ItemStatusVerified))
	assert.True(t, domain.CanTransitionItem(domain.ItemStatusVerifying, domain.ItemStatusVerifying))

	t.Run("verified is terminal", func(t *testing.T) {
		for _, to := range []string{domain.ItemStatusPending, domain.ItemStatusVerifying, domain.ItemStatusVerified} {
			assert.False(t, domain.CanTransitionItem(domain.ItemStatusVerified, to))
		}
	})

	t.Run("pending cannot be re-entered", func(t *testing.T) {
		assert.False(t, domain.CanTransitionItem(domain.ItemStatusVerifying, domain.ItemStatusPending))
	})
}

func TestIsVerificationStatus(t *testing.T) {
	assert.True(t, domain.IsVerificationStatus(domain.VerificationStatusInvited))
	assert.True(t, domain.IsVerificationStatus(domain.VerificationStatusReviewNeeded))
	assert.False(t, domain.IsVerificationStatus("done"))
	assert.False(t, domain.IsVerificationStatus(""))
}

// Item details live in a JSONB column and go through encoding/json inside
// pgx; a full item payload must come back deep-equal.
func TestItemDetailsJSONRoundTrip(t *testing.T) {
	item := domain.VerificationItem{
		ID:             "it-1",
		VerificationID: "v-1",
		Type:           domain.ItemTypeEducation,
		Status:         domain.ItemStatusVerified,
		Details: map[string]interface{}{
			"institution": "King Saud University",
			"degree":      "BSc Computer Science",
			"matched":     true,
			"confidence":  0.92,
			"documents":   []interface{}{"transcript.pdf", "diploma.pdf"},
		},
	}

	encoded, err := json.Marshal(item.Details)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	assert.Equal(t, item.Details, decoded)
}
