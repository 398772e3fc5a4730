package usecase_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"ameencheck-backend/internal/domain"
	"ameencheck-backend/internal/usecase"
	"ameencheck-backend/pkg/apperror"
	"ameencheck-backend/pkg/auth"
	"ameencheck-backend/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// Mock Repositories

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockEmployerRepo struct {
	mock.Mock
}

func (m *MockEmployerRepo) Create(ctx context.Context, employer *domain.Employer) error {
	return m.Called(ctx, employer).Error(0)
}
func (m *MockEmployerRepo) GetByUserID(ctx context.Context, userID string) (*domain.Employer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employer), args.Error(1)
}
func (m *MockEmployerRepo) List(ctx context.Context) ([]domain.Employer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employer), args.Error(1)
}
func (m *MockEmployerRepo) UpdateStatus(ctx context.Context, id, status string) (bool, error) {
	args := m.Called(ctx, id, status)
	return args.Bool(0), args.Error(1)
}

type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) Create(ctx context.Context, candidate *domain.Candidate) error {
	return m.Called(ctx, candidate).Error(0)
}
func (m *MockCandidateRepo) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}
func (m *MockCandidateRepo) GetByUserID(ctx context.Context, userID string) (*domain.Candidate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}
func (m *MockCandidateRepo) GetByEmail(ctx context.Context, email string) (*domain.Candidate, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}
func (m *MockCandidateRepo) List(ctx context.Context) ([]domain.Candidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Candidate), args.Error(1)
}
func (m *MockCandidateRepo) AttachUser(ctx context.Context, candidateID, userID string) (bool, error) {
	args := m.Called(ctx, candidateID, userID)
	return args.Bool(0), args.Error(1)
}

type MockVerificationRepo struct {
	mock.Mock
}

func (m *MockVerificationRepo) Create(ctx context.Context, v *domain.Verification, items []domain.VerificationItem, newCandidate *domain.Candidate) error {
	return m.Called(ctx, v, items, newCandidate).Error(0)
}
func (m *MockVerificationRepo) GetByID(ctx context.Context, id string) (*domain.Verification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Verification), args.Error(1)
}
func (m *MockVerificationRepo) GetItems(ctx context.Context, verificationID string) ([]domain.VerificationItem, error) {
	args := m.Called(ctx, verificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.VerificationItem), args.Error(1)
}
func (m *MockVerificationRepo) GetItem(ctx context.Context, verificationID, itemID string) (*domain.VerificationItem, error) {
	args := m.Called(ctx, verificationID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationItem), args.Error(1)
}
func (m *MockVerificationRepo) ListByEmployer(ctx context.Context, employerID string) ([]domain.Verification, error) {
	args := m.Called(ctx, employerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Verification), args.Error(1)
}
func (m *MockVerificationRepo) ListByCandidate(ctx context.Context, candidateID string) ([]domain.Verification, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Verification), args.Error(1)
}
func (m *MockVerificationRepo) SubmitRecords(ctx context.Context, verificationID, candidateID string, sub *domain.CandidateSubmission) error {
	return m.Called(ctx, verificationID, candidateID, sub).Error(0)
}
func (m *MockVerificationRepo) UpdateStatus(ctx context.Context, id, status string, completionDate *time.Time) (bool, error) {
	args := m.Called(ctx, id, status, completionDate)
	return args.Bool(0), args.Error(1)
}
func (m *MockVerificationRepo) UpdateItem(ctx context.Context, item *domain.VerificationItem) (bool, error) {
	args := m.Called(ctx, item)
	return args.Bool(0), args.Error(1)
}
func (m *MockVerificationRepo) AllItemsVerified(ctx context.Context, verificationID string) (bool, error) {
	args := m.Called(ctx, verificationID)
	return args.Bool(0), args.Error(1)
}
func (m *MockVerificationRepo) StatsByEmployer(ctx context.Context, employerID string) (*domain.VerificationStats, error) {
	args := m.Called(ctx, employerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.VerificationStats), args.Error(1)
}
func (m *MockVerificationRepo) Complete(ctx context.Context, id string, cred *domain.Credential, notif *domain.Notification) (bool, error) {
	args := m.Called(ctx, id, cred, notif)
	return args.Bool(0), args.Error(1)
}

type MockCredentialRepo struct {
	mock.Mock
}

func (m *MockCredentialRepo) Create(ctx context.Context, cred *domain.Credential, notif *domain.Notification) error {
	return m.Called(ctx, cred, notif).Error(0)
}
func (m *MockCredentialRepo) GetByID(ctx context.Context, id string) (*domain.Credential, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Credential), args.Error(1)
}
func (m *MockCredentialRepo) ListByCandidate(ctx context.Context, candidateID string) ([]domain.Credential, error) {
	args := m.Called(ctx, candidateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Credential), args.Error(1)
}
func (m *MockCredentialRepo) Revoke(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type MockShareRepo struct {
	mock.Mock
}

func (m *MockShareRepo) Create(ctx context.Context, share *domain.CredentialShare) error {
	return m.Called(ctx, share).Error(0)
}
func (m *MockShareRepo) ListByCredential(ctx context.Context, credentialID string) ([]domain.CredentialShare, error) {
	args := m.Called(ctx, credentialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CredentialShare), args.Error(1)
}
func (m *MockShareRepo) TrackAccess(ctx context.Context, shareID string) error {
	return m.Called(ctx, shareID).Error(0)
}

type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, notif *domain.Notification) error {
	return m.Called(ctx, notif).Error(0)
}
func (m *MockNotificationRepo) ListByUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}
func (m *MockNotificationRepo) MarkRead(ctx context.Context, id, userID string) error {
	return m.Called(ctx, id, userID).Error(0)
}

type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) List(ctx context.Context, status string) ([]domain.ReviewQueueItem, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReviewQueueItem), args.Error(1)
}
func (m *MockReviewRepo) Create(ctx context.Context, item *domain.ReviewQueueItem) error {
	return m.Called(ctx, item).Error(0)
}
func (m *MockReviewRepo) Resolve(ctx context.Context, id, notes, adminUserID string) (bool, error) {
	args := m.Called(ctx, id, notes, adminUserID)
	return args.Bool(0), args.Error(1)
}

func newVerificationUC(vr *MockVerificationRepo, er *MockEmployerRepo, cr *MockCandidateRepo, ur *MockUserRepo, nr *MockNotificationRepo) domain.VerificationUsecase {
	rr := new(MockReviewRepo)
	rr.On("Create", mock.Anything, mock.Anything).Return(nil).Maybe()
	return usecase.NewVerificationUsecase(vr, er, cr, ur, nr, rr, nil, "http://localhost:8080")
}

func appCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	return appErr.Code
}

func TestCreateVerificationSeeding(t *testing.T) {
	ctx := context.Background()
	employer := &domain.Employer{ID: "emp-1", UserID: "user-emp", CompanyName: "Acme"}

	t.Run("basic package seeds three pending items", func(t *testing.T) {
		vr := new(MockVerificationRepo)
		er := new(MockEmployerRepo)
		cr := new(MockCandidateRepo)

		er.On("GetByUserID", mock.Anything, "user-emp").Return(employer, nil)
		cr.On("GetByEmail", mock.Anything, "amal@example.com").Return(nil, nil)

		var gotItems []domain.VerificationItem
		var gotCandidate *domain.Candidate
		vr.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				gotItems = args.Get(2).([]domain.VerificationItem)
				gotCandidate = args.Get(3).(*domain.Candidate)
			}).Return(nil)

		uc := newVerificationUC(vr, er, cr, new(MockUserRepo), new(MockNotificationRepo))
		v, err := uc.Create(ctx, "user-emp", &domain.CreateVerificationRequest{
			CandidateName:  "Amal",
			CandidateEmail: "amal@example.com",
			Position:       "Engineer",
			PackageType:    domain.PackageBasic,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.VerificationStatusInvited, v.Status)
		assert.Equal(t, float64(29), v.Price)

		require.Len(t, gotItems, 3)
		for _, item := range gotItems {
			assert.Equal(t, domain.ItemStatusPending, item.Status)
			assert.Equal(t, v.ID, item.VerificationID)
		}

		require.NotNil(t, gotCandidate)
		assert.Equal(t, domain.CandidateStatusInvited, gotCandidate.Status)
		assert.Nil(t, gotCandidate.UserID)
	})

	t.Run("standard package seeds five items", func(t *testing.T) {
		vr := new(MockVerificationRepo)
		er := new(MockEmployerRepo)
		cr := new(MockCandidateRepo)

		existing := &domain.Candidate{ID: "cand-1", Name: "Amal", Email: "amal@example.com"}
		er.On("GetByUserID", mock.Anything, "user-emp").Return(employer, nil)
		cr.On("GetByEmail", mock.Anything, "amal@example.com").Return(existing, nil)

		var gotItems []domain.VerificationItem
		vr.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				gotItems = args.Get(2).([]domain.VerificationItem)
			}).Return(nil)

		uc := newVerificationUC(vr, er, cr, new(MockUserRepo), new(MockNotificationRepo))
		v, err := uc.Create(ctx, "user-emp", &domain.CreateVerificationRequest{
			CandidateName:  "Amal",
			CandidateEmail: "amal@example.com",
			PackageType:    domain.PackageStandard,
		})

		require.NoError(t, err)
		assert.Equal(t, "cand-1", v.CandidateID)
		assert.Equal(t, float64(49), v.Price)
		require.Len(t, gotItems, 5)

		types := make([]string, 0, len(gotItems))
		for _, item := range gotItems {
			types = append(types, item.Type)
		}
		assert.ElementsMatch(t, []string{"identity", "education", "employment", "criminal", "reference"}, types)

		// Existing candidate, no new row
		vr.AssertCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, (*domain.Candidate)(nil))
	})

	t.Run("missing required fields rejected", func(t *testing.T) {
		uc := newVerificationUC(new(MockVerificationRepo), new(MockEmployerRepo), new(MockCandidateRepo), new(MockUserRepo), new(MockNotificationRepo))
		_, err := uc.Create(ctx, "user-emp", &domain.CreateVerificationRequest{
			CandidateEmail: "not-an-email",
			PackageType:    domain.PackageBasic,
		})
		require.Error(t, err)
		assert.Equal(t, 400, appCode(t, err))
	})

	t.Run("notifies linked candidate user", func(t *testing.T) {
		vr := new(MockVerificationRepo)
		er := new(MockEmployerRepo)
		cr := new(MockCandidateRepo)
		ur := new(MockUserRepo)
		nr := new(MockNotificationRepo)

		userID := "user-cand"
		existing := &domain.Candidate{ID: "cand-1", UserID: &userID, Name: "Amal", Email: "amal@example.com"}
		er.On("GetByUserID", mock.Anything, "user-emp").Return(employer, nil)
		cr.On("GetByEmail", mock.Anything, "amal@example.com").Return(existing, nil)
		vr.On("Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		ur.On("GetByID", mock.Anything, "user-emp").Return(&domain.User{ID: "user-emp", Name: "Dina"}, nil)

		var gotNotif *domain.Notification
		nr.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				gotNotif = args.Get(1).(*domain.Notification)
			}).Return(nil)

		uc := newVerificationUC(vr, er, cr, ur, nr)
		_, err := uc.Create(ctx, "user-emp", &domain.CreateVerificationRequest{
			CandidateName:  "Amal",
			CandidateEmail: "amal@example.com",
			Position:       "Engineer",
			PackageType:    domain.PackageComprehensive,
		})

		require.NoError(t, err)
		require.NotNil(t, gotNotif)
		assert.Equal(t, "user-cand", gotNotif.UserID)
		assert.Equal(t, domain.NotificationVerificationInvited, gotNotif.Type)
		assert.Contains(t, gotNotif.Message, "Dina")
		assert.Contains(t, gotNotif.Message, "Engineer")
	})
}

func TestVerificationStatusTransitions(t *testing.T) {
	ctx := context.Background()

	setup := func(current string) (domain.VerificationUsecase, *MockVerificationRepo) {
		vr := new(MockVerificationRepo)
		vr.On("GetByID", mock.Anything, "v-1").Return(&domain.Verification{ID: "v-1", Status: current}, nil)
		vr.On("UpdateStatus", mock.Anything, "v-1", mock.Anything, mock.Anything).Return(true, nil)
		uc := newVerificationUC(vr, new(MockEmployerRepo), new(MockCandidateRepo), new(MockUserRepo), new(MockNotificationRepo))
		return uc, vr
	}

	t.Run("legal transition passes", func(t *testing.T) {
		uc, vr := setup(domain.VerificationStatusInvited)
		require.NoError(t, uc.UpdateStatus(ctx, "v-1", domain.VerificationStatusInProgress))
		vr.AssertCalled(t, "UpdateStatus", mock.Anything, "v-1", domain.VerificationStatusInProgress, (*time.Time)(nil))
	})

	t.Run("completion stamps completion date", func(t *testing.T) {
		uc, vr := setup(domain.VerificationStatusInProgress)
		require.NoError(t, uc.UpdateStatus(ctx, "v-1", domain.VerificationStatusCompleted))
		vr.AssertCalled(t, "UpdateStatus", mock.Anything, "v-1", domain.VerificationStatusCompleted,
			mock.MatchedBy(func(ts *time.Time) bool { return ts != nil }))
	})

	t.Run("illegal transition returns conflict", func(t *testing.T) {
		uc, vr := setup(domain.VerificationStatusInvited)
		err := uc.UpdateStatus(ctx, "v-1", domain.VerificationStatusCompleted)
		require.Error(t, err)
		assert.Equal(t, 409, appCode(t, err))
		vr.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown status rejected before lookup", func(t *testing.T) {
		uc, vr := setup(domain.VerificationStatusInvited)
		err := uc.UpdateStatus(ctx, "v-1", "archived")
		require.Error(t, err)
		assert.Equal(t, 400, appCode(t, err))
		vr.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown verification returns 404", func(t *testing.T) {
		vr := new(MockVerificationRepo)
		vr.On("GetByID", mock.Anything, "missing").Return(nil, nil)
		uc := newVerificationUC(vr, new(MockEmployerRepo), new(MockCandidateRepo), new(MockUserRepo), new(MockNotificationRepo))

		err := uc.UpdateStatus(ctx, "missing", domain.VerificationStatusInProgress)
		require.Error(t, err)
		assert.Equal(t, 404, appCode(t, err))
	})

	t.Run("review needed enqueues a pending review item", func(t *testing.T) {
		vr := new(MockVerificationRepo)
		rr := new(MockReviewRepo)

		vr.On("GetByID", mock.Anything, "v-1").
			Return(&domain.Verification{ID: "v-1", Position: "Engineer", Status: domain.VerificationStatusInProgress}, nil)
		vr.On("UpdateStatus", mock.Anything, "v-1", domain.VerificationStatusReviewNeeded, mock.Anything).Return(true, nil)

		var gotItem *domain.ReviewQueueItem
		rr.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				gotItem = args.Get(1).(*domain.ReviewQueueItem)
			}).Return(nil)

		uc := usecase.NewVerificationUsecase(vr, new(MockEmployerRepo), new(MockCandidateRepo),
			new(MockUserRepo), new(MockNotificationRepo), rr, nil, "http://localhost:8080")
		require.NoError(t, uc.UpdateStatus(ctx, "v-1", domain.VerificationStatusReviewNeeded))

		require.NotNil(t, gotItem)
		assert.Equal(t, "v-1", gotItem.VerificationID)
		assert.Equal(t, domain.ReviewStatusPending, gotItem.Status)
		assert.Equal(t, domain.ReviewPriorityNormal, gotItem.Priority)
		assert.Contains(t, gotItem.IssueDescription, "Engineer")
	})
}

func TestUpdateItemStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("verified item is terminal", func(t *testing.T) {
		vr := new(MockVerificationRepo)
		vr.On("GetItem", mock.Anything, "v-1", "it-1").
			Return(&domain.VerificationItem{ID: "it-1", VerificationID: "v-1", Status: domain.ItemStatusVerified}, nil)
		uc := newVerificationUC(vr, new(MockEmployerRepo), new(MockCandidateRepo), new(MockUserRepo), new(MockNotificationRepo))

		err := uc.UpdateItemStatus(ctx, "v-1", "it-1", domain.ItemStatusVerifying, "", nil)
		require.Error(t, err)
		assert.Equal(t, 409, appCode(t, err))
	})

	t.Run("last verified item completes the verification", func(t *testing.T) {
		vr := new(MockVerificationRepo)
		vr.On("GetItem", mock.Anything, "v-1", "it-1").
			Return(&domain.VerificationItem{ID: "it-1", VerificationID: "v-1", Status: domain.ItemStatusVerifying}, nil)
		vr.On("UpdateItem", mock.Anything, mock.Anything).Return(true, nil)
		vr.On("AllItemsVerified", mock.Anything, "v-1").Return(true, nil)
		vr.On("GetByID", mock.Anything, "v-1").
			Return(&domain.Verification{ID: "v-1", Status: domain.VerificationStatusInProgress}, nil)
		vr.On("UpdateStatus", mock.Anything, "v-1", domain.VerificationStatusCompleted, mock.Anything).Return(true, nil)

		uc := newVerificationUC(vr, new(MockEmployerRepo), new(MockCandidateRepo), new(MockUserRepo), new(MockNotificationRepo))
		err := uc.UpdateItemStatus(ctx, "v-1", "it-1", domain.ItemStatusVerified, "clear", map[string]interface{}{"score": 0.99})
		require.NoError(t, err)

		vr.AssertCalled(t, "UpdateStatus", mock.Anything, "v-1", domain.VerificationStatusCompleted, mock.Anything)
	})
}

func TestSubmitRecords(t *testing.T) {
	ctx := context.Background()
	sub := &domain.CandidateSubmission{
		Education: []domain.EducationRecord{{Institution: "KSU", Degree: "BSc"}},
	}

	t.Run("invited verification accepts submission", func(t *testing.T) {
		vr := new(MockVerificationRepo)
		vr.On("GetByID", mock.Anything, "v-1").
			Return(&domain.Verification{ID: "v-1", CandidateID: "cand-1", Status: domain.VerificationStatusInvited}, nil)
		vr.On("SubmitRecords", mock.Anything, "v-1", "cand-1", sub).Return(nil)

		uc := newVerificationUC(vr, new(MockEmployerRepo), new(MockCandidateRepo), new(MockUserRepo), new(MockNotificationRepo))
		require.NoError(t, uc.SubmitRecords(ctx, "v-1", sub))
	})

	t.Run("repeat submission while in progress allowed", func(t *testing.T) {
		vr := new(MockVerificationRepo)
		vr.On("GetByID", mock.Anything, "v-1").
			Return(&domain.Verification{ID: "v-1", CandidateID: "cand-1", Status: domain.VerificationStatusInProgress}, nil)
		vr.On("SubmitRecords", mock.Anything, "v-1", "cand-1", sub).Return(nil)

		uc := newVerificationUC(vr, new(MockEmployerRepo), new(MockCandidateRepo), new(MockUserRepo), new(MockNotificationRepo))
		require.NoError(t, uc.SubmitRecords(ctx, "v-1", sub))
	})

	t.Run("completed verification rejects submission", func(t *testing.T) {
		vr := new(MockVerificationRepo)
		vr.On("GetByID", mock.Anything, "v-1").
			Return(&domain.Verification{ID: "v-1", CandidateID: "cand-1", Status: domain.VerificationStatusCompleted}, nil)

		uc := newVerificationUC(vr, new(MockEmployerRepo), new(MockCandidateRepo), new(MockUserRepo), new(MockNotificationRepo))
		err := uc.SubmitRecords(ctx, "v-1", sub)
		require.Error(t, err)
		assert.Equal(t, 409, appCode(t, err))
	})
}

func newCredentialUC(cr *MockCredentialRepo, sr *MockShareRepo, candR *MockCandidateRepo, nr *MockNotificationRepo) domain.CredentialUsecase {
	return usecase.NewCredentialUsecase(cr, sr, candR, nr, "http://localhost:8080")
}

func TestIssueCredential(t *testing.T) {
	ctx := context.Background()

	t.Run("missing fields rejected", func(t *testing.T) {
		uc := newCredentialUC(new(MockCredentialRepo), new(MockShareRepo), new(MockCandidateRepo), new(MockNotificationRepo))
		_, err := uc.Issue(ctx, &domain.IssueCredentialRequest{CandidateID: "cand-1"})
		require.Error(t, err)
		assert.Equal(t, 400, appCode(t, err))
	})

	t.Run("unknown candidate rejected", func(t *testing.T) {
		candR := new(MockCandidateRepo)
		candR.On("GetByID", mock.Anything, "ghost").Return(nil, nil)

		uc := newCredentialUC(new(MockCredentialRepo), new(MockShareRepo), candR, new(MockNotificationRepo))
		_, err := uc.Issue(ctx, &domain.IssueCredentialRequest{CandidateID: "ghost", Type: "employment", Title: "Employment Check"})
		require.Error(t, err)
		assert.Equal(t, 404, appCode(t, err))
	})

	t.Run("issues signed credential with QR and notification", func(t *testing.T) {
		cr := new(MockCredentialRepo)
		candR := new(MockCandidateRepo)

		userID := "user-cand"
		candR.On("GetByID", mock.Anything, "cand-1").
			Return(&domain.Candidate{ID: "cand-1", UserID: &userID, Name: "Amal"}, nil)

		var gotCred *domain.Credential
		var gotNotif *domain.Notification
		cr.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				gotCred = args.Get(1).(*domain.Credential)
				gotNotif = args.Get(2).(*domain.Notification)
			}).Return(nil)

		uc := newCredentialUC(cr, new(MockShareRepo), candR, new(MockNotificationRepo))
		cred, err := uc.Issue(ctx, &domain.IssueCredentialRequest{
			CandidateID:  "cand-1",
			Type:         "comprehensive",
			Title:        "Comprehensive Background Check",
			Details:      map[string]interface{}{"verified": true},
			ExpiryMonths: 12,
		})

		require.NoError(t, err)
		assert.Equal(t, domain.CredentialStatusActive, cred.Status)
		assert.Len(t, cred.Signature, 64)
		assert.Equal(t, cred.Fingerprint(), cred.Signature)
		assert.True(t, strings.HasPrefix(cred.QRCode, "data:image/png;base64,"))
		assert.Contains(t, cred.VerificationURL, "/verify/"+cred.ID)
		require.NotNil(t, cred.ExpiryDate)

		require.NotNil(t, gotCred)
		require.NotNil(t, gotNotif)
		assert.Equal(t, "user-cand", gotNotif.UserID)
		assert.Equal(t, domain.NotificationCredentialIssued, gotNotif.Type)
	})
}

func TestVerifyCredential(t *testing.T) {
	ctx := context.Background()
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(24 * time.Hour)

	cases := []struct {
		name       string
		status     string
		expiry     *time.Time
		wantValid  bool
		wantStatus string
	}{
		{"active no expiry", domain.CredentialStatusActive, nil, true, "active"},
		{"active future expiry", domain.CredentialStatusActive, &future, true, "active"},
		{"active past expiry", domain.CredentialStatusActive, &past, false, "expired"},
		{"revoked no expiry", domain.CredentialStatusRevoked, nil, false, "revoked"},
		{"revoked future expiry", domain.CredentialStatusRevoked, &future, false, "revoked"},
		{"revoked past expiry", domain.CredentialStatusRevoked, &past, false, "revoked"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cr := new(MockCredentialRepo)
			cr.On("GetByID", mock.Anything, "cred-1").
				Return(&domain.Credential{ID: "cred-1", Status: tc.status, ExpiryDate: tc.expiry}, nil)

			uc := newCredentialUC(cr, new(MockShareRepo), new(MockCandidateRepo), new(MockNotificationRepo))
			result, err := uc.Verify(ctx, "cred-1")

			require.NoError(t, err)
			assert.Equal(t, tc.wantValid, result.Valid)
			assert.Equal(t, tc.wantStatus, result.Status)
		})
	}

	t.Run("unknown credential returns 404", func(t *testing.T) {
		cr := new(MockCredentialRepo)
		cr.On("GetByID", mock.Anything, "ghost").Return(nil, nil)

		uc := newCredentialUC(cr, new(MockShareRepo), new(MockCandidateRepo), new(MockNotificationRepo))
		_, err := uc.Verify(ctx, "ghost")
		require.Error(t, err)
		assert.Equal(t, 404, appCode(t, err))
	})
}

func TestRevokeCredential(t *testing.T) {
	ctx := context.Background()

	t.Run("revoke is idempotent", func(t *testing.T) {
		cr := new(MockCredentialRepo)
		candR := new(MockCandidateRepo)

		cr.On("GetByID", mock.Anything, "cred-1").
			Return(&domain.Credential{ID: "cred-1", CandidateID: "cand-1", Title: "Employment Check", Status: domain.CredentialStatusRevoked}, nil)
		cr.On("Revoke", mock.Anything, "cred-1").Return(true, nil)
		candR.On("GetByID", mock.Anything, "cand-1").Return(&domain.Candidate{ID: "cand-1"}, nil)

		uc := newCredentialUC(cr, new(MockShareRepo), candR, new(MockNotificationRepo))
		require.NoError(t, uc.Revoke(ctx, "cred-1", "fraud"))
		require.NoError(t, uc.Revoke(ctx, "cred-1", "fraud"))
	})

	t.Run("unknown credential returns 404", func(t *testing.T) {
		cr := new(MockCredentialRepo)
		cr.On("GetByID", mock.Anything, "ghost").Return(nil, nil)

		uc := newCredentialUC(cr, new(MockShareRepo), new(MockCandidateRepo), new(MockNotificationRepo))
		err := uc.Revoke(ctx, "ghost", "")
		require.Error(t, err)
		assert.Equal(t, 404, appCode(t, err))
	})
}

func TestTrackAccess(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown share id is a silent no-op", func(t *testing.T) {
		sr := new(MockShareRepo)
		sr.On("TrackAccess", mock.Anything, "ghost").Return(nil)

		uc := newCredentialUC(new(MockCredentialRepo), sr, new(MockCandidateRepo), new(MockNotificationRepo))
		assert.NoError(t, uc.TrackAccess(ctx, "ghost"))
	})

	t.Run("each call increments the count by exactly one", func(t *testing.T) {
		sr := new(MockShareRepo)
		accessCount := 0
		sr.On("TrackAccess", mock.Anything, "share-1").
			Run(func(mock.Arguments) { accessCount++ }).Return(nil)

		uc := newCredentialUC(new(MockCredentialRepo), sr, new(MockCandidateRepo), new(MockNotificationRepo))
		for want := 1; want <= 3; want++ {
			require.NoError(t, uc.TrackAccess(ctx, "share-1"))
			assert.Equal(t, want, accessCount)
		}
		sr.AssertNumberOfCalls(t, "TrackAccess", 3)
	})
}

func TestCreateShare(t *testing.T) {
	ctx := context.Background()

	sr := new(MockShareRepo)
	var gotShare *domain.CredentialShare
	sr.On("Create", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gotShare = args.Get(1).(*domain.CredentialShare)
		}).Return(nil)

	uc := newCredentialUC(new(MockCredentialRepo), sr, new(MockCandidateRepo), new(MockNotificationRepo))
	share, err := uc.CreateShare(ctx, "cred-1", &domain.CreateShareRequest{
		SharedWithEmail: "hr@acme.example",
		ExpiryDays:      7,
	})

	require.NoError(t, err)
	assert.Equal(t, "cred-1", share.CredentialID)
	assert.Contains(t, share.ShareLink, "/shared/"+share.ID)
	require.NotNil(t, share.ExpiresDate)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 7), *share.ExpiresDate, time.Minute)
	assert.Equal(t, share, gotShare)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	tokens := auth.NewTokenManager("test-secret")

	hash, err := auth.HashPassword("correct horse")
	require.NoError(t, err)

	newAuthUC := func(ur *MockUserRepo, er *MockEmployerRepo, cr *MockCandidateRepo) domain.AuthUsecase {
		return usecase.NewAuthUsecase(ur, er, cr, tokens)
	}

	t.Run("valid credentials return token and profile", func(t *testing.T) {
		ur := new(MockUserRepo)
		er := new(MockEmployerRepo)

		ur.On("GetByEmail", mock.Anything, "dina@acme.example").
			Return(&domain.User{ID: "user-1", Email: "dina@acme.example", Password: hash, Role: domain.RoleEmployer, Name: "Dina"}, nil)
		er.On("GetByUserID", mock.Anything, "user-1").
			Return(&domain.Employer{ID: "emp-1", UserID: "user-1", CompanyName: "Acme"}, nil)

		token, user, err := newAuthUC(ur, er, new(MockCandidateRepo)).Login(ctx, "dina@acme.example", "correct horse")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		require.NotNil(t, user.Employer)
		assert.Equal(t, "Acme", user.Employer.CompanyName)

		claims, err := tokens.Parse(token)
		require.NoError(t, err)
		assert.Equal(t, "user-1", claims.Subject)
		assert.Equal(t, domain.RoleEmployer, claims.Role)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		ur := new(MockUserRepo)
		ur.On("GetByEmail", mock.Anything, "dina@acme.example").
			Return(&domain.User{ID: "user-1", Password: hash}, nil)

		_, _, err := newAuthUC(ur, new(MockEmployerRepo), new(MockCandidateRepo)).Login(ctx, "dina@acme.example", "wrong")
		require.Error(t, err)
		assert.Equal(t, 401, appCode(t, err))
	})

	t.Run("unknown email rejected with same error", func(t *testing.T) {
		ur := new(MockUserRepo)
		ur.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

		_, _, err := newAuthUC(ur, new(MockEmployerRepo), new(MockCandidateRepo)).Login(ctx, "ghost@example.com", "whatever")
		require.Error(t, err)
		assert.Equal(t, 401, appCode(t, err))
	})

	t.Run("empty credentials rejected", func(t *testing.T) {
		_, _, err := newAuthUC(new(MockUserRepo), new(MockEmployerRepo), new(MockCandidateRepo)).Login(ctx, "", "")
		require.Error(t, err)
		assert.Equal(t, 400, appCode(t, err))
	})
}

func TestRegisterEmployer(t *testing.T) {
	ctx := context.Background()
	tokens := auth.NewTokenManager("test-secret")

	t.Run("duplicate email rejected", func(t *testing.T) {
		ur := new(MockUserRepo)
		ur.On("GetByEmail", mock.Anything, "dina@acme.example").
			Return(&domain.User{ID: "user-1"}, nil)

		uc := usecase.NewAuthUsecase(ur, new(MockEmployerRepo), new(MockCandidateRepo), tokens)
		_, _, err := uc.RegisterEmployer(ctx, &domain.RegisterEmployerRequest{
			Email:       "dina@acme.example",
			Password:    "password123",
			Name:        "Dina",
			CompanyName: "Acme",
		})
		require.Error(t, err)
		assert.Equal(t, 400, appCode(t, err))
	})

	t.Run("creates user and employer profile", func(t *testing.T) {
		ur := new(MockUserRepo)
		er := new(MockEmployerRepo)

		ur.On("GetByEmail", mock.Anything, "dina@acme.example").Return(nil, nil)
		ur.On("Create", mock.Anything, mock.Anything).Return(nil)

		var gotEmployer *domain.Employer
		er.On("Create", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				gotEmployer = args.Get(1).(*domain.Employer)
			}).Return(nil)

		uc := usecase.NewAuthUsecase(ur, er, new(MockCandidateRepo), tokens)
		token, user, err := uc.RegisterEmployer(ctx, &domain.RegisterEmployerRequest{
			Email:       "dina@acme.example",
			Password:    "password123",
			Name:        "Dina",
			CompanyName: "Acme",
			Industry:    "Tech",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, domain.RoleEmployer, user.Role)
		require.NotNil(t, gotEmployer)
		assert.Equal(t, "Acme", gotEmployer.CompanyName)
		assert.Equal(t, user.ID, gotEmployer.UserID)
	})
}

func TestRegisterCandidateInvitation(t *testing.T) {
	ctx := context.Background()
	tokens := auth.NewTokenManager("test-secret")

	t.Run("invitation link attaches user to existing candidate", func(t *testing.T) {
		ur := new(MockUserRepo)
		cr := new(MockCandidateRepo)

		ur.On("GetByEmail", mock.Anything, "amal@example.com").Return(nil, nil)
		ur.On("Create", mock.Anything, mock.Anything).Return(nil)
		cr.On("AttachUser", mock.Anything, "cand-1", mock.Anything).Return(true, nil)
		cr.On("GetByID", mock.Anything, "cand-1").
			Return(&domain.Candidate{ID: "cand-1", Status: domain.CandidateStatusActive}, nil)

		uc := usecase.NewAuthUsecase(ur, new(MockEmployerRepo), cr, tokens)
		_, user, err := uc.RegisterCandidate(ctx, &domain.RegisterCandidateRequest{
			Email:       "amal@example.com",
			Password:    "password123",
			Name:        "Amal",
			CandidateID: "cand-1",
		})

		require.NoError(t, err)
		require.NotNil(t, user.Candidate)
		assert.Equal(t, "cand-1", user.Candidate.ID)
		cr.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("stale invitation rejected", func(t *testing.T) {
		ur := new(MockUserRepo)
		cr := new(MockCandidateRepo)

		ur.On("GetByEmail", mock.Anything, "amal@example.com").Return(nil, nil)
		ur.On("Create", mock.Anything, mock.Anything).Return(nil)
		cr.On("AttachUser", mock.Anything, "ghost", mock.Anything).Return(false, nil)

		uc := usecase.NewAuthUsecase(ur, new(MockEmployerRepo), cr, tokens)
		_, _, err := uc.RegisterCandidate(ctx, &domain.RegisterCandidateRequest{
			Email:       "amal@example.com",
			Password:    "password123",
			Name:        "Amal",
			CandidateID: "ghost",
		})
		require.Error(t, err)
		assert.Equal(t, 400, appCode(t, err))
	})
}

func TestAdminCompleteVerification(t *testing.T) {
	ctx := context.Background()

	newAdminUC := func(vr *MockVerificationRepo, cr *MockCandidateRepo) domain.AdminUsecase {
		return usecase.NewAdminUsecase(nil, nil, nil, cr, vr, "http://localhost:8080")
	}

	t.Run("completes and issues outcome credential", func(t *testing.T) {
		vr := new(MockVerificationRepo)
		cr := new(MockCandidateRepo)

		vr.On("GetByID", mock.Anything, "v-1").
			Return(&domain.Verification{
				ID: "v-1", CandidateID: "cand-1", Position: "Engineer",
				PackageType: domain.PackageStandard, Status: domain.VerificationStatusInProgress,
			}, nil)
		cr.On("GetByID", mock.Anything, "cand-1").Return(&domain.Candidate{ID: "cand-1"}, nil)

		var gotCred *domain.Credential
		vr.On("Complete", mock.Anything, "v-1", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				gotCred = args.Get(2).(*domain.Credential)
			}).Return(true, nil)

		cred, err := newAdminUC(vr, cr).CompleteVerification(ctx, "v-1")
		require.NoError(t, err)
		assert.Equal(t, "Comprehensive Background Check", cred.Title)
		assert.Equal(t, cred.Fingerprint(), cred.Signature)
		require.NotNil(t, gotCred)
		assert.Equal(t, true, gotCred.Details["verified"])
	})

	t.Run("completed verification cannot be completed again", func(t *testing.T) {
		vr := new(MockVerificationRepo)
		vr.On("GetByID", mock.Anything, "v-1").
			Return(&domain.Verification{ID: "v-1", Status: domain.VerificationStatusCompleted}, nil)

		_, err := newAdminUC(vr, new(MockCandidateRepo)).CompleteVerification(ctx, "v-1")
		require.Error(t, err)
		assert.Equal(t, 409, appCode(t, err))
	})
}
