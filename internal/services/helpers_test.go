package services

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"museworks_backend/internal/authz"
	"museworks_backend/internal/email"
	"museworks_backend/internal/models"
	"museworks_backend/internal/repositories"
	"museworks_backend/internal/testutil"
)

// recordingProvider запоминает отправленные письма
type recordingProvider struct {
	mu   sync.Mutex
	sent []*email.Email
	err  error
}

func (p *recordingProvider) Send(e *email.Email) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, e)
	return nil
}

func (p *recordingProvider) Validate() error { return nil }

func (p *recordingProvider) Sent() []*email.Email {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]*email.Email(nil), p.sent...)
}

type testEnv struct {
	db       *gorm.DB
	mail     *recordingProvider
	services *ServiceContainer

	admin    *models.User
	museum   *models.User
	designer *models.User
	user     *models.User
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.NewTestDB(t)
	guard := testutil.NewTestGuard()
	enforcer, err := authz.NewEnforcer("")
	require.NoError(t, err)

	userRepo := repositories.NewUserRepository()
	workRepo := repositories.NewWorkRepository()
	collectionRepo := repositories.NewCollectionRepository()
	ratingRepo := repositories.NewRatingRepository()
	reviewRepo := repositories.NewReviewRepository()

	mail := &recordingProvider{}
	roles := NewRoleResolver(db, guard, userRepo)
	notifier := NewNotificationService(db, guard, userRepo, mail, email.NewTemplateManager())
	ledger := NewReviewService(db, guard, reviewRepo, workRepo, roles, enforcer)

	env := &testEnv{
		db:   db,
		mail: mail,
		services: &ServiceContainer{
			RoleResolver:        roles,
			RatingService:       NewRatingService(db, guard, ratingRepo, workRepo, collectionRepo, roles, enforcer),
			ReviewService:       ledger,
			ModerationService:   NewModerationService(db, guard, workRepo, reviewRepo, ledger, roles, enforcer, notifier),
			RelatednessService:  NewRelatednessService(db, guard, workRepo),
			WorkService:         NewWorkService(db, guard, workRepo, collectionRepo, userRepo),
			SearchService:       NewSearchService(db, guard, workRepo, collectionRepo),
			NotificationService: notifier,
		},
	}

	env.admin = testutil.CreateUser(t, db, "Admin", models.UserRoleAdmin)
	env.museum = testutil.CreateUser(t, db, "City Museum", models.UserRoleMuseum)
	env.designer = testutil.CreateUser(t, db, "Ada Designer", models.UserRoleDesigner)
	env.user = testutil.CreateUser(t, db, "Visitor", models.UserRoleUser)
	return env
}

func (e *testEnv) workStatus(t *testing.T, workID string) models.WorkStatus {
	t.Helper()
	var w models.Work
	require.NoError(t, e.db.First(&w, "id = ?", workID).Error)
	return w.Status
}

func (e *testEnv) ledgerSize(t *testing.T, workID string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&models.ReviewRecord{}).Where("work_id = ?", workID).Count(&n).Error)
	return n
}

func strPtr(s string) *string { return &s }
