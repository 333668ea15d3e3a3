package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"museworks_backend/database"
	"museworks_backend/internal/models"
)

// NewTestDB открывает изолированную in-memory SQLite БД с примененными миграциями.
// Пул ограничен одним соединением: внутри транзакции используйте только tx.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(database.Options{
		Driver: "sqlite",
		DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	if err != nil {
		t.Fatalf("Не удалось открыть тестовую БД: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Не удалось выполнить AutoMigrate: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewTestGuard - guard с коротким таймаутом и отдельным именем breaker'а
func NewTestGuard() *database.Guard {
	return database.NewGuard(database.GuardSettings{
		Name:             "test-" + uuid.NewString(),
		QueryTimeout:     2 * time.Second,
		FailureThreshold: 100,
	})
}

// CreateUser создает пользователя с указанной ролью
func CreateUser(t *testing.T, db *gorm.DB, name string, role models.UserRole) *models.User {
	t.Helper()
	user := &models.User{
		DisplayName: name,
		Email:       uuid.NewString() + "@museworks.test",
		Role:        role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Не удалось создать пользователя %s: %v", name, err)
	}
	return user
}

// CreateCollection создает коллекцию музея
func CreateCollection(t *testing.T, db *gorm.DB, c *models.Collection) *models.Collection {
	t.Helper()
	if c.MuseumID == "" {
		c.MuseumID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = models.CollectionStatusActive
	}
	if c.Title == "" {
		c.Title = "Collection"
	}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("Не удалось создать коллекцию: %v", err)
	}
	return c
}

// WorkSpec - параметры тестовой работы
type WorkSpec struct {
	ID           string
	CollectionID string
	DesignerID   string
	Title        string
	Description  string
	Tags         []string
	Status       models.WorkStatus
	CreatedAt    time.Time
}

// CreateWork создает работу. Пустые поля заполняются значениями по умолчанию.
func CreateWork(t *testing.T, db *gorm.DB, ws WorkSpec) *models.Work {
	t.Helper()
	w := &models.Work{
		CollectionID: ws.CollectionID,
		DesignerID:   ws.DesignerID,
		Title:        ws.Title,
		Status:       ws.Status,
		Tags:         models.EncodeStringList(ws.Tags),
		Images:       models.EncodeStringList(nil),
	}
	w.ID = ws.ID
	w.CreatedAt = ws.CreatedAt
	if ws.Description != "" {
		d := ws.Description
		w.Description = &d
	}
	if w.CollectionID == "" {
		w.CollectionID = uuid.NewString()
	}
	if w.DesignerID == "" {
		w.DesignerID = uuid.NewString()
	}
	if w.Title == "" {
		w.Title = "Untitled"
	}
	if w.Status == "" {
		w.Status = models.WorkStatusSubmitted
	}
	if err := db.Create(w).Error; err != nil {
		t.Fatalf("Не удалось создать работу: %v", err)
	}
	return w
}
