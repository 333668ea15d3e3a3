package workers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"museworks_backend/database"
	"museworks_backend/internal/logger"
	"museworks_backend/internal/metrics"
	"museworks_backend/internal/repositories"
)

type CollectionWorker struct {
	db             *gorm.DB
	guard          *database.Guard
	collectionRepo repositories.CollectionRepository
	interval       time.Duration
	now            func() time.Time
}

func NewCollectionWorker(db *gorm.DB, guard *database.Guard, collectionRepo repositories.CollectionRepository, interval time.Duration) *CollectionWorker {
	return &CollectionWorker{
		db:             db,
		guard:          guard,
		collectionRepo: collectionRepo,
		interval:       interval,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// Start запускает фоновое закрытие коллекций с прошедшим дедлайном
func (w *CollectionWorker) Start(ctx context.Context) {
	go w.autoCloseCollections(ctx)
}

func (w *CollectionWorker) autoCloseCollections(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Collection worker stopped")
			return
		case <-ticker.C:
			_, _ = w.CloseExpired(ctx)
		}
	}
}

// CloseExpired закрывает просроченные коллекции один раз
func (w *CollectionWorker) CloseExpired(ctx context.Context) (int64, error) {
	closed, err := database.Query(ctx, w.guard, "collection.close_expired", func(ctx context.Context) (int64, error) {
		return w.collectionRepo.CloseExpired(w.db.WithContext(ctx), w.now())
	})
	logger.WorkerLog("collection", "close_expired", closed, err)
	if err != nil {
		return 0, err
	}
	if closed > 0 {
		metrics.CollectionsClosed.Add(float64(closed))
	}
	return closed, nil
}
