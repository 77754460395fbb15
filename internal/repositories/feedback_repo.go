package repositories

import (
	"context"

	"gorm.io/gorm"

	"feedbackflow/internal/models/db_models"
	"feedbackflow/pkg/utils"
)

// FeedbackRepositoryInterface is the storage contract shared by every backend.
// Append assigns the id and timestamp; callers never choose them.
type FeedbackRepositoryInterface interface {
	Count(ctx context.Context) (int64, error)
	Append(ctx context.Context, feedback db_models.NewFeedback) (*db_models.Feedback, error)
	ListAll(ctx context.Context) ([]db_models.Feedback, error)
}

// FeedbackGormRepository keeps feedback in a SQL table whose auto-increment
// primary key supplies the id.
type FeedbackGormRepository struct {
	db *gorm.DB
}

func NewFeedbackGormRepository(db *gorm.DB) *FeedbackGormRepository {
	return &FeedbackGormRepository{db: db}
}

func (r *FeedbackGormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&db_models.Feedback{}).Count(&count).Error; err != nil {
		return 0, utils.NewStorageError("count", err)
	}
	return count, nil
}

func (r *FeedbackGormRepository) Append(ctx context.Context, feedback db_models.NewFeedback) (*db_models.Feedback, error) {
	record := &db_models.Feedback{
		Name:      feedback.Name,
		Email:     feedback.Email,
		Message:   feedback.Message,
		Timestamp: utils.NowISO(),
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, utils.NewStorageError("append", err)
	}
	return record, nil
}

func (r *FeedbackGormRepository) ListAll(ctx context.Context) ([]db_models.Feedback, error) {
	feedbacks := []db_models.Feedback{}
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&feedbacks).Error
	if err != nil {
		return nil, utils.NewStorageError("list", err)
	}
	return feedbacks, nil
}
