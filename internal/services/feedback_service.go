package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"feedbackflow/internal/models/db_models"
	"feedbackflow/internal/repositories"
	"feedbackflow/pkg/metrics"
	"feedbackflow/pkg/utils"
)

type FeedbackServiceInterface interface {
	SubmitFeedback(ctx context.Context, name, email, message string) error
	ListFeedbacks(ctx context.Context) ([]db_models.Feedback, error)
}

type FeedbackService struct {
	feedbackRepo repositories.FeedbackRepositoryInterface
}

func NewFeedbackService(feedbackRepo repositories.FeedbackRepositoryInterface) FeedbackServiceInterface {
	return &FeedbackService{feedbackRepo: feedbackRepo}
}

// SubmitFeedback validates and stores one submission. Validation failures are
// *utils.ValidationError; storage failures come back exactly as the repository
// returned them.
func (s *FeedbackService) SubmitFeedback(ctx context.Context, name, email, message string) error {
	feedback, err := validateFeedback(name, email, message)
	if err != nil {
		var verr *utils.ValidationError
		if errors.As(err, &verr) {
			metrics.FeedbackSubmissions.WithLabelValues(verr.Kind).Inc()
		}
		return err
	}

	record, err := s.feedbackRepo.Append(ctx, feedback)
	if err != nil {
		metrics.FeedbackSubmissions.WithLabelValues(utils.ErrKindStorage).Inc()
		return err
	}

	metrics.FeedbackSubmissions.WithLabelValues("accepted").Inc()
	log.Info().Int64("id", record.ID).Str("name", record.Name).Msg("New feedback stored")
	return nil
}

func (s *FeedbackService) ListFeedbacks(ctx context.Context) ([]db_models.Feedback, error) {
	return s.feedbackRepo.ListAll(ctx)
}

// validateFeedback runs the checks in order: presence, then '@' in the raw
// email, then non-blank after trimming.
func validateFeedback(name, email, message string) (db_models.NewFeedback, error) {
	if name == "" || email == "" || message == "" {
		return db_models.NewFeedback{}, utils.ErrMissingField
	}

	if !strings.Contains(email, "@") {
		return db_models.NewFeedback{}, utils.ErrInvalidEmail
	}

	feedback := db_models.NewFeedback{
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Message: strings.TrimSpace(message),
	}
	if feedback.Name == "" || feedback.Email == "" || feedback.Message == "" {
		return db_models.NewFeedback{}, utils.ErrBlankField
	}
	return feedback, nil
}
