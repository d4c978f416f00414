package application

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/sngm3741/feedback-collector/api/internal/public/domain"
)

// Validation failure kinds. Handlers branch on these with errors.Is; the
// user-facing message travels on the concrete error.
var (
	ErrMissingField  = errors.New("missing field")
	ErrInvalidRating = errors.New("invalid rating")
)

// ValidationError carries a user-facing message together with its kind.
type ValidationError struct {
	Kind    error
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Kind }

// FeedbackRepository abstracts the write side of feedback persistence.
// FeedbackRepository は Public コンテキストでフィードバックを追記するためのポート。
type FeedbackRepository interface {
	Insert(ctx context.Context, entry *domain.FeedbackEntry) (int64, error)
}

// SubmitFeedbackCommand captures raw form input before validation.
type SubmitFeedbackCommand struct {
	Name      string
	Email     string
	RatingRaw string
	Comments  string
}

// FeedbackCommandService handles the submission use-case.
// FeedbackCommandService はフィードバック投稿ユースケースを提供する。
type FeedbackCommandService interface {
	Submit(ctx context.Context, cmd SubmitFeedbackCommand) (int64, error)
}

func NewFeedbackCommandService(repo FeedbackRepository) FeedbackCommandService {
	return &feedbackCommandService{repo: repo}
}

type feedbackCommandService struct {
	repo FeedbackRepository
}

// Submit validates the raw input and appends a new entry. Nothing is written
// when any validation step fails.
func (s *feedbackCommandService) Submit(ctx context.Context, cmd SubmitFeedbackCommand) (int64, error) {
	name := strings.TrimSpace(cmd.Name)
	email := strings.TrimSpace(cmd.Email)
	ratingRaw := strings.TrimSpace(cmd.RatingRaw)
	comments := strings.TrimSpace(cmd.Comments)

	if name == "" || email == "" || ratingRaw == "" || comments == "" {
		return 0, &ValidationError{Kind: ErrMissingField, Message: "All fields are required"}
	}

	rating, err := strconv.Atoi(ratingRaw)
	if err != nil {
		return 0, &ValidationError{Kind: ErrInvalidRating, Message: "Invalid rating value"}
	}
	if rating < 1 || rating > 5 {
		return 0, &ValidationError{Kind: ErrInvalidRating, Message: "Rating must be between 1 and 5"}
	}

	entry := &domain.FeedbackEntry{
		Name:        name,
		Email:       email,
		Rating:      rating,
		Comments:    comments,
		SubmittedAt: time.Now().UTC(),
	}

	return s.repo.Insert(ctx, entry)
}
