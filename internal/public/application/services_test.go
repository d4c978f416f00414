package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sngm3741/feedback-collector/api/internal/public/domain"
)

type fakeFeedbackRepository struct {
	entries []domain.FeedbackEntry
	nextID  int64
	err     error
}

func (f *fakeFeedbackRepository) Insert(_ context.Context, entry *domain.FeedbackEntry) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.nextID++
	entry.ID = f.nextID
	f.entries = append(f.entries, *entry)
	return f.nextID, nil
}

func validCommand() SubmitFeedbackCommand {
	return SubmitFeedbackCommand{
		Name:      "Alice",
		Email:     "a@x.com",
		RatingRaw: "5",
		Comments:  "Great!",
	}
}

func TestSubmit_Success(t *testing.T) {
	repo := &fakeFeedbackRepository{}
	service := NewFeedbackCommandService(repo)

	id, err := service.Submit(context.Background(), validCommand())
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.Equal(t, "Alice", entry.Name)
	assert.Equal(t, "a@x.com", entry.Email)
	assert.Equal(t, 5, entry.Rating)
	assert.Equal(t, "Great!", entry.Comments)
	assert.False(t, entry.SubmittedAt.IsZero())
}

func TestSubmit_MissingFields(t *testing.T) {
	cases := map[string]func(*SubmitFeedbackCommand){
		"name":                func(c *SubmitFeedbackCommand) { c.Name = "" },
		"email":               func(c *SubmitFeedbackCommand) { c.Email = "" },
		"rating":              func(c *SubmitFeedbackCommand) { c.RatingRaw = "" },
		"comments":            func(c *SubmitFeedbackCommand) { c.Comments = "" },
		"whitespace comments": func(c *SubmitFeedbackCommand) { c.Comments = "   " },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			repo := &fakeFeedbackRepository{}
			service := NewFeedbackCommandService(repo)

			cmd := validCommand()
			mutate(&cmd)

			_, err := service.Submit(context.Background(), cmd)
			assert.ErrorIs(t, err, ErrMissingField)
			assert.Equal(t, "All fields are required", err.Error())
			assert.Empty(t, repo.entries, "no row may be inserted on validation failure")
		})
	}
}

func TestSubmit_InvalidRatings(t *testing.T) {
	cases := map[string]string{
		"zero":        "0",
		"six":         "6",
		"negative":    "-1",
		"non-numeric": "abc",
		"float":       "3.5",
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			repo := &fakeFeedbackRepository{}
			service := NewFeedbackCommandService(repo)

			cmd := validCommand()
			cmd.RatingRaw = raw

			_, err := service.Submit(context.Background(), cmd)
			assert.ErrorIs(t, err, ErrInvalidRating)
			assert.Empty(t, repo.entries, "no row may be inserted on validation failure")
		})
	}
}

func TestSubmit_InvalidRatingMessages(t *testing.T) {
	repo := &fakeFeedbackRepository{}
	service := NewFeedbackCommandService(repo)

	cmd := validCommand()
	cmd.RatingRaw = "abc"
	_, err := service.Submit(context.Background(), cmd)
	assert.EqualError(t, err, "Invalid rating value")

	cmd.RatingRaw = "7"
	_, err = service.Submit(context.Background(), cmd)
	assert.EqualError(t, err, "Rating must be between 1 and 5")
}

func TestSubmit_RepositoryErrorPropagates(t *testing.T) {
	repoErr := errors.New("write failed")
	repo := &fakeFeedbackRepository{err: repoErr}
	service := NewFeedbackCommandService(repo)

	_, err := service.Submit(context.Background(), validCommand())
	assert.ErrorIs(t, err, repoErr)
	assert.NotErrorIs(t, err, ErrMissingField)
	assert.NotErrorIs(t, err, ErrInvalidRating)
}
