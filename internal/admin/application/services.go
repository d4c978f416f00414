package application

import (
	"context"
	"errors"

	"github.com/sngm3741/feedback-collector/api/internal/admin/domain"
	publicdomain "github.com/sngm3741/feedback-collector/api/internal/public/domain"
)

var (
	// ErrInvalidCredentials covers both unknown usernames and wrong
	// passwords; callers are not told which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized marks reporting calls made without an admin session.
	ErrUnauthorized = errors.New("unauthorized")
)

// AdminRepository abstracts read access to admin accounts.
// AdminRepository は管理者アカウントを読み取るためのポート。
type AdminRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.AdminAccount, error)
}

// FeedbackReader exposes the read side of feedback persistence.
// FeedbackReader はダッシュボード集計に必要な読み取り操作を提供するポート。
type FeedbackReader interface {
	List(ctx context.Context) ([]publicdomain.FeedbackEntry, error)
	Count(ctx context.Context) (int64, error)
	AverageRating(ctx context.Context) (*float64, error)
	RatingHistogram(ctx context.Context) (map[int]int64, error)
}
