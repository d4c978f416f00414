package admin

import (
	"time"

	admindomain "github.com/sngm3741/feedback-collector/api/internal/admin/domain"
	publicdomain "github.com/sngm3741/feedback-collector/api/internal/public/domain"
)

// displayTimeLayout はダッシュボード表示用の日時フォーマット。
const displayTimeLayout = "2006-01-02 15:04:05"

type feedbackEntryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Rating      int    `json:"rating"`
	Comments    string `json:"comments"`
	SubmittedAt string `json:"submittedAt"`
}

type histogramBucket struct {
	Rating int
	Count  int64
}

// dashboardView は admin.html テンプレートへ渡すビューモデル。
type dashboardView struct {
	ShowLogin     bool
	LoginError    string
	AdminUsername string
	Feedback      []feedbackEntryResponse
	TotalFeedback int64
	AvgRating     float64
	RatingDist    []histogramBucket
}

func buildFeedbackResponse(entry publicdomain.FeedbackEntry) feedbackEntryResponse {
	return feedbackEntryResponse{
		ID:          entry.ID,
		Name:        entry.Name,
		Email:       entry.Email,
		Rating:      entry.Rating,
		Comments:    entry.Comments,
		SubmittedAt: entry.SubmittedAt.Format(time.RFC3339),
	}
}

func buildDashboardView(username string, data *admindomain.DashboardData) dashboardView {
	feedback := make([]feedbackEntryResponse, 0, len(data.Entries))
	for _, entry := range data.Entries {
		item := buildFeedbackResponse(entry)
		item.SubmittedAt = entry.SubmittedAt.Format(displayTimeLayout)
		feedback = append(feedback, item)
	}

	buckets := make([]histogramBucket, 0, 5)
	for rating := 1; rating <= 5; rating++ {
		buckets = append(buckets, histogramBucket{Rating: rating, Count: data.Histogram[rating]})
	}

	return dashboardView{
		AdminUsername: username,
		Feedback:      feedback,
		TotalFeedback: data.TotalCount,
		AvgRating:     data.AverageRating,
		RatingDist:    buckets,
	}
}
