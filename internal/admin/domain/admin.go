package domain

import publicdomain "github.com/sngm3741/feedback-collector/api/internal/public/domain"

// AdminAccount is the single privileged credential able to review feedback.
// Created once at initialization; never updated by the running system.
type AdminAccount struct {
	ID           string
	Username     string
	PasswordHash string
}

// DashboardData is the view-model assembled for the admin dashboard.
type DashboardData struct {
	Entries       []publicdomain.FeedbackEntry
	TotalCount    int64
	AverageRating float64
	Histogram     map[int]int64
}
