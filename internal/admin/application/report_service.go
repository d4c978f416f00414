package application

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"strconv"

	"github.com/sngm3741/feedback-collector/api/internal/admin/domain"
	publicdomain "github.com/sngm3741/feedback-collector/api/internal/public/domain"
	"github.com/sngm3741/feedback-collector/api/internal/session"
)

// csvTimeLayout matches the timestamp format of the exported rows.
const csvTimeLayout = "2006-01-02 15:04:05"

var csvHeader = []string{"ID", "Name", "Email", "Rating", "Comments", "Date Submitted"}

// ReportService assembles admin-facing views over the feedback store. Every
// method checks the session first and touches storage only when authenticated.
// ReportService は管理者向けの一覧・統計・CSV 出力ユースケースを提供する。
type ReportService interface {
	Dashboard(ctx context.Context, sess session.Session) (*domain.DashboardData, error)
	Feedback(ctx context.Context, sess session.Session) ([]publicdomain.FeedbackEntry, error)
	ExportCSV(ctx context.Context, sess session.Session) ([]byte, error)
}

func NewReportService(feedback FeedbackReader) ReportService {
	return &reportService{feedback: feedback}
}

type reportService struct {
	feedback FeedbackReader
}

// Dashboard returns the full feedback list (newest first) together with the
// aggregate statistics. The average is rounded to 2 decimal places and is 0
// when no entries exist.
func (s *reportService) Dashboard(ctx context.Context, sess session.Session) (*domain.DashboardData, error) {
	if !sess.Authenticated() {
		return nil, ErrUnauthorized
	}

	entries, err := s.feedback.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	total, err := s.feedback.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count feedback: %w", err)
	}
	average, err := s.feedback.AverageRating(ctx)
	if err != nil {
		return nil, fmt.Errorf("average rating: %w", err)
	}
	histogram, err := s.feedback.RatingHistogram(ctx)
	if err != nil {
		return nil, fmt.Errorf("rating histogram: %w", err)
	}

	rounded := 0.0
	if average != nil {
		rounded = math.Round(*average*100) / 100
	}

	return &domain.DashboardData{
		Entries:       entries,
		TotalCount:    total,
		AverageRating: rounded,
		Histogram:     histogram,
	}, nil
}

// Feedback returns the raw feedback list for the JSON API.
func (s *reportService) Feedback(ctx context.Context, sess session.Session) ([]publicdomain.FeedbackEntry, error) {
	if !sess.Authenticated() {
		return nil, ErrUnauthorized
	}

	entries, err := s.feedback.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return entries, nil
}

// ExportCSV renders all feedback entries, newest first, as a CSV document.
// Values are written verbatim; encoding/csv handles delimiter quoting.
func (s *reportService) ExportCSV(ctx context.Context, sess session.Session) ([]byte, error) {
	if !sess.Authenticated() {
		return nil, ErrUnauthorized
	}

	entries, err := s.feedback.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, entry := range entries {
		record := []string{
			strconv.FormatInt(entry.ID, 10),
			entry.Name,
			entry.Email,
			strconv.Itoa(entry.Rating),
			entry.Comments,
			entry.SubmittedAt.Format(csvTimeLayout),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	return buf.Bytes(), nil
}
