package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	publicdomain "github.com/sngm3741/feedback-collector/api/internal/public/domain"
	"github.com/sngm3741/feedback-collector/api/internal/session"
)

type fakeFeedbackReader struct {
	entries []publicdomain.FeedbackEntry
	calls   int
}

func (f *fakeFeedbackReader) List(context.Context) ([]publicdomain.FeedbackEntry, error) {
	f.calls++
	return f.entries, nil
}

func (f *fakeFeedbackReader) Count(context.Context) (int64, error) {
	f.calls++
	return int64(len(f.entries)), nil
}

func (f *fakeFeedbackReader) AverageRating(context.Context) (*float64, error) {
	f.calls++
	if len(f.entries) == 0 {
		return nil, nil
	}
	var sum float64
	for _, entry := range f.entries {
		sum += float64(entry.Rating)
	}
	avg := sum / float64(len(f.entries))
	return &avg, nil
}

func (f *fakeFeedbackReader) RatingHistogram(context.Context) (map[int]int64, error) {
	f.calls++
	histogram := map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	for _, entry := range f.entries {
		histogram[entry.Rating]++
	}
	return histogram, nil
}

func adminSession() session.Session {
	return session.Session{AdminLoggedIn: true, AdminUsername: "admin"}
}

func sampleEntries() []publicdomain.FeedbackEntry {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return []publicdomain.FeedbackEntry{
		{ID: 2, Name: "Bob", Email: "b@x.com", Rating: 4, Comments: "Good", SubmittedAt: base.Add(time.Hour)},
		{ID: 1, Name: "Alice", Email: "a@x.com", Rating: 2, Comments: "Meh, could be better", SubmittedAt: base},
	}
}

func TestDashboard_Unauthorized(t *testing.T) {
	reader := &fakeFeedbackReader{entries: sampleEntries()}
	service := NewReportService(reader)

	_, err := service.Dashboard(context.Background(), session.Session{})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Zero(t, reader.calls, "no storage read may happen for unauthenticated sessions")
}

func TestDashboard_Aggregates(t *testing.T) {
	reader := &fakeFeedbackReader{entries: sampleEntries()}
	service := NewReportService(reader)

	data, err := service.Dashboard(context.Background(), adminSession())
	require.NoError(t, err)

	assert.Equal(t, int64(2), data.TotalCount)
	assert.Equal(t, 3.0, data.AverageRating)
	assert.Len(t, data.Entries, 2)
	assert.Equal(t, int64(2), data.Entries[0].ID, "newest entry first")
	assert.Equal(t, map[int]int64{1: 0, 2: 1, 3: 0, 4: 1, 5: 0}, data.Histogram)
}

func TestDashboard_AverageRounding(t *testing.T) {
	// 3 entries: 5,5,1 → 3.666... → 3.67
	entries := []publicdomain.FeedbackEntry{
		{ID: 3, Rating: 5}, {ID: 2, Rating: 5}, {ID: 1, Rating: 1},
	}
	service := NewReportService(&fakeFeedbackReader{entries: entries})

	data, err := service.Dashboard(context.Background(), adminSession())
	require.NoError(t, err)
	assert.Equal(t, 3.67, data.AverageRating)
}

func TestDashboard_Empty(t *testing.T) {
	service := NewReportService(&fakeFeedbackReader{})

	data, err := service.Dashboard(context.Background(), adminSession())
	require.NoError(t, err)
	assert.Zero(t, data.TotalCount)
	assert.Zero(t, data.AverageRating)
	assert.Empty(t, data.Entries)
	assert.Len(t, data.Histogram, 5)
}

func TestFeedback_Unauthorized(t *testing.T) {
	reader := &fakeFeedbackReader{entries: sampleEntries()}
	service := NewReportService(reader)

	_, err := service.Feedback(context.Background(), session.Session{})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Zero(t, reader.calls)
}

func TestExportCSV_Unauthorized(t *testing.T) {
	reader := &fakeFeedbackReader{entries: sampleEntries()}
	service := NewReportService(reader)

	_, err := service.ExportCSV(context.Background(), session.Session{})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Zero(t, reader.calls)
}

func TestExportCSV_HeaderOnlyWhenEmpty(t *testing.T) {
	service := NewReportService(&fakeFeedbackReader{})

	data, err := service.ExportCSV(context.Background(), adminSession())
	require.NoError(t, err)
	assert.Equal(t, "ID,Name,Email,Rating,Comments,Date Submitted\n", string(data))
}

func TestExportCSV_Rows(t *testing.T) {
	service := NewReportService(&fakeFeedbackReader{entries: sampleEntries()})

	data, err := service.ExportCSV(context.Background(), adminSession())
	require.NoError(t, err)

	want := "ID,Name,Email,Rating,Comments,Date Submitted\n" +
		"2,Bob,b@x.com,4,Good,2024-03-01 13:00:00\n" +
		"1,Alice,a@x.com,2,\"Meh, could be better\",2024-03-01 12:00:00\n"
	assert.Equal(t, want, string(data))
}
