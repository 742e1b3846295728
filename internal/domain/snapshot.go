package domain

import (
	"time"
)

const SnapshotSourceApify = "apify"

// Metrics é o resultado normalizado de uma coleta no provedor
type Metrics struct {
	Views          int64   `json:"views"`
	Likes          int64   `json:"likes"`
	Comments       int64   `json:"comments"`
	Shares         int64   `json:"shares"`
	Bookmarks      int64   `json:"bookmarks"`
	Downloads      int64   `json:"downloads"`
	EngagementRate float64 `json:"engagement_rate"`
}

// AnalyticsSnapshot é imutável: uma linha por coleta bem sucedida
type AnalyticsSnapshot struct {
	ID             int64     `json:"id"`
	PostID         string    `json:"post_id"`
	Views          int64     `json:"views"`
	Likes          int64     `json:"likes"`
	Comments       int64     `json:"comments"`
	Shares         int64     `json:"shares"`
	Bookmarks      int64     `json:"bookmarks"`
	Downloads      int64     `json:"downloads"`
	EngagementRate float64   `json:"engagement_rate"`
	FetchedAt      time.Time `json:"fetched_at"`
	Source         string    `json:"source"`
}

func NewAnalyticsSnapshot(postID string, metrics *Metrics, fetchedAt time.Time, source string) *AnalyticsSnapshot {
	return &AnalyticsSnapshot{
		PostID:         postID,
		Views:          metrics.Views,
		Likes:          metrics.Likes,
		Comments:       metrics.Comments,
		Shares:         metrics.Shares,
		Bookmarks:      metrics.Bookmarks,
		Downloads:      metrics.Downloads,
		EngagementRate: metrics.EngagementRate,
		FetchedAt:      fetchedAt,
		Source:         source,
	}
}
