package syncing

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/vfg2006/creator-cpm-sync/infrastructure/repository"
	"github.com/vfg2006/creator-cpm-sync/internal/domain"
)

type memPosts struct {
	mu    sync.Mutex
	posts []*domain.Post
}

var _ repository.PostRepository = (*memPosts)(nil)

func (m *memPosts) ListSyncCandidates(_ context.Context, filters domain.PostFilters) ([]*domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*domain.Post, 0)
	for _, p := range m.posts {
		if len(filters.Statuses) > 0 && !slices.Contains(filters.Statuses, p.Status) {
			continue
		}
		if p.CreatedAt.Before(filters.CreatedAfter) {
			continue
		}
		if len(filters.AccountIDs) > 0 && !slices.Contains(filters.AccountIDs, p.SubmittedBy) {
			continue
		}
		copied := *p
		result = append(result, &copied)
	}
	return result, nil
}

func (m *memPosts) GetByID(_ context.Context, postID string) (*domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.posts {
		if p.ID == postID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memPosts) GetViralAlert(_ context.Context, postID string) (*domain.ViralAlert, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.posts {
		if p.ID == postID {
			if p.ViralAlert == nil {
				return nil, nil
			}
			copied := *p.ViralAlert
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memPosts) UpdateViralAlert(_ context.Context, postID string, alert *domain.ViralAlert) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.posts {
		if p.ID != postID {
			continue
		}
		if p.ViralAlert != nil && p.ViralAlert.MilestoneViews >= alert.MilestoneViews {
			return false, nil
		}
		copied := *alert
		p.ViralAlert = &copied
		return true, nil
	}
	return false, nil
}

type memSnapshots struct {
	mu        sync.Mutex
	snapshots []*domain.AnalyticsSnapshot
}

var _ repository.SnapshotRepository = (*memSnapshots)(nil)

func (m *memSnapshots) Append(_ context.Context, snapshot *domain.AnalyticsSnapshot) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *snapshot
	copied.ID = int64(len(m.snapshots) + 1)
	m.snapshots = append(m.snapshots, &copied)
	snapshot.ID = copied.ID
	return copied.ID, nil
}

func (m *memSnapshots) LatestFor(_ context.Context, postID string) (*domain.AnalyticsSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var latest *domain.AnalyticsSnapshot
	for _, s := range m.snapshots {
		if s.PostID != postID {
			continue
		}
		if latest == nil || !s.FetchedAt.Before(latest.FetchedAt) {
			latest = s
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (m *memSnapshots) GetByID(_ context.Context, id int64) (*domain.AnalyticsSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range m.snapshots {
		if s.ID == id {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memSnapshots) countFor(postID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, s := range m.snapshots {
		if s.PostID == postID {
			n++
		}
	}
	return n
}

type memLedger struct {
	mu      sync.Mutex
	entries []*domain.CpmLedgerEntry
}

var _ repository.CpmLedgerRepository = (*memLedger)(nil)

func (m *memLedger) GetByPostAndDate(_ context.Context, postID string, date time.Time) (*domain.CpmLedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.entries {
		if e.PostID == postID && e.Date.Equal(date) {
			copied := *e
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memLedger) GetLatestBefore(_ context.Context, postID string, date time.Time) (*domain.CpmLedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var latest *domain.CpmLedgerEntry
	for _, e := range m.entries {
		if e.PostID == postID && e.Date.Before(date) && (latest == nil || e.Date.After(latest.Date)) {
			latest = e
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (m *memLedger) Insert(_ context.Context, entry *domain.CpmLedgerEntry) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.entries {
		if e.PostID == entry.PostID && e.Date.Equal(entry.Date) {
			return 0, repository.ErrAlreadyExists
		}
	}
	copied := *entry
	copied.ID = int64(len(m.entries) + 1)
	m.entries = append(m.entries, &copied)
	entry.ID = copied.ID
	return copied.ID, nil
}

func (m *memLedger) SumUserEarnings(_ context.Context, userID string, from, to time.Time) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := 0.0
	for _, e := range m.entries {
		if e.UserID == userID && !e.Date.Before(from) && !e.Date.After(to) {
			total += e.CpmEarned
		}
	}
	return total, nil
}

func (m *memLedger) ListByPost(_ context.Context, postID string) ([]*domain.CpmLedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*domain.CpmLedgerEntry, 0)
	for _, e := range m.entries {
		if e.PostID == postID {
			copied := *e
			result = append(result, &copied)
		}
	}
	return result, nil
}

// fakeProvider devolve views fixas por URL ou um erro
type fakeProvider struct {
	mu     sync.Mutex
	views  map[string]int64
	errors map[string]error
	calls  map[string]int
	onCall func(url string)
}

func (f *fakeProvider) FetchMetrics(_ context.Context, _ domain.Platform, url string) (*domain.Metrics, error) {
	f.mu.Lock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[url]++
	err := f.errors[url]
	views := f.views[url]
	onCall := f.onCall
	f.mu.Unlock()

	if onCall != nil {
		onCall(url)
	}
	if err != nil {
		return nil, err
	}
	return &domain.Metrics{Views: views, Likes: views / 10}, nil
}

func (f *fakeProvider) setViews(url string, views int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.views[url] = views
}
