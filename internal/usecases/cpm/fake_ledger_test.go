package cpm

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vfg2006/creator-cpm-sync/infrastructure/repository"
	"github.com/vfg2006/creator-cpm-sync/internal/domain"
)

// memoryLedger reproduz em memória a semântica do cpm_ledger, incluindo UNIQUE (post_id, date)
type memoryLedger struct {
	mu      sync.Mutex
	nextID  int64
	entries []*domain.CpmLedgerEntry
}

var _ repository.CpmLedgerRepository = (*memoryLedger)(nil)

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{}
}

func sameDay(a, b time.Time) bool {
	return a.Format(time.DateOnly) == b.Format(time.DateOnly)
}

func (m *memoryLedger) GetByPostAndDate(_ context.Context, postID string, date time.Time) (*domain.CpmLedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.entries {
		if e.PostID == postID && sameDay(e.Date, date) {
			copied := *e
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memoryLedger) GetLatestBefore(_ context.Context, postID string, date time.Time) (*domain.CpmLedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var latest *domain.CpmLedgerEntry
	for _, e := range m.entries {
		if e.PostID != postID || !e.Date.Before(date) {
			continue
		}
		if latest == nil || e.Date.After(latest.Date) {
			latest = e
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (m *memoryLedger) Insert(_ context.Context, entry *domain.CpmLedgerEntry) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range m.entries {
		if e.PostID == entry.PostID && sameDay(e.Date, entry.Date) {
			return 0, repository.ErrAlreadyExists
		}
	}

	m.nextID++
	entry.ID = m.nextID
	copied := *entry
	m.entries = append(m.entries, &copied)

	return entry.ID, nil
}

func (m *memoryLedger) SumUserEarnings(_ context.Context, userID string, from, to time.Time) (float64, error) {
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

func (m *memoryLedger) ListByPost(_ context.Context, postID string) ([]*domain.CpmLedgerEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]*domain.CpmLedgerEntry, 0)
	for _, e := range m.entries {
		if e.PostID == postID {
			copied := *e
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (m *memoryLedger) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
