package cpm

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/creator-cpm-sync/infrastructure/repository"
	"github.com/vfg2006/creator-cpm-sync/infrastructure/repository/mocks"
	"github.com/vfg2006/creator-cpm-sync/internal/domain"
	"go.uber.org/mock/gomock"
)

var defaultSettings = domain.CpmSettings{
	Rate:           1.5,
	WindowDays:     28,
	PostCap:        350,
	UserMonthlyCap: 5000,
}

func day(d int) time.Time {
	return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC)
}

func newTestService(t *testing.T, ledger repository.CpmLedgerRepository, settings domain.CpmSettings) *Service {
	t.Helper()
	service, err := NewService(ledger, settings)
	require.NoError(t, err)
	return service
}

func accrue(t *testing.T, s *Service, postID, userID string, created time.Time, views int64, date time.Time) *AccrualResult {
	t.Helper()
	result, err := s.Accrue(context.Background(), AccrualInput{
		PostID:          postID,
		UserID:          userID,
		PostCreatedAt:   created,
		CumulativeViews: views,
		Date:            date,
	})
	require.NoError(t, err)
	return result
}

func TestService_Accrue_DeltaSequence(t *testing.T) {
	ledger := newMemoryLedger()
	service := newTestService(t, ledger, defaultSettings)

	views := []int64{1000, 2500, 2500, 4000}
	expectedDeltas := []int64{1000, 1500, 0, 1500}
	expectedEarned := []float64{1.5, 2.25, 0, 2.25}
	expectedCumulative := []float64{1.5, 3.75, 3.75, 6}

	for i, v := range views {
		result := accrue(t, service, "post-a", "user-1", day(1), v, day(2+i))

		assert.Equal(t, OutcomeInserted, result.Outcome)
		assert.Equal(t, expectedDeltas[i], result.Entry.ViewsDelta, "dia %d", i)
		assert.Equal(t, expectedEarned[i], result.Entry.CpmEarned, "dia %d", i)
		assert.Equal(t, expectedCumulative[i], result.Entry.CumulativePostCpm, "dia %d", i)
		assert.Equal(t, 1+i, result.Entry.PostAgeDays)
		assert.False(t, result.Entry.IsPostCapped)
	}

	assert.Equal(t, 4, ledger.count())
}

func TestService_Accrue_IdempotentSameDay(t *testing.T) {
	ledger := newMemoryLedger()
	service := newTestService(t, ledger, defaultSettings)

	first := accrue(t, service, "post-a", "user-1", day(1), 10000, day(3))
	second := accrue(t, service, "post-a", "user-1", day(1), 20000, day(3))

	assert.Equal(t, OutcomeInserted, first.Outcome)
	assert.Equal(t, OutcomeAlreadySynced, second.Outcome)
	assert.Equal(t, first.Entry.ID, second.Entry.ID)
	assert.Equal(t, int64(10000), second.Entry.CumulativeViews)
	assert.Equal(t, 1, ledger.count())

	total, err := ledger.SumUserEarnings(context.Background(), "user-1", day(1), day(31))
	require.NoError(t, err)
	assert.Equal(t, 15.0, total)
}

func TestService_Accrue_Caps(t *testing.T) {
	withPostCap := func(postCap float64) domain.CpmSettings {
		settings := defaultSettings
		settings.PostCap = postCap
		return settings
	}

	testCases := []struct {
		name     string
		settings domain.CpmSettings
		setup    func(t *testing.T, service *Service)
		validate func(t *testing.T, service *Service, ledger *memoryLedger)
	}{
		{
			name:     "post atinge o teto e deixa de acumular",
			settings: defaultSettings,
			validate: func(t *testing.T, service *Service, _ *memoryLedger) {
				// 300000/1000 * 1.5 = 450, limitado a 350
				first := accrue(t, service, "post-a", "user-1", day(1), 300000, day(2))
				assert.Equal(t, 350.0, first.Entry.CpmEarned)
				assert.Equal(t, 350.0, first.Entry.CumulativePostCpm)
				assert.True(t, first.Entry.IsPostCapped)

				second := accrue(t, service, "post-a", "user-1", day(1), 400000, day(3))
				assert.Equal(t, int64(100000), second.Entry.ViewsDelta)
				assert.Equal(t, 0.0, second.Entry.CpmEarned)
				assert.Equal(t, 350.0, second.Entry.CumulativePostCpm)
				assert.True(t, second.Entry.IsPostCapped)
			},
		},
		{
			name:     "post com folga parcial até o teto",
			settings: defaultSettings,
			setup: func(t *testing.T, service *Service) {
				accrue(t, service, "post-a", "user-1", day(1), 200000, day(2)) // 300
			},
			validate: func(t *testing.T, service *Service, _ *memoryLedger) {
				result := accrue(t, service, "post-a", "user-1", day(1), 250000, day(3))

				// 50000 views renderiam 75, sobram 50 até o teto
				assert.Equal(t, 50.0, result.Entry.CpmEarned)
				assert.Equal(t, 350.0, result.Entry.CumulativePostCpm)
				assert.True(t, result.Entry.IsPostCapped)
			},
		},
		{
			name:     "teto mensal do usuário compartilhado entre posts",
			settings: withPostCap(10000),
			setup: func(t *testing.T, service *Service) {
				a := accrue(t, service, "post-a", "user-1", day(1), 3000000, day(5))
				assert.Equal(t, 4500.0, a.Entry.CpmEarned)
				assert.False(t, a.Entry.IsUserMonthlyCapped)
			},
			validate: func(t *testing.T, service *Service, ledger *memoryLedger) {
				b := accrue(t, service, "post-b", "user-1", day(2), 1000000, day(5))
				assert.Equal(t, 500.0, b.Entry.CpmEarned)
				assert.Equal(t, 5000.0, b.Entry.CumulativeUserMonthlyCpm)
				assert.True(t, b.Entry.IsUserMonthlyCapped)

				c := accrue(t, service, "post-b", "user-1", day(2), 2000000, day(6))
				assert.Equal(t, 0.0, c.Entry.CpmEarned)
				assert.True(t, c.Entry.IsUserMonthlyCapped)
				assert.Equal(t, 500.0, c.Entry.CumulativePostCpm)

				// Outro usuário não é afetado
				other := accrue(t, service, "post-x", "user-2", day(2), 1000000, day(6))
				assert.Equal(t, 1500.0, other.Entry.CpmEarned)

				march, err := ledger.SumUserEarnings(context.Background(), "user-1", day(1), day(31))
				require.NoError(t, err)
				assert.Equal(t, 5000.0, march)
			},
		},
		{
			name:     "teto mensal recomeça no mês seguinte",
			settings: withPostCap(10000),
			setup: func(t *testing.T, service *Service) {
				accrue(t, service, "post-a", "user-1", day(1), 3000000, day(5))   // 4500
				accrue(t, service, "post-b", "user-1", day(20), 1000000, day(25)) // 500, teto de março
			},
			validate: func(t *testing.T, service *Service, ledger *memoryLedger) {
				april := accrue(t, service, "post-b", "user-1", day(20), 2000000, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
				assert.Equal(t, 1500.0, april.Entry.CpmEarned)
				assert.Equal(t, 1500.0, april.Entry.CumulativeUserMonthlyCpm)
				assert.False(t, april.Entry.IsUserMonthlyCapped)

				march, err := ledger.SumUserEarnings(context.Background(), "user-1", day(1), day(31))
				require.NoError(t, err)
				assert.LessOrEqual(t, march, defaultSettings.UserMonthlyCap)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ledger := newMemoryLedger()
			service := newTestService(t, ledger, tc.settings)

			if tc.setup != nil {
				tc.setup(t, service)
			}

			tc.validate(t, service, ledger)
		})
	}
}

func TestService_Accrue_Window(t *testing.T) {
	ledger := newMemoryLedger()
	service := newTestService(t, ledger, defaultSettings)

	created := time.Date(2024, 3, 1, 22, 30, 0, 0, time.UTC)

	inside := accrue(t, service, "post-a", "user-1", created, 5000, day(29))
	assert.Equal(t, OutcomeInserted, inside.Outcome)
	assert.Equal(t, 28, inside.Entry.PostAgeDays)

	outside := accrue(t, service, "post-a", "user-1", created, 9000, day(30))
	assert.Equal(t, OutcomeOutsideWindow, outside.Outcome)
	assert.Nil(t, outside.Entry)
	assert.Equal(t, 1, ledger.count())
}

func TestService_Accrue_BaselineIsLatestPriorRow(t *testing.T) {
	ledger := newMemoryLedger()
	service := newTestService(t, ledger, defaultSettings)

	accrue(t, service, "post-a", "user-1", day(1), 1000, day(2))
	// dias 3 a 6 sem coleta
	result := accrue(t, service, "post-a", "user-1", day(1), 3000, day(7))

	assert.Equal(t, int64(2000), result.Entry.ViewsDelta)
	assert.Equal(t, 3.0, result.Entry.CpmEarned)
}

func TestService_Accrue_NegativeDeltaClamped(t *testing.T) {
	ledger := newMemoryLedger()
	service := newTestService(t, ledger, defaultSettings)

	accrue(t, service, "post-a", "user-1", day(1), 5000, day(2))
	drop := accrue(t, service, "post-a", "user-1", day(1), 4000, day(3))

	assert.Equal(t, int64(0), drop.Entry.ViewsDelta)
	assert.Equal(t, 0.0, drop.Entry.CpmEarned)
	assert.Equal(t, int64(4000), drop.Entry.CumulativeViews)
	assert.Equal(t, 7.5, drop.Entry.CumulativePostCpm)

	regained := accrue(t, service, "post-a", "user-1", day(1), 6000, day(4))
	assert.Equal(t, int64(2000), regained.Entry.ViewsDelta)
}

func TestService_Accrue_ConcurrentPostsSameUser(t *testing.T) {
	ledger := newMemoryLedger()
	settings := defaultSettings
	settings.PostCap = 10000
	service := newTestService(t, ledger, settings)

	var wg sync.WaitGroup
	for _, postID := range []string{"post-a", "post-b", "post-c"} {
		wg.Add(1)
		go func(postID string) {
			defer wg.Done()
			_, err := service.Accrue(context.Background(), AccrualInput{
				PostID:          postID,
				UserID:          "user-1",
				PostCreatedAt:   day(1),
				CumulativeViews: 3000000,
				Date:            day(5),
			})
			assert.NoError(t, err)
		}(postID)
	}
	wg.Wait()

	total, err := ledger.SumUserEarnings(context.Background(), "user-1", day(1), day(31))
	require.NoError(t, err)
	assert.Equal(t, 5000.0, total)
	assert.Equal(t, 3, ledger.count())
}

func TestService_Accrue_InsertConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mocks.NewMockCpmLedgerRepository(ctrl)
	stored := &domain.CpmLedgerEntry{ID: 42, PostID: "post-a", Date: day(3), CumulativeViews: 1000}

	gomock.InOrder(
		ledger.EXPECT().GetByPostAndDate(gomock.Any(), "post-a", day(3)).Return(nil, nil),
		ledger.EXPECT().GetLatestBefore(gomock.Any(), "post-a", day(3)).Return(nil, nil),
		ledger.EXPECT().SumUserEarnings(gomock.Any(), "user-1", day(1), day(3)).Return(0.0, nil),
		ledger.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(int64(0), repository.ErrAlreadyExists),
		ledger.EXPECT().GetByPostAndDate(gomock.Any(), "post-a", day(3)).Return(stored, nil),
	)

	service := newTestService(t, ledger, defaultSettings)
	result := accrue(t, service, "post-a", "user-1", day(1), 1000, day(3).Add(15*time.Hour))

	assert.Equal(t, OutcomeAlreadySynced, result.Outcome)
	assert.Equal(t, int64(42), result.Entry.ID)
}

func TestService_Accrue_InvalidInput(t *testing.T) {
	service := newTestService(t, newMemoryLedger(), defaultSettings)

	_, err := service.Accrue(context.Background(), AccrualInput{UserID: "user-1", CumulativeViews: 10, Date: day(2)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = service.Accrue(context.Background(), AccrualInput{PostID: "post-a", UserID: "user-1", CumulativeViews: -1, Date: day(2)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestNewService_InvalidSettings(t *testing.T) {
	_, err := NewService(newMemoryLedger(), domain.CpmSettings{Rate: 1.5, WindowDays: 0, PostCap: 350, UserMonthlyCap: 5000})
	assert.ErrorIs(t, err, ErrInvalidSettings)

	_, err = NewService(newMemoryLedger(), domain.CpmSettings{Rate: -1, WindowDays: 28, PostCap: 350, UserMonthlyCap: 5000})
	assert.ErrorIs(t, err, ErrInvalidSettings)
}

func TestKeyedMutex_ReleasesKeys(t *testing.T) {
	k := NewKeyedMutex()

	unlock := k.Lock("user-1")
	unlockOther := k.Lock("user-2")
	unlockOther()
	unlock()

	assert.Empty(t, k.locks)
}
