package earnings

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/creator-cpm-sync/infrastructure/repository"
	"github.com/vfg2006/creator-cpm-sync/internal/domain"
	"github.com/vfg2006/creator-cpm-sync/pkg/utils"
)

// Reporter expõe os agregados de pagamento lidos pelo dashboard
type Reporter interface {
	GetUserMonthlyEarnings(ctx context.Context, userID string, month time.Time) (*domain.UserMonthlyEarnings, error)
	GetPostLedger(ctx context.Context, postID string) ([]*domain.CpmLedgerEntry, error)
	GetLatestAnalytics(ctx context.Context, postID string) (*domain.AnalyticsSnapshot, error)
}

type Service struct {
	postRepository     repository.PostRepository
	snapshotRepository repository.SnapshotRepository
	ledgerRepository   repository.CpmLedgerRepository
	settings           domain.CpmSettings
}

func NewService(
	postRepo repository.PostRepository,
	snapshotRepo repository.SnapshotRepository,
	ledgerRepo repository.CpmLedgerRepository,
	settings domain.CpmSettings,
) Reporter {
	return &Service{
		postRepository:     postRepo,
		snapshotRepository: snapshotRepo,
		ledgerRepository:   ledgerRepo,
		settings:           settings,
	}
}

func (s *Service) GetUserMonthlyEarnings(ctx context.Context, userID string, month time.Time) (*domain.UserMonthlyEarnings, error) {
	from := utils.StartOfMonth(month)
	to := utils.EndOfMonth(month)

	total, err := s.ledgerRepository.SumUserEarnings(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("erro ao somar ganhos do usuário %s: %w", userID, err)
	}

	totalDec := decimal.NewFromFloat(total)
	capDec := decimal.NewFromFloat(s.settings.UserMonthlyCap)
	remaining := capDec.Sub(totalDec)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return &domain.UserMonthlyEarnings{
		UserID:    userID,
		Month:     from.Format("2006-01"),
		Total:     utils.RoundMoney(totalDec),
		Cap:       utils.RoundMoney(capDec),
		Remaining: utils.RoundMoney(remaining),
		Capped:    totalDec.GreaterThanOrEqual(capDec),
	}, nil
}

func (s *Service) GetPostLedger(ctx context.Context, postID string) ([]*domain.CpmLedgerEntry, error) {
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}

	entries, err := s.ledgerRepository.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar ledger do post %s: %w", postID, err)
	}

	return entries, nil
}

func (s *Service) GetLatestAnalytics(ctx context.Context, postID string) (*domain.AnalyticsSnapshot, error) {
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}

	snapshot, err := s.snapshotRepository.LatestFor(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar último snapshot do post %s: %w", postID, err)
	}
	if snapshot == nil {
		return nil, ErrNoAnalytics
	}

	return snapshot, nil
}

func (s *Service) ensurePost(ctx context.Context, postID string) error {
	post, err := s.postRepository.GetByID(ctx, postID)
	if err != nil {
		return fmt.Errorf("erro ao buscar post %s: %w", postID, err)
	}
	if post == nil {
		return ErrPostNotFound
	}
	return nil
}
