package cpm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creator-cpm-sync/infrastructure/repository"
	"github.com/vfg2006/creator-cpm-sync/internal/domain"
	"github.com/vfg2006/creator-cpm-sync/pkg/metrics"
	"github.com/vfg2006/creator-cpm-sync/pkg/utils"
)

type Outcome string

const (
	OutcomeInserted      Outcome = "inserted"
	OutcomeAlreadySynced Outcome = "already_synced"
	OutcomeOutsideWindow Outcome = "outside_window"
)

type AccrualInput struct {
	PostID          string
	UserID          string
	PostCreatedAt   time.Time
	CumulativeViews int64
	Date            time.Time
}

// AccrualResult traz a linha gravada (ou a já existente); Entry é nil fora da janela
type AccrualResult struct {
	Outcome Outcome
	Entry   *domain.CpmLedgerEntry
}

type Calculator interface {
	Accrue(ctx context.Context, input AccrualInput) (*AccrualResult, error)
}

type Service struct {
	ledgerRepository repository.CpmLedgerRepository
	settings         domain.CpmSettings
	userLocks        *KeyedMutex
}

func NewService(ledgerRepo repository.CpmLedgerRepository, settings domain.CpmSettings) (*Service, error) {
	if settings.Rate < 0 || settings.PostCap < 0 || settings.UserMonthlyCap < 0 || settings.WindowDays <= 0 {
		return nil, fmt.Errorf("%w: %+v", ErrInvalidSettings, settings)
	}

	return &Service{
		ledgerRepository: ledgerRepo,
		settings:         settings,
		userLocks:        NewKeyedMutex(),
	}, nil
}

func (s *Service) Settings() domain.CpmSettings {
	return s.settings
}

// Accrue grava no máximo uma linha por (post, dia). Chamar de novo no mesmo dia é no-op.
func (s *Service) Accrue(ctx context.Context, input AccrualInput) (*AccrualResult, error) {
	if input.PostID == "" || input.UserID == "" || input.CumulativeViews < 0 {
		return nil, fmt.Errorf("%w: post=%q user=%q views=%d", ErrInvalidInput, input.PostID, input.UserID, input.CumulativeViews)
	}

	date := utils.TruncateToDay(input.Date)

	existing, err := s.ledgerRepository.GetByPostAndDate(ctx, input.PostID, date)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar ledger do dia: %w", err)
	}
	if existing != nil {
		return &AccrualResult{Outcome: OutcomeAlreadySynced, Entry: existing}, nil
	}

	postAgeDays := utils.DaysBetween(input.PostCreatedAt, date)
	if postAgeDays < 0 {
		postAgeDays = 0
	}
	if postAgeDays > s.settings.WindowDays {
		logrus.WithFields(logrus.Fields{
			"post_id":       input.PostID,
			"post_age_days": postAgeDays,
			"window_days":   s.settings.WindowDays,
		}).Debug("cpm: post fora da janela de elegibilidade")
		return &AccrualResult{Outcome: OutcomeOutsideWindow}, nil
	}

	// O total mensal lido abaixo só é confiável se nenhum outro post do usuário gravar no meio
	unlock := s.userLocks.Lock(input.UserID)
	defer unlock()

	previous, err := s.ledgerRepository.GetLatestBefore(ctx, input.PostID, date)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar linha anterior do ledger: %w", err)
	}

	var previousViews int64
	previousPostCpm := decimal.Zero
	if previous != nil {
		previousViews = previous.CumulativeViews
		previousPostCpm = decimal.NewFromFloat(previous.CumulativePostCpm)
	}

	// Queda de views (remoção, recontagem) não estorna nada
	viewsDelta := input.CumulativeViews - previousViews
	if viewsDelta < 0 {
		viewsDelta = 0
	}

	postCap := decimal.NewFromFloat(s.settings.PostCap)
	earned := decimal.Zero
	if previousPostCpm.LessThan(postCap) {
		earned = decimal.NewFromInt(viewsDelta).
			Div(decimal.NewFromInt(1000)).
			Mul(decimal.NewFromFloat(s.settings.Rate))
		earned = decimal.Min(earned, postCap.Sub(previousPostCpm))
	}
	earned = earned.Round(2)

	monthTotalValue, err := s.ledgerRepository.SumUserEarnings(ctx, input.UserID, utils.StartOfMonth(date), date)
	if err != nil {
		return nil, fmt.Errorf("erro ao somar ganhos mensais do usuário: %w", err)
	}

	monthTotal := decimal.NewFromFloat(monthTotalValue)
	monthlyCap := decimal.NewFromFloat(s.settings.UserMonthlyCap)
	switch {
	case monthTotal.GreaterThanOrEqual(monthlyCap):
		earned = decimal.Zero
	case monthTotal.Add(earned).GreaterThan(monthlyCap):
		earned = monthlyCap.Sub(monthTotal)
	}

	cumulativePostCpm := previousPostCpm.Add(earned)
	cumulativeUserMonthlyCpm := monthTotal.Add(earned)

	entry := &domain.CpmLedgerEntry{
		PostID:                   input.PostID,
		UserID:                   input.UserID,
		Date:                     date,
		CumulativeViews:          input.CumulativeViews,
		ViewsDelta:               viewsDelta,
		CpmEarned:                utils.RoundMoney(earned),
		PostAgeDays:              postAgeDays,
		CumulativePostCpm:        utils.RoundMoney(cumulativePostCpm),
		CumulativeUserMonthlyCpm: utils.RoundMoney(cumulativeUserMonthlyCpm),
		IsPostCapped:             cumulativePostCpm.GreaterThanOrEqual(postCap),
		IsUserMonthlyCapped:      cumulativeUserMonthlyCpm.GreaterThanOrEqual(monthlyCap),
	}

	if _, err := s.ledgerRepository.Insert(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrAlreadyExists) {
			stored, getErr := s.ledgerRepository.GetByPostAndDate(ctx, input.PostID, date)
			if getErr != nil {
				logrus.WithError(getErr).WithField("post_id", input.PostID).Warn("cpm: erro ao reler linha concorrente do ledger")
			}
			return &AccrualResult{Outcome: OutcomeAlreadySynced, Entry: stored}, nil
		}
		return nil, fmt.Errorf("erro ao gravar ledger: %w", err)
	}

	metrics.CpmEarned.Add(entry.CpmEarned)
	if entry.IsPostCapped {
		metrics.CpmCapped.WithLabelValues("post").Inc()
	}
	if entry.IsUserMonthlyCapped {
		metrics.CpmCapped.WithLabelValues("user_monthly").Inc()
	}

	logrus.WithFields(logrus.Fields{
		"post_id":                input.PostID,
		"user_id":                input.UserID,
		"date":                   date.Format(time.DateOnly),
		"views_delta":            viewsDelta,
		"cpm_earned":             entry.CpmEarned,
		"cumulative_post_cpm":    entry.CumulativePostCpm,
		"is_post_capped":         entry.IsPostCapped,
		"is_user_monthly_capped": entry.IsUserMonthlyCapped,
	}).Info("cpm: linha do ledger gravada")

	return &AccrualResult{Outcome: OutcomeInserted, Entry: entry}, nil
}
