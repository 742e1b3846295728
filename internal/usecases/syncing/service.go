package syncing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/vfg2006/creator-cpm-sync/infrastructure/repository"
	"github.com/vfg2006/creator-cpm-sync/internal/domain"
	"github.com/vfg2006/creator-cpm-sync/internal/usecases/cpm"
	"github.com/vfg2006/creator-cpm-sync/pkg/log"
	"github.com/vfg2006/creator-cpm-sync/pkg/metrics"
	"github.com/vfg2006/creator-cpm-sync/pkg/utils"
)

type Settings struct {
	WindowDays         int
	MaxConcurrentPosts int
	PostTimeout        time.Duration
	RequestDelay       time.Duration
}

type Service struct {
	settings           Settings
	provider           MetricsProvider
	postRepository     repository.PostRepository
	snapshotRepository repository.SnapshotRepository
	ledgerRepository   repository.CpmLedgerRepository
	viralDetector      ViralDetector
	cpmAccruer         CpmAccruer
	clock              utils.Clock
}

func NewService(
	settings Settings,
	provider MetricsProvider,
	postRepo repository.PostRepository,
	snapshotRepo repository.SnapshotRepository,
	ledgerRepo repository.CpmLedgerRepository,
	viralDetector ViralDetector,
	cpmAccruer CpmAccruer,
	clock utils.Clock,
) *Service {
	if settings.MaxConcurrentPosts < 1 {
		settings.MaxConcurrentPosts = 1
	}

	return &Service{
		settings:           settings,
		provider:           provider,
		postRepository:     postRepo,
		snapshotRepository: snapshotRepo,
		ledgerRepository:   ledgerRepo,
		viralDetector:      viralDetector,
		cpmAccruer:         cpmAccruer,
		clock:              clock,
	}
}

// postOutcome é o que cada worker devolve para ser agregado no SyncResult
type postOutcome struct {
	post              *domain.Post
	err               *domain.SyncError
	analyticsVerified bool
	cpmVerified       bool
	verifyFailures    []error
	sanityEvaluated   bool
	sanityMismatch    *SanityCheckFailure
}

// Run só retorna erro quando não consegue listar os candidatos; falhas por post vão para o resultado
func (s *Service) Run(ctx context.Context, opts domain.SyncOptions) (*domain.SyncResult, error) {
	runID, err := utils.GenerateID()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id da execução: %w", err)
	}

	ctx = log.WithRunID(ctx, runID)
	logger := log.ForContext(ctx)

	startedAt := s.clock.Now()
	today := utils.TruncateToDay(startedAt)
	result := domain.NewSyncResult(runID, startedAt)

	filters := domain.PostFilters{
		Statuses:     domain.SyncablePostStatuses,
		CreatedAfter: today.AddDate(0, 0, -s.settings.WindowDays),
		AccountIDs:   opts.AccountIDs,
	}

	posts, err := s.postRepository.ListSyncCandidates(ctx, filters)
	if err != nil {
		logger.WithError(err).Error("sync: falha ao listar posts candidatos")
		return nil, fmt.Errorf("%w: %v", ErrListCandidates, err)
	}

	result.Candidates = len(posts)
	logger.WithFields(log.Fields{
		"candidates":    len(posts),
		"account_ids":   opts.AccountIDs,
		"created_after": filters.CreatedAfter.Format(time.DateOnly),
		"workers":       s.settings.MaxConcurrentPosts,
	}).Info("sync: iniciando processamento dos posts")

	outcomes := make(chan postOutcome)
	jobs := make(chan *domain.Post)

	var wg sync.WaitGroup
	workers := s.settings.MaxConcurrentPosts
	if workers > len(posts) {
		workers = len(posts)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for post := range jobs {
				outcomes <- s.processPost(ctx, post, today)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i, post := range posts {
			if i > 0 && s.settings.RequestDelay > 0 {
				if err := sleepContext(ctx, s.settings.RequestDelay); err != nil {
					return
				}
			}
			if ctx.Err() != nil {
				return
			}
			select {
			case <-ctx.Done():
				return
			case jobs <- post:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	processed := 0
	for outcome := range outcomes {
		processed++
		s.aggregate(ctx, result, outcome)
	}

	result.Aborted = ctx.Err() != nil

	result.FinishedAt = s.clock.Now()

	logger.WithFields(log.Fields{
		"candidates":         result.Candidates,
		"processed":          processed,
		"success":            result.Success,
		"failed":             result.Failed,
		"analytics_verified": result.Verified.AnalyticsInserted,
		"cpm_verified":       result.Verified.CpmInserted,
		"verify_failed":      result.Verified.Failed,
		"sanity_passed":      result.SanityChecks.Passed,
		"sanity_failed":      result.SanityChecks.Failed,
		"aborted":            result.Aborted,
	}).Info("sync: execução finalizada")

	return result, nil
}

func (s *Service) aggregate(ctx context.Context, result *domain.SyncResult, outcome postOutcome) {
	logger := log.ForContext(ctx).WithField("post_id", outcome.post.ID)

	if outcome.err != nil {
		result.Failed++
		result.Errors = append(result.Errors, *outcome.err)
		metrics.SyncPosts.WithLabelValues("failed", string(outcome.err.Stage)).Inc()
		logger.WithFields(log.Fields{
			"url":   outcome.err.URL,
			"stage": outcome.err.Stage,
			"error": outcome.err.Error,
		}).Error("sync: falha ao processar post")
		return
	}

	result.Success++
	metrics.SyncPosts.WithLabelValues("success", "").Inc()

	if outcome.analyticsVerified {
		result.Verified.AnalyticsInserted++
	}
	if outcome.cpmVerified {
		result.Verified.CpmInserted++
	}
	for _, verr := range outcome.verifyFailures {
		result.Verified.Failed++
		metrics.SyncVerificationFailures.Inc()
		logger.WithError(verr).Warn("sync: verificação após escrita falhou")
	}

	if !outcome.sanityEvaluated {
		return
	}
	if outcome.sanityMismatch == nil {
		result.SanityChecks.Passed++
		return
	}

	result.SanityChecks.Failed++
	result.SanityChecks.Mismatches = append(result.SanityChecks.Mismatches, domain.SanityMismatch{
		PostID:        outcome.sanityMismatch.PostID,
		SnapshotViews: outcome.sanityMismatch.SnapshotViews,
		LedgerViews:   outcome.sanityMismatch.LedgerViews,
	})
	metrics.SyncSanityMismatches.Inc()
	logger.WithError(outcome.sanityMismatch).Warn("sync: divergência entre snapshot e ledger")
}

// processPost executa fetch, snapshot, viral e cpm; qualquer erro interrompe só este post
func (s *Service) processPost(ctx context.Context, post *domain.Post, today time.Time) postOutcome {
	outcome := postOutcome{post: post}

	if s.settings.PostTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.settings.PostTimeout)
		defer cancel()
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"post_id":  post.ID,
		"platform": post.Platform,
		"status":   post.Status,
	})

	fail := func(stage domain.SyncStage, err error) postOutcome {
		outcome.err = &domain.SyncError{
			PostID: post.ID,
			URL:    post.URL,
			Error:  err.Error(),
			Stage:  stage,
		}
		return outcome
	}

	fetched, err := s.provider.FetchMetrics(ctx, post.Platform, post.URL)
	if err != nil {
		return fail(domain.SyncStageFetch, err)
	}

	snapshot := domain.NewAnalyticsSnapshot(post.ID, fetched, s.clock.Now(), domain.SnapshotSourceApify)
	snapshotID, err := s.snapshotRepository.Append(ctx, snapshot)
	if err != nil {
		return fail(domain.SyncStageSnapshot, err)
	}

	if _, err := s.viralDetector.CheckAndUpdate(ctx, post.ID, fetched.Views); err != nil {
		return fail(domain.SyncStageViral, err)
	}

	var accrual *cpm.AccrualResult
	if post.IsApproved() {
		accrual, err = s.cpmAccruer.Accrue(ctx, cpm.AccrualInput{
			PostID:          post.ID,
			UserID:          post.SubmittedBy,
			PostCreatedAt:   post.CreatedAt,
			CumulativeViews: fetched.Views,
			Date:            today,
		})
		if err != nil {
			return fail(domain.SyncStageCpm, err)
		}
	}

	logger.WithFields(log.Fields{
		"views":       fetched.Views,
		"snapshot_id": snapshotID,
	}).Debug("sync: post processado")

	s.verify(ctx, &outcome, snapshotID, fetched.Views, accrual, today)

	return outcome
}

// verify relê o que foi gravado; divergências são reportadas, nunca corrigidas
func (s *Service) verify(ctx context.Context, outcome *postOutcome, snapshotID int64, fetchedViews int64, accrual *cpm.AccrualResult, today time.Time) {
	post := outcome.post

	stored, err := s.snapshotRepository.GetByID(ctx, snapshotID)
	switch {
	case err != nil:
		outcome.verifyFailures = append(outcome.verifyFailures, &VerificationMismatch{PostID: post.ID, Check: "snapshot", Expected: fetchedViews, Err: err})
	case stored == nil:
		outcome.verifyFailures = append(outcome.verifyFailures, &VerificationMismatch{PostID: post.ID, Check: "snapshot", Expected: fetchedViews, Err: repository.ErrNotFound})
	case stored.Views != fetchedViews:
		outcome.verifyFailures = append(outcome.verifyFailures, &VerificationMismatch{PostID: post.ID, Check: "snapshot", Expected: fetchedViews, Actual: stored.Views})
	default:
		outcome.analyticsVerified = true
	}

	// Fora da janela nenhuma linha é esperada
	if accrual == nil || accrual.Outcome == cpm.OutcomeOutsideWindow {
		return
	}

	entry, err := s.ledgerRepository.GetByPostAndDate(ctx, post.ID, today)
	switch {
	case err != nil:
		outcome.verifyFailures = append(outcome.verifyFailures, &VerificationMismatch{PostID: post.ID, Check: "ledger", Err: err})
		return
	case entry == nil:
		outcome.verifyFailures = append(outcome.verifyFailures, &VerificationMismatch{PostID: post.ID, Check: "ledger", Err: repository.ErrNotFound})
		return
	}
	outcome.cpmVerified = true

	latest, err := s.snapshotRepository.LatestFor(ctx, post.ID)
	if err != nil || latest == nil {
		if err == nil {
			err = repository.ErrNotFound
		}
		outcome.verifyFailures = append(outcome.verifyFailures, &VerificationMismatch{PostID: post.ID, Check: "latest_snapshot", Err: err})
		return
	}

	outcome.sanityEvaluated = true
	if latest.Views != entry.CumulativeViews {
		outcome.sanityMismatch = &SanityCheckFailure{
			PostID:        post.ID,
			SnapshotViews: latest.Views,
			LedgerViews:   entry.CumulativeViews,
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
