package apify

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	gobreaker "github.com/sony/gobreaker/v2"
	"github.com/vfg2006/creator-cpm-sync/infrastructure/integrator/apify/apifyclient"
	apifydomain "github.com/vfg2006/creator-cpm-sync/infrastructure/integrator/apify/domain"
	"github.com/vfg2006/creator-cpm-sync/internal/config"
	"github.com/vfg2006/creator-cpm-sync/internal/domain"
	"github.com/vfg2006/creator-cpm-sync/pkg/metrics"
)

const breakerName = "apify"

var platformHosts = map[domain.Platform][]string{
	domain.PlatformTikTok:    {"tiktok.com"},
	domain.PlatformInstagram: {"instagram.com", "instagr.am"},
}

type Option func(*ApifyIntegrator)

// WithSleeper troca a espera entre tentativas e polls (testes usam um sleeper instantâneo)
func WithSleeper(sleeper Sleeper) Option {
	return func(s *ApifyIntegrator) {
		s.sleep = sleeper
	}
}

type ApifyIntegrator struct {
	cfg     config.Apify
	Client  apifyclient.Client
	breaker *gobreaker.CircuitBreaker[*domain.Metrics]
	sleep   Sleeper
}

func New(cfg config.Apify, client apifyclient.Client, opts ...Option) *ApifyIntegrator {
	s := &ApifyIntegrator{
		cfg:    cfg,
		Client: client,
		sleep:  ContextSleep,
	}

	threshold := uint32(cfg.BreakerThreshold)
	if threshold == 0 {
		threshold = 5
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	s.breaker = gobreaker.NewCircuitBreaker[*domain.Metrics](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !countsAgainstProvider(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logrus.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("apify: circuit breaker mudou de estado")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// FetchMetrics coleta as métricas atuais de um post com retry para falhas transitórias
func (s *ApifyIntegrator) FetchMetrics(ctx context.Context, platform domain.Platform, postURL string) (*domain.Metrics, error) {
	actorID, err := s.actorFor(platform)
	if err != nil {
		return nil, err
	}

	if err := ValidatePostURL(platform, postURL); err != nil {
		return nil, err
	}

	maxAttempts := s.cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := s.breaker.Execute(func() (*domain.Metrics, error) {
			return s.attempt(ctx, platform, actorID, postURL)
		})
		if err == nil {
			metrics.ProviderFetchAttempts.Observe(float64(attempt))
			logrus.WithFields(logrus.Fields{
				"platform": platform,
				"url":      postURL,
				"attempt":  attempt,
				"views":    result.Views,
			}).Debug("apify: métricas coletadas com sucesso")
			return result, nil
		}

		// breaker aberto consome a tentativa, mas o post ainda pode esperar e tentar de novo
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = apifydomain.NewProviderError("fetch", apifydomain.KindCircuitOpen, true, err)
		}

		lastErr = err
		if !apifydomain.IsTransient(err) {
			return nil, err
		}

		if attempt == maxAttempts {
			break
		}

		delay := RetryDelay(s.cfg.RetryBaseDelay, attempt)
		logrus.WithFields(logrus.Fields{
			"platform": platform,
			"url":      postURL,
			"attempt":  attempt,
			"delay":    delay.String(),
			"error":    err.Error(),
		}).Warn("apify: falha transitória, tentando novamente")

		if err := s.sleep(ctx, delay); err != nil {
			return nil, apifydomain.NewProviderError("fetch", apifydomain.KindCanceled, false, err)
		}
	}

	metrics.ProviderFetchAttempts.Observe(float64(maxAttempts))

	return nil, fmt.Errorf("tentativas esgotadas (%d): %w", maxAttempts, lastErr)
}

// attempt é uma tentativa completa: disparo do run, polling e leitura do dataset
func (s *ApifyIntegrator) attempt(ctx context.Context, platform domain.Platform, actorID, postURL string) (*domain.Metrics, error) {
	run, err := s.Client.StartRun(ctx, actorID, buildInput(platform, postURL))
	if err != nil {
		return nil, err
	}

	run, err = s.waitForRun(ctx, run)
	if err != nil {
		return nil, err
	}

	if run.Status != apifydomain.RunStatusSucceeded {
		return nil, apifydomain.NewProviderError("run", apifydomain.KindRunFailed, true,
			fmt.Errorf("execução %s terminou com status %s", run.ID, run.Status))
	}

	items, err := s.Client.GetDatasetItems(ctx, run.DefaultDatasetID)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, apifydomain.NewProviderError("dataset", apifydomain.KindEmptyDataset, true,
			fmt.Errorf("dataset %s sem itens", run.DefaultDatasetID))
	}

	result, ok := items[0].ToMetrics()
	if !ok {
		return nil, apifydomain.NewProviderError("dataset", apifydomain.KindMissingViews, true,
			fmt.Errorf("item do dataset %s sem contagem de views", run.DefaultDatasetID))
	}

	return result, nil
}

// waitForRun consulta o run até um status terminal, no máximo MaxPolls vezes
func (s *ApifyIntegrator) waitForRun(ctx context.Context, run *apifydomain.Run) (*apifydomain.Run, error) {
	for poll := 1; !run.Status.IsTerminal(); poll++ {
		if poll > s.cfg.MaxPolls {
			return nil, apifydomain.NewProviderError("poll", apifydomain.KindPollTimeout, false,
				fmt.Errorf("execução %s não terminou após %d consultas", run.ID, s.cfg.MaxPolls))
		}

		if err := s.sleep(ctx, s.cfg.PollInterval); err != nil {
			return nil, apifydomain.NewProviderError("poll", apifydomain.KindCanceled, false, err)
		}

		current, err := s.Client.GetRun(ctx, run.ID)
		if err != nil {
			return nil, err
		}
		run = current
	}

	return run, nil
}

func (s *ApifyIntegrator) actorFor(platform domain.Platform) (string, error) {
	switch platform {
	case domain.PlatformTikTok:
		return s.cfg.TikTokActor, nil
	case domain.PlatformInstagram:
		return s.cfg.InstagramActor, nil
	default:
		return "", apifydomain.NewProviderError("fetch", apifydomain.KindUnsupportedPlatform, false,
			fmt.Errorf("plataforma não suportada: %q", platform))
	}
}

// ValidatePostURL rejeita URLs malformadas ou de outra plataforma antes de gastar um run
func ValidatePostURL(platform domain.Platform, postURL string) error {
	hosts, ok := platformHosts[platform]
	if !ok {
		return apifydomain.NewProviderError("fetch", apifydomain.KindUnsupportedPlatform, false,
			fmt.Errorf("plataforma não suportada: %q", platform))
	}

	parsed, err := url.Parse(strings.TrimSpace(postURL))
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return apifydomain.NewProviderError("fetch", apifydomain.KindInvalidURL, false,
			fmt.Errorf("URL malformada: %q", postURL))
	}

	host := strings.ToLower(parsed.Hostname())
	for _, h := range hosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return nil
		}
	}

	return apifydomain.NewProviderError("fetch", apifydomain.KindInvalidURL, false,
		fmt.Errorf("host %q não pertence à plataforma %s", host, platform))
}

func buildInput(platform domain.Platform, postURL string) interface{} {
	if platform == domain.PlatformInstagram {
		return apifydomain.InstagramInput{
			DirectURLs:   []string{postURL},
			ResultsType:  "posts",
			ResultsLimit: 1,
		}
	}

	return apifydomain.TikTokInput{
		PostURLs:       []string{postURL},
		ResultsPerPage: 1,
	}
}

// countsAgainstProvider separa falhas do provedor (429, 5xx, rede) das falhas
// do próprio post (run falhou, dataset vazio, item sem views), que não abrem o breaker.
func countsAgainstProvider(err error) bool {
	switch apifydomain.KindOf(err) {
	case apifydomain.KindRateLimited, apifydomain.KindServerError, apifydomain.KindNetwork:
		return true
	default:
		return false
	}
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func (s *ApifyIntegrator) BreakerState() string {
	return s.breaker.State().String()
}
