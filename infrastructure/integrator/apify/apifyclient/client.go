package apifyclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	apifydomain "github.com/vfg2006/creator-cpm-sync/infrastructure/integrator/apify/domain"
	"github.com/vfg2006/creator-cpm-sync/internal/config"
	"github.com/vfg2006/creator-cpm-sync/pkg/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxErrorBody = 512

type Client interface {
	StartRun(ctx context.Context, actorID string, input interface{}) (*apifydomain.Run, error)
	GetRun(ctx context.Context, runID string) (*apifydomain.Run, error)
	GetDatasetItems(ctx context.Context, datasetID string) ([]apifydomain.DatasetItem, error)
}

type ApifyClient struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	requestTimeout time.Duration
}

func NewClient(cfg config.Apify) Client {
	return &ApifyClient{
		httpClient:     &http.Client{},
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		token:          cfg.Token,
		requestTimeout: cfg.RequestTimeout,
	}
}

// do executa uma chamada com timeout próprio e converte qualquer falha em ProviderError
func (c *ApifyClient) do(ctx context.Context, op, method, path string, query url.Values, body interface{}, out interface{}) error {
	if c.requestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.requestTimeout)
		defer cancel()
	}

	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return apifydomain.NewProviderError(op, apifydomain.KindInvalidURL, false, fmt.Errorf("erro ao analisar a URL base: %w", err))
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("token", c.token)
	endpoint.RawQuery = query.Encode()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return apifydomain.NewProviderError(op, apifydomain.KindDecode, false, fmt.Errorf("erro ao serializar o input: %w", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return apifydomain.NewProviderError(op, apifydomain.KindInvalidURL, false, fmt.Errorf("erro ao criar a requisição: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ProviderRequests.WithLabelValues(op, "network_error").Inc()
		return classifyTransportError(ctx, op, err)
	}
	defer resp.Body.Close()

	metrics.ProviderRequests.WithLabelValues(op, fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		logrus.WithFields(logrus.Fields{
			"operation":   op,
			"status_code": resp.StatusCode,
		}).Warn("apify: resposta com status de erro")
		return apifydomain.NewStatusError(op, resp.StatusCode, string(snippet))
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if ctx.Err() != nil {
			return classifyTransportError(ctx, op, err)
		}
		return apifydomain.NewProviderError(op, apifydomain.KindDecode, false, fmt.Errorf("erro ao decodificar a resposta: %w", err))
	}

	return nil
}

// Timeouts de rede são transitórios; cancelamento do chamador não é
func classifyTransportError(ctx context.Context, op string, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return apifydomain.NewProviderError(op, apifydomain.KindCanceled, false, err)
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return apifydomain.NewProviderError(op, apifydomain.KindNetwork, true, fmt.Errorf("timeout na requisição: %w", err))
	}

	return apifydomain.NewProviderError(op, apifydomain.KindNetwork, true, fmt.Errorf("erro ao executar a requisição: %w", err))
}
