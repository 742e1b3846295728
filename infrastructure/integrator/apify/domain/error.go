package apifydomain

import (
	"errors"
	"fmt"
)

// ErrorKind classifica falhas do provedor para a decisão de retry
type ErrorKind string

const (
	KindUnsupportedPlatform ErrorKind = "unsupported_platform"
	KindInvalidURL          ErrorKind = "invalid_url"
	KindRateLimited         ErrorKind = "rate_limited"
	KindServerError         ErrorKind = "server_error"
	KindClientError         ErrorKind = "client_error"
	KindNetwork             ErrorKind = "network"
	KindDecode              ErrorKind = "decode"
	KindRunFailed           ErrorKind = "run_failed"
	KindPollTimeout         ErrorKind = "poll_timeout"
	KindEmptyDataset        ErrorKind = "empty_dataset"
	KindMissingViews        ErrorKind = "missing_views"
	KindCircuitOpen         ErrorKind = "circuit_open"
	KindCanceled            ErrorKind = "canceled"
)

// ProviderError é o único tipo de erro devolvido pela integração
type ProviderError struct {
	Op         string
	Kind       ErrorKind
	StatusCode int
	Transient  bool
	Err        error
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("apify %s: %s", e.Op, e.Kind)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(op string, kind ErrorKind, transient bool, err error) *ProviderError {
	return &ProviderError{
		Op:        op,
		Kind:      kind,
		Transient: transient,
		Err:       err,
	}
}

// NewStatusError mapeia o status HTTP: 429 e 5xx são transitórios, demais 4xx são permanentes
func NewStatusError(op string, statusCode int, body string) *ProviderError {
	e := &ProviderError{
		Op:         op,
		StatusCode: statusCode,
		Err:        fmt.Errorf("resposta inesperada: %s", body),
	}

	switch {
	case statusCode == 429:
		e.Kind = KindRateLimited
		e.Transient = true
	case statusCode >= 500:
		e.Kind = KindServerError
		e.Transient = true
	default:
		e.Kind = KindClientError
	}

	return e
}

// IsTransient indica se vale a pena tentar novamente
func IsTransient(err error) bool {
	var pErr *ProviderError
	if errors.As(err, &pErr) {
		return pErr.Transient
	}
	return false
}

func KindOf(err error) ErrorKind {
	var pErr *ProviderError
	if errors.As(err, &pErr) {
		return pErr.Kind
	}
	return ""
}
