package client

import (
	"errors"
	"net/http"
	"strconv"
	"time"
)

var (
	ErrUnauthorized = errors.New("unauthorized, session expired")
	ErrForbidden    = errors.New("access denied")
	ErrNotFound     = errors.New("not found")
	ErrServer       = errors.New("order service unavailable")
)

// NetworkError - ошибка транспорта, до сервиса не достучались
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// RateLimitError - сервис ограничил частоту запросов
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return "rate limit exceeded"
}

func NewRateLimitError(headers http.Header) *RateLimitError {
	return &RateLimitError{
		RetryAfter: ParseRetryAfter(headers),
	}
}

// HandleErrorResponse - преобразует неуспешный HTTP-статус в категорию ошибки
func HandleErrorResponse(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusForbidden:
		return ErrForbidden
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode == http.StatusTooManyRequests:
		return NewRateLimitError(resp.Header)
	default:
		return ErrServer
	}
}

func ParseRetryAfter(headers http.Header) time.Duration {
	retryAfter := headers.Get("Retry-After")
	if retryAfter == "" {
		return time.Minute // default
	}

	if seconds, err := strconv.Atoi(retryAfter); err == nil {
		return time.Duration(seconds) * time.Second
	}

	if t, err := http.ParseTime(retryAfter); err == nil {
		return time.Until(t)
	}

	return time.Minute // fallback
}
