package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the LLM returned content that does not
// conform to the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	// Path points at the offending value, e.g. "/questions/1/options".
	Path string
	Err  error
}

func (e *ErrInvalidResponse) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("invalid LLM response at %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// ErrUnauthorized indicates the provider rejected the API key (401 or 403).
// Retrying cannot help.
type ErrUnauthorized struct {
	Err error
}

func (e *ErrUnauthorized) Error() string {
	return fmt.Sprintf("LLM provider rejected the API key: %v", e.Err)
}

func (e *ErrUnauthorized) Unwrap() error { return e.Err }

// fromStatus classifies an SDK error by its HTTP status.
func fromStatus(status int, err error) error {
	return fromResponse(status, nil, err)
}

// fromResponse is fromStatus with the response headers, when the SDK
// exposes them, so a rate limit carries the server's Retry-After.
func fromResponse(status int, header http.Header, err error) error {
	switch status {
	case http.StatusTooManyRequests:
		return &ErrRateLimit{RetryAfter: retryAfter(header, time.Now()), Err: err}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &ErrUnauthorized{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// retryAfter reads Retry-After as delay seconds or an HTTP date. Zero means
// absent or unparseable.
func retryAfter(header http.Header, now time.Time) time.Duration {
	v := header.Get("Retry-After")
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return max(time.Duration(secs)*time.Second, 0)
	}
	if at, err := http.ParseTime(v); err == nil {
		return max(at.Sub(now), 0)
	}
	return 0
}

// IsMalformed reports whether err means the model answered but the answer
// was unusable, as opposed to the provider not answering at all.
func IsMalformed(err error) bool {
	var inv *ErrInvalidResponse
	var maxTok *ErrMaxTokensExceeded
	return errors.As(err, &inv) || errors.As(err, &maxTok)
}
