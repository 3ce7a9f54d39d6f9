package adapters

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"

	"reqtxt/internal/ports"
	"reqtxt/internal/shared"
)

// HTTPContentAdapter fetches remote requirements files. Responses are
// cached by URL in a bounded LRU so repeated include targets within one
// process fetch once; 5xx and 429 responses retry with capped exponential
// backoff.
type HTTPContentAdapter struct {
	Client     *http.Client
	Retries    int
	RetryDelay time.Duration
	cache      *lru.Cache[string, string]
}

const defaultFetchTimeout = 30 * time.Second
const defaultFetchRetries = 3
const defaultFetchRetryDelay = 200 * time.Millisecond
const maxFetchRetryDelay = 2 * time.Second
const defaultFetchCacheSize = 64

func NewHTTPContentAdapter(timeoutSec int, retries int, retryDelayMs int, cacheSize int) (*HTTPContentAdapter, error) {
	cache, err := lru.New[string, string](normalizeFetchCacheSize(cacheSize))
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to initialize fetch cache").
			WithCause(err)
	}
	return &HTTPContentAdapter{
		Client:     &http.Client{Timeout: normalizeFetchTimeout(timeoutSec)},
		Retries:    normalizeFetchRetries(retries),
		RetryDelay: normalizeFetchRetryDelay(retryDelayMs),
		cache:      cache,
	}, nil
}

func (a *HTTPContentAdapter) Fetch(ctx context.Context, identity string) (string, error) {
	if body, ok := a.cache.Get(identity); ok {
		return body, nil
	}
	var lastErr error
	for attempt := 0; attempt < a.Retries; attempt++ {
		if ctx.Err() != nil {
			return "", errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("fetch cancelled: %s", identity)).
				WithCause(ctx.Err())
		}
		body, retry, err := a.fetchOnce(ctx, identity)
		if err == nil {
			a.cache.Add(identity, body)
			return body, nil
		}
		lastErr = err
		if !retry || attempt == a.Retries-1 {
			return "", err
		}
		delay := a.fetchRetryDelay(attempt)
		log.Ctx(ctx).Debug().
			Str("url", identity).
			Int("attempt", attempt+1).
			Dur("delay", delay).
			Msg("retrying requirements fetch")
		time.Sleep(delay)
	}
	if lastErr == nil {
		lastErr = errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to fetch %s", identity))
	}
	return "", lastErr
}

func (a *HTTPContentAdapter) fetchOnce(ctx context.Context, identity string) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, identity, nil)
	if err != nil {
		return "", false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid requirements url: %s", identity)).
			WithCause(err)
	}
	req.Header.Set("Accept", "text/plain")
	resp, err := a.Client.Do(req)
	if err != nil {
		return "", true, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("failed to fetch %s", identity)).
			WithCause(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", true, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("failed to read response from %s", identity)).
				WithCause(err)
		}
		return string(body), false, nil
	}
	body, _ := io.ReadAll(resp.Body)
	message := strings.TrimSpace(string(body))
	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return "", false, errbuilder.New().
			WithCode(errbuilder.CodePermissionDenied).
			WithMsg(fmt.Sprintf("access denied to %s", identity)).
			WithCause(shared.HTTPStatusErrorWithBody(resp.StatusCode, identity, message))
	case http.StatusNotFound, http.StatusGone:
		return "", false, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("requirements url not found: %s", identity)).
			WithCause(shared.HTTPStatusError(resp.StatusCode, identity))
	}
	retry := resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests
	return "", retry, errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("failed to fetch %s", identity)).
		WithCause(shared.HTTPStatusErrorWithBody(resp.StatusCode, identity, message))
}

func (a *HTTPContentAdapter) fetchRetryDelay(attempt int) time.Duration {
	delay := a.RetryDelay * time.Duration(1<<attempt)
	if delay > maxFetchRetryDelay {
		delay = maxFetchRetryDelay
	}
	jitter := time.Duration(time.Now().UnixNano() % int64(delay/2+1))
	return delay + jitter
}

func normalizeFetchTimeout(value int) time.Duration {
	timeout := time.Duration(value) * time.Second
	if timeout <= 0 {
		return defaultFetchTimeout
	}
	return timeout
}

func normalizeFetchRetries(value int) int {
	if value <= 0 {
		return defaultFetchRetries
	}
	return value
}

func normalizeFetchRetryDelay(value int) time.Duration {
	delay := time.Duration(value) * time.Millisecond
	if delay <= 0 {
		return defaultFetchRetryDelay
	}
	return delay
}

func normalizeFetchCacheSize(value int) int {
	if value <= 0 {
		return defaultFetchCacheSize
	}
	return value
}

var _ ports.ContentProvider = (*HTTPContentAdapter)(nil)
