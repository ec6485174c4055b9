package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/weather-beats/internal/domain/beats"
	"github.com/yanqian/weather-beats/internal/infra/config"
	apperrors "github.com/yanqian/weather-beats/pkg/errors"
)

func TestIPRateLimiterRefillsPerClient(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := newIPRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerMinute: 60, Burst: 2})
	limiter.now = func() time.Time { return now }

	require.True(t, limiter.allow("10.0.0.1"))
	require.True(t, limiter.allow("10.0.0.1"))
	require.False(t, limiter.allow("10.0.0.1"))
	require.True(t, limiter.allow("10.0.0.2"))

	now = now.Add(time.Second)
	require.True(t, limiter.allow("10.0.0.1"))
}

func TestIPRateLimiterForgetsIdleClients(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := newIPRateLimiter(config.RateLimitConfig{Enabled: true, RequestsPerMinute: 60, Burst: 1})
	limiter.now = func() time.Time { return now }

	require.True(t, limiter.allow("10.0.0.1"))
	now = now.Add(10 * time.Minute)
	require.True(t, limiter.allow("10.0.0.2"))
	require.NotContains(t, limiter.visitors, "10.0.0.1")
}

func TestRouter_RateLimitRejectsBurst(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 1}
	server := NewRouter(cfg, NewHandler(&stubBeats{}, &stubMappings{}, stubResolver{}, newTestLogger()), newTestLogger())

	rec := performRequest(http.MethodGet, "/api/debug/spotify/rock", "", server)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = performRequest(http.MethodGet, "/api/debug/spotify/rock", "", server)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "rate_limit_exceeded", decodeErrorBody(t, rec.Body.Bytes())["code"])
}

func TestWithRetryReplaysFailedGets(t *testing.T) {
	attempts := 0
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("fail"))
			return
		}
		_, _ = w.Write([]byte("ok"))
	})
	handler := withRetry(inner, config.RetryConfig{Enabled: true, MaxAttempts: 3}, newTestLogger())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/weather", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
	require.Equal(t, 3, attempts)
}

func TestWithRetrySkipsPostsAndExcludedPaths(t *testing.T) {
	attempts := 0
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	})
	handler := withRetry(inner, config.RetryConfig{Enabled: true, MaxAttempts: 3, Exclude: []string{"/metrics"}}, newTestLogger())

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/mappings", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, 2, attempts)
}

func TestRouter_RetriedRequestsAreChargedOnce(t *testing.T) {
	calls := 0
	svc := &stubBeats{
		recommendFn: func(ctx context.Context, req beats.Request) (beats.Response, error) {
			calls++
			return beats.Response{}, apperrors.Wrap(apperrors.CodeWeather, "failed to fetch weather", nil)
		},
	}
	cfg := testConfig()
	cfg.HTTP.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 60, Burst: 1}
	cfg.HTTP.Retry = config.RetryConfig{Enabled: true, MaxAttempts: 2}
	server := NewRouter(cfg, NewHandler(svc, &stubMappings{}, stubResolver{}, newTestLogger()), newTestLogger())

	rec := performRequest(http.MethodGet, "/api/weather?lat=1&lon=2&mood=calm", "", server)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "weather_error", decodeErrorBody(t, rec.Body.Bytes())["code"])
	require.Equal(t, 2, calls)
}
