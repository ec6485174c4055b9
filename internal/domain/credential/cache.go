package credential

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	apperrors "github.com/yanqian/weather-beats/pkg/errors"
	"github.com/yanqian/weather-beats/pkg/metrics"
	"github.com/yanqian/weather-beats/pkg/util"
)

// Grant is the result of a client-credentials exchange.
type Grant struct {
	Token string
	TTL   time.Duration
}

// Authenticator exchanges static client credentials for a bearer token.
type Authenticator interface {
	Exchange(ctx context.Context, clientID, clientSecret string) (Grant, error)
}

// Credentials identify the application against the auth endpoint.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

type credential struct {
	token     string
	expiresAt time.Time
}

// Cache keeps a single bearer token in memory and refreshes it once it expires.
type Cache struct {
	creds  Credentials
	auth   Authenticator
	logger *slog.Logger
	now    func() time.Time

	mu      sync.RWMutex
	current credential
	group   singleflight.Group
}

// NewCache builds a token cache for the given credentials.
func NewCache(creds Credentials, auth Authenticator, logger *slog.Logger) *Cache {
	return &Cache{
		creds:  creds,
		auth:   auth,
		logger: logger.With("component", "credential.cache"),
		now:    util.NowUTC,
	}
}

// Token returns the cached token while it is valid, otherwise performs one exchange.
func (c *Cache) Token(ctx context.Context) (string, error) {
	if token, ok := c.cached(); ok {
		return token, nil
	}

	v, err, _ := c.group.Do("token", func() (any, error) {
		// A concurrent caller may have refreshed while this one waited.
		if token, ok := c.cached(); ok {
			return token, nil
		}
		// The exchange is shared by every waiter, so one caller's cancellation must not fail it.
		// The authenticator's own timeout bounds it.
		return c.refresh(context.WithoutCancel(ctx))
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Invalidate drops the cached token so the next call performs an exchange.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.current = credential{}
	c.mu.Unlock()
}

func (c *Cache) cached() (string, bool) {
	c.mu.RLock()
	cur := c.current
	c.mu.RUnlock()
	if cur.token == "" || !c.now().Before(cur.expiresAt) {
		return "", false
	}
	return cur.token, true
}

func (c *Cache) refresh(ctx context.Context) (string, error) {
	requestedAt := c.now()
	grant, err := c.auth.Exchange(ctx, c.creds.ClientID, c.creds.ClientSecret)
	if err != nil {
		metrics.CredentialRefreshes.WithLabelValues("error").Inc()
		c.logger.Error("credential exchange failed", "error", err)
		if apperrors.IsCode(err, apperrors.CodeAuth) {
			return "", err
		}
		return "", apperrors.Wrap(apperrors.CodeAuth, "failed to authenticate with catalog api", err)
	}
	if strings.TrimSpace(grant.Token) == "" || grant.TTL <= 0 {
		metrics.CredentialRefreshes.WithLabelValues("malformed").Inc()
		c.logger.Error("credential exchange returned malformed grant", "ttl", grant.TTL, "has_token", grant.Token != "")
		return "", apperrors.Wrap(apperrors.CodeAuth, "auth endpoint returned a malformed token", nil)
	}

	c.mu.Lock()
	c.current = credential{token: grant.Token, expiresAt: requestedAt.Add(grant.TTL)}
	c.mu.Unlock()

	metrics.CredentialRefreshes.WithLabelValues("ok").Inc()
	c.logger.Debug("credential refreshed", "ttl", grant.TTL)
	return grant.Token, nil
}
