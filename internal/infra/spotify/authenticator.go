package spotify

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/yanqian/weather-beats/internal/domain/credential"
	apperrors "github.com/yanqian/weather-beats/pkg/errors"
	"github.com/yanqian/weather-beats/pkg/metrics"
)

const defaultTokenURL = "https://accounts.spotify.com/api/token"

// Authenticator performs the client-credentials grant against the Spotify accounts service.
type Authenticator struct {
	tokenURL   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewAuthenticator builds an authenticator. A zero timeout defaults to 10 seconds.
func NewAuthenticator(tokenURL string, timeout time.Duration, logger *slog.Logger) *Authenticator {
	endpoint := strings.TrimSpace(tokenURL)
	if endpoint == "" {
		endpoint = defaultTokenURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Authenticator{
		tokenURL:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "spotify.authenticator"),
	}
}

// Exchange trades the client id and secret for a bearer token and its remaining lifetime.
func (a *Authenticator) Exchange(ctx context.Context, clientID, clientSecret string) (credential.Grant, error) {
	if strings.TrimSpace(clientID) == "" || strings.TrimSpace(clientSecret) == "" {
		return credential.Grant{}, apperrors.Wrap(apperrors.CodeAuth, "spotify client credentials are not configured", nil)
	}
	cfg := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     a.tokenURL,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}

	start := time.Now()
	defer metrics.ObserveUpstream("spotify", "token", start)

	tok, err := cfg.Token(context.WithValue(ctx, oauth2.HTTPClient, a.httpClient))
	if err != nil {
		return credential.Grant{}, apperrors.Wrap(apperrors.CodeAuth, "spotify token exchange failed", err)
	}

	var ttl time.Duration
	if !tok.Expiry.IsZero() {
		ttl = time.Until(tok.Expiry)
	}
	a.logger.Debug("spotify token issued", "token_type", tok.TokenType, "ttl", ttl)
	return credential.Grant{Token: tok.AccessToken, TTL: ttl}, nil
}

var _ credential.Authenticator = (*Authenticator)(nil)
