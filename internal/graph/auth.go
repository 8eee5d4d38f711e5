package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jobkeeper/application-tracker/internal/config"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Authenticator acquires Microsoft identity platform tokens with the
// device code flow and keeps them in a file cache, so interactive sign-in
// is only needed once per cache lifetime.
type Authenticator struct {
	oauthConfig oauth2.Config
	cachePath   string
}

func NewAuthenticator(cfg *config.Config) *Authenticator {
	// offline_access is what gets us a refresh token back
	scopes := append(append([]string{}, cfg.Graph.Scopes...), "offline_access")

	return &Authenticator{
		oauthConfig: oauth2.Config{
			ClientID: cfg.Graph.ClientID,
			Endpoint: oauth2.Endpoint{
				DeviceAuthURL: cfg.Graph.Authority + "/oauth2/v2.0/devicecode",
				TokenURL:      cfg.Graph.Authority + "/oauth2/v2.0/token",
			},
			Scopes: scopes,
		},
		cachePath: cfg.Graph.TokenCachePath,
	}
}

// Token returns a valid access token, refreshing or running the device
// code flow as needed. Refreshed tokens are written back to the cache.
func (a *Authenticator) Token(ctx context.Context) (*oauth2.Token, error) {
	cached, err := a.loadCache()
	if err != nil {
		zap.S().Named("graph").Warnf("unable to read token cache: %v", err)
	}

	if cached != nil {
		token, err := a.oauthConfig.TokenSource(ctx, cached).Token()
		if err == nil {
			if token.AccessToken != cached.AccessToken {
				if err := a.saveCache(token); err != nil {
					zap.S().Named("graph").Warnf("unable to persist refreshed token: %v", err)
				}
			}
			return token, nil
		}
		zap.S().Named("graph").Infof("cached token unusable, starting device code flow: %v", err)
	}

	return a.deviceCodeFlow(ctx)
}

// TokenSource adapts the authenticator for use with oauth2 transports.
func (a *Authenticator) TokenSource(ctx context.Context) oauth2.TokenSource {
	return oauth2.ReuseTokenSource(nil, &authTokenSource{auth: a, ctx: ctx})
}

func (a *Authenticator) deviceCodeFlow(ctx context.Context) (*oauth2.Token, error) {
	deviceAuth, err := a.oauthConfig.DeviceAuth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start device code flow: %w", err)
	}

	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("AUTHENTICATION REQUIRED")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("To sign in, open %s and enter the code %s\n", deviceAuth.VerificationURI, deviceAuth.UserCode)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()

	token, err := a.oauthConfig.DeviceAccessToken(ctx, deviceAuth)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}

	if err := a.saveCache(token); err != nil {
		zap.S().Named("graph").Warnf("unable to persist token: %v", err)
	}
	zap.S().Named("graph").Info("authentication successful")
	return token, nil
}

func (a *Authenticator) loadCache() (*oauth2.Token, error) {
	data, err := os.ReadFile(a.cachePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

func (a *Authenticator) saveCache(token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(a.cachePath), 0o700); err != nil {
		return err
	}
	return os.WriteFile(a.cachePath, data, 0o600)
}

type authTokenSource struct {
	auth *Authenticator
	ctx  context.Context
}

func (s *authTokenSource) Token() (*oauth2.Token, error) {
	return s.auth.Token(s.ctx)
}
