// Package account calls the account service that owns sign-in. This API
// never verifies credentials itself; it introspects bearer tokens and caches
// the resulting principal for a short window.
package account

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"golang.org/x/sync/singleflight"

	"github.com/gaeliza/gaeliza-api/internal/domain/user"
	"github.com/gaeliza/gaeliza-api/internal/platform/logging"
	"github.com/gaeliza/gaeliza-api/internal/platform/resilience"
	"github.com/gaeliza/gaeliza-api/internal/usecase"
)

const introspectPath = "/v1/tokens/introspect"

var errAccountTransient = crerr.New("account service transient failure")

type VerifierConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	CacheTTL       time.Duration
	CacheSize      int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Verifier exchanges bearer tokens for principals.
type Verifier struct {
	httpClient     *http.Client
	baseURL        string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	cache          *principalCache
	flight         singleflight.Group
}

func NewVerifier(cfg VerifierConfig) *Verifier {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 10 * time.Second
	}

	cacheTTL := cfg.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	cacheSize := cfg.CacheSize
	if cacheSize <= 0 {
		cacheSize = 1024
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Verifier{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
		cache:          newPrincipalCache(cacheTTL, cacheSize),
	}
}

type introspectResponse struct {
	Active   bool   `json:"active"`
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Verify resolves the principal behind a bearer token. Tokens rejected by the
// account service map to ErrUnauthorized; transport trouble maps to
// ErrDependencyUnavailable so callers can tell the two apart.
func (v *Verifier) Verify(ctx context.Context, token string) (user.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return user.Principal{}, fmt.Errorf("%w: empty bearer token", usecase.ErrUnauthorized)
	}
	if v.baseURL == "" {
		return user.Principal{}, fmt.Errorf("%w: account service url is not configured", usecase.ErrDependencyUnavailable)
	}

	cacheKey := hashToken(token)
	if principal, ok := v.cache.Get(cacheKey); ok {
		return principal, nil
	}

	value, err, _ := v.flight.Do(cacheKey, func() (any, error) {
		if principal, ok := v.cache.Get(cacheKey); ok {
			return principal, nil
		}

		principal, err := v.introspect(ctx, token)
		if err != nil {
			return user.Principal{}, err
		}
		v.cache.Set(cacheKey, principal)
		return principal, nil
	})
	if err != nil {
		return user.Principal{}, err
	}

	return value.(user.Principal), nil
}

func (v *Verifier) introspect(ctx context.Context, token string) (user.Principal, error) {
	if v.circuitEnabled {
		if err := v.breaker.Allow(); err != nil {
			return user.Principal{}, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
		}
	}

	principal, err := v.call(ctx, token)
	if v.circuitEnabled {
		if stderrors.Is(err, errAccountTransient) {
			v.breaker.RecordFailure()
		} else {
			v.breaker.RecordSuccess()
		}
	}
	if err != nil {
		if stderrors.Is(err, errAccountTransient) {
			return user.Principal{}, fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
		}
		return user.Principal{}, err
	}

	return principal, nil
}

func (v *Verifier) call(ctx context.Context, token string) (user.Principal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+introspectPath, nil)
	if err != nil {
		return user.Principal{}, crerr.Wrap(err, "create introspect request")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return user.Principal{}, crerr.WithSecondaryError(errAccountTransient, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return user.Principal{}, crerr.WithSecondaryError(errAccountTransient, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return user.Principal{}, fmt.Errorf("%w: token rejected", usecase.ErrUnauthorized)
	case resp.StatusCode >= 500:
		v.logger.WarnContext(ctx, "account service error", "status", resp.StatusCode)
		return user.Principal{}, crerr.Wrapf(errAccountTransient, "status %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return user.Principal{}, crerr.Newf("unexpected introspect status %d", resp.StatusCode)
	}

	var parsed introspectResponse
	if err := sonic.Unmarshal(body, &parsed); err != nil {
		return user.Principal{}, crerr.Wrap(err, "decode introspect response")
	}
	if !parsed.Active || parsed.UserID == "" {
		return user.Principal{}, fmt.Errorf("%w: token inactive", usecase.ErrUnauthorized)
	}

	return user.Principal{UserID: parsed.UserID, Username: parsed.Username}, nil
}
