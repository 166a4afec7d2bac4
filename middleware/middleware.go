// Package middleware protects net/http handlers with tokens signed by
// github.com/opticore/jwt.
//
// The verified payload is stored in the request context, see Claims.
// When Config.Refresh is enabled an expired but authentic token does not
// fail the request: a fresh token is signed and sent back to the client
// in the RefreshHeader response header.
//
// Usage:
//
//	verify := middleware.New(middleware.Config{
//	    Secret:  []byte("secret"),
//	    Refresh: true,
//	    Metrics: middleware.NewMetrics(prometheus.DefaultRegisterer),
//	})
//	http.Handle("/protected", verify(protectedHandler))
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/opticore/jwt"
	"github.com/sirupsen/logrus"
)

// RefreshHeader is the response header carrying a refreshed token.
const RefreshHeader = "X-Refreshed-Token"

// RequestIDHeader is read to correlate log entries, one is generated when missing.
const RequestIDHeader = "X-Request-Id"

// ErrorHandler writes the response of a rejected request.
// The result is nil when no token was found.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, result *jwt.VerifyResult)

// Config configures the middleware. Only Secret is required.
type Config struct {
	// Secret verifies incoming tokens.
	Secret []byte
	// SigningSecret signs refreshed tokens, defaults to Secret.
	SigningSecret []byte
	// Algorithm is the header algorithm of refreshed tokens, defaults to jwt.HS256.
	Algorithm string
	// Hash defaults to jwt.SHA256.
	Hash jwt.Hash

	VerifyOptions jwt.VerifyOptions
	// SignOptions apply to refreshed tokens.
	SignOptions jwt.SignOptions

	// Refresh enables the transparent refresh of expired tokens.
	Refresh bool
	// RefreshTTL is the lifetime of a refreshed token,
	// zero means jwt.DefaultRefreshTTL.
	RefreshTTL time.Duration

	// Extractors are tried in order, defaults to FromHeader.
	Extractors []TokenExtractor
	// ErrorHandler defaults to a 401 JSON response describing the rejection.
	ErrorHandler ErrorHandler
	// Logger defaults to the logrus standard logger.
	Logger logrus.FieldLogger
	// Metrics is optional.
	Metrics *Metrics
}

type contextKey struct{}

// Claims returns the verified payload stored by the middleware.
func Claims(ctx context.Context) (jwt.Map, bool) {
	claims, ok := ctx.Value(contextKey{}).(jwt.Map)
	return claims, ok
}

// WithClaims returns a copy of "ctx" carrying "claims", see Claims.
func WithClaims(ctx context.Context, claims jwt.Map) context.Context {
	return context.WithValue(ctx, contextKey{}, claims)
}

// New returns a middleware which verifies the token of every request.
// Requests without a valid token never reach "next".
func New(cfg Config) func(http.Handler) http.Handler {
	if cfg.SigningSecret == nil {
		cfg.SigningSecret = cfg.Secret
	}
	if cfg.Algorithm == "" {
		cfg.Algorithm = jwt.HS256
	}
	if cfg.Hash == nil {
		cfg.Hash = jwt.SHA256
	}
	if len(cfg.Extractors) == 0 {
		cfg.Extractors = []TokenExtractor{FromHeader}
	}
	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = DefaultErrorHandler
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			log := cfg.Logger.WithFields(logrus.Fields{
				"request_id": requestID,
				"method":     r.Method,
				"path":       r.URL.Path,
			})

			token := extract(r, cfg.Extractors)
			if token == "" {
				log.Debug("Missing token")
				cfg.Metrics.request(OutcomeMissing)
				cfg.ErrorHandler(w, r, nil)
				return
			}

			start := time.Now()
			result, err := jwt.Verify(token, cfg.Secret, cfg.Hash, cfg.VerifyOptions)
			cfg.Metrics.observe(time.Since(start).Seconds())
			if err != nil {
				log.WithError(err).Error("Token verification misconfigured")
				cfg.Metrics.request(OutcomeError)
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			switch {
			case result.Valid():
				cfg.Metrics.request(result.Status.String())
				next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), result.Payload)))
				return
			case result.Expired() && cfg.Refresh:
				claims, newToken, err := refresh(cfg, token)
				if err != nil {
					log.WithError(err).Error("Token refresh misconfigured")
					cfg.Metrics.request(OutcomeError)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
				if newToken != "" {
					log.WithField("sub", claims[jwt.ClaimSubject]).Info("Expired token refreshed")
					cfg.Metrics.request(OutcomeRefreshed)
					cfg.Metrics.refreshed()
					w.Header().Set(RefreshHeader, newToken)
					next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
					return
				}
			}

			log.WithFields(logrus.Fields{
				"status": result.Status.String(),
				"reason": result.Kind.String(),
			}).Debug("Token rejected")
			cfg.Metrics.request(result.Status.String())
			cfg.Metrics.rejection(result.Kind.String())
			cfg.ErrorHandler(w, r, result)
		})
	}
}

func refresh(cfg Config, token string) (jwt.Map, string, error) {
	var expiresAt int64
	if cfg.RefreshTTL > 0 {
		expiresAt = jwt.Clock().Add(cfg.RefreshTTL).Unix()
	}

	newToken, err := jwt.Refresh(token, cfg.SigningSecret, cfg.Secret, cfg.Algorithm, cfg.Hash,
		cfg.SignOptions, cfg.VerifyOptions, expiresAt)
	if err != nil || newToken == "" {
		return nil, "", err
	}

	_, claims, err := jwt.Decode(newToken)
	if err != nil {
		return nil, "", err
	}

	return claims, newToken, nil
}

// DefaultErrorHandler responds with 401 and a JSON description of the rejection.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, result *jwt.VerifyResult) {
	body := struct {
		Status  string `json:"status"`
		Reason  string `json:"reason,omitempty"`
		Message string `json:"message"`
	}{
		Status:  "missing",
		Message: "a bearer token is required",
	}
	if result != nil {
		body.Status = result.Status.String()
		body.Reason = result.Kind.String()
		body.Message = result.Message
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("WWW-Authenticate", `Bearer realm="restricted"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(body)
}
