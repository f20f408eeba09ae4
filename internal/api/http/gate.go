package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/hydrous-ai/hydrous/internal/api/service"
	"github.com/hydrous-ai/hydrous/pkg/httpx"
	"github.com/hydrous-ai/hydrous/pkg/slogx"
)

// exemptPrefixes are served without a token. Matching is prefix-based so
// subpaths of the docs UI stay reachable.
var exemptPrefixes = []string{
	"/api/auth/register",
	"/api/auth/login",
	"/api/auth/forgot-password",
	"/api/auth/reset-password",
	"/api/auth/verify-reset-token",
	"/api/health",
	"/health",
	"/alb-health",
	"/docs",
	"/openapi.json",
	"/redoc",
}

// authError is the rejection payload shape every 401 uses.
type authError struct {
	Detail    string `json:"detail"`
	ErrorCode string `json:"error_code"`
}

const (
	codeMissingToken      = "MISSING_TOKEN"
	codeInvalidToken      = "INVALID_TOKEN"
	codeVerificationError = "TOKEN_VERIFICATION_ERROR"
)

// AuthGate verifies the bearer token on every non-exempt request and attaches
// the verified identity, the caller's user id, and the raw token to the
// request context. The gate is a
// single decision point: a request is either exempt, verified, or rejected
// with a 401 before any handler runs.
func AuthGate(auth *service.AuthService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// CORS preflights never carry credentials.
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			if isExemptPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw, ok := bearerToken(r)
			if !ok {
				writeAuthError(w, authError{
					Detail:    "Not authenticated",
					ErrorCode: codeMissingToken,
				})
				return
			}

			identity, err := auth.VerifyToken(ctx, raw)
			if err != nil {
				switch {
				case errors.Is(err, service.ErrRevoked),
					errors.Is(err, service.ErrExpired),
					errors.Is(err, service.ErrInvalidSignature),
					errors.Is(err, service.ErrMalformedSubject),
					errors.Is(err, service.ErrUnknownSubject):
					writeAuthError(w, authError{
						Detail:    "Invalid authentication credentials",
						ErrorCode: codeInvalidToken,
					})
				default:
					// Infrastructure failure, not a bad token.
					log.Error("token verification failed", "err", err)
					writeAuthError(w, authError{
						Detail:    "Authentication service error",
						ErrorCode: codeVerificationError,
					})
				}
				return
			}

			ctx = withIdentity(ctx, identity)
			ctx = httpx.WithUserID(ctx, identity.ID)
			ctx = httpx.WithToken(ctx, raw)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func isExemptPath(path string) bool {
	for _, prefix := range exemptPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// bearerToken extracts the token from "Authorization: Bearer <token>". Any
// other scheme reads as no credentials at all.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}

// writeAuthError emits the 401 with permissive CORS headers so browser
// clients can read the rejection body even when the CORS middleware has not
// run for this response.
func writeAuthError(w http.ResponseWriter, e authError) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "*")
	w.Header().Set("Access-Control-Allow-Headers", "*")
	w.Header().Set("WWW-Authenticate", "Bearer")
	httpx.WriteJSON(w, http.StatusUnauthorized, e)
}
