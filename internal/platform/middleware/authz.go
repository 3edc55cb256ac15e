// Copyright (c) 2026 Lotsawa. All rights reserved.

package middleware

import (
	"net/http"
	"strings"

	"github.com/lotsawa/canon/internal/platform/apperr"
	"github.com/lotsawa/canon/internal/platform/constants"
	"github.com/lotsawa/canon/internal/platform/ctxutil"
	"github.com/lotsawa/canon/internal/platform/respond"
	"github.com/lotsawa/canon/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// The identity provider is an external collaborator; the middleware only
// needs something that turns a bearer token into verified claims.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.Claims, error)
}

// Authenticate extracts and verifies the bearer token from the Authorization header.
//
// # Flow
//  1. No header: the request proceeds as anonymous.
//  2. Malformed header or no verifier configured: 401.
//  3. Valid token: [*sec.Claims] are stored in the request context.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				respond.Error(writer, request, apperr.AuthRequired("Invalid authorization format"))
				return
			}

			if verifier == nil {
				respond.Error(writer, request, apperr.AuthRequired("Token verification is not configured"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyToken(parts[1])
			if err != nil {
				respond.Error(writer, request, apperr.AuthRequired("Invalid or expired token"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			next.ServeHTTP(writer, request.WithContext(ctxutil.WithClaims(request.Context(), claims)))
		})
	}
}

// RequireRole blocks requests whose caller does not hold at least role.
//
// Must be registered after [Authenticate]. Anonymous callers get 401, callers
// with a lower role get 403.
func RequireRole(role sec.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			claims := ctxutil.GetClaims(request.Context())

			if claims == nil {
				respond.Error(writer, request, apperr.AuthRequired("Authentication required"))
				return
			}

			if !claims.UserRole().AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
