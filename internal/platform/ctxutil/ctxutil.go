// Copyright (c) 2026 Lotsawa. All rights reserved.

// Package ctxutil stores and retrieves per-request values in [context.Context]:
// the correlation id, the request-scoped logger and the caller's verified claims.
//
// Keys are of an unexported type, so values set here cannot collide with keys
// from other packages.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/lotsawa/canon/internal/platform/sec"
)

type key int

const (
	keyRequestID key = iota
	keyLogger
	keyClaims
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, keyRequestID, id)
}

// GetRequestID retrieves the request ID from the context, or "".
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(keyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, keyLogger, logger)
}

// GetLogger retrieves the logger from the context, falling back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(keyLogger).(*slog.Logger)
	if !ok || logger == nil {
		return slog.Default()
	}
	return logger
}

// # Identity

// WithClaims returns a new context carrying the caller's verified claims.
func WithClaims(ctx context.Context, claims *sec.Claims) context.Context {
	return context.WithValue(ctx, keyClaims, claims)
}

// GetClaims retrieves the caller's claims, or nil for anonymous requests.
func GetClaims(ctx context.Context) *sec.Claims {
	claims, _ := ctx.Value(keyClaims).(*sec.Claims)
	return claims
}
