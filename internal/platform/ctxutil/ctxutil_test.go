// Copyright (c) 2026 Lotsawa. All rights reserved.

package ctxutil_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotsawa/canon/internal/platform/ctxutil"
	"github.com/lotsawa/canon/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	ctx = ctxutil.WithRequestID(ctx, "req-42")
	assert.Equal(t, "req-42", ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies the fallback and the injected logger.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Claims verifies that claims round-trip through the context.
*/
func TestContext_Claims(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, ctxutil.GetClaims(ctx))

	ctx = ctxutil.WithClaims(ctx, &sec.Claims{UserID: "u-1", Role: string(sec.RoleEditor)})
	claims := ctxutil.GetClaims(ctx)

	require.NotNil(t, claims)
	assert.Equal(t, sec.RoleEditor, claims.UserRole())
}
