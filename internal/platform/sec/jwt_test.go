// Copyright (c) 2026 Lotsawa. All rights reserved.

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotsawa/canon/internal/platform/sec"
)

func signToken(t *testing.T, key *rsa.PrivateKey, issuer, role string, ttl time.Duration) string {
	t.Helper()

	now := time.Now()
	claims := sec.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		UserID: "user-1",
		Role:   role,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

/*
TestTokenVerifier covers the accepted and rejected token shapes.
*/
func TestTokenVerifier(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	verifier := sec.NewTokenVerifierFromKey(&key.PublicKey, "canon.app")

	t.Run("valid_editor", func(t *testing.T) {
		claims, err := verifier.VerifyToken(signToken(t, key, "canon.app", "editor", time.Hour))
		require.NoError(t, err)
		assert.Equal(t, sec.RoleEditor, claims.UserRole())
	})

	t.Run("expired", func(t *testing.T) {
		_, err := verifier.VerifyToken(signToken(t, key, "canon.app", "admin", -time.Minute))
		assert.Error(t, err)
	})

	t.Run("wrong_issuer", func(t *testing.T) {
		_, err := verifier.VerifyToken(signToken(t, key, "elsewhere", "admin", time.Hour))
		assert.Error(t, err)
	})

	t.Run("unknown_role", func(t *testing.T) {
		_, err := verifier.VerifyToken(signToken(t, key, "canon.app", "superuser", time.Hour))
		assert.Error(t, err)
	})

	t.Run("foreign_key", func(t *testing.T) {
		other, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		_, err = verifier.VerifyToken(signToken(t, other, "canon.app", "admin", time.Hour))
		assert.Error(t, err)
	})
}

/*
TestUserRole_AtLeast pins the role hierarchy.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleEditor))
	assert.True(t, sec.RoleEditor.AtLeast(sec.RoleEditor))
	assert.False(t, sec.RoleViewer.AtLeast(sec.RoleEditor))
	assert.False(t, sec.UserRole("").AtLeast(sec.UserRole("")))
}
