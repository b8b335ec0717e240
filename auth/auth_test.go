// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateID(t *testing.T) {
	tests := []struct {
		name    string
		byteLen int
		wantLen int // hex encoded length = byteLen * 2
	}{
		{"8 bytes", 8, 16},
		{"16 bytes", 16, 32},
		{"24 bytes", 24, 48},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := GenerateID(tt.byteLen)
			require.NoError(t, err)
			assert.Len(t, id, tt.wantLen)
			assert.Regexp(t, `^[0-9a-f]+$`, id)
		})
	}

	id1, _ := GenerateID(16)
	id2, _ := GenerateID(16)
	assert.NotEqual(t, id1, id2, "duplicate IDs (extremely unlikely)")
}

func TestHashIP(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		salt string
	}{
		{"IPv4", "192.168.1.1", "ip-salt"},
		{"IPv6", "2001:0db8:85a3::8a2e:0370:7334", "ip-salt"},
		{"localhost", "127.0.0.1", "ip-salt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash := HashIP(tt.ip, tt.salt)

			assert.Len(t, hash, 16)
			assert.Equal(t, hash, HashIP(tt.ip, tt.salt), "deterministic")
		})
	}

	assert.NotEqual(t, HashIP("192.168.1.1", "salt"), HashIP("192.168.1.2", "salt"))
	assert.NotEqual(t, HashIP("192.168.1.1", "salt1"), HashIP("192.168.1.1", "salt2"))
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("Secret1!x")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret1!x", hash)
	assert.True(t, strings.HasPrefix(hash, "$2"), "bcrypt hash expected, got %q", hash)

	assert.NoError(t, CheckPassword(hash, "Secret1!x"))
	assert.ErrorIs(t, CheckPassword(hash, "Secret1!y"), ErrInvalidPassword)
}

func TestAccessToken(t *testing.T) {
	now := time.Now()

	token, err := IssueAccessToken("user-1", "ada@example.com", "secret", now)
	require.NoError(t, err)
	require.Equal(t, 2, strings.Count(token, "."), "not a JWT: %q", token)

	claims, err := ParseAccessToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "ada@example.com", claims.Email)

	_, err = ParseAccessToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired, _ := IssueAccessToken("user-1", "ada@example.com", "secret", now.Add(-2*AccessTokenTTL))
	_, err = ParseAccessToken(expired, "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// Benchmark tests
func BenchmarkGenerateID(b *testing.B) {
	for i := 0; i < b.N; i++ {
		GenerateID(16)
	}
}

func BenchmarkHashIP(b *testing.B) {
	for i := 0; i < b.N; i++ {
		HashIP("192.168.1.1", "salt")
	}
}
