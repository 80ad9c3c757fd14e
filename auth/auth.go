// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
)

// APIKeyPrefix marks agent API keys so they are recognizable in logs
// and pasted configs.
const APIKeyPrefix = "hk_"

var agentNameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// randomHex returns byteLen random bytes hex-encoded.
func randomHex(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateAPIKey creates a prefixed agent API key (192 bits of entropy)
func GenerateAPIKey() (string, error) {
	s, err := randomHex(24)
	if err != nil {
		return "", err
	}
	return APIKeyPrefix + s, nil
}

// GenerateClaimCode creates the one-time code a human uses to claim an agent
func GenerateClaimCode() (string, error) {
	return randomHex(16)
}

// GenerateInviteCode creates the shared secret gating team joins.
// It is looked up together with the team ID, never alone.
func GenerateInviteCode() (string, error) {
	return randomHex(8)
}

// ValidAgentName reports whether a name is acceptable for registration:
// at least 2 characters, alphanumeric plus underscore and hyphen.
func ValidAgentName(name string) bool {
	return len(name) >= 2 && agentNameRe.MatchString(name)
}

// IsAdminKey compares a presented token against the configured admin
// secret in constant time. Empty secrets never match.
func IsAdminKey(token, adminKey string) bool {
	if adminKey == "" {
		return false
	}
	return hmac.Equal([]byte(token), []byte(adminKey))
}
