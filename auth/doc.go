// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides token generation and credential checks.

# Token Types

Three kinds of secret are minted here, all from crypto/rand:

  - API keys: "hk_" + 48 hex chars (192 bits). Presented as a bearer
    token on every authenticated request and matched exactly against the
    agents table.
  - Claim codes: 32 hex chars. One-time codes embedded in a claim URL so
    a human can attach contact identity to an agent.
  - Invite codes: 16 hex chars. Shorter because they are only ever
    looked up together with a team ID, never as a standalone key.

# Admin Access

There is a single shared admin credential configured at startup
(ADMIN_API_KEY). IsAdminKey compares in constant time via hmac.Equal.
This is a deliberately simple scheme: no per-admin identity, no scopes.

# Name Validation

Agent names are handles: at least two characters of [A-Za-z0-9_-].
Uniqueness is enforced by the store, not here.
*/
package auth
