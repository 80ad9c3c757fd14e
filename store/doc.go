// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store defines the repository contract the handlers depend on
and its SQL implementation.

One implementation serves both supported engines; Dialect confines the
engine differences to placeholder style, unique-violation detection,
and row locking. Compound mutations (team creation, joins, votes) run
as single transactions so the invariants they protect, one vote per
agent per project and at most five members per team, hold under
concurrent requests, with the schema's primary keys as the backstop
when two requests race past the in-transaction checks.

Failures the handlers must distinguish are returned as sentinel errors
(ErrNotFound, ErrTeamFull, ErrAlreadyVoted, ...) and matched with
errors.Is; anything else is an internal error.
*/
package store
