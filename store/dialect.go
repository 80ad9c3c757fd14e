// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"
	sqlite "modernc.org/sqlite"
)

// Dialect captures the per-engine differences the store has to know
// about. Queries are written once with ? placeholders; everything else
// is identical across engines.
type Dialect int

const (
	DialectSQLite Dialect = iota
	DialectPostgres
)

// DialectFor maps a configured database type to its dialect.
func DialectFor(databaseType string) (Dialect, error) {
	switch databaseType {
	case "sqlite":
		return DialectSQLite, nil
	case "postgres":
		return DialectPostgres, nil
	default:
		return 0, fmt.Errorf("unsupported database type %q", databaseType)
	}
}

// Rebind converts ? placeholders to the engine's positional form.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		} else {
			b.WriteByte(query[i])
		}
	}
	return b.String()
}

// SQLite primary result code for constraint violations; extended codes
// put it in the low byte.
const sqliteConstraint = 19

// IsUniqueViolation reports whether err is a uniqueness or primary key
// constraint violation from either engine. This is the race-safe
// backstop behind every check-then-insert in the store.
func (d Dialect) IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		return sqErr.Code()&0xff == sqliteConstraint
	}

	return false
}

// RowLockSuffix returns the clause that locks a selected row for the
// rest of the transaction. SQLite has no FOR UPDATE; its single-writer
// transactions serialize the same check-then-insert on their own.
func (d Dialect) RowLockSuffix() string {
	if d == DialectPostgres {
		return " FOR UPDATE"
	}
	return ""
}
