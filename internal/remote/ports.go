package remote

import (
	"context"

	"ledger/internal/payload"
)

// Ports for outbound persistence adapters.
type (
	// Writer persists the full outbound collection under a user key,
	// replacing whatever was stored before.
	Writer interface {
		Write(ctx context.Context, userKey string, rows []payload.Row) error
	}

	// Reader loads the stored collection for a user key. found is false
	// when the key has never been written.
	Reader interface {
		Read(ctx context.Context, userKey string) (rows []payload.Row, found bool, err error)
	}

	// Backend is a read/write remote store.
	Backend interface {
		Writer
		Reader
	}
)

// SanitizeKey makes a user key safe for path-like storage segments by
// replacing dots with underscores.
func SanitizeKey(userKey string) string {
	out := []rune(userKey)
	for i, r := range out {
		if r == '.' {
			out[i] = '_'
		}
	}
	return string(out)
}
