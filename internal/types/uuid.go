package types

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

const (
	UUID_PREFIX_CUSTOMER     = "cust"
	UUID_PREFIX_ORDER        = "ord"
	UUID_PREFIX_ADJUSTMENT   = "adj"
	UUID_PREFIX_CREDIT_GRANT = "grant"
)

// GenerateUUID returns a lowercase ULID, time-ordered and collision safe
func GenerateUUID() string {
	return strings.ToLower(ulid.MustNew(ulid.Timestamp(time.Now().UTC()), rand.Reader).String())
}

// GenerateUUIDWithPrefix returns a ULID prefixed with the entity short code,
// e.g. "grant_01hq3..."
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return prefix + "_" + GenerateUUID()
}
