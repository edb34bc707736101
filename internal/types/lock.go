package types

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
)

// LockScope represents the scope of a database advisory lock
type LockScope string

const (
	// LockScopeCreditGrant serializes drains of a customer's credit grants
	LockScopeCreditGrant LockScope = "credit_grant"

	DefaultLockTimeout = 30 * time.Second
)

// LockRequest describes an advisory lock to acquire inside a transaction
type LockRequest struct {
	Key     string
	Timeout *time.Duration
}

func (r LockRequest) GetTimeout() time.Duration {
	if r.Timeout == nil {
		return DefaultLockTimeout
	}
	return *r.Timeout
}

// GenerateLockKey generates a deterministic lock key from a scope and params.
// Tenant and environment IDs are taken from context so locks never cross
// tenant boundaries. The key is a plain string; Postgres hashes it internally
// via hashtext().
func GenerateLockKey(ctx context.Context, scope LockScope, params map[string]interface{}) string {
	merged := make(map[string]interface{})

	if tenantID := GetTenantID(ctx); tenantID != "" {
		merged["tenant_id"] = tenantID
	}
	if environmentID := GetEnvironmentID(ctx); environmentID != "" {
		merged["environment_id"] = environmentID
	}
	for k, v := range params {
		merged[k] = v
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(string(scope))
	for _, k := range keys {
		b.WriteString(fmt.Sprintf(":%s=%v", k, merged[k]))
	}
	return b.String()
}
