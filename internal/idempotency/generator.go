package idempotency

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Scope separates idempotency keys across operation kinds
type Scope string

const (
	ScopeOrderCompletion Scope = "order_completion"
)

// Generator produces deterministic idempotency keys: the same scope and
// params always hash to the same key.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateKey builds a sha256 key from a scope and sorted params
func (g *Generator) GenerateKey(scope Scope, params map[string]interface{}) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(string(scope))
	for _, k := range keys {
		b.WriteString(fmt.Sprintf(":%s=%v", k, params[k]))
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
