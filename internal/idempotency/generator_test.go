package idempotency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateKeyIsDeterministic(t *testing.T) {
	g := NewGenerator()

	a := g.GenerateKey(ScopeOrderCompletion, map[string]interface{}{"order_id": "ord_1"})
	b := g.GenerateKey(ScopeOrderCompletion, map[string]interface{}{"order_id": "ord_1"})
	assert.Equal(t, a, b)
}

func TestGenerateKeyVariesByParams(t *testing.T) {
	g := NewGenerator()

	a := g.GenerateKey(ScopeOrderCompletion, map[string]interface{}{"order_id": "ord_1"})
	b := g.GenerateKey(ScopeOrderCompletion, map[string]interface{}{"order_id": "ord_2"})
	assert.NotEqual(t, a, b)
}

func TestGenerateKeyIgnoresParamOrder(t *testing.T) {
	g := NewGenerator()

	a := g.GenerateKey(ScopeOrderCompletion, map[string]interface{}{"order_id": "ord_1", "tenant_id": "t1"})
	b := g.GenerateKey(ScopeOrderCompletion, map[string]interface{}{"tenant_id": "t1", "order_id": "ord_1"})
	assert.Equal(t, a, b)
}
