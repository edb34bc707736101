package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFluentRecordFlattensKeyValues(t *testing.T) {
	record := fluentRecord("error", "order completion failed", []interface{}{
		"order_id", "ord_123",
		"attempts", 3,
	})

	assert.Equal(t, "error", record["level"])
	assert.Equal(t, "order completion failed", record["message"])
	assert.Equal(t, "ord_123", record["order_id"])
	assert.Equal(t, "3", record["attempts"])
	assert.NotEmpty(t, record["timestamp"])
}

func TestFluentRecordSkipsMalformedPairs(t *testing.T) {
	record := fluentRecord("info", "message", []interface{}{42, "value", "dangling"})

	// level, message and timestamp only; the non-string key and the
	// dangling trailing key are dropped
	assert.Len(t, record, 3)
	assert.Equal(t, "message", record["message"])
}
