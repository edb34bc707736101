package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAppliedCredit(t *testing.T) {
	tests := []struct {
		name        string
		adjustments []*Adjustment
		expected    string
	}{
		{
			name:        "no adjustments",
			adjustments: nil,
			expected:    "0",
		},
		{
			name: "single adjustment",
			adjustments: []*Adjustment{
				{Type: AdjustmentTypeStoreCredit, Amount: decimal.NewFromInt(-30)},
			},
			expected: "30",
		},
		{
			name: "multiple rows summed defensively",
			adjustments: []*Adjustment{
				{Type: AdjustmentTypeStoreCredit, Amount: decimal.NewFromInt(-30)},
				{Type: AdjustmentTypeStoreCredit, Amount: decimal.NewFromInt(-10)},
			},
			expected: "40",
		},
		{
			name: "other types ignored",
			adjustments: []*Adjustment{
				{Type: AdjustmentType("promotion"), Amount: decimal.NewFromInt(-15)},
				{Type: AdjustmentTypeStoreCredit, Amount: decimal.NewFromInt(-30)},
			},
			expected: "30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AppliedCredit(tt.adjustments).String())
		})
	}
}

func TestAdjustmentValidate(t *testing.T) {
	adj := &Adjustment{
		ID:      "adj_1",
		OrderID: "ord_1",
		Type:    AdjustmentTypeStoreCredit,
		Label:   StoreCreditLabel,
		Amount:  decimal.NewFromInt(-30),
	}
	assert.NoError(t, adj.Validate())

	adj.Amount = decimal.NewFromInt(30)
	assert.Error(t, adj.Validate())

	adj.Amount = decimal.Zero
	assert.NoError(t, adj.Validate())
}
