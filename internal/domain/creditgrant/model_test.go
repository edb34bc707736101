package creditgrant

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCreditGrantValidate(t *testing.T) {
	grant := &CreditGrant{
		ID:              "grant_1",
		CustomerID:      "cust_1",
		Currency:        "usd",
		OriginalAmount:  decimal.NewFromInt(50),
		RemainingAmount: decimal.NewFromInt(50),
	}
	assert.NoError(t, grant.Validate())

	grant.RemainingAmount = decimal.NewFromInt(60)
	assert.Error(t, grant.Validate(), "remaining may not exceed original")

	grant.RemainingAmount = decimal.NewFromInt(-1)
	assert.Error(t, grant.Validate())

	grant.RemainingAmount = decimal.Zero
	assert.NoError(t, grant.Validate())
}

func TestAvailableTotal(t *testing.T) {
	grants := []*CreditGrant{
		{RemainingAmount: decimal.NewFromInt(30)},
		{RemainingAmount: decimal.Zero},
		{RemainingAmount: decimal.NewFromFloat(10.50)},
	}
	assert.Equal(t, "40.5", AvailableTotal(grants).String())
	assert.True(t, AvailableTotal(nil).IsZero())
}
