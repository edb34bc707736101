package service

import (
	"testing"

	"github.com/flexcart/flexcart/internal/domain/creditgrant"
	"github.com/flexcart/flexcart/internal/domain/customer"
	"github.com/flexcart/flexcart/internal/domain/order"
	ierr "github.com/flexcart/flexcart/internal/errors"
	"github.com/flexcart/flexcart/internal/testutil"
	"github.com/flexcart/flexcart/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type StoreCreditServiceTestSuite struct {
	testutil.BaseServiceTestSuite
	storeCreditService StoreCreditService
	lifecycleService   OrderLifecycleService
	testData           struct {
		customer *customer.Customer
		order    *order.Order
	}
}

func TestStoreCreditService(t *testing.T) {
	suite.Run(t, new(StoreCreditServiceTestSuite))
}

func (s *StoreCreditServiceTestSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.setupServices()
	s.setupTestData()
}

func (s *StoreCreditServiceTestSuite) setupServices() {
	params := ServiceParams{
		Logger:          s.GetLogger(),
		Config:          s.GetConfig(),
		DB:              s.GetDB(),
		CustomerRepo:    s.GetStores().CustomerRepo,
		OrderRepo:       s.GetStores().OrderRepo,
		AdjustmentRepo:  s.GetStores().AdjustmentRepo,
		CreditGrantRepo: s.GetStores().CreditGrantRepo,
	}
	s.storeCreditService = NewStoreCreditService(params)
	s.lifecycleService = NewOrderLifecycleService(params)
}

func (s *StoreCreditServiceTestSuite) setupTestData() {
	s.testData.customer = &customer.Customer{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		ExternalID: "ext_cust_test_123",
		Name:       "Test Customer",
		Email:      "test@example.com",
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().CustomerRepo.Create(s.GetContext(), s.testData.customer))

	s.testData.order = &order.Order{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ORDER),
		CustomerID: s.testData.customer.ID,
		Currency:   "usd",
		Subtotal:   decimal.NewFromInt(100),
		Total:      decimal.NewFromInt(100),
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().OrderRepo.Create(s.GetContext(), s.testData.order))
}

func (s *StoreCreditServiceTestSuite) createGrant(amount decimal.Decimal) *creditgrant.CreditGrant {
	grant := &creditgrant.CreditGrant{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CREDIT_GRANT),
		CustomerID:      s.testData.customer.ID,
		Currency:        "usd",
		OriginalAmount:  amount,
		RemainingAmount: amount,
		BaseModel:       types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().CreditGrantRepo.Create(s.GetContext(), grant))
	return grant
}

func (s *StoreCreditServiceTestSuite) appliedCredit() decimal.Decimal {
	applied, err := s.storeCreditService.AppliedCredit(s.GetContext(), s.testData.order)
	s.NoError(err)
	return applied
}

func (s *StoreCreditServiceTestSuite) TestReconcileClampsToAvailableCredit() {
	s.createGrant(decimal.NewFromInt(50))

	err := s.storeCreditService.Reconcile(s.GetContext(), s.testData.order, decimal.NewFromInt(60))
	s.NoError(err)

	s.True(s.appliedCredit().Equal(decimal.NewFromInt(50)))
	s.True(s.testData.order.Total.Equal(decimal.NewFromInt(50)))
}

func (s *StoreCreditServiceTestSuite) TestReconcileClampsToOrderTotal() {
	s.createGrant(decimal.NewFromInt(500))

	err := s.storeCreditService.Reconcile(s.GetContext(), s.testData.order, decimal.NewFromInt(200))
	s.NoError(err)

	// credit cannot exceed what the order costs without it
	s.True(s.appliedCredit().Equal(decimal.NewFromInt(100)))
	s.True(s.testData.order.Total.IsZero())
}

func (s *StoreCreditServiceTestSuite) TestReconcileHonorsRequestedAmount() {
	s.createGrant(decimal.NewFromInt(500))

	err := s.storeCreditService.Reconcile(s.GetContext(), s.testData.order, decimal.NewFromInt(30))
	s.NoError(err)

	s.True(s.appliedCredit().Equal(decimal.NewFromInt(30)))
	s.True(s.testData.order.Total.Equal(decimal.NewFromInt(70)))
}

func (s *StoreCreditServiceTestSuite) TestReconcileIsIdempotent() {
	s.createGrant(decimal.NewFromInt(50))

	for i := 0; i < 3; i++ {
		err := s.storeCreditService.Reconcile(s.GetContext(), s.testData.order, decimal.NewFromInt(60))
		s.NoError(err)
	}

	// repeated reconciliation must not let the discount chase its own tail:
	// the clamp adds the current applied credit back to the total before
	// comparing
	s.True(s.appliedCredit().Equal(decimal.NewFromInt(50)))
	s.True(s.testData.order.Total.Equal(decimal.NewFromInt(50)))
}

func (s *StoreCreditServiceTestSuite) TestReconcileKeepsSingleAdjustment() {
	s.createGrant(decimal.NewFromInt(50))

	amounts := []int64{10, 40, 25}
	for _, amount := range amounts {
		err := s.storeCreditService.Reconcile(s.GetContext(), s.testData.order, decimal.NewFromInt(amount))
		s.NoError(err)
	}

	adjustments, err := s.GetStores().AdjustmentRepo.ListByOrder(s.GetContext(), s.testData.order.ID, order.AdjustmentTypeStoreCredit)
	s.NoError(err)
	s.Len(adjustments, 1)
	s.True(adjustments[0].Amount.Equal(decimal.NewFromInt(-25)))
	s.Equal(order.StoreCreditLabel, adjustments[0].Label)
}

func (s *StoreCreditServiceTestSuite) TestReconcileRemovesAdjustmentWhenZeroOrNegative() {
	s.createGrant(decimal.NewFromInt(50))

	s.NoError(s.storeCreditService.Reconcile(s.GetContext(), s.testData.order, decimal.NewFromInt(30)))
	s.True(s.appliedCredit().Equal(decimal.NewFromInt(30)))

	s.NoError(s.storeCreditService.Reconcile(s.GetContext(), s.testData.order, decimal.Zero))
	s.True(s.appliedCredit().IsZero())
	s.True(s.testData.order.Total.Equal(decimal.NewFromInt(100)))

	s.NoError(s.storeCreditService.Reconcile(s.GetContext(), s.testData.order, decimal.NewFromInt(-5)))
	s.True(s.appliedCredit().IsZero())
}

func (s *StoreCreditServiceTestSuite) TestReconcileWithNoCreditAvailable() {
	// no grants at all: requesting credit is not an error, it just clamps to zero
	err := s.storeCreditService.Reconcile(s.GetContext(), s.testData.order, decimal.NewFromInt(30))
	s.NoError(err)
	s.True(s.appliedCredit().IsZero())
}

func (s *StoreCreditServiceTestSuite) TestReconcileSkipsOrderWithoutCustomer() {
	draft := &order.Order{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ORDER),
		Currency:  "usd",
		Subtotal:  decimal.NewFromInt(100),
		Total:     decimal.NewFromInt(100),
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().OrderRepo.Create(s.GetContext(), draft))

	err := s.storeCreditService.Reconcile(s.GetContext(), draft, decimal.NewFromInt(30))
	s.NoError(err)

	adjustments, err := s.GetStores().AdjustmentRepo.ListByOrder(s.GetContext(), draft.ID, order.AdjustmentTypeStoreCredit)
	s.NoError(err)
	s.Empty(adjustments)
}

func (s *StoreCreditServiceTestSuite) TestReconcileRoundsRequestedAmount() {
	s.createGrant(decimal.NewFromInt(50))

	requested, err := decimal.NewFromString("19.995")
	s.NoError(err)

	s.NoError(s.storeCreditService.Reconcile(s.GetContext(), s.testData.order, requested))

	s.Equal("20.00", s.appliedCredit().StringFixed(2))
	s.Equal("80.00", s.testData.order.Total.StringFixed(2))
}

func (s *StoreCreditServiceTestSuite) TestReconcileIgnoresCompletedOrder() {
	s.createGrant(decimal.NewFromInt(50))
	s.testData.order.Completed = true

	err := s.storeCreditService.Reconcile(s.GetContext(), s.testData.order, decimal.NewFromInt(30))
	s.NoError(err)
	s.True(s.appliedCredit().IsZero())
}

func (s *StoreCreditServiceTestSuite) TestEnsureSufficientCreditRemovesOverAppliedAdjustment() {
	grant := s.createGrant(decimal.NewFromInt(50))

	s.NoError(s.storeCreditService.Reconcile(s.GetContext(), s.testData.order, decimal.NewFromInt(20)))
	s.True(s.appliedCredit().Equal(decimal.NewFromInt(20)))

	// credit consumed elsewhere drops the available total under the applied amount
	s.NoError(s.GetStores().CreditGrantRepo.UpdateRemainingAmount(s.GetContext(), grant.ID, decimal.NewFromInt(10)))

	s.NoError(s.storeCreditService.EnsureSufficientCredit(s.GetContext(), s.testData.order))

	// all-or-nothing removal, no partial correction
	s.True(s.appliedCredit().IsZero())
	s.True(s.testData.order.Total.Equal(decimal.NewFromInt(100)))
}

func (s *StoreCreditServiceTestSuite) TestEnsureSufficientCreditKeepsValidAdjustment() {
	s.createGrant(decimal.NewFromInt(50))

	s.NoError(s.storeCreditService.Reconcile(s.GetContext(), s.testData.order, decimal.NewFromInt(20)))
	s.NoError(s.storeCreditService.EnsureSufficientCredit(s.GetContext(), s.testData.order))

	s.True(s.appliedCredit().Equal(decimal.NewFromInt(20)))
}

func (s *StoreCreditServiceTestSuite) TestEnsureSufficientCreditSkipsCompletedOrder() {
	grant := s.createGrant(decimal.NewFromInt(50))

	s.NoError(s.storeCreditService.Reconcile(s.GetContext(), s.testData.order, decimal.NewFromInt(20)))
	s.NoError(s.GetStores().CreditGrantRepo.UpdateRemainingAmount(s.GetContext(), grant.ID, decimal.Zero))

	// once completed the adjustment is historical record
	s.testData.order.Completed = true
	s.NoError(s.storeCreditService.EnsureSufficientCredit(s.GetContext(), s.testData.order))

	s.True(s.appliedCredit().Equal(decimal.NewFromInt(20)))
}

func (s *StoreCreditServiceTestSuite) TestRemoveStoreCredits() {
	s.createGrant(decimal.NewFromInt(50))

	s.NoError(s.storeCreditService.Reconcile(s.GetContext(), s.testData.order, decimal.NewFromInt(20)))
	s.NoError(s.storeCreditService.RemoveStoreCredits(s.GetContext(), s.testData.order))

	s.True(s.appliedCredit().IsZero())
	s.True(s.testData.order.Total.Equal(decimal.NewFromInt(100)))
}

func (s *StoreCreditServiceTestSuite) TestRemoveStoreCreditsRejectsCompletedOrder() {
	s.testData.order.Completed = true

	err := s.storeCreditService.RemoveStoreCredits(s.GetContext(), s.testData.order)
	s.Error(err)
	s.True(ierr.IsInvalidOperation(err))
}

func (s *StoreCreditServiceTestSuite) TestValidateMinimumRejectsTotalBelowFloor() {
	s.GetConfig().StoreCredit.MinOrderTotal = decimal.NewFromInt(20)
	s.createGrant(decimal.NewFromInt(95))

	s.NoError(s.storeCreditService.Reconcile(s.GetContext(), s.testData.order, decimal.NewFromInt(95)))

	err := s.storeCreditService.ValidateMinimum(s.GetContext(), s.testData.order)
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *StoreCreditServiceTestSuite) TestValidateMinimumAllowsFullyCoveredOrder() {
	s.GetConfig().StoreCredit.MinOrderTotal = decimal.NewFromInt(20)
	s.createGrant(decimal.NewFromInt(500))

	s.NoError(s.storeCreditService.Reconcile(s.GetContext(), s.testData.order, decimal.NewFromInt(100)))

	s.True(s.testData.order.Total.IsZero())
	s.NoError(s.storeCreditService.ValidateMinimum(s.GetContext(), s.testData.order))
}

func (s *StoreCreditServiceTestSuite) TestAvailableCredit() {
	s.createGrant(decimal.NewFromInt(30))
	s.createGrant(decimal.NewFromInt(50))

	available, err := s.storeCreditService.AvailableCredit(s.GetContext(), s.testData.customer.ID)
	s.NoError(err)
	s.True(available.Equal(decimal.NewFromInt(80)))
}
