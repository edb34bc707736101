package service

import (
	"testing"

	"github.com/flexcart/flexcart/internal/domain/creditgrant"
	"github.com/flexcart/flexcart/internal/domain/customer"
	"github.com/flexcart/flexcart/internal/domain/order"
	ierr "github.com/flexcart/flexcart/internal/errors"
	"github.com/flexcart/flexcart/internal/testutil"
	"github.com/flexcart/flexcart/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type LifecycleTestSuite struct {
	testutil.BaseServiceTestSuite
	storeCreditService StoreCreditService
	lifecycleService   OrderLifecycleService
	testData           struct {
		customer *customer.Customer
	}
}

func TestLifecycle(t *testing.T) {
	suite.Run(t, new(LifecycleTestSuite))
}

func (s *LifecycleTestSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

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

	s.testData.customer = &customer.Customer{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CUSTOMER),
		ExternalID: "ext_cust_test_123",
		Name:       "Test Customer",
		Email:      "test@example.com",
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().CustomerRepo.Create(s.GetContext(), s.testData.customer))
}

func (s *LifecycleTestSuite) newOrder(subtotal int64) *order.Order {
	return &order.Order{
		ID:         types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ORDER),
		CustomerID: s.testData.customer.ID,
		Currency:   "usd",
		Subtotal:   decimal.NewFromInt(subtotal),
		Total:      decimal.NewFromInt(subtotal),
		BaseModel:  types.GetDefaultBaseModel(s.GetContext()),
	}
}

func (s *LifecycleTestSuite) createGrant(amount int64) *creditgrant.CreditGrant {
	grant := &creditgrant.CreditGrant{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CREDIT_GRANT),
		CustomerID:      s.testData.customer.ID,
		Currency:        "usd",
		OriginalAmount:  decimal.NewFromInt(amount),
		RemainingAmount: decimal.NewFromInt(amount),
		BaseModel:       types.GetDefaultBaseModel(s.GetContext()),
	}
	s.NoError(s.GetStores().CreditGrantRepo.Create(s.GetContext(), grant))
	return grant
}

func (s *LifecycleTestSuite) TestSaveOrderCreatesAndAppliesCredit() {
	s.createGrant(50)
	ord := s.newOrder(100)

	err := s.lifecycleService.SaveOrder(s.GetContext(), ord, SaveOptions{
		RequestedCredit: lo.ToPtr(decimal.NewFromInt(30)),
	})
	s.NoError(err)

	saved, err := s.lifecycleService.GetOrder(s.GetContext(), ord.ID)
	s.NoError(err)
	s.True(saved.Total.Equal(decimal.NewFromInt(70)))

	applied, err := s.storeCreditService.AppliedCredit(s.GetContext(), saved)
	s.NoError(err)
	s.True(applied.Equal(decimal.NewFromInt(30)))
}

func (s *LifecycleTestSuite) TestSaveOrderWithoutRequestLeavesCreditUntouched() {
	s.createGrant(50)
	ord := s.newOrder(100)

	s.NoError(s.lifecycleService.SaveOrder(s.GetContext(), ord, SaveOptions{
		RequestedCredit: lo.ToPtr(decimal.NewFromInt(30)),
	}))

	// a later save without a requested amount must not re-reconcile
	saved, err := s.lifecycleService.GetOrder(s.GetContext(), ord.ID)
	s.NoError(err)
	s.NoError(s.lifecycleService.SaveOrder(s.GetContext(), saved, SaveOptions{}))

	applied, err := s.storeCreditService.AppliedCredit(s.GetContext(), saved)
	s.NoError(err)
	s.True(applied.Equal(decimal.NewFromInt(30)))
}

func (s *LifecycleTestSuite) TestSaveOrderGuardSelfHeals() {
	grant := s.createGrant(50)
	ord := s.newOrder(100)

	s.NoError(s.lifecycleService.SaveOrder(s.GetContext(), ord, SaveOptions{
		RequestedCredit: lo.ToPtr(decimal.NewFromInt(20)),
	}))

	// another order consumed the credit in the meantime
	s.NoError(s.GetStores().CreditGrantRepo.UpdateRemainingAmount(s.GetContext(), grant.ID, decimal.NewFromInt(10)))

	saved, err := s.lifecycleService.GetOrder(s.GetContext(), ord.ID)
	s.NoError(err)
	s.NoError(s.lifecycleService.SaveOrder(s.GetContext(), saved, SaveOptions{}))

	applied, err := s.storeCreditService.AppliedCredit(s.GetContext(), saved)
	s.NoError(err)
	s.True(applied.IsZero())
	s.True(saved.Total.Equal(decimal.NewFromInt(100)))
}

func (s *LifecycleTestSuite) TestSaveOrderRemovesCredit() {
	s.createGrant(50)
	ord := s.newOrder(100)

	s.NoError(s.lifecycleService.SaveOrder(s.GetContext(), ord, SaveOptions{
		RequestedCredit: lo.ToPtr(decimal.NewFromInt(30)),
	}))
	s.NoError(s.lifecycleService.SaveOrder(s.GetContext(), ord, SaveOptions{
		RemoveStoreCredits: true,
	}))

	applied, err := s.storeCreditService.AppliedCredit(s.GetContext(), ord)
	s.NoError(err)
	s.True(applied.IsZero())
	s.True(ord.Total.Equal(decimal.NewFromInt(100)))
}

func (s *LifecycleTestSuite) TestSaveOrderRejectsTotalUnderMinimum() {
	s.GetConfig().StoreCredit.MinOrderTotal = decimal.NewFromInt(25)
	s.createGrant(90)
	ord := s.newOrder(100)

	err := s.lifecycleService.SaveOrder(s.GetContext(), ord, SaveOptions{
		RequestedCredit: lo.ToPtr(decimal.NewFromInt(90)),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))

	// the rejected save rolls back entirely, including the order row itself
	_, err = s.lifecycleService.GetOrder(s.GetContext(), ord.ID)
	s.Error(err)
	s.True(ierr.IsNotFound(err))
}

func (s *LifecycleTestSuite) TestSaveOrderSkipsCreditForDraftWithoutCustomer() {
	s.createGrant(50)
	draft := &order.Order{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ORDER),
		Currency:  "usd",
		Subtotal:  decimal.NewFromInt(100),
		Total:     decimal.NewFromInt(100),
		BaseModel: types.GetDefaultBaseModel(s.GetContext()),
	}

	// admin consoles create the order before assigning a customer; the save
	// must go through with no credit logic engaging
	err := s.lifecycleService.SaveOrder(s.GetContext(), draft, SaveOptions{
		RequestedCredit: lo.ToPtr(decimal.NewFromInt(30)),
	})
	s.NoError(err)

	applied, err := s.storeCreditService.AppliedCredit(s.GetContext(), draft)
	s.NoError(err)
	s.True(applied.IsZero())
}

func (s *LifecycleTestSuite) TestSaveAfterCompletionNeverTouchesAdjustment() {
	s.createGrant(50)
	ord := s.newOrder(100)

	s.NoError(s.lifecycleService.SaveOrder(s.GetContext(), ord, SaveOptions{
		RequestedCredit: lo.ToPtr(decimal.NewFromInt(40)),
	}))
	_, err := s.lifecycleService.CompleteOrder(s.GetContext(), ord.ID)
	s.NoError(err)

	completed, err := s.lifecycleService.GetOrder(s.GetContext(), ord.ID)
	s.NoError(err)

	s.NoError(s.lifecycleService.SaveOrder(s.GetContext(), completed, SaveOptions{
		RequestedCredit: lo.ToPtr(decimal.NewFromInt(5)),
	}))

	applied, err := s.storeCreditService.AppliedCredit(s.GetContext(), completed)
	s.NoError(err)
	s.True(applied.Equal(decimal.NewFromInt(40)))
}
