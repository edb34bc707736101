package testutil

import (
	"context"

	"github.com/flexcart/flexcart/internal/config"
	"github.com/flexcart/flexcart/internal/domain/creditgrant"
	"github.com/flexcart/flexcart/internal/domain/customer"
	"github.com/flexcart/flexcart/internal/domain/order"
	"github.com/flexcart/flexcart/internal/logger"
	"github.com/flexcart/flexcart/internal/types"
	"github.com/stretchr/testify/suite"
)

// Stores holds the in-memory repositories backing a test suite
type Stores struct {
	CustomerRepo    customer.Repository
	OrderRepo       order.Repository
	AdjustmentRepo  order.AdjustmentRepository
	CreditGrantRepo creditgrant.Repository

	customers   *InMemoryCustomerStore
	orders      *InMemoryOrderStore
	adjustments *InMemoryAdjustmentStore
	grants      *InMemoryCreditGrantStore
}

// BaseServiceTestSuite provides the common fixture for service tests: fresh
// in-memory stores, a tenant-scoped context, config and logger.
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores *Stores
	db     *InMemoryDBClient
	cfg    *config.Configuration
	log    *logger.Logger
}

func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = types.SetUserID(types.SetTenantID(context.Background(), "tenant_test"), "user_test")
	s.cfg = config.GetDefaultConfig()
	s.log = logger.GetLogger()

	customers := NewInMemoryCustomerStore()
	orders := NewInMemoryOrderStore()
	adjustments := NewInMemoryAdjustmentStore()
	grants := NewInMemoryCreditGrantStore()

	// registering the stores gives WithTx rollback semantics on error
	s.db = NewInMemoryDBClient(customers, orders, adjustments, grants)

	s.stores = &Stores{
		CustomerRepo:    customers,
		OrderRepo:       orders,
		AdjustmentRepo:  adjustments,
		CreditGrantRepo: grants,
		customers:       customers,
		orders:          orders,
		adjustments:     adjustments,
		grants:          grants,
	}
}

func (s *BaseServiceTestSuite) TearDownTest() {
	s.stores.customers.Clear()
	s.stores.orders.Clear()
	s.stores.adjustments.Clear()
	s.stores.grants.Clear()
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetStores() *Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetDB() *InMemoryDBClient {
	return s.db
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.cfg
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.log
}
