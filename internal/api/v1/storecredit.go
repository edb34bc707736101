package v1

import (
	"net/http"

	"github.com/flexcart/flexcart/internal/api/dto"
	ierr "github.com/flexcart/flexcart/internal/errors"
	"github.com/flexcart/flexcart/internal/logger"
	"github.com/flexcart/flexcart/internal/service"
	"github.com/gin-gonic/gin"
)

type StoreCreditHandler struct {
	lifecycle   service.OrderLifecycleService
	storeCredit service.StoreCreditService
	log         *logger.Logger
}

func NewStoreCreditHandler(lifecycle service.OrderLifecycleService, storeCredit service.StoreCreditService, log *logger.Logger) *StoreCreditHandler {
	return &StoreCreditHandler{lifecycle: lifecycle, storeCredit: storeCredit, log: log}
}

// @Summary Apply store credit to an order
// @Description Apply a requested credit amount to an order; the amount is clamped against available credit and the order total
// @Tags StoreCredit
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body dto.ApplyStoreCreditRequest true "Requested credit amount"
// @Success 200 {object} dto.StoreCreditResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /orders/{id}/store_credit [put]
func (h *StoreCreditHandler) ApplyStoreCredit(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Order ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	var req dto.ApplyStoreCreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorw("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}
	if err := req.Validate(); err != nil {
		c.Error(err)
		return
	}

	ctx := c.Request.Context()
	ord, err := h.lifecycle.GetOrder(ctx, id)
	if err != nil {
		c.Error(err)
		return
	}

	amount := req.Amount
	if err := h.lifecycle.SaveOrder(ctx, ord, service.SaveOptions{RequestedCredit: &amount}); err != nil {
		c.Error(err)
		return
	}

	applied, err := h.storeCredit.AppliedCredit(ctx, ord)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewStoreCreditResponse(ord, applied))
}

// @Summary Remove store credit from an order
// @Description Remove any applied store credit from an order and recalculate totals
// @Tags StoreCredit
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.StoreCreditResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 422 {object} ierr.ErrorResponse
// @Router /orders/{id}/store_credit [delete]
func (h *StoreCreditHandler) RemoveStoreCredit(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Order ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	ctx := c.Request.Context()
	ord, err := h.lifecycle.GetOrder(ctx, id)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.lifecycle.SaveOrder(ctx, ord, service.SaveOptions{RemoveStoreCredits: true}); err != nil {
		c.Error(err)
		return
	}

	applied, err := h.storeCredit.AppliedCredit(ctx, ord)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewStoreCreditResponse(ord, applied))
}

// @Summary Get an order's applied store credit
// @Description Get the credit currently applied to an order
// @Tags StoreCredit
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.StoreCreditResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /orders/{id}/store_credit [get]
func (h *StoreCreditHandler) GetStoreCredit(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Order ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	ctx := c.Request.Context()
	ord, err := h.lifecycle.GetOrder(ctx, id)
	if err != nil {
		c.Error(err)
		return
	}

	applied, err := h.storeCredit.AppliedCredit(ctx, ord)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewStoreCreditResponse(ord, applied))
}

// @Summary Complete an order
// @Description Mark an order completed and consume the customer's credit grants
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} dto.StoreCreditResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Failure 422 {object} ierr.ErrorResponse
// @Router /orders/{id}/complete [post]
func (h *StoreCreditHandler) CompleteOrder(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Order ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	ctx := c.Request.Context()
	ord, err := h.lifecycle.CompleteOrder(ctx, id)
	if err != nil {
		h.log.Errorw("Failed to complete order", "error", err, "order_id", id)
		c.Error(err)
		return
	}

	applied, err := h.storeCredit.AppliedCredit(ctx, ord)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewStoreCreditResponse(ord, applied))
}

// @Summary Get a customer's available store credit
// @Description List a customer's credit grants and their usable total
// @Tags StoreCredit
// @Produce json
// @Param id path string true "Customer ID"
// @Success 200 {object} dto.AvailableCreditResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /customers/{id}/store_credit [get]
func (h *StoreCreditHandler) GetAvailableCredit(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Customer ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	ctx := c.Request.Context()
	grants, err := h.storeCredit.CreditGrants(ctx, id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAvailableCreditResponse(id, grants))
}
