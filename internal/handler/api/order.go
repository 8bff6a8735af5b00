package api

import (
	"context"
	"net/http"

	resdto "credshop/internal/handler/dto/response"
	"credshop/internal/handler/httperr"
	"credshop/internal/pkg/errs"
	"credshop/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	orderQueries   usecase.OrderQueries
	paymentUseCase usecase.PaymentUseCase
}

func NewOrderHandler(orderQueries usecase.OrderQueries, paymentUseCase usecase.PaymentUseCase) *OrderHandler {
	return &OrderHandler{
		orderQueries:   orderQueries,
		paymentUseCase: paymentUseCase,
	}
}

// @Summary Get order
// @Description Get order by ID including its lines and payment reference
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid order ID format", nil)
		return
	}

	view, err := h.orderQueries.GetOrder(c.Request.Context(), id)
	if err != nil {
		if errs.Is(err, errs.ErrOrderNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	response, err := resdto.FromOrderView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Confirm payment
// @Description Mark a pending order as paid and release its booking holds
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/confirm [post]
func (h *OrderHandler) ConfirmPayment(c *gin.Context) {
	h.transition(c, h.paymentUseCase.ConfirmPayment, "paid")
}

// @Summary Cancel order
// @Description Cancel a pending order, releasing its holds and allocations
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/cancel [post]
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	h.transition(c, h.paymentUseCase.CancelOrder, "cancelled")
}

// @Summary Complete order
// @Description Mark a paid order as completed after credential delivery
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/complete [post]
func (h *OrderHandler) CompleteOrder(c *gin.Context) {
	h.transition(c, h.paymentUseCase.CompleteOrder, "completed")
}

func (h *OrderHandler) transition(c *gin.Context, fn func(ctx context.Context, orderID uuid.UUID) error, to string) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid order ID format", nil)
		return
	}

	if err := fn(c.Request.Context(), id); err != nil {
		switch {
		case errs.Is(err, errs.ErrOrderNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
		case errs.Is(err, errs.ErrInvalidTransition):
			httperr.AbortWithError(c, http.StatusConflict, err, "Order cannot be "+to+" from its current status", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": to,
	})
}
