package api

import (
	"errors"
	"net/http"

	reqdto "credshop/internal/handler/dto/request"
	resdto "credshop/internal/handler/dto/response"
	"credshop/internal/pkg/errs"
	"credshop/internal/usecase"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	checkoutUseCase usecase.CheckoutUseCase
}

func NewCheckoutHandler(checkoutUseCase usecase.CheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutUseCase: checkoutUseCase,
	}
}

// @Summary Checkout
// @Description Create an order, book the requested units and allocate profiles/seats atomically
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body reqdto.CheckoutRequest true "Checkout request"
// @Success 201 {object} resdto.CheckoutResponse
// @Failure 400 {object} resdto.CheckoutFailureResponse
// @Failure 500 {object} resdto.CheckoutFailureResponse
// @Router /checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var body reqdto.CheckoutRequest
	if bindErr := c.ShouldBindJSON(&body); bindErr != nil {
		c.JSON(http.StatusBadRequest, &resdto.CheckoutFailureResponse{
			Success: false,
			Message: "Invalid request format",
		})
		return
	}

	result, err := h.checkoutUseCase.Checkout(c.Request.Context(), body.ToParams())
	if err != nil {
		var unavailable *usecase.UnavailableError
		switch {
		case errors.As(err, &unavailable):
			c.JSON(http.StatusBadRequest, resdto.FromUnavailableError(unavailable))
		case errs.Is(err, errs.ErrValidationFailed):
			c.JSON(http.StatusBadRequest, &resdto.CheckoutFailureResponse{
				Success: false,
				Message: "Invalid checkout request",
			})
		case errs.Is(err, errs.ErrInvalidVoucher):
			c.JSON(http.StatusBadRequest, &resdto.CheckoutFailureResponse{
				Success: false,
				Message: "Invalid or expired voucher",
			})
		default:
			c.JSON(http.StatusInternalServerError, &resdto.CheckoutFailureResponse{
				Success: false,
				Message: "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCheckoutResult(result))
}
