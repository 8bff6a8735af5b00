package request

import (
	"strings"

	"credshop/internal/usecase"

	"github.com/google/uuid"
)

type CheckoutItemRequest struct {
	ID       uuid.UUID `json:"id" binding:"required"`
	Quantity int32     `json:"quantity" binding:"required,min=1"`
}

type CheckoutCustomerRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"required"`
	Address       string `json:"address,omitempty"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

type CheckoutRequest struct {
	Items          []CheckoutItemRequest   `json:"items" binding:"required,min=1,dive"`
	CustomerInfo   CheckoutCustomerRequest `json:"customerInfo" binding:"required"`
	VoucherID      *string                 `json:"voucherId,omitempty"`
	DiscountAmount int64                   `json:"discountAmount,omitempty" binding:"omitempty,min=0"`
}

func (r CheckoutRequest) GetVoucherID() *string {
	if r.VoucherID == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.VoucherID)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (r CheckoutRequest) ToParams() usecase.CheckoutParams {
	items := make([]usecase.CheckoutItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, usecase.CheckoutItem{
			UnitID:   item.ID,
			Quantity: item.Quantity,
		})
	}
	return usecase.CheckoutParams{
		Items: items,
		Customer: usecase.CustomerInfo{
			Name:          strings.TrimSpace(r.CustomerInfo.Name),
			Email:         strings.TrimSpace(r.CustomerInfo.Email),
			Phone:         strings.TrimSpace(r.CustomerInfo.Phone),
			Address:       strings.TrimSpace(r.CustomerInfo.Address),
			PaymentMethod: r.CustomerInfo.PaymentMethod,
		},
		VoucherCode:   r.GetVoucherID(),
		DiscountCents: r.DiscountAmount,
	}
}
