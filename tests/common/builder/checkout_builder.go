//go:build unit || e2e

package builder

import (
	"time"

	reqdto "credshop/internal/handler/dto/request"
	"credshop/internal/usecase"
	"credshop/internal/usecase/queries"

	"github.com/google/uuid"
)

type CheckoutBuilder struct {
	UnitID        uuid.UUID
	Quantity      int32
	Name          string
	Email         string
	Phone         string
	Address       string
	PaymentMethod string
	VoucherID     *string
	Discount      int64
	PriceCents    int64
	Now           time.Time
}

func NewCheckoutBuilder() *CheckoutBuilder {
	return &CheckoutBuilder{
		UnitID:        uuid.New(),
		Quantity:      1,
		Name:          "Jane Doe",
		Email:         "jane@example.com",
		Phone:         "+6281234567890",
		Address:       "Jl. Sudirman 1, Jakarta",
		PaymentMethod: "bank_transfer",
		PriceCents:    5000,
		Now:           time.Now(),
	}
}

func (b *CheckoutBuilder) With(mutate func(*CheckoutBuilder)) *CheckoutBuilder {
	mutate(b)
	return b
}

func (b *CheckoutBuilder) BuildRequestDTO() reqdto.CheckoutRequest {
	return reqdto.CheckoutRequest{
		Items: []reqdto.CheckoutItemRequest{
			{ID: b.UnitID, Quantity: b.Quantity},
		},
		CustomerInfo: reqdto.CheckoutCustomerRequest{
			Name:          b.Name,
			Email:         b.Email,
			Phone:         b.Phone,
			Address:       b.Address,
			PaymentMethod: b.PaymentMethod,
		},
		VoucherID:      b.VoucherID,
		DiscountAmount: b.Discount,
	}
}

func (b *CheckoutBuilder) BuildResult() *usecase.CheckoutResult {
	subtotal := b.PriceCents * int64(b.Quantity)
	tax := subtotal * 11 / 100
	return &usecase.CheckoutResult{
		OrderID:       uuid.New(),
		TransactionID: "TRX-20250601120000-deadbeef",
		PaymentMethod: b.PaymentMethod,
		AmountCents:   subtotal + tax - b.Discount,
		PaymentData:   map[string]string{"transactionId": "TRX-20250601120000-deadbeef"},
		ExpiresAt:     b.Now.Add(24 * time.Hour),
	}
}

func (b *CheckoutBuilder) BuildOrderView() *queries.OrderView {
	orderID := uuid.New()
	subtotal := b.PriceCents * int64(b.Quantity)
	tax := subtotal * 11 / 100
	txID := "TRX-20250601120000-deadbeef"

	lines := make([]queries.OrderLineView, 0, b.Quantity)
	for i := int32(0); i < b.Quantity; i++ {
		lines = append(lines, queries.OrderLineView{
			ID:         uuid.New(),
			UnitID:     b.UnitID,
			UnitName:   "Streaming Basic",
			PriceCents: b.PriceCents,
		})
	}

	return &queries.OrderView{
		ID:              orderID,
		Status:          "pending",
		CustomerName:    b.Name,
		CustomerEmail:   b.Email,
		CustomerPhone:   b.Phone,
		CustomerAddress: b.Address,
		PaymentMethod:   b.PaymentMethod,
		VoucherCode:     b.VoucherID,
		SubtotalCents:   subtotal,
		TaxCents:        tax,
		DiscountCents:   b.Discount,
		TotalCents:      subtotal + tax - b.Discount,
		TransactionID:   &txID,
		ExpiresAt:       b.Now.Add(24 * time.Hour),
		CreatedAt:       b.Now,
		UpdatedAt:       b.Now,
		Lines:           lines,
	}
}
