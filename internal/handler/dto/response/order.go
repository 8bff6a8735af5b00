package response

import (
	"time"

	"credshop/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	Status          string              `json:"status"`
	CustomerName    string              `json:"customerName"`
	CustomerEmail   string              `json:"customerEmail"`
	CustomerPhone   string              `json:"customerPhone"`
	CustomerAddress string              `json:"customerAddress,omitempty"`
	PaymentMethod   string              `json:"paymentMethod"`
	VoucherCode     *string             `json:"voucherCode,omitempty"`
	SubtotalCents   int64               `json:"subtotalCents"`
	TaxCents        int64               `json:"taxCents"`
	DiscountCents   int64               `json:"discountCents"`
	TotalCents      int64               `json:"totalCents"`
	TransactionID   *string             `json:"transactionId,omitempty"`
	ExpiresAt       time.Time           `json:"expiresAt"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
	Lines           []OrderLineResponse `json:"lines"`
}

type OrderLineResponse struct {
	ID         uuid.UUID `json:"id"`
	UnitID     uuid.UUID `json:"unitId"`
	UnitName   string    `json:"unitName"`
	PriceCents int64     `json:"priceCents"`
}

func FromOrderView(view *queries.OrderView) (*OrderResponse, error) {
	var resp OrderResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, err
	}
	return &resp, nil
}
