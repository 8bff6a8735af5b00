package response

import (
	"time"

	"credshop/internal/usecase"

	"github.com/google/uuid"
)

type CheckoutResponse struct {
	Success       bool              `json:"success"`
	ID            uuid.UUID         `json:"id"`
	TransactionID string            `json:"transactionId"`
	PaymentMethod string            `json:"paymentMethod"`
	Amount        int64             `json:"amount"`
	PaymentData   map[string]string `json:"paymentData"`
	ExpiresAt     time.Time         `json:"expiresAt"`
}

// CheckoutFailureResponse carries the unit ids of the first failing class and
// one boolean flag naming it, so the storefront can prune its cart.
type CheckoutFailureResponse struct {
	Success          bool     `json:"success"`
	Message          string   `json:"message"`
	UnavailableItems []string `json:"unavailableItems,omitempty"`
	IsBookedError    bool     `json:"isBookedError,omitempty"`
	IsInactiveError  bool     `json:"isInactiveError,omitempty"`
	IsStockError     bool     `json:"isStockError,omitempty"`
}

func FromCheckoutResult(result *usecase.CheckoutResult) *CheckoutResponse {
	return &CheckoutResponse{
		Success:       true,
		ID:            result.OrderID,
		TransactionID: result.TransactionID,
		PaymentMethod: result.PaymentMethod,
		Amount:        result.AmountCents,
		PaymentData:   result.PaymentData,
		ExpiresAt:     result.ExpiresAt,
	}
}

func FromUnavailableError(err *usecase.UnavailableError) *CheckoutFailureResponse {
	items := make([]string, 0, len(err.UnitIDs))
	for _, id := range err.UnitIDs {
		items = append(items, id.String())
	}

	resp := &CheckoutFailureResponse{
		Success:          false,
		UnavailableItems: items,
	}
	switch err.Reason {
	case usecase.ReasonNotFound:
		resp.Message = "Some items no longer exist"
	case usecase.ReasonInactive:
		resp.Message = "Some items are no longer for sale"
		resp.IsInactiveError = true
	case usecase.ReasonBooked:
		resp.Message = "Some items are held by another checkout"
		resp.IsBookedError = true
	case usecase.ReasonNoProfiles:
		resp.Message = "Not enough profiles left for some items"
		resp.IsStockError = true
	case usecase.ReasonNoSeats:
		resp.Message = "Some items are out of stock"
		resp.IsStockError = true
	default:
		resp.Message = "Some items are unavailable"
	}
	return resp
}
