package order

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName          = errors.New("customer name is required")
	ErrInvalidEmail       = errors.New("customer email is invalid")
	ErrEmptyPhone         = errors.New("customer phone is required")
	ErrEmptyPaymentMethod = errors.New("payment method is required")
	ErrNoLines            = errors.New("order must have at least one line")
	ErrNegativeDiscount   = errors.New("discount cannot be negative")
)

// Customer is the snapshot of buyer contact data frozen into the order.
type Customer struct {
	name          string
	email         string
	phone         string
	address       string
	paymentMethod string
}

func NewCustomer(name, email, phone, address, paymentMethod string) (Customer, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	paymentMethod = strings.TrimSpace(paymentMethod)

	if name == "" {
		return Customer{}, ErrEmptyName
	}
	if email == "" || !strings.Contains(email, "@") {
		return Customer{}, ErrInvalidEmail
	}
	if phone == "" {
		return Customer{}, ErrEmptyPhone
	}
	if paymentMethod == "" {
		return Customer{}, ErrEmptyPaymentMethod
	}

	return Customer{
		name:          name,
		email:         email,
		phone:         phone,
		address:       strings.TrimSpace(address),
		paymentMethod: paymentMethod,
	}, nil
}

func ReconstructCustomer(name, email, phone, address, paymentMethod string) Customer {
	return Customer{
		name:          name,
		email:         email,
		phone:         phone,
		address:       address,
		paymentMethod: paymentMethod,
	}
}

func (c Customer) Name() string          { return c.name }
func (c Customer) Email() string         { return c.email }
func (c Customer) Phone() string         { return c.phone }
func (c Customer) Address() string       { return c.address }
func (c Customer) PaymentMethod() string { return c.paymentMethod }
