// Package payment defines the entities the optimizer works on: customer
// orders and the payment methods that can settle them.
package payment

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Order is a customer order. It is immutable once constructed.
type Order struct {
	id         string
	value      decimal.Decimal
	promotions []string
}

// NewOrder validates and constructs an Order. A blank id or a non-positive
// value yields a warning-class error.
func NewOrder(id string, value decimal.Decimal, promotions []string) (*Order, error) {
	if strings.TrimSpace(id) == "" {
		return nil, Warningf("payment.NewOrder", "order id must not be empty")
	}
	if value.Sign() <= 0 {
		return nil, Warningf("payment.NewOrder", "order value must be positive for id=%s", id)
	}

	var promos []string
	if len(promotions) > 0 {
		promos = append(promos, promotions...)
	}
	return &Order{id: id, value: value, promotions: promos}, nil
}

// ID returns the order identifier.
func (o *Order) ID() string { return o.id }

// Value returns the order value.
func (o *Order) Value() decimal.Decimal { return o.value }

// Promotions returns the payment method ids the order is eligible for, in
// the order they were declared. The returned slice must not be modified.
func (o *Order) Promotions() []string { return o.promotions }
