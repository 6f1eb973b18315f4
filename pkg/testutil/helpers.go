// Package testutil provides common utility functions for testing.
package testutil

import (
	"testing"

	"github.com/iwvelando/payment-optimizer/internal/payment"
	"github.com/shopspring/decimal"
)

// Dec parses a decimal literal and panics on malformed input.
func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// MustOrder builds an order or fails the test.
func MustOrder(t testing.TB, id, value string, promotions ...string) *payment.Order {
	t.Helper()
	order, err := payment.NewOrder(id, Dec(value), promotions)
	if err != nil {
		t.Fatalf("NewOrder(%s) error = %v", id, err)
	}
	return order
}

// MustMethod builds a payment method or fails the test.
func MustMethod(t testing.TB, id, discount, limit string) *payment.PaymentMethod {
	t.Helper()
	method, err := payment.NewPaymentMethod(id, Dec(discount), Dec(limit))
	if err != nil {
		t.Fatalf("NewPaymentMethod(%s) error = %v", id, err)
	}
	return method
}

// AssertDecimal compares numerically, so "10" and "10.00" are equal.
func AssertDecimal(t testing.TB, what string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(Dec(want)) {
		t.Errorf("%s = %s, want %s", what, got, want)
	}
}

// FindMethod finds a payment method by id in the methods slice.
// Returns nil if not found.
func FindMethod(methods []*payment.PaymentMethod, id string) *payment.PaymentMethod {
	for _, m := range methods {
		if m != nil && m.ID() == id {
			return m
		}
	}
	return nil
}
