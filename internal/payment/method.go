package payment

import (
	"strings"

	"github.com/iwvelando/payment-optimizer/pkg/constants"
	"github.com/iwvelando/payment-optimizer/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// PaymentMethod is a card or the points method. Its limit is fixed; the
// remaining capacity only ever decreases, through Consume.
type PaymentMethod struct {
	id        string
	discount  decimal.Decimal
	limit     decimal.Decimal
	remaining decimal.Decimal
}

// NewPaymentMethod validates and constructs a PaymentMethod with its full
// limit available. Discount is a percentage between 0 and 100; anything
// above 100 would give its options a negative cost.
func NewPaymentMethod(id string, discount, limit decimal.Decimal) (*PaymentMethod, error) {
	if strings.TrimSpace(id) == "" {
		return nil, Warningf("payment.NewPaymentMethod", "payment method id must not be empty")
	}
	if discount.Sign() < 0 {
		return nil, Warningf("payment.NewPaymentMethod", "discount must be non-negative for method=%s", id)
	}
	if discount.GreaterThan(decimal.NewFromInt(constants.PercentageMultiplier)) {
		return nil, Warningf("payment.NewPaymentMethod", "discount must not exceed %d for method=%s", constants.PercentageMultiplier, id)
	}
	if limit.Sign() < 0 {
		return nil, Warningf("payment.NewPaymentMethod", "limit must be non-negative for method=%s", id)
	}
	return &PaymentMethod{id: id, discount: discount, limit: limit, remaining: limit}, nil
}

// ID returns the method identifier.
func (m *PaymentMethod) ID() string { return m.id }

// Discount returns the discount percentage.
func (m *PaymentMethod) Discount() decimal.Decimal { return m.discount }

// Limit returns the spending limit fixed at construction.
func (m *PaymentMethod) Limit() decimal.Decimal { return m.limit }

// Remaining returns the unspent part of the limit.
func (m *PaymentMethod) Remaining() decimal.Decimal { return m.remaining }

// Used returns the amount consumed so far, rounded to currency.
func (m *PaymentMethod) Used() decimal.Decimal {
	return mathutil.Round(m.limit.Sub(m.remaining))
}

// CanCover reports whether amount fits within the remaining capacity.
func (m *PaymentMethod) CanCover(amount decimal.Decimal) bool {
	return amount.Sign() >= 0 && amount.LessThanOrEqual(m.remaining)
}

// Consume decreases the remaining capacity by amount. It fails with an
// error-class error, leaving the capacity untouched, when amount is negative
// or larger than what remains.
func (m *PaymentMethod) Consume(amount decimal.Decimal) error {
	if amount.Sign() < 0 {
		return &Error{Kind: KindError, Op: "payment.Consume", Msg: "method=" + m.id + " amount=" + amount.String(), Err: ErrNegativeAmount}
	}
	if amount.GreaterThan(m.remaining) {
		return &Error{
			Kind: KindError,
			Op:   "payment.Consume",
			Msg:  "method=" + m.id + " requested=" + amount.String() + " available=" + m.remaining.String(),
			Err:  ErrInsufficientLimit,
		}
	}
	m.remaining = m.remaining.Sub(amount)
	return nil
}
