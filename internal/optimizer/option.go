package optimizer

import (
	"fmt"

	"github.com/iwvelando/payment-optimizer/internal/payment"
	"github.com/iwvelando/payment-optimizer/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// OptionType tags how an option would pay for its order.
type OptionType int

const (
	// TypeCard is a promotion-based instant discount on a card.
	TypeCard OptionType = iota + 1
	// TypePartialPoints redeems points for a fixed step of the order value.
	TypePartialPoints
	// TypeFullPoints pays the whole order with points.
	TypeFullPoints
)

func (t OptionType) String() string {
	switch t {
	case TypeCard:
		return "CARD"
	case TypePartialPoints:
		return "PARTIAL_POINTS"
	case TypeFullPoints:
		return "FULL_POINTS"
	default:
		return fmt.Sprintf("OptionType(%d)", int(t))
	}
}

// Density is the ranking key of an option. An option that costs nothing has
// an unbounded density and outranks every finite one.
type Density struct {
	Unbounded bool
	Value     decimal.Decimal
}

// Cmp returns -1, 0 or +1 as d is less than, equal to or greater than other.
func (d Density) Cmp(other Density) int {
	switch {
	case d.Unbounded && other.Unbounded:
		return 0
	case d.Unbounded:
		return 1
	case other.Unbounded:
		return -1
	default:
		return d.Value.Cmp(other.Value)
	}
}

func (d Density) String() string {
	if d.Unbounded {
		return "unbounded"
	}
	return d.Value.String()
}

// Option is a candidate way of paying one order with one method.
type Option struct {
	Order   *payment.Order
	Method  *payment.PaymentMethod
	Type    OptionType
	Profit  decimal.Decimal
	Cost    decimal.Decimal
	Percent int // redeemed share for partial points, 0 otherwise

	density Density
	seq     int
}

func newOption(order *payment.Order, method *payment.PaymentMethod, typ OptionType, profit, cost decimal.Decimal) *Option {
	opt := &Option{
		Order:  order,
		Method: method,
		Type:   typ,
		Profit: profit,
		Cost:   cost,
	}
	if cost.IsZero() {
		opt.density = Density{Unbounded: true}
	} else {
		opt.density = Density{Value: mathutil.Ratio(profit, cost)}
	}
	return opt
}

// Density returns profit per unit of cost.
func (o *Option) Density() Density {
	return o.density
}

// Seq returns the position of the option in generation order.
func (o *Option) Seq() int {
	return o.seq
}

func (o *Option) String() string {
	return fmt.Sprintf("%s/%s/%s profit=%s cost=%s", o.Order.ID(), o.Method.ID(), o.Type, o.Profit, o.Cost)
}
