package optimizer

import (
	"github.com/iwvelando/payment-optimizer/internal/payment"
	"github.com/shopspring/decimal"
)

// Settlement is one residual payment made by a method during distribution.
type Settlement struct {
	MethodID string
	Amount   decimal.Decimal
}

// Assignment is the final state of one order.
type Assignment struct {
	OrderID string
	Value   decimal.Decimal
	// Option is the option committed by the greedy pass, nil if none fit.
	Option *Option
	// Residual is what is still unpaid after distribution.
	Residual decimal.Decimal
	Settled  []Settlement
}

// FullyPaid reports whether nothing is left to pay.
func (a Assignment) FullyPaid() bool {
	return a.Residual.Sign() <= 0
}

// Usage is the amount charged to one payment method.
type Usage struct {
	MethodID string
	Used     decimal.Decimal
}

// Result holds the mutated payment methods and the per-order outcome.
type Result struct {
	Methods     []*payment.PaymentMethod
	Assignments []Assignment
}

// Usage returns the charged amount of every method with positive usage, in
// input order.
func (r *Result) Usage() []Usage {
	var usages []Usage
	for _, m := range r.Methods {
		used := m.Used()
		if used.Sign() > 0 {
			usages = append(usages, Usage{MethodID: m.ID(), Used: used})
		}
	}
	return usages
}

// TotalProfit sums the discount of every committed option.
func (r *Result) TotalProfit() decimal.Decimal {
	total := decimal.Zero
	for _, a := range r.Assignments {
		if a.Option != nil {
			total = total.Add(a.Option.Profit)
		}
	}
	return total
}

// Unsettled returns the assignments that still carry a residual balance.
func (r *Result) Unsettled() []Assignment {
	var open []Assignment
	for _, a := range r.Assignments {
		if !a.FullyPaid() {
			open = append(open, a)
		}
	}
	return open
}
