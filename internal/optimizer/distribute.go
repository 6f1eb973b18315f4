package optimizer

import (
	"github.com/iwvelando/payment-optimizer/internal/payment"
	"github.com/iwvelando/payment-optimizer/pkg/constants"
	"github.com/iwvelando/payment-optimizer/pkg/mathutil"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// residualFor returns what an order still owes after the greedy pass. Card
// and full points commits settle the whole order. A partial points commit
// leaves the 90% share minus its cost, whichever step was taken.
func residualFor(order *payment.Order, opt *Option) decimal.Decimal {
	if opt == nil {
		return order.Value()
	}
	switch opt.Type {
	case TypeCard, TypeFullPoints:
		return decimal.Zero
	default:
		after := mathutil.ApplyPercentage(order.Value(), decimal.NewFromInt(constants.ResidualPercent))
		return mathutil.Max(decimal.Zero, after.Sub(opt.Cost))
	}
}

// distribute drains residual balances first against the points method, then
// against every other method in input order. Orders are served in input
// order until the current method runs dry.
func (r *Runner) distribute(orders []*payment.Order, methods []*payment.PaymentMethod, points *payment.PaymentMethod, residual map[string]decimal.Decimal) (map[string][]Settlement, error) {
	settled := make(map[string][]Settlement)

	sweep := func(method *payment.PaymentMethod) error {
		for _, order := range orders {
			toPay := residual[order.ID()]
			if !mathutil.IsPositive(toPay) {
				continue
			}
			available := method.Remaining()
			if !mathutil.IsPositive(available) {
				break
			}
			use := mathutil.Min(toPay, available)
			if err := method.Consume(use); err != nil {
				return &payment.Error{Kind: payment.KindError, Op: "optimizer.distribute", Msg: "settle order=" + order.ID(), Err: err}
			}
			residual[order.ID()] = toPay.Sub(use)
			settled[order.ID()] = append(settled[order.ID()], Settlement{MethodID: method.ID(), Amount: use})

			r.logger.Debug("settled residual",
				zap.String("op", "optimizer.distribute"),
				zap.String("order", order.ID()),
				zap.String("method", method.ID()),
				zap.Stringer("amount", use),
				zap.Stringer("residual", residual[order.ID()]),
			)
		}
		return nil
	}

	if points != nil {
		if err := sweep(points); err != nil {
			return nil, err
		}
	}
	for _, method := range methods {
		if method.ID() == r.pointsID {
			continue
		}
		if err := sweep(method); err != nil {
			return nil, err
		}
	}

	return settled, nil
}
