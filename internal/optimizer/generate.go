package optimizer

import (
	"github.com/iwvelando/payment-optimizer/internal/payment"
	"github.com/iwvelando/payment-optimizer/pkg/constants"
	"github.com/iwvelando/payment-optimizer/pkg/mathutil"
	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/pool"
)

// generator enumerates the options for each order against a fixed method set.
type generator struct {
	pointsID string
	points   *payment.PaymentMethod
	byID     map[string]*payment.PaymentMethod
}

func newGenerator(methods []*payment.PaymentMethod, pointsID string) *generator {
	g := &generator{
		pointsID: pointsID,
		byID:     make(map[string]*payment.PaymentMethod, len(methods)),
	}
	for _, m := range methods {
		if _, exists := g.byID[m.ID()]; !exists {
			g.byID[m.ID()] = m
		}
		if g.points == nil && m.ID() == pointsID {
			g.points = m
		}
	}
	return g
}

// optionsFor returns card options in promotion order, then partial points
// steps ascending, then the full points option.
func (g *generator) optionsFor(order *payment.Order) []*Option {
	value := order.Value()
	var options []*Option

	for _, promo := range order.Promotions() {
		if promo == g.pointsID {
			continue
		}
		card, ok := g.byID[promo]
		if !ok {
			continue
		}
		profit := mathutil.ApplyPercentage(value, card.Discount())
		cost := mathutil.Round(value.Sub(profit))
		options = append(options, newOption(order, card, TypeCard, profit, cost))
	}

	if g.points == nil {
		return options
	}

	// Every partial step earns the single-step amount; only the cost grows.
	stepProfit := mathutil.ApplyPercentage(value, decimal.NewFromInt(constants.PointsStepPercent))
	for pct := constants.PointsStepPercent; pct < constants.PercentageMultiplier; pct += constants.PointsStepPercent {
		cost := mathutil.ApplyPercentage(value, decimal.NewFromInt(int64(pct)))
		opt := newOption(order, g.points, TypePartialPoints, stepProfit, cost)
		opt.Percent = pct
		options = append(options, opt)
	}

	profit := mathutil.ApplyPercentage(value, g.points.Discount())
	cost := mathutil.Round(value.Sub(profit))
	full := newOption(order, g.points, TypeFullPoints, profit, cost)
	full.Percent = constants.PercentageMultiplier
	options = append(options, full)

	return options
}

// generate builds the options of every order and numbers them in generation
// order. With more than one worker, orders are processed on a bounded pool;
// the result is assembled per order index so the sequence does not change.
func (g *generator) generate(orders []*payment.Order, workers int) []*Option {
	perOrder := make([][]*Option, len(orders))

	if workers <= 1 || len(orders) < 2 {
		for i, order := range orders {
			perOrder[i] = g.optionsFor(order)
		}
	} else {
		if workers > len(orders) {
			workers = len(orders)
		}
		p := pool.New().WithMaxGoroutines(workers)
		for i, order := range orders {
			i, order := i, order
			p.Go(func() {
				perOrder[i] = g.optionsFor(order)
			})
		}
		p.Wait()
	}

	var options []*Option
	for _, opts := range perOrder {
		for _, opt := range opts {
			opt.seq = len(options)
			options = append(options, opt)
		}
	}
	return options
}
