// Package optimizer allocates a batch of orders across payment methods with a
// deterministic greedy heuristic: enumerate payment options per order, rank
// them by profit density, commit the best affordable option per order, then
// drain remaining balances against leftover capacity.
package optimizer

import (
	"strings"

	"github.com/iwvelando/payment-optimizer/internal/payment"
	"github.com/iwvelando/payment-optimizer/pkg/constants"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Options tunes a Runner.
type Options struct {
	// PointsID is the id of the points method. Empty means constants.DefaultPointsMethodID.
	PointsID string
	// Workers bounds option generation concurrency. Values below 2 keep it sequential.
	Workers int
}

// Runner executes the optimization.
type Runner struct {
	logger   *zap.Logger
	pointsID string
	workers  int
}

// NewRunner constructs a Runner.
func NewRunner(logger *zap.Logger, opts Options) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	pointsID := strings.TrimSpace(opts.PointsID)
	if pointsID == "" {
		pointsID = constants.DefaultPointsMethodID
	}
	workers := opts.Workers
	if workers < constants.DefaultWorkers {
		workers = constants.DefaultWorkers
	}
	return &Runner{logger: logger, pointsID: pointsID, workers: workers}
}

// PointsID returns the id treated as the points method.
func (r *Runner) PointsID() string {
	return r.pointsID
}

// Run allocates orders across methods. The remaining capacity of the given
// methods is consumed in place and the same slice is returned in the Result.
// Nil collections, nil entries and duplicate order ids are rejected with an
// error-class error before anything is mutated.
func (r *Runner) Run(orders []*payment.Order, methods []*payment.PaymentMethod) (*Result, error) {
	if err := validateInput(orders, methods); err != nil {
		return nil, err
	}

	gen := newGenerator(methods, r.pointsID)
	if gen.points == nil {
		r.logger.Warn("no points method found; partial and full points options disabled",
			zap.String("op", "optimizer.Run"),
			zap.String("pointsId", r.pointsID),
		)
	}

	options := gen.generate(orders, r.workers)
	rank(options)

	r.logger.Debug("ranked options",
		zap.String("op", "optimizer.Run"),
		zap.Int("orders", len(orders)),
		zap.Int("methods", len(methods)),
		zap.Int("options", len(options)),
	)

	chosen, err := r.selectOptions(options)
	if err != nil {
		return nil, err
	}

	residual := make(map[string]decimal.Decimal, len(orders))
	for _, order := range orders {
		residual[order.ID()] = residualFor(order, chosen[order.ID()])
	}

	settled, err := r.distribute(orders, methods, gen.points, residual)
	if err != nil {
		return nil, err
	}

	result := &Result{Methods: methods, Assignments: make([]Assignment, 0, len(orders))}
	for _, order := range orders {
		result.Assignments = append(result.Assignments, Assignment{
			OrderID:  order.ID(),
			Value:    order.Value(),
			Option:   chosen[order.ID()],
			Residual: residual[order.ID()],
			Settled:  settled[order.ID()],
		})
	}

	r.logger.Info("optimization complete",
		zap.String("op", "optimizer.Run"),
		zap.Int("orders", len(orders)),
		zap.Int("committed", len(chosen)),
		zap.Int("unsettled", len(result.Unsettled())),
		zap.Stringer("profit", result.TotalProfit()),
	)

	return result, nil
}

func validateInput(orders []*payment.Order, methods []*payment.PaymentMethod) error {
	if orders == nil || methods == nil {
		return payment.Errorf("optimizer.Run", "orders or methods list must not be nil")
	}
	seen := make(map[string]struct{}, len(orders))
	for i, order := range orders {
		if order == nil {
			return payment.Errorf("optimizer.Run", "order at index %d is nil", i)
		}
		if _, dup := seen[order.ID()]; dup {
			return payment.Errorf("optimizer.Run", "duplicate order id %s", order.ID())
		}
		seen[order.ID()] = struct{}{}
	}
	for i, method := range methods {
		if method == nil {
			return payment.Errorf("optimizer.Run", "payment method at index %d is nil", i)
		}
	}
	return nil
}
