package optimizer

import (
	"github.com/iwvelando/payment-optimizer/internal/payment"
	"go.uber.org/zap"
)

// selectOptions walks the ranked options once and commits at most one option
// per order, consuming method capacity as it goes. Options that do not fit
// are discarded; a later, cheaper option may still serve the same order.
func (r *Runner) selectOptions(ranked []*Option) (map[string]*Option, error) {
	chosen := make(map[string]*Option)

	for _, opt := range ranked {
		orderID := opt.Order.ID()
		if _, decided := chosen[orderID]; decided {
			continue
		}
		if !opt.Method.CanCover(opt.Cost) {
			continue
		}
		if err := opt.Method.Consume(opt.Cost); err != nil {
			return nil, &payment.Error{Kind: payment.KindError, Op: "optimizer.selectOptions", Msg: "commit " + opt.String(), Err: err}
		}
		chosen[orderID] = opt

		r.logger.Debug("committed option",
			zap.String("op", "optimizer.selectOptions"),
			zap.String("order", orderID),
			zap.String("method", opt.Method.ID()),
			zap.Stringer("type", opt.Type),
			zap.Stringer("profit", opt.Profit),
			zap.Stringer("cost", opt.Cost),
			zap.Stringer("remaining", opt.Method.Remaining()),
		)
	}

	return chosen, nil
}
