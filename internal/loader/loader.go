// Package loader reads orders and payment methods from JSON documents and
// turns them into validated entities. Individual malformed entries are
// skipped; structural problems reject the whole document.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/iwvelando/payment-optimizer/internal/payment"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// orderEntry is the textual form of one order before entity validation.
type orderEntry struct {
	ID    string `validate:"required"`
	Value string `validate:"required"`
}

// methodEntry is the textual form of one payment method before entity validation.
type methodEntry struct {
	ID       string `validate:"required"`
	Discount string `validate:"required"`
	Limit    string `validate:"required"`
}

// Loader decodes order and payment method documents.
type Loader struct {
	logger   *zap.Logger
	validate *validator.Validate
}

// New constructs a Loader.
func New(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger, validate: validator.New()}
}

// Orders loads the orders file at path.
func (l *Loader) Orders(path string) ([]*payment.Order, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read orders file %s: %w", path, err)
	}
	return l.ParseOrders(bytes.NewReader(data))
}

// PaymentMethods loads the payment methods file at path.
func (l *Loader) PaymentMethods(path string) ([]*payment.PaymentMethod, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read payment methods file %s: %w", path, err)
	}
	return l.ParsePaymentMethods(bytes.NewReader(data))
}

// ParseOrders decodes a JSON array of orders. Every entry must declare a
// promotions key, which may be null or a non-array to mean no promotions.
func (l *Loader) ParseOrders(r io.Reader) ([]*payment.Order, error) {
	const op = "loader.ParseOrders"

	entries, err := decodeArray(r, op, "orders")
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if _, ok := entry["promotions"]; !ok {
			return nil, payment.Warningf(op, "missing 'promotions' field in one or more orders")
		}
	}

	orders := make([]*payment.Order, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for i, entry := range entries {
		raw := orderEntry{ID: text(entry["id"]), Value: text(entry["value"])}
		if err := l.validate.Struct(raw); err != nil {
			l.skip(op, i, raw.ID, err)
			continue
		}
		value, err := decimal.NewFromString(raw.Value)
		if err != nil {
			l.skip(op, i, raw.ID, err)
			continue
		}
		order, err := payment.NewOrder(raw.ID, value, promotions(entry["promotions"]))
		if err != nil {
			l.skip(op, i, raw.ID, err)
			continue
		}
		if _, dup := seen[order.ID()]; dup {
			l.skip(op, i, raw.ID, errors.New("duplicate order id"))
			continue
		}
		seen[order.ID()] = struct{}{}
		orders = append(orders, order)
	}

	if len(orders) == 0 {
		return nil, payment.Warningf(op, "no valid orders loaded (%d entries read)", len(entries))
	}
	l.logger.Debug("loaded orders",
		zap.String("op", op),
		zap.Int("entries", len(entries)),
		zap.Int("orders", len(orders)),
	)
	return orders, nil
}

// ParsePaymentMethods decodes a JSON array of payment methods. Every entry
// must declare both a discount and a limit key.
func (l *Loader) ParsePaymentMethods(r io.Reader) ([]*payment.PaymentMethod, error) {
	const op = "loader.ParsePaymentMethods"

	entries, err := decodeArray(r, op, "payment methods")
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		_, hasDiscount := entry["discount"]
		_, hasLimit := entry["limit"]
		if !hasDiscount || !hasLimit {
			return nil, payment.Warningf(op, "missing 'discount' or 'limit' field in one or more payment methods")
		}
	}

	methods := make([]*payment.PaymentMethod, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for i, entry := range entries {
		raw := methodEntry{ID: text(entry["id"]), Discount: text(entry["discount"]), Limit: text(entry["limit"])}
		if err := l.validate.Struct(raw); err != nil {
			l.skip(op, i, raw.ID, err)
			continue
		}
		discount, err := decimal.NewFromString(raw.Discount)
		if err != nil {
			l.skip(op, i, raw.ID, err)
			continue
		}
		limit, err := decimal.NewFromString(raw.Limit)
		if err != nil {
			l.skip(op, i, raw.ID, err)
			continue
		}
		method, err := payment.NewPaymentMethod(raw.ID, discount, limit)
		if err != nil {
			l.skip(op, i, raw.ID, err)
			continue
		}
		if _, dup := seen[method.ID()]; dup {
			l.skip(op, i, raw.ID, errors.New("duplicate payment method id"))
			continue
		}
		seen[method.ID()] = struct{}{}
		methods = append(methods, method)
	}

	if len(methods) == 0 {
		return nil, payment.Warningf(op, "no valid payment methods loaded (%d entries read)", len(entries))
	}
	l.logger.Debug("loaded payment methods",
		zap.String("op", op),
		zap.Int("entries", len(entries)),
		zap.Int("methods", len(methods)),
	)
	return methods, nil
}

func (l *Loader) skip(op string, index int, id string, err error) {
	l.logger.Warn("skipping invalid entry",
		zap.String("op", op),
		zap.Int("index", index),
		zap.String("id", id),
		zap.Error(err),
	)
}

// decodeArray decodes r into a list of JSON objects. Malformed JSON is an
// error; a root that is not an array of objects is a warning.
func decodeArray(r io.Reader, op, what string) ([]map[string]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var root any
	if err := dec.Decode(&root); err != nil {
		return nil, &payment.Error{Kind: payment.KindError, Op: op, Msg: "invalid " + what + " JSON", Err: err}
	}
	items, ok := root.([]any)
	if !ok {
		return nil, payment.Warningf(op, "%s JSON root must be an array", what)
	}

	entries := make([]map[string]any, 0, len(items))
	for i, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, payment.Warningf(op, "%s entry %d must be an object", what, i)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// text returns the textual form of a scalar JSON value. Null, missing and
// composite values yield an empty string.
func text(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case json.Number:
		return val.String()
	default:
		return ""
	}
}

// promotions keeps only the non-blank string elements of a promotions
// array. Numbers, nulls and nested values are not method ids.
func promotions(v any) []string {
	items, ok := v.([]any)
	if !ok || len(items) == 0 {
		return nil
	}
	promos := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			promos = append(promos, s)
		}
	}
	if len(promos) == 0 {
		return nil
	}
	return promos
}
