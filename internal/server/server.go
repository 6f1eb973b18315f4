// Package server exposes the payment optimizer over HTTP.
package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/iwvelando/payment-optimizer/internal/loader"
	"github.com/iwvelando/payment-optimizer/internal/optimizer"
	"github.com/iwvelando/payment-optimizer/internal/payment"
	"github.com/iwvelando/payment-optimizer/pkg/constants"
	"github.com/iwvelando/payment-optimizer/pkg/output"
	"go.uber.org/zap"
)

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	opts          optimizer.Options
	loader        *loader.Loader
	validate      *validator.Validate
}

// NewHandler constructs the HTTP handler that serves the optimization API.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string, opts optimizer.Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		maxUploadSize: maxUploadSize,
		version:       trimmedVersion,
		opts:          opts,
		loader:        loader.New(logger),
		validate:      validator.New(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/optimize", h.handleOptimize)
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type optimizeRequest struct {
	Orders         json.RawMessage `json:"orders" validate:"required"`
	PaymentMethods json.RawMessage `json:"paymentMethods" validate:"required"`
}

type optimizeResponse struct {
	Usage         []usageRow      `json:"usage"`
	Assignments   []assignmentRow `json:"assignments"`
	Unsettled     []string        `json:"unsettled,omitempty"`
	TotalDiscount string          `json:"totalDiscount"`
	Report        string          `json:"report"`
	Duration      string          `json:"duration"`
}

type usageRow struct {
	ID   string `json:"id"`
	Used string `json:"used"`
}

type assignmentRow struct {
	OrderID     string          `json:"orderId"`
	Value       string          `json:"value"`
	Method      string          `json:"method,omitempty"`
	Type        string          `json:"type,omitempty"`
	Percent     int             `json:"percent,omitempty"`
	Profit      string          `json:"profit,omitempty"`
	Cost        string          `json:"cost,omitempty"`
	Residual    string          `json:"residual"`
	Settlements []settlementRow `json:"settlements,omitempty"`
}

type settlementRow struct {
	Method string `json:"method"`
	Amount string `json:"amount"`
}

func (h *handler) handleOptimize(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleOptimize"

	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r.Body); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxUploadSize), op)
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to read request: %v", err), op)
		return
	}

	var req optimizeRequest
	if err := json.Unmarshal(buf.Bytes(), &req); err != nil {
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "request requires orders and paymentMethods", op)
		return
	}

	orders, err := h.loader.ParseOrders(bytes.NewReader(req.Orders))
	if err != nil {
		h.respondClassified(w, err, op)
		return
	}
	methods, err := h.loader.ParsePaymentMethods(bytes.NewReader(req.PaymentMethods))
	if err != nil {
		h.respondClassified(w, err, op)
		return
	}

	result, err := optimizer.NewRunner(h.logger, h.opts).Run(orders, methods)
	if err != nil {
		h.respondClassified(w, err, op)
		return
	}

	h.writeJSON(w, http.StatusOK, buildResponse(result, time.Since(start)))
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func buildResponse(result *optimizer.Result, elapsed time.Duration) optimizeResponse {
	usages := result.Usage()
	resp := optimizeResponse{
		Usage:         make([]usageRow, 0, len(usages)),
		Assignments:   make([]assignmentRow, 0, len(result.Assignments)),
		TotalDiscount: result.TotalProfit().StringFixed(2),
		Report:        output.PlainString(usages),
		Duration:      elapsed.String(),
	}

	for _, u := range usages {
		resp.Usage = append(resp.Usage, usageRow{ID: u.MethodID, Used: u.Used.StringFixed(2)})
	}

	for _, a := range result.Assignments {
		row := assignmentRow{
			OrderID:  a.OrderID,
			Value:    a.Value.StringFixed(2),
			Residual: a.Residual.StringFixed(2),
		}
		if a.Option != nil {
			row.Method = a.Option.Method.ID()
			row.Type = a.Option.Type.String()
			row.Profit = a.Option.Profit.StringFixed(2)
			row.Cost = a.Option.Cost.StringFixed(2)
			if a.Option.Type == optimizer.TypePartialPoints {
				row.Percent = a.Option.Percent
			}
		}
		for _, s := range a.Settled {
			row.Settlements = append(row.Settlements, settlementRow{Method: s.MethodID, Amount: s.Amount.StringFixed(2)})
		}
		resp.Assignments = append(resp.Assignments, row)
		if !a.FullyPaid() {
			resp.Unsettled = append(resp.Unsettled, a.OrderID)
		}
	}

	return resp
}

// respondClassified maps warning-class failures to 422 and error-class
// failures to 400.
func (h *handler) respondClassified(w http.ResponseWriter, err error, op string) {
	switch payment.KindOf(err) {
	case payment.KindWarning:
		h.respondError(w, http.StatusUnprocessableEntity, err.Error(), op)
	case payment.KindError:
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
	default:
		h.respondError(w, http.StatusInternalServerError, err.Error(), op)
	}
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("optimize request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
