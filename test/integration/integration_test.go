package integration

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/payment-optimizer/internal/config"
	"github.com/iwvelando/payment-optimizer/internal/loader"
	"github.com/iwvelando/payment-optimizer/internal/optimizer"
	"github.com/iwvelando/payment-optimizer/internal/payment"
	"github.com/iwvelando/payment-optimizer/pkg/output"
	"github.com/iwvelando/payment-optimizer/pkg/testutil"
	"go.uber.org/zap"
)

// runFiles mirrors main(): load both documents, optimize and render the
// plain report.
func runFiles(t *testing.T, conf *config.Configuration) (string, *optimizer.Result) {
	t.Helper()
	logger := zap.NewNop()

	ld := loader.New(logger)
	orders, err := ld.Orders(conf.Input.Orders)
	if err != nil {
		t.Fatalf("Orders() error = %v", err)
	}
	methods, err := ld.PaymentMethods(conf.Input.PaymentMethods)
	if err != nil {
		t.Fatalf("PaymentMethods() error = %v", err)
	}

	result, err := optimizer.NewRunner(logger, optimizer.Options{
		PointsID: conf.Optimizer.PointsID,
		Workers:  conf.Optimizer.Workers,
	}).Run(orders, methods)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var buf bytes.Buffer
	if err := output.Plain(&buf, result.Usage()); err != nil {
		t.Fatalf("Plain() error = %v", err)
	}
	return buf.String(), result
}

// TestMainIntegrationBaseline checks the bundled example data still
// produces the recorded report.
func TestMainIntegrationBaseline(t *testing.T) {
	conf, err := config.LoadConfiguration("../testdata/config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("unexpected configuration warnings: %v", warnings)
	}

	report, result := runFiles(t, conf)

	baseline, err := os.ReadFile("../testdata/baseline.txt")
	if err != nil {
		t.Fatalf("failed to read baseline: %v", err)
	}
	if report != string(baseline) {
		t.Errorf("report differs from baseline:\n%s\nwant:\n%s", report, baseline)
	}

	if len(result.Assignments) != 4 {
		t.Fatalf("expected 4 assignments, got %d", len(result.Assignments))
	}
	for _, a := range result.Assignments {
		if a.Option == nil || a.Option.Type != optimizer.TypePartialPoints || a.Option.Percent != 10 {
			t.Errorf("%s: expected a 10%% partial points commit, got %+v", a.OrderID, a.Option)
		}
		if !a.FullyPaid() {
			t.Errorf("%s: residual %s left unsettled", a.OrderID, a.Residual)
		}
	}
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name      string
		orders    string
		methods   string
		expected  string
		remaining map[string]string
	}{
		{
			name:      "Card only",
			orders:    `[{"id": "o1", "value": "100", "promotions": ["CARD1"]}]`,
			methods:   `[{"id": "CARD1", "discount": "10", "limit": "100"}]`,
			expected:  "CARD1 90.00\n",
			remaining: map[string]string{"CARD1": "10.00"},
		},
		{
			name:      "Partial points preferred on a density tie",
			orders:    `[{"id": "o1", "value": "100", "promotions": null}]`,
			methods:   `[{"id": "PUNKTY", "discount": "50", "limit": "100"}, {"id": "CARD1", "discount": "10", "limit": "100"}]`,
			expected:  "PUNKTY 90.00\n",
			remaining: map[string]string{"PUNKTY": "10.00", "CARD1": "100"},
		},
		{
			name:      "Full points",
			orders:    `[{"id": "o1", "value": "100", "promotions": []}]`,
			methods:   `[{"id": "PUNKTY", "discount": "80", "limit": "100"}]`,
			expected:  "PUNKTY 20.00\n",
			remaining: map[string]string{"PUNKTY": "80.00"},
		},
		{
			name:      "Insufficient limit across orders",
			orders:    `[{"id": "o1", "value": 100, "promotions": ["CARD"]}, {"id": "o2", "value": 100, "promotions": ["CARD"]}]`,
			methods:   `[{"id": "CARD", "discount": 10, "limit": 100}]`,
			expected:  "CARD 100.00\n",
			remaining: map[string]string{"CARD": "0.00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			conf, err := config.LoadConfiguration("")
			if err != nil {
				t.Fatalf("LoadConfiguration() error = %v", err)
			}
			conf.Input.Orders = writeFile(t, dir, "orders.json", tt.orders)
			conf.Input.PaymentMethods = writeFile(t, dir, "paymentmethods.json", tt.methods)

			report, result := runFiles(t, conf)
			if report != tt.expected {
				t.Errorf("report = %q, want %q", report, tt.expected)
			}
			for id, want := range tt.remaining {
				method := testutil.FindMethod(result.Methods, id)
				if method == nil {
					t.Fatalf("method %s missing from result", id)
				}
				testutil.AssertDecimal(t, id+" remaining", method.Remaining(), want)
			}
		})
	}
}

func TestLoaderRejectsIncompleteDocuments(t *testing.T) {
	dir := t.TempDir()
	ld := loader.New(zap.NewNop())

	_, err := ld.Orders(writeFile(t, dir, "orders.json", `[{"id": "o1", "value": "10"}]`))
	if !payment.IsWarning(err) {
		t.Errorf("expected warning for missing promotions, got %v", err)
	}

	_, err = ld.PaymentMethods(writeFile(t, dir, "methods.json", `[{"id": "A", "discount": "10"}]`))
	if !payment.IsWarning(err) {
		t.Errorf("expected warning for missing limit, got %v", err)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
