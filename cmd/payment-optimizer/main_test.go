package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	ordersFile  = "testdata/orders.json"
	methodsFile = "testdata/paymentmethods.json"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestRunPlainReport(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-log-level", "error", ordersFile, methodsFile}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("run() = %d, stderr: %s", code, stderr.String())
	}

	expected := "PUNKTY 100.00\nmZysk 180.00\nBosBankrut 170.00\n"
	if stdout.String() != expected {
		t.Errorf("unexpected report:\n%s\nwant:\n%s", stdout.String(), expected)
	}
}

func TestRunFlagsAndWorkers(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{
		"-log-level", "error",
		"-orders", ordersFile,
		"-methods", methodsFile,
		"-workers", "4",
	}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("run() = %d, stderr: %s", code, stderr.String())
	}
	if !strings.HasPrefix(stdout.String(), "PUNKTY 100.00\n") {
		t.Errorf("unexpected report: %q", stdout.String())
	}
}

func TestRunConfigFile(t *testing.T) {
	dir := t.TempDir()
	orders, _ := filepath.Abs(ordersFile)
	methods, _ := filepath.Abs(methodsFile)
	configPath := writeFile(t, dir, "config.yaml", `
input:
  orders: `+orders+`
  paymentMethods: `+methods+`
logging:
  level: error
output:
  format: csv
`)

	var stdout, stderr bytes.Buffer
	code := run([]string{"-config", configPath}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("run() = %d, stderr: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "BosBankrut,200.00,170.00,30.00") {
		t.Errorf("expected csv row for BosBankrut, got:\n%s", stdout.String())
	}
}

func TestRunPointsIDOverride(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-log-level", "error", "-points-id", "NONE", ordersFile, methodsFile}, &stdout, &stderr)
	if code != exitOK {
		t.Fatalf("run() = %d, stderr: %s", code, stderr.String())
	}
	// PUNKTY becomes an ordinary card that only absorbs residuals.
	expected := "PUNKTY 100.00\nmZysk 180.00\nBosBankrut 200.00\n"
	if stdout.String() != expected {
		t.Errorf("unexpected report:\n%s\nwant:\n%s", stdout.String(), expected)
	}
}

func TestRunFailures(t *testing.T) {
	dir := t.TempDir()
	missingPromotions := writeFile(t, dir, "orders.json", `[{"id": "o1", "value": "10"}]`)
	malformed := writeFile(t, dir, "broken.json", `[{"id": `)

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"Unknown flag", []string{"-bogus"}, exitInvalid},
		{"Wrong argument count", []string{"-log-level", "error", ordersFile}, exitInvalid},
		{"Invalid output format", []string{"-log-level", "error", "-output-format", "xml", ordersFile, methodsFile}, exitInvalid},
		{"Invalid log level", []string{"-log-level", "loud", ordersFile, methodsFile}, exitFailure},
		{"Missing config file", []string{"-config", filepath.Join(dir, "nope.yaml")}, exitFailure},
		{"Missing orders file", []string{"-log-level", "error", filepath.Join(dir, "nope.json"), methodsFile}, exitFailure},
		{"Malformed orders", []string{"-log-level", "error", malformed, methodsFile}, exitFailure},
		{"Orders without promotions", []string{"-log-level", "error", missingPromotions, methodsFile}, exitInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := run(tt.args, &stdout, &stderr); got != tt.want {
				t.Errorf("run() = %d, want %d (stderr: %s)", got, tt.want, stderr.String())
			}
			if stdout.Len() != 0 {
				t.Errorf("expected no report on failure, got %q", stdout.String())
			}
		})
	}
}
