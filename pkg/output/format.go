// Package output provides utilities for formatting and displaying optimization results.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iwvelando/payment-optimizer/internal/optimizer"
	"github.com/iwvelando/payment-optimizer/pkg/mathutil"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Plain writes one "<id> <used>" line per payment method with positive
// usage, in input order. This is the machine-consumed report format.
func Plain(w io.Writer, usages []optimizer.Usage) error {
	for _, u := range usages {
		if _, err := fmt.Fprintf(w, "%s %s\n", u.MethodID, mathutil.Round(u.Used).StringFixed(2)); err != nil {
			return err
		}
	}
	return nil
}

// PlainString renders Plain into a string.
func PlainString(usages []optimizer.Usage) string {
	var b strings.Builder
	_ = Plain(&b, usages)
	return b.String()
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, result *optimizer.Result) {
	p := message.NewPrinter(language.English)

	_, _ = fmt.Fprintf(w, "--- Payment methods ---\n")
	_, _ = fmt.Fprintf(w, "Method | Limit | Used | Remaining\n")
	_, _ = fmt.Fprintf(w, "______ | _____ | ____ | _________\n")
	for _, m := range result.Methods {
		_, _ = fmt.Fprintf(w, "%s | %s | %s | %s\n", m.ID(), amount(p, m.Limit()), amount(p, m.Used()), amount(p, m.Remaining()))
	}

	_, _ = fmt.Fprintf(w, "\n--- Orders ---\n")
	_, _ = fmt.Fprintf(w, "Order | Value | Assigned | Residual | Notes\n")
	_, _ = fmt.Fprintf(w, "_____ | _____ | ________ | ________ | _____\n")
	for _, a := range result.Assignments {
		_, _ = fmt.Fprintf(w, "%s | %s | %s | %s | %s\n", a.OrderID, amount(p, a.Value), describe(a.Option), amount(p, a.Residual), strings.Join(notes(a), ","))
	}

	_, _ = fmt.Fprintf(w, "\nTotal discount: %s\n", amount(p, result.TotalProfit()))
}

// CsvFormat outputs the payment method table in comma-separated value format.
func CsvFormat(w io.Writer, result *optimizer.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"method", "limit", "used", "remaining"}); err != nil {
		return err
	}
	for _, m := range result.Methods {
		record := []string{
			m.ID(),
			mathutil.Round(m.Limit()).StringFixed(2),
			m.Used().StringFixed(2),
			mathutil.Round(m.Remaining()).StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// amount renders d with two decimals and locale digit grouping. Only the
// integer part goes through the printer, so no digits are lost to float
// conversion. Integer parts beyond int64 are printed ungrouped.
func amount(p *message.Printer, d decimal.Decimal) string {
	fixed := mathutil.Round(d).StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	whole, frac, _ := strings.Cut(fixed, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return sign + fixed
	}
	return sign + p.Sprintf("%d", n) + "." + frac
}

func describe(opt *optimizer.Option) string {
	if opt == nil {
		return "-"
	}
	if opt.Type == optimizer.TypePartialPoints {
		return fmt.Sprintf("%s %s %d%%", opt.Method.ID(), opt.Type, opt.Percent)
	}
	return fmt.Sprintf("%s %s", opt.Method.ID(), opt.Type)
}

func notes(a optimizer.Assignment) []string {
	var out []string
	for _, s := range a.Settled {
		out = append(out, fmt.Sprintf("%s paid %s", s.MethodID, s.Amount.StringFixed(2)))
	}
	if !a.FullyPaid() {
		out = append(out, "unsettled")
	}
	return out
}
