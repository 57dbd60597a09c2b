package docnum

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

var numberRE = regexp.MustCompile(`^(VTE|FACT)-\d{8}-[0-9A-F]{8}$`)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	}
}

func TestNextSaleNumberShape(t *testing.T) {
	g := NewWithClock(fixedClock())

	num := g.NextSaleNumber()
	if !numberRE.MatchString(num) {
		t.Fatalf("malformed sale number: %s", num)
	}
	if !strings.HasPrefix(num, "VTE-20260315-") {
		t.Errorf("expected date part 20260315, got %s", num)
	}
}

func TestNextInvoiceNumberShape(t *testing.T) {
	g := NewWithClock(fixedClock())

	num := g.NextInvoiceNumber()
	if !numberRE.MatchString(num) {
		t.Fatalf("malformed invoice number: %s", num)
	}
	if !strings.HasPrefix(num, "FACT-20260315-") {
		t.Errorf("expected date part 20260315, got %s", num)
	}
}

func TestNumbersAreUnique(t *testing.T) {
	g := New()

	seen := make(map[string]struct{}, 20000)
	for i := 0; i < 10000; i++ {
		n := g.NextSaleNumber()
		if _, dup := seen[n]; dup {
			t.Fatalf("duplicate sale number after %d generations: %s", i, n)
		}
		seen[n] = struct{}{}

		n = g.NextInvoiceNumber()
		if _, dup := seen[n]; dup {
			t.Fatalf("duplicate invoice number after %d generations: %s", i, n)
		}
		seen[n] = struct{}{}
	}
}

func TestNextCustomPrefix(t *testing.T) {
	g := NewWithClock(fixedClock())

	num := g.Next("PRD")
	if !strings.HasPrefix(num, "PRD-20260315-") {
		t.Errorf("unexpected number: %s", num)
	}
	if len(num) != len("PRD-20260315-")+8 {
		t.Errorf("unexpected token length in %s", num)
	}
}
