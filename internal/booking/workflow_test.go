package booking

import (
	"testing"

	"tourbook/internal/gateway"
)

func beachTour() gateway.Package {
	return gateway.Package{ID: "p1", Title: "Beach Tour", Price: 100}
}

func readyWorkflow(t *testing.T) *Workflow {
	t.Helper()
	w := New("p1")
	if w.State() != StateLoading {
		t.Fatalf("state = %s, want loading", w.State())
	}
	if err := w.Begin(beachTour()); err != nil {
		t.Fatalf("begin: %v", err)
	}
	return w
}

func TestTotalCoercesTravelers(t *testing.T) {
	cases := []struct {
		travelers int
		want      float64
	}{
		{1, 100},
		{3, 300},
		{10, 1000},
		{0, 100},  // coerced to 1
		{-5, 100}, // coerced to 1
	}
	for _, tc := range cases {
		if got := Total(100, tc.travelers); got != tc.want {
			t.Errorf("Total(100, %d) = %v, want %v", tc.travelers, got, tc.want)
		}
	}
}

func TestTotalProperty(t *testing.T) {
	for n := 1; n <= 50; n++ {
		for _, p := range []float64{0, 1, 49.99, 100, 1234.5} {
			if got, want := Total(p, n), p*float64(n); got != want {
				t.Fatalf("Total(%v, %d) = %v, want %v", p, n, got, want)
			}
		}
	}
}

func TestBeginInitializesTotal(t *testing.T) {
	w := readyWorkflow(t)
	if w.State() != StateReady {
		t.Fatalf("state = %s, want ready", w.State())
	}
	if w.Total() != 100 {
		t.Fatalf("total = %v, want 100 (unit price x 1)", w.Total())
	}
	if w.Draft().Travelers != 1 {
		t.Fatalf("travelers = %d, want 1", w.Draft().Travelers)
	}
}

func TestTravelerEditRecomputesTotal(t *testing.T) {
	w := readyWorkflow(t)
	w.SetTravelers(3)
	if w.Total() != 300 {
		t.Fatalf("total = %v, want 300", w.Total())
	}
	w.SetTravelers(0)
	if w.Draft().Travelers != 1 || w.Total() != 100 {
		t.Fatalf("after SetTravelers(0): travelers = %d total = %v, want 1 and 100",
			w.Draft().Travelers, w.Total())
	}
}

func TestSubmitRequiresContact(t *testing.T) {
	w := readyWorkflow(t)
	if _, err := w.Submit(); err == nil {
		t.Fatal("submit with empty name should fail")
	}
	w.SetName("Ada")
	if _, err := w.Submit(); err == nil {
		t.Fatal("submit with empty email should fail")
	}
	if w.State() != StateReady {
		t.Fatalf("state = %s, failed validation must not leave ready", w.State())
	}
}

func TestSubmitConfirmScenario(t *testing.T) {
	w := readyWorkflow(t)
	w.SetName("Ada Lovelace")
	w.SetEmail("ada@example.com")
	w.SetPhone("555-0100")
	w.SetTravelers(3)

	req, err := w.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if w.State() != StateSubmitting {
		t.Fatalf("state = %s, want submitting", w.State())
	}
	if req.PackageID != "p1" || req.NumberOfTravelers != 3 || req.TotalPrice != 300 {
		t.Fatalf("unexpected request: %+v", req)
	}
	if req.IdempotencyKey == "" {
		t.Fatal("expected an idempotency key")
	}

	inv, err := w.Confirm()
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if w.State() != StateConfirmed {
		t.Fatalf("state = %s, want confirmed", w.State())
	}
	if inv.PackageTitle != "Beach Tour" {
		t.Fatalf("invoice title = %q, want Beach Tour", inv.PackageTitle)
	}
	if inv.TotalPrice != 300 {
		t.Fatalf("invoice total = %v, want 300", inv.TotalPrice)
	}
	if inv.CustomerName != "Ada Lovelace" || inv.Travelers != 3 {
		t.Fatalf("unexpected invoice: %+v", inv)
	}
}

func TestFailAndRetryKeepsDraftAndKey(t *testing.T) {
	w := readyWorkflow(t)
	w.SetName("Ada")
	w.SetEmail("ada@example.com")
	w.SetTravelers(2)

	first, err := w.Submit()
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	w.Fail("gateway: 502")
	if w.State() != StateFailed {
		t.Fatalf("state = %s, want failed", w.State())
	}
	if w.FailureReason() != "gateway: 502" {
		t.Fatalf("reason = %q", w.FailureReason())
	}

	second, err := w.Retry()
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if w.State() != StateSubmitting {
		t.Fatalf("state = %s, want submitting", w.State())
	}
	if second.IdempotencyKey != first.IdempotencyKey {
		t.Fatal("retry must reuse the original idempotency key")
	}
	if second != first {
		t.Fatalf("retry request differs: %+v vs %+v", second, first)
	}
}

func TestEditsIgnoredOutsideReady(t *testing.T) {
	w := New("p1")
	w.SetName("early")
	if w.Draft().Name != "" {
		t.Fatal("edit during loading should be ignored")
	}

	w = readyWorkflow(t)
	w.SetName("Ada")
	w.SetEmail("ada@example.com")
	if _, err := w.Submit(); err != nil {
		t.Fatalf("submit: %v", err)
	}
	w.SetTravelers(9)
	if w.Total() != 100 {
		t.Fatalf("total changed while submitting: %v", w.Total())
	}
}

func TestConfirmOnlyFromSubmitting(t *testing.T) {
	w := readyWorkflow(t)
	if _, err := w.Confirm(); err == nil {
		t.Fatal("confirm from ready should fail")
	}
	if _, err := w.Retry(); err == nil {
		t.Fatal("retry from ready should fail")
	}
}
