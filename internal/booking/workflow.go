package booking

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"tourbook/internal/gateway"
)

// State is the booking screen's lifecycle.
type State string

const (
	StateLoading    State = "loading"
	StateReady      State = "ready"
	StateSubmitting State = "submitting"
	StateConfirmed  State = "confirmed"
	StateFailed     State = "failed"
)

// Draft is the in-progress, unsaved booking form state. It exists only while
// the booking screen is active and is discarded on navigation away.
type Draft struct {
	Name            string
	Email           string
	PhoneNumber     string
	Travelers       int
	SpecialRequests string
}

// Invoice is a one-time summary of a completed booking. It is never
// persisted and never retrievable by identifier; it only travels in memory
// from the booking screen to the invoice screen.
type Invoice struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	PackageID     string
	PackageTitle  string
	UnitPrice     float64
	Travelers     int
	TotalPrice    float64
	Reference     string
}

// CoerceTravelers clamps a traveler count to the minimum of one, so a zero
// or negative count can never reach the price multiplication.
func CoerceTravelers(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// Total computes total price = unit price x traveler count.
func Total(unitPrice float64, travelers int) float64 {
	return unitPrice * float64(CoerceTravelers(travelers))
}

// Workflow drives one booking attempt:
// Loading -> Ready -> Submitting -> Confirmed, with Failed reachable from
// Submitting and retryable back into Submitting.
type Workflow struct {
	state      State
	pkg        gateway.Package
	draft      Draft
	total      float64
	key        string
	failReason string
}

// New returns a workflow in the Loading state for the given package id.
func New(packageID string) *Workflow {
	return &Workflow{
		state: StateLoading,
		pkg:   gateway.Package{ID: packageID},
		draft: Draft{Travelers: 1},
	}
}

func (w *Workflow) State() State { return w.state }

func (w *Workflow) Package() gateway.Package { return w.pkg }

func (w *Workflow) Draft() Draft { return w.draft }

func (w *Workflow) Total() float64 { return w.total }

func (w *Workflow) FailureReason() string { return w.failReason }

// Begin applies the fetched package: Loading -> Ready. The total starts as
// one traveler's unit price.
func (w *Workflow) Begin(pkg gateway.Package) error {
	if w.state != StateLoading {
		return fmt.Errorf("begin: not loading (state %s)", w.state)
	}
	w.pkg = pkg
	w.draft.Travelers = 1
	w.total = Total(pkg.Price, 1)
	w.state = StateReady
	return nil
}

// SetName, SetEmail, SetPhone, and SetSpecialRequests each update exactly one
// draft field. They are no-ops outside Ready.
func (w *Workflow) SetName(v string)            { w.editable(func() { w.draft.Name = v }) }
func (w *Workflow) SetEmail(v string)           { w.editable(func() { w.draft.Email = v }) }
func (w *Workflow) SetPhone(v string)           { w.editable(func() { w.draft.PhoneNumber = v }) }
func (w *Workflow) SetSpecialRequests(v string) { w.editable(func() { w.draft.SpecialRequests = v }) }

// SetTravelers updates the count and recomputes the total from the cached
// unit price. The count is coerced to at least one.
func (w *Workflow) SetTravelers(n int) {
	w.editable(func() {
		w.draft.Travelers = CoerceTravelers(n)
		w.total = Total(w.pkg.Price, w.draft.Travelers)
	})
}

func (w *Workflow) editable(fn func()) {
	if w.state == StateReady {
		fn()
	}
}

// Submit moves Ready -> Submitting and returns the request to post. The
// idempotency key is minted once per workflow so a retry of a failed attempt
// reuses it and the gateway can dedupe.
func (w *Workflow) Submit() (gateway.BookingRequest, error) {
	if w.state != StateReady {
		return gateway.BookingRequest{}, fmt.Errorf("submit: not ready (state %s)", w.state)
	}
	if strings.TrimSpace(w.draft.Name) == "" {
		return gateway.BookingRequest{}, fmt.Errorf("submit: name required")
	}
	if strings.TrimSpace(w.draft.Email) == "" {
		return gateway.BookingRequest{}, fmt.Errorf("submit: email required")
	}
	if w.key == "" {
		w.key = uuid.NewString()
	}
	w.state = StateSubmitting
	return w.request(), nil
}

// Confirm moves Submitting -> Confirmed and synthesizes the invoice from the
// draft plus the cached package.
func (w *Workflow) Confirm() (Invoice, error) {
	if w.state != StateSubmitting {
		return Invoice{}, fmt.Errorf("confirm: not submitting (state %s)", w.state)
	}
	w.state = StateConfirmed
	return Invoice{
		CustomerName:  w.draft.Name,
		CustomerEmail: w.draft.Email,
		CustomerPhone: w.draft.PhoneNumber,
		PackageID:     w.pkg.ID,
		PackageTitle:  w.pkg.Title,
		UnitPrice:     w.pkg.Price,
		Travelers:     w.draft.Travelers,
		TotalPrice:    w.total,
		Reference:     w.key,
	}, nil
}

// Fail moves Submitting -> Failed, keeping the draft intact for retry.
func (w *Workflow) Fail(reason string) {
	if w.state == StateSubmitting {
		w.state = StateFailed
		w.failReason = reason
	}
}

// Retry re-submits a failed attempt with the same request, including the
// original idempotency key.
func (w *Workflow) Retry() (gateway.BookingRequest, error) {
	if w.state != StateFailed {
		return gateway.BookingRequest{}, fmt.Errorf("retry: not failed (state %s)", w.state)
	}
	w.state = StateSubmitting
	w.failReason = ""
	return w.request(), nil
}

func (w *Workflow) request() gateway.BookingRequest {
	return gateway.BookingRequest{
		PackageID:         w.pkg.ID,
		Name:              w.draft.Name,
		Email:             w.draft.Email,
		PhoneNumber:       w.draft.PhoneNumber,
		NumberOfTravelers: CoerceTravelers(w.draft.Travelers),
		SpecialRequests:   w.draft.SpecialRequests,
		TotalPrice:        w.total,
		IdempotencyKey:    w.key,
	}
}
