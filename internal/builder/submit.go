package builder

import (
	"context"
	"errors"
)

var (
	ErrNotAtCheckout    = errors.New("order is not at checkout")
	ErrSubmitInProgress = errors.New("order submission already in progress")
	ErrAlreadySubmitted = errors.New("order already submitted")
	ErrNoOrderLines     = errors.New("order has no menus")
)

// Contact holds the customer fields sent alongside the payload.
type Contact struct {
	ClientName  string `json:"clientName" form:"clientName"`
	ClientPhone string `json:"clientPhone" form:"clientPhone"`
	ClientEmail string `json:"clientEmail" form:"clientEmail"`
	Address     string `json:"address" form:"address"`
	EventDate   string `json:"eventDate" form:"eventDate"`
	Message     string `json:"message" form:"message"`
	Locale      string `json:"locale" form:"locale"`
}

// CheckoutForm mirrors the checkout form submission.
type CheckoutForm struct {
	OrderData string `json:"orderData" form:"orderData"`
	Contact
}

// Result is what checkout reports back.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Submitter receives a finished order.
type Submitter interface {
	Submit(ctx context.Context, form CheckoutForm) Result
}

// BeginSubmit freezes the draft and returns the form to send. Only one
// submission may be in flight at a time.
func (b *Builder) BeginSubmit(contact Contact) (CheckoutForm, error) {
	switch {
	case b.completed:
		return CheckoutForm{}, ErrAlreadySubmitted
	case b.submitting:
		return CheckoutForm{}, ErrSubmitInProgress
	case b.phase != PhaseCheckout:
		return CheckoutForm{}, ErrNotAtCheckout
	case len(b.ActiveMenus()) == 0:
		return CheckoutForm{}, ErrNoOrderLines
	}

	data, err := b.OrderData()
	if err != nil {
		return CheckoutForm{}, err
	}
	b.submitting = true
	return CheckoutForm{OrderData: data, Contact: contact}, nil
}

// FinishSubmit records the outcome. A failed submission leaves the draft
// editable with every selection intact.
func (b *Builder) FinishSubmit(res Result) {
	b.submitting = false
	if res.Success {
		b.completed = true
	}
}

// Submit runs BeginSubmit, the submitter and FinishSubmit in one call.
func (b *Builder) Submit(ctx context.Context, sub Submitter, contact Contact) Result {
	form, err := b.BeginSubmit(contact)
	if err != nil {
		return Result{Success: false, Message: err.Error()}
	}
	res := sub.Submit(ctx, form)
	b.FinishSubmit(res)
	return res
}
