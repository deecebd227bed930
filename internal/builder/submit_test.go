package builder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSubmitter struct {
	result Result
	forms  []CheckoutForm
	during func()
}

func (s *stubSubmitter) Submit(_ context.Context, form CheckoutForm) Result {
	s.forms = append(s.forms, form)
	if s.during != nil {
		s.during()
	}
	return s.result
}

func checkoutReady(t *testing.T) *Builder {
	t.Helper()
	b := newBuilder(t, menuA())
	b.SetPortionsDirect("A", 3)
	require.True(t, b.StartDishSelection())
	b.ToggleDish("A", "D1")
	b.ToggleDish("A", "D2")
	require.True(t, b.GoToNextMenu())
	return b
}

var testContact = Contact{
	ClientName:  "Ana",
	ClientPhone: "+381 60 000 0000",
	ClientEmail: "ana@example.com",
	Address:     "Knez Mihailova 1",
	EventDate:   "2030-05-01T18:00",
	Locale:      "sr",
}

func TestSubmit_Success(t *testing.T) {
	b := checkoutReady(t)
	sub := &stubSubmitter{result: Result{Success: true, Message: "ok"}}

	res := b.Submit(context.Background(), sub, testContact)

	assert.True(t, res.Success)
	assert.True(t, b.Completed())
	require.Len(t, sub.forms, 1)
	assert.Equal(t, "Ana", sub.forms[0].ClientName)

	parsed, err := ParsePayload(sub.forms[0].OrderData)
	require.NoError(t, err)
	assert.Equal(t, 3, parsed.TotalPortions)

	assert.False(t, b.BackToDishes())
	res = b.Submit(context.Background(), sub, testContact)
	assert.False(t, res.Success)
	assert.Len(t, sub.forms, 1)
}

func TestSubmit_FailureKeepsDraft(t *testing.T) {
	b := checkoutReady(t)
	sub := &stubSubmitter{result: Result{Success: false, Message: "mail down"}}

	res := b.Submit(context.Background(), sub, testContact)

	assert.False(t, res.Success)
	assert.Equal(t, "mail down", res.Message)
	assert.False(t, b.Completed())
	assert.False(t, b.Submitting())
	assert.Equal(t, PhaseCheckout, b.Phase())
	assert.Equal(t, []string{"D1", "D2"}, b.SelectedDishIDs("A"))

	sub.result = Result{Success: true}
	assert.True(t, b.Submit(context.Background(), sub, testContact).Success)
}

func TestSubmit_RejectsReentry(t *testing.T) {
	b := checkoutReady(t)
	sub := &stubSubmitter{result: Result{Success: true}}
	var inner Result
	sub.during = func() {
		inner = b.Submit(context.Background(), &stubSubmitter{result: Result{Success: true}}, testContact)
		assert.False(t, b.ToggleDish("A", "D3"))
		assert.False(t, b.BackToDishes())
	}

	res := b.Submit(context.Background(), sub, testContact)

	assert.True(t, res.Success)
	assert.False(t, inner.Success)
	assert.Equal(t, ErrSubmitInProgress.Error(), inner.Message)
}

func TestBeginSubmit_RequiresCheckout(t *testing.T) {
	b := newBuilder(t, menuA())
	b.SetPortionsDirect("A", 1)

	_, err := b.BeginSubmit(testContact)
	assert.ErrorIs(t, err, ErrNotAtCheckout)
}
