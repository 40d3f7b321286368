package domain

import "testing"

func TestStatusCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusProcessing, StatusCompleted, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusProcessing, StatusPending, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusProcessing, false},
		{StatusCancelled, StatusProcessing, false},
		{StatusCancelled, StatusCompleted, false},
	}

	for _, c := range cases {
		if got := c.from.CanTransition(c.to); got != c.want {
			t.Errorf("CanTransition(%s -> %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusProcessing, StatusCompleted, StatusCancelled} {
		if !s.Valid() {
			t.Errorf("expected %s to be valid", s)
		}
	}
	if Status("Shipped").Valid() {
		t.Error("expected unknown status to be invalid")
	}
}

func TestOrderTotals(t *testing.T) {
	o := Order{
		Items: []OrderItem{
			{Quantity: 2, UnitAmount: 1000},
			{Quantity: 1, UnitAmount: 500},
		},
	}
	if got := o.TotalAmount(); got != 2500 {
		t.Fatalf("TotalAmount = %d, want 2500", got)
	}
	if got := o.TotalItems(); got != 3 {
		t.Fatalf("TotalItems = %d, want 3", got)
	}
}
