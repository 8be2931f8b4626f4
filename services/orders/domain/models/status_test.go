package models

import "testing"

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"Pending", "Out for Delivery", "Delivered", "Cancelled"} {
		if _, err := ParseStatus(s); err != nil {
			t.Errorf("ParseStatus(%q) returned %v", s, err)
		}
	}
	for _, s := range []string{"", "pending", "Shipped", "OUT FOR DELIVERY"} {
		if _, err := ParseStatus(s); err == nil {
			t.Errorf("ParseStatus(%q) expected error", s)
		}
	}
}

func TestStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusOutForDelivery, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusDelivered, false},
		{StatusPending, StatusPending, false},
		{StatusOutForDelivery, StatusDelivered, true},
		{StatusOutForDelivery, StatusCancelled, true},
		{StatusOutForDelivery, StatusPending, false},
		{StatusDelivered, StatusPending, false},
		{StatusDelivered, StatusOutForDelivery, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusDelivered, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransitionTo(c.to); got != c.want {
			t.Errorf("%s -> %s: got %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	if StatusPending.IsTerminal() || StatusOutForDelivery.IsTerminal() {
		t.Error("Pending and Out for Delivery must not be terminal")
	}
	if !StatusDelivered.IsTerminal() || !StatusCancelled.IsTerminal() {
		t.Error("Delivered and Cancelled must be terminal")
	}
}
