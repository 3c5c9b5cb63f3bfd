package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusShipped, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, true},
		{OrderStatusShipped, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusShipped, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusShipped, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatusNoSelfTransition(t *testing.T) {
	for _, status := range []OrderStatus{OrderStatusPending, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled} {
		assert.False(t, status.CanTransitionTo(status), "%s -> %s", status, status)
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, ok := ParseOrderStatus("Shipped")
	assert.True(t, ok)
	assert.Equal(t, OrderStatusShipped, status)

	_, ok = ParseOrderStatus("shipped")
	assert.False(t, ok, "status values are case sensitive")

	_, ok = ParseOrderStatus("Teleported")
	assert.False(t, ok)
}
