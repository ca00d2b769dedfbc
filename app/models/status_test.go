package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hydroline/hydroline/app/models"
)

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		from, to models.ItemStatus
		ok       bool
	}{
		{models.StatusProcessing, models.StatusPacked, true},
		{models.StatusProcessing, models.StatusCancelled, true},
		{models.StatusProcessing, models.StatusShipped, false},
		{models.StatusProcessing, models.StatusDelivered, false},
		{models.StatusPacked, models.StatusShipped, true},
		{models.StatusPacked, models.StatusCancelled, true},
		{models.StatusPacked, models.StatusProcessing, false},
		{models.StatusShipped, models.StatusOutForDelivery, true},
		{models.StatusShipped, models.StatusCancelled, false},
		{models.StatusOutForDelivery, models.StatusDelivered, true},
		{models.StatusOutForDelivery, models.StatusCancelled, false},
		{models.StatusDelivered, models.StatusReturned, true},
		{models.StatusDelivered, models.StatusProcessing, false},
		{models.StatusCancelled, models.StatusProcessing, false},
		{models.StatusCancelled, models.StatusPacked, false},
		{models.StatusReturned, models.StatusDelivered, false},
	}

	for _, c := range cases {
		got, err := models.Transition(c.from, c.to)
		if c.ok {
			assert.NoError(t, err, "%s -> %s", c.from, c.to)
			assert.Equal(t, c.to, got)
		} else {
			assert.Error(t, err, "%s -> %s", c.from, c.to)
			assert.Equal(t, c.from, got, "failed transition must not move the item")
		}
	}
}

func TestTransitionRejectsUnknownStatus(t *testing.T) {
	got, err := models.Transition(models.StatusProcessing, "Teleported")
	assert.Error(t, err)
	assert.Equal(t, models.StatusProcessing, got)
}

func TestCanCancel(t *testing.T) {
	assert.True(t, models.CanCancel(models.StatusProcessing))
	assert.True(t, models.CanCancel(models.StatusPacked))

	assert.False(t, models.CanCancel(models.StatusShipped))
	assert.False(t, models.CanCancel(models.StatusOutForDelivery))
	assert.False(t, models.CanCancel(models.StatusDelivered))
	assert.False(t, models.CanCancel(models.StatusCancelled))
	assert.False(t, models.CanCancel(models.StatusReturned))
}

func TestRefundableAmount(t *testing.T) {
	item := models.OrderItem{Price: 100000, Quantity: 2, DeliveryCharge: 5000}
	assert.Equal(t, int64(205000), item.RefundableAmount())

	// A discount price replaces the list price per unit.
	item.DiscountPrice = 80000
	assert.Equal(t, int64(165000), item.RefundableAmount())
}

func TestEffectivePriceAndDiscountPercent(t *testing.T) {
	p := models.Product{Price: 100000}
	assert.Equal(t, int64(100000), p.EffectivePrice())
	assert.Equal(t, 0, p.DiscountPercent())

	p.DiscountPrice = 75000
	assert.Equal(t, int64(75000), p.EffectivePrice())
	assert.Equal(t, 25, p.DiscountPercent())
}
