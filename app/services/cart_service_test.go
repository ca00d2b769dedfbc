package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydroline/hydroline/app/services"
)

func TestCartAddAndGet(t *testing.T) {
	e := newEnv(t)
	svc := services.NewCartService(e.carts)

	user := e.seedUser(t, "buyer@example.com")
	pump := e.seedProduct(t, "gear-pump", 485000, 5)
	hose := e.seedProduct(t, "hose-kit", 60000, 5)

	cart, err := svc.Add(user.ID, []services.CartLineInput{
		{ProductID: pump.ID, Quantity: 2},
		{ProductID: hose.ID, Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	require.NotNil(t, cart.Items[0].Product)
	assert.Equal(t, "gear-pump", cart.Items[0].Product.Name)
}

func TestCartAddDuplicateProductRejectsWholeRequest(t *testing.T) {
	e := newEnv(t)
	svc := services.NewCartService(e.carts)

	user := e.seedUser(t, "buyer@example.com")
	pump := e.seedProduct(t, "gear-pump", 485000, 5)
	hose := e.seedProduct(t, "hose-kit", 60000, 5)

	_, err := svc.Add(user.ID, []services.CartLineInput{{ProductID: pump.ID, Quantity: 1}})
	require.NoError(t, err)

	// One duplicate fails the batch; the new line is not added either.
	_, err = svc.Add(user.ID, []services.CartLineInput{
		{ProductID: hose.ID, Quantity: 1},
		{ProductID: pump.ID, Quantity: 3},
	})
	assert.ErrorIs(t, err, services.ErrAlreadyInCart)

	cart, err := svc.Get(user.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity, "quantities are never merged")
}

func TestCartAddDropsInvalidLines(t *testing.T) {
	e := newEnv(t)
	svc := services.NewCartService(e.carts)

	user := e.seedUser(t, "buyer@example.com")
	pump := e.seedProduct(t, "gear-pump", 485000, 5)

	cart, err := svc.Add(user.ID, []services.CartLineInput{
		{ProductID: pump.ID, Quantity: 1},
		{ProductID: 0, Quantity: 4},
		{ProductID: pump.ID + 100, Quantity: 0},
	})
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)

	_, err = svc.Add(user.ID, []services.CartLineInput{{ProductID: 0, Quantity: 0}})
	assert.ErrorIs(t, err, services.ErrNoValidItems)
}

func TestCartUpdateQuantity(t *testing.T) {
	e := newEnv(t)
	svc := services.NewCartService(e.carts)

	user := e.seedUser(t, "buyer@example.com")
	pump := e.seedProduct(t, "gear-pump", 485000, 5)

	cart, err := svc.Add(user.ID, []services.CartLineInput{{ProductID: pump.ID, Quantity: 1}})
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	cart, err = svc.UpdateQuantity(user.ID, itemID, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, cart.Items[0].Quantity)

	_, err = svc.UpdateQuantity(user.ID, itemID, 0)
	assert.ErrorIs(t, err, services.ErrInvalidQuantity)

	// Another user cannot touch the line.
	other := e.seedUser(t, "other@example.com")
	_, err = svc.UpdateQuantity(other.ID, itemID, 2)
	assert.ErrorIs(t, err, services.ErrForbidden)
}

func TestCartItemAccessByUserWithoutCart(t *testing.T) {
	e := newEnv(t)
	svc := services.NewCartService(e.carts)

	owner := e.seedUser(t, "buyer@example.com")
	pump := e.seedProduct(t, "gear-pump", 485000, 5)
	cart, err := svc.Add(owner.ID, []services.CartLineInput{{ProductID: pump.ID, Quantity: 1}})
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	// The guessing user never touched their cart, so none exists yet.
	stranger := e.seedUser(t, "stranger@example.com")
	_, err = svc.UpdateQuantity(stranger.ID, itemID, 2)
	assert.ErrorIs(t, err, services.ErrForbidden)
	_, err = svc.Remove(stranger.ID, itemID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	// The line is untouched.
	cart, err = svc.Get(owner.ID)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 1, cart.Items[0].Quantity)
}

func TestCartRemoveAndClear(t *testing.T) {
	e := newEnv(t)
	svc := services.NewCartService(e.carts)

	user := e.seedUser(t, "buyer@example.com")
	pump := e.seedProduct(t, "gear-pump", 485000, 5)
	hose := e.seedProduct(t, "hose-kit", 60000, 5)

	cart, err := svc.Add(user.ID, []services.CartLineInput{
		{ProductID: pump.ID, Quantity: 1},
		{ProductID: hose.ID, Quantity: 2},
	})
	require.NoError(t, err)

	cart, err = svc.Remove(user.ID, cart.Items[0].ID)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)

	require.NoError(t, svc.Clear(user.ID))
	cart, err = svc.Get(user.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	// Clearing a user with no cart is a no-op.
	ghost := e.seedUser(t, "ghost@example.com")
	assert.NoError(t, svc.Clear(ghost.ID))
}
