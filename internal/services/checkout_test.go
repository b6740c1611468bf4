package services

import (
	"net/url"
	"testing"

	"event-storefront/internal/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCart() *models.Cart {
	return &models.Cart{
		EventID:   10,
		EventName: "Show",
		Items: []models.CartItem{
			{TicketClassID: 1, TicketName: "VIP", UnitPrice: 15000, Quantity: 2},
			{TicketClassID: 2, TicketName: "Pista", UnitPrice: 5000, Quantity: 1},
		},
	}
}

func validForm() url.Values {
	return url.Values{
		"holder_name_0":  {"Ana Souza"},
		"holder_email_0": {"ana@example.com"},
		"holder_name_1":  {"Bruno Lima"},
		"holder_email_1": {"bruno@example.com"},
		"holder_name_2":  {"Carla Dias"},
		"holder_email_2": {"carla@example.com"},
		"billing_type":   {"PIX"},
		"terms":          {"1"},
	}
}

func TestCheckoutService_HolderSlots(t *testing.T) {
	svc := NewCheckoutService(logrus.New())

	slots := svc.HolderSlots(testCart())

	require.Len(t, slots, 3)
	assert.Equal(t, "VIP", slots[0].TicketName)
	assert.Equal(t, "VIP", slots[1].TicketName)
	assert.Equal(t, "Pista", slots[2].TicketName)
	for i, slot := range slots {
		assert.Equal(t, i, slot.Index)
	}
}

func TestCheckoutService_ParseForm(t *testing.T) {
	svc := NewCheckoutService(logrus.New())

	t.Run("valid submission", func(t *testing.T) {
		form, fieldErrors := svc.ParseForm(validForm(), testCart())

		require.Nil(t, fieldErrors)
		require.NotNil(t, form)
		assert.Len(t, form.Holders, 3)
		assert.Equal(t, models.BillingPix, form.BillingType)
		assert.True(t, form.Terms)
		assert.Equal(t, "Bruno Lima", form.Holders[1].HolderName)
	})

	t.Run("missing holder name", func(t *testing.T) {
		values := validForm()
		values.Set("holder_name_1", "")

		form, fieldErrors := svc.ParseForm(values, testCart())

		assert.Nil(t, form)
		assert.Contains(t, fieldErrors, "holder_name_1")
		assert.NotContains(t, fieldErrors, "holder_name_0")
	})

	t.Run("invalid holder email", func(t *testing.T) {
		values := validForm()
		values.Set("holder_email_2", "not-an-email")

		form, fieldErrors := svc.ParseForm(values, testCart())

		assert.Nil(t, form)
		require.Contains(t, fieldErrors, "holder_email_2")
		assert.Equal(t, []string{"E-mail inválido"}, fieldErrors["holder_email_2"])
	})

	t.Run("missing billing type", func(t *testing.T) {
		values := validForm()
		values.Del("billing_type")

		form, fieldErrors := svc.ParseForm(values, testCart())

		assert.Nil(t, form)
		assert.Contains(t, fieldErrors, "billing_type")
	})

	t.Run("unknown billing type", func(t *testing.T) {
		values := validForm()
		values.Set("billing_type", "CASH")

		_, fieldErrors := svc.ParseForm(values, testCart())

		assert.Contains(t, fieldErrors, "billing_type")
	})

	t.Run("terms not accepted", func(t *testing.T) {
		values := validForm()
		values.Del("terms")

		form, fieldErrors := svc.ParseForm(values, testCart())

		assert.Nil(t, form)
		assert.Contains(t, fieldErrors, "terms")
	})

	t.Run("whitespace is trimmed", func(t *testing.T) {
		values := validForm()
		values.Set("holder_name_0", "  Ana Souza  ")

		form, fieldErrors := svc.ParseForm(values, testCart())

		require.Nil(t, fieldErrors)
		assert.Equal(t, "Ana Souza", form.Holders[0].HolderName)
	})
}

func TestCheckoutService_BuildOrderRequest(t *testing.T) {
	svc := NewCheckoutService(logrus.New())

	t.Run("holders map onto items contiguously", func(t *testing.T) {
		cart := testCart()
		form := &CheckoutForm{
			Holders: []models.HolderInput{
				{HolderName: "Ana", HolderEmail: "ana@example.com"},
				{HolderName: "Bruno", HolderEmail: "bruno@example.com"},
				{HolderName: "Carla", HolderEmail: "carla@example.com"},
			},
			BillingType: models.BillingPix,
			Terms:       true,
		}

		req, err := svc.BuildOrderRequest(cart, form)

		require.NoError(t, err)
		require.Len(t, req.Items, 2)

		assert.Equal(t, 1, req.Items[0].TicketClassID)
		assert.Equal(t, 2, req.Items[0].Quantity)
		require.Len(t, req.Items[0].Holders, 2)
		assert.Equal(t, "Ana", req.Items[0].Holders[0].HolderName)
		assert.Equal(t, "Bruno", req.Items[0].Holders[1].HolderName)

		assert.Equal(t, 2, req.Items[1].TicketClassID)
		assert.Equal(t, 1, req.Items[1].Quantity)
		require.Len(t, req.Items[1].Holders, 1)
		assert.Equal(t, "Carla", req.Items[1].Holders[0].HolderName)

		assert.NotEmpty(t, req.Reference)
	})

	t.Run("holder count mismatch", func(t *testing.T) {
		cart := testCart()
		form := &CheckoutForm{
			Holders: []models.HolderInput{
				{HolderName: "Ana", HolderEmail: "ana@example.com"},
			},
			BillingType: models.BillingPix,
		}

		_, err := svc.BuildOrderRequest(cart, form)

		assert.ErrorIs(t, err, models.ErrHolderCountWrong)
	})
}
