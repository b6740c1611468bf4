package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"event-storefront/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventBackend(mux *http.ServeMux) *http.ServeMux {
	event := models.Event{
		ID:   10,
		Name: "Festival da Cidade",
		TicketClasses: []models.TicketClass{
			{ID: 1, EventID: 10, Name: "VIP", Price: 15000},
			{ID: 2, EventID: 10, Name: "Pista", Price: 5000},
		},
	}
	mux.HandleFunc("/events/10/", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(event)
	})
	return mux
}

func addSeat(t *testing.T, app *testApp, classID string) *http.Response {
	t.Helper()
	return app.postForm(t, "/events/10/cart/increment", url.Values{
		"ticket_class_id": {classID},
	})
}

func TestCart_IncrementRendersSelection(t *testing.T) {
	app := newTestApp(t, eventBackend(authBackend(http.NewServeMux())))

	resp := addSeat(t, app, "1")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "1x VIP")
	assert.Contains(t, string(body), "R$ 150,00")
}

func TestCart_DecrementToEmpty(t *testing.T) {
	app := newTestApp(t, eventBackend(authBackend(http.NewServeMux())))

	addSeat(t, app, "1")
	resp := app.postForm(t, "/events/10/cart/decrement", url.Values{
		"ticket_class_id": {"1"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Selecione seus ingressos")
}

func TestCart_UnknownTicketClassRejected(t *testing.T) {
	app := newTestApp(t, eventBackend(authBackend(http.NewServeMux())))

	resp := app.postForm(t, "/events/10/cart/increment", url.Values{
		"ticket_class_id": {"99"},
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCheckout_ShowWithoutCartRedirects(t *testing.T) {
	app := newTestApp(t, eventBackend(authBackend(http.NewServeMux())))
	app.signIn(t)

	resp := app.get(t, "/checkout")

	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/events", resp.Header.Get("Location"))
}

func TestCheckout_ShowRendersOneSlotPerSeat(t *testing.T) {
	app := newTestApp(t, eventBackend(authBackend(http.NewServeMux())))
	app.signIn(t)
	addSeat(t, app, "1")
	addSeat(t, app, "1")
	addSeat(t, app, "2")

	resp := app.get(t, "/checkout")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	html := string(body)
	assert.Contains(t, html, "holder_name_0")
	assert.Contains(t, html, "holder_name_1")
	assert.Contains(t, html, "holder_name_2")
	assert.NotContains(t, html, "holder_name_3")
	assert.Contains(t, html, "R$ 350,00")
}

func TestCheckout_SubmitCreatesOrderAndMovesToPayment(t *testing.T) {
	mux := eventBackend(authBackend(http.NewServeMux()))

	var gotOrder models.OrderCreateRequest
	mux.HandleFunc("/orders/", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotOrder))
		json.NewEncoder(w).Encode(models.Order{
			ID:          42,
			TotalAmount: 35000,
			Status:      models.OrderPending,
			PaymentData: map[string]interface{}{"pix_copy_paste": "00020126BR"},
		})
	})

	app := newTestApp(t, mux)
	app.signIn(t)
	addSeat(t, app, "1")
	addSeat(t, app, "1")
	addSeat(t, app, "2")

	resp := app.postForm(t, "/checkout", url.Values{
		"holder_name_0":  {"Ana Souza"},
		"holder_email_0": {"ana@example.com"},
		"holder_name_1":  {"Bruno Lima"},
		"holder_email_1": {"bruno@example.com"},
		"holder_name_2":  {"Carla Dias"},
		"holder_email_2": {"carla@example.com"},
		"billing_type":   {"PIX"},
		"terms":          {"1"},
	})

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/payment", resp.Header.Get("Location"))

	require.Len(t, gotOrder.Items, 2)
	assert.Equal(t, 1, gotOrder.Items[0].TicketClassID)
	require.Len(t, gotOrder.Items[0].Holders, 2)
	assert.Equal(t, "Ana Souza", gotOrder.Items[0].Holders[0].HolderName)
	assert.Equal(t, "Carla Dias", gotOrder.Items[1].Holders[0].HolderName)
	assert.Equal(t, models.BillingPix, gotOrder.BillingType)

	// The cart was consumed: checkout is no longer reachable.
	resp = app.get(t, "/checkout")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	// And the payment page shows the staged order.
	resp = app.get(t, "/payment")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Pedido #42")
}

func TestCheckout_SubmitWithMissingHolderRerendersForm(t *testing.T) {
	mux := eventBackend(authBackend(http.NewServeMux()))
	orderCalls := 0
	mux.HandleFunc("/orders/", func(w http.ResponseWriter, r *http.Request) {
		orderCalls++
	})

	app := newTestApp(t, mux)
	app.signIn(t)
	addSeat(t, app, "1")

	resp := app.postForm(t, "/checkout", url.Values{
		"holder_name_0":  {""},
		"holder_email_0": {"ana@example.com"},
		"billing_type":   {"PIX"},
		"terms":          {"1"},
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Nome do participante é obrigatório")
	assert.Equal(t, 0, orderCalls, "validation failures must not reach the backend")

	// The earlier submission stays filled in.
	assert.Contains(t, string(body), "ana@example.com")
}

func TestAccount_AssignValidationStaysLocal(t *testing.T) {
	mux := authBackend(http.NewServeMux())
	assignCalls := 0
	mux.HandleFunc("/tickets/7/assign/", func(w http.ResponseWriter, r *http.Request) {
		assignCalls++
	})

	app := newTestApp(t, mux)
	app.signIn(t)

	resp := app.postForm(t, "/account/tickets/7/assign", url.Values{
		"holder_name":  {"Ana"},
		"holder_email": {"not-an-email"},
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "E-mail inválido")
	assert.Equal(t, 0, assignCalls)
}

func TestAccount_AssignSuccessRendersTicket(t *testing.T) {
	mux := authBackend(http.NewServeMux())
	mux.HandleFunc("/tickets/7/assign/", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		json.NewEncoder(w).Encode(models.Ticket{
			ID: 7, TicketClassName: "VIP",
			HolderName: "Ana Souza", HolderEmail: "ana@example.com",
		})
	})

	app := newTestApp(t, mux)
	app.signIn(t)

	resp := app.postForm(t, "/account/tickets/7/assign", url.Values{
		"holder_name":  {"Ana Souza"},
		"holder_email": {"ana@example.com"},
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	html := string(body)
	assert.Contains(t, html, "Ana Souza")
	assert.False(t, strings.Contains(html, "assign-form"), "assigned ticket should not offer the form again")
}

func TestAccount_AssignRefusedShowsMessage(t *testing.T) {
	mux := authBackend(http.NewServeMux())
	mux.HandleFunc("/tickets/7/assign/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "ticket already assigned"})
	})

	app := newTestApp(t, mux)
	app.signIn(t)

	resp := app.postForm(t, "/account/tickets/7/assign", url.Values{
		"holder_name":  {"Ana Souza"},
		"holder_email": {"ana@example.com"},
	})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "já tem um participante")
}
