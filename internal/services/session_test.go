package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"event-storefront/internal/api"
	"event-storefront/internal/models"

	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionService() *SessionService {
	store := sessions.NewCookieStore([]byte("test-secret-key"))
	client := api.NewClient("http://backend.local", time.Second, logrus.New())
	return NewSessionService(store, client, logrus.New())
}

// withCookies builds a follow-up request carrying the cookies the previous
// response set.
func withCookies(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	return r
}

func TestSessionService_CartStaging(t *testing.T) {
	svc := newTestSessionService()

	cart := &models.Cart{
		EventID:   10,
		EventName: "Show",
		Items: []models.CartItem{
			{TicketClassID: 1, TicketName: "VIP", UnitPrice: 15000, Quantity: 2},
		},
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	require.NoError(t, svc.StageCart(w, r, cart))

	loaded, err := svc.LoadCart(withCookies(w))
	require.NoError(t, err)
	assert.Equal(t, 10, loaded.EventID)
	assert.Equal(t, "Show", loaded.EventName)
	require.Len(t, loaded.Items, 1)
	assert.Equal(t, 2, loaded.Items[0].Quantity)
	assert.Equal(t, models.Cents(15000), loaded.Items[0].UnitPrice)
}

func TestSessionService_LoadCartWithoutStaging(t *testing.T) {
	svc := newTestSessionService()

	r := httptest.NewRequest(http.MethodGet, "/checkout", nil)
	_, err := svc.LoadCart(r)

	assert.ErrorIs(t, err, models.ErrNoStagedCart)
}

func TestSessionService_EmptyCartCountsAsMissing(t *testing.T) {
	svc := newTestSessionService()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	require.NoError(t, svc.StageCart(w, r, &models.Cart{EventID: 10}))

	_, err := svc.LoadCart(withCookies(w))
	assert.ErrorIs(t, err, models.ErrNoStagedCart)
}

func TestSessionService_ClearCart(t *testing.T) {
	svc := newTestSessionService()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	cart := &models.Cart{EventID: 10, Items: []models.CartItem{{TicketClassID: 1, Quantity: 1}}}
	require.NoError(t, svc.StageCart(w, r, cart))

	w2 := httptest.NewRecorder()
	svc.ClearCart(w2, withCookies(w))

	_, err := svc.LoadCart(withCookies(w2))
	assert.ErrorIs(t, err, models.ErrNoStagedCart)
}

func TestSessionService_OrderStaging(t *testing.T) {
	svc := newTestSessionService()

	order := &models.Order{
		ID:          42,
		TotalAmount: 35000,
		Status:      models.OrderPending,
		PaymentData: map[string]interface{}{"pix_copy_paste": "00020126BR"},
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	require.NoError(t, svc.StageOrder(w, r, order))

	loaded, err := svc.LoadStagedOrder(withCookies(w))
	require.NoError(t, err)
	assert.Equal(t, 42, loaded.ID)
	assert.Equal(t, models.OrderPending, loaded.Status)
	assert.Equal(t, "00020126BR", loaded.PixCode())
}

func TestSessionService_LoadStagedOrderWithoutStaging(t *testing.T) {
	svc := newTestSessionService()

	r := httptest.NewRequest(http.MethodGet, "/payment", nil)
	_, err := svc.LoadStagedOrder(r)

	assert.ErrorIs(t, err, models.ErrNoStagedOrder)
}

func TestSessionService_LogoutClearsEverything(t *testing.T) {
	svc := newTestSessionService()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	cart := &models.Cart{EventID: 10, Items: []models.CartItem{{TicketClassID: 1, Quantity: 1}}}
	require.NoError(t, svc.StageCart(w, r, cart))

	w2 := httptest.NewRecorder()
	require.NoError(t, svc.StageOrder(w2, withCookies(w), &models.Order{ID: 42}))

	w3 := httptest.NewRecorder()
	svc.Logout(w3, withCookies(w2))

	after := withCookies(w3)
	_, cartErr := svc.LoadCart(after)
	_, orderErr := svc.LoadStagedOrder(after)
	assert.ErrorIs(t, cartErr, models.ErrNoStagedCart)
	assert.ErrorIs(t, orderErr, models.ErrNoStagedOrder)
	assert.Empty(t, svc.Token(after))
	assert.Nil(t, svc.CurrentUser(after))
}
