package services

import (
	"context"
	"encoding/json"
	"net/http"

	"event-storefront/internal/api"
	"event-storefront/internal/models"

	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
)

const sessionName = "session"

// Session value keys. All per-browser state the storefront keeps lives under
// these four entries; there is no schema versioning of the payloads.
const (
	sessionKeyToken       = "token"
	sessionKeyUser        = "user"
	sessionKeyCart        = "cart"
	sessionKeyStagedOrder = "staged_order"
)

// SessionService owns the per-browser state: auth token, cached user record,
// staged cart and staged order. It is injected into whichever handler needs
// it rather than living as a package-level singleton.
type SessionService struct {
	store  sessions.Store
	client *api.Client
	log    *logrus.Logger
}

// NewSessionService creates a session service backed by the given store.
func NewSessionService(store sessions.Store, client *api.Client, log *logrus.Logger) *SessionService {
	return &SessionService{store: store, client: client, log: log}
}

// Client returns an API client authenticated as the request's user, or an
// anonymous client when nobody is signed in.
func (s *SessionService) Client(r *http.Request) *api.Client {
	return s.client.WithToken(s.Token(r))
}

// Token returns the stored bearer token, empty when signed out.
func (s *SessionService) Token(r *http.Request) string {
	session, err := s.store.Get(r, sessionName)
	if err != nil {
		return ""
	}
	token, _ := session.Values[sessionKeyToken].(string)
	return token
}

// CurrentUser returns the cached user record, nil when signed out.
func (s *SessionService) CurrentUser(r *http.Request) *models.User {
	session, err := s.store.Get(r, sessionName)
	if err != nil {
		return nil
	}
	raw, ok := session.Values[sessionKeyUser].(string)
	if !ok || raw == "" {
		return nil
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil
	}
	return &user
}

// Login authenticates against the backend and stores the token and user.
func (s *SessionService) Login(ctx context.Context, w http.ResponseWriter, r *http.Request, req *models.LoginRequest) (*models.User, error) {
	resp, err := s.client.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.saveAuth(w, r, resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Register creates the account and signs the user in immediately.
func (s *SessionService) Register(ctx context.Context, w http.ResponseWriter, r *http.Request, req *models.RegisterRequest) (*models.User, error) {
	resp, err := s.client.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.saveAuth(w, r, resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Logout clears the token, cached user and any staged payloads. Also invoked
// by the middleware whenever the backend answers 401.
func (s *SessionService) Logout(w http.ResponseWriter, r *http.Request) {
	session, err := s.store.Get(r, sessionName)
	if err != nil {
		return
	}
	delete(session.Values, sessionKeyToken)
	delete(session.Values, sessionKeyUser)
	delete(session.Values, sessionKeyCart)
	delete(session.Values, sessionKeyStagedOrder)
	if err := session.Save(r, w); err != nil {
		s.log.WithError(err).Warn("failed to clear session")
	}
}

func (s *SessionService) saveAuth(w http.ResponseWriter, r *http.Request, resp *models.AuthResponse) error {
	session, err := s.store.Get(r, sessionName)
	if err != nil {
		return err
	}
	userJSON, err := json.Marshal(resp.User)
	if err != nil {
		return err
	}
	session.Values[sessionKeyToken] = resp.Token
	session.Values[sessionKeyUser] = string(userJSON)
	return session.Save(r, w)
}

// StageCart persists the cart across the navigation to checkout. This is the
// only handoff point where the selection is written out.
func (s *SessionService) StageCart(w http.ResponseWriter, r *http.Request, cart *models.Cart) error {
	return s.setJSON(w, r, sessionKeyCart, cart)
}

// LoadCart reconstructs the staged cart; ErrNoStagedCart when the checkout
// was reached without one (treated as an expired attempt, not an error page).
func (s *SessionService) LoadCart(r *http.Request) (*models.Cart, error) {
	var cart models.Cart
	if !s.getJSON(r, sessionKeyCart, &cart) || cart.IsEmpty() {
		return nil, models.ErrNoStagedCart
	}
	return &cart, nil
}

// ClearCart drops the staged cart after checkout submits or is abandoned.
func (s *SessionService) ClearCart(w http.ResponseWriter, r *http.Request) {
	s.clearKey(w, r, sessionKeyCart)
}

// StageOrder persists the freshly created order for the payment page.
func (s *SessionService) StageOrder(w http.ResponseWriter, r *http.Request, order *models.Order) error {
	return s.setJSON(w, r, sessionKeyStagedOrder, order)
}

// LoadStagedOrder returns the order awaiting payment confirmation;
// ErrNoStagedOrder on direct access without one.
func (s *SessionService) LoadStagedOrder(r *http.Request) (*models.Order, error) {
	var order models.Order
	if !s.getJSON(r, sessionKeyStagedOrder, &order) || order.ID == 0 {
		return nil, models.ErrNoStagedOrder
	}
	return &order, nil
}

// ClearStagedOrder drops the staged order once payment has settled.
func (s *SessionService) ClearStagedOrder(w http.ResponseWriter, r *http.Request) {
	s.clearKey(w, r, sessionKeyStagedOrder)
}

func (s *SessionService) setJSON(w http.ResponseWriter, r *http.Request, key string, v interface{}) error {
	session, err := s.store.Get(r, sessionName)
	if err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	session.Values[key] = string(data)
	return session.Save(r, w)
}

func (s *SessionService) getJSON(r *http.Request, key string, v interface{}) bool {
	session, err := s.store.Get(r, sessionName)
	if err != nil {
		return false
	}
	raw, ok := session.Values[key].(string)
	if !ok || raw == "" {
		return false
	}
	return json.Unmarshal([]byte(raw), v) == nil
}

func (s *SessionService) clearKey(w http.ResponseWriter, r *http.Request, key string) {
	session, err := s.store.Get(r, sessionName)
	if err != nil {
		return
	}
	delete(session.Values, key)
	if err := session.Save(r, w); err != nil {
		s.log.WithError(err).Warn("failed to save session")
	}
}
