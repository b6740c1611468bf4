package handlers

import (
	"net/http"
	"net/url"

	"event-storefront/internal/models"
	"event-storefront/internal/services"
	"event-storefront/web/templates"

	"github.com/sirupsen/logrus"
)

// CheckoutHandler turns the staged cart into a backend order. Reaching any of
// these routes without a staged cart silently redirects back to the listing;
// an expired attempt is not an error page.
type CheckoutHandler struct {
	base
	checkout *services.CheckoutService
}

func NewCheckoutHandler(session *services.SessionService, checkout *services.CheckoutService, renderer *templates.Renderer, log *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		base:     base{session: session, renderer: renderer, log: log},
		checkout: checkout,
	}
}

// Start is the cart box submit target. It only verifies a selection exists
// before sending the browser to the checkout form.
func (h *CheckoutHandler) Start(w http.ResponseWriter, r *http.Request) {
	if _, err := h.session.LoadCart(r); err != nil {
		h.redirect(w, r, "/events")
		return
	}
	h.redirect(w, r, "/checkout")
}

// Show renders the checkout form with one holder slot per selected seat.
func (h *CheckoutHandler) Show(w http.ResponseWriter, r *http.Request) {
	cart, err := h.session.LoadCart(r)
	if err != nil {
		h.redirect(w, r, "/events")
		return
	}

	h.renderForm(w, r, cart, url.Values{}, nil, "")
}

// Submit validates the form, creates the order and moves on to the payment
// page. Validation failures re-render the form with the submission intact; a
// backend failure keeps the cart so the user can retry.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	cart, err := h.session.LoadCart(r)
	if err != nil {
		h.redirect(w, r, "/events")
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form, fieldErrors := h.checkout.ParseForm(r.PostForm, cart)
	if fieldErrors != nil {
		h.renderForm(w, r, cart, r.PostForm, fieldErrors, "")
		return
	}

	order, err := h.checkout.Submit(r.Context(), h.session.Client(r), cart, form)
	if err != nil {
		h.handleAPIError(w, r, err, func(message string) {
			h.renderForm(w, r, cart, r.PostForm, nil, message)
		})
		return
	}

	if err := h.session.StageOrder(w, r, order); err != nil {
		h.log.WithError(err).WithField("order_id", order.ID).Error("failed to stage order")
	}
	h.session.ClearCart(w, r)

	h.redirect(w, r, "/payment")
}

func (h *CheckoutHandler) renderForm(w http.ResponseWriter, r *http.Request, cart *models.Cart, form url.Values, fieldErrors map[string][]string, errorMessage string) {
	data := newPageData(r)
	data.Error = errorMessage
	data.Data["Cart"] = cart
	data.Data["Slots"] = h.checkout.HolderSlots(cart)
	data.Data["BillingTypes"] = models.BillingTypes
	data.Data["Form"] = form
	data.Data["FieldErrors"] = fieldErrors
	h.renderPage(w, "checkout", data)
}
