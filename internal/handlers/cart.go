package handlers

import (
	"net/http"
	"strconv"

	"event-storefront/internal/models"
	"event-storefront/internal/services"
	"event-storefront/web/templates"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// CartHandler mutates the per-event ticket selection. Every mutation re-reads
// the event so prices and names always come from the backend, never from the
// submitted form.
type CartHandler struct {
	base
}

func NewCartHandler(session *services.SessionService, renderer *templates.Renderer, log *logrus.Logger) *CartHandler {
	return &CartHandler{base{session: session, renderer: renderer, log: log}}
}

// Increment adds one seat of a ticket class and re-renders the cart box.
func (h *CartHandler) Increment(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(cart *models.Cart, class *models.TicketClass) {
		cart.Increment(class)
	})
}

// Decrement removes one seat, dropping the line at zero.
func (h *CartHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(cart *models.Cart, class *models.TicketClass) {
		cart.Decrement(class.ID)
	})
}

func (h *CartHandler) mutate(w http.ResponseWriter, r *http.Request, apply func(*models.Cart, *models.TicketClass)) {
	eventID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	classID, err := strconv.Atoi(r.FormValue("ticket_class_id"))
	if err != nil {
		http.Error(w, "invalid ticket class", http.StatusBadRequest)
		return
	}

	event, err := h.session.Client(r).GetEvent(r.Context(), eventID)
	if err != nil {
		h.handleAPIError(w, r, err, func(message string) {
			http.Error(w, message, http.StatusBadGateway)
		})
		return
	}

	class := event.TicketClassByID(classID)
	if class == nil {
		http.Error(w, "unknown ticket class", http.StatusBadRequest)
		return
	}

	cart := h.cartFor(r, event)
	apply(cart, class)

	if err := h.session.StageCart(w, r, cart); err != nil {
		h.log.WithError(err).Error("failed to stage cart")
		http.Error(w, "session error", http.StatusInternalServerError)
		return
	}

	data := newPageData(r)
	data.Data["Cart"] = cart
	data.Data["Event"] = event
	h.renderFragment(w, "cart_box", data)
}

func (h *CartHandler) cartFor(r *http.Request, event *models.Event) *models.Cart {
	cart, err := h.session.LoadCart(r)
	if err != nil || cart.EventID != event.ID {
		return &models.Cart{EventID: event.ID, EventName: event.Name}
	}
	return cart
}
