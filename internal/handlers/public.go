package handlers

import (
	"net/http"
	"strconv"

	"event-storefront/internal/api"
	"event-storefront/internal/models"
	"event-storefront/internal/services"
	"event-storefront/web/templates"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// PublicHandler serves the event listing and detail pages. Both are readable
// without signing in.
type PublicHandler struct {
	base
}

func NewPublicHandler(session *services.SessionService, renderer *templates.Renderer, log *logrus.Logger) *PublicHandler {
	return &PublicHandler{base{session: session, renderer: renderer, log: log}}
}

// Home redirects to the event listing.
func (h *PublicHandler) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/events", http.StatusMovedPermanently)
}

// ListEvents renders the event listing with optional search filters.
func (h *PublicHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	filters := api.EventFilters{
		Search:   r.URL.Query().Get("search"),
		City:     r.URL.Query().Get("city"),
		Category: r.URL.Query().Get("category"),
	}

	data := newPageData(r)
	data.Data["Filters"] = filters

	events, err := h.session.Client(r).ListEvents(r.Context(), filters)
	if err != nil {
		h.handleAPIError(w, r, err, func(message string) {
			data.Error = message
			data.Data["Events"] = []models.Event{}
			h.renderPage(w, "events", data)
		})
		return
	}

	data.Data["Events"] = events
	h.renderPage(w, "events", data)
}

// ShowEvent renders the event detail page with its ticket classes and the
// current selection for this event.
func (h *PublicHandler) ShowEvent(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	event, err := h.session.Client(r).GetEvent(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrEventNotFound) {
			http.NotFound(w, r)
			return
		}
		h.handleAPIError(w, r, err, func(message string) {
			h.redirect(w, r, "/events")
		})
		return
	}

	data := newPageData(r)
	data.Data["Event"] = event
	data.Data["Cart"] = h.cartForEvent(r, event)
	h.renderPage(w, "event", data)
}

// cartForEvent returns the staged cart when it belongs to this event, or a
// fresh empty one. A selection for another event never bleeds through.
func (h *PublicHandler) cartForEvent(r *http.Request, event *models.Event) *models.Cart {
	cart, err := h.session.LoadCart(r)
	if err != nil || cart.EventID != event.ID {
		return &models.Cart{EventID: event.ID, EventName: event.Name}
	}
	return cart
}
