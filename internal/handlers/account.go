package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"event-storefront/internal/services"
	"event-storefront/web/templates"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// AccountHandler serves the signed-in user's orders and the ticket holder
// assignment flow.
type AccountHandler struct {
	base
	account *services.AccountService
}

func NewAccountHandler(session *services.SessionService, account *services.AccountService, renderer *templates.Renderer, log *logrus.Logger) *AccountHandler {
	return &AccountHandler{
		base:    base{session: session, renderer: renderer, log: log},
		account: account,
	}
}

// Show renders the account page: all orders, newest first as the backend
// returns them, each with its tickets and assignment state.
func (h *AccountHandler) Show(w http.ResponseWriter, r *http.Request) {
	data := newPageData(r)

	orders, err := h.account.Orders(r.Context(), h.session.Client(r))
	if err != nil {
		h.handleAPIError(w, r, err, func(message string) {
			data.Error = message
			h.renderPage(w, "account", data)
		})
		return
	}

	data.Data["Orders"] = orders
	h.renderPage(w, "account", data)
}

// AssignForm returns the inline holder form for one ticket.
func (h *AccountHandler) AssignForm(w http.ResponseWriter, r *http.Request) {
	ticketID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	data := newPageData(r)
	data.Data["TicketID"] = ticketID
	data.Data["Form"] = url.Values{}
	h.renderFragment(w, "assign_form", data)
}

// Assign sets the holder on a ticket. Validation failures re-render the
// inline form; success swaps in the assigned ticket row.
func (h *AccountHandler) Assign(w http.ResponseWriter, r *http.Request) {
	ticketID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	assignment, fieldErrors := h.account.ValidateAssignment(
		r.PostForm.Get("holder_name"), r.PostForm.Get("holder_email"))
	if fieldErrors != nil {
		data := newPageData(r)
		data.Data["TicketID"] = ticketID
		data.Data["Form"] = r.PostForm
		data.Data["FieldErrors"] = fieldErrors
		h.renderFragment(w, "assign_form", data)
		return
	}

	ticket, err := h.account.AssignTicket(r.Context(), h.session.Client(r), ticketID, assignment)
	if err != nil {
		h.handleAPIError(w, r, err, func(message string) {
			data := newPageData(r)
			data.Error = message
			data.Data["TicketID"] = ticketID
			data.Data["Form"] = r.PostForm
			h.renderFragment(w, "assign_form", data)
		})
		return
	}

	data := newPageData(r)
	data.Data["Ticket"] = ticket
	h.renderFragment(w, "ticket", data)
}
