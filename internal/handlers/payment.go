package handlers

import (
	"net/http"
	"strconv"

	"event-storefront/internal/models"
	"event-storefront/internal/services"
	"event-storefront/web/templates"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
	"github.com/skip2/go-qrcode"
)

// htmx stops a polling loop when the server answers 286.
const statusStopPolling = 286

// PaymentHandler renders the payment confirmation page and serves the status
// polling endpoint behind it. The order being paid lives in the session; a
// direct visit without one goes back to the listing.
type PaymentHandler struct {
	base
}

func NewPaymentHandler(session *services.SessionService, renderer *templates.Renderer, log *logrus.Logger) *PaymentHandler {
	return &PaymentHandler{base{session: session, renderer: renderer, log: log}}
}

// Show renders the payment page for the staged order. ?order_id= resumes a
// pending order from the account page, re-staging it for the polling loop.
func (h *PaymentHandler) Show(w http.ResponseWriter, r *http.Request) {
	order, err := h.resumeOrder(w, r)
	if errors.Is(err, models.ErrUnauthorized) {
		h.handleAPIError(w, r, err, func(string) {
			h.redirect(w, r, "/events")
		})
		return
	}
	if err != nil {
		order, err = h.session.LoadStagedOrder(r)
		if err != nil {
			h.redirect(w, r, "/events")
			return
		}
	}

	data := newPageData(r)
	data.Data["Order"] = order
	h.renderPage(w, "payment", data)
}

// Status is the polling target. While the order stays pending it answers 200
// and htmx keeps asking; any other status answers 286, which stops the loop.
// The staged order is cleared exactly once, on the transition to paid.
func (h *PaymentHandler) Status(w http.ResponseWriter, r *http.Request) {
	order, err := h.session.LoadStagedOrder(r)
	if err != nil {
		// Nothing left to poll; tell htmx to stop and send the browser on.
		w.Header().Set("HX-Redirect", "/account")
		w.WriteHeader(statusStopPolling)
		return
	}

	status, err := h.session.Client(r).GetPaymentStatus(r.Context(), order.ID)
	if err != nil {
		h.handleAPIError(w, r, err, func(message string) {
			// Transient backend trouble: keep polling, render the last
			// known state.
			data := newPageData(r)
			data.Data["Order"] = order
			h.renderFragment(w, "payment_status", data)
		})
		return
	}

	order.Status = status.Status
	order.PaidAt = status.PaidAt
	if status.PaymentData != nil {
		order.PaymentData = status.PaymentData
	}

	if order.IsPaid() {
		h.session.ClearStagedOrder(w, r)
	}

	data := newPageData(r)
	data.Data["Order"] = order

	if !order.IsPending() {
		w.WriteHeader(statusStopPolling)
	}
	h.renderFragment(w, "payment_status", data)
}

// Check is the "I already paid" button: one immediate status fetch, then back
// to the payment page with the fresh state.
func (h *PaymentHandler) Check(w http.ResponseWriter, r *http.Request) {
	order, err := h.session.LoadStagedOrder(r)
	if err != nil {
		h.redirect(w, r, "/events")
		return
	}

	status, err := h.session.Client(r).GetPaymentStatus(r.Context(), order.ID)
	if err != nil {
		h.handleAPIError(w, r, err, func(message string) {
			h.redirect(w, r, "/payment")
		})
		return
	}

	order.Status = status.Status
	order.PaidAt = status.PaidAt
	if status.PaymentData != nil {
		order.PaymentData = status.PaymentData
	}

	if order.IsPaid() {
		h.session.ClearStagedOrder(w, r)
		data := newPageData(r)
		data.Data["Order"] = order
		h.renderPage(w, "payment", data)
		return
	}

	if err := h.session.StageOrder(w, r, order); err != nil {
		h.log.WithError(err).Error("failed to re-stage order")
	}
	h.redirect(w, r, "/payment")
}

// QRCode renders the staged order's PIX payload as a PNG.
func (h *PaymentHandler) QRCode(w http.ResponseWriter, r *http.Request) {
	order, err := h.session.LoadStagedOrder(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	code := order.PixCode()
	if code == "" {
		http.NotFound(w, r)
		return
	}

	png, err := qrcode.Encode(code, qrcode.Medium, 240)
	if err != nil {
		h.log.WithError(err).WithField("order_id", order.ID).Error("qr encode failed")
		http.Error(w, "qr unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(png); err != nil {
		h.log.WithError(err).Debug("qr write interrupted")
	}
}

// resumeOrder handles ?order_id=: the order is fetched fresh and staged so
// the polling loop picks it up.
func (h *PaymentHandler) resumeOrder(w http.ResponseWriter, r *http.Request) (*models.Order, error) {
	raw := r.URL.Query().Get("order_id")
	if raw == "" {
		return nil, models.ErrNoStagedOrder
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return nil, models.ErrOrderNotFound
	}

	order, err := h.session.Client(r).GetOrder(r.Context(), id)
	if err != nil {
		return nil, err
	}

	if order.IsPending() {
		if err := h.session.StageOrder(w, r, order); err != nil {
			h.log.WithError(err).WithField("order_id", order.ID).Error("failed to stage order")
		}
	}
	return order, nil
}
