package handlers

import (
	"net/http"
	"net/url"

	"event-storefront/internal/api"
	"event-storefront/internal/middleware"
	"event-storefront/internal/models"
	"event-storefront/internal/services"
	"event-storefront/web/templates"

	"github.com/cockroachdb/errors"
	"github.com/sirupsen/logrus"
)

// PageData is the envelope every template receives. Data carries the
// page-specific payload.
type PageData struct {
	User      *models.User
	CSRFToken string
	Error     string
	Flash     string
	Data      map[string]interface{}
}

func newPageData(r *http.Request) *PageData {
	return &PageData{
		User:      middleware.GetUserFromContext(r.Context()),
		CSRFToken: middleware.GetCSRFTokenFromContext(r.Context()),
		// FieldErrors and Form must always be indexable: templates look
		// fields up with index/Get, and an untyped nil aborts the render
		// mid-page. Handlers overwrite them when they have real values.
		Data: map[string]interface{}{
			"FieldErrors": map[string][]string(nil),
			"Form":        url.Values{},
		},
	}
}

// base wires the dependencies every handler group shares.
type base struct {
	session  *services.SessionService
	renderer *templates.Renderer
	log      *logrus.Logger
}

func (b *base) renderPage(w http.ResponseWriter, name string, data *PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := b.renderer.Page(w, name, data); err != nil {
		b.log.WithError(err).WithField("page", name).Error("template render failed")
	}
}

func (b *base) renderFragment(w http.ResponseWriter, name string, data *PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := b.renderer.Fragment(w, name, data); err != nil {
		b.log.WithError(err).WithField("fragment", name).Error("template render failed")
	}
}

// redirect performs an HTMX-aware redirect: HX-Redirect for fragment
// requests, a plain 303 otherwise.
func (b *base) redirect(w http.ResponseWriter, r *http.Request, to string) {
	if middleware.IsHTMXRequest(r) {
		w.Header().Set("HX-Redirect", to)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// handleAPIError translates backend failures into navigation. A 401 means the
// token went stale: the session is wiped and the user lands on the login page.
// Everything else renders the given fallback.
func (b *base) handleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback func(message string)) {
	if errors.Is(err, models.ErrUnauthorized) {
		b.log.WithField("path", r.URL.Path).Info("backend rejected token, forcing logout")
		b.session.Logout(w, r)
		b.redirect(w, r, "/login?redirect="+url.QueryEscape(r.URL.Path))
		return
	}

	b.log.WithError(err).WithField("path", r.URL.Path).Error("backend request failed")
	fallback(userMessage(err))
}

// userMessage maps an error to something fit for the notification banner.
func userMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrEventNotFound):
		return "Evento não encontrado."
	case errors.Is(err, models.ErrOrderNotFound):
		return "Pedido não encontrado."
	case errors.Is(err, models.ErrTicketNotFound):
		return "Ingresso não encontrado."
	case errors.Is(err, models.ErrTicketAssigned):
		return "Este ingresso já tem um participante atribuído."
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrHolderCountWrong):
		return "Os dados enviados são inválidos. Revise e tente novamente."
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return "Não foi possível completar a operação. Tente novamente em instantes."
}
