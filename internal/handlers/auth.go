package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"event-storefront/internal/middleware"
	"event-storefront/internal/models"
	"event-storefront/internal/services"
	"event-storefront/web/templates"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// AuthHandler owns login, registration and logout. Credentials are only ever
// forwarded to the backend; nothing password-shaped is stored locally.
type AuthHandler struct {
	base
	validate *validator.Validate
}

func NewAuthHandler(session *services.SessionService, renderer *templates.Renderer, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		base:     base{session: session, renderer: renderer, log: log},
		validate: validator.New(),
	}
}

// LoginPage renders the login form. Already signed-in users go straight to
// their account.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUserFromContext(r.Context()) != nil {
		h.redirect(w, r, "/account")
		return
	}

	data := newPageData(r)
	data.Data["Form"] = url.Values{}
	data.Data["Redirect"] = safeRedirect(r.URL.Query().Get("redirect"))
	h.renderPage(w, "login", data)
}

// Login authenticates against the backend and stores the session.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	req := &models.LoginRequest{
		Email:    strings.TrimSpace(r.PostForm.Get("email")),
		Password: r.PostForm.Get("password"),
	}

	if fieldErrors := h.loginErrors(req); fieldErrors != nil {
		h.renderLogin(w, r, r.PostForm, fieldErrors, "")
		return
	}

	user, err := h.session.Login(r.Context(), w, r, req)
	if err != nil {
		message := "E-mail ou senha incorretos."
		if !errors.Is(err, models.ErrUnauthorized) {
			message = userMessage(err)
		}
		h.log.WithError(err).WithField("email", req.Email).Info("login failed")
		h.renderLogin(w, r, r.PostForm, nil, message)
		return
	}

	h.log.WithField("user_id", user.ID).Info("user signed in")
	h.redirect(w, r, safeRedirect(r.PostForm.Get("redirect")))
}

// RegisterPage renders the registration form.
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetUserFromContext(r.Context()) != nil {
		h.redirect(w, r, "/account")
		return
	}

	data := newPageData(r)
	data.Data["Form"] = url.Values{}
	h.renderPage(w, "register", data)
}

// Register creates the account and signs the user in immediately.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	req := &models.RegisterRequest{
		FullName:   strings.TrimSpace(r.PostForm.Get("full_name")),
		Email:      strings.TrimSpace(r.PostForm.Get("email")),
		CPF:        strings.TrimSpace(r.PostForm.Get("cpf")),
		Password:   r.PostForm.Get("password"),
		Address:    strings.TrimSpace(r.PostForm.Get("address")),
		City:       strings.TrimSpace(r.PostForm.Get("city")),
		State:      strings.TrimSpace(r.PostForm.Get("state")),
		PostalCode: strings.TrimSpace(r.PostForm.Get("postal_code")),
	}

	if fieldErrors := h.registerErrors(req); fieldErrors != nil {
		h.renderRegister(w, r, r.PostForm, fieldErrors, "")
		return
	}

	user, err := h.session.Register(r.Context(), w, r, req)
	if err != nil {
		h.log.WithError(err).WithField("email", req.Email).Info("registration failed")
		h.renderRegister(w, r, r.PostForm, nil, userMessage(err))
		return
	}

	h.log.WithField("user_id", user.ID).Info("user registered")
	h.redirect(w, r, "/events")
}

// Logout clears the session and returns to the listing.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.session.Logout(w, r)
	h.redirect(w, r, "/events")
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, r *http.Request, form url.Values, fieldErrors map[string][]string, errorMessage string) {
	data := newPageData(r)
	data.Error = errorMessage
	data.Data["Form"] = form
	data.Data["FieldErrors"] = fieldErrors
	data.Data["Redirect"] = safeRedirect(form.Get("redirect"))
	h.renderPage(w, "login", data)
}

func (h *AuthHandler) renderRegister(w http.ResponseWriter, r *http.Request, form url.Values, fieldErrors map[string][]string, errorMessage string) {
	data := newPageData(r)
	data.Error = errorMessage
	data.Data["Form"] = form
	data.Data["FieldErrors"] = fieldErrors
	h.renderPage(w, "register", data)
}

func (h *AuthHandler) loginErrors(req *models.LoginRequest) map[string][]string {
	err := h.validate.Struct(req)
	if err == nil {
		return nil
	}
	fieldErrors := make(map[string][]string)
	for _, fe := range err.(validator.ValidationErrors) {
		switch fe.Field() {
		case "Email":
			fieldErrors["email"] = []string{"Informe um e-mail válido"}
		case "Password":
			fieldErrors["password"] = []string{"Informe sua senha"}
		}
	}
	return fieldErrors
}

func (h *AuthHandler) registerErrors(req *models.RegisterRequest) map[string][]string {
	err := h.validate.Struct(req)
	if err == nil {
		return nil
	}
	fieldErrors := make(map[string][]string)
	for _, fe := range err.(validator.ValidationErrors) {
		switch fe.Field() {
		case "FullName":
			fieldErrors["full_name"] = []string{"Informe seu nome completo"}
		case "Email":
			fieldErrors["email"] = []string{"Informe um e-mail válido"}
		case "CPF":
			fieldErrors["cpf"] = []string{"Informe seu CPF"}
		case "Password":
			if fe.Tag() == "min" {
				fieldErrors["password"] = []string{"A senha precisa de ao menos 8 caracteres"}
			} else {
				fieldErrors["password"] = []string{"Informe uma senha"}
			}
		case "Address":
			fieldErrors["address"] = []string{"Informe seu endereço"}
		case "City":
			fieldErrors["city"] = []string{"Informe sua cidade"}
		case "State":
			fieldErrors["state"] = []string{"Informe seu estado"}
		case "PostalCode":
			fieldErrors["postal_code"] = []string{"Informe seu CEP"}
		}
	}
	return fieldErrors
}

// safeRedirect keeps post-login redirects on this site. Anything that is not
// a local path collapses to /account.
func safeRedirect(to string) string {
	if to == "" || !strings.HasPrefix(to, "/") || strings.HasPrefix(to, "//") {
		return "/account"
	}
	return to
}
