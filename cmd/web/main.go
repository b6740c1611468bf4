package main

import (
	"fmt"
	"net/http"
	"time"

	"event-storefront/internal/api"
	"event-storefront/internal/config"
	"event-storefront/internal/handlers"
	"event-storefront/internal/middleware"
	"event-storefront/internal/services"
	"event-storefront/web/templates"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}
	if cfg.Server.Env == "development" {
		log.SetLevel(logrus.DebugLevel)
	}

	renderer, err := templates.New()
	if err != nil {
		log.WithError(err).Fatal("failed to parse templates")
	}

	sessionStore := sessions.NewCookieStore([]byte(cfg.Session.Secret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   cfg.Session.MaxAge,
		HttpOnly: true,
		Secure:   cfg.Server.Env != "development",
		SameSite: http.SameSiteLaxMode,
	}

	client := api.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)
	session := services.NewSessionService(sessionStore, client, log)
	checkout := services.NewCheckoutService(log)
	account := services.NewAccountService(log)

	public := handlers.NewPublicHandler(session, renderer, log)
	cart := handlers.NewCartHandler(session, renderer, log)
	checkoutHandler := handlers.NewCheckoutHandler(session, checkout, renderer, log)
	payment := handlers.NewPaymentHandler(session, renderer, log)
	accountHandler := handlers.NewAccountHandler(session, account, renderer, log)
	auth := handlers.NewAuthHandler(session, renderer, log)

	authMiddleware := middleware.NewAuthMiddleware(session)
	csrf := middleware.NewCSRFMiddleware(sessionStore)
	loginLimiter := middleware.NewLoginRateLimiter(5, 15*time.Minute)

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(authMiddleware.LoadUser)
	r.Use(csrf.EnsureCSRFToken)
	r.Use(csrf.CSRFProtection)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "ok")
	})

	fileServer := http.FileServer(http.Dir("web/static"))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	r.Get("/", public.Home)
	r.Get("/events", public.ListEvents)
	r.Get("/events/{id}", public.ShowEvent)
	r.Post("/events/{id}/cart/increment", cart.Increment)
	r.Post("/events/{id}/cart/decrement", cart.Decrement)

	r.Get("/login", auth.LoginPage)
	r.With(loginLimiter.Limit).Post("/login", auth.Login)
	r.Get("/register", auth.RegisterPage)
	r.Post("/register", auth.Register)
	r.Post("/logout", auth.Logout)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)

		r.Post("/checkout/start", checkoutHandler.Start)
		r.Get("/checkout", checkoutHandler.Show)
		r.Post("/checkout", checkoutHandler.Submit)

		r.Get("/payment", payment.Show)
		r.Get("/payment/status", payment.Status)
		r.Post("/payment/check", payment.Check)
		r.Get("/payment/qr.png", payment.QRCode)

		r.Get("/account", accountHandler.Show)
		r.Get("/account/tickets/{id}/assign", accountHandler.AssignForm)
		r.Post("/account/tickets/{id}/assign", accountHandler.Assign)
	})

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	log.WithFields(logrus.Fields{
		"addr":    addr,
		"backend": cfg.Backend.BaseURL,
		"env":     cfg.Server.Env,
	}).Info("storefront listening")

	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
