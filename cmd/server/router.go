package main

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/ledgerline/ledgerline/internal/api"
	"github.com/ledgerline/ledgerline/internal/api/middleware"
	"github.com/ledgerline/ledgerline/internal/api/shared"
)

// router builds the full route tree: public health and metrics endpoints
// plus the authenticated resource routes.
func (app *application) router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.TraceMiddleware)
	r.Use(app.metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", app.handleHealth)
	r.Method(http.MethodGet, "/metrics", app.metrics.Handler())

	invoices, estimates, businesses, clients, items, settings, users := app.handlers()
	auth := app.authMiddleware()

	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticate)

		r.Route("/invoices", func(r chi.Router) {
			mountDocumentRoutes(r, invoices)
		})
		r.Route("/estimates", func(r chi.Router) {
			mountDocumentRoutes(r, estimates)
		})
		r.Route("/businesses", func(r chi.Router) {
			mountPartyRoutes(r, businesses)
		})
		r.Route("/clients", func(r chi.Router) {
			mountPartyRoutes(r, clients)
		})
		r.Route("/items", func(r chi.Router) {
			r.Get("/", items.List)
			r.Post("/", items.Create)
			r.Get("/{id}", items.Get)
			r.Put("/{id}", items.Update)
			r.Delete("/{id}", items.Delete)
		})
		r.Route("/settings", func(r chi.Router) {
			r.Get("/", settings.Get)
			r.Post("/", settings.Create)
			r.Put("/", settings.Update)
			r.Delete("/", settings.Delete)
		})
		r.Get("/users/me", users.Me)
		r.Put("/users/me", users.Update)
	})

	return r
}

func mountDocumentRoutes(r chi.Router, h *api.DocumentHandler) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func mountPartyRoutes(r chi.Router, h *api.PartyHandler) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// handleHealth reports process liveness and database reachability.
func (app *application) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := app.db.PingContext(ctx); err != nil {
		shared.RespondWithJSON(w, r, http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
		})
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
