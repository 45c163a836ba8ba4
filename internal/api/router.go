// PWellTrack - Pet Health Tracking and Care Reminders
// Copyright 2026 PWellTrack contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/pwelltrack/pwelltrack

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pwelltrack/pwelltrack/internal/auth"
	"github.com/pwelltrack/pwelltrack/internal/config"
	"github.com/pwelltrack/pwelltrack/internal/middleware"
)

// NewRouter assembles the HTTP surface. wsHandler serves the notification
// websocket; it authenticates inside its own handshake, so it is mounted
// outside the bearer-token middleware.
func NewRouter(cfg *config.Config, h *Handler, tokens *auth.TokenManager, wsHandler http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Security.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           86400,
	}))
	r.Use(middleware.PrometheusMetrics)

	r.Get("/health", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/ws/notifications", wsHandler.ServeHTTP)

	r.Route("/auth", func(r chi.Router) {
		// Per-IP throttle; the handlers add per-email attempt limits on
		// top of it.
		r.With(httprate.LimitByIP(cfg.Security.RegisterPerMinute, time.Minute)).
			Post("/register", h.Register)
		r.With(httprate.LimitByIP(cfg.Security.LoginPerMinute, time.Minute)).
			Post("/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(tokens.Require)
			r.Get("/me", h.Me)
			r.Put("/me", h.UpdateMe)
			r.Post("/refresh", h.Refresh)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(httprate.LimitByIP(cfg.Security.RateLimitRequests, cfg.Security.RateLimitWindow))
		r.Use(tokens.Require)

		r.Route("/pets", func(r chi.Router) {
			r.Get("/", h.ListPets)
			r.Post("/", h.CreatePet)

			r.Route("/{petID}", func(r chi.Router) {
				r.Get("/", h.GetPet)
				r.Put("/", h.UpdatePet)
				r.Delete("/", h.DeletePet)
				r.Get("/today", h.PetToday)

				r.Get("/feeding", h.ListFeedings)
				r.Post("/feeding", h.CreateFeeding)
				r.Get("/water", h.ListWater)
				r.Post("/water", h.CreateWater)
				r.Get("/weight", h.ListWeights)
				r.Post("/weight", h.CreateWeight)
				r.Get("/vaccines", h.ListVaccines)
				r.Post("/vaccines", h.CreateVaccine)
				r.Get("/medications", h.ListMedications)
				r.Post("/medications", h.CreateMedication)
				r.Get("/events", h.ListEvents)
				r.Post("/events", h.CreateEvent)
				r.Get("/symptoms", h.ListSymptoms)
				r.Post("/symptoms", h.CreateSymptom)
			})
		})

		// Record-level mutation by record id; ownership is enforced
		// through the pet join in storage.
		r.Route("/feeding/{recordID}", func(r chi.Router) {
			r.Put("/", h.UpdateFeeding)
			r.Delete("/", h.DeleteFeeding)
		})
		r.Route("/water/{recordID}", func(r chi.Router) {
			r.Put("/", h.UpdateWater)
			r.Delete("/", h.DeleteWater)
		})
		r.Route("/weight/{recordID}", func(r chi.Router) {
			r.Put("/", h.UpdateWeight)
			r.Delete("/", h.DeleteWeight)
		})
		r.Route("/vaccines/{recordID}", func(r chi.Router) {
			r.Put("/", h.UpdateVaccine)
			r.Delete("/", h.DeleteVaccine)
		})
		r.Route("/medications/{recordID}", func(r chi.Router) {
			r.Put("/", h.UpdateMedication)
			r.Delete("/", h.DeleteMedication)
		})
		r.Route("/events/{recordID}", func(r chi.Router) {
			r.Put("/", h.UpdateEvent)
			r.Delete("/", h.DeleteEvent)
		})
		r.Route("/symptoms/{recordID}", func(r chi.Router) {
			r.Put("/", h.UpdateSymptom)
			r.Delete("/", h.DeleteSymptom)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "Route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed", nil)
	})

	return r
}
