// Package api provides the HTTP API of the course payments backend: checkout
// session creation, the payment provider webhook and enrollment queries.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/kursio/backend/db"
	"github.com/kursio/backend/payments"
	"go.vocdoni.io/dvote/log"
)

// Config holds the dependencies and the listen address of the API server.
type Config struct {
	Host     string
	Port     int
	DB       *db.MongoStorage
	Payments *payments.Service
}

// API type represents the API HTTP server.
type API struct {
	db       *db.MongoStorage
	payments *payments.Service
	host     string
	port     int
	router   *chi.Mux
}

// New creates a new API HTTP server. It does not start the server. Use Start() for that.
func New(conf *Config) *API {
	if conf == nil {
		return nil
	}
	return &API{
		db:       conf.DB,
		payments: conf.Payments,
		host:     conf.Host,
		port:     conf.Port,
	}
}

// Start starts the API HTTP server (non blocking).
func (a *API) Start() {
	go func() {
		if err := http.ListenAndServe(fmt.Sprintf("%s:%d", a.host, a.port), a.initRouter()); err != nil {
			log.Fatalf("failed to start the API server: %v", err)
		}
	}()
}

// initRouter creates the router with all the routes and middleware.
func (a *API) initRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Stripe-Signature"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}).Handler)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Throttle(100))
	r.Use(middleware.Timeout(45 * time.Second))

	r.Get(pingEndpoint, func(w http.ResponseWriter, _ *http.Request) {
		if _, err := w.Write([]byte(".")); err != nil {
			log.Warnw("failed to write ping response", "error", err)
		}
	})
	// create a payment checkout session
	log.Infow("new route", "method", "POST", "path", checkoutEndpoint)
	r.Post(checkoutEndpoint, a.createCheckoutSessionHandler)
	// handle payment provider webhook
	log.Infow("new route", "method", "POST", "path", webhookEndpoint)
	r.Post(webhookEndpoint, a.handleWebhook)
	// list the enrollments of a user
	log.Infow("new route", "method", "GET", "path", enrollmentsEndpoint)
	r.Get(enrollmentsEndpoint, a.userEnrollmentsHandler)

	a.router = r
	return r
}
