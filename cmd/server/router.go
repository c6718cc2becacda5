package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/fmardones/reparto-api/internal/api"
	apiMiddleware "github.com/fmardones/reparto-api/internal/api/middleware"
	"github.com/fmardones/reparto-api/internal/api/shared"
)

// setupRouter creates and configures the application router with all
// routes and middleware. Everything under /api except login and
// registro requires a valid bearer token.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	healthHandler := api.NewHealthHandler(app.db, app.config.Server.Environment, app.logger)
	clienteHandler := api.NewClienteHandler(app.clienteStore, app.logger)
	camionHandler := api.NewCamionHandler(app.camionStore, app.repartoStore, app.logger)
	rutaHandler := api.NewRutaHandler(app.rutaStore, app.logger)
	repartoHandler := api.NewRepartoHandler(
		app.repartoStore,
		app.clienteStore,
		app.camionStore,
		app.rutaStore,
		app.logger,
	)
	repartoClienteHandler := api.NewRepartoClienteHandler(app.repartoClienteStore, app.logger)
	usuarioHandler := api.NewUsuarioHandler(
		app.usuarioStore,
		app.jwtService,
		app.hasher,
		app.verifier,
		app.logger,
	)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Public endpoints
	r.Get("/", healthHandler.Root)
	r.Get("/health", healthHandler.Health)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/usuarios/login", usuarioHandler.Login)
		r.Post("/usuarios/registro", usuarioHandler.Registro)

		// Everything else requires authentication
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Route("/clientes", func(r chi.Router) {
				r.Get("/", clienteHandler.List)
				r.Get("/activos", clienteHandler.ListActivos)
				r.Get("/search", clienteHandler.Search)
				r.Get("/{id}", clienteHandler.Get)
				r.Post("/", clienteHandler.Create)
				r.Put("/{id}", clienteHandler.Update)
				r.Delete("/{id}", clienteHandler.Delete)
			})

			r.Route("/camiones", func(r chi.Router) {
				r.Get("/", camionHandler.List)
				r.Get("/search", camionHandler.Search)
				r.Get("/{id}", camionHandler.Get)
				r.Post("/", camionHandler.Create)
				r.Put("/{id}", camionHandler.Update)
				r.Delete("/{id}", camionHandler.Delete)
			})

			r.Route("/rutas", func(r chi.Router) {
				r.Get("/", rutaHandler.List)
				r.Get("/search", rutaHandler.Search)
				r.Get("/{id}", rutaHandler.Get)
				r.Post("/", rutaHandler.Create)
				r.Put("/{id}", rutaHandler.Update)
				r.Delete("/{id}", rutaHandler.Delete)
			})

			r.Route("/repartos", func(r chi.Router) {
				r.Get("/", repartoHandler.List)
				r.Get("/cliente/{cliente_id}", repartoHandler.ListByCliente)
				r.Get("/camion/{camion_id}", repartoHandler.ListByCamion)
				r.Get("/ruta/{ruta_id}", repartoHandler.ListByRuta)
				r.Get("/{id}", repartoHandler.Get)
				r.Post("/", repartoHandler.Create)
				r.Put("/{id}", repartoHandler.Update)
				r.Delete("/{id}", repartoHandler.Delete)
			})

			r.Route("/reparto-cliente", func(r chi.Router) {
				r.Post("/add", repartoClienteHandler.AddCliente)
				r.Post("/remove", repartoClienteHandler.RemoveCliente)
				r.Get("/reparto/{reparto_id}", repartoClienteHandler.GetClientes)
				r.Get("/cliente/{cliente_id}", repartoClienteHandler.GetRepartos)
			})

			r.Route("/usuarios", func(r chi.Router) {
				r.Get("/perfil", usuarioHandler.Perfil)
				r.Put("/cambiar-password", usuarioHandler.CambiarPassword)
				r.Get("/", usuarioHandler.List)
				r.Get("/search", usuarioHandler.Search)
				r.Get("/{id}", usuarioHandler.Get)
				r.Post("/", usuarioHandler.Create)
				r.Put("/{id}", usuarioHandler.Update)
				r.Delete("/{id}", usuarioHandler.Delete)
			})
		})
	})

	// Unknown routes still answer with the standard envelope.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithJSON(w, r, http.StatusNotFound, map[string]any{
			"error":  "Ruta no encontrada",
			"path":   r.URL.Path,
			"method": r.Method,
		})
	})

	return r
}
