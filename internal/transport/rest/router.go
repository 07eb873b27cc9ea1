package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/company-portal/internal/auth"
	"github.com/frahmantamala/company-portal/internal/department"
	"github.com/frahmantamala/company-portal/internal/employee"
	"github.com/frahmantamala/company-portal/internal/importer"
	"github.com/frahmantamala/company-portal/internal/project"
	"github.com/frahmantamala/company-portal/internal/transport/middleware"
	"github.com/frahmantamala/company-portal/internal/transport/swagger"
)

func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	employeeHandler *employee.Handler,
	projectHandler *project.Handler,
	departmentHandler *department.Handler,
	importHandler *importer.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve the OpenAPI spec at root plus the Swagger UI
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	// Health check routes
	router.Get("/health", healthHandler.healthCheckHandler)
	router.Get("/ping", healthHandler.pingHandler)

	// Login/logout live outside the gates
	router.Get("/login", authHandler.LoginForm)
	router.Post("/login", authHandler.Login)
	router.Get("/logout", authHandler.Logout)

	// Everything below requires an authenticated session. The session gate
	// always runs before any role gate.
	router.Group(func(pr chi.Router) {
		pr.Use(authHandler.SessionGate)

		pr.Get("/", employeeHandler.Roster)
		pr.Get("/export_employees", employeeHandler.Export)
		pr.Get("/projects", projectHandler.Roster)
		pr.Get("/manager_overview", departmentHandler.ManagerOverview)

		pr.Route("/project/{id}", func(ar chi.Router) {
			ar.Use(authHandler.Authorize("/project/{id}"))
			ar.Get("/", projectHandler.Detail)
			ar.Post("/", projectHandler.UpsertAssignment)
		})

		pr.Route("/employee/{ssn}", func(ar chi.Router) {
			ar.Use(authHandler.Authorize("/employee/{ssn}"))
			ar.Get("/", employeeHandler.Detail)
			ar.Post("/", employeeHandler.UpsertDependent)
		})

		pr.Group(func(ar chi.Router) {
			ar.Use(authHandler.Authorize("/import_dependents"))
			ar.Post("/import_dependents", importHandler.ImportDependents)
		})
	})
}
