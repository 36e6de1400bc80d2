package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/campus-parking/internal/citation"
	"github.com/frahmantamala/campus-parking/internal/driver"
	"github.com/frahmantamala/campus-parking/internal/parking"
	"github.com/frahmantamala/campus-parking/internal/permit"
	"github.com/frahmantamala/campus-parking/internal/transport/middleware"
	"github.com/frahmantamala/campus-parking/internal/transport/swagger"
	"github.com/frahmantamala/campus-parking/internal/vehicle"
)

func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	driverHandler *driver.Handler,
	vehicleHandler *vehicle.Handler,
	parkingHandler *parking.Handler,
	permitHandler *permit.Handler,
	citationHandler *citation.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	// Mount API under /api/v1 to match OpenAPI basePath
	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if driverHandler != nil {
			r.Route("/drivers", func(dr chi.Router) {
				dr.Post("/", driverHandler.CreateDriver)
				dr.Get("/", driverHandler.ListDrivers)
				dr.Get("/{id}", driverHandler.GetDriver)
				dr.Put("/{id}", driverHandler.UpdateDriver)
				dr.Delete("/{id}", driverHandler.DeleteDriver)

				if permitHandler != nil {
					dr.Post("/{id}/permits", permitHandler.AssignPermit)
					dr.Get("/{id}/permits", permitHandler.GetDriverPermits)
				}
			})
		}

		if vehicleHandler != nil {
			r.Route("/vehicles", func(vr chi.Router) {
				vr.Post("/", vehicleHandler.CreateVehicle)
				vr.Get("/", vehicleHandler.ListVehicles)
				vr.Get("/{license}", vehicleHandler.GetVehicle)
				vr.Put("/{license}", vehicleHandler.UpdateVehicle)
				vr.Delete("/{license}", vehicleHandler.DeleteVehicle)

				if citationHandler != nil {
					vr.Get("/{license}/citations", citationHandler.GetVehicleCitations)
				}
			})
		}

		if parkingHandler != nil {
			r.Route("/lots", func(lr chi.Router) {
				lr.Post("/", parkingHandler.CreateLot)
				lr.Get("/", parkingHandler.ListLots)
				lr.Get("/{name}", parkingHandler.GetLot)
				lr.Put("/{name}", parkingHandler.UpdateLot)
				lr.Delete("/{name}", parkingHandler.DeleteLot)
			})

			r.Route("/zones", func(zr chi.Router) {
				zr.Post("/", parkingHandler.CreateZone)
				zr.Get("/", parkingHandler.ListZones)
				zr.Patch("/{zoneID}/lot", parkingHandler.ReassignZone)
				zr.Delete("/{zoneID}", parkingHandler.DeleteZone)
			})

			r.Route("/spaces", func(sr chi.Router) {
				sr.Post("/", parkingHandler.CreateSpace)
				sr.Get("/", parkingHandler.ListSpaces)
				sr.Patch("/{number}/availability", parkingHandler.SetSpaceAvailability)
				sr.Delete("/{number}", parkingHandler.DeleteSpace)
			})
		}

		if permitHandler != nil {
			r.Route("/permits", func(pr chi.Router) {
				pr.Post("/", permitHandler.CreatePermit)
				pr.Get("/", permitHandler.ListPermits)
				pr.Get("/{id}", permitHandler.GetPermit)
				pr.Put("/{id}", permitHandler.UpdatePermit)
				pr.Delete("/{id}", permitHandler.DeletePermit)

				pr.Post("/{id}/vehicles", permitHandler.AttachVehicle)
				pr.Delete("/{id}/vehicles/{license}", permitHandler.DetachVehicle)
			})
		}

		if citationHandler != nil {
			r.Route("/citations", func(cr chi.Router) {
				cr.Post("/", citationHandler.CreateCitation)
				cr.Get("/", citationHandler.ListCitations)
				cr.Get("/{id}", citationHandler.GetCitation)
				cr.Patch("/{id}/pay", citationHandler.PayCitation)
				cr.Patch("/{id}/appeal", citationHandler.AppealCitation)
				cr.Delete("/{id}", citationHandler.DeleteCitation)
			})
		}
	})
}
