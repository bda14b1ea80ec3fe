// internal/wire/wire.go
package wire

import (
	"net/http"

	"github.com/SinanUlusan/call-reservation-tool/internal/adaptor"
	"github.com/SinanUlusan/call-reservation-tool/internal/data/repository"
	"github.com/SinanUlusan/call-reservation-tool/internal/usecase"
	"github.com/SinanUlusan/call-reservation-tool/pkg/middleware"
	"github.com/SinanUlusan/call-reservation-tool/pkg/notifier"
	"github.com/SinanUlusan/call-reservation-tool/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring initializes services, handlers and the router.
func Wiring(repo *repository.Repository, notif *notifier.Notifier, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, notif, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

// setupRouter configures the Chi router
func setupRouter(handler *adaptor.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireReservation(r, handler.Reservation)
	wireAdmin(r, handler.Admin)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
