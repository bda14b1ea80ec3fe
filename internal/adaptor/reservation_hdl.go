package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/SinanUlusan/call-reservation-tool/internal/dto/request"
	"github.com/SinanUlusan/call-reservation-tool/internal/usecase"
	"github.com/SinanUlusan/call-reservation-tool/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ReservationHandler struct {
	service usecase.ReservationService
	log     *zap.Logger
}

func NewReservationHandler(service usecase.ReservationService, log *zap.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log.With(zap.String("handler", "reservation")),
	}
}

// CreateReservation handles POST /reservation
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req request.CreateReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	reservation, err := h.service.CreateReservation(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create reservation")
		return
	}

	utils.ResponseRecord(w, http.StatusCreated, reservation)
}

// GetAllReservations handles GET /reservation
func (h *ReservationHandler) GetAllReservations(w http.ResponseWriter, r *http.Request) {
	reservations, err := h.service.GetAllReservations(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get all reservations")
		return
	}

	utils.ResponseRecords(w, reservations)
}

// GetReservationByID handles GET /reservation/{id}
func (h *ReservationHandler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.ResponseBadRequest(w, "Reservation ID is required", nil)
		return
	}

	reservation, err := h.service.GetReservationByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, "get reservation by ID")
		return
	}

	utils.ResponseRecord(w, http.StatusOK, reservation)
}

// CancelReservation handles PUT /reservation/{id}/cancel
func (h *ReservationHandler) CancelReservation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.ResponseBadRequest(w, "Reservation ID is required", nil)
		return
	}

	var req request.CancelReservationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	reservation, err := h.service.CancelReservation(r.Context(), id, req.AdminEmail)
	if err != nil {
		h.handleServiceError(w, err, "cancel reservation")
		return
	}

	utils.ResponseRecord(w, http.StatusOK, reservation)
}

// UpdateReservationTime handles PUT /reservation/{id}/time
func (h *ReservationHandler) UpdateReservationTime(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.ResponseBadRequest(w, "Reservation ID is required", nil)
		return
	}

	var req request.UpdateReservationTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	reservation, err := h.service.UpdateReservationTime(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err, "update reservation time")
		return
	}

	utils.ResponseRecord(w, http.StatusOK, reservation)
}

// AdminAction handles PUT /reservation/{id}/admin-action
func (h *ReservationHandler) AdminAction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.ResponseBadRequest(w, "Reservation ID is required", nil)
		return
	}

	var req request.AdminActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	reservation, err := h.service.AdminAction(r.Context(), id, req.Action)
	if err != nil {
		h.handleServiceError(w, err, "admin action")
		return
	}

	utils.ResponseRecord(w, http.StatusOK, reservation)
}

// MarkReservationSuccessful handles PUT /reservation/{id}/successful
func (h *ReservationHandler) MarkReservationSuccessful(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		utils.ResponseBadRequest(w, "Reservation ID is required", nil)
		return
	}

	reservation, err := h.service.MarkReservationSuccessful(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, "mark reservation successful")
		return
	}

	utils.ResponseRecord(w, http.StatusOK, reservation)
}

// handleServiceError maps the business error taxonomy to HTTP statuses.
// Anything outside the taxonomy is an infrastructure failure.
func (h *ReservationHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	switch {
	case errors.Is(err, utils.ErrNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, utils.ErrSlotConflict):
		h.log.Warn(operation+" failed - slot conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, utils.ErrInvalidTimeFormat):
		h.log.Warn(operation+" failed - invalid time", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, utils.ErrInvalidTransition):
		h.log.Warn(operation+" failed - invalid transition", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case strings.Contains(err.Error(), "validation failed"):
		h.log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		h.log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
