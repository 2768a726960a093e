package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cardoctor/cardoctor-api/internal/domain"
	"github.com/cardoctor/cardoctor-api/internal/http/middleware"
	"github.com/cardoctor/cardoctor-api/internal/http/response"
	"github.com/cardoctor/cardoctor-api/internal/repo/postgres"
	"github.com/cardoctor/cardoctor-api/pkg/events"
	"github.com/cardoctor/cardoctor-api/pkg/logger"
)

type BookingsHandler struct {
	repo      postgres.BookingsRepo
	publisher events.Publisher
}

func NewBookingsHandler(repo postgres.BookingsRepo, publisher events.Publisher) *BookingsHandler {
	return &BookingsHandler{repo: repo, publisher: publisher}
}

// Create places a booking. Creation is open to unauthenticated callers; the
// supplied email becomes the record's owner.
// POST /bookings
func (h *BookingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.BookingCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid JSON format")
		return
	}
	if req.Email == "" {
		response.BadRequest(w, "email is required")
		return
	}
	if req.ServiceID == "" && req.ServiceTitle == "" {
		response.BadRequest(w, "a service reference is required")
		return
	}

	booking, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to create booking", "error", err)
		response.InternalError(w, "failed to create booking")
		return
	}

	if err := h.publisher.Publish(r.Context(), events.BookingCreated, events.BookingCreatedEvent{
		BookingID:    booking.ID,
		Email:        booking.Email,
		ServiceID:    booking.ServiceID,
		ServiceTitle: booking.ServiceTitle,
		CreatedAt:    booking.CreatedAt,
	}); err != nil {
		logger.WarnContext(r.Context(), "failed to publish booking.created", "error", err)
	}

	response.JSON(w, http.StatusCreated, booking)
}

// ListOwn returns the caller's bookings. The email query parameter must
// exactly match the session identity's email; an authenticated caller can
// only ever retrieve their own records.
// GET /bookings?email=...
func (h *BookingsHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	identity := middleware.SessionIdentity(r)
	if identity == nil {
		response.Unauthorized(w, "not authorized")
		return
	}

	email := r.URL.Query().Get("email")
	if email == "" {
		response.BadRequest(w, "email query parameter is required")
		return
	}
	if email != identity.Email() {
		response.Forbidden(w, "forbidden access")
		return
	}

	bookings, err := h.repo.ListByEmail(r.Context(), email)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to list bookings", "error", err)
		response.InternalError(w, "failed to retrieve bookings")
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	response.JSON(w, http.StatusOK, bookings)
}

// UpdateStatus sets only the status field of a booking the caller owns. A
// missing id reports not-found unless ?upsert=true deliberately requests a
// partial-record insert.
// PATCH /booking/{id}
func (h *BookingsHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	identity := middleware.SessionIdentity(r)
	if identity == nil {
		response.Unauthorized(w, "not authorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid booking id")
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, "invalid JSON format")
		return
	}
	status, ok := domain.ParseBookingStatus(body.Status)
	if !ok {
		response.BadRequest(w, "invalid status")
		return
	}

	existing, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to load booking", "error", err)
		response.InternalError(w, "failed to update booking")
		return
	}
	if existing != nil && !existing.IsOwner(identity.Email()) {
		response.Forbidden(w, "forbidden access")
		return
	}

	upsert := r.URL.Query().Get("upsert") == "true"
	updated, err := h.repo.UpdateStatus(r.Context(), id, status, upsert)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to update booking status", "error", err)
		response.InternalError(w, "failed to update booking")
		return
	}
	if updated == nil {
		response.NotFound(w, "booking not found")
		return
	}

	if err := h.publisher.Publish(r.Context(), events.BookingStatusUpdated, events.BookingStatusUpdatedEvent{
		BookingID: updated.ID,
		Status:    string(updated.Status),
		UpdatedAt: updated.UpdatedAt,
	}); err != nil {
		logger.WarnContext(r.Context(), "failed to publish booking.status_updated", "error", err)
	}

	response.JSON(w, http.StatusOK, updated)
}

// Delete removes a booking the caller owns. Deleting an id that no longer
// exists is zero-effect success, so repeated deletes are safe.
// DELETE /booking/{id}
func (h *BookingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := middleware.SessionIdentity(r)
	if identity == nil {
		response.Unauthorized(w, "not authorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid booking id")
		return
	}

	existing, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to load booking", "error", err)
		response.InternalError(w, "failed to delete booking")
		return
	}
	if existing != nil && !existing.IsOwner(identity.Email()) {
		response.Forbidden(w, "forbidden access")
		return
	}

	deleted, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		logger.ErrorContext(r.Context(), "failed to delete booking", "error", err)
		response.InternalError(w, "failed to delete booking")
		return
	}

	if deleted {
		if err := h.publisher.Publish(r.Context(), events.BookingDeleted, events.BookingDeletedEvent{
			BookingID: id,
			DeletedAt: time.Now(),
		}); err != nil {
			logger.WarnContext(r.Context(), "failed to publish booking.deleted", "error", err)
		}
	}

	deletedCount := 0
	if deleted {
		deletedCount = 1
	}
	response.JSON(w, http.StatusOK, map[string]int{"deleted_count": deletedCount})
}
