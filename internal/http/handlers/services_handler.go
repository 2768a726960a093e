package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/cardoctor/cardoctor-api/internal/domain"
	"github.com/cardoctor/cardoctor-api/internal/http/response"
	"github.com/cardoctor/cardoctor-api/internal/repo/postgres"
)

type ServicesHandler struct {
	repo postgres.ServicesRepo
}

func NewServicesHandler(repo postgres.ServicesRepo) *ServicesHandler {
	return &ServicesHandler{repo: repo}
}

// List returns all offerings ordered by numeric price: ascending for
// sort=asc, descending for any other or missing value.
// GET /services?sort=asc|desc
func (h *ServicesHandler) List(w http.ResponseWriter, r *http.Request) {
	services, err := h.repo.List(r.Context())
	if err != nil {
		response.InternalError(w, "failed to retrieve services")
		return
	}

	domain.SortByPrice(services, r.URL.Query().Get("sort") == "asc")

	if services == nil {
		services = []domain.ServiceOffering{}
	}
	response.JSON(w, http.StatusOK, services)
}

// Get returns the full offering.
// GET /services/{id}
func (h *ServicesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid service id")
		return
	}

	service, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		response.InternalError(w, "failed to retrieve service")
		return
	}
	if service == nil {
		response.NotFound(w, "service not found")
		return
	}
	response.JSON(w, http.StatusOK, service)
}

// GetSummary returns the projected view: title, price, img, service_id.
// GET /service/{id}
func (h *ServicesHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "invalid service id")
		return
	}

	summary, err := h.repo.GetSummaryByID(r.Context(), id)
	if err != nil {
		response.InternalError(w, "failed to retrieve service")
		return
	}
	if summary == nil {
		response.NotFound(w, "service not found")
		return
	}
	response.JSON(w, http.StatusOK, summary)
}
