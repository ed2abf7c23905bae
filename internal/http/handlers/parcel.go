package handlers

import (
	"net/http"

	"service-parcel/internal/domain"
	"service-parcel/internal/logx"

	"github.com/go-chi/chi/v5"
)

// ParcelHandler serves the parcel registry.
type ParcelHandler struct {
	logger logx.Logger
	uc     parcelUsecase
}

// NewParcelHandler wires a parcelUsecase into HTTP handlers.
func NewParcelHandler(logger logx.Logger, uc parcelUsecase) *ParcelHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &ParcelHandler{logger: logger, uc: uc}
}

// Create handles POST /parcels.
func (h *ParcelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var p domain.Parcel
	if ok := decodeJSON(h.logger, w, r, &p); !ok {
		return
	}

	res, err := h.uc.Create(r.Context(), &p)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, res)
}

// List handles GET /parcels.
func (h *ParcelHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.uc.List(r.Context())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, list)
}

// ListMine handles GET /myParcels?email=. A missing email matches nothing but
// parcels stored with an empty email.
func (h *ParcelHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	list, err := h.uc.ListByOwner(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, list)
}

// GetByID handles GET /parcels/{id}. An unknown id answers 200 with null.
func (h *ParcelHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	p, err := h.uc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, p)
}

// Replace handles PATCH /parcels/{id}.
func (h *ParcelHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var p domain.Parcel
	if ok := decodeJSON(h.logger, w, r, &p); !ok {
		return
	}

	res, err := h.uc.Replace(r.Context(), chi.URLParam(r, "id"), p)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, res)
}

// MarkEnRoute handles PATCH /parcels/{id}/onTheWay.
func (h *ParcelHandler) MarkEnRoute(w http.ResponseWriter, r *http.Request) {
	res, err := h.uc.MarkEnRoute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, res)
}

// Delete handles DELETE /parcels/{id}.
func (h *ParcelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	res, err := h.uc.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, res)
}
