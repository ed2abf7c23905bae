package handlers

import (
	"net/http"

	"service-parcel/internal/auth"
	"service-parcel/internal/domain"
	"service-parcel/internal/logx"

	"github.com/go-chi/chi/v5"
)

// UserHandler serves the user directory.
type UserHandler struct {
	logger logx.Logger
	uc     userUsecase
}

// NewUserHandler wires a userUsecase into HTTP handlers.
func NewUserHandler(logger logx.Logger, uc userUsecase) *UserHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &UserHandler{logger: logger, uc: uc}
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.uc.List(r.Context())
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, users)
}

// IsAdmin handles GET /users/admin/{email}.
func (h *UserHandler) IsAdmin(w http.ResponseWriter, r *http.Request) {
	ok, err := h.uc.IsAdmin(r.Context(), chi.URLParam(r, "email"), callerEmail(r))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, adminResponse{Admin: ok})
}

// IsDeliveryMan handles GET /users/deliveryMen/{email}.
func (h *UserHandler) IsDeliveryMan(w http.ResponseWriter, r *http.Request) {
	ok, err := h.uc.IsDeliveryMan(r.Context(), chi.URLParam(r, "email"), callerEmail(r))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, deliveryManResponse{DeliveryMen: ok})
}

// Register handles POST /users. A taken email answers 200 with a message and a null insertedId.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var u domain.User
	if ok := decodeJSON(h.logger, w, r, &u); !ok {
		return
	}

	res, err := h.uc.Register(r.Context(), &u)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, res)
}

// PromoteToDeliveryMan handles PATCH /users/deliveryman/{id}.
func (h *UserHandler) PromoteToDeliveryMan(w http.ResponseWriter, r *http.Request) {
	res, err := h.uc.PromoteToDeliveryMan(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, res)
}

// PromoteToAdmin handles PATCH /users/admin/{id}.
func (h *UserHandler) PromoteToAdmin(w http.ResponseWriter, r *http.Request) {
	res, err := h.uc.PromoteToAdmin(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, res)
}

func callerEmail(r *http.Request) string {
	id, _ := auth.FromContext(r.Context())
	return id.Email()
}
