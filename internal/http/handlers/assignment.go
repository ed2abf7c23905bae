package handlers

import (
	"net/http"

	"service-parcel/internal/domain"
	"service-parcel/internal/logx"
)

// AssignmentHandler records delivery assignments.
type AssignmentHandler struct {
	logger logx.Logger
	uc     assignmentUsecase
}

// NewAssignmentHandler wires an assignmentUsecase into HTTP handlers.
func NewAssignmentHandler(logger logx.Logger, uc assignmentUsecase) *AssignmentHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &AssignmentHandler{logger: logger, uc: uc}
}

// Record handles POST /deliveryAssign. The parcel status is not changed here.
func (h *AssignmentHandler) Record(w http.ResponseWriter, r *http.Request) {
	var a domain.Assignment
	if ok := decodeJSON(h.logger, w, r, &a); !ok {
		return
	}

	res, err := h.uc.Record(r.Context(), &a)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, res)
}
