package handlers

import (
	"net/http"

	"service-parcel/internal/auth"
	"service-parcel/internal/logx"
)

// TokenHandler issues session tokens.
type TokenHandler struct {
	logger logx.Logger
	issuer tokenIssuer
}

// NewTokenHandler creates a TokenHandler.
func NewTokenHandler(logger logx.Logger, issuer tokenIssuer) *TokenHandler {
	if logger == nil {
		logger = logx.Nop()
	}
	return &TokenHandler{logger: logger, issuer: issuer}
}

// Issue handles POST /jwt. The JSON object in the body becomes the token's claims.
func (h *TokenHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var identity auth.Identity
	if ok := decodeJSON(h.logger, w, r, &identity); !ok {
		return
	}
	if identity == nil {
		writeError(h.logger, w, r, http.StatusBadRequest, "invalid json: object expected")
		return
	}

	token, err := h.issuer.Issue(identity)
	if err != nil {
		writeServiceError(h.logger, w, r, err)
		return
	}
	writeJSON(h.logger, w, r, http.StatusOK, tokenResponse{Token: token})
}
