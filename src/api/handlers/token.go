package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"walter/src/schemas"
	"walter/src/utils"
)

func (h *Handler) AuthUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	var req schemas.TokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}

	token, err := h.Controller.AuthUser(ctx, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, token, http.StatusOK)
}
