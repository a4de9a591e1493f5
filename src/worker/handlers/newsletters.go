package handlers

import (
	"context"
	"net/http"
	"time"

	"walter/src/schemas"
	"walter/src/utils"
)

// SendNewsletters triggers a full newsletter run. Generation and delivery for
// every user happen within this request, so the timeout is generous.
func (h *Handler) SendNewsletters(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Minute)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	ack, err := h.Newsletter.Run(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, schemas.NewsletterRunResponse{Status: ack}, http.StatusOK)
}
