package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth"

	"walter/src/schemas"
	"walter/src/utils"
)

// emailFromToken pulls the authenticated user's email out of the verified
// token claims.
func emailFromToken(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", utils.Unauthorized("auth token not detected")
	}
	email, ok := claims["sub"].(string)
	if !ok || email == "" {
		return "", utils.Unauthorized("auth token has no subject")
	}
	return email, nil
}

func (h *Handler) AddStock(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	email, err := emailFromToken(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	var req schemas.AddStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}

	if err := h.Controller.AddStock(ctx, email, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, schemas.UserStockResponse{Symbol: req.Symbol, Quantity: req.Quantity}, http.StatusCreated)
}

func (h *Handler) GetStocksForUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	email, err := emailFromToken(r)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	holdings, err := h.Controller.GetStocksForUser(ctx, email)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	stocks := make([]schemas.UserStockResponse, 0, len(holdings))
	for _, holding := range holdings {
		stocks = append(stocks, schemas.UserStockResponse{Symbol: holding.Symbol, Quantity: holding.Quantity})
	}
	h.respond(w, r, stocks, http.StatusOK)
}
