package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"walter/src/clients"
	"walter/src/services"
	"walter/src/utils"
)

type Handler struct {
	Newsletter services.NewsletterServiceI
	Logger     *logrus.Logger
}

func NewHandler(c *clients.Clients, logger *logrus.Logger) *Handler {
	return &Handler{Newsletter: c.NewsletterService, Logger: logger}
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	h.Logger.Warn(err)
	utils.WriteError(w, err)
}
