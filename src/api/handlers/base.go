package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"walter/src/api/controllers"
	"walter/src/clients"
	"walter/src/utils"
)

type Handler struct {
	Controller controllers.IController
	Logger     *logrus.Logger
}

func NewHandler(c *clients.Clients, logger *logrus.Logger) *Handler {
	controller := controllers.NewController(c.Users, c.Stocks, c.Holdings, c.Polygon, c.TokenAuth, c.Config)
	return &Handler{Controller: controller, Logger: logger}
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

// HandleErrors logs the error and writes the matching HTTP response.
func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	h.Logger.Warn(err)
	utils.WriteError(w, err)
}
