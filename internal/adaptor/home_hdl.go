package adaptor

import (
	"net/http"

	"movie-review/internal/dto/response"
	"movie-review/pkg/utils"
)

type HomeHandler struct{}

func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Index handles GET /
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	utils.ResponseOK(w, response.HomeResponse{
		Message: "Movie review service API",
		Status:  "ok",
	})
}

// Health handles GET /health
func (h *HomeHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
