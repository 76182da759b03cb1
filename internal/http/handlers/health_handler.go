// Liveness HTTP handler.
//
// Endpoint:
//   - GET /health (public)
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthResponse reports liveness plus collection totals, which the
// monitoring panel graphs over time.
type HealthResponse struct {
	Status        string    `json:"status" example:"OK"`
	Timestamp     time.Time `json:"timestamp"`
	TotalProducts int       `json:"totalProdutos"`
	TotalUsers    int       `json:"totalUsuarios"`
}

// Health godoc
// @ID          health
// @Summary     Liveness probe with collection totals
// @Tags        Health
// @Produce     json
// @Success     200 {object} handlers.HealthResponse
// @Router      /health [get]
func (h *Handlers) Health(c *gin.Context) {
	ok(c, http.StatusOK, HealthResponse{
		Status:        "OK",
		Timestamp:     time.Now().UTC(),
		TotalProducts: len(h.catalog.List()),
		TotalUsers:    len(h.registry.List()),
	})
}
