// Configuration HTTP handlers.
//
// Endpoints:
//   - GET /api/config
//   - PUT /api/config
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-whatsapp-backoffice/internal/services"
)

// messageLimit bounds accepted over the API. Stored documents edited by
// hand may fall outside; the history service then falls back to its default.
const (
	minMessageLimit = 5
	maxMessageLimit = 50
)

// GetConfig godoc
// @ID          getConfig
// @Summary     Read the configuration document
// @Tags        Config
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} domain.AppConfig
// @Router      /api/config [get]
func (h *Handlers) GetConfig(c *gin.Context) {
	ok(c, http.StatusOK, h.config.Get())
}

// UpdateConfig godoc
// @ID          updateConfig
// @Summary     Update the configuration document
// @Description Merges only the provided fields into the stored document and
// @Description returns the full merged result. messageLimit must stay
// @Description within 5–50.
// @Tags        Config
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body body services.ConfigPatch true "Fields to change"
// @Success     200 {object} domain.AppConfig
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/config [put]
func (h *Handlers) UpdateConfig(c *gin.Context) {
	var patch services.ConfigPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		fail(c, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	if patch.History != nil && patch.History.MessageLimit != nil {
		if limit := *patch.History.MessageLimit; limit < minMessageLimit || limit > maxMessageLimit {
			fail(c, http.StatusBadRequest, "messageLimit deve estar entre 5 e 50")
			return
		}
	}

	cfg, err := h.config.Update(patch)
	if err != nil {
		if errors.Is(err, services.ErrEmptyConfigUpdate) {
			fail(c, http.StatusBadRequest, "Nenhum campo de configuração informado")
			return
		}
		fail(c, http.StatusInternalServerError, "Erro ao salvar configuração")
		return
	}
	ok(c, http.StatusOK, cfg)
}
