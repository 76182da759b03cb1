// Prompt payload HTTP handler.
//
// Endpoint:
//   - POST /api/build-ai-payload
//
// The current catalog is read server-side; the conversation history comes
// from the caller, so the orchestrator can build a payload for a history it
// has not persisted yet.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-whatsapp-backoffice/internal/services"
)

// BuildPayloadRequest is the JSON payload for assembling an LLM request.
type BuildPayloadRequest struct {
	User    *services.PromptUser `json:"usuario"`
	Message string               `json:"mensagem" example:"quanto custa a tela?"`
}

// BuildPayload godoc
// @ID          buildPayload
// @Summary     Assemble the LLM request body
// @Description Formats the system prompt, current stock, and the supplied
// @Description conversation history into a provider-ready chat-completion
// @Description request. The provider key is returned to the caller; this
// @Description service never contacts the provider itself.
// @Tags        IA
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body body handlers.BuildPayloadRequest true "Conversation context"
// @Success     200 {object} services.PromptPayload
// @Failure     400 {object} handlers.ErrorResponse
// @Router      /api/build-ai-payload [post]
func (h *Handlers) BuildPayload(c *gin.Context) {
	var req BuildPayloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Usuário e mensagem são obrigatórios")
		return
	}

	payload, err := h.prompt.BuildPayload(h.catalog.List(), req.User, req.Message)
	if err != nil {
		if errors.Is(err, services.ErrMissingPromptFields) {
			fail(c, http.StatusBadRequest, "Usuário e mensagem são obrigatórios")
			return
		}
		fail(c, http.StatusInternalServerError, "Erro ao montar payload")
		return
	}
	ok(c, http.StatusOK, payload)
}
