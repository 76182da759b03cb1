// Conversation history HTTP handlers.
//
// Endpoints:
//   - GET    /api/usuarios/{numero}/historico
//   - POST   /api/usuarios/{numero}/historico
//   - DELETE /api/usuarios/{numero}/historico
//
// The POST endpoint is called mid-conversation by the automation flow and
// must not fail merely because the user record does not exist yet; the
// service auto-creates it with defaults.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-whatsapp-backoffice/internal/services"
)

// AppendMessageRequest is the JSON payload for recording one message.
type AppendMessageRequest struct {
	Sender string `json:"remetente" example:"user"`
	Text   string `json:"mensagem" example:"Olá, tem tela de iPhone?"`
}

// GetHistory godoc
// @ID          getHistory
// @Summary     Read a user's conversation history
// @Description Diagnostic endpoint: unknown numbers answer an empty-history
// @Description shape instead of 404.
// @Tags        Historico
// @Produce     json
// @Security    BearerAuth
// @Param       numero path string true "Phone number"
// @Success     200 {object} services.HistorySnapshot
// @Router      /api/usuarios/{numero}/historico [get]
func (h *Handlers) GetHistory(c *gin.Context) {
	ok(c, http.StatusOK, h.history.Read(c.Param("numero")))
}

// AppendMessage godoc
// @ID          appendMessage
// @Summary     Append a message to a user's history
// @Description Stamps the message with the current time, refreshes
// @Description lastContact, and trims the history oldest-first down to the
// @Description configured limit. Missing users are created with defaults.
// @Tags        Historico
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       numero path string true "Phone number"
// @Param       body   body handlers.AppendMessageRequest true "Message"
// @Success     201 {object} domain.Message
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/usuarios/{numero}/historico [post]
func (h *Handlers) AppendMessage(c *gin.Context) {
	var req AppendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Remetente e mensagem são obrigatórios")
		return
	}

	msg, err := h.history.Append(c.Param("numero"), req.Sender, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMissingMessageFields):
			fail(c, http.StatusBadRequest, "Remetente e mensagem são obrigatórios")
		case errors.Is(err, services.ErrInvalidSender):
			fail(c, http.StatusBadRequest, "Remetente deve ser 'user' ou 'bot'")
		default:
			fail(c, http.StatusInternalServerError, "Erro ao salvar histórico")
		}
		return
	}
	ok(c, http.StatusCreated, msg)
}

// ClearHistory godoc
// @ID          clearHistory
// @Summary     Clear a user's conversation history
// @Tags        Historico
// @Produce     json
// @Security    BearerAuth
// @Param       numero path string true "Phone number"
// @Success     200 {object} map[string]string
// @Failure     404 {object} handlers.ErrorResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/usuarios/{numero}/historico [delete]
func (h *Handlers) ClearHistory(c *gin.Context) {
	if err := h.history.Clear(c.Param("numero")); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			fail(c, http.StatusNotFound, MsgUserGone)
			return
		}
		fail(c, http.StatusInternalServerError, "Erro ao limpar histórico")
		return
	}
	ok(c, http.StatusOK, gin.H{"mensagem": "Histórico limpo com sucesso"})
}
