// User registry HTTP handlers.
//
// Endpoints:
//   - GET    /api/usuarios
//   - DELETE /api/usuarios                       (clear all)
//   - GET    /api/usuarios/{numero}              (get-or-create)
//   - PUT    /api/usuarios/{numero}
//   - DELETE /api/usuarios/{numero}
//   - GET    /api/usuarios/{numero}/pode-responder
//   - GET    /api/pausados/{numero}              (legacy pause probe)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-whatsapp-backoffice/internal/http/middleware"
	"github.com/tbourn/go-whatsapp-backoffice/internal/services"
)

// UpdateUserRequest is the JSON payload for a partial user update.
type UpdateUserRequest struct {
	Name            *string `json:"nome"`
	Paused          *bool   `json:"pausado"`
	AcceptsMessages *bool   `json:"aceitaMensagens"`
}

// DeleteUserResponse wraps the removed record, mirroring the legacy API.
type DeleteUserResponse struct {
	Message string `json:"mensagem" example:"Usuário removido com sucesso"`
	User    any    `json:"usuario"`
}

// PausedResponse answers the legacy pause probe.
type PausedResponse struct {
	Paused bool `json:"pausado"`
}

// ListUsers godoc
// @ID          listUsers
// @Summary     List all users
// @Description Returns the whole registry keyed by phone number.
// @Tags        Usuarios
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]domain.User
// @Failure     401 {object} handlers.ErrorResponse
// @Router      /api/usuarios [get]
func (h *Handlers) ListUsers(c *gin.Context) {
	ok(c, http.StatusOK, h.registry.List())
}

// GetOrCreateUser godoc
// @ID          getOrCreateUser
// @Summary     Get a user, creating it when absent
// @Description Known numbers get lastContact refreshed and answer 200;
// @Description unknown numbers are created with defaults and answer 201.
// @Tags        Usuarios
// @Produce     json
// @Security    BearerAuth
// @Param       numero path  string true  "Phone number"
// @Param       nome   query string false "Display name for a new record"
// @Success     200 {object} domain.User
// @Success     201 {object} domain.User
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/usuarios/{numero} [get]
func (h *Handlers) GetOrCreateUser(c *gin.Context) {
	u, created, err := h.registry.GetOrCreate(c.Param("numero"), c.Query("nome"))
	if err != nil {
		fail(c, http.StatusInternalServerError, MsgStorageFailure)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ok(c, status, u)
}

// UpdateUser godoc
// @ID          updateUser
// @Summary     Update a user
// @Description Applies only the fields present in the body and refreshes
// @Description lastContact.
// @Tags        Usuarios
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       numero path string true "Phone number"
// @Param       body   body handlers.UpdateUserRequest true "Fields to change"
// @Success     200 {object} domain.User
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/usuarios/{numero} [put]
func (h *Handlers) UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	u, err := h.registry.Update(c.Param("numero"), services.UserPatch{
		Name:            req.Name,
		Paused:          req.Paused,
		AcceptsMessages: req.AcceptsMessages,
	})
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			fail(c, http.StatusNotFound, MsgUserGone)
			return
		}
		fail(c, http.StatusInternalServerError, "Erro ao atualizar usuário")
		return
	}
	ok(c, http.StatusOK, u)
}

// DeleteUser godoc
// @ID          deleteUser
// @Summary     Remove a user
// @Tags        Usuarios
// @Produce     json
// @Security    BearerAuth
// @Param       numero path string true "Phone number"
// @Success     200 {object} handlers.DeleteUserResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/usuarios/{numero} [delete]
func (h *Handlers) DeleteUser(c *gin.Context) {
	u, err := h.registry.Delete(c.Param("numero"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			fail(c, http.StatusNotFound, MsgUserGone)
			return
		}
		fail(c, http.StatusInternalServerError, "Erro ao remover usuário")
		return
	}
	ok(c, http.StatusOK, DeleteUserResponse{Message: "Usuário removido com sucesso", User: u})
}

// ClearUsers godoc
// @ID          clearUsers
// @Summary     Remove every user
// @Tags        Usuarios
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]string
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/usuarios [delete]
func (h *Handlers) ClearUsers(c *gin.Context) {
	if err := h.registry.ClearAll(); err != nil {
		fail(c, http.StatusInternalServerError, "Erro ao remover usuários")
		return
	}
	ok(c, http.StatusOK, gin.H{"mensagem": "Todos os usuários foram removidos"})
}

// CanRespond godoc
// @ID          canRespond
// @Summary     Check whether the assistant may answer a number
// @Description Unknown numbers may always be answered. For known users the
// @Description admin pause is checked before the user's opt-out.
// @Tags        Usuarios
// @Produce     json
// @Security    BearerAuth
// @Param       numero path string true "Phone number"
// @Success     200 {object} services.RespondVerdict
// @Router      /api/usuarios/{numero}/pode-responder [get]
func (h *Handlers) CanRespond(c *gin.Context) {
	ok(c, http.StatusOK, h.registry.CanRespond(c.Param("numero")))
}

// LegacyPaused godoc
// @ID          legacyPaused
// @Summary     Legacy pause probe
// @Description Deprecated: read the pausado field from GET /api/usuarios/{numero}
// @Description instead. Unknown numbers are reported as not paused.
// @Tags        Usuarios
// @Produce     json
// @Security    BearerAuth
// @Param       numero path string true "Phone number"
// @Success     200 {object} handlers.PausedResponse
// @Router      /api/pausados/{numero} [get]
func (h *Handlers) LegacyPaused(c *gin.Context) {
	middleware.LoggerFrom(c).Warn().
		Str("numero", c.Param("numero")).
		Msg("legacy /api/pausados route called; move the flow to GET /api/usuarios/:numero")
	ok(c, http.StatusOK, PausedResponse{Paused: h.registry.IsPaused(c.Param("numero"))})
}
