// Authentication HTTP handler.
//
// Endpoint:
//   - POST /api/login (public)
//
// The issued token is the admin password itself: the automation flow and
// the admin page send it back as a bearer token on every /api/* call. That
// equivalence is a documented weak point of the legacy contract, not a
// feature to build on.
package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// LoginRequest is the JSON payload for obtaining the API token.
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse carries the bearer token for subsequent calls.
type LoginResponse struct {
	Token string `json:"token"`
}

// Login godoc
// @ID          login
// @Summary     Exchange the admin password for the API token
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Param       body body handlers.LoginRequest true "Credentials"
// @Success     200 {object} handlers.LoginResponse
// @Failure     401 {object} handlers.ErrorResponse
// @Router      /api/login [post]
func (h *Handlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, MsgInvalidBody)
		return
	}
	if subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.adminPassword)) != 1 {
		fail(c, http.StatusUnauthorized, MsgWrongPassword)
		return
	}
	ok(c, http.StatusOK, LoginResponse{Token: h.adminPassword})
}
