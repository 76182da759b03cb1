// Package handlers provides the HTTP handler implementations for the public
// API.
//
// This file defines the response utilities shared by all endpoints. The wire
// contract is inherited from the automation flow that consumes this service:
// every failure body is `{"erro": "<mensagem>"}` with a Portuguese message,
// and success bodies are the bare resource (no envelope).
//
// Conventions:
//   - fail() centralizes error formatting and makes sure 5xx responses are
//     logged with request context.
//   - ok() keeps success responses uniform across handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-whatsapp-backoffice/internal/http/middleware"
)

// Wire messages shared across endpoints.
const (
	MsgUnauthorized   = "Não autorizado"
	MsgRouteNotFound  = "Rota não encontrada"
	MsgInvalidBody    = "Corpo da requisição inválido"
	MsgProductGone    = "Produto não encontrado"
	MsgUserGone       = "Usuário não encontrado"
	MsgInternalError  = "Erro interno do servidor"
	MsgMethodBlocked  = "Método não permitido"
	MsgWrongPassword  = "Senha incorreta"
	MsgStorageFailure = "Erro ao salvar dados"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
// The single field name is part of the legacy wire contract.
type ErrorResponse struct {
	// Erro is the human-readable message, in Portuguese like the rest of
	// the API surface.
	Erro string `json:"erro" example:"Produto não encontrado"`
}

// fail aborts the request with the `{erro}` envelope. Server-side errors
// (>= 500) are additionally logged through the request-scoped logger so the
// correlation id lands next to the failure.
func fail(c *gin.Context, status int, msg string) {
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("message", msg).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Erro: msg})
}

// Fail is the exported variant of fail() for router-level fallbacks
// (NoRoute, NoMethod) that live outside this package.
func Fail(c *gin.Context, status int, msg string) { fail(c, status, msg) }

// ok writes a success JSON response with the given status.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
