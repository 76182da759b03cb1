// Package services implements the business logic of the backoffice: the
// product catalog, the user registry, the bounded conversation history, the
// prompt payload assembler, and the configuration document. This file
// centralizes the service-level error values so they can be consistently
// returned by service methods and checked by callers.
//
// Translation into wire messages and HTTP status codes happens at the
// handler layer; these sentinels only classify the failure.
package services

import "errors"

// Not-found errors (mapped to 404).
var (
	// ErrProductNotFound indicates that no catalog entry carries the
	// requested id.
	ErrProductNotFound = errors.New("produto não encontrado")

	// ErrUserNotFound indicates that the registry has no entry for the
	// requested phone number.
	ErrUserNotFound = errors.New("usuário não encontrado")
)

// Invalid-input errors (mapped to 400).
var (
	// ErrMissingProductFields is returned when a catalog create lacks any of
	// name, quantity, or price.
	ErrMissingProductFields = errors.New("nome, quantidade e valor são obrigatórios")

	// ErrMissingMessageFields is returned when a history append lacks the
	// sender or the text.
	ErrMissingMessageFields = errors.New("remetente e mensagem são obrigatórios")

	// ErrInvalidSender is returned when a history append carries a sender
	// other than "user" or "bot".
	ErrInvalidSender = errors.New("remetente deve ser 'user' ou 'bot'")

	// ErrMissingPromptFields is returned when a payload build lacks the user
	// or the inbound message.
	ErrMissingPromptFields = errors.New("usuário e mensagem são obrigatórios")

	// ErrEmptyConfigUpdate is returned when a configuration update carries no
	// recognized field.
	ErrEmptyConfigUpdate = errors.New("nenhum campo de configuração informado")
)
