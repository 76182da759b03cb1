// Package domain defines the persisted documents of the backoffice: the
// product catalog, the user registry with its bounded conversation history,
// and the singleton LLM configuration. The JSON tags are the wire contract
// shared with the automation flow and the admin page and keep the original
// Portuguese field names.
package domain

import "time"

// Message senders. History entries only ever carry one of these two values;
// the prompt assembler maps them to chat-completion roles.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// DefaultHistoryLimit is the number of history messages retained per user
// when the stored configuration carries no usable limit.
const DefaultHistoryLimit = 15

// Product is one catalog entry quoted by the assistant.
//
// Fields:
//   - ID: unique integer, assigned as max(existing)+1 (1 when the catalog is
//     empty). Deleting the highest id frees it for reuse on the next create;
//     that is long-standing observable behavior, not an accident.
//   - Name: display name, stored trimmed.
//   - Quantity: units in stock; zero means "out of stock" in prompts.
//   - Price: unit price.
type Product struct {
	ID       int     `json:"id"`
	Name     string  `json:"nome"`
	Quantity int     `json:"quantidade"`
	Price    float64 `json:"valor"`
}

// Message is a single utterance in a user's conversation history. Messages
// are immutable once appended; they only leave the history via FIFO trimming
// or a full clear.
type Message struct {
	Sender    string    `json:"remetente"`
	Text      string    `json:"mensagem"`
	Timestamp time.Time `json:"timestamp"`
}

// User is one registry entry, keyed by phone number in the users document.
//
// Paused is the admin-side suppression flag; AcceptsMessages is the
// user-side opt-out (false means the user declined AI replies). Both must be
// favorable for the assistant to answer. LastContact is refreshed by every
// read or write that touches the record.
type User struct {
	Number          string    `json:"numero"`
	Name            string    `json:"nome"`
	Paused          bool      `json:"pausado"`
	AcceptsMessages bool      `json:"aceitaMensagens"`
	FirstContact    time.Time `json:"primeiroContato"`
	LastContact     time.Time `json:"ultimoContato"`
	History         []Message `json:"historico"`
	Tags            []string  `json:"tags"`
}

// NewUser returns a fresh registry entry with the defaults applied to every
// lazily created user: not paused, accepting messages, empty history and
// tags, both contact timestamps set to now.
func NewUser(number, name string, now time.Time) User {
	return User{
		Number:          number,
		Name:            name,
		Paused:          false,
		AcceptsMessages: true,
		FirstContact:    now,
		LastContact:     now,
		History:         []Message{},
		Tags:            []string{},
	}
}

// LLMConfig holds the provider settings handed to the external orchestrator.
type LLMConfig struct {
	Model        string `json:"model"`
	APIKey       string `json:"apiKey"`
	SystemPrompt string `json:"systemPrompt"`
}

// HistoryConfig holds conversation-history tuning.
type HistoryConfig struct {
	// MessageLimit caps retained history per user. The HTTP edge enforces
	// 5–50; a hand-edited document below 1 falls back to DefaultHistoryLimit.
	MessageLimit int `json:"messageLimit"`
}

// AppConfig is the singleton configuration document. It is mutated only by
// partial merge, so a partial update never blanks existing fields.
type AppConfig struct {
	LLM     LLMConfig     `json:"llm"`
	History HistoryConfig `json:"history"`
}

// DefaultAppConfig is the document seeded on first startup. The key is a
// placeholder on purpose; real deployments set it through PUT /api/config.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		LLM: LLMConfig{
			Model:        "gpt-4o-mini",
			APIKey:       "sk-placeholder",
			SystemPrompt: "Você é um assistente de vendas atencioso. Responda de forma curta e educada.",
		},
		History: HistoryConfig{MessageLimit: DefaultHistoryLimit},
	}
}

// EffectiveLimit returns the history limit to apply on the next append,
// substituting the default when the stored value is unusable.
func (c AppConfig) EffectiveLimit() int {
	if c.History.MessageLimit < 1 {
		return DefaultHistoryLimit
	}
	return c.History.MessageLimit
}
