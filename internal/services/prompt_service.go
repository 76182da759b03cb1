// Package services – PromptService
//
// This file assembles the chat-completion request body for the external
// orchestrator. The service formats a single system block (base prompt +
// current stock + recent conversation) and returns it together with the
// provider key; the outbound LLM call itself happens outside this service.
package services

import (
	"fmt"
	"os"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/text/language"
	textmessage "golang.org/x/text/message"

	"github.com/tbourn/go-whatsapp-backoffice/internal/domain"
	"github.com/tbourn/go-whatsapp-backoffice/internal/store"
)

// timestampLayout renders history timestamps the way the admin page shows
// them (Brazilian day-first order).
const timestampLayout = "02/01/2006 15:04"

// HistoryEntry is one caller-supplied conversation line. The timestamp stays
// a raw string on purpose: the flow occasionally relays malformed or missing
// values and the assembler must tolerate them instead of rejecting the call.
type HistoryEntry struct {
	Sender    string `json:"remetente"`
	Text      string `json:"mensagem"`
	Timestamp string `json:"timestamp"`
}

// PromptUser identifies the conversation the payload is being built for.
// History is taken as supplied by the caller, not re-read from the store.
type PromptUser struct {
	Number  string         `json:"numero"`
	Name    string         `json:"nome"`
	History []HistoryEntry `json:"historico"`
}

// PromptPayload is the assembled result: a provider-ready chat-completion
// request plus the key the orchestrator should call the provider with.
type PromptPayload struct {
	Payload openai.ChatCompletionRequest `json:"payload"`
	APIKey  string                       `json:"apiKey"`
}

// PromptService formats prompt payloads from the stored configuration, an
// optional system-prompt override file, and caller-supplied context.
type PromptService struct {
	Store *store.Store
	// PromptFile optionally overrides the stored system prompt. When the
	// file is absent or unreadable the stored value is used.
	PromptFile string

	printer *textmessage.Printer
}

// NewPromptService constructs a PromptService. Prices are rendered with
// Brazilian decimal separators to match the language of the prompt.
func NewPromptService(s *store.Store, promptFile string) *PromptService {
	return &PromptService{
		Store:      s,
		PromptFile: promptFile,
		printer:    textmessage.NewPrinter(language.BrazilianPortuguese),
	}
}

// BuildPayload assembles the chat-completion request for one inbound
// message. The user and the message are required; products and history may
// be empty, which yields the corresponding notice sections.
func (s *PromptService) BuildPayload(products []domain.Product, user *PromptUser, msg string) (PromptPayload, error) {
	if user == nil || strings.TrimSpace(msg) == "" {
		return PromptPayload{}, ErrMissingPromptFields
	}

	cfg := s.Store.Config()

	var sb strings.Builder
	sb.WriteString(s.basePrompt(cfg))
	sb.WriteString("\n\n")
	s.writeStock(&sb, products)
	sb.WriteString("\n")
	s.writeHistory(&sb, user, cfg.EffectiveLimit())

	return PromptPayload{
		Payload: openai.ChatCompletionRequest{
			Model: cfg.LLM.Model,
			Messages: []openai.ChatCompletionMessage{
				{Role: openai.ChatMessageRoleSystem, Content: sb.String()},
				{Role: openai.ChatMessageRoleUser, Content: msg},
			},
		},
		APIKey: cfg.LLM.APIKey,
	}, nil
}

// basePrompt prefers the override file and falls back to the stored prompt.
func (s *PromptService) basePrompt(cfg domain.AppConfig) string {
	if s.PromptFile != "" {
		if raw, err := os.ReadFile(s.PromptFile); err == nil {
			if prompt := strings.TrimSpace(string(raw)); prompt != "" {
				return prompt
			}
		}
	}
	return strings.TrimSpace(cfg.LLM.SystemPrompt)
}

// writeStock renders the catalog section: one line per product with price,
// quantity and availability, or an empty-stock notice.
func (s *PromptService) writeStock(sb *strings.Builder, products []domain.Product) {
	sb.WriteString("=== ESTOQUE ATUAL ===\n")
	if len(products) == 0 {
		sb.WriteString("Estoque vazio no momento.\n")
		return
	}
	for _, p := range products {
		availability := "Disponível"
		if p.Quantity <= 0 {
			availability = "Sem estoque"
		}
		fmt.Fprintf(sb, "- %s: R$ %s | Quantidade: %d | %s\n",
			p.Name, s.printer.Sprintf("%.2f", p.Price), p.Quantity, availability)
	}
}

// writeHistory renders the last limit caller-supplied entries, newest last,
// or a first-interaction notice when there are none.
func (s *PromptService) writeHistory(sb *strings.Builder, user *PromptUser, limit int) {
	sb.WriteString("=== HISTÓRICO DA CONVERSA ===\n")
	history := user.History
	if len(history) == 0 {
		sb.WriteString("Primeira interação com o usuário.\n")
		return
	}
	if len(history) > limit {
		history = history[len(history)-limit:]
	}
	for _, entry := range history {
		role := entry.Sender
		switch entry.Sender {
		case domain.SenderUser:
			role = "Usuário"
		case domain.SenderBot:
			role = "Assistente"
		}
		if ts, ok := parseTimestamp(entry.Timestamp); ok {
			fmt.Fprintf(sb, "%s: %s (%s)\n", role, entry.Text, ts.Format(timestampLayout))
		} else {
			fmt.Fprintf(sb, "%s: %s\n", role, entry.Text)
		}
	}
}

// parseTimestamp accepts the RFC 3339 shapes the flow actually sends and
// reports failure for anything else so callers can skip the parenthetical.
func parseTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
