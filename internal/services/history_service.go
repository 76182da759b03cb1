// Package services – HistoryService
//
// This file implements the bounded conversation history. Appends are called
// mid-conversation by the automation flow, so a missing user record is
// auto-created with defaults instead of failing the call. The retention
// limit is read from the configuration document on every append: changing
// messageLimit takes effect on the next append, with no migration of
// histories already on disk.
package services

import (
	"time"

	"github.com/tbourn/go-whatsapp-backoffice/internal/domain"
	"github.com/tbourn/go-whatsapp-backoffice/internal/store"
)

// HistorySnapshot is the diagnostic read of one user's conversation.
type HistorySnapshot struct {
	Number        string           `json:"numero"`
	Name          string           `json:"nome"`
	TotalMessages int              `json:"totalMensagens"`
	History       []domain.Message `json:"historico"`
	LastContact   *time.Time       `json:"ultimoContato,omitempty"`
}

// HistoryService manages per-user conversation histories inside the users
// document.
type HistoryService struct {
	Store *store.Store
}

// NewHistoryService constructs a HistoryService over the given store.
func NewHistoryService(s *store.Store) *HistoryService {
	return &HistoryService{Store: s}
}

// Append validates and records one message for number, stamping it with the
// current time and refreshing LastContact. If the user record is absent it
// is created with defaults first. After the append the history is trimmed
// oldest-first down to the configured limit. Returns the appended message.
func (s *HistoryService) Append(number, sender, text string) (domain.Message, error) {
	if sender == "" || text == "" {
		return domain.Message{}, ErrMissingMessageFields
	}
	if sender != domain.SenderUser && sender != domain.SenderBot {
		return domain.Message{}, ErrInvalidSender
	}

	users := s.Store.Users()
	now := time.Now().UTC()

	u, ok := users[number]
	if !ok {
		u = domain.NewUser(number, DefaultUserName, now)
	}

	msg := domain.Message{Sender: sender, Text: text, Timestamp: now}
	u.History = append(u.History, msg)
	u.LastContact = now

	limit := s.Store.Config().EffectiveLimit()
	if over := len(u.History) - limit; over > 0 {
		u.History = append([]domain.Message{}, u.History[over:]...)
	}

	users[number] = u
	if err := s.Store.SaveUsers(users); err != nil {
		return domain.Message{}, err
	}
	return msg, nil
}

// Clear empties the history of number, refreshing LastContact. Unknown
// numbers are ErrUserNotFound.
func (s *HistoryService) Clear(number string) error {
	users := s.Store.Users()
	u, ok := users[number]
	if !ok {
		return ErrUserNotFound
	}
	u.History = []domain.Message{}
	u.LastContact = time.Now().UTC()
	users[number] = u
	return s.Store.SaveUsers(users)
}

// Read returns the history snapshot for number. Unknown numbers yield an
// empty-history shape rather than an error; this endpoint exists for
// debugging the flow and must never 404 mid-conversation.
func (s *HistoryService) Read(number string) HistorySnapshot {
	u, ok := s.Store.Users()[number]
	if !ok {
		return HistorySnapshot{Number: number, History: []domain.Message{}}
	}
	if u.History == nil {
		u.History = []domain.Message{}
	}
	last := u.LastContact
	return HistorySnapshot{
		Number:        u.Number,
		Name:          u.Name,
		TotalMessages: len(u.History),
		History:       u.History,
		LastContact:   &last,
	}
}
