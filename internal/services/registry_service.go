// Package services – RegistryService
//
// This file implements the user registry: lazy get-or-create by phone
// number, the pause/opt-out gate consulted by the automation flow before
// answering, partial field patches, and removal. Every operation re-reads
// the users document and rewrites it wholesale after a mutation.
package services

import (
	"time"

	"github.com/tbourn/go-whatsapp-backoffice/internal/domain"
	"github.com/tbourn/go-whatsapp-backoffice/internal/store"
)

// DefaultUserName is assigned to lazily created users when the caller did
// not provide a display name (the automation flow often has none yet).
const DefaultUserName = "Usuario"

// Gate reasons returned by CanRespond. Paused wins over opt-out.
const (
	ReasonNewUser  = "Usuario novo"
	ReasonPaused   = "Usuario pausado pelo admin"
	ReasonOptedOut = "Usuario não aceita mensagens de IA"
	ReasonActive   = "Usuario ativo"
)

// UserPatch carries the optional fields of a registry update. Nil fields are
// left unchanged; LastContact is refreshed regardless.
type UserPatch struct {
	Name            *string
	Paused          *bool
	AcceptsMessages *bool
}

// RespondVerdict is the answer of the pause/opt-out gate.
type RespondVerdict struct {
	CanRespond bool         `json:"podeResponder"`
	Reason     string       `json:"motivo"`
	User       *UserSummary `json:"usuario,omitempty"`
}

// UserSummary is the abbreviated record embedded in a RespondVerdict for
// known users.
type UserSummary struct {
	Name            string `json:"nome"`
	Number          string `json:"numero"`
	Paused          bool   `json:"pausado"`
	AcceptsMessages bool   `json:"aceitaMensagens"`
}

// RegistryService manages the user registry document.
type RegistryService struct {
	Store *store.Store
}

// NewRegistryService constructs a RegistryService over the given store.
func NewRegistryService(s *store.Store) *RegistryService {
	return &RegistryService{Store: s}
}

// List returns the whole registry keyed by phone number.
func (s *RegistryService) List() map[string]domain.User {
	return s.Store.Users()
}

// GetOrCreate returns the record for number, creating it with defaults when
// absent. The created flag tells the handler whether to answer 201 or 200.
// Existing records get LastContact refreshed and persisted even on a lookup.
func (s *RegistryService) GetOrCreate(number, name string) (domain.User, bool, error) {
	if name == "" {
		name = DefaultUserName
	}
	users := s.Store.Users()
	now := time.Now().UTC()

	if u, ok := users[number]; ok {
		u.LastContact = now
		users[number] = u
		if err := s.Store.SaveUsers(users); err != nil {
			return domain.User{}, false, err
		}
		return u, false, nil
	}

	u := domain.NewUser(number, name, now)
	users[number] = u
	if err := s.Store.SaveUsers(users); err != nil {
		return domain.User{}, false, err
	}
	return u, true, nil
}

// CanRespond reports whether the assistant may answer number. Unknown
// numbers may always be answered. For known users the admin pause is checked
// before the user's own opt-out, so a record with both flags set reports the
// pause reason.
func (s *RegistryService) CanRespond(number string) RespondVerdict {
	u, ok := s.Store.Users()[number]
	if !ok {
		return RespondVerdict{CanRespond: true, Reason: ReasonNewUser}
	}

	reason := ReasonActive
	switch {
	case u.Paused:
		reason = ReasonPaused
	case !u.AcceptsMessages:
		reason = ReasonOptedOut
	}
	return RespondVerdict{
		CanRespond: !u.Paused && u.AcceptsMessages,
		Reason:     reason,
		User: &UserSummary{
			Name:            u.Name,
			Number:          u.Number,
			Paused:          u.Paused,
			AcceptsMessages: u.AcceptsMessages,
		},
	}
}

// IsPaused answers the legacy pause probe: unknown numbers are not paused.
func (s *RegistryService) IsPaused(number string) bool {
	u, ok := s.Store.Users()[number]
	return ok && u.Paused
}

// Update applies only the fields present in patch to the record for number,
// refreshes LastContact, persists, and returns the updated record.
func (s *RegistryService) Update(number string, patch UserPatch) (domain.User, error) {
	users := s.Store.Users()
	u, ok := users[number]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}

	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Paused != nil {
		u.Paused = *patch.Paused
	}
	if patch.AcceptsMessages != nil {
		u.AcceptsMessages = *patch.AcceptsMessages
	}
	u.LastContact = time.Now().UTC()

	users[number] = u
	if err := s.Store.SaveUsers(users); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// Delete removes the record for number and returns it.
func (s *RegistryService) Delete(number string) (domain.User, error) {
	users := s.Store.Users()
	u, ok := users[number]
	if !ok {
		return domain.User{}, ErrUserNotFound
	}
	delete(users, number)
	if err := s.Store.SaveUsers(users); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// ClearAll wipes the whole registry.
func (s *RegistryService) ClearAll() error {
	return s.Store.SaveUsers(map[string]domain.User{})
}
