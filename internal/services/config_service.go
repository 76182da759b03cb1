// Package services – ConfigService
//
// This file implements reads and partial merges of the singleton
// configuration document. Only fields present in the patch are applied;
// everything else keeps its stored value.
package services

import (
	"github.com/tbourn/go-whatsapp-backoffice/internal/domain"
	"github.com/tbourn/go-whatsapp-backoffice/internal/store"
)

// LLMPatch carries the optional LLM fields of a configuration update.
type LLMPatch struct {
	Model        *string `json:"model"`
	APIKey       *string `json:"apiKey"`
	SystemPrompt *string `json:"systemPrompt"`
}

// HistoryPatch carries the optional history fields of a configuration update.
type HistoryPatch struct {
	MessageLimit *int `json:"messageLimit"`
}

// ConfigPatch is a partial configuration update. Empty reports whether the
// patch carries no recognized field at all.
type ConfigPatch struct {
	LLM     *LLMPatch     `json:"llm"`
	History *HistoryPatch `json:"history"`
}

// Empty reports whether no recognized field is present in the patch.
func (p ConfigPatch) Empty() bool {
	if p.LLM != nil && (p.LLM.Model != nil || p.LLM.APIKey != nil || p.LLM.SystemPrompt != nil) {
		return false
	}
	if p.History != nil && p.History.MessageLimit != nil {
		return false
	}
	return true
}

// ConfigService manages the configuration document.
type ConfigService struct {
	Store *store.Store
}

// NewConfigService constructs a ConfigService over the given store.
func NewConfigService(s *store.Store) *ConfigService {
	return &ConfigService{Store: s}
}

// Get returns the stored document as-is.
func (s *ConfigService) Get() domain.AppConfig {
	return s.Store.Config()
}

// Update merges the provided fields into the stored document, persists, and
// returns the full merged result. A patch with no recognized field is
// rejected with ErrEmptyConfigUpdate. Range validation of messageLimit
// happens at the HTTP edge, before this method is reached.
func (s *ConfigService) Update(patch ConfigPatch) (domain.AppConfig, error) {
	if patch.Empty() {
		return domain.AppConfig{}, ErrEmptyConfigUpdate
	}

	cfg := s.Store.Config()
	if patch.LLM != nil {
		if patch.LLM.Model != nil {
			cfg.LLM.Model = *patch.LLM.Model
		}
		if patch.LLM.APIKey != nil {
			cfg.LLM.APIKey = *patch.LLM.APIKey
		}
		if patch.LLM.SystemPrompt != nil {
			cfg.LLM.SystemPrompt = *patch.LLM.SystemPrompt
		}
	}
	if patch.History != nil && patch.History.MessageLimit != nil {
		cfg.History.MessageLimit = *patch.History.MessageLimit
	}

	if err := s.Store.SaveConfig(cfg); err != nil {
		return domain.AppConfig{}, err
	}
	return cfg, nil
}
