// Handler wiring.
//
// Handlers are transport-thin: they validate and coerce input, call the
// service layer, and translate results (including the service sentinel
// errors) into HTTP responses. Service dependencies are consumed through
// interfaces so the transport stays decoupled from the concrete store.
package handlers

import (
	"github.com/tbourn/go-whatsapp-backoffice/internal/domain"
	"github.com/tbourn/go-whatsapp-backoffice/internal/services"
)

// CatalogService defines the product-catalog operations consumed by the
// HTTP handlers.
type CatalogService interface {
	List() []domain.Product
	Get(id int) (domain.Product, error)
	Create(name string, quantity int, price float64) (domain.Product, error)
	Update(id int, patch services.ProductPatch) (domain.Product, error)
	Delete(id int) (domain.Product, error)
}

// RegistryService defines the user-registry operations consumed by the HTTP
// handlers.
type RegistryService interface {
	List() map[string]domain.User
	GetOrCreate(number, name string) (domain.User, bool, error)
	CanRespond(number string) services.RespondVerdict
	IsPaused(number string) bool
	Update(number string, patch services.UserPatch) (domain.User, error)
	Delete(number string) (domain.User, error)
	ClearAll() error
}

// HistoryService defines the conversation-history operations consumed by
// the HTTP handlers.
type HistoryService interface {
	Append(number, sender, text string) (domain.Message, error)
	Clear(number string) error
	Read(number string) services.HistorySnapshot
}

// PromptService defines the payload-assembly operation consumed by the HTTP
// handlers.
type PromptService interface {
	BuildPayload(products []domain.Product, user *services.PromptUser, message string) (services.PromptPayload, error)
}

// ConfigService defines the configuration operations consumed by the HTTP
// handlers.
type ConfigService interface {
	Get() domain.AppConfig
	Update(patch services.ConfigPatch) (domain.AppConfig, error)
}

// Handlers groups the HTTP endpoints of the backoffice API.
type Handlers struct {
	catalog  CatalogService
	registry RegistryService
	history  HistoryService
	prompt   PromptService
	config   ConfigService

	// adminPassword doubles as the bearer token handed out by Login. A
	// known weak point of the legacy contract, kept until the flow learns
	// a real credential exchange.
	adminPassword string
}

// New constructs a Handlers instance bound to the given services.
func New(catalog CatalogService, registry RegistryService, history HistoryService,
	prompt PromptService, config ConfigService, adminPassword string) *Handlers {
	return &Handlers{
		catalog:       catalog,
		registry:      registry,
		history:       history,
		prompt:        prompt,
		config:        config,
		adminPassword: adminPassword,
	}
}
