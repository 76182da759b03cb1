// Package services – CatalogService
//
// This file implements CRUD over the product catalog. Every mutation is a
// whole-document read-modify-write against the JSON store; ids are assigned
// as max(existing)+1, which deliberately allows a freed top id to be reused
// after a delete (observable behavior the automation flow relies on).
package services

import (
	"strings"

	"github.com/tbourn/go-whatsapp-backoffice/internal/domain"
	"github.com/tbourn/go-whatsapp-backoffice/internal/store"
)

// ProductPatch carries the optional fields of a catalog update. Nil fields
// are left unchanged.
type ProductPatch struct {
	Name     *string
	Quantity *int
	Price    *float64
}

// CatalogService manages the product catalog document.
type CatalogService struct {
	Store *store.Store
}

// NewCatalogService constructs a CatalogService over the given store.
func NewCatalogService(s *store.Store) *CatalogService {
	return &CatalogService{Store: s}
}

// List returns all products in insertion order.
func (s *CatalogService) List() []domain.Product {
	return s.Store.Products()
}

// Get returns the product with the given id, or ErrProductNotFound.
func (s *CatalogService) Get(id int) (domain.Product, error) {
	for _, p := range s.Store.Products() {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, ErrProductNotFound
}

// Create validates, assigns the next id, appends, and persists a product.
// The name is stored trimmed; an empty trimmed name counts as missing.
func (s *CatalogService) Create(name string, quantity int, price float64) (domain.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Product{}, ErrMissingProductFields
	}

	products := s.Store.Products()
	p := domain.Product{
		ID:       nextID(products),
		Name:     name,
		Quantity: quantity,
		Price:    price,
	}
	products = append(products, p)
	if err := s.Store.SaveProducts(products); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

// Update applies only the fields present in patch to the product with the
// given id and persists the catalog. Returns the updated record.
func (s *CatalogService) Update(id int, patch ProductPatch) (domain.Product, error) {
	products := s.Store.Products()
	for i := range products {
		if products[i].ID != id {
			continue
		}
		if patch.Name != nil {
			products[i].Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Quantity != nil {
			products[i].Quantity = *patch.Quantity
		}
		if patch.Price != nil {
			products[i].Price = *patch.Price
		}
		if err := s.Store.SaveProducts(products); err != nil {
			return domain.Product{}, err
		}
		return products[i], nil
	}
	return domain.Product{}, ErrProductNotFound
}

// Delete removes the product with the given id, persists the catalog, and
// returns the removed record.
func (s *CatalogService) Delete(id int) (domain.Product, error) {
	products := s.Store.Products()
	for i := range products {
		if products[i].ID != id {
			continue
		}
		removed := products[i]
		products = append(products[:i], products[i+1:]...)
		if err := s.Store.SaveProducts(products); err != nil {
			return domain.Product{}, err
		}
		return removed, nil
	}
	return domain.Product{}, ErrProductNotFound
}

// nextID returns max(existing ids)+1, or 1 for an empty catalog.
func nextID(products []domain.Product) int {
	max := 0
	for _, p := range products {
		if p.ID > max {
			max = p.ID
		}
	}
	return max + 1
}
