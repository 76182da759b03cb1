// Product catalog HTTP handlers.
//
// Endpoints:
//   - GET    /api/produtos
//   - POST   /api/produtos
//   - GET    /api/produtos/{id}
//   - PUT    /api/produtos/{id}
//   - DELETE /api/produtos/{id}
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-whatsapp-backoffice/internal/services"
)

// CreateProductRequest is the JSON payload for creating a product. All
// three fields are required; numeric fields accept numbers or numeric
// strings.
type CreateProductRequest struct {
	Name     *string `json:"nome" example:"Tela"`
	Quantity *Number `json:"quantidade" swaggertype:"number" example:"3"`
	Price    *Number `json:"valor" swaggertype:"number" example:"99.9"`
}

// UpdateProductRequest is the JSON payload for a partial product update.
type UpdateProductRequest struct {
	Name     *string `json:"nome"`
	Quantity *Number `json:"quantidade" swaggertype:"number"`
	Price    *Number `json:"valor" swaggertype:"number"`
}

// DeleteProductResponse wraps the removed record, mirroring the legacy API.
type DeleteProductResponse struct {
	Message string `json:"mensagem" example:"Produto removido com sucesso"`
	Product any    `json:"produto"`
}

// productID parses the :id path parameter. Non-numeric ids never match a
// product, so they answer 404 like any unknown id (legacy behavior).
func productID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(c.Param("id")))
	if err != nil {
		fail(c, http.StatusNotFound, MsgProductGone)
		return 0, false
	}
	return id, true
}

// ListProducts godoc
// @ID          listProducts
// @Summary     List all products
// @Description Returns the whole catalog in insertion order.
// @Tags        Produtos
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array}  domain.Product
// @Failure     401 {object} handlers.ErrorResponse
// @Router      /api/produtos [get]
func (h *Handlers) ListProducts(c *gin.Context) {
	ok(c, http.StatusOK, h.catalog.List())
}

// GetProduct godoc
// @ID          getProduct
// @Summary     Get a product by id
// @Tags        Produtos
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Product id"
// @Success     200 {object} domain.Product
// @Failure     404 {object} handlers.ErrorResponse
// @Router      /api/produtos/{id} [get]
func (h *Handlers) GetProduct(c *gin.Context) {
	id, okID := productID(c)
	if !okID {
		return
	}
	p, err := h.catalog.Get(id)
	if err != nil {
		fail(c, http.StatusNotFound, MsgProductGone)
		return
	}
	ok(c, http.StatusOK, p)
}

// CreateProduct godoc
// @ID          createProduct
// @Summary     Create a product
// @Description Assigns the next free id and appends the product to the catalog.
// @Tags        Produtos
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body body handlers.CreateProductRequest true "New product"
// @Success     201 {object} domain.Product
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/produtos [post]
func (h *Handlers) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Nome, quantidade e valor são obrigatórios")
		return
	}
	if req.Name == nil || req.Quantity == nil || req.Price == nil {
		fail(c, http.StatusBadRequest, "Nome, quantidade e valor são obrigatórios")
		return
	}

	p, err := h.catalog.Create(*req.Name, req.Quantity.Int(), req.Price.Float())
	if err != nil {
		if errors.Is(err, services.ErrMissingProductFields) {
			fail(c, http.StatusBadRequest, "Nome, quantidade e valor são obrigatórios")
			return
		}
		fail(c, http.StatusInternalServerError, "Erro ao criar produto")
		return
	}
	ok(c, http.StatusCreated, p)
}

// UpdateProduct godoc
// @ID          updateProduct
// @Summary     Update a product
// @Description Applies only the fields present in the body.
// @Tags        Produtos
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id   path int true "Product id"
// @Param       body body handlers.UpdateProductRequest true "Fields to change"
// @Success     200 {object} domain.Product
// @Failure     400 {object} handlers.ErrorResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/produtos/{id} [put]
func (h *Handlers) UpdateProduct(c *gin.Context) {
	id, okID := productID(c)
	if !okID {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, MsgInvalidBody)
		return
	}

	patch := services.ProductPatch{Name: req.Name}
	if req.Quantity != nil {
		q := req.Quantity.Int()
		patch.Quantity = &q
	}
	if req.Price != nil {
		v := req.Price.Float()
		patch.Price = &v
	}

	p, err := h.catalog.Update(id, patch)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			fail(c, http.StatusNotFound, MsgProductGone)
			return
		}
		fail(c, http.StatusInternalServerError, "Erro ao atualizar produto")
		return
	}
	ok(c, http.StatusOK, p)
}

// DeleteProduct godoc
// @ID          deleteProduct
// @Summary     Remove a product
// @Tags        Produtos
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Product id"
// @Success     200 {object} handlers.DeleteProductResponse
// @Failure     404 {object} handlers.ErrorResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /api/produtos/{id} [delete]
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id, okID := productID(c)
	if !okID {
		return
	}

	p, err := h.catalog.Delete(id)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			fail(c, http.StatusNotFound, MsgProductGone)
			return
		}
		fail(c, http.StatusInternalServerError, "Erro ao remover produto")
		return
	}
	ok(c, http.StatusOK, DeleteProductResponse{Message: "Produto removido com sucesso", Product: p})
}
