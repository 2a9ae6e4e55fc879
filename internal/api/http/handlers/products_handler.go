package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// ProductsHandler exposes the service-offering catalogue endpoints.
type ProductsHandler struct {
	products repository.ProductRepository
}

// NewProductsHandler constructs handler.
func NewProductsHandler(products repository.ProductRepository) *ProductsHandler {
	return &ProductsHandler{products: products}
}

// List handles GET /products.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	products, err := h.products.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, product := range products {
		items = append(items, productResponse(product))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create handles POST /products. Admin only.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Title == "" || req.Price <= 0 {
		return apperrors.NewValidationError("title and positive price required", nil)
	}

	product := &domain.Product{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Active:      true,
	}
	if err := h.products.Create(c.Context(), product); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": productResponse(*product)})
}

// SetActive handles PATCH /products/:id/active. Admin only.
func (h *ProductsHandler) SetActive(c *fiber.Ctx) error {
	id := c.Params("id")
	var req dto.SetProductActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.products.SetActive(c.Context(), id, req.Active); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Product updated"})
}

func productResponse(product domain.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          product.ID,
		Title:       product.Title,
		Description: product.Description,
		Price:       product.Price,
		Category:    product.Category,
		ImageURL:    product.ImageURL,
		Active:      product.Active,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}
