package handlers

import (
	"mart/internal/apperrors"
	"mart/internal/models"
	"mart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/category/:category", h.HandleGetProductsByCategory)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id/stock", h.HandleDecrementStock)
	productRoutes.Post("/:id/stock/restore", h.HandleRestoreStock)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		log.Error().Err(err).Msg("failed to list products")
		return writeError(c, err)
	}
	return c.JSON(products)
}

// HandleGetProductsByCategory retrieves the products of one category.
func (h *ProductHandler) HandleGetProductsByCategory(c *fiber.Ctx) error {
	products, err := h.service.GetProductsByCategory(c.Params("category"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	product, err := h.service.GetProductByID(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    apperrors.CodeValidationFailed,
			"message": "invalid request body",
		})
	}

	if err := h.validate.Struct(product); err != nil {
		return writeValidationErrors(c, err)
	}

	if err := h.service.CreateProduct(&product); err != nil {
		log.Error().Err(err).Msg("failed to create product")
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct overwrites an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	var input models.Product
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    apperrors.CodeValidationFailed,
			"message": "invalid request body",
		})
	}

	if err := h.validate.Struct(input); err != nil {
		return writeValidationErrors(c, err)
	}

	product, err := h.service.UpdateProduct(id, &input)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.service.DeleteProduct(id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDecrementStock subtracts the "quantity" query parameter from the
// product's stock.
func (h *ProductHandler) HandleDecrementStock(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	quantity := c.QueryInt("quantity")
	if quantity <= 0 {
		return writeError(c, &apperrors.ValidationError{Msg: "quantity must be a positive integer"})
	}

	if err := h.service.DecrementStock(id, quantity); err != nil {
		log.Warn().Err(err).Uint("product_id", id).Int("quantity", quantity).Msg("stock decrement rejected")
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

// HandleRestoreStock adds the "quantity" query parameter back to the
// product's stock. Called by the order service to compensate failed orders.
func (h *ProductHandler) HandleRestoreStock(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	quantity := c.QueryInt("quantity")
	if quantity <= 0 {
		return writeError(c, &apperrors.ValidationError{Msg: "quantity must be a positive integer"})
	}

	if err := h.service.RestoreStock(id, quantity); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}
