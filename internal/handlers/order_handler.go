package handlers

import (
	"mart/internal/apperrors"
	"mart/internal/models"
	"mart/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service  *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService) *OrderHandler {
	return &OrderHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/user/:userId", h.HandleGetOrdersByUser)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Put("/:id/status", h.HandleUpdateOrderStatus)
	orderRoutes.Post("/:id/cancel", h.HandleCancelOrder)
}

// HandleGetOrders retrieves all orders.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.GetAllOrders()
	if err != nil {
		log.Error().Err(err).Msg("failed to list orders")
		return writeError(c, err)
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}
	order, err := h.service.GetOrderByID(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(order)
}

// HandleGetOrdersByUser retrieves the orders belonging to one user.
func (h *OrderHandler) HandleGetOrdersByUser(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return writeError(c, err)
	}
	orders, err := h.service.GetOrdersByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("user_id", userID).Msg("failed to list orders by user")
		return writeError(c, err)
	}
	return c.JSON(orders)
}

// HandleCreateOrder creates a new order.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req models.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    apperrors.CodeValidationFailed,
			"message": "invalid request body",
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return writeValidationErrors(c, err)
	}

	order, err := h.service.CreateOrder(c.UserContext(), req)
	if err != nil {
		log.Warn().Err(err).Uint("user_id", req.UserID).Msg("order creation failed")
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleUpdateOrderStatus overwrites the status of an existing order. The
// target status comes from the "status" query parameter.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	status := models.OrderStatus(c.Query("status"))
	order, err := h.service.UpdateOrderStatus(id, status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(order)
}

// HandleCancelOrder cancels an order unless it was already delivered.
func (h *OrderHandler) HandleCancelOrder(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return writeError(c, err)
	}

	order, err := h.service.CancelOrder(id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(order)
}
