package services

import (
	"context"
	"fmt"

	"mart/internal/apperrors"
	"mart/internal/clients"
	"mart/internal/models"
	"mart/internal/repositories"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// EventPublisher publishes order lifecycle events. A nil publisher disables
// publishing; publish failures never fail the request.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

// OrderService orchestrates order creation across the user and product
// services and handles status transitions.
type OrderService struct {
	orderRepo repositories.OrderRepository
	users     clients.UserDirectory
	catalog   clients.ProductCatalog
	publisher EventPublisher
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, users clients.UserDirectory, catalog clients.ProductCatalog, publisher EventPublisher) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		users:     users,
		catalog:   catalog,
		publisher: publisher,
	}
}

// GetAllOrders retrieves all orders.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// GetOrdersByUser retrieves the orders belonging to one user.
func (s *OrderService) GetOrdersByUser(userID uint) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(userID)
}

// CreateOrder builds and persists a new PENDING order. The user is fetched
// first; then each requested line, in caller order, fetches its product,
// checks stock, snapshots the unit price, and decrements stock at the
// catalog. On any failure after a decrement has been applied, the stock of
// every already-decremented line is restored before the error is returned,
// so a failed creation leaves the catalog as it found it.
func (s *OrderService) CreateOrder(ctx context.Context, req models.CreateOrderRequest) (*models.Order, error) {
	user, err := s.users.GetUser(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	log.Info().Uint("user_id", user.ID).Int("items", len(req.Items)).Msg("creating order")

	order := &models.Order{
		UserID:      req.UserID,
		Status:      models.StatusPending,
		TotalAmount: decimal.Zero,
	}

	var decremented []models.OrderItemRequest
	for _, item := range req.Items {
		product, err := s.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			s.releaseStock(ctx, decremented)
			return nil, err
		}

		if product.Stock < item.Quantity {
			s.releaseStock(ctx, decremented)
			return nil, &apperrors.InsufficientStockError{
				Product:   product.Name,
				Available: product.Stock,
				Requested: item.Quantity,
			}
		}

		subtotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		order.Lines = append(order.Lines, models.OrderLine{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
			Subtotal:  subtotal,
		})
		order.TotalAmount = order.TotalAmount.Add(subtotal)

		if err := s.catalog.DecrementStock(ctx, product.ID, item.Quantity); err != nil {
			s.releaseStock(ctx, decremented)
			return nil, err
		}
		decremented = append(decremented, item)
	}

	if err := s.orderRepo.Create(order); err != nil {
		s.releaseStock(ctx, decremented)
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	s.publish("order.created", order)
	log.Info().
		Uint("order_id", order.ID).
		Str("total", order.TotalAmount.String()).
		Msg("order created")
	return order, nil
}

// releaseStock compensates the stock decrements of a failed creation.
// Failures here are logged and swallowed; the caller reports the original
// error, not the compensation's.
func (s *OrderService) releaseStock(ctx context.Context, items []models.OrderItemRequest) {
	for _, item := range items {
		if err := s.catalog.RestoreStock(ctx, item.ProductID, item.Quantity); err != nil {
			log.Error().
				Err(err).
				Uint("product_id", item.ProductID).
				Int("quantity", item.Quantity).
				Msg("failed to restore stock while rolling back order")
		}
	}
}

// UpdateOrderStatus overwrites the status of an existing order. Any known
// status is accepted; only cancellation enforces transition rules.
func (s *OrderService) UpdateOrderStatus(id uint, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, &apperrors.ValidationError{Msg: fmt.Sprintf("invalid order status: %s", status)}
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	s.publish("order.status_updated", order)
	log.Info().Uint("order_id", id).Str("status", string(status)).Msg("order status updated")
	return order, nil
}

// CancelOrder sets an order's status to CANCELLED. Delivered orders cannot
// be cancelled; cancelling a cancelled order is a no-op. Stock decremented
// at creation is not restored.
func (s *OrderService) CancelOrder(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if order.Status == models.StatusDelivered {
		return nil, &apperrors.InvalidTransitionError{
			From: string(order.Status),
			To:   string(models.StatusCancelled),
		}
	}
	if order.Status == models.StatusCancelled {
		return order, nil
	}

	if err := s.orderRepo.UpdateStatus(id, models.StatusCancelled); err != nil {
		return nil, err
	}
	order.Status = models.StatusCancelled

	s.publish("order.cancelled", order)
	log.Info().Uint("order_id", id).Msg("order cancelled")
	return order, nil
}

func (s *OrderService) publish(routingKey string, order *models.Order) {
	if s.publisher == nil {
		return
	}
	payload := map[string]any{
		"order_id":     order.ID,
		"user_id":      order.UserID,
		"status":       order.Status,
		"total_amount": order.TotalAmount,
	}
	if err := s.publisher.Publish(routingKey, payload); err != nil {
		log.Warn().
			Err(err).
			Uint("order_id", order.ID).
			Str("event", routingKey).
			Msg("failed to publish order event")
	}
}
