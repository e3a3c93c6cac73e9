package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/projectd/dealership-api/internal/logger"
	"github.com/projectd/dealership-api/internal/model"
	"github.com/projectd/dealership-api/internal/queue"
	"github.com/projectd/dealership-api/internal/repository"
)

// OrderHandler serves POST /api/orders.  Accepting an order is a
// terminal operation: the payload is persisted as-is and an event is
// published for downstream consumers; nothing else changes.
type OrderHandler struct {
	Orders *repository.OrderRepo
	// Publish sends the order.created event; nil disables publishing
	// (tests, broker-less deployments).  Failures are logged, never
	// surfaced to the customer.
	Publish func(ctx context.Context, ev queue.OrderCreatedEvent) error
}

func NewOrderHandler(orders *repository.OrderRepo, publish func(context.Context, queue.OrderCreatedEvent) error) *OrderHandler {
	return &OrderHandler{Orders: orders, Publish: publish}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c echo.Context) error {
	var req model.Order
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid request body"})
	}

	order, err := h.Orders.Create(req)
	if err != nil {
		logger.FromEcho(c).Error("create order failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "Internal server error"})
	}

	if h.Publish != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = h.Publish(ctx, queue.OrderCreatedEvent{
			OrderID:       order.ID,
			CarID:         order.CarID,
			CarName:       order.CarName,
			CarPrice:      order.CarPrice,
			UserID:        order.UserID,
			CustomerName:  order.CustomerName,
			CustomerEmail: order.CustomerEmail,
			Status:        order.Status,
			OrderDate:     order.OrderDate.Format(time.RFC3339),
		})
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "orderId": order.ID})
}
